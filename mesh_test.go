package slides3d

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBoxMesh(t *testing.T) {

	box := NewBoxMesh(0.1, 0.2, 0.1)

	assert.Equal(t, 12, box.TriangleCount())
	assert.InDelta(t, 0.1, box.Dimensions.Width(), 1e-9)
	assert.InDelta(t, 0.2, box.Dimensions.Height(), 1e-9)
	assert.InDelta(t, 0.1, box.Dimensions.Depth(), 1e-9)
	assertVectorInDelta(t, Vector{}, box.Dimensions.Center(), 1e-9)

	for i := 0; i < len(box.Vertices); i += 3 {

		a, b, c := box.Vertices[i], box.Vertices[i+1], box.Vertices[i+2]

		// Counter-clockwise winding agrees with the stored normal, which points outwards
		wound := calculateNormal(a.Position, b.Position, c.Position)
		assertVectorInDelta(t, a.Normal, wound, 1e-9, "triangle %d", i/3)

		center := a.Position.Add(b.Position).Add(c.Position).Divide(3)
		assert.Greater(t, center.Dot(a.Normal), 0.0, "triangle %d", i/3)

	}

}

func TestMeshApplyMatrix(t *testing.T) {

	box := NewBoxMesh(1, 1, 1)
	original := box.Clone()

	box.ApplyMatrix(NewMatrix4Scale(2, 1, 1).Mult(NewMatrix4Rotate(0, 1, 0, math.Pi/2)))

	assert.InDelta(t, 1, box.Dimensions.Width(), 1e-9)
	assert.InDelta(t, 2, box.Dimensions.Depth(), 1e-9)

	for _, v := range box.Vertices {
		assert.InDelta(t, 1, v.Normal.Magnitude(), 1e-9)
	}

	// Clones don't share vertices
	assert.InDelta(t, 1, original.Dimensions.Width(), 1e-9)

}

func TestMeshFillsNormals(t *testing.T) {

	mesh := NewMesh("tri", NewVertex(0, 0, 0), NewVertex(1, 0, 0), NewVertex(0, 1, 0))

	for _, v := range mesh.Vertices {
		assert.Equal(t, VecZ, v.Normal)
	}

	assert.Panics(t, func() { NewMesh("broken", NewVertex(0, 0, 0)) })

}
