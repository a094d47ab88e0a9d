package render

import (
	"testing"

	"github.com/solarlune/slides3d"
	"github.com/stretchr/testify/assert"
)

func TestDirectionalLight(t *testing.T) {

	sun := NewDirectionalLight(1, 1, 1, 0.5, slides3d.NewVector(0, 0, -2))

	// Facing the light
	r, g, b := sun.Light(slides3d.VecZ)
	assert.InDelta(t, 0.5, r, 1e-6)
	assert.InDelta(t, 0.5, g, 1e-6)
	assert.InDelta(t, 0.5, b, 1e-6)

	// Facing away
	r, _, _ = sun.Light(slides3d.VecZ.Invert())
	assert.Zero(t, r)

}

func TestLightVertex(t *testing.T) {

	r, g, b := lightVertex(nil, slides3d.VecZ)
	assert.Equal(t, float32(1), r)
	assert.Equal(t, float32(1), g)
	assert.Equal(t, float32(1), b)

	lights := []Light{
		NewAmbientLight(1, 0.5, 0, 0.8),
		NewDirectionalLight(1, 1, 1, 0.5, slides3d.NewVector(0, 0, -1)),
	}

	r, g, b = lightVertex(lights, slides3d.VecZ)
	assert.Equal(t, float32(1), r)
	assert.InDelta(t, 0.9, g, 1e-6)
	assert.InDelta(t, 0.5, b, 1e-6)

}
