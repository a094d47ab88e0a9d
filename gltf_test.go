package slides3d

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testTriangleGLTF is a single triangle, (0, 0, 0), (1, 0, 0) and (0, 1, 0), with its buffer embedded as a data URI.
const testTriangleGLTF = `{
	"asset": {"version": "2.0"},
	"buffers": [{
		"byteLength": 44,
		"uri": "data:application/octet-stream;base64,AAAAAAAAAAAAAAAAAACAPwAAAAAAAAAAAAAAAAAAgD8AAAAAAAABAAIAAAA="
	}],
	"bufferViews": [
		{"buffer": 0, "byteOffset": 0, "byteLength": 36},
		{"buffer": 0, "byteOffset": 36, "byteLength": 6}
	],
	"accessors": [
		{"bufferView": 0, "componentType": 5126, "count": 3, "type": "VEC3", "min": [0, 0, 0], "max": [1, 1, 0]},
		{"bufferView": 1, "componentType": 5123, "count": 3, "type": "SCALAR"}
	],
	"meshes": [{"name": "Leaf", "primitives": [{"attributes": {"POSITION": 0}, "indices": 1}]}]
}`

const testEmptyGLTF = `{"asset": {"version": "2.0"}, "meshes": [{"name": "Empty", "primitives": []}]}`

func BenchmarkLoadGLTFData(b *testing.B) {
	b.ReportAllocs()
	b.SetBytes(int64(len(testTriangleGLTF)))
	for i := 0; i < b.N; i++ {
		if _, err := LoadGLTFData(strings.NewReader(testTriangleGLTF)); err != nil {
			b.Fatal(err)
		}
	}
}

func TestLoadGLTFData(t *testing.T) {

	mesh, err := LoadGLTFData(strings.NewReader(testTriangleGLTF))
	require.NoError(t, err)

	assert.Equal(t, "Leaf", mesh.Name)
	require.Equal(t, 1, mesh.TriangleCount())

	assert.Equal(t, NewVector(0, 0, 0), mesh.Vertices[0].Position)
	assert.Equal(t, NewVector(1, 0, 0), mesh.Vertices[1].Position)
	assert.Equal(t, NewVector(0, 1, 0), mesh.Vertices[2].Position)

	// No normals were exported, so they're computed from the winding
	for _, v := range mesh.Vertices {
		assertVectorInDelta(t, VecZ, v.Normal, 1e-9)
	}

	assert.InDelta(t, 1, mesh.Dimensions.Width(), 1e-9)
	assert.InDelta(t, 1, mesh.Dimensions.Height(), 1e-9)

}

func TestLoadGLTFFile(t *testing.T) {

	path := filepath.Join(t.TempDir(), "leaf.gltf")
	require.NoError(t, os.WriteFile(path, []byte(testTriangleGLTF), 0o644))

	mesh, err := LoadGLTFFile(path)
	require.NoError(t, err)
	assert.Equal(t, 1, mesh.TriangleCount())

	_, err = LoadGLTFFile(filepath.Join(t.TempDir(), "missing.gltf"))
	assert.ErrorIs(t, err, os.ErrNotExist)

}

func TestLoadGLTFErrors(t *testing.T) {

	_, err := LoadGLTFData(strings.NewReader(testEmptyGLTF))
	assert.True(t, errors.Is(err, ErrEmptyMesh))

	_, err = LoadGLTFData(strings.NewReader("this is not a model"))
	assert.Error(t, err)

}
