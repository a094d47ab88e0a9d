package slides3d

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

// LoadGLTFFile loads the triangles of a .gltf or .glb file from the filepath given into a single Mesh.
func LoadGLTFFile(path string) (*Mesh, error) {

	fileData, err := os.ReadFile(path)

	if err != nil {
		return nil, err
	}

	return LoadGLTFData(bytes.NewReader(fileData))

}

// LoadGLTFData loads a .gltf or .glb document from the reader given, merging the triangles of every primitive of every mesh into a
// single Mesh, named after the first mesh. Node transforms are ignored; only the geometry is kept. Normals are read when exported,
// and computed from the triangles otherwise.
func LoadGLTFData(data io.Reader) (*Mesh, error) {

	decoder := gltf.NewDecoder(data)

	doc := gltf.NewDocument()

	err := decoder.Decode(doc)

	if err != nil {
		return nil, fmt.Errorf("decoding gltf: %w", err)
	}

	name := "Mesh"
	if len(doc.Meshes) > 0 && doc.Meshes[0].Name != "" {
		name = doc.Meshes[0].Name
	}

	newMesh := NewMesh(name)

	for _, mesh := range doc.Meshes {

		for _, v := range mesh.Primitives {

			posAccessor, posExists := v.Attributes[gltf.POSITION]
			if !posExists {
				continue
			}

			posBuffer := [][3]float32{}
			vertPos, err := modeler.ReadPosition(doc, doc.Accessors[posAccessor], posBuffer)

			if err != nil {
				return nil, fmt.Errorf("reading positions of %s: %w", mesh.Name, err)
			}

			vertexData := make([]Vertex, len(vertPos))

			for i, v := range vertPos {
				vertexData[i] = NewVertex(float64(v[0]), float64(v[1]), float64(v[2]))
			}

			if normalAccessor, normalExists := v.Attributes[gltf.NORMAL]; normalExists {

				normalBuffer := [][3]float32{}

				normals, err := modeler.ReadNormal(doc, doc.Accessors[normalAccessor], normalBuffer)

				if err != nil {
					return nil, fmt.Errorf("reading normals of %s: %w", mesh.Name, err)
				}

				for i, v := range normals {
					vertexData[i].Normal = NewVector(float64(v[0]), float64(v[1]), float64(v[2]))
				}

			}

			var indices []int

			if v.Indices != nil {

				indexBuffer := []uint32{}

				gltfIndices, err := modeler.ReadIndices(doc, doc.Accessors[*v.Indices], indexBuffer)

				if err != nil {
					return nil, fmt.Errorf("reading indices of %s: %w", mesh.Name, err)
				}

				indices = make([]int, len(gltfIndices))

				for i, j := range gltfIndices {
					indices[i] = int(j)
				}

			} else {

				indices = make([]int, len(vertexData))
				for i := range indices {
					indices[i] = i
				}

			}

			triangles := make([]Vertex, 0, len(indices)-len(indices)%3)

			for _, index := range indices[:len(indices)-len(indices)%3] {
				if index >= len(vertexData) {
					return nil, fmt.Errorf("mesh %s: index %d out of range of %d vertices", mesh.Name, index, len(vertexData))
				}
				triangles = append(triangles, vertexData[index])
			}

			if len(triangles) > 0 {
				newMesh.AddTriangles(triangles...)
			}

		}

	}

	if newMesh.TriangleCount() == 0 {
		return nil, ErrEmptyMesh
	}

	return newMesh, nil

}
