package slides3d

import (
	"errors"
	"math"
)

// Dimensions represents the minimum and maximum spatial dimensions of a Mesh.
type Dimensions [2]Vector

// Center returns the center point inbetween the two corners of the dimension set.
func (dim Dimensions) Center() Vector {
	return dim[0].Add(dim[1]).Scale(0.5)
}

func (dim Dimensions) Width() float64 {
	return dim[1].X - dim[0].X
}

func (dim Dimensions) Height() float64 {
	return dim[1].Y - dim[0].Y
}

func (dim Dimensions) Depth() float64 {
	return dim[1].Z - dim[0].Z
}

// MaxSpan returns the maximum span out of width, height, and depth.
func (dim Dimensions) MaxSpan() float64 {
	return math.Max(math.Max(dim.Width(), dim.Height()), dim.Depth())
}

// Vertex is a single corner of a Mesh triangle.
type Vertex struct {
	Position Vector
	Normal   Vector
}

// NewVertex creates a new Vertex with the given position and a zero normal.
func NewVertex(x, y, z float64) Vertex {
	return Vertex{Position: NewVector(x, y, z)}
}

// Mesh is the shape every instance of a slide shares. Vertices are stored as a flat triangle list, three per triangle.
type Mesh struct {
	Name       string
	Vertices   []Vertex
	Dimensions Dimensions
}

// NewMesh takes a name and a slice of vertices, and returns a new Mesh. The number of vertices must be divisible by 3,
// or NewMesh will panic.
func NewMesh(name string, verts ...Vertex) *Mesh {

	mesh := &Mesh{
		Name:     name,
		Vertices: []Vertex{},
	}

	if len(verts)%3 != 0 {
		panic("Error: NewMesh() has not been given a correct number of vertices to constitute triangles (it needs to be divisible by 3).")
	}

	if len(verts) > 0 {
		mesh.AddTriangles(verts...)
	}

	return mesh

}

// Clone clones the Mesh.
func (mesh *Mesh) Clone() *Mesh {
	newMesh := NewMesh(mesh.Name)
	newMesh.Vertices = append(newMesh.Vertices, mesh.Vertices...)
	newMesh.Dimensions = mesh.Dimensions
	return newMesh
}

// AddTriangles adds triangles consisting of vertices to the Mesh. You must provide a number of vertices divisible by 3.
// Vertices with a zero normal get the normal of their triangle.
func (mesh *Mesh) AddTriangles(verts ...Vertex) {

	if len(verts) == 0 || len(verts)%3 != 0 {
		panic("Error: AddTriangles() has not been given a correct number of vertices to constitute triangles (it needs to be greater than 0 and divisible by 3).")
	}

	for i := 0; i < len(verts); i += 3 {
		tri := [3]Vertex{verts[i], verts[i+1], verts[i+2]}
		normal := calculateNormal(tri[0].Position, tri[1].Position, tri[2].Position)
		for v := range tri {
			if tri[v].Normal.IsZero() {
				tri[v].Normal = normal
			}
		}
		mesh.Vertices = append(mesh.Vertices, tri[:]...)
	}

	mesh.UpdateBounds()

}

// TriangleCount returns the number of triangles in the Mesh.
func (mesh *Mesh) TriangleCount() int {
	return len(mesh.Vertices) / 3
}

// ApplyMatrix applies the Matrix provided to all vertices on the Mesh. Normals are rotated by it and renormalized.
// You can use this to, for example, scale a model down ( mesh.ApplyMatrix(NewMatrix4Scale(0.1, 0.1, 0.1)) ), or rotate all vertices
// around the center by 90 degrees on the Y axis ( mesh.ApplyMatrix(NewMatrix4Rotate(0, 1, 0, math.Pi/2)) ).
func (mesh *Mesh) ApplyMatrix(matrix Matrix4) {

	for i, vert := range mesh.Vertices {
		mesh.Vertices[i].Position = matrix.MultVec(vert.Position)
		mesh.Vertices[i].Normal = matrix.MultDirection(vert.Normal).Unit()
	}

	mesh.UpdateBounds()

}

// UpdateBounds updates the mesh's dimensions; call this after manually changing vertex positions.
func (mesh *Mesh) UpdateBounds() {

	if len(mesh.Vertices) == 0 {
		mesh.Dimensions = Dimensions{}
		return
	}

	mesh.Dimensions[0] = NewVector(math.MaxFloat64, math.MaxFloat64, math.MaxFloat64)
	mesh.Dimensions[1] = NewVector(-math.MaxFloat64, -math.MaxFloat64, -math.MaxFloat64)

	for _, v := range mesh.Vertices {
		mesh.Dimensions[0].X = math.Min(mesh.Dimensions[0].X, v.Position.X)
		mesh.Dimensions[0].Y = math.Min(mesh.Dimensions[0].Y, v.Position.Y)
		mesh.Dimensions[0].Z = math.Min(mesh.Dimensions[0].Z, v.Position.Z)
		mesh.Dimensions[1].X = math.Max(mesh.Dimensions[1].X, v.Position.X)
		mesh.Dimensions[1].Y = math.Max(mesh.Dimensions[1].Y, v.Position.Y)
		mesh.Dimensions[1].Z = math.Max(mesh.Dimensions[1].Z, v.Position.Z)
	}

}

// NewBoxMesh creates a box Mesh of the given size, centered on the origin, with flat faces.
func NewBoxMesh(width, height, depth float64) *Mesh {

	face := func(normal Vector) []Vertex {

		// Two axes spanning the face, picked so that (u x v) points along the normal
		var u, v Vector
		switch {
		case normal.X != 0:
			u, v = NewVector(0, normal.X, 0), VecZ
		case normal.Y != 0:
			u, v = NewVector(0, 0, normal.Y), VecX
		default:
			u, v = NewVector(normal.Z, 0, 0), VecY
		}

		corner := func(su, sv float64) Vertex {
			p := normal.Add(u.Scale(su)).Add(v.Scale(sv))
			return Vertex{
				Position: NewVector(p.X*width/2, p.Y*height/2, p.Z*depth/2),
				Normal:   normal,
			}
		}

		return []Vertex{
			corner(-1, -1), corner(1, -1), corner(1, 1),
			corner(-1, -1), corner(1, 1), corner(-1, 1),
		}

	}

	verts := []Vertex{}
	for _, normal := range []Vector{VecX, VecX.Invert(), VecY, VecY.Invert(), VecZ, VecZ.Invert()} {
		verts = append(verts, face(normal)...)
	}

	return NewMesh("Box", verts...)

}

// ErrEmptyMesh is returned when a model holds no triangles.
var ErrEmptyMesh = errors.New("mesh has no triangles")

func calculateNormal(p1, p2, p3 Vector) Vector {
	v0 := p2.Sub(p1)
	v1 := p3.Sub(p2)
	return v0.Cross(v1).Unit()
}
