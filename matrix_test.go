package slides3d

import (
	"math"
	"testing"
)

func BenchmarkMatrixInversion(b *testing.B) {

	b.ReportAllocs()

	mat := NewMatrix4Rotate(0, 1, 0.2, 0.24).Mult(NewMatrix4Translate(1, 4, -12))

	for i := 0; i < b.N; i++ {
		mat.Inverted()
	}

}

func TestMatrixInversion(t *testing.T) {

	matrices := []Matrix4{
		NewMatrix4Rotate(0, 1, 0, 0.1),
		NewMatrix4Translate(-10, 0.1, 3232.1976),
		NewMatrix4Scale(10, 0.1, -0.45),
		NewMatrix4Translate(-1, -1, -1).Mult(NewMatrix4Rotate(1, 0, 0.1, 0.334)).Mult(NewMatrix4Scale(10, 1, 2)),
	}

	for i, mat := range matrices {

		// Multiplying a matrix by its inversion undoes it, leaving the identity
		if !mat.Mult(mat.Inverted()).IsIdentity() {
			t.Fatal("failed on matrix #", i, ": matrix * matrix.Inverted() is not identity")
		}

	}

}

func TestMatrixSingularInversion(t *testing.T) {
	if !NewMatrix4Scale(10, 1, 0).Inverted().IsIdentity() {
		t.Fatal("inverting a singular matrix should give the identity")
	}
}

func TestMatrixRotateCounterClockwise(t *testing.T) {

	rotated := NewMatrix4Rotate(0, 0, 1, math.Pi/2).MultVec(VecX)

	if !rotated.Equals(VecY) {
		t.Fatal("rotating +X a quarter turn around +Z should give +Y, got", rotated)
	}

	back := NewMatrix4().Rotated(0, 0, 1, 0.7).Rotated(0, 0, 1, -0.7)
	if !back.IsIdentity() {
		t.Fatal("rotating forth and back should give the identity, got", back)
	}

}

func TestMatrixCombineOrder(t *testing.T) {

	// Scale first, then translate
	mat := NewMatrix4Scale(2, 2, 2).Mult(NewMatrix4Translate(1, 0, 0))

	if p := mat.MultVec(VecX); !p.Equals(NewVector(3, 0, 0)) {
		t.Fatal("expected (3, 0, 0), got", p)
	}

	if p := mat.Position(); !p.Equals(VecX) {
		t.Fatal("expected the translation to be (1, 0, 0), got", p)
	}

}

func TestProjectionPerspective(t *testing.T) {

	proj := NewProjectionPerspective(45, 0.01, 100, 1280, 720)

	inFront := proj.MultVecW(NewVector(0, 0, -5))
	if inFront.W <= 0 {
		t.Fatal("points in front of the camera should have a positive W, got", inFront.W)
	}

	if inFront.X != 0 || inFront.Y != 0 {
		t.Fatal("the view axis should project to the center, got", inFront)
	}

	behind := proj.MultVecW(NewVector(0, 0, 5))
	if behind.W >= 0 {
		t.Fatal("points behind the camera should have a negative W, got", behind.W)
	}

}
