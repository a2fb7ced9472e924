package globe

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

		// Multiplying a matrix by its inversion should give you the identity matrix.
		if !mat.Mult(mat.Inverted()).IsIdentity() {
			t.Fatal("failed on matrix #", i, ": matrix * matrix.Inverted() is not identity")
		}

	}

}

func TestMatrixRotateY(t *testing.T) {

	// A positive rotation around +Y turns +X towards -Z.
	rotated := NewMatrix4Rotate(0, 1, 0, math.Pi/2).MultVec(WorldRight)

	if !rotated.Equals(NewVector(0, 0, -1)) {
		t.Fatalf("expected +X rotated around +Y to face -Z, got %v", rotated)
	}

	euler := NewMatrix4RotateFromEuler(NewVector(0, math.Pi/2, 0))
	if !euler.Equals(NewMatrix4Rotate(0, 1, 0, math.Pi/2)) {
		t.Fatalf("euler Y rotation doesn't match axis rotation:\n%s", euler)
	}

}

func TestMatrixTranslateComposition(t *testing.T) {

	// Row vectors compose left to right; rotate first, then translate.
	mat := NewMatrix4Rotate(0, 1, 0, math.Pi).Mult(NewMatrix4Translate(0, 0, 5))
	result := mat.MultVec(NewVector(1, 0, 0))

	if !result.Equals(NewVector(-1, 0, 5)) {
		t.Fatalf("unexpected composed transform result %v", result)
	}

}

func TestProjectionPerspectiveDepth(t *testing.T) {

	proj := NewProjectionPerspective(90, 0.1, 100, 2)

	// A point 10 units in front of the camera (down -Z) has a clip W of 10.
	clip := proj.MultVecW(NewVector(0, 0, -10))
	if math.Abs(clip.W-10) > 1e-9 {
		t.Fatalf("expected clip W of 10, got %f", clip.W)
	}

	// Points on the near and far plane map to -1 and 1 in NDC.
	near := proj.MultVecW(NewVector(0, 0, -0.1))
	far := proj.MultVecW(NewVector(0, 0, -100))

	if math.Abs(near.Z/near.W+1) > 1e-9 || math.Abs(far.Z/far.W-1) > 1e-9 {
		t.Fatalf("near / far planes don't map to NDC -1 / 1: %f, %f", near.Z/near.W, far.Z/far.W)
	}

	// With a 90 degree field of view, X is halved by an aspect ratio of 2.
	side := proj.MultVecW(NewVector(10, 10, -10))
	if math.Abs(side.X/side.W-0.5) > 1e-9 || math.Abs(side.Y/side.W-1) > 1e-9 {
		t.Fatalf("unexpected perspective division result: %f, %f", side.X/side.W, side.Y/side.W)
	}

}

func TestLookAtMatrix(t *testing.T) {

	rot := NewLookAtMatrix(NewVector(0, 0, 2), NewVector(0, 0, 0), WorldUp)

	if !rot.IsIdentity() {
		t.Fatalf("looking from +Z at the origin should be an identity rotation, got:\n%s", rot)
	}

	rot = NewLookAtMatrix(NewVector(2, 0, 0), NewVector(0, 0, 0), WorldUp)

	if !rot.Forward().Equals(WorldRight) {
		t.Fatalf("expected the backward axis to point from the target to the eye, got %v", rot.Forward())
	}

}
