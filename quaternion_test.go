package globe

import (
	"math"
	"testing"
)

func TestQuaternionFromEuler(t *testing.T) {

	for _, euler := range []Vector{
		NewVector(0, 0, 0),
		NewVector(0, 1.5, 0),
		NewVector(0.3, -1.2, 2.5),
		NewVector(-math.Pi/2, 0.1, math.Pi),
	} {

		quat := NewQuaternionFromEuler(euler)

		if math.Abs(quat.Dot(quat)-1) > 1e-9 {
			t.Fatalf("quaternion for %v isn't normalized: %v", euler, quat)
		}

		if !quat.Matrix4().Equals(NewMatrix4RotateFromEuler(euler)) {
			t.Fatalf("quaternion and matrix rotations differ for %v:\n%s\n%s", euler, quat.Matrix4(), NewMatrix4RotateFromEuler(euler))
		}

	}

}
