package globe

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCameraLookAt(t *testing.T) {

	camera := NewCamera(75, 4.0/3.0, 0.1, 1000)
	camera.Position = NewVector(0, 0, 2)
	camera.LookAt(NewVectorZero())

	// The origin sits right in the middle of the view, 2 units ahead of the camera.
	clip := camera.WorldToClip(NewVectorZero())
	assert.InDelta(t, 0, clip.X, 1e-9)
	assert.InDelta(t, 0, clip.Y, 1e-9)
	assert.InDelta(t, 2, clip.W, 1e-9)

	// Orbiting the camera around keeps the target centered.
	camera.Position = NewVector(1.5, 0.4, -1)
	clip = camera.WorldToClip(NewVectorZero())
	assert.InDelta(t, 0, clip.X/clip.W, 1e-9)
	assert.InDelta(t, 0, clip.Y/clip.W, 1e-9)
	assert.InDelta(t, camera.Position.Magnitude(), clip.W, 1e-9)

}

func TestCameraUpdateProjectionMatrix(t *testing.T) {

	camera := NewCamera(75, 1, 0.1, 1000)
	camera.Position = NewVector(0, 0, 2)
	camera.LookAt(NewVectorZero())

	point := NewVector(1, 0, 0)
	before := camera.WorldToClip(point)

	// Changing the aspect ratio doesn't apply until the projection is updated.
	camera.Aspect = 2
	assert.Equal(t, before, camera.WorldToClip(point))

	camera.UpdateProjectionMatrix()
	after := camera.WorldToClip(point)
	assert.InDelta(t, before.X/2, after.X, 1e-9)
	assert.InDelta(t, before.Y, after.Y, 1e-9)

}

func TestCameraInvalidAspect(t *testing.T) {
	camera := NewCamera(75, 0, 0.1, 1000)
	assert.False(t, camera.ProjectionMatrix().Equals(Matrix4{}))
	assert.Equal(t, camera.ProjectionMatrix(), NewProjectionPerspective(75, 0.1, 1000, 1))
}
