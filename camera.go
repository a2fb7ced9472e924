package globe

import (
	"math"
)

// Camera represents a perspective camera (where you look from). The Camera looks down its local -Z axis; call LookAt to
// aim it at a point.
type Camera struct {
	*Node

	// Fov is the vertical field of view in degrees.
	Fov float64
	// Aspect is the width / height ratio of the view. If Aspect changes, call UpdateProjectionMatrix afterwards.
	Aspect float64
	// Near and Far are the distances of the near and far clipping planes.
	Near, Far float64
	// Up is the world direction the Camera considers "up" when aiming it with LookAt.
	Up Vector

	target           Vector
	projectionMatrix Matrix4
}

// NewCamera creates a new perspective Camera with the vertical field of view (in degrees), aspect ratio, and clipping
// planes given.
func NewCamera(fov, aspect, near, far float64) *Camera {
	cam := &Camera{
		Node:   newNode("Camera", NodeTypeCamera),
		Fov:    fov,
		Aspect: aspect,
		Near:   near,
		Far:    far,
		Up:     WorldUp,
		target: NewVector(0, 0, -1),
	}
	cam.owner = cam
	cam.UpdateProjectionMatrix()
	return cam
}

// UpdateProjectionMatrix recalculates the Camera's projection matrix from its Fov, Aspect, Near, and Far values.
func (camera *Camera) UpdateProjectionMatrix() {
	aspect := camera.Aspect
	if aspect <= 0 || math.IsNaN(aspect) || math.IsInf(aspect, 0) {
		aspect = 1
	}
	camera.projectionMatrix = NewProjectionPerspective(camera.Fov, camera.Near, camera.Far, aspect)
}

// ProjectionMatrix returns the projection matrix last calculated by UpdateProjectionMatrix.
func (camera *Camera) ProjectionMatrix() Matrix4 {
	return camera.projectionMatrix
}

// LookAt aims the Camera at the given world position.
func (camera *Camera) LookAt(target Vector) {
	camera.target = target
}

// Target returns the world position the Camera is aimed at.
func (camera *Camera) Target() Vector {
	return camera.target
}

// WorldTransform returns the Camera's global transform. The Camera's rotation comes from where it's aimed rather than
// its Rotation property.
func (camera *Camera) WorldTransform() Matrix4 {

	position := camera.Node.WorldPosition()

	transform := NewMatrix4Scale(camera.Scale.X, camera.Scale.Y, camera.Scale.Z)

	if !position.Equals(camera.target) {
		transform = transform.Mult(NewLookAtMatrix(position, camera.target, camera.Up))
	}

	return transform.Mult(NewMatrix4Translate(position.X, position.Y, position.Z))

}

// ViewMatrix returns the Camera's view matrix, transforming world positions into the Camera's space.
func (camera *Camera) ViewMatrix() Matrix4 {
	return camera.WorldTransform().Inverted()
}

// ViewProjectionMatrix returns the view and projection matrices combined, transforming world positions into clip space.
func (camera *Camera) ViewProjectionMatrix() Matrix4 {
	return camera.ViewMatrix().Mult(camera.projectionMatrix)
}

// WorldToClip transforms a world position into clip space (before the perspective divide).
func (camera *Camera) WorldToClip(vert Vector) Vector {
	return camera.ViewProjectionMatrix().MultVecW(vert)
}
