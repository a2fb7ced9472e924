package controls

import (
	"math"
	"testing"

	"github.com/solarlune/globe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeInput struct {
	x, y    int
	pressed bool
	wheel   float64
}

func (f *fakeInput) CursorPosition() (int, int) { return f.x, f.y }
func (f *fakeInput) RotatePressed() bool        { return f.pressed }

func (f *fakeInput) Wheel() float64 {
	w := f.wheel
	f.wheel = 0
	return w
}

func newTestOrbit(input Input) *Orbit {
	camera := globe.NewCamera(75, 1, 0.1, 100)
	camera.Position = globe.NewVector(0, 0, 2)
	orbit := NewOrbit(camera, input)
	orbit.EnableDamping = true
	orbit.MinDistance = 2
	orbit.MaxDistance = 4
	orbit.SetViewportHeight(768)
	return orbit
}

func TestOrbitClampsDistance(t *testing.T) {

	orbit := newTestOrbit(nil)

	for _, pos := range []globe.Vector{
		globe.NewVector(0, 0, 10),
		globe.NewVector(0.1, 0.2, 0.3),
		globe.NewVector(3, 0, 0),
		globe.NewVector(0, 0, 0),
	} {
		orbit.Camera.Position = pos
		orbit.Update(1.0 / 60)
		assert.GreaterOrEqual(t, orbit.Distance(), 2-1e-9, pos)
		assert.LessOrEqual(t, orbit.Distance(), 4+1e-9, pos)
	}

	orbit.Camera.Position = globe.NewVector(0, 0, 10)
	orbit.Update(1.0 / 60)
	assert.InDelta(t, 4, orbit.Distance(), 1e-9)
	assert.True(t, orbit.Camera.Target().Equals(orbit.Target))

}

func TestOrbitZoomStaysWithinLimits(t *testing.T) {

	input := &fakeInput{}
	orbit := newTestOrbit(input)

	// Scrolling in hard can't push the camera past MinDistance.
	for i := 0; i < 120; i++ {
		input.wheel = 5
		orbit.Update(1.0 / 60)
		require.GreaterOrEqual(t, orbit.Distance(), 2-1e-6)
	}

	// Nor can scrolling out push it past MaxDistance.
	for i := 0; i < 120; i++ {
		input.wheel = -5
		orbit.Update(1.0 / 60)
		require.LessOrEqual(t, orbit.Distance(), 4+1e-6)
	}

	for orbit.Zooming() {
		orbit.Update(1.0 / 60)
	}

	assert.InDelta(t, 4, orbit.Distance(), 1e-4)

}

func TestOrbitZoomEases(t *testing.T) {

	orbit := newTestOrbit(nil)
	orbit.Camera.Position = globe.NewVector(0, 0, 3)

	orbit.Zoom(0.5) // Towards 1.5, clamped to 2.
	require.True(t, orbit.Zooming())

	orbit.Update(ZoomDuration / 2)
	halfway := orbit.Distance()
	assert.Less(t, halfway, 3.0)
	assert.Greater(t, halfway, 2.0)

	orbit.Update(ZoomDuration)
	assert.False(t, orbit.Zooming())
	assert.InDelta(t, 2, orbit.Distance(), 1e-6)

}

func TestOrbitDampingDecay(t *testing.T) {

	input := &fakeInput{x: 100, y: 100, pressed: true}
	orbit := newTestOrbit(input)

	orbit.Update(1.0 / 60) // Starts the drag.

	input.x = 110
	orbit.Update(1.0 / 60)

	input.pressed = false

	angle := func() float64 {
		return math.Atan2(orbit.Camera.Position.X, orbit.Camera.Position.Z)
	}

	previous := angle()
	orbit.Update(1.0 / 60)
	step1 := angle() - previous

	previous = angle()
	orbit.Update(1.0 / 60)
	step2 := angle() - previous

	assert.Less(t, step1, 0.0, "dragging right orbits the camera to the left")
	assert.InDelta(t, 1-orbit.DampingFactor, step2/step1, 1e-6)

	// The distance doesn't change while rotating.
	assert.InDelta(t, 2, orbit.Distance(), 1e-9)

}

func TestOrbitWithoutDamping(t *testing.T) {

	input := &fakeInput{x: 0, y: 0, pressed: true}
	orbit := newTestOrbit(input)
	orbit.EnableDamping = false

	orbit.Update(1.0 / 60)

	input.x = -96 // An eighth of the viewport's height.
	orbit.Update(1.0 / 60)

	assert.InDelta(t, math.Pi/4, math.Atan2(orbit.Camera.Position.X, orbit.Camera.Position.Z), 1e-9)

	// Without damping, the rotation stops as soon as the drag does.
	input.pressed = false
	before := orbit.Camera.Position
	orbit.Update(1.0 / 60)
	assert.True(t, before.Equals(orbit.Camera.Position))

}

func TestOrbitPolarClamp(t *testing.T) {

	input := &fakeInput{x: 0, y: 0, pressed: true}
	orbit := newTestOrbit(input)
	orbit.EnableDamping = false

	orbit.Update(1.0 / 60)

	// Drag far downwards, which would flip the camera over the top.
	input.y = 2000
	orbit.Update(1.0 / 60)

	assert.InDelta(t, 2, orbit.Camera.Position.Y, 1e-5)
	assert.Greater(t, orbit.Camera.Position.Y, 0.0)

}

func TestOrbitDisabled(t *testing.T) {

	input := &fakeInput{x: 0, y: 0, pressed: true}
	orbit := newTestOrbit(input)
	orbit.Enabled = false

	orbit.Update(1.0 / 60)
	input.x = 300
	input.wheel = 10
	orbit.Update(1.0 / 60)

	assert.True(t, orbit.Camera.Position.Equals(globe.NewVector(0, 0, 2)))
	assert.False(t, orbit.Zooming())

}
