// Package controls contains camera controllers driven by mouse input.
package controls

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/solarlune/globe"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// polarEpsilon keeps the camera from reaching the poles, where its up vector would be undefined.
const polarEpsilon = 1e-6

// ZoomDuration is how long, in seconds, an eased zoom takes to settle.
const ZoomDuration = 0.25

// Input is the source of pointer input for an Orbit.
type Input interface {
	// CursorPosition returns the pointer's position in pixels.
	CursorPosition() (x, y int)
	// RotatePressed returns true while the button that drags the camera around is held.
	RotatePressed() bool
	// Wheel returns the vertical scroll amount since the last frame; positive values zoom in.
	Wheel() float64
}

// EbitenInput reads the Orbit's input from the mouse through Ebitengine.
type EbitenInput struct{}

func (EbitenInput) CursorPosition() (int, int) {
	return ebiten.CursorPosition()
}

func (EbitenInput) RotatePressed() bool {
	return ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
}

func (EbitenInput) Wheel() float64 {
	_, y := ebiten.Wheel()
	return y
}

// Orbit moves a Camera around a target point on a sphere: dragging rotates the camera around the target, and
// scrolling zooms towards or away from it. The camera's distance is kept within [MinDistance, MaxDistance] on
// every update, no matter how the camera was moved.
type Orbit struct {
	Camera *globe.Camera
	Target globe.Vector // The point the camera orbits around and looks at.

	Enabled bool // If the Orbit responds to input. A disabled Orbit still enforces its limits.

	// EnableDamping gives rotation inertia; each update applies DampingFactor of the remaining rotation, and the
	// remainder decays by 1 - DampingFactor.
	EnableDamping bool
	DampingFactor float64

	MinDistance, MaxDistance     float64
	MinPolarAngle, MaxPolarAngle float64 // Limits of the vertical orbit angle in radians, from 0 (top) to Pi (bottom).

	RotateSpeed float64
	ZoomSpeed   float64

	input          Input
	viewportHeight float64

	deltaTheta, deltaPhi float64
	dragging             bool
	lastX, lastY         int

	zoomTween *gween.Tween
	zoomEnd   float64
}

// NewOrbit creates a new Orbit controlling the Camera given, reading input from the Input given (which can be nil
// for an Orbit that only enforces its limits).
func NewOrbit(camera *globe.Camera, input Input) *Orbit {
	return &Orbit{
		Camera:         camera,
		Enabled:        true,
		DampingFactor:  0.05,
		MinDistance:    0,
		MaxDistance:    math.Inf(1),
		MinPolarAngle:  0,
		MaxPolarAngle:  math.Pi,
		RotateSpeed:    1,
		ZoomSpeed:      1,
		input:          input,
		viewportHeight: 1,
	}
}

// SetViewportHeight sets the height of the view in pixels; dragging across the full height rotates the camera by a
// full turn.
func (orbit *Orbit) SetViewportHeight(height int) {
	if height > 0 {
		orbit.viewportHeight = float64(height)
	}
}

// Distance returns the Camera's distance from the Target.
func (orbit *Orbit) Distance() float64 {
	return orbit.Camera.Position.Distance(orbit.Target)
}

// Zooming returns true while an eased zoom is in progress.
func (orbit *Orbit) Zooming() bool {
	return orbit.zoomTween != nil
}

// Zoom starts easing the camera's distance by the scale given; values below 1 move the camera closer.
func (orbit *Orbit) Zoom(scale float64) {

	start := orbit.Distance()
	end := start
	if orbit.zoomTween != nil {
		end = orbit.zoomEnd
	}

	end = orbit.clampDistance(end * scale)

	orbit.zoomEnd = end
	orbit.zoomTween = gween.New(float32(start), float32(end), ZoomDuration, ease.OutQuad)

}

// Update reads input and moves the Camera; it should be called once per frame, with dt being the time since the
// last frame in seconds.
func (orbit *Orbit) Update(dt float64) {

	if orbit.Enabled && orbit.input != nil {
		orbit.handleInput()
	}

	offset := orbit.Camera.Position.Sub(orbit.Target)

	radius := offset.Magnitude()
	theta := math.Atan2(offset.X, offset.Z)
	phi := 0.0
	if radius > 0 {
		phi = math.Acos(clamp(offset.Y/radius, -1, 1))
	} else {
		// A camera sitting on its target has no direction; look from the front.
		phi = math.Pi / 2
	}

	if orbit.EnableDamping {
		theta += orbit.deltaTheta * orbit.DampingFactor
		phi += orbit.deltaPhi * orbit.DampingFactor
		orbit.deltaTheta *= 1 - orbit.DampingFactor
		orbit.deltaPhi *= 1 - orbit.DampingFactor
	} else {
		theta += orbit.deltaTheta
		phi += orbit.deltaPhi
		orbit.deltaTheta = 0
		orbit.deltaPhi = 0
	}

	phi = clamp(phi, math.Max(orbit.MinPolarAngle, polarEpsilon), math.Min(orbit.MaxPolarAngle, math.Pi-polarEpsilon))

	if orbit.zoomTween != nil {
		current, finished := orbit.zoomTween.Update(float32(dt))
		radius = float64(current)
		if finished {
			orbit.zoomTween = nil
		}
	}

	radius = orbit.clampDistance(radius)

	sinPhi := math.Sin(phi)
	orbit.Camera.Position = orbit.Target.Add(globe.NewVector(
		radius*sinPhi*math.Sin(theta),
		radius*math.Cos(phi),
		radius*sinPhi*math.Cos(theta),
	))

	orbit.Camera.LookAt(orbit.Target)

}

func (orbit *Orbit) handleInput() {

	x, y := orbit.input.CursorPosition()

	if orbit.input.RotatePressed() {
		if orbit.dragging {
			turn := 2 * math.Pi * orbit.RotateSpeed / orbit.viewportHeight
			orbit.deltaTheta -= float64(x-orbit.lastX) * turn
			orbit.deltaPhi -= float64(y-orbit.lastY) * turn
		}
		orbit.dragging = true
	} else {
		orbit.dragging = false
	}

	orbit.lastX, orbit.lastY = x, y

	if wheel := orbit.input.Wheel(); wheel != 0 {
		orbit.Zoom(math.Pow(0.95, orbit.ZoomSpeed*wheel))
	}

}

func (orbit *Orbit) clampDistance(distance float64) float64 {
	return clamp(distance, orbit.MinDistance, orbit.MaxDistance)
}

func clamp(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}
