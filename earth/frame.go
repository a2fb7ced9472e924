package earth

import (
	"context"
	"time"

	"github.com/solarlune/globe"
)

// maxFrameDelta caps the time step handed to the controls, so a long stall doesn't finish a zoom in one jump.
const maxFrameDelta = 0.1

// SceneRenderer draws a Scene through a Camera; *globe.Renderer is the usual implementation.
type SceneRenderer interface {
	Render(scene *globe.Scene, camera *globe.Camera)
}

// FrameDriver advances the globe scene one frame at a time: it turns the meshes, updates the controls, and renders.
type FrameDriver struct {
	Context  *SceneContext
	Renderer SceneRenderer

	// WaitForTextures skips frames entirely until every texture has resolved, whether it loaded or failed.
	WaitForTextures bool

	Frames  int // Frames advanced so far.
	Skipped int // Frames skipped while waiting for textures.

	now      func() time.Time
	lastTick time.Time
}

// NewFrameDriver creates a FrameDriver for the SceneContext given. If renderer is nil, the SceneContext's own
// Renderer is used.
func NewFrameDriver(sc *SceneContext, renderer SceneRenderer) *FrameDriver {
	if renderer == nil {
		renderer = sc.Renderer
	}
	return &FrameDriver{
		Context:  sc,
		Renderer: renderer,
		now:      time.Now,
	}
}

// Tick advances the scene by one frame, returning false if the frame was skipped.
func (driver *FrameDriver) Tick() bool {

	sc := driver.Context

	if driver.WaitForTextures && sc.Loader.Pending() > 0 {
		driver.Skipped++
		return false
	}

	sc.Sphere.Rotation.Y += sc.Rates.Earth
	sc.Galaxy.Rotation.Y += sc.Rates.Galaxy
	sc.Cloud.Rotation.Y += sc.Rates.Cloud

	sc.Controls.Update(driver.delta())

	driver.Renderer.Render(sc.Scene, sc.Camera)

	driver.Frames++

	return true

}

func (driver *FrameDriver) delta() float64 {
	now := driver.now()
	dt := 1.0 / 60
	if !driver.lastTick.IsZero() {
		dt = now.Sub(driver.lastTick).Seconds()
	}
	driver.lastTick = now
	if dt < 0 {
		dt = 0
	}
	return min(dt, maxFrameDelta)
}

// Step calls Tick n times and returns how many frames actually advanced.
func (driver *FrameDriver) Step(n int) int {
	advanced := 0
	for i := 0; i < n; i++ {
		if driver.Tick() {
			advanced++
		}
	}
	return advanced
}

// Run ticks once for every signal received on refresh, until ctx is done or refresh is closed. It returns the
// context's error if the context ended the loop, and nil otherwise.
func (driver *FrameDriver) Run(ctx context.Context, refresh <-chan struct{}) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case _, ok := <-refresh:
			if !ok {
				return nil
			}
			driver.Tick()
		}
	}
}
