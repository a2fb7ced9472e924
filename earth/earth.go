// Package earth builds the rotating globe scene: a textured, bump-mapped Earth, a transparent cloud shell slightly
// larger than it, and a galaxy backdrop seen from the inside, lit by an ambient and a point light and viewed through
// an orbiting camera.
package earth

import (
	"errors"
	"fmt"
	"io/fs"
	"math"

	"github.com/sirupsen/logrus"
	"github.com/solarlune/globe"
	"github.com/solarlune/globe/colors"
	"github.com/solarlune/globe/config"
	"github.com/solarlune/globe/controls"
	"github.com/solarlune/globe/logger"
)

var (
	// ErrInvalidViewport is returned when the window reports a non-positive size.
	ErrInvalidViewport = errors.New("invalid viewport")
	// ErrGeometryOrder is returned when the cloud shell wouldn't enclose the Earth.
	ErrGeometryOrder = errors.New("cloud radius must be larger than earth radius")
)

const (
	EarthRadius  = 0.65
	CloudRadius  = 0.658
	GalaxyRadius = 80
	Segments     = 64

	BumpScale = 0.3

	// CameraDistance is the camera's starting distance from the Earth's center, along +Z.
	CameraDistance = 2.0
)

// Window is the surface the scene is displayed in.
type Window interface {
	// InnerSize returns the drawable size in logical pixels.
	InnerSize() (width, height int)
	DevicePixelRatio() float64
}

type Sizes struct {
	Width, Height int
}

// Textures holds the handles of the four scene textures; each may still be loading.
type Textures struct {
	Earth, Bump, Cloud, Galaxy *globe.Texture
}

// RotationRates holds the Y rotation, in radians, added to each mesh per frame.
type RotationRates struct {
	Earth, Cloud, Galaxy float64
}

// SceneContext owns every handle of the globe scene. It's created once by Bootstrap and then shared by the resize
// handler and the FrameDriver.
type SceneContext struct {
	Scene    *globe.Scene
	Camera   *globe.Camera
	Controls *controls.Orbit
	Renderer *globe.Renderer
	Sizes    Sizes

	Sphere, Cloud, Galaxy *globe.Mesh

	Textures Textures
	Loader   *globe.TextureLoader

	Ambient *globe.AmbientLight
	Point   *globe.PointLight

	Rates         RotationRates
	MaxPixelRatio float64

	window Window
}

// Bootstrap creates the scene from the settings given. Textures are read from fsys in the background; surfaces
// render untextured until theirs resolve, and a texture that fails to load is logged and left untextured. input may be
// nil for controls that ignore the pointer.
func Bootstrap(cfg *config.Config, window Window, fsys fs.FS, input controls.Input) (*SceneContext, error) {

	width, height := window.InnerSize()
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidViewport, width, height)
	}

	sc := &SceneContext{
		Scene:         globe.NewScene("globe"),
		Sizes:         Sizes{Width: width, Height: height},
		MaxPixelRatio: cfg.Camera.MaxPixelRatio,
		window:        window,
	}

	sc.Rates = RotationRates{
		Earth:  cfg.Rotation.Earth,
		Cloud:  cfg.Rotation.Cloud,
		Galaxy: cfg.Rotation.Galaxy,
	}

	// Textures

	sc.Loader = globe.NewTextureLoader(fsys)
	sc.Loader.OnResolve = logTexture

	sc.Textures = Textures{
		Earth:  sc.Loader.Load(cfg.Textures.Earth),
		Bump:   sc.Loader.Load(cfg.Textures.Bump),
		Cloud:  sc.Loader.Load(cfg.Textures.Cloud),
		Galaxy: sc.Loader.Load(cfg.Textures.Galaxy),
	}

	// Geometries and materials

	earthGeo, cloudGeo, galaxyGeo, err := newGeometries(EarthRadius, CloudRadius, GalaxyRadius)
	if err != nil {
		return nil, err
	}

	earthMat := globe.NewMaterial("earth")
	earthMat.Roughness = 1
	earthMat.Metalness = 0
	earthMat.Map = sc.Textures.Earth
	earthMat.BumpMap = sc.Textures.Bump
	earthMat.BumpScale = BumpScale

	cloudMat := globe.NewMaterial("cloud")
	cloudMat.Map = sc.Textures.Cloud
	cloudMat.Transparent = true

	galaxyMat := globe.NewBasicMaterial("galaxy")
	galaxyMat.Map = sc.Textures.Galaxy
	galaxyMat.Side = globe.SideBack

	// Meshes

	sc.Sphere = globe.NewMesh("sphere", earthGeo, earthMat)
	sc.Cloud = globe.NewMesh("cloud", cloudGeo, cloudMat)
	sc.Galaxy = globe.NewMesh("galaxy", galaxyGeo, galaxyMat)
	sc.Scene.Add(sc.Sphere, sc.Cloud, sc.Galaxy)

	// Lights

	ambientColor, err := colors.FromHex(cfg.Lights.AmbientColor)
	if err != nil {
		return nil, fmt.Errorf("ambient light: %w", err)
	}
	pointColor, err := colors.FromHex(cfg.Lights.PointColor)
	if err != nil {
		return nil, fmt.Errorf("point light: %w", err)
	}

	sc.Ambient = globe.NewAmbientLight("ambient", ambientColor, cfg.Lights.AmbientIntensity)
	sc.Point = globe.NewPointLight("point", pointColor, cfg.Lights.PointIntensity)
	if p := cfg.Lights.PointPosition; len(p) == 3 {
		sc.Point.Position = globe.NewVector(p[0], p[1], p[2])
	}
	sc.Scene.Add(sc.Ambient, sc.Point)

	// Camera and controls

	sc.Camera = globe.NewCamera(cfg.Camera.Fov, float64(width)/float64(height), cfg.Camera.Near, cfg.Camera.Far)
	sc.Camera.Position = globe.NewVector(0, 0, CameraDistance)
	sc.Camera.LookAt(globe.NewVector(0, 0, 0))
	sc.Scene.Add(sc.Camera)

	sc.Controls = controls.NewOrbit(sc.Camera, input)
	sc.Controls.EnableDamping = cfg.Controls.Damping
	sc.Controls.DampingFactor = cfg.Controls.DampingFactor
	sc.Controls.MinDistance = cfg.Controls.MinDistance
	sc.Controls.MaxDistance = cfg.Controls.MaxDistance
	sc.Controls.SetViewportHeight(height)

	// Renderer

	sc.Renderer = globe.NewRenderer(true)
	if err := sc.Renderer.SetSize(width, height); err != nil {
		return nil, err
	}
	sc.Renderer.SetPixelRatio(sc.pixelRatio())

	logger.Log.WithFields(logrus.Fields{
		"width":       width,
		"height":      height,
		"pixel_ratio": sc.Renderer.PixelRatio(),
		"triangles":   earthGeo.TriangleCount() + cloudGeo.TriangleCount() + galaxyGeo.TriangleCount(),
	}).Info("scene ready")

	return sc, nil

}

func newGeometries(earthRadius, cloudRadius, galaxyRadius float64) (earth, cloud, galaxy *globe.Geometry, err error) {
	if cloudRadius <= earthRadius {
		return nil, nil, nil, fmt.Errorf("%w: cloud %v, earth %v", ErrGeometryOrder, cloudRadius, earthRadius)
	}
	earth = globe.NewSphereGeometry(earthRadius, Segments, Segments)
	cloud = globe.NewSphereGeometry(cloudRadius, Segments, Segments)
	galaxy = globe.NewSphereGeometry(galaxyRadius, Segments, Segments)
	return earth, cloud, galaxy, nil
}

func logTexture(tex *globe.Texture) {
	entry := logger.Log.WithField("texture", tex.Name)
	if err := tex.Err(); err != nil {
		entry.WithError(err).Warn("texture failed to load; surface stays untextured")
		return
	}
	w, h := tex.Size()
	entry.WithFields(logrus.Fields{"width": w, "height": h}).Debug("texture loaded")
}

func (sc *SceneContext) pixelRatio() float64 {
	ratio := sc.window.DevicePixelRatio()
	if sc.MaxPixelRatio > 0 {
		ratio = math.Min(ratio, sc.MaxPixelRatio)
	}
	return ratio
}

// Resize reads the window's size again and updates the camera's aspect ratio and the renderer's size and pixel
// ratio to match. A non-positive size (a minimized window, for example) leaves everything untouched and returns an
// error wrapping ErrInvalidViewport.
func (sc *SceneContext) Resize() error {

	width, height := sc.window.InnerSize()
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidViewport, width, height)
	}

	sc.Sizes = Sizes{Width: width, Height: height}

	sc.Camera.Aspect = float64(width) / float64(height)
	sc.Camera.UpdateProjectionMatrix()

	if err := sc.Renderer.SetSize(width, height); err != nil {
		return err
	}
	sc.Renderer.SetPixelRatio(sc.pixelRatio())

	sc.Controls.SetViewportHeight(height)

	return nil

}

// ApplyConfig applies the settings that can change while the program runs: rotation rates, light intensities, and
// the controls' damping.
func (sc *SceneContext) ApplyConfig(cfg *config.Config) {
	sc.Rates = RotationRates{
		Earth:  cfg.Rotation.Earth,
		Cloud:  cfg.Rotation.Cloud,
		Galaxy: cfg.Rotation.Galaxy,
	}
	sc.Ambient.Intensity = cfg.Lights.AmbientIntensity
	sc.Point.Intensity = cfg.Lights.PointIntensity
	sc.Controls.EnableDamping = cfg.Controls.Damping
	sc.Controls.DampingFactor = cfg.Controls.DampingFactor
}

// TextureStatus summarizes the state of the scene's textures, like "3 ready, 1 failed".
func (sc *SceneContext) TextureStatus() string {
	counts := map[globe.TextureState]int{}
	for _, tex := range sc.Loader.Textures() {
		counts[tex.State()]++
	}
	status := fmt.Sprintf("%d ready", counts[globe.TextureReady])
	if n := counts[globe.TextureLoading]; n > 0 {
		status += fmt.Sprintf(", %d loading", n)
	}
	if n := counts[globe.TextureFailed]; n > 0 {
		status += fmt.Sprintf(", %d failed", n)
	}
	return status
}
