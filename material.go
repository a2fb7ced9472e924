package globe

import (
	"image"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
)

// ShadingModel indicates how a Material reacts to the Scene's lights.
type ShadingModel int

const (
	// ShadingPhong shades the surface with ambient, diffuse (Lambert), and specular (Blinn-Phong) lighting.
	ShadingPhong ShadingModel = iota
	// ShadingBasic ignores all lights; the surface is drawn with its color and texture as-is.
	ShadingBasic
)

func (model ShadingModel) String() string {
	if model == ShadingBasic {
		return "basic"
	}
	return "phong"
}

// Side indicates which faces of a Mesh's triangles are rendered.
type Side int

const (
	SideFront  Side = iota // Only faces pointing towards the camera are rendered (the default).
	SideBack               // Only faces pointing away from the camera are rendered; useful for viewing a sphere from the inside.
	SideDouble             // Both sides are rendered.
)

// Material describes the surface of a Mesh: its color, textures, and how lighting affects it.
type Material struct {
	Name         string
	ShadingModel ShadingModel
	Side         Side
	Color        Color // The overall color of the Material, multiplied with the texture.

	Map       *Texture // The diffuse (color) texture. If nil or not yet loaded, only Color is used.
	BumpMap   *Texture // A height texture used to add relief to the diffuse texture.
	BumpScale float64  // How strongly the BumpMap affects the surface.

	Roughness float64 // Surface roughness from 0 (mirror-like) to 1 (fully diffuse); dampens specular highlights.
	Metalness float64 // Surface metalness from 0 to 1; moves the specular highlight color towards white.
	Shininess float64 // Specular exponent for Phong shading.
	Specular  Color   // Specular highlight color for Phong shading.

	// If a material is tagged as transparent, it's rendered in a separate render pass, after all
	// non-transparent materials, blending with what is already drawn.
	Transparent bool
	Opacity     float64

	surface    *ebiten.Image
	surfaceSrc image.Image

	reliefOnce  sync.Once
	reliefMu    sync.Mutex
	relief      image.Image
	reliefReady chan struct{} // Closed once the relief bake has finished or given up.
}

// NewMaterial creates a new Phong Material with the name given, using the same defaults as a freshly created
// standard material: white, front-facing, fully opaque.
func NewMaterial(name string) *Material {
	return &Material{
		Name:         name,
		ShadingModel: ShadingPhong,
		Side:         SideFront,
		Color:        NewColor(1, 1, 1, 1),
		BumpScale:    1,
		Roughness:    1,
		Metalness:    0,
		Shininess:    30,
		Specular:     NewColorFromHexInt(0x111111),
		Opacity:      1,
	}
}

// NewBasicMaterial creates a new unlit Material with the name given.
func NewBasicMaterial(name string) *Material {
	mat := NewMaterial(name)
	mat.ShadingModel = ShadingBasic
	return mat
}

// Lit returns true if the Material is affected by lights.
func (material *Material) Lit() bool {
	return material.ShadingModel != ShadingBasic
}

// surfaceKind describes which image a Material's triangles are currently textured with.
type surfaceKind int

const (
	surfaceNone          surfaceKind = iota // No texture (none set, or not loaded yet).
	surfaceDiffuse                          // The plain diffuse texture, final.
	surfaceReliefPending                    // The plain diffuse texture while the relief is still being baked.
	surfaceRelief                           // The diffuse texture with the bump map's relief baked in.
)

// surfaceSource picks the image to texture the Material's triangles with right now. It never bakes on the calling
// goroutine; once the diffuse texture is ready and a bump map is set, baking starts in the background and the plain
// diffuse texture is used until it's done. A bump map that fails to load leaves the plain diffuse texture in place.
func (material *Material) surfaceSource() (image.Image, surfaceKind) {

	if material.Map == nil {
		return nil, surfaceNone
	}

	diffuse, err := material.Map.Image()
	if err != nil {
		return nil, surfaceNone
	}

	if material.BumpMap == nil || material.BumpMap.State() == TextureFailed {
		return diffuse, surfaceDiffuse
	}

	material.reliefOnce.Do(material.bakeRelief)

	material.reliefMu.Lock()
	relief := material.relief
	material.reliefMu.Unlock()

	if relief != nil {
		return relief, surfaceRelief
	}

	return diffuse, surfaceReliefPending

}

// bakeRelief bakes the bump map into the diffuse texture on its own goroutine, once both have resolved.
func (material *Material) bakeRelief() {

	material.reliefReady = make(chan struct{})

	diffuseTex, bumpTex, scale := material.Map, material.BumpMap, material.BumpScale

	go func() {

		defer close(material.reliefReady)

		<-diffuseTex.Ready()
		<-bumpTex.Ready()

		diffuse, err := diffuseTex.Image()
		if err != nil {
			return
		}
		bump, err := bumpTex.Image()
		if err != nil {
			return
		}

		relief := BakeBumpRelief(diffuse, bump, scale)

		material.reliefMu.Lock()
		material.relief = relief
		material.reliefMu.Unlock()

	}()

}

// surfaceImage returns the surface picked by surfaceSource uploaded to the GPU, or nil if there's none yet. Uploads
// happen only when the source changes. This should only be called from the game (rendering) goroutine.
func (material *Material) surfaceImage() *ebiten.Image {

	src, kind := material.surfaceSource()

	switch {
	case kind == surfaceNone:
		return nil
	case src == material.surfaceSrc:
		return material.surface
	case kind == surfaceRelief:
		material.surface = ebiten.NewImageFromImage(src)
	default:
		material.surface = material.Map.ebitenImage()
	}

	material.surfaceSrc = src

	return material.surface

}
