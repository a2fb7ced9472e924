package globe

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"
	"sort"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// MaxTriangleCount is the maximum number of triangles drawn with a single DrawTriangles call; larger Meshes are split
// into several draw calls.
const MaxTriangleCount = 21845

// ErrInvalidSize is returned when a Renderer is given a non-positive width or height.
var ErrInvalidSize = errors.New("invalid renderer size")

// RenderStats is a struct that holds debugging information for a Renderer's last render pass.
type RenderStats struct {
	FrameTime time.Duration // Amount of CPU frame time spent transforming vertices and calling Image.DrawTriangles.
	DrawCalls int           // Number of DrawTriangles calls
	DrawnTris int           // Number of drawn triangles, excluding those culled or behind the camera
	TotalTris int           // Total number of triangles
	Frames    int           // Total number of frames rendered
}

// renderBatch is a run of sorted vertices drawn with a single DrawTriangles call.
type renderBatch struct {
	mesh     *Mesh
	image    *ebiten.Image // nil for untextured Materials
	vertices []ebiten.Vertex
	indices  []uint16
}

// Renderer draws a Scene from the point of view of a Camera onto an offscreen canvas, transforming and lighting
// vertices on the CPU and rasterizing them through Ebitengine. Triangles are sorted back to front rather than
// depth-tested; opaque Meshes draw first, furthest first, and transparent Meshes draw afterwards.
type Renderer struct {
	// Alpha indicates the canvas is cleared to transparent, letting what's behind it show through. Otherwise, the
	// canvas is cleared to ClearColor.
	Alpha      bool
	ClearColor Color
	Stats      RenderStats

	width, height int
	pixelRatio    float64

	canvas     *ebiten.Image
	whiteImage *ebiten.Image

	bucket  *sortingTriangleBucket
	clip    []Vector
	colors  []Color
	batches []renderBatch
}

// NewRenderer creates a new Renderer. The Renderer starts at 1x1 pixels with a pixel ratio of 1; call SetSize and
// SetPixelRatio to size it. alpha controls whether the canvas is cleared to transparent.
func NewRenderer(alpha bool) *Renderer {
	return &Renderer{
		Alpha:      alpha,
		ClearColor: NewColor(0, 0, 0, 1),
		width:      1,
		height:     1,
		pixelRatio: 1,
		bucket:     newSortingTriangleBucket(512),
	}
}

// SetSize sets the logical size of the Renderer's output. The canvas is resized on the next call to Render.
func (r *Renderer) SetSize(w, h int) error {
	if w <= 0 || h <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidSize, w, h)
	}
	r.width = w
	r.height = h
	return nil
}

// Size returns the logical size of the Renderer's output.
func (r *Renderer) Size() (w, h int) {
	return r.width, r.height
}

// SetPixelRatio sets the number of device pixels per logical pixel. Non-positive ratios reset it to 1.
func (r *Renderer) SetPixelRatio(ratio float64) {
	if ratio <= 0 || math.IsNaN(ratio) || math.IsInf(ratio, 0) {
		ratio = 1
	}
	r.pixelRatio = ratio
}

// PixelRatio returns the number of device pixels per logical pixel.
func (r *Renderer) PixelRatio() float64 {
	return r.pixelRatio
}

// DrawingBufferSize returns the size of the canvas in device pixels.
func (r *Renderer) DrawingBufferSize() (w, h int) {
	w = max(1, int(math.Floor(float64(r.width)*r.pixelRatio)))
	h = max(1, int(math.Floor(float64(r.height)*r.pixelRatio)))
	return w, h
}

// Canvas returns the image the Renderer draws to. It is nil until the first call to Render.
func (r *Renderer) Canvas() *ebiten.Image {
	return r.canvas
}

// Render draws the Scene from the Camera onto the Renderer's canvas.
func (r *Renderer) Render(scene *Scene, camera *Camera) {

	start := time.Now()

	r.ensureCanvas()

	if r.Alpha {
		r.canvas.Clear()
	} else {
		clearColor := r.ClearColor
		clearColor.A = 1
		r.canvas.Fill(clearColor.ToNRGBA64())
	}

	for _, batch := range r.prepare(scene, camera) {

		opt := &ebiten.DrawTrianglesOptions{}

		img := batch.image
		if img == nil {
			img = r.untexturedImage()
		} else {
			opt.Filter = ebiten.FilterLinear
		}

		r.canvas.DrawTriangles(batch.vertices, batch.indices, img, opt)
		r.Stats.DrawCalls++

	}

	r.Stats.Frames++
	r.Stats.FrameTime = time.Since(start)

}

func (r *Renderer) ensureCanvas() {
	w, h := r.DrawingBufferSize()
	if r.canvas != nil {
		if size := r.canvas.Bounds().Size(); size.X == w && size.Y == h {
			return
		}
		r.canvas.Deallocate()
	}
	r.canvas = ebiten.NewImage(w, h)
}

// untexturedImage returns a white image to draw untextured triangles with; a sub-image is used so that sampling
// never bleeds past its edges.
func (r *Renderer) untexturedImage() *ebiten.Image {
	if r.whiteImage == nil {
		img := ebiten.NewImage(3, 3)
		img.Fill(color.White)
		r.whiteImage = img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	}
	return r.whiteImage
}

// prepare transforms, lights, culls, and sorts the Scene's triangles, returning the batches to draw in order.
// It doesn't touch the canvas, so it can run before a graphics context exists.
func (r *Renderer) prepare(scene *Scene, camera *Camera) []renderBatch {

	r.Stats.DrawCalls = 0
	r.Stats.DrawnTris = 0
	r.Stats.TotalTris = 0
	r.batches = r.batches[:0]

	if scene == nil || camera == nil {
		return r.batches
	}

	bufferW, bufferH := r.DrawingBufferSize()
	viewProjection := camera.ViewProjectionMatrix()
	cameraPos := camera.WorldPosition()

	lights := []ILight{}
	for _, light := range scene.Lights() {
		if light.IsOn() {
			lights = append(lights, light)
		}
	}

	solids := []*Mesh{}
	transparents := []*Mesh{}
	depths := map[*Mesh]float64{}

	for _, mesh := range scene.Meshes() {
		if !mesh.Visible || mesh.Geometry == nil || mesh.Material == nil {
			continue
		}
		// The furthest extent of a Mesh decides its order, so a backdrop enclosing other Meshes draws before them.
		depths[mesh] = mesh.WorldPosition().Distance(cameraPos) + mesh.BoundingRadius()
		if mesh.Material.Transparent {
			transparents = append(transparents, mesh)
		} else {
			solids = append(solids, mesh)
		}
	}

	for _, meshes := range [][]*Mesh{solids, transparents} {
		sort.SliceStable(meshes, func(i, j int) bool {
			return depths[meshes[i]] > depths[meshes[j]]
		})
		for _, mesh := range meshes {
			r.prepareMesh(mesh, lights, viewProjection, cameraPos, camera.Near, float64(bufferW), float64(bufferH))
		}
	}

	return r.batches

}

func (r *Renderer) prepareMesh(mesh *Mesh, lights []ILight, viewProjection Matrix4, cameraPos Vector, near, width, height float64) {

	geo := mesh.Geometry
	mat := mesh.Material

	world := mesh.WorldTransform()
	mvp := world.Mult(viewProjection)

	vertexCount := len(geo.Positions)
	if cap(r.clip) < vertexCount {
		r.clip = make([]Vector, vertexCount)
		r.colors = make([]Color, vertexCount)
	}
	r.clip = r.clip[:vertexCount]
	r.colors = r.colors[:vertexCount]

	tint := mat.Color
	tint.A *= float32(clamp(mat.Opacity, 0, 1))

	for i, pos := range geo.Positions {

		clip := mvp.MultVecW(pos)
		// Convert to screen space ahead of time; W is kept for near-plane rejection and depth sorting.
		if clip.W > 0 {
			clip.X = (clip.X/clip.W + 1) / 2 * width
			clip.Y = (1 - clip.Y/clip.W) / 2 * height
		}
		r.clip[i] = clip

		shade := NewColor(1, 1, 1, 1)
		if mat.Lit() {
			normal := world.MultDir(geo.Normals[i]).Unit()
			shade = Shade(lights, mat, world.MultVec(pos), normal, cameraPos)
		}
		r.colors[i] = shade.Multiply(tint)

	}

	r.bucket.Clear()

	triCount := len(geo.Indices) / 3
	r.Stats.TotalTris += triCount

	for t := 0; t < triCount; t++ {

		ids := [3]int{geo.Indices[t*3], geo.Indices[t*3+1], geo.Indices[t*3+2]}
		a, b, c := r.clip[ids[0]], r.clip[ids[1]], r.clip[ids[2]]

		// Triangles crossing the near plane are dropped rather than clipped.
		if a.W < near || b.W < near || c.W < near {
			continue
		}

		if (a.X < 0 && b.X < 0 && c.X < 0) || (a.X > width && b.X > width && c.X > width) ||
			(a.Y < 0 && b.Y < 0 && c.Y < 0) || (a.Y > height && b.Y > height && c.Y > height) {
			continue
		}

		// Screen space has +Y pointing down, so counter-clockwise (front) faces have a negative area here.
		area := (b.X-a.X)*(c.Y-a.Y) - (c.X-a.X)*(b.Y-a.Y)

		switch mat.Side {
		case SideFront:
			if area >= 0 {
				continue
			}
		case SideBack:
			if area <= 0 {
				continue
			}
		}

		r.bucket.AddTriangle(t, (a.W+b.W+c.W)/3, ids)

	}

	if r.bucket.IsEmpty() {
		return
	}

	r.bucket.Sort()

	img := mat.surfaceImage()

	// Source coordinates for the untextured image, which covers the pixel at 1, 1.
	texW, texH := 0.0, 0.0
	if img != nil {
		size := img.Bounds().Size()
		texW, texH = float64(size.X), float64(size.Y)
	}

	batch := renderBatch{mesh: mesh, image: img}

	r.bucket.ForEach(func(triIndex, triID int, vertexIndices [3]int) {

		if len(batch.vertices)+3 > MaxTriangleCount*3 {
			r.batches = append(r.batches, batch)
			batch = renderBatch{mesh: mesh, image: img}
		}

		for _, vi := range vertexIndices {

			clip := r.clip[vi]
			col := r.colors[vi]

			srcX, srcY := float32(1.5), float32(1.5)
			if img != nil {
				uv := geo.UVs[vi]
				srcX = float32(uv.X * texW)
				srcY = float32((1 - uv.Y) * texH)
			}

			batch.indices = append(batch.indices, uint16(len(batch.vertices)))
			batch.vertices = append(batch.vertices, ebiten.Vertex{
				DstX:   float32(clip.X),
				DstY:   float32(clip.Y),
				SrcX:   srcX,
				SrcY:   srcY,
				ColorR: col.R,
				ColorG: col.G,
				ColorB: col.B,
				ColorA: col.A,
			})

		}

		r.Stats.DrawnTris++

	})

	r.batches = append(r.batches, batch)

}
