package globe

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io/fs"
	"sync"

	// Decoders for the supported texture formats.
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"

	"github.com/hajimehoshi/ebiten/v2"
)

// ErrTextureNotReady is returned when a Texture's image is requested before it has finished decoding.
var ErrTextureNotReady = errors.New("texture not ready")

// TextureState indicates where a Texture is in its loading lifecycle.
type TextureState int

const (
	TextureLoading TextureState = iota // The Texture is still being read or decoded.
	TextureReady                       // The Texture decoded successfully and its image is available.
	TextureFailed                      // The Texture couldn't be read or decoded; Err() holds the reason.
)

func (state TextureState) String() string {
	switch state {
	case TextureLoading:
		return "loading"
	case TextureReady:
		return "ready"
	case TextureFailed:
		return "failed"
	}
	return "unknown"
}

// Texture is a handle to a decoded image that can be sampled by a Material. A Texture can be referenced by Materials
// immediately after it's requested; until it resolves, Materials using it render without it.
type Texture struct {
	Name string

	mu     sync.RWMutex
	state  TextureState
	img    image.Image
	gpuImg *ebiten.Image
	err    error
	ready  chan struct{}
}

func newTexture(name string) *Texture {
	return &Texture{
		Name:  name,
		ready: make(chan struct{}),
	}
}

// NewTextureFromImage returns a Texture that is already resolved with the image provided.
func NewTextureFromImage(name string, img image.Image) *Texture {
	tex := newTexture(name)
	tex.resolve(img, nil)
	return tex
}

// resolve publishes the decoding result. It must only be called once per Texture.
func (tex *Texture) resolve(img image.Image, err error) {
	tex.mu.Lock()
	if err != nil {
		tex.state = TextureFailed
		tex.err = err
	} else {
		tex.state = TextureReady
		tex.img = img
	}
	tex.mu.Unlock()
	close(tex.ready)
}

// Ready returns a channel that is closed once the Texture has resolved, either successfully or with an error.
func (tex *Texture) Ready() <-chan struct{} {
	return tex.ready
}

// State returns the Texture's current loading state.
func (tex *Texture) State() TextureState {
	tex.mu.RLock()
	defer tex.mu.RUnlock()
	return tex.state
}

// Resolved returns true if the Texture has finished loading, successfully or not.
func (tex *Texture) Resolved() bool {
	return tex.State() != TextureLoading
}

// Err returns the error that caused the Texture to fail to load, if any.
func (tex *Texture) Err() error {
	tex.mu.RLock()
	defer tex.mu.RUnlock()
	return tex.err
}

// Image returns the Texture's decoded image. If the Texture isn't ready, ErrTextureNotReady (or the load error) is returned.
func (tex *Texture) Image() (image.Image, error) {
	tex.mu.RLock()
	defer tex.mu.RUnlock()
	switch tex.state {
	case TextureReady:
		return tex.img, nil
	case TextureFailed:
		return nil, tex.err
	}
	return nil, ErrTextureNotReady
}

// Size returns the size of the Texture's decoded image, or 0, 0 if it isn't ready.
func (tex *Texture) Size() (int, int) {
	img, err := tex.Image()
	if err != nil {
		return 0, 0
	}
	return img.Bounds().Dx(), img.Bounds().Dy()
}

// ebitenImage returns the Texture's image uploaded as an *ebiten.Image, creating it on first use. It returns nil
// if the Texture isn't ready. This should only be called from the game (rendering) goroutine.
func (tex *Texture) ebitenImage() *ebiten.Image {
	tex.mu.Lock()
	defer tex.mu.Unlock()
	if tex.state != TextureReady {
		return nil
	}
	if tex.gpuImg == nil {
		tex.gpuImg = ebiten.NewImageFromImage(tex.img)
	}
	return tex.gpuImg
}

// TextureLoader loads Textures asynchronously from a file system. Each call to Load returns immediately with a Texture
// handle; the file is read and decoded on its own goroutine.
type TextureLoader struct {
	fsys     fs.FS
	mu       sync.Mutex
	textures []*Texture
	wg       sync.WaitGroup

	// OnResolve, if set, is called from the loading goroutine once a Texture has resolved.
	OnResolve func(tex *Texture)
}

// NewTextureLoader creates a new TextureLoader reading from the provided file system.
func NewTextureLoader(fsys fs.FS) *TextureLoader {
	return &TextureLoader{fsys: fsys}
}

// Load begins loading the texture at the path given and returns its handle immediately.
func (loader *TextureLoader) Load(path string) *Texture {

	tex := newTexture(path)

	loader.mu.Lock()
	loader.textures = append(loader.textures, tex)
	loader.mu.Unlock()

	loader.wg.Add(1)

	go func() {
		defer loader.wg.Done()
		tex.resolve(loader.decode(path))
		if loader.OnResolve != nil {
			loader.OnResolve(tex)
		}
	}()

	return tex

}

func (loader *TextureLoader) decode(path string) (image.Image, error) {

	file, err := loader.fsys.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening texture %s: %w", path, err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("decoding texture %s: %w", path, err)
	}

	return img, nil

}

// Textures returns all Textures requested through the loader so far.
func (loader *TextureLoader) Textures() []*Texture {
	loader.mu.Lock()
	defer loader.mu.Unlock()
	return append([]*Texture(nil), loader.textures...)
}

// Pending returns the number of Textures that haven't resolved yet.
func (loader *TextureLoader) Pending() int {
	pending := 0
	for _, tex := range loader.Textures() {
		if !tex.Resolved() {
			pending++
		}
	}
	return pending
}

// Wait blocks until every Texture requested so far has resolved, or the context is done. It returns the load
// errors of all failed Textures joined together, or the context's error if it ended first.
func (loader *TextureLoader) Wait(ctx context.Context) error {

	done := make(chan struct{})

	go func() {
		loader.wg.Wait()
		close(done)
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-done:
	}

	var errs []error
	for _, tex := range loader.Textures() {
		if err := tex.Err(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)

}
