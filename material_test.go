package globe

import (
	"errors"
	"image"
	"image/color"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func slopedBump(size int) *image.Gray {
	bump := image.NewGray(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			bump.SetGray(x, y, color.Gray{uint8(y * 30)})
		}
	}
	return bump
}

func waitForRelief(t *testing.T, mat *Material) {
	t.Helper()
	require.NotNil(t, mat.reliefReady, "relief baking never started")
	select {
	case <-mat.reliefReady:
	case <-time.After(5 * time.Second):
		t.Fatal("relief never finished baking")
	}
}

func TestSurfaceWithoutTexture(t *testing.T) {

	mat := NewMaterial("plain")
	src, kind := mat.surfaceSource()
	assert.Nil(t, src)
	assert.Equal(t, surfaceNone, kind)

	// A diffuse texture that's still loading isn't used yet.
	mat.Map = newTexture("loading")
	src, kind = mat.surfaceSource()
	assert.Nil(t, src)
	assert.Equal(t, surfaceNone, kind)

}

func TestSurfaceWithoutBumpMap(t *testing.T) {

	diffuse := filledImage(8, 8, color.NRGBA{100, 100, 100, 255})

	mat := NewMaterial("diffuse")
	mat.Map = NewTextureFromImage("diffuse", diffuse)

	src, kind := mat.surfaceSource()
	assert.Same(t, diffuse, src)
	assert.Equal(t, surfaceDiffuse, kind)
	assert.Nil(t, mat.reliefReady)

}

func TestSurfaceWaitsForBumpMap(t *testing.T) {

	diffuse := filledImage(8, 8, color.NRGBA{100, 100, 100, 255})

	mat := NewMaterial("earth")
	mat.Map = NewTextureFromImage("diffuse", diffuse)
	mat.BumpMap = newTexture("bump")
	mat.BumpScale = 1

	// The plain diffuse texture stands in while the bump map loads.
	src, kind := mat.surfaceSource()
	assert.Same(t, diffuse, src)
	assert.Equal(t, surfaceReliefPending, kind)

	mat.BumpMap.resolve(slopedBump(8), nil)
	waitForRelief(t, mat)

	src, kind = mat.surfaceSource()
	require.Equal(t, surfaceRelief, kind)
	assert.NotSame(t, diffuse, src)
	assert.Equal(t, diffuse.Bounds(), src.Bounds())
	assert.Equal(t, BakeBumpRelief(diffuse, slopedBump(8), 1).Pix, src.(*image.NRGBA).Pix)

	// Later calls keep returning the same baked image.
	again, _ := mat.surfaceSource()
	assert.Same(t, src, again)

}

func TestSurfaceWithFailedBumpMap(t *testing.T) {

	diffuse := filledImage(8, 8, color.NRGBA{100, 100, 100, 255})

	mat := NewMaterial("earth")
	mat.Map = NewTextureFromImage("diffuse", diffuse)
	mat.BumpMap = newTexture("bump")
	mat.BumpMap.resolve(nil, errors.New("missing"))

	src, kind := mat.surfaceSource()
	assert.Same(t, diffuse, src)
	assert.Equal(t, surfaceDiffuse, kind)
	assert.Nil(t, mat.reliefReady, "nothing to bake")

}

func TestSurfaceBumpMapFailsWhileBaking(t *testing.T) {

	diffuse := filledImage(8, 8, color.NRGBA{100, 100, 100, 255})

	mat := NewMaterial("earth")
	mat.Map = NewTextureFromImage("diffuse", diffuse)
	mat.BumpMap = newTexture("bump")

	_, kind := mat.surfaceSource()
	assert.Equal(t, surfaceReliefPending, kind)

	mat.BumpMap.resolve(nil, errors.New("corrupt"))
	waitForRelief(t, mat)

	src, kind := mat.surfaceSource()
	assert.Same(t, diffuse, src)
	assert.Equal(t, surfaceDiffuse, kind)

}
