package globe

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func filledImage(w, h int, c color.Color) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func TestBakeBumpReliefFlatBumpKeepsDiffuse(t *testing.T) {

	diffuse := filledImage(8, 4, color.NRGBA{100, 150, 200, 255})
	bump := filledImage(2, 2, color.Gray{128})

	out := BakeBumpRelief(diffuse, bump, 0.3)

	assert.Equal(t, diffuse.Bounds(), out.Bounds())
	assert.Equal(t, diffuse.Pix, out.Pix)

}

func TestBakeBumpReliefZeroScaleKeepsDiffuse(t *testing.T) {

	diffuse := filledImage(8, 8, color.NRGBA{10, 20, 30, 255})
	bump := image.NewGray(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			bump.SetGray(x, y, color.Gray{uint8(x * 30)})
		}
	}

	out := BakeBumpRelief(diffuse, bump, 0)

	assert.Equal(t, diffuse.Pix, out.Pix)

}

func TestBakeBumpReliefSlopesShade(t *testing.T) {

	diffuse := filledImage(8, 8, color.NRGBA{100, 100, 100, 255})

	// Height rises towards +Y (down the texture); slopes facing the top-left light are brighter, the others darker.
	bump := image.NewGray(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			bump.SetGray(x, y, color.Gray{uint8(y * 30)})
		}
	}

	out := BakeBumpRelief(diffuse, bump, 1)

	mid := out.NRGBAAt(4, 4)
	assert.Less(t, mid.R, uint8(100))
	assert.Equal(t, uint8(255), mid.A)

	bump = image.NewGray(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			bump.SetGray(x, y, color.Gray{uint8(210 - y*30)})
		}
	}

	out = BakeBumpRelief(diffuse, bump, 1)
	assert.Greater(t, out.NRGBAAt(4, 4).R, uint8(100))

}
