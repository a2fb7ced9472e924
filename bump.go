package globe

import (
	"image"

	xdraw "golang.org/x/image/draw"
)

// BakeBumpRelief returns a copy of the diffuse image shaded by the height gradient of the bump image, which approximates
// bump mapping for a renderer that only lights per vertex. The bump image is resampled to the diffuse image's size first.
// Heights are taken from the bump image's luminance; light is assumed to come from the top-left of texture space, and
// scale controls how strong the relief is (0 leaves the diffuse image unchanged). Columns wrap horizontally, as
// equirectangular maps do.
func BakeBumpRelief(diffuse, bump image.Image, scale float64) *image.NRGBA {

	bounds := diffuse.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	heights := image.NewGray(image.Rect(0, 0, w, h))
	xdraw.BiLinear.Scale(heights, heights.Bounds(), bump, bump.Bounds(), xdraw.Src, nil)

	// Work on flat NRGBA pixels rather than going through At for every texel.
	out := image.NewNRGBA(image.Rect(0, 0, w, h))
	xdraw.Draw(out, out.Bounds(), diffuse, bounds.Min, xdraw.Src)

	height := func(x, y int) float64 {
		x = (x + w) % w
		y = min(max(y, 0), h-1)
		return float64(heights.GrayAt(x, y).Y) / 255
	}

	for y := 0; y < h; y++ {

		for x := 0; x < w; x++ {

			dx := height(x+1, y) - height(x-1, y)
			dy := height(x, y+1) - height(x, y-1)

			shade := clamp(1-scale*(dx+dy), 0, 2)

			i := out.PixOffset(x, y)
			pix := out.Pix[i : i+3 : i+3]
			pix[0] = shadeChannel(pix[0], shade)
			pix[1] = shadeChannel(pix[1], shade)
			pix[2] = shadeChannel(pix[2], shade)

		}

	}

	return out

}

func shadeChannel(value uint8, shade float64) uint8 {
	return uint8(clamp(float64(value)*shade, 0, 255))
}
