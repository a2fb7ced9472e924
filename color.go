package globe

import (
	"image/color"
	"math"
)

// A Color represents a color, containing R, G, B, and A components, each expected to range from 0 to 1.
type Color struct {
	R, G, B, A float32
}

// NewColor returns a new Color, with the provided R, G, B, and A components expected to range from 0 to 1.
func NewColor(r, g, b, a float32) Color {
	return Color{r, g, b, a}
}

// NewColorFromHexInt returns a new, opaque Color from a 0xRRGGBB integer, the way colors are commonly written in code.
func NewColorFromHexInt(hex uint32) Color {
	return NewColor(
		float32((hex>>16)&0xff)/255,
		float32((hex>>8)&0xff)/255,
		float32(hex&0xff)/255,
		1,
	)
}

// Multiply returns a copy of the Color with each component multiplied by the other Color's components.
func (c Color) Multiply(other Color) Color {
	c.R *= other.R
	c.G *= other.G
	c.B *= other.B
	c.A *= other.A
	return c
}

// ScaleRGB returns a copy of the Color with the R, G, and B components multiplied by the scalar given.
func (c Color) ScaleRGB(scalar float32) Color {
	c.R *= scalar
	c.G *= scalar
	c.B *= scalar
	return c
}

// AddRGB returns a copy of the Color with the R, G, and B components of the other Color added to it.
func (c Color) AddRGB(other Color) Color {
	c.R += other.R
	c.G += other.G
	c.B += other.B
	return c
}

// Clamped returns a copy of the Color with all components clamped between 0 and 1.
func (c Color) Clamped() Color {
	c.R = clamp32(c.R)
	c.G = clamp32(c.G)
	c.B = clamp32(c.B)
	c.A = clamp32(c.A)
	return c
}

// ToNRGBA64 converts the Color to a color.NRGBA64.
func (c Color) ToNRGBA64() color.NRGBA64 {
	c = c.Clamped()
	return color.NRGBA64{
		uint16(math.Round(float64(c.R) * math.MaxUint16)),
		uint16(math.Round(float64(c.G) * math.MaxUint16)),
		uint16(math.Round(float64(c.B) * math.MaxUint16)),
		uint16(math.Round(float64(c.A) * math.MaxUint16)),
	}
}

func clamp32(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
