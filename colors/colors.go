package colors

// package colors contains functions to quickly and easily generate globe.Color instances by name (i.e. "White()", "Black()", etc),
// as well as from the "#rrggbb" strings used in configuration files.

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/solarlune/globe"
)

// ErrInvalidHex is returned when a hex color string can't be parsed.
var ErrInvalidHex = errors.New("invalid hex color")

// Transparent generates a globe.Color instance of the provided name.
func Transparent() globe.Color {
	return globe.NewColor(0, 0, 0, 0)
}

// White generates a globe.Color instance of the provided name.
func White() globe.Color {
	return globe.NewColor(1, 1, 1, 1)
}

// Black generates a globe.Color instance of the provided name.
func Black() globe.Color {
	return globe.NewColor(0, 0, 0, 1)
}

// Gray generates a globe.Color instance of the provided name.
func Gray() globe.Color {
	return globe.NewColor(0.5, 0.5, 0.5, 1)
}

// LightGray generates a globe.Color instance of the provided name.
func LightGray() globe.Color {
	return globe.NewColor(0.8, 0.8, 0.8, 1)
}

// DarkGray generates a globe.Color instance of the provided name.
func DarkGray() globe.Color {
	return globe.NewColor(0.2, 0.2, 0.2, 1)
}

// Yellow generates a globe.Color instance of the provided name.
func Yellow() globe.Color {
	return globe.NewColor(1, 1, 0, 1)
}

// SkyBlue generates a globe.Color instance of the provided name.
func SkyBlue() globe.Color {
	return globe.NewColor(0.5, 0.75, 1, 1)
}

// PaleRed generates a globe.Color instance of the provided name.
func PaleRed() globe.Color {
	return globe.NewColor(0.678, 0.172, 0.384, 1)
}

// FromHex parses a "#rrggbb" or "#rrggbbaa" string (the leading # and "0x" are optional) into a globe.Color.
func FromHex(hex string) (globe.Color, error) {

	digits := strings.TrimPrefix(strings.TrimPrefix(strings.TrimSpace(hex), "#"), "0x")

	if len(digits) != 6 && len(digits) != 8 {
		return globe.Color{}, fmt.Errorf("%w: %q", ErrInvalidHex, hex)
	}

	if len(digits) == 6 {
		digits += "ff"
	}

	value, err := strconv.ParseUint(digits, 16, 32)
	if err != nil {
		return globe.Color{}, fmt.Errorf("%w: %q", ErrInvalidHex, hex)
	}

	return globe.NewColor(
		float32((value>>24)&0xff)/255,
		float32((value>>16)&0xff)/255,
		float32((value>>8)&0xff)/255,
		float32(value&0xff)/255,
	), nil

}
