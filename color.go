package slides3d

import (
	"fmt"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// A Color represents a color, containing R, G, B, and A components, each expected to range from 0 to 1.
type Color struct {
	R, G, B, A float32
}

// NewColor returns a new Color, with the provided R, G, B, and A components expected to range from 0 to 1.
func NewColor(r, g, b, a float32) Color {
	return Color{r, g, b, a}
}

// NewColorFromHexString parses a CSS-style hex string ("#cec298" or "#fff") into an opaque Color.
func NewColorFromHexString(hex string) (Color, error) {

	c, err := colorful.Hex(hex)
	if err != nil {
		return Color{}, fmt.Errorf("parsing color %q: %w", hex, err)
	}

	return NewColor(float32(c.R), float32(c.G), float32(c.B), 1), nil

}

// Hex returns the Color as a "#rrggbb" string, dropping alpha.
func (c Color) Hex() string {
	return colorful.Color{R: float64(c.R), G: float64(c.G), B: float64(c.B)}.Clamped().Hex()
}

// RGBA64 returns the color components as float64s.
func (c Color) RGBA64() (float64, float64, float64, float64) {
	return float64(c.R), float64(c.G), float64(c.B), float64(c.A)
}

// ToNRGBA64 converts the Color to a standard library color.
func (c Color) ToNRGBA64() color.NRGBA64 {
	return color.NRGBA64{
		R: uint16(clamp(float64(c.R), 0, 1) * 65535),
		G: uint16(clamp(float64(c.G), 0, 1) * 65535),
		B: uint16(clamp(float64(c.B), 0, 1) * 65535),
		A: uint16(clamp(float64(c.A), 0, 1) * 65535),
	}
}
