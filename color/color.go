// Package color holds linear RGB colors.  Components are nominally in [0, 1]
// but are not clamped until a color is written out.
package color

import (
	"math"
)

type RGB struct {
	R, G, B float64
}

var (
	Black = RGB{0, 0, 0}
	White = RGB{1, 1, 1}
)

func Add(a, b RGB) RGB {
	return RGB{a.R + b.R, a.G + b.G, a.B + b.B}
}

func Sub(a, b RGB) RGB {
	return RGB{a.R - b.R, a.G - b.G, a.B - b.B}
}

func MulCS(a RGB, s float64) RGB {
	return RGB{a.R * s, a.G * s, a.B * s}
}

// Hadamard multiplies component-wise, blending a surface color with a light.
func Hadamard(a, b RGB) RGB {
	return RGB{a.R * b.R, a.G * b.G, a.B * b.B}
}

// Round rounds each component to 5 decimal places.
func (c RGB) Round() RGB {
	return RGB{round5(c.R), round5(c.G), round5(c.B)}
}

// Bytes scales each component to 0..255, clamping out-of-range values.
func (c RGB) Bytes() (r, g, b uint8) {
	return toByte(c.R), toByte(c.G), toByte(c.B)
}

func toByte(v float64) uint8 {
	x := math.Round(v * 255)
	if x < 0 {
		return 0
	}
	if x > 255 {
		return 255
	}
	return uint8(x)
}

func round5(x float64) float64 {
	r := math.Round(x*1e5) / 1e5
	if r == 0 {
		return 0
	}
	return r
}
