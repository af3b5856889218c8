// Package srgb implements the sRGB transfer functions.
//
package srgb

import (
	"image/color"
	"math"
)

// Transfer function constants. The GLSL shaders use the same values.
//
const (
	// Threshold is the linear value below which the encoding is linear.
	Threshold = 0.0031308
	// DecodeThreshold is Threshold mapped to encoded space.
	DecodeThreshold = 0.04045

	Slope  = 12.92
	Scale  = 1.055
	Offset = 0.055
	Gamma  = 2.4
)

// Encode maps a linear channel value c in [0, 1] to its sRGB encoded value.
//
func Encode(c float64) float64 {
	if c <= Threshold {
		return Slope * c
	}
	return Scale*math.Pow(c, 1/Gamma) - Offset
}

// Decode is the inverse of Encode.
//
func Decode(c float64) float64 {
	if c <= DecodeThreshold {
		return c / Slope
	}
	return math.Pow((c+Offset)/Scale, Gamma)
}

// Encode8 encodes an 8 bit linear channel value.
//
func Encode8(c uint8) uint8 {
	return quantize(Encode(float64(c) / 255))
}

// Decode8 decodes an 8 bit sRGB channel value.
//
func Decode8(c uint8) uint8 {
	return quantize(Decode(float64(c) / 255))
}

// EncodeColor encodes the color channels of c. Alpha is left unchanged.
//
func EncodeColor(c color.Color) color.NRGBA {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return color.NRGBA{R: Encode8(n.R), G: Encode8(n.G), B: Encode8(n.B), A: n.A}
}

func quantize(v float64) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 1:
		return 255
	}
	return uint8(math.Round(v * 255))
}
