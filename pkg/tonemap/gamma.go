package tonemap

import (
	"image"
	"image/color"
	"math"

	"github.com/rayforge/raytracer/pkg/core"
)

// GammaEncode applies power-law gamma encoding (c^(1/gamma)) and clamps to
// [0,1] (spec.md §4.7's "then gamma or sRGB encode").
func GammaEncode(c core.Vec3, gamma float64) core.Vec3 {
	if gamma <= 0 {
		gamma = 2.2
	}
	return c.Clamp(0, 1).GammaCorrect(gamma)
}

// SRGBEncode applies the piecewise sRGB OETF instead of a flat power curve.
func SRGBEncode(c core.Vec3) core.Vec3 {
	c = c.Clamp(0, 1)
	return core.NewVec3(srgbChannel(c.X), srgbChannel(c.Y), srgbChannel(c.Z))
}

func srgbChannel(x float64) float64 {
	if x <= 0.0031308 {
		return 12.92 * x
	}
	return 1.055*math.Pow(x, 1/2.4) - 0.055
}

// ToRGBA quantizes a slice of gamma-encoded [0,1] colors into an 8-bit RGBA
// image (spec.md §6's PNG output).
func ToRGBA(encoded []core.Vec3, width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for i, c := range encoded {
		x, y := i%width, i/width
		img.SetRGBA(x, y, color.RGBA{
			R: uint8(math.Round(c.X * 255)),
			G: uint8(math.Round(c.Y * 255)),
			B: uint8(math.Round(c.Z * 255)),
			A: 255,
		})
	}
	return img
}
