package texture

import (
	"math"

	"github.com/rayforge/raytracer/pkg/core"
)

// WrapMode controls how out-of-[0,1) UV coordinates are resolved to pixels.
type WrapMode int

const (
	WrapRepeat WrapMode = iota
	WrapClamp
)

// FilterMode selects the pixel reconstruction filter.
type FilterMode int

const (
	FilterNearest FilterMode = iota
	FilterBilinear
)

// ImageTexture samples a decoded RGB image (loaded via pkg/loaders using
// golang.org/x/image, see SPEC_FULL.md domain stack) by (u,v). Grounded on
// the teacher's pkg/material/image_texture.go wrap/filter shape, generalized
// to the nearest/bilinear choice and Domain2D sampling spec.md §4.6 names.
type ImageTexture struct {
	Width, Height int
	Pixels        []core.Vec3 // row-major, linear color, length Width*Height
	Wrap          WrapMode
	Filter        FilterMode
}

// NewImageTexture builds a texture from decoded linear pixel data.
func NewImageTexture(width, height int, pixels []core.Vec3) *ImageTexture {
	return &ImageTexture{Width: width, Height: height, Pixels: pixels, Filter: FilterBilinear}
}

// SampleColor implements Sampler; point is unused (image textures are always
// 2D-UV domain).
func (t *ImageTexture) SampleColor(u, v float64, _ core.Vec3) core.Vec3 {
	if t.Width == 0 || t.Height == 0 {
		return core.Vec3{}
	}
	u, v = t.wrap(u), t.wrap(v)
	fx := u * float64(t.Width)
	fy := (1 - v) * float64(t.Height)

	if t.Filter == FilterNearest {
		return t.at(int(fx), int(fy))
	}
	return t.bilinear(fx, fy)
}

func (t *ImageTexture) wrap(x float64) float64 {
	switch t.Wrap {
	case WrapClamp:
		if x < 0 {
			return 0
		}
		if x >= 1 {
			return math.Nextafter(1, 0)
		}
		return x
	default: // WrapRepeat
		x = x - math.Floor(x)
		return x
	}
}

func (t *ImageTexture) at(x, y int) core.Vec3 {
	x = clampInt(x, 0, t.Width-1)
	y = clampInt(y, 0, t.Height-1)
	return t.Pixels[y*t.Width+x]
}

func (t *ImageTexture) bilinear(fx, fy float64) core.Vec3 {
	x0, y0 := int(math.Floor(fx-0.5)), int(math.Floor(fy-0.5))
	tx, ty := (fx-0.5)-float64(x0), (fy-0.5)-float64(y0)

	c00 := t.at(x0, y0)
	c10 := t.at(x0+1, y0)
	c01 := t.at(x0, y0+1)
	c11 := t.at(x0+1, y0+1)

	top := c00.Lerp(c10, tx)
	bottom := c01.Lerp(c11, tx)
	return top.Lerp(bottom, ty)
}

func clampInt(x, lo, hi int) int {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
