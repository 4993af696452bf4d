package texture

import (
	"testing"

	"github.com/rayforge/raytracer/pkg/core"
)

func makeCheckerPixels(w, h int) []core.Vec3 {
	pixels := make([]core.Vec3, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if (x+y)%2 == 0 {
				pixels[y*w+x] = core.NewVec3(1, 1, 1)
			} else {
				pixels[y*w+x] = core.NewVec3(0, 0, 0)
			}
		}
	}
	return pixels
}

func TestImageTextureNearestSamplesExactPixel(t *testing.T) {
	tex := NewImageTexture(2, 2, makeCheckerPixels(2, 2))
	tex.Filter = FilterNearest
	got := tex.SampleColor(0.01, 0.99, core.Vec3{})
	if got.X != 1 {
		t.Errorf("expected top-left pixel (white), got %v", got)
	}
}

func TestImageTextureWrapRepeat(t *testing.T) {
	tex := NewImageTexture(2, 2, makeCheckerPixels(2, 2))
	tex.Filter = FilterNearest
	tex.Wrap = WrapRepeat
	a := tex.SampleColor(0.01, 0.99, core.Vec3{})
	b := tex.SampleColor(1.01, 0.99, core.Vec3{})
	if a != b {
		t.Errorf("expected repeat wrap to alias u=0.01 and u=1.01, got %v vs %v", a, b)
	}
}

func TestImageTextureEmptyReturnsZero(t *testing.T) {
	tex := &ImageTexture{}
	got := tex.SampleColor(0.5, 0.5, core.Vec3{})
	if !got.IsZero() {
		t.Errorf("expected zero color for an empty texture, got %v", got)
	}
}

func TestImageTextureBilinearInterpolatesBetweenPixels(t *testing.T) {
	pixels := []core.Vec3{
		core.NewVec3(0, 0, 0), core.NewVec3(1, 1, 1),
		core.NewVec3(0, 0, 0), core.NewVec3(1, 1, 1),
	}
	tex := NewImageTexture(2, 2, pixels)
	tex.Filter = FilterBilinear
	mid := tex.SampleColor(0.5, 0.5, core.Vec3{})
	if mid.X <= 0 || mid.X >= 1 {
		t.Errorf("expected an interpolated value strictly between 0 and 1, got %v", mid.X)
	}
}
