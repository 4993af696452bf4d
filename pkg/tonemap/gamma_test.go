package tonemap

import (
	"testing"

	"github.com/rayforge/raytracer/pkg/core"
)

func TestGammaEncodeClampsAndCorrects(t *testing.T) {
	got := GammaEncode(core.NewVec3(2.0, 0.25, -0.5), 2.2)
	if got.X != 1 {
		t.Errorf("expected overbright channel clamped to 1, got %v", got.X)
	}
	if got.Z != 0 {
		t.Errorf("expected negative channel clamped to 0, got %v", got.Z)
	}
	if got.Y <= 0.25 {
		t.Errorf("expected gamma encoding to brighten a midtone value, got %v", got.Y)
	}
}

func TestSRGBEncodeContinuousAtKnee(t *testing.T) {
	below := srgbChannel(0.0031308 - 1e-6)
	above := srgbChannel(0.0031308 + 1e-6)
	if below <= 0 || above <= 0 {
		t.Fatal("expected positive values on both sides of the sRGB knee")
	}
	if (above - below) > 0.01 {
		t.Errorf("expected sRGB curve to be continuous at the knee, got jump %v", above-below)
	}
}

func TestToRGBAQuantizesWhite(t *testing.T) {
	img := ToRGBA([]core.Vec3{core.NewVec3(1, 1, 1)}, 1, 1)
	r, g, b, a := img.At(0, 0).RGBA()
	if r>>8 != 255 || g>>8 != 255 || b>>8 != 255 || a>>8 != 255 {
		t.Errorf("expected white pixel to quantize to 255,255,255,255, got %v %v %v %v", r>>8, g>>8, b>>8, a>>8)
	}
}
