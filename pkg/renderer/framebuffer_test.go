package renderer

import (
	"os"
	"testing"

	"github.com/rayforge/raytracer/pkg/core"
)

func TestToRGBA_ReinhardProducesOpaqueImage(t *testing.T) {
	fb := &Framebuffer{Width: 2, Height: 1, Pixels: []core.Vec3{core.NewVec3(1, 0, 0), core.NewVec3(0, 1, 0)}}
	img := fb.ToRGBA(TonemapConfig{Mode: TonemapReinhard, Gamma: 2.2})

	if img.Bounds().Dx() != 2 || img.Bounds().Dy() != 1 {
		t.Fatalf("expected 2x1 image, got %v", img.Bounds())
	}
	_, _, _, a := img.At(0, 0).RGBA()
	if a == 0 {
		t.Error("expected fully opaque pixel")
	}
}

func TestSavePNG_WritesFile(t *testing.T) {
	fb := &Framebuffer{Width: 1, Height: 1, Pixels: []core.Vec3{core.NewVec3(0.5, 0.5, 0.5)}}
	path := t.TempDir() + "/out.png"

	if err := fb.SavePNG(path, TonemapConfig{Mode: TonemapACES, Gamma: 2.2}); err != nil {
		t.Fatalf("SavePNG failed: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("expected file to exist: %v", err)
	}
	if info.Size() == 0 {
		t.Error("expected non-empty PNG file")
	}
}
