package texture

import (
	"testing"

	"github.com/rayforge/raytracer/pkg/core"
)

func TestPerlinTextureSampleColorBounded(t *testing.T) {
	tex := NewPerlinTexture(2, 2, 3, 42, 1.0, core.NewVec3(1, 1, 1))
	got := tex.SampleColor(0, 0, core.NewVec3(1.5, 2.5, -3.1))
	if got.X < 0 || got.X > 1 {
		t.Errorf("expected raw noise sample scaled to [0,1], got %v", got.X)
	}
}

func TestPerlinTextureMarbleProducesFiniteColor(t *testing.T) {
	tex := NewPerlinTexture(2, 2, 3, 42, 1.0, core.NewVec3(1, 1, 1))
	tex.Marble = true
	got := tex.SampleColor(0, 0, core.NewVec3(1.5, 2.5, -3.1))
	if !got.IsFinite() {
		t.Errorf("expected a finite marble color, got %v", got)
	}
}

func TestPerlinTextureSampleScalarDeterministic(t *testing.T) {
	tex := NewPerlinTexture(2, 2, 3, 42, 1.0, core.Vec3{})
	p := core.NewVec3(0.3, 0.7, 1.9)
	a := tex.SampleScalar(0, 0, p)
	b := tex.SampleScalar(0, 0, p)
	if a != b {
		t.Errorf("expected deterministic noise for the same point and seed")
	}
}
