package texture

import (
	"testing"

	"github.com/rayforge/raytracer/pkg/core"
)

func TestCheckerboardAlternates3D(t *testing.T) {
	a, b := core.NewVec3(1, 1, 1), core.NewVec3(0, 0, 0)
	tex := NewCheckerboardTexture(a, b, 1, Domain3D)

	c0 := tex.SampleColor(0, 0, core.NewVec3(0.1, 0, 0))
	c1 := tex.SampleColor(0, 0, core.NewVec3(1.1, 0, 0))
	if c0 == c1 {
		t.Errorf("expected adjacent cells to alternate color: %v vs %v", c0, c1)
	}
}

func TestCheckerboardDomain2DIgnoresPoint(t *testing.T) {
	a, b := core.NewVec3(1, 1, 1), core.NewVec3(0, 0, 0)
	tex := NewCheckerboardTexture(a, b, 4, Domain2D)

	c0 := tex.SampleColor(0.1, 0.1, core.NewVec3(500, 500, 500))
	c1 := tex.SampleColor(0.1, 0.1, core.Vec3{})
	if c0 != c1 {
		t.Errorf("Domain2D checkerboard must ignore the 3D point: %v vs %v", c0, c1)
	}
}

func TestMod2HandlesNegative(t *testing.T) {
	if mod2(-1) != 1 {
		t.Errorf("mod2(-1) = %v, want 1", mod2(-1))
	}
	if mod2(-2) != 0 {
		t.Errorf("mod2(-2) = %v, want 0", mod2(-2))
	}
}
