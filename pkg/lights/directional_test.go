package lights

import (
	"testing"

	"github.com/rayforge/raytracer/pkg/core"
)

func TestDirectionalLightConstantRadiance(t *testing.T) {
	l := NewDirectionalLight(core.NewVec3(0, -1, 0), core.NewVec3(2, 2, 2))
	a := l.Sample(core.NewVec3(0, 0, 0), core.Vec3{}, core.Vec2{})
	b := l.Sample(core.NewVec3(100, 50, -30), core.Vec3{}, core.Vec2{})
	if a.Radiance != b.Radiance {
		t.Errorf("expected position-independent radiance, got %v vs %v", a.Radiance, b.Radiance)
	}
}

func TestDirectionalLightDirectionOpposesTravel(t *testing.T) {
	l := NewDirectionalLight(core.NewVec3(0, -1, 0), core.NewVec3(1, 1, 1))
	s := l.Sample(core.Vec3{}, core.Vec3{}, core.Vec2{})
	if s.Direction.Y <= 0 {
		t.Errorf("expected sample direction to point back toward the source (+Y), got %v", s.Direction)
	}
}
