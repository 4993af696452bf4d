package lights

import (
	"testing"

	"github.com/rayforge/raytracer/pkg/core"
)

func TestSpotLightFullIntensityInsideFalloff(t *testing.T) {
	l := NewSpotLight(core.NewVec3(0, 5, 0), core.NewVec3(0, -1, 0), core.NewVec3(10, 10, 10), 60, 30)
	s := l.Sample(core.NewVec3(0, 0, 0), core.Vec3{}, core.Vec2{})
	if s.Radiance.IsZero() {
		t.Errorf("expected full intensity straight down the cone axis, got %v", s.Radiance)
	}
}

func TestSpotLightZeroOutsideCoverage(t *testing.T) {
	l := NewSpotLight(core.NewVec3(0, 5, 0), core.NewVec3(0, -1, 0), core.NewVec3(10, 10, 10), 10, 5)
	// Point far to the side: angle from straight-down exceeds coverage/2.
	s := l.Sample(core.NewVec3(100, 0, 0), core.Vec3{}, core.Vec2{})
	if !s.Radiance.IsZero() {
		t.Errorf("expected zero radiance outside the coverage cone, got %v", s.Radiance)
	}
}

func TestSpotLightPenumbraDecreasesTowardEdge(t *testing.T) {
	l := NewSpotLight(core.NewVec3(0, 10, 0), core.NewVec3(0, -1, 0), core.NewVec3(10, 10, 10), 90, 30)
	near := l.Sample(core.NewVec3(1, 0, 0), core.Vec3{}, core.Vec2{})
	far := l.Sample(core.NewVec3(8, 0, 0), core.Vec3{}, core.Vec2{})
	if far.Radiance.X >= near.Radiance.X {
		t.Errorf("expected radiance to decrease toward the cone edge: near=%v far=%v", near.Radiance.X, far.Radiance.X)
	}
}
