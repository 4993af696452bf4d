package texture

import (
	"testing"

	"github.com/rayforge/raytracer/pkg/core"
)

type linearRamp struct{ axis int }

func (l linearRamp) SampleScalar(u, v float64, point core.Vec3) float64 {
	switch l.axis {
	case 0:
		return point.X
	default:
		return point.Y
	}
}

func TestBumpMappedNormalStaysUnit(t *testing.T) {
	normal := core.NewVec3(0, 1, 0)
	tangent := core.NewVec3(1, 0, 0)
	bitangent := core.NewVec3(0, 0, 1)
	got := BumpMappedNormal(linearRamp{axis: 0}, normal, tangent, bitangent, 0.5, 0.5, core.Vec3{}, 1.0)
	if l := got.Length(); l < 0.999 || l > 1.001 {
		t.Errorf("expected unit-length perturbed normal, got length %v", l)
	}
}

func TestBumpMappedNormalFlatFieldLeavesNormalUnchanged(t *testing.T) {
	normal := core.NewVec3(0, 1, 0)
	tangent := core.NewVec3(1, 0, 0)
	bitangent := core.NewVec3(0, 0, 1)
	got := BumpMappedNormal(flatConst{}, normal, tangent, bitangent, 0, 0, core.Vec3{}, 1.0)
	if got.Subtract(normal).Length() > 1e-6 {
		t.Errorf("expected a constant height field to leave the normal unchanged, got %v", got)
	}
}

type flatConst struct{}

func (flatConst) SampleScalar(u, v float64, point core.Vec3) float64 { return 0.5 }
