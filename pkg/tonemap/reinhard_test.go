package tonemap

import (
	"testing"

	"github.com/rayforge/raytracer/pkg/core"
)

func TestReinhardPhotographicBounded(t *testing.T) {
	hdr := []core.Vec3{
		core.NewVec3(0.1, 0.1, 0.1),
		core.NewVec3(2.0, 1.5, 0.5),
		core.NewVec3(10, 10, 10),
	}
	out := ReinhardPhotographic(hdr, ReinhardParams{KeyValue: 0.18, BurnFrac: 1, Saturation: 1, Gamma: 2.2})
	for i, c := range out {
		if c.X < 0 || c.X > 1 || c.Y < 0 || c.Y > 1 || c.Z < 0 || c.Z > 1 {
			t.Errorf("pixel %d out of [0,1] range: %v", i, c)
		}
	}
}

func TestReinhardPhotographicBrighterInputBrighterOutput(t *testing.T) {
	hdr := []core.Vec3{core.NewVec3(0.1, 0.1, 0.1), core.NewVec3(0.5, 0.5, 0.5)}
	out := ReinhardPhotographic(hdr, ReinhardParams{KeyValue: 0.18, BurnFrac: 1, Saturation: 1, Gamma: 2.2})
	if out[1].X <= out[0].X {
		t.Errorf("expected brighter HDR input to tone-map brighter: dim=%v bright=%v", out[0].X, out[1].X)
	}
}

func TestReinhardPhotographicEmptyInput(t *testing.T) {
	out := ReinhardPhotographic(nil, ReinhardParams{})
	if out != nil {
		t.Errorf("expected nil output for empty input, got %v", out)
	}
}
