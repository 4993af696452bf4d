package tonemap

import (
	"testing"

	"github.com/rayforge/raytracer/pkg/core"
)

func TestACESBounded(t *testing.T) {
	hdr := []core.Vec3{core.NewVec3(0.1, 5.0, 20.0)}
	out := ACES(hdr, 2.2)
	c := out[0]
	if c.X < 0 || c.X > 1 || c.Y < 0 || c.Y > 1 || c.Z < 0 || c.Z > 1 {
		t.Errorf("ACES output out of [0,1]: %v", c)
	}
}

func TestACESBlackStaysBlack(t *testing.T) {
	out := ACES([]core.Vec3{{}}, 2.2)
	if out[0].X > 1e-6 || out[0].Y > 1e-6 || out[0].Z > 1e-6 {
		t.Errorf("expected black input to map near-black, got %v", out[0])
	}
}
