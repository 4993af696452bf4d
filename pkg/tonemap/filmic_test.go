package tonemap

import (
	"testing"

	"github.com/rayforge/raytracer/pkg/core"
)

func TestFilmicBounded(t *testing.T) {
	hdr := []core.Vec3{core.NewVec3(0.5, 1.0, 3.0), core.NewVec3(0, 0, 0)}
	out := Filmic(hdr, 2.0, 2.2)
	for _, c := range out {
		if c.X < 0 || c.X > 1 {
			t.Errorf("filmic output out of range: %v", c)
		}
	}
}

func TestFilmicMonotonic(t *testing.T) {
	dim := Filmic([]core.Vec3{core.NewVec3(0.2, 0.2, 0.2)}, 2.0, 2.2)[0]
	bright := Filmic([]core.Vec3{core.NewVec3(2.0, 2.0, 2.0)}, 2.0, 2.2)[0]
	if bright.X <= dim.X {
		t.Errorf("expected brighter input to map brighter: dim=%v bright=%v", dim.X, bright.X)
	}
}
