package camera

import (
	"math"
	"math/rand"
	"testing"

	"github.com/rayforge/raytracer/pkg/core"
)

func lookAtCamera() *Camera {
	return New(Config{
		Position:     core.NewVec3(0, 0, 5),
		GazePoint:    core.NewVec3(0, 0, 0),
		UseGazePoint: true,
		Up:           core.NewVec3(0, 1, 0),
		NearDistance: 1,
		FovY:         90,
		ImageWidth:   200,
		ImageHeight:  100,
		NumSamples:   1,
	})
}

func TestSingleSampleThroughPixelCenter(t *testing.T) {
	cam := lookAtCamera()
	rng := rand.New(rand.NewSource(1))
	rays := cam.Rays(100, 50, rng)
	if len(rays) != 1 {
		t.Fatalf("expected exactly 1 ray for NumSamples<=1, got %v", len(rays))
	}
	if rays[0].Direction.Length() < 0.999 || rays[0].Direction.Length() > 1.001 {
		t.Errorf("expected a unit-length ray direction, got %v", rays[0].Direction.Length())
	}
}

func TestStratifiedGridProducesNSquaredRays(t *testing.T) {
	cam := New(Config{
		Position: core.NewVec3(0, 0, 5), Gaze: core.NewVec3(0, 0, -1), Up: core.NewVec3(0, 1, 0),
		NearPlane: NearPlane{-1, 1, -1, 1}, NearDistance: 1,
		ImageWidth: 100, ImageHeight: 100, NumSamples: 16,
	})
	rng := rand.New(rand.NewSource(1))
	rays := cam.Rays(10, 10, rng)
	if len(rays) != 16 {
		t.Errorf("expected 16 stratified rays, got %v", len(rays))
	}
}

func TestCenterPixelGazesDownNegativeGaze(t *testing.T) {
	cam := New(Config{
		Position: core.NewVec3(0, 0, 5), Gaze: core.NewVec3(0, 0, -1), Up: core.NewVec3(0, 1, 0),
		NearPlane: NearPlane{-1, 1, -1, 1}, NearDistance: 1,
		ImageWidth: 2, ImageHeight: 2, NumSamples: 1,
	})
	rng := rand.New(rand.NewSource(1))
	rays := cam.Rays(1, 1, rng)
	if rays[0].Direction.Z >= 0 {
		t.Errorf("expected the camera to look toward -Z, got direction %v", rays[0].Direction)
	}
}

func TestDepthOfFieldJittersOrigin(t *testing.T) {
	cam := New(Config{
		Position: core.NewVec3(0, 0, 5), Gaze: core.NewVec3(0, 0, -1), Up: core.NewVec3(0, 1, 0),
		NearPlane: NearPlane{-1, 1, -1, 1}, NearDistance: 1,
		ImageWidth: 100, ImageHeight: 100, NumSamples: 4,
		FocusDistance: 5, ApertureSize: 0.5,
	})
	rng := rand.New(rand.NewSource(2))
	rays := cam.Rays(50, 50, rng)
	allSame := true
	for _, r := range rays[1:] {
		if math.Abs(r.Origin.X-rays[0].Origin.X) > 1e-9 {
			allSame = false
		}
	}
	if allSame {
		t.Error("expected aperture jitter to vary ray origins across samples")
	}
}

func TestLeftHandedNegatesU(t *testing.T) {
	rh := New(Config{Position: core.Vec3{}, Gaze: core.NewVec3(0, 0, -1), Up: core.NewVec3(0, 1, 0), NearDistance: 1, NearPlane: NearPlane{-1, 1, -1, 1}, ImageWidth: 10, ImageHeight: 10})
	lh := New(Config{Position: core.Vec3{}, Gaze: core.NewVec3(0, 0, -1), Up: core.NewVec3(0, 1, 0), NearDistance: 1, NearPlane: NearPlane{-1, 1, -1, 1}, ImageWidth: 10, ImageHeight: 10, LeftHanded: true})
	if rh.u.X == lh.u.X {
		t.Error("expected left-handed camera to negate the u axis")
	}
}
