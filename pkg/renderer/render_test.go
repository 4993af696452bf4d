package renderer

import (
	"math"
	"testing"

	"github.com/rayforge/raytracer/pkg/camera"
	"github.com/rayforge/raytracer/pkg/core"
	"github.com/rayforge/raytracer/pkg/geometry"
	"github.com/rayforge/raytracer/pkg/lights"
	"github.com/rayforge/raytracer/pkg/material"
	"github.com/rayforge/raytracer/pkg/tracer"
)

// flatScene is a minimal tracer.Scene that always returns a constant
// background color, used to exercise the render loop without geometry.
type flatScene struct {
	color core.Vec3
}

func (s flatScene) Hit(core.Ray) (*core.RayHit, bool)        { return nil, false }
func (s flatScene) ShadowHit(core.Ray, float64, float64) bool { return false }
func (s flatScene) Background(core.Ray) core.Vec3            { return s.color }
func (s flatScene) Lights() []lights.Light                   { return nil }
func (s flatScene) AmbientLight() core.Vec3                  { return core.Vec3{} }
func (s flatScene) MaxDepth() int                             { return 4 }
func (s flatScene) ShadowEps() float64                        { return 1e-4 }

func simpleCamera(w, h int) *camera.Camera {
	return camera.New(camera.Config{
		Position:     core.NewVec3(0, 0, 0),
		GazePoint:    core.NewVec3(0, 0, -1),
		UseGazePoint: true,
		Up:           core.NewVec3(0, 1, 0),
		FovY:         60,
		NearDistance: 1,
		ImageWidth:   w,
		ImageHeight:  h,
		NumSamples:   1,
	})
}

func TestRender_FlatBackgroundFillsEveryPixel(t *testing.T) {
	scene := flatScene{color: core.NewVec3(0.2, 0.4, 0.6)}
	cam := simpleCamera(4, 3)
	fb, stats := Render(scene, cam, 4, Config{Width: 4, Height: 3, NumThreads: 2, Seed: 1})

	if len(fb.Pixels) != 12 {
		t.Fatalf("expected 12 pixels, got %d", len(fb.Pixels))
	}
	for i, c := range fb.Pixels {
		if math.Abs(c.X-0.2) > 1e-9 || math.Abs(c.Y-0.4) > 1e-9 || math.Abs(c.Z-0.6) > 1e-9 {
			t.Errorf("pixel %d: expected flat background color, got %v", i, c)
		}
	}
	if stats.TotalPixels != 12 {
		t.Errorf("expected TotalPixels=12, got %d", stats.TotalPixels)
	}
	if stats.NumWorkers != 2 {
		t.Errorf("expected NumWorkers=2, got %d", stats.NumWorkers)
	}
}

func TestRender_SingleThreadMatchesMultiThread(t *testing.T) {
	scene := flatScene{color: core.NewVec3(1, 1, 1)}
	cam := simpleCamera(6, 6)

	fb1, _ := Render(scene, cam, 4, Config{Width: 6, Height: 6, NumThreads: 1, Seed: 7})
	fb4, _ := Render(scene, cam, 4, Config{Width: 6, Height: 6, NumThreads: 4, Seed: 7})

	for i := range fb1.Pixels {
		if fb1.Pixels[i] != fb4.Pixels[i] {
			t.Errorf("pixel %d differs between thread counts: %v vs %v", i, fb1.Pixels[i], fb4.Pixels[i])
		}
	}
}

func TestRender_LitSphereProducesNonZeroPixels(t *testing.T) {
	mat := material.Material{Type: material.Default, DiffuseReflectance: core.NewVec3(1, 1, 1)}
	obj := geometry.NewObject(0, geometry.NewSphere(core.NewVec3(0, 0, -3), 1), core.Identity())
	obj.Material = mat

	scene := litSphereScene{obj: obj, light: &lights.PointLight{Position: core.NewVec3(2, 2, 0), Intensity: core.NewVec3(20, 20, 20)}}
	cam := simpleCamera(8, 8)
	fb, _ := Render(scene, cam, 4, Config{Width: 8, Height: 8, NumThreads: 2, Seed: 3})

	var anyLit bool
	for _, c := range fb.Pixels {
		if c.X > 0 {
			anyLit = true
			break
		}
	}
	if !anyLit {
		t.Error("expected at least one lit pixel from the sphere centered in frame")
	}
}

type litSphereScene struct {
	obj   *geometry.Object
	light lights.Light
}

func (s litSphereScene) Hit(ray core.Ray) (*core.RayHit, bool) { return s.obj.Hit(ray, 1e-6, math.Inf(1)) }
func (s litSphereScene) ShadowHit(ray core.Ray, tMin, tMax float64) bool {
	_, ok := s.obj.Hit(ray, tMin, tMax)
	return ok
}
func (s litSphereScene) Background(core.Ray) core.Vec3 { return core.Vec3{} }
func (s litSphereScene) Lights() []lights.Light        { return []lights.Light{s.light} }
func (s litSphereScene) AmbientLight() core.Vec3       { return core.Vec3{} }
func (s litSphereScene) MaxDepth() int                 { return 4 }
func (s litSphereScene) ShadowEps() float64            { return 1e-4 }

var _ tracer.Scene = flatScene{}
var _ tracer.Scene = litSphereScene{}
