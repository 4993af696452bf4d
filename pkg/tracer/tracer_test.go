package tracer

import (
	"math"
	"math/rand"
	"testing"

	"github.com/rayforge/raytracer/pkg/core"
	"github.com/rayforge/raytracer/pkg/geometry"
	"github.com/rayforge/raytracer/pkg/lights"
	"github.com/rayforge/raytracer/pkg/material"
)

// fakeScene is a minimal Scene implementation for exercising Trace without
// pkg/scene's BVH/loader machinery.
type fakeScene struct {
	objects   []*geometry.Object
	lights    []lights.Light
	ambient   core.Vec3
	maxDepth  int
	shadowEps float64
	bg        func(core.Ray) core.Vec3
}

func (s *fakeScene) Hit(ray core.Ray) (*core.RayHit, bool) {
	var closest *core.RayHit
	best := math.Inf(1)
	for _, o := range s.objects {
		if hit, ok := o.Hit(ray, 1e-6, best); ok {
			closest = hit
			best = hit.T
		}
	}
	return closest, closest != nil
}

func (s *fakeScene) ShadowHit(ray core.Ray, tMin, tMax float64) bool {
	for _, o := range s.objects {
		if _, ok := o.Hit(ray, tMin, tMax); ok {
			return true
		}
	}
	return false
}

func (s *fakeScene) Background(ray core.Ray) core.Vec3 {
	if s.bg != nil {
		return s.bg(ray)
	}
	return core.Vec3{}
}

func (s *fakeScene) Lights() []lights.Light  { return s.lights }
func (s *fakeScene) AmbientLight() core.Vec3 { return s.ambient }
func (s *fakeScene) MaxDepth() int           { return s.maxDepth }
func (s *fakeScene) ShadowEps() float64      { return s.shadowEps }

func sphereObject(id int, center core.Vec3, radius float64, mat material.Material) *geometry.Object {
	obj := geometry.NewObject(id, geometry.NewSphere(center, radius), core.Identity())
	obj.Material = mat
	return obj
}

func newRNG() *rand.Rand { return core.NewRNG(1) }

func TestTrace_UnitSphereWithPointLight(t *testing.T) {
	mat := material.Material{
		Type:                material.Default,
		DiffuseReflectance:  core.NewVec3(1, 0, 0),
		SpecularReflectance: core.Vec3{},
	}
	scene := &fakeScene{
		objects:   []*geometry.Object{sphereObject(0, core.NewVec3(0, 0, -1), 0.5, mat)},
		lights:    []lights.Light{&lights.PointLight{Position: core.NewVec3(2, 2, 1), Intensity: core.NewVec3(10, 10, 10)}},
		ambient:   core.NewVec3(0.05, 0.05, 0.05),
		maxDepth:  4,
		shadowEps: 1e-4,
	}
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))
	color := Trace(scene, ray, scene.maxDepth, newRNG())

	if color.X <= 0 {
		t.Errorf("expected positive red channel from lit red sphere, got %v", color)
	}
}

func TestTrace_MissReturnsBackground(t *testing.T) {
	scene := &fakeScene{
		maxDepth: 4,
		bg:       func(core.Ray) core.Vec3 { return core.NewVec3(0.1, 0.2, 0.3) },
	}
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))
	color := Trace(scene, ray, scene.maxDepth, newRNG())
	if color != (core.Vec3{X: 0.1, Y: 0.2, Z: 0.3}) {
		t.Errorf("expected background color, got %v", color)
	}
}

func TestTrace_DepthExhaustionReturnsBlack(t *testing.T) {
	mat := material.Material{Type: material.Mirror, MirrorReflectance: core.NewVec3(1, 1, 1)}
	scene := &fakeScene{
		objects:   []*geometry.Object{sphereObject(0, core.NewVec3(0, 0, -1), 0.5, mat)},
		maxDepth:  0,
		shadowEps: 1e-4,
	}
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))
	color := Trace(scene, ray, -1, newRNG())
	if color != (core.Vec3{}) {
		t.Errorf("expected black at exhausted depth, got %v", color)
	}
}

func TestTrace_MirrorReflectsBackgroundColor(t *testing.T) {
	mat := material.Material{Type: material.Mirror, MirrorReflectance: core.NewVec3(1, 1, 1)}
	scene := &fakeScene{
		objects:   []*geometry.Object{sphereObject(0, core.NewVec3(0, 0, -1), 0.5, mat)},
		maxDepth:  4,
		shadowEps: 1e-4,
		bg:        func(core.Ray) core.Vec3 { return core.NewVec3(0.4, 0.4, 0.4) },
	}
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))
	color := Trace(scene, ray, scene.maxDepth, newRNG())
	if color.X < 0.3 {
		t.Errorf("expected mirrored background-ish brightness, got %v", color)
	}
}

func TestTrace_DielectricEnergyRoughlyConserved(t *testing.T) {
	mat := material.Material{
		Type:                  material.Dielectric,
		RefractionIndex:       1.5,
		AbsorptionCoefficient: core.Vec3{}, // no absorption
	}
	scene := &fakeScene{
		objects:   []*geometry.Object{sphereObject(0, core.NewVec3(0, 0, -2), 0.5, mat)},
		maxDepth:  6,
		shadowEps: 1e-4,
		bg:        func(core.Ray) core.Vec3 { return core.NewVec3(1, 1, 1) },
	}
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))
	color := Trace(scene, ray, scene.maxDepth, newRNG())
	// with a uniform white background and zero absorption, reflect+refract
	// weights sum to 1, so the result should stay close to white.
	if color.X > 1.01 || color.X < 0 {
		t.Errorf("dielectric trace should not gain or lose much energy against a flat background, got %v", color)
	}
}

func TestTrace_BeerLambertAttenuatesInsideSphere(t *testing.T) {
	clearMat := material.Material{Type: material.Dielectric, RefractionIndex: 1.5}
	absorbMat := material.Material{Type: material.Dielectric, RefractionIndex: 1.5, AbsorptionCoefficient: core.NewVec3(2, 2, 2)}

	mkScene := func(m material.Material) *fakeScene {
		return &fakeScene{
			objects:   []*geometry.Object{sphereObject(0, core.NewVec3(0, 0, -2), 1.0, m)},
			maxDepth:  6,
			shadowEps: 1e-4,
			bg:        func(core.Ray) core.Vec3 { return core.NewVec3(1, 1, 1) },
		}
	}
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))

	clearColor := Trace(mkScene(clearMat), ray, 6, newRNG())
	absorbColor := Trace(mkScene(absorbMat), ray, 6, newRNG())

	if absorbColor.X >= clearColor.X {
		t.Errorf("absorbing dielectric should be dimmer than clear: clear=%v absorb=%v", clearColor, absorbColor)
	}
}

func TestTrace_ShadowedPointLightContributesNothing(t *testing.T) {
	litMat := material.Material{Type: material.Default, DiffuseReflectance: core.NewVec3(1, 1, 1)}
	occluderMat := material.Material{Type: material.Default}

	target := sphereObject(0, core.NewVec3(0, 0, -2), 0.5, litMat)
	occluder := sphereObject(1, core.NewVec3(0, 0, 0.5), 0.3, occluderMat)

	light := &lights.PointLight{Position: core.NewVec3(0, 0, 2), Intensity: core.NewVec3(5, 5, 5)}

	scene := &fakeScene{
		objects:   []*geometry.Object{target, occluder},
		lights:    []lights.Light{light},
		maxDepth:  4,
		shadowEps: 1e-4,
	}
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))
	color := Trace(scene, ray, scene.maxDepth, newRNG())
	if color != (core.Vec3{}) {
		t.Errorf("expected the occluder to block the point light from the lit target (no ambient), got %v", color)
	}
}

func TestReflect_ZeroRoughnessIsExactMirror(t *testing.T) {
	dir := core.NewVec3(0, -1, -1).Normalize()
	normal := core.NewVec3(0, 1, 0)
	got := Reflect(dir, normal, 0, newRNG())
	want := material.Reflect(dir.Multiply(-1), normal)
	if math.Abs(got.X-want.X) > 1e-9 || math.Abs(got.Y-want.Y) > 1e-9 || math.Abs(got.Z-want.Z) > 1e-9 {
		t.Errorf("zero-roughness Reflect should equal a pure mirror reflection: got %v want %v", got, want)
	}
}

func TestReflect_RoughnessPerturbsButStaysUnit(t *testing.T) {
	dir := core.NewVec3(0, -1, -1).Normalize()
	normal := core.NewVec3(0, 1, 0)
	rng := newRNG()
	got := Reflect(dir, normal, 0.3, rng)
	length := math.Sqrt(got.X*got.X + got.Y*got.Y + got.Z*got.Z)
	if math.Abs(length-1) > 1e-9 {
		t.Errorf("perturbed reflection should renormalize to unit length, got length %v", length)
	}
}
