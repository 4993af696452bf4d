// Package scene owns the arenas spec.md §3 names (objects, lights, cameras,
// textures, materials reached through Object bindings) and the top-level
// BVH built over them, and exposes the Hit/ShadowHit/Background/Lights/
// AmbientLight/MaxDepth/ShadowEps capability pkg/tracer.Scene requires.
// Grounded on the teacher's pkg/scene/scene.go Scene struct shape
// (Shapes/Lights/Camera/BVH fields, Preprocess method), generalized from
// the teacher's single hardcoded-Go-literal scenes to an arena built by a
// loader (pkg/loaders/xmlscene.go) from spec.md §6's XML grammar.
package scene

import (
	"math"

	"github.com/rayforge/raytracer/pkg/camera"
	"github.com/rayforge/raytracer/pkg/core"
	"github.com/rayforge/raytracer/pkg/geometry"
	"github.com/rayforge/raytracer/pkg/lights"
)

// BackgroundTexture is the capability a bound 2D background texture exposes,
// sampled in Domain2D per spec.md §9 Open Question #2.
type BackgroundTexture interface {
	SampleColor(u, v float64, point core.Vec3) core.Vec3
}

// NamedCamera pairs a built Camera with its XML camera id. The output file
// name and tone-map choice (spec.md §6's image_name/Tonemap elements) are
// not stored here; pkg/loaders returns them separately as CameraOutput.
type NamedCamera struct {
	Name   string
	Camera *camera.Camera
}

// Scene holds the immutable post-Load state spec.md §3 describes: the
// object arena, the light arena, the top-level BVH over objects, and the
// scalar render parameters (ambient color, background, shadow/intersection
// epsilon, max depth). Every field is read-only once Preprocess has run, so
// concurrent renderer workers share it without locking (spec.md §5).
type Scene struct {
	Objects   []*geometry.Object
	LightList []lights.Light
	Cameras   []NamedCamera

	AmbientColor    core.Vec3
	BackgroundColor core.Vec3
	BackgroundTex   BackgroundTexture // optional; overrides BackgroundColor when set
	Environment     lights.EmittingLight // optional SphericalDirectionalLight; overrides background entirely when set

	ShadowEpsVal       float64
	IntersectionEpsVal float64
	MaxDepthVal        int

	bvh core.Hittable
}

// Preprocess builds the top-level BVH over every Object (spec.md §4.1) and
// registers any Object-backed lights' ids so shadow rays toward them can
// self-exclude (spec.md §4.4). loaders.LoadXMLScene calls this once, after which the
// Scene is immutable for the render's duration (spec.md §3 "Lifecycle").
func (s *Scene) Preprocess() {
	items := make([]core.Hittable, len(s.Objects))
	for i, o := range s.Objects {
		items[i] = o
	}
	s.bvh = core.BuildBVH(items)

	for _, l := range s.LightList {
		switch light := l.(type) {
		case *lights.SphereLight:
			for _, o := range s.Objects {
				if o.Geometry == light.Sphere {
					light.SetObjectID(o.ID)
				}
			}
		case *lights.MeshLight:
			for _, o := range s.Objects {
				if o.Geometry == light.Mesh {
					light.SetObjectID(o.ID)
				}
			}
		}
	}
}

// Hit implements pkg/tracer.Scene: closest-hit query through the top-level
// BVH, falling back to brute force when Preprocess hasn't been called (e.g.
// in small unit-test scenes built without it).
func (s *Scene) Hit(ray core.Ray) (*core.RayHit, bool) {
	eps := s.IntersectionEpsVal
	if eps <= 0 {
		eps = core.DefaultIntersectionEpsilon
	}
	if s.bvh != nil {
		return s.bvh.Hit(ray, eps, math.Inf(1))
	}
	items := make([]core.Hittable, len(s.Objects))
	for i, o := range s.Objects {
		items[i] = o
	}
	return core.BruteForceHit(items, ray, eps, math.Inf(1))
}

// ShadowHit implements pkg/tracer.Scene: any-hit query within [tMin,tMax],
// used for shadow rays (spec.md §4.4).
func (s *Scene) ShadowHit(ray core.Ray, tMin, tMax float64) bool {
	if bvh, ok := s.bvh.(interface {
		ShadowHit(core.Ray, float64, float64) bool
	}); ok {
		return bvh.ShadowHit(ray, tMin, tMax)
	}
	items := make([]core.Hittable, len(s.Objects))
	for i, o := range s.Objects {
		items[i] = o
	}
	_, ok := core.BruteForceHit(items, ray, tMin, tMax)
	return ok
}

// Background implements pkg/tracer.Scene, spec.md §4.5 step 2's three
// options in priority order: an environment light's radiance along the
// ray, then a bound 2D background texture sampled by the ray direction's
// lat-long (u,v) (matching the environment light's own direction-to-UV
// convention, since no pixel coordinate is available at this point in the
// trace), then the flat BackgroundColor.
func (s *Scene) Background(ray core.Ray) core.Vec3 {
	if s.Environment != nil {
		return s.Environment.Emit(ray)
	}
	if s.BackgroundTex != nil {
		u, v := directionToLatLongUV(ray.Direction)
		return s.BackgroundTex.SampleColor(u, v, ray.Direction)
	}
	return s.BackgroundColor
}

func directionToLatLongUV(dir core.Vec3) (u, v float64) {
	d := dir.Normalize()
	phi := math.Atan2(d.Z, d.X)
	theta := math.Acos(math.Max(-1, math.Min(1, d.Y)))
	u = (phi + math.Pi) / (2 * math.Pi)
	v = theta / math.Pi
	return u, v
}

// Lights implements pkg/tracer.Scene.
func (s *Scene) Lights() []lights.Light { return s.LightList }

func (s *Scene) AmbientLight() core.Vec3 { return s.AmbientColor }
func (s *Scene) MaxDepth() int           { return s.MaxDepthVal }
func (s *Scene) ShadowEps() float64 {
	if s.ShadowEpsVal == 0 {
		return 1e-4
	}
	return s.ShadowEpsVal
}
