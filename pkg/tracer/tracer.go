// Package tracer implements the recursive Whitted-style trace loop spec.md
// §4.5 describes: mirror/dielectric/conductor specular branches, Beer-
// Lambert absorption inside dielectrics, and direct lighting with ambient +
// shadowed per-light BRDF contributions. Grounded on the teacher's
// pkg/material/dielectric.go and pkg/material/metal.go reflect/refract/
// Fresnel helpers, restructured away from the teacher's stochastic
// path-tracing split (Scatter/PDF/EvaluateBRDF) into the weighted recursive
// branch spec.md names.
package tracer

import (
	"math"
	"math/rand"

	"github.com/rayforge/raytracer/pkg/core"
	"github.com/rayforge/raytracer/pkg/lights"
	"github.com/rayforge/raytracer/pkg/material"
	"github.com/rayforge/raytracer/pkg/texture"
)

// Scene is the minimal capability the tracer needs from a scene: closest-hit
// and shadow queries, the light list, background, and the render-time
// parameters spec.md §6/§7 stores on the Scene element. pkg/scene.Scene
// satisfies this.
type Scene interface {
	Hit(ray core.Ray) (*core.RayHit, bool)
	ShadowHit(ray core.Ray, tMin, tMax float64) bool
	Background(ray core.Ray) core.Vec3
	Lights() []lights.Light
	AmbientLight() core.Vec3
	MaxDepth() int
	ShadowEps() float64
}

// ignorableLight is implemented by Object-backed lights (SphereLight,
// MeshLight) so their shadow rays can set ignore_object_id and avoid
// self-shadowing (spec.md §4.4).
type ignorableLight interface {
	ObjectID() int
}

// Trace implements spec.md §4.5's trace(ray, depth) -> Vec3.
func Trace(scene Scene, ray core.Ray, depth int, rng *rand.Rand) core.Vec3 {
	if depth < 0 {
		return core.Vec3{}
	}

	hit, ok := scene.Hit(ray)
	if !ok {
		return scene.Background(ray)
	}

	mat, _ := hit.Material.(material.Material)

	switch mat.Type {
	case material.Mirror:
		return traceMirror(scene, ray, hit, mat, depth, rng)
	case material.Dielectric:
		return traceDielectric(scene, ray, hit, mat, depth, rng)
	case material.Conductor:
		return traceConductor(scene, ray, hit, mat, depth, rng)
	}

	// Step 4: inside a dielectric medium, suppress diffuse/emissive/ambient.
	if ray.N != 1 {
		return core.Vec3{}
	}

	if !hit.Radiance.IsZero() {
		return hit.Radiance
	}

	return shade(scene, ray, hit, mat, rng)
}

// Reflect implements spec.md §4.6's Reflect(dir, normal, roughness): a
// perfect mirror reflection, then (when roughness>0) a perturbation by
// r*(e1*u+e2*v) in the frame around the reflected vector, e1,e2 ~ U[-0.5,0.5],
// renormalized.
func Reflect(dir, normal core.Vec3, roughness float64, rng *rand.Rand) core.Vec3 {
	reflected := material.Reflect(dir.Multiply(-1), normal)
	if roughness <= 0 {
		return reflected
	}
	onb := core.NewONB(reflected)
	e1 := rng.Float64() - 0.5
	e2 := rng.Float64() - 0.5
	perturbed := reflected.Add(onb.Local(core.NewVec3(e1, e2, 0)).Multiply(roughness))
	return perturbed.Normalize()
}

func traceMirror(scene Scene, ray core.Ray, hit *core.RayHit, mat material.Material, depth int, rng *rand.Rand) core.Vec3 {
	reflected := Reflect(ray.Direction, hit.Normal, mat.Roughness, rng)
	origin := hit.Point.Add(hit.Normal.Multiply(scene.ShadowEps()))
	nextRay := core.NewRay(origin, reflected).WithTime(ray.Time).WithMedium(ray.N)
	color := Trace(scene, nextRay, depth-1, rng)
	return color.MultiplyVec(mat.MirrorReflectance)
}

func traceConductor(scene Scene, ray core.Ray, hit *core.RayHit, mat material.Material, depth int, rng *rand.Rand) core.Vec3 {
	cosI := math.Max(-ray.Direction.Dot(hit.Normal), 0)
	fr := material.ConductorFresnel(cosI, mat.RefractionIndex, mat.AbsorptionIndex)

	reflected := Reflect(ray.Direction, hit.Normal, mat.Roughness, rng)
	origin := hit.Point.Add(hit.Normal.Multiply(scene.ShadowEps()))
	nextRay := core.NewRay(origin, reflected).WithTime(ray.Time).WithMedium(ray.N)
	color := Trace(scene, nextRay, depth-1, rng)
	return color.MultiplyVec(mat.MirrorReflectance).Multiply(fr)
}

// traceDielectric implements spec.md §4.5's dielectric branch: flip the
// normal and swap the relative index when exiting vs entering, compute
// Fresnel, reflect-only on TIR, otherwise split into weighted reflect/
// refract branches and apply Beer-Lambert to whichever leg travels inside
// the medium.
func traceDielectric(scene Scene, ray core.Ray, hit *core.RayHit, mat material.Material, depth int, rng *rand.Rand) core.Vec3 {
	entering := ray.Direction.Dot(hit.Normal) < 0
	normal := hit.Normal
	n1, n2 := 1.0, mat.RefractionIndex
	if !entering {
		normal = hit.Normal.Negate()
		n1, n2 = mat.RefractionIndex, 1.0
	}
	eta := n1 / n2

	incident := ray.Direction.Multiply(-1) // points away from surface, toward origin
	cosI := math.Min(normal.Dot(incident), 1)

	refracted, refractedOK := material.Refract(incident, normal, eta)
	origin := hit.Point.Subtract(normal.Multiply(scene.ShadowEps()))
	reflectOrigin := hit.Point.Add(normal.Multiply(scene.ShadowEps()))

	if !refractedOK {
		reflected := material.Reflect(incident, normal)
		nextRay := core.NewRay(reflectOrigin, reflected).WithTime(ray.Time).WithMedium(ray.N)
		return Trace(scene, nextRay, depth-1, rng)
	}

	fr := material.DielectricFresnel(cosI, n2/n1)

	reflected := material.Reflect(incident, normal)
	reflectRay := core.NewRay(reflectOrigin, reflected).WithTime(ray.Time).WithMedium(ray.N)
	refractRay := core.NewRay(origin, refracted).WithTime(ray.Time).WithMedium(n2)

	reflectColor := Trace(scene, reflectRay, depth-1, rng).Multiply(fr)
	refractColor := Trace(scene, refractRay, depth-1, rng).Multiply(1 - fr)

	// Beer-Lambert attenuates whichever leg travels inside the medium: when
	// the incoming ray is outside (n=1), the refracted leg now travels
	// inside, so attenuate it; when the incoming ray is already inside
	// (n!=1), the reflected leg stays inside, so attenuate that one.
	if ray.N == 1 {
		refractColor = refractColor.MultiplyVec(material.BeerLambert(mat.AbsorptionCoefficient, hit.T))
	} else {
		reflectColor = reflectColor.MultiplyVec(material.BeerLambert(mat.AbsorptionCoefficient, hit.T))
	}

	return reflectColor.Add(refractColor)
}

// shade implements spec.md §4.5 step 6: ambient plus a shadowed BRDF
// contribution per light.
func shade(scene Scene, ray core.Ray, hit *core.RayHit, mat material.Material, rng *rand.Rand) core.Vec3 {
	ka := material.DegammaColor(mat.ResolveAmbient(hit.U, hit.V, hit.Point), mat.Degamma)
	color := ka.MultiplyVec(scene.AmbientLight())

	normal := resolveShadingNormal(mat, hit)
	wo := ray.Direction.Multiply(-1).Normalize()

	kd := material.DegammaColor(mat.ResolveDiffuse(hit.U, hit.V, hit.Point), mat.Degamma)
	ks := material.DegammaColor(mat.SpecularReflectance, mat.Degamma)

	for _, light := range scene.Lights() {
		sample := light.Sample(hit.Point, normal, core.Vec2{X: rng.Float64(), Y: rng.Float64()})
		if sample.Radiance.IsZero() {
			continue
		}
		ignoreID := -1
		if ig, ok := light.(ignorableLight); ok {
			ignoreID = ig.ObjectID()
		}
		if !lights.Visible(scene, hit.Point, normal, sample, scene.ShadowEps(), ignoreID) {
			continue
		}
		weight := mat.KdWeight(normal, wo)
		contribution := mat.Shade(normal, wo, sample.Direction, kd.Multiply(weight), ks)
		color = color.Add(contribution.MultiplyVec(sample.Radiance))
	}

	return color
}

func resolveShadingNormal(mat material.Material, hit *core.RayHit) core.Vec3 {
	if n, ok := mat.SampleNormalMap(hit.U, hit.V, hit.Point); ok {
		t, b, _ := hit.TBN()
		return t.Multiply(n.X).Add(b.Multiply(n.Y)).Add(hit.Normal.Multiply(n.Z)).Normalize()
	}
	if mat.HasBumpMap() {
		if sampler, ok := mat.BumpMap.(texture.ScalarSampler); ok {
			factor := mat.BumpFactor
			if factor == 0 {
				factor = 1
			}
			t, b, n := hit.TBN()
			return texture.BumpMappedNormal(sampler, n, t, b, hit.U, hit.V, hit.Point, factor)
		}
	}
	return hit.Normal
}
