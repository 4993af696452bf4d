package texture

import (
	"math"

	"github.com/rayforge/raytracer/pkg/core"
)

// VoronoiTexture colors by which feature point is nearest in a jittered 3D
// or 2D cell grid, the same dual-domain split as CheckerboardTexture (spec.md
// §9 Open Question #2). No direct teacher equivalent (the pack has no
// Voronoi texture); grounded on CheckerboardTexture's cell-grid shape and
// extended with a deterministic per-cell feature point hash.
type VoronoiTexture struct {
	ColorA, ColorB core.Vec3
	Scale          float64
	Domain         Domain
}

// NewVoronoiTexture builds a Voronoi texture with the given cell scale.
func NewVoronoiTexture(colorA, colorB core.Vec3, scale float64, domain Domain) *VoronoiTexture {
	return &VoronoiTexture{ColorA: colorA, ColorB: colorB, Scale: scale, Domain: domain}
}

// SampleColor implements Sampler: find the nearest of the 9 (2D) or 27 (3D)
// neighboring cells' jittered feature points and lerp from ColorA to ColorB
// by a weight derived from that point's jitter; the distance itself does
// not change the color.
func (t *VoronoiTexture) SampleColor(u, v float64, point core.Vec3) core.Vec3 {
	if t.Domain == Domain2D {
		return t.sample2D(u * t.Scale, v * t.Scale)
	}
	return t.sample3D(point.Multiply(t.Scale))
}

func (t *VoronoiTexture) sample2D(x, y float64) core.Vec3 {
	cx, cy := math.Floor(x), math.Floor(y)
	nearest := math.Inf(1)
	var hit float64
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			px, py := hash2(int(cx)+dx, int(cy)+dy)
			fx, fy := cx+float64(dx)+px, cy+float64(dy)+py
			d := math.Hypot(x-fx, y-fy)
			if d < nearest {
				nearest = d
				hit = px + py
			}
		}
	}
	return t.blend(nearest, hit)
}

func (t *VoronoiTexture) sample3D(p core.Vec3) core.Vec3 {
	cx, cy, cz := math.Floor(p.X), math.Floor(p.Y), math.Floor(p.Z)
	nearest := math.Inf(1)
	var hit float64
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			for dz := -1; dz <= 1; dz++ {
				px, py, pz := hash3(int(cx)+dx, int(cy)+dy, int(cz)+dz)
				fx, fy, fz := cx+float64(dx)+px, cy+float64(dy)+py, cz+float64(dz)+pz
				d := math.Sqrt((p.X-fx)*(p.X-fx) + (p.Y-fy)*(p.Y-fy) + (p.Z-fz)*(p.Z-fz))
				if d < nearest {
					nearest = d
					hit = px + py + pz
				}
			}
		}
	}
	return t.blend(nearest, hit)
}

func (t *VoronoiTexture) blend(dist, featureHash float64) core.Vec3 {
	w := math.Mod(featureHash+1, 2) / 2 // deterministic pseudo-random in [0,1) from the hash
	return t.ColorA.Lerp(t.ColorB, w)
}

func hash2(x, y int) (float64, float64) {
	h := uint32(x*374761393 + y*668265263)
	h = (h ^ (h >> 13)) * 1274126177
	h ^= h >> 16
	return float64(h%1000) / 1000, float64((h/1000)%1000) / 1000
}

func hash3(x, y, z int) (float64, float64, float64) {
	h := uint32(x*374761393 + y*668265263 + z*2147483647)
	h = (h ^ (h >> 13)) * 1274126177
	h ^= h >> 16
	a := float64(h%1000) / 1000
	b := float64((h/1000)%1000) / 1000
	c := float64((h/1000000)%1000) / 1000
	return a, b, c
}
