// Package camera builds the right-handed (or left-handed) orthonormal
// camera frame spec.md §4.3 describes and generates stratified, optionally
// depth-of-field, sample rays per pixel. Grounded on the teacher's
// pkg/renderer/camera.go pinhole skeleton (origin/horizontal/vertical/
// lowerLeftCorner fields, GetRay shape), generalized to the near-plane/
// fov_y construction and sampling spec.md names, with the exact frame
// and ray-corner math following original_source/camera.cpp.
package camera

import (
	"math"
	"math/rand"

	"github.com/rayforge/raytracer/pkg/core"
)

// NearPlane is the l,r,b,t extent of the image plane in camera space at
// NearDistance (spec.md §6's Camera/NearPlane element).
type NearPlane struct {
	Left, Right, Bottom, Top float64
}

// Config collects every field the XML Camera element can set (spec.md §6).
type Config struct {
	Position      core.Vec3
	Gaze          core.Vec3 // ignored when GazePoint is set (LookAt)
	GazePoint     core.Vec3
	UseGazePoint  bool
	Up            core.Vec3
	NearPlane     NearPlane
	NearDistance  float64
	FovY          float64 // degrees; used instead of NearPlane when LookAt
	ImageWidth    int
	ImageHeight   int
	LeftHanded    bool
	NumSamples    int
	FocusDistance float64
	ApertureSize  float64
}

// Camera is the built orthonormal frame plus sampling parameters, ready to
// generate rays (spec.md §4.3).
type Camera struct {
	position                core.Vec3
	u, v, w                 core.Vec3
	imgCenter                core.Vec3
	corner                   core.Vec3 // q = imgCenter + v*top + u*left
	pixelWidth, pixelHeight  float64
	imageWidth, imageHeight  int
	focusDistance            float64
	apertureSize             float64
	nx, ny                   int // stratified grid dims for NumSamples
	numSamples               int
}

// New builds a Camera frame from a Config, resolving LookAt's FovY into a
// NearPlane the same way original_source/camera.cpp does.
func New(cfg Config) *Camera {
	gaze := cfg.Gaze
	if cfg.UseGazePoint {
		gaze = cfg.GazePoint.Subtract(cfg.Position)
	}
	gaze = gaze.Normalize()
	up := cfg.Up.Normalize()

	np := cfg.NearPlane
	if cfg.FovY > 0 {
		rad := cfg.FovY * math.Pi / 360
		top := math.Tan(rad) * cfg.NearDistance
		aspect := float64(cfg.ImageWidth) / float64(cfg.ImageHeight)
		right := top * aspect
		np = NearPlane{Left: -right, Right: right, Bottom: -top, Top: top}
	}

	w := gaze.Multiply(-1)
	u := up.Cross(w).Normalize()
	if cfg.LeftHanded {
		u = u.Multiply(-1)
	}
	v := w.Cross(u).Normalize()

	imgCenter := cfg.Position.Subtract(w.Multiply(cfg.NearDistance))
	corner := imgCenter.Add(v.Multiply(np.Top)).Add(u.Multiply(np.Left))

	nx, ny := core.StratifiedGridDims(maxInt(cfg.NumSamples, 1))

	return &Camera{
		position:      cfg.Position,
		u:             u, v: v, w: w,
		imgCenter:     imgCenter,
		corner:        corner,
		pixelWidth:    (np.Right - np.Left) / float64(cfg.ImageWidth),
		pixelHeight:   (np.Top - np.Bottom) / float64(cfg.ImageHeight),
		imageWidth:    cfg.ImageWidth,
		imageHeight:   cfg.ImageHeight,
		focusDistance: cfg.FocusDistance,
		apertureSize:  cfg.ApertureSize,
		nx:            nx, ny: ny,
		numSamples: maxInt(cfg.NumSamples, 1),
	}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// Rays returns the sample rays for pixel (x,y): one ray through the pixel
// center when NumSamples<=1, else an nx*ny stratified grid with one jittered
// sample per cell and a uniform random shutter time, per spec.md §4.3.
// DoF (FocusDistance, ApertureSize>0) shifts the origin across the aperture
// and re-aims at the focal point along the original (undeformed) direction.
func (c *Camera) Rays(x, y int, rng *rand.Rand) []core.Ray {
	if c.numSamples <= 1 {
		return []core.Ray{c.rayThrough(float64(x)+0.5, float64(y)+0.5, rng)}
	}

	rays := make([]core.Ray, 0, c.nx*c.ny)
	for i := 0; i < c.nx; i++ {
		for j := 0; j < c.ny; j++ {
			jx := (float64(i) + rng.Float64()) / float64(c.nx)
			jy := (float64(j) + rng.Float64()) / float64(c.ny)
			rays = append(rays, c.rayThrough(float64(x)+jx, float64(y)+jy, rng))
		}
	}
	return rays
}

func (c *Camera) rayThrough(px, py float64, rng *rand.Rand) core.Ray {
	su := px * c.pixelWidth
	sv := py * c.pixelHeight
	s := c.corner.Add(c.u.Multiply(su)).Subtract(c.v.Multiply(sv))

	origin := c.position
	direction := s.Subtract(origin).Normalize()

	if c.apertureSize > 0 && c.focusDistance > 0 {
		focalPoint := origin.Add(direction.Multiply(c.focusDistance))
		disk := core.RandomInUnitDisk(rng)
		origin = origin.Add(c.u.Multiply(disk.X * c.apertureSize)).Add(c.v.Multiply(disk.Y * c.apertureSize))
		direction = focalPoint.Subtract(origin).Normalize()
	}

	ray := core.NewRay(origin, direction)
	return ray.WithTime(rng.Float64())
}
