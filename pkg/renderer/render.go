// Package renderer drives the lock-free work-stealing pixel loop spec.md §5
// describes: one worker per hardware thread (or a configured count), each
// repeatedly fetch-adding a shared atomic pixel counter until the image is
// exhausted, with a distinct per-thread PRNG to avoid contention on a shared
// generator. Grounded on the teacher's pkg/renderer/worker_pool.go Worker/
// RenderStats vocabulary, restructured around the atomic counter spec.md
// mandates instead of the teacher's channel-based tile task queue (the
// teacher renders progressively in passes toward a variance target; this
// tracer renders once, at a fixed sample count per pixel, so there is no
// pass loop to drive).
package renderer

import (
	"math/rand"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/rayforge/raytracer/pkg/camera"
	"github.com/rayforge/raytracer/pkg/core"
	"github.com/rayforge/raytracer/pkg/tracer"
)

// Config collects the per-render parameters spec.md §5/§6 names.
type Config struct {
	Width, Height int
	NumThreads    int // 0 = runtime.NumCPU()
	Seed          int64
}

// RenderStats summarizes one completed render, grounded on the teacher's
// pkg/renderer/stats.go RenderStats shape, trimmed to the fields a
// single-pass fixed-sample renderer can report (no progressive min/max/
// average-samples-used, since every pixel takes the same sample count).
type RenderStats struct {
	TotalPixels  int
	TotalSamples int
	NumWorkers   int
}

// Framebuffer holds the linear HDR color accumulated per pixel, row-major
// from the top-left, ready for pkg/tonemap.
type Framebuffer struct {
	Width, Height int
	Pixels        []core.Vec3
}

func newFramebuffer(width, height int) *Framebuffer {
	return &Framebuffer{Width: width, Height: height, Pixels: make([]core.Vec3, width*height)}
}

// Render implements spec.md §5's work-stealing loop: workers fetch-add a
// shared atomic counter c until c >= width*height, mapping c to
// (x,y) = (c mod W, c div W), tracing every sample camera.Rays(x,y,rng)
// returns for that pixel and averaging them into the framebuffer. Each
// worker owns a distinct *rand.Rand (seeded from cfg.Seed plus its worker
// index) so no two threads ever draw from the same generator.
func Render(scene tracer.Scene, cam *camera.Camera, maxDepth int, cfg Config) (*Framebuffer, RenderStats) {
	numWorkers := cfg.NumThreads
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	fb := newFramebuffer(cfg.Width, cfg.Height)
	totalPixels := int64(cfg.Width * cfg.Height)

	var counter int64 = -1
	var samplesTaken int64

	var wg sync.WaitGroup
	wg.Add(numWorkers)
	for worker := 0; worker < numWorkers; worker++ {
		go func(workerID int) {
			defer wg.Done()
			rng := core.NewRNG(cfg.Seed + int64(workerID))
			renderWorker(scene, cam, maxDepth, fb, &counter, totalPixels, rng, &samplesTaken)
		}(worker)
	}
	wg.Wait()

	stats := RenderStats{
		TotalPixels:  cfg.Width * cfg.Height,
		TotalSamples: int(atomic.LoadInt64(&samplesTaken)),
		NumWorkers:   numWorkers,
	}
	return fb, stats
}

func renderWorker(scene tracer.Scene, cam *camera.Camera, maxDepth int, fb *Framebuffer, counter *int64, totalPixels int64, rng *rand.Rand, samplesTaken *int64) {
	for {
		idx := atomic.AddInt64(counter, 1)
		if idx >= totalPixels {
			return
		}
		x := int(idx) % fb.Width
		y := int(idx) / fb.Width

		rays := cam.Rays(x, y, rng)
		sum := core.Vec3{}
		for _, ray := range rays {
			sum = sum.Add(tracer.Trace(scene, ray, maxDepth, rng))
		}
		fb.Pixels[idx] = sum.Multiply(1.0 / float64(len(rays)))

		atomic.AddInt64(samplesTaken, int64(len(rays)))
	}
}
