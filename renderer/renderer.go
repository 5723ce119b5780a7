// Package renderer drives the parallel evaluation of camera rays into an
// 8-bit RGB raster.
package renderer

import (
	"fmt"
	"image"
	"math/rand"
	"runtime"
	"sync"
	"time"

	"github.com/chewxy/math32"

	"github.com/nlatsos/helios/log"
	"github.com/nlatsos/helios/scene"
	"github.com/nlatsos/helios/tracer"
	"github.com/nlatsos/helios/types"
)

type Renderer interface {
	// Render frame.
	Render() (*image.RGBA, error)

	// Shutdown renderer and release buffers.
	Close()

	// Get render statistics.
	Stats() FrameStats
}

// The default renderer partitions the frame into one block of rows per
// worker and traces the blocks concurrently. The scene is shared read-only
// and every block owns a disjoint slice of the output, so no locking is
// needed anywhere on the hot path.
type defaultRenderer struct {
	scene      *scene.Scene
	integrator *tracer.Integrator
	scheduler  tracer.BlockScheduler
	options    Options
	logger     log.Logger

	frameW uint32
	frameH uint32

	// Accumulated linear radiance (3 floats per pixel) across passes and
	// the quantized output frame.
	accumBuffer []float32
	passCount   uint32
	frame       *image.RGBA

	lastBlockStats []tracer.BlockStats
	stats          FrameStats

	closed bool
}

// Create a renderer for the given scene using the supplied block
// scheduler. The camera's anti-aliasing sample count gets rounded down to
// a perfect square so sub-pixel sampling stratifies cleanly.
func NewDefault(sc *scene.Scene, scheduler tracer.BlockScheduler, opts Options) (Renderer, error) {
	if sc == nil {
		return nil, ErrSceneNotDefined
	}
	if sc.Camera == nil {
		return nil, ErrCameraNotDefined
	}

	cam := sc.Camera
	if cam.ScreenW == 0 || cam.ScreenH == 0 {
		return nil, ErrInvalidFrameDims
	}
	if cam.AASamples == 0 {
		return nil, ErrNoSamplesPerPixel
	}

	if opts.NumWorkers <= 0 {
		opts.NumWorkers = runtime.NumCPU()
	}

	r := &defaultRenderer{
		scene:      sc,
		integrator: tracer.NewIntegrator(sc),
		scheduler:  scheduler,
		options:    opts,
		logger:     log.New("renderer"),
		frameW:     cam.ScreenW,
		frameH:     cam.ScreenH,
	}

	if rootN := uint32(math32.Sqrt(float32(cam.AASamples))); rootN*rootN != cam.AASamples {
		r.logger.Noticef("rounding %d AA samples down to %d for stratification", cam.AASamples, rootN*rootN)
		cam.AASamples = rootN * rootN
	}

	r.accumBuffer = make([]float32, r.frameW*r.frameH*3)
	r.frame = image.NewRGBA(image.Rect(0, 0, int(r.frameW), int(r.frameH)))

	return r, nil
}

func (r *defaultRenderer) Render() (*image.RGBA, error) {
	if r.closed {
		return nil, ErrAlreadyClosed
	}

	r.resetAccumulator()
	if err := r.renderPass(); err != nil {
		return nil, err
	}
	r.resolveFrame()

	return r.frame, nil
}

func (r *defaultRenderer) Close() {
	r.closed = true
	r.accumBuffer = nil
	r.frame = nil
}

func (r *defaultRenderer) Stats() FrameStats {
	return r.stats
}

func (r *defaultRenderer) resetAccumulator() {
	for i := range r.accumBuffer {
		r.accumBuffer[i] = 0
	}
	r.passCount = 0
}

// Trace one full pass over the frame, accumulating linear radiance. Block
// heights come from the scheduler which feeds back per-worker timings from
// the previous pass.
func (r *defaultRenderer) renderPass() error {
	if r.closed {
		return ErrAlreadyClosed
	}

	assignments := r.scheduler.Schedule(r.options.NumWorkers, r.frameH, r.lastBlockStats)
	blockStats := make([]tracer.BlockStats, len(assignments))

	start := time.Now()
	var wg sync.WaitGroup
	var blockY uint32
	for idx, blockH := range assignments {
		if blockH == 0 {
			continue
		}

		wg.Add(1)
		go func(worker int, blockY, blockH uint32) {
			defer wg.Done()

			// Derive a per-block source so frames only depend on the seed,
			// never on goroutine interleaving.
			rng := rand.New(rand.NewSource(r.options.Seed + int64(r.passCount)*int64(r.frameH) + int64(blockY)))

			blockStart := time.Now()
			r.renderBlock(blockY, blockH, rng)
			blockStats[worker] = tracer.BlockStats{
				BlockH:    blockH,
				BlockTime: time.Since(blockStart),
			}
		}(idx, blockY, blockH)

		blockY += blockH
	}
	wg.Wait()

	r.passCount++
	r.lastBlockStats = blockStats
	r.collectStats(blockStats, time.Since(start))
	r.logger.Debugf("rendered pass %d in %d ms", r.passCount, time.Since(start).Nanoseconds()/1000000)

	return nil
}

// Trace every pixel in the block and add the AA-averaged radiance into the
// accumulation buffer.
func (r *defaultRenderer) renderBlock(blockY, blockH uint32, rng *rand.Rand) {
	cam := r.scene.Camera

	for y := blockY; y < blockY+blockH; y++ {
		for x := uint32(0); x < r.frameW; x++ {
			rays := cam.GenerateRays(x, y, rng)

			var color types.Vec3
			for i := range rays {
				color = color.Add(r.integrator.Trace(&rays[i], rng))
			}
			color = color.Mul(1.0 / float32(len(rays)))

			offset := (y*r.frameW + x) * 3
			r.accumBuffer[offset] += color[0]
			r.accumBuffer[offset+1] += color[1]
			r.accumBuffer[offset+2] += color[2]
		}
	}
}

// Convert the accumulated radiance into the 8-bit output frame: average
// over passes, desaturate highlights, gamma correct and quantize.
func (r *defaultRenderer) resolveFrame() {
	cam := r.scene.Camera
	invPasses := 1.0 / float32(r.passCount)
	invGamma := 1.0 / cam.Gamma

	for y := uint32(0); y < r.frameH; y++ {
		for x := uint32(0); x < r.frameW; x++ {
			offset := (y*r.frameW + x) * 3
			color := types.XYZ(
				r.accumBuffer[offset]*invPasses,
				r.accumBuffer[offset+1]*invPasses,
				r.accumBuffer[offset+2]*invPasses,
			)
			color = desaturateHighlights(color)

			pix := r.frame.Pix[y*uint32(r.frame.Stride)+x*4:]
			pix[0] = quantize(color[0], invGamma)
			pix[1] = quantize(color[1], invGamma)
			pix[2] = quantize(color[2], invGamma)
			pix[3] = 0xff
		}
	}
}

// Saturate excessively bright colors towards white by bleeding the excess
// of any channel above 1.0 into the other two, instead of clamping.
func desaturateHighlights(color types.Vec3) types.Vec3 {
	out := color
	for i := 0; i < 3; i++ {
		if d := color[i] - 1.0; d > 0 {
			out[(i+1)%3] += d
			out[(i+2)%3] += d
		}
	}
	return out
}

// Gamma-correct a clamped channel and quantize it to 8 bits.
func quantize(channel, invGamma float32) uint8 {
	if channel < 0 {
		channel = 0
	} else if channel > 1 {
		channel = 1
	}
	return uint8(math32.Pow(channel, invGamma) * 255.9999)
}

func (r *defaultRenderer) collectStats(blockStats []tracer.BlockStats, total time.Duration) {
	r.stats = FrameStats{
		Workers:    make([]WorkerStat, len(blockStats)),
		RenderTime: total,
	}
	for idx, stat := range blockStats {
		r.stats.Workers[idx] = WorkerStat{
			Id:           fmt.Sprintf("cpu-worker-%d", idx),
			BlockH:       stat.BlockH,
			FramePercent: 100.0 * float32(stat.BlockH) / float32(r.frameH),
			RenderTime:   stat.BlockTime,
		}
	}
}
