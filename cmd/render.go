package cmd

import (
	"bytes"
	"fmt"
	"image/png"
	"math/rand"
	"os"
	"runtime"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"

	"github.com/nlatsos/helios/renderer"
	"github.com/nlatsos/helios/scene"
	"github.com/nlatsos/helios/tracer"
	"github.com/nlatsos/helios/types"
)

// Render a still frame to a png file.
func RenderFrame(ctx *cli.Context) error {
	setupLogging(ctx)

	sc, opts, err := setupScene(ctx)
	if err != nil {
		return err
	}

	r, err := renderer.NewDefault(sc, tracer.NewPerfectScheduler(), opts)
	if err != nil {
		return err
	}
	defer r.Close()

	logger.Notice("rendering frame")
	frame, err := r.Render()
	if err != nil {
		return err
	}
	displayFrameStats(r.Stats())

	imgFile := ctx.String("out")
	f, err := os.Create(imgFile)
	if err != nil {
		return err
	}
	defer f.Close()

	if err = png.Encode(f, frame); err != nil {
		return err
	}
	logger.Noticef("wrote frame to %s", imgFile)

	return nil
}

// Render a continuously refining view of the scene in an opengl window.
func RenderInteractive(ctx *cli.Context) error {
	setupLogging(ctx)

	sc, opts, err := setupScene(ctx)
	if err != nil {
		return err
	}

	// The glfw event loop must stay on the main thread.
	runtime.LockOSThread()

	r, err := renderer.NewInteractive(sc, tracer.NewPerfectScheduler(), opts)
	if err != nil {
		return err
	}
	defer r.Close()

	_, err = r.Render()
	return err
}

// Build the demo scene and its camera from the cli flags.
func setupScene(ctx *cli.Context) (*scene.Scene, renderer.Options, error) {
	opts := renderer.Options{
		NumWorkers: ctx.Int("workers"),
		Seed:       ctx.Int64("seed"),
	}

	var meshFile string
	if ctx.NArg() > 0 {
		meshFile = ctx.Args().First()
	}

	sc, err := buildDemoScene(meshFile, rand.New(rand.NewSource(opts.Seed)))
	if err != nil {
		return nil, opts, err
	}
	sc.Camera = cameraFromFlags(ctx)

	return sc, opts, nil
}

func cameraFromFlags(ctx *cli.Context) *scene.Camera {
	cam := &scene.Camera{
		Eye:          vec3FromFlag(ctx, "eye", 0, 2, 7),
		Up:           vec3FromFlag(ctx, "up", 0, 1, 0),
		ScreenW:      uint32(ctx.Int("width")),
		ScreenH:      uint32(ctx.Int("height")),
		FocalLength:  1.0,
		FocusDist:    float32(ctx.Float64("focus-dist")),
		LensRadius:   float32(ctx.Float64("aperture")),
		AASamples:    uint32(ctx.Int("spp")),
		PathDepth:    uint32(ctx.Int("num-bounces")),
		PathSamples:  uint32(ctx.Int("branching")),
		MaxTraceDist: float32(ctx.Float64("max-dist")),
		Gamma:        float32(ctx.Float64("gamma")),
	}
	cam.ViewDir = vec3FromFlag(ctx, "look-at", 0, 1, 0).Sub(cam.Eye).Normalize()

	if ctx.Bool("ortho") {
		cam.Projection = scene.Orthographic
	}
	if ctx.Bool("debug-shading") {
		cam.Shading = scene.PhongDebug
	}

	return cam
}

// Parse a "x,y,z" vector flag, falling back to the given defaults when the
// flag is unset or malformed.
func vec3FromFlag(ctx *cli.Context, name string, dx, dy, dz float32) types.Vec3 {
	val := ctx.String(name)
	if val == "" {
		return types.XYZ(dx, dy, dz)
	}

	var x, y, z float32
	if _, err := fmt.Sscanf(val, "%f,%f,%f", &x, &y, &z); err != nil {
		logger.Warningf("ignoring malformed value %q for flag %s", val, name)
		return types.XYZ(dx, dy, dz)
	}
	return types.XYZ(x, y, z)
}

func displayFrameStats(stats renderer.FrameStats) {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Worker", "Block height", "% of frame", "Render time"})
	for _, stat := range stats.Workers {
		table.Append([]string{
			stat.Id,
			fmt.Sprintf("%d", stat.BlockH),
			fmt.Sprintf("%02.1f %%", stat.FramePercent),
			stat.RenderTime.String(),
		})
	}
	table.SetFooter([]string{"", "", "TOTAL", stats.RenderTime.String()})

	table.Render()
	logger.Noticef("frame statistics\n%s", buf.String())
}
