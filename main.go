package main

import (
	"os"

	"github.com/urfave/cli"

	"github.com/nlatsos/helios/cmd"
)

func main() {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	renderFlags := []cli.Flag{
		cli.IntFlag{
			Name:  "width",
			Value: 512,
			Usage: "frame width",
		},
		cli.IntFlag{
			Name:  "height",
			Value: 512,
			Usage: "frame height",
		},
		cli.IntFlag{
			Name:  "spp",
			Value: 16,
			Usage: "anti-aliasing samples per pixel (rounded down to a perfect square)",
		},
		cli.IntFlag{
			Name:  "num-bounces",
			Value: 5,
			Usage: "max path recursion depth",
		},
		cli.IntFlag{
			Name:  "branching",
			Value: 1,
			Usage: "scatter samples per path vertex",
		},
		cli.Float64Flag{
			Name:  "gamma",
			Value: 2.2,
			Usage: "output gamma correction",
		},
		cli.Float64Flag{
			Name:  "focus-dist",
			Value: 7.0,
			Usage: "distance to the focus plane",
		},
		cli.Float64Flag{
			Name:  "aperture",
			Value: 0.0,
			Usage: "lens radius; 0 disables depth of field",
		},
		cli.Float64Flag{
			Name:  "max-dist",
			Value: 1000.0,
			Usage: "max ray travel distance",
		},
		cli.StringFlag{
			Name:  "eye",
			Usage: "camera position as x,y,z",
		},
		cli.StringFlag{
			Name:  "look-at",
			Usage: "camera target as x,y,z",
		},
		cli.StringFlag{
			Name:  "up",
			Usage: "camera up vector as x,y,z",
		},
		cli.BoolFlag{
			Name:  "ortho",
			Usage: "use an orthographic projection",
		},
		cli.BoolFlag{
			Name:  "debug-shading",
			Usage: "use single-bounce phong shading instead of path tracing",
		},
		cli.IntFlag{
			Name:  "workers",
			Value: 0,
			Usage: "number of render workers; 0 selects one per logical CPU",
		},
		cli.Int64Flag{
			Name:  "seed",
			Value: 42,
			Usage: "base seed for the render random sources",
		},
	}

	app := cli.NewApp()
	app.Name = "helios"
	app.Usage = "render scenes using path tracing"
	app.Version = "0.0.1"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:   "render",
			Usage:  "render the demo scene",
			Action: nil,
			Subcommands: []cli.Command{
				{
					Name:  "frame",
					Usage: "render single frame",
					Description: `
Render a single frame of the demo scene and write it to a png file. An
optional wavefront obj file argument adds that mesh to the scene.`,
					ArgsUsage: "[mesh.obj]",
					Flags: append(renderFlags, cli.StringFlag{
						Name:  "out, o",
						Value: "frame.png",
						Usage: "image filename for the rendered frame",
					}),
					Action: cmd.RenderFrame,
				},
				{
					Name:  "interactive",
					Usage: "render interactive view of the scene",
					Description: `
Open an opengl window with a progressively refining view of the demo
scene. Arrow keys move the camera (shift doubles the speed), dragging
with the left mouse button rotates it and ESC quits.`,
					ArgsUsage: "[mesh.obj]",
					Flags:     renderFlags,
					Action:    cmd.RenderInteractive,
				},
			},
		},
		{
			Name:      "info",
			Usage:     "print geometry statistics for a wavefront obj file",
			ArgsUsage: "mesh.obj",
			Action:    cmd.MeshInfo,
		},
	}

	app.Run(os.Args)
}
