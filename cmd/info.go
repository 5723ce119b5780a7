package cmd

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"

	"github.com/nlatsos/helios/asset"
)

// Print geometry statistics for a wavefront OBJ file.
func MeshInfo(ctx *cli.Context) error {
	setupLogging(ctx)

	if ctx.NArg() != 1 {
		return errors.New("missing mesh file argument")
	}

	data, err := asset.ReadWavefrontFile(ctx.Args().First())
	if err != nil {
		return err
	}

	box := data.BBox()

	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Property", "Value"})
	table.Append([]string{"Vertices", fmt.Sprintf("%d", len(data.Positions)/3)})
	table.Append([]string{"Triangles", fmt.Sprintf("%d", data.TriangleCount())})
	table.Append([]string{"Bounds min", fmt.Sprintf("(%.3f, %.3f, %.3f)", box.Min[0], box.Min[1], box.Min[2])})
	table.Append([]string{"Bounds max", fmt.Sprintf("(%.3f, %.3f, %.3f)", box.Max[0], box.Max[1], box.Max[2])})
	table.Render()

	logger.Noticef("mesh statistics for %s\n%s", ctx.Args().First(), buf.String())

	return nil
}
