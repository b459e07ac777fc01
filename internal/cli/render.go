package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"worldmap/internal/palette"
	"worldmap/internal/raster"
	"worldmap/internal/viewport"
)

type renderOptions struct {
	out    string
	width  int
	height int
	zoom   float64
	code   string
}

func newRenderCommand(a *app) *cobra.Command {
	var opts renderOptions
	cmd := &cobra.Command{
		Use:   "render [geojson]",
		Short: "Render the map with statuses to a PNG file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var path string
			if len(args) == 1 {
				path = args[0]
			}
			return a.render(cmd, path, opts)
		},
	}
	f := cmd.Flags()
	f.StringVarP(&opts.out, "output", "o", "worldmap.png", "PNG file to write")
	f.IntVar(&opts.width, "width", 0, "Image width in pixels (default screen.width)")
	f.IntVar(&opts.height, "height", 0, "Image height in pixels (default screen.height)")
	f.Float64Var(&opts.zoom, "zoom", 1, "Zoom factor")
	f.StringVar(&opts.code, "select", "", "Highlight, center on and label this country code")
	return cmd
}

func (a *app) render(cmd *cobra.Command, path string, opts renderOptions) error {
	if opts.width <= 0 {
		opts.width = a.cfg.Screen.Width
	}
	if opts.height <= 0 {
		opts.height = a.cfg.Screen.Height
	}
	store, err := a.loadMap(path)
	if err != nil {
		return err
	}
	statuses, err := a.openStatuses()
	if err != nil {
		return err
	}

	world := a.newWorld(store, statuses, float64(opts.width), float64(opts.height))
	world.View.SetZoom(viewport.ClampZoom(opts.zoom))

	var label string
	if opts.code != "" {
		c, ok := world.SelectCode(opts.code)
		if !ok {
			return fmt.Errorf("no country with code %q", opts.code)
		}
		world.CenterOn(c.ID)
		label = fmt.Sprintf("%s (%s)", c.Name, world.StatusOf(c))
	}

	img := raster.NewImage(opts.width, opts.height, palette.RGBA(world.Palette.Ocean))
	world.Draw(img)
	if label != "" {
		x := (opts.width - raster.LabelWidth(label)) / 2
		img.Label(max(4, x), 16, label, palette.RGBA(world.Palette.Label))
	}
	if err := img.SavePNG(opts.out); err != nil {
		return fmt.Errorf("writing %s: %w", opts.out, err)
	}
	a.log.Info("rendered map", zap.String("output", opts.out), zap.Int("width", opts.width), zap.Int("height", opts.height))
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%dx%d)\n", opts.out, opts.width, opts.height)
	return nil
}
