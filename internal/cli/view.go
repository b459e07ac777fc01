package cli

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"worldmap/internal/tui"
)

func newViewCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "view [geojson]",
		Short: "Open the interactive map in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var path string
			if len(args) == 1 {
				path = args[0]
			}
			store, err := a.loadMap(path)
			if err != nil {
				return err
			}
			statuses, err := a.openStatuses()
			if err != nil {
				return err
			}
			defer func() {
				if err := statuses.Close(); err != nil {
					a.log.Error("saving statuses on exit", zap.Error(err))
				}
			}()

			// The terminal model resizes the viewport on its first frame.
			world := a.newWorld(store, statuses, 1, 1)
			a.log.Info("starting terminal view", zap.Int("countries", store.NumCountries()))
			return tui.Run(tui.New(world, tui.Options{FPS: a.cfg.UI.FPS}, a.log))
		},
	}
}
