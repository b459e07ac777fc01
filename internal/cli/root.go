// Package cli wires the worldmap commands together with cobra.
package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"worldmap/internal/config"
	"worldmap/internal/engine"
	"worldmap/internal/geom"
	"worldmap/internal/logger"
	"worldmap/internal/status"
	"worldmap/internal/viewport"
)

// app is the state shared by every command of one invocation.
type app struct {
	v          *viper.Viper
	configPath string
	cfg        *config.Config
	log        *zap.Logger
}

// NewRootCommand builds the command tree. Each call has its own viper
// instance, so tests can run commands side by side.
func NewRootCommand() *cobra.Command {
	a := &app{v: config.New(), log: zap.NewNop()}

	root := &cobra.Command{
		Use:           "worldmap",
		Short:         "Explore a world map and track the countries you have been to, lived in or want to visit",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			a.cfg, err = config.Load(a.v, a.configPath)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			if cmd.Name() == "view" {
				a.log, err = logger.NewFile(a.cfg.Log.Level, a.cfg.Log.File)
			} else {
				a.log, err = logger.New(a.cfg.Log.Level)
			}
			if err != nil {
				return fmt.Errorf("building logger: %w", err)
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.log.Sync()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "Path to a yaml or toml configuration file")
	flags.String("map", "", "GeoJSON FeatureCollection of country polygons")
	flags.String("status-file", "", "Binary country status file")
	flags.String("log-level", "", "Log level: debug, info, warn or error")
	_ = a.v.BindPFlag("map.path", flags.Lookup("map"))
	_ = a.v.BindPFlag("status.path", flags.Lookup("status-file"))
	_ = a.v.BindPFlag("log.level", flags.Lookup("log-level"))

	root.AddCommand(
		newViewCommand(a),
		newRenderCommand(a),
		newCountriesCommand(a),
		newStatusCommand(a),
	)
	return root
}

// Execute runs the command tree against os.Args.
func Execute() error {
	root := NewRootCommand()
	if err := root.Execute(); err != nil {
		root.PrintErrln("Error:", err)
		return err
	}
	return nil
}

// loadMap ingests the configured GeoJSON file, or path when it is set.
func (a *app) loadMap(path string) (*geom.Store, error) {
	if path == "" {
		path = a.cfg.Map.Path
	}
	store, stats, err := geom.Load(path, a.log)
	if err != nil {
		return nil, fmt.Errorf("loading map: %w", err)
	}
	a.log.Debug("map loaded",
		zap.String("path", path),
		zap.Int("countries", store.NumCountries()),
		zap.Int("polygons", stats.Polygons),
		zap.Int("skipped", stats.Skipped))
	return store, nil
}

// openStatuses opens the status file. A corrupt file is logged and
// replaced by an empty store, any other error is returned.
func (a *app) openStatuses() (*status.Store, error) {
	s, err := status.Open(a.cfg.Status.Path, a.log)
	if errors.Is(err, status.ErrCorrupt) {
		a.log.Warn("status file is corrupt, starting empty", zap.Error(err))
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening status file: %w", err)
	}
	return s, nil
}

// newWorld builds an engine over store sized to a w x h pixel screen.
func (a *app) newWorld(store *geom.Store, statuses *status.Store, w, h float64) *engine.World {
	vc := a.cfg.Viewport
	vp := viewport.New(w, h, viewport.Options{
		PanStep:   vc.PanStep,
		Smoothing: vc.Smoothing,
		Epsilon:   vc.Epsilon,
	})
	return engine.New(store, vp, statuses, engine.Options{ClickThreshold: vc.ClickThreshold}, a.log)
}
