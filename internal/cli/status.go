package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"worldmap/internal/geom"
	"worldmap/internal/status"
)

func newStatusCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Inspect and edit stored country statuses",
	}
	cmd.AddCommand(
		newStatusListCommand(a),
		newStatusSetCommand(a),
		newStatusExportCommand(a),
		newStatusImportCommand(a),
	)
	return cmd
}

func newStatusListCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print every stored status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			statuses, err := a.openStatuses()
			if err != nil {
				return err
			}
			// Names are a nicety; the list still works without a map file.
			names := map[string]string{}
			if store, err := a.loadMap(""); err == nil {
				for _, c := range store.Countries() {
					names[c.Code] = c.Name
				}
			} else {
				a.log.Debug("listing without country names", zap.Error(err))
			}

			t := newTable("Code", "Country", "Status")
			for _, e := range statuses.Entries() {
				t.Row(e.Code, names[e.Code], e.Status.String())
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, t.String())
			counts := statuses.Counts()
			fmt.Fprintf(out, "been %d, lived %d, want %d\n", counts[status.Been], counts[status.Lived], counts[status.Want])
			return nil
		},
	}
}

func newStatusSetCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "set <code> <none|been|lived|want>",
		Short: "Set the status of one country",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			code, ok := geom.NormalizeCode(args[0])
			if !ok {
				return fmt.Errorf("%w: %q", status.ErrInvalidCode, args[0])
			}
			st, err := status.Parse(args[1])
			if err != nil {
				return err
			}
			statuses, err := a.openStatuses()
			if err != nil {
				return err
			}
			if err := statuses.Set(code, st); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", code, st)
			return nil
		},
	}
}

func newStatusExportCommand(a *app) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write statuses as TOML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			statuses, err := a.openStatuses()
			if err != nil {
				return err
			}
			var w io.Writer = cmd.OutOrStdout()
			if out != "" && out != "-" {
				f, err := os.Create(out)
				if err != nil {
					return err
				}
				defer f.Close()
				w = f
			}
			if err := statuses.Export(w); err != nil {
				return fmt.Errorf("exporting statuses: %w", err)
			}
			a.log.Info("exported statuses", zap.Int("entries", statuses.Len()), zap.String("output", out))
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "output", "o", "", "File to write (default stdout)")
	return cmd
}

func newStatusImportCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Merge a TOML export into the status file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			statuses, err := a.openStatuses()
			if err != nil {
				return err
			}
			n, err := statuses.Import(f)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d statuses into %s\n", n, statuses.Path())
			return nil
		},
	}
}
