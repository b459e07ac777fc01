package cli

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
)

func newCountriesCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "countries [geojson]",
		Short: "List the countries found in the map file",
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

			t := newTable("Code", "Country", "Polygons", "Status")
			for _, c := range store.Countries() {
				t.Row(c.Code, c.Name, strconv.Itoa(c.PolygonCount), statuses.Get(c.Code).String())
			}
			fmt.Fprintln(cmd.OutOrStdout(), t.String())
			fmt.Fprintf(cmd.OutOrStdout(), "%d countries, %d polygons\n", store.NumCountries(), store.NumPolygons())
			return nil
		},
	}
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("#243141"))).
		Headers(headers...)
}
