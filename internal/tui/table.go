package tui

import (
	"fmt"

	table "github.com/charmbracelet/bubbles/table"

	"worldmap/internal/status"
)

// refreshTable fills the status table from the store, sorted by code.
func (m *Model) refreshTable() {
	entries := m.world.Statuses.Entries()
	rows := make([]table.Row, 0, len(entries))
	for _, e := range entries {
		if e.Status == status.None {
			continue
		}
		name := "?"
		if c, ok := m.world.Store.LookupCode(e.Code); ok {
			name = c.Name
		}
		rows = append(rows, table.Row{e.Code, name, e.Status.String()})
	}
	m.tbl.SetRows(rows)
}

// summary is the per-status tally shown in the footer.
func (m Model) summary() string {
	counts := m.world.Statuses.Counts()
	return fmt.Sprintf("been %d  lived %d  want %d",
		counts[status.Been], counts[status.Lived], counts[status.Want])
}
