package tui

import (
	"sort"

	list "github.com/charmbracelet/bubbles/list"

	"worldmap/internal/geom"
	"worldmap/internal/status"
)

type countryItem struct {
	c  geom.Country
	st status.Status
}

func (i countryItem) Title() string { return i.c.Name }
func (i countryItem) Description() string {
	if i.st == status.None {
		return i.c.Code
	}
	return i.c.Code + " · " + i.st.String()
}
func (i countryItem) FilterValue() string { return i.c.Name + " " + i.c.Code }

// refreshCountries rebuilds the sidebar, keeping the cursor where it was.
func (m *Model) refreshCountries() {
	countries := m.world.Store.Countries()
	items := make([]list.Item, 0, len(countries))
	for _, c := range countries {
		items = append(items, countryItem{c: c, st: m.world.StatusOf(c)})
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].(countryItem).c.Name < items[j].(countryItem).c.Name
	})
	idx := m.l.Index()
	m.l.SetItems(items)
	if idx < len(items) {
		m.l.Select(idx)
	}
}

// pickCountry selects the highlighted sidebar entry and centers the map on it.
func (m *Model) pickCountry() {
	it, ok := m.l.SelectedItem().(countryItem)
	if !ok {
		return
	}
	m.world.SelectCountry(it.c.ID)
	m.world.CenterOn(it.c.ID)
	m.status = "selected " + it.c.Name
}
