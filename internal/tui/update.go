package tui

import (
	"errors"
	"fmt"

	list "github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"worldmap/internal/engine"
	"worldmap/internal/status"
	"worldmap/internal/viewport"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case frameMsg:
		m.world.Tick()
		return m, m.tick()
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		m.handleMouse(msg)
	}
	return m, nil
}

// resize fits the viewport and side panels to the terminal.
func (m *Model) resize() {
	lo := m.layout()
	m.world.View.SetScreen(float64(lo.mapW*2), float64(lo.mapH*4))
	m.l.SetSize(sidebarWidth-2, lo.contentH-2)
	m.tbl.SetHeight(min(lo.contentH-4, 20))
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// While the list is filtering every key belongs to it.
	if m.showSidebar && m.l.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.l, cmd = m.l.Update(msg)
		return m, cmd
	}
	if m.showTable {
		switch msg.String() {
		case "esc", "s":
			m.showTable = false
			return m, nil
		case "ctrl+c", "q":
			return m, tea.Quit
		}
		var cmd tea.Cmd
		m.tbl, cmd = m.tbl.Update(msg)
		return m, cmd
	}

	lo := m.layout()
	cx, cy := float64(lo.mapW), float64(lo.mapH*2)
	switch key := msg.String(); key {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "left", "h":
		m.world.Pan(viewport.Left)
	case "right", "l":
		m.world.Pan(viewport.Right)
	case "up", "k", "down", "j":
		if m.showSidebar {
			var cmd tea.Cmd
			m.l, cmd = m.l.Update(msg)
			return m, cmd
		}
		if key == "up" || key == "k" {
			m.world.Pan(viewport.Up)
		} else {
			m.world.Pan(viewport.Down)
		}
	case "+", "=":
		m.world.Scroll(1, cx, cy)
	case "-", "_":
		m.world.Scroll(-1, cx, cy)
	case "r":
		m.world.View.Reset()
		m.status = "view reset"
	case "0", "1", "2", "3":
		m.setStatus(status.Status(key[0] - '0'))
	case "c":
		c, st, err := m.world.CycleSelectedStatus()
		m.afterStatus(c.Name, st, err)
	case "tab":
		m.showSidebar = !m.showSidebar
		m.resize()
		if m.showSidebar {
			m.refreshCountries()
		}
	case "enter":
		if m.showSidebar {
			m.pickCountry()
		}
	case "s":
		m.refreshTable()
		m.showTable = true
	case "esc":
		m.world.ClearSelection()
		m.status = "selection cleared"
	case "?":
		m.helpVisible = !m.helpVisible
	default:
		if m.showSidebar {
			var cmd tea.Cmd
			m.l, cmd = m.l.Update(msg)
			return m, cmd
		}
	}
	return m, nil
}

func (m *Model) setStatus(st status.Status) {
	c, err := m.world.SetSelectedStatus(st)
	m.afterStatus(c.Name, st, err)
}

func (m *Model) afterStatus(name string, st status.Status, err error) {
	switch {
	case errors.Is(err, engine.ErrNoSelection):
		m.status = "click a country first"
	case err != nil:
		m.log.Error("saving status", zap.Error(err))
		m.status = "save failed: " + err.Error()
	default:
		m.status = fmt.Sprintf("%s: %s", name, st)
		m.refreshCountries()
	}
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	lo := m.layout()
	inMap := lo.inMap(msg.X, msg.Y)
	x, y := lo.toMicro(msg.X, msg.Y)

	switch msg.Action {
	case tea.MouseActionPress:
		if !inMap {
			return
		}
		switch msg.Button {
		case tea.MouseButtonLeft:
			m.world.PointerPress(x, y)
		case tea.MouseButtonWheelUp:
			m.world.Scroll(1, x, y)
		case tea.MouseButtonWheelDown:
			m.world.Scroll(-1, x, y)
		}
	case tea.MouseActionMotion:
		if m.world.Gesture() != viewport.Idle {
			m.world.PointerMove(x, y)
		}
	case tea.MouseActionRelease:
		if m.world.Gesture() == viewport.Idle {
			break
		}
		if c, ok := m.world.PointerRelease(x, y); ok {
			m.status = fmt.Sprintf("selected %s (%s)", c.Name, m.world.StatusOf(c))
		}
	}

	m.hovering = inMap
	if !inMap {
		return
	}
	m.hoverLon, m.hoverLat = m.world.View.ScreenToGeo(x, y)
	m.hoverName = ""
	if c, ok := m.world.CountryAt(x, y); ok {
		m.hoverName = c.Name
	}
}
