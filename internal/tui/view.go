package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	lo := m.layout()

	header := titleStyle.Render(" worldmap ─ where you've been, lived and want to go ")
	if c, ok := m.world.Selected(); ok {
		header += selectedStyle.Render(fmt.Sprintf("  %s [%s] %s", c.Name, c.Code, m.world.StatusOf(c)))
	}
	header = lipgloss.NewStyle().Width(lo.contentW).MaxHeight(headerHeight).Render(header)

	var mapView string
	if m.showTable {
		box := boxStyle.Render(m.tbl.View())
		mapView = lipgloss.Place(lo.mapW, lo.mapH, lipgloss.Center, lipgloss.Center, box)
	} else {
		mapView = lipgloss.NewStyle().Width(lo.mapW).Height(lo.mapH).Render(m.renderMap(lo.mapW, lo.mapH))
	}

	body := mapView
	if m.showSidebar {
		sidebar := lipgloss.NewStyle().Width(sidebarWidth).Height(lo.contentH).Render(m.l.View())
		body = lipgloss.JoinHorizontal(lipgloss.Top, sidebar, " ", mapView)
	}

	status := dimStyle.Render(" " + m.status + " ")
	coords := fmt.Sprintf("zoom=%.2fx", m.world.View.Zoom)
	if m.hovering {
		coords = fmt.Sprintf("lon=%.3f lat=%.3f  %s", m.hoverLon, m.hoverLat, coords)
		if m.hoverName != "" {
			coords = m.hoverName + "  " + coords
		}
	}
	coords = dimStyle.Render("  " + coords + "  ")
	left := lipgloss.JoinHorizontal(lipgloss.Bottom, status, dimStyle.Render(m.summary()))
	spacerW := max(0, lo.contentW-lipgloss.Width(left)-lipgloss.Width(coords))
	right := lipgloss.Place(spacerW+lipgloss.Width(coords), 1, lipgloss.Right, lipgloss.Center, coords)
	footer := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().Width(lo.contentW).Render(lipgloss.JoinHorizontal(lipgloss.Bottom, left, right)),
		m.renderHelp(),
	)

	ui := lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
	return appStyle.Width(lo.contentW).Height(m.height).Render(ui)
}

func (m Model) renderHelp() string {
	if !m.helpVisible {
		return ""
	}
	keys := []string{
		"←↓↑→/hjkl pan",
		"+/- zoom",
		"click select",
		"0-3 status",
		"c cycle",
		"Tab countries",
		"s table",
		"r reset",
		"Esc clear",
		"? help",
		"q quit",
	}
	return dimStyle.Render(" " + strings.Join(keys, "  "))
}
