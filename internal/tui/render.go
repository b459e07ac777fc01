package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderMap draws the world into the braille canvas and turns it into
// styled terminal lines, one lipgloss run per stretch of equal color.
func (m Model) renderMap(w, h int) string {
	if m.canvas.w != w || m.canvas.h != h {
		m.canvas.resize(w, h)
	} else {
		m.canvas.clear()
	}
	m.world.Draw(m.canvas)

	ocean := lipgloss.Color(m.world.Palette.Ocean.Hex())
	base := lipgloss.NewStyle().Background(ocean)
	lines := make([]string, h)
	var (
		sb  strings.Builder
		run []rune
	)
	for cy := 0; cy < h; cy++ {
		sb.Reset()
		run = run[:0]
		runFg := ""
		flush := func() {
			if len(run) == 0 {
				return
			}
			st := base
			if runFg != "" {
				st = st.Foreground(lipgloss.Color(runFg))
			}
			sb.WriteString(st.Render(string(run)))
			run = run[:0]
		}
		for cx := 0; cx < w; cx++ {
			r, fg := m.canvas.cell(cx, cy)
			if fg != runFg {
				flush()
				runFg = fg
			}
			run = append(run, r)
		}
		flush()
		lines[cy] = sb.String()
	}
	return strings.Join(lines, "\n")
}
