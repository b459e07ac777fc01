// Package palette picks fill colors from a country's status and whether it
// is selected. Both frontends share it so the terminal and PNG renderings
// agree.
package palette

import (
	"image/color"

	colorful "github.com/lucasb-eyer/go-colorful"

	"worldmap/internal/status"
)

// Palette holds one fill per status plus the map chrome colors.
type Palette struct {
	Fills       map[status.Status]colorful.Color
	Outline     colorful.Color
	Ocean       colorful.Color
	Label       colorful.Color
	Highlight   colorful.Color
	SelectBlend float64
}

// Default is the built-in scheme.
func Default() Palette {
	return Palette{
		Fills: map[status.Status]colorful.Color{
			status.None:  mustHex("#6B7280"),
			status.Been:  mustHex("#22C55E"),
			status.Lived: mustHex("#3B82F6"),
			status.Want:  mustHex("#F59E0B"),
		},
		Outline:     mustHex("#1F2937"),
		Ocean:       mustHex("#006994"),
		Label:       mustHex("#FFFFFF"),
		Highlight:   mustHex("#FFFFFF"),
		SelectBlend: 0.45,
	}
}

// Fill is the fill for a country with status st.
func (p Palette) Fill(st status.Status, selected bool) colorful.Color {
	c, ok := p.Fills[st]
	if !ok {
		c = p.Fills[status.None]
	}
	if selected {
		c = c.BlendLab(p.Highlight, p.SelectBlend).Clamped()
	}
	return c
}

// RGBA converts for image canvases.
func RGBA(c colorful.Color) color.RGBA {
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

func mustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}
