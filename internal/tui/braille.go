package tui

import (
	"image/color"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Each terminal cell holds a 2x4 braille micro grid. dotBits[ry][rx] is the
// bit for the dot in column rx, row ry of the cell.
var dotBits = [4][2]uint8{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

// brailleCanvas is a raster.Canvas at micro-pixel resolution. A cell keeps
// the color of the last span or dot painted into it, so outlines drawn after
// fills win the cell.
type brailleCanvas struct {
	w, h int // in cells
	mask []uint8
	fg   []string
	hex  map[color.RGBA]string
}

func newBrailleCanvas(w, h int) *brailleCanvas {
	b := &brailleCanvas{hex: map[color.RGBA]string{}}
	b.resize(w, h)
	return b
}

func (b *brailleCanvas) resize(w, h int) {
	w, h = max(w, 1), max(h, 1)
	b.w, b.h = w, h
	b.mask = make([]uint8, w*h)
	b.fg = make([]string, w*h)
}

func (b *brailleCanvas) clear() {
	clear(b.mask)
	clear(b.fg)
}

// Size is the micro-pixel size.
func (b *brailleCanvas) Size() (int, int) { return b.w * 2, b.h * 4 }

func (b *brailleCanvas) Span(y, x0, x1 int, c color.Color) {
	fg := b.colorHex(c)
	for x := x0; x <= x1; x++ {
		b.set(x, y, fg)
	}
}

func (b *brailleCanvas) Plot(x, y int, c color.Color) {
	b.set(x, y, b.colorHex(c))
}

func (b *brailleCanvas) set(mx, my int, fg string) {
	if mx < 0 || my < 0 {
		return
	}
	cx, cy := mx/2, my/4
	if cx >= b.w || cy >= b.h {
		return
	}
	i := cy*b.w + cx
	b.mask[i] |= dotBits[my%4][mx%2]
	b.fg[i] = fg
}

func (b *brailleCanvas) colorHex(c color.Color) string {
	key := color.RGBAModel.Convert(c).(color.RGBA)
	if s, ok := b.hex[key]; ok {
		return s
	}
	cf, _ := colorful.MakeColor(c)
	s := cf.Hex()
	b.hex[key] = s
	return s
}

// cell returns the glyph and foreground of cell (cx, cy).
func (b *brailleCanvas) cell(cx, cy int) (rune, string) {
	i := cy*b.w + cx
	if b.mask[i] == 0 {
		return ' ', ""
	}
	return rune(0x2800 + int(b.mask[i])), b.fg[i]
}
