package engine

import (
	"worldmap/internal/geom"
	"worldmap/internal/palette"
	"worldmap/internal/raster"
	"worldmap/internal/status"
)

// Paints culls the store against the current viewport and picks a fill for
// each surviving polygon. The returned slice is reused by the next call.
func (w *World) Paints() []Paint {
	w.paints = w.paints[:0]
	last := geom.CountryID(-1)
	fill := w.Palette.Fill(status.None, false)
	for _, pid := range w.culler.Filter(w.Store, w.View) {
		cid := w.Store.Owner(pid)
		if cid != last {
			c, _ := w.Store.Country(cid)
			fill = w.Palette.Fill(w.StatusOf(c), w.hasSel && cid == w.selected)
			last = cid
		}
		w.paints = append(w.paints, Paint{Polygon: pid, Country: cid, Fill: fill})
	}
	return w.paints
}

// Draw fills every visible polygon, then outlines them in a second pass so
// neighboring fills never cover a border.
func (w *World) Draw(c raster.Canvas) {
	paints := w.Paints()
	for _, p := range paints {
		w.pts = raster.Project(w.pts, w.Store.Polygon(p.Polygon).Ring, w.View)
		w.scanner.Fill(c, w.pts, palette.RGBA(p.Fill))
	}
	outline := palette.RGBA(w.Palette.Outline)
	for _, p := range paints {
		w.pts = raster.Project(w.pts, w.Store.Polygon(p.Polygon).Ring, w.View)
		w.scanner.Outline(c, w.pts, outline)
	}
}
