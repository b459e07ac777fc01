// Package cull decides which polygons can touch the screen before any
// per-pixel work is done.
package cull

import (
	"github.com/paulmach/orb"

	"worldmap/internal/geom"
	"worldmap/internal/viewport"
)

// Visible reports whether a polygon bound overlaps the visible rectangle.
// Edges are inclusive, so a polygon that truly overlaps is never culled.
func Visible(bound, view orb.Bound) bool {
	return bound.Intersects(view)
}

// Culler reuses its id buffer across frames.
type Culler struct {
	ids []geom.PolygonID
}

// Filter returns the ids of polygons visible through vp. The returned slice
// is reused by the next call.
func (c *Culler) Filter(s *geom.Store, vp *viewport.Viewport) []geom.PolygonID {
	view := vp.VisibleBounds()
	c.ids = c.ids[:0]
	for i, p := range s.Polygons() {
		if Visible(p.Bound, view) {
			c.ids = append(c.ids, geom.PolygonID(i))
		}
	}
	return c.ids
}
