// Package hittest resolves a screen point to the country drawn under it.
package hittest

import (
	"github.com/paulmach/orb"

	"worldmap/internal/geom"
	"worldmap/internal/raster"
	"worldmap/internal/viewport"
)

// Contains reports whether (x, y) lies inside the projected ring: the
// number of row-y crossings at or left of x is odd. This is the interval
// convention raster.Scanner.Fill paints with.
func Contains(pts []raster.Point, x, y float64) bool {
	return containsBuf(nil, pts, x, y)
}

func containsBuf(buf []float64, pts []raster.Point, x, y float64) bool {
	if len(pts) < 3 {
		return false
	}
	inside := false
	for _, cx := range raster.Crossings(buf, pts, y) {
		if cx > x {
			break
		}
		inside = !inside
	}
	return inside
}

// Tester reuses projection and crossing buffers between queries.
type Tester struct {
	pts []raster.Point
	xs  []float64
}

// PolygonAt reports whether the polygon covers screen point (x, y).
func (t *Tester) PolygonAt(p geom.Polygon, vp *viewport.Viewport, x, y float64) bool {
	t.pts = raster.Project(t.pts, p.Ring, vp)
	if cap(t.xs) < len(t.pts) {
		t.xs = make([]float64, 0, len(t.pts))
	}
	return containsBuf(t.xs, t.pts, x, y)
}

// CountryAt returns the first country, in id order, with a polygon covering
// (x, y). Polygons whose bound cannot contain the point are not projected.
func (t *Tester) CountryAt(s *geom.Store, vp *viewport.Viewport, x, y float64) (geom.Country, bool) {
	lon, lat := vp.ScreenToGeo(x, y)
	probe := orb.Bound{Min: orb.Point{lon, lat}, Max: orb.Point{lon, lat}}.Pad(slack(vp))
	for _, c := range s.Countries() {
		for _, p := range s.CountryPolygons(c.ID) {
			if !p.Bound.Intersects(probe) {
				continue
			}
			if t.PolygonAt(p, vp, x, y) {
				return c, true
			}
		}
	}
	return geom.Country{}, false
}

// slack widens the bound probe by one pixel in degrees so rounding in the
// inverse transform never rejects a polygon the exact test would accept.
func slack(vp *viewport.Viewport) float64 {
	degX := 360 / vp.Width / vp.Zoom
	degY := 180 / vp.Height / vp.Zoom
	return max(degX, degY)
}
