// Package raster fills and outlines polygon rings in screen space with an
// even-odd scanline rule. The hit tester uses the same crossing routine so
// a pixel is reported inside exactly when the fill covers it.
package raster

import (
	"image/color"
	"math"
	"sort"

	"github.com/paulmach/orb"

	"worldmap/internal/viewport"
)

// Point is a projected vertex in screen pixels.
type Point struct {
	X, Y float64
}

// Canvas is a pixel surface the scanner draws into.
type Canvas interface {
	Size() (w, h int)
	// Span fills pixels x0..x1 inclusive on row y. Callers clip to Size.
	Span(y, x0, x1 int, c color.Color)
	Plot(x, y int, c color.Color)
}

// Project maps a geographic ring into screen space. dst is reused when it
// has room.
func Project(dst []Point, ring orb.Ring, vp *viewport.Viewport) []Point {
	dst = dst[:0]
	for _, p := range ring {
		x, y := vp.Project(p)
		dst = append(dst, Point{x, y})
	}
	return dst
}

// crosses is the half-open edge rule. A vertex lying exactly on the
// scanline is counted once, by the edge that leaves it upward.
func crosses(y1, y2, y float64) bool {
	return (y1 <= y && y2 > y) || (y2 <= y && y1 > y)
}

// Crossings appends to buf the x coordinates where row y crosses the
// ring's edges and returns them sorted ascending.
func Crossings(buf []float64, pts []Point, y float64) []float64 {
	buf = buf[:0]
	n := len(pts)
	for j := 0; j < n; j++ {
		a, b := pts[j], pts[(j+1)%n]
		if !crosses(a.Y, b.Y, y) {
			continue
		}
		buf = append(buf, a.X+(y-a.Y)*(b.X-a.X)/(b.Y-a.Y))
	}
	sort.Float64s(buf)
	return buf
}

// SpanStart and SpanEnd give the integer pixel range [start, end) covered
// by the crossing interval [xa, xb).
func SpanStart(xa float64) int { return int(math.Ceil(xa)) }
func SpanEnd(xb float64) int   { return int(math.Ceil(xb)) }

// Scanner owns the per-row intersection buffer, grown to the vertex count
// of the largest ring seen.
type Scanner struct {
	xs  []float64
	pts []Point
}

// Fill paints the interior of a projected ring. Rings with fewer than three
// vertices are skipped.
func (s *Scanner) Fill(c Canvas, pts []Point, col color.Color) {
	if len(pts) < 3 {
		return
	}
	w, h := c.Size()
	if w <= 0 || h <= 0 {
		return
	}
	if cap(s.xs) < len(pts) {
		s.xs = make([]float64, 0, len(pts))
	}
	minY, maxY := pts[0].Y, pts[0].Y
	for _, p := range pts[1:] {
		minY = math.Min(minY, p.Y)
		maxY = math.Max(maxY, p.Y)
	}
	y0 := max(0, int(math.Floor(minY)))
	y1 := min(h-1, int(math.Ceil(maxY)))
	for y := y0; y <= y1; y++ {
		s.xs = Crossings(s.xs, pts, float64(y))
		for i := 0; i+1 < len(s.xs); i += 2 {
			xa := max(0, SpanStart(clampX(s.xs[i], w)))
			xb := min(w, SpanEnd(clampX(s.xs[i+1], w)))
			if xa < xb {
				c.Span(y, xa, xb-1, col)
			}
		}
	}
}

// Outline draws the ring's closing edges. Rings with fewer than two
// vertices are skipped.
func (s *Scanner) Outline(c Canvas, pts []Point, col color.Color) {
	n := len(pts)
	if n < 2 {
		return
	}
	edges := n
	if n == 2 {
		edges = 1
	}
	w, h := c.Size()
	for j := 0; j < edges; j++ {
		a, b := pts[j], pts[(j+1)%n]
		drawLine(c, w, h, round(a.X), round(a.Y), round(b.X), round(b.Y), col)
	}
}

// Polygon projects ring through vp, then fills and outlines it. A nil fill
// or outline color skips that pass.
func (s *Scanner) Polygon(c Canvas, ring orb.Ring, vp *viewport.Viewport, fill, outline color.Color) {
	s.pts = Project(s.pts, ring, vp)
	if fill != nil {
		s.Fill(c, s.pts, fill)
	}
	if outline != nil {
		s.Outline(c, s.pts, outline)
	}
}

// clampX keeps far off-screen crossings inside int range without changing
// which on-screen pixels a span covers.
func clampX(x float64, w int) float64 {
	return math.Max(-1, math.Min(float64(w)+1, x))
}

func round(v float64) int {
	return int(math.Floor(v + 0.5))
}

// drawLine is Bresenham clipped to the canvas, so the walk at deep zoom
// stays proportional to the on-screen length.
func drawLine(c Canvas, w, h, x0, y0, x1, y1 int, col color.Color) {
	if (x0 < 0 && x1 < 0) || (y0 < 0 && y1 < 0) || (x0 >= w && x1 >= w) || (y0 >= h && y1 >= h) {
		return
	}
	if !clipSegment(&x0, &y0, &x1, &y1, w, h) {
		return
	}
	dx := abs(x1 - x0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -abs(y1 - y0)
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for {
		if x0 >= 0 && y0 >= 0 && x0 < w && y0 < h {
			c.Plot(x0, y0, col)
		}
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// clipSegment is Liang-Barsky against [-1, w] x [-1, h].
func clipSegment(x0, y0, x1, y1 *int, w, h int) bool {
	fx0, fy0 := float64(*x0), float64(*y0)
	dx, dy := float64(*x1)-fx0, float64(*y1)-fy0
	t0, t1 := 0.0, 1.0
	edges := [4][2]float64{
		{-dx, fx0 + 1},
		{dx, float64(w) - fx0},
		{-dy, fy0 + 1},
		{dy, float64(h) - fy0},
	}
	for _, e := range edges {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return false
			}
			continue
		}
		r := q / p
		if p < 0 {
			t0 = math.Max(t0, r)
		} else {
			t1 = math.Min(t1, r)
		}
		if t0 > t1 {
			return false
		}
	}
	*x0, *y0 = round(fx0+t0*dx), round(fy0+t0*dy)
	*x1, *y1 = round(fx0+t1*dx), round(fy0+t1*dy)
	return true
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
