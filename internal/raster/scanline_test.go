package raster

import (
	"image/color"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"worldmap/internal/viewport"
)

// grid records which pixels were painted.
type grid struct {
	w, h    int
	filled  map[[2]int]bool
	plotted map[[2]int]bool
}

func newGrid(w, h int) *grid {
	return &grid{w: w, h: h, filled: map[[2]int]bool{}, plotted: map[[2]int]bool{}}
}

func (g *grid) Size() (int, int) { return g.w, g.h }

func (g *grid) Span(y, x0, x1 int, _ color.Color) {
	for x := x0; x <= x1; x++ {
		g.filled[[2]int{x, y}] = true
	}
}

func (g *grid) Plot(x, y int, _ color.Color) { g.plotted[[2]int{x, y}] = true }

func TestCrossingsHalfOpenVertex(t *testing.T) {
	// Diamond with vertices exactly on rows 0, 5 and 10.
	pts := []Point{{5, 0}, {10, 5}, {5, 10}, {0, 5}}

	xs := Crossings(nil, pts, 5)
	require.Len(t, xs, 2, "shared vertex on the scanline counts once per side")
	assert.Equal(t, []float64{0, 10}, xs)

	assert.Len(t, Crossings(nil, pts, 0), 2)
	assert.Empty(t, Crossings(nil, pts, 10))
	assert.Empty(t, Crossings(nil, pts, -1))
}

func TestCrossingsSorted(t *testing.T) {
	// U shape: row 2 crosses four edges.
	pts := []Point{{0, 0}, {10, 0}, {10, 8}, {7, 8}, {7, 3}, {3, 3}, {3, 8}, {0, 8}}
	xs := Crossings(nil, pts, 5)
	assert.Equal(t, []float64{0, 3, 7, 10}, xs)
}

func TestFillSquare(t *testing.T) {
	g := newGrid(20, 20)
	var s Scanner
	s.Fill(g, []Point{{2, 2}, {2, 6}, {6, 6}, {6, 2}}, color.White)

	for y := 0; y < 20; y++ {
		for x := 0; x < 20; x++ {
			want := x >= 2 && x < 6 && y >= 2 && y < 6
			assert.Equal(t, want, g.filled[[2]int{x, y}], "pixel %d,%d", x, y)
		}
	}
}

func TestFillNonConvexLeavesNotch(t *testing.T) {
	g := newGrid(12, 12)
	var s Scanner
	s.Fill(g, []Point{{0, 0}, {10, 0}, {10, 8}, {7, 8}, {7, 3}, {3, 3}, {3, 8}, {0, 8}}, color.White)
	assert.True(t, g.filled[[2]int{1, 5}])
	assert.False(t, g.filled[[2]int{5, 5}], "notch stays empty")
	assert.True(t, g.filled[[2]int{8, 5}])
	assert.True(t, g.filled[[2]int{5, 1}])
}

func TestFillClipsToCanvas(t *testing.T) {
	g := newGrid(10, 10)
	var s Scanner
	s.Fill(g, []Point{{-1e6, -1e6}, {1e6, -1e6}, {1e6, 1e6}, {-1e6, 1e6}}, color.White)
	assert.Len(t, g.filled, 100)
	for p := range g.filled {
		assert.True(t, p[0] >= 0 && p[0] < 10 && p[1] >= 0 && p[1] < 10)
	}
}

func TestDegenerateRingsDoNotPanic(t *testing.T) {
	g := newGrid(10, 10)
	var s Scanner
	assert.NotPanics(t, func() {
		s.Fill(g, nil, color.White)
		s.Fill(g, []Point{{1, 1}}, color.White)
		s.Fill(g, []Point{{1, 1}, {5, 5}}, color.White)
		s.Outline(g, nil, color.White)
		s.Outline(g, []Point{{1, 1}}, color.White)
	})
	assert.Empty(t, g.filled)
	assert.Empty(t, g.plotted)

	s.Outline(g, []Point{{1, 1}, {4, 1}}, color.White)
	assert.Len(t, g.plotted, 4)
}

func TestOutlineIsSeparatePass(t *testing.T) {
	g := newGrid(20, 20)
	var s Scanner
	s.Outline(g, []Point{{2, 2}, {2, 6}, {6, 6}, {6, 2}}, color.White)
	assert.Empty(t, g.filled)
	assert.True(t, g.plotted[[2]int{2, 2}])
	assert.True(t, g.plotted[[2]int{6, 6}])
	assert.True(t, g.plotted[[2]int{4, 2}])
	assert.False(t, g.plotted[[2]int{4, 4}])
}

func TestPolygonThroughViewport(t *testing.T) {
	vp := viewport.New(360, 180, viewport.Options{})
	g := newGrid(360, 180)
	var s Scanner
	s.Polygon(g, orb.Ring{{0, 0}, {0, 10}, {10, 10}, {10, 0}}, vp, color.White, nil)
	// lon 0..10 -> x 180..190, lat 10..0 -> y 80..90
	assert.True(t, g.filled[[2]int{185, 85}])
	assert.False(t, g.filled[[2]int{175, 85}])
	assert.Empty(t, g.plotted)
}

func TestImageCanvas(t *testing.T) {
	img := NewImage(8, 4, color.Black)
	w, h := img.Size()
	assert.Equal(t, 8, w)
	assert.Equal(t, 4, h)

	var s Scanner
	red := color.RGBA{R: 255, A: 255}
	s.Fill(img, []Point{{0, 0}, {8, 0}, {8, 4}, {0, 4}}, red)
	assert.Equal(t, red, img.RGBAAt(3, 2))
	assert.Greater(t, LabelWidth("Testland"), 0)
}
