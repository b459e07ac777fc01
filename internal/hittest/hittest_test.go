package hittest

import (
	"image/color"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"worldmap/internal/geom"
	"worldmap/internal/raster"
	"worldmap/internal/viewport"
)

type mask struct {
	w, h int
	on   map[[2]int]bool
}

func (m *mask) Size() (int, int) { return m.w, m.h }
func (m *mask) Span(y, x0, x1 int, _ color.Color) {
	for x := x0; x <= x1; x++ {
		m.on[[2]int{x, y}] = true
	}
}
func (m *mask) Plot(int, int, color.Color) {}

func TestFillAndHitAgree(t *testing.T) {
	shapes := map[string][]raster.Point{
		"unit square":  {{X: 0, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}, {X: 1, Y: 0}},
		"square":       {{X: 3, Y: 3}, {X: 3, Y: 12}, {X: 12, Y: 12}, {X: 12, Y: 3}},
		"fractional":   {{X: 2.3, Y: 1.7}, {X: 14.6, Y: 4.2}, {X: 9.1, Y: 17.9}, {X: 3.5, Y: 11.5}},
		"notched":      {{X: 0, Y: 0}, {X: 18, Y: 0}, {X: 18, Y: 15}, {X: 12, Y: 15}, {X: 12, Y: 5}, {X: 6, Y: 5}, {X: 6, Y: 15}, {X: 0, Y: 15}},
		"diamond":      {{X: 10, Y: 0}, {X: 20, Y: 10}, {X: 10, Y: 20}, {X: 0, Y: 10}},
		"sliver":       {{X: 1, Y: 1}, {X: 19, Y: 2}, {X: 1, Y: 3}},
		"shared verts": {{X: 5, Y: 5}, {X: 10, Y: 2}, {X: 15, Y: 5}, {X: 10, Y: 8}, {X: 15, Y: 11}, {X: 10, Y: 14}, {X: 5, Y: 11}, {X: 10, Y: 8}},
	}
	for name, pts := range shapes {
		m := &mask{w: 24, h: 24, on: map[[2]int]bool{}}
		var s raster.Scanner
		s.Fill(m, pts, color.White)
		for y := 0; y < m.h; y++ {
			for x := 0; x < m.w; x++ {
				filled := m.on[[2]int{x, y}]
				hit := Contains(pts, float64(x), float64(y))
				assert.Equal(t, filled, hit, "%s: pixel %d,%d", name, x, y)
			}
		}
	}
}

func TestContainsDegenerate(t *testing.T) {
	assert.False(t, Contains(nil, 0, 0))
	assert.False(t, Contains([]raster.Point{{X: 0, Y: 0}, {X: 5, Y: 5}}, 1, 1))
}

func TestCountryAtEndToEnd(t *testing.T) {
	doc := `{"type": "FeatureCollection", "features": [
	  {"type": "Feature", "properties": {"name": "Testland", "iso_a2": "TL"},
	   "geometry": {"type": "Polygon", "coordinates": [[[0,0],[0,10],[10,10],[10,0]]]}},
	  {"type": "Feature", "properties": {"name": "Skipped", "iso_a2_eh": "-99"},
	   "geometry": {"type": "Polygon", "coordinates": [[[20,20],[20,30],[30,30]]]}}
	]}`
	s, _, err := geom.Parse([]byte(doc), nil)
	require.NoError(t, err)
	require.Equal(t, 1, s.NumCountries())

	vp := viewport.New(1200, 800, viewport.Options{})
	x, y := vp.GeoToScreen(5, 5)
	require.True(t, x >= 0 && x < vp.Width && y >= 0 && y < vp.Height)

	var tester Tester
	c, ok := tester.CountryAt(s, vp, x, y)
	require.True(t, ok)
	assert.Equal(t, "Testland", c.Name)
	assert.Equal(t, "tl", c.Code)

	x, y = vp.GeoToScreen(50, 50)
	_, ok = tester.CountryAt(s, vp, x, y)
	assert.False(t, ok)
}

func TestCountryAtFirstMatchWins(t *testing.T) {
	b := geom.NewBuilder()
	b.AddPolygon("First", "fi", orb.Ring{{0, 0}, {0, 10}, {10, 10}, {10, 0}})
	b.AddPolygon("Second", "se", orb.Ring{{5, 5}, {5, 15}, {15, 15}, {15, 5}})
	b.AddPolygon("Second", "se", orb.Ring{{40, 40}, {40, 45}, {45, 45}})
	s := b.Build()

	vp := viewport.New(1200, 800, viewport.Options{})
	vp.SetZoom(8)
	vp.CenterOn(7, 7)

	var tester Tester
	x, y := vp.GeoToScreen(7, 7)
	c, ok := tester.CountryAt(s, vp, x, y)
	require.True(t, ok)
	assert.Equal(t, "First", c.Name)

	x, y = vp.GeoToScreen(12, 12)
	c, ok = tester.CountryAt(s, vp, x, y)
	require.True(t, ok)
	assert.Equal(t, "Second", c.Name)
}

func TestCountryAtAgreesWithFillAtZoom(t *testing.T) {
	b := geom.NewBuilder()
	b.AddPolygon("Tri", "tr", orb.Ring{{-3.3, 1.1}, {4.7, 2.9}, {0.2, 7.6}})
	s := b.Build()

	vp := viewport.New(120, 80, viewport.Options{})
	vp.SetZoom(12)
	vp.CenterOn(0.5, 4)

	m := &mask{w: 120, h: 80, on: map[[2]int]bool{}}
	var sc raster.Scanner
	sc.Polygon(m, s.Polygon(0).Ring, vp, color.White, nil)
	require.NotEmpty(t, m.on)

	var tester Tester
	for y := 0; y < 80; y++ {
		for x := 0; x < 120; x++ {
			_, hit := tester.CountryAt(s, vp, float64(x), float64(y))
			assert.Equal(t, m.on[[2]int{x, y}], hit, "pixel %d,%d", x, y)
		}
	}
}
