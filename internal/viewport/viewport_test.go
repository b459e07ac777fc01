package viewport

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const eps = 1e-6

func TestRoundTrip(t *testing.T) {
	zooms := []float64{MinZoom, 0.5, 1, 3.7, 12, MaxZoom}
	offsets := [][2]float64{{0, 0}, {-350, 120}, {1e4, -2.5e3}}
	points := [][2]float64{{-180, -90}, {0, 0}, {179.99, 89.99}, {-73.98, 40.75}, {151.2, -33.87}}
	for _, z := range zooms {
		for _, off := range offsets {
			v := New(1200, 800, Options{})
			v.Zoom = z
			v.OffsetX, v.OffsetY = off[0], off[1]
			for _, p := range points {
				x, y := v.GeoToScreen(p[0], p[1])
				lon, lat := v.ScreenToGeo(x, y)
				assert.InDelta(t, p[0], lon, eps, "zoom=%v off=%v", z, off)
				assert.InDelta(t, p[1], lat, eps, "zoom=%v off=%v", z, off)
			}
		}
	}
}

func TestGeoToScreenFormula(t *testing.T) {
	v := New(1200, 800, Options{})
	x, y := v.GeoToScreen(-180, 90)
	assert.InDelta(t, 0, x, eps)
	assert.InDelta(t, 0, y, eps)
	x, y = v.GeoToScreen(180, -90)
	assert.InDelta(t, 1200, x, eps)
	assert.InDelta(t, 800, y, eps)

	v.Zoom = 2
	v.OffsetX, v.OffsetY = 10, -20
	x, y = v.GeoToScreen(0, 0)
	assert.InDelta(t, 180*(1200.0/360)*2+10, x, eps)
	assert.InDelta(t, 90*(800.0/180)*2-20, y, eps)
}

func TestZoomAnchoredKeepsPointerPoint(t *testing.T) {
	v := New(1200, 800, Options{})
	v.OffsetX, v.OffsetY = -40, 25
	px, py := 812.0, 333.0
	lon, lat := v.ScreenToGeo(px, py)

	for _, z := range []float64{0.1, 0.73, 2, 9.5, 25} {
		v.ZoomAnchored(z, px, py)
		x, y := v.GeoToScreen(lon, lat)
		assert.InDelta(t, px, x, eps)
		assert.InDelta(t, py, y, eps)
	}
}

func TestSmoothZoomConvergesAnchored(t *testing.T) {
	v := New(1200, 800, Options{})
	px, py := 300.0, 500.0
	lon, lat := v.ScreenToGeo(px, py)

	v.ZoomAt(3, px, py)
	want := math.Pow(ZoomBase, 3)
	assert.InDelta(t, want, v.Target(), eps)
	assert.Equal(t, 1.0, v.Zoom, "zoom moves only on Step")

	prev := v.Zoom
	steps := 0
	for v.Step() {
		steps++
		require.Less(t, steps, 1000, "animation must settle")
		assert.Greater(t, v.Zoom, prev)
		prev = v.Zoom
		x, y := v.GeoToScreen(lon, lat)
		assert.InDelta(t, px, x, 1e-6)
		assert.InDelta(t, py, y, 1e-6)
	}
	assert.Greater(t, steps, 1, "zoom is animated, not stepped")
	assert.Equal(t, v.Target(), v.Zoom)
	assert.False(t, v.Animating())

	x, y := v.GeoToScreen(lon, lat)
	assert.InDelta(t, px, x, 1e-6)
	assert.InDelta(t, py, y, 1e-6)
}

func TestZoomClamped(t *testing.T) {
	v := New(1200, 800, Options{})
	v.ZoomAt(1000, 0, 0)
	assert.Equal(t, MaxZoom, v.Target())
	v.ZoomAt(-5000, 0, 0)
	assert.Equal(t, MinZoom, v.Target())
	v.ZoomAnchored(50, 10, 10)
	assert.Equal(t, MaxZoom, v.Zoom)
}

func TestPan(t *testing.T) {
	v := New(1200, 800, Options{PanStep: 5})
	v.Pan(Right)
	assert.Equal(t, -5.0, v.OffsetX)
	v.Pan(Left)
	v.Pan(Left)
	assert.Equal(t, 5.0, v.OffsetX)
	v.Pan(Down)
	assert.Equal(t, -5.0, v.OffsetY)
	v.Pan(Up)
	assert.Equal(t, 0.0, v.OffsetY)

	v.Drag(12, -7)
	assert.Equal(t, 17.0, v.OffsetX)
	assert.Equal(t, -7.0, v.OffsetY)
}

func TestVisibleBounds(t *testing.T) {
	v := New(1200, 800, Options{})
	b := v.VisibleBounds()
	assert.InDelta(t, -180, b.Min.Lon(), eps)
	assert.InDelta(t, -90, b.Min.Lat(), eps)
	assert.InDelta(t, 180, b.Max.Lon(), eps)
	assert.InDelta(t, 90, b.Max.Lat(), eps)

	v.SetZoom(2)
	b = v.VisibleBounds()
	assert.InDelta(t, -90, b.Min.Lon(), eps)
	assert.InDelta(t, 90, b.Max.Lon(), eps)
	assert.InDelta(t, -45, b.Min.Lat(), eps)
	assert.InDelta(t, 45, b.Max.Lat(), eps)
}

func TestCenterOn(t *testing.T) {
	v := New(1200, 800, Options{})
	v.SetZoom(4)
	v.CenterOn(2.35, 48.85)
	x, y := v.GeoToScreen(2.35, 48.85)
	assert.InDelta(t, 600, x, eps)
	assert.InDelta(t, 400, y, eps)
}
