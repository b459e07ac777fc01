// Package viewport maps geographic coordinates to screen pixels with an
// equirectangular projection and tracks the pan/zoom state driving it.
package viewport

import (
	"math"

	"github.com/paulmach/orb"
)

const (
	MinZoom = 0.1
	MaxZoom = 25.0

	// ZoomBase is the relative zoom change per scroll notch.
	ZoomBase = 1.1

	DefaultPanStep   = 5.0
	DefaultSmoothing = 0.2
	DefaultEpsilon   = 1e-4
)

// Direction is a held pan input.
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

// Options tunes input response. Zero fields take the defaults.
type Options struct {
	PanStep   float64
	Smoothing float64
	Epsilon   float64
}

// Viewport is the per-frame pan/zoom state. Only the frame loop mutates it.
type Viewport struct {
	Width, Height    float64
	OffsetX, OffsetY float64
	Zoom             float64

	target           float64
	anchorX, anchorY float64
	opts             Options
}

// New returns a viewport at zoom 1 with no offset.
func New(width, height float64, opts Options) *Viewport {
	if opts.PanStep <= 0 {
		opts.PanStep = DefaultPanStep
	}
	if opts.Smoothing <= 0 || opts.Smoothing > 1 {
		opts.Smoothing = DefaultSmoothing
	}
	if opts.Epsilon <= 0 {
		opts.Epsilon = DefaultEpsilon
	}
	return &Viewport{
		Width:  width,
		Height: height,
		Zoom:   1,
		target: 1,
		opts:   opts,
	}
}

func (v *Viewport) scaleX() float64 { return v.Width / 360 }
func (v *Viewport) scaleY() float64 { return v.Height / 180 }

// GeoToScreen projects a longitude/latitude pair to screen pixels.
func (v *Viewport) GeoToScreen(lon, lat float64) (x, y float64) {
	x = (lon+180)*v.scaleX()*v.Zoom + v.OffsetX
	y = (90-lat)*v.scaleY()*v.Zoom + v.OffsetY
	return x, y
}

// ScreenToGeo is the inverse of GeoToScreen.
func (v *Viewport) ScreenToGeo(x, y float64) (lon, lat float64) {
	lon = (x-v.OffsetX)/v.scaleX()/v.Zoom - 180
	lat = 90 - (y-v.OffsetY)/v.scaleY()/v.Zoom
	return lon, lat
}

// Project is GeoToScreen for an orb point.
func (v *Viewport) Project(p orb.Point) (x, y float64) {
	return v.GeoToScreen(p.Lon(), p.Lat())
}

// SetScreen resizes the screen surface without moving the offset.
func (v *Viewport) SetScreen(width, height float64) {
	v.Width, v.Height = width, height
}

// Pan applies one frame of a held directional input. The map moves
// opposite to the direction so the view travels toward it.
func (v *Viewport) Pan(d Direction) {
	switch d {
	case Up:
		v.OffsetY += v.opts.PanStep
	case Down:
		v.OffsetY -= v.opts.PanStep
	case Left:
		v.OffsetX += v.opts.PanStep
	case Right:
		v.OffsetX -= v.opts.PanStep
	}
}

// Drag moves the map along with the pointer.
func (v *Viewport) Drag(dx, dy float64) {
	v.OffsetX += dx
	v.OffsetY += dy
}

// ZoomAt records a scroll of delta notches at the pointer. The zoom itself
// moves toward the new target over subsequent Step calls.
func (v *Viewport) ZoomAt(delta, px, py float64) {
	v.target = ClampZoom(v.target * math.Pow(ZoomBase, delta))
	v.anchorX, v.anchorY = px, py
}

// ZoomAnchored sets the zoom immediately, keeping the geographic point
// under (px, py) fixed on screen.
func (v *Viewport) ZoomAnchored(zoom, px, py float64) {
	lon, lat := v.ScreenToGeo(px, py)
	v.Zoom = ClampZoom(zoom)
	v.OffsetX = px - (lon+180)*v.scaleX()*v.Zoom
	v.OffsetY = py - (90-lat)*v.scaleY()*v.Zoom
}

// SetZoom jumps to zoom anchored at the screen center and cancels any
// animation in flight.
func (v *Viewport) SetZoom(zoom float64) {
	v.ZoomAnchored(zoom, v.Width/2, v.Height/2)
	v.target = v.Zoom
}

// Step advances the smoothed zoom by one frame and reports whether the
// animation is still running.
func (v *Viewport) Step() bool {
	diff := v.target - v.Zoom
	if diff == 0 {
		return false
	}
	next := v.Zoom + diff*v.opts.Smoothing
	if math.Abs(v.target-next) < v.opts.Epsilon {
		next = v.target
	}
	v.ZoomAnchored(next, v.anchorX, v.anchorY)
	return v.Zoom != v.target
}

// Animating reports whether Step still has work to do.
func (v *Viewport) Animating() bool { return v.Zoom != v.target }

// Target is the zoom the animation converges to.
func (v *Viewport) Target() float64 { return v.target }

// CenterOn moves the offset so lon/lat sits at the screen center.
func (v *Viewport) CenterOn(lon, lat float64) {
	x, y := v.GeoToScreen(lon, lat)
	v.OffsetX += v.Width/2 - x
	v.OffsetY += v.Height/2 - y
}

// Reset returns to zoom 1 with no offset.
func (v *Viewport) Reset() {
	v.OffsetX, v.OffsetY = 0, 0
	v.Zoom, v.target = 1, 1
}

// VisibleBounds is the geographic rectangle covered by the screen.
func (v *Viewport) VisibleBounds() orb.Bound {
	lon0, lat0 := v.ScreenToGeo(0, 0)
	lon1, lat1 := v.ScreenToGeo(v.Width, v.Height)
	return orb.Bound{
		Min: orb.Point{math.Min(lon0, lon1), math.Min(lat0, lat1)},
		Max: orb.Point{math.Max(lon0, lon1), math.Max(lat0, lat1)},
	}
}

// ClampZoom limits z to [MinZoom, MaxZoom].
func ClampZoom(z float64) float64 {
	return math.Max(MinZoom, math.Min(MaxZoom, z))
}
