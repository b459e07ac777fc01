// Package engine runs the map one frame at a time: an update phase that
// applies input to the viewport, selection and statuses, then a draw phase
// that culls, fills and outlines the visible polygons.
package engine

import (
	"fmt"

	colorful "github.com/lucasb-eyer/go-colorful"
	"go.uber.org/zap"

	"worldmap/internal/cull"
	"worldmap/internal/geom"
	"worldmap/internal/hittest"
	"worldmap/internal/palette"
	"worldmap/internal/raster"
	"worldmap/internal/status"
	"worldmap/internal/viewport"
)

// Options configures a World. Zero values take defaults.
type Options struct {
	ClickThreshold float64
	Palette        *palette.Palette
}

// World ties the geometry, viewport, selection and status store together.
// It is driven from a single goroutine.
type World struct {
	Store    *geom.Store
	View     *viewport.Viewport
	Statuses *status.Store
	Palette  palette.Palette

	gesture  *viewport.Gesture
	tester   hittest.Tester
	culler   cull.Culler
	scanner  raster.Scanner
	pts      []raster.Point
	paints   []Paint
	selected geom.CountryID
	hasSel   bool
	log      *zap.Logger
}

// Paint is one visible polygon with the fill chosen for this frame.
type Paint struct {
	Polygon geom.PolygonID
	Country geom.CountryID
	Fill    colorful.Color
}

func New(store *geom.Store, view *viewport.Viewport, statuses *status.Store, opts Options, log *zap.Logger) *World {
	if log == nil {
		log = zap.NewNop()
	}
	if statuses == nil {
		statuses = status.NewMemory()
	}
	pal := palette.Default()
	if opts.Palette != nil {
		pal = *opts.Palette
	}
	return &World{
		Store:    store,
		View:     view,
		Statuses: statuses,
		Palette:  pal,
		gesture:  viewport.NewGesture(opts.ClickThreshold),
		log:      log,
	}
}

// Input is everything the frontend sampled for one frame.
type Input struct {
	Held     []viewport.Direction
	Scroll   float64
	PointerX float64
	PointerY float64
	Pressed  bool // button went down this frame
	Down     bool // button is held
	Released bool // button went up this frame
}

// Update applies one frame of input and advances the zoom animation. It
// reports whether a click selected a country this frame.
func (w *World) Update(in Input) bool {
	for _, d := range in.Held {
		w.View.Pan(d)
	}
	if in.Scroll != 0 {
		w.Scroll(in.Scroll, in.PointerX, in.PointerY)
	}
	// A quick click can press and release within one frame.
	if in.Pressed {
		w.PointerPress(in.PointerX, in.PointerY)
	}
	if in.Down {
		w.PointerMove(in.PointerX, in.PointerY)
	}
	hit := false
	if in.Released {
		_, hit = w.PointerRelease(in.PointerX, in.PointerY)
	}
	w.Tick()
	return hit
}

func (w *World) Pan(d viewport.Direction) { w.View.Pan(d) }

// Scroll starts an anchored, smoothed zoom of delta notches at the pointer.
func (w *World) Scroll(delta, x, y float64) {
	w.View.ZoomAt(delta, x, y)
}

// Tick runs one smoothing step and reports whether zoom is still moving.
func (w *World) Tick() bool { return w.View.Step() }

func (w *World) PointerPress(x, y float64) { w.gesture.Press(x, y) }

// PointerMove pans the map once the press has turned into a drag.
func (w *World) PointerMove(x, y float64) {
	if dx, dy := w.gesture.Move(x, y); dx != 0 || dy != 0 {
		w.View.Drag(dx, dy)
	}
}

// PointerRelease ends a gesture. A click hit-tests and selects.
func (w *World) PointerRelease(x, y float64) (geom.Country, bool) {
	if !w.gesture.Release(x, y) {
		return geom.Country{}, false
	}
	return w.SelectAt(x, y)
}

// Gesture exposes the pointer state for frontends that show it.
func (w *World) Gesture() viewport.GestureState { return w.gesture.State }

// SelectAt selects the country under screen point (x, y). A miss keeps
// the previous selection.
func (w *World) SelectAt(x, y float64) (geom.Country, bool) {
	c, ok := w.tester.CountryAt(w.Store, w.View, x, y)
	if !ok {
		w.log.Debug("click missed", zap.Float64("x", x), zap.Float64("y", y))
		return geom.Country{}, false
	}
	w.selected, w.hasSel = c.ID, true
	w.log.Debug("selected country", zap.String("name", c.Name), zap.String("code", c.Code))
	return c, true
}

// CountryAt hit-tests without changing the selection.
func (w *World) CountryAt(x, y float64) (geom.Country, bool) {
	return w.tester.CountryAt(w.Store, w.View, x, y)
}

// Selected returns the selected country, if any.
func (w *World) Selected() (geom.Country, bool) {
	if !w.hasSel {
		return geom.Country{}, false
	}
	return w.Store.Country(w.selected)
}

func (w *World) ClearSelection() { w.hasSel = false }

// SelectCountry selects a country by handle.
func (w *World) SelectCountry(id geom.CountryID) bool {
	if _, ok := w.Store.Country(id); !ok {
		return false
	}
	w.selected, w.hasSel = id, true
	return true
}

// SelectCode selects a country by ISO code.
func (w *World) SelectCode(code string) (geom.Country, bool) {
	c, ok := w.Store.LookupCode(code)
	if !ok {
		return geom.Country{}, false
	}
	w.selected, w.hasSel = c.ID, true
	return c, true
}

// CenterOn pans so the middle of a country's bounds is at screen center.
func (w *World) CenterOn(id geom.CountryID) bool {
	b, ok := w.Store.CountryBound(id)
	if !ok {
		return false
	}
	c := b.Center()
	w.View.CenterOn(c.Lon(), c.Lat())
	return true
}

// StatusOf looks up the stored status of a country.
func (w *World) StatusOf(c geom.Country) status.Status {
	return w.Statuses.Get(c.Code)
}

// SetSelectedStatus stores st for the selected country.
func (w *World) SetSelectedStatus(st status.Status) (geom.Country, error) {
	c, ok := w.Selected()
	if !ok {
		return geom.Country{}, ErrNoSelection
	}
	if err := w.Statuses.Set(c.Code, st); err != nil {
		return c, fmt.Errorf("setting status of %s: %w", c.Name, err)
	}
	w.log.Info("status changed", zap.String("country", c.Name), zap.Stringer("status", st))
	return c, nil
}

// CycleSelectedStatus advances the selected country to the next status.
func (w *World) CycleSelectedStatus() (geom.Country, status.Status, error) {
	c, ok := w.Selected()
	if !ok {
		return geom.Country{}, status.None, ErrNoSelection
	}
	next := w.StatusOf(c).Next()
	_, err := w.SetSelectedStatus(next)
	return c, next, err
}
