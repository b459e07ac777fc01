package viewport

import "math"

// ClickThreshold is the pointer travel, in pixels, that turns a press into
// a drag.
const ClickThreshold = 5.0

// GestureState is the pointer state between press and release.
type GestureState int

const (
	Idle GestureState = iota
	Pressed
	Dragging
)

func (s GestureState) String() string {
	switch s {
	case Pressed:
		return "pressed"
	case Dragging:
		return "dragging"
	default:
		return "idle"
	}
}

// Gesture separates clicks from drags. Idle→Pressed on press,
// Pressed→Dragging once the pointer travels ClickThreshold, and release
// returns to Idle, reporting a click only if no drag happened.
type Gesture struct {
	State     GestureState
	Threshold float64

	startX, startY float64
	lastX, lastY   float64
}

func NewGesture(threshold float64) *Gesture {
	if threshold <= 0 {
		threshold = ClickThreshold
	}
	return &Gesture{Threshold: threshold}
}

func (g *Gesture) Press(x, y float64) {
	g.State = Pressed
	g.startX, g.startY = x, y
	g.lastX, g.lastY = x, y
}

// Move reports how far the map should pan for this pointer motion. While
// Pressed it is zero; the move that crosses the threshold returns the whole
// travel since the press.
func (g *Gesture) Move(x, y float64) (dx, dy float64) {
	switch g.State {
	case Pressed:
		if math.Hypot(x-g.startX, y-g.startY) < g.Threshold {
			return 0, 0
		}
		g.State = Dragging
		dx, dy = x-g.startX, y-g.startY
	case Dragging:
		dx, dy = x-g.lastX, y-g.lastY
	default:
		return 0, 0
	}
	g.lastX, g.lastY = x, y
	return dx, dy
}

// Release ends the gesture. click is true when the press never became a
// drag and the release point is within the threshold of the press.
func (g *Gesture) Release(x, y float64) (click bool) {
	click = g.State == Pressed && math.Hypot(x-g.startX, y-g.startY) < g.Threshold
	g.State = Idle
	return click
}
