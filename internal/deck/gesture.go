package deck

import "math"

// DefaultTouchSensitivity is the minimum horizontal travel, in device
// pixels, for a drag to count as a swipe.
const DefaultTouchSensitivity = 15

// Point is a touch position in page coordinates.
type Point struct {
	X, Y float64
}

// Command is a navigation command produced by input handling.
type Command int

const (
	CommandNone Command = iota
	CommandNext
	CommandPrev
)

func (c Command) String() string {
	switch c {
	case CommandNext:
		return "next"
	case CommandPrev:
		return "prev"
	}
	return "none"
}

// Recognizer turns a single-finger horizontal drag into a Command. The zero
// value uses DefaultTouchSensitivity.
type Recognizer struct {
	Threshold float64

	tracking bool
	start    Point
	dx, dy   float64
}

// Tracking reports whether a gesture is in progress.
func (g *Recognizer) Tracking() bool { return g.tracking }

// Delta returns the travel accumulated by the current gesture.
func (g *Recognizer) Delta() (dx, dy float64) { return g.dx, g.dy }

// Start handles a touch-start carrying every active touch. A single touch
// begins tracking; an additional finger cancels the gesture in progress.
func (g *Recognizer) Start(touches []Point) {
	switch {
	case len(touches) == 1:
		g.tracking = true
		g.start = touches[0]
		g.dx, g.dy = 0, 0
	case len(touches) > 1:
		g.Cancel()
	}
}

// Move handles a touch-move.
func (g *Recognizer) Move(touches []Point) {
	if !g.tracking {
		return
	}
	if len(touches) != 1 {
		g.Cancel()
		return
	}
	g.dx = touches[0].X - g.start.X
	g.dy = touches[0].Y - g.start.Y
}

// End finishes the gesture and returns the command it describes. Dragging
// content leftwards moves forward.
func (g *Recognizer) End() Command {
	if !g.tracking {
		return CommandNone
	}
	defer g.Cancel()
	threshold := g.Threshold
	if threshold <= 0 {
		threshold = DefaultTouchSensitivity
	}
	ax, ay := math.Abs(g.dx), math.Abs(g.dy)
	if ax <= threshold || ay >= ax*2/3 {
		return CommandNone
	}
	if g.dx > 0 {
		return CommandPrev
	}
	return CommandNext
}

// Cancel drops the gesture without producing a command.
func (g *Recognizer) Cancel() {
	g.tracking = false
	g.dx, g.dy = 0, 0
}
