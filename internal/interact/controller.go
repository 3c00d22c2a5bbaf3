package interact

import (
	"math"

	"github.com/san-kum/glucosim/internal/catalog"
	"github.com/san-kum/glucosim/internal/chart"
)

const (
	DefaultDragThreshold = 0.5
	DefaultHitRadius     = 4.0
)

type State int

const (
	Idle State = iota
	Armed
	Dragging
)

func (s State) String() string {
	switch s {
	case Armed:
		return "armed"
	case Dragging:
		return "dragging"
	default:
		return "idle"
	}
}

type Kind int

const (
	Press Kind = iota
	Move
	Release
)

type Source int

const (
	Mouse Source = iota
	Touch
)

// Event is a pointer event in frame pixels. Target is the id of the marker
// under the pointer at press time; it is ignored for moves and releases.
type Event struct {
	Kind   Kind
	Source Source
	X, Y   float64
	Target string
}

type Result struct {
	Retimed        bool
	Inspected      bool
	PreventDefault bool
}

// Session is the part of engine.Session the controller drives.
type Session interface {
	Retime(id string, position float64)
	Inspected() (catalog.Item, bool)
	ToggleInspect(id string)
	ClearInspect()
}

// Controller tells taps from drags on the marker lane. A press arms the
// marker under the pointer; moving further than DragThreshold starts a drag
// that retimes the marker on every move; releasing without dragging toggles
// the marker's inspected state.
type Controller struct {
	session Session
	frame   chart.Frame

	DragThreshold float64
	HitRadius     float64

	state        State
	target       string
	startX       float64
	wasInspected bool
}

func NewController(s Session, f chart.Frame) *Controller {
	return &Controller{
		session:       s,
		frame:         f,
		DragThreshold: DefaultDragThreshold,
		HitRadius:     DefaultHitRadius,
	}
}

func (c *Controller) State() State { return c.state }

// Armed returns the marker under an active press or drag.
func (c *Controller) Armed() (string, bool) {
	if c.state == Idle {
		return "", false
	}
	return c.target, true
}

// SetFrame swaps the pixel frame, e.g. after a resize.
func (c *Controller) SetFrame(f chart.Frame) { c.frame = f }

func (c *Controller) Frame() chart.Frame { return c.frame }

// SetSession points the controller at a replacement session and drops any
// gesture in progress.
func (c *Controller) SetSession(s Session) {
	c.session = s
	c.Cancel()
}

// Cancel abandons the current gesture without side effects.
func (c *Controller) Cancel() {
	c.state = Idle
	c.target = ""
	c.wasInspected = false
}

func (c *Controller) Handle(ev Event) Result {
	switch ev.Kind {
	case Press:
		return c.press(ev)
	case Move:
		return c.move(ev)
	case Release:
		return c.release()
	}
	return Result{}
}

func (c *Controller) press(ev Event) Result {
	if ev.Target == "" {
		return Result{}
	}
	c.state = Armed
	c.target = ev.Target
	c.startX = ev.X
	cur, ok := c.session.Inspected()
	c.wasInspected = ok && cur.ID == ev.Target
	c.session.ClearInspect()
	return Result{}
}

func (c *Controller) move(ev Event) Result {
	var res Result
	if c.state == Idle {
		return res
	}
	res.PreventDefault = ev.Source == Touch
	if c.state == Armed && math.Abs(ev.X-c.startX) > c.DragThreshold {
		c.state = Dragging
	}
	if c.state == Dragging {
		c.session.Retime(c.target, c.frame.PixelToPosition(ev.X))
		res.Retimed = true
	}
	return res
}

func (c *Controller) release() Result {
	var res Result
	if c.state == Armed && !c.wasInspected {
		c.session.ToggleInspect(c.target)
		res.Inspected = true
	}
	c.Cancel()
	return res
}
