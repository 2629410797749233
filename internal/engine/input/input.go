// Package input translates SDL2 events into viewer events.
package input

import (
	"github.com/veandco/go-sdl2/sdl"
)

// WheelNotch is the pixel delta one wheel notch produces, matching what
// browsers report for line-based mice. Negative deltas scroll away from
// the user (zoom in).
const WheelNotch = 100

// EventType identifies a viewer event.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventKeyDown
	EventPointerUp
	EventDrag
	EventWheel
)

// Event represents a processed input event.
type Event struct {
	Type   EventType
	Key    sdl.Scancode
	Width  int
	Height int
	X, Y   float64 // pointer position in pixels
	DeltaX float64 // drag motion in pixels
	DeltaY float64 // drag motion, or wheel delta in browser convention
}

// Input polls SDL and collects this frame's events.
type Input struct {
	events   []Event
	dragging bool
}

// New creates a new input handler.
func New() *Input {
	return &Input{
		events: make([]Event, 0, 16),
	}
}

// Update polls SDL events and converts them to viewer events.
// Returns true if the viewer should quit.
func (i *Input) Update() bool {
	i.events = i.events[:0]

	quit := false
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		ev, ok := i.translate(event)
		if !ok {
			continue
		}
		i.events = append(i.events, ev)
		if ev.Type == EventQuit {
			quit = true
		}
	}
	return quit
}

// Events returns the events from the last Update.
func (i *Input) Events() []Event {
	return i.events
}

// translate converts one SDL event. Left-button presses start a drag;
// the matching release ends it and is reported as a pointer-up, which
// is what triggers picking.
func (i *Input) translate(event sdl.Event) (Event, bool) {
	switch e := event.(type) {
	case *sdl.QuitEvent:
		return Event{Type: EventQuit}, true

	case *sdl.WindowEvent:
		if e.Event == sdl.WINDOWEVENT_RESIZED || e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
			return Event{Type: EventWindowResize, Width: int(e.Data1), Height: int(e.Data2)}, true
		}

	case *sdl.KeyboardEvent:
		if e.Type == sdl.KEYDOWN {
			return Event{Type: EventKeyDown, Key: e.Keysym.Scancode}, true
		}

	case *sdl.MouseButtonEvent:
		if e.Button != sdl.BUTTON_LEFT {
			return Event{}, false
		}
		if e.Type == sdl.MOUSEBUTTONDOWN {
			i.dragging = true
			return Event{}, false
		}
		if e.Type == sdl.MOUSEBUTTONUP {
			i.dragging = false
			return Event{Type: EventPointerUp, X: float64(e.X), Y: float64(e.Y)}, true
		}

	case *sdl.MouseMotionEvent:
		if i.dragging {
			return Event{
				Type:   EventDrag,
				X:      float64(e.X),
				Y:      float64(e.Y),
				DeltaX: float64(e.XRel),
				DeltaY: float64(e.YRel),
			}, true
		}

	case *sdl.MouseWheelEvent:
		return Event{Type: EventWheel, DeltaY: WheelDelta(e)}, true
	}

	return Event{}, false
}

// WheelDelta converts an SDL wheel event to a browser-style deltaY.
// SDL reports positive Y for scrolling away from the user; browsers
// report that as a negative delta.
func WheelDelta(e *sdl.MouseWheelEvent) float64 {
	notches := float64(e.Y)
	if e.Direction == sdl.MOUSEWHEEL_FLIPPED {
		notches = -notches
	}
	return -notches * WheelNotch
}
