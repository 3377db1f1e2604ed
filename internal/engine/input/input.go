// Package input translates SDL2 events into viewer events.
package input

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/silicaviz/silica/internal/engine/camera"
)

// EventType identifies a translated event.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventKeyDown
	EventDrag
	EventScroll
)

// Event represents a processed input event.
type Event struct {
	Type    EventType
	Key     sdl.Scancode
	Width   int
	Height  int
	DX, DY  float64 // drag delta in pixels with DY growing upwards, or wheel delta for EventScroll
	Buttons camera.Buttons
}

// keyMap binds the keys the camera controller polls.
var keyMap = map[camera.Key]sdl.Scancode{
	camera.KeyRecenter: sdl.SCANCODE_C,
	camera.KeyForward:  sdl.SCANCODE_UP,
	camera.KeyBackward: sdl.SCANCODE_DOWN,
}

// Input handles all input processing.
type Input struct {
	events []Event
}

// New creates a new input handler.
func New() *Input {
	return &Input{
		events: make([]Event, 0, 16),
	}
}

// Update polls SDL events and translates them.
// Returns true if the viewer should quit.
func (i *Input) Update() bool {
	i.events = i.events[:0]

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			i.events = append(i.events, Event{Type: EventQuit})
			return true

		case *sdl.WindowEvent:
			if e.Event == sdl.WINDOWEVENT_RESIZED || e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
				i.events = append(i.events, Event{
					Type:   EventWindowResize,
					Width:  int(e.Data1),
					Height: int(e.Data2),
				})
			}

		case *sdl.KeyboardEvent:
			if e.Type == sdl.KEYDOWN && e.Repeat == 0 {
				i.events = append(i.events, Event{
					Type: EventKeyDown,
					Key:  e.Keysym.Scancode,
				})
			}

		case *sdl.MouseMotionEvent:
			buttons := buttonsFromState(e.State)
			if buttons == 0 || (e.XRel == 0 && e.YRel == 0) {
				continue
			}
			i.events = append(i.events, Event{
				Type:    EventDrag,
				DX:      float64(e.XRel),
				DY:      -float64(e.YRel),
				Buttons: buttons,
			})

		case *sdl.MouseWheelEvent:
			dy := float64(e.Y)
			if e.Direction == sdl.MOUSEWHEEL_FLIPPED {
				dy = -dy
			}
			if dy != 0 {
				i.events = append(i.events, Event{Type: EventScroll, DY: dy})
			}
		}
	}

	return false
}

// Events returns the events from the last Update.
func (i *Input) Events() []Event {
	return i.events
}

// IsKeyPressed checks if a specific key went down this frame.
func (i *Input) IsKeyPressed(scancode sdl.Scancode) bool {
	for _, e := range i.events {
		if e.Type == EventKeyDown && e.Key == scancode {
			return true
		}
	}
	return false
}

// Pressed reports whether the key bound to k is currently held.
func (i *Input) Pressed(k camera.Key) bool {
	sc, ok := keyMap[k]
	if !ok {
		return false
	}
	state := sdl.GetKeyboardState()
	return int(sc) < len(state) && state[sc] != 0
}

func buttonsFromState(state uint32) camera.Buttons {
	var b camera.Buttons
	if state&sdlMask(sdl.BUTTON_LEFT) != 0 {
		b |= camera.ButtonLeft
	}
	if state&sdlMask(sdl.BUTTON_MIDDLE) != 0 {
		b |= camera.ButtonMiddle
	}
	if state&sdlMask(sdl.BUTTON_RIGHT) != 0 {
		b |= camera.ButtonRight
	}
	return b
}

// sdlMask mirrors the SDL_BUTTON macro.
func sdlMask(button uint32) uint32 {
	return 1 << (button - 1)
}
