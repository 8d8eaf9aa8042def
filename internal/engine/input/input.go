// Package input turns SDL2 events into demo events.
package input

import (
	"github.com/veandco/go-sdl2/sdl"
)

// EventType classifies an Event.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventResize
	EventExpose
	EventKey
)

// Event represents a processed input event.
type Event struct {
	Type   EventType
	Key    rune // Character for EventKey, see keyRune
	Width  int
	Height int
}

// Input waits for and collects SDL events.
type Input struct {
	events []Event
}

// New creates a new input handler.
func New() *Input {
	return &Input{
		events: make([]Event, 0, 16),
	}
}

// Wait blocks until at least one event arrives or timeoutMS elapses, then
// drains the queue. It returns the collected events.
func (i *Input) Wait(timeoutMS int) []Event {
	i.events = i.events[:0]

	event := sdl.WaitEventTimeout(timeoutMS)
	for ; event != nil; event = sdl.PollEvent() {
		if e, ok := convert(event); ok {
			i.events = append(i.events, e)
		}
	}
	return i.events
}

func convert(event sdl.Event) (Event, bool) {
	switch e := event.(type) {
	case *sdl.QuitEvent:
		return Event{Type: EventQuit}, true

	case *sdl.WindowEvent:
		switch e.Event {
		case sdl.WINDOWEVENT_SIZE_CHANGED:
			return Event{Type: EventResize, Width: int(e.Data1), Height: int(e.Data2)}, true
		case sdl.WINDOWEVENT_EXPOSED:
			return Event{Type: EventExpose}, true
		}

	case *sdl.KeyboardEvent:
		if e.Type != sdl.KEYDOWN {
			return Event{}, false
		}
		if r, ok := keyRune(e.Keysym); ok {
			return Event{Type: EventKey, Key: r}, true
		}
	}
	return Event{}, false
}

// keypad maps keypad keys onto the digits they carry, so 4/6/2/8/3/9 work
// with or without NumLock.
var keypad = map[sdl.Keycode]rune{
	sdl.K_KP_2: '2',
	sdl.K_KP_3: '3',
	sdl.K_KP_4: '4',
	sdl.K_KP_6: '6',
	sdl.K_KP_8: '8',
	sdl.K_KP_9: '9',
}

// keyRune returns the character a key press produces. Shift turns letters
// upper case; other printable keys map to their ASCII value.
func keyRune(sym sdl.Keysym) (rune, bool) {
	if r, ok := keypad[sym.Sym]; ok {
		return r, true
	}

	code := sym.Sym
	if code == sdl.K_ESCAPE || (code >= ' ' && code < 0x7f) {
		r := rune(code)
		if r >= 'a' && r <= 'z' && sym.Mod&uint16(sdl.KMOD_SHIFT) != 0 {
			r -= 'a' - 'A'
		}
		return r, true
	}
	return 0, false
}
