// Package controls maps keys to demo actions.
package controls

// Action is something a key press asks the demo to do.
type Action int

const (
	ActionNone Action = iota
	ActionQuit
	ActionAzimuthLeft   // azimuth += step
	ActionAzimuthRight  // azimuth -= step
	ActionElevationDown // elevation -= step
	ActionElevationUp   // elevation += step
	ActionZoomOut       // distance += step
	ActionZoomIn        // distance -= step
	ActionScreenshot
)

var actionNames = map[Action]string{
	ActionNone:          "none",
	ActionQuit:          "quit",
	ActionAzimuthLeft:   "azimuth-left",
	ActionAzimuthRight:  "azimuth-right",
	ActionElevationDown: "elevation-down",
	ActionElevationUp:   "elevation-up",
	ActionZoomOut:       "zoom-out",
	ActionZoomIn:        "zoom-in",
	ActionScreenshot:    "screenshot",
}

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "unknown"
}

// Escape is the key value reported for the escape key.
const Escape rune = 27

// Keymap maps key characters to actions. Numeric keys follow the keypad
// layout: 4/6 left/right, 2/8 down/up, 3/9 page down/page up.
type Keymap map[rune]Action

// DefaultKeymap returns the standard bindings.
func DefaultKeymap() Keymap {
	return Keymap{
		Escape: ActionQuit,
		'q':    ActionQuit,
		'Q':    ActionQuit,
		'4':    ActionAzimuthLeft,
		'6':    ActionAzimuthRight,
		'2':    ActionElevationDown,
		'8':    ActionElevationUp,
		'3':    ActionZoomOut,
		'9':    ActionZoomIn,
		'p':    ActionScreenshot,
		'P':    ActionScreenshot,
	}
}

// Lookup returns the action bound to key, or ActionNone.
func (k Keymap) Lookup(key rune) Action {
	return k[key]
}
