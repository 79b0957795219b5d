package input

import (
	"fmt"
	"strings"
)

// Combination is one way to trigger a keybind: a single input plus any
// number of modifier keys that must be held at the same time.
type Combination struct {
	Input     GenericInput
	Modifiers []Key
}

// Combo builds a Combination from an input and optional modifiers.
func Combo(in GenericInput, mods ...Key) Combination {
	return Combination{Input: in, Modifiers: mods}
}

// modifiersDown reports whether every modifier of the combination is held.
func (c Combination) modifiersDown(h *Handler) bool {
	for _, m := range c.Modifiers {
		if !h.dev.IsKeyDown(m) {
			return false
		}
	}
	return true
}

// Keybind is a named action triggered by any of a list of combinations.
// Keybinds are declared as explicit values in a static list; there is no
// runtime field enumeration involved in collecting them.
type Keybind struct {
	Name         string
	Combinations []Combination
}

// Bind constructs a keybind from plain inputs with no modifiers.
func Bind(name string, inputs ...GenericInput) *Keybind {
	b := &Keybind{Name: name}
	for _, in := range inputs {
		b.Combinations = append(b.Combinations, Combination{Input: in})
	}
	return b
}

// IsPressed reports whether any combination was just pressed this frame and
// not consumed, with its modifiers held.
func (b *Keybind) IsPressed(h *Handler, pad int) bool {
	for _, c := range b.Combinations {
		if c.modifiersDown(h) && h.IsPressed(c.Input, pad) {
			return true
		}
	}
	return false
}

// TryConsume consumes the first matching combination's press this frame.
func (b *Keybind) TryConsume(h *Handler, pad int) bool {
	for _, c := range b.Combinations {
		if c.modifiersDown(h) && h.TryConsume(c.Input, pad) {
			return true
		}
	}
	return false
}

// keyNames maps config-file names to keys. The reverse table is derived.
var keyNames = map[string]Key{
	"a": KeyA, "b": KeyB, "c": KeyC, "d": KeyD, "e": KeyE, "f": KeyF,
	"g": KeyG, "h": KeyH, "i": KeyI, "j": KeyJ, "k": KeyK, "l": KeyL,
	"m": KeyM, "n": KeyN, "o": KeyO, "p": KeyP, "q": KeyQ, "r": KeyR,
	"s": KeyS, "t": KeyT, "u": KeyU, "v": KeyV, "w": KeyW, "x": KeyX,
	"y": KeyY, "z": KeyZ,
	"up": KeyUp, "down": KeyDown, "left": KeyLeft, "right": KeyRight,
	"tab": KeyTab, "enter": KeyEnter, "space": KeySpace, "escape": KeyEscape,
	"shift": KeyShiftLeft, "rshift": KeyShiftRight,
	"ctrl": KeyControlLeft, "rctrl": KeyControlRight,
	"alt": KeyAltLeft, "ralt": KeyAltRight,
}

var padNames = map[string]GamepadButton{
	"pad_a": PadA, "pad_b": PadB, "pad_x": PadX, "pad_y": PadY,
	"pad_up": PadUp, "pad_down": PadDown,
	"pad_left": PadLeft, "pad_right": PadRight,
	"pad_lb": PadLeftShoulder, "pad_rb": PadRightShoulder,
	"pad_start": PadStart, "pad_back": PadBack,
}

var mouseNames = map[string]MouseButton{
	"mouse_left": MouseLeft, "mouse_right": MouseRight, "mouse_middle": MouseMiddle,
}

func keyName(k Key) string {
	for name, key := range keyNames {
		if key == k {
			return name
		}
	}
	return ""
}

// ParseCombination parses a config-file combination like "tab",
// "shift+tab" or "pad_a". The last segment is the triggering input; earlier
// segments are modifier keys.
func ParseCombination(s string) (Combination, error) {
	parts := strings.Split(strings.ToLower(strings.TrimSpace(s)), "+")
	if len(parts) == 0 || parts[len(parts)-1] == "" {
		return Combination{}, fmt.Errorf("empty combination %q", s)
	}

	var c Combination
	for _, mod := range parts[:len(parts)-1] {
		k, ok := keyNames[mod]
		if !ok {
			return Combination{}, fmt.Errorf("unknown modifier %q in %q", mod, s)
		}
		c.Modifiers = append(c.Modifiers, k)
	}

	last := parts[len(parts)-1]
	switch {
	case keyNames[last] != KeyNone:
		c.Input = KeyInput(keyNames[last])
	case strings.HasPrefix(last, "pad_"):
		b, ok := padNames[last]
		if !ok {
			return Combination{}, fmt.Errorf("unknown gamepad button %q", last)
		}
		c.Input = GamepadInput(b)
	case strings.HasPrefix(last, "mouse_"):
		b, ok := mouseNames[last]
		if !ok {
			return Combination{}, fmt.Errorf("unknown mouse button %q", last)
		}
		c.Input = MouseInput(b)
	default:
		return Combination{}, fmt.Errorf("unknown input %q in %q", last, s)
	}
	return c, nil
}

// FormatCombination renders a combination back into config-file form.
func FormatCombination(c Combination) string {
	var parts []string
	for _, m := range c.Modifiers {
		parts = append(parts, keyName(m))
	}
	switch c.Input.Type {
	case SourceKey:
		parts = append(parts, keyName(Key(c.Input.Code)))
	case SourceGamepad:
		for name, b := range padNames {
			if b == GamepadButton(c.Input.Code) {
				parts = append(parts, name)
				break
			}
		}
	case SourceMouse:
		for name, b := range mouseNames {
			if b == MouseButton(c.Input.Code) {
				parts = append(parts, name)
				break
			}
		}
	}
	return strings.Join(parts, "+")
}
