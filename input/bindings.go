package input

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Bindings is the set of keybinds the UI controls react to. The set is a
// plain struct with an explicit All list; nothing here is discovered via
// reflection.
type Bindings struct {
	// KeyboardActivate fires the selected element's primary action, or its
	// secondary action when a shift key is held.
	KeyboardActivate *Keybind
	// KeyboardAdvance moves the selection along the tab order; shift
	// reverses the direction.
	KeyboardAdvance *Keybind

	GamepadActivate  *Keybind
	GamepadSecondary *Keybind
	GamepadUp        *Keybind
	GamepadDown      *Keybind
	GamepadLeft      *Keybind
	GamepadRight     *Keybind
}

// DefaultBindings returns the standard binding set: space/enter to activate,
// tab to advance, A/X gamepad buttons and the d-pad for navigation.
func DefaultBindings() *Bindings {
	return &Bindings{
		KeyboardActivate: Bind("activate", KeyInput(KeySpace), KeyInput(KeyEnter)),
		KeyboardAdvance:  Bind("advance", KeyInput(KeyTab)),
		GamepadActivate:  Bind("pad_activate", GamepadInput(PadA)),
		GamepadSecondary: Bind("pad_secondary", GamepadInput(PadX)),
		GamepadUp:        Bind("pad_nav_up", GamepadInput(PadUp)),
		GamepadDown:      Bind("pad_nav_down", GamepadInput(PadDown)),
		GamepadLeft:      Bind("pad_nav_left", GamepadInput(PadLeft)),
		GamepadRight:     Bind("pad_nav_right", GamepadInput(PadRight)),
	}
}

// All returns every keybind in a stable order.
func (b *Bindings) All() []*Keybind {
	return []*Keybind{
		b.KeyboardActivate,
		b.KeyboardAdvance,
		b.GamepadActivate,
		b.GamepadSecondary,
		b.GamepadUp,
		b.GamepadDown,
		b.GamepadLeft,
		b.GamepadRight,
	}
}

// bindingsFile is the on-disk TOML shape: each action maps to a list of
// combination strings, e.g. activate = ["space", "enter"].
type bindingsFile struct {
	Activate     []string `toml:"activate"`
	Advance      []string `toml:"advance"`
	PadActivate  []string `toml:"pad_activate"`
	PadSecondary []string `toml:"pad_secondary"`
	PadUp        []string `toml:"pad_up"`
	PadDown      []string `toml:"pad_down"`
	PadLeft      []string `toml:"pad_left"`
	PadRight     []string `toml:"pad_right"`
}

// ParseBindings decodes a TOML controls document. Actions missing from the
// document keep their defaults.
func ParseBindings(data []byte) (*Bindings, error) {
	var f bindingsFile
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse bindings: %w", err)
	}

	b := DefaultBindings()
	entries := []struct {
		combos []string
		bind   *Keybind
	}{
		{f.Activate, b.KeyboardActivate},
		{f.Advance, b.KeyboardAdvance},
		{f.PadActivate, b.GamepadActivate},
		{f.PadSecondary, b.GamepadSecondary},
		{f.PadUp, b.GamepadUp},
		{f.PadDown, b.GamepadDown},
		{f.PadLeft, b.GamepadLeft},
		{f.PadRight, b.GamepadRight},
	}
	for _, e := range entries {
		if len(e.combos) == 0 {
			continue
		}
		e.bind.Combinations = e.bind.Combinations[:0]
		for _, s := range e.combos {
			c, err := ParseCombination(s)
			if err != nil {
				return nil, fmt.Errorf("bindings %s: %w", e.bind.Name, err)
			}
			e.bind.Combinations = append(e.bind.Combinations, c)
		}
	}
	return b, nil
}

// LoadBindings reads a TOML controls file from disk.
func LoadBindings(path string) (*Bindings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read bindings: %w", err)
	}
	return ParseBindings(data)
}

// MarshalBindings encodes the binding set into TOML.
func MarshalBindings(b *Bindings) ([]byte, error) {
	f := bindingsFile{
		Activate:     formatAll(b.KeyboardActivate),
		Advance:      formatAll(b.KeyboardAdvance),
		PadActivate:  formatAll(b.GamepadActivate),
		PadSecondary: formatAll(b.GamepadSecondary),
		PadUp:        formatAll(b.GamepadUp),
		PadDown:      formatAll(b.GamepadDown),
		PadLeft:      formatAll(b.GamepadLeft),
		PadRight:     formatAll(b.GamepadRight),
	}
	return toml.Marshal(f)
}

// SaveBindings writes the binding set to a TOML controls file.
func SaveBindings(path string, b *Bindings) error {
	data, err := MarshalBindings(b)
	if err != nil {
		return fmt.Errorf("encode bindings: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write bindings: %w", err)
	}
	return nil
}

func formatAll(b *Keybind) []string {
	out := make([]string, 0, len(b.Combinations))
	for _, c := range b.Combinations {
		out = append(out, FormatCombination(c))
	}
	return out
}
