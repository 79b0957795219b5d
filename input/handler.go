package input

import "github.com/Monniasza/mlem"

// Handler wraps a Device and adds consume-once semantics: once a caller
// consumes a press, every later query for the same input in the same frame
// reports it as unavailable. This is what keeps a single physical trigger
// from firing an action through two channels in one frame.
type Handler struct {
	dev   Device
	frame uint64

	// consumed maps an input (plus gamepad index) to the frame it was
	// consumed on. Entries from old frames are stale and ignored.
	consumed map[consumeKey]uint64
}

type consumeKey struct {
	input GenericInput
	pad   int
}

// NewHandler creates a Handler polling the given device.
func NewHandler(dev Device) *Handler {
	return &Handler{
		dev:      dev,
		consumed: make(map[consumeKey]uint64),
	}
}

// Device returns the underlying device.
func (h *Handler) Device() Device {
	return h.dev
}

// Update advances the frame counter, invalidating last frame's consumptions.
// Call exactly once per frame, before any press queries.
func (h *Handler) Update() {
	h.frame++
	// Drop stale entries occasionally so the map does not grow unbounded
	// with one-off binds.
	if h.frame%600 == 0 {
		for k, f := range h.consumed {
			if f != h.frame {
				delete(h.consumed, k)
			}
		}
	}
}

// CursorPosition returns the pointer position in screen pixels.
func (h *Handler) CursorPosition() mlem.Point {
	return h.dev.CursorPosition()
}

// IsDown reports whether the input is currently held, ignoring consumption.
// For gamepad inputs, pad selects the device index; AnyGamepad checks all.
func (h *Handler) IsDown(g GenericInput, pad int) bool {
	switch g.Type {
	case SourceKey:
		return h.dev.IsKeyDown(Key(g.Code))
	case SourceMouse:
		return h.dev.IsMouseButtonDown(MouseButton(g.Code))
	case SourceGamepad:
		return h.eachPad(pad, func(p int) bool {
			return h.dev.IsGamepadButtonDown(p, GamepadButton(g.Code))
		})
	}
	return false
}

// IsPressed reports whether the input was just pressed this frame and has
// not been consumed yet.
func (h *Handler) IsPressed(g GenericInput, pad int) bool {
	if h.consumed[consumeKey{g, pad}] == h.frame {
		return false
	}
	return h.justPressedRaw(g, pad)
}

// TryConsume consumes the input's press for the rest of this frame. It
// returns false when the input was not just pressed or was already consumed.
func (h *Handler) TryConsume(g GenericInput, pad int) bool {
	if !h.IsPressed(g, pad) {
		return false
	}
	h.consumed[consumeKey{g, pad}] = h.frame
	return true
}

// GesturePosition returns the screen position of a gesture recognized this
// frame, without consuming it.
func (h *Handler) GesturePosition(g Gesture) (mlem.Point, bool) {
	return h.dev.JustPerformedGesture(g)
}

// TryConsumeGesture consumes a gesture recognized this frame and returns the
// position it happened at.
func (h *Handler) TryConsumeGesture(g Gesture) (mlem.Point, bool) {
	gi := GestureInput(g)
	if h.consumed[consumeKey{gi, 0}] == h.frame {
		return mlem.Point{}, false
	}
	pos, ok := h.dev.JustPerformedGesture(g)
	if !ok {
		return mlem.Point{}, false
	}
	h.consumed[consumeKey{gi, 0}] = h.frame
	return pos, true
}

func (h *Handler) justPressedRaw(g GenericInput, pad int) bool {
	switch g.Type {
	case SourceKey:
		return h.dev.IsKeyJustPressed(Key(g.Code))
	case SourceMouse:
		return h.dev.IsMouseButtonJustPressed(MouseButton(g.Code))
	case SourceGamepad:
		return h.eachPad(pad, func(p int) bool {
			return h.dev.IsGamepadButtonJustPressed(p, GamepadButton(g.Code))
		})
	case SourceGesture:
		_, ok := h.dev.JustPerformedGesture(Gesture(g.Code))
		return ok
	}
	return false
}

func (h *Handler) eachPad(pad int, fn func(p int) bool) bool {
	if pad != AnyGamepad {
		return fn(pad)
	}
	for p := 0; p < h.dev.GamepadCount(); p++ {
		if fn(p) {
			return true
		}
	}
	return false
}
