// Package input provides a device-agnostic view of per-frame input state:
// a Device interface implemented by concrete backends, a Handler that layers
// consume-once semantics on top of it, and configurable keybinds.
package input

import (
	"github.com/Monniasza/mlem"
)

// Key identifies a keyboard key independently of the backing window library.
// Backends translate these to their own key codes.
type Key int

const (
	KeyNone Key = iota
	KeyA
	KeyB
	KeyC
	KeyD
	KeyE
	KeyF
	KeyG
	KeyH
	KeyI
	KeyJ
	KeyK
	KeyL
	KeyM
	KeyN
	KeyO
	KeyP
	KeyQ
	KeyR
	KeyS
	KeyT
	KeyU
	KeyV
	KeyW
	KeyX
	KeyY
	KeyZ
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyTab
	KeyEnter
	KeySpace
	KeyEscape
	KeyShiftLeft
	KeyShiftRight
	KeyControlLeft
	KeyControlRight
	KeyAltLeft
	KeyAltRight
)

// MouseButton identifies a mouse button.
type MouseButton int

const (
	MouseLeft MouseButton = iota
	MouseRight
	MouseMiddle
)

// GamepadButton identifies a button on a standard-layout gamepad.
type GamepadButton int

const (
	PadA GamepadButton = iota
	PadB
	PadX
	PadY
	PadUp
	PadDown
	PadLeft
	PadRight
	PadLeftShoulder
	PadRightShoulder
	PadStart
	PadBack
)

// Gesture identifies a recognized touch gesture.
type Gesture int

const (
	GestureTap Gesture = iota
	GestureHold
)

// TouchPhase describes the lifecycle stage of a touch contact this frame.
type TouchPhase int

const (
	TouchBegan TouchPhase = iota
	TouchMoved
	TouchEnded
)

// Touch is a single finger contact for one frame.
type Touch struct {
	ID    int64
	Pos   mlem.Point
	Phase TouchPhase
}

// AnyGamepad passes a device query to every connected gamepad.
const AnyGamepad = -1

// Device is the raw input backend contract: a per-frame snapshot of
// keyboard, mouse, touch and gamepad state. All "JustPressed" queries refer
// to the transition that happened on the current frame. Implementations are
// polled from the single frame-driving goroutine and need no locking.
type Device interface {
	// CursorPosition returns the pointer position in screen pixels.
	CursorPosition() mlem.Point

	IsKeyDown(k Key) bool
	IsKeyJustPressed(k Key) bool

	IsMouseButtonDown(b MouseButton) bool
	IsMouseButtonJustPressed(b MouseButton) bool

	// GamepadCount returns the number of connected gamepads.
	GamepadCount() int
	IsGamepadButtonDown(pad int, b GamepadButton) bool
	IsGamepadButtonJustPressed(pad int, b GamepadButton) bool

	// JustPerformedGesture reports a gesture recognized this frame and the
	// screen position it happened at.
	JustPerformedGesture(g Gesture) (mlem.Point, bool)

	// Touches returns the currently active touch contacts.
	Touches() []Touch
}

// SourceType discriminates the device a GenericInput refers to.
type SourceType int

const (
	SourceKey SourceType = iota
	SourceMouse
	SourceGamepad
	SourceGesture
)

// GenericInput is a single pressable input on any device: a key, a mouse
// button, a gamepad button or a touch gesture.
type GenericInput struct {
	Type SourceType
	Code int
}

func KeyInput(k Key) GenericInput {
	return GenericInput{Type: SourceKey, Code: int(k)}
}

func MouseInput(b MouseButton) GenericInput {
	return GenericInput{Type: SourceMouse, Code: int(b)}
}

func GamepadInput(b GamepadButton) GenericInput {
	return GenericInput{Type: SourceGamepad, Code: int(b)}
}

func GestureInput(g Gesture) GenericInput {
	return GenericInput{Type: SourceGesture, Code: int(g)}
}

// Key returns the key this input refers to, or KeyNone for other sources.
func (g GenericInput) Key() Key {
	if g.Type != SourceKey {
		return KeyNone
	}
	return Key(g.Code)
}
