// Package ebitenbackend implements the input device and renderer contracts
// on top of Ebitengine.
package ebitenbackend

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/Monniasza/mlem"
	"github.com/Monniasza/mlem/input"
)

var keyCodes = map[input.Key]ebiten.Key{
	input.KeyA: ebiten.KeyA, input.KeyB: ebiten.KeyB, input.KeyC: ebiten.KeyC,
	input.KeyD: ebiten.KeyD, input.KeyE: ebiten.KeyE, input.KeyF: ebiten.KeyF,
	input.KeyG: ebiten.KeyG, input.KeyH: ebiten.KeyH, input.KeyI: ebiten.KeyI,
	input.KeyJ: ebiten.KeyJ, input.KeyK: ebiten.KeyK, input.KeyL: ebiten.KeyL,
	input.KeyM: ebiten.KeyM, input.KeyN: ebiten.KeyN, input.KeyO: ebiten.KeyO,
	input.KeyP: ebiten.KeyP, input.KeyQ: ebiten.KeyQ, input.KeyR: ebiten.KeyR,
	input.KeyS: ebiten.KeyS, input.KeyT: ebiten.KeyT, input.KeyU: ebiten.KeyU,
	input.KeyV: ebiten.KeyV, input.KeyW: ebiten.KeyW, input.KeyX: ebiten.KeyX,
	input.KeyY: ebiten.KeyY, input.KeyZ: ebiten.KeyZ,
	input.KeyUp: ebiten.KeyArrowUp, input.KeyDown: ebiten.KeyArrowDown,
	input.KeyLeft: ebiten.KeyArrowLeft, input.KeyRight: ebiten.KeyArrowRight,
	input.KeyTab: ebiten.KeyTab, input.KeyEnter: ebiten.KeyEnter,
	input.KeySpace: ebiten.KeySpace, input.KeyEscape: ebiten.KeyEscape,
	input.KeyShiftLeft: ebiten.KeyShiftLeft, input.KeyShiftRight: ebiten.KeyShiftRight,
	input.KeyControlLeft: ebiten.KeyControlLeft, input.KeyControlRight: ebiten.KeyControlRight,
	input.KeyAltLeft: ebiten.KeyAltLeft, input.KeyAltRight: ebiten.KeyAltRight,
}

var mouseCodes = map[input.MouseButton]ebiten.MouseButton{
	input.MouseLeft:   ebiten.MouseButtonLeft,
	input.MouseRight:  ebiten.MouseButtonRight,
	input.MouseMiddle: ebiten.MouseButtonMiddle,
}

var padCodes = map[input.GamepadButton]ebiten.StandardGamepadButton{
	input.PadA: ebiten.StandardGamepadButtonRightBottom,
	input.PadB: ebiten.StandardGamepadButtonRightRight,
	input.PadX: ebiten.StandardGamepadButtonRightLeft,
	input.PadY: ebiten.StandardGamepadButtonRightTop,

	input.PadUp:    ebiten.StandardGamepadButtonLeftTop,
	input.PadDown:  ebiten.StandardGamepadButtonLeftBottom,
	input.PadLeft:  ebiten.StandardGamepadButtonLeftLeft,
	input.PadRight: ebiten.StandardGamepadButtonLeftRight,

	input.PadLeftShoulder:  ebiten.StandardGamepadButtonFrontTopLeft,
	input.PadRightShoulder: ebiten.StandardGamepadButtonFrontTopRight,

	input.PadStart: ebiten.StandardGamepadButtonCenterRight,
	input.PadBack:  ebiten.StandardGamepadButtonCenterLeft,
}

// Gesture recognition thresholds, in ticks (TPS frames) and pixels.
const (
	tapMaxTicks    = 20
	holdMinTicks   = 35
	moveTolerance  = 12.0
	moveTolerance2 = moveTolerance * moveTolerance
)

type touchTrack struct {
	startX, startY int
	lastX, lastY   int
	ticks          int
	moved          bool
	holdFired      bool
}

// Device implements input.Device by polling Ebitengine. Call Update once at
// the start of every game tick, before the UI system updates; the touch
// gesture recognizer depends on it.
type Device struct {
	pads    []ebiten.GamepadID
	touches map[ebiten.TouchID]*touchTrack
	active  []ebiten.TouchID
	snap    []input.Touch

	tapPos  mlem.Point
	tapped  bool
	holdPos mlem.Point
	held    bool
}

// NewDevice creates an Ebitengine-backed input device.
func NewDevice() *Device {
	return &Device{touches: make(map[ebiten.TouchID]*touchTrack)}
}

// Update advances the per-tick device state: the connected gamepad list, the
// touch snapshot and the tap/hold gesture recognizer.
func (d *Device) Update() {
	d.pads = ebiten.AppendGamepadIDs(d.pads[:0])
	d.active = ebiten.AppendTouchIDs(d.active[:0])
	d.snap = d.snap[:0]
	d.tapped = false
	d.held = false

	for _, id := range d.active {
		x, y := ebiten.TouchPosition(id)
		t := d.touches[id]
		phase := input.TouchMoved
		if t == nil {
			t = &touchTrack{startX: x, startY: y}
			d.touches[id] = t
			phase = input.TouchBegan
		}
		t.lastX, t.lastY = x, y
		t.ticks++
		dx, dy := float64(x-t.startX), float64(y-t.startY)
		if dx*dx+dy*dy > moveTolerance2 {
			t.moved = true
		}
		if !t.moved && !t.holdFired && t.ticks >= holdMinTicks {
			t.holdFired = true
			d.held = true
			d.holdPos = mlem.Pt(float32(x), float32(y))
		}
		d.snap = append(d.snap, input.Touch{
			ID:    int64(id),
			Pos:   mlem.Pt(float32(x), float32(y)),
			Phase: phase,
		})
	}

	for id, t := range d.touches {
		if containsTouchID(d.active, id) {
			continue
		}
		pos := mlem.Pt(float32(t.lastX), float32(t.lastY))
		if !t.moved && !t.holdFired && t.ticks <= tapMaxTicks {
			d.tapped = true
			d.tapPos = pos
		}
		d.snap = append(d.snap, input.Touch{ID: int64(id), Pos: pos, Phase: input.TouchEnded})
		delete(d.touches, id)
	}
}

func containsTouchID(ids []ebiten.TouchID, id ebiten.TouchID) bool {
	for _, cur := range ids {
		if cur == id {
			return true
		}
	}
	return false
}

func (d *Device) CursorPosition() mlem.Point {
	x, y := ebiten.CursorPosition()
	return mlem.Pt(float32(x), float32(y))
}

func (d *Device) IsKeyDown(k input.Key) bool {
	code, ok := keyCodes[k]
	return ok && ebiten.IsKeyPressed(code)
}

func (d *Device) IsKeyJustPressed(k input.Key) bool {
	code, ok := keyCodes[k]
	return ok && inpututil.IsKeyJustPressed(code)
}

func (d *Device) IsMouseButtonDown(b input.MouseButton) bool {
	code, ok := mouseCodes[b]
	return ok && ebiten.IsMouseButtonPressed(code)
}

func (d *Device) IsMouseButtonJustPressed(b input.MouseButton) bool {
	code, ok := mouseCodes[b]
	return ok && inpututil.IsMouseButtonJustPressed(code)
}

func (d *Device) GamepadCount() int { return len(d.pads) }

func (d *Device) IsGamepadButtonDown(pad int, b input.GamepadButton) bool {
	id, ok := d.padID(pad)
	if !ok {
		return false
	}
	code, ok := padCodes[b]
	return ok && ebiten.IsStandardGamepadButtonPressed(id, code)
}

func (d *Device) IsGamepadButtonJustPressed(pad int, b input.GamepadButton) bool {
	id, ok := d.padID(pad)
	if !ok {
		return false
	}
	code, ok := padCodes[b]
	return ok && inpututil.IsStandardGamepadButtonJustPressed(id, code)
}

func (d *Device) padID(pad int) (ebiten.GamepadID, bool) {
	if pad < 0 || pad >= len(d.pads) {
		return 0, false
	}
	id := d.pads[pad]
	if !ebiten.IsStandardGamepadLayoutAvailable(id) {
		return 0, false
	}
	return id, true
}

func (d *Device) JustPerformedGesture(g input.Gesture) (mlem.Point, bool) {
	switch g {
	case input.GestureTap:
		return d.tapPos, d.tapped
	case input.GestureHold:
		return d.holdPos, d.held
	}
	return mlem.Point{}, false
}

func (d *Device) Touches() []input.Touch { return d.snap }
