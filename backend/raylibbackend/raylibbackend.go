// Package raylibbackend implements the input device and renderer contracts
// on top of raylib-go. The window must be initialized (rl.InitWindow) before
// any method here is called.
package raylibbackend

import (
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/Monniasza/mlem"
	"github.com/Monniasza/mlem/backend"
	"github.com/Monniasza/mlem/input"
)

var keyCodes = map[input.Key]int32{
	input.KeyA: rl.KeyA, input.KeyB: rl.KeyB, input.KeyC: rl.KeyC,
	input.KeyD: rl.KeyD, input.KeyE: rl.KeyE, input.KeyF: rl.KeyF,
	input.KeyG: rl.KeyG, input.KeyH: rl.KeyH, input.KeyI: rl.KeyI,
	input.KeyJ: rl.KeyJ, input.KeyK: rl.KeyK, input.KeyL: rl.KeyL,
	input.KeyM: rl.KeyM, input.KeyN: rl.KeyN, input.KeyO: rl.KeyO,
	input.KeyP: rl.KeyP, input.KeyQ: rl.KeyQ, input.KeyR: rl.KeyR,
	input.KeyS: rl.KeyS, input.KeyT: rl.KeyT, input.KeyU: rl.KeyU,
	input.KeyV: rl.KeyV, input.KeyW: rl.KeyW, input.KeyX: rl.KeyX,
	input.KeyY: rl.KeyY, input.KeyZ: rl.KeyZ,
	input.KeyUp: rl.KeyUp, input.KeyDown: rl.KeyDown,
	input.KeyLeft: rl.KeyLeft, input.KeyRight: rl.KeyRight,
	input.KeyTab: rl.KeyTab, input.KeyEnter: rl.KeyEnter,
	input.KeySpace: rl.KeySpace, input.KeyEscape: rl.KeyEscape,
	input.KeyShiftLeft: rl.KeyLeftShift, input.KeyShiftRight: rl.KeyRightShift,
	input.KeyControlLeft: rl.KeyLeftControl, input.KeyControlRight: rl.KeyRightControl,
	input.KeyAltLeft: rl.KeyLeftAlt, input.KeyAltRight: rl.KeyRightAlt,
}

var mouseCodes = map[input.MouseButton]rl.MouseButton{
	input.MouseLeft:   rl.MouseButtonLeft,
	input.MouseRight:  rl.MouseButtonRight,
	input.MouseMiddle: rl.MouseButtonMiddle,
}

var padCodes = map[input.GamepadButton]int32{
	input.PadA: rl.GamepadButtonRightFaceDown,
	input.PadB: rl.GamepadButtonRightFaceRight,
	input.PadX: rl.GamepadButtonRightFaceLeft,
	input.PadY: rl.GamepadButtonRightFaceUp,

	input.PadUp:    rl.GamepadButtonLeftFaceUp,
	input.PadDown:  rl.GamepadButtonLeftFaceDown,
	input.PadLeft:  rl.GamepadButtonLeftFaceLeft,
	input.PadRight: rl.GamepadButtonLeftFaceRight,

	input.PadLeftShoulder:  rl.GamepadButtonLeftTrigger1,
	input.PadRightShoulder: rl.GamepadButtonRightTrigger1,

	input.PadStart: rl.GamepadButtonMiddleRight,
	input.PadBack:  rl.GamepadButtonMiddleLeft,
}

// Device implements input.Device by polling raylib. Call Update once per
// frame before the UI system updates so gesture state is current.
type Device struct {
	snap []input.Touch
	prev map[int64]mlem.Point

	tapPos  mlem.Point
	tapped  bool
	holdPos mlem.Point
	held    bool
}

// NewDevice creates a raylib-backed input device. Gesture detection for tap
// and hold is enabled on the shared raylib gesture state.
func NewDevice() *Device {
	rl.SetGesturesEnabled(uint32(rl.GestureTap | rl.GestureHold))
	return &Device{prev: make(map[int64]mlem.Point)}
}

// Update refreshes the touch snapshot and gesture flags for this frame.
func (d *Device) Update() {
	gesture := rl.GetGestureDetected()
	d.tapped = gesture == rl.GestureTap
	d.held = gesture == rl.GestureHold
	if d.tapped {
		p := rl.GetTouchPosition(0)
		d.tapPos = mlem.Pt(p.X, p.Y)
	}
	if d.held {
		p := rl.GetTouchPosition(0)
		d.holdPos = mlem.Pt(p.X, p.Y)
	}

	d.snap = d.snap[:0]
	count := int(rl.GetTouchPointCount())
	seen := make(map[int64]mlem.Point, count)
	for i := 0; i < count; i++ {
		id := int64(rl.GetTouchPointId(int32(i)))
		p := rl.GetTouchPosition(int32(i))
		pos := mlem.Pt(p.X, p.Y)
		phase := input.TouchMoved
		if _, ok := d.prev[id]; !ok {
			phase = input.TouchBegan
		}
		seen[id] = pos
		d.snap = append(d.snap, input.Touch{ID: id, Pos: pos, Phase: phase})
	}
	for id, pos := range d.prev {
		if _, ok := seen[id]; !ok {
			d.snap = append(d.snap, input.Touch{ID: id, Pos: pos, Phase: input.TouchEnded})
		}
	}
	d.prev = seen
}

func (d *Device) CursorPosition() mlem.Point {
	p := rl.GetMousePosition()
	return mlem.Pt(p.X, p.Y)
}

func (d *Device) IsKeyDown(k input.Key) bool {
	code, ok := keyCodes[k]
	return ok && rl.IsKeyDown(code)
}

func (d *Device) IsKeyJustPressed(k input.Key) bool {
	code, ok := keyCodes[k]
	return ok && rl.IsKeyPressed(code)
}

func (d *Device) IsMouseButtonDown(b input.MouseButton) bool {
	code, ok := mouseCodes[b]
	return ok && rl.IsMouseButtonDown(code)
}

func (d *Device) IsMouseButtonJustPressed(b input.MouseButton) bool {
	code, ok := mouseCodes[b]
	return ok && rl.IsMouseButtonPressed(code)
}

// GamepadCount returns the number of consecutively connected gamepads
// starting at index 0, matching raylib's slot model.
func (d *Device) GamepadCount() int {
	n := 0
	for rl.IsGamepadAvailable(int32(n)) {
		n++
	}
	return n
}

func (d *Device) IsGamepadButtonDown(pad int, b input.GamepadButton) bool {
	code, ok := padCodes[b]
	return ok && rl.IsGamepadAvailable(int32(pad)) && rl.IsGamepadButtonDown(int32(pad), code)
}

func (d *Device) IsGamepadButtonJustPressed(pad int, b input.GamepadButton) bool {
	code, ok := padCodes[b]
	return ok && rl.IsGamepadAvailable(int32(pad)) && rl.IsGamepadButtonPressed(int32(pad), code)
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

// Renderer implements backend.Renderer and backend.TextMeasurer over
// raylib's immediate drawing calls. Draw calls arrive pre-sorted by depth.
type Renderer struct {
	// FontSize is the base text size in pixels at scale 1.
	FontSize int32
}

// NewRenderer creates a renderer drawing with raylib's default font.
func NewRenderer() *Renderer {
	return &Renderer{FontSize: 10}
}

func toRaylibColor(c color.RGBA) rl.Color {
	return rl.NewColor(c.R, c.G, c.B, c.A)
}

// DrawRectangle implements backend.Renderer. A fill holding an rl.Texture2D
// stretches it over the area; anything else draws a solid quad.
func (r *Renderer) DrawRectangle(area mlem.Rectangle, fill backend.Fill, _ float32) {
	if area.IsEmpty() {
		return
	}
	if tex, ok := fill.Texture.(rl.Texture2D); ok && tex.ID != 0 {
		src := rl.NewRectangle(0, 0, float32(tex.Width), float32(tex.Height))
		dst := rl.NewRectangle(area.X, area.Y, area.Width, area.Height)
		rl.DrawTexturePro(tex, src, dst, rl.NewVector2(0, 0), 0, toRaylibColor(fill.Color))
		return
	}
	rl.DrawRectangle(int32(area.X), int32(area.Y), int32(area.Width), int32(area.Height), toRaylibColor(fill.Color))
}

// DrawText implements backend.Renderer.
func (r *Renderer) DrawText(pos mlem.Point, str string, scale float32, col color.RGBA, _ float32) {
	if str == "" {
		return
	}
	size := int32(float32(r.FontSize) * scale)
	if size < 1 {
		size = 1
	}
	rl.DrawText(str, int32(pos.X), int32(pos.Y), size, toRaylibColor(col))
}

// MeasureText implements backend.TextMeasurer.
func (r *Renderer) MeasureText(str string, scale float32) mlem.Point {
	if str == "" {
		return mlem.Point{}
	}
	size := int32(float32(r.FontSize) * scale)
	if size < 1 {
		size = 1
	}
	w := rl.MeasureText(str, size)
	return mlem.Pt(float32(w), float32(size))
}
