package ui

import (
	"testing"

	"github.com/Monniasza/mlem"
	"github.com/Monniasza/mlem/input"
)

// scriptedDevice implements input.Device with state set per frame by the
// test body.
type scriptedDevice struct {
	cursor mlem.Point

	keysDown map[input.Key]bool
	keysJust map[input.Key]bool

	mouseJust map[input.MouseButton]bool

	pads    int
	padJust map[input.GamepadButton]bool

	gestures map[input.Gesture]mlem.Point
	touches  []input.Touch
}

func newScriptedDevice() *scriptedDevice {
	d := &scriptedDevice{}
	d.reset()
	return d
}

// reset clears all just-pressed state; held state and the cursor persist.
func (d *scriptedDevice) reset() {
	d.keysJust = map[input.Key]bool{}
	d.mouseJust = map[input.MouseButton]bool{}
	d.padJust = map[input.GamepadButton]bool{}
	d.gestures = map[input.Gesture]mlem.Point{}
	d.touches = nil
	if d.keysDown == nil {
		d.keysDown = map[input.Key]bool{}
	}
}

func (d *scriptedDevice) CursorPosition() mlem.Point          { return d.cursor }
func (d *scriptedDevice) IsKeyDown(k input.Key) bool          { return d.keysDown[k] }
func (d *scriptedDevice) IsKeyJustPressed(k input.Key) bool   { return d.keysJust[k] }
func (d *scriptedDevice) IsMouseButtonDown(input.MouseButton) bool { return false }
func (d *scriptedDevice) IsMouseButtonJustPressed(b input.MouseButton) bool {
	return d.mouseJust[b]
}
func (d *scriptedDevice) GamepadCount() int { return d.pads }
func (d *scriptedDevice) IsGamepadButtonDown(int, input.GamepadButton) bool {
	return false
}
func (d *scriptedDevice) IsGamepadButtonJustPressed(pad int, b input.GamepadButton) bool {
	return pad < d.pads && d.padJust[b]
}
func (d *scriptedDevice) JustPerformedGesture(g input.Gesture) (mlem.Point, bool) {
	pos, ok := d.gestures[g]
	return pos, ok
}
func (d *scriptedDevice) Touches() []input.Touch { return d.touches }

// controlsFixture builds a system with a scripted device and two buttons
// stacked at (0,0,60,20) and (0,20,60,20) plus surrounding empty space.
func controlsFixture(t *testing.T) (*UiSystem, *scriptedDevice, *Element, *Element) {
	t.Helper()
	dev := newScriptedDevice()
	sys := NewUiSystem(mlem.Rect(0, 0, 200, 200), dev)

	panel := NewGroup(TopLeft, 200, 200)
	a := panel.AddChild(NewElement(AutoLeft, 60, 20))
	b := panel.AddChild(NewElement(AutoLeft, 60, 20))
	if sys.Add("menu", panel, 0) == nil {
		t.Fatal("Add returned nil")
	}
	return sys, dev, a, b
}

func step(t *testing.T, sys *UiSystem) {
	t.Helper()
	if err := sys.Update(); err != nil {
		t.Fatalf("Update: %v", err)
	}
}

func TestMouseClickSelectsAndPresses(t *testing.T) {
	sys, dev, a, _ := controlsFixture(t)

	pressed := 0
	a.Events.Pressed.Add(func(*Element) { pressed++ })

	dev.cursor = mlem.Pt(30, 10)
	dev.mouseJust[input.MouseLeft] = true
	step(t, sys)

	if pressed != 1 {
		t.Errorf("pressed %d times, want 1", pressed)
	}
	root := sys.Get("menu")
	if root.SelectedElement() != a {
		t.Error("click did not select the element")
	}
	if sys.Controls().IsAutoNavMode() {
		t.Error("mouse interaction left auto-nav mode on")
	}
}

func TestMouseClickOnEmptySpaceDeselects(t *testing.T) {
	sys, dev, a, _ := controlsFixture(t)
	root := sys.Get("menu")

	dev.cursor = mlem.Pt(30, 10)
	dev.mouseJust[input.MouseLeft] = true
	step(t, sys)
	if root.SelectedElement() != a {
		t.Fatal("setup click did not select")
	}

	dev.reset()
	dev.cursor = mlem.Pt(150, 150) // over the panel? the group is not moused
	dev.mouseJust[input.MouseLeft] = true
	step(t, sys)

	if root.SelectedElement() != nil {
		t.Error("click on empty space kept the selection")
	}
}

func TestRightClickPressesSecondaryWithoutSelecting(t *testing.T) {
	sys, dev, a, _ := controlsFixture(t)

	secondary := 0
	a.Events.SecondaryPressed.Add(func(*Element) { secondary++ })

	dev.cursor = mlem.Pt(30, 10)
	dev.mouseJust[input.MouseRight] = true
	step(t, sys)

	if secondary != 1 {
		t.Errorf("secondary pressed %d times, want 1", secondary)
	}
	if sys.Get("menu").SelectedElement() != nil {
		t.Error("secondary press moved the selection")
	}
}

func TestMouseEnterExitEvents(t *testing.T) {
	sys, dev, a, b := controlsFixture(t)

	var log []string
	a.Events.MouseEnter.Add(func(*Element) { log = append(log, "enter a") })
	a.Events.MouseExit.Add(func(*Element) { log = append(log, "exit a") })
	b.Events.MouseEnter.Add(func(*Element) { log = append(log, "enter b") })

	dev.cursor = mlem.Pt(30, 10)
	step(t, sys)
	dev.reset()
	dev.cursor = mlem.Pt(30, 30)
	step(t, sys)

	want := []string{"enter a", "exit a", "enter b"}
	if len(log) != len(want) {
		t.Fatalf("event log = %v, want %v", log, want)
	}
	for i := range want {
		if log[i] != want[i] {
			t.Errorf("log[%d] = %q, want %q", i, log[i], want[i])
		}
	}
	if sys.Controls().MousedElement() != b {
		t.Error("moused element is not the second button")
	}
}

func TestTabSelectsAndEntersAutoNav(t *testing.T) {
	sys, dev, a, b := controlsFixture(t)
	root := sys.Get("menu")

	dev.keysJust[input.KeyTab] = true
	step(t, sys)

	if root.SelectedElement() != a {
		t.Fatal("first tab did not select the first button")
	}
	if !sys.Controls().IsAutoNavMode() {
		t.Error("keyboard navigation did not enter auto-nav mode")
	}

	dev.reset()
	dev.keysJust[input.KeyTab] = true
	step(t, sys)
	if root.SelectedElement() != b {
		t.Error("second tab did not advance the selection")
	}

	// At the end of the tab order the selection stays put.
	dev.reset()
	dev.keysJust[input.KeyTab] = true
	step(t, sys)
	if root.SelectedElement() != b {
		t.Error("tab past the end changed the selection")
	}
}

func TestShiftTabMovesBackward(t *testing.T) {
	sys, dev, a, b := controlsFixture(t)
	root := sys.Get("menu")
	root.SelectElement(b, true)

	dev.keysDown[input.KeyShiftLeft] = true
	dev.keysJust[input.KeyTab] = true
	step(t, sys)

	if root.SelectedElement() != a {
		t.Error("shift+tab did not move the selection backward")
	}
}

func TestKeyboardActivatePressesSelection(t *testing.T) {
	sys, dev, a, _ := controlsFixture(t)
	root := sys.Get("menu")
	root.SelectElement(a, true)

	pressed, secondary := 0, 0
	a.Events.Pressed.Add(func(*Element) { pressed++ })
	a.Events.SecondaryPressed.Add(func(*Element) { secondary++ })

	dev.keysJust[input.KeyEnter] = true
	step(t, sys)
	if pressed != 1 || secondary != 0 {
		t.Errorf("enter: pressed=%d secondary=%d, want 1/0", pressed, secondary)
	}

	dev.reset()
	dev.keysDown[input.KeyShiftLeft] = true
	dev.keysJust[input.KeySpace] = true
	step(t, sys)
	if secondary != 1 {
		t.Errorf("shift+space: secondary=%d, want 1", secondary)
	}
}

func TestTouchTapSelectsAndPresses(t *testing.T) {
	sys, dev, a, _ := controlsFixture(t)

	pressed := 0
	a.Events.Pressed.Add(func(*Element) { pressed++ })

	dev.gestures[input.GestureTap] = mlem.Pt(30, 10)
	step(t, sys)

	if pressed != 1 {
		t.Errorf("pressed %d times, want 1", pressed)
	}
	if sys.Get("menu").SelectedElement() != a {
		t.Error("tap did not select")
	}
	if sys.Controls().IsAutoNavMode() {
		t.Error("touch interaction left auto-nav mode on")
	}
}

func TestTouchHoldPressesSecondary(t *testing.T) {
	sys, dev, a, _ := controlsFixture(t)

	secondary := 0
	a.Events.SecondaryPressed.Add(func(*Element) { secondary++ })

	dev.gestures[input.GestureHold] = mlem.Pt(30, 10)
	step(t, sys)

	if secondary != 1 {
		t.Errorf("secondary pressed %d times, want 1", secondary)
	}
}

func TestTouchedElementTracksContact(t *testing.T) {
	sys, dev, a, _ := controlsFixture(t)

	entered, exited := 0, 0
	a.Events.TouchEnter.Add(func(*Element) { entered++ })
	a.Events.TouchExit.Add(func(*Element) { exited++ })

	dev.touches = []input.Touch{{ID: 7, Pos: mlem.Pt(30, 10), Phase: input.TouchBegan}}
	step(t, sys)
	if sys.Controls().TouchedElement() != a || entered != 1 {
		t.Fatalf("touch begin not tracked: touched=%v entered=%d", sys.Controls().TouchedElement(), entered)
	}

	// Finger stays on the element.
	dev.reset()
	dev.touches = []input.Touch{{ID: 7, Pos: mlem.Pt(40, 12), Phase: input.TouchMoved}}
	step(t, sys)
	if sys.Controls().TouchedElement() != a {
		t.Fatal("touched element lost while the finger stayed on it")
	}

	// Finger drifts off.
	dev.reset()
	dev.touches = []input.Touch{{ID: 7, Pos: mlem.Pt(150, 150), Phase: input.TouchMoved}}
	step(t, sys)
	if sys.Controls().TouchedElement() != nil || exited != 1 {
		t.Errorf("drift off: touched=%v exited=%d", sys.Controls().TouchedElement(), exited)
	}
}

func TestGamepadNavigationAndActivation(t *testing.T) {
	sys, dev, a, b := controlsFixture(t)
	root := sys.Get("menu")
	dev.pads = 1

	// First directional press selects the first element.
	dev.padJust[input.PadDown] = true
	step(t, sys)
	if root.SelectedElement() != a {
		t.Fatalf("first dpad press selected %v, want the first button", root.SelectedElement())
	}
	if !sys.Controls().IsAutoNavMode() {
		t.Error("gamepad navigation did not enter auto-nav mode")
	}

	dev.reset()
	dev.padJust[input.PadDown] = true
	step(t, sys)
	if root.SelectedElement() != b {
		t.Error("dpad down did not move to the element below")
	}

	dev.reset()
	dev.padJust[input.PadUp] = true
	step(t, sys)
	if root.SelectedElement() != a {
		t.Error("dpad up did not move back")
	}

	pressed, secondary := 0, 0
	a.Events.Pressed.Add(func(*Element) { pressed++ })
	a.Events.SecondaryPressed.Add(func(*Element) { secondary++ })

	dev.reset()
	dev.padJust[input.PadA] = true
	step(t, sys)
	if pressed != 1 {
		t.Errorf("pad A pressed %d times, want 1", pressed)
	}

	dev.reset()
	dev.padJust[input.PadX] = true
	step(t, sys)
	if secondary != 1 {
		t.Errorf("pad X secondary %d times, want 1", secondary)
	}
}

func TestSimultaneousMouseAndGamepadFireOnceEach(t *testing.T) {
	sys, dev, a, b := controlsFixture(t)
	root := sys.Get("menu")
	dev.pads = 1
	step(t, sys)
	root.SelectElement(b, false)

	aPressed, bPressed := 0, 0
	a.Events.Pressed.Add(func(*Element) { aPressed++ })
	b.Events.Pressed.Add(func(*Element) { bPressed++ })

	// A left click on a and a gamepad activate arrive in the same frame.
	// The mouse channel runs first and moves the selection to a; the
	// gamepad activate then acts on that updated selection. Each trigger
	// is consumed exactly once, so a is pressed twice and b never.
	dev.reset()
	dev.cursor = mlem.Pt(30, 10)
	dev.mouseJust[input.MouseLeft] = true
	dev.padJust[input.PadA] = true
	step(t, sys)

	if aPressed != 2 {
		t.Errorf("a pressed %d times, want 2 (one per trigger)", aPressed)
	}
	if bPressed != 0 {
		t.Errorf("b pressed %d times, want 0", bPressed)
	}
	if root.SelectedElement() != a {
		t.Error("selection did not follow the click")
	}
	if !sys.Controls().IsAutoNavMode() {
		t.Error("gamepad activate did not leave auto-nav mode on")
	}
}

func TestDisabledChannelIsIgnored(t *testing.T) {
	sys, dev, a, _ := controlsFixture(t)
	sys.Controls().HandleMouse = false

	pressed := 0
	a.Events.Pressed.Add(func(*Element) { pressed++ })

	dev.cursor = mlem.Pt(30, 10)
	dev.mouseJust[input.MouseLeft] = true
	step(t, sys)

	if pressed != 0 {
		t.Error("disabled mouse channel still pressed an element")
	}
	if sys.Controls().MousedElement() != nil {
		t.Error("disabled mouse channel still tracked hover")
	}
}

func TestUnselectablePressTargetIsIgnoredSilently(t *testing.T) {
	sys, dev, a, _ := controlsFixture(t)
	a.CanBeSelected = false

	pressed := 0
	a.Events.Pressed.Add(func(*Element) { pressed++ })

	dev.cursor = mlem.Pt(30, 10)
	dev.mouseJust[input.MouseLeft] = true
	step(t, sys)

	// The click still presses, but the selection does not move.
	if pressed != 1 {
		t.Errorf("pressed %d times, want 1", pressed)
	}
	if sys.Get("menu").SelectedElement() != nil {
		t.Error("unselectable element became selected")
	}
}

func TestSelectionEventsFireOnTransition(t *testing.T) {
	sys, _, a, b := controlsFixture(t)
	root := sys.Get("menu")
	step(t, sys)

	var log []string
	a.Events.Selected.Add(func(*Element) { log = append(log, "sel a") })
	a.Events.Deselected.Add(func(*Element) { log = append(log, "desel a") })
	b.Events.Selected.Add(func(*Element) { log = append(log, "sel b") })
	changes := 0
	sys.Controls().SelectedElementChanged.Add(func(*Element) { changes++ })

	root.SelectElement(a, false)
	root.SelectElement(a, false) // no transition
	root.SelectElement(b, false)

	want := []string{"sel a", "desel a", "sel b"}
	if len(log) != len(want) {
		t.Fatalf("event log = %v, want %v", log, want)
	}
	for i := range want {
		if log[i] != want[i] {
			t.Errorf("log[%d] = %q, want %q", i, log[i], want[i])
		}
	}
	if changes != 2 {
		t.Errorf("SelectedElementChanged fired %d times, want 2", changes)
	}
}

func TestSelectionsIsolatedPerRoot(t *testing.T) {
	dev := newScriptedDevice()
	sys := NewUiSystem(mlem.Rect(0, 0, 200, 200), dev)

	elA := NewElement(TopLeft, 50, 50)
	elB := NewElement(TopLeft, 50, 50)
	rootA := sys.Add("a", elA, 0)
	rootB := sys.Add("b", elB, 1)
	step(t, sys)

	rootA.SelectElement(elA, false)
	rootB.SelectElement(elB, false)

	if rootA.SelectedElement() != elA || rootB.SelectedElement() != elB {
		t.Error("per-root selections interfered with each other")
	}
}
