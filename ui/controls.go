package ui

import (
	"github.com/Monniasza/mlem"
	"github.com/Monniasza/mlem/input"
)

// UiControls turns raw per-frame device state into moused/touched/selected
// element transitions and press events. One Update call per frame evaluates
// the four input channels independently, in a fixed order (pointer,
// keyboard, touch, gamepad); each channel consumes at most one input event
// per frame through the handler's consume-once queries, so a mouse click
// and a simultaneous gamepad press can never double-fire an action. A
// channel that changes the selection is visible to the channels after it in
// the same frame.
type UiControls struct {
	system   *UiSystem
	handler  *input.Handler
	bindings *input.Bindings

	// GamepadIndex restricts gamepad queries to one device;
	// input.AnyGamepad (the default) accepts them all.
	GamepadIndex int

	// Per-channel enable switches.
	HandleMouse    bool
	HandleKeyboard bool
	HandleTouch    bool
	HandleGamepad  bool

	mousedElement  *Element
	touchedElement *Element
	touchedID      int64

	// selected keeps one selection per root name so switching the active
	// root preserves each root's last selection.
	selected map[string]*Element

	autoNavMode bool

	// System-level change events. Callbacks receive the new element, which
	// may be nil on a change to "none".
	MousedElementChanged   EventList
	TouchedElementChanged  EventList
	SelectedElementChanged EventList
}

func newUiControls(system *UiSystem, dev input.Device) *UiControls {
	c := &UiControls{
		system:       system,
		bindings:     input.DefaultBindings(),
		GamepadIndex: input.AnyGamepad,
		selected:     make(map[string]*Element),
	}
	if dev != nil {
		c.handler = input.NewHandler(dev)
		c.HandleMouse = true
		c.HandleKeyboard = true
		c.HandleTouch = true
		c.HandleGamepad = true
	}
	return c
}

// Handler returns the consume-once input handler, or nil without a device.
func (c *UiControls) Handler() *input.Handler { return c.handler }

// Bindings returns the active keybind set.
func (c *UiControls) Bindings() *input.Bindings { return c.bindings }

// SetBindings replaces the keybind set, e.g. with one loaded from a TOML
// controls file.
func (c *UiControls) SetBindings(b *input.Bindings) {
	if b != nil {
		c.bindings = b
	}
}

// MousedElement returns the element currently under the mouse, or nil.
func (c *UiControls) MousedElement() *Element { return c.mousedElement }

// TouchedElement returns the element currently under a finger, or nil.
func (c *UiControls) TouchedElement() *Element { return c.touchedElement }

// IsAutoNavMode reports whether the last interaction was keyboard or
// gamepad driven; the selection indicator is only drawn in that mode.
func (c *UiControls) IsAutoNavMode() bool { return c.autoNavMode }

// SelectedElement returns the given root's current selection, or nil.
func (c *UiControls) SelectedElement(r *RootElement) *Element {
	if r == nil {
		return nil
	}
	return c.selected[r.name]
}

// Update evaluates all input channels for one frame. Called by
// UiSystem.Update after layout resolution so hit tests see current areas.
func (c *UiControls) Update() {
	if c.handler == nil {
		return
	}
	c.handler.Update()

	if c.HandleMouse {
		c.updateMouse()
	}
	if c.HandleKeyboard {
		c.updateKeyboard()
	}
	if c.HandleTouch {
		c.updateTouch()
	}
	if c.HandleGamepad {
		c.updateGamepad()
	}
}

// ============================================================================
// Pointer channel
// ============================================================================

func (c *UiControls) updateMouse() {
	pos := c.handler.CursorPosition()
	c.setMousedElement(c.system.GetElementUnderPos(pos))

	if c.handler.TryConsume(input.MouseInput(input.MouseLeft), 0) {
		c.autoNavMode = false
		if c.mousedElement != nil {
			c.selectElement(c.mousedElement.root, c.mousedElement, false)
			c.pressElement(c.mousedElement, false)
		} else if active := c.system.ActiveRoot(); active != nil {
			// Click on empty space deselects in the active root.
			c.selectElement(active, nil, false)
		}
	} else if c.handler.TryConsume(input.MouseInput(input.MouseRight), 0) {
		// Secondary press does not move the selection.
		c.autoNavMode = false
		if c.mousedElement != nil {
			c.pressElement(c.mousedElement, true)
		}
	}
}

func (c *UiControls) setMousedElement(e *Element) {
	if c.mousedElement == e {
		return
	}
	if c.mousedElement != nil {
		c.mousedElement.Events.MouseExit.Fire(c.mousedElement)
	}
	c.mousedElement = e
	if e != nil {
		e.Events.MouseEnter.Fire(e)
	}
	c.MousedElementChanged.Fire(e)
}

// ============================================================================
// Keyboard channel
// ============================================================================

func (c *UiControls) updateKeyboard() {
	active := c.system.ActiveRoot()
	if active == nil {
		return
	}

	if c.bindings.KeyboardActivate.TryConsume(c.handler, c.GamepadIndex) {
		c.autoNavMode = true
		sel := c.SelectedElement(active)
		if sel != nil {
			c.pressElement(sel, c.shiftDown())
		}
		return
	}

	if c.bindings.KeyboardAdvance.TryConsume(c.handler, c.GamepadIndex) {
		backward := c.shiftDown()
		next := tabNextElement(active, c.SelectedElement(active), backward)
		if next != nil {
			c.selectElement(active, next, true)
		}
	}
}

func (c *UiControls) shiftDown() bool {
	return c.handler.IsDown(input.KeyInput(input.KeyShiftLeft), 0) ||
		c.handler.IsDown(input.KeyInput(input.KeyShiftRight), 0)
}

// ============================================================================
// Touch channel
// ============================================================================

func (c *UiControls) updateTouch() {
	if pos, ok := c.handler.TryConsumeGesture(input.GestureTap); ok {
		c.autoNavMode = false
		if hit := c.system.GetElementUnderPos(pos); hit != nil {
			c.selectElement(hit.root, hit, false)
			c.pressElement(hit, false)
		}
	} else if pos, ok := c.handler.TryConsumeGesture(input.GestureHold); ok {
		c.autoNavMode = false
		if hit := c.system.GetElementUnderPos(pos); hit != nil {
			c.selectElement(hit.root, hit, false)
			c.pressElement(hit, true)
		}
	}

	c.trackTouchedElement()
}

// trackTouchedElement maintains the continuous-contact element for visuals:
// set when a finger lands on an element, cleared when the finger lifts or
// drifts off the element it originally touched.
func (c *UiControls) trackTouchedElement() {
	touches := c.handler.Device().Touches()

	if c.touchedElement != nil {
		found := false
		for _, t := range touches {
			if t.ID != c.touchedID {
				continue
			}
			found = true
			if t.Phase == input.TouchEnded || c.system.GetElementUnderPos(t.Pos) != c.touchedElement {
				c.setTouchedElement(nil, 0)
			}
			break
		}
		if !found {
			c.setTouchedElement(nil, 0)
		}
		return
	}

	for _, t := range touches {
		if t.Phase != input.TouchBegan {
			continue
		}
		if hit := c.system.GetElementUnderPos(t.Pos); hit != nil {
			c.setTouchedElement(hit, t.ID)
			break
		}
	}
}

func (c *UiControls) setTouchedElement(e *Element, id int64) {
	if c.touchedElement == e {
		return
	}
	if c.touchedElement != nil {
		c.touchedElement.Events.TouchExit.Fire(c.touchedElement)
	}
	c.touchedElement = e
	c.touchedID = id
	if e != nil {
		e.Events.TouchEnter.Fire(e)
	}
	c.TouchedElementChanged.Fire(e)
}

// ============================================================================
// Gamepad channel
// ============================================================================

func (c *UiControls) updateGamepad() {
	active := c.system.ActiveRoot()
	if active == nil {
		return
	}

	if c.bindings.GamepadActivate.TryConsume(c.handler, c.GamepadIndex) {
		c.autoNavMode = true
		if sel := c.SelectedElement(active); sel != nil {
			c.pressElement(sel, false)
		}
		return
	}
	if c.bindings.GamepadSecondary.TryConsume(c.handler, c.GamepadIndex) {
		c.autoNavMode = true
		if sel := c.SelectedElement(active); sel != nil {
			c.pressElement(sel, true)
		}
		return
	}

	dirs := []struct {
		bind *input.Keybind
		dir  mlem.Direction
	}{
		{c.bindings.GamepadUp, mlem.DirUp},
		{c.bindings.GamepadDown, mlem.DirDown},
		{c.bindings.GamepadLeft, mlem.DirLeft},
		{c.bindings.GamepadRight, mlem.DirRight},
	}
	for _, d := range dirs {
		if !d.bind.TryConsume(c.handler, c.GamepadIndex) {
			continue
		}
		next := directionalNextElement(active, c.SelectedElement(active), d.dir)
		if next != nil {
			c.selectElement(active, next, true)
		}
		return
	}
}

// ============================================================================
// Selection and press application
// ============================================================================

// selectElement applies a selection transition within one root. Elements
// that cannot be selected are silently ignored; nil deselects. autoNav
// records whether the transition came from keyboard/gamepad navigation.
func (c *UiControls) selectElement(r *RootElement, e *Element, autoNav bool) {
	if r == nil {
		return
	}
	if e != nil && !e.CanBeSelected {
		return
	}

	old := c.selected[r.name]
	if old == e {
		c.autoNavMode = autoNav
		return
	}

	if old != nil {
		old.Events.Deselected.Fire(old)
	}
	if e == nil {
		delete(c.selected, r.name)
	} else {
		c.selected[r.name] = e
	}
	c.autoNavMode = autoNav
	if e != nil {
		e.Events.Selected.Fire(e)
	}
	c.SelectedElementChanged.Fire(e)
}

// pressElement fires an element's primary or secondary action. Elements
// that cannot be pressed are silently ignored.
func (c *UiControls) pressElement(e *Element, secondary bool) {
	if e == nil || !e.CanBePressed {
		return
	}
	if secondary {
		e.Events.SecondaryPressed.Fire(e)
	} else {
		e.Events.Pressed.Fire(e)
	}
}

// ============================================================================
// Lifecycle cleanup
// ============================================================================

// onRootRemoved clears every reference the controls hold into a root being
// removed from the system.
func (c *UiControls) onRootRemoved(r *RootElement) {
	delete(c.selected, r.name)
	if c.mousedElement != nil && c.mousedElement.root == r {
		c.setMousedElement(nil)
	}
	if c.touchedElement != nil && c.touchedElement.root == r {
		c.setTouchedElement(nil, 0)
	}
}

// onElementsDetached clears references pointing into a detached subtree.
func (c *UiControls) onElementsDetached(subtree *Element) {
	for name, sel := range c.selected {
		if sel.isInSubtree(subtree) {
			delete(c.selected, name)
		}
	}
	if c.mousedElement != nil && c.mousedElement.isInSubtree(subtree) {
		c.setMousedElement(nil)
	}
	if c.touchedElement != nil && c.touchedElement.isInSubtree(subtree) {
		c.setTouchedElement(nil, 0)
	}
}
