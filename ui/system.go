package ui

import (
	"iter"
	"sort"

	"github.com/Monniasza/mlem"
	"github.com/Monniasza/mlem/backend"
	"github.com/Monniasza/mlem/input"
)

// UiSystem owns the ordered set of root elements and drives them: one
// Update per frame resolves dirty layouts and runs input arbitration, one
// Draw renders every root. Roots are stored in insertion order (which is
// also display/update order); Priority reorders activity and hit testing,
// not storage.
//
// A UiSystem and everything it owns belong to the single goroutine running
// the host frame loop. Independent systems do not share any state.
type UiSystem struct {
	viewport mlem.Rectangle

	roots  []*RootElement
	byName map[string]*RootElement

	controls *UiControls
	style    *UiStyle
}

// NewUiSystem creates a system covering the given viewport, polling input
// through the given device. A nil device disables the input channels but
// layout and drawing still work (useful in tests and headless tools).
func NewUiSystem(viewport mlem.Rectangle, dev input.Device) *UiSystem {
	s := &UiSystem{
		viewport: viewport,
		byName:   make(map[string]*RootElement),
	}
	s.controls = newUiControls(s, dev)
	return s
}

// Viewport returns the screen rectangle the system lays out against.
func (s *UiSystem) Viewport() mlem.Rectangle { return s.viewport }

// SetViewport resizes the system, invalidating every root's layout.
func (s *UiSystem) SetViewport(v mlem.Rectangle) {
	if s.viewport == v {
		return
	}
	s.viewport = v
	for _, r := range s.roots {
		r.element.markDirtyDown()
	}
}

// Controls returns the input arbitration state machine.
func (s *UiSystem) Controls() *UiControls { return s.controls }

// Style returns the active theme, or nil when none has been applied.
func (s *UiSystem) Style() *UiStyle { return s.style }

// SetStyle applies a theme to every root. Style-supplied values never
// override explicitly set ones. Roots added later receive the style on Add.
func (s *UiSystem) SetStyle(style *UiStyle) {
	s.style = style
	if style == nil {
		return
	}
	for _, r := range s.roots {
		r.element.applyStyle(style)
	}
}

// ============================================================================
// Root management
// ============================================================================

// Add wraps the element as a new named root and returns it. When the name
// is already registered the call is a no-op returning nil; the caller picks
// another name or removes the old root first.
func (s *UiSystem) Add(name string, element *Element, priority int) *RootElement {
	if _, exists := s.byName[name]; exists {
		return nil
	}
	r := newRootElement(name, element, priority, s)
	s.roots = append(s.roots, r)
	s.byName[name] = r
	if s.style != nil {
		element.applyStyle(s.style)
	}
	return r
}

// Remove detaches the named root, clearing its selection entry and any
// moused/touched reference into its tree. Unknown names are ignored.
func (s *UiSystem) Remove(name string) {
	r, ok := s.byName[name]
	if !ok {
		return
	}
	delete(s.byName, name)
	for i, cur := range s.roots {
		if cur == r {
			s.roots = append(s.roots[:i], s.roots[i+1:]...)
			break
		}
	}
	s.controls.onRootRemoved(r)
	r.element.setRoot(nil)
	r.system = nil
}

// Get returns the root registered under name, or nil.
func (s *UiSystem) Get(name string) *RootElement {
	return s.byName[name]
}

// RootCount returns the number of registered roots.
func (s *UiSystem) RootCount() int { return len(s.roots) }

// Roots yields the roots ordered by priority descending, ties broken by
// insertion order. The sequence is computed lazily per iteration.
func (s *UiSystem) Roots() iter.Seq[*RootElement] {
	return func(yield func(*RootElement) bool) {
		ordered := make([]*RootElement, len(s.roots))
		copy(ordered, s.roots)
		sort.SliceStable(ordered, func(i, j int) bool {
			return ordered[i].priority > ordered[j].priority
		})
		for _, r := range ordered {
			if !yield(r) {
				return
			}
		}
	}
}

// ActiveRoot returns the highest-priority root whose content is currently
// eligible for interaction, or nil.
func (s *UiSystem) ActiveRoot() *RootElement {
	for r := range s.Roots() {
		if r.CanSelectContent {
			return r
		}
	}
	return nil
}

// GetElementUnderPos hit-tests every eligible root in priority order and
// returns the topmost element at the screen position, or nil.
func (s *UiSystem) GetElementUnderPos(screen mlem.Point) *Element {
	for r := range s.Roots() {
		if !r.CanSelectContent {
			continue
		}
		if hit := r.GetElementUnderPos(screen); hit != nil {
			return hit
		}
	}
	return nil
}

// ============================================================================
// Frame driving
// ============================================================================

// Update runs one frame: resolve dirty layouts, then poll devices and
// arbitrate input against the freshly resolved areas, then run per-element
// update hooks. The first layout error aborts the frame and is returned;
// selection and press state are left untouched in that case.
func (s *UiSystem) Update() error {
	for _, r := range s.roots {
		if err := r.ResolveLayout(); err != nil {
			return err
		}
	}
	s.controls.Update()
	for _, r := range s.roots {
		r.element.update()
	}
	return nil
}

// Draw renders every root in insertion order, then the selection indicator
// when navigation is keyboard/gamepad driven.
func (s *UiSystem) Draw(renderer backend.Renderer) {
	depth := float32(0)
	for _, r := range s.roots {
		depth = r.Draw(renderer, depth)
	}
	s.drawSelectionIndicator(renderer, depth)
}

// drawSelectionIndicator outlines the active root's selected element while
// in auto-nav mode, so keyboard/gamepad users can see where they are.
func (s *UiSystem) drawSelectionIndicator(renderer backend.Renderer, depth float32) {
	if s.style == nil || !s.controls.IsAutoNavMode() {
		return
	}
	active := s.ActiveRoot()
	if active == nil {
		return
	}
	sel := active.SelectedElement()
	if sel == nil || !sel.isAttachedVisible() {
		return
	}

	area := sel.ScreenArea()
	t := s.style.SelectionThickness
	if t <= 0 {
		t = 1
	}
	fill := backend.ColorFill(s.style.SelectionColor)
	renderer.DrawRectangle(mlem.Rect(area.X, area.Y, area.Width, t), fill, depth)
	renderer.DrawRectangle(mlem.Rect(area.X, area.Bottom()-t, area.Width, t), fill, depth)
	renderer.DrawRectangle(mlem.Rect(area.X, area.Y, t, area.Height), fill, depth)
	renderer.DrawRectangle(mlem.Rect(area.Right()-t, area.Y, t, area.Height), fill, depth)
}

// onElementsDetached clears any controls reference pointing into a subtree
// that was just removed from its parent.
func (s *UiSystem) onElementsDetached(subtree *Element) {
	s.controls.onElementsDetached(subtree)
}
