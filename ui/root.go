package ui

import (
	"github.com/Monniasza/mlem"
	"github.com/Monniasza/mlem/backend"
)

// RootElement wraps one top-level element subtree with a name, a priority
// and a screen transform. Roots are created by UiSystem.Add and own their
// subtree's selection (held in the system's controls, keyed by root name).
type RootElement struct {
	name     string
	priority int

	transform mlem.Transform
	element   *Element
	system    *UiSystem

	// CanSelectContent gates whether this root's content may currently be
	// interacted with. A modal root with high priority and this flag set
	// shuts lower-priority roots out of input while they stay visible.
	CanSelectContent bool

	// DrawAlpha multiplies the alpha of everything this root draws.
	DrawAlpha float32
}

func newRootElement(name string, element *Element, priority int, system *UiSystem) *RootElement {
	r := &RootElement{
		name:             name,
		priority:         priority,
		transform:        mlem.IdentityTransform(),
		element:          element,
		system:           system,
		CanSelectContent: true,
		DrawAlpha:        1,
	}
	element.setRoot(r)
	element.markDirtyDown()
	return r
}

// Name returns the root's unique key within its system.
func (r *RootElement) Name() string { return r.name }

// Priority returns the root's activity/hit-testing precedence. Higher wins.
func (r *RootElement) Priority() int { return r.priority }

// SetPriority changes the root's precedence. Storage order is unaffected;
// only activity ordering changes.
func (r *RootElement) SetPriority(p int) {
	r.priority = p
}

// Element returns the wrapped top-level element.
func (r *RootElement) Element() *Element { return r.element }

// System returns the owning system, or nil after removal.
func (r *RootElement) System() *UiSystem { return r.system }

// Transform returns the root's local-to-screen mapping.
func (r *RootElement) Transform() mlem.Transform { return r.transform }

// SetTransform changes the local-to-screen mapping. The local viewport
// changes with it, so the layout is invalidated.
func (r *RootElement) SetTransform(t mlem.Transform) {
	r.transform = t
	r.element.MarkDirty()
}

// SetScale is a convenience for a pure scale transform (zoom/DPI).
func (r *RootElement) SetScale(scale float32) {
	t := r.transform
	t.Scale = scale
	r.SetTransform(t)
}

// SelectedElement returns this root's current selection, or nil.
func (r *RootElement) SelectedElement() *Element {
	if r.system == nil {
		return nil
	}
	return r.system.controls.SelectedElement(r)
}

// SelectElement changes this root's selection. Elements that cannot be
// selected are silently ignored; nil deselects.
func (r *RootElement) SelectElement(e *Element, autoNav bool) {
	if r.system == nil {
		return
	}
	r.system.controls.selectElement(r, e, autoNav)
}

// localViewport returns the system viewport mapped into this root's local
// space; it is the parent rectangle the root element resolves against.
func (r *RootElement) localViewport() mlem.Rectangle {
	if r.system == nil {
		return mlem.Rectangle{}
	}
	v := r.system.Viewport()
	tl := r.transform.Invert(v.Pos())
	br := r.transform.Invert(mlem.Pt(v.Right(), v.Bottom()))
	return mlem.Rect(tl.X, tl.Y, br.X-tl.X, br.Y-tl.Y)
}

// ResolveLayout recomputes the subtree's display areas if anything in it is
// dirty. It returns ErrCyclicAutoSize (wrapped) on an unresolvable sizing
// configuration; the stale areas of the failed subtree are kept rather than
// replaced with garbage.
func (r *RootElement) ResolveLayout() error {
	if !r.element.dirty && r.element.resolved {
		return nil
	}
	_, err := r.element.ResolveArea(r.localViewport())
	return err
}

// GetElementUnderPos hit-tests this root's tree at a screen position, using
// the inverse transform to reach local space.
func (r *RootElement) GetElementUnderPos(screen mlem.Point) *Element {
	return r.element.GetElementUnderPos(r.transform.Invert(screen))
}

// Draw renders the root's visible subtree at the given base depth and
// returns the next free depth.
func (r *RootElement) Draw(renderer backend.Renderer, baseDepth float32) float32 {
	ctx := &DrawContext{
		Renderer:  renderer,
		Transform: r.transform,
		Alpha:     r.DrawAlpha,
		Depth:     baseDepth,
	}
	r.element.draw(ctx)
	return ctx.Depth + 1
}
