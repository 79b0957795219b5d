// Package ui implements a retained-mode UI tree for frame-driven
// applications: elements with declarative anchor/size rules, a lazy layout
// resolver with dirty invalidation, and per-frame arbitration of mouse,
// touch, keyboard and gamepad input into selection and press events.
//
// A UiSystem owns named, prioritized root elements and is updated and drawn
// exactly once per frame by the host loop. All state is confined to that
// loop's goroutine; nothing here locks.
package ui

import (
	"fmt"
	"image/color"

	"github.com/Monniasza/mlem"
	"github.com/Monniasza/mlem/backend"
)

// Anchor describes where within the parent's content area an element's box
// is placed. The nine fixed anchors pin the box to a corner, edge midpoint
// or the center. The auto anchors ignore the parent edges and instead stack
// the element after its previous sibling in flow order.
type Anchor int

const (
	TopLeft Anchor = iota
	TopCenter
	TopRight
	CenterLeft
	Center
	CenterRight
	BottomLeft
	BottomCenter
	BottomRight

	// AutoLeft, AutoCenter and AutoRight start a new flow row and align the
	// element within it.
	AutoLeft
	AutoCenter
	AutoRight
	// AutoInline continues the current flow row, wrapping to a new row when
	// the parent's horizontal space is exhausted.
	AutoInline
	// AutoInlineIgnoreOverflow continues the current row even past the
	// parent's right edge.
	AutoInlineIgnoreOverflow
)

// IsAuto reports whether the anchor positions in sibling flow order rather
// than against the parent's edges.
func (a Anchor) IsAuto() bool {
	return a >= AutoLeft
}

// IsInline reports whether the anchor continues the current flow row.
func (a Anchor) IsInline() bool {
	return a == AutoInline || a == AutoInlineIgnoreOverflow
}

// SizeMode specifies how one axis of an element's size is calculated.
type SizeMode int

const (
	// SizeAbsolute uses the declared pixel value.
	SizeAbsolute SizeMode = iota

	// SizeFraction multiplies the declared value (0..1) by the parent's
	// content extent on that axis.
	SizeFraction

	// SizeAuto derives the extent from the bounding box of the resolved
	// children; zero when there are none.
	SizeAuto
)

// DrawFunc renders an element. The context carries the renderer, the root's
// screen transform, the effective alpha and the draw depth.
type DrawFunc func(ctx *DrawContext, e *Element)

// StyleFunc applies theme defaults to an element's visuals.
type StyleFunc func(s *UiStyle)

// UpdateFunc runs once per frame for an element.
type UpdateFunc func(e *Element)

// Element is a node of the UI tree. It computes its own display area from
// its anchor and size rules given the parent's resolved content area, caches
// the result, and invalidates the cache through a dirty flag whenever a
// layout-affecting property changes.
//
// Behavioral differences between element kinds are expressed through the
// capability flags and the hook functions, not through subtypes: a button is
// an Element that can be moused, selected and pressed and has a draw hook.
type Element struct {
	anchor       Anchor
	size         mlem.Point
	widthMode    SizeMode
	heightMode   SizeMode
	padding      mlem.Padding
	childPadding mlem.Padding
	scale        float32

	parent   *Element
	children []*Element
	root     *RootElement

	dirty      bool
	resolved   bool
	area       mlem.Rectangle // root-local space
	lastParent mlem.Rectangle // parent content the cached area was resolved against

	hidden       bool
	autoNavGroup string

	// Capability flags. They do not affect layout, so they are plain
	// mutable fields.
	CanBeSelected bool
	CanBeMoused   bool
	CanBePressed  bool

	// Events holds this element's observer lists.
	Events Events

	// Hooks. OnDraw renders the element, OnStyle receives theme defaults,
	// OnUpdate runs every frame while the element is attached and visible.
	OnDraw   DrawFunc
	OnStyle  StyleFunc
	OnUpdate UpdateFunc
}

// NewElement creates an element with the given anchor and absolute pixel
// size. All capability flags start enabled; callers opt out per element.
func NewElement(anchor Anchor, width, height float32) *Element {
	return &Element{
		anchor:        anchor,
		size:          mlem.Pt(width, height),
		scale:         1,
		dirty:         true,
		CanBeSelected: true,
		CanBeMoused:   true,
		CanBePressed:  true,
	}
}

func (e *Element) String() string {
	return fmt.Sprintf("Element(anchor=%d area=%v children=%d)", e.anchor, e.area, len(e.children))
}

// ============================================================================
// Layout-affecting properties
// ============================================================================

// Anchor returns the element's placement rule.
func (e *Element) Anchor() Anchor { return e.anchor }

// SetAnchor changes the placement rule.
func (e *Element) SetAnchor(a Anchor) *Element {
	if e.anchor != a {
		e.anchor = a
		e.MarkDirty()
	}
	return e
}

// Size returns the declared size values. Their meaning depends on the size
// mode of each axis.
func (e *Element) Size() mlem.Point { return e.size }

// SetSize declares an absolute pixel size on both axes.
func (e *Element) SetSize(width, height float32) *Element {
	e.size = mlem.Pt(width, height)
	e.widthMode = SizeAbsolute
	e.heightMode = SizeAbsolute
	e.MarkDirty()
	return e
}

// SetWidth declares an absolute pixel width.
func (e *Element) SetWidth(w float32) *Element {
	e.size.X = w
	e.widthMode = SizeAbsolute
	e.MarkDirty()
	return e
}

// SetHeight declares an absolute pixel height.
func (e *Element) SetHeight(h float32) *Element {
	e.size.Y = h
	e.heightMode = SizeAbsolute
	e.MarkDirty()
	return e
}

// SetFractionWidth sizes the width as a fraction (0..1) of the parent's
// content width.
func (e *Element) SetFractionWidth(f float32) *Element {
	e.size.X = f
	e.widthMode = SizeFraction
	e.MarkDirty()
	return e
}

// SetFractionHeight sizes the height as a fraction (0..1) of the parent's
// content height.
func (e *Element) SetFractionHeight(f float32) *Element {
	e.size.Y = f
	e.heightMode = SizeFraction
	e.MarkDirty()
	return e
}

// SetAutoWidth derives the width from the children's bounding box.
func (e *Element) SetAutoWidth() *Element {
	e.widthMode = SizeAuto
	e.MarkDirty()
	return e
}

// SetAutoHeight derives the height from the children's bounding box.
func (e *Element) SetAutoHeight() *Element {
	e.heightMode = SizeAuto
	e.MarkDirty()
	return e
}

// SetAutoSize derives both axes from the children's bounding box.
func (e *Element) SetAutoSize() *Element {
	e.widthMode = SizeAuto
	e.heightMode = SizeAuto
	e.MarkDirty()
	return e
}

// WidthMode returns the sizing mode of the horizontal axis.
func (e *Element) WidthMode() SizeMode { return e.widthMode }

// HeightMode returns the sizing mode of the vertical axis.
func (e *Element) HeightMode() SizeMode { return e.heightMode }

// Padding returns the inset between the parent's content area and the space
// this element is placed in.
func (e *Element) Padding() mlem.Padding { return e.padding }

// SetPadding changes the element's placement inset.
func (e *Element) SetPadding(p mlem.Padding) *Element {
	e.padding = p
	e.MarkDirty()
	return e
}

// ChildPadding returns the inset between this element's area and its
// children's available space.
func (e *Element) ChildPadding() mlem.Padding { return e.childPadding }

// SetChildPadding changes the inset applied to children.
func (e *Element) SetChildPadding(p mlem.Padding) *Element {
	e.childPadding = p
	e.MarkDirty()
	return e
}

// Scale returns the multiplier applied to the declared size.
func (e *Element) Scale() float32 { return e.scale }

// SetScale changes the size multiplier. Auto-sized axes are unaffected;
// their extent comes from the already-scaled children.
func (e *Element) SetScale(s float32) *Element {
	if e.scale != s {
		e.scale = s
		e.MarkDirty()
	}
	return e
}

// IsHidden reports whether the element (with its subtree) is excluded from
// layout flow, drawing, hit testing and navigation.
func (e *Element) IsHidden() bool { return e.hidden }

// SetHidden shows or hides the element. Hiding affects sibling flow and
// auto-sized ancestors, so it dirties the layout.
func (e *Element) SetHidden(hidden bool) *Element {
	if e.hidden != hidden {
		e.hidden = hidden
		e.MarkDirty()
	}
	return e
}

// AutoNavGroup returns the element's navigation group key.
func (e *Element) AutoNavGroup() string { return e.autoNavGroup }

// SetAutoNavGroup restricts tab and directional navigation involving this
// element to elements sharing the same group key.
func (e *Element) SetAutoNavGroup(group string) *Element {
	e.autoNavGroup = group
	return e
}

// ============================================================================
// Tree structure
// ============================================================================

// Parent returns the owning parent, or nil for a detached or root element.
// The pointer is for navigation only; ownership runs parent to child.
func (e *Element) Parent() *Element { return e.parent }

// Root returns the root this element is attached to, or nil.
func (e *Element) Root() *RootElement { return e.root }

// Children returns the ordered child list. The slice is the element's own;
// callers must not mutate it.
func (e *Element) Children() []*Element { return e.children }

// AddChild appends a child and returns it. Children order matters: auto
// anchors stack in order and tab order follows it.
func (e *Element) AddChild(c *Element) *Element {
	return e.InsertChild(len(e.children), c)
}

// InsertChild inserts a child at the given index (clamped) and returns it.
// A child already owned by another parent is detached from it first.
func (e *Element) InsertChild(index int, c *Element) *Element {
	if c.parent != nil {
		c.parent.RemoveChild(c)
	}
	if index < 0 {
		index = 0
	}
	if index > len(e.children) {
		index = len(e.children)
	}
	e.children = append(e.children, nil)
	copy(e.children[index+1:], e.children[index:])
	e.children[index] = c
	c.parent = e
	c.setRoot(e.root)
	c.markDirtyDown()
	e.MarkDirty()
	return c
}

// RemoveChild detaches a child and its subtree. Any selection, moused or
// touched reference into the subtree is cleared.
func (e *Element) RemoveChild(c *Element) {
	for i, child := range e.children {
		if child == c {
			e.children = append(e.children[:i], e.children[i+1:]...)
			c.parent = nil
			if e.root != nil && e.root.system != nil {
				e.root.system.onElementsDetached(c)
			}
			c.setRoot(nil)
			e.MarkDirty()
			return
		}
	}
}

// RemoveAllChildren detaches every child.
func (e *Element) RemoveAllChildren() {
	for len(e.children) > 0 {
		e.RemoveChild(e.children[len(e.children)-1])
	}
}

// SetChildIndex moves an existing child to a new position in the order.
func (e *Element) SetChildIndex(c *Element, index int) {
	for i, child := range e.children {
		if child == c {
			e.children = append(e.children[:i], e.children[i+1:]...)
			if index < 0 {
				index = 0
			}
			if index > len(e.children) {
				index = len(e.children)
			}
			e.children = append(e.children, nil)
			copy(e.children[index+1:], e.children[index:])
			e.children[index] = c
			e.MarkDirty()
			return
		}
	}
}

func (e *Element) setRoot(r *RootElement) {
	e.root = r
	for _, c := range e.children {
		c.setRoot(r)
	}
}

// isAttachedVisible reports whether the element and all its ancestors are
// unhidden.
func (e *Element) isAttachedVisible() bool {
	for cur := e; cur != nil; cur = cur.parent {
		if cur.hidden {
			return false
		}
	}
	return true
}

// isInSubtree reports whether e is target or one of its descendants.
func (e *Element) isInSubtree(target *Element) bool {
	for cur := e; cur != nil; cur = cur.parent {
		if cur == target {
			return true
		}
	}
	return false
}

// ============================================================================
// Dirty tracking and area access
// ============================================================================

// IsDirty reports whether the cached display area is stale.
func (e *Element) IsDirty() bool { return e.dirty }

// MarkDirty flags this element's cached area as stale and propagates the
// flag to every ancestor: an ancestor's auto size may depend on this subtree
// and sibling flow positions may shift.
func (e *Element) MarkDirty() {
	for cur := e; cur != nil; cur = cur.parent {
		if cur.dirty {
			// Ancestors of a dirty element are already dirty.
			return
		}
		cur.dirty = true
	}
}

// markDirtyDown dirties this element and its whole subtree, then propagates
// upward. Used when an element is (re)attached and every cached area below
// it belongs to a stale coordinate frame.
func (e *Element) markDirtyDown() {
	e.dirty = true
	for _, c := range e.children {
		c.markDirtyDown()
	}
	e.MarkDirty()
}

// Area returns the display area resolved by the last layout pass, in the
// owning root's local space. It is a derived value; callers never set it.
// The zero rectangle is returned before the first resolution.
func (e *Element) Area() mlem.Rectangle { return e.area }

// ScreenArea returns the display area mapped through the owning root's
// transform, or the local area for a detached element.
func (e *Element) ScreenArea() mlem.Rectangle {
	if e.root == nil {
		return e.area
	}
	return e.root.Transform().ApplyRect(e.area)
}

// ContentArea returns the resolved area shrunk by the child padding; this is
// the parent rectangle the children were laid out against.
func (e *Element) ContentArea() mlem.Rectangle {
	return e.area.Shrink(e.childPadding)
}

// ============================================================================
// Hit testing
// ============================================================================

// GetElementUnderPos returns the topmost mousable element of this subtree at
// the given root-local position, or nil. Later siblings draw on top, so they
// are tested first. Hidden subtrees are skipped.
func (e *Element) GetElementUnderPos(pos mlem.Point) *Element {
	if e.hidden {
		return nil
	}
	for i := len(e.children) - 1; i >= 0; i-- {
		if hit := e.children[i].GetElementUnderPos(pos); hit != nil {
			return hit
		}
	}
	if e.CanBeMoused && e.resolved && e.area.Contains(pos) {
		return e
	}
	return nil
}

// update runs the per-frame hooks for the visible subtree.
func (e *Element) update() {
	if e.hidden {
		return
	}
	if e.OnUpdate != nil {
		e.OnUpdate(e)
	}
	// Snapshot: an OnUpdate hook may mutate the child list.
	children := acquireElementSlice(len(e.children))
	copy(children, e.children)
	for _, c := range children {
		c.update()
	}
	releaseElementSlice(children)
}

// applyStyle pushes theme defaults into the subtree's style hooks.
func (e *Element) applyStyle(s *UiStyle) {
	if e.OnStyle != nil {
		e.OnStyle(s)
	}
	for _, c := range e.children {
		c.applyStyle(s)
	}
}

// DrawContext carries per-frame drawing state: the renderer, the owning
// root's screen transform and the effective alpha. Depth increases along the
// draw order so later elements cover earlier ones.
type DrawContext struct {
	Renderer  backend.Renderer
	Transform mlem.Transform
	Alpha     float32
	Depth     float32
}

// FillRect draws a rectangle given in root-local space.
func (c *DrawContext) FillRect(local mlem.Rectangle, fill backend.Fill) {
	fill.Color.A = uint8(float32(fill.Color.A) * c.Alpha)
	c.Renderer.DrawRectangle(c.Transform.ApplyRect(local), fill, c.Depth)
}

// Text draws a string at a root-local position.
func (c *DrawContext) Text(local mlem.Point, text string, scale float32, col color.RGBA) {
	col.A = uint8(float32(col.A) * c.Alpha)
	s := c.Transform.Scale
	if s == 0 {
		s = 1
	}
	c.Renderer.DrawText(c.Transform.Apply(local), text, scale*s, col, c.Depth)
}

// draw renders the visible subtree in depth-first order.
func (e *Element) draw(ctx *DrawContext) {
	if e.hidden {
		return
	}
	if e.OnDraw != nil {
		e.OnDraw(ctx, e)
	}
	for _, c := range e.children {
		ctx.Depth++
		c.draw(ctx)
	}
}
