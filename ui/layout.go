package ui

import (
	"errors"
	"fmt"

	"github.com/Monniasza/mlem"
)

var layoutDebug = false // Set to true for layout trace logging.

func debugLog(format string, args ...any) {
	if layoutDebug {
		fmt.Printf(format+"\n", args...)
	}
}

// ErrCyclicAutoSize is returned when an element's fractional size depends on
// a parent axis that is itself auto-sized from its children. The denominator
// of the fraction is not known at the point it is needed, so the
// configuration cannot be resolved; it is a structural error the caller must
// fix, never silently turned into NaN or zero.
var ErrCyclicAutoSize = errors.New("ui: fractional size depends on an auto-sized parent axis")

// ResolveArea computes the element's display area against the given parent
// content rectangle. The result is memoized: without an intervening
// mutation, a second call returns the identical rectangle without
// recomputing. Resolution recurses into the subtree; auto-sized axes are
// filled in from the children's bounding box as a second phase.
//
// Detached elements can be resolved directly; attached elements are normally
// resolved through their root's layout pass instead.
func (e *Element) ResolveArea(parentContent mlem.Rectangle) (mlem.Rectangle, error) {
	if !e.dirty && e.resolved && parentContent == e.lastParent {
		return e.area, nil
	}
	flow := newFlowCursor(parentContent)
	if err := e.resolve(parentContent, axisKnown{true, true}, &flow); err != nil {
		return mlem.Rectangle{}, err
	}
	e.lastParent = parentContent
	return e.area, nil
}

// axisKnown tracks whether the parent's content extent is known per axis.
// An axis is unknown while the parent's auto size for it is still pending.
type axisKnown struct {
	width, height bool
}

// flowCursor tracks the stacking position for auto-anchored siblings within
// one container. Inline anchors advance along the current row; the other
// auto anchors start a new row. The cursor resets at each container.
type flowCursor struct {
	content mlem.Rectangle
	x       float32 // next inline position
	rowY    float32 // top of the current row
	rowH    float32 // tallest element in the current row
}

func newFlowCursor(content mlem.Rectangle) flowCursor {
	return flowCursor{content: content, x: content.X, rowY: content.Y}
}

// place returns the position for an auto-anchored element of the given size
// and advances the cursor past it.
func (f *flowCursor) place(a Anchor, w, h float32) mlem.Point {
	if a.IsInline() {
		// Wrap when the element would overflow the row, unless overflow is
		// explicitly allowed. Never wrap the row's first element.
		if a == AutoInline && f.x > f.content.X && f.x+w > f.content.Right() {
			f.rowY += f.rowH
			f.rowH = 0
			f.x = f.content.X
		}
		pos := mlem.Pt(f.x, f.rowY)
		f.x += w
		if h > f.rowH {
			f.rowH = h
		}
		return pos
	}

	// Row-starting anchors: drop below the current row, align horizontally.
	if f.rowH > 0 || f.x > f.content.X {
		f.rowY += f.rowH
		f.rowH = 0
		f.x = f.content.X
	}
	var x float32
	switch a {
	case AutoCenter:
		x = f.content.X + (f.content.Width-w)/2
	case AutoRight:
		x = f.content.Right() - w
	default: // AutoLeft
		x = f.content.X
	}
	pos := mlem.Pt(x, f.rowY)
	f.rowY += h
	return pos
}

// resolve computes this element's area and recursively its children's.
// parentContent is the parent's content rectangle; known says which of its
// axes have final extents. flow is the parent's stacking cursor for auto
// anchors.
//
// The element is first laid out with its top-left at the available area's
// origin; once auto axes are filled in from the children, the final anchored
// position is computed and the whole subtree is shifted by the difference.
func (e *Element) resolve(parentContent mlem.Rectangle, known axisKnown, flow *flowCursor) error {
	avail := parentContent.Shrink(e.padding)
	if avail.Width < 0 {
		avail.Width = 0
	}
	if avail.Height < 0 {
		avail.Height = 0
	}

	w, err := e.resolveAxis(e.widthMode, e.size.X, avail.Width, known.width)
	if err != nil {
		return fmt.Errorf("width of %v: %w", e, err)
	}
	h, err := e.resolveAxis(e.heightMode, e.size.Y, avail.Height, known.height)
	if err != nil {
		return fmt.Errorf("height of %v: %w", e, err)
	}

	debugLog("resolve: anchor=%d avail=%v size=(%.1f,%.1f) modes=(%d,%d)",
		e.anchor, avail, w, h, e.widthMode, e.heightMode)

	// Provisional placement at the available area's origin.
	e.area = mlem.Rect(avail.X, avail.Y, w, h)
	content := e.area.Shrink(e.childPadding)

	childKnown := axisKnown{
		width:  e.widthMode != SizeAuto,
		height: e.heightMode != SizeAuto,
	}
	childFlow := newFlowCursor(content)
	for _, c := range e.children {
		if c.hidden {
			continue
		}
		if err := c.resolve(content, childKnown, &childFlow); err != nil {
			return err
		}
	}

	// Second phase: auto axes take the extent the children's union bounding
	// box needs, plus the trailing child padding.
	if e.widthMode == SizeAuto {
		w = e.requiredChildWidth() + e.childPadding.Right
	}
	if e.heightMode == SizeAuto {
		h = e.requiredChildHeight() + e.childPadding.Bottom
	}

	// Children anchored against an auto axis were placed while its content
	// extent was still zero; re-anchor them against the final extent. Flow
	// stacking positions do not depend on the extent and stay, but centered
	// and right-aligned rows realign within the final width.
	if e.widthMode == SizeAuto || e.heightMode == SizeAuto {
		content = mlem.Rect(avail.X, avail.Y, w, h).Shrink(e.childPadding)
		for _, c := range e.children {
			if c.hidden {
				continue
			}
			var pos mlem.Point
			switch {
			case !c.anchor.IsAuto():
				cAvail := content.Shrink(c.padding)
				if cAvail.Width < 0 {
					cAvail.Width = 0
				}
				if cAvail.Height < 0 {
					cAvail.Height = 0
				}
				pos = anchorPosition(c.anchor, cAvail, c.area.Width, c.area.Height)
			case e.widthMode == SizeAuto && c.anchor == AutoCenter:
				pos = mlem.Pt(content.X+(content.Width-c.area.Width)/2, c.area.Y)
			case e.widthMode == SizeAuto && c.anchor == AutoRight:
				pos = mlem.Pt(content.Right()-c.area.Width, c.area.Y)
			default:
				continue
			}
			if d := pos.Sub(c.area.Pos()); d.X != 0 || d.Y != 0 {
				c.shiftSubtree(d)
			}
		}
	}

	// Final anchored position, now that the size is final.
	var pos mlem.Point
	if e.anchor.IsAuto() {
		pos = flow.place(e.anchor, w, h)
	} else {
		pos = anchorPosition(e.anchor, avail, w, h)
	}

	delta := pos.Sub(e.area.Pos())
	e.area = mlem.Rect(pos.X, pos.Y, w, h)
	if delta.X != 0 || delta.Y != 0 {
		for _, c := range e.children {
			c.shiftSubtree(delta)
		}
	}

	e.dirty = false
	e.resolved = true
	e.Events.AreaUpdated.Fire(e)
	return nil
}

// resolveAxis turns one axis's declared size into pixels. Auto axes return
// zero here and are filled in after the children resolve. A fractional axis
// needs the parent's extent; when that extent is itself pending (the parent
// is auto-sized on the axis), the configuration is circular and fatal.
func (e *Element) resolveAxis(mode SizeMode, declared, avail float32, availKnown bool) (float32, error) {
	switch mode {
	case SizeFraction:
		if !availKnown {
			return 0, ErrCyclicAutoSize
		}
		return declared * avail * e.scale, nil
	case SizeAuto:
		return 0, nil
	default:
		return declared * e.scale, nil
	}
}

// anchorPosition places a box of the given size within the available area
// according to one of the nine fixed anchors.
func anchorPosition(a Anchor, avail mlem.Rectangle, w, h float32) mlem.Point {
	var x, y float32

	switch a {
	case TopLeft, CenterLeft, BottomLeft:
		x = avail.X
	case TopCenter, Center, BottomCenter:
		x = avail.X + (avail.Width-w)/2
	case TopRight, CenterRight, BottomRight:
		x = avail.Right() - w
	}

	switch a {
	case TopLeft, TopCenter, TopRight:
		y = avail.Y
	case CenterLeft, Center, CenterRight:
		y = avail.Y + (avail.Height-h)/2
	case BottomLeft, BottomCenter, BottomRight:
		y = avail.Bottom() - h
	}

	return mlem.Pt(x, y)
}

// requiredChildWidth returns the horizontal extent the visible children
// need, measured from this element's origin. Inline rows contribute their
// accumulated span; row-aligned children contribute the leading child
// padding plus their width, since their alignment is only known once the
// extent is; anchored children additionally need their own padding on both
// sides. Zero with no visible children.
func (e *Element) requiredChildWidth() float32 {
	var extent float32
	for _, c := range e.children {
		if c.hidden {
			continue
		}
		var r float32
		switch {
		case c.anchor.IsInline():
			r = c.area.Right() - e.area.X
		case c.anchor.IsAuto():
			r = e.childPadding.Left + c.area.Width
		default:
			r = e.childPadding.Left + c.padding.Width() + c.area.Width
		}
		if r > extent {
			extent = r
		}
	}
	return extent
}

// requiredChildHeight returns the vertical extent the visible children need.
// Flow rows stack from the top independently of the parent extent, so their
// resolved bottom edges are used directly; anchored children contribute
// their size plus their own padding. Zero with no visible children.
func (e *Element) requiredChildHeight() float32 {
	var extent float32
	for _, c := range e.children {
		if c.hidden {
			continue
		}
		var b float32
		if c.anchor.IsAuto() {
			b = c.area.Bottom() - e.area.Y
		} else {
			b = e.childPadding.Top + c.padding.Height() + c.area.Height
		}
		if b > extent {
			extent = b
		}
	}
	return extent
}

// shiftSubtree translates the resolved areas of this element and all its
// descendants. Called when a parent's anchored position is fixed up after
// auto-sizing.
func (e *Element) shiftSubtree(delta mlem.Point) {
	e.area.X += delta.X
	e.area.Y += delta.Y
	for _, c := range e.children {
		c.shiftSubtree(delta)
	}
}
