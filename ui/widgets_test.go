package ui

import (
	"image/color"
	"testing"

	"github.com/Monniasza/mlem"
)

// countingMeasurer sizes text at 7x13 per character line and counts calls.
type countingMeasurer struct {
	calls int
}

func (m *countingMeasurer) MeasureText(text string, scale float32) mlem.Point {
	m.calls++
	return mlem.Pt(float32(len(text))*7*scale, 13*scale)
}

func TestPanelThemeDefaultsAndOverrides(t *testing.T) {
	style := Untextured()

	themed := NewPanel(TopLeft, 100, 100)
	explicit := NewPanel(TopLeft, 100, 100)
	explicitColor := color.RGBA{1, 2, 3, 4}
	explicit.SetColor(explicitColor)
	explicit.SetChildPadding(mlem.UniformPadding(20))

	sys := NewUiSystem(mlem.Rect(0, 0, 200, 200), nil)
	sys.Add("a", themed.Element, 0)
	sys.Add("b", explicit.Element, 1)
	sys.SetStyle(style)

	if themed.color.Value() != style.PanelColor {
		t.Errorf("themed panel color = %v, want theme default", themed.color.Value())
	}
	if themed.ChildPadding() != style.PanelChildPadding {
		t.Errorf("themed panel child padding = %v, want theme default", themed.ChildPadding())
	}

	if explicit.color.Value() != explicitColor {
		t.Errorf("explicit panel color overridden by theme: %v", explicit.color.Value())
	}
	if explicit.ChildPadding() != mlem.UniformPadding(20) {
		t.Errorf("explicit child padding overridden by theme: %v", explicit.ChildPadding())
	}
}

func TestButtonHoverStateFollowsEvents(t *testing.T) {
	b := NewButton(TopLeft, 60, 20, "ok")

	if b.hovered {
		t.Fatal("new button starts hovered")
	}
	b.Events.MouseEnter.Fire(b.Element)
	if !b.hovered {
		t.Error("mouse enter did not set hover")
	}
	b.Events.MouseExit.Fire(b.Element)
	if b.hovered {
		t.Error("mouse exit did not clear hover")
	}
}

func TestButtonCapabilities(t *testing.T) {
	b := NewButton(TopLeft, 60, 20, "ok")
	if !b.CanBeSelected || !b.CanBeMoused || !b.CanBePressed {
		t.Error("buttons must be selectable, mousable and pressable")
	}

	g := NewGroup(TopLeft, 10, 10)
	if g.CanBeSelected || g.CanBeMoused || g.CanBePressed {
		t.Error("groups must be transparent to interaction")
	}
}

func TestParagraphSizesFromMeasurement(t *testing.T) {
	m := &countingMeasurer{}
	p := NewParagraph(TopLeft, "hello", m)

	if got := p.Size(); !got.Equals(mlem.Pt(35, 13)) {
		t.Errorf("size = %v, want measured 35x13", got)
	}

	p.SetText("hi")
	if got := p.Size(); !got.Equals(mlem.Pt(14, 13)) {
		t.Errorf("size = %v after SetText, want 14x13", got)
	}

	p.SetTextScale(2)
	if got := p.Size(); !got.Equals(mlem.Pt(28, 26)) {
		t.Errorf("size = %v after SetTextScale(2), want 28x26", got)
	}
}

func TestParagraphResizeDirtiesLayout(t *testing.T) {
	m := &countingMeasurer{}
	parent := NewElement(TopLeft, 0, 0)
	parent.SetAutoSize()
	p := NewParagraph(AutoLeft, "hello", m)
	parent.AddChild(p.Element)

	area, err := parent.ResolveArea(mlem.Rect(0, 0, 100, 100))
	if err != nil {
		t.Fatalf("ResolveArea: %v", err)
	}
	if area.Width != 35 {
		t.Fatalf("initial width = %v, want 35", area.Width)
	}

	p.SetText("longer text")
	area, err = parent.ResolveArea(mlem.Rect(0, 0, 100, 100))
	if err != nil {
		t.Fatalf("ResolveArea: %v", err)
	}
	if area.Width != 77 {
		t.Errorf("width = %v after text change, want 77", area.Width)
	}
}

func TestTextMeasureCacheMemoizes(t *testing.T) {
	m := &countingMeasurer{}
	c := NewTextMeasureCache(m)

	first := c.MeasureText("abc", 1)
	second := c.MeasureText("abc", 1)
	if m.calls != 1 {
		t.Errorf("inner measurer called %d times, want 1", m.calls)
	}
	if !first.Equals(second) {
		t.Errorf("cached measurement differs: %v vs %v", first, second)
	}

	c.MeasureText("abc", 2)
	if m.calls != 2 {
		t.Errorf("different scale should re-measure, calls = %d", m.calls)
	}

	c.Reset()
	c.MeasureText("abc", 1)
	if m.calls != 3 {
		t.Errorf("Reset should drop cached entries, calls = %d", m.calls)
	}
}
