package ui

import (
	"image/color"

	"github.com/Monniasza/mlem"
	"github.com/Monniasza/mlem/backend"
)

// Panel is a plain rectangular container with a themed background. Panels
// are moused (so they block clicks from falling through to elements behind
// them) but not selectable or pressable.
type Panel struct {
	*Element

	texture    mlem.StyleProp[backend.Texture]
	color      mlem.StyleProp[color.RGBA]
	paddingSet bool
}

// NewPanel creates a panel at the given anchor and size.
func NewPanel(anchor Anchor, width, height float32) *Panel {
	p := &Panel{Element: NewElement(anchor, width, height)}
	p.CanBeSelected = false
	p.CanBePressed = false
	p.OnStyle = p.applyTheme
	p.OnDraw = p.drawPanel
	return p
}

// SetTexture explicitly sets the background texture, overriding the theme.
func (p *Panel) SetTexture(t backend.Texture) *Panel {
	p.texture.Set(t)
	return p
}

// SetColor explicitly sets the background tint, overriding the theme.
func (p *Panel) SetColor(c color.RGBA) *Panel {
	p.color.Set(c)
	return p
}

// SetChildPadding changes the inset applied to children and stops the theme
// from supplying one.
func (p *Panel) SetChildPadding(pad mlem.Padding) *Panel {
	p.paddingSet = true
	p.Element.SetChildPadding(pad)
	return p
}

func (p *Panel) applyTheme(s *UiStyle) {
	p.texture.SetFromStyle(s.PanelTexture)
	p.color.SetFromStyle(s.PanelColor)
	if !p.paddingSet {
		p.Element.SetChildPadding(s.PanelChildPadding)
	}
}

func (p *Panel) drawPanel(ctx *DrawContext, e *Element) {
	if !p.color.HasValue() && !p.texture.HasValue() {
		return
	}
	ctx.FillRect(e.Area(), backend.Fill{
		Texture: p.texture.Value(),
		Color:   p.color.OrElse(color.RGBA{255, 255, 255, 255}),
	})
}

// Button is a pressable, selectable element with a text label. Visual
// hovering state follows the mouse and touch enter/exit events.
type Button struct {
	*Element

	text string

	texture    mlem.StyleProp[backend.Texture]
	color      mlem.StyleProp[color.RGBA]
	hoverColor mlem.StyleProp[color.RGBA]
	textColor  mlem.StyleProp[color.RGBA]
	textScale  mlem.StyleProp[float32]

	hovered bool
}

// NewButton creates a button with a label.
func NewButton(anchor Anchor, width, height float32, text string) *Button {
	b := &Button{Element: NewElement(anchor, width, height), text: text}
	b.OnStyle = b.applyTheme
	b.OnDraw = b.drawButton
	b.Events.MouseEnter.Add(func(*Element) { b.hovered = true })
	b.Events.MouseExit.Add(func(*Element) { b.hovered = false })
	b.Events.TouchEnter.Add(func(*Element) { b.hovered = true })
	b.Events.TouchExit.Add(func(*Element) { b.hovered = false })
	return b
}

// Text returns the current label.
func (b *Button) Text() string { return b.text }

// SetText changes the label. Button size is declared, not derived, so this
// does not dirty the layout.
func (b *Button) SetText(text string) *Button {
	b.text = text
	return b
}

// SetTexture explicitly sets the background texture, overriding the theme.
func (b *Button) SetTexture(t backend.Texture) *Button {
	b.texture.Set(t)
	return b
}

// SetColor explicitly sets the idle tint, overriding the theme.
func (b *Button) SetColor(c color.RGBA) *Button {
	b.color.Set(c)
	return b
}

// SetHoveredColor explicitly sets the hovered tint, overriding the theme.
func (b *Button) SetHoveredColor(c color.RGBA) *Button {
	b.hoverColor.Set(c)
	return b
}

// SetTextColor explicitly sets the label color, overriding the theme.
func (b *Button) SetTextColor(c color.RGBA) *Button {
	b.textColor.Set(c)
	return b
}

// OnPressed registers a press observer and returns the button.
func (b *Button) OnPressed(fn Callback) *Button {
	b.Events.Pressed.Add(fn)
	return b
}

func (b *Button) applyTheme(s *UiStyle) {
	b.texture.SetFromStyle(s.ButtonTexture)
	b.color.SetFromStyle(s.ButtonColor)
	b.hoverColor.SetFromStyle(s.ButtonHoveredColor)
	b.textColor.SetFromStyle(s.ButtonTextColor)
	b.textScale.SetFromStyle(s.TextScale)
}

func (b *Button) drawButton(ctx *DrawContext, e *Element) {
	area := e.Area()
	tint := b.color.OrElse(color.RGBA{255, 255, 255, 255})
	if b.hovered && b.hoverColor.HasValue() {
		tint = b.hoverColor.Value()
	}
	ctx.FillRect(area, backend.Fill{Texture: b.texture.Value(), Color: tint})
	if b.text == "" {
		return
	}
	scale := b.textScale.OrElse(1)
	pos := area.Center()
	if m, ok := ctx.Renderer.(backend.TextMeasurer); ok {
		sz := m.MeasureText(b.text, scale)
		pos = mlem.Pt(pos.X-sz.X/2, pos.Y-sz.Y/2)
	}
	ctx.Text(pos, b.text, scale, b.textColor.OrElse(color.RGBA{255, 255, 255, 255}))
}

// Paragraph is a block of text whose size is derived from measurement; it
// participates in layout with the measured extent. Paragraphs are not
// interactive by default.
type Paragraph struct {
	*Element

	text     string
	measurer backend.TextMeasurer

	textColor mlem.StyleProp[color.RGBA]
	textScale mlem.StyleProp[float32]
}

// NewParagraph creates a text block. The measurer sizes the element; pass a
// TextMeasureCache wrapping the renderer's measurer to avoid re-measuring
// unchanged text every resolution.
func NewParagraph(anchor Anchor, text string, measurer backend.TextMeasurer) *Paragraph {
	p := &Paragraph{
		Element:  NewElement(anchor, 0, 0),
		measurer: measurer,
	}
	p.CanBeSelected = false
	p.CanBeMoused = false
	p.CanBePressed = false
	p.OnStyle = p.applyTheme
	p.OnDraw = p.drawParagraph
	p.SetText(text)
	return p
}

// Text returns the current text.
func (p *Paragraph) Text() string { return p.text }

// SetText changes the text and re-derives the element size from measurement.
func (p *Paragraph) SetText(text string) *Paragraph {
	p.text = text
	p.refreshSize()
	return p
}

// SetTextColor explicitly sets the text color, overriding the theme.
func (p *Paragraph) SetTextColor(c color.RGBA) *Paragraph {
	p.textColor.Set(c)
	return p
}

// SetTextScale explicitly sets the text scale, overriding the theme, and
// re-measures.
func (p *Paragraph) SetTextScale(scale float32) *Paragraph {
	p.textScale.Set(scale)
	p.refreshSize()
	return p
}

func (p *Paragraph) refreshSize() {
	if p.measurer == nil || p.text == "" {
		p.Element.SetSize(0, 0)
		return
	}
	sz := p.measurer.MeasureText(p.text, p.textScale.OrElse(1))
	p.Element.SetSize(sz.X, sz.Y)
}

func (p *Paragraph) applyTheme(s *UiStyle) {
	p.textColor.SetFromStyle(s.TextColor)
	hadScale := p.textScale.HasValue()
	p.textScale.SetFromStyle(s.TextScale)
	if !hadScale && p.textScale.HasValue() {
		p.refreshSize()
	}
}

func (p *Paragraph) drawParagraph(ctx *DrawContext, e *Element) {
	if p.text == "" {
		return
	}
	ctx.Text(e.Area().Pos(), p.text, p.textScale.OrElse(1), p.textColor.OrElse(color.RGBA{255, 255, 255, 255}))
}

// NewGroup creates an invisible container that exists only for layout
// grouping. Groups are transparent to hit testing, selection and pressing.
func NewGroup(anchor Anchor, width, height float32) *Element {
	g := NewElement(anchor, width, height)
	g.CanBeSelected = false
	g.CanBeMoused = false
	g.CanBePressed = false
	return g
}
