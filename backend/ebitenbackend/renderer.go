package ebitenbackend

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"github.com/Monniasza/mlem"
	"github.com/Monniasza/mlem/backend"
)

// Renderer issues UI draw calls onto an Ebitengine image. Draw calls arrive
// pre-sorted by depth, so depth is accepted but not re-ordered here.
//
// Call Begin with the frame's screen before drawing the UI each frame.
type Renderer struct {
	screen *ebiten.Image

	face       text.Face
	lineHeight float64
}

// NewRenderer creates a renderer using the given font face. A nil face falls
// back to the fixed 7x13 bitmap face.
func NewRenderer(face font.Face) *Renderer {
	if face == nil {
		face = basicfont.Face7x13
	}
	m := face.Metrics()
	return &Renderer{
		face:       text.NewGoXFace(face),
		lineHeight: float64(m.Height) / 64,
	}
}

// Begin points the renderer at this frame's target image.
func (r *Renderer) Begin(screen *ebiten.Image) {
	r.screen = screen
}

// DrawRectangle implements backend.Renderer. A fill with an *ebiten.Image
// texture stretches it over the area tinted by the fill color; otherwise the
// area is a solid color quad.
func (r *Renderer) DrawRectangle(area mlem.Rectangle, fill backend.Fill, _ float32) {
	if r.screen == nil || area.IsEmpty() {
		return
	}
	if img, ok := fill.Texture.(*ebiten.Image); ok && img != nil {
		op := &ebiten.DrawImageOptions{}
		w, h := img.Bounds().Dx(), img.Bounds().Dy()
		if w > 0 && h > 0 {
			op.GeoM.Scale(float64(area.Width)/float64(w), float64(area.Height)/float64(h))
		}
		op.GeoM.Translate(float64(area.X), float64(area.Y))
		op.ColorScale.ScaleWithColor(fill.Color)
		r.screen.DrawImage(img, op)
		return
	}
	vector.DrawFilledRect(r.screen, area.X, area.Y, area.Width, area.Height, fill.Color, false)
}

// DrawText implements backend.Renderer.
func (r *Renderer) DrawText(pos mlem.Point, str string, scale float32, col color.RGBA, _ float32) {
	if r.screen == nil || str == "" {
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Scale(float64(scale), float64(scale))
	op.GeoM.Translate(float64(pos.X), float64(pos.Y))
	op.ColorScale.ScaleWithColor(col)
	op.LineSpacing = r.lineHeight
	text.Draw(r.screen, str, r.face, op)
}

// MeasureText implements backend.TextMeasurer.
func (r *Renderer) MeasureText(str string, scale float32) mlem.Point {
	if str == "" {
		return mlem.Point{}
	}
	w, h := text.Measure(str, r.face, r.lineHeight)
	return mlem.Pt(float32(w)*scale, float32(h)*scale)
}
