// Package backend declares the rendering-side collaborator contracts the UI
// consumes: quad drawing and text measurement. Concrete implementations live
// in the ebitenbackend and raylibbackend subpackages.
package backend

import (
	"image/color"

	"github.com/Monniasza/mlem"
)

// Texture is an opaque handle to a backend-owned image. The UI never
// inspects it; it only passes it back to the renderer that produced it.
type Texture any

// Fill describes how a rectangle is painted: a texture when present,
// tinted/filled with Color otherwise.
type Fill struct {
	Texture Texture
	Color   color.RGBA
}

// ColorFill returns a texture-less fill.
func ColorFill(c color.RGBA) Fill {
	return Fill{Color: c}
}

// Renderer issues draw calls for one frame. Depth orders draws within the
// frame; higher depth draws on top.
type Renderer interface {
	DrawRectangle(area mlem.Rectangle, fill Fill, depth float32)
	DrawText(pos mlem.Point, text string, scale float32, col color.RGBA, depth float32)
}

// TextMeasurer returns the pixel dimensions a string occupies at a scale.
// Auto-sized containers holding text elements depend on this.
type TextMeasurer interface {
	MeasureText(text string, scale float32) mlem.Point
}
