package ui

import (
	"image/color"

	"github.com/Monniasza/mlem"
	"github.com/Monniasza/mlem/backend"
)

// UiStyle supplies default visuals and layout constants for elements that
// have not been explicitly configured. Styles only feed defaults through
// StyleProp values; they never affect layout correctness and never override
// an explicit setting.
type UiStyle struct {
	PanelTexture backend.Texture
	PanelColor   color.RGBA

	ButtonTexture      backend.Texture
	ButtonColor        color.RGBA
	ButtonHoveredColor color.RGBA
	ButtonTextColor    color.RGBA

	TextColor color.RGBA
	TextScale float32

	// PanelChildPadding is applied to new panels that did not set their own.
	PanelChildPadding mlem.Padding

	// Selection indicator drawn around the selected element in auto-nav
	// mode.
	SelectionColor     color.RGBA
	SelectionThickness float32
}

// Untextured returns a flat-color style usable without any loaded assets.
func Untextured() *UiStyle {
	return &UiStyle{
		PanelColor:         color.RGBA{40, 40, 48, 230},
		ButtonColor:        color.RGBA{85, 85, 100, 255},
		ButtonHoveredColor: color.RGBA{120, 120, 140, 255},
		ButtonTextColor:    color.RGBA{240, 240, 240, 255},
		TextColor:          color.RGBA{230, 230, 230, 255},
		TextScale:          1,
		PanelChildPadding:  mlem.UniformPadding(5),
		SelectionColor:     color.RGBA{255, 255, 255, 255},
		SelectionThickness: 2,
	}
}

// TextMeasureCache memoizes a TextMeasurer. Construct one per UiSystem and
// tear it down with the system; independent systems may use different fonts.
type TextMeasureCache struct {
	inner backend.TextMeasurer
	cache map[textCacheKey]mlem.Point
}

type textCacheKey struct {
	text  string
	scale float32
}

// NewTextMeasureCache wraps a measurer with memoization.
func NewTextMeasureCache(inner backend.TextMeasurer) *TextMeasureCache {
	return &TextMeasureCache{
		inner: inner,
		cache: make(map[textCacheKey]mlem.Point),
	}
}

// MeasureText implements backend.TextMeasurer.
func (c *TextMeasureCache) MeasureText(text string, scale float32) mlem.Point {
	key := textCacheKey{text, scale}
	if v, ok := c.cache[key]; ok {
		return v
	}
	v := c.inner.MeasureText(text, scale)
	c.cache[key] = v
	return v
}

// Reset drops every cached measurement, e.g. after a font change.
func (c *TextMeasureCache) Reset() {
	clear(c.cache)
}
