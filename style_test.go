package mlem

import "testing"

func TestStylePropExplicitWins(t *testing.T) {
	var p StyleProp[int]

	p.Set(10)
	p.SetFromStyle(99)
	if p.Value() != 10 {
		t.Errorf("style default overrode explicit value: got %d", p.Value())
	}
	if !p.IsExplicit() {
		t.Error("IsExplicit = false after Set")
	}
}

func TestStylePropStyleThenExplicit(t *testing.T) {
	var p StyleProp[string]

	p.SetFromStyle("themed")
	if p.Value() != "themed" || p.IsExplicit() {
		t.Errorf("after SetFromStyle: value=%q explicit=%v", p.Value(), p.IsExplicit())
	}

	p.Set("mine")
	if p.Value() != "mine" {
		t.Errorf("explicit set did not apply: got %q", p.Value())
	}

	// A later theme application must not undo the explicit choice.
	p.SetFromStyle("other theme")
	if p.Value() != "mine" {
		t.Errorf("theme re-application overrode explicit value: got %q", p.Value())
	}
}

func TestStylePropOrElse(t *testing.T) {
	var p StyleProp[float32]

	if got := p.OrElse(4.5); got != 4.5 {
		t.Errorf("OrElse on empty prop = %v, want 4.5", got)
	}
	if p.HasValue() {
		t.Error("HasValue = true on empty prop")
	}

	p.SetFromStyle(2)
	if got := p.OrElse(4.5); got != 2 {
		t.Errorf("OrElse with style value = %v, want 2", got)
	}
}
