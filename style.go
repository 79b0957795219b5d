package mlem

// StyleProp holds a value that can come from two places: an explicit set by
// application code, or a default supplied by a style/theme. An explicit value
// always wins: once set, later style-supplied defaults are ignored, while
// further explicit sets still apply.
type StyleProp[T any] struct {
	value    T
	explicit bool
	present  bool
}

// NewStyleProp returns a StyleProp holding an explicitly set value.
func NewStyleProp[T any](value T) StyleProp[T] {
	return StyleProp[T]{value: value, explicit: true, present: true}
}

// Value returns the current value, explicit or style-supplied. The zero T is
// returned when neither has been provided.
func (p StyleProp[T]) Value() T {
	return p.value
}

// HasValue reports whether any value, explicit or default, has been supplied.
func (p StyleProp[T]) HasValue() bool {
	return p.present
}

// IsExplicit reports whether the current value was set by application code.
func (p StyleProp[T]) IsExplicit() bool {
	return p.explicit
}

// Set stores an explicit value, overriding any default.
func (p *StyleProp[T]) Set(value T) {
	p.value = value
	p.explicit = true
	p.present = true
}

// SetFromStyle stores a style-supplied default. It is a no-op when an
// explicit value is already present.
func (p *StyleProp[T]) SetFromStyle(value T) {
	if p.explicit {
		return
	}
	p.value = value
	p.present = true
}

// OrElse returns the current value, or fallback when nothing has been
// supplied yet.
func (p StyleProp[T]) OrElse(fallback T) T {
	if !p.present {
		return fallback
	}
	return p.value
}
