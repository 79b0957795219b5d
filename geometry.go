package mlem

import "math"

// Epsilon is the tolerance used by the approximate float comparisons below.
// Layout math accumulates small rounding error when fractional sizes and
// scale factors combine, so exact comparison of resolved areas is unreliable.
const Epsilon = 0.001

// Point is a 2D position or extent in pixels.
type Point struct {
	X, Y float32
}

// Pt is shorthand for constructing a Point.
func Pt(x, y float32) Point {
	return Point{X: x, Y: y}
}

// Add returns p translated by q.
func (p Point) Add(q Point) Point {
	return Point{p.X + q.X, p.Y + q.Y}
}

// Sub returns p translated by -q.
func (p Point) Sub(q Point) Point {
	return Point{p.X - q.X, p.Y - q.Y}
}

// Mul returns p scaled by f on both axes.
func (p Point) Mul(f float32) Point {
	return Point{p.X * f, p.Y * f}
}

// Length returns the Euclidean length of p treated as a vector.
func (p Point) Length() float32 {
	return float32(math.Hypot(float64(p.X), float64(p.Y)))
}

// Angle returns the angle of p in radians, in [-π, π].
func (p Point) Angle() float32 {
	return float32(math.Atan2(float64(p.Y), float64(p.X)))
}

// Equals reports whether p and q are equal within Epsilon per component.
func (p Point) Equals(q Point) bool {
	return absf(p.X-q.X) < Epsilon && absf(p.Y-q.Y) < Epsilon
}

// Rectangle is an axis-aligned pixel rectangle.
type Rectangle struct {
	X, Y          float32
	Width, Height float32
}

// Rect constructs a Rectangle from its position and size.
func Rect(x, y, w, h float32) Rectangle {
	return Rectangle{X: x, Y: y, Width: w, Height: h}
}

func (r Rectangle) Pos() Point     { return Point{r.X, r.Y} }
func (r Rectangle) Size() Point    { return Point{r.Width, r.Height} }
func (r Rectangle) Right() float32 { return r.X + r.Width }
func (r Rectangle) Bottom() float32 {
	return r.Y + r.Height
}

// Center returns the midpoint of r.
func (r Rectangle) Center() Point {
	return Point{r.X + r.Width/2, r.Y + r.Height/2}
}

// IsEmpty reports whether r has zero or negative extent on either axis.
func (r Rectangle) IsEmpty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Contains reports whether the point p lies within r.
func (r Rectangle) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.X+r.Width && p.Y >= r.Y && p.Y < r.Y+r.Height
}

// Union returns the smallest rectangle containing both r and s.
// An empty rectangle does not contribute.
func (r Rectangle) Union(s Rectangle) Rectangle {
	if r.IsEmpty() {
		return s
	}
	if s.IsEmpty() {
		return r
	}
	x := minf(r.X, s.X)
	y := minf(r.Y, s.Y)
	return Rectangle{
		X:      x,
		Y:      y,
		Width:  maxf(r.Right(), s.Right()) - x,
		Height: maxf(r.Bottom(), s.Bottom()) - y,
	}
}

// Shrink returns r inset by the given padding on all four sides.
func (r Rectangle) Shrink(p Padding) Rectangle {
	return Rectangle{
		X:      r.X + p.Left,
		Y:      r.Y + p.Top,
		Width:  r.Width - p.Left - p.Right,
		Height: r.Height - p.Top - p.Bottom,
	}
}

// Equals reports whether r and s are equal within Epsilon per component.
func (r Rectangle) Equals(s Rectangle) bool {
	return absf(r.X-s.X) < Epsilon && absf(r.Y-s.Y) < Epsilon &&
		absf(r.Width-s.Width) < Epsilon && absf(r.Height-s.Height) < Epsilon
}

// Padding is a set of four inset distances in pixels.
type Padding struct {
	Left, Right, Top, Bottom float32
}

// UniformPadding returns a Padding with the same inset on all sides.
func UniformPadding(v float32) Padding {
	return Padding{Left: v, Right: v, Top: v, Bottom: v}
}

// Width returns the total horizontal inset.
func (p Padding) Width() float32 { return p.Left + p.Right }

// Height returns the total vertical inset.
func (p Padding) Height() float32 { return p.Top + p.Bottom }

// Direction is one of the four cardinal movement directions used by
// gamepad navigation.
type Direction int

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	}
	return "unknown"
}

// Offset returns the unit vector for the direction in screen coordinates
// (y grows downward).
func (d Direction) Offset() Point {
	switch d {
	case DirUp:
		return Point{0, -1}
	case DirDown:
		return Point{0, 1}
	case DirLeft:
		return Point{-1, 0}
	case DirRight:
		return Point{1, 0}
	}
	return Point{}
}

// Transform maps screen space to a root element's local space. It is an
// affine translate+scale; Invert must round-trip with Apply so that hit
// testing and drawing agree.
type Transform struct {
	Offset Point
	Scale  float32
}

// IdentityTransform returns the no-op transform.
func IdentityTransform() Transform {
	return Transform{Scale: 1}
}

// Apply maps a local-space point to screen space.
func (t Transform) Apply(p Point) Point {
	s := t.scaleOrOne()
	return Point{p.X*s + t.Offset.X, p.Y*s + t.Offset.Y}
}

// Invert maps a screen-space point to local space.
func (t Transform) Invert(p Point) Point {
	s := t.scaleOrOne()
	return Point{(p.X - t.Offset.X) / s, (p.Y - t.Offset.Y) / s}
}

// ApplyRect maps a local-space rectangle to screen space.
func (t Transform) ApplyRect(r Rectangle) Rectangle {
	s := t.scaleOrOne()
	return Rectangle{
		X:      r.X*s + t.Offset.X,
		Y:      r.Y*s + t.Offset.Y,
		Width:  r.Width * s,
		Height: r.Height * s,
	}
}

func (t Transform) scaleOrOne() float32 {
	if t.Scale == 0 {
		return 1
	}
	return t.Scale
}

func absf(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

func minf(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func maxf(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}
