// Package command defines the drawing commands a turtle script can issue
// and the drawing-surface contract they operate on.
package command

import (
	"image"
	"image/color"
)

// PrimitiveKind identifies the shape a Primitive describes.
type PrimitiveKind int

const (
	PrimitiveLine PrimitiveKind = iota
	PrimitiveRectangle
	PrimitiveCircle
	PrimitiveTriangle
)

// String returns the lowercase name of the primitive kind.
func (k PrimitiveKind) String() string {
	switch k {
	case PrimitiveLine:
		return "line"
	case PrimitiveRectangle:
		return "rectangle"
	case PrimitiveCircle:
		return "circle"
	case PrimitiveTriangle:
		return "triangle"
	default:
		return "unknown"
	}
}

// Primitive is a single shape to be rendered with the surface's current
// pen, fill color and filling flag.
//
// Points holds the geometry:
//   - line: [from, to]
//   - rectangle: [top-left, bottom-right]
//   - circle: [center]; Radius is set
//   - triangle: the three vertices
type Primitive struct {
	Kind   PrimitiveKind
	Points []image.Point
	Radius int
}

// Surface is the mutable 2-D canvas a drawing command mutates.
// Implementations are not required to be safe for concurrent use; callers
// serialize access through the owning context.
type Surface interface {
	Position() image.Point
	SetPosition(p image.Point)

	PenColor() color.Color
	SetPenColor(c color.Color)

	FillColor() color.Color
	SetFillColor(c color.Color)

	Filling() bool
	SetFilling(on bool)

	// Render draws p using the current pen, fill color and filling flag.
	Render(p Primitive) error

	// Clear erases everything rendered so far. Pen state is untouched.
	Clear()
}

// State is a snapshot of the pen state of a surface. It is used as the
// value the reset command restores.
type State struct {
	Position  image.Point
	PenColor  color.Color
	FillColor color.Color
	Filling   bool
}

// DefaultState returns the state a surface starts from when nothing else
// is configured.
func DefaultState() State {
	return State{
		Position:  image.Pt(200, 150),
		PenColor:  color.Black,
		FillColor: color.Black,
		Filling:   false,
	}
}

// Apply writes st to s.
func (st State) Apply(s Surface) {
	s.SetPosition(st.Position)
	s.SetPenColor(st.PenColor)
	s.SetFillColor(st.FillColor)
	s.SetFilling(st.Filling)
}

// Capture reads the current state of s.
func Capture(s Surface) State {
	return State{
		Position:  s.Position(),
		PenColor:  s.PenColor(),
		FillColor: s.FillColor(),
		Filling:   s.Filling(),
	}
}
