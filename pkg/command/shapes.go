package command

import "image"

// Rectangle draws a w×h rectangle with its top-left corner at the pen.
//
//	rectangle w h
type Rectangle struct{}

// Name returns the rectangle keyword.
func (Rectangle) Name() string { return "rectangle" }

// Execute renders the rectangle. Width and height must be positive.
func (c Rectangle) Execute(s Surface, args []string) error {
	v, err := parsePositive(c.Name(), args, 2)
	if err != nil {
		return err
	}
	p := s.Position()
	return s.Render(Primitive{
		Kind:   PrimitiveRectangle,
		Points: []image.Point{p, p.Add(image.Pt(v[0], v[1]))},
	})
}

// Circle draws a circle of radius r centered on the pen.
//
//	circle r
type Circle struct{}

// Name returns the circle keyword.
func (Circle) Name() string { return "circle" }

// Execute renders the circle. The radius must be positive.
func (c Circle) Execute(s Surface, args []string) error {
	v, err := parsePositive(c.Name(), args, 1)
	if err != nil {
		return err
	}
	return s.Render(Primitive{
		Kind:   PrimitiveCircle,
		Points: []image.Point{s.Position()},
		Radius: v[0],
	})
}

// Triangle draws an isosceles triangle whose base runs from the pen to
// size pixels right of it, with the apex size pixels above the base
// midpoint.
//
//	triangle size
type Triangle struct{}

// Name returns the triangle keyword.
func (Triangle) Name() string { return "triangle" }

// Execute renders the triangle. The size must be positive.
func (c Triangle) Execute(s Surface, args []string) error {
	v, err := parsePositive(c.Name(), args, 1)
	if err != nil {
		return err
	}
	return s.Render(Primitive{
		Kind:   PrimitiveTriangle,
		Points: TrianglePoints(s.Position(), v[0]),
	})
}

// TrianglePoints returns the vertices drawn by the triangle command.
func TrianglePoints(at image.Point, size int) []image.Point {
	return []image.Point{
		at,
		at.Add(image.Pt(size, 0)),
		at.Add(image.Pt(size/2, -size)),
	}
}
