package command

import (
	"image"
	"strings"
)

// MoveTo sets the pen position without drawing.
//
//	moveto x y
type MoveTo struct{}

// Name returns the moveto keyword.
func (MoveTo) Name() string { return "moveto" }

// Execute moves the pen to (x, y).
func (c MoveTo) Execute(s Surface, args []string) error {
	if err := expectArgs(c.Name(), args, 2); err != nil {
		return err
	}
	v, err := parseInts(c.Name(), args)
	if err != nil {
		return err
	}
	s.SetPosition(image.Pt(v[0], v[1]))
	return nil
}

// DrawTo draws a line from the pen position to (x, y) and moves the pen
// there.
//
//	drawto x y
type DrawTo struct{}

// Name returns the drawto keyword.
func (DrawTo) Name() string { return "drawto" }

// Execute draws the line and moves the pen. The position is unchanged when rendering fails.
func (c DrawTo) Execute(s Surface, args []string) error {
	if err := expectArgs(c.Name(), args, 2); err != nil {
		return err
	}
	v, err := parseInts(c.Name(), args)
	if err != nil {
		return err
	}
	to := image.Pt(v[0], v[1])
	if err := s.Render(Primitive{
		Kind:   PrimitiveLine,
		Points: []image.Point{s.Position(), to},
	}); err != nil {
		return err
	}
	s.SetPosition(to)
	return nil
}

// Fill switches filling on or off. An optional color after "on" or "off"
// also sets the fill color.
//
//	fill on|off [color]
type Fill struct{}

// Name returns the fill keyword.
func (Fill) Name() string { return "fill" }

// Execute toggles filling and applies the optional fill color.
func (c Fill) Execute(s Surface, args []string) error {
	if len(args) == 0 {
		return argError(c.Name(), "expected on or off")
	}
	var on bool
	switch strings.ToLower(args[0]) {
	case "on":
		on = true
	case "off":
		on = false
	default:
		return argError(c.Name(), "expected on or off, got %q", args[0])
	}
	if len(args) > 1 {
		col, err := ParseColor(args[1:])
		if err != nil {
			return argError(c.Name(), "%v", err)
		}
		s.SetFillColor(col)
	}
	s.SetFilling(on)
	return nil
}

// Reset restores the home position, black pen, black fill color and
// turns filling off.
type Reset struct {
	Home State
}

// Name returns the reset keyword.
func (Reset) Name() string { return "reset" }

// Execute applies the home state. It takes no arguments.
func (c Reset) Execute(s Surface, args []string) error {
	if err := expectArgs(c.Name(), args, 0); err != nil {
		return err
	}
	c.Home.Apply(s)
	return nil
}

// Clear erases the drawing. The pen state is kept.
type Clear struct{}

// Name returns the clear keyword.
func (Clear) Name() string { return "clear" }

// Execute erases the surface. It takes no arguments.
func (c Clear) Execute(s Surface, args []string) error {
	if err := expectArgs(c.Name(), args, 0); err != nil {
		return err
	}
	s.Clear()
	return nil
}

// Pen sets the pen color.
//
//	pen r g b
//	pen red
//	pen #ff8000
type Pen struct{}

// Name returns the pen keyword.
func (Pen) Name() string { return "pen" }

// Execute sets the pen color from r g b, a color name or #rrggbb.
func (c Pen) Execute(s Surface, args []string) error {
	col, err := ParseColor(args)
	if err != nil {
		return argError(c.Name(), "%v", err)
	}
	s.SetPenColor(col)
	return nil
}
