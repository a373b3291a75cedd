package command

import (
	"image"
	"image/color"
)

// fakeSurface records every mutation so tests can assert on them.
type fakeSurface struct {
	pos      image.Point
	pen      color.Color
	fill     color.Color
	filling  bool
	rendered []Primitive
	clears   int
	mutated  int
}

func newFakeSurface() *fakeSurface {
	return &fakeSurface{
		pos:  image.Pt(250, 150),
		pen:  color.Black,
		fill: color.Black,
	}
}

func (f *fakeSurface) Position() image.Point { return f.pos }
func (f *fakeSurface) SetPosition(p image.Point) {
	f.mutated++
	f.pos = p
}
func (f *fakeSurface) PenColor() color.Color { return f.pen }
func (f *fakeSurface) SetPenColor(c color.Color) {
	f.mutated++
	f.pen = c
}
func (f *fakeSurface) FillColor() color.Color { return f.fill }
func (f *fakeSurface) SetFillColor(c color.Color) {
	f.mutated++
	f.fill = c
}
func (f *fakeSurface) Filling() bool { return f.filling }
func (f *fakeSurface) SetFilling(on bool) {
	f.mutated++
	f.filling = on
}
func (f *fakeSurface) Render(p Primitive) error {
	f.mutated++
	f.rendered = append(f.rendered, p)
	return nil
}
func (f *fakeSurface) Clear() {
	f.mutated++
	f.clears++
	f.rendered = nil
}
