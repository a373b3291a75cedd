package interp

import (
	"fmt"
	"image"
	"image/color"
	"sync"

	"github.com/zurustar/kame/pkg/command"
)

// spySurface records every call made to it as a readable string.
type spySurface struct {
	mu      sync.Mutex
	pos     image.Point
	pen     color.Color
	fill    color.Color
	filling bool
	calls   []string
	renders []command.Primitive
}

func newSpySurface() *spySurface {
	return &spySurface{
		pos:  image.Pt(250, 150),
		pen:  color.Black,
		fill: color.Black,
	}
}

func (s *spySurface) record(format string, a ...any) {
	s.calls = append(s.calls, fmt.Sprintf(format, a...))
}

func (s *spySurface) Position() image.Point { return s.pos }
func (s *spySurface) SetPosition(p image.Point) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record("SetPosition(%d,%d)", p.X, p.Y)
	s.pos = p
}
func (s *spySurface) PenColor() color.Color { return s.pen }
func (s *spySurface) SetPenColor(c color.Color) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record("SetPenColor")
	s.pen = c
}
func (s *spySurface) FillColor() color.Color { return s.fill }
func (s *spySurface) SetFillColor(c color.Color) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record("SetFillColor")
	s.fill = c
}
func (s *spySurface) Filling() bool { return s.filling }
func (s *spySurface) SetFilling(on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record("SetFilling(%v)", on)
	s.filling = on
}
func (s *spySurface) Render(p command.Primitive) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record("Render(%s)", p.Kind)
	s.renders = append(s.renders, p)
	return nil
}
func (s *spySurface) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record("Clear")
}

func (s *spySurface) Calls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	result := make([]string, len(s.calls))
	copy(result, s.calls)
	return result
}

func (s *spySurface) RenderCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.renders)
}
