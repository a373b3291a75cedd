package graphics

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/zurustar/kame/pkg/command"
	"github.com/zurustar/kame/pkg/logger"
)

// countingRenderer は呼び出し回数を数えるバックエンド
type countingRenderer struct {
	renders []command.Primitive
	styles  []Style
	clears  int
	err     error
}

func (r *countingRenderer) Render(p command.Primitive, style Style) error {
	if r.err != nil {
		return r.err
	}
	r.renders = append(r.renders, p)
	r.styles = append(r.styles, style)
	return nil
}

func (r *countingRenderer) Clear() {
	r.clears++
}

func newTestCanvas(t *testing.T, opts ...CanvasOption) *Canvas {
	t.Helper()
	opts = append(opts, WithCanvasLogger(logger.Discard()))
	c, err := NewCanvas(100, 80, opts...)
	if err != nil {
		t.Fatalf("NewCanvas failed: %v", err)
	}
	return c
}

func TestNewCanvas(t *testing.T) {
	c := newTestCanvas(t)

	if c.Size() != image.Pt(100, 80) {
		t.Errorf("expected size 100x80, got %v", c.Size())
	}
	if c.Position() != command.DefaultState().Position {
		t.Errorf("expected default position, got %v", c.Position())
	}
	if c.Background() != color.White {
		t.Errorf("expected white background, got %v", c.Background())
	}
}

func TestNewCanvas_InvalidSize(t *testing.T) {
	for _, size := range []image.Point{{0, 10}, {10, 0}, {-1, -1}} {
		if _, err := NewCanvas(size.X, size.Y); !errors.Is(err, ErrInvalidSize) {
			t.Errorf("size %v: expected ErrInvalidSize, got %v", size, err)
		}
	}
}

func TestCanvas_StartState(t *testing.T) {
	start := command.State{
		Position:  image.Pt(250, 150),
		PenColor:  color.RGBA{R: 255, A: 255},
		FillColor: color.RGBA{G: 255, A: 255},
		Filling:   true,
	}
	c := newTestCanvas(t, WithStartState(start))

	if got := command.Capture(c); got != start {
		t.Errorf("expected %+v, got %+v", start, got)
	}
	style := c.Style()
	if style.Pen != start.PenColor || style.Fill != start.FillColor || !style.Filling {
		t.Errorf("unexpected style %+v", style)
	}
}

func TestCanvas_RenderFansOut(t *testing.T) {
	a := &countingRenderer{}
	b := &countingRenderer{}
	c := newTestCanvas(t, WithRenderer(a), WithRenderer(b))

	c.SetFilling(true)
	p := command.Primitive{Kind: command.PrimitiveCircle, Points: []image.Point{{10, 10}}, Radius: 5}
	if err := c.Render(p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, r := range []*countingRenderer{a, b} {
		if len(r.renders) != 1 {
			t.Fatalf("expected 1 render, got %d", len(r.renders))
		}
		if !r.styles[0].Filling {
			t.Error("style should carry the filling flag")
		}
	}

	c.Clear()
	if a.clears != 1 || b.clears != 1 {
		t.Errorf("expected each renderer cleared once, got %d and %d", a.clears, b.clears)
	}
}

func TestCanvas_ClearKeepsState(t *testing.T) {
	c := newTestCanvas(t, WithRenderer(&countingRenderer{}))
	c.SetPosition(image.Pt(3, 4))
	c.SetPenColor(color.RGBA{B: 255, A: 255})
	before := command.Capture(c)

	c.Clear()

	if got := command.Capture(c); got != before {
		t.Errorf("clear changed state: %+v -> %+v", before, got)
	}
}

func TestCanvas_RenderValidation(t *testing.T) {
	tests := []struct {
		name string
		p    command.Primitive
	}{
		{"線の座標不足", command.Primitive{Kind: command.PrimitiveLine, Points: []image.Point{{0, 0}}}},
		{"三角形の座標不足", command.Primitive{Kind: command.PrimitiveTriangle, Points: []image.Point{{0, 0}, {1, 1}}}},
		{"半径ゼロの円", command.Primitive{Kind: command.PrimitiveCircle, Points: []image.Point{{0, 0}}}},
		{"未知の種類", command.Primitive{Kind: command.PrimitiveKind(99)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &countingRenderer{}
			c := newTestCanvas(t, WithRenderer(r))
			if err := c.Render(tt.p); !errors.Is(err, ErrInvalidPrimitive) {
				t.Errorf("expected ErrInvalidPrimitive, got %v", err)
			}
			if len(r.renders) != 0 {
				t.Error("invalid primitive should not reach renderers")
			}
		})
	}
}

func TestCanvas_RendererError(t *testing.T) {
	boom := errors.New("boom")
	c := newTestCanvas(t, WithRenderer(&countingRenderer{err: boom}))

	err := c.Render(command.Primitive{Kind: command.PrimitiveLine, Points: []image.Point{{0, 0}, {5, 5}}})
	if !errors.Is(err, boom) {
		t.Errorf("expected renderer error to be wrapped, got %v", err)
	}
}

// Canvas はスクリプトのコマンドからそのまま使える
func TestCanvas_WithDrawingCommands(t *testing.T) {
	r := &countingRenderer{}
	c := newTestCanvas(t, WithRenderer(r))
	table := command.NewTable(command.DefaultState())

	run := func(name string, args ...string) {
		t.Helper()
		cmd, ok := table.Lookup(name)
		if !ok {
			t.Fatalf("command %q not found", name)
		}
		if err := cmd.Execute(c, args); err != nil {
			t.Fatalf("%s failed: %v", name, err)
		}
	}

	run("moveto", "10", "10")
	run("drawto", "20", "10")
	run("rectangle", "5", "5")
	run("triangle", "6")

	if len(r.renders) != 3 {
		t.Fatalf("expected 3 renders, got %d", len(r.renders))
	}
	if c.Position() != image.Pt(20, 10) {
		t.Errorf("expected pen at (20,10), got %v", c.Position())
	}
}
