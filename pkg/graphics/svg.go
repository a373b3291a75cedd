package graphics

import (
	"fmt"
	"image"
	"image/color"
	"io"

	svg "github.com/ajstarks/svgo"

	"github.com/zurustar/kame/pkg/command"
)

type svgShape struct {
	primitive command.Primitive
	style     Style
}

// SVGRecorder は図形を記録してSVGとして書き出すバックエンド
type SVGRecorder struct {
	width      int
	height     int
	background color.Color
	shapes     []svgShape
}

// NewSVGRecorder は新しいSVGRecorderを作成する
func NewSVGRecorder(width, height int, background color.Color) *SVGRecorder {
	return &SVGRecorder{
		width:      width,
		height:     height,
		background: background,
	}
}

// Render は図形を記録する
func (s *SVGRecorder) Render(p command.Primitive, style Style) error {
	points := append([]image.Point(nil), p.Points...)
	p.Points = points
	s.shapes = append(s.shapes, svgShape{primitive: p, style: style})
	return nil
}

// Clear は記録を消去する
func (s *SVGRecorder) Clear() {
	s.shapes = nil
}

// Len は記録された図形の数を返す
func (s *SVGRecorder) Len() int {
	return len(s.shapes)
}

// Encode は記録された図形をSVG文書として書き出す
func (s *SVGRecorder) Encode(w io.Writer) error {
	canvas := svg.New(w)
	canvas.Start(s.width, s.height)
	canvas.Rect(0, 0, s.width, s.height, "fill:"+cssColor(s.background))

	for _, shape := range s.shapes {
		p := shape.primitive
		switch p.Kind {
		case command.PrimitiveLine:
			canvas.Line(p.Points[0].X, p.Points[0].Y, p.Points[1].X, p.Points[1].Y, strokeStyle(shape.style))
		case command.PrimitiveRectangle:
			rect := image.Rectangle{Min: p.Points[0], Max: p.Points[1]}.Canon()
			canvas.Rect(rect.Min.X, rect.Min.Y, rect.Dx(), rect.Dy(), shapeStyle(shape.style))
		case command.PrimitiveCircle:
			canvas.Circle(p.Points[0].X, p.Points[0].Y, p.Radius, shapeStyle(shape.style))
		case command.PrimitiveTriangle:
			xs := make([]int, len(p.Points))
			ys := make([]int, len(p.Points))
			for i, pt := range p.Points {
				xs[i], ys[i] = pt.X, pt.Y
			}
			canvas.Polygon(xs, ys, shapeStyle(shape.style))
		}
	}

	canvas.End()
	return nil
}

func strokeStyle(style Style) string {
	return "stroke:" + cssColor(style.Pen)
}

func shapeStyle(style Style) string {
	if style.Filling {
		return "fill:" + cssColor(style.Fill) + ";stroke:none"
	}
	return "fill:none;stroke:" + cssColor(style.Pen)
}

func cssColor(c color.Color) string {
	rgba := toRGBA(c)
	return fmt.Sprintf("rgb(%d,%d,%d)", rgba.R, rgba.G, rgba.B)
}
