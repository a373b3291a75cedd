package graphics

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/vector"

	"github.com/zurustar/kame/pkg/command"
)

// Raster はピクセル画像に描画するバックエンド
type Raster struct {
	img        *image.RGBA
	background color.Color
}

// NewRaster は背景色で塗りつぶした画像を持つRasterを作成する
func NewRaster(width, height int, background color.Color) *Raster {
	r := &Raster{
		img:        image.NewRGBA(image.Rect(0, 0, width, height)),
		background: background,
	}
	r.Clear()
	return r
}

// Image は描画先の画像を返す
func (r *Raster) Image() *image.RGBA {
	return r.img
}

// At は (x, y) の色を返す。範囲外は透明
func (r *Raster) At(x, y int) color.RGBA {
	if !(image.Point{X: x, Y: y}).In(r.img.Bounds()) {
		return color.RGBA{}
	}
	return r.img.RGBAAt(x, y)
}

// Clear は背景色で塗りつぶす
func (r *Raster) Clear() {
	draw.Draw(r.img, r.img.Bounds(), &image.Uniform{r.background}, image.Point{}, draw.Src)
}

// Render は図形をピクセルとして描く
func (r *Raster) Render(p command.Primitive, style Style) error {
	switch p.Kind {
	case command.PrimitiveLine:
		r.drawLine(p.Points[0], p.Points[1], style.Pen)
	case command.PrimitiveRectangle:
		rect := image.Rectangle{Min: p.Points[0], Max: p.Points[1]}.Canon()
		if style.Filling {
			r.fillRect(rect, style.Fill)
		} else {
			r.strokeRect(rect, style.Pen)
		}
	case command.PrimitiveCircle:
		if style.Filling {
			r.fillCircle(p.Points[0], p.Radius, style.Fill)
		} else {
			r.strokeCircle(p.Points[0], p.Radius, style.Pen)
		}
	case command.PrimitiveTriangle:
		if style.Filling {
			r.fillTriangle(p.Points[0], p.Points[1], p.Points[2], style.Fill)
		} else {
			r.drawLine(p.Points[0], p.Points[1], style.Pen)
			r.drawLine(p.Points[1], p.Points[2], style.Pen)
			r.drawLine(p.Points[2], p.Points[0], style.Pen)
		}
	}
	return nil
}

// drawLine はキャンバスに切り詰めた線分をブレゼンハムのアルゴリズムで引く
func (r *Raster) drawLine(from, to image.Point, c color.Color) {
	from, to, ok := clipLine(from, to, r.img.Bounds())
	if !ok {
		return
	}
	x1, y1, x2, y2 := from.X, from.Y, to.X, to.Y
	dx := abs(x2 - x1)
	dy := abs(y2 - y1)
	sx := 1
	if x1 > x2 {
		sx = -1
	}
	sy := 1
	if y1 > y2 {
		sy = -1
	}
	err := dx - dy

	x, y := x1, y1
	for {
		r.setPixel(x, y, c)

		if x == x2 && y == y2 {
			break
		}

		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x += sx
		}
		if e2 < dx {
			err += dx
			y += sy
		}
	}
}

// clipLine は Liang-Barsky 法で線分を bounds 内に切り詰める。
// 両端が内側ならそのまま返す
func clipLine(from, to image.Point, bounds image.Rectangle) (image.Point, image.Point, bool) {
	if from.In(bounds) && to.In(bounds) {
		return from, to, true
	}
	x0, y0 := float64(from.X), float64(from.Y)
	dx, dy := float64(to.X)-x0, float64(to.Y)-y0
	t0, t1 := 0.0, 1.0

	edges := [4][2]float64{
		{-dx, x0 - float64(bounds.Min.X)},
		{dx, float64(bounds.Max.X-1) - x0},
		{-dy, y0 - float64(bounds.Min.Y)},
		{dy, float64(bounds.Max.Y-1) - y0},
	}
	for _, e := range edges {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return from, to, false
			}
			continue
		}
		t := q / p
		if p < 0 {
			t0 = max(t0, t)
		} else {
			t1 = min(t1, t)
		}
		if t0 > t1 {
			return from, to, false
		}
	}

	// 丸め誤差で外に出ないよう端点を収める
	inside := func(x, y float64) image.Point {
		x = math.Min(math.Max(math.Round(x), float64(bounds.Min.X)), float64(bounds.Max.X-1))
		y = math.Min(math.Max(math.Round(y), float64(bounds.Min.Y)), float64(bounds.Max.Y-1))
		return image.Pt(int(x), int(y))
	}
	return inside(x0+t0*dx, y0+t0*dy), inside(x0+t1*dx, y0+t1*dy), true
}

// strokeRect は矩形の外周を描く（Maxは含まない）
func (r *Raster) strokeRect(rect image.Rectangle, c color.Color) {
	if rect.Empty() {
		return
	}
	x1, y1 := rect.Min.X, rect.Min.Y
	x2, y2 := rect.Max.X-1, rect.Max.Y-1
	r.drawLine(image.Pt(x1, y1), image.Pt(x2, y1), c) // 上
	r.drawLine(image.Pt(x2, y1), image.Pt(x2, y2), c) // 右
	r.drawLine(image.Pt(x2, y2), image.Pt(x1, y2), c) // 下
	r.drawLine(image.Pt(x1, y2), image.Pt(x1, y1), c) // 左
}

func (r *Raster) fillRect(rect image.Rectangle, c color.Color) {
	draw.Draw(r.img, rect.Intersect(r.img.Bounds()), &image.Uniform{c}, image.Point{}, draw.Over)
}

// circleRows はキャンバスと重なる行について、中心からの縦距離 dy と
// その行での円周の横距離 outer、次の行での横距離 inner を渡す。
// 走査はキャンバスの高さまでに限られる
func (r *Raster) circleRows(center image.Point, radius int, fn func(y int, outer, inner float64)) {
	bounds := r.img.Bounds()
	cy, rad := float64(center.Y), float64(radius)
	top := math.Max(float64(bounds.Min.Y), cy-rad)
	bottom := math.Min(float64(bounds.Max.Y-1), cy+rad)
	if top > bottom {
		return
	}
	span := func(d float64) float64 {
		if d > rad {
			return -1
		}
		return math.Floor(math.Sqrt(rad*rad - d*d))
	}
	for y := int(top); y <= int(bottom); y++ {
		d := math.Abs(float64(y) - cy)
		fn(y, span(d), span(d+1))
	}
}

// strokeCircle は行ごとに円周の左右の画素を描く
func (r *Raster) strokeCircle(center image.Point, radius int, c color.Color) {
	bounds := r.img.Bounds()
	r.circleRows(center, radius, func(y int, outer, inner float64) {
		from := math.Min(math.Max(inner+1, 0), outer)
		for _, side := range []float64{1, -1} {
			a := float64(center.X) + side*from
			b := float64(center.X) + side*outer
			lo, hi := math.Min(a, b), math.Max(a, b)
			lo = math.Max(lo, float64(bounds.Min.X))
			hi = math.Min(hi, float64(bounds.Max.X-1))
			if lo > hi {
				continue
			}
			for x := int(lo); x <= int(hi); x++ {
				r.setPixel(x, y, c)
			}
		}
	})
}

// fillCircle は行ごとに円の内側の区間を塗る
func (r *Raster) fillCircle(center image.Point, radius int, c color.Color) {
	bounds := r.img.Bounds()
	src := &image.Uniform{c}
	r.circleRows(center, radius, func(y int, outer, _ float64) {
		lo := math.Max(float64(center.X)-outer, float64(bounds.Min.X))
		hi := math.Min(float64(center.X)+outer, float64(bounds.Max.X-1))
		if lo > hi {
			return
		}
		draw.Draw(r.img, image.Rect(int(lo), y, int(hi)+1, y+1), src, image.Point{}, draw.Over)
	})
}

// fillTriangle はキャンバスに切り詰めた三角形を vector.Rasterizer で塗る
func (r *Raster) fillTriangle(a, b, c image.Point, col color.Color) {
	pts := []fpoint{toFPoint(a), toFPoint(b), toFPoint(c)}
	if edge(pts[0], pts[1], pts[2]) == 0 {
		// 面積がなければ線として描く
		r.drawLine(a, b, col)
		r.drawLine(b, c, col)
		return
	}

	bounds := r.img.Bounds()
	pts = clipPolygon(pts, bounds)
	if len(pts) < 3 {
		return
	}

	// 頂点を画素の中心に置く
	z := vector.NewRasterizer(bounds.Dx(), bounds.Dy())
	z.DrawOp = draw.Over
	z.MoveTo(float32(pts[0].x-float64(bounds.Min.X)+0.5), float32(pts[0].y-float64(bounds.Min.Y)+0.5))
	for _, p := range pts[1:] {
		z.LineTo(float32(p.x-float64(bounds.Min.X)+0.5), float32(p.y-float64(bounds.Min.Y)+0.5))
	}
	z.ClosePath()
	z.Draw(r.img, bounds, &image.Uniform{col}, image.Point{})
}

type fpoint struct{ x, y float64 }

func toFPoint(p image.Point) fpoint {
	return fpoint{float64(p.X), float64(p.Y)}
}

// edge は辺 a→b に対する p の位置（外積）
func edge(a, b, p fpoint) float64 {
	return (b.x-a.x)*(p.y-a.y) - (b.y-a.y)*(p.x-a.x)
}

// clipPolygon は Sutherland-Hodgman 法で凸多角形を bounds（1画素の余白つき）に切り詰める
func clipPolygon(pts []fpoint, bounds image.Rectangle) []fpoint {
	minX, minY := float64(bounds.Min.X-1), float64(bounds.Min.Y-1)
	maxX, maxY := float64(bounds.Max.X), float64(bounds.Max.Y)

	planes := []struct {
		inside func(p fpoint) bool
		cross  func(a, b fpoint) fpoint
	}{
		{func(p fpoint) bool { return p.x >= minX }, func(a, b fpoint) fpoint { return atX(a, b, minX) }},
		{func(p fpoint) bool { return p.x <= maxX }, func(a, b fpoint) fpoint { return atX(a, b, maxX) }},
		{func(p fpoint) bool { return p.y >= minY }, func(a, b fpoint) fpoint { return atY(a, b, minY) }},
		{func(p fpoint) bool { return p.y <= maxY }, func(a, b fpoint) fpoint { return atY(a, b, maxY) }},
	}
	for _, pl := range planes {
		if len(pts) == 0 {
			break
		}
		out := make([]fpoint, 0, len(pts)+1)
		prev := pts[len(pts)-1]
		for _, cur := range pts {
			switch {
			case pl.inside(cur) && pl.inside(prev):
				out = append(out, cur)
			case pl.inside(cur):
				out = append(out, pl.cross(prev, cur), cur)
			case pl.inside(prev):
				out = append(out, pl.cross(prev, cur))
			}
			prev = cur
		}
		pts = out
	}
	return pts
}

func atX(a, b fpoint, x float64) fpoint {
	t := (x - a.x) / (b.x - a.x)
	return fpoint{x, a.y + t*(b.y-a.y)}
}

func atY(a, b fpoint, y float64) fpoint {
	t := (y - a.y) / (b.y - a.y)
	return fpoint{a.x + t*(b.x-a.x), y}
}

func (r *Raster) setPixel(x, y int, c color.Color) {
	if !(image.Point{X: x, Y: y}).In(r.img.Bounds()) {
		return
	}
	r.img.Set(x, y, c)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
