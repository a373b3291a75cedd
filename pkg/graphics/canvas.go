// Package graphics はタートルスクリプトの描画先（キャンバス）を提供する。
// キャンバスはペンの状態を持ち、図形の描画を登録されたバックエンドに振り分ける。
package graphics

import (
	"fmt"
	"image"
	"image/color"
	"log/slog"

	"github.com/zurustar/kame/pkg/command"
	"github.com/zurustar/kame/pkg/logger"
)

// Style は図形を描くときのペンと塗りつぶしの設定
type Style struct {
	Pen     color.Color
	Fill    color.Color
	Filling bool
}

// Renderer は図形を実際に描画するバックエンド
type Renderer interface {
	Render(p command.Primitive, style Style) error
	Clear()
}

// Canvas は command.Surface の実装
// 並行アクセスには対応しないため、描画はオーナーのゴルーチンで行う
type Canvas struct {
	width      int
	height     int
	state      command.State
	background color.Color
	renderers  []Renderer
	log        *slog.Logger
}

// CanvasOption は Canvas のオプションを設定する関数型
type CanvasOption func(*Canvas)

// WithRenderer は描画バックエンドを追加する
func WithRenderer(r Renderer) CanvasOption {
	return func(c *Canvas) {
		c.renderers = append(c.renderers, r)
	}
}

// WithStartState は起動直後のペン状態を設定する
func WithStartState(st command.State) CanvasOption {
	return func(c *Canvas) {
		c.state = st
	}
}

// WithBackground は背景色を設定する
func WithBackground(bg color.Color) CanvasOption {
	return func(c *Canvas) {
		c.background = bg
	}
}

// WithCanvasLogger はロガーを設定する
func WithCanvasLogger(log *slog.Logger) CanvasOption {
	return func(c *Canvas) {
		c.log = log
	}
}

// NewCanvas は新しいCanvasを作成する
func NewCanvas(width, height int, opts ...CanvasOption) (*Canvas, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}

	c := &Canvas{
		width:      width,
		height:     height,
		state:      command.DefaultState(),
		background: color.White,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.log == nil {
		c.log = logger.GetLogger()
	}
	return c, nil
}

// Size はキャンバスの大きさを返す
func (c *Canvas) Size() image.Point {
	return image.Pt(c.width, c.height)
}

// Background は背景色を返す
func (c *Canvas) Background() color.Color {
	return c.background
}

// Style は現在の描画スタイルを返す
func (c *Canvas) Style() Style {
	return Style{
		Pen:     c.state.PenColor,
		Fill:    c.state.FillColor,
		Filling: c.state.Filling,
	}
}

// State は現在のペン状態を返す
func (c *Canvas) State() command.State {
	return c.state
}

func (c *Canvas) Position() image.Point {
	return c.state.Position
}

func (c *Canvas) SetPosition(p image.Point) {
	c.state.Position = p
}

func (c *Canvas) PenColor() color.Color {
	return c.state.PenColor
}

func (c *Canvas) SetPenColor(col color.Color) {
	c.state.PenColor = col
}

func (c *Canvas) FillColor() color.Color {
	return c.state.FillColor
}

func (c *Canvas) SetFillColor(col color.Color) {
	c.state.FillColor = col
}

func (c *Canvas) Filling() bool {
	return c.state.Filling
}

func (c *Canvas) SetFilling(on bool) {
	c.state.Filling = on
}

// Render は図形を検証してすべてのバックエンドに描画させる
func (c *Canvas) Render(p command.Primitive) error {
	if err := validate(p); err != nil {
		return err
	}

	style := c.Style()
	for _, r := range c.renderers {
		if err := r.Render(p, style); err != nil {
			return fmt.Errorf("render %s: %w", p.Kind, err)
		}
	}

	c.log.Debug("Primitive rendered", "kind", p.Kind, "points", p.Points, "filling", style.Filling)
	return nil
}

// Clear はすべてのバックエンドの描画内容を消去する
// ペンの状態は変更しない
func (c *Canvas) Clear() {
	for _, r := range c.renderers {
		r.Clear()
	}
	c.log.Debug("Canvas cleared")
}

// validate は図形に必要な座標と半径がそろっているかを確認する
func validate(p command.Primitive) error {
	want := map[command.PrimitiveKind]int{
		command.PrimitiveLine:      2,
		command.PrimitiveRectangle: 2,
		command.PrimitiveCircle:    1,
		command.PrimitiveTriangle:  3,
	}
	n, ok := want[p.Kind]
	if !ok {
		return fmt.Errorf("%w: unknown kind %d", ErrInvalidPrimitive, p.Kind)
	}
	if len(p.Points) != n {
		return fmt.Errorf("%w: %s needs %d point(s), got %d", ErrInvalidPrimitive, p.Kind, n, len(p.Points))
	}
	if p.Kind == command.PrimitiveCircle && p.Radius <= 0 {
		return fmt.Errorf("%w: circle radius must be positive, got %d", ErrInvalidPrimitive, p.Radius)
	}
	return nil
}

// toRGBA は任意の色をRGBAに変換する
func toRGBA(c color.Color) color.RGBA {
	if c == nil {
		return color.RGBA{}
	}
	return color.RGBAModel.Convert(c).(color.RGBA)
}
