// Package config はキャンバスの設定（YAMLプロファイル）を扱う。
package config

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/zurustar/kame/pkg/command"
)

// ErrInvalidProfile はプロファイルの値が不正な場合のエラー
var ErrInvalidProfile = errors.New("invalid canvas profile")

// MaxCanvasSize はキャンバスの幅と高さの上限
const MaxCanvasSize = 4096

// Point は座標
type Point struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

// Image はimage.Pointに変換する
func (p Point) Image() image.Point {
	return image.Pt(p.X, p.Y)
}

// Profile はキャンバスの設定
type Profile struct {
	Title      string `yaml:"title"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Start      Point  `yaml:"start"`      // 起動直後のペン位置
	Home       Point  `yaml:"home"`       // reset で戻る位置
	Background string `yaml:"background"` // 背景色
	Pen        string `yaml:"pen"`        // ペンの色
	Fill       string `yaml:"fill"`       // 塗りつぶしの色
	Filling    bool   `yaml:"filling"`    // 起動直後の塗りつぶし
}

// Default は既定のプロファイルを返す
func Default() *Profile {
	return &Profile{
		Title:      "kame",
		Width:      640,
		Height:     480,
		Start:      Point{X: 250, Y: 150},
		Home:       Point{X: 200, Y: 150},
		Background: "white",
		Pen:        "black",
		Fill:       "black",
		Filling:    false,
	}
}

// Load はYAMLファイルからプロファイルを読み込む
// 省略された項目は既定値のまま
func Load(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile: %w", err)
	}
	p, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// Parse はYAMLを解釈してプロファイルを返す
func Parse(data []byte) (*Profile, error) {
	p := Default()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(p); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse profile: %w", err)
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Validate は設定値を検証する
func (p *Profile) Validate() error {
	if p.Width <= 0 || p.Height <= 0 {
		return fmt.Errorf("%w: canvas size must be positive, got %dx%d", ErrInvalidProfile, p.Width, p.Height)
	}
	if p.Width > MaxCanvasSize || p.Height > MaxCanvasSize {
		return fmt.Errorf("%w: canvas size must be at most %dx%d, got %dx%d", ErrInvalidProfile, MaxCanvasSize, MaxCanvasSize, p.Width, p.Height)
	}
	for name, value := range map[string]string{
		"background": p.Background,
		"pen":        p.Pen,
		"fill":       p.Fill,
	} {
		if _, err := parseColor(value); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidProfile, name, err)
		}
	}
	return nil
}

// Size はキャンバスの大きさを返す
func (p *Profile) Size() image.Point {
	return image.Pt(p.Width, p.Height)
}

// BackgroundColor は背景色を返す
func (p *Profile) BackgroundColor() color.Color {
	c, _ := parseColor(p.Background)
	return c
}

// StartState は起動直後のペン状態を返す
func (p *Profile) StartState() command.State {
	return p.state(p.Start)
}

// HomeState は reset で戻るペン状態を返す
// 塗りつぶしは常にオフ、色は黒
func (p *Profile) HomeState() command.State {
	home := command.DefaultState()
	home.Position = p.Home.Image()
	return home
}

func (p *Profile) state(at Point) command.State {
	pen, _ := parseColor(p.Pen)
	fill, _ := parseColor(p.Fill)
	return command.State{
		Position:  at.Image(),
		PenColor:  pen,
		FillColor: fill,
		Filling:   p.Filling,
	}
}

// parseColor は "red" / "#ff0000" / "255 0 0" 形式の色を解釈する
func parseColor(value string) (color.Color, error) {
	return command.ParseColor(strings.Fields(value))
}
