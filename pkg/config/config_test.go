package config

import (
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	p := Default()

	if p.Size() != image.Pt(640, 480) {
		t.Errorf("expected 640x480, got %v", p.Size())
	}
	if p.StartState().Position != image.Pt(250, 150) {
		t.Errorf("expected start (250,150), got %v", p.StartState().Position)
	}
	if p.HomeState().Position != image.Pt(200, 150) {
		t.Errorf("expected home (200,150), got %v", p.HomeState().Position)
	}
	if p.StartState().Filling {
		t.Error("filling should be off by default")
	}
	if err := p.Validate(); err != nil {
		t.Errorf("default profile should be valid: %v", err)
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		check   func(t *testing.T, p *Profile)
		wantErr bool
	}{
		{
			name: "空のYAMLは既定値",
			yaml: "",
			check: func(t *testing.T, p *Profile) {
				if p.Width != 640 || p.Height != 480 {
					t.Errorf("expected defaults, got %dx%d", p.Width, p.Height)
				}
			},
		},
		{
			name: "一部の項目だけ上書き",
			yaml: "width: 800\nstart:\n  x: 10\n  y: 20\npen: red\n",
			check: func(t *testing.T, p *Profile) {
				if p.Width != 800 || p.Height != 480 {
					t.Errorf("expected 800x480, got %dx%d", p.Width, p.Height)
				}
				st := p.StartState()
				if st.Position != image.Pt(10, 20) {
					t.Errorf("expected start (10,20), got %v", st.Position)
				}
				r, g, b, _ := st.PenColor.RGBA()
				if r>>8 != 255 || g != 0 || b != 0 {
					t.Errorf("expected red pen, got %v", st.PenColor)
				}
			},
		},
		{
			name: "RGB指定の背景色",
			yaml: "background: 0 0 255\n",
			check: func(t *testing.T, p *Profile) {
				want := color.RGBA{B: 255, A: 255}
				if p.BackgroundColor() != want {
					t.Errorf("expected %v, got %v", want, p.BackgroundColor())
				}
			},
		},
		{
			name: "homeはペン色に影響されない",
			yaml: "pen: red\nfilling: true\nhome:\n  x: 1\n  y: 2\n",
			check: func(t *testing.T, p *Profile) {
				home := p.HomeState()
				if home.Position != image.Pt(1, 2) {
					t.Errorf("expected home (1,2), got %v", home.Position)
				}
				if home.Filling {
					t.Error("home state should have filling off")
				}
				if home.PenColor != color.Black {
					t.Errorf("expected black pen, got %v", home.PenColor)
				}
			},
		},
		{name: "未知の項目", yaml: "colour: red\n", wantErr: true},
		{name: "不正なサイズ", yaml: "width: 0\n", wantErr: true},
		{name: "大きすぎる幅", yaml: "width: 100000\n", wantErr: true},
		{name: "大きすぎる高さ", yaml: "height: 4097\n", wantErr: true},
		{
			name: "上限ちょうど",
			yaml: "width: 4096\nheight: 4096\n",
			check: func(t *testing.T, p *Profile) {
				if p.Size() != image.Pt(MaxCanvasSize, MaxCanvasSize) {
					t.Errorf("expected %dx%d, got %v", MaxCanvasSize, MaxCanvasSize, p.Size())
				}
			},
		},
		{name: "不正な色", yaml: "pen: nosuchcolor\n", wantErr: true},
		{name: "YAMLの構文エラー", yaml: "width: [\n", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Parse([]byte(tt.yaml))
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			tt.check(t, p)
		})
	}
}

func TestValidate_WrapsSentinel(t *testing.T) {
	for _, size := range []image.Point{{640, -1}, {MaxCanvasSize + 1, 480}, {100000, 100000}} {
		p := Default()
		p.Width, p.Height = size.X, size.Y
		if err := p.Validate(); !errors.Is(err, ErrInvalidProfile) {
			t.Errorf("%v: expected ErrInvalidProfile, got %v", size, err)
		}
	}
}

func TestLoad(t *testing.T) {
	tmpDir := t.TempDir()

	t.Run("ファイルから読み込み", func(t *testing.T) {
		path := filepath.Join(tmpDir, "canvas.yaml")
		if err := os.WriteFile(path, []byte("title: demo\nheight: 300\n"), 0644); err != nil {
			t.Fatalf("failed to write profile: %v", err)
		}
		p, err := Load(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p.Title != "demo" || p.Height != 300 {
			t.Errorf("unexpected profile: %+v", p)
		}
	})

	t.Run("存在しないファイル", func(t *testing.T) {
		_, err := Load(filepath.Join(tmpDir, "missing.yaml"))
		if !errors.Is(err, os.ErrNotExist) {
			t.Errorf("expected os.ErrNotExist, got %v", err)
		}
	})
}
