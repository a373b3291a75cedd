// Package window はキャンバスをEbitengineのウィンドウに表示する。
// ウィンドウのゲームループがキャンバスのオーナーとなり、
// スクリプトからの描画要求を毎フレーム実行する。
package window

import (
	"fmt"
	"image"
	"image/color"
	"sync"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"

	"github.com/zurustar/kame/pkg/graphics"
)

// statusBarHeight はキャンバスの下に表示するステータス行の高さ
const statusBarHeight = 20

var (
	// ステータス行の背景色
	statusBackground = color.RGBA{0x20, 0x20, 0x20, 0xFF}
	// テキスト色（白）
	textColor = color.White
	// デフォルトフォント
	defaultFace = text.NewGoXFace(basicfont.Face7x13)
)

// Config はウィンドウの設定
type Config struct {
	Title   string               // ウィンドウタイトル
	Queue   *graphics.OwnerQueue // 描画要求のキュー
	Raster  *graphics.Raster     // 表示するキャンバスの画像
	Timeout time.Duration        // タイムアウト時間（0は無制限）
}

// Game はEbitengineのゲームインターフェースを実装する
type Game struct {
	title     string
	queue     *graphics.OwnerQueue
	raster    *graphics.Raster
	width     int
	height    int
	timeout   time.Duration
	startTime time.Time

	canvasImage *ebiten.Image
	dirty       bool

	// スクリプト実行の開始制御
	startFunc func() // 実行を開始する関数
	started   bool
	onExit    func() // ウィンドウを閉じるときに呼ばれる

	status string
	mu     sync.RWMutex
}

// NewGame Gameを作成
func NewGame(cfg Config) *Game {
	bounds := cfg.Raster.Image().Bounds()
	return &Game{
		title:     cfg.Title,
		queue:     cfg.Queue,
		raster:    cfg.Raster,
		width:     bounds.Dx(),
		height:    bounds.Dy(),
		timeout:   cfg.Timeout,
		startTime: time.Now(),
		dirty:     true,
		status:    "ready",
	}
}

// SetStartFunc はスクリプトの実行を開始する関数を設定する
// 最初のUpdate()で呼ばれるため、Ebitengineの初期化後に実行が始まる
func (g *Game) SetStartFunc(fn func()) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.startFunc = fn
}

// SetOnExit はウィンドウを閉じるときのコールバックを設定する
func (g *Game) SetOnExit(fn func()) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.onExit = fn
}

// SetStatus はステータス行の文字列を設定する（スレッドセーフ）
func (g *Game) SetStatus(status string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.status = status
}

// Status はステータス行の文字列を返す
func (g *Game) Status() string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.status
}

// Update ゲームロジックの更新（Ebitengineが毎フレーム呼び出す）
func (g *Game) Update() error {
	// タイムアウトチェック
	if g.timeout > 0 && time.Since(g.startTime) >= g.timeout {
		g.exit()
		return ebiten.Termination
	}

	// 開始関数はロックの外で呼ぶ（SetStatus 等を呼べるように）
	g.mu.Lock()
	var start func()
	if !g.started && g.startFunc != nil {
		g.started = true
		start = g.startFunc
	}
	g.mu.Unlock()
	if start != nil {
		start()
	}

	// Escキーで終了（1回だけ反応）
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.exit()
		return ebiten.Termination
	}

	// 描画要求をこのゴルーチンで実行する
	if g.queue != nil && g.queue.Drain() > 0 {
		g.dirty = true
	}

	return nil
}

func (g *Game) exit() {
	g.mu.RLock()
	onExit := g.onExit
	g.mu.RUnlock()
	if onExit != nil {
		onExit()
	}
}

// Draw 画面描画（Ebitengineが毎フレーム呼び出す）
func (g *Game) Draw(screen *ebiten.Image) {
	if g.canvasImage == nil {
		g.canvasImage = ebiten.NewImage(g.width, g.height)
		g.dirty = true
	}
	if g.dirty {
		g.canvasImage.WritePixels(g.raster.Image().Pix)
		g.dirty = false
	}
	screen.DrawImage(g.canvasImage, nil)

	// ステータス行
	bar := screen.SubImage(barRect(g.width, g.height)).(*ebiten.Image)
	bar.Fill(statusBackground)

	op := &text.DrawOptions{}
	op.GeoM.Translate(4, float64(g.height)+4)
	op.ColorScale.ScaleWithColor(textColor)
	text.Draw(screen, g.Status(), defaultFace, op)
}

// Layout 画面サイズを返す（キャンバスとステータス行）
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.width, g.height + statusBarHeight
}

// barRect はステータス行の領域を返す
func barRect(width, height int) image.Rectangle {
	return image.Rect(0, height, width, height+statusBarHeight)
}

// Run GUIモードでウィンドウを実行
func Run(game *Game) error {
	ebiten.SetWindowSize(game.Layout(0, 0))
	ebiten.SetWindowTitle(game.title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(game); err != nil {
		return fmt.Errorf("failed to run game: %w", err)
	}
	return nil
}
