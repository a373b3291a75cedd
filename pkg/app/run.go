package app

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/zurustar/kame/pkg/graphics"
	"github.com/zurustar/kame/pkg/interp"
	"github.com/zurustar/kame/pkg/script"
	"github.com/zurustar/kame/pkg/window"
)

// backends はキャンバスと描画バックエンドの組
type backends struct {
	canvas   *graphics.Canvas
	raster   *graphics.Raster
	vector   *graphics.SVGRecorder
	recorder *graphics.Recorder
}

// newBackends キャンバスを作成し、ラスタ・SVG（・ヘッドレス時は記録）を登録する
func (app *Application) newBackends() (*backends, error) {
	p := app.profile
	b := &backends{
		raster: graphics.NewRaster(p.Width, p.Height, p.BackgroundColor()),
		vector: graphics.NewSVGRecorder(p.Width, p.Height, p.BackgroundColor()),
	}

	opts := []graphics.CanvasOption{
		graphics.WithStartState(p.StartState()),
		graphics.WithBackground(p.BackgroundColor()),
		graphics.WithRenderer(b.raster),
		graphics.WithRenderer(b.vector),
		graphics.WithCanvasLogger(app.log),
	}
	if app.config.Headless {
		b.recorder = graphics.NewRecorder(graphics.WithRecorderLogger(app.log))
		opts = append(opts, graphics.WithRenderer(b.recorder))
	}

	canvas, err := graphics.NewCanvas(p.Width, p.Height, opts...)
	if err != nil {
		return nil, err
	}
	b.canvas = canvas
	return b, nil
}

// executorOptions はインタプリタの共通オプション
func (app *Application) executorOptions(owner interp.Owner) []interp.Option {
	sink := interp.MultiSink{
		interp.LogSink{Log: app.log},
		NewConsoleSink(app.stderr),
	}

	opts := []interp.Option{
		interp.WithOwner(owner),
		interp.WithErrorSink(sink),
		interp.WithHome(app.profile.HomeState()),
		interp.WithLogger(app.log),
	}
	if app.config.PassDelay > 0 {
		opts = append(opts, interp.WithPassHook(passDelay(app.config.PassDelay)))
	}
	return opts
}

// passDelay は While の1周ごとに待つフックを返す
func passDelay(d time.Duration) interp.PassHook {
	return func(ctx context.Context, pass int, store *interp.Store) {
		t := time.NewTimer(d)
		defer t.Stop()
		select {
		case <-t.C:
		case <-ctx.Done():
		}
	}
}

// runHeadless ヘッドレスモードで実行（呼び出し元のゴルーチンで直接描画）
func (app *Application) runHeadless(ctx context.Context, b *backends, s *script.Script) interp.Result {
	app.log.Info("Headless mode: running without window")

	exec := interp.New(b.canvas, app.executorOptions(interp.DirectOwner{})...)
	result := exec.Run(ctx, s.Content)

	if b.recorder != nil {
		app.log.Info("Headless operations recorded", "count", b.recorder.Total())
	}
	return result
}

// runDesktop ウィンドウを表示して実行
// 描画はウィンドウのゲームループ上で行い、スクリプトは別のゴルーチンで進める
func (app *Application) runDesktop(ctx context.Context, b *backends, s *script.Script) (interp.Result, error) {
	app.log.Info("Starting window")

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	queue := graphics.NewOwnerQueue()
	game := window.NewGame(window.Config{
		Title:   fmt.Sprintf("%s - %s", app.profile.Title, s.FileName),
		Queue:   queue,
		Raster:  b.raster,
		Timeout: app.config.Timeout,
	})
	game.SetOnExit(cancel)

	exec := interp.New(b.canvas, app.executorOptions(queue)...)

	var started atomic.Bool
	resultCh := make(chan interp.Result, 1)
	game.SetStartFunc(func() {
		started.Store(true)
		game.SetStatus("running")
		go func() {
			result := exec.Run(ctx, s.Content)
			game.SetStatus(statusLine(result))
			resultCh <- result
		}()
	})

	err := app.runWindow(game)
	cancel()

	if !started.Load() {
		if err != nil {
			return interp.Result{}, err
		}
		return interp.Result{Status: interp.StatusCanceled, Err: context.Canceled}, nil
	}

	result := <-resultCh
	return result, err
}

// statusLine はステータス行に表示する文字列を返す
func statusLine(result interp.Result) string {
	line := fmt.Sprintf("%s  line %d/%d  passes %d  errors %d",
		result.Status, result.PC, result.Lines, result.Passes, result.Reported)
	if result.Status != interp.StatusCanceled {
		line += "  (ESC to close)"
	}
	return line
}
