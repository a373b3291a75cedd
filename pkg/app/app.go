// Package app はコマンドライン引数からスクリプトの実行までをまとめる。
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/zurustar/kame/pkg/cli"
	"github.com/zurustar/kame/pkg/config"
	"github.com/zurustar/kame/pkg/graphics"
	"github.com/zurustar/kame/pkg/interp"
	"github.com/zurustar/kame/pkg/logger"
	"github.com/zurustar/kame/pkg/script"
	"github.com/zurustar/kame/pkg/window"
)

// ErrScriptHalted はスクリプトが致命的なエラーで停止した場合のエラー
var ErrScriptHalted = errors.New("script halted")

// Application はアプリケーションのメインロジックを管理する
type Application struct {
	config  *cli.Config
	log     *slog.Logger
	profile *config.Profile
	stdout  io.Writer
	stderr  io.Writer

	// runWindow はウィンドウを表示する関数（テストで差し替える）
	runWindow func(*window.Game) error

	result interp.Result
}

// Option は Application のオプションを設定する関数型
type Option func(*Application)

// WithOutput は標準出力と標準エラー出力の書き込み先を設定する
func WithOutput(stdout, stderr io.Writer) Option {
	return func(app *Application) {
		app.stdout = stdout
		app.stderr = stderr
	}
}

// WithWindowRunner はウィンドウの実行方法を設定する
func WithWindowRunner(run func(*window.Game) error) Option {
	return func(app *Application) {
		app.runWindow = run
	}
}

// New Applicationを作成
func New(opts ...Option) *Application {
	app := &Application{
		stdout:    os.Stdout,
		stderr:    os.Stderr,
		runWindow: window.Run,
	}
	for _, opt := range opts {
		opt(app)
	}
	return app
}

// Result は最後の実行結果を返す
func (app *Application) Result() interp.Result {
	return app.result
}

// Run アプリケーションを実行
func (app *Application) Run(args []string) error {
	// 1. コマンドライン引数の解析
	config, err := cli.ParseArgs(args)
	if err != nil {
		return fmt.Errorf("failed to parse args: %w", err)
	}
	app.config = config

	if app.config.ShowHelp {
		cli.WriteHelp(app.stdout)
		return nil
	}

	// 2. ロガーの初期化
	if err := logger.InitLoggerWithWriter(app.config.LogLevel, app.stdout); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	app.log = logger.GetLogger()

	app.log.Info("Application started", "script", app.config.ScriptPath, "headless", app.config.Headless)

	// 3. キャンバス設定の読み込み
	if err := app.loadProfile(); err != nil {
		return fmt.Errorf("failed to load canvas profile: %w", err)
	}

	// 4. スクリプトの読み込み
	s, err := script.Load(app.config.ScriptPath,
		script.WithEncoding(app.config.Encoding),
		script.WithLogger(app.log),
	)
	if err != nil {
		return fmt.Errorf("failed to load script: %w", err)
	}
	app.log.Info("Script loaded", "name", s.FileName, "size", s.Size, "encoding", s.Encoding, "compression", s.Compression)

	// 読み込んだスクリプトを UTF-8 で書き出す
	if app.config.SaveScript != "" {
		if err := script.Save(app.config.SaveScript, s.Content); err != nil {
			return fmt.Errorf("failed to save script: %w", err)
		}
		app.log.Info("Script saved", "path", app.config.SaveScript, "compression", script.CompressionFor(app.config.SaveScript))
	}

	// 5. キャンバスの構築
	b, err := app.newBackends()
	if err != nil {
		return fmt.Errorf("failed to create canvas: %w", err)
	}

	// 6. 実行（タイムアウトと割り込みで打ち切る）
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if app.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, app.config.Timeout)
		defer cancel()
	}

	var result interp.Result
	if app.config.Headless {
		result = app.runHeadless(ctx, b, s)
	} else {
		result, err = app.runDesktop(ctx, b, s)
		if err != nil {
			return err
		}
	}
	app.result = result
	app.logSummary(result)

	// 7. スナップショットの保存
	if app.config.Output != "" {
		if err := graphics.SaveSnapshot(app.config.Output, b.raster, b.vector); err != nil {
			return fmt.Errorf("failed to save snapshot: %w", err)
		}
		app.log.Info("Snapshot saved", "path", app.config.Output)
	}

	if result.Status == interp.StatusHalted {
		return fmt.Errorf("%w: %v", ErrScriptHalted, result.Err)
	}

	app.log.Info("Application terminated normally")
	return nil
}

// loadProfile キャンバス設定を読み込む（未指定なら既定値）
func (app *Application) loadProfile() error {
	if app.config.ConfigPath == "" {
		app.profile = config.Default()
		return nil
	}
	profile, err := config.Load(app.config.ConfigPath)
	if err != nil {
		return err
	}
	app.profile = profile
	app.log.Info("Canvas profile loaded", "path", app.config.ConfigPath, "width", profile.Width, "height", profile.Height)
	return nil
}

// logSummary 実行結果をログに出力
func (app *Application) logSummary(result interp.Result) {
	args := []any{
		"status", result.Status,
		"pc", result.PC,
		"lines", result.Lines,
		"steps", result.Steps,
		"passes", result.Passes,
		"variables", result.Variables,
		"reported", result.Reported,
	}
	if result.Err != nil {
		args = append(args, "error", result.Err)
	}

	if result.Status == interp.StatusHalted {
		app.log.Error("Script halted", args...)
		return
	}
	app.log.Info("Script finished", args...)
}
