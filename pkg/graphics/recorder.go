package graphics

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/zurustar/kame/pkg/command"
	"github.com/zurustar/kame/pkg/logger"
)

// Recorder はヘッドレスモード用のバックエンド
// 実際には描画せず、操作をログに記録して数える
type Recorder struct {
	log           *slog.Logger
	logOperations bool // 描画操作をログに記録するかどうか
	total         int
	mu            sync.RWMutex
}

// RecorderOption は Recorder のオプションを設定する関数型
type RecorderOption func(*Recorder)

// WithRecorderLogger はロガーを設定する
func WithRecorderLogger(log *slog.Logger) RecorderOption {
	return func(r *Recorder) {
		r.log = log
	}
}

// WithLogOperations は描画操作のログ記録を有効/無効にする
func WithLogOperations(enabled bool) RecorderOption {
	return func(r *Recorder) {
		r.logOperations = enabled
	}
}

// NewRecorder は新しいRecorderを作成する
func NewRecorder(opts ...RecorderOption) *Recorder {
	r := &Recorder{
		logOperations: true,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.log == nil {
		r.log = logger.GetLogger()
	}
	return r
}

// Render は図形の描画を記録する
func (r *Recorder) Render(p command.Primitive, style Style) error {
	args := []any{"kind", p.Kind.String()}
	for i, pt := range p.Points {
		args = append(args, fmt.Sprintf("p%d", i), pt)
	}
	if p.Kind == command.PrimitiveCircle {
		args = append(args, "radius", p.Radius)
	}
	if style.Filling {
		args = append(args, "fill", cssColor(style.Fill))
	} else {
		args = append(args, "pen", cssColor(style.Pen))
	}
	r.logOperation("Render", args...)
	return nil
}

// Clear は消去を記録する
func (r *Recorder) Clear() {
	r.logOperation("Clear")
}

// logOperation は描画操作をログに記録する
func (r *Recorder) logOperation(operation string, args ...any) {
	if r.logOperations {
		r.log.Debug(fmt.Sprintf("[Headless] %s", operation), args...)
	}

	r.mu.Lock()
	r.total++
	r.mu.Unlock()
}

// Total はこれまでに受けた操作の総数を返す
func (r *Recorder) Total() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.total
}
