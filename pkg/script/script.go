// Package script はタートルスクリプトの読み込みと保存を扱う。
package script

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/zurustar/kame/pkg/logger"
)

// Script はスクリプトファイルを表す
type Script struct {
	FileName    string      // ファイル名
	Path        string      // 実際に読み込んだパス
	Content     string      // UTF-8に変換された内容
	Size        int64       // ファイルサイズ（圧縮後）
	Encoding    Encoding    // 検出または指定された文字コード
	Compression Compression // 圧縮形式
}

// Lines は空行を除いた行の一覧を返す
func (s *Script) Lines() []string {
	return SplitLines(s.Content)
}

// Loader はスクリプトファイルの読み込みを行う
type Loader struct {
	encoding Encoding
	log      *slog.Logger
}

// Option はLoaderの設定を変更する
type Option func(*Loader)

// WithEncoding は文字コードを指定する（既定は自動判定）
func WithEncoding(enc Encoding) Option {
	return func(l *Loader) {
		l.encoding = enc
	}
}

// WithLogger はロガーを指定する
func WithLogger(log *slog.Logger) Option {
	return func(l *Loader) {
		l.log = log
	}
}

// NewLoader Loaderを作成
func NewLoader(opts ...Option) *Loader {
	l := &Loader{encoding: EncodingAuto}
	for _, opt := range opts {
		opt(l)
	}
	if l.log == nil {
		l.log = logger.GetLogger()
	}
	return l
}

// Load はパスを指定してスクリプトを読み込む
func Load(path string, opts ...Option) (*Script, error) {
	return NewLoader(opts...).Load(path)
}

// Load 単一のスクリプトファイルを読み込む
// 大文字小文字の違いは無視してファイルを探す
func (l *Loader) Load(path string) (*Script, error) {
	actual, err := resolvePath(path)
	if err != nil {
		return nil, err
	}

	// ファイル情報を取得
	info, err := os.Stat(actual)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrIsDirectory, actual)
	}

	// ファイルを読み込む
	raw, err := os.ReadFile(actual)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	comp := detectCompression(actual, raw)
	data, err := decompress(comp, raw)
	if err != nil {
		return nil, fmt.Errorf("failed to decompress %s: %w", comp, err)
	}

	content, enc, err := decode(data, l.encoding)
	if err != nil {
		return nil, fmt.Errorf("failed to convert encoding: %w", err)
	}

	l.log.Debug("Script loaded",
		"path", actual,
		"size", info.Size(),
		"encoding", enc,
		"compression", comp,
	)

	return &Script{
		FileName:    filepath.Base(actual),
		Path:        actual,
		Content:     content,
		Size:        info.Size(),
		Encoding:    enc,
		Compression: comp,
	}, nil
}

// Save はスクリプトをUTF-8で保存する
// 拡張子が .gz / .zst の場合は圧縮して書き込む
func Save(path, content string) error {
	comp := CompressionFor(path)
	data, err := compress(comp, []byte(content))
	if err != nil {
		return fmt.Errorf("failed to compress %s: %w", comp, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}
