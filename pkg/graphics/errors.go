package graphics

import "errors"

var (
	// ErrInvalidSize はキャンバスのサイズが不正な場合のエラー
	ErrInvalidSize = errors.New("invalid canvas size")

	// ErrInvalidPrimitive は図形の座標や半径が不正な場合のエラー
	ErrInvalidPrimitive = errors.New("invalid primitive")

	// ErrUnsupportedFormat はスナップショットの形式に対応していない場合のエラー
	ErrUnsupportedFormat = errors.New("unsupported snapshot format")

	// ErrNoBackend はスナップショットに必要なバックエンドがない場合のエラー
	ErrNoBackend = errors.New("no backend for snapshot format")
)
