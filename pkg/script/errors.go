package script

import "errors"

var (
	// ErrIsDirectory はスクリプトとしてディレクトリが指定された場合のエラー
	ErrIsDirectory = errors.New("path is a directory")

	// ErrUnknownEncoding は未対応の文字コード名が指定された場合のエラー
	ErrUnknownEncoding = errors.New("unknown encoding")
)
