package script

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// Compression はスクリプトファイルの圧縮形式
type Compression string

const (
	CompressionNone Compression = "none"
	CompressionGzip Compression = "gzip"
	CompressionZstd Compression = "zstd"
)

var (
	magicGzip = []byte{0x1F, 0x8B}
	magicZstd = []byte{0x28, 0xB5, 0x2F, 0xFD}
)

// CompressionFor は拡張子から圧縮形式を決める
func CompressionFor(path string) Compression {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gz":
		return CompressionGzip
	case ".zst":
		return CompressionZstd
	}
	return CompressionNone
}

// detectCompression は拡張子を優先し、なければ先頭のマジックナンバーで判定する
func detectCompression(path string, data []byte) Compression {
	if c := CompressionFor(path); c != CompressionNone {
		return c
	}
	switch {
	case bytes.HasPrefix(data, magicGzip):
		return CompressionGzip
	case bytes.HasPrefix(data, magicZstd):
		return CompressionZstd
	}
	return CompressionNone
}

func decompress(c Compression, data []byte) ([]byte, error) {
	switch c {
	case CompressionGzip:
		r, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		defer r.Close()
		return io.ReadAll(r)
	case CompressionZstd:
		r, err := zstd.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		defer r.Close()
		return io.ReadAll(r)
	case CompressionNone:
		return data, nil
	}
	return nil, fmt.Errorf("unsupported compression: %s", c)
}

func compress(c Compression, data []byte) ([]byte, error) {
	var buf bytes.Buffer
	switch c {
	case CompressionGzip:
		w := gzip.NewWriter(&buf)
		if _, err := w.Write(data); err != nil {
			return nil, err
		}
		if err := w.Close(); err != nil {
			return nil, err
		}
	case CompressionZstd:
		w, err := zstd.NewWriter(&buf)
		if err != nil {
			return nil, err
		}
		if _, err := w.Write(data); err != nil {
			w.Close()
			return nil, err
		}
		if err := w.Close(); err != nil {
			return nil, err
		}
	case CompressionNone:
		return data, nil
	default:
		return nil, fmt.Errorf("unsupported compression: %s", c)
	}
	return buf.Bytes(), nil
}
