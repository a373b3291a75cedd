package graphics

import (
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
)

// Format はスナップショットの形式
type Format string

const (
	FormatPNG Format = "png"
	FormatBMP Format = "bmp"
	FormatSVG Format = "svg"
)

// FormatFor は拡張子からスナップショットの形式を決める
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return FormatPNG, nil
	case ".bmp":
		return FormatBMP, nil
	case ".svg":
		return FormatSVG, nil
	}
	return "", fmt.Errorf("%w: %q (use .png, .bmp or .svg)", ErrUnsupportedFormat, filepath.Ext(path))
}

// SaveSnapshot はキャンバスの内容をファイルに保存する
// PNG/BMP には raster、SVG には vector が必要
func SaveSnapshot(path string, raster *Raster, vector *SVGRecorder) error {
	format, err := FormatFor(path)
	if err != nil {
		return err
	}

	switch format {
	case FormatPNG, FormatBMP:
		if raster == nil {
			return fmt.Errorf("%w: %s", ErrNoBackend, format)
		}
	case FormatSVG:
		if vector == nil {
			return fmt.Errorf("%w: %s", ErrNoBackend, format)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create snapshot: %w", err)
	}

	switch format {
	case FormatPNG:
		err = png.Encode(f, raster.Image())
	case FormatBMP:
		err = bmp.Encode(f, raster.Image())
	case FormatSVG:
		err = vector.Encode(f)
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("failed to write %s snapshot: %w", format, err)
	}
	return nil
}
