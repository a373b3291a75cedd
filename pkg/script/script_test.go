package script

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

const sample = "x = 1\nWhile x < 3\nmoveto 10 20\nEndloop"

func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("failed to create test file: %v", err)
	}
	return path
}

func TestLoad_UTF8(t *testing.T) {
	tmpDir := t.TempDir()
	path := writeFile(t, tmpDir, "demo.txt", []byte(sample))

	s, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if s.FileName != "demo.txt" {
		t.Errorf("expected filename 'demo.txt', got %q", s.FileName)
	}
	if s.Content != sample {
		t.Errorf("content mismatch: %q", s.Content)
	}
	if s.Encoding != EncodingUTF8 {
		t.Errorf("expected utf-8, got %s", s.Encoding)
	}
	if s.Compression != CompressionNone {
		t.Errorf("expected no compression, got %s", s.Compression)
	}
	if s.Size != int64(len(sample)) {
		t.Errorf("expected size %d, got %d", len(sample), s.Size)
	}
	if len(s.Lines()) != 4 {
		t.Errorf("expected 4 lines, got %d", len(s.Lines()))
	}
}

func TestLoad_UTF8BOM(t *testing.T) {
	tmpDir := t.TempDir()
	data := append([]byte{0xEF, 0xBB, 0xBF}, []byte(sample)...)
	path := writeFile(t, tmpDir, "bom.txt", data)

	s, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// BOMは取り除かれる
	if s.Content != sample {
		t.Errorf("content mismatch: %q", s.Content)
	}
}

func TestLoad_ShiftJIS(t *testing.T) {
	tmpDir := t.TempDir()
	text := "# 四角を描く\nrectangle 10 20"

	encoded, _, err := transform.String(japanese.ShiftJIS.NewEncoder(), text)
	if err != nil {
		t.Fatalf("failed to encode Shift-JIS: %v", err)
	}
	path := writeFile(t, tmpDir, "sjis.txt", []byte(encoded))

	t.Run("自動判定", func(t *testing.T) {
		s, err := Load(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if s.Encoding != EncodingShiftJIS {
			t.Errorf("expected shift_jis, got %s", s.Encoding)
		}
		if s.Content != text {
			t.Errorf("expected %q, got %q", text, s.Content)
		}
	})

	t.Run("明示指定", func(t *testing.T) {
		s, err := Load(path, WithEncoding(EncodingShiftJIS))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if s.Content != text {
			t.Errorf("expected %q, got %q", text, s.Content)
		}
	})
}

func TestLoad_UTF16(t *testing.T) {
	tmpDir := t.TempDir()

	encoded, _, err := transform.String(unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder(), sample)
	if err != nil {
		t.Fatalf("failed to encode UTF-16: %v", err)
	}
	path := writeFile(t, tmpDir, "wide.txt", []byte(encoded))

	s, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Encoding != EncodingUTF16 {
		t.Errorf("expected utf-16, got %s", s.Encoding)
	}
	if s.Content != sample {
		t.Errorf("content mismatch: %q", s.Content)
	}
}

func TestLoad_CaseInsensitive(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, tmpDir, "DEMO.TXT", []byte(sample))

	s, err := Load(filepath.Join(tmpDir, "demo.txt"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.FileName != "DEMO.TXT" {
		t.Errorf("expected actual filename 'DEMO.TXT', got %q", s.FileName)
	}
}

func TestLoad_Errors(t *testing.T) {
	tmpDir := t.TempDir()

	t.Run("存在しないファイル", func(t *testing.T) {
		_, err := Load(filepath.Join(tmpDir, "missing.txt"))
		if !errors.Is(err, os.ErrNotExist) {
			t.Errorf("expected os.ErrNotExist, got %v", err)
		}
	})

	t.Run("ディレクトリ", func(t *testing.T) {
		_, err := Load(tmpDir)
		if !errors.Is(err, ErrIsDirectory) {
			t.Errorf("expected ErrIsDirectory, got %v", err)
		}
	})

	t.Run("壊れたgzip", func(t *testing.T) {
		path := writeFile(t, tmpDir, "broken.gz", []byte("not gzip"))
		if _, err := Load(path); err == nil {
			t.Error("expected error for broken gzip")
		}
	})
}

func TestSaveAndLoad_Compression(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		want     Compression
	}{
		{"非圧縮", "plain.txt", CompressionNone},
		{"gzip", "packed.txt.gz", CompressionGzip},
		{"zstd", "packed.txt.zst", CompressionZstd},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tt.filename)
			if err := Save(path, sample); err != nil {
				t.Fatalf("save failed: %v", err)
			}

			s, err := Load(path)
			if err != nil {
				t.Fatalf("load failed: %v", err)
			}
			if s.Compression != tt.want {
				t.Errorf("expected %s, got %s", tt.want, s.Compression)
			}
			if s.Content != sample {
				t.Errorf("content mismatch: %q", s.Content)
			}
		})
	}
}

func TestLoad_CompressionByMagic(t *testing.T) {
	tmpDir := t.TempDir()
	packed := filepath.Join(tmpDir, "packed.zst")
	if err := Save(packed, sample); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	// 拡張子がなくてもマジックナンバーで判定する
	renamed := filepath.Join(tmpDir, "packed.txt")
	if err := os.Rename(packed, renamed); err != nil {
		t.Fatalf("rename failed: %v", err)
	}

	s, err := Load(renamed)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if s.Compression != CompressionZstd {
		t.Errorf("expected zstd, got %s", s.Compression)
	}
	if s.Content != sample {
		t.Errorf("content mismatch: %q", s.Content)
	}
}

func TestParseEncoding(t *testing.T) {
	tests := []struct {
		input   string
		want    Encoding
		wantErr bool
	}{
		{"", EncodingAuto, false},
		{"auto", EncodingAuto, false},
		{"UTF-8", EncodingUTF8, false},
		{"utf16", EncodingUTF16, false},
		{"sjis", EncodingShiftJIS, false},
		{"Shift_JIS", EncodingShiftJIS, false},
		{"latin1", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseEncoding(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownEncoding) {
					t.Errorf("expected ErrUnknownEncoding, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}
