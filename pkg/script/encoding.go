package script

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Encoding はスクリプトの文字コード
type Encoding string

const (
	EncodingAuto     Encoding = "auto"
	EncodingUTF8     Encoding = "utf-8"
	EncodingUTF16    Encoding = "utf-16"
	EncodingShiftJIS Encoding = "shift_jis"
)

// ParseEncoding は文字コード名を解釈する
func ParseEncoding(name string) (Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "auto":
		return EncodingAuto, nil
	case "utf-8", "utf8":
		return EncodingUTF8, nil
	case "utf-16", "utf16":
		return EncodingUTF16, nil
	case "shift_jis", "shift-jis", "sjis":
		return EncodingShiftJIS, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownEncoding, name)
}

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// decode はバイト列をUTF-8文字列に変換し、使用した文字コードを返す
func decode(data []byte, enc Encoding) (string, Encoding, error) {
	switch enc {
	case EncodingUTF8:
		return string(bytes.TrimPrefix(data, bomUTF8)), EncodingUTF8, nil
	case EncodingUTF16:
		s, err := decodeWith(data, unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder())
		return s, EncodingUTF16, err
	case EncodingShiftJIS:
		s, err := convertShiftJISToUTF8(data)
		return s, EncodingShiftJIS, err
	case EncodingAuto, "":
		return decodeAuto(data)
	}
	return "", "", fmt.Errorf("%w: %s", ErrUnknownEncoding, enc)
}

// decodeAuto はBOMとUTF-8の妥当性から文字コードを判定する
// どちらにも当てはまらなければShift-JISとみなす
func decodeAuto(data []byte) (string, Encoding, error) {
	switch {
	case bytes.HasPrefix(data, bomUTF8):
		s, err := decodeWith(data, unicode.BOMOverride(transform.Nop))
		return s, EncodingUTF8, err
	case bytes.HasPrefix(data, bomUTF16LE), bytes.HasPrefix(data, bomUTF16BE):
		s, err := decodeWith(data, unicode.BOMOverride(transform.Nop))
		return s, EncodingUTF16, err
	case utf8.Valid(data):
		return string(data), EncodingUTF8, nil
	}
	s, err := convertShiftJISToUTF8(data)
	return s, EncodingShiftJIS, err
}

func decodeWith(data []byte, t transform.Transformer) (string, error) {
	out, _, err := transform.Bytes(t, data)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// convertShiftJISToUTF8 Shift-JISからUTF-8に変換
func convertShiftJISToUTF8(data []byte) (string, error) {
	reader := transform.NewReader(bytes.NewReader(data), japanese.ShiftJIS.NewDecoder())

	utf8Data, err := io.ReadAll(reader)
	if err != nil {
		return "", fmt.Errorf("failed to decode Shift-JIS: %w", err)
	}

	return string(utf8Data), nil
}
