package command

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// ParseColor parses the color forms accepted by the pen and fill
// commands: three 0-255 components, a CSS color name, or #rrggbb.
func ParseColor(args []string) (color.Color, error) {
	switch len(args) {
	case 1:
		return parseNamedColor(args[0])
	case 3:
		var rgb [3]uint8
		for i, a := range args {
			v, err := strconv.Atoi(a)
			if err != nil {
				return nil, fmt.Errorf("color component %q is not an integer", a)
			}
			if v < 0 || v > 255 {
				return nil, fmt.Errorf("color component %d out of range 0-255", v)
			}
			rgb[i] = uint8(v)
		}
		return color.RGBA{R: rgb[0], G: rgb[1], B: rgb[2], A: 0xFF}, nil
	default:
		return nil, fmt.Errorf("expected a color name or r g b, got %d argument(s)", len(args))
	}
}

func parseNamedColor(s string) (color.Color, error) {
	if strings.HasPrefix(s, "#") {
		hex := s[1:]
		if len(hex) != 6 {
			return nil, fmt.Errorf("invalid hex color %q", s)
		}
		v, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid hex color %q", s)
		}
		return color.RGBA{
			R: uint8(v >> 16),
			G: uint8(v >> 8),
			B: uint8(v),
			A: 0xFF,
		}, nil
	}
	if c, ok := colornames.Map[strings.ToLower(s)]; ok {
		return c, nil
	}
	return nil, fmt.Errorf("unknown color %q", s)
}
