package render

import (
	"fmt"
	"image/color"
)

// Palette is the list of colors used for consecutive curves.
var Palette = []color.RGBA{
	{0x1f, 0x77, 0xb4, 0xff},
	{0xff, 0x7f, 0x0e, 0xff},
	{0x2c, 0xa0, 0x2c, 0xff},
	{0xd6, 0x27, 0x28, 0xff},
	{0x94, 0x67, 0xbd, 0xff},
	{0x8c, 0x56, 0x4b, 0xff},
	{0xe3, 0x77, 0xc2, 0xff},
	{0x7f, 0x7f, 0x7f, 0xff},
}

// Hex parses a CSS hexadecimal color such as e.g. #ff0000 or F00. Colors with alpha are premultiplied.
func Hex(s string) (color.RGBA, error) {
	if 0 < len(s) && s[0] == '#' {
		s = s[1:]
	}
	h := make([]uint8, len(s))
	for i, c := range s {
		if '0' <= c && c <= '9' {
			h[i] = uint8(c - '0')
		} else if 'a' <= c && c <= 'f' {
			h[i] = 10 + uint8(c-'a')
		} else if 'A' <= c && c <= 'F' {
			h[i] = 10 + uint8(c-'A')
		} else {
			return color.RGBA{}, fmt.Errorf("bad color: %s", s)
		}
	}

	var r, g, b, a uint8
	switch len(s) {
	case 3, 4:
		r, g, b, a = h[0]*17, h[1]*17, h[2]*17, 0xff
		if len(s) == 4 {
			a = h[3] * 17
		}
	case 6, 8:
		r, g, b, a = h[0]*16+h[1], h[2]*16+h[3], h[4]*16+h[5], 0xff
		if len(s) == 8 {
			a = h[6]*16 + h[7]
		}
	default:
		return color.RGBA{}, fmt.Errorf("bad color: %s", s)
	}
	f := float64(a) / 255.0
	return color.RGBA{
		uint8(f*float64(r) + 0.5),
		uint8(f*float64(g) + 0.5),
		uint8(f*float64(b) + 0.5),
		a,
	}, nil
}

func hexColor(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
