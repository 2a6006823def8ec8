// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package util

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Color is an RGBA color with every channel in [0, 1].
type Color struct {
	R, G, B, A float64
}

// HexToColor decodes s as a 32-bit 0xRRGGBBAA value. It is lenient: white
// space and every '#' are removed, then the leading run of hex digits is
// read and anything after it is ignored. Input without hex digits decodes
// to all-zero channels, including alpha. Use ParseHexColor to reject
// malformed input instead.
func HexToColor(s string) Color {
	s = strings.ReplaceAll(strings.TrimSpace(s), "#", "")
	return colorFromUint32(uint32(scanHex(s)))
}

// ParseHexColor parses "#RRGGBB" or "#RRGGBBAA" (the '#' is optional).
// Six-digit colors are opaque.
func ParseHexColor(s string) (Color, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 && len(hex) != 8 {
		return Color{}, fmt.Errorf("%q: %w", s, ErrInvalidHex)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("%q: %w", s, ErrInvalidHex)
	}
	if len(hex) == 6 {
		v = v<<8 | 0xFF
	}
	return colorFromUint32(uint32(v)), nil
}

// Hex formats c as "#RRGGBBAA".
func (c Color) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X%02X", channel(c.R), channel(c.G), channel(c.B), channel(c.A))
}

// RGBHex formats c as "#RRGGBB", dropping alpha.
func (c Color) RGBHex() string {
	return fmt.Sprintf("#%02X%02X%02X", channel(c.R), channel(c.G), channel(c.B))
}

func colorFromUint32(v uint32) Color {
	return Color{
		R: float64(v>>24&0xFF) / 255.0,
		G: float64(v>>16&0xFF) / 255.0,
		B: float64(v>>8&0xFF) / 255.0,
		A: float64(v&0xFF) / 255.0,
	}
}

func channel(f float64) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(1, f)) * 255))
}

// scanHex reads the leading hex digits of s, accepting an optional 0x
// prefix. Values too large for 64 bits saturate.
func scanHex(s string) uint64 {
	if len(s) > 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') && isHexDigit(s[2]) {
		s = s[2:]
	}
	var v uint64
	for i := 0; i < len(s) && isHexDigit(s[i]); i++ {
		if v > math.MaxUint64>>4 {
			return math.MaxUint64
		}
		v = v<<4 | uint64(hexValue(s[i]))
	}
	return v
}

func isHexDigit(b byte) bool {
	return ('0' <= b && b <= '9') || ('a' <= b && b <= 'f') || ('A' <= b && b <= 'F')
}

func hexValue(b byte) byte {
	switch {
	case '0' <= b && b <= '9':
		return b - '0'
	case 'a' <= b && b <= 'f':
		return b - 'a' + 10
	default:
		return b - 'A' + 10
	}
}
