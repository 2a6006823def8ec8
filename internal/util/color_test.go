// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package util

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const channelDelta = 1e-9

func assertColor(t *testing.T, want, got Color) {
	t.Helper()
	assert.InDelta(t, want.R, got.R, channelDelta, "red")
	assert.InDelta(t, want.G, got.G, channelDelta, "green")
	assert.InDelta(t, want.B, got.B, channelDelta, "blue")
	assert.InDelta(t, want.A, got.A, channelDelta, "alpha")
}

func TestHexToColor(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected Color
	}{
		{"red half alpha", "#FF000080", Color{R: 1, G: 0, B: 0, A: 0x80 / 255.0}},
		{"no hash", "00FF00FF", Color{G: 1, A: 1}},
		{"lower case", "#0000ffff", Color{B: 1, A: 1}},
		{"surrounding space", "  #FFFFFFFF\n", Color{R: 1, G: 1, B: 1, A: 1}},
		{"hash anywhere", "#FF#0000#FF", Color{R: 1, A: 1}},
		{"0x prefix", "0x11223344", Color{R: 0x11 / 255.0, G: 0x22 / 255.0, B: 0x33 / 255.0, A: 0x44 / 255.0}},
		// Six digits are read as a 32-bit value, so red lands in green.
		{"six digits", "#FF0000", Color{G: 1, B: 0, A: 0}},
		{"trailing junk ignored", "#FF0000FFzz", Color{R: 1, A: 1}},
		// Malformed input degrades to all-zero channels, alpha included.
		{"not hex", "#GGHHII", Color{}},
		{"empty", "", Color{}},
		{"overflow saturates", "FFFFFFFFFFFFFFFFFF", Color{R: 1, G: 1, B: 1, A: 1}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assertColor(t, tc.expected, HexToColor(tc.input))
		})
	}
}

func TestParseHexColor(t *testing.T) {
	c, err := ParseHexColor("#FF000080")
	require.NoError(t, err)
	assertColor(t, Color{R: 1, A: 0x80 / 255.0}, c)

	c, err = ParseHexColor("7D56F4")
	require.NoError(t, err)
	assertColor(t, Color{R: 0x7D / 255.0, G: 0x56 / 255.0, B: 0xF4 / 255.0, A: 1}, c)

	for _, bad := range []string{"", "#", "#FFF", "#GGHHII", "#FF0000FFzz", "##FF0000", "FF 00 00"} {
		_, err := ParseHexColor(bad)
		require.Error(t, err, "input %q", bad)
		assert.True(t, errors.Is(err, ErrInvalidHex), "input %q", bad)
	}
}

func TestColorHex(t *testing.T) {
	c := HexToColor("#7D56F480")
	assert.Equal(t, "#7D56F480", c.Hex())
	assert.Equal(t, "#7D56F4", c.RGBHex())

	assert.Equal(t, "#00000000", Color{}.Hex())
	assert.Equal(t, "#FFFFFFFF", Color{R: 2, G: 1, B: 1.5, A: 1}.Hex(), "channels clamp to 1")
}
