// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package util

import (
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// UNICODE: "Character" in this package means a user-perceived character
// (an extended grapheme cluster), not a byte or a rune. "é" and a
// flag emoji are one character each, so offsets never split them.

// Length returns the number of characters (grapheme clusters) in s.
func Length(s string) int {
	return uniseg.GraphemeClusterCount(s)
}

// graphemes splits s into its grapheme clusters.
func graphemes(s string) []string {
	if s == "" {
		return nil
	}
	out := make([]string, 0, len(s))
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		out = append(out, g.Str())
	}
	return out
}

// Substring returns the characters in [start, end). Both bounds are clamped
// to [0, Length(s)]; an empty or inverted range yields "".
func Substring(s string, start, end int) string {
	chars := graphemes(s)
	n := len(chars)
	start = max(0, min(n, start))
	end = min(n, max(0, end))
	if start >= end {
		return ""
	}
	return joinChars(chars[start:end])
}

// SubstringFrom returns everything from character index i to the end.
func SubstringFrom(s string, i int) string {
	return Substring(s, i, Length(s))
}

// SubstringTo returns the first i characters of s.
func SubstringTo(s string, i int) string {
	return Substring(s, 0, i)
}

// CharAt returns the character at index i, or "" when i is out of range.
func CharAt(s string, i int) string {
	return Substring(s, i, i+1)
}

func joinChars(chars []string) string {
	size := 0
	for _, c := range chars {
		size += len(c)
	}
	buf := make([]byte, 0, size)
	for _, c := range chars {
		buf = append(buf, c...)
	}
	return string(buf)
}

// TruncateRunes truncates a string to a maximum number of runes (characters).
// This is safe for UTF-8 strings as it counts characters, not bytes.
// If the string is truncated, "..." is appended.
func TruncateRunes(s string, maxRunes int) string {
	if maxRunes <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= maxRunes {
		return s
	}
	if maxRunes <= 3 {
		return string(runes[:maxRunes])
	}
	return string(runes[:maxRunes-3]) + "..."
}

// TruncateWidth truncates a string to a maximum display width, counting
// East Asian wide characters as two columns. The "..." tail is included in
// the width budget.
func TruncateWidth(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= maxWidth {
		return s
	}
	if maxWidth < 3 {
		return runewidth.Truncate(s, maxWidth, "")
	}
	return runewidth.Truncate(s, maxWidth, "...")
}

// StringWidth returns the display width of a string in terminal columns.
func StringWidth(s string) int {
	return runewidth.StringWidth(s)
}
