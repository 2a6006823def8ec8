// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package util

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// =============================================================================
// FIXED-WIDTH GROUPING
// =============================================================================

// GroupEvery splits s into consecutive groups of n characters. Groups are
// formed left to right and the last group may be shorter; with backwards
// set they are formed right to left, so the first group holds the
// remainder. Joining the groups always gives back s.
func GroupEvery(s string, n int, backwards bool) ([]string, error) {
	if n <= 0 {
		return nil, fmt.Errorf("group width %d: %w", n, ErrInvalidArgument)
	}

	chars := graphemes(s)
	groups := make([]string, 0, (len(chars)+n-1)/n)
	if len(chars) == 0 {
		return groups, nil
	}

	start := 0
	if backwards {
		head := len(chars) % n
		if head > 0 {
			groups = append(groups, joinChars(chars[:head]))
			start = head
		}
	}
	for i := start; i < len(chars); i += n {
		groups = append(groups, joinChars(chars[i:min(i+n, len(chars))]))
	}
	return groups, nil
}

// =============================================================================
// SUBSTRING-RELATIVE OPERATIONS
// =============================================================================

// Slice returns the text strictly between the first occurrence of from and
// the first occurrence of to after it. ok is false when either marker is
// missing or empty.
func Slice(s, from, to string) (string, bool) {
	if from == "" || to == "" {
		return "", false
	}
	i := strings.Index(s, from)
	if i < 0 {
		return "", false
	}
	rest := s[i+len(from):]
	j := strings.Index(rest, to)
	if j < 0 {
		return "", false
	}
	return rest[:j], true
}

// TrimOptions controls DropPreceding and DropFollowing.
type TrimOptions struct {
	// IncludeMatch keeps the located substring in the result.
	IncludeMatch bool
	// IgnoreCase locates the substring with Unicode case folding.
	IgnoreCase bool
}

// DropPreceding removes everything before the first occurrence of sub.
// Without IncludeMatch the match itself is removed as well. s is returned
// unchanged when sub does not occur.
func DropPreceding(s, sub string, opts TrimOptions) string {
	start, end, ok := locate(s, sub, opts.IgnoreCase)
	if !ok {
		return s
	}
	if opts.IncludeMatch {
		return s[start:]
	}
	return s[end:]
}

// DropFollowing removes everything after the first occurrence of sub.
// Without IncludeMatch the match itself is removed as well. s is returned
// unchanged when sub does not occur.
func DropFollowing(s, sub string, opts TrimOptions) string {
	start, end, ok := locate(s, sub, opts.IgnoreCase)
	if !ok {
		return s
	}
	if opts.IncludeMatch {
		return s[:end]
	}
	return s[:start]
}

// locate returns the byte range of the first occurrence of sub in s.
func locate(s, sub string, ignoreCase bool) (int, int, bool) {
	if sub == "" {
		return 0, 0, false
	}
	if !ignoreCase {
		i := strings.Index(s, sub)
		if i < 0 {
			return 0, 0, false
		}
		return i, i + len(sub), true
	}

	for i := range s {
		if end, ok := hasFoldPrefix(s[i:], sub); ok {
			return i, i + end, true
		}
	}
	return 0, 0, false
}

// hasFoldPrefix reports whether s starts with prefix under case folding and
// returns the byte length of the matching part of s.
func hasFoldPrefix(s, prefix string) (int, bool) {
	j := 0
	for _, want := range prefix {
		if j >= len(s) {
			return 0, false
		}
		got, size := utf8.DecodeRuneInString(s[j:])
		if got != want && !strings.EqualFold(string(got), string(want)) {
			return 0, false
		}
		j += size
	}
	return j, true
}

// =============================================================================
// SMALL REPAIRS
// =============================================================================

// RepairTrailingQuote removes the final double quote when s ends in one and
// its double quotes are unbalanced. Any other input is returned unchanged.
func RepairTrailingQuote(s string) string {
	if !strings.HasSuffix(s, `"`) {
		return s
	}
	if strings.Count(s, `"`)%2 == 0 {
		return s
	}
	return s[:len(s)-1]
}

// StripEnclosing removes one c from each end of s when s both starts and
// ends with c. Only one layer is removed.
func StripEnclosing(s string, c rune) string {
	mark := string(c)
	if !strings.HasPrefix(s, mark) || !strings.HasSuffix(s, mark) {
		return s
	}
	if len(s) == len(mark) {
		return ""
	}
	return s[len(mark) : len(s)-len(mark)]
}

// ReplaceSuffix replaces suffix with replacement when s ends with suffix.
func ReplaceSuffix(s, suffix, replacement string) string {
	if !strings.HasSuffix(s, suffix) {
		return s
	}
	return s[:len(s)-len(suffix)] + replacement
}
