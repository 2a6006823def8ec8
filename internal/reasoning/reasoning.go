// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package reasoning

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/jeranaias/textkit/internal/util"
)

// TagPair is the open/close marker pair around a reasoning block.
type TagPair struct {
	Open  string `toml:"open" json:"open"`
	Close string `toml:"close" json:"close"`
}

func (p TagPair) valid() bool {
	return p.Open != "" && p.Close != ""
}

// DefaultTags returns a fresh copy of the built-in pairs.
func DefaultTags() []TagPair {
	return []TagPair{
		{Open: "<think>", Close: "</think>"},
	}
}

// Strip removes the reasoning block marked by DefaultTags.
func Strip(text string) string {
	return StripWith(text, DefaultTags())
}

// StripWith removes the first reasoning block of each pair, in order, and
// trims the result.
//
// If a pair's open marker has no close marker after it, the block is still
// being generated (or was cut off) and StripWith returns "" rather than show
// partial reasoning.
//
// When the text before a removed block ends in white space, leading white
// space after the block is dropped, so "a <think>x</think> b" becomes "a b".
func StripWith(text string, tags []TagPair) string {
	for _, tag := range tags {
		if !tag.valid() {
			continue
		}
		start := strings.Index(text, tag.Open)
		if start < 0 {
			continue
		}
		end := strings.Index(text[start+len(tag.Open):], tag.Close)
		if end < 0 {
			return ""
		}
		end += start + len(tag.Open) + len(tag.Close)

		left, right := text[:start], text[end:]
		if r, _ := utf8.DecodeLastRuneInString(left); unicode.IsSpace(r) {
			right = strings.TrimLeftFunc(right, unicode.IsSpace)
		}
		text = left + right
	}
	return strings.TrimSpace(text)
}

// Reasoning returns the trimmed content of the first complete block, trying
// the pairs in order. It reports false when no pair has a complete block.
func Reasoning(text string, tags []TagPair) (string, bool) {
	for _, tag := range tags {
		if !tag.valid() {
			continue
		}
		if inner, ok := util.Slice(text, tag.Open, tag.Close); ok {
			return strings.TrimSpace(inner), true
		}
	}
	return "", false
}

// InProgress reports whether text ends inside a reasoning block: the last
// open marker of some pair has no close marker after it.
func InProgress(text string, tags []TagPair) bool {
	for _, tag := range tags {
		if !tag.valid() {
			continue
		}
		i := strings.LastIndex(text, tag.Open)
		if i >= 0 && !strings.Contains(text[i+len(tag.Open):], tag.Close) {
			return true
		}
	}
	return false
}
