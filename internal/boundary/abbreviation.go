// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package boundary

import (
	"iter"
	"strings"
	"unicode"
	"unicode/utf8"
)

// defaultAbbreviations are lower-cased tokens that end in a period without
// ending a sentence.
var defaultAbbreviations = []string{
	"mr.", "mrs.", "ms.", "dr.", "prof.",
	"sr.", "jr.", "st.", "vs.", "etc.", "e.g.", "i.e.", "cf.", "approx.",
	"inc.", "ltd.", "co.", "corp.",
	"jan.", "feb.", "mar.", "apr.", "jun.", "jul.", "aug.", "sep.", "sept.", "oct.", "nov.", "dec.",
	"rd.", "ave.", "blvd.",
	"no.", "vol.", "pp.", "pg.", "fig.", "eq.",
}

// DefaultAbbreviations returns a copy of the built-in abbreviation list.
func DefaultAbbreviations() []string {
	return append([]string(nil), defaultAbbreviations...)
}

// AbbreviationSplitter refines UAX #29 boundaries: a segment that ends in a
// known abbreviation or a single capital initial ("J.") is joined with the
// segment that follows it.
type AbbreviationSplitter struct {
	abbreviations map[string]struct{}
}

// NewAbbreviationSplitter builds a splitter for the given abbreviations
// (matched case-insensitively, trailing period included). A nil list uses
// DefaultAbbreviations.
func NewAbbreviationSplitter(abbreviations []string) *AbbreviationSplitter {
	if abbreviations == nil {
		abbreviations = defaultAbbreviations
	}
	set := make(map[string]struct{}, len(abbreviations))
	for _, a := range abbreviations {
		set[strings.ToLower(strings.TrimSpace(a))] = struct{}{}
	}
	return &AbbreviationSplitter{abbreviations: set}
}

// Sentences implements SentenceSplitter.
func (s *AbbreviationSplitter) Sentences(text string) iter.Seq[string] {
	return func(yield func(string) bool) {
		var pending strings.Builder
		for seg := range segments(text) {
			pending.WriteString(seg)
			if s.continues(seg) {
				continue
			}
			if !yield(strings.TrimSpace(pending.String())) {
				return
			}
			pending.Reset()
		}
		if pending.Len() > 0 {
			yield(strings.TrimSpace(pending.String()))
		}
	}
}

// continues reports whether the sentence break after seg is a false
// positive caused by an abbreviation.
func (s *AbbreviationSplitter) continues(seg string) bool {
	seg = strings.TrimRightFunc(seg, unicode.IsSpace)
	if !strings.HasSuffix(seg, ".") {
		return false
	}

	word := seg
	if i := strings.LastIndexFunc(seg, unicode.IsSpace); i >= 0 {
		word = seg[i+1:]
	}
	word = strings.TrimLeft(word, `([{"'“‘`)
	if _, ok := s.abbreviations[strings.ToLower(word)]; ok {
		return true
	}

	// Single capital initial, as in "J. R. R. Tolkien"
	r, size := utf8.DecodeRuneInString(word)
	return size+1 == len(word) && unicode.IsUpper(r)
}
