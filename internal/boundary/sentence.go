// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package boundary

import (
	"fmt"
	"iter"
	"strings"

	"github.com/jeranaias/textkit/internal/util"
	"github.com/rivo/uniseg"
)

// =============================================================================
// SENTENCE SPLITTERS
// =============================================================================

// SentenceSplitter turns text into trimmed sentences.
//
// The returned sequence is lazy and restartable: every range over it
// segments the text again from the start. Sentences that trim to nothing
// are yielded as "" rather than skipped.
type SentenceSplitter interface {
	Sentences(text string) iter.Seq[string]
}

// SplitterFunc adapts a plain function to SentenceSplitter.
type SplitterFunc func(text string) iter.Seq[string]

// Sentences calls f(text).
func (f SplitterFunc) Sentences(text string) iter.Seq[string] {
	return f(text)
}

// UAX29Splitter splits on the sentence boundaries of Unicode Standard Annex
// #29. It knows nothing about abbreviations, so "Mr. Smith" is two
// sentences.
type UAX29Splitter struct{}

// Sentences implements SentenceSplitter.
func (UAX29Splitter) Sentences(text string) iter.Seq[string] {
	return trimmed(segments(text))
}

// segments yields the raw UAX #29 sentences of text, white space included.
func segments(text string) iter.Seq[string] {
	return func(yield func(string) bool) {
		state := -1
		rest := text
		var sentence string
		for len(rest) > 0 {
			sentence, rest, state = uniseg.FirstSentenceInString(rest, state)
			if !yield(sentence) {
				return
			}
		}
	}
}

func trimmed(seq iter.Seq[string]) iter.Seq[string] {
	return func(yield func(string) bool) {
		for s := range seq {
			if !yield(strings.TrimSpace(s)) {
				return
			}
		}
	}
}

// Sentences splits text with DefaultSplitter.
func Sentences(text string) iter.Seq[string] {
	return DefaultSplitter().Sentences(text)
}

// DefaultSplitter returns the abbreviation-aware UAX #29 splitter.
func DefaultSplitter() SentenceSplitter {
	return NewAbbreviationSplitter(nil)
}

// Splitter names accepted by SplitterByName.
const (
	RuleUAX29        = "uax29"
	RuleAbbreviation = "abbrev"
)

// SplitterByName returns the splitter registered under name. An empty name
// selects the default.
func SplitterByName(name string) (SentenceSplitter, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", RuleAbbreviation:
		return DefaultSplitter(), nil
	case RuleUAX29:
		return UAX29Splitter{}, nil
	default:
		return nil, fmt.Errorf("unknown sentence rule %q (want %s or %s): %w",
			name, RuleAbbreviation, RuleUAX29, util.ErrInvalidArgument)
	}
}

// Collect drains seq into a slice. An empty sequence gives a nil slice.
func Collect(seq iter.Seq[string]) []string {
	var out []string
	for s := range seq {
		out = append(out, s)
	}
	return out
}
