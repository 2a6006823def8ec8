// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package markup

import (
	"fmt"
	"strings"
	"sync"

	"github.com/jeranaias/textkit/internal/boundary"
)

// =============================================================================
// SPANS
// =============================================================================

// Kind tags a span as plain text or markup.
type Kind int

const (
	Plain Kind = iota
	Markup
)

// String returns "plain" or "markup".
func (k Kind) String() string {
	switch k {
	case Plain:
		return "plain"
	case Markup:
		return "markup"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// MarshalText encodes the kind by name, so spans serialize as
// {"text": "...", "kind": "markup"}.
func (k Kind) MarshalText() ([]byte, error) {
	switch k {
	case Plain, Markup:
		return []byte(k.String()), nil
	default:
		return nil, fmt.Errorf("invalid span kind %d", int(k))
	}
}

// UnmarshalText decodes a kind name.
func (k *Kind) UnmarshalText(b []byte) error {
	switch string(b) {
	case "plain":
		*k = Plain
	case "markup":
		*k = Markup
	default:
		return fmt.Errorf("invalid span kind %q", b)
	}
	return nil
}

// Span is a contiguous piece of the input. Markup spans keep their
// delimiters verbatim.
type Span struct {
	Text string `json:"text"`
	Kind Kind   `json:"kind"`
}

// IsMarkup reports whether s is a markup span.
func (s Span) IsMarkup() bool {
	return s.Kind == Markup
}

// DefaultDelimiters returns a fresh copy of the built-in display math pairs:
// the bracket form \[ ... \] and the double-dollar form $$ ... $$.
func DefaultDelimiters() []boundary.DelimiterPair {
	return []boundary.DelimiterPair{
		{Open: `\[`, Close: `\]`},
		{Open: "$$", Close: "$$"},
	}
}

// =============================================================================
// SPLITTER
// =============================================================================

// Splitter partitions text into plain and markup spans. It is immutable and
// safe for concurrent use.
type Splitter struct {
	locator *boundary.PairLocator
}

// NewSplitter compiles a splitter for pairs. With no pairs it uses
// DefaultDelimiters.
func NewSplitter(pairs ...boundary.DelimiterPair) (*Splitter, error) {
	if len(pairs) == 0 {
		pairs = DefaultDelimiters()
	}
	locator, err := boundary.NewPairLocator(pairs...)
	if err != nil {
		return nil, err
	}
	return &Splitter{locator: locator}, nil
}

// Pairs returns the splitter's delimiter pairs.
func (s *Splitter) Pairs() []boundary.DelimiterPair {
	return s.locator.Pairs()
}

// Split returns the spans of text in order. Gaps between matches that are
// only white space are dropped; every other character of text ends up in
// exactly one span. An opener without a closer stays in plain text.
func (s *Splitter) Split(text string) []Span {
	var spans []Span
	last := 0

	for _, m := range s.locator.Find(text) {
		spans = appendPlain(spans, text[last:m.Start])
		spans = append(spans, Span{Text: m.Text(text), Kind: Markup})
		last = m.End
	}
	return appendPlain(spans, text[last:])
}

func appendPlain(spans []Span, gap string) []Span {
	if strings.TrimSpace(gap) == "" {
		return spans
	}
	return append(spans, Span{Text: gap, Kind: Plain})
}

var defaultSplitter = sync.OnceValue(func() *Splitter {
	s, err := NewSplitter()
	if err != nil {
		panic("markup: default delimiters: " + err.Error())
	}
	return s
})

// Default returns the shared splitter for DefaultDelimiters.
func Default() *Splitter {
	return defaultSplitter()
}

// Split partitions text with the default delimiters.
func Split(text string) []Span {
	return Default().Split(text)
}

// Join concatenates the span texts with sep between them.
func Join(spans []Span, sep string) string {
	parts := make([]string, len(spans))
	for i, sp := range spans {
		parts[i] = sp.Text
	}
	return strings.Join(parts, sep)
}

// HasMarkup reports whether any span is markup.
func HasMarkup(spans []Span) bool {
	for _, sp := range spans {
		if sp.IsMarkup() {
			return true
		}
	}
	return false
}
