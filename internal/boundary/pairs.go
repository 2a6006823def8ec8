// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package boundary

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/jeranaias/textkit/internal/util"
)

// =============================================================================
// DELIMITER PAIRS
// =============================================================================

// DelimiterPair is an open/close marker pair, such as "$$" and "$$".
type DelimiterPair struct {
	Open  string `toml:"open" json:"open"`
	Close string `toml:"close" json:"close"`
}

// Match is one delimited region. Start and End are byte offsets into the
// searched text (End exclusive) and cover both markers. Pair is the index
// of the pair that matched.
type Match struct {
	Start int
	End   int
	Pair  int
}

// Text returns the matched region of s.
func (m Match) Text(s string) string {
	return s[m.Start:m.End]
}

// PairLocator finds delimited regions for a fixed set of pairs. It is
// immutable and safe for concurrent use.
type PairLocator struct {
	pairs []DelimiterPair
	re    *regexp.Regexp
}

// NewPairLocator compiles pairs into a locator. The pairs are alternatives:
// at each position the first pair whose markers match wins.
func NewPairLocator(pairs ...DelimiterPair) (*PairLocator, error) {
	if len(pairs) == 0 {
		return nil, fmt.Errorf("no delimiter pairs: %w", util.ErrInvalidArgument)
	}

	alternatives := make([]string, len(pairs))
	for i, p := range pairs {
		if p.Open == "" || p.Close == "" {
			return nil, fmt.Errorf("delimiter pair %d has an empty marker: %w", i, util.ErrInvalidArgument)
		}
		// Non-greedy body: the first close marker after the opener ends it
		alternatives[i] = "(" + regexp.QuoteMeta(p.Open) + ".*?" + regexp.QuoteMeta(p.Close) + ")"
	}

	re, err := regexp.Compile("(?s)" + strings.Join(alternatives, "|"))
	if err != nil {
		return nil, fmt.Errorf("compile delimiter pairs: %w", err)
	}
	return &PairLocator{
		pairs: append([]DelimiterPair(nil), pairs...),
		re:    re,
	}, nil
}

// Pairs returns a copy of the locator's pairs.
func (l *PairLocator) Pairs() []DelimiterPair {
	return append([]DelimiterPair(nil), l.pairs...)
}

// Find returns the leftmost non-overlapping matches in text, in order. An
// opener without a later closer is not a match.
func (l *PairLocator) Find(text string) []Match {
	locs := l.re.FindAllStringSubmatchIndex(text, -1)
	if len(locs) == 0 {
		return nil
	}

	matches := make([]Match, 0, len(locs))
	for _, loc := range locs {
		m := Match{Start: loc[0], End: loc[1]}
		for i := range l.pairs {
			if loc[2+2*i] >= 0 {
				m.Pair = i
				break
			}
		}
		matches = append(matches, m)
	}
	return matches
}

// FindPairs is a one-shot NewPairLocator(pairs...).Find(text).
func FindPairs(text string, pairs ...DelimiterPair) ([]Match, error) {
	l, err := NewPairLocator(pairs...)
	if err != nil {
		return nil, err
	}
	return l.Find(text), nil
}
