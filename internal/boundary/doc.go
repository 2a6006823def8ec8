// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package boundary locates sentence boundaries and delimited regions in text.
//
// It has two independent modes that share no state.
//
// # Sentence Mode
//
// A SentenceSplitter yields trimmed sentences as a lazy iter.Seq:
//
//   - UAX29Splitter: Unicode Standard Annex #29 boundaries (github.com/rivo/uniseg)
//   - AbbreviationSplitter: UAX #29 plus re-joining after "Dr.", "e.g.",
//     initials and similar false breaks (the default)
//   - SplitterFunc: adapter for custom rules
//
// Sentences that trim to nothing are yielded as "" so the count always
// matches the segmentation.
//
// # Delimiter Mode
//
// A PairLocator finds the leftmost, non-overlapping regions opened and
// closed by any of its DelimiterPairs. The body is matched non-greedily and
// may span lines. An opener with no closer is plain text, not an error.
//
// # Usage
//
//	for s := range boundary.Sentences("Dr. Who arrived. He left.") {
//	    fmt.Println(s) // "Dr. Who arrived.", "He left."
//	}
//
//	loc, _ := boundary.NewPairLocator(boundary.DelimiterPair{Open: "$$", Close: "$$"})
//	for _, m := range loc.Find(text) {
//	    fmt.Println(m.Text(text))
//	}
package boundary
