// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chunk groups sentences into size-bounded chunks.
//
// Sentences come from a boundary.SentenceSplitter and are never cut: a chunk
// is one or more whole sentences joined by a single space. Sizes are counted
// in user-perceived characters.
//
// Two accumulation rules are available. ModePreserve (the default) keeps
// every sentence and guarantees that each chunk is shorter than the limit or
// holds exactly one sentence. ModeCompat reproduces the legacy rule for
// callers that need byte-for-byte identical chunk boundaries; it can drop
// sentences.
//
// # Usage
//
//	chunks, err := chunk.Chunks(text, 500)
//	if err != nil {
//	    return err // limit below 1
//	}
//	for _, c := range chunks {
//	    send(c.Text)
//	}
package chunk
