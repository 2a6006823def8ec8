// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chunk

import (
	"fmt"
	"strings"

	"github.com/jeranaias/textkit/internal/boundary"
	"github.com/jeranaias/textkit/internal/util"
)

// =============================================================================
// TYPES
// =============================================================================

// Mode selects the accumulation rule used by Chunks.
type Mode int

const (
	// ModePreserve never drops a sentence. Joining spaces are counted and a
	// sentence that does not fit starts the next chunk.
	ModePreserve Mode = iota

	// ModeCompat reproduces the legacy rule: the joining space is counted
	// once as -1, a sentence that does not fit is dropped, and the last
	// sentence is always kept.
	ModeCompat
)

// String returns the configuration name of the mode.
func (m Mode) String() string {
	switch m {
	case ModePreserve:
		return "preserve"
	case ModeCompat:
		return "compat"
	default:
		return "unknown"
	}
}

// ParseMode maps a configuration name to a Mode. An empty name selects
// ModePreserve.
func ParseMode(name string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "preserve":
		return ModePreserve, nil
	case "compat":
		return ModeCompat, nil
	default:
		return ModePreserve, fmt.Errorf("unknown chunk mode %q (want preserve or compat): %w",
			name, util.ErrInvalidArgument)
	}
}

// Chunk is one or more whole sentences joined by a single space.
type Chunk struct {
	Text      string   `json:"text"`
	Sentences []string `json:"sentences"`
}

// Length returns the chunk's size in characters.
func (c Chunk) Length() int {
	return util.Length(c.Text)
}

func newChunk(sentences []string) Chunk {
	return Chunk{
		Text:      strings.Join(sentences, " "),
		Sentences: sentences,
	}
}

// Option configures Chunks.
type Option func(*options)

type options struct {
	splitter boundary.SentenceSplitter
	mode     Mode
}

// WithSplitter sets the sentence rule. The default is boundary.DefaultSplitter.
func WithSplitter(s boundary.SentenceSplitter) Option {
	return func(o *options) {
		if s != nil {
			o.splitter = s
		}
	}
}

// WithMode sets the accumulation rule. The default is ModePreserve.
func WithMode(m Mode) Option {
	return func(o *options) {
		o.mode = m
	}
}

// =============================================================================
// CHUNKING
// =============================================================================

// Chunks groups the sentences of text into chunks of fewer than
// maxChunkSize characters. A single sentence longer than that becomes a chunk
// of its own. maxChunkSize below 1 is rejected with util.ErrInvalidArgument.
func Chunks(text string, maxChunkSize int, opts ...Option) ([]Chunk, error) {
	if maxChunkSize < 1 {
		return nil, fmt.Errorf("max chunk size %d: %w", maxChunkSize, util.ErrInvalidArgument)
	}

	o := options{mode: ModePreserve}
	for _, opt := range opts {
		opt(&o)
	}
	if o.splitter == nil {
		o.splitter = boundary.DefaultSplitter()
	}

	sentences := boundary.Collect(o.splitter.Sentences(text))
	switch o.mode {
	case ModeCompat:
		return compat(sentences, maxChunkSize), nil
	case ModePreserve:
		return preserve(sentences, maxChunkSize), nil
	default:
		return nil, fmt.Errorf("chunk mode %d: %w", o.mode, util.ErrInvalidArgument)
	}
}

// preserve accumulates sentences while the joined text stays under limit.
// An empty accumulator always takes the next sentence, so nothing is lost.
func preserve(sentences []string, limit int) []Chunk {
	var chunks []Chunk
	var acc []string
	size := 0 // characters in acc, separators included

	for _, s := range sentences {
		if s == "" {
			continue
		}
		n := util.Length(s)
		if len(acc) > 0 && size+1+n >= limit {
			chunks = append(chunks, newChunk(acc))
			acc, size = nil, 0
		}
		if len(acc) > 0 {
			size++
		}
		acc = append(acc, s)
		size += n
	}
	if len(acc) > 0 {
		chunks = append(chunks, newChunk(acc))
	}
	return chunks
}

// compat is the legacy accumulation rule, kept for callers that must match
// previously produced chunk boundaries. An overflow flushes the accumulator
// even when it is empty, so a leading oversized sentence yields an empty
// chunk.
func compat(sentences []string, limit int) []Chunk {
	var chunks []Chunk
	var acc []string
	sum := 0

	for i, s := range sentences {
		n := util.Length(s)
		last := i == len(sentences)-1
		if sum+n-1 < limit || last {
			acc = append(acc, s)
			sum += n
			continue
		}
		chunks = append(chunks, newChunk(acc))
		acc, sum = nil, 0
	}
	if len(acc) > 0 {
		chunks = append(chunks, newChunk(acc))
	}
	return chunks
}

// Texts returns the text of each chunk.
func Texts(chunks []Chunk) []string {
	out := make([]string, len(chunks))
	for i, c := range chunks {
		out[i] = c.Text
	}
	return out
}
