// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ingest

import (
	"time"

	"github.com/jeranaias/textkit/internal/boundary"
	"github.com/jeranaias/textkit/internal/chunk"
	"github.com/jeranaias/textkit/internal/reasoning"
)

// =============================================================================
// WIRE TYPES
// =============================================================================

// streamLine is one NDJSON object of an Ollama stream. Chat streams carry
// text in message.content, generate streams in response.
type streamLine struct {
	Model     string    `json:"model"`
	CreatedAt time.Time `json:"created_at"`
	Message   struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"message"`
	Response      string `json:"response"`
	Done          bool   `json:"done"`
	DoneReason    string `json:"done_reason,omitempty"`
	TotalDuration int64  `json:"total_duration,omitempty"`
	EvalCount     int    `json:"eval_count,omitempty"`
	EvalDuration  int64  `json:"eval_duration,omitempty"`
}

func (l *streamLine) content() string {
	if l.Message.Content != "" {
		return l.Message.Content
	}
	return l.Response
}

// =============================================================================
// OPTIONS AND UPDATES
// =============================================================================

// Options controls how accumulated text is post-processed.
type Options struct {
	// Tags are the reasoning pairs stripped from the visible text.
	// Nil means reasoning.DefaultTags().
	Tags []reasoning.TagPair

	// MaxChunkSize enables chunking of the visible text when > 0.
	MaxChunkSize int
	Mode         chunk.Mode

	// Splitter overrides the sentence splitter used for chunking.
	Splitter boundary.SentenceSplitter

	// Normalize applies Unicode NFC to the accumulated text.
	Normalize bool
}

// Update is emitted after every content line and once more on completion.
type Update struct {
	Delta    string        `json:"delta"`
	Raw      string        `json:"raw"`
	Visible  string        `json:"visible"`
	Thinking bool          `json:"thinking"`
	Chunks   []chunk.Chunk `json:"chunks,omitempty"`
	Done     bool          `json:"done"`
	Model    string        `json:"model,omitempty"`

	// Set on the final update only.
	DoneReason string        `json:"done_reason,omitempty"`
	Tokens     int           `json:"tokens"`
	Duration   time.Duration `json:"duration,omitempty"`
}

// TokensPerSecond reports generation speed from the final update's stats.
func (u Update) TokensPerSecond() float64 {
	if u.Duration <= 0 {
		return 0
	}
	return float64(u.Tokens) / u.Duration.Seconds()
}
