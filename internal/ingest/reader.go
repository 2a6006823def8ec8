// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ingest

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"time"

	charmlog "github.com/charmbracelet/log"
	"github.com/jeranaias/textkit/internal/chunk"
	"github.com/jeranaias/textkit/internal/logger"
	"github.com/jeranaias/textkit/internal/reasoning"
	"golang.org/x/text/unicode/norm"
)

// =============================================================================
// STREAM READER
// =============================================================================

// Reader accumulates a streamed model response and re-segments the growing
// text after every delta.
type Reader struct {
	reader *bufio.Reader
	opts   Options
	// PERFORMANCE: strings.Builder avoids quadratic allocations
	accumulator strings.Builder
	tokenCount  int
	model       string
	last        Update
}

// NewReader creates a new stream reader from an io.Reader.
func NewReader(r io.Reader, opts Options) *Reader {
	if opts.Tags == nil {
		opts.Tags = reasoning.DefaultTags()
	}
	return &Reader{
		reader: bufio.NewReader(r),
		opts:   opts,
	}
}

// Process reads the stream and calls fn for each content line and for the
// final line. Blocks until the stream ends or the context is cancelled.
func (s *Reader) Process(ctx context.Context, fn func(Update)) error {
	log := logger.FromContext(ctx)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		line, err := s.reader.ReadBytes('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return err
		}
		eof := err != nil

		update, ok, perr := s.handle(log, line)
		if perr != nil {
			return perr
		}
		if ok {
			s.last = update
			fn(update)
			if update.Done {
				log.Debug("stream complete", "model", update.Model, "tokens", update.Tokens)
				return nil
			}
		}
		if eof {
			return nil
		}
	}
}

// handle parses one line. Blank, malformed and empty non-final lines yield
// no update.
func (s *Reader) handle(log *charmlog.Logger, line []byte) (Update, bool, error) {
	line = bytes.TrimSpace(line)
	if len(line) == 0 {
		return Update{}, false, nil
	}

	var msg streamLine
	if err := json.Unmarshal(line, &msg); err != nil {
		log.Debug("skipping malformed stream line", "err", err)
		return Update{}, false, nil
	}

	if msg.Model != "" {
		s.model = msg.Model
	}
	delta := msg.content()
	if delta == "" && !msg.Done {
		return Update{}, false, nil
	}
	if delta != "" {
		s.accumulator.WriteString(delta)
		s.tokenCount++
	}

	update, err := s.snapshot(delta)
	if err != nil {
		return Update{}, false, err
	}
	if msg.Done {
		update.Done = true
		update.DoneReason = msg.DoneReason
		if msg.EvalCount > 0 {
			update.Tokens = msg.EvalCount
		}
		update.Duration = time.Duration(msg.EvalDuration)
	}
	return update, true, nil
}

// snapshot derives the visible state of the text accumulated so far.
func (s *Reader) snapshot(delta string) (Update, error) {
	raw := s.accumulator.String()
	if s.opts.Normalize {
		raw = norm.NFC.String(raw)
	}

	update := Update{
		Delta:    delta,
		Raw:      raw,
		Visible:  reasoning.StripWith(raw, s.opts.Tags),
		Thinking: reasoning.InProgress(raw, s.opts.Tags),
		Model:    s.model,
		Tokens:   s.tokenCount,
	}

	if s.opts.MaxChunkSize > 0 {
		opts := []chunk.Option{chunk.WithMode(s.opts.Mode)}
		if s.opts.Splitter != nil {
			opts = append(opts, chunk.WithSplitter(s.opts.Splitter))
		}
		chunks, err := chunk.Chunks(update.Visible, s.opts.MaxChunkSize, opts...)
		if err != nil {
			return Update{}, err
		}
		update.Chunks = chunks
	}
	return update, nil
}

// Result returns the most recent update, the final one once Process has
// returned.
func (s *Reader) Result() Update {
	return s.last
}

// Accumulated returns all raw content received so far.
func (s *Reader) Accumulated() string {
	return s.accumulator.String()
}

// TokenCount returns the number of content lines received.
func (s *Reader) TokenCount() int {
	return s.tokenCount
}

// Model returns the model name from the stream.
func (s *Reader) Model() string {
	return s.model
}
