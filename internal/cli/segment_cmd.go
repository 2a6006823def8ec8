// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// segment_cmd.go - chunk, sentences, split and strip commands.

package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/jeranaias/textkit/internal/boundary"
	"github.com/jeranaias/textkit/internal/chunk"
	"github.com/jeranaias/textkit/internal/markup"
	"github.com/jeranaias/textkit/internal/reasoning"
)

// splitterFor returns the sentence splitter named by --rule, or the
// configured one (custom abbreviations included) when the flag is absent.
func (a *App) splitterFor(args *ArgParser) (boundary.SentenceSplitter, string, error) {
	if args.HasFlag("rule") {
		rule := args.Flag("rule")
		s, err := boundary.SplitterByName(rule)
		return s, rule, err
	}
	s, err := a.Config.Splitter()
	return s, a.Config.Chunk.SentenceRule, err
}

func (a *App) runChunk(_ context.Context, args *ArgParser, w io.Writer) (interface{}, error) {
	maxSize, err := intFlag(args, "max", a.Config.Chunk.MaxSize)
	if err != nil {
		return nil, err
	}
	mode, err := chunk.ParseMode(args.FlagOrDefault("mode", a.Config.Chunk.Mode))
	if err != nil {
		return nil, err
	}
	splitter, rule, err := a.splitterFor(args)
	if err != nil {
		return nil, err
	}
	text, err := a.readInput(args, 1)
	if err != nil {
		return nil, err
	}

	chunks, err := chunk.Chunks(text, maxSize, chunk.WithMode(mode), chunk.WithSplitter(splitter))
	if err != nil {
		return nil, err
	}

	data := ChunkData{MaxSize: maxSize, Mode: mode.String(), Rule: rule, Chunks: make([]ChunkInfo, 0, len(chunks))}
	for i, c := range chunks {
		data.Chunks = append(data.Chunks, ChunkInfo{Text: c.Text, Length: c.Length(), Sentences: c.Sentences})
		fmt.Fprintln(w, DimStyle.Render(fmt.Sprintf("# chunk %d (%d chars)", i+1, c.Length())))
		fmt.Fprintln(w, c.Text)
	}
	return data, nil
}

func (a *App) runSentences(_ context.Context, args *ArgParser, w io.Writer) (interface{}, error) {
	splitter, _, err := a.splitterFor(args)
	if err != nil {
		return nil, err
	}
	text, err := a.readInput(args, 1)
	if err != nil {
		return nil, err
	}

	sentences := boundary.Collect(splitter.Sentences(text))
	for _, s := range sentences {
		fmt.Fprintln(w, s)
	}
	if sentences == nil {
		sentences = []string{}
	}
	return sentences, nil
}

func (a *App) runSplit(_ context.Context, args *ArgParser, w io.Writer) (interface{}, error) {
	splitter, err := markup.NewSplitter(a.Config.DelimiterPairs()...)
	if err != nil {
		return nil, err
	}
	text, err := a.readInput(args, 1)
	if err != nil {
		return nil, err
	}

	spans := splitter.Split(text)
	for _, span := range spans {
		label := DimStyle.Render("plain") + " "
		if span.IsMarkup() {
			label = MarkupStyle.Render("markup")
		}
		fmt.Fprintf(w, "%s %s\n", label, strconv.Quote(span.Text))
	}
	if spans == nil {
		spans = []markup.Span{}
	}
	return spans, nil
}

// StripData is the --json payload of the strip command.
type StripData struct {
	Text       string `json:"text"`
	Reasoning  string `json:"reasoning,omitempty"`
	InProgress bool   `json:"in_progress"`
}

func (a *App) runStrip(_ context.Context, args *ArgParser, w io.Writer) (interface{}, error) {
	text, err := a.readInput(args, 1)
	if err != nil {
		return nil, err
	}

	tags := a.Config.TagPairs()
	data := StripData{
		Text:       reasoning.StripWith(text, tags),
		InProgress: reasoning.InProgress(text, tags),
	}
	data.Reasoning, _ = reasoning.Reasoning(text, tags)

	fmt.Fprintln(w, data.Text)
	return data, nil
}
