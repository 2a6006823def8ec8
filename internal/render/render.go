// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package render

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/jeranaias/textkit/internal/boundary"
	"github.com/jeranaias/textkit/internal/chunk"
	"github.com/jeranaias/textkit/internal/markup"
	"github.com/jeranaias/textkit/internal/reasoning"
	"github.com/jeranaias/textkit/internal/util"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/termenv"
)

// DefaultWidth is used when Options.Width is not positive.
const DefaultWidth = 80

// Themes accepted by Options.Theme.
const (
	ThemeAuto  = "auto"
	ThemeDark  = "dark"
	ThemeLight = "light"
	ThemeASCII = "ascii"
)

// Options configures a Renderer.
type Options struct {
	Width  int
	Accent string // "#RRGGBB"; empty means the default violet
	Theme  string

	// Delimiters and Tags default to the markup and reasoning defaults.
	Delimiters []boundary.DelimiterPair
	Tags       []reasoning.TagPair

	// ChunkOptions are passed to chunk.Chunks by Breaks.
	ChunkOptions []chunk.Option

	// Output is the terminal the result is written to, for color detection.
	// Defaults to os.Stdout.
	Output io.Writer
}

// Renderer turns model output into terminal text: reasoning removed, prose
// wrapped, formulas framed.
type Renderer struct {
	Width    int
	Accent   util.Color
	Splitter *markup.Splitter
	Tags     []reasoning.TagPair

	chunkOpts []chunk.Option
	frame     lipgloss.Style
}

// New builds a Renderer. An invalid accent color, theme or delimiter pair is
// an error.
func New(opts Options) (*Renderer, error) {
	if opts.Width <= 0 {
		opts.Width = DefaultWidth
	}
	if opts.Accent == "" {
		opts.Accent = "#7D56F4"
	}
	if opts.Tags == nil {
		opts.Tags = reasoning.DefaultTags()
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	accent, err := util.ParseHexColor(opts.Accent)
	if err != nil {
		return nil, fmt.Errorf("accent: %w", err)
	}
	splitter, err := markup.NewSplitter(opts.Delimiters...)
	if err != nil {
		return nil, err
	}

	lr := lipgloss.NewRenderer(opts.Output)
	switch strings.ToLower(opts.Theme) {
	case "", ThemeAuto:
	case ThemeDark:
		lr.SetHasDarkBackground(true)
	case ThemeLight:
		lr.SetHasDarkBackground(false)
	case ThemeASCII:
		lr.SetColorProfile(termenv.Ascii)
	default:
		return nil, fmt.Errorf("theme %q: %w", opts.Theme, util.ErrInvalidArgument)
	}

	frame := lr.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(accent.RGBHex())).
		Padding(0, 1)

	return &Renderer{
		Width:     opts.Width,
		Accent:    accent,
		Splitter:  splitter,
		Tags:      opts.Tags,
		chunkOpts: opts.ChunkOptions,
		frame:     frame,
	}, nil
}

// Render strips reasoning, wraps plain spans to the width and frames markup
// spans verbatim. Spans are separated by newlines. Text with nothing visible
// renders as "".
func (r *Renderer) Render(text string) string {
	visible := reasoning.StripWith(text, r.Tags)
	if visible == "" {
		return ""
	}

	var blocks []string
	for _, span := range r.Splitter.Split(visible) {
		if span.IsMarkup() {
			blocks = append(blocks, r.frame.Render(span.Text))
			continue
		}
		if wrapped := Wrap(span.Text, r.Width); wrapped != "" {
			blocks = append(blocks, wrapped)
		}
	}
	return strings.Join(blocks, "\n")
}

// Breaks returns the visible text cut into chunks of fewer than maxChunkSize
// characters, for progressive display.
func (r *Renderer) Breaks(text string, maxChunkSize int) ([]string, error) {
	chunks, err := chunk.Chunks(reasoning.StripWith(text, r.Tags), maxChunkSize, r.chunkOpts...)
	if err != nil {
		return nil, err
	}
	return chunk.Texts(chunks), nil
}

// Wrap word-wraps text to width display columns. Line breaks in text are
// kept; runs of other white space collapse to one space. A word wider than
// width gets a line of its own.
func Wrap(text string, width int) string {
	var out []string
	for _, para := range strings.Split(strings.TrimSpace(text), "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			if len(out) > 0 && out[len(out)-1] != "" {
				out = append(out, "")
			}
			continue
		}

		var line strings.Builder
		lineWidth := 0
		for _, w := range words {
			ww := runewidth.StringWidth(w)
			if lineWidth > 0 && lineWidth+1+ww > width {
				out = append(out, line.String())
				line.Reset()
				lineWidth = 0
			}
			if lineWidth > 0 {
				line.WriteByte(' ')
				lineWidth++
			}
			line.WriteString(w)
			lineWidth += ww
		}
		out = append(out, line.String())
	}
	return strings.Join(out, "\n")
}
