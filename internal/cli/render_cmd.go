// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// render_cmd.go - render and watch commands.

package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/jeranaias/textkit/internal/diff"
	"github.com/jeranaias/textkit/internal/logger"
	"github.com/jeranaias/textkit/internal/reasoning"
	"github.com/jeranaias/textkit/internal/render"
	"github.com/jeranaias/textkit/internal/watch"
)

// clearScreen homes the cursor and clears the terminal.
const clearScreen = "\x1b[H\x1b[2J"

// RenderData is the --json payload of the render command.
type RenderData struct {
	Width int    `json:"width"`
	Text  string `json:"text"`
}

// newRenderer builds a renderer from config, overridden by --width and
// --theme. Without any width the terminal width of Stdout is used.
func (a *App) newRenderer(args *ArgParser) (*render.Renderer, error) {
	width := a.Config.Render.Width
	if width <= 0 {
		width = TerminalWidth(a.Stdout)
	}
	width, err := intFlag(args, "width", width)
	if err != nil {
		return nil, err
	}
	chunkOpts, err := a.Config.ChunkOptions()
	if err != nil {
		return nil, err
	}
	return render.New(render.Options{
		Width:        width,
		Accent:       a.Config.Render.Accent,
		Theme:        args.FlagOrDefault("theme", a.Config.Render.Theme),
		Delimiters:   a.Config.DelimiterPairs(),
		Tags:         a.Config.TagPairs(),
		ChunkOptions: chunkOpts,
		Output:       a.Stdout,
	})
}

func (a *App) runRender(_ context.Context, args *ArgParser, w io.Writer) (interface{}, error) {
	r, err := a.newRenderer(args)
	if err != nil {
		return nil, err
	}
	text, err := a.readInput(args, 1)
	if err != nil {
		return nil, err
	}

	out := r.Render(text)
	if out != "" {
		fmt.Fprintln(w, out)
	}
	return RenderData{Width: r.Width, Text: out}, nil
}

func (a *App) runWatch(ctx context.Context, args *ArgParser, w io.Writer) (interface{}, error) {
	if args.BoolFlag("json") {
		return nil, NewValidationError("json", "", "watch writes to the terminal and has no JSON output")
	}
	path := args.Positional(1)
	if path == "" {
		return nil, ErrMissingArgument("file", "textkit watch notes.md")
	}

	debounceMs := a.Config.Watch.DebounceMs
	if debounceMs <= 0 {
		debounceMs = int(watch.DefaultDebounce / time.Millisecond)
	}
	debounceMs, err := intFlag(args, "debounce", debounceMs)
	if err != nil {
		return nil, err
	}

	r, err := a.newRenderer(args)
	if err != nil {
		return nil, err
	}
	clear := isTerminal(a.Stdout)
	showDiff := args.BoolFlag("diff")
	splitter, _, err := a.splitterFor(args)
	if err != nil {
		return nil, err
	}
	tags := a.Config.TagPairs()

	var previous string
	fires := 0
	watcher, err := watch.New(path, time.Duration(debounceMs)*time.Millisecond, func(content string) error {
		fires++
		if showDiff && fires > 1 {
			current := reasoning.StripWith(content, tags)
			result := diff.Compare(previous, current, splitter)
			previous = current
			writeDiff(w, result, "previous", "current")
			return nil
		}
		previous = reasoning.StripWith(content, tags)
		if clear {
			fmt.Fprint(w, clearScreen)
		}
		_, err := fmt.Fprintln(w, r.Render(content))
		return err
	})
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info("watching", "path", watcher.Path(), "debounce_ms", debounceMs)
	return nil, watcher.Run(ctx)
}
