// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// diff_cmd.go - sentence-level diff command.

package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/jeranaias/textkit/internal/diff"
	"github.com/jeranaias/textkit/internal/reasoning"
)

// DiffData is the --json payload of the diff command.
type DiffData struct {
	Old     string `json:"old"`
	New     string `json:"new"`
	Summary string `json:"summary"`
	*diff.Result
}

func (a *App) runDiff(_ context.Context, args *ArgParser, w io.Writer) (interface{}, error) {
	oldPath, newPath := args.Positional(1), args.Positional(2)
	if oldPath == "" || newPath == "" {
		return nil, ErrMissingArgument("files", "textkit diff draft.md final.md")
	}
	splitter, _, err := a.splitterFor(args)
	if err != nil {
		return nil, err
	}
	oldText, err := a.readPath(oldPath)
	if err != nil {
		return nil, err
	}
	newText, err := a.readPath(newPath)
	if err != nil {
		return nil, err
	}

	tags := a.Config.TagPairs()
	result := diff.Compare(reasoning.StripWith(oldText, tags), reasoning.StripWith(newText, tags), splitter)
	writeDiff(w, result, oldPath, newPath)
	return DiffData{Old: oldPath, New: newPath, Summary: result.Summary(), Result: result}, nil
}

// writeDiff prints a colored unified diff followed by its summary.
func writeDiff(w io.Writer, result *diff.Result, oldName, newName string) {
	for _, line := range strings.SplitAfter(result.Unified(oldName, newName), "\n") {
		switch {
		case line == "":
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"), strings.HasPrefix(line, "@@"):
			fmt.Fprint(w, DimStyle.Render(strings.TrimSuffix(line, "\n"))+"\n")
		case strings.HasPrefix(line, "+"):
			fmt.Fprint(w, SuccessStyle.Render(strings.TrimSuffix(line, "\n"))+"\n")
		case strings.HasPrefix(line, "-"):
			fmt.Fprint(w, ErrorStyle.Render(strings.TrimSuffix(line, "\n"))+"\n")
		default:
			fmt.Fprint(w, line)
		}
	}
	fmt.Fprintln(w, DimStyle.Render(result.Summary()))
}
