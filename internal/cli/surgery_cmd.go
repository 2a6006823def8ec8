// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// surgery_cmd.go - group, color, slice, quote, cut and unwrap commands.

package cli

import (
	"context"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/jeranaias/textkit/internal/util"
)

func (a *App) runGroup(_ context.Context, args *ArgParser, w io.Writer) (interface{}, error) {
	if !args.HasFlag("every") {
		return nil, ErrMissingArgument("every", "textkit group --every 3 --text 1234567")
	}
	n, err := ParseIntWithValidation(args.Flag("every"), "every")
	if err != nil {
		return nil, err
	}
	text, err := a.readInput(args, 1)
	if err != nil {
		return nil, err
	}

	groups, err := util.GroupEvery(text, n, args.BoolFlag("backwards"))
	if err != nil {
		return nil, err
	}
	for _, g := range groups {
		fmt.Fprintln(w, g)
	}
	if groups == nil {
		groups = []string{}
	}
	return groups, nil
}

func (a *App) runColor(_ context.Context, args *ArgParser, w io.Writer) (interface{}, error) {
	input := args.Positional(1)
	if input == "" {
		return nil, ErrMissingArgument("color", "textkit color '#7D56F4'")
	}

	var c util.Color
	if args.BoolFlag("lenient") {
		c = util.HexToColor(input)
	} else {
		var err error
		if c, err = util.ParseHexColor(input); err != nil {
			return nil, err
		}
	}

	fmt.Fprintf(w, "%s  r=%.3f g=%.3f b=%.3f a=%.3f\n", c.Hex(), c.R, c.G, c.B, c.A)
	return ColorData{Input: input, Hex: c.Hex(), R: c.R, G: c.G, B: c.B, A: c.A}, nil
}

func (a *App) runSlice(_ context.Context, args *ArgParser, w io.Writer) (interface{}, error) {
	from, to := args.Flag("from"), args.Flag("to")
	if from == "" || to == "" {
		return nil, ErrMissingArgument("from/to", "textkit slice --from '(' --to ')'")
	}
	text, err := a.readInput(args, 1)
	if err != nil {
		return nil, err
	}

	out, ok := util.Slice(text, from, to)
	if !ok {
		return nil, NewNotFoundError("delimited text", from+"..."+to)
	}
	fmt.Fprintln(w, out)
	return SliceData{Text: out, Found: true}, nil
}

func (a *App) runQuote(_ context.Context, args *ArgParser, w io.Writer) (interface{}, error) {
	text, err := a.readInput(args, 1)
	if err != nil {
		return nil, err
	}
	out := util.RepairTrailingQuote(text)
	fmt.Fprintln(w, out)
	return map[string]string{"text": out}, nil
}

func (a *App) runCut(_ context.Context, args *ArgParser, w io.Writer) (interface{}, error) {
	after, before := args.Flag("after"), args.Flag("before")
	if (after == "") == (before == "") {
		return nil, NewValidationErrorWithExample("cut", "", "exactly one of --after or --before is required",
			"textkit cut --after 'Answer:'")
	}
	text, err := a.readInput(args, 1)
	if err != nil {
		return nil, err
	}

	opts := util.TrimOptions{
		IncludeMatch: args.BoolFlag("keep"),
		IgnoreCase:   args.BoolFlag("ignore-case"),
	}
	var out string
	if after != "" {
		out = util.DropPreceding(text, after, opts)
	} else {
		out = util.DropFollowing(text, before, opts)
	}
	fmt.Fprintln(w, out)
	return map[string]string{"text": out}, nil
}

func (a *App) runUnwrap(_ context.Context, args *ArgParser, w io.Writer) (interface{}, error) {
	char := args.Positional(1)
	if utf8.RuneCountInString(char) != 1 {
		return nil, NewValidationErrorWithExample("char", char, "must be a single character", "textkit unwrap '\"'")
	}
	r, _ := utf8.DecodeRuneInString(char)

	text, err := a.readInput(args, 2)
	if err != nil {
		return nil, err
	}
	out := util.StripEnclosing(text, r)
	fmt.Fprintln(w, out)
	return map[string]string{"text": out}, nil
}
