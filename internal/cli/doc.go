// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli implements the textkit command line.
//
// Every command reads text from a file argument, --text or stdin and writes
// either human output or, with --json, a single JSONResponse envelope.
//
// # Key Types
//
//   - App: runs commands against injectable streams and configuration
//   - ArgParser: flag and positional parsing shared by all commands
//   - CommandError, ValidationError, NotFoundError: structured failures
//     mapped to exit codes by GetExitCode
//
// # Usage
//
//	app := cli.NewApp(cfg)
//	os.Exit(app.Main(ctx, os.Args[1:]))
//
// # Commands Overview
//
// Segmentation: chunk, sentences, split, strip, diff.
// String surgery: group, color, slice, quote, cut, unwrap.
// Output: render, ingest, export, list, watch.
// Other: config, version, help.
package cli
