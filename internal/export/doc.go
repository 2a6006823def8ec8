// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package export writes conversations to text, Markdown, HTML and JSON.
//
// Every exporter removes reasoning blocks from message content before
// writing and skips messages with nothing left to show. The HTML exporter
// additionally splits content into prose and formula spans.
//
// # Key Types
//
//   - Exporter: Main export interface
//   - Options: Export configuration options
//
// # Supported Formats
//
//   - Text: "Role:" blocks separated by blank lines
//   - Markdown: Human-readable with frontmatter
//   - HTML: Styled for viewing in browsers, formulas typeset client-side
//   - JSON: The storage layout, loadable with storage.LoadFile
//
// # Usage
//
//	exporter, err := export.ByFormat("html", export.DefaultOptions())
//	path, err := export.ExportToFile(conv, exporter, opts)
package export
