// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides the string surgery helpers used when assembling
// prompts, rendered output and export files.
//
// All string functions are pure and safe for concurrent use. Positions and
// widths are counted in user-perceived characters (grapheme clusters), so
// multi-byte text is never cut in the middle of a character.
//
// # Key Functions
//
// String Surgery:
//   - GroupEvery: fixed-width grouping, forwards or backwards
//   - Slice: text between two markers
//   - DropPreceding, DropFollowing: trim around a located substring
//   - RepairTrailingQuote: drop an unbalanced trailing double quote
//   - StripEnclosing: remove one enclosing character from both ends
//   - ReplaceSuffix: swap a known suffix
//
// Colors:
//   - HexToColor: lenient 0xRRGGBBAA decode
//   - ParseHexColor: strict #RRGGBB / #RRGGBBAA parse
//
// Characters and Width:
//   - Length, Substring, SubstringFrom, SubstringTo, CharAt
//   - TruncateRunes, TruncateWidth, StringWidth
//
// File Operations:
//   - AtomicWriteFile: crash-safe file writing with fsync
//
// # Errors
//
// ErrInvalidArgument is returned (wrapped) for structurally invalid
// parameters such as a group width below 1. A missing marker is not an
// error: Slice reports it with a false second result.
//
// # Usage
//
//	groups, err := util.GroupEvery("1234567", 3, true) // ["1", "234", "567"]
//
//	inner, ok := util.Slice(text, "<think>", "</think>")
//
//	c := util.HexToColor("#FF000080") // R=1, A=0x80/255
package util
