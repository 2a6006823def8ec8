// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package diff compares two texts sentence by sentence.
//
// Texts are segmented with a boundary.SentenceSplitter and aligned with a
// longest-common-subsequence table, so a reworded sentence shows up as one
// deletion and one insertion regardless of line wrapping.
//
// # Key Types
//
//   - Op: Equal, Insert or Delete
//   - Edit: one sentence with its positions in each text
//   - Hunk: a group of edits with surrounding context
//   - Result: the complete comparison with statistics
//
// # Usage
//
//	result := diff.Compare(previous, current, nil)
//	fmt.Print(result.Unified("previous", "current"))
//	fmt.Println(result.Summary()) // "+1 -1 sentences"
package diff
