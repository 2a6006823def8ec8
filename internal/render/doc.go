// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package render formats model output for the terminal.
//
// Reasoning blocks are stripped, prose is wrapped by display width
// (East Asian wide characters count as two columns) and every formula span
// is framed with a rounded border in the accent color.
package render
