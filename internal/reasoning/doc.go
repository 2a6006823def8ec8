// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package reasoning removes model "thinking" blocks before text is shown.
//
// A block runs from a TagPair's open marker through the first close marker
// after it. StripWith removes one block per configured pair; callers that
// expect several blocks configure several pairs or call it again.
//
// An unterminated block hides everything: StripWith returns "" so partial
// reasoning never reaches the screen. InProgress lets a streaming caller show
// a status line in the meantime.
package reasoning
