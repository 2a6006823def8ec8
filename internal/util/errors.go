// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package util

import "errors"

// ErrInvalidArgument reports a structurally invalid parameter, such as a
// chunk size or group width below 1. Callers treat it as a programmer error.
var ErrInvalidArgument = errors.New("invalid argument")

// ErrInvalidHex is returned by ParseHexColor for input that is not a 6 or 8
// digit hex color.
var ErrInvalidHex = errors.New("invalid hex color")
