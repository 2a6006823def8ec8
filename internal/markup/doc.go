// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package markup splits model output into plain text and display math.
//
// Markup regions are found with boundary.PairLocator. The built-in pairs are
// \[ ... \] and $$ ... $$; callers may pass their own. Markup spans keep their
// delimiters so a renderer can hand them to a formula engine unchanged.
//
//	spans := markup.Split("Compute $$x^2$$ now.")
//	// [{Compute  plain} {$$x^2$$ markup} { now. plain}]
package markup
