// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package diff_test

import (
	"fmt"

	"github.com/jeranaias/textkit/internal/diff"
)

func ExampleCompare() {
	previous := "The sky is blue. Water is wet. Fire is hot."
	current := "The sky is blue. Water is very wet. Fire is hot."

	result := diff.Compare(previous, current, nil)
	fmt.Println(result.Summary())

	// Output:
	// +1 -1 sentences
}

func ExampleResult_Unified() {
	result := diff.Compare("One. Two. Three.", "One. Uno. Three.", nil)
	fmt.Print(result.Unified("a", "b"))

	// Output:
	// --- a
	// +++ b
	// @@ -1,3 +1,3 @@
	//  One.
	// -Two.
	// +Uno.
	//  Three.
}

func ExampleOp_Prefix() {
	fmt.Printf("%q %q %q\n", diff.Equal.Prefix(), diff.Insert.Prefix(), diff.Delete.Prefix())

	// Output:
	// " " "+" "-"
}
