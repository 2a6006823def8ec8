// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package reasoning

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// =============================================================================
// STRIP TESTS
// =============================================================================

func TestStrip(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{"block between words", "Visible <think>hidden</think> text", "Visible text"},
		{"leading block", "<think>plan</think>\n\nAnswer.", "Answer."},
		{"trailing block", "Answer. <think>afterthought</think>", "Answer."},
		{"no space before block", "a<think>x</think> b", "a b"},
		{"no space after block", "a <think>x</think>b", "a b"},
		{"no space either side", "a<think>x</think>b", "ab"},
		{"multiline block", "<think>\nstep 1\nstep 2\n</think>\nDone", "Done"},
		{"unterminated block", "<think>secret... no close marker", ""},
		{"unterminated after text", "Partial answer <think>still thinking", ""},
		{"close before open", "</think> hi <think>", ""},
		{"close only", "done </think>", "done </think>"},
		{"no markers", "  plain text \n", "plain text"},
		{"empty", "", ""},
		{"only first block removed", "<think>a</think>x<think>b</think>y", "x<think>b</think>y"},
		{"second opener survives first pass", "a<think>x</think><think>", "a<think>"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Strip(tc.input))
		})
	}
}

// One pass handles one block per pair. A later opener is left for the next
// pass, which then sees an unterminated block.
func TestStrip_NotIdempotentAcrossBlocks(t *testing.T) {
	once := Strip("a<think>x</think><think>")
	assert.Equal(t, "a<think>", once)
	assert.Equal(t, "", Strip(once))
}

func TestStripWith_CustomPair(t *testing.T) {
	tags := []TagPair{{Open: "<open>", Close: "</close>"}}

	assert.Equal(t, "", StripWith("<open>secret</close... no close marker", tags))
	assert.Equal(t, "Visible text", StripWith("Visible <open>hidden</close> text", tags))
	assert.Equal(t, "<think>kept</think>", StripWith("<think>kept</think>", tags))
}

func TestStripWith_PairsInOrder(t *testing.T) {
	tags := []TagPair{
		{Open: "<think>", Close: "</think>"},
		{Open: "<reflect>", Close: "</reflect>"},
	}

	assert.Equal(t, "A B C", StripWith("A <think>x</think> B <reflect>y</reflect> C", tags))
	assert.Equal(t, "", StripWith("A <think>x</think> B <reflect>y", tags))

	// Two blocks of the same kind need the pair twice
	twice := []TagPair{tags[0], tags[0]}
	assert.Equal(t, "x y", StripWith("<think>a</think>x <think>b</think> y", twice))
}

func TestStripWith_IgnoresIncompletePairs(t *testing.T) {
	tags := []TagPair{{Open: "", Close: "</think>"}, {Open: "<think>", Close: ""}}
	assert.Equal(t, "<think>x</think> y", StripWith(" <think>x</think> y ", tags))
	assert.Equal(t, "y", StripWith(" y ", nil))
}

func TestDefaultTags_FreshCopy(t *testing.T) {
	tags := DefaultTags()
	tags[0].Open = "<changed>"
	assert.Equal(t, "<think>", DefaultTags()[0].Open)
}

// =============================================================================
// INSPECTION TESTS
// =============================================================================

func TestReasoning(t *testing.T) {
	tags := DefaultTags()

	got, ok := Reasoning("<think> plan it </think>Answer", tags)
	assert.True(t, ok)
	assert.Equal(t, "plan it", got)

	_, ok = Reasoning("no reasoning here", tags)
	assert.False(t, ok)

	_, ok = Reasoning("<think>unfinished", tags)
	assert.False(t, ok)

	multi := []TagPair{{Open: "<reflect>", Close: "</reflect>"}, tags[0]}
	got, ok = Reasoning("<think>first</think><reflect>second</reflect>", multi)
	assert.True(t, ok)
	assert.Equal(t, "second", got, "pairs are tried in order")
}

func TestInProgress(t *testing.T) {
	tags := DefaultTags()

	testCases := []struct {
		input    string
		expected bool
	}{
		{"", false},
		{"plain answer", false},
		{"<think>partial", true},
		{"<think>done</think> answer", false},
		{"<think>a</think> then <think>b", true},
		{"<thi", false},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.expected, InProgress(tc.input, tags), tc.input)
	}
}

// =============================================================================
// PROPERTIES
// =============================================================================

func FuzzStrip(f *testing.F) {
	f.Add("Visible <think>hidden</think> text")
	f.Add("<think>open")
	f.Add("no tags at all  ")
	f.Add("</think><think>")

	const open = "<think>"

	f.Fuzz(func(t *testing.T, text string) {
		once := Strip(text)

		if once != strings.TrimSpace(once) {
			t.Fatalf("result not trimmed: %q", once)
		}
		if !strings.Contains(text, open) && once != strings.TrimSpace(text) {
			t.Fatalf("text without markers changed: %q -> %q", text, once)
		}
		// A single block is fully handled in one pass
		if strings.Count(text, open) <= 1 && !strings.Contains(once, open) {
			if twice := Strip(once); twice != once {
				t.Fatalf("not idempotent: %q -> %q -> %q", text, once, twice)
			}
		}
	})
}
