// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chunk

import (
	"errors"
	"testing"

	"github.com/jeranaias/textkit/internal/boundary"
	"github.com/jeranaias/textkit/internal/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = "Hi there. This is a test. Bye."

// =============================================================================
// PRESERVE MODE
// =============================================================================

func TestChunks_Preserve(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		max      int
		expected []string
	}{
		{"each sentence alone", sample, 10, []string{"Hi there.", "This is a test.", "Bye."}},
		{"everything fits", sample, 100, []string{sample}},
		{"exactly at limit splits", "Ab. Cd.", 7, []string{"Ab.", "Cd."}},
		{"one under limit joins", "Ab. Cd.", 8, []string{"Ab. Cd."}},
		{"pairs", "Aa. Bb. Cc. Dd. Ee.", 8, []string{"Aa. Bb.", "Cc. Dd.", "Ee."}},
		{"limit of one", "Aa. Bb.", 1, []string{"Aa.", "Bb."}},
		{"oversized sentence alone", "Short. This sentence is far too long. Ok.", 10,
			[]string{"Short.", "This sentence is far too long.", "Ok."}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			chunks, err := Chunks(tc.input, tc.max)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, Texts(chunks))
		})
	}
}

func TestChunks_PreserveKeepsSentences(t *testing.T) {
	chunks, err := Chunks(sample, 21)
	require.NoError(t, err)
	require.Len(t, chunks, 2)

	assert.Equal(t, []string{"Hi there."}, chunks[0].Sentences)
	assert.Equal(t, []string{"This is a test.", "Bye."}, chunks[1].Sentences)
	assert.Equal(t, 20, chunks[1].Length())
}

func TestChunks_PreserveSkipsEmptySentences(t *testing.T) {
	chunks, err := Chunks("   ", 10)
	require.NoError(t, err)
	assert.Empty(t, chunks)
}

// =============================================================================
// COMPAT MODE
// =============================================================================

func TestChunks_Compat(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		max      int
		expected []string
	}{
		{"overflow drops sentence", sample, 10, []string{"Hi there.", "Bye."}},
		{"last sentence always absorbed", "Ab. Cd.", 7, []string{"Ab. Cd."}},
		{"leading oversized sentence", "Averylongword. Hi. Yo.", 5, []string{"", "Hi. Yo."}},
		{"everything fits", sample, 100, []string{sample}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			chunks, err := Chunks(tc.input, tc.max, WithMode(ModeCompat))
			require.NoError(t, err)
			assert.Equal(t, tc.expected, Texts(chunks))
		})
	}
}

func TestChunks_CompatWhitespaceOnly(t *testing.T) {
	chunks, err := Chunks("   ", 10, WithMode(ModeCompat))
	require.NoError(t, err)
	assert.Equal(t, []string{""}, Texts(chunks))
}

// =============================================================================
// SHARED BEHAVIOR
// =============================================================================

func TestChunks_InvalidSize(t *testing.T) {
	for _, size := range []int{0, -1, -100} {
		chunks, err := Chunks(sample, size)
		require.Error(t, err)
		assert.True(t, errors.Is(err, util.ErrInvalidArgument))
		assert.Nil(t, chunks)
	}
}

func TestChunks_InvalidMode(t *testing.T) {
	_, err := Chunks(sample, 10, WithMode(Mode(42)))
	assert.True(t, errors.Is(err, util.ErrInvalidArgument))
}

func TestChunks_EmptyText(t *testing.T) {
	for _, mode := range []Mode{ModePreserve, ModeCompat} {
		chunks, err := Chunks("", 10, WithMode(mode))
		require.NoError(t, err)
		assert.Empty(t, chunks, mode.String())
	}
}

func TestChunks_CountsCharactersNotBytes(t *testing.T) {
	// e + U+0301: 9 characters, 10 runes, 11 bytes
	input := "Café. Ok."
	chunks, err := Chunks(input, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{input}, Texts(chunks))
	assert.Equal(t, 9, chunks[0].Length())
}

func TestChunks_WithSplitter(t *testing.T) {
	input := "Dr. Smith arrived. He left."

	chunks, err := Chunks(input, 20)
	require.NoError(t, err)
	assert.Equal(t, []string{"Dr. Smith arrived.", "He left."}, Texts(chunks))

	chunks, err = Chunks(input, 20, WithSplitter(boundary.UAX29Splitter{}))
	require.NoError(t, err)
	assert.Equal(t, []string{"Dr. Smith arrived.", "He left."}, Texts(chunks))
	assert.Equal(t, []string{"Dr.", "Smith arrived."}, chunks[0].Sentences)
}

func TestChunks_NilSplitterUsesDefault(t *testing.T) {
	chunks, err := Chunks(sample, 100, WithSplitter(nil))
	require.NoError(t, err)
	require.Len(t, chunks, 1)
	assert.Len(t, chunks[0].Sentences, 3)
}

func TestParseMode(t *testing.T) {
	testCases := []struct {
		input    string
		expected Mode
		wantErr  bool
	}{
		{"", ModePreserve, false},
		{"preserve", ModePreserve, false},
		{" Compat ", ModeCompat, false},
		{"lossy", ModePreserve, true},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			mode, err := ParseMode(tc.input)
			if tc.wantErr {
				assert.True(t, errors.Is(err, util.ErrInvalidArgument))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, mode)
		})
	}
}

func TestMode_String(t *testing.T) {
	assert.Equal(t, "preserve", ModePreserve.String())
	assert.Equal(t, "compat", ModeCompat.String())
	assert.Equal(t, "unknown", Mode(9).String())
}
