// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ingest

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	charmlog "github.com/charmbracelet/log"
	"github.com/jeranaias/textkit/internal/chunk"
	"github.com/jeranaias/textkit/internal/logger"
	"github.com/jeranaias/textkit/internal/reasoning"
	"github.com/jeranaias/textkit/internal/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const chatStream = `{"model":"qwen3","message":{"role":"assistant","content":"<think>plan"}}
{"model":"qwen3","message":{"role":"assistant","content":"</think>Hello. "}}
this is not json

{"model":"qwen3","message":{"role":"assistant","content":"World."}}
{"model":"qwen3","message":{"role":"assistant","content":""},"done":true,"done_reason":"stop","eval_count":3,"eval_duration":1000000000}
`

func collect(t *testing.T, input string, opts Options) ([]Update, *Reader) {
	t.Helper()
	r := NewReader(strings.NewReader(input), opts)
	var updates []Update
	require.NoError(t, r.Process(context.Background(), func(u Update) {
		updates = append(updates, u)
	}))
	return updates, r
}

func TestProcess_ChatStream(t *testing.T) {
	updates, r := collect(t, chatStream, Options{MaxChunkSize: 100})
	require.Len(t, updates, 4)

	assert.Equal(t, "<think>plan", updates[0].Raw)
	assert.Equal(t, "", updates[0].Visible)
	assert.True(t, updates[0].Thinking)

	assert.Equal(t, "</think>Hello. ", updates[1].Delta)
	assert.Equal(t, "Hello.", updates[1].Visible)
	assert.False(t, updates[1].Thinking)

	assert.Equal(t, "Hello. World.", updates[2].Visible)
	require.Len(t, updates[2].Chunks, 1)
	assert.Equal(t, []string{"Hello.", "World."}, updates[2].Chunks[0].Sentences)

	final := updates[3]
	assert.True(t, final.Done)
	assert.Equal(t, "", final.Delta)
	assert.Equal(t, "stop", final.DoneReason)
	assert.Equal(t, "qwen3", final.Model)
	assert.Equal(t, 3, final.Tokens)
	assert.Equal(t, time.Second, final.Duration)
	assert.InDelta(t, 3.0, final.TokensPerSecond(), 0.001)

	assert.Equal(t, final, r.Result())
	assert.Equal(t, "qwen3", r.Model())
	assert.Equal(t, 3, r.TokenCount())
	assert.Equal(t, "<think>plan</think>Hello. World.", r.Accumulated())
}

func TestProcess_LogsToContextLogger(t *testing.T) {
	var buf bytes.Buffer
	log := charmlog.NewWithOptions(&buf, charmlog.Options{Level: charmlog.DebugLevel})
	ctx := logger.WithContext(context.Background(), log)

	r := NewReader(strings.NewReader(chatStream), Options{})
	require.NoError(t, r.Process(ctx, func(Update) {}))

	out := buf.String()
	assert.Contains(t, out, "skipping malformed stream line")
	assert.Contains(t, out, "stream complete")
}

func TestProcess_GenerateStreamWithoutTrailingNewline(t *testing.T) {
	input := `{"response":"Hi "}` + "\n" + `{"response":"there."}`
	updates, r := collect(t, input, Options{})

	require.Len(t, updates, 2)
	assert.Equal(t, "Hi there.", updates[1].Visible)
	assert.Nil(t, updates[1].Chunks)
	assert.False(t, r.Result().Done)
}

func TestProcess_Normalize(t *testing.T) {
	input := `{"response":"Cafe\u0301."}` + "\n"

	updates, _ := collect(t, input, Options{Normalize: true})
	require.Len(t, updates, 1)
	assert.Equal(t, "Café.", updates[0].Visible)
	assert.Equal(t, 5, util.Length(updates[0].Raw))
	assert.Len(t, []rune(updates[0].Raw), 5)

	updates, _ = collect(t, input, Options{})
	assert.Len(t, []rune(updates[0].Raw), 6)
}

func TestProcess_CustomTags(t *testing.T) {
	input := `{"response":"[r]x[/r] answer"}` + "\n"
	updates, _ := collect(t, input, Options{Tags: []reasoning.TagPair{{Open: "[r]", Close: "[/r]"}}})

	require.Len(t, updates, 1)
	assert.Equal(t, "answer", updates[0].Visible)
}

func TestProcess_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	r := NewReader(strings.NewReader(chatStream), Options{})
	err := r.Process(ctx, func(Update) { called = true })

	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}

func TestProcess_InvalidChunkMode(t *testing.T) {
	r := NewReader(strings.NewReader(chatStream), Options{MaxChunkSize: 10, Mode: chunk.Mode(9)})
	err := r.Process(context.Background(), func(Update) {})
	assert.True(t, errors.Is(err, util.ErrInvalidArgument))
}

func TestProcess_EmptyStream(t *testing.T) {
	updates, r := collect(t, "", Options{})
	assert.Empty(t, updates)
	assert.Equal(t, Update{}, r.Result())
}
