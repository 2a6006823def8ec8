// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package ingest consumes a streamed Ollama response (NDJSON, chat or
// generate endpoint) and reports the visible text after every delta.
//
// Each Update carries the raw accumulation, the text with reasoning blocks
// stripped, whether a reasoning block is still open, and optionally the
// chunker output for the visible text. The whole prefix is re-segmented on
// every delta.
//
//	r := ingest.NewReader(resp.Body, ingest.Options{MaxChunkSize: 200})
//	err := r.Process(ctx, func(u ingest.Update) {
//	    fmt.Print(u.Delta)
//	})
//	final := r.Result()
package ingest
