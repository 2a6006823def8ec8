// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for textkit.
//
// Supports both TOML and JSON configuration formats, with sensible defaults,
// environment variable overrides, and validation.
//
// # Key Types
//
//   - Config: main configuration structure
//   - ChunkConfig: chunk size, accumulation mode, sentence rule
//   - MarkupConfig, ReasoningConfig: delimiter and tag pair lists
//   - RenderConfig, ExportConfig, WatchConfig, LogConfig: collaborators
//
// # Configuration Precedence
//
// Configuration is loaded from (in order of precedence):
//   - Environment variables (TEXTKIT_*), including a .env file loaded by main
//   - ~/.textkit/config.toml
//   - ~/.textkit/config.json
//   - Built-in defaults
//
// # Usage
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	opts, err := cfg.ChunkOptions()
//	chunks, err := chunk.Chunks(text, cfg.Chunk.MaxSize, opts...)
//
//	clean := reasoning.StripWith(text, cfg.TagPairs())
package config
