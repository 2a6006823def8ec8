// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// json_output.go - JSON output support for scripting and pipelines.
//
// Every command accepts --json and then writes one JSONResponse to stdout.

package cli

import (
	"encoding/json"
	"io"
	"time"
)

// JSONResponse is the envelope written by every command in --json mode.
// Error is null on success; Data is null on failure.
type JSONResponse struct {
	Success   bool        `json:"success"`
	Data      interface{} `json:"data"`
	Error     *string     `json:"error"`
	Timestamp string      `json:"timestamp"` // RFC 3339, UTC
	Command   string      `json:"command,omitempty"`
}

func now() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// NewJSONResponse wraps the payload of a successful command.
func NewJSONResponse(command string, data interface{}) *JSONResponse {
	return &JSONResponse{Success: true, Data: data, Timestamp: now(), Command: command}
}

// NewJSONErrorResponse wraps a failure.
func NewJSONErrorResponse(command string, err error) *JSONResponse {
	msg := err.Error()
	return &JSONResponse{Error: &msg, Timestamp: now(), Command: command}
}

// Write encodes the response to w as indented JSON.
func (r *JSONResponse) Write(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// =============================================================================
// PAYLOADS
// =============================================================================

// ChunkData is the --json payload of the chunk command.
type ChunkData struct {
	MaxSize int         `json:"max_size"`
	Mode    string      `json:"mode"`
	Rule    string      `json:"rule"`
	Chunks  []ChunkInfo `json:"chunks"`
}

// ChunkInfo describes one chunk.
type ChunkInfo struct {
	Text      string   `json:"text"`
	Length    int      `json:"length"`
	Sentences []string `json:"sentences"`
}

// ColorData is the --json payload of the color command.
type ColorData struct {
	Input string  `json:"input"`
	Hex   string  `json:"hex"`
	R     float64 `json:"r"`
	G     float64 `json:"g"`
	B     float64 `json:"b"`
	A     float64 `json:"a"`
}

// SliceData is the --json payload of the slice command.
type SliceData struct {
	Text  string `json:"text"`
	Found bool   `json:"found"`
}

// ExportData is the --json payload of the export command.
type ExportData struct {
	Path   string `json:"path"`
	Format string `json:"format"`
	Title  string `json:"title"`
}

// VersionData is the --json payload of the version command.
type VersionData struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit"`
	BuildDate string `json:"build_date"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}
