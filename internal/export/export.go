// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/jeranaias/textkit/internal/boundary"
	"github.com/jeranaias/textkit/internal/reasoning"
	"github.com/jeranaias/textkit/internal/storage"
	"github.com/jeranaias/textkit/internal/util"
)

// =============================================================================
// EXPORT INTERFACE
// =============================================================================

// Exporter renders a conversation in one output format. Every exporter
// strips reasoning blocks first and skips messages left empty.
type Exporter interface {
	Export(conv *storage.Conversation) ([]byte, error)
	FileExtension() string // with the dot: ".md"
	MimeType() string
}

// Validation errors returned by every exporter.
var (
	ErrNilConversation = errors.New("conversation is nil")
	ErrNoMessages      = errors.New("conversation has no messages")
)

// =============================================================================
// EXPORT OPTIONS
// =============================================================================

// Options is shared by all exporters.
type Options struct {
	// OutputDir receives ExportToFile output. Empty means ".".
	OutputDir string

	// IncludeMetadata adds a header with title, model, date and counts.
	IncludeMetadata bool

	IncludeTimestamps bool

	// Theme is "light" or "dark" and only affects HTML.
	Theme string

	// Tags are the reasoning pairs removed from every message.
	Tags []reasoning.TagPair

	// Delimiters mark the formula spans the HTML exporter hands to the
	// client-side renderer.
	Delimiters []boundary.DelimiterPair
}

// DefaultOptions mirrors the [export] section of the default config.
func DefaultOptions() *Options {
	return &Options{
		OutputDir:         ".",
		IncludeMetadata:   true,
		IncludeTimestamps: true,
		Theme:             "dark",
		Tags:              reasoning.DefaultTags(),
	}
}

// ByFormat returns the exporter for a format name: text, markdown (md),
// html (htm) or json.
func ByFormat(name string, opts *Options) (Exporter, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "text", "txt":
		return NewTextExporter(opts), nil
	case "markdown", "md":
		return NewMarkdownExporter(opts), nil
	case "html", "htm":
		e, err := NewHTMLExporter(opts)
		if err != nil {
			return nil, err
		}
		return e, nil
	case "json":
		return NewJSONExporter(opts), nil
	default:
		return nil, fmt.Errorf("unsupported export format %q: %w", name, util.ErrInvalidArgument)
	}
}

// =============================================================================
// EXPORT FUNCTIONS
// =============================================================================

// ExportToFile writes conv to a new file in opts.OutputDir and returns its
// path. The name combines the sanitized title with the current time, and the
// write is atomic.
func ExportToFile(conv *storage.Conversation, exporter Exporter, opts *Options) (string, error) {
	if opts == nil {
		opts = DefaultOptions()
	}

	ext := exporter.FileExtension()
	content, err := exporter.Export(conv)
	if err != nil {
		return "", fmt.Errorf("export %s: %w", ext, err)
	}

	// A title like "notes.md" would otherwise end up as "notes.md_..._.md".
	title := util.ReplaceSuffix(sanitizeFilename(conv.DisplayTitle()), ext, "")
	filename := "conversation_" + title + "_" + time.Now().Format("20060102_150405") + ext

	dir := opts.OutputDir
	if dir == "" {
		dir = "."
	}
	outputPath := filepath.Join(dir, filename)
	if err := util.AtomicWriteFileWithDir(outputPath, content, 0644, 0755); err != nil {
		return "", fmt.Errorf("write %s: %w", outputPath, err)
	}
	return outputPath, nil
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// visibleMessage is a message with its reasoning removed.
type visibleMessage struct {
	storage.Message
	Text string
}

// visible validates conv and returns its messages with reasoning stripped.
// Messages with nothing visible are dropped.
func visible(conv *storage.Conversation, tags []reasoning.TagPair) ([]visibleMessage, error) {
	if conv == nil {
		return nil, ErrNilConversation
	}
	if len(conv.Messages) < 1 {
		return nil, ErrNoMessages
	}
	if tags == nil {
		tags = reasoning.DefaultTags()
	}

	msgs := make([]visibleMessage, 0, len(conv.Messages))
	for _, m := range conv.Messages {
		if text := reasoning.StripWith(m.Content, tags); text != "" {
			msgs = append(msgs, visibleMessage{Message: m, Text: text})
		}
	}
	return msgs, nil
}

// roleLabel returns a capitalized role name.
func roleLabel(role string) string {
	if role == "" {
		return "Unknown"
	}
	first, size := utf8.DecodeRuneInString(role)
	return string(unicode.ToUpper(first)) + strings.ToLower(role[size:])
}

// sanitizeFilename makes s safe as a file name on Windows and Unix. It
// keeps at most 50 characters, maps whitespace to '_' and path or shell
// metacharacters to '-'.
func sanitizeFilename(s string) string {
	s = strings.Map(func(r rune) rune {
		switch {
		case r == ' ', r == '\t', r == '\n', r == '\r':
			return '_'
		case strings.ContainsRune(`/\:*?"<>|`, r), r < 32, r == 127:
			return '-'
		default:
			return r
		}
	}, util.SubstringTo(s, 50))
	if s == "" {
		return "conversation"
	}
	return s
}

func formatTimestamp(t time.Time) string {
	return t.Format(time.DateTime)
}

// formatShortTimestamp is the per-message time of day.
func formatShortTimestamp(t time.Time) string {
	return t.Format(time.TimeOnly)
}
