// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"strings"

	"github.com/jeranaias/textkit/internal/storage"
)

// TextExporter writes each visible message as "Role:" followed by its text,
// with a blank line between messages.
type TextExporter struct {
	options *Options
}

// NewTextExporter creates a new plain text exporter.
func NewTextExporter(opts *Options) *TextExporter {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &TextExporter{options: opts}
}

// Export converts a conversation to plain text.
func (e *TextExporter) Export(conv *storage.Conversation) ([]byte, error) {
	msgs, err := visible(conv, e.options.Tags)
	if err != nil {
		return nil, err
	}

	blocks := make([]string, 0, len(msgs))
	for _, msg := range msgs {
		label := roleLabel(msg.Role) + ":"
		if e.options.IncludeTimestamps {
			label += " [" + formatTimestamp(msg.Timestamp) + "]"
		}
		blocks = append(blocks, label+"\n"+msg.Text)
	}

	out := strings.Join(blocks, "\n\n")
	if out != "" {
		out += "\n"
	}
	return []byte(out), nil
}

// FileExtension returns the file extension for plain text.
func (e *TextExporter) FileExtension() string {
	return ".txt"
}

// MimeType returns the MIME type for plain text.
func (e *TextExporter) MimeType() string {
	return "text/plain"
}
