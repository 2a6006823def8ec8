// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"encoding/json"

	"github.com/jeranaias/textkit/internal/storage"
)

// =============================================================================
// JSON EXPORTER
// =============================================================================

// JSONExporter writes the conversation as JSON. The document has the storage layout, so it can be loaded again with
// storage.LoadFile. Message content is written without reasoning blocks and
// messages with nothing visible are omitted.
type JSONExporter struct {
	options *Options
}

// NewJSONExporter returns a JSON exporter.
func NewJSONExporter(opts *Options) *JSONExporter {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &JSONExporter{options: opts}
}

func (e *JSONExporter) Export(conv *storage.Conversation) ([]byte, error) {
	msgs, err := visible(conv, e.options.Tags)
	if err != nil {
		return nil, err
	}

	out := *conv
	out.Title = conv.DisplayTitle()
	out.Messages = make([]storage.Message, 0, len(msgs))
	for _, msg := range msgs {
		m := msg.Message
		m.Content = msg.Text
		out.Messages = append(out.Messages, m)
	}
	return json.MarshalIndent(&out, "", "  ")
}

func (e *JSONExporter) FileExtension() string {
	return ".json"
}

func (e *JSONExporter) MimeType() string {
	return "application/json"
}
