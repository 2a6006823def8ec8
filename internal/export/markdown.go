// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/jeranaias/textkit/internal/storage"
)

// =============================================================================
// MARKDOWN EXPORTER
// =============================================================================

// MarkdownExporter exports conversations to Markdown format. Formula spans
// are left as written; Markdown renderers with math support pick up both
// default delimiter pairs.
type MarkdownExporter struct {
	options *Options
}

const frontMatter = `---
title: %s
model: %s
date: %s
updated: %s
messages: %d
generator: textkit
---

`

// NewMarkdownExporter returns a Markdown exporter. nil opts means
// DefaultOptions.
func NewMarkdownExporter(opts *Options) *MarkdownExporter {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &MarkdownExporter{options: opts}
}

// Export writes optional YAML front matter, a title heading and one
// level-3 section per message.
func (e *MarkdownExporter) Export(conv *storage.Conversation) ([]byte, error) {
	msgs, err := visible(conv, e.options.Tags)
	if err != nil {
		return nil, err
	}
	title := conv.DisplayTitle()

	var sb strings.Builder

	if e.options.IncludeMetadata {
		fmt.Fprintf(&sb, frontMatter,
			escapeYAML(title), escapeYAML(conv.Model),
			conv.CreatedAt.Format(time.RFC3339), conv.UpdatedAt.Format(time.RFC3339),
			len(msgs))
	}

	heading := strings.Join(strings.Fields(title), " ")
	sb.WriteString("# " + escapeMarkdown(heading) + "\n\n")

	for i, msg := range msgs {
		if i > 0 {
			sb.WriteString("---\n\n")
		}
		sb.WriteString("### " + roleLabel(msg.Role))
		if e.options.IncludeTimestamps {
			sb.WriteString(" <sub>" + formatShortTimestamp(msg.Timestamp) + "</sub>")
		}
		sb.WriteString("\n\n" + msg.Text + "\n\n")
	}

	return []byte(strings.TrimRight(sb.String(), "\n") + "\n"), nil
}

func (e *MarkdownExporter) FileExtension() string {
	return ".md"
}

func (e *MarkdownExporter) MimeType() string {
	return "text/markdown"
}

// =============================================================================
// ESCAPING HELPERS
// =============================================================================

// markdownEscaper covers the characters that change a heading's meaning.
var markdownEscaper = strings.NewReplacer(
	"#", `\#`, "*", `\*`, "_", `\_`, "[", `\[`, "]", `\]`,
)

func escapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}

var yamlEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`, "\r", `\r`)

// escapeYAML double-quotes s when it holds YAML indicators or edge spaces.
func escapeYAML(s string) string {
	if !strings.ContainsAny(s, ":#|>@`\"'[]{}!%&*\n\r\\") && strings.TrimSpace(s) == s {
		return s
	}
	return `"` + yamlEscaper.Replace(s) + `"`
}
