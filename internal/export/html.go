// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"encoding/json"
	"fmt"
	"html"
	"regexp"
	"strings"
	"time"

	"github.com/jeranaias/textkit/internal/markup"
	"github.com/jeranaias/textkit/internal/storage"
)

var (
	codeBlockRegex  = regexp.MustCompile("```([a-zA-Z0-9_+-]*)\n([\\s\\S]*?)```")
	inlineCodeRegex = regexp.MustCompile("`([^`]+)`")
)

// =============================================================================
// HTML EXPORTER
// =============================================================================

// HTMLExporter writes a standalone page with inline CSS. Formula spans are emitted in <div class="math"> elements and typeset in
// the browser.
type HTMLExporter struct {
	options  *Options
	splitter *markup.Splitter
}

// NewHTMLExporter creates a new HTML exporter. It fails when
// opts.Delimiters holds an incomplete pair.
func NewHTMLExporter(opts *Options) (*HTMLExporter, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	splitter, err := markup.NewSplitter(opts.Delimiters...)
	if err != nil {
		return nil, err
	}
	return &HTMLExporter{options: opts, splitter: splitter}, nil
}

// Export renders the page. Prose is escaped and formatted per paragraph.
func (e *HTMLExporter) Export(conv *storage.Conversation) ([]byte, error) {
	msgs, err := visible(conv, e.options.Tags)
	if err != nil {
		return nil, err
	}
	title := html.EscapeString(conv.DisplayTitle())

	var sb strings.Builder

	fmt.Fprintf(&sb, pageHead, title, conv.CreatedAt.Format(time.RFC3339))
	sb.WriteString(css)
	sb.WriteString(e.mathScript())
	sb.WriteString("</head>\n")
	sb.WriteString(fmt.Sprintf("<body class=\"%s-theme\">\n", e.theme()))

	sb.WriteString("    <div class=\"container\">\n")

	if e.options.IncludeMetadata {
		fmt.Fprintf(&sb, pageHeader, title, html.EscapeString(conv.Model), formatTimestamp(conv.CreatedAt), len(msgs))
	}

	sb.WriteString("        <main class=\"conversation\">\n")
	for _, msg := range msgs {
		sb.WriteString(e.renderMessage(msg))
	}
	sb.WriteString("        </main>\n")

	sb.WriteString("    </div>\n</body>\n</html>\n")
	return []byte(sb.String()), nil
}

func (e *HTMLExporter) FileExtension() string {
	return ".html"
}

func (e *HTMLExporter) MimeType() string {
	return "text/html"
}

func (e *HTMLExporter) theme() string {
	if e.options.Theme == "light" {
		return "light"
	}
	return "dark"
}

// =============================================================================
// RENDERING FUNCTIONS
// =============================================================================

// renderMessage renders one message card.
func (e *HTMLExporter) renderMessage(msg visibleMessage) string {
	var sb strings.Builder

	roleClass := html.EscapeString(strings.ToLower(msg.Role))
	sb.WriteString(fmt.Sprintf("            <div class=\"message %s-message\">\n", roleClass))

	sb.WriteString("                <div class=\"message-header\">\n")
	sb.WriteString(fmt.Sprintf("                    <span class=\"role-label\">%s</span>\n", html.EscapeString(roleLabel(msg.Role))))
	if e.options.IncludeTimestamps {
		sb.WriteString(fmt.Sprintf("                    <span class=\"timestamp\">%s</span>\n", formatShortTimestamp(msg.Timestamp)))
	}
	sb.WriteString("                </div>\n")

	sb.WriteString("                <div class=\"message-content\">\n")
	sb.WriteString(e.formatContent(msg.Text))
	sb.WriteString("\n                </div>\n")
	sb.WriteString("            </div>\n")

	return sb.String()
}

// formatContent splits content into prose and formula spans. Prose is
// escaped and formatted; formulas are escaped and otherwise left verbatim.
func (e *HTMLExporter) formatContent(content string) string {
	var parts []string
	for _, span := range e.splitter.Split(content) {
		if span.IsMarkup() {
			parts = append(parts, fmt.Sprintf("<div class=\"math\">%s</div>", html.EscapeString(span.Text)))
			continue
		}
		if p := formatProse(span.Text); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, "\n")
}

// formatProse converts code fences, inline code and paragraphs.
func formatProse(content string) string {
	content = html.EscapeString(strings.TrimSpace(content))

	content = codeBlockRegex.ReplaceAllStringFunc(content, func(match string) string {
		parts := codeBlockRegex.FindStringSubmatch(match)
		if len(parts) != 3 {
			return match
		}
		lang := parts[1]
		code := parts[2]

		langLabel := ""
		if lang != "" {
			langLabel = fmt.Sprintf("<div class=\"code-lang\">%s</div>", lang)
		}
		// Newlines inside <pre> survive the paragraph pass below.
		code = strings.ReplaceAll(strings.TrimSpace(code), "\n", "&#10;")
		return fmt.Sprintf("<div class=\"code-block\">%s<pre><code class=\"language-%s\">%s</code></pre></div>",
			langLabel, lang, code)
	})

	content = inlineCodeRegex.ReplaceAllString(content, "<code class=\"inline-code\">$1</code>")

	var formatted []string
	inParagraph := false
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)

		switch {
		case strings.HasPrefix(line, "<div class=\"code-block\">"):
			if inParagraph {
				formatted = append(formatted, "</p>")
				inParagraph = false
			}
			formatted = append(formatted, line)
		case line == "":
			if inParagraph {
				formatted = append(formatted, "</p>")
				inParagraph = false
			}
		case !inParagraph:
			formatted = append(formatted, "<p>"+line)
			inParagraph = true
		default:
			formatted = append(formatted, "<br>"+line)
		}
	}
	if inParagraph {
		formatted = append(formatted, "</p>")
	}

	return strings.Join(formatted, "\n")
}

// mathScript loads the client-side formula renderer, configured with the
// exporter's delimiter pairs.
func (e *HTMLExporter) mathScript() string {
	type delimiter struct {
		Left    string `json:"left"`
		Right   string `json:"right"`
		Display bool   `json:"display"`
	}
	var delims []delimiter
	for _, p := range e.splitter.Pairs() {
		delims = append(delims, delimiter{Left: p.Open, Right: p.Close, Display: true})
	}
	config, err := json.Marshal(delims)
	if err != nil {
		config = []byte("[]")
	}

	return `    <link rel="stylesheet" href="https://cdn.jsdelivr.net/npm/katex@0.16.11/dist/katex.min.css">
    <script defer src="https://cdn.jsdelivr.net/npm/katex@0.16.11/dist/katex.min.js"></script>
    <script defer src="https://cdn.jsdelivr.net/npm/katex@0.16.11/dist/contrib/auto-render.min.js"></script>
    <script>
        document.addEventListener('DOMContentLoaded', function() {
            document.querySelectorAll('.math').forEach(function(el) {
                renderMathInElement(el, {delimiters: ` + string(config) + `, throwOnError: false});
            });
        });
    </script>
`
}

// =============================================================================
// PAGE TEMPLATE
// =============================================================================

// pageHeader takes the escaped title and model, the creation time and the
// number of visible messages.
const pageHeader = `        <header class="header">
            <h1>%s</h1>
            <div class="metadata">
                <span class="meta-item"><strong>Model:</strong> %s</span>
                <span class="meta-item"><strong>Created:</strong> %s</span>
                <span class="meta-item"><strong>Messages:</strong> %d</span>
            </div>
        </header>
`

// pageHead takes the escaped title and the RFC 3339 creation time.
const pageHead = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>%s</title>
    <meta name="generator" content="textkit">
    <meta name="date" content="%s">
`

const css = `    <style>
        * {
            margin: 0;
            padding: 0;
            box-sizing: border-box;
        }

        :root {
            --font-sans: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, "Helvetica Neue", Arial, sans-serif;
            --font-mono: "SF Mono", "Monaco", "Inconsolata", "Fira Code", "Source Code Pro", monospace;
        }

        /* Dark theme (default) */
        .dark-theme {
            --bg-primary: #1a1b26;
            --bg-secondary: #24283b;
            --bg-tertiary: #414868;
            --text-primary: #c0caf5;
            --text-muted: #565f89;
            --user-bg: #1f2335;
            --assistant-bg: #24283b;
            --code-bg: #1a1b26;
            --accent-blue: #7aa2f7;
            --accent-green: #9ece6a;
            --accent-purple: #bb9af7;
        }

        /* Light theme */
        .light-theme {
            --bg-primary: #ffffff;
            --bg-secondary: #f7f8fa;
            --bg-tertiary: #e1e4e8;
            --text-primary: #24292e;
            --text-muted: #6a737d;
            --user-bg: #f6f8fa;
            --assistant-bg: #ffffff;
            --code-bg: #f6f8fa;
            --accent-blue: #0366d6;
            --accent-green: #22863a;
            --accent-purple: #6f42c1;
        }

        body {
            font-family: var(--font-sans);
            line-height: 1.6;
            color: var(--text-primary);
            background: var(--bg-primary);
            padding: 20px;
        }

        .container {
            max-width: 900px;
            margin: 0 auto;
            background: var(--bg-secondary);
            border-radius: 12px;
        }

        .header {
            padding: 32px;
            background: var(--bg-tertiary);
        }

        .metadata {
            display: flex;
            flex-wrap: wrap;
            gap: 16px;
            font-size: 14px;
        }

        .conversation {
            padding: 24px 32px;
        }

        .message {
            margin-bottom: 24px;
            padding: 20px;
            border-radius: 8px;
            border-left: 4px solid transparent;
        }

        .user-message {
            background: var(--user-bg);
            border-left-color: var(--accent-blue);
        }

        .assistant-message {
            background: var(--assistant-bg);
            border-left-color: var(--accent-green);
        }

        .system-message {
            background: var(--bg-tertiary);
            border-left-color: var(--accent-purple);
        }

        .message-header {
            display: flex;
            justify-content: space-between;
            margin-bottom: 12px;
            font-weight: 600;
        }

        .timestamp {
            color: var(--text-muted);
            font-size: 13px;
        }

        .message-content p {
            margin-bottom: 12px;
        }

        .math {
            margin: 12px 0;
            overflow-x: auto;
        }

        .code-block pre, .inline-code {
            font-family: var(--font-mono);
            background: var(--code-bg);
        }

        .code-block pre {
            padding: 16px;
            border-radius: 6px;
            overflow-x: auto;
            white-space: pre;
        }

        .code-lang {
            font-size: 12px;
            color: var(--text-muted);
        }
    </style>
`
