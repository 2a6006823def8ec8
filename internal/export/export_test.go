// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/jeranaias/textkit/internal/boundary"
	"github.com/jeranaias/textkit/internal/storage"
	"github.com/jeranaias/textkit/internal/util"
)

func sampleConversation() *storage.Conversation {
	ts := time.Date(2025, 3, 1, 10, 30, 0, 0, time.UTC)
	return &storage.Conversation{
		ID:        "c1",
		Title:     `Math "notes""`,
		Model:     "qwen3",
		CreatedAt: ts,
		UpdatedAt: ts,
		Messages: []storage.Message{
			{ID: "m1", Role: storage.RoleUser, Content: "Compute $$x^2$$ now.", Timestamp: ts},
			{ID: "m2", Role: storage.RoleAssistant, Content: "<think>easy</think>Done & dusted.", Timestamp: ts},
			{ID: "m3", Role: storage.RoleAssistant, Content: "<think>unfinished", Timestamp: ts},
		},
	}
}

func plainOptions() *Options {
	opts := DefaultOptions()
	opts.IncludeMetadata = false
	opts.IncludeTimestamps = false
	return opts
}

func TestTextExporter(t *testing.T) {
	out, err := NewTextExporter(plainOptions()).Export(sampleConversation())
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	want := "User:\nCompute $$x^2$$ now.\n\nAssistant:\nDone & dusted.\n"
	if string(out) != want {
		t.Errorf("Export() = %q, want %q", out, want)
	}
}

func TestTextExporter_Timestamps(t *testing.T) {
	opts := plainOptions()
	opts.IncludeTimestamps = true

	out, err := NewTextExporter(opts).Export(sampleConversation())
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if !strings.HasPrefix(string(out), "User: [2025-03-01 10:30:00]\n") {
		t.Errorf("missing timestamp label: %q", out)
	}
}

func TestMarkdownExporter(t *testing.T) {
	out, err := NewMarkdownExporter(DefaultOptions()).Export(sampleConversation())
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	result := string(out)

	for _, want := range []string{
		`title: "Math \"notes\""`,
		"model: qwen3",
		"messages: 2",
		`# Math "notes"`,
		"### User <sub>10:30:00</sub>\n\nCompute $$x^2$$ now.",
		"Done & dusted.",
	} {
		if !strings.Contains(result, want) {
			t.Errorf("output missing %q:\n%s", want, result)
		}
	}
	for _, unwanted := range []string{"easy", "unfinished", "<think>"} {
		if strings.Contains(result, unwanted) {
			t.Errorf("output leaks %q", unwanted)
		}
	}
}

// TestYAMLNewlineInjection tests that newlines are escaped in frontmatter.
func TestYAMLNewlineInjection(t *testing.T) {
	conv := sampleConversation()
	conv.Title = "Test\nInjection: malicious"

	out, err := NewMarkdownExporter(nil).Export(conv)
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if strings.Contains(string(out), "\nInjection: malicious\n") {
		t.Error("YAML injection: newline in title not escaped")
	}
	if !strings.Contains(string(out), `title: "Test\nInjection: malicious"`) {
		t.Errorf("expected escaped title, got:\n%s", out)
	}
}

func TestHTMLExporter(t *testing.T) {
	opts := DefaultOptions()
	opts.Theme = "light"
	e, err := NewHTMLExporter(opts)
	if err != nil {
		t.Fatalf("NewHTMLExporter failed: %v", err)
	}

	out, err := e.Export(sampleConversation())
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	result := string(out)

	for _, want := range []string{
		`<body class="light-theme">`,
		"<title>Math &#34;notes&#34;</title>",
		"<p>Compute\n</p>",
		`<div class="math">$$x^2$$</div>`,
		"<p>now.\n</p>",
		"<p>Done &amp; dusted.\n</p>",
		`"left":"$$"`,
		`<span class="meta-item"><strong>Messages:</strong> 2</span>`,
	} {
		if !strings.Contains(result, want) {
			t.Errorf("output missing %q", want)
		}
	}
	if strings.Contains(result, "easy") || strings.Contains(result, "unfinished") {
		t.Error("reasoning leaked into HTML")
	}
}

func TestHTMLExporter_EscapesContent(t *testing.T) {
	conv := sampleConversation()
	conv.Messages = []storage.Message{
		{Role: storage.RoleAssistant, Content: "<script>alert('xss')</script> and $$a<b$$"},
		{Role: storage.RoleUser, Content: "```go\nfmt.Println(1)\n```"},
	}

	e, err := NewHTMLExporter(nil)
	if err != nil {
		t.Fatal(err)
	}
	out, err := e.Export(conv)
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	result := string(out)

	if strings.Contains(result, "<script>alert") {
		t.Error("XSS vulnerability: script tag not escaped")
	}
	if !strings.Contains(result, `<div class="math">$$a&lt;b$$</div>`) {
		t.Error("formula not escaped inside math div")
	}
	if !strings.Contains(result, `<code class="language-go">fmt.Println(1)</code>`) {
		t.Errorf("code fence not converted:\n%s", result)
	}
}

func TestHTMLExporter_CustomDelimiters(t *testing.T) {
	opts := DefaultOptions()
	opts.Delimiters = []boundary.DelimiterPair{{Open: `\(`, Close: `\)`}}
	e, err := NewHTMLExporter(opts)
	if err != nil {
		t.Fatal(err)
	}

	conv := sampleConversation()
	conv.Messages = []storage.Message{{Role: storage.RoleUser, Content: `Inline \(a\) here`}}
	out, err := e.Export(conv)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(out), `<div class="math">\(a\)</div>`) {
		t.Error("custom delimiter span not emitted as math")
	}

	opts.Delimiters = []boundary.DelimiterPair{{Open: "$", Close: ""}}
	if _, err := NewHTMLExporter(opts); err == nil {
		t.Error("expected error for incomplete delimiter pair")
	}
}

func TestJSONExporter(t *testing.T) {
	out, err := NewJSONExporter(nil).Export(sampleConversation())
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	var conv storage.Conversation
	if err := json.Unmarshal(out, &conv); err != nil {
		t.Fatalf("output is not a conversation: %v", err)
	}
	if conv.Title != `Math "notes"` {
		t.Errorf("Title = %q", conv.Title)
	}
	if len(conv.Messages) != 2 {
		t.Fatalf("got %d messages, want 2", len(conv.Messages))
	}
	if conv.Messages[1].Content != "Done & dusted." {
		t.Errorf("content = %q", conv.Messages[1].Content)
	}
}

func TestExporters_Validation(t *testing.T) {
	html, err := NewHTMLExporter(nil)
	if err != nil {
		t.Fatal(err)
	}
	exporters := []Exporter{NewTextExporter(nil), NewMarkdownExporter(nil), html, NewJSONExporter(nil)}

	for _, e := range exporters {
		if _, err := e.Export(nil); !errors.Is(err, ErrNilConversation) {
			t.Errorf("%T: nil conversation err = %v", e, err)
		}
		if _, err := e.Export(&storage.Conversation{}); !errors.Is(err, ErrNoMessages) {
			t.Errorf("%T: empty conversation err = %v", e, err)
		}
	}
}

func TestByFormat(t *testing.T) {
	tests := []struct {
		name string
		ext  string
		mime string
	}{
		{"text", ".txt", "text/plain"},
		{"TXT", ".txt", "text/plain"},
		{"markdown", ".md", "text/markdown"},
		{"md", ".md", "text/markdown"},
		{"html", ".html", "text/html"},
		{"json", ".json", "application/json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := ByFormat(tt.name, nil)
			if err != nil {
				t.Fatalf("ByFormat(%q) failed: %v", tt.name, err)
			}
			if e.FileExtension() != tt.ext || e.MimeType() != tt.mime {
				t.Errorf("got %s %s, want %s %s", e.FileExtension(), e.MimeType(), tt.ext, tt.mime)
			}
		})
	}

	if _, err := ByFormat("pdf", nil); !errors.Is(err, util.ErrInvalidArgument) {
		t.Errorf("ByFormat(pdf) err = %v", err)
	}
}

func TestExportToFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	opts := plainOptions()
	opts.OutputDir = dir

	conv := sampleConversation()
	conv.Title = "notes.md"

	path, err := ExportToFile(conv, NewMarkdownExporter(opts), opts)
	if err != nil {
		t.Fatalf("ExportToFile failed: %v", err)
	}

	base := filepath.Base(path)
	if !strings.HasPrefix(base, "conversation_notes_") || !strings.HasSuffix(base, ".md") {
		t.Errorf("unexpected file name %q", base)
	}
	if filepath.Dir(path) != dir {
		t.Errorf("file written to %q, want %q", filepath.Dir(path), dir)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	if !strings.Contains(string(data), "# notes.md") {
		t.Errorf("unexpected content:\n%s", data)
	}
}

func TestExportToFile_ExportError(t *testing.T) {
	_, err := ExportToFile(&storage.Conversation{}, NewTextExporter(nil), &Options{OutputDir: t.TempDir()})
	if !errors.Is(err, ErrNoMessages) {
		t.Errorf("err = %v, want ErrNoMessages", err)
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"simple", "simple"},
		{"a/b\\c:d", "a-b-c-d"},
		{"two words", "two_words"},
		{"", "conversation"},
		{strings.Repeat("x", 60), strings.Repeat("x", 50)},
	}
	for _, tt := range tests {
		if got := sanitizeFilename(tt.in); got != tt.want {
			t.Errorf("sanitizeFilename(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
