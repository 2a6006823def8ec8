// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// conversation_cmd.go - ingest, export and list commands.

package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/jeranaias/textkit/internal/export"
	"github.com/jeranaias/textkit/internal/ingest"
	"github.com/jeranaias/textkit/internal/logger"
	"github.com/jeranaias/textkit/internal/storage"
)

// store opens the conversation store.
func (a *App) store() (*storage.Store, error) {
	if a.StoreDir != "" {
		return storage.NewStore(a.StoreDir)
	}
	return storage.DefaultStore()
}

// =============================================================================
// INGEST
// =============================================================================

// IngestData is the --json payload of the ingest command.
type IngestData struct {
	ingest.Update
	TokensPerSecond float64 `json:"tokens_per_second"`
	SavedTo         string  `json:"saved_to,omitempty"`
	ConversationID  string  `json:"conversation_id,omitempty"`
}

func (a *App) runIngest(ctx context.Context, args *ArgParser, w io.Writer) (interface{}, error) {
	maxSize, err := intFlag(args, "max", 0)
	if err != nil {
		return nil, err
	}
	mode, err := a.Config.ChunkMode()
	if err != nil {
		return nil, err
	}
	splitter, _, err := a.splitterFor(args)
	if err != nil {
		return nil, err
	}

	in, err := a.openInput(args, 1)
	if err != nil {
		return nil, err
	}
	defer in.Close()

	log := logger.FromContext(ctx)
	reader := ingest.NewReader(in, ingest.Options{
		Tags:         a.Config.TagPairs(),
		MaxChunkSize: maxSize,
		Mode:         mode,
		Splitter:     splitter,
		Normalize:    a.Config.Ingest.Normalize || args.BoolFlag("normalize"),
	})
	err = reader.Process(ctx, func(u ingest.Update) {
		log.Debug("stream update", "delta", len(u.Delta), "thinking", u.Thinking, "done", u.Done)
	})
	if err != nil {
		return nil, NewCommandError("ingest", "read", "stream processing stopped", err)
	}

	final := reader.Result()
	data := IngestData{Update: final, TokensPerSecond: final.TokensPerSecond()}

	if final.Visible != "" {
		fmt.Fprintln(w, final.Visible)
	}
	for i, c := range final.Chunks {
		fmt.Fprintln(w, DimStyle.Render(fmt.Sprintf("# chunk %d (%d chars)", i+1, c.Length())))
		fmt.Fprintln(w, c.Text)
	}
	if !args.BoolFlag("json") && final.Done {
		fmt.Fprintln(a.Stderr, DimStyle.Render(fmt.Sprintf("%s: %d tokens, %.1f tok/s",
			reader.Model(), final.Tokens, data.TokensPerSecond)))
	}

	if !args.HasFlag("save") && !args.BoolFlag("store") {
		return data, nil
	}

	conv := storage.New(args.Flag("title"), reader.Model())
	if prompt := args.Flag("prompt"); prompt != "" {
		conv.Append(storage.RoleUser, prompt)
	}
	conv.Append(storage.RoleAssistant, reader.Accumulated())
	data.ConversationID = conv.ID

	if path := args.Flag("save"); path != "" {
		if err := storage.SaveFile(conv, path); err != nil {
			return nil, NewCommandError("ingest", "save", "could not write conversation", err)
		}
		data.SavedTo = path
		fmt.Fprintln(w, SuccessStyle.Render("saved "+path))
	}
	if args.BoolFlag("store") {
		store, err := a.store()
		if err != nil {
			return nil, NewCommandError("ingest", "store", "could not open conversation store", err)
		}
		if _, err := store.Save(conv); err != nil {
			return nil, NewCommandError("ingest", "store", "could not save conversation", err)
		}
		fmt.Fprintln(w, SuccessStyle.Render("stored "+conv.ID))
	}
	return data, nil
}

// =============================================================================
// EXPORT
// =============================================================================

var exportFormats = []string{"text", "markdown", "html", "json"}

func (a *App) loadConversation(args *ArgParser) (*storage.Conversation, error) {
	if id := args.Flag("id"); id != "" {
		store, err := a.store()
		if err != nil {
			return nil, err
		}
		return store.Load(id)
	}
	path := args.Positional(1)
	if path == "" {
		return nil, ErrMissingArgument("conversation", "textkit export --format html chat.json")
	}
	return storage.LoadFile(path)
}

func (a *App) runExport(_ context.Context, args *ArgParser, w io.Writer) (interface{}, error) {
	cfg := a.Config.Export
	format := strings.ToLower(args.FlagOrDefault("format", cfg.Format))

	opts := &export.Options{
		OutputDir:         args.FlagOrDefault("out", cfg.OutputDir),
		IncludeMetadata:   cfg.IncludeMetadata && !args.BoolFlag("no-metadata"),
		IncludeTimestamps: cfg.IncludeTimestamps || args.BoolFlag("timestamps"),
		Theme:             cfg.Theme,
		Tags:              a.Config.TagPairs(),
		Delimiters:        a.Config.DelimiterPairs(),
	}
	exporter, err := export.ByFormat(format, opts)
	if err != nil {
		return nil, ErrUnsupportedFormat(format, exportFormats)
	}

	conv, err := a.loadConversation(args)
	if err != nil {
		return nil, err
	}

	data := ExportData{Format: format, Title: conv.DisplayTitle()}
	if args.BoolFlag("stdout") {
		content, err := exporter.Export(conv)
		if err != nil {
			return nil, NewCommandError("export", format, "could not render conversation", err)
		}
		_, err = w.Write(content)
		return data, err
	}

	path, err := export.ExportToFile(conv, exporter, opts)
	if err != nil {
		return nil, NewCommandError("export", format, "could not write export", err)
	}
	data.Path = path
	fmt.Fprintln(w, SuccessStyle.Render("exported")+" "+path)
	return data, nil
}

// =============================================================================
// LIST
// =============================================================================

func (a *App) runList(_ context.Context, _ *ArgParser, w io.Writer) (interface{}, error) {
	store, err := a.store()
	if err != nil {
		return nil, NewCommandError("list", "open", "could not open conversation store", err)
	}
	metas, err := store.List()
	if err != nil {
		return nil, NewCommandError("list", "read", "could not list conversations", err)
	}

	if len(metas) == 0 {
		fmt.Fprintln(w, DimStyle.Render("no conversations"))
	}
	for _, m := range metas {
		fmt.Fprintf(w, "%s  %s  %s\n", m.ID, m.UpdatedAt.Format("2006-01-02 15:04"), TitleStyle.Render(m.Title))
		fmt.Fprintln(w, DimStyle.Render(fmt.Sprintf("    %d messages, %s", m.MessageCount, m.Model)))
	}
	return metas, nil
}
