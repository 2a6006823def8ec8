// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// cli.go - Command dispatch and shared plumbing for textkit.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jeranaias/textkit/internal/config"
	"github.com/jeranaias/textkit/internal/logger"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command represents the CLI command to execute.
type Command int

const (
	CmdHelp Command = iota
	CmdChunk
	CmdSplit
	CmdStrip
	CmdSentences
	CmdGroup
	CmdColor
	CmdSlice
	CmdQuote
	CmdCut
	CmdUnwrap
	CmdDiff
	CmdRender
	CmdIngest
	CmdExport
	CmdList
	CmdWatch
	CmdConfig
	CmdVersion
)

// commandNames maps every accepted spelling to its command.
var commandNames = map[string]Command{
	"help":      CmdHelp,
	"chunk":     CmdChunk,
	"split":     CmdSplit,
	"strip":     CmdStrip,
	"sentences": CmdSentences,
	"group":     CmdGroup,
	"color":     CmdColor,
	"colour":    CmdColor,
	"slice":     CmdSlice,
	"quote":     CmdQuote,
	"cut":       CmdCut,
	"unwrap":    CmdUnwrap,
	"diff":      CmdDiff,
	"render":    CmdRender,
	"ingest":    CmdIngest,
	"export":    CmdExport,
	"list":      CmdList,
	"ls":        CmdList,
	"watch":     CmdWatch,
	"config":    CmdConfig,
	"version":   CmdVersion,
}

// ParseCommand returns the command named by name.
func ParseCommand(name string) (Command, bool) {
	cmd, ok := commandNames[strings.ToLower(name)]
	return cmd, ok
}

// boolFlags never consume the following argument.
var boolFlags = []string{
	"json", "help", "h", "backwards", "lenient", "keep", "ignore-case",
	"normalize", "stdout", "store", "no-metadata", "timestamps", "diff",
}

const usageText = `textkit - text segmentation and normalization for LLM output

Usage:
  textkit <command> [flags] [FILE]

Text is read from FILE, from --text, or from stdin ("-" also means stdin).

Segmentation:
  chunk [--max N] [--mode preserve|compat] [--rule abbrev|uax29]
                             Pack sentences into chunks shorter than N characters
  sentences [--rule R]       One sentence per line
  split                      Split into plain and markup (formula) spans
  strip                      Remove reasoning blocks (<think>...</think>)
  diff OLD NEW [--rule R]    Compare two files sentence by sentence

String surgery:
  group --every N [--backwards]
                             Split into groups of N characters
  color HEX [--lenient]      Decode a #RRGGBB[AA] color
  slice --from A --to B      Text between the first A and the following B
  quote                      Repair a doubled trailing quote
  cut --after SUB|--before SUB [--keep] [--ignore-case]
                             Drop text before or after SUB
  unwrap CHAR                Remove a matching CHAR from both ends

Output:
  render [--width N] [--theme auto|dark|light|ascii]
                             Render for the terminal with formulas framed
  ingest [--max N] [--normalize] [--save FILE] [--store] [--prompt TEXT]
                             Consume an NDJSON model stream
  export [--format text|markdown|html|json] [--out DIR] [--stdout] FILE|--id ID
                             Export a saved conversation
  list                       List stored conversations
  watch FILE [--debounce MS] [--diff]
                             Re-render FILE whenever it changes, or with
                             --diff print the changed sentences

Other:
  config [show|get KEY|set KEY VALUE|path]
  version
  help

Global flags:
  --json                     Print a JSON envelope instead of text
`

// App runs textkit commands against injectable streams.
type App struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	Config *config.Config

	// ConfigPath is where "config set" writes. Empty means ~/.textkit/config.toml.
	ConfigPath string

	// StoreDir holds saved conversations. Empty means ~/.textkit/conversations.
	StoreDir string
}

// NewApp returns an App on the process streams. A nil cfg uses
// config.Global.
func NewApp(cfg *config.Config) *App {
	if cfg == nil {
		cfg = config.Global()
	}
	return &App{
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Config: cfg,
	}
}

// commandFunc runs one command. Human output goes to w, which discards
// everything in JSON mode; the returned value is the JSON payload.
type commandFunc func(ctx context.Context, args *ArgParser, w io.Writer) (interface{}, error)

func (a *App) handler(cmd Command) commandFunc {
	switch cmd {
	case CmdChunk:
		return a.runChunk
	case CmdSplit:
		return a.runSplit
	case CmdStrip:
		return a.runStrip
	case CmdSentences:
		return a.runSentences
	case CmdGroup:
		return a.runGroup
	case CmdColor:
		return a.runColor
	case CmdSlice:
		return a.runSlice
	case CmdQuote:
		return a.runQuote
	case CmdCut:
		return a.runCut
	case CmdUnwrap:
		return a.runUnwrap
	case CmdDiff:
		return a.runDiff
	case CmdRender:
		return a.runRender
	case CmdIngest:
		return a.runIngest
	case CmdExport:
		return a.runExport
	case CmdList:
		return a.runList
	case CmdWatch:
		return a.runWatch
	case CmdConfig:
		return a.runConfig
	case CmdVersion:
		return a.runVersion
	default:
		return a.runHelp
	}
}

// Run executes the command in argv (without the program name).
func (a *App) Run(ctx context.Context, argv []string) error {
	args := NewArgParser(argv, boolFlags...)
	jsonMode := args.BoolFlag("json")

	name := args.Subcommand()
	cmd := CmdHelp
	if name != "" && !args.BoolFlag("help") && !args.BoolFlag("h") {
		var ok bool
		if cmd, ok = ParseCommand(name); !ok {
			err := NewValidationErrorWithExample("command", name, "unknown command", "textkit help")
			if jsonMode {
				_ = NewJSONErrorResponse(name, err).Write(a.Stdout)
			}
			return err
		}
	}
	if name == "" {
		name = "help"
	}

	log := logger.FromContext(ctx).With("command", name)
	ctx = logger.WithContext(ctx, log)
	log.Debug("running command", "args", len(argv))

	w := a.Stdout
	if jsonMode {
		w = io.Discard
	}
	data, err := a.handler(cmd)(ctx, args, w)
	if !jsonMode {
		return err
	}
	if err != nil {
		_ = NewJSONErrorResponse(name, err).Write(a.Stdout)
		return err
	}
	return NewJSONResponse(name, data).Write(a.Stdout)
}

// Main runs argv and returns the process exit code. Errors are reported on
// Stderr in text mode; in JSON mode the envelope on Stdout carries them.
func (a *App) Main(ctx context.Context, argv []string) int {
	err := a.Run(ctx, argv)
	if err != nil && !NewArgParser(argv, boolFlags...).BoolFlag("json") {
		DisplayError(a.Stderr, err, false)
	}
	return GetExitCode(err)
}

func (a *App) runHelp(_ context.Context, _ *ArgParser, w io.Writer) (interface{}, error) {
	fmt.Fprint(w, usageText)
	return map[string]string{"usage": usageText}, nil
}

// =============================================================================
// INPUT HELPERS
// =============================================================================

// readInput returns the command's input text: --text wins, then the
// positional FILE at index pos ("-" is stdin), then stdin. One trailing
// line break is removed.
func (a *App) readInput(args *ArgParser, pos int) (string, error) {
	if args.HasFlag("text") {
		return args.Flag("text"), nil
	}
	return a.readPath(args.Positional(pos))
}

// readPath reads a file, or stdin for "" and "-", trimming one trailing
// newline.
func (a *App) readPath(path string) (string, error) {
	var data []byte
	var err error
	switch path {
	case "", "-":
		if a.Stdin == nil {
			return "", ErrMissingArgument("input", "textkit strip notes.txt")
		}
		data, err = io.ReadAll(a.Stdin)
	default:
		data, err = os.ReadFile(path)
		if os.IsNotExist(err) {
			return "", NewNotFoundError("file", path)
		}
	}
	if err != nil {
		return "", WrapError(err, "read input")
	}

	text := string(data)
	text = strings.TrimSuffix(text, "\n")
	text = strings.TrimSuffix(text, "\r")
	return text, nil
}

// openInput is readInput for streaming commands: the caller closes the
// returned reader.
func (a *App) openInput(args *ArgParser, pos int) (io.ReadCloser, error) {
	if args.HasFlag("text") {
		return io.NopCloser(strings.NewReader(args.Flag("text"))), nil
	}
	switch path := args.Positional(pos); path {
	case "", "-":
		if a.Stdin == nil {
			return nil, ErrMissingArgument("input", "textkit ingest stream.ndjson")
		}
		return io.NopCloser(a.Stdin), nil
	default:
		f, err := os.Open(path)
		if os.IsNotExist(err) {
			return nil, NewNotFoundError("file", path)
		}
		if err != nil {
			return nil, WrapError(err, "open input")
		}
		return f, nil
	}
}

// intFlag reads a positive integer flag, falling back to def when absent.
func intFlag(args *ArgParser, name string, def int) (int, error) {
	if !args.HasFlag(name) {
		return def, nil
	}
	return ParseIntWithValidation(args.Flag(name), name)
}
