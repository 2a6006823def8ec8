// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package logger is the process-wide structured logger.
//
// It wraps github.com/charmbracelet/log. Output goes to stderr by default so
// command output on stdout stays machine readable.
package logger

import (
	"context"
	"io"
	"os"
	"strings"
	"sync/atomic"

	"github.com/charmbracelet/lipgloss"
	charmlog "github.com/charmbracelet/log"
)

// Config holds the logger configuration.
type Config struct {
	Level      charmlog.Level
	Output     io.Writer
	JSON       bool
	AddSource  bool
	TimeFormat string
}

// DefaultConfig returns the default logger configuration.
func DefaultConfig() *Config {
	return &Config{
		Level:      charmlog.WarnLevel,
		Output:     os.Stderr,
		TimeFormat: "15:04:05",
	}
}

var defaultLogger atomic.Pointer[charmlog.Logger]

func init() {
	defaultLogger.Store(New(DefaultConfig()))
}

// New builds a logger from cfg without installing it.
func New(cfg *Config) *charmlog.Logger {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	l := charmlog.NewWithOptions(out, charmlog.Options{
		ReportCaller:    cfg.AddSource,
		ReportTimestamp: true,
		TimeFormat:      cfg.TimeFormat,
		Level:           cfg.Level,
	})
	if cfg.JSON {
		l.SetFormatter(charmlog.JSONFormatter)
	} else {
		l.SetFormatter(charmlog.TextFormatter)
		l.SetStyles(defaultStyles())
	}
	return l
}

// Init installs a logger built from cfg as the process default.
func Init(cfg *Config) {
	defaultLogger.Store(New(cfg))
}

// ParseLevel maps "debug", "info", "warn" or "error" to a level. An empty
// string is WarnLevel.
func ParseLevel(s string) (charmlog.Level, error) {
	if strings.TrimSpace(s) == "" {
		return charmlog.WarnLevel, nil
	}
	return charmlog.ParseLevel(strings.ToLower(strings.TrimSpace(s)))
}

func defaultStyles() *charmlog.Styles {
	styles := charmlog.DefaultStyles()
	styles.Levels[charmlog.DebugLevel] = lipgloss.NewStyle().
		SetString("DEBU").Bold(true).Foreground(lipgloss.Color("63"))
	styles.Levels[charmlog.WarnLevel] = lipgloss.NewStyle().
		SetString("WARN").Bold(true).Foreground(lipgloss.Color("214"))
	styles.Keys["err"] = lipgloss.NewStyle().Foreground(lipgloss.Color("204"))
	return styles
}

// Default returns the installed logger.
func Default() *charmlog.Logger {
	return defaultLogger.Load()
}

// WithContext returns a copy of ctx carrying l.
func WithContext(ctx context.Context, l *charmlog.Logger) context.Context {
	return charmlog.WithContext(ctx, l)
}

// FromContext returns the logger stored in ctx, or the default logger.
func FromContext(ctx context.Context) *charmlog.Logger {
	if ctx != nil {
		if l, ok := ctx.Value(charmlog.ContextKey).(*charmlog.Logger); ok && l != nil {
			return l
		}
	}
	return Default()
}

func Debug(msg string, args ...any) {
	Default().Debug(msg, args...)
}

func Info(msg string, args ...any) {
	Default().Info(msg, args...)
}

func Warn(msg string, args ...any) {
	Default().Warn(msg, args...)
}

func Error(msg string, args ...any) {
	Default().Error(msg, args...)
}

func With(args ...any) *charmlog.Logger {
	return Default().With(args...)
}
