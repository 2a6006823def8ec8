// textkit - text segmentation and normalization for local LLM output.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/jeranaias/textkit/internal/cli"
	"github.com/jeranaias/textkit/internal/config"
	"github.com/jeranaias/textkit/internal/logger"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func init() {
	// Sync version info with cli package
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

func main() {
	os.Exit(run())
}

func run() int {
	// A .env next to the working directory may set TEXTKIT_* overrides.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "warning: .env: %v\n", err)
	}

	cfg, err := config.Load()
	if err != nil {
		if cfg == nil {
			cli.DisplayError(os.Stderr, err, false)
			return cli.GetExitCode(err)
		}
		// Unreadable file: running on defaults.
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}
	config.SetGlobal(cfg)

	logCfg := logger.DefaultConfig()
	if level, err := logger.ParseLevel(cfg.Log.Level); err == nil {
		logCfg.Level = level
	}
	logCfg.JSON = cfg.Log.JSON
	logger.Init(logCfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = logger.WithContext(ctx, logger.Default())

	return cli.NewApp(cfg).Main(ctx, os.Args[1:])
}
