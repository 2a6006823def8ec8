// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// config_cmd.go - config and version commands.

package cli

import (
	"context"
	"fmt"
	"io"
	"runtime"

	"github.com/jeranaias/textkit/internal/config"
)

func (a *App) configPath() (string, error) {
	if a.ConfigPath != "" {
		return a.ConfigPath, nil
	}
	return config.ConfigPathTOML()
}

// ConfigValue is the --json payload of "config get" and "config set".
type ConfigValue struct {
	Key   string      `json:"key"`
	Value interface{} `json:"value"`
	Path  string      `json:"path,omitempty"`
}

func (a *App) runConfig(_ context.Context, args *ArgParser, w io.Writer) (interface{}, error) {
	action := args.Positional(1)
	switch action {
	case "", "show":
		for _, key := range config.GetAllKeys() {
			v, err := a.Config.Get(key)
			if err != nil {
				continue
			}
			fmt.Fprintf(w, "%s %v\n", RenderLabel(key), v)
		}
		return a.Config, nil

	case "get":
		key := args.Positional(2)
		if key == "" {
			return nil, ErrMissingArgument("key", "textkit config get chunk.max_size")
		}
		v, err := a.Config.Get(key)
		if err != nil {
			return nil, NewValidationError("key", key, err.Error())
		}
		fmt.Fprintln(w, v)
		return ConfigValue{Key: key, Value: v}, nil

	case "set":
		key, value := args.Positional(2), args.Positional(3)
		if key == "" || args.PositionalCount() < 4 {
			return nil, ErrMissingArgument("key/value", "textkit config set chunk.max_size 300")
		}
		updated := a.Config.Clone()
		if err := updated.Set(key, value); err != nil {
			return nil, NewValidationError("key", key, err.Error())
		}
		if err := updated.Validate(); err != nil {
			return nil, fmt.Errorf("invalid config: %w", err)
		}
		path, err := a.configPath()
		if err != nil {
			return nil, NewCommandError("config", "set", "could not locate config file", err)
		}
		if err := config.SaveFile(updated, path); err != nil {
			return nil, NewCommandError("config", "set", "could not save config", err)
		}
		a.Config = updated

		v, _ := updated.Get(key)
		fmt.Fprintf(w, "%s %s = %v\n", SuccessStyle.Render("set"), key, v)
		return ConfigValue{Key: key, Value: v, Path: path}, nil

	case "path":
		path, err := a.configPath()
		if err != nil {
			return nil, NewCommandError("config", "path", "could not locate config file", err)
		}
		fmt.Fprintln(w, path)
		return map[string]string{"path": path}, nil

	default:
		return nil, NewValidationErrorWithExample("action", action, "unknown config action",
			"textkit config [show|get KEY|set KEY VALUE|path]")
	}
}

func (a *App) runVersion(_ context.Context, _ *ArgParser, w io.Writer) (interface{}, error) {
	data := VersionData{
		Version:   Version,
		GitCommit: GitCommit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
	fmt.Fprintf(w, "%s %s\n", TitleStyle.Render("textkit"), data.Version)
	fmt.Fprintf(w, "  commit: %s\n  built:  %s\n  go:     %s %s\n",
		data.GitCommit, data.BuildDate, data.GoVersion, data.Platform)
	return data, nil
}
