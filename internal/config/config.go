// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/jeranaias/textkit/internal/boundary"
	"github.com/jeranaias/textkit/internal/chunk"
	"github.com/jeranaias/textkit/internal/logger"
	"github.com/jeranaias/textkit/internal/markup"
	"github.com/jeranaias/textkit/internal/reasoning"
	"github.com/jeranaias/textkit/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete textkit configuration.
type Config struct {
	Version string `toml:"version" json:"version"`

	Chunk     ChunkConfig     `toml:"chunk" json:"chunk"`
	Markup    MarkupConfig    `toml:"markup" json:"markup"`
	Reasoning ReasoningConfig `toml:"reasoning" json:"reasoning"`
	Ingest    IngestConfig    `toml:"ingest" json:"ingest"`
	Render    RenderConfig    `toml:"render" json:"render"`
	Export    ExportConfig    `toml:"export" json:"export"`
	Watch     WatchConfig     `toml:"watch" json:"watch"`
	Log       LogConfig       `toml:"log" json:"log"`
}

// ChunkConfig controls sentence chunking.
type ChunkConfig struct {
	// MaxSize is the exclusive upper bound on chunk length in characters.
	MaxSize int `toml:"max_size" json:"max_size"`
	// Mode is "preserve" (never drop a sentence) or "compat" (legacy rule).
	Mode string `toml:"mode" json:"mode"`
	// SentenceRule is "abbrev" or "uax29".
	SentenceRule string `toml:"sentence_rule" json:"sentence_rule"`
	// Abbreviations replaces the built-in abbreviation list when non-empty.
	Abbreviations []string `toml:"abbreviations" json:"abbreviations,omitempty"`
}

// MarkupConfig lists the math delimiter pairs. Empty means the defaults.
type MarkupConfig struct {
	Delimiters []boundary.DelimiterPair `toml:"delimiters" json:"delimiters"`
}

// ReasoningConfig lists the reasoning tag pairs, tried in order.
type ReasoningConfig struct {
	Tags []reasoning.TagPair `toml:"tags" json:"tags"`
}

// IngestConfig controls stream ingestion.
type IngestConfig struct {
	// Normalize applies Unicode NFC to streamed text.
	Normalize bool `toml:"normalize" json:"normalize"`
}

// RenderConfig controls terminal rendering.
type RenderConfig struct {
	// Width wraps plain text; 0 uses the terminal width.
	Width int `toml:"width" json:"width"`
	// Theme is "auto", "dark", "light" or "ascii" (no color).
	Theme string `toml:"theme" json:"theme"`
	// Accent is the #RRGGBB or #RRGGBBAA frame color for markup.
	Accent string `toml:"accent" json:"accent"`
}

// ExportConfig controls conversation export.
type ExportConfig struct {
	Format            string `toml:"format" json:"format"`
	OutputDir         string `toml:"output_dir" json:"output_dir"`
	IncludeMetadata   bool   `toml:"include_metadata" json:"include_metadata"`
	IncludeTimestamps bool   `toml:"include_timestamps" json:"include_timestamps"`
	// Theme for HTML export ("light" or "dark").
	Theme string `toml:"theme" json:"theme"`
}

// WatchConfig controls the file watcher.
type WatchConfig struct {
	// DebounceMs is the minimum interval between re-renders.
	DebounceMs int `toml:"debounce_ms" json:"debounce_ms"`
}

// LogConfig controls the structured logger.
type LogConfig struct {
	Level string `toml:"level" json:"level"`
	JSON  bool   `toml:"json" json:"json"`
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Version: "1",
		Chunk: ChunkConfig{
			MaxSize:      500,
			Mode:         chunk.ModePreserve.String(),
			SentenceRule: boundary.RuleAbbreviation,
		},
		Markup: MarkupConfig{
			Delimiters: markup.DefaultDelimiters(),
		},
		Reasoning: ReasoningConfig{
			Tags: reasoning.DefaultTags(),
		},
		Ingest: IngestConfig{
			Normalize: true,
		},
		Render: RenderConfig{
			Theme:  "auto",
			Accent: "#7D56F4",
		},
		Export: ExportConfig{
			Format:            "markdown",
			OutputDir:         ".",
			IncludeMetadata:   true,
			IncludeTimestamps: true,
			Theme:             "dark",
		},
		Watch: WatchConfig{
			DebounceMs: 250,
		},
		Log: LogConfig{
			Level: "warn",
		},
	}
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the textkit configuration directory path.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".textkit"), nil
}

// ConfigPathTOML returns the path to the TOML config file.
func ConfigPathTOML() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// ConfigPathJSON returns the path to the JSON config file.
func ConfigPathJSON() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load reads ~/.textkit/config.toml, falling back to config.json and then
// the defaults. Environment overrides are applied last. A file that exists
// but cannot be decoded is reported alongside the defaults.
func Load() (*Config, error) {
	var loadErr error

	for _, pathFn := range []func() (string, error){ConfigPathTOML, ConfigPathJSON} {
		path, err := pathFn()
		if err != nil {
			continue
		}
		if _, statErr := os.Stat(path); statErr != nil {
			continue
		}
		cfg, err := LoadFromPath(path)
		if err == nil {
			return cfg, nil
		}
		var verrs ValidateErrors
		if errors.As(err, &verrs) {
			return nil, err
		}
		loadErr = err
		break
	}

	cfg := Default()
	cfg.ApplyEnvOverrides()
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, loadErr
}

// LoadTOML decodes a TOML file into cfg.
func LoadTOML(cfg *Config, path string) error {
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("failed to decode TOML file: %w", err)
	}
	return nil
}

// LoadJSON decodes a JSON file into cfg.
func LoadJSON(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read JSON file: %w", err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to decode JSON file: %w", err)
	}
	return nil
}

// LoadFromPath loads configuration from a specific file path with full
// validation. Files ending in .json are JSON; anything else is TOML.
func LoadFromPath(path string) (*Config, error) {
	cfg := &Config{}

	if strings.HasSuffix(path, ".json") {
		if err := LoadJSON(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load JSON config from %s: %w", path, err)
		}
	} else {
		if err := LoadTOML(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load TOML config from %s: %w", path, err)
		}
	}

	cfg.ApplyEnvOverrides()
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// SaveFile writes cfg to path, as JSON for a .json path and TOML
// otherwise, matching LoadFromPath.
func SaveFile(cfg *Config, path string) error {
	if strings.HasSuffix(path, ".json") {
		return SaveJSON(cfg, path)
	}
	return SaveTOML(cfg, path)
}

// SaveTOML writes cfg to path as TOML.
func SaveTOML(cfg *Config, path string) error {
	var b strings.Builder
	b.WriteString("# textkit configuration file\n\n")
	if err := toml.NewEncoder(&b).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := util.AtomicWriteFileWithDir(path, []byte(b.String()), 0600, 0755); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// SaveJSON writes cfg to path as indented JSON.
func SaveJSON(cfg *Config, path string) error {
	data, err := encodeJSON(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := util.AtomicWriteFileWithDir(path, data, 0600, 0755); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// encodeJSON indents cfg without HTML escaping so tag pairs stay literal.
func encodeJSON(cfg *Config) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(cfg); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Validate checks every setting and returns all problems at once as
// ValidateErrors.
func (c *Config) Validate() error {
	var errs ValidateErrors
	add := func(field, format string, args ...any) {
		errs = append(errs, ValidationError{Field: field, Message: fmt.Sprintf(format, args...)})
	}

	// Chunk
	if c.Chunk.MaxSize < 1 {
		add("chunk.max_size", "must be at least 1, got %d", c.Chunk.MaxSize)
	}
	if _, err := chunk.ParseMode(c.Chunk.Mode); err != nil {
		add("chunk.mode", "invalid mode '%s', must be one of: preserve, compat", c.Chunk.Mode)
	}
	if _, err := boundary.SplitterByName(c.Chunk.SentenceRule); err != nil {
		add("chunk.sentence_rule", "invalid rule '%s', must be one of: %s, %s",
			c.Chunk.SentenceRule, boundary.RuleAbbreviation, boundary.RuleUAX29)
	}

	// Markup
	if _, err := boundary.NewPairLocator(c.Markup.Delimiters...); err != nil {
		add("markup.delimiters", "%v", err)
	}

	// Reasoning
	for i, tag := range c.Reasoning.Tags {
		if tag.Open == "" || tag.Close == "" {
			add(fmt.Sprintf("reasoning.tags[%d]", i), "open and close markers are required")
		}
	}

	// Render
	if c.Render.Width < 0 {
		add("render.width", "must not be negative, got %d", c.Render.Width)
	}
	validThemes := map[string]bool{"auto": true, "dark": true, "light": true, "ascii": true}
	if !validThemes[strings.ToLower(c.Render.Theme)] {
		add("render.theme", "invalid theme '%s', must be one of: auto, dark, light, ascii", c.Render.Theme)
	}
	if _, err := util.ParseHexColor(c.Render.Accent); err != nil {
		add("render.accent", "invalid color '%s', want #RRGGBB or #RRGGBBAA", c.Render.Accent)
	}

	// Export
	validFormats := map[string]bool{"text": true, "markdown": true, "md": true, "html": true, "json": true}
	if !validFormats[strings.ToLower(c.Export.Format)] {
		add("export.format", "invalid format '%s', must be one of: text, markdown, html, json", c.Export.Format)
	}
	if t := strings.ToLower(c.Export.Theme); t != "light" && t != "dark" {
		add("export.theme", "invalid theme '%s', must be one of: light, dark", c.Export.Theme)
	}

	// Watch
	if c.Watch.DebounceMs < 0 {
		add("watch.debounce_ms", "must not be negative, got %d", c.Watch.DebounceMs)
	}

	// Log
	if _, err := logger.ParseLevel(c.Log.Level); err != nil {
		add("log.level", "invalid level '%s', must be one of: debug, info, warn, error", c.Log.Level)
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// SetDefaults fills zero values with defaults. Fields a file may leave out
// on purpose (booleans, Render.Width) are left alone.
func (c *Config) SetDefaults() {
	defaults := Default()

	if c.Version == "" {
		c.Version = defaults.Version
	}

	if c.Chunk.MaxSize == 0 {
		c.Chunk.MaxSize = defaults.Chunk.MaxSize
	}
	if c.Chunk.Mode == "" {
		c.Chunk.Mode = defaults.Chunk.Mode
	}
	if c.Chunk.SentenceRule == "" {
		c.Chunk.SentenceRule = defaults.Chunk.SentenceRule
	}

	if len(c.Markup.Delimiters) == 0 {
		c.Markup.Delimiters = defaults.Markup.Delimiters
	}
	if len(c.Reasoning.Tags) == 0 {
		c.Reasoning.Tags = defaults.Reasoning.Tags
	}

	if c.Render.Theme == "" {
		c.Render.Theme = defaults.Render.Theme
	}
	if c.Render.Accent == "" {
		c.Render.Accent = defaults.Render.Accent
	}

	if c.Export.Format == "" {
		c.Export.Format = defaults.Export.Format
	}
	if c.Export.OutputDir == "" {
		c.Export.OutputDir = defaults.Export.OutputDir
	}
	if c.Export.Theme == "" {
		c.Export.Theme = defaults.Export.Theme
	}

	if c.Watch.DebounceMs == 0 {
		c.Watch.DebounceMs = defaults.Watch.DebounceMs
	}
	if c.Log.Level == "" {
		c.Log.Level = defaults.Log.Level
	}
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies TEXTKIT_* environment variables:
//   - TEXTKIT_MAX_CHUNK_SIZE: overrides chunk.max_size
//   - TEXTKIT_CHUNK_MODE: overrides chunk.mode
//   - TEXTKIT_SENTENCE_RULE: overrides chunk.sentence_rule
//   - TEXTKIT_LOG_LEVEL: overrides log.level
//   - TEXTKIT_THEME: overrides render.theme
//   - TEXTKIT_ACCENT: overrides render.accent
//
// An unparsable TEXTKIT_MAX_CHUNK_SIZE is stored as -1 so Validate reports it.
func (c *Config) ApplyEnvOverrides() {
	if size := os.Getenv("TEXTKIT_MAX_CHUNK_SIZE"); size != "" {
		n, err := strconv.Atoi(strings.TrimSpace(size))
		if err != nil {
			n = -1
		}
		c.Chunk.MaxSize = n
	}
	if mode := os.Getenv("TEXTKIT_CHUNK_MODE"); mode != "" {
		c.Chunk.Mode = mode
	}
	if rule := os.Getenv("TEXTKIT_SENTENCE_RULE"); rule != "" {
		c.Chunk.SentenceRule = rule
	}
	if level := os.Getenv("TEXTKIT_LOG_LEVEL"); level != "" {
		c.Log.Level = level
	}
	if theme := os.Getenv("TEXTKIT_THEME"); theme != "" {
		c.Render.Theme = theme
	}
	if accent := os.Getenv("TEXTKIT_ACCENT"); accent != "" {
		c.Render.Accent = accent
	}
}

// =============================================================================
// ENGINE ACCESSORS
// =============================================================================

// TagPairs returns a copy of the configured reasoning tags.
func (c *Config) TagPairs() []reasoning.TagPair {
	if len(c.Reasoning.Tags) == 0 {
		return reasoning.DefaultTags()
	}
	return append([]reasoning.TagPair(nil), c.Reasoning.Tags...)
}

// DelimiterPairs returns a copy of the configured markup delimiters.
func (c *Config) DelimiterPairs() []boundary.DelimiterPair {
	if len(c.Markup.Delimiters) == 0 {
		return markup.DefaultDelimiters()
	}
	return append([]boundary.DelimiterPair(nil), c.Markup.Delimiters...)
}

// ChunkMode parses Chunk.Mode.
func (c *Config) ChunkMode() (chunk.Mode, error) {
	return chunk.ParseMode(c.Chunk.Mode)
}

// Splitter builds the configured sentence rule.
func (c *Config) Splitter() (boundary.SentenceSplitter, error) {
	s, err := boundary.SplitterByName(c.Chunk.SentenceRule)
	if err != nil {
		return nil, err
	}
	if _, ok := s.(*boundary.AbbreviationSplitter); ok && len(c.Chunk.Abbreviations) > 0 {
		return boundary.NewAbbreviationSplitter(c.Chunk.Abbreviations), nil
	}
	return s, nil
}

// ChunkOptions returns the chunk.Options for the configured mode and rule.
func (c *Config) ChunkOptions() ([]chunk.Option, error) {
	mode, err := c.ChunkMode()
	if err != nil {
		return nil, err
	}
	splitter, err := c.Splitter()
	if err != nil {
		return nil, err
	}
	return []chunk.Option{chunk.WithMode(mode), chunk.WithSplitter(splitter)}, nil
}

// AccentColor parses Render.Accent.
func (c *Config) AccentColor() (util.Color, error) {
	return util.ParseHexColor(c.Render.Accent)
}

// =============================================================================
// GET/SET HELPERS (DOT NOTATION)
// =============================================================================

// Get retrieves a configuration value using dot notation (e.g., "chunk.max_size").
func (c *Config) Get(key string) (interface{}, error) {
	field, err := c.lookup(key)
	if err != nil {
		return nil, err
	}
	return field.Interface(), nil
}

// Set sets a scalar configuration value using dot notation. String values
// are converted to the field's type.
func (c *Config) Set(key string, value interface{}) error {
	field, err := c.lookup(key)
	if err != nil {
		return err
	}
	if !field.CanSet() {
		return fmt.Errorf("cannot set field: %s", key)
	}
	return setFieldValue(field, value)
}

func (c *Config) lookup(key string) (reflect.Value, error) {
	if strings.TrimSpace(key) == "" {
		return reflect.Value{}, errors.New("empty key")
	}
	parts := strings.Split(key, ".")

	v := reflect.ValueOf(c).Elem()
	for i, part := range parts {
		fieldName := normalizeFieldName(part)
		field := v.FieldByNameFunc(func(name string) bool {
			return strings.EqualFold(name, fieldName)
		})
		if !field.IsValid() {
			return reflect.Value{}, fmt.Errorf("unknown field: %s", strings.Join(parts[:i+1], "."))
		}
		if i == len(parts)-1 {
			return field, nil
		}
		if field.Kind() != reflect.Struct {
			return reflect.Value{}, fmt.Errorf("field '%s' is not a struct", strings.Join(parts[:i+1], "."))
		}
		v = field
	}
	return reflect.Value{}, fmt.Errorf("invalid key: %s", key)
}

// normalizeFieldName converts a snake_case or kebab-case name to its Go field equivalent.
func normalizeFieldName(name string) string {
	parts := strings.FieldsFunc(name, func(r rune) bool {
		return r == '_' || r == '-'
	})

	var result strings.Builder
	for _, part := range parts {
		if len(part) > 0 {
			result.WriteString(strings.ToUpper(string(part[0])))
			result.WriteString(strings.ToLower(part[1:]))
		}
	}
	return result.String()
}

// setFieldValue sets a reflect.Value from an interface{} value with type conversion.
func setFieldValue(field reflect.Value, value interface{}) error {
	if strVal, ok := value.(string); ok {
		switch field.Kind() {
		case reflect.String:
			field.SetString(strVal)
			return nil
		case reflect.Int, reflect.Int64:
			intVal, err := strconv.ParseInt(strVal, 10, 64)
			if err != nil {
				return fmt.Errorf("invalid integer value: %v", err)
			}
			field.SetInt(intVal)
			return nil
		case reflect.Bool:
			lower := strings.ToLower(strVal)
			field.SetBool(lower == "1" || lower == "true" || lower == "yes")
			return nil
		case reflect.Slice:
			return fmt.Errorf("list settings must be edited in the config file")
		}
	}

	val := reflect.ValueOf(value)
	if !val.IsValid() {
		return fmt.Errorf("cannot assign nil to %s", field.Type())
	}
	if val.Type().AssignableTo(field.Type()) {
		field.Set(val)
		return nil
	}
	if val.Type().ConvertibleTo(field.Type()) && val.Kind() != reflect.String {
		field.Set(val.Convert(field.Type()))
		return nil
	}
	return fmt.Errorf("cannot assign %T to %s", value, field.Type())
}

// GetAllKeys returns all scalar configuration keys in dot notation.
func GetAllKeys() []string {
	return []string{
		"version",
		"chunk.max_size",
		"chunk.mode",
		"chunk.sentence_rule",
		"ingest.normalize",
		"render.width",
		"render.theme",
		"render.accent",
		"export.format",
		"export.output_dir",
		"export.include_metadata",
		"export.include_timestamps",
		"export.theme",
		"watch.debounce_ms",
		"log.level",
		"log.json",
	}
}

// Clone creates a deep copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	clone.Chunk.Abbreviations = append([]string(nil), c.Chunk.Abbreviations...)
	clone.Markup.Delimiters = append([]boundary.DelimiterPair(nil), c.Markup.Delimiters...)
	clone.Reasoning.Tags = append([]reasoning.TagPair(nil), c.Reasoning.Tags...)
	return &clone
}

// String returns the configuration as indented JSON.
func (c *Config) String() string {
	data, _ := encodeJSON(c)
	return string(data)
}

// =============================================================================
// SINGLETON PATTERN (THREAD-SAFE)
// =============================================================================

var (
	globalConfig     *Config
	globalConfigOnce sync.Once
	globalConfigMu   sync.RWMutex
)

// Global returns the global configuration instance.
// Loads configuration on first access. Thread-safe.
func Global() *Config {
	globalConfigOnce.Do(func() {
		cfg, err := Load()
		if err != nil {
			logger.Warn("config load failed, using defaults", "err", err)
		}
		if cfg == nil {
			cfg = Default()
		}
		globalConfigMu.Lock()
		globalConfig = cfg
		globalConfigMu.Unlock()
	})

	globalConfigMu.RLock()
	defer globalConfigMu.RUnlock()
	return globalConfig
}

// ReloadGlobal reloads the global configuration from disk. Thread-safe.
func ReloadGlobal() error {
	cfg, err := Load()
	if err != nil {
		return err
	}
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = cfg
	return nil
}

// SetGlobal replaces the global configuration. A later Global call returns
// cfg instead of loading from disk. Thread-safe.
func SetGlobal(cfg *Config) {
	globalConfigOnce.Do(func() {})
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = cfg
}

// ResetGlobalForTesting resets the global config state for testing.
func ResetGlobalForTesting() {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = nil
	globalConfigOnce = sync.Once{}
}
