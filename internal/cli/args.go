// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// args.go - Argument parsing shared by every textkit subcommand.

package cli

import (
	"strconv"
	"strings"
)

// =============================================================================
// ARG PARSER
// =============================================================================

// ArgParser splits a command line into flags and positional arguments.
//
// Accepted forms are "--name value", "--name=value", "-n value" and bare
// switches. "--" ends flag parsing, "-" is a positional that means stdin and
// negative numbers are values, not flags.
type ArgParser struct {
	values     map[string]string // valued flags
	switches   map[string]bool   // switches, including --name=false
	positional []string          // positional[0] is the subcommand
}

// NewArgParser parses raw. Names listed in switches never take a value, so
// "--backwards file.txt" leaves file.txt positional; any other flag
// followed by a non-flag argument takes it as its value.
//
//	args := NewArgParser([]string{"chunk", "--max", "50", "--json"}, "json")
//	args.Subcommand()     // "chunk"
//	args.Flag("max")      // "50"
//	args.BoolFlag("json") // true
func NewArgParser(raw []string, switches ...string) *ArgParser {
	p := &ArgParser{
		values:   map[string]string{},
		switches: map[string]bool{},
	}
	isSwitch := make(map[string]bool, len(switches))
	for _, name := range switches {
		isSwitch[name] = true
	}

	for i := 0; i < len(raw); i++ {
		arg := raw[i]
		switch {
		case arg == "--":
			p.positional = append(p.positional, raw[i+1:]...)
			return p
		case !isFlag(arg):
			p.positional = append(p.positional, arg)
			continue
		}

		name, value, hasValue := strings.Cut(strings.TrimLeft(arg, "-"), "=")
		switch {
		case hasValue && (isSwitch[name] || value == "true" || value == "false"):
			p.switches[name] = value == "true"
		case hasValue:
			p.values[name] = value
		case !isSwitch[name] && i+1 < len(raw) && !isFlag(raw[i+1]):
			i++
			p.values[name] = raw[i]
		default:
			p.switches[name] = true
		}
	}
	return p
}

// isFlag reports whether arg looks like a flag.
func isFlag(arg string) bool {
	if len(arg) < 2 || arg[0] != '-' {
		return false
	}
	_, err := strconv.ParseFloat(arg, 64)
	return err != nil
}

// Subcommand returns the first positional argument, or "".
func (p *ArgParser) Subcommand() string {
	return p.Positional(0)
}

// Flag returns the value of a valued flag, or "".
func (p *ArgParser) Flag(name string) string {
	return p.values[strings.TrimLeft(name, "-")]
}

// FlagOrDefault returns the flag value, or def when the flag is absent or
// empty.
func (p *ArgParser) FlagOrDefault(name, def string) string {
	if v := p.Flag(name); v != "" {
		return v
	}
	return def
}

// BoolFlag reports whether a switch is set.
func (p *ArgParser) BoolFlag(name string) bool {
	return p.switches[strings.TrimLeft(name, "-")]
}

// HasFlag reports whether name was given in either form.
func (p *ArgParser) HasFlag(name string) bool {
	name = strings.TrimLeft(name, "-")
	_, valued := p.values[name]
	_, set := p.switches[name]
	return valued || set
}

// Positional returns the positional argument at index (0 is the
// subcommand), or "" when out of range.
func (p *ArgParser) Positional(index int) string {
	if index < 0 || index >= len(p.positional) {
		return ""
	}
	return p.positional[index]
}

// PositionalCount returns the number of positional arguments, subcommand
// included.
func (p *ArgParser) PositionalCount() int {
	return len(p.positional)
}

// =============================================================================
// VALUE HELPERS
// =============================================================================

// ParseIntWithValidation parses a positive integer for the named field.
// Failures are ValidationErrors and map to the usage exit code.
func ParseIntWithValidation(s string, field string) (int, error) {
	if s == "" {
		return 0, NewValidationError(field, "", "value is required")
	}
	n, err := strconv.Atoi(s)
	switch {
	case err != nil:
		return 0, NewValidationError(field, s, "must be a valid integer")
	case n <= 0:
		return 0, NewValidationError(field, s, "must be positive")
	}
	return n, nil
}
