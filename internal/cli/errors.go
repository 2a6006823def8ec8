// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// errors.go - Unified error handling for all textkit commands.
//
// STANDARDIZED PATTERN:
//   - Handlers ALWAYS return errors (never print and return nil)
//   - The caller decides how to display them (text or JSON)
//   - GetExitCode maps an error to a process exit code

package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/jeranaias/textkit/internal/config"
	"github.com/jeranaias/textkit/internal/storage"
	"github.com/jeranaias/textkit/internal/util"
)

// =============================================================================
// EXIT CODES
// =============================================================================

// Process exit codes. 4 to 6 are unused.
const (
	ExitSuccess       = 0
	ExitGeneralError  = 1
	ExitUsageError    = 2 // bad flags, arguments or input values
	ExitConfigError   = 3 // config file failed validation
	ExitNotFoundError = 7 // missing file, conversation or marker
	ExitTimeoutError  = 8
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// CommandError is a failure inside a command after its input was accepted,
// such as a store that cannot be written.
type CommandError struct {
	Command string // "export", "config", ...
	Action  string // "save", "load", ...
	Reason  string
	Err     error
}

func (e *CommandError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s %s failed: %s: %v", e.Command, e.Action, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s %s failed: %s", e.Command, e.Action, e.Reason)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// ValidationError rejects a flag, argument or value supplied by the user.
type ValidationError struct {
	Field   string
	Value   string
	Reason  string
	Example string // optional corrected invocation
}

func (e *ValidationError) Error() string {
	msg := fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
	if e.Value != "" {
		msg += fmt.Sprintf(" (got: %s)", e.Value)
	}
	if e.Example != "" {
		msg += fmt.Sprintf("\nExample: %s", e.Example)
	}
	return msg
}

// NotFoundError reports a missing file, conversation or slice marker.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// =============================================================================
// CONSTRUCTORS
// =============================================================================

// NewCommandError returns a *CommandError.
func NewCommandError(command, action, reason string, err error) error {
	return &CommandError{
		Command: command,
		Action:  action,
		Reason:  reason,
		Err:     err,
	}
}

// NewValidationError returns a *ValidationError without an example.
func NewValidationError(field, value, reason string) error {
	return &ValidationError{
		Field:  field,
		Value:  value,
		Reason: reason,
	}
}

// NewValidationErrorWithExample returns a *ValidationError that shows how
// the command should have been invoked.
func NewValidationErrorWithExample(field, value, reason, example string) error {
	return &ValidationError{
		Field:   field,
		Value:   value,
		Reason:  reason,
		Example: example,
	}
}

// NewNotFoundError returns a *NotFoundError.
func NewNotFoundError(resource, id string) error {
	return &NotFoundError{
		Resource: resource,
		ID:       id,
	}
}

// ErrMissingArgument reports a required argument that was not given.
func ErrMissingArgument(argName, usage string) error {
	return NewValidationErrorWithExample(argName, "", "required argument missing", usage)
}

// ErrUnsupportedFormat rejects an export format.
func ErrUnsupportedFormat(format string, supported []string) error {
	return NewValidationErrorWithExample("format", format, "unsupported format",
		"one of "+strings.Join(supported, ", "))
}

// =============================================================================
// ERROR DISPLAY HELPERS
// =============================================================================

// DisplayError writes err to w, as JSON when jsonMode is set.
func DisplayError(w io.Writer, err error, jsonMode bool) {
	if err == nil {
		return
	}

	if jsonMode {
		DisplayErrorJSON(w, err)
		return
	}

	fmt.Fprintf(w, "%s %s\n", ErrorStyle.Render("[ERROR]"), err.Error())
}

// DisplayErrorJSON writes err to w as JSON.
func DisplayErrorJSON(w io.Writer, err error) {
	out := map[string]interface{}{
		"error":   err.Error(),
		"success": false,
	}

	var (
		cmdErr      *CommandError
		validErr    *ValidationError
		notFoundErr *NotFoundError
	)
	switch {
	case errors.As(err, &validErr):
		out["error_type"] = "validation_error"
		out["field"] = validErr.Field
		out["value"] = validErr.Value
		out["reason"] = validErr.Reason
		if validErr.Example != "" {
			out["example"] = validErr.Example
		}

	case errors.As(err, &notFoundErr):
		out["error_type"] = "not_found_error"
		out["resource"] = notFoundErr.Resource
		out["id"] = notFoundErr.ID

	case errors.As(err, &cmdErr):
		out["error_type"] = "command_error"
		out["command"] = cmdErr.Command
		out["action"] = cmdErr.Action
		out["reason"] = cmdErr.Reason
		if cmdErr.Err != nil {
			out["underlying_error"] = cmdErr.Err.Error()
		}

	default:
		out["error_type"] = "generic_error"
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	_ = encoder.Encode(out)
}

// GetExitCode maps err to a process exit code. Typed CLI errors are checked
// first, then the sentinel errors of the packages textkit calls.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return ExitUsageError
	}

	var configErrs config.ValidateErrors
	if errors.As(err, &configErrs) {
		return ExitConfigError
	}

	var notFoundErr *NotFoundError
	if errors.As(err, &notFoundErr) || errors.Is(err, storage.ErrConversationNotFound) {
		return ExitNotFoundError
	}

	if errors.Is(err, util.ErrInvalidArgument) || errors.Is(err, util.ErrInvalidHex) {
		return ExitUsageError
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return ExitTimeoutError
	}

	return ExitGeneralError
}

// WrapError prefixes err with message. A nil err stays nil.
func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
