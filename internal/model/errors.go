package model

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedArguments reports a schema or type level parse failure:
	// an unknown flag, a non-numeric or out-of-range port, too many
	// positional values, or an unparsable environment value.
	ErrMalformedArguments = errors.New("malformed arguments")

	// ErrMissingTarget reports flags that are valid on their own but leave
	// the derived mode without the port or address it needs.
	ErrMissingTarget = errors.New("missing target")
)

// ConfigError describes why user intent could not be resolved.
// Kind is one of the sentinel errors above and is matched by errors.Is.
type ConfigError struct {
	// Kind is ErrMalformedArguments or ErrMissingTarget.
	Kind error

	// Option names the offending flag, positional or environment variable.
	// Empty when the failure is not tied to a single option.
	Option string

	// Reason is the human-readable explanation.
	Reason string

	// Err is the underlying error, if any (e.g. a strconv failure).
	Err error
}

// Error satisfies the error interface.
func (e *ConfigError) Error() string {
	msg := e.Kind.Error()
	if e.Option != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Option)
	}
	if e.Reason != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Reason)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Is matches the error against its Kind sentinel.
func (e *ConfigError) Is(target error) bool {
	return target == e.Kind
}

// Unwrap returns the underlying error for use with errors.Is/errors.As.
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// NewMalformedArguments creates a ConfigError of kind ErrMalformedArguments.
func NewMalformedArguments(option, reason string, err error) *ConfigError {
	return &ConfigError{Kind: ErrMalformedArguments, Option: option, Reason: reason, Err: err}
}

// NewMissingTarget creates a ConfigError of kind ErrMissingTarget.
func NewMissingTarget(mode Mode, reason string) *ConfigError {
	return &ConfigError{Kind: ErrMissingTarget, Option: mode.String(), Reason: reason}
}

// ExitCode defines standard CLI exit codes.
// These codes allow scripts to tell configuration failures apart.
type ExitCode int

const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess ExitCode = 0

	// ExitGeneralError indicates an unspecified error occurred.
	ExitGeneralError ExitCode = 1

	// ExitMalformedArguments indicates a flag, positional or environment
	// value could not be parsed.
	ExitMalformedArguments ExitCode = 2

	// ExitMissingTarget indicates the derived mode lacks a port or address.
	ExitMissingTarget ExitCode = 3
)

// ExitCodeFor maps an error onto the exit code the process should return.
func ExitCodeFor(err error) ExitCode {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrMalformedArguments):
		return ExitMalformedArguments
	case errors.Is(err, ErrMissingTarget):
		return ExitMissingTarget
	default:
		return ExitGeneralError
	}
}

// CLIError is a custom error type that carries an exit code.
// This allows the CLI layer to translate domain errors into
// appropriate process exit codes.
type CLIError struct {
	// Code is the exit code to return to the OS.
	Code ExitCode

	// Message is the human-readable error description.
	Message string

	// Err is the underlying error, if any.
	Err error
}

// Error satisfies the error interface. It returns the human-readable
// error message, optionally including the underlying error.
func (e *CLIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for use with errors.Is/errors.As.
func (e *CLIError) Unwrap() error {
	return e.Err
}

// NewCLIError creates a new CLIError with the given exit code and message.
func NewCLIError(code ExitCode, message string) *CLIError {
	return &CLIError{Code: code, Message: message}
}

// WrapCLIError creates a new CLIError that wraps an existing error.
func WrapCLIError(code ExitCode, message string, err error) *CLIError {
	return &CLIError{Code: code, Message: message, Err: err}
}
