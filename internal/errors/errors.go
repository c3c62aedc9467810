// Package errors provides standardized error handling for termfm.
// It defines the error kinds produced while parsing and executing commands,
// typed wrappers that carry the operation and path involved, and helper
// predicates so callers can branch on a kind without string matching.
package errors

import (
	"errors"
	"fmt"
)

// Standard errors package errors that we re-export for convenience
var (
	// Unwrap unwraps an error to access the underlying error
	Unwrap = errors.Unwrap
	// Is reports whether any error in err's chain matches target
	Is = errors.Is
	// As finds the first error in err's chain that matches target
	As = errors.As
)

// ErrorKind represents the kind of error
type ErrorKind int

// Error kinds
const (
	Unknown ErrorKind = iota
	// Parse error kinds
	MalformedCommand
	MissingSelection
	OperationNotFound
	WrongArgumentCount
	InvalidArgument
	// Execution error kinds
	IOFailure
	InvalidOperation
	// Config error kinds
	InvalidConfig
	ConfigNotFound
)

var kindNames = map[ErrorKind]string{
	Unknown:            "unknown",
	MalformedCommand:   "malformed command",
	MissingSelection:   "missing selection",
	OperationNotFound:  "operation not found",
	WrongArgumentCount: "wrong argument count",
	InvalidArgument:    "invalid argument",
	IOFailure:          "io failure",
	InvalidOperation:   "invalid operation",
	InvalidConfig:      "invalid configuration",
	ConfigNotFound:     "configuration not found",
}

// String returns a short human-readable name for the kind
func (k ErrorKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Common error constants for frequently occurring errors
var (
	ErrMalformedCommand  = NewParseError("malformed command", 0, MalformedCommand)
	ErrMissingSelection  = NewParseError("no file selected", 0, MissingSelection)
	ErrOperationNotFound = NewParseError("operation not found", 0, OperationNotFound)
	ErrInvalidConfig     = NewConfigError("invalid configuration", "", InvalidConfig, nil)
)

// ApplicationError is the base error type for all application errors
type ApplicationError struct {
	msg  string
	err  error
	kind ErrorKind
}

// Error returns the error message
func (e *ApplicationError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.err)
	}
	return e.msg
}

// Unwrap returns the wrapped error
func (e *ApplicationError) Unwrap() error {
	return e.err
}

// Kind returns the kind of error
func (e *ApplicationError) Kind() ErrorKind {
	return e.kind
}

// ParseError is returned when command text is rejected before dispatch.
// A parse error never has a wrapped cause; the command never reached the
// filesystem.
type ParseError struct {
	ApplicationError
	op rune
}

// NewParseError creates a new parse error for the given operation character.
// Pass 0 when the operation could not be determined.
func NewParseError(msg string, op rune, kind ErrorKind) *ParseError {
	return &ParseError{
		ApplicationError: ApplicationError{
			msg:  msg,
			kind: kind,
		},
		op: op,
	}
}

// Error returns the parse error message
func (e *ParseError) Error() string {
	if e.op != 0 {
		return fmt.Sprintf("%s: :%c", e.msg, e.op)
	}
	return e.ApplicationError.Error()
}

// Is matches another *ParseError of the same kind, so the Err* sentinels
// can be used with errors.Is regardless of operation.
func (e *ParseError) Is(target error) bool {
	t, ok := target.(*ParseError)
	if !ok {
		return false
	}
	return t.kind == e.kind
}

// Op returns the operation character associated with the error
func (e *ParseError) Op() rune {
	return e.op
}

// ExecError represents a failed filesystem call made by an operation
type ExecError struct {
	ApplicationError
	op   string
	path string
}

// NewExecError creates a new execution error. kind is normally IOFailure.
func NewExecError(op, path string, kind ErrorKind, err error) *ExecError {
	return &ExecError{
		ApplicationError: ApplicationError{
			msg:  op + " failed",
			err:  err,
			kind: kind,
		},
		op:   op,
		path: path,
	}
}

// Error returns the execution error message
func (e *ExecError) Error() string {
	if e.path != "" {
		if e.err != nil {
			return fmt.Sprintf("%s: %s: %v", e.msg, e.path, e.err)
		}
		return fmt.Sprintf("%s: %s", e.msg, e.path)
	}
	return e.ApplicationError.Error()
}

// Op returns the name of the operation that failed
func (e *ExecError) Op() string {
	return e.op
}

// Path returns the file path associated with the error
func (e *ExecError) Path() string {
	return e.path
}

// ConfigError represents errors related to configuration
type ConfigError struct {
	ApplicationError
	param string
}

// NewConfigError creates a new configuration error
func NewConfigError(msg string, param string, kind ErrorKind, err error) *ConfigError {
	return &ConfigError{
		ApplicationError: ApplicationError{
			msg:  msg,
			err:  err,
			kind: kind,
		},
		param: param,
	}
}

// Error returns the config error message
func (e *ConfigError) Error() string {
	if e.param != "" {
		if e.err != nil {
			return fmt.Sprintf("%s: %s: %v", e.msg, e.param, e.err)
		}
		return fmt.Sprintf("%s: %s", e.msg, e.param)
	}
	return e.ApplicationError.Error()
}

// Param returns the configuration parameter associated with the error
func (e *ConfigError) Param() string {
	return e.param
}

// New creates a new error with a message
func New(msg string) error {
	return &ApplicationError{
		msg:  msg,
		kind: Unknown,
	}
}

// Newf creates a new error with a formatted message
func Newf(format string, args ...interface{}) error {
	return &ApplicationError{
		msg:  fmt.Sprintf(format, args...),
		kind: Unknown,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return &ApplicationError{
		msg:  msg,
		err:  err,
		kind: Unknown,
	}
}

// Wrapf wraps an existing error with additional formatted context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return &ApplicationError{
		msg:  fmt.Sprintf(format, args...),
		err:  err,
		kind: Unknown,
	}
}

// KindOf returns the kind of the first application error in err's chain,
// or Unknown.
func KindOf(err error) ErrorKind {
	var k interface{ Kind() ErrorKind }
	if errors.As(err, &k) {
		return k.Kind()
	}
	return Unknown
}

// IsParseError checks if the error was raised before dispatch
func IsParseError(err error) bool {
	var parseErr *ParseError
	return errors.As(err, &parseErr)
}

// IsExecError checks if the error came from a filesystem call
func IsExecError(err error) bool {
	var execErr *ExecError
	return errors.As(err, &execErr)
}

// IsMissingSelection checks if the error is a missing selection error
func IsMissingSelection(err error) bool {
	var parseErr *ParseError
	if errors.As(err, &parseErr) {
		return parseErr.Kind() == MissingSelection
	}
	return false
}

// IsInvalidConfig checks if the error is an invalid configuration error
func IsInvalidConfig(err error) bool {
	var configErr *ConfigError
	if errors.As(err, &configErr) {
		return configErr.Kind() == InvalidConfig
	}
	return false
}
