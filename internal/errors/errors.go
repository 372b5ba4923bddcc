// Package errors provides standardized error handling for flatcopy.
// It defines the error kinds a run can produce, typed errors that carry the
// offending path or parameter, and helpers for creating and classifying them.
//
// Configuration errors and destination/source failures are fatal. Traversal
// and copy errors are recovered locally: the affected subtree or file is
// skipped and the run continues.
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
	// Config error kinds
	InvalidConfig
	ConfigNotFound
	UnknownPreset
	ConflictingOptions
	// Fatal file error kinds
	SourceNotFound
	DestinationUnavailable
	// Recoverable kinds
	TraversalFailed
	CopyFailed
)

var kindNames = map[ErrorKind]string{
	Unknown:                "unknown",
	InvalidConfig:          "invalid_config",
	ConfigNotFound:         "config_not_found",
	UnknownPreset:          "unknown_preset",
	ConflictingOptions:     "conflicting_options",
	SourceNotFound:         "source_not_found",
	DestinationUnavailable: "destination_unavailable",
	TraversalFailed:        "traversal_failed",
	CopyFailed:             "copy_failed",
}

func (k ErrorKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

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

// FileError represents a fatal problem with the source or destination root
type FileError struct {
	ApplicationError
	path string
}

// NewFileError creates a new file error
func NewFileError(msg string, path string, kind ErrorKind, err error) *FileError {
	return &FileError{
		ApplicationError: ApplicationError{
			msg:  msg,
			err:  err,
			kind: kind,
		},
		path: path,
	}
}

// Error returns the file error message
func (e *FileError) Error() string {
	if e.path != "" {
		if e.err != nil {
			return fmt.Sprintf("%s: %s: %v", e.msg, e.path, e.err)
		}
		return fmt.Sprintf("%s: %s", e.msg, e.path)
	}
	return e.ApplicationError.Error()
}

// Path returns the file path associated with the error
func (e *FileError) Path() string {
	return e.path
}

// TraversalError reports a directory or entry the walker could not visit.
type TraversalError struct {
	ApplicationError
	path string
}

// NewTraversalError creates a new traversal warning for path
func NewTraversalError(msg string, path string, err error) *TraversalError {
	return &TraversalError{
		ApplicationError: ApplicationError{
			msg:  msg,
			err:  err,
			kind: TraversalFailed,
		},
		path: path,
	}
}

// Error returns the traversal error message
func (e *TraversalError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %s: %v", e.msg, e.path, e.err)
	}
	return fmt.Sprintf("%s: %s", e.msg, e.path)
}

// Path returns the path that could not be traversed
func (e *TraversalError) Path() string {
	return e.path
}

// CopyError reports a failed read or write for a single file.
type CopyError struct {
	ApplicationError
	source string
	dest   string
}

// NewCopyError creates a new copy error
func NewCopyError(msg, source, dest string, err error) *CopyError {
	return &CopyError{
		ApplicationError: ApplicationError{
			msg:  msg,
			err:  err,
			kind: CopyFailed,
		},
		source: source,
		dest:   dest,
	}
}

// Error returns the copy error message
func (e *CopyError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %s -> %s: %v", e.msg, e.source, e.dest, e.err)
	}
	return fmt.Sprintf("%s: %s -> %s", e.msg, e.source, e.dest)
}

// Source returns the file that was being copied
func (e *CopyError) Source() string {
	return e.source
}

// Dest returns the destination the copy was aimed at
func (e *CopyError) Dest() string {
	return e.dest
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

// KindOf returns the first known kind in err's chain. Plain Wrap layers
// report Unknown and are looked through.
func KindOf(err error) ErrorKind {
	for err != nil {
		if k, ok := err.(interface{ Kind() ErrorKind }); ok && k.Kind() != Unknown {
			return k.Kind()
		}
		err = errors.Unwrap(err)
	}
	return Unknown
}

// IsConfigError checks if the error is a configuration error of any kind
func IsConfigError(err error) bool {
	var configErr *ConfigError
	return errors.As(err, &configErr)
}

// IsUnknownPreset checks if the error names a preset that does not exist
func IsUnknownPreset(err error) bool {
	var configErr *ConfigError
	if errors.As(err, &configErr) {
		return configErr.Kind() == UnknownPreset
	}
	return false
}

// IsTraversalError checks if the error is a recoverable traversal error
func IsTraversalError(err error) bool {
	var travErr *TraversalError
	return errors.As(err, &travErr)
}

// IsCopyError checks if the error is a recoverable copy error
func IsCopyError(err error) bool {
	var copyErr *CopyError
	return errors.As(err, &copyErr)
}

// IsFatal reports whether err must abort the run.
func IsFatal(err error) bool {
	if err == nil {
		return false
	}
	return !IsTraversalError(err) && !IsCopyError(err)
}
