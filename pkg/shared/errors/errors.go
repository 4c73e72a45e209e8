package errors

import (
	"errors"
	"fmt"
)

// DataAccessError reports an input that could not be opened or read.
type DataAccessError struct {
	Path string
	Err  error
}

// Error implements the error interface for DataAccessError.
func (e *DataAccessError) Error() string {
	return fmt.Sprintf("unable to read %q: %v", e.Path, e.Err)
}

func (e *DataAccessError) Unwrap() error {
	return e.Err
}

// NewDataAccessError creates a new DataAccessError for the given path.
func NewDataAccessError(path string, err error) error {
	return &DataAccessError{Path: path, Err: err}
}

// MalformedRecordError reports a row that cannot be parsed into its typed fields.
// Column is 1-based; zero means the row as a whole is malformed.
type MalformedRecordError struct {
	Path   string
	Line   int
	Column int
	Value  string
	Err    error
}

// Error implements the error interface for MalformedRecordError.
func (e *MalformedRecordError) Error() string {
	loc := fmt.Sprintf("line %d", e.Line)
	if e.Path != "" {
		loc = fmt.Sprintf("%s:%d", e.Path, e.Line)
	}
	if e.Column > 0 {
		return fmt.Sprintf("%s: malformed record, column %d value %q: %v", loc, e.Column, e.Value, e.Err)
	}
	return fmt.Sprintf("%s: malformed record: %v", loc, e.Err)
}

func (e *MalformedRecordError) Unwrap() error {
	return e.Err
}

// WithPath sets the file path of a MalformedRecordError found in err's chain
// when the error does not carry one yet. Other errors are returned untouched.
func WithPath(err error, path string) error {
	var malformed *MalformedRecordError
	if errors.As(err, &malformed) && malformed.Path == "" {
		malformed.Path = path
	}
	return err
}

// StructuralConsistencyError reports a source token whose start edges disagree
// on the originating context.
type StructuralConsistencyError struct {
	Token     string
	Want      int
	Got       int
	FirstLine int
	Line      int
}

// Error implements the error interface for StructuralConsistencyError.
func (e *StructuralConsistencyError) Error() string {
	return fmt.Sprintf("source %q has start edges in different contexts: %d (line %d) and %d (line %d)",
		e.Token, e.Want, e.FirstLine, e.Got, e.Line)
}

// PathNotFoundError is the per-finding outcome of an unexplainable flow.
// It never aborts a run.
type PathNotFoundError struct {
	Source       string
	StartContext int
	EndContext   int
	Sink         string
	Reason       string
}

// Error implements the error interface for PathNotFoundError.
func (e *PathNotFoundError) Error() string {
	return fmt.Sprintf("no propagation path from [%d, %s] to [%d, %s]: %s",
		e.StartContext, e.Source, e.EndContext, e.Sink, e.Reason)
}

// CommandError represents a failed command together with the process exit code it maps to.
type CommandError struct {
	ExitCode int
	Err      error
}

// Error implements the error interface, returning the message of the wrapped error.
func (e *CommandError) Error() string {
	return e.Err.Error()
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// NewCommandError creates a new CommandError instance.
func NewCommandError(err error, code int) *CommandError {
	return &CommandError{
		ExitCode: code,
		Err:      err,
	}
}
