package errors

import (
	"fmt"
)

// MissingReportError signals that a configured raw-report path does not
// exist. It contributes zero findings and never aborts the aggregation of
// other tools.
type MissingReportError struct {
	Tool string
	Path string
}

// Error implements the error interface for MissingReportError.
func (e *MissingReportError) Error() string {
	return fmt.Sprintf("%s report %q does not exist", e.Tool, e.Path)
}

// NewMissingReportError is the constructor for MissingReportError.
func NewMissingReportError(tool, path string) error {
	return &MissingReportError{Tool: tool, Path: path}
}

// ParseError signals that a raw report exists but is malformed or holds an
// unexpected schema. The file name is surfaced in the summary so a human can
// investigate; aggregation of other reports continues.
type ParseError struct {
	Tool string
	Path string
	Err  error
}

// Error implements the error interface for ParseError.
func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse %s report %q: %v", e.Tool, e.Path, e.Err)
}

// Unwrap exposes the underlying cause.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// NewParseError is the constructor for ParseError.
func NewParseError(tool, path string, err error) error {
	return &ParseError{Tool: tool, Path: path, Err: err}
}

// RenderError represents a renderer that could not produce its output.
// It is fatal for that renderer only; sibling renderers still run.
type RenderError struct {
	Renderer string
	Err      error
}

// Error implements the error interface for RenderError.
func (e *RenderError) Error() string {
	return fmt.Sprintf("%s renderer failed: %v", e.Renderer, e.Err)
}

// Unwrap exposes the underlying cause.
func (e *RenderError) Unwrap() error {
	return e.Err
}

// NewRenderError is the constructor for RenderError.
func NewRenderError(renderer string, err error) error {
	return &RenderError{Renderer: renderer, Err: err}
}

// CommandError carries an exit code from a failed command so the CLI entry
// point can propagate it.
type CommandError struct {
	ExitCode    int
	CommonError string
}

// Error implements the error interface, returning the message from the common error.
func (e *CommandError) Error() string {
	return e.CommonError
}

// NewCommandError creates a new CommandError instance encapsulating the error message and code.
func NewCommandError(err error, code int) *CommandError {
	return &CommandError{
		ExitCode:    code,
		CommonError: err.Error(),
	}
}
