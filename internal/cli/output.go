package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/veldt/cloudcmd/internal/parser"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // Successful execution
	ExitFailure      = 1 // Parse/validation failure (user-input errors)
	ExitCommandError = 2 // Command error (bad config, database not found, etc.)
)

// Error codes used in JSON output, one per parser error kind.
const (
	ErrCodeValidation        = "COMMAND_VALIDATION"
	ErrCodeInvalidOperation  = "INVALID_SERVICE_OPERATION"
	ErrCodeNotAllowed        = "OPERATION_NOT_ALLOWED"
	ErrCodeMissingParameters = "MISSING_REQUIRED_PARAMETERS"
	ErrCodeFileParameter     = "FILE_PARAMETER"
	ErrCodeGeneric           = "ERROR"
)

// ExitError carries a specific exit code out of a command.
type ExitError struct {
	Code    int
	Message string
	Err     error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error { return e.Err }

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitFailure when the error carries no code of its own.
func GetExitCode(err error) int {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// errorCode maps a parse error to its JSON error code.
func errorCode(err error) string {
	switch {
	case parser.IsFileParameter(err):
		return ErrCodeFileParameter
	case parser.IsMissingRequiredParameters(err):
		return ErrCodeMissingParameters
	case parser.IsOperationNotAllowed(err):
		return ErrCodeNotAllowed
	case parser.IsInvalidServiceOperation(err):
		return ErrCodeInvalidOperation
	case parser.IsCommandValidation(err):
		return ErrCodeValidation
	default:
		return ErrCodeGeneric
	}
}

// OutputFormatter handles JSON vs text output for CLI commands.
type OutputFormatter struct {
	Format    string
	Writer    io.Writer
	ErrWriter io.Writer // diagnostics go to stderr to keep JSON output clean
	Verbose   bool
}

// CLIResponse is the standard JSON response envelope.
type CLIResponse struct {
	Status string      `json:"status"` // "ok" or "error"
	Data   interface{} `json:"data,omitempty"`
	Error  *CLIError   `json:"error,omitempty"`
}

// CLIError is the error structure for JSON responses.
type CLIError struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// Success outputs a successful result in the configured format.
func (f *OutputFormatter) Success(data interface{}) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(CLIResponse{Status: "ok", Data: data})
	}
	fmt.Fprintln(f.Writer, data)
	return nil
}

// Error outputs an error in the configured format.
func (f *OutputFormatter) Error(code, message string, details interface{}) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(CLIResponse{
			Status: "error",
			Error:  &CLIError{Code: code, Message: message, Details: details},
		})
	}
	fmt.Fprintf(f.Writer, "error: %s\n", message)
	return nil
}

// VerboseLog writes a diagnostic line when verbose mode is on.
func (f *OutputFormatter) VerboseLog(format string, args ...interface{}) {
	if !f.Verbose {
		return
	}
	w := f.ErrWriter
	if w == nil {
		w = f.Writer
	}
	fmt.Fprintf(w, format+"\n", args...)
}
