package parser

import (
	"errors"
	"fmt"
	"strings"
)

// The parser fails with exactly one of five error kinds. All of them are
// terminal for the parse and must be treated as user-input errors, never as
// transient failures. Each carries the structured fields needed to build its
// user-facing message.

// CommandValidationError reports malformed command syntax, a disallowed URL
// scheme, a path outside the sandbox, or any other structural validation
// failure not covered by a more specific kind.
type CommandValidationError struct {
	// Message is the complete user-facing message.
	Message string
	// Path is the offending file path for sandbox violations, "" otherwise.
	Path string
	// Value is the offending raw value for scheme violations, "" otherwise.
	Value string
}

func (e *CommandValidationError) Error() string { return e.Message }

// newSchemeError builds the rejection for remote URL schemes used where a
// file reference is expected.
func newSchemeError(value, scheme string) *CommandValidationError {
	return &CommandValidationError{
		Message: fmt.Sprintf("Invalid parameter value '%s': %s:// prefix is not allowed. Use a local file path or file:// instead.", value, scheme),
		Value:   value,
	}
}

// newSandboxError builds the rejection for paths escaping the working
// directory.
func newSandboxError(path, root string) *CommandValidationError {
	return &CommandValidationError{
		Message: fmt.Sprintf("File path '%s' is outside the allowed working directory '%s'.", path, root),
		Path:    path,
	}
}

// InvalidServiceOperationError reports an operation the schema knowledge
// base does not recognize. ServiceKnown distinguishes an unknown service
// from an unknown operation on a known service.
type InvalidServiceOperationError struct {
	Service      string
	Operation    string
	ServiceKnown bool
}

func (e *InvalidServiceOperationError) Error() string {
	if !e.ServiceKnown {
		return fmt.Sprintf("unknown service '%s'", e.Service)
	}
	return fmt.Sprintf("unknown operation '%s' for service '%s'", e.Operation, e.Service)
}

// OperationNotAllowedError reports an operation that matches the shape of a
// customization but is absent from the allow-list.
type OperationNotAllowedError struct {
	Service   string
	Operation string
}

func (e *OperationNotAllowedError) Error() string {
	return fmt.Sprintf("operation '%s' for service '%s' is not allowed", e.Operation, e.Service)
}

// MissingRequiredParametersError reports every required parameter absent
// after shaping, in one error. Names use the CLI flag spelling for
// customizations and the schema's declared name for generic operations.
type MissingRequiredParametersError struct {
	Service   string
	Operation string
	Missing   []string
}

func (e *MissingRequiredParametersError) Error() string {
	return fmt.Sprintf("missing required parameters for operation '%s' on service '%s': %s",
		e.Operation, e.Service, strings.Join(e.Missing, ", "))
}

// FileParameterError reports a file-reference-specific failure: the
// streaming sentinel or an unreadable file.
type FileParameterError struct {
	Service   string
	Operation string
	FilePath  string
	Reason    string
}

func (e *FileParameterError) Error() string {
	return fmt.Sprintf("Invalid file parameter '%s' for service '%s' and operation '%s': %s",
		e.FilePath, e.Service, e.Operation, e.Reason)
}

// streamingReason is the documented reason for rejecting the stdin/stdout
// sentinel.
const streamingReason = "streaming file ('-') is not allowed. Please provide a valid file path."

func newStreamingError(service, operation string) *FileParameterError {
	return &FileParameterError{
		Service:   service,
		Operation: operation,
		FilePath:  "-",
		Reason:    streamingReason,
	}
}

// IsCommandValidation reports whether err is a CommandValidationError.
// Uses errors.As to handle wrapped errors.
func IsCommandValidation(err error) bool {
	var e *CommandValidationError
	return errors.As(err, &e)
}

// IsOperationNotAllowed reports whether err is an OperationNotAllowedError.
func IsOperationNotAllowed(err error) bool {
	var e *OperationNotAllowedError
	return errors.As(err, &e)
}

// IsInvalidServiceOperation reports whether err is an
// InvalidServiceOperationError.
func IsInvalidServiceOperation(err error) bool {
	var e *InvalidServiceOperationError
	return errors.As(err, &e)
}

// IsMissingRequiredParameters reports whether err is a
// MissingRequiredParametersError.
func IsMissingRequiredParameters(err error) bool {
	var e *MissingRequiredParametersError
	return errors.As(err, &e)
}

// IsFileParameter reports whether err is a FileParameterError.
func IsFileParameter(err error) bool {
	var e *FileParameterError
	return errors.As(err, &e)
}
