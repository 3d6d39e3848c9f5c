package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/roach88/acsdata/internal/acs"
)

// Exit codes for CLI commands.
const (
	ExitFailure      = 1 // Data failure (unknown state, cache miss, bad download)
	ExitCommandError = 2 // Command error (invalid flags, unreadable config, broken inventory)
)

// ExitError represents an error with a specific exit code.
// Use this to return errors with meaningful exit codes from CLI commands.
type ExitError struct {
	Code    int    // Exit code (use ExitFailure or ExitCommandError)
	Message string // Error message
	Err     error  // Underlying error (optional)
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitFailure (1) if the error is not an ExitError.
func GetExitCode(err error) int {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// OutputFormatter handles JSON vs text output for CLI commands.
type OutputFormatter struct {
	Format string
	Writer io.Writer
}

// CLIResponse is the standard JSON response format for CLI output.
type CLIResponse struct {
	Status string      `json:"status"`          // "ok" or "error"
	Data   interface{} `json:"data,omitempty"`  // success payload
	Error  *CLIError   `json:"error,omitempty"` // error details
}

// CLIError is the error structure for CLI responses.
type CLIError struct {
	Code    string `json:"code"`    // error category, e.g. "INVALID_STATE"
	Message string `json:"message"` // human-readable message
}

// Success outputs a successful result in the configured format.
// For text output, data is printed with its String method when it has one.
func (f *OutputFormatter) Success(data interface{}) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(CLIResponse{
			Status: "ok",
			Data:   data,
		})
	}

	fmt.Fprintln(f.Writer, data)
	return nil
}

// Error outputs an error in the configured format.
func (f *OutputFormatter) Error(code, message string) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(CLIResponse{
			Status: "error",
			Error: &CLIError{
				Code:    code,
				Message: message,
			},
		})
	}

	fmt.Fprintf(f.Writer, "Error [%s]: %s\n", code, message)
	return nil
}

// errorCode maps an error to the code reported in CLI output: the acs
// taxonomy code when the error carries one, COMMAND_ERROR otherwise.
func errorCode(err error) string {
	var acsErr *acs.Error
	if errors.As(err, &acsErr) {
		return string(acsErr.Code)
	}
	return "COMMAND_ERROR"
}

// failCommand reports err through the formatter, so --format json emits the
// error envelope, and returns the ExitError carrying the process exit code.
func failCommand(formatter *OutputFormatter, exitCode int, message string, err error) error {
	_ = formatter.Error(errorCode(err), fmt.Sprintf("%s: %v", message, err))
	return WrapExitError(exitCode, message, err)
}
