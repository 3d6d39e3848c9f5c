package acs

import (
	"errors"
	"fmt"
	"io/fs"
)

// ErrorCode categorizes DataSource errors.
type ErrorCode string

const (
	// ErrCodeConfiguration indicates invalid constructor arguments
	// (unsupported year, horizon, or survey type).
	ErrCodeConfiguration ErrorCode = "CONFIGURATION"

	// ErrCodeInvalidState indicates an unrecognized state code.
	ErrCodeInvalidState ErrorCode = "INVALID_STATE"

	// ErrCodeFileNotFound indicates a cache miss with downloads disabled.
	ErrCodeFileNotFound ErrorCode = "FILE_NOT_FOUND"

	// ErrCodeDownload indicates a network failure, non-2xx response, or a
	// missing archive member.
	ErrCodeDownload ErrorCode = "DOWNLOAD"

	// ErrCodeInvalidJoin indicates a household join requested on a
	// non-person survey.
	ErrCodeInvalidJoin ErrorCode = "INVALID_JOIN"

	// ErrCodeDataIntegrity indicates structurally inconsistent data, such as
	// a column-set mismatch between per-state files. Never auto-corrected.
	ErrCodeDataIntegrity ErrorCode = "DATA_INTEGRITY"
)

// Error is the error type returned by all DataSource operations.
//
// Errors are raised synchronously at the point of detection; no partial
// results accompany a non-nil Error and nothing is retried beyond the
// transport-level retry budget.
type Error struct {
	// Code identifies the error category.
	Code ErrorCode

	// Message is a human-readable description.
	Message string

	// State is the two-letter state code involved, if any.
	State string

	// Path is the local cache path involved, if any.
	Path string

	// URL is the remote resource involved, if any.
	URL string

	// Err is the underlying cause, if any.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	switch {
	case e.Path != "":
		return fmt.Sprintf("%s: %s (path=%s)", e.Code, e.Message, e.Path)
	case e.URL != "":
		return fmt.Sprintf("%s: %s (url=%s)", e.Code, e.Message, e.URL)
	case e.State != "":
		return fmt.Sprintf("%s: %s (state=%s)", e.Code, e.Message, e.State)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newConfigurationError(format string, args ...any) *Error {
	return &Error{Code: ErrCodeConfiguration, Message: fmt.Sprintf(format, args...)}
}

func newInvalidStateError(state string) *Error {
	return &Error{
		Code:    ErrCodeInvalidState,
		Message: "unrecognized state code",
		State:   state,
	}
}

// newFileNotFoundError wraps fs.ErrNotExist so callers can also test the
// error with errors.Is(err, fs.ErrNotExist).
func newFileNotFoundError(path string) *Error {
	return &Error{
		Code:    ErrCodeFileNotFound,
		Message: "data file not present locally and downloads are disabled",
		Path:    path,
		Err:     fs.ErrNotExist,
	}
}

func newDownloadError(url, message string, err error) *Error {
	return &Error{Code: ErrCodeDownload, Message: message, URL: url, Err: err}
}

func newInvalidJoinError(survey Survey) *Error {
	return &Error{
		Code:    ErrCodeInvalidJoin,
		Message: fmt.Sprintf("household join requires the person survey, got %q", survey),
	}
}

func newDataIntegrityError(message string, err error) *Error {
	return &Error{Code: ErrCodeDataIntegrity, Message: message, Err: err}
}

func codeIs(err error, code ErrorCode) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// IsConfiguration reports whether err is a configuration error.
// Uses errors.As to handle wrapped errors.
func IsConfiguration(err error) bool { return codeIs(err, ErrCodeConfiguration) }

// IsInvalidState reports whether err is an unrecognized-state error.
func IsInvalidState(err error) bool { return codeIs(err, ErrCodeInvalidState) }

// IsNotFound reports whether err is a cache-miss error.
func IsNotFound(err error) bool { return codeIs(err, ErrCodeFileNotFound) }

// IsDownload reports whether err is a download error.
func IsDownload(err error) bool { return codeIs(err, ErrCodeDownload) }

// IsInvalidJoin reports whether err is an invalid-join error.
func IsInvalidJoin(err error) bool { return codeIs(err, ErrCodeInvalidJoin) }

// IsDataIntegrity reports whether err is a data-integrity error.
func IsDataIntegrity(err error) bool { return codeIs(err, ErrCodeDataIntegrity) }
