// Package errors defines stable error codes for the analysis pipeline.
//
// The taxonomy follows the pipeline's failure model: item-level
// failures (a single unreadable file) are recovered locally and never
// become errors at all; phase-level and configuration failures are
// fatal and carry one of the codes below.
package errors

import (
	"errors"
	"fmt"
)

// ErrorCode is a stable identifier for a failure mode.
type ErrorCode string

const (
	// ConfigInvalid indicates the pipeline configuration is unusable
	// before any phase starts.
	ConfigInvalid ErrorCode = "CONFIG_INVALID"
	// SourceUnreachable indicates the content source could not be
	// resolved (missing path, failed mirror checkout).
	SourceUnreachable ErrorCode = "SOURCE_UNREACHABLE"
	// WalkFailed indicates the directory walk itself failed. Fatal to
	// the whole run, unlike per-file read failures.
	WalkFailed ErrorCode = "WALK_FAILED"
	// ManifestNotFound indicates a lookup for a manifest id missed.
	ManifestNotFound ErrorCode = "MANIFEST_NOT_FOUND"
	// StoreFailed indicates the manifest store rejected an operation.
	StoreFailed ErrorCode = "STORE_FAILED"
	// InternalError indicates an unexpected failure.
	InternalError ErrorCode = "INTERNAL_ERROR"
)

// PipelineError is a failure with a stable code and optional cause.
type PipelineError struct {
	Code    ErrorCode
	Message string
	cause   error
}

// New creates a PipelineError without a cause.
func New(code ErrorCode, message string) *PipelineError {
	return &PipelineError{Code: code, Message: message}
}

// Wrap creates a PipelineError wrapping a cause.
func Wrap(code ErrorCode, message string, cause error) *PipelineError {
	return &PipelineError{Code: code, Message: message, cause: cause}
}

// Error implements the error interface.
func (e *PipelineError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause.
func (e *PipelineError) Unwrap() error {
	return e.cause
}

// CodeOf extracts the error code from err, or InternalError when err
// carries none.
func CodeOf(err error) ErrorCode {
	var pe *PipelineError
	if errors.As(err, &pe) {
		return pe.Code
	}
	return InternalError
}

// HasCode reports whether err carries the given code.
func HasCode(err error, code ErrorCode) bool {
	return CodeOf(err) == code
}
