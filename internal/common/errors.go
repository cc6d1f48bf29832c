package common

import (
	"errors"
	"fmt"
)

// AppError represents application-specific errors
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Common application errors
var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrExtraction    = errors.New("extraction failed")
	ErrNoContent     = fmt.Errorf("%w: no content", ErrExtraction)
	ErrEmptyRegion   = errors.New("no text found in area")
	ErrNamingService = errors.New("naming service error")
	ErrConflict      = errors.New("target file exists")
	ErrFilesystem    = errors.New("filesystem error")
	ErrBatchInFlight = errors.New("a rename batch is already running")
)

// Error constructors
func NewAppError(code, message string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// ExtractionError tags err as an extraction failure, keeping its text as the reason.
func ExtractionError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrExtraction, fmt.Sprintf(format, args...))
}
