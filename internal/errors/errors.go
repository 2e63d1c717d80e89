package errors

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"
)

// ErrorCategory defines the type of error for proper handling
type ErrorCategory string

const (
	CategoryValidation    ErrorCategory = "validation"
	CategoryDataQuality   ErrorCategory = "data_quality"
	CategoryIO            ErrorCategory = "io"
	CategoryInternal      ErrorCategory = "internal"
	CategoryConfiguration ErrorCategory = "configuration"
)

// AppError wraps an errbuilder error with the category the caller needs
// to decide between aborting the run and recording a data-quality finding.
type AppError struct {
	*errbuilder.ErrBuilder
	Category  ErrorCategory `json:"category"`
	Timestamp time.Time     `json:"timestamp"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	codeStr := "UNKNOWN_ERROR"
	switch e.Category {
	case CategoryValidation:
		codeStr = "VALIDATION_ERROR"
	case CategoryDataQuality:
		codeStr = "DATA_QUALITY_ERROR"
	case CategoryIO:
		codeStr = "IO_ERROR"
	case CategoryInternal:
		codeStr = "INTERNAL_ERROR"
	case CategoryConfiguration:
		codeStr = "CONFIGURATION_ERROR"
	}

	return fmt.Sprintf("[%s] %s", codeStr, e.ErrBuilder.Msg)
}

// Unwrap returns the underlying cause
func (e *AppError) Unwrap() error {
	return e.ErrBuilder.Unwrap()
}

// NewAppError creates an AppError from errbuilder with a category
func NewAppError(builder *errbuilder.ErrBuilder, category ErrorCategory) *AppError {
	return &AppError{
		ErrBuilder: builder,
		Category:   category,
		Timestamp:  time.Now(),
	}
}

// NewValidationError creates a validation error using errbuilder
func NewValidationError(message string, details ...interface{}) *AppError {
	builder := errbuilder.New().
		WithCode(errbuilder.CodeInvalidArgument).
		WithMsg(message)

	if len(details) > 0 {
		errorMap := errbuilder.ErrorMap{}
		errorMap.Set("validation_details", fmt.Errorf("%v", details[0]))
		builder = builder.WithDetails(errbuilder.NewErrDetails(errorMap))
	}

	return NewAppError(builder, CategoryValidation)
}

// NewDataQualityError creates a data-quality error carrying the offending
// scenario identifier
func NewDataQualityError(message, scenario string) *AppError {
	errorMap := errbuilder.ErrorMap{}
	errorMap.Set("scenario", errors.New(scenario))

	builder := errbuilder.New().
		WithCode(errbuilder.CodeInvalidArgument).
		WithMsg(message).
		WithDetails(errbuilder.NewErrDetails(errorMap))

	return NewAppError(builder, CategoryDataQuality)
}

// NewIOError creates a file I/O error using errbuilder
func NewIOError(message string, cause error) *AppError {
	builder := errbuilder.New().
		WithCode(errbuilder.CodeUnavailable).
		WithMsg(message)

	if cause != nil {
		builder = builder.WithCause(cause)
	}

	return NewAppError(builder, CategoryIO)
}

// NewInternalError creates an internal error using errbuilder
func NewInternalError(message string, cause error) *AppError {
	errorMap := errbuilder.ErrorMap{}
	errorMap.Set("internal_details", errors.New(message))

	builder := errbuilder.New().
		WithCode(errbuilder.CodeInternal).
		WithMsg("Internal error").
		WithDetails(errbuilder.NewErrDetails(errorMap))

	if cause != nil {
		builder = builder.WithCause(cause)
	}

	return NewAppError(builder, CategoryInternal)
}

// NewConfigurationError creates a configuration error using errbuilder
func NewConfigurationError(message string, cause error) *AppError {
	errorMap := errbuilder.ErrorMap{}
	errorMap.Set("config_details", errors.New(message))

	builder := errbuilder.New().
		WithCode(errbuilder.CodeFailedPrecondition).
		WithMsg("Configuration error").
		WithDetails(errbuilder.NewErrDetails(errorMap))

	if cause != nil {
		builder = builder.WithCause(cause)
	}

	return NewAppError(builder, CategoryConfiguration)
}

// ToAppError converts any error to an AppError
func ToAppError(err error) *AppError {
	if err == nil {
		return nil
	}

	if appErr, ok := err.(*AppError); ok {
		return appErr
	}

	if ebErr, ok := err.(*errbuilder.ErrBuilder); ok {
		return NewAppError(ebErr, CategoryInternal)
	}

	return NewInternalError("An unexpected error occurred", err)
}

// WrapError wraps an error with additional context
func WrapError(err error, message string, args ...interface{}) error {
	if err == nil {
		return nil
	}

	contextMsg := fmt.Sprintf(message, args...)
	return fmt.Errorf("%s: %w", contextMsg, err)
}

// SafeClose safely closes a resource and logs any errors
func SafeClose(closer interface{ Close() error }, resourceName string) {
	if closer == nil {
		return
	}

	if err := closer.Close(); err != nil {
		slog.Warn("Failed to close resource",
			"resource", resourceName,
			"error", err)
	}
}
