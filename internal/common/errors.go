package common

import (
	"errors"
	"fmt"
	"net/http"
)

// Error codes carried by AppError.
const (
	CodeGeneration      = "GENERATION_FAILED"
	CodeMalformedOutput = "MALFORMED_OUTPUT"
	CodeRender          = "RENDER_FAILED"
	CodeInvalidInput    = "INVALID_INPUT"
	CodeConfig          = "CONFIG_ERROR"
)

// AppError represents application-specific errors
type AppError struct {
	Code    string
	Message string
	Kind    error // one of the sentinels below
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() []error {
	errs := make([]error, 0, 2)
	if e.Kind != nil {
		errs = append(errs, e.Kind)
	}
	if e.Cause != nil {
		errs = append(errs, e.Cause)
	}
	return errs
}

// Common application errors
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrValidation   = errors.New("validation failed")

	// ErrGeneration: the model-call capability itself failed (network, auth, quota, provider).
	ErrGeneration = errors.New("generation failed")
	// ErrMalformedOutput: the model answered, but not with a usable circular.
	ErrMalformedOutput = errors.New("malformed model output")
	// ErrRender: the document could not be built or written.
	ErrRender = errors.New("render failed")
)

// Error constructors
func NewAppError(code, message string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

func GenerationFailure(cause error) *AppError {
	return &AppError{Code: CodeGeneration, Message: "language model call failed", Kind: ErrGeneration, Cause: cause}
}

func MalformedOutput(cause error) *AppError {
	return &AppError{Code: CodeMalformedOutput, Message: "failed to generate valid JSON circular", Kind: ErrMalformedOutput, Cause: cause}
}

func RenderFailure(cause error) *AppError {
	return &AppError{Code: CodeRender, Message: "failed to render circular document", Kind: ErrRender, Cause: cause}
}

func InvalidInput(message string) *AppError {
	return &AppError{Code: CodeInvalidInput, Message: message, Kind: ErrInvalidInput}
}

// HTTPStatus maps an error onto the status the HTTP boundary answers with.
// Malformed model output is reported as a client error: the submitted text
// produced an unusable answer.
func HTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrMalformedOutput), errors.Is(err, ErrInvalidInput), errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// PublicMessage returns the part of err that is safe to show to callers.
// Causes (provider bodies, raw model output) stay in the logs.
func PublicMessage(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return "internal error"
}
