// Package errors provides standardized error handling for the pitch
// generation pipeline and the HTTP boundary.
package errors

import (
	"fmt"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeEmptyIdea      ErrorCode = "EMPTY_IDEA"
	ErrCodeInvalidRequest ErrorCode = "INVALID_REQUEST"

	ErrCodeProviderUnavailable ErrorCode = "PROVIDER_UNAVAILABLE"
	ErrCodeProviderCallFailed  ErrorCode = "PROVIDER_CALL_FAILED"
	ErrCodeProviderTimeout     ErrorCode = "PROVIDER_TIMEOUT"
	ErrCodeEmptyCompletion     ErrorCode = "EMPTY_COMPLETION"

	ErrCodeGenerationFailed     ErrorCode = "GENERATION_FAILED"
	ErrCodeTemplateRenderFailed ErrorCode = "TEMPLATE_RENDER_FAILED"

	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// ==========================
// 2. Error Constructors
// ==========================

// NewEmptyIdeaError creates the validation error for a blank idea field.
func NewEmptyIdeaError() *StandardError {
	return &StandardError{
		Code:      ErrCodeEmptyIdea,
		Message:   "Please provide a valid startup idea.",
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewInvalidRequestError creates a non-retryable schema validation error.
func NewInvalidRequestError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidRequest,
		Message:   "Request body failed validation",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewProviderUnavailableError signals that no completion provider is
// configured and mock mode is off.
func NewProviderUnavailableError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeProviderUnavailable,
		Message:   "No AI provider configured. Set an API key or enable mock mode.",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewProviderCallError wraps a failed outbound completion call. The
// provider error text lands in Details for the logs, never in Message.
func NewProviderCallError(provider string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeProviderCallFailed,
		Message:   fmt.Sprintf("Provider '%s' call failed", provider),
		Details:   err.Error(),
		Retryable: true,
		Metadata:  map[string]interface{}{"provider": provider},
		Timestamp: time.Now().UTC(),
	}
}

// NewProviderTimeoutError wraps an outbound call that hit its deadline.
func NewProviderTimeoutError(provider string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeProviderTimeout,
		Message:   fmt.Sprintf("Provider '%s' timed out", provider),
		Details:   err.Error(),
		Retryable: true,
		Metadata:  map[string]interface{}{"provider": provider},
		Timestamp: time.Now().UTC(),
	}
}

// NewEmptyCompletionError signals a well-formed provider response that
// carried no usable text.
func NewEmptyCompletionError(provider string) *StandardError {
	return &StandardError{
		Code:      ErrCodeEmptyCompletion,
		Message:   fmt.Sprintf("Provider '%s' returned an empty completion", provider),
		Retryable: true,
		Metadata:  map[string]interface{}{"provider": provider},
		Timestamp: time.Now().UTC(),
	}
}

// NewGenerationFailedError signals that every configured provider was
// tried and each failed.
func NewGenerationFailedError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeGenerationFailed,
		Message:   "Failed to generate pitch deck",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewTemplateRenderError wraps a mock-mode template execution failure.
func NewTemplateRenderError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeTemplateRenderFailed,
		Message:   "Template rendering failed",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewInternalError wraps an unexpected error.
func NewInternalError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeInternal,
		Message:   "Unexpected error",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// 3. Utility Functions
// ==========================

// GetRetryCount returns the recommended in-request retry count per code.
func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeProviderCallFailed, ErrCodeEmptyCompletion:
		return 2

	case ErrCodeProviderTimeout:
		return 1

	default:
		return 0 // Validation and terminal errors: no retry
	}
}

// IsRetryableErrorCode checks if an error code is retryable.
func IsRetryableErrorCode(code ErrorCode) bool {
	return GetRetryCount(code) > 0
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "IDEA") || strings.Contains(codeStr, "REQUEST"):
		return "VALIDATION"
	case strings.Contains(codeStr, "PROVIDER") || strings.Contains(codeStr, "COMPLETION"):
		return "PROVIDER"
	case strings.Contains(codeStr, "GENERATION") || strings.Contains(codeStr, "TEMPLATE"):
		return "GENERATION"
	default:
		return "OTHER"
	}
}

// UserMessage maps an error code to the text shown to callers. Provider
// internals never leak here: anything upstream of generation collapses
// into the generic failure string.
func UserMessage(code ErrorCode) string {
	switch code {
	case ErrCodeEmptyIdea:
		return "Please provide a valid startup idea."
	case ErrCodeInvalidRequest:
		return "Request body failed validation"
	case ErrCodeProviderUnavailable:
		return "No AI provider configured. Set an API key or enable mock mode."
	default:
		return "Failed to generate pitch deck"
	}
}
