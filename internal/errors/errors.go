package errors

import (
	"fmt"
	"strings"
)

// ErrorCode represents a unique error identifier
type ErrorCode string

// Error categories
const (
	// Auth errors (AUTH-001 to AUTH-099)
	ErrCodeAuthRequired       ErrorCode = "AUTH-001"
	ErrCodeAuthRegisterFailed ErrorCode = "AUTH-002"
	ErrCodeAuthPasswordMatch  ErrorCode = "AUTH-003"

	// Event errors (EVENT-001 to EVENT-099)
	ErrCodeEventNotFound ErrorCode = "EVENT-001"
	ErrCodeEventInvalid  ErrorCode = "EVENT-002"

	// API transport errors (API-001 to API-099)
	ErrCodeAPIUnreachable  ErrorCode = "API-001"
	ErrCodeAPIUnauthorized ErrorCode = "API-002"

	// Configuration errors (CONFIG-001 to CONFIG-099)
	ErrCodeConfigInvalid ErrorCode = "CONFIG-001"

	// File I/O errors (IO-001 to IO-099)
	ErrCodeFileReadFailed ErrorCode = "IO-001"
)

// GatherError represents an enhanced error with code, suggestions, and documentation
type GatherError struct {
	Code        ErrorCode
	Message     string
	Suggestions []string
	DocsURL     string
	Cause       error
}

// Error implements the error interface
func (e *GatherError) Error() string {
	var b strings.Builder

	// Error code and message
	b.WriteString(fmt.Sprintf("[%s] %s", e.Code, e.Message))

	// Add cause if present
	if e.Cause != nil {
		b.WriteString(fmt.Sprintf(": %v", e.Cause))
	}

	// Add suggestions
	if len(e.Suggestions) > 0 {
		b.WriteString("\n\nSuggestions:")
		for _, suggestion := range e.Suggestions {
			b.WriteString(fmt.Sprintf("\n  • %s", suggestion))
		}
	}

	// Add documentation link
	if e.DocsURL != "" {
		b.WriteString(fmt.Sprintf("\n\nDocumentation: %s", e.DocsURL))
	}

	return b.String()
}

// Unwrap implements error unwrapping for errors.Is and errors.As
func (e *GatherError) Unwrap() error {
	return e.Cause
}

// New creates a new GatherError
func New(code ErrorCode, message string) *GatherError {
	return &GatherError{
		Code:    code,
		Message: message,
	}
}

// Wrap creates a new GatherError wrapping an existing error
func Wrap(code ErrorCode, message string, cause error) *GatherError {
	return &GatherError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// WithSuggestion adds a suggestion to the error
func (e *GatherError) WithSuggestion(suggestion string) *GatherError {
	e.Suggestions = append(e.Suggestions, suggestion)
	return e
}

// WithSuggestions adds multiple suggestions to the error
func (e *GatherError) WithSuggestions(suggestions ...string) *GatherError {
	e.Suggestions = append(e.Suggestions, suggestions...)
	return e
}

// WithDocs adds a documentation URL to the error
func (e *GatherError) WithDocs(url string) *GatherError {
	e.DocsURL = url
	return e
}

// IsCode reports whether err is a GatherError carrying the given code
func IsCode(err error, code ErrorCode) bool {
	ge, ok := err.(*GatherError)
	return ok && ge.Code == code
}
