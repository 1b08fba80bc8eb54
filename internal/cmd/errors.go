package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gatherhq/gather/internal/api"
	gathererrors "github.com/gatherhq/gather/internal/errors"
)

// ErrorWithSuggestion wraps an error with actionable recovery suggestions
type ErrorWithSuggestion struct {
	Message     string
	Suggestions []string
	err         error
}

func (e *ErrorWithSuggestion) Error() string {
	var b strings.Builder
	b.WriteString(e.Message)

	if len(e.Suggestions) > 0 {
		b.WriteString("\n\nSuggestions:")
		for _, s := range e.Suggestions {
			b.WriteString("\n  • ")
			b.WriteString(s)
		}
	}

	if e.err != nil {
		b.WriteString("\n\nDetails: ")
		b.WriteString(e.err.Error())
	}

	return b.String()
}

func (e *ErrorWithSuggestion) Unwrap() error {
	return e.err
}

// NewErrorWithSuggestions creates an error with recovery suggestions
func NewErrorWithSuggestions(msg string, err error, suggestions ...string) error {
	return &ErrorWithSuggestion{
		Message:     msg,
		Suggestions: suggestions,
		err:         err,
	}
}

// presentError lifts the suggestions a GatherError already carries into the
// terminal-facing form, so `gather` prints one consistent error shape.
func presentError(err error) error {
	if err == nil {
		return nil
	}

	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		err = describeAPIError(apiErr)
	}

	var ge *gathererrors.GatherError
	if errors.As(err, &ge) {
		return &ErrorWithSuggestion{
			Message:     ge.Message,
			Suggestions: ge.Suggestions,
			err:         ge.Cause,
		}
	}
	return err
}

// describeAPIError codes the failures the user can act on. Other statuses
// already carry the server's own message.
func describeAPIError(apiErr *api.Error) error {
	switch {
	case apiErr.Status == 0:
		return gathererrors.Wrap(gathererrors.ErrCodeAPIUnreachable, "Cannot reach the events backend", apiErr).
			WithSuggestion("Check that the backend is running and reachable").
			WithSuggestion("Point at a different backend with --api-url or GATHER_API_URL")
	case apiErr.IsUnauthorized():
		return gathererrors.Wrap(gathererrors.ErrCodeAPIUnauthorized, "Your session is no longer valid", apiErr).
			WithSuggestion("Run 'gather login' to authenticate")
	default:
		return apiErr
	}
}

// EventNotFoundError creates a helpful error when an event lookup misses
func EventNotFoundError(eventID string) error {
	return NewErrorWithSuggestions(
		fmt.Sprintf("Event %q not found", eventID),
		nil,
		"List events to find the right id: gather events list",
		"The event may have been deleted by its organizer",
	)
}

// ConfigLoadError creates a helpful error for configuration failures
func ConfigLoadError(path string, err error) error {
	return NewErrorWithSuggestions(
		fmt.Sprintf("Failed to load configuration from %q", path),
		err,
		"Check the file is valid YAML: cat "+path,
		"Remove the file to fall back to defaults",
		"Override the backend with --api-url or GATHER_API_URL",
	)
}
