package state

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gatherhq/gather/internal/api"
)

// DateLayout is the wire format for event dates.
const DateLayout = "2006-01-02"

// TimeLayout is the wire format for event times (24-hour).
const TimeLayout = "15:04"

const maxTitleLength = 255

// FieldError is one validation failure for a named field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError aggregates the per-field messages for a rejected event
// submission. When returned, no request was sent.
type ValidationError struct {
	Fields []FieldError
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		msgs[i] = f.Message
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// Messages returns just the field messages.
func (e *ValidationError) Messages() []string {
	msgs := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		msgs[i] = f.Message
	}
	return msgs
}

func (e *ValidationError) add(field, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
}

// ValidateEventInput checks the writable event fields before submission.
// Returns nil when the input is valid, otherwise a *ValidationError with
// one message per failed field.
func ValidateEventInput(input api.EventInput) error {
	verr := &ValidationError{}

	title := strings.TrimSpace(input.Title)
	switch {
	case title == "":
		verr.add("title", "Title is required")
	case utf8.RuneCountInString(title) > maxTitleLength:
		verr.add("title", "Title must be 255 characters or fewer")
	}

	if strings.TrimSpace(input.Description) == "" {
		verr.add("description", "Description is required")
	}
	if strings.TrimSpace(input.Department) == "" {
		verr.add("department", "Department is required")
	}
	if strings.TrimSpace(input.Location) == "" {
		verr.add("location", "Location is required")
	}

	if strings.TrimSpace(input.Date) == "" {
		verr.add("date", "Date is required")
	} else if _, err := time.Parse(DateLayout, input.Date); err != nil {
		verr.add("date", "Date must be a valid calendar date in YYYY-MM-DD format")
	}

	if strings.TrimSpace(input.Time) == "" {
		verr.add("time", "Time is required")
	} else if _, err := time.Parse(TimeLayout, input.Time); err != nil {
		verr.add("time", "Time must be a valid 24-hour time in HH:MM format")
	}

	if len(verr.Fields) > 0 {
		return verr
	}
	return nil
}
