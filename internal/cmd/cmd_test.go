package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gatherhq/gather/internal/api"
	gathererrors "github.com/gatherhq/gather/internal/errors"
)

func TestFormatEventTable(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		assert.Equal(t, "No events found.\n", formatEventTable(nil))
	})

	t.Run("lists every event", func(t *testing.T) {
		out := formatEventTable([]api.Event{
			{ID: "e1", Title: "Career Fair", Date: "2026-09-12", Time: "14:00", Location: "Main Hall", RSVPCount: 12},
			{ID: "e2", Title: "Robotics Demo", Date: "2026-09-13", Time: "10:00", Location: "Lab 3"},
		})
		assert.Contains(t, out, "Career Fair")
		assert.Contains(t, out, "Robotics Demo")
		assert.Contains(t, out, "2026-09-12")
		assert.Contains(t, out, "TITLE")
	})

	t.Run("truncates long titles", func(t *testing.T) {
		long := "An Extremely Long Event Title That Does Not Fit The Column"
		out := formatEventTable([]api.Event{{ID: "e1", Title: long}})
		assert.NotContains(t, out, long)
		assert.Contains(t, out, "…")
	})
}

func TestFormatEventDetail(t *testing.T) {
	event := api.Event{
		ID: "e1", Title: "Career Fair", Description: "Meet employers.",
		Department: "Engineering", Date: "2026-09-12", Time: "14:00",
		Location: "Main Hall", RSVPCount: 2,
	}

	out := formatEventDetail(event, []api.RSVP{{ID: "r1", EventID: "e1", UserID: "u7"}})
	assert.Contains(t, out, "Career Fair")
	assert.Contains(t, out, "2026-09-12 at 14:00")
	assert.Contains(t, out, "Meet employers.")
	assert.Contains(t, out, "Attendees:")
	assert.Contains(t, out, "u7")

	// No roster section when nobody has RSVPed.
	out = formatEventDetail(event, nil)
	assert.NotContains(t, out, "Attendees:")
}

func TestFormatRSVPList(t *testing.T) {
	events := []api.Event{{ID: "e1", Title: "Career Fair", Date: "2026-09-12", Time: "14:00"}}

	t.Run("empty", func(t *testing.T) {
		out := formatRSVPList(nil, events)
		assert.Contains(t, out, "no RSVPs")
	})

	t.Run("resolves titles", func(t *testing.T) {
		out := formatRSVPList([]api.RSVP{{ID: "r1", EventID: "e1", UserID: "u1"}}, events)
		assert.Contains(t, out, "Career Fair")
	})

	t.Run("dangling rsvp", func(t *testing.T) {
		out := formatRSVPList([]api.RSVP{{ID: "r1", EventID: "gone", UserID: "u1"}}, events)
		assert.Contains(t, out, "(event no longer listed)")
	})
}

func TestFormatProfile(t *testing.T) {
	out := formatProfile(&api.User{Name: "Ada", Email: "ada@campus.edu", Role: "student", RSVPCount: 3})
	assert.Contains(t, out, "Ada")
	assert.Contains(t, out, "RSVPs:  3")
	assert.NotContains(t, out, "organizer access")

	out = formatProfile(&api.User{Name: "Dean", Role: "admin"})
	assert.Contains(t, out, "organizer access")

	assert.Equal(t, "Not logged in.\n", formatProfile(nil))
}

func TestMergeEventInput(t *testing.T) {
	current := api.Event{
		Title: "Old Title", Description: "Old description", Department: "Arts",
		Date: "2026-09-12", Time: "14:00", Location: "Main Hall",
	}

	merged := mergeEventInput(current, api.EventInput{Title: "New Title", Time: "15:30"})

	assert.Equal(t, "New Title", merged.Title)
	assert.Equal(t, "15:30", merged.Time)
	assert.Equal(t, "Old description", merged.Description)
	assert.Equal(t, "Arts", merged.Department)
	assert.Equal(t, "2026-09-12", merged.Date)
	assert.Equal(t, "Main Hall", merged.Location)
}

func TestRequireOrganizer(t *testing.T) {
	assert.NoError(t, requireOrganizer(&api.User{Role: "admin"}))
	assert.NoError(t, requireOrganizer(nil))

	err := requireOrganizer(&api.User{Role: "student"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "organizer access")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 12))
	assert.Equal(t, "exactly12chr", truncate("exactly12chr", 12))
	assert.Equal(t, "longer than…", truncate("longer than twelve", 12))
}

func TestPresentError(t *testing.T) {
	t.Run("nil", func(t *testing.T) {
		assert.NoError(t, presentError(nil))
	})

	t.Run("gather error keeps suggestions", func(t *testing.T) {
		src := gathererrors.New(gathererrors.ErrCodeAuthRequired, "Unauthorized, please login again").
			WithSuggestion("Run 'gather login' to authenticate")

		err := presentError(src)
		var withSuggestion *ErrorWithSuggestion
		require.ErrorAs(t, err, &withSuggestion)
		assert.Equal(t, "Unauthorized, please login again", withSuggestion.Message)
		assert.Contains(t, err.Error(), "gather login")
	})

	t.Run("plain error passes through", func(t *testing.T) {
		src := assert.AnError
		assert.Equal(t, src, presentError(src))
	})

	t.Run("transport failure coded unreachable", func(t *testing.T) {
		err := presentError(&api.Error{Status: 0, Message: "network error: connection refused"})
		var withSuggestion *ErrorWithSuggestion
		require.ErrorAs(t, err, &withSuggestion)
		assert.Equal(t, "Cannot reach the events backend", withSuggestion.Message)
		assert.Contains(t, err.Error(), "--api-url")
		assert.Contains(t, err.Error(), "connection refused")
	})

	t.Run("401 coded unauthorized", func(t *testing.T) {
		err := presentError(&api.Error{Status: 401, Message: "Unauthenticated."})
		var withSuggestion *ErrorWithSuggestion
		require.ErrorAs(t, err, &withSuggestion)
		assert.Equal(t, "Your session is no longer valid", withSuggestion.Message)
		assert.Contains(t, err.Error(), "gather login")
	})

	t.Run("other statuses keep the server message", func(t *testing.T) {
		src := &api.Error{Status: 422, Message: "Title is required"}
		assert.Equal(t, error(src), presentError(src))
	})
}

func TestDescribeAPIErrorCodes(t *testing.T) {
	err := describeAPIError(&api.Error{Status: 0, Message: "network error"})
	assert.True(t, gathererrors.IsCode(err, gathererrors.ErrCodeAPIUnreachable))

	err = describeAPIError(&api.Error{Status: 401, Message: "Unauthenticated."})
	assert.True(t, gathererrors.IsCode(err, gathererrors.ErrCodeAPIUnauthorized))
}

func TestErrorWithSuggestionFormat(t *testing.T) {
	err := NewErrorWithSuggestions("Something failed", assert.AnError, "Try again")
	msg := err.Error()
	assert.Contains(t, msg, "Something failed")
	assert.Contains(t, msg, "Suggestions:")
	assert.Contains(t, msg, "Try again")
	assert.Contains(t, msg, "Details: ")
}
