package state

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gatherhq/gather/internal/api"
	"github.com/gatherhq/gather/internal/errors"
)

// preload puts a collection into the store the way a completed list fetch
// would, so mutation tests can start from a known state.
func preload(m *managers, events ...api.Event) {
	m.store.apply(func(_ *AuthState, ev *EventState, _ *RSVPState) {
		ev.Events = events
	})
}

func authed(m *managers) {
	m.store.apply(func(auth *AuthState, _ *EventState, _ *RSVPState) {
		auth.Token = "T1"
	})
	m.client.SetToken("T1")
}

func validInput() api.EventInput {
	return api.EventInput{
		Title:       "Robotics Demo Night",
		Description: "Live demos from the robotics lab",
		Department:  "Engineering",
		Date:        "2026-09-12",
		Time:        "18:30",
		Location:    "Hall B",
	}
}

func TestOperationsWithoutTokenShortCircuit(t *testing.T) {
	m, counting := newTestManagers(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request should be sent")
	}))
	ctx := context.Background()

	ops := map[string]func() error{
		"list":   func() error { return m.events.List(ctx) },
		"get":    func() error { return m.events.Get(ctx, "e1") },
		"delete": func() error { return m.events.Delete(ctx, "e1") },
		"create": func() error { _, err := m.events.Create(ctx, validInput()); return err },
		"update": func() error { _, err := m.events.Update(ctx, "e1", validInput()); return err },
	}

	for name, op := range ops {
		t.Run(name, func(t *testing.T) {
			err := op()
			require.Error(t, err)
			assert.True(t, errors.IsCode(err, errors.ErrCodeAuthRequired), "got %v", err)
		})
	}

	assert.Equal(t, int64(0), counting.Calls())
}

func TestListReplacesCollection(t *testing.T) {
	m, _ := newTestManagers(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, map[string]any{"events": []api.Event{
			{ID: "e2", Title: "Fresh"},
			{ID: "e3", Title: "Also fresh"},
		}})
	}))
	authed(m)
	preload(m, api.Event{ID: "e1", Title: "Stale"})

	require.NoError(t, m.events.List(context.Background()))

	events := m.store.Events()
	require.Len(t, events, 2)
	assert.Equal(t, "e2", events[0].ID)
	assert.Equal(t, "e3", events[1].ID)
}

func TestGetPopulatesDetailOnly(t *testing.T) {
	m, _ := newTestManagers(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, map[string]any{"event": api.Event{ID: "e1", Title: "Detail", RSVPCount: 7}})
	}))
	authed(m)

	require.NoError(t, m.events.Get(context.Background(), "e1"))

	detail := m.store.EventDetail()
	require.NotNil(t, detail)
	assert.Equal(t, "e1", detail.ID)
	assert.Equal(t, 7, detail.RSVPCount)

	// The list projection is untouched.
	assert.Empty(t, m.store.Events())
}

func TestCreateAppendsConfirmedRecord(t *testing.T) {
	m, _ := newTestManagers(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, map[string]any{"event": api.Event{ID: "e9", Title: "Robotics Demo Night"}})
	}))
	authed(m)
	preload(m, api.Event{ID: "e1"})

	created, err := m.events.Create(context.Background(), validInput())
	require.NoError(t, err)
	assert.Equal(t, "e9", created.ID)

	events := m.store.Events()
	require.Len(t, events, 2)
	assert.Equal(t, "e9", events[1].ID, "confirmed record appends after the existing collection")
}

func TestCreateValidationFailuresSendNothing(t *testing.T) {
	m, counting := newTestManagers(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request should be sent")
	}))
	authed(m)
	ctx := context.Background()

	t.Run("empty title", func(t *testing.T) {
		input := validInput()
		input.Title = ""

		_, err := m.events.Create(ctx, input)
		require.Error(t, err)

		verr, ok := err.(*ValidationError)
		require.True(t, ok, "expected *ValidationError, got %T", err)
		assert.Contains(t, verr.Messages(), "Title is required")
	})

	t.Run("title over 255 characters", func(t *testing.T) {
		input := validInput()
		input.Title = strings.Repeat("x", 256)

		_, err := m.events.Create(ctx, input)
		require.Error(t, err)

		verr, ok := err.(*ValidationError)
		require.True(t, ok)
		assert.Contains(t, verr.Messages(), "Title must be 255 characters or fewer")
	})

	assert.Equal(t, int64(0), counting.Calls())
}

func TestCreateTitleAtLimitPassesValidation(t *testing.T) {
	m, counting := newTestManagers(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, map[string]any{"event": api.Event{ID: "e9"}})
	}))
	authed(m)

	input := validInput()
	input.Title = strings.Repeat("x", 255)

	_, err := m.events.Create(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, int64(1), counting.Calls())
}

func TestUpdateReplacesInPlace(t *testing.T) {
	updated := api.Event{ID: "e2", Title: "Renamed", Location: "Hall C"}
	m, _ := newTestManagers(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		writeEnvelope(w, map[string]any{"event": updated})
	}))
	authed(m)
	preload(m,
		api.Event{ID: "e1", Title: "First"},
		api.Event{ID: "e2", Title: "Old"},
		api.Event{ID: "e3", Title: "Third"},
	)

	got, err := m.events.Update(context.Background(), "e2", validInput())
	require.NoError(t, err)
	assert.Equal(t, updated, *got)

	events := m.store.Events()
	require.Len(t, events, 3)

	// Exactly one element with that id, equal to the server object,
	// order preserved.
	var matches int
	for _, e := range events {
		if e.ID == "e2" {
			matches++
			assert.Equal(t, updated, e)
		}
	}
	assert.Equal(t, 1, matches)
	assert.Equal(t, "e1", events[0].ID)
	assert.Equal(t, "e2", events[1].ID)
	assert.Equal(t, "e3", events[2].ID)
}

func TestUpdateReconcilesDetailProjection(t *testing.T) {
	updated := api.Event{ID: "e1", Title: "Renamed"}
	m, _ := newTestManagers(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, map[string]any{"event": updated})
	}))
	authed(m)
	m.store.apply(func(_ *AuthState, ev *EventState, _ *RSVPState) {
		detail := api.Event{ID: "e1", Title: "Old"}
		ev.Detail = &detail
	})

	_, err := m.events.Update(context.Background(), "e1", validInput())
	require.NoError(t, err)

	detail := m.store.EventDetail()
	require.NotNil(t, detail)
	assert.Equal(t, "Renamed", detail.Title)
}

func TestDeleteRemovesFromCollection(t *testing.T) {
	m, _ := newTestManagers(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		writeEnvelope(w, map[string]any{"event": api.Event{ID: "e1"}})
	}))
	authed(m)
	preload(m, api.Event{ID: "e1"}, api.Event{ID: "e2"})

	require.NoError(t, m.events.Delete(context.Background(), "e1"))

	events := m.store.Events()
	require.Len(t, events, 1)
	assert.Equal(t, "e2", events[0].ID)
}

func TestDeleteClearsMatchingDetail(t *testing.T) {
	m, _ := newTestManagers(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, map[string]any{"eventId": "e1"})
	}))
	authed(m)
	m.store.apply(func(_ *AuthState, ev *EventState, _ *RSVPState) {
		detail := api.Event{ID: "e1"}
		ev.Detail = &detail
	})

	require.NoError(t, m.events.Delete(context.Background(), "e1"))
	assert.Nil(t, m.store.EventDetail())
}
