package state

import (
	"context"

	"github.com/gatherhq/gather/internal/api"
	"github.com/gatherhq/gather/internal/log"
)

// EventManager owns the cached event collection and the single detail
// projection. Every operation requires a session token and short-circuits
// without a network call when none is stored.
type EventManager struct {
	store  *Store
	client *api.Client
	logger *log.Logger
}

// NewEventManager creates the event resource manager.
func NewEventManager(store *Store, client *api.Client, logger *log.Logger) *EventManager {
	return &EventManager{
		store:  store,
		client: client,
		logger: logger,
	}
}

// List replaces the entire cached collection with the server response.
// Stale entries not in the response are dropped.
func (m *EventManager) List(ctx context.Context) error {
	if m.store.Token() == "" {
		return ErrUnauthenticated()
	}

	events, err := m.client.ListEvents(ctx)
	if err != nil {
		return err
	}

	m.store.apply(func(_ *AuthState, ev *EventState, _ *RSVPState) {
		ev.Events = events
	})
	m.logger.Debug("event list refreshed", "count", len(events))
	return nil
}

// Get populates the detail projection. It does not merge into the list.
func (m *EventManager) Get(ctx context.Context, id string) error {
	if m.store.Token() == "" {
		return ErrUnauthenticated()
	}

	event, err := m.client.GetEvent(ctx, id)
	if err != nil {
		return err
	}

	m.store.apply(func(_ *AuthState, ev *EventState, _ *RSVPState) {
		ev.Detail = event
	})
	return nil
}

// Create validates the input, submits it, and appends the server-confirmed
// record to the cached collection.
func (m *EventManager) Create(ctx context.Context, input api.EventInput) (*api.Event, error) {
	if err := ValidateEventInput(input); err != nil {
		return nil, err
	}
	if m.store.Token() == "" {
		return nil, ErrUnauthenticated()
	}

	event, err := m.client.CreateEvent(ctx, input)
	if err != nil {
		return nil, err
	}

	m.store.apply(func(_ *AuthState, ev *EventState, _ *RSVPState) {
		ev.Events = append(ev.Events, *event)
	})
	m.logger.Info("event created", "event_id", event.ID, "title", event.Title)
	return event, nil
}

// Update validates the input, submits it, and replaces the matching record
// in place. Collection order is preserved, and a matching detail projection
// is replaced as well.
func (m *EventManager) Update(ctx context.Context, id string, input api.EventInput) (*api.Event, error) {
	if err := ValidateEventInput(input); err != nil {
		return nil, err
	}
	if m.store.Token() == "" {
		return nil, ErrUnauthenticated()
	}

	event, err := m.client.UpdateEvent(ctx, id, input)
	if err != nil {
		return nil, err
	}

	m.store.apply(func(_ *AuthState, ev *EventState, _ *RSVPState) {
		for i := range ev.Events {
			if ev.Events[i].ID == event.ID {
				ev.Events[i] = *event
			}
		}
		if ev.Detail != nil && ev.Detail.ID == event.ID {
			detail := *event
			ev.Detail = &detail
		}
	})
	m.logger.Info("event updated", "event_id", event.ID)
	return event, nil
}

// Delete removes the matching record from the cached collection, clearing
// the detail projection when it holds the deleted event.
func (m *EventManager) Delete(ctx context.Context, id string) error {
	if m.store.Token() == "" {
		return ErrUnauthenticated()
	}

	deletedID, err := m.client.DeleteEvent(ctx, id)
	if err != nil {
		return err
	}

	m.store.apply(func(_ *AuthState, ev *EventState, _ *RSVPState) {
		kept := ev.Events[:0]
		for _, e := range ev.Events {
			if e.ID != deletedID {
				kept = append(kept, e)
			}
		}
		ev.Events = kept

		if ev.Detail != nil && ev.Detail.ID == deletedID {
			ev.Detail = nil
		}
	})
	m.logger.Info("event deleted", "event_id", deletedID)
	return nil
}
