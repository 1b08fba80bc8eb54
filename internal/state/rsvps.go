package state

import (
	"context"

	"github.com/gatherhq/gather/internal/api"
	"github.com/gatherhq/gather/internal/log"
)

// RSVPManager owns the current user's RSVP membership and the per-event
// attendee roster. Duplicate prevention stays with the backend; the UI
// derives "already RSVPed" from the cached membership via HasRSVP and
// disables the action instead of resubmitting.
type RSVPManager struct {
	store  *Store
	client *api.Client
	logger *log.Logger
}

// NewRSVPManager creates the RSVP resource manager.
func NewRSVPManager(store *Store, client *api.Client, logger *log.Logger) *RSVPManager {
	return &RSVPManager{
		store:  store,
		client: client,
		logger: logger,
	}
}

// ListMine replaces the cached membership with the server response.
func (m *RSVPManager) ListMine(ctx context.Context) error {
	if m.store.Token() == "" {
		return ErrUnauthenticated()
	}

	rsvps, err := m.client.ListMyRSVPs(ctx)
	if err != nil {
		return err
	}

	m.store.apply(func(_ *AuthState, _ *EventState, rs *RSVPState) {
		rs.Mine = rsvps
	})
	return nil
}

// ListForEvent replaces the cached roster for one event.
func (m *RSVPManager) ListForEvent(ctx context.Context, eventID string) error {
	if m.store.Token() == "" {
		return ErrUnauthenticated()
	}

	rsvps, err := m.client.ListEventRSVPs(ctx, eventID)
	if err != nil {
		return err
	}

	m.store.apply(func(_ *AuthState, _ *EventState, rs *RSVPState) {
		rs.Roster = rsvps
		rs.RosterEventID = eventID
	})
	return nil
}

// Add registers the user for an event and appends the confirmed record to
// the cached membership.
func (m *RSVPManager) Add(ctx context.Context, eventID string) (*api.RSVP, error) {
	if m.store.Token() == "" {
		return nil, ErrUnauthenticated()
	}

	rsvp, err := m.client.CreateRSVP(ctx, eventID)
	if err != nil {
		return nil, err
	}

	m.store.apply(func(_ *AuthState, _ *EventState, rs *RSVPState) {
		rs.Mine = append(rs.Mine, *rsvp)
		if rs.RosterEventID == eventID {
			rs.Roster = append(rs.Roster, *rsvp)
		}
	})
	m.logger.Info("rsvp created", "event_id", eventID, "rsvp_id", rsvp.ID)
	return rsvp, nil
}

// Cancel withdraws the user's RSVP and removes it from the cached
// membership and roster.
func (m *RSVPManager) Cancel(ctx context.Context, eventID string) (*api.RSVP, error) {
	if m.store.Token() == "" {
		return nil, ErrUnauthenticated()
	}

	rsvp, err := m.client.CancelRSVP(ctx, eventID)
	if err != nil {
		return nil, err
	}

	m.store.apply(func(_ *AuthState, _ *EventState, rs *RSVPState) {
		kept := rs.Mine[:0]
		for _, r := range rs.Mine {
			if r.EventID != eventID {
				kept = append(kept, r)
			}
		}
		rs.Mine = kept

		if rs.RosterEventID == eventID {
			roster := rs.Roster[:0]
			for _, r := range rs.Roster {
				if r.ID != rsvp.ID {
					roster = append(roster, r)
				}
			}
			rs.Roster = roster
		}
	})
	m.logger.Info("rsvp cancelled", "event_id", eventID)
	return rsvp, nil
}

// HasRSVP reports whether the cached membership contains an RSVP for the
// given event.
func (m *RSVPManager) HasRSVP(eventID string) bool {
	for _, r := range m.store.MyRSVPs() {
		if r.EventID == eventID {
			return true
		}
	}
	return false
}
