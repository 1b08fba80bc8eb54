// Package state holds the process-wide client state: the authenticated
// session, the cached event collection, and the user's RSVP membership.
// Screens read snapshots and dispatch operations on the resource managers;
// only reducer functions run under the store lock mutate state, and each
// completed request commits atomically.
package state

import (
	"sync"

	"github.com/gatherhq/gather/internal/api"
)

// AuthState is the session slice of the store.
type AuthState struct {
	// User is the cached user object; profile fetches replace it.
	User *api.User

	// Token is the bearer token for authenticated calls.
	Token string

	// Restoring is true while the persisted session is being read at
	// startup, before the first screen renders.
	Restoring bool
}

// IsAuthenticated is derived from token presence.
func (s AuthState) IsAuthenticated() bool {
	return s.Token != ""
}

// EventState is the events slice of the store. The list and the single
// detail item are separate projections kept consistent by the reducers.
type EventState struct {
	Events []api.Event
	Detail *api.Event
}

// RSVPState is the RSVP slice of the store.
type RSVPState struct {
	// Mine holds the current user's RSVPs.
	Mine []api.RSVP

	// Roster holds the attendee list for RosterEventID.
	Roster        []api.RSVP
	RosterEventID string
}

// Store is the single composed state object. All three entity caches are
// ephemeral: created empty at process start, populated by successful
// fetches, and cleared on logout (session) or kept for the process
// lifetime (events, RSVPs).
type Store struct {
	mu     sync.RWMutex
	auth   AuthState
	events EventState
	rsvps  RSVPState

	subMu sync.Mutex
	subs  []func()
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{}
}

// Subscribe registers a callback invoked after every committed mutation.
// Callbacks run outside the store lock and must not block.
func (s *Store) Subscribe(fn func()) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	s.subs = append(s.subs, fn)
}

func (s *Store) notify() {
	s.subMu.Lock()
	subs := make([]func(), len(s.subs))
	copy(subs, s.subs)
	s.subMu.Unlock()

	for _, fn := range subs {
		fn()
	}
}

// apply runs one reducer under the write lock and notifies subscribers.
func (s *Store) apply(reduce func(auth *AuthState, events *EventState, rsvps *RSVPState)) {
	s.mu.Lock()
	reduce(&s.auth, &s.events, &s.rsvps)
	s.mu.Unlock()

	s.notify()
}

// Auth returns a snapshot of the session state.
func (s *Store) Auth() AuthState {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot := s.auth
	if s.auth.User != nil {
		user := *s.auth.User
		snapshot.User = &user
	}
	return snapshot
}

// Token returns the current session token, empty when logged out.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.auth.Token
}

// Events returns a snapshot of the cached event collection.
func (s *Store) Events() []api.Event {
	s.mu.RLock()
	defer s.mu.RUnlock()

	events := make([]api.Event, len(s.events.Events))
	copy(events, s.events.Events)
	return events
}

// EventDetail returns a snapshot of the detail projection, or nil.
func (s *Store) EventDetail() *api.Event {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.events.Detail == nil {
		return nil
	}
	detail := *s.events.Detail
	return &detail
}

// MyRSVPs returns a snapshot of the current user's RSVPs.
func (s *Store) MyRSVPs() []api.RSVP {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rsvps := make([]api.RSVP, len(s.rsvps.Mine))
	copy(rsvps, s.rsvps.Mine)
	return rsvps
}

// Roster returns the cached attendee roster and the event it belongs to.
func (s *Store) Roster() (string, []api.RSVP) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	roster := make([]api.RSVP, len(s.rsvps.Roster))
	copy(roster, s.rsvps.Roster)
	return s.rsvps.RosterEventID, roster
}
