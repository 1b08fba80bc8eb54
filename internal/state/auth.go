package state

import (
	"context"
	"strings"

	"github.com/gatherhq/gather/internal/api"
	"github.com/gatherhq/gather/internal/errors"
	"github.com/gatherhq/gather/internal/log"
	"github.com/gatherhq/gather/internal/security"
)

// ErrUnauthenticated returns the uniform condition for operations invoked
// without a stored token. No network call was made.
func ErrUnauthenticated() *errors.GatherError {
	return errors.New(errors.ErrCodeAuthRequired, "Unauthorized, please login again").
		WithSuggestion("Run 'gather login' to authenticate")
}

// AuthManager owns the session lifecycle: register, login, logout, and
// profile fetch. Successful mutations are committed to the store and
// mirrored into the persistent credential store.
type AuthManager struct {
	store  *Store
	client *api.Client
	creds  *security.CredentialStore
	logger *log.Logger
}

// NewAuthManager creates the auth resource manager.
func NewAuthManager(store *Store, client *api.Client, creds *security.CredentialStore, logger *log.Logger) *AuthManager {
	return &AuthManager{
		store:  store,
		client: client,
		creds:  creds,
		logger: logger,
	}
}

// Register creates an account and commits the returned session.
// The confirmation password is checked client-side; no request is sent
// when it does not match.
func (m *AuthManager) Register(ctx context.Context, name, email, password, confirmPassword string) error {
	if strings.TrimSpace(name) == "" {
		return errors.New(errors.ErrCodeAuthRegisterFailed, "Name is required")
	}
	if strings.TrimSpace(email) == "" {
		return errors.New(errors.ErrCodeAuthRegisterFailed, "Email is required")
	}
	if password == "" {
		return errors.New(errors.ErrCodeAuthRegisterFailed, "Password is required")
	}
	if password != confirmPassword {
		return errors.New(errors.ErrCodeAuthPasswordMatch, "Passwords do not match")
	}

	session, err := m.client.Register(ctx, name, email, password)
	if err != nil {
		return err
	}

	m.commitSession(session)
	m.logger.Info("registered", "user_id", session.User.ID, "email", session.User.Email)
	return nil
}

// Login authenticates and commits the returned session.
func (m *AuthManager) Login(ctx context.Context, email, password string) error {
	session, err := m.client.Login(ctx, email, password)
	if err != nil {
		return err
	}

	m.commitSession(session)
	m.logger.Info("logged in", "user_id", session.User.ID)
	return nil
}

// Logout invalidates the session server-side, then clears in-memory state
// and persisted storage. When the server has already rejected the token
// the local session is cleared anyway; other failures leave it intact so
// the user can retry.
func (m *AuthManager) Logout(ctx context.Context) error {
	if m.store.Token() == "" {
		return ErrUnauthenticated()
	}

	err := m.client.Logout(ctx)
	if err != nil {
		if apiErr, ok := err.(*api.Error); ok && apiErr.IsUnauthorized() {
			// Token already dead server-side; the 401 hook has cleared
			// the session. Treat the logout as done.
			m.ClearSession()
			return nil
		}
		return err
	}

	m.ClearSession()
	m.logger.Info("logged out")
	return nil
}

// FetchProfile replaces the cached profile detail without altering the
// session token.
func (m *AuthManager) FetchProfile(ctx context.Context) error {
	if m.store.Token() == "" {
		return ErrUnauthenticated()
	}

	user, err := m.client.Profile(ctx)
	if err != nil {
		return err
	}

	m.store.apply(func(auth *AuthState, _ *EventState, _ *RSVPState) {
		auth.User = user
	})

	if err := m.creds.StoreJSON(security.KeyProfile, user); err != nil {
		m.logger.Warn("failed to persist profile", "error", err)
	}
	return nil
}

// ClearSession wipes the in-memory session and the persisted token, user,
// and profile. It is also the 401 hook target.
func (m *AuthManager) ClearSession() {
	m.store.apply(func(auth *AuthState, _ *EventState, _ *RSVPState) {
		auth.User = nil
		auth.Token = ""
	})
	m.client.ClearToken()

	if err := m.creds.Clear(); err != nil {
		m.logger.Warn("failed to clear persisted session", "error", err)
	}
}

// Restore loads the persisted session into the store. It performs no
// network call; an absent or unreadable persisted session leaves the
// store logged out.
func (m *AuthManager) Restore() {
	m.store.apply(func(auth *AuthState, _ *EventState, _ *RSVPState) {
		auth.Restoring = true
	})

	defer m.store.apply(func(auth *AuthState, _ *EventState, _ *RSVPState) {
		auth.Restoring = false
	})

	token, err := m.creds.Get(security.KeyAuthToken)
	if err != nil || token == "" {
		return
	}

	var user api.User
	if err := m.creds.GetJSON(security.KeyUser, &user); err != nil {
		m.logger.Warn("persisted session unreadable, starting logged out", "error", err)
		return
	}

	m.client.SetToken(token)
	m.store.apply(func(auth *AuthState, _ *EventState, _ *RSVPState) {
		auth.Token = token
		auth.User = &user
	})
	m.logger.Debug("session restored", "user_id", user.ID)
}

// commitSession stores the session in memory, on the client, and on disk.
func (m *AuthManager) commitSession(session *api.Session) {
	user := session.User
	m.store.apply(func(auth *AuthState, _ *EventState, _ *RSVPState) {
		auth.User = &user
		auth.Token = session.Token
	})
	m.client.SetToken(session.Token)

	if err := m.creds.Store(security.KeyAuthToken, session.Token); err != nil {
		m.logger.Warn("failed to persist token", "error", err)
	}
	if err := m.creds.StoreJSON(security.KeyUser, session.User); err != nil {
		m.logger.Warn("failed to persist user", "error", err)
	}
}
