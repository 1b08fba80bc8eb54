// Package app wires the configuration, API client, credential store, and
// resource managers into one application object the commands and the TUI
// share.
package app

import (
	"context"
	"time"

	"github.com/gatherhq/gather/internal/api"
	"github.com/gatherhq/gather/internal/config"
	"github.com/gatherhq/gather/internal/log"
	"github.com/gatherhq/gather/internal/security"
	"github.com/gatherhq/gather/internal/state"
)

// App is the composed application: one store, one API client, and the
// three resource managers over it.
type App struct {
	Config *config.Config
	Logger *log.Logger
	Client *api.Client
	Creds  *security.CredentialStore
	Store  *state.Store

	Auth   *state.AuthManager
	Events *state.EventManager
	RSVPs  *state.RSVPManager
}

// New builds the application from configuration.
func New(cfg *config.Config) (*App, error) {
	logger := log.New(log.Config{
		Level:  log.ParseLevel(cfg.LogLevel),
		Format: log.ParseFormat(cfg.LogFormat),
		Output: log.OutputStderr(),
	})
	log.SetDefaultLogger(logger)

	creds, err := security.NewCredentialStore(cfg.CredentialsPath, cfg.Passphrase)
	if err != nil {
		return nil, err
	}

	client := api.NewClient(cfg.APIBaseURL,
		api.WithTimeout(time.Duration(cfg.TimeoutSeconds)*time.Second),
		api.WithLogger(logger),
	)

	store := state.NewStore()

	a := &App{
		Config: cfg,
		Logger: logger,
		Client: client,
		Creds:  creds,
		Store:  store,
		Auth:   state.NewAuthManager(store, client, creds, logger),
		Events: state.NewEventManager(store, client, logger),
		RSVPs:  state.NewRSVPManager(store, client, logger),
	}

	// A 401 from any authenticated call forces a logout, centrally.
	client.SetUnauthorizedHook(a.Auth.ClearSession)

	return a, nil
}

// Restore performs the awaited session-restoration step at application
// start, before the first screen renders. It reads disk only.
func (a *App) Restore() {
	a.Auth.Restore()
}

// RequireAuth is the route guard: commands on authenticated screens call
// it before doing anything else.
func (a *App) RequireAuth() error {
	if !a.Store.Auth().IsAuthenticated() {
		return state.ErrUnauthenticated()
	}
	return nil
}

// RefreshAfterRSVP re-fetches the dependent projections after an RSVP
// mutation: event detail, then the user's RSVPs, then the event list and
// profile. A later step failing never rolls back the mutation; the chain
// continues and the first failure is reported.
func (a *App) RefreshAfterRSVP(ctx context.Context, eventID string) error {
	var firstErr error

	steps := []struct {
		name string
		run  func() error
	}{
		{"event detail", func() error { return a.Events.Get(ctx, eventID) }},
		{"my rsvps", func() error { return a.RSVPs.ListMine(ctx) }},
		{"event list", func() error { return a.Events.List(ctx) }},
		{"profile", func() error { return a.Auth.FetchProfile(ctx) }},
	}

	for _, step := range steps {
		if err := step.run(); err != nil {
			a.Logger.Warn("post-rsvp refresh step failed", "step", step.name, "error", err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}

	return firstErr
}
