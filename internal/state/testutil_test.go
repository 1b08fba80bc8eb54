package state

import (
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gatherhq/gather/internal/api"
	"github.com/gatherhq/gather/internal/log"
	"github.com/gatherhq/gather/internal/security"
)

// newTestServer starts an HTTP server bound to IPv4-only loopback so tests work
// inside restricted sandboxes that forbid IPv6 listeners.
func newTestServer(t *testing.T, handler http.Handler) *httptest.Server {
	t.Helper()

	listener, err := net.Listen("tcp4", "127.0.0.1:0")
	if err != nil {
		t.Skipf("unable to start test server: %v", err)
	}

	server := &httptest.Server{
		Listener: listener,
		Config:   &http.Server{Handler: handler},
	}
	server.Start()
	t.Cleanup(server.Close)
	return server
}

// countingHandler wraps a handler and counts the requests that reach it.
// The unauthenticated short-circuit tests assert the count stays zero.
type countingHandler struct {
	calls   atomic.Int64
	handler http.Handler
}

func (h *countingHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.calls.Add(1)
	h.handler.ServeHTTP(w, r)
}

func (h *countingHandler) Calls() int64 {
	return h.calls.Load()
}

func writeEnvelope(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"data": map[string]any{"data": payload},
	})
}

// managers bundles everything a state test needs.
type managers struct {
	store  *Store
	client *api.Client
	creds  *security.CredentialStore
	auth   *AuthManager
	events *EventManager
	rsvps  *RSVPManager
}

// newTestManagers wires a full manager set against a counting test server.
func newTestManagers(t *testing.T, handler http.Handler) (*managers, *countingHandler) {
	t.Helper()

	counting := &countingHandler{handler: handler}
	server := newTestServer(t, counting)

	creds, err := security.NewCredentialStore(filepath.Join(t.TempDir(), "credentials.json"), "test-passphrase")
	require.NoError(t, err)

	store := NewStore()
	client := api.NewClient(server.URL)
	logger := log.New(log.Config{Level: log.LevelError, Format: log.FormatText, Output: log.NewOutput(testWriter{t})})

	return &managers{
		store:  store,
		client: client,
		creds:  creds,
		auth:   NewAuthManager(store, client, creds, logger),
		events: NewEventManager(store, client, logger),
		rsvps:  NewRSVPManager(store, client, logger),
	}, counting
}

// testWriter routes log output through the test log.
type testWriter struct {
	t *testing.T
}

func (w testWriter) Write(p []byte) (int, error) {
	w.t.Log(string(p))
	return len(p), nil
}

// loginHandler answers /api/login with the given token and user, and lets
// next serve everything else.
func loginHandler(token string, user api.User, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/login" {
			writeEnvelope(w, map[string]any{"token": token, "user": user})
			return
		}
		if next != nil {
			next.ServeHTTP(w, r)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	})
}
