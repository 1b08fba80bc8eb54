package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/gatherhq/gather/internal/log"
)

// Client is the campus events API client. All resource calls go through
// doRequest, which attaches the bearer token and normalizes every failure
// into *Error before it reaches a resource manager.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *log.Logger

	mu    sync.RWMutex
	token string

	// onUnauthorized fires once per request that comes back 401.
	// The application wires it to clear the session.
	onUnauthorized func()
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(logger *log.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithUnauthorizedHook installs the callback invoked when the backend
// rejects the current token with a 401.
func WithUnauthorizedHook(fn func()) Option {
	return func(c *Client) {
		c.onUnauthorized = fn
	}
}

// SetUnauthorizedHook installs the 401 callback after construction.
// The application uses this once the auth manager exists.
func (c *Client) SetUnauthorizedHook(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onUnauthorized = fn
}

func (c *Client) unauthorizedHook() func() {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.onUnauthorized
}

// NewClient creates a new API client for the given base URL.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: log.DefaultLogger(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// SetToken sets the authentication token attached to subsequent requests.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

// Token returns the current authentication token, if any.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// ClearToken removes the authentication token.
func (c *Client) ClearToken() {
	c.SetToken("")
}

// Error is the normalized failure shape for every API call.
// Status is the HTTP status code, or 0 for transport-level failures.
type Error struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Status == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s (status %d)", e.Message, e.Status)
}

// IsUnauthorized reports whether the error is a 401-class rejection.
func (e *Error) IsUnauthorized() bool {
	return e.Status == http.StatusUnauthorized
}

// envelope is the backend's success wrapper. Responses arrive as
// {"data": {"data": {<key>: ...}}}; a few endpoints flatten the inner
// level, so decoding falls back to the outer data object.
type envelope struct {
	Data struct {
		Data json.RawMessage `json:"data"`
	} `json:"data"`
}

// errorBody covers the error shapes the backend has been seen to emit.
type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
	Data    struct {
		Message string `json:"message"`
	} `json:"data"`
}

// doRequest performs one HTTP call and returns the unwrapped success payload.
func (c *Client) doRequest(ctx context.Context, method, path string, body any) (json.RawMessage, error) {
	raw, err := c.call(ctx, method, path, body)
	if err != nil {
		return nil, err
	}
	return unwrap(raw)
}

// call performs one HTTP exchange and returns the raw 2xx body. Callers
// whose endpoints answer without a payload use it directly; everything
// else goes through doRequest for the envelope unwrap.
func (c *Client) call(ctx context.Context, method, path string, body any) ([]byte, error) {
	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, &Error{Message: fmt.Sprintf("failed to encode request: %v", err)}
		}
		reqBody = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, &Error{Message: fmt.Sprintf("failed to create request: %v", err)}
	}

	requestID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-Id", requestID)
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	c.logger.Debug("api request", "method", method, "path", path, "request_id", requestID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("api request failed", "method", method, "path", path, "request_id", requestID, "error", err)
		return nil, &Error{Message: fmt.Sprintf("network error: %v", err)}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Message: fmt.Sprintf("failed to read response: %v", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := c.parseError(resp.StatusCode, raw)
		c.logger.Debug("api error", "method", method, "path", path,
			"request_id", requestID, "status", apiErr.Status, "message", apiErr.Message)

		if hook := c.unauthorizedHook(); apiErr.IsUnauthorized() && hook != nil {
			hook()
		}
		return nil, apiErr
	}

	return raw, nil
}

// parseError extracts {status, message} from whatever shape the backend sent.
func (c *Client) parseError(status int, raw []byte) *Error {
	var eb errorBody
	if err := json.Unmarshal(raw, &eb); err == nil {
		switch {
		case eb.Message != "":
			return &Error{Status: status, Message: eb.Message}
		case eb.Data.Message != "":
			return &Error{Status: status, Message: eb.Data.Message}
		case eb.Error != "":
			return &Error{Status: status, Message: eb.Error}
		}
	}
	return &Error{Status: status, Message: fmt.Sprintf("request failed with status %d", status)}
}

// unwrap peels the success envelope down to the payload object.
func unwrap(raw []byte) (json.RawMessage, error) {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, &Error{Message: fmt.Sprintf("failed to decode response: %v", err)}
	}

	if len(env.Data.Data) > 0 && string(env.Data.Data) != "null" {
		return env.Data.Data, nil
	}

	// Flattened envelope: {"data": {<key>: ...}}.
	var flat struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(raw, &flat); err == nil && len(flat.Data) > 0 && string(flat.Data) != "null" {
		return flat.Data, nil
	}

	return nil, &Error{Message: "response missing data envelope"}
}

// decodePayload unmarshals the unwrapped payload into target.
func decodePayload(payload json.RawMessage, target any) error {
	if err := json.Unmarshal(payload, target); err != nil {
		return &Error{Message: fmt.Sprintf("failed to decode response payload: %v", err)}
	}
	return nil
}
