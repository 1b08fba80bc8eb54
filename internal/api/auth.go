package api

import (
	"context"
	"net/http"
)

// User represents a campus events user.
type User struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	Role      string `json:"role"`
	RSVPCount int    `json:"rsvpCount,omitempty"`
}

// IsAdmin reports whether the user may manage events. This gates UI
// actions only; the backend enforces the real boundary.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == "admin"
}

// Session is the authenticated identity returned by login and register.
type Session struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

// RegisterRequest is the register call body.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest is the login call body.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register creates a new account. The backend logs the user in as part of
// registration and returns a session token.
func (c *Client) Register(ctx context.Context, name, email, password string) (*Session, error) {
	payload, err := c.doRequest(ctx, http.MethodPost, "/api/register", RegisterRequest{
		Name:     name,
		Email:    email,
		Password: password,
	})
	if err != nil {
		return nil, err
	}

	var session Session
	if err := decodePayload(payload, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// Login authenticates with email and password.
func (c *Client) Login(ctx context.Context, email, password string) (*Session, error) {
	payload, err := c.doRequest(ctx, http.MethodPost, "/api/login", LoginRequest{
		Email:    email,
		Password: password,
	})
	if err != nil {
		return nil, err
	}

	var session Session
	if err := decodePayload(payload, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// Logout invalidates the current session server-side. The endpoint has no
// success payload, so any 2xx counts regardless of body shape.
func (c *Client) Logout(ctx context.Context) error {
	_, err := c.call(ctx, http.MethodPost, "/api/logout", nil)
	return err
}

// Profile fetches the authenticated user's profile detail.
func (c *Client) Profile(ctx context.Context) (*User, error) {
	payload, err := c.doRequest(ctx, http.MethodGet, "/api/profile", nil)
	if err != nil {
		return nil, err
	}

	var body struct {
		User User `json:"user"`
	}
	if err := decodePayload(payload, &body); err != nil {
		return nil, err
	}
	return &body.User, nil
}
