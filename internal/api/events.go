package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// Event represents a campus event.
type Event struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Department  string `json:"department"`
	Date        string `json:"date"` // ISO calendar date, YYYY-MM-DD
	Time        string `json:"time"` // 24-hour local time, HH:MM
	Location    string `json:"location"`
	RSVPCount   int    `json:"rsvpCount"`
}

// EventInput carries the writable event fields for create and update.
type EventInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Department  string `json:"department"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Location    string `json:"location"`
}

// ListEvents retrieves all events.
func (c *Client) ListEvents(ctx context.Context) ([]Event, error) {
	payload, err := c.doRequest(ctx, http.MethodGet, "/api/events", nil)
	if err != nil {
		return nil, err
	}

	var body struct {
		Events []Event `json:"events"`
	}
	if err := decodePayload(payload, &body); err != nil {
		return nil, err
	}
	return body.Events, nil
}

// GetEvent retrieves a single event by ID.
func (c *Client) GetEvent(ctx context.Context, id string) (*Event, error) {
	payload, err := c.doRequest(ctx, http.MethodGet, eventPath(id), nil)
	if err != nil {
		return nil, err
	}

	var body struct {
		Event Event `json:"event"`
	}
	if err := decodePayload(payload, &body); err != nil {
		return nil, err
	}
	return &body.Event, nil
}

// CreateEvent creates a new event and returns the server-confirmed record.
func (c *Client) CreateEvent(ctx context.Context, input EventInput) (*Event, error) {
	payload, err := c.doRequest(ctx, http.MethodPost, "/api/events", input)
	if err != nil {
		return nil, err
	}

	var body struct {
		Event Event `json:"event"`
	}
	if err := decodePayload(payload, &body); err != nil {
		return nil, err
	}
	return &body.Event, nil
}

// UpdateEvent replaces an event's fields and returns the updated record.
func (c *Client) UpdateEvent(ctx context.Context, id string, input EventInput) (*Event, error) {
	payload, err := c.doRequest(ctx, http.MethodPut, eventPath(id), input)
	if err != nil {
		return nil, err
	}

	var body struct {
		Event Event `json:"event"`
	}
	if err := decodePayload(payload, &body); err != nil {
		return nil, err
	}
	return &body.Event, nil
}

// DeleteEvent removes an event and returns the deleted event's ID.
// The backend answers with either the full event object or just its ID.
func (c *Client) DeleteEvent(ctx context.Context, id string) (string, error) {
	raw, err := c.call(ctx, http.MethodDelete, eventPath(id), nil)
	if err != nil {
		return "", err
	}

	// Some backend versions confirm a delete with no envelope at all.
	payload, err := unwrap(raw)
	if err != nil {
		return id, nil
	}

	var body struct {
		Event   *Event `json:"event"`
		EventID string `json:"eventId"`
	}
	if err := decodePayload(payload, &body); err != nil {
		return "", err
	}

	switch {
	case body.Event != nil && body.Event.ID != "":
		return body.Event.ID, nil
	case body.EventID != "":
		return body.EventID, nil
	default:
		// The server confirmed the delete; trust the requested ID.
		return id, nil
	}
}

func eventPath(id string) string {
	return fmt.Sprintf("/api/events/%s", url.PathEscape(id))
}
