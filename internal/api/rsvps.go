package api

import (
	"context"
	"net/http"
)

// RSVP is a membership record linking a user to an event.
type RSVP struct {
	ID        string `json:"id"`
	EventID   string `json:"eventId"`
	UserID    string `json:"userId"`
	CreatedAt string `json:"createdAt,omitempty"`
}

// ListMyRSVPs retrieves the authenticated user's RSVPs.
func (c *Client) ListMyRSVPs(ctx context.Context) ([]RSVP, error) {
	payload, err := c.doRequest(ctx, http.MethodGet, "/api/events/user/rsvp", nil)
	if err != nil {
		return nil, err
	}

	var body struct {
		RSVPs []RSVP `json:"rsvps"`
	}
	if err := decodePayload(payload, &body); err != nil {
		return nil, err
	}
	return body.RSVPs, nil
}

// ListEventRSVPs retrieves the attendee roster for one event.
func (c *Client) ListEventRSVPs(ctx context.Context, eventID string) ([]RSVP, error) {
	payload, err := c.doRequest(ctx, http.MethodGet, eventPath(eventID)+"/rsvp", nil)
	if err != nil {
		return nil, err
	}

	var body struct {
		RSVPs []RSVP `json:"rsvps"`
	}
	if err := decodePayload(payload, &body); err != nil {
		return nil, err
	}
	return body.RSVPs, nil
}

// CreateRSVP registers the authenticated user for an event.
func (c *Client) CreateRSVP(ctx context.Context, eventID string) (*RSVP, error) {
	payload, err := c.doRequest(ctx, http.MethodPost, eventPath(eventID)+"/rsvp", nil)
	if err != nil {
		return nil, err
	}

	var body struct {
		RSVP RSVP `json:"rsvp"`
	}
	if err := decodePayload(payload, &body); err != nil {
		return nil, err
	}
	return &body.RSVP, nil
}

// CancelRSVP withdraws the authenticated user's RSVP for an event.
func (c *Client) CancelRSVP(ctx context.Context, eventID string) (*RSVP, error) {
	payload, err := c.doRequest(ctx, http.MethodDelete, eventPath(eventID)+"/rsvp", nil)
	if err != nil {
		return nil, err
	}

	var body struct {
		RSVP RSVP `json:"rsvp"`
	}
	if err := decodePayload(payload, &body); err != nil {
		return nil, err
	}
	return &body.RSVP, nil
}
