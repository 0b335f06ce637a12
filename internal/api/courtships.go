package api

import (
	"context"
	"fmt"
	"net/url"

	"github.com/thereidfleish/myace-sub000/internal/models"
)

// CourtshipRequests lists pending requests for the authenticated user,
// filtered by direction: DirectionIn for requests received, DirectionOut for
// requests sent.
func (c *Client) CourtshipRequests(ctx context.Context, dir models.Direction) ([]models.Courtship, error) {
	q := url.Values{}
	q.Set("dir", string(dir))
	var out struct {
		Requests []models.Courtship `json:"requests"`
	}
	if err := c.get(ctx, "/courtships/requests/", q, &out); err != nil {
		return nil, err
	}
	return out.Requests, nil
}

// CreateCourtshipRequest sends a friend/coach/student request to a user.
func (c *Client) CreateCourtshipRequest(ctx context.Context, userID int, role models.CourtshipType) (models.Courtship, error) {
	body := struct {
		UserID int                  `json:"user_id"`
		Type   models.CourtshipType `json:"type"`
	}{UserID: userID, Type: role.RequestType()}
	var req models.Courtship
	if err := c.post(ctx, "/courtships/requests/", body, &req); err != nil {
		return models.Courtship{}, err
	}
	return req, nil
}

// AcceptCourtshipRequest turns an incoming request into a courtship.
func (c *Client) AcceptCourtshipRequest(ctx context.Context, id int) error {
	return c.respondCourtshipRequest(ctx, id, "accept")
}

// DeclineCourtshipRequest rejects an incoming request without creating a
// courtship.
func (c *Client) DeclineCourtshipRequest(ctx context.Context, id int) error {
	return c.respondCourtshipRequest(ctx, id, "decline")
}

func (c *Client) respondCourtshipRequest(ctx context.Context, id int, status string) error {
	body := map[string]string{"status": status}
	return c.put(ctx, fmt.Sprintf("/courtships/requests/%d/", id), body, nil)
}

// CancelCourtshipRequest withdraws an outgoing request.
func (c *Client) CancelCourtshipRequest(ctx context.Context, id int) error {
	return c.delete(ctx, fmt.Sprintf("/courtships/requests/%d/", id))
}

// DeleteCourtship removes an accepted courtship.
func (c *Client) DeleteCourtship(ctx context.Context, id int) error {
	return c.delete(ctx, fmt.Sprintf("/courtships/%d/", id))
}
