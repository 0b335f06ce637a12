package viewstate

import (
	"context"

	"github.com/thereidfleish/myace-sub000/internal/api"
	"github.com/thereidfleish/myace-sub000/internal/models"
)

// CourtshipsController backs the relationships screen: the accepted
// courtships plus the incoming and outgoing request lists. Construction
// triggers the initial fetch; every mutation re-fetches the collections it
// touches rather than patching them in place.
type CourtshipsController struct {
	controller
	client *api.Client
	userID int

	courtships []models.Courtship
	incoming   []models.Courtship
	outgoing   []models.Courtship
}

// NewCourtshipsController builds the controller and performs the initial
// three-way parallel fetch for the given user.
func NewCourtshipsController(ctx context.Context, client *api.Client, userID int) *CourtshipsController {
	c := &CourtshipsController{
		controller: newController(ctx),
		client:     client,
		userID:     userID,
	}
	_ = c.Refresh()
	return c
}

// Refresh reloads all three collections in parallel.
func (c *CourtshipsController) Refresh() error {
	return c.run(func(ctx context.Context) error {
		return fetchAll(ctx,
			func(ctx context.Context) error {
				courtships, err := c.client.Courtships(ctx, c.userID)
				if err != nil {
					return err
				}
				c.mu.Lock()
				c.courtships = courtships
				c.mu.Unlock()
				return nil
			},
			func(ctx context.Context) error {
				incoming, err := c.client.CourtshipRequests(ctx, models.DirectionIn)
				if err != nil {
					return err
				}
				c.mu.Lock()
				c.incoming = incoming
				c.mu.Unlock()
				return nil
			},
			func(ctx context.Context) error {
				outgoing, err := c.client.CourtshipRequests(ctx, models.DirectionOut)
				if err != nil {
					return err
				}
				c.mu.Lock()
				c.outgoing = outgoing
				c.mu.Unlock()
				return nil
			},
		)
	})
}

// Courtships returns the accepted relationships.
func (c *CourtshipsController) Courtships() []models.Courtship {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.courtships
}

// Incoming returns the pending requests sent to this user.
func (c *CourtshipsController) Incoming() []models.Courtship {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.incoming
}

// Outgoing returns the pending requests this user has sent.
func (c *CourtshipsController) Outgoing() []models.Courtship {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.outgoing
}

// Accept turns an incoming request into a courtship, then re-fetches.
func (c *CourtshipsController) Accept(requestID int) error {
	if err := c.client.AcceptCourtshipRequest(c.ctx, requestID); err != nil {
		c.setStatus(Status{Phase: PhaseFailed, Message: api.UserMessage(err)})
		return err
	}
	return c.Refresh()
}

// Decline rejects an incoming request, then re-fetches.
func (c *CourtshipsController) Decline(requestID int) error {
	if err := c.client.DeclineCourtshipRequest(c.ctx, requestID); err != nil {
		c.setStatus(Status{Phase: PhaseFailed, Message: api.UserMessage(err)})
		return err
	}
	return c.Refresh()
}

// Cancel withdraws an outgoing request, then re-fetches.
func (c *CourtshipsController) Cancel(requestID int) error {
	if err := c.client.CancelCourtshipRequest(c.ctx, requestID); err != nil {
		c.setStatus(Status{Phase: PhaseFailed, Message: api.UserMessage(err)})
		return err
	}
	return c.Refresh()
}

// Remove deletes an accepted courtship, then re-fetches.
func (c *CourtshipsController) Remove(courtshipID int) error {
	if err := c.client.DeleteCourtship(c.ctx, courtshipID); err != nil {
		c.setStatus(Status{Phase: PhaseFailed, Message: api.UserMessage(err)})
		return err
	}
	return c.Refresh()
}
