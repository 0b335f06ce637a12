package viewstate

import (
	"context"

	"github.com/thereidfleish/myace-sub000/internal/api"
	"github.com/thereidfleish/myace-sub000/internal/models"
)

// UploadsController backs the "my videos" screen: the user's uploads plus
// the buckets they are grouped under, fetched together.
type UploadsController struct {
	controller
	client *api.Client

	uploads []models.Upload
	buckets []models.Bucket
}

// NewUploadsController builds the controller and performs the initial
// parallel fetch.
func NewUploadsController(ctx context.Context, client *api.Client) *UploadsController {
	c := &UploadsController{
		controller: newController(ctx),
		client:     client,
	}
	_ = c.Refresh()
	return c
}

// Refresh reloads uploads and buckets in parallel.
func (c *UploadsController) Refresh() error {
	return c.run(func(ctx context.Context) error {
		return fetchAll(ctx,
			func(ctx context.Context) error {
				uploads, err := c.client.Uploads(ctx)
				if err != nil {
					return err
				}
				c.mu.Lock()
				c.uploads = uploads
				c.mu.Unlock()
				return nil
			},
			func(ctx context.Context) error {
				buckets, err := c.client.Buckets(ctx)
				if err != nil {
					return err
				}
				c.mu.Lock()
				c.buckets = buckets
				c.mu.Unlock()
				return nil
			},
		)
	})
}

// Uploads returns the user's uploads.
func (c *UploadsController) Uploads() []models.Upload {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.uploads
}

// Buckets returns the user's buckets.
func (c *UploadsController) Buckets() []models.Bucket {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.buckets
}

// Edit updates an upload's fields, then re-fetches. A failed edit leaves the
// cached state exactly as it was.
func (c *UploadsController) Edit(id int, update api.UploadUpdate) error {
	if _, err := c.client.UpdateUpload(c.ctx, id, update); err != nil {
		c.setStatus(Status{Phase: PhaseFailed, Message: api.UserMessage(err)})
		return err
	}
	return c.Refresh()
}

// Delete removes an upload, then re-fetches.
func (c *UploadsController) Delete(id int) error {
	if err := c.client.DeleteUpload(c.ctx, id); err != nil {
		c.setStatus(Status{Phase: PhaseFailed, Message: api.UserMessage(err)})
		return err
	}
	return c.Refresh()
}
