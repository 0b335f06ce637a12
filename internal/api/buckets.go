package api

import (
	"context"
	"fmt"

	"github.com/thereidfleish/myace-sub000/internal/models"
)

// Buckets lists the authenticated user's buckets.
func (c *Client) Buckets(ctx context.Context) ([]models.Bucket, error) {
	var out struct {
		Buckets []models.Bucket `json:"buckets"`
	}
	if err := c.get(ctx, "/buckets/", nil, &out); err != nil {
		return nil, err
	}
	return out.Buckets, nil
}

// CreateBucket makes a new named bucket for the authenticated user.
func (c *Client) CreateBucket(ctx context.Context, name string) (models.Bucket, error) {
	body := map[string]string{"name": name}
	var bucket models.Bucket
	if err := c.post(ctx, "/buckets/", body, &bucket); err != nil {
		return models.Bucket{}, err
	}
	return bucket, nil
}

// RenameBucket changes a bucket's name. Owner only.
func (c *Client) RenameBucket(ctx context.Context, id int, name string) (models.Bucket, error) {
	body := map[string]string{"name": name}
	var bucket models.Bucket
	if err := c.put(ctx, fmt.Sprintf("/buckets/%d/", id), body, &bucket); err != nil {
		return models.Bucket{}, err
	}
	return bucket, nil
}

// DeleteBucket removes a bucket. Owner only.
func (c *Client) DeleteBucket(ctx context.Context, id int) error {
	return c.delete(ctx, fmt.Sprintf("/buckets/%d/", id))
}
