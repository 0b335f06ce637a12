package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/thereidfleish/myace-sub000/internal/models"
)

// NewUpload is the upload-creation payload. The server answers with the
// pending upload record and a presigned POST for the video bytes.
type NewUpload struct {
	Filename     string            `json:"filename"`
	DisplayTitle string            `json:"display_title"`
	BucketID     int               `json:"bucket_id"`
	Visibility   models.Visibility `json:"visibility"`
}

// UploadUpdate carries the owner-editable upload fields. Nil means "leave
// as is".
type UploadUpdate struct {
	DisplayTitle *string            `json:"display_title,omitempty"`
	BucketID     *int               `json:"bucket_id,omitempty"`
	Visibility   *models.Visibility `json:"visibility,omitempty"`
}

// Uploads lists the authenticated user's uploads.
func (c *Client) Uploads(ctx context.Context) ([]models.Upload, error) {
	var out struct {
		Uploads []models.Upload `json:"uploads"`
	}
	if err := c.get(ctx, "/uploads/", nil, &out); err != nil {
		return nil, err
	}
	return out.Uploads, nil
}

// Upload fetches a single upload.
func (c *Client) Upload(ctx context.Context, id int) (models.Upload, error) {
	var upload models.Upload
	if err := c.get(ctx, fmt.Sprintf("/uploads/%d/", id), nil, &upload); err != nil {
		return models.Upload{}, err
	}
	return upload, nil
}

// CreateUpload registers a pending upload and returns the presigned POST the
// caller must perform before requesting conversion.
func (c *Client) CreateUpload(ctx context.Context, req NewUpload) (models.NewUploadResponse, error) {
	var out models.NewUploadResponse
	if err := c.post(ctx, "/uploads/", req, &out); err != nil {
		return models.NewUploadResponse{}, err
	}
	return out, nil
}

// UpdateUpload edits an upload's title, bucket or visibility. Owner only.
func (c *Client) UpdateUpload(ctx context.Context, id int, update UploadUpdate) (models.Upload, error) {
	var upload models.Upload
	if err := c.put(ctx, fmt.Sprintf("/uploads/%d/", id), update, &upload); err != nil {
		return models.Upload{}, err
	}
	return upload, nil
}

// DeleteUpload removes an upload and, server-side, its comments. Owner only.
func (c *Client) DeleteUpload(ctx context.Context, id int) error {
	return c.delete(ctx, fmt.Sprintf("/uploads/%d/", id))
}

// ConvertUpload asks the server to start transcoding a freshly posted video.
// StreamReady flips asynchronously some time after this returns.
func (c *Client) ConvertUpload(ctx context.Context, id int) error {
	return c.post(ctx, fmt.Sprintf("/uploads/%d/convert/", id), nil, nil)
}

// Feed returns a page of uploads visible to the authenticated user. Pages
// are 1-based; a page past the end is empty, not an error.
func (c *Client) Feed(ctx context.Context, page int) ([]models.Upload, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	var out struct {
		Uploads []models.Upload `json:"uploads"`
	}
	if err := c.get(ctx, "/feed", q, &out); err != nil {
		return nil, err
	}
	return out.Uploads, nil
}
