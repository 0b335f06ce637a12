package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/thereidfleish/myace-sub000/internal/models"
)

// Comments lists an upload's comments, oldest first.
func (c *Client) Comments(ctx context.Context, uploadID int) ([]models.Comment, error) {
	q := url.Values{}
	q.Set("upload", strconv.Itoa(uploadID))
	var out struct {
		Comments []models.Comment `json:"comments"`
	}
	if err := c.get(ctx, "/comments/", q, &out); err != nil {
		return nil, err
	}
	return out.Comments, nil
}

// CreateComment posts a comment on an upload. Pass models.NoAnchor for
// anchorSeconds when the comment is not pinned to a video position.
func (c *Client) CreateComment(ctx context.Context, uploadID int, text string, anchorSeconds int) (models.Comment, error) {
	body := struct {
		UploadID int    `json:"upload_id"`
		Text     string `json:"text"`
	}{
		UploadID: uploadID,
		Text:     models.JoinAnchor(anchorSeconds, text),
	}
	var comment models.Comment
	if err := c.post(ctx, "/comments/", body, &comment); err != nil {
		return models.Comment{}, err
	}
	return comment, nil
}

// DeleteComment removes a comment. Author only.
func (c *Client) DeleteComment(ctx context.Context, id int) error {
	return c.delete(ctx, fmt.Sprintf("/comments/%d/", id))
}
