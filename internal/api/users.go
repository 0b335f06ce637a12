package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/thereidfleish/myace-sub000/internal/models"
)

// UserUpdate carries the editable profile fields. Nil means "leave as is".
type UserUpdate struct {
	Username    *string `json:"username,omitempty"`
	DisplayName *string `json:"display_name,omitempty"`
	Biography   *string `json:"biography,omitempty"`
	Email       *string `json:"email,omitempty"`
}

// Me fetches the authenticated user's own profile.
func (c *Client) Me(ctx context.Context) (models.User, error) {
	var user models.User
	if err := c.get(ctx, "/users/me/", nil, &user); err != nil {
		return models.User{}, err
	}
	return user, nil
}

// UpdateMe edits the authenticated user's profile and returns the result.
func (c *Client) UpdateMe(ctx context.Context, update UserUpdate) (models.User, error) {
	var user models.User
	if err := c.put(ctx, "/users/me/", update, &user); err != nil {
		return models.User{}, err
	}
	return user, nil
}

// DeleteMe deletes the account. The caller is logged out afterwards.
func (c *Client) DeleteMe(ctx context.Context) error {
	return c.delete(ctx, "/users/me/")
}

// CheckUsername reports whether a username is still available.
func (c *Client) CheckUsername(ctx context.Context, name string) (bool, error) {
	var out struct {
		Available bool `json:"available"`
	}
	if err := c.get(ctx, "/usernames/"+url.PathEscape(name)+"/check/", nil, &out); err != nil {
		return false, err
	}
	return out.Available, nil
}

// SearchUsers runs a paged user search. Pages are 1-based; an empty page
// past the end returns an empty slice, not an error.
func (c *Client) SearchUsers(ctx context.Context, query string, page int) ([]models.User, error) {
	q := url.Values{}
	q.Set("q", query)
	q.Set("page", strconv.Itoa(page))
	var out struct {
		Users []models.User `json:"users"`
	}
	if err := c.get(ctx, "/users/search", q, &out); err != nil {
		return nil, err
	}
	return out.Users, nil
}

// Courtships lists a user's accepted courtships.
func (c *Client) Courtships(ctx context.Context, userID int) ([]models.Courtship, error) {
	var out struct {
		Courtships []models.Courtship `json:"courtships"`
	}
	if err := c.get(ctx, fmt.Sprintf("/users/%d/courtships", userID), nil, &out); err != nil {
		return nil, err
	}
	return out.Courtships, nil
}
