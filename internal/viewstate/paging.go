package viewstate

import (
	"context"

	"github.com/thereidfleish/myace-sub000/internal/api"
	"github.com/thereidfleish/myace-sub000/internal/models"
)

// pager drives page-number pagination for a list screen. LoadMore appends
// each page to the in-memory list without deduplication, so the same entry
// can appear twice if server-side pages overlap. An empty page marks the end
// and is never an error.
type pager[T any] struct {
	page      int
	items     []T
	exhausted bool
	fetch     func(ctx context.Context, page int) ([]T, error)
}

func (p *pager[T]) loadMore(ctx context.Context) error {
	if p.exhausted {
		return nil
	}
	batch, err := p.fetch(ctx, p.page+1)
	if err != nil {
		return err
	}
	p.page++
	if len(batch) == 0 {
		p.exhausted = true
		return nil
	}
	p.items = append(p.items, batch...)
	return nil
}

// SearchController backs the user-search screen.
type SearchController struct {
	controller
	pager[models.User]
	query string
}

// NewSearchController runs the first page of a search. An empty query is
// passed through; the server answers with an empty set or a 400, and either
// renders as a normal empty/failed state.
func NewSearchController(ctx context.Context, client *api.Client, query string) *SearchController {
	c := &SearchController{
		controller: newController(ctx),
		query:      query,
	}
	c.fetch = func(ctx context.Context, page int) ([]models.User, error) {
		return client.SearchUsers(ctx, c.query, page)
	}
	_ = c.LoadMore()
	return c
}

// Users returns the accumulated result list.
func (c *SearchController) Users() []models.User {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.items
}

// LoadMore fetches and appends the next page.
func (c *SearchController) LoadMore() error {
	return c.run(func(ctx context.Context) error {
		c.mu.Lock()
		defer c.mu.Unlock()
		return c.loadMore(ctx)
	})
}

// FeedController backs the home feed.
type FeedController struct {
	controller
	pager[models.Upload]
}

// NewFeedController loads the first feed page.
func NewFeedController(ctx context.Context, client *api.Client) *FeedController {
	c := &FeedController{controller: newController(ctx)}
	c.fetch = client.Feed
	_ = c.LoadMore()
	return c
}

// Uploads returns the accumulated feed.
func (c *FeedController) Uploads() []models.Upload {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.items
}

// LoadMore fetches and appends the next page.
func (c *FeedController) LoadMore() error {
	return c.run(func(ctx context.Context) error {
		c.mu.Lock()
		defer c.mu.Unlock()
		return c.loadMore(ctx)
	})
}
