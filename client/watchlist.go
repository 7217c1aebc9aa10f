package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// FetchWatchlist retrieves one page of the user's watchlist.
func (c *Client) FetchWatchlist(ctx context.Context, page, limit int) (*WatchlistPage, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("limit", strconv.Itoa(limit))

	resp, err := c.Send(ctx, Request{Method: http.MethodGet, Path: "/watchlist", Query: q})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch watchlist: %w", err)
	}

	var out WatchlistPage
	if err := resp.Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to parse watchlist response: %w", err)
	}
	return &out, nil
}

// AddToWatchlist adds a title to the watchlist with the given status.
func (c *Client) AddToWatchlist(ctx context.Context, titleID, status string) (*WatchlistItem, error) {
	resp, err := c.Send(ctx, Request{
		Method: http.MethodPost,
		Path:   "/watchlist",
		Body:   map[string]string{"titleId": titleID, "status": status},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to add to watchlist: %w", err)
	}

	var item WatchlistItem
	if err := resp.Decode(&item); err != nil {
		return nil, fmt.Errorf("failed to parse watchlist item: %w", err)
	}
	return &item, nil
}

// UpdateWatchlistItem changes the status or rating of one watchlist entry.
func (c *Client) UpdateWatchlistItem(ctx context.Context, id int64, status string, rating int) (*WatchlistItem, error) {
	resp, err := c.Send(ctx, Request{
		Method: http.MethodPatch,
		Path:   fmt.Sprintf("/watchlist/%d", id),
		Body:   map[string]interface{}{"status": status, "rating": rating},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update watchlist item: %w", err)
	}

	var item WatchlistItem
	if err := resp.Decode(&item); err != nil {
		return nil, fmt.Errorf("failed to parse watchlist item: %w", err)
	}
	return &item, nil
}

// RemoveFromWatchlist deletes one entry from the watchlist.
func (c *Client) RemoveFromWatchlist(ctx context.Context, id int64) error {
	if _, err := c.Send(ctx, Request{Method: http.MethodDelete, Path: fmt.Sprintf("/watchlist/%d", id)}); err != nil {
		return fmt.Errorf("failed to remove from watchlist: %w", err)
	}
	return nil
}
