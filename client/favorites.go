package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// FetchFavorites retrieves one page of the user's favorites.
func (c *Client) FetchFavorites(ctx context.Context, page, limit int) (*FavoritesPage, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("limit", strconv.Itoa(limit))

	resp, err := c.Send(ctx, Request{Method: http.MethodGet, Path: "/favorites", Query: q})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch favorites: %w", err)
	}

	var out FavoritesPage
	if err := resp.Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to parse favorites response: %w", err)
	}
	return &out, nil
}

// AddFavorite marks a title as a favorite.
func (c *Client) AddFavorite(ctx context.Context, titleID string) (*FavoriteItem, error) {
	resp, err := c.Send(ctx, Request{
		Method: http.MethodPost,
		Path:   "/favorites",
		Body:   map[string]string{"titleId": titleID},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to add favorite: %w", err)
	}

	var item FavoriteItem
	if err := resp.Decode(&item); err != nil {
		return nil, fmt.Errorf("failed to parse favorite item: %w", err)
	}
	return &item, nil
}

// RemoveFavorite unmarks a favorite.
func (c *Client) RemoveFavorite(ctx context.Context, id int64) error {
	if _, err := c.Send(ctx, Request{Method: http.MethodDelete, Path: fmt.Sprintf("/favorites/%d", id)}); err != nil {
		return fmt.Errorf("failed to remove favorite: %w", err)
	}
	return nil
}
