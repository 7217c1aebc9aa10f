package client

import (
	"context"
	"fmt"
	"net/http"
)

// FetchAccount retrieves the authenticated user's profile.
func (c *Client) FetchAccount(ctx context.Context) (*Account, error) {
	resp, err := c.Send(ctx, Request{Method: http.MethodGet, Path: "/account"})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch account: %w", err)
	}

	var account Account
	if err := resp.Decode(&account); err != nil {
		return nil, fmt.Errorf("failed to parse account response: %w", err)
	}
	return &account, nil
}
