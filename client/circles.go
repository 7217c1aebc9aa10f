package client

import (
	"context"
	"fmt"
	"net/http"
)

// FetchCircles lists the circles the user belongs to.
func (c *Client) FetchCircles(ctx context.Context) ([]Circle, error) {
	resp, err := c.Send(ctx, Request{Method: http.MethodGet, Path: "/circles"})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch circles: %w", err)
	}

	var out struct {
		Items []Circle `json:"items"`
	}
	if err := resp.Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to parse circles response: %w", err)
	}
	return out.Items, nil
}

// CreateCircle creates a new circle owned by the user.
func (c *Client) CreateCircle(ctx context.Context, name, description string) (*Circle, error) {
	resp, err := c.Send(ctx, Request{
		Method: http.MethodPost,
		Path:   "/circles",
		Body:   map[string]string{"name": name, "description": description},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create circle: %w", err)
	}

	var circle Circle
	if err := resp.Decode(&circle); err != nil {
		return nil, fmt.Errorf("failed to parse circle: %w", err)
	}
	return &circle, nil
}

// JoinCircle adds the user to an existing circle.
func (c *Client) JoinCircle(ctx context.Context, id int64) error {
	if _, err := c.Send(ctx, Request{Method: http.MethodPost, Path: fmt.Sprintf("/circles/%d/members", id)}); err != nil {
		return fmt.Errorf("failed to join circle: %w", err)
	}
	return nil
}

// LeaveCircle removes the user from a circle.
func (c *Client) LeaveCircle(ctx context.Context, id int64) error {
	if _, err := c.Send(ctx, Request{Method: http.MethodDelete, Path: fmt.Sprintf("/circles/%d/members/me", id)}); err != nil {
		return fmt.Errorf("failed to leave circle: %w", err)
	}
	return nil
}
