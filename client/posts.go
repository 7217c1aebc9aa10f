package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// FetchPosts retrieves one page of the posts feed.
func (c *Client) FetchPosts(ctx context.Context, page, limit int) (*PostsPage, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("limit", strconv.Itoa(limit))

	resp, err := c.Send(ctx, Request{Method: http.MethodGet, Path: "/posts", Query: q})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch posts: %w", err)
	}

	var out PostsPage
	if err := resp.Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to parse posts response: %w", err)
	}
	return &out, nil
}

// CreatePost shares a note about a title with the user's circles.
func (c *Client) CreatePost(ctx context.Context, titleID, body string) (*Post, error) {
	resp, err := c.Send(ctx, Request{
		Method: http.MethodPost,
		Path:   "/posts",
		Body:   map[string]string{"titleId": titleID, "body": body},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	var post Post
	if err := resp.Decode(&post); err != nil {
		return nil, fmt.Errorf("failed to parse post: %w", err)
	}
	return &post, nil
}

// DeletePost removes one of the user's posts.
func (c *Client) DeletePost(ctx context.Context, id int64) error {
	if _, err := c.Send(ctx, Request{Method: http.MethodDelete, Path: fmt.Sprintf("/posts/%d", id)}); err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}
	return nil
}
