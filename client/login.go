package client

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/bfflix/bfflix/auth"
	"github.com/bfflix/bfflix/db"
)

// credentialResponse is the strict shape login, signup, and refresh responses
// must satisfy. Both fields are required; a partial pair is rejected at the
// boundary rather than propagated inward.
type credentialResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// Login authenticates with email and password and persists the returned
// credential pair. The call itself is unauthenticated.
func (c *Client) Login(ctx context.Context, email, password string) error {
	resp, err := c.Send(ctx, Request{
		Method:   http.MethodPost,
		Path:     "/auth/login",
		Body:     map[string]string{"email": email, "password": password},
		SkipAuth: true,
	})
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}
	return c.persistCredentials(ctx, resp)
}

// Signup registers a new account and persists the returned credential pair.
func (c *Client) Signup(ctx context.Context, email, password, displayName string) error {
	resp, err := c.Send(ctx, Request{
		Method:   http.MethodPost,
		Path:     "/auth/signup",
		Body:     map[string]string{"email": email, "password": password, "displayName": displayName},
		SkipAuth: true,
	})
	if err != nil {
		return fmt.Errorf("signup failed: %w", err)
	}
	return c.persistCredentials(ctx, resp)
}

// RequestPasswordReset asks the backend to email a reset link. Unauthenticated.
func (c *Client) RequestPasswordReset(ctx context.Context, email string) error {
	_, err := c.Send(ctx, Request{
		Method:   http.MethodPost,
		Path:     "/auth/password-reset",
		Body:     map[string]string{"email": email},
		SkipAuth: true,
	})
	if err != nil {
		return fmt.Errorf("password reset request failed: %w", err)
	}
	return nil
}

// Logout revokes the session server-side on a best-effort basis and always
// clears the local credential pair.
func (c *Client) Logout(ctx context.Context) error {
	if _, err := c.Send(ctx, Request{Method: http.MethodPost, Path: "/auth/logout"}); err != nil {
		log.Warn().Err(err).Msg("Server-side logout failed; clearing local credentials anyway")
	}
	if err := c.tokens.Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear stored credentials: %w", err)
	}
	return nil
}

// persistCredentials validates and stores the pair from a login or signup
// response.
func (c *Client) persistCredentials(ctx context.Context, resp *Response) error {
	var creds credentialResponse
	if err := resp.Decode(&creds); err != nil {
		return fmt.Errorf("failed to parse credential response: %w", err)
	}
	if creds.AccessToken == "" || creds.RefreshToken == "" {
		return fmt.Errorf("credential response missing token fields")
	}

	record := &db.Token{AccessToken: creds.AccessToken, RefreshToken: creds.RefreshToken}
	if exp, ok := auth.TokenExpiry(creds.AccessToken); ok {
		record.ExpiresAt = exp.Format(time.RFC3339)
	}
	if err := c.tokens.Upsert(ctx, record); err != nil {
		return fmt.Errorf("failed to save credentials: %w", err)
	}
	log.Info().Msg("Credentials saved successfully")
	return nil
}
