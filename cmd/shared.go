package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/bfflix/bfflix/auth"
	"github.com/bfflix/bfflix/client"
	"github.com/bfflix/bfflix/db"
	"github.com/bfflix/bfflix/pkg/clierr"
)

// tokenRepoStorer adapts a TokenRepository to the auth.TokenStorer interface.
type tokenRepoStorer struct{ repo db.TokenRepository }

func (s *tokenRepoStorer) GetTokenRecord() (*db.Token, error) {
	return s.repo.Get(context.Background())
}

func (s *tokenRepoStorer) UpsertTokenRecord(token *db.Token) error {
	return s.repo.Upsert(context.Background(), token)
}

func (s *tokenRepoStorer) ClearTokenRecord() error {
	return s.repo.Clear(context.Background())
}

// newTokenRepo returns the token repository backed by the global database.
func newTokenRepo() db.TokenRepository {
	return db.NewTokenRepository(db.Db)
}

// newAPIClient wires the token store, refresh caller, and coordinator into
// one authenticated client for a command invocation.
func newAPIClient() *client.Client {
	repo := newTokenRepo()
	httpClient := &http.Client{}
	refresher := client.NewRefreshCaller(cfg.APIURL, httpClient)
	coordinator := auth.NewCoordinator(&tokenRepoStorer{repo: repo}, refresher)
	return client.New(cfg.APIURL, repo, coordinator,
		client.WithHTTPClient(httpClient),
		client.WithTimeout(cfg.HTTPTimeout),
	)
}

// userFacingError maps pipeline errors onto the CLI error taxonomy so every
// command reports failures with consistent wording.
func userFacingError(err error) *clierr.Error {
	var httpErr *client.HTTPError
	var netErr *client.NetworkError
	var timeoutErr *client.TimeoutError

	switch {
	case errors.As(err, &httpErr):
		switch httpErr.StatusCode {
		case http.StatusUnauthorized:
			return clierr.New(clierr.Auth, "You are not logged in or your session has expired. Run 'bfflix login'.", err)
		case http.StatusNotFound:
			return clierr.New(clierr.NotFound, "The requested item was not found.", err)
		default:
			return clierr.New(clierr.Internal, fmt.Sprintf("The server returned an error (HTTP %d).", httpErr.StatusCode), err)
		}
	case errors.As(err, &netErr):
		return clierr.New(clierr.Network, "Could not reach the BFFLIX API. Check your connection.", err)
	case errors.As(err, &timeoutErr):
		return clierr.New(clierr.Network, "The request timed out. Please try again.", err)
	}
	return clierr.New(clierr.Internal, "An unexpected error occurred. Check the logs for details.", err)
}
