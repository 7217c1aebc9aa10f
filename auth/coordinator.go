package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"

	"github.com/bfflix/bfflix/db"
)

// DefaultRefreshTimeout bounds one refresh call against the backend. It is
// deliberately independent of any individual request's deadline: a refresh
// that other requests are waiting on must not die with the request that
// happened to start it.
const DefaultRefreshTimeout = 20 * time.Second

// refreshKey is the single singleflight key; there is only ever one session
// per process, so all 401s collapse onto the same flight.
const refreshKey = "refresh"

var (
	// ErrNoSession is returned when no refresh token is stored. The caller must
	// treat the session as logged out; no network call is attempted.
	ErrNoSession = errors.New("no active session")

	// ErrRefreshFailed is returned when a refresh attempt failed for any reason.
	// The stored credentials have already been cleared by the time callers see
	// it; the session layer is expected to force a logout.
	ErrRefreshFailed = errors.New("token refresh failed")
)

// Coordinator serializes token refreshes. However many concurrent requests hit
// a 401, at most one refresh call is in flight at a time and every waiter
// observes the outcome of that one call. The backend rotates refresh tokens on
// each use, so a duplicate concurrent refresh would invalidate its sibling's
// token; the coordinator exists to make that impossible.
type Coordinator struct {
	storer         TokenStorer
	refresher      TokenRefresher
	refreshTimeout time.Duration

	group singleflight.Group
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithRefreshTimeout overrides the deadline applied to one refresh call.
func WithRefreshTimeout(d time.Duration) Option {
	return func(c *Coordinator) {
		if d > 0 {
			c.refreshTimeout = d
		}
	}
}

// NewCoordinator is the constructor for the refresh coordinator.
func NewCoordinator(storer TokenStorer, refresher TokenRefresher, opts ...Option) *Coordinator {
	c := &Coordinator{
		storer:         storer,
		refresher:      refresher,
		refreshTimeout: DefaultRefreshTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// EnsureFreshToken returns an access token obtained from a refresh. If a
// refresh is already in flight the caller awaits its outcome instead of
// starting a second one. The context bounds only this caller's wait: if it
// expires, the caller gets the context error while the shared flight runs to
// completion under the coordinator's own timeout.
func (c *Coordinator) EnsureFreshToken(ctx context.Context) (string, error) {
	record, err := c.storer.GetTokenRecord()
	if err != nil {
		return "", fmt.Errorf("failed to retrieve token record: %w", err)
	}
	if record == nil || record.RefreshToken == "" {
		return "", ErrNoSession
	}

	ch := c.group.DoChan(refreshKey, func() (interface{}, error) {
		return c.refresh()
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return "", res.Err
		}
		return res.Val.(string), nil
	case <-ctx.Done():
		log.Debug().Msg("Caller gave up waiting for refresh; refresh continues in flight")
		return "", ctx.Err()
	}
}

// refresh performs the single network refresh for one flight. It re-reads the
// store so the call always uses the most recently persisted refresh token,
// never a stale copy captured before a concurrent rotation.
func (c *Coordinator) refresh() (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), c.refreshTimeout)
	defer cancel()

	record, err := c.storer.GetTokenRecord()
	if err != nil {
		return "", fmt.Errorf("failed to retrieve token record: %w", err)
	}
	if record == nil || record.RefreshToken == "" {
		return "", ErrNoSession
	}

	access, newRefresh, err := c.refresher.PerformTokenRefresh(ctx, record.RefreshToken)
	if err != nil {
		return c.failAndClear(fmt.Errorf("refresh call failed: %w", err))
	}
	if access == "" || newRefresh == "" {
		// A backend that omits the rotated refresh token is not trustworthy;
		// persisting a half-updated pair would strand the next refresh.
		return c.failAndClear(errors.New("refresh response missing token fields"))
	}

	fresh := &db.Token{AccessToken: access, RefreshToken: newRefresh}
	if exp, ok := TokenExpiry(access); ok {
		fresh.ExpiresAt = exp.Format(time.RFC3339)
	}
	if err := c.storer.UpsertTokenRecord(fresh); err != nil {
		return c.failAndClear(fmt.Errorf("failed to save refreshed token: %w", err))
	}

	log.Info().Msg("Token refreshed and saved successfully")
	return access, nil
}

// failAndClear discards stored credentials and maps any refresh failure onto
// ErrRefreshFailed. Clearing is a fail-safe: stale, soon-to-be-invalid tokens
// left behind would cause confusing repeated failures on every later request.
func (c *Coordinator) failAndClear(cause error) (string, error) {
	if err := c.storer.ClearTokenRecord(); err != nil {
		log.Error().Err(err).Msg("Failed to clear stored credentials after refresh failure")
	}
	log.Warn().Err(cause).Msg("Token refresh failed; stored credentials cleared")
	return "", fmt.Errorf("%w: %v", ErrRefreshFailed, cause)
}
