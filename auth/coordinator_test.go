package auth_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bfflix/bfflix/auth"
	"github.com/bfflix/bfflix/db"
)

// memStorer is a concurrency-safe in-memory TokenStorer.
type memStorer struct {
	mu      sync.Mutex
	token   *db.Token
	getErr  error
	upErr   error
	cleared bool
}

func (m *memStorer) GetTokenRecord() (*db.Token, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	if m.token == nil {
		return nil, nil
	}
	copied := *m.token
	return &copied, nil
}

func (m *memStorer) UpsertTokenRecord(token *db.Token) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.upErr != nil {
		return m.upErr
	}
	copied := *token
	m.token = &copied
	return nil
}

func (m *memStorer) ClearTokenRecord() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = nil
	m.cleared = true
	return nil
}

func (m *memStorer) current() *db.Token {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token
}

// blockingRefresher counts calls and holds each refresh until released.
type blockingRefresher struct {
	calls   atomic.Int32
	release chan struct{}
	access  string
	refresh string
	err     error
}

func (r *blockingRefresher) PerformTokenRefresh(ctx context.Context, refreshToken string) (string, string, error) {
	r.calls.Add(1)
	if r.release != nil {
		select {
		case <-r.release:
		case <-ctx.Done():
			return "", "", ctx.Err()
		}
	}
	if r.err != nil {
		return "", "", r.err
	}
	return r.access, r.refresh, nil
}

func seededStorer() *memStorer {
	return &memStorer{token: &db.Token{AccessToken: "A1", RefreshToken: "R1"}}
}

func TestEnsureFreshToken_SingleFlight(t *testing.T) {
	storer := seededStorer()
	refresher := &blockingRefresher{release: make(chan struct{}), access: "A2", refresh: "R2"}
	coordinator := auth.NewCoordinator(storer, refresher)

	const callers = 8
	var wg sync.WaitGroup
	results := make([]string, callers)
	errs := make([]error, callers)

	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = coordinator.EnsureFreshToken(context.Background())
		}(i)
	}

	// Give every caller time to join the in-flight refresh, then let it finish.
	time.Sleep(50 * time.Millisecond)
	close(refresher.release)
	wg.Wait()

	assert.EqualValues(t, 1, refresher.calls.Load(), "exactly one refresh call must reach the backend")
	for i := 0; i < callers; i++ {
		require.NoError(t, errs[i])
		assert.Equal(t, "A2", results[i], "every caller must observe the same new token")
	}

	stored := storer.current()
	require.NotNil(t, stored)
	assert.Equal(t, "A2", stored.AccessToken)
	assert.Equal(t, "R2", stored.RefreshToken)
}

func TestEnsureFreshToken_NoSession(t *testing.T) {
	refresher := &blockingRefresher{access: "A2", refresh: "R2"}
	coordinator := auth.NewCoordinator(&memStorer{}, refresher)

	_, err := coordinator.EnsureFreshToken(context.Background())

	require.ErrorIs(t, err, auth.ErrNoSession)
	assert.EqualValues(t, 0, refresher.calls.Load(), "no network call without a refresh token")
}

func TestEnsureFreshToken_FailureClearsStore(t *testing.T) {
	storer := seededStorer()
	refresher := &blockingRefresher{err: errors.New("HTTP 400")}
	coordinator := auth.NewCoordinator(storer, refresher)

	_, err := coordinator.EnsureFreshToken(context.Background())

	require.ErrorIs(t, err, auth.ErrRefreshFailed)
	assert.True(t, storer.cleared, "store must be cleared on refresh failure")
	assert.Nil(t, storer.current())
}

func TestEnsureFreshToken_MissingFieldIsFailure(t *testing.T) {
	storer := seededStorer()
	refresher := &blockingRefresher{access: "A2", refresh: ""}
	coordinator := auth.NewCoordinator(storer, refresher)

	_, err := coordinator.EnsureFreshToken(context.Background())

	require.ErrorIs(t, err, auth.ErrRefreshFailed)
	assert.Nil(t, storer.current(), "a half-updated pair must never be persisted")
}

func TestEnsureFreshToken_UpsertFailureIsFailure(t *testing.T) {
	storer := seededStorer()
	storer.upErr = errors.New("storage full")
	refresher := &blockingRefresher{access: "A2", refresh: "R2"}
	coordinator := auth.NewCoordinator(storer, refresher)

	_, err := coordinator.EnsureFreshToken(context.Background())

	require.ErrorIs(t, err, auth.ErrRefreshFailed)
	assert.True(t, storer.cleared, "store must be cleared when the new pair cannot be saved")
}

func TestEnsureFreshToken_ConsistentFailureAcrossCallers(t *testing.T) {
	storer := seededStorer()
	refresher := &blockingRefresher{release: make(chan struct{}), err: errors.New("HTTP 400")}
	coordinator := auth.NewCoordinator(storer, refresher)

	const callers = 4
	var wg sync.WaitGroup
	errs := make([]error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = coordinator.EnsureFreshToken(context.Background())
		}(i)
	}
	time.Sleep(50 * time.Millisecond)
	close(refresher.release)
	wg.Wait()

	assert.EqualValues(t, 1, refresher.calls.Load())
	for i := 0; i < callers; i++ {
		assert.ErrorIs(t, errs[i], auth.ErrRefreshFailed, "every caller must observe the same failure")
	}
}

func TestEnsureFreshToken_WaiterTimeoutDoesNotCancelRefresh(t *testing.T) {
	storer := seededStorer()
	refresher := &blockingRefresher{release: make(chan struct{}), access: "A2", refresh: "R2"}
	coordinator := auth.NewCoordinator(storer, refresher)

	done := make(chan struct{})
	go func() {
		defer close(done)
		token, err := coordinator.EnsureFreshToken(context.Background())
		assert.NoError(t, err)
		assert.Equal(t, "A2", token)
	}()

	// Second caller gives up while the flight is still blocked.
	time.Sleep(20 * time.Millisecond)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()
	_, err := coordinator.EnsureFreshToken(ctx)
	require.ErrorIs(t, err, context.DeadlineExceeded)

	// The flight finishes on its own and the rotated pair lands in the store.
	close(refresher.release)
	<-done
	assert.EqualValues(t, 1, refresher.calls.Load())
	stored := storer.current()
	require.NotNil(t, stored)
	assert.Equal(t, "R2", stored.RefreshToken)
}

func TestEnsureFreshToken_SequentialRefreshesUseRotatedToken(t *testing.T) {
	storer := seededStorer()
	var seen []string
	var mu sync.Mutex
	refresher := &rotatingRefresher{seen: &seen, mu: &mu}
	coordinator := auth.NewCoordinator(storer, refresher)

	token, err := coordinator.EnsureFreshToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "A2", token)

	token, err = coordinator.EnsureFreshToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "A3", token)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"R1", "R2"}, seen, "each refresh must submit the latest rotated token")
}

// rotatingRefresher mimics the backend's rotation: R1 -> {A2,R2}, R2 -> {A3,R3}.
type rotatingRefresher struct {
	mu   *sync.Mutex
	seen *[]string
}

func (r *rotatingRefresher) PerformTokenRefresh(ctx context.Context, refreshToken string) (string, string, error) {
	r.mu.Lock()
	*r.seen = append(*r.seen, refreshToken)
	r.mu.Unlock()
	switch refreshToken {
	case "R1":
		return "A2", "R2", nil
	case "R2":
		return "A3", "R3", nil
	}
	return "", "", errors.New("unknown refresh token")
}

func TestEnsureFreshToken_StoreReadErrorPropagates(t *testing.T) {
	storer := &memStorer{getErr: errors.New("disk gone")}
	coordinator := auth.NewCoordinator(storer, &blockingRefresher{})

	_, err := coordinator.EnsureFreshToken(context.Background())
	require.Error(t, err)
	assert.NotErrorIs(t, err, auth.ErrRefreshFailed)
}
