package client_test

import (
	"context"
	"sync"

	"github.com/bfflix/bfflix/db"
)

// memTokenStore is a concurrency-safe in-memory credential store. It
// satisfies both client.TokenStore and auth.TokenStorer so the same instance
// can back the pipeline and the coordinator in one test.
type memTokenStore struct {
	mu    sync.Mutex
	token *db.Token
}

func newMemTokenStore(access, refresh string) *memTokenStore {
	if access == "" && refresh == "" {
		return &memTokenStore{}
	}
	return &memTokenStore{token: &db.Token{AccessToken: access, RefreshToken: refresh}}
}

func (m *memTokenStore) Get(ctx context.Context) (*db.Token, error) {
	return m.GetTokenRecord()
}

func (m *memTokenStore) Upsert(ctx context.Context, token *db.Token) error {
	return m.UpsertTokenRecord(token)
}

func (m *memTokenStore) Clear(ctx context.Context) error {
	return m.ClearTokenRecord()
}

func (m *memTokenStore) GetTokenRecord() (*db.Token, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.token == nil {
		return nil, nil
	}
	copied := *m.token
	return &copied, nil
}

func (m *memTokenStore) UpsertTokenRecord(token *db.Token) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *token
	m.token = &copied
	return nil
}

func (m *memTokenStore) ClearTokenRecord() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = nil
	return nil
}

func (m *memTokenStore) current() *db.Token {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token
}

// stubRefresher is a canned AccessTokenRefresher for pipeline tests that do
// not need a real coordinator.
type stubRefresher struct {
	mu    sync.Mutex
	calls int
	token string
	err   error
}

func (s *stubRefresher) EnsureFreshToken(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.err != nil {
		return "", s.err
	}
	return s.token, nil
}

func (s *stubRefresher) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}
