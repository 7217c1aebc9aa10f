package auth

import (
	"context"

	"github.com/bfflix/bfflix/db"
)

// TokenStorer defines the contract for any component that can store, retrieve,
// and discard the credential pair.
type TokenStorer interface {
	GetTokenRecord() (*db.Token, error)
	UpsertTokenRecord(token *db.Token) error
	ClearTokenRecord() error
}

// TokenRefresher defines the contract for any component that can exchange a
// refresh token for a new credential pair at the backend.
type TokenRefresher interface {
	PerformTokenRefresh(ctx context.Context, refreshToken string) (accessToken string, newRefreshToken string, err error)
}
