package db_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/bfflix/bfflix/db"
)

func setupTestDBForWatchlist(t *testing.T) *gorm.DB {
	dbObject, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, dbObject.AutoMigrate(&db.WatchlistEntry{}))
	return dbObject
}

func TestWatchlistRepository_PutAndList(t *testing.T) {
	repo := db.NewWatchlistRepository(setupTestDBForWatchlist(t))
	ctx := context.Background()

	require.NoError(t, repo.Put(ctx, db.WatchlistEntry{ID: 1, TitleID: "tt0078748", Title: "Alien", MediaType: "movie", Status: "watched", Rating: 5, AddedAt: "2026-08-01T10:00:00Z"}))
	require.NoError(t, repo.Put(ctx, db.WatchlistEntry{ID: 2, TitleID: "tt0903747", Title: "Breaking Bad", MediaType: "show", Status: "watching", AddedAt: "2026-08-10T10:00:00Z"}))

	entries, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "Breaking Bad", entries[0].Title, "newest entries list first")
}

func TestWatchlistRepository_PutUpdatesExistingEntry(t *testing.T) {
	repo := db.NewWatchlistRepository(setupTestDBForWatchlist(t))
	ctx := context.Background()

	require.NoError(t, repo.Put(ctx, db.WatchlistEntry{ID: 1, Title: "Alien", Status: "planned"}))
	require.NoError(t, repo.Put(ctx, db.WatchlistEntry{ID: 1, Title: "Alien", Status: "watched", Rating: 5}))

	entry, err := repo.GetByID(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, "watched", entry.Status)
	assert.Equal(t, 5, entry.Rating)
}

func TestWatchlistRepository_GetByIDReturnsNilWhenMissing(t *testing.T) {
	repo := db.NewWatchlistRepository(setupTestDBForWatchlist(t))

	entry, err := repo.GetByID(context.Background(), 99)
	require.NoError(t, err)
	assert.Nil(t, entry)
}

func TestWatchlistRepository_Clear(t *testing.T) {
	repo := db.NewWatchlistRepository(setupTestDBForWatchlist(t))
	ctx := context.Background()

	require.NoError(t, repo.Put(ctx, db.WatchlistEntry{ID: 1, Title: "Alien"}))
	require.NoError(t, repo.Clear(ctx))

	entries, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
