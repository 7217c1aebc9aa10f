package db

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// WatchlistEntry is a locally cached copy of one remote watchlist item,
// used for offline listing in the CLI.
type WatchlistEntry struct {
	ID        int64  `json:"id" gorm:"primaryKey"`
	TitleID   string `json:"title_id"`
	Title     string `json:"title"`
	MediaType string `json:"media_type"` // "movie" or "show"
	Status    string `json:"status"`     // "planned", "watching", "watched"
	Rating    int    `json:"rating"`
	AddedAt   string `json:"added_at"`
}

// WatchlistRepository defines decoupled operations for the local watchlist cache.
type WatchlistRepository interface {
	Put(ctx context.Context, e WatchlistEntry) error
	GetByID(ctx context.Context, id int64) (*WatchlistEntry, error)
	List(ctx context.Context) ([]WatchlistEntry, error)
	Clear(ctx context.Context) error
}

// gormWatchlistRepo is a GORM-backed implementation of WatchlistRepository.
// Use constructor NewWatchlistRepository to obtain an instance.
type gormWatchlistRepo struct{ db *gorm.DB }

// NewWatchlistRepository creates a WatchlistRepository. Accepts *gorm.DB to avoid global access.
func NewWatchlistRepository(db *gorm.DB) WatchlistRepository { return &gormWatchlistRepo{db: db} }

func (r *gormWatchlistRepo) Put(ctx context.Context, e WatchlistEntry) error {
	if r.db == nil {
		return fmt.Errorf("repository not initialized")
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(&e).Error
}

func (r *gormWatchlistRepo) GetByID(ctx context.Context, id int64) (*WatchlistEntry, error) {
	if r.db == nil {
		return nil, fmt.Errorf("repository not initialized")
	}
	var entry WatchlistEntry
	err := r.db.WithContext(ctx).First(&entry, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *gormWatchlistRepo) List(ctx context.Context) ([]WatchlistEntry, error) {
	if r.db == nil {
		return nil, fmt.Errorf("repository not initialized")
	}
	var entries []WatchlistEntry
	if err := r.db.WithContext(ctx).Order("added_at desc").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *gormWatchlistRepo) Clear(ctx context.Context) error {
	if r.db == nil {
		return fmt.Errorf("repository not initialized")
	}
	return r.db.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}).Unscoped().Delete(&WatchlistEntry{}).Error
}
