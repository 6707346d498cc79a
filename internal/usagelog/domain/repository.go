package domain

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, log *UsageLog) error
	// CountSince counts events for the user recorded at or after the
	// given instant.
	CountSince(ctx context.Context, db *gorm.DB, telegramID int64, since time.Time) (int64, error)
	// DeleteOlderThan removes rows strictly older than the cutoff and
	// reports how many were removed. A row created exactly at the cutoff
	// is retained.
	DeleteOlderThan(ctx context.Context, db *gorm.DB, cutoff time.Time) (int64, error)
	DeleteByTelegramID(ctx context.Context, db *gorm.DB, telegramID int64) error
}
