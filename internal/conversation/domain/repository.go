package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	FindByTelegramID(ctx context.Context, db *gorm.DB, telegramID int64) (*Conversation, error)
	// Upsert fully replaces the messages array for the user, creating
	// the row when absent.
	Upsert(ctx context.Context, db *gorm.DB, conv *Conversation) error
	DeleteByTelegramID(ctx context.Context, db *gorm.DB, telegramID int64) error
}
