package repository

import (
	"context"

	"github.com/amir-akbari361/khuchi/internal/conversation/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) FindByTelegramID(ctx context.Context, db *gorm.DB, telegramID int64) (*domain.Conversation, error) {
	var conv domain.Conversation
	err := db.WithContext(ctx).Raw(
		`SELECT id, telegram_id, messages, updated_at
		 FROM conversations WHERE telegram_id = ?`,
		telegramID,
	).Scan(&conv).Error
	if err != nil {
		return nil, err
	}
	if conv.ID == 0 {
		return nil, nil
	}
	return &conv, nil
}

func (r *repo) Upsert(ctx context.Context, db *gorm.DB, conv *domain.Conversation) error {
	return db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "telegram_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"messages",
			"updated_at",
		}),
	}).Create(conv).Error
}

func (r *repo) DeleteByTelegramID(ctx context.Context, db *gorm.DB, telegramID int64) error {
	return db.WithContext(ctx).Exec(
		`DELETE FROM conversations WHERE telegram_id = ?`,
		telegramID,
	).Error
}
