package repository

import (
	"context"
	"time"

	"github.com/amir-akbari361/khuchi/internal/usagelog/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, log *domain.UsageLog) error {
	return db.WithContext(ctx).Create(log).Error
}

func (r *repo) CountSince(ctx context.Context, db *gorm.DB, telegramID int64, since time.Time) (int64, error) {
	var count int64
	err := db.WithContext(ctx).
		Model(&domain.UsageLog{}).
		Where("telegram_id = ? AND created_at >= ?", telegramID, since).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *repo) DeleteOlderThan(ctx context.Context, db *gorm.DB, cutoff time.Time) (int64, error) {
	res := db.WithContext(ctx).Exec(
		`DELETE FROM usage_logs WHERE created_at < ?`,
		cutoff,
	)
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

func (r *repo) DeleteByTelegramID(ctx context.Context, db *gorm.DB, telegramID int64) error {
	return db.WithContext(ctx).Exec(
		`DELETE FROM usage_logs WHERE telegram_id = ?`,
		telegramID,
	).Error
}
