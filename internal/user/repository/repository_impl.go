package repository

import (
	"context"
	"strconv"
	"time"

	"github.com/amir-akbari361/khuchi/internal/user/domain"
	"github.com/amir-akbari361/khuchi/pkg/db/pagination"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, user *domain.User) error {
	return db.WithContext(ctx).Create(user).Error
}

func (r *repo) Upsert(ctx context.Context, db *gorm.DB, user *domain.User) error {
	return db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "telegram_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"username",
			"first_name",
			"student_code",
			"updated_at",
		}),
	}).Create(user).Error
}

func (r *repo) FindByTelegramID(ctx context.Context, db *gorm.DB, telegramID int64) (*domain.User, error) {
	var user domain.User
	err := db.WithContext(ctx).Raw(
		`SELECT id, telegram_id, username, first_name, student_code, created_at, updated_at
		 FROM users WHERE telegram_id = ?`,
		telegramID,
	).Scan(&user).Error
	if err != nil {
		return nil, err
	}
	if user.ID == 0 {
		return nil, nil
	}
	return &user, nil
}

func (r *repo) FindByStudentCode(ctx context.Context, db *gorm.DB, studentCode string) (*domain.User, error) {
	var user domain.User
	err := db.WithContext(ctx).Raw(
		`SELECT id, telegram_id, username, first_name, student_code, created_at, updated_at
		 FROM users WHERE student_code = ? LIMIT 1`,
		studentCode,
	).Scan(&user).Error
	if err != nil {
		return nil, err
	}
	if user.ID == 0 {
		return nil, nil
	}
	return &user, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, page pagination.Pagination) ([]*domain.User, error) {
	size := page.PageSize
	if size <= 0 {
		size = 10
	}

	stmt := db.WithContext(ctx).Model(&domain.User{})
	if page.PageToken != "" {
		cursor, err := pagination.DecodeCursor(page.PageToken)
		if err != nil {
			return nil, err
		}
		createdAt, err := time.Parse(time.RFC3339Nano, cursor.CreatedAt)
		if err != nil {
			return nil, err
		}
		id, err := strconv.ParseInt(cursor.ID, 10, 64)
		if err != nil {
			return nil, err
		}
		stmt = stmt.Where(
			"created_at < ? OR (created_at = ? AND id < ?)",
			createdAt, createdAt, id,
		)
	}

	var users []*domain.User
	err := stmt.
		Order("created_at desc, id desc").
		Limit(size + 1).
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, telegramID int64) error {
	return db.WithContext(ctx).Exec(
		`DELETE FROM users WHERE telegram_id = ?`,
		telegramID,
	).Error
}
