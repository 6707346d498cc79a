package domain

import (
	"context"

	"github.com/amir-akbari361/khuchi/pkg/db/pagination"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, user *User) error
	Upsert(ctx context.Context, db *gorm.DB, user *User) error
	FindByTelegramID(ctx context.Context, db *gorm.DB, telegramID int64) (*User, error)
	FindByStudentCode(ctx context.Context, db *gorm.DB, studentCode string) (*User, error)
	List(ctx context.Context, db *gorm.DB, page pagination.Pagination) ([]*User, error)
	Delete(ctx context.Context, db *gorm.DB, telegramID int64) error
}
