// Package domain contains persistence models for registered bot users.
package domain

import (
	"time"
)

// User maps a Telegram account to a university student code.
type User struct {
	ID          int64     `gorm:"primaryKey" json:"id"`
	TelegramID  int64     `gorm:"column:telegram_id;uniqueIndex:idx_users_telegram_id;not null" json:"telegram_id"`
	Username    *string   `gorm:"type:text" json:"username,omitempty"`
	FirstName   *string   `gorm:"type:text" json:"first_name,omitempty"`
	StudentCode string    `gorm:"type:text;not null;index:idx_users_student_code" json:"student_code"`
	CreatedAt   time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (User) TableName() string { return "users" }
