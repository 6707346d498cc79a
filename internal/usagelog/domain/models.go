// Package domain contains persistence models for the append-only usage
// ledger backing the daily message quota.
package domain

import (
	"time"
)

// UsageLog is one admitted inbound message. Rows are insert-only; the
// daily quota is derived by counting rows in the current day window.
// telegram_id is deliberately not a foreign key to users.
type UsageLog struct {
	ID          int64     `gorm:"primaryKey" json:"id"`
	TelegramID  int64     `gorm:"column:telegram_id;not null;index:idx_usage_logs_telegram_created,priority:1" json:"telegram_id"`
	MessageText *string   `gorm:"type:text" json:"message_text,omitempty"`
	CreatedAt   time.Time `gorm:"not null;default:CURRENT_TIMESTAMP;index:idx_usage_logs_telegram_created,priority:2,sort:desc" json:"created_at"`
}

// TableName sets the database table name.
func (UsageLog) TableName() string { return "usage_logs" }
