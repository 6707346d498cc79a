// Package domain contains persistence models for the per-user
// conversation buffer.
package domain

import (
	"time"

	"gorm.io/datatypes"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Turn is one entry in a user's dialogue history. The storage column is
// schema-free JSON; this shape is enforced at the service boundary.
type Turn struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// Conversation holds the recent dialogue turns for one user as a JSON
// array. At most one row exists per telegram_id; writers overwrite the
// whole array.
type Conversation struct {
	ID         int64          `gorm:"primaryKey" json:"id"`
	TelegramID int64          `gorm:"column:telegram_id;uniqueIndex:idx_conversations_telegram_id;not null" json:"telegram_id"`
	Messages   datatypes.JSON `gorm:"type:jsonb;not null;default:'[]'" json:"messages"`
	UpdatedAt  time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Conversation) TableName() string { return "conversations" }
