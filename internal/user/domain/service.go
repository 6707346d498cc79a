package domain

import (
	"context"

	"github.com/amir-akbari361/khuchi/pkg/db/pagination"
)

type UpsertUserRequest struct {
	TelegramID  int64   `json:"telegram_id"`
	Username    *string `json:"username"`
	FirstName   *string `json:"first_name"`
	StudentCode string  `json:"student_code"`
}

type ListUsersRequest struct {
	pagination.Pagination
}

type ListUsersResponse struct {
	pagination.PageInfo
	Users []*User `json:"users"`
}

type Service interface {
	// Create inserts a new user and rejects duplicate telegram IDs.
	Create(ctx context.Context, req UpsertUserRequest) (*User, error)
	// Upsert inserts or overwrites the profile fields for an existing
	// telegram ID. updated_at advances on any change.
	Upsert(ctx context.Context, req UpsertUserRequest) (*User, error)
	Get(ctx context.Context, telegramID int64) (*User, error)
	GetByStudentCode(ctx context.Context, studentCode string) (*User, error)
	List(ctx context.Context, req ListUsersRequest) (ListUsersResponse, error)
	// Delete removes only the user row. Usage logs and the conversation
	// buffer are intentionally left behind; see DeleteCascade.
	Delete(ctx context.Context, telegramID int64) error
	// DeleteCascade removes the user together with its usage logs and
	// conversation buffer in one transaction. Opt-in; there is no
	// foreign-key cascade in the schema.
	DeleteCascade(ctx context.Context, telegramID int64) error
}
