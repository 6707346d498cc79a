// Package domain defines the registration contract built on top of the
// identity store.
package domain

import (
	"context"
	"errors"

	userdomain "github.com/amir-akbari361/khuchi/internal/user/domain"
)

type RegisterRequest struct {
	TelegramID  int64   `json:"telegram_id"`
	Username    *string `json:"username"`
	FirstName   *string `json:"first_name"`
	StudentCode string  `json:"student_code"`
}

type Service interface {
	// Register creates the identity row for a first /login. Rejects
	// telegram IDs that already have an account and student codes
	// already claimed by another account.
	Register(ctx context.Context, req RegisterRequest) (*userdomain.User, error)
	IsAuthenticated(ctx context.Context, telegramID int64) (bool, error)
	GetUser(ctx context.Context, telegramID int64) (*userdomain.User, error)
	// ParseLoginCommand extracts the student code from a "/login <code>"
	// message. ok is false when the message is not a login command or
	// carries no argument.
	ParseLoginCommand(messageText string) (studentCode string, ok bool)
}

var (
	ErrAlreadyRegistered  = errors.New("already_registered")
	ErrStudentCodeTaken   = errors.New("student_code_taken")
	ErrInvalidStudentCode = errors.New("invalid_student_code")
)
