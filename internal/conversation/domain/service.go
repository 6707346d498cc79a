package domain

import (
	"context"
	"errors"
)

type Service interface {
	// Get returns the user's turns, oldest first. A missing buffer is an
	// empty slice, not an error.
	Get(ctx context.Context, telegramID int64) ([]Turn, error)
	// Replace overwrites the full buffer for the user. Two concurrent
	// replaces for the same user race; last write wins.
	Replace(ctx context.Context, telegramID int64, turns []Turn) error
	// Append reads the buffer, adds one turn, trims to the configured
	// memory window and writes the result back. Same race as Replace.
	Append(ctx context.Context, telegramID int64, role, content string) ([]Turn, error)
	Clear(ctx context.Context, telegramID int64) error
}

var (
	ErrInvalidRole    = errors.New("invalid_role")
	ErrInvalidContent = errors.New("invalid_content")
)
