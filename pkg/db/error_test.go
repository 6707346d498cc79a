package db

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestTranslateNotFound(t *testing.T) {
	err := Translate(gorm.ErrRecordNotFound)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTranslateConstraintViolation(t *testing.T) {
	cases := []error{
		gorm.ErrDuplicatedKey,
		errors.New(`ERROR: duplicate key value violates unique constraint "idx_users_telegram_id" (SQLSTATE 23505)`),
		errors.New("UNIQUE constraint failed: users.telegram_id"),
		errors.New(`ERROR: null value in column "student_code" violates not-null constraint (SQLSTATE 23502)`),
		errors.New("NOT NULL constraint failed: users.student_code"),
	}
	for _, raw := range cases {
		assert.ErrorIs(t, Translate(raw), ErrConstraintViolation, "raw %v", raw)
	}
}

func TestTranslateUnavailable(t *testing.T) {
	cases := []error{
		driver.ErrBadConn,
		context.DeadlineExceeded,
		errors.New("dial tcp 127.0.0.1:5432: connect: connection refused"),
	}
	for _, raw := range cases {
		assert.ErrorIs(t, Translate(raw), ErrStorageUnavailable, "raw %v", raw)
	}
}

func TestTranslatePassthrough(t *testing.T) {
	assert.NoError(t, Translate(nil))

	raw := errors.New("syntax error near SELECT")
	assert.Equal(t, raw, Translate(raw))
}

func TestTranslateKeepsOriginalMessage(t *testing.T) {
	raw := errors.New("UNIQUE constraint failed: users.telegram_id")
	err := Translate(raw)
	assert.Contains(t, err.Error(), "users.telegram_id")
}

func TestTranslatedErrorsWrapCleanly(t *testing.T) {
	// Services add their own context on top; errors.Is must still match.
	err := fmt.Errorf("create user: %w", Translate(gorm.ErrRecordNotFound))
	assert.ErrorIs(t, err, ErrNotFound)
}
