package domain

import (
	"context"
)

type Service interface {
	// Record appends one event with the current timestamp. There is no
	// uniqueness constraint; concurrent records for the same user both
	// land.
	Record(ctx context.Context, telegramID int64, messageText *string) (*UsageLog, error)
	// CountToday returns the number of events for the user since the
	// start of the current calendar day (process time zone).
	CountToday(ctx context.Context, telegramID int64) (int64, error)
	// PurgeOlderThan deletes events older than the given number of days.
	// Idempotent; safe to run concurrently with inserts.
	PurgeOlderThan(ctx context.Context, days int) (int64, error)
}
