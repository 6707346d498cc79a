package ratelimit

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/amir-akbari361/khuchi/internal/clock"
	"github.com/amir-akbari361/khuchi/internal/config"
	usagelogdomain "github.com/amir-akbari361/khuchi/internal/usagelog/domain"
	usagelogrepository "github.com/amir-akbari361/khuchi/internal/usagelog/repository"
	usagelogservice "github.com/amir-akbari361/khuchi/internal/usagelog/service"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestLimiter(t *testing.T, limit int) (*Limiter, *clock.FakeClock, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&usagelogdomain.UsageLog{}))

	clk := clock.NewFakeClock(time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC))
	usageSvc := usagelogservice.NewService(usagelogservice.ServiceParam{
		DB:    db,
		Log:   zap.NewNop(),
		Clock: clk,
		Repo:  usagelogrepository.Provide(),
	})

	limiter := NewLimiter(LimiterParam{
		Log:    zap.NewNop(),
		Clock:  clk,
		Limits: config.NewStaticLimits(config.Limits{RateLimitPerDay: limit}),
		Usage:  usageSvc,
	})
	return limiter, clk, db
}

func TestQuotaCeiling(t *testing.T) {
	limiter, _, _ := newTestLimiter(t, 3)
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		res, err := limiter.CheckAndLog(ctx, 42, "question")
		require.NoError(t, err)
		assert.True(t, res.Allowed)
		assert.Equal(t, i, res.Used)
		assert.Equal(t, 3-i, res.Remaining)
		assert.Equal(t, 3, res.Limit)
	}

	// Denial is a normal outcome, not an error.
	res, err := limiter.CheckAndLog(ctx, 42, "one too many")
	require.NoError(t, err)
	assert.False(t, res.Allowed)
	assert.Equal(t, 3, res.Used)
	assert.Zero(t, res.Remaining)
}

func TestDeniedMessageNotLogged(t *testing.T) {
	limiter, _, _ := newTestLimiter(t, 1)
	ctx := context.Background()

	_, err := limiter.CheckAndLog(ctx, 7, "allowed")
	require.NoError(t, err)
	res, err := limiter.CheckAndLog(ctx, 7, "denied")
	require.NoError(t, err)
	require.False(t, res.Allowed)

	status, err := limiter.Status(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, 1, status.Used)
}

func TestQuotaResetsNextDay(t *testing.T) {
	limiter, clk, _ := newTestLimiter(t, 1)
	ctx := context.Background()

	res, err := limiter.CheckAndLog(ctx, 8, "today")
	require.NoError(t, err)
	require.True(t, res.Allowed)
	res, err = limiter.CheckAndLog(ctx, 8, "blocked")
	require.NoError(t, err)
	require.False(t, res.Allowed)

	clk.Advance(24 * time.Hour)
	res, err = limiter.CheckAndLog(ctx, 8, "tomorrow")
	require.NoError(t, err)
	assert.True(t, res.Allowed)
	assert.Equal(t, 1, res.Used)
}

func TestStatusDoesNotConsume(t *testing.T) {
	limiter, _, _ := newTestLimiter(t, 5)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		status, err := limiter.Status(ctx, 9)
		require.NoError(t, err)
		assert.True(t, status.Allowed)
		assert.Zero(t, status.Used)
		assert.Equal(t, 5, status.Remaining)
	}
}

func TestStoredMessageTruncated(t *testing.T) {
	limiter, _, db := newTestLimiter(t, 5)
	ctx := context.Background()

	long := strings.Repeat("س", 600)
	_, err := limiter.CheckAndLog(ctx, 10, long)
	require.NoError(t, err)

	var entry usagelogdomain.UsageLog
	require.NoError(t, db.Where("telegram_id = ?", 10).First(&entry).Error)
	require.NotNil(t, entry.MessageText)
	assert.Equal(t, 500, len([]rune(*entry.MessageText)))
	assert.True(t, strings.HasPrefix(long, *entry.MessageText))
}

func TestEmptyMessageStoredAsNull(t *testing.T) {
	limiter, _, db := newTestLimiter(t, 5)
	ctx := context.Background()

	_, err := limiter.CheckAndLog(ctx, 11, "")
	require.NoError(t, err)

	var entry usagelogdomain.UsageLog
	require.NoError(t, db.Where("telegram_id = ?", 11).First(&entry).Error)
	assert.Nil(t, entry.MessageText)
}

func TestTruncateRunes(t *testing.T) {
	assert.Equal(t, "abc", truncateRunes("abc", 5))
	assert.Equal(t, "ab", truncateRunes("abc", 2))
	assert.Equal(t, "سلا", truncateRunes("سلام", 3))
}
