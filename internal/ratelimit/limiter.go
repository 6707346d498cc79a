package ratelimit

import (
	"context"

	"github.com/amir-akbari361/khuchi/internal/clock"
	"github.com/amir-akbari361/khuchi/internal/config"
	obsmetrics "github.com/amir-akbari361/khuchi/internal/observability/metrics"
	usagelogdomain "github.com/amir-akbari361/khuchi/internal/usagelog/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// maxStoredMessageRunes bounds the free-text audit copy kept per event.
const maxStoredMessageRunes = 500

// Result is the outcome of one admission check. A denied message is a
// normal outcome, not an error.
type Result struct {
	Allowed   bool
	Used      int
	Remaining int
	Limit     int
}

type LimiterParam struct {
	fx.In

	Log     *zap.Logger
	Clock   clock.Clock
	Limits  *config.LimitsHolder
	Usage   usagelogdomain.Service
	Counter *DailyCounter       `optional:"true"`
	Metrics *obsmetrics.Metrics `optional:"true"`
}

// Limiter enforces the per-user daily message quota. The append-only
// ledger stays the source of truth; the redis counter, when configured,
// only short-circuits the admission read.
type Limiter struct {
	log     *zap.Logger
	clock   clock.Clock
	limits  *config.LimitsHolder
	usage   usagelogdomain.Service
	counter *DailyCounter
	metrics *obsmetrics.Metrics
}

func NewLimiter(p LimiterParam) *Limiter {
	return &Limiter{
		log:     p.Log.Named("ratelimit"),
		clock:   p.Clock,
		limits:  p.Limits,
		usage:   p.Usage,
		counter: p.Counter,
		metrics: p.Metrics,
	}
}

// CheckAndLog admits or rejects one inbound message. Admitted messages
// are appended to the usage ledger with the text truncated for audit.
func (l *Limiter) CheckAndLog(ctx context.Context, telegramID int64, messageText string) (Result, error) {
	if l.metrics != nil {
		l.metrics.QuotaChecks.Inc()
	}

	limit := l.limits.Current().RateLimitPerDay
	used, err := l.usedToday(ctx, telegramID)
	if err != nil {
		return Result{}, err
	}

	if used >= limit {
		if l.metrics != nil {
			l.metrics.QuotaDenied.Inc()
		}
		l.log.Warn("daily quota exceeded",
			zap.Int64("telegram_id", telegramID),
			zap.Int("limit", limit),
		)
		return Result{Allowed: false, Used: used, Remaining: 0, Limit: limit}, nil
	}

	var stored *string
	if messageText != "" {
		text := truncateRunes(messageText, maxStoredMessageRunes)
		stored = &text
	}
	if _, err := l.usage.Record(ctx, telegramID, stored); err != nil {
		return Result{}, err
	}

	used++
	return Result{
		Allowed:   true,
		Used:      used,
		Remaining: remaining(limit, used),
		Limit:     limit,
	}, nil
}

// Status reports the current window without consuming quota.
func (l *Limiter) Status(ctx context.Context, telegramID int64) (Result, error) {
	limit := l.limits.Current().RateLimitPerDay
	count, err := l.usage.CountToday(ctx, telegramID)
	if err != nil {
		return Result{}, err
	}
	used := int(count)
	return Result{
		Allowed:   used < limit,
		Used:      used,
		Remaining: remaining(limit, used),
		Limit:     limit,
	}, nil
}

// usedToday prefers the redis window counter and falls back to the
// ledger aggregation when redis is absent or failing. The counter read
// includes the message being admitted, so convert back to "used so far".
func (l *Limiter) usedToday(ctx context.Context, telegramID int64) (int, error) {
	if l.counter != nil {
		count, err := l.counter.Incr(ctx, telegramID, l.clock.Now())
		if err == nil {
			return int(count) - 1, nil
		}
		l.log.Warn("quota counter unavailable, falling back to ledger", zap.Error(err))
	}

	count, err := l.usage.CountToday(ctx, telegramID)
	if err != nil {
		return 0, err
	}
	return int(count), nil
}

func remaining(limit, used int) int {
	if used >= limit {
		return 0
	}
	return limit - used
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
