package service

import (
	"context"
	"time"

	"github.com/amir-akbari361/khuchi/internal/clock"
	"github.com/amir-akbari361/khuchi/internal/usagelog/domain"
	pkgdb "github.com/amir-akbari361/khuchi/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ServiceParam struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	Clock clock.Clock
	Repo  domain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	clock clock.Clock
	repo  domain.Repository
}

func NewService(p ServiceParam) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("usagelog.service"),
		clock: p.Clock,
		repo:  p.Repo,
	}
}

func (s *Service) Record(ctx context.Context, telegramID int64, messageText *string) (*domain.UsageLog, error) {
	entry := &domain.UsageLog{
		TelegramID:  telegramID,
		MessageText: messageText,
		CreatedAt:   s.clock.Now(),
	}
	if err := s.repo.Insert(ctx, s.db, entry); err != nil {
		return nil, pkgdb.Translate(err)
	}
	return entry, nil
}

func (s *Service) CountToday(ctx context.Context, telegramID int64) (int64, error) {
	count, err := s.repo.CountSince(ctx, s.db, telegramID, startOfDay(s.clock.Now()))
	if err != nil {
		return 0, pkgdb.Translate(err)
	}
	return count, nil
}

func (s *Service) PurgeOlderThan(ctx context.Context, days int) (int64, error) {
	if days <= 0 {
		days = 7
	}
	cutoff := s.clock.Now().Add(-time.Duration(days) * 24 * time.Hour)
	removed, err := s.repo.DeleteOlderThan(ctx, s.db, cutoff)
	if err != nil {
		return 0, pkgdb.Translate(err)
	}
	if removed > 0 {
		s.log.Info("purged stale usage logs",
			zap.Int64("rows", removed),
			zap.Time("cutoff", cutoff),
		)
	}
	return removed, nil
}

// startOfDay returns midnight of the calendar day containing t, in t's
// own location. The quota window follows server time.
func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
