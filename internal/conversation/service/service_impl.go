package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/amir-akbari361/khuchi/internal/clock"
	"github.com/amir-akbari361/khuchi/internal/config"
	"github.com/amir-akbari361/khuchi/internal/conversation/domain"
	pkgdb "github.com/amir-akbari361/khuchi/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ServiceParam struct {
	fx.In

	DB     *gorm.DB
	Log    *zap.Logger
	Clock  clock.Clock
	Repo   domain.Repository
	Limits *config.LimitsHolder
}

type Service struct {
	db     *gorm.DB
	log    *zap.Logger
	clock  clock.Clock
	repo   domain.Repository
	limits *config.LimitsHolder
}

func NewService(p ServiceParam) domain.Service {
	return &Service{
		db:     p.DB,
		log:    p.Log.Named("conversation.service"),
		clock:  p.Clock,
		repo:   p.Repo,
		limits: p.Limits,
	}
}

func (s *Service) Get(ctx context.Context, telegramID int64) ([]domain.Turn, error) {
	conv, err := s.repo.FindByTelegramID(ctx, s.db, telegramID)
	if err != nil {
		return nil, pkgdb.Translate(err)
	}
	if conv == nil {
		return []domain.Turn{}, nil
	}

	var turns []domain.Turn
	if len(conv.Messages) > 0 {
		if err := json.Unmarshal(conv.Messages, &turns); err != nil {
			return nil, fmt.Errorf("decode conversation %d: %w", telegramID, err)
		}
	}
	if turns == nil {
		turns = []domain.Turn{}
	}
	return turns, nil
}

func (s *Service) Replace(ctx context.Context, telegramID int64, turns []domain.Turn) error {
	if err := validateTurns(turns); err != nil {
		return err
	}
	if turns == nil {
		turns = []domain.Turn{}
	}

	raw, err := json.Marshal(turns)
	if err != nil {
		return fmt.Errorf("encode conversation %d: %w", telegramID, err)
	}

	conv := &domain.Conversation{
		TelegramID: telegramID,
		Messages:   raw,
		UpdatedAt:  s.clock.Now(),
	}
	if err := s.repo.Upsert(ctx, s.db, conv); err != nil {
		return pkgdb.Translate(err)
	}
	return nil
}

func (s *Service) Append(ctx context.Context, telegramID int64, role, content string) ([]domain.Turn, error) {
	turns, err := s.Get(ctx, telegramID)
	if err != nil {
		return nil, err
	}

	turns = append(turns, domain.Turn{
		Role:      role,
		Content:   content,
		Timestamp: s.clock.Now(),
	})

	// Keep one exchange per remembered prompt: user turn + assistant turn.
	window := s.limits.Current().ConversationMemorySize * 2
	if window > 0 && len(turns) > window {
		turns = turns[len(turns)-window:]
	}

	if err := s.Replace(ctx, telegramID, turns); err != nil {
		return nil, err
	}
	return turns, nil
}

func (s *Service) Clear(ctx context.Context, telegramID int64) error {
	if err := s.repo.DeleteByTelegramID(ctx, s.db, telegramID); err != nil {
		return pkgdb.Translate(err)
	}
	return nil
}

func validateTurns(turns []domain.Turn) error {
	for _, turn := range turns {
		switch turn.Role {
		case domain.RoleUser, domain.RoleAssistant:
		default:
			return fmt.Errorf("%w: %q", domain.ErrInvalidRole, turn.Role)
		}
		if strings.TrimSpace(turn.Content) == "" {
			return domain.ErrInvalidContent
		}
	}
	return nil
}
