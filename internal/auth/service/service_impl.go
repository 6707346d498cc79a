package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/amir-akbari361/khuchi/internal/auth/domain"
	userdomain "github.com/amir-akbari361/khuchi/internal/user/domain"
	pkgdb "github.com/amir-akbari361/khuchi/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Student codes are numeric university identifiers, e.g. 4022020030.
const (
	minStudentCodeLen = 5
	maxStudentCodeLen = 15
)

type ServiceParam struct {
	fx.In

	Log     *zap.Logger
	UserSvc userdomain.Service
}

type Service struct {
	log     *zap.Logger
	userSvc userdomain.Service
}

func NewService(p ServiceParam) domain.Service {
	return &Service{
		log:     p.Log.Named("auth.service"),
		userSvc: p.UserSvc,
	}
}

func (s *Service) Register(ctx context.Context, req domain.RegisterRequest) (*userdomain.User, error) {
	code := strings.TrimSpace(req.StudentCode)
	if err := validateStudentCode(code); err != nil {
		return nil, err
	}

	if _, err := s.userSvc.Get(ctx, req.TelegramID); err == nil {
		return nil, domain.ErrAlreadyRegistered
	} else if !errors.Is(err, pkgdb.ErrNotFound) {
		return nil, err
	}

	if existing, err := s.userSvc.GetByStudentCode(ctx, code); err == nil {
		if existing.TelegramID != req.TelegramID {
			return nil, domain.ErrStudentCodeTaken
		}
	} else if !errors.Is(err, pkgdb.ErrNotFound) {
		return nil, err
	}

	user, err := s.userSvc.Create(ctx, userdomain.UpsertUserRequest{
		TelegramID:  req.TelegramID,
		Username:    req.Username,
		FirstName:   req.FirstName,
		StudentCode: code,
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("user registered",
		zap.Int64("telegram_id", user.TelegramID),
		zap.String("student_code", user.StudentCode),
	)
	return user, nil
}

func (s *Service) IsAuthenticated(ctx context.Context, telegramID int64) (bool, error) {
	_, err := s.userSvc.Get(ctx, telegramID)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, pkgdb.ErrNotFound) {
		return false, nil
	}
	return false, err
}

func (s *Service) GetUser(ctx context.Context, telegramID int64) (*userdomain.User, error) {
	return s.userSvc.Get(ctx, telegramID)
}

func (s *Service) ParseLoginCommand(messageText string) (string, bool) {
	fields := strings.Fields(strings.TrimSpace(messageText))
	if len(fields) < 2 {
		return "", false
	}
	// Accept both "/login" and "/login@BotName".
	cmd := strings.SplitN(fields[0], "@", 2)[0]
	if cmd != "/login" {
		return "", false
	}
	return fields[1], true
}

func validateStudentCode(code string) error {
	if code == "" {
		return fmt.Errorf("%w: empty", domain.ErrInvalidStudentCode)
	}
	for _, r := range code {
		if r < '0' || r > '9' {
			return fmt.Errorf("%w: must be numeric", domain.ErrInvalidStudentCode)
		}
	}
	if len(code) < minStudentCodeLen {
		return fmt.Errorf("%w: too short", domain.ErrInvalidStudentCode)
	}
	if len(code) > maxStudentCodeLen {
		return fmt.Errorf("%w: too long", domain.ErrInvalidStudentCode)
	}
	return nil
}
