package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	conversationdomain "github.com/amir-akbari361/khuchi/internal/conversation/domain"
	usagelogdomain "github.com/amir-akbari361/khuchi/internal/usagelog/domain"
	"github.com/amir-akbari361/khuchi/internal/user/domain"
	pkgdb "github.com/amir-akbari361/khuchi/pkg/db"
	"github.com/amir-akbari361/khuchi/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ServiceParam struct {
	fx.In

	DB               *gorm.DB
	Log              *zap.Logger
	Repo             domain.Repository
	UsageRepo        usagelogdomain.Repository
	ConversationRepo conversationdomain.Repository
}

type Service struct {
	db       *gorm.DB
	log      *zap.Logger
	repo     domain.Repository
	usage    usagelogdomain.Repository
	convRepo conversationdomain.Repository
}

func NewService(p ServiceParam) domain.Service {
	return &Service{
		db:       p.DB,
		log:      p.Log.Named("user.service"),
		repo:     p.Repo,
		usage:    p.UsageRepo,
		convRepo: p.ConversationRepo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.UpsertUserRequest) (*domain.User, error) {
	user, err := buildUser(req)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Insert(ctx, s.db, user); err != nil {
		return nil, pkgdb.Translate(err)
	}
	s.log.Info("user created",
		zap.Int64("telegram_id", user.TelegramID),
		zap.String("student_code", user.StudentCode),
	)
	return user, nil
}

func (s *Service) Upsert(ctx context.Context, req domain.UpsertUserRequest) (*domain.User, error) {
	user, err := buildUser(req)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Upsert(ctx, s.db, user); err != nil {
		return nil, pkgdb.Translate(err)
	}
	// Re-read so the caller sees storage-assigned id and timestamps.
	return s.Get(ctx, req.TelegramID)
}

func (s *Service) Get(ctx context.Context, telegramID int64) (*domain.User, error) {
	user, err := s.repo.FindByTelegramID(ctx, s.db, telegramID)
	if err != nil {
		return nil, pkgdb.Translate(err)
	}
	if user == nil {
		return nil, fmt.Errorf("%w: user %d", pkgdb.ErrNotFound, telegramID)
	}
	return user, nil
}

func (s *Service) GetByStudentCode(ctx context.Context, studentCode string) (*domain.User, error) {
	user, err := s.repo.FindByStudentCode(ctx, s.db, studentCode)
	if err != nil {
		return nil, pkgdb.Translate(err)
	}
	if user == nil {
		return nil, fmt.Errorf("%w: student code %s", pkgdb.ErrNotFound, studentCode)
	}
	return user, nil
}

func (s *Service) List(ctx context.Context, req domain.ListUsersRequest) (domain.ListUsersResponse, error) {
	size := req.PageSize
	if size <= 0 {
		size = 10
	}
	req.PageSize = size

	users, err := s.repo.List(ctx, s.db, req.Pagination)
	if err != nil {
		return domain.ListUsersResponse{}, pkgdb.Translate(err)
	}

	pageInfo, users := pagination.BuildCursorPageInfo(users, size, func(u *domain.User) string {
		token, _ := pagination.EncodeCursor(pagination.Cursor{
			ID:        strconv.FormatInt(u.ID, 10),
			CreatedAt: u.CreatedAt.Format(time.RFC3339Nano),
		})
		return token
	})

	return domain.ListUsersResponse{
		PageInfo: *pageInfo,
		Users:    users,
	}, nil
}

func (s *Service) Delete(ctx context.Context, telegramID int64) error {
	if err := s.repo.Delete(ctx, s.db, telegramID); err != nil {
		return pkgdb.Translate(err)
	}
	return nil
}

func (s *Service) DeleteCascade(ctx context.Context, telegramID int64) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.Delete(ctx, tx, telegramID); err != nil {
			return err
		}
		if err := s.usage.DeleteByTelegramID(ctx, tx, telegramID); err != nil {
			return err
		}
		return s.convRepo.DeleteByTelegramID(ctx, tx, telegramID)
	})
	if err != nil {
		return pkgdb.Translate(err)
	}
	s.log.Info("user removed with dependent rows", zap.Int64("telegram_id", telegramID))
	return nil
}

func buildUser(req domain.UpsertUserRequest) (*domain.User, error) {
	if strings.TrimSpace(req.StudentCode) == "" {
		return nil, fmt.Errorf("%w: student_code is required", pkgdb.ErrConstraintViolation)
	}
	return &domain.User{
		TelegramID:  req.TelegramID,
		Username:    req.Username,
		FirstName:   req.FirstName,
		StudentCode: strings.TrimSpace(req.StudentCode),
	}, nil
}
