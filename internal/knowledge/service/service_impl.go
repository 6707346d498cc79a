package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/amir-akbari361/khuchi/internal/knowledge/domain"
	pkgdb "github.com/amir-akbari361/khuchi/pkg/db"
	"github.com/pgvector/pgvector-go"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ServiceParam struct {
	fx.In

	DB   *gorm.DB
	Log  *zap.Logger
	Repo domain.Repository
}

type Service struct {
	db   *gorm.DB
	log  *zap.Logger
	repo domain.Repository
}

func NewService(p ServiceParam) domain.Service {
	return &Service{
		db:   p.DB,
		log:  p.Log.Named("knowledge.service"),
		repo: p.Repo,
	}
}

func (s *Service) Insert(ctx context.Context, req domain.InsertChunkRequest) (int64, error) {
	if strings.TrimSpace(req.Content) == "" {
		return 0, fmt.Errorf("%w: content is required", pkgdb.ErrConstraintViolation)
	}
	if err := checkDimension(req.Embedding); err != nil {
		return 0, err
	}

	metadata := req.Metadata
	if metadata == nil {
		metadata = map[string]any{}
	}

	chunk := &domain.KnowledgeChunk{
		Content:   req.Content,
		Embedding: pgvector.NewVector(req.Embedding),
		Metadata:  metadata,
	}
	if err := s.repo.Insert(ctx, s.db, chunk); err != nil {
		return 0, pkgdb.Translate(err)
	}
	return chunk.ID, nil
}

func (s *Service) Search(ctx context.Context, req domain.SearchRequest) ([]domain.SearchResult, error) {
	if err := checkDimension(req.Embedding); err != nil {
		return nil, err
	}

	threshold := req.Threshold
	if threshold <= 0 {
		threshold = domain.DefaultMatchThreshold
	}
	limit := req.Limit
	if limit <= 0 {
		limit = domain.DefaultMatchCount
	}

	results, err := s.repo.Search(ctx, s.db, req.Embedding, threshold, limit)
	if err != nil {
		return nil, pkgdb.Translate(err)
	}
	s.log.Debug("knowledge search",
		zap.Float64("threshold", threshold),
		zap.Int("limit", limit),
		zap.Int("hits", len(results)),
	)
	return results, nil
}

func (s *Service) DeleteAll(ctx context.Context) error {
	if err := s.repo.DeleteAll(ctx, s.db); err != nil {
		return pkgdb.Translate(err)
	}
	s.log.Warn("knowledge base emptied for re-ingestion")
	return nil
}

func (s *Service) Count(ctx context.Context) (int64, error) {
	count, err := s.repo.Count(ctx, s.db)
	if err != nil {
		return 0, pkgdb.Translate(err)
	}
	return count, nil
}

func checkDimension(embedding []float32) error {
	if len(embedding) != domain.EmbeddingDim {
		return fmt.Errorf("%w: got %d, want %d",
			pkgdb.ErrDimensionMismatch, len(embedding), domain.EmbeddingDim)
	}
	return nil
}
