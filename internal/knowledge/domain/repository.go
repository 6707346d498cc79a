package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, chunk *KnowledgeChunk) error
	// Search returns chunks with similarity strictly above the threshold,
	// best match first, at most count rows. An empty store yields an
	// empty slice.
	Search(ctx context.Context, db *gorm.DB, query []float32, threshold float64, count int) ([]SearchResult, error)
	DeleteAll(ctx context.Context, db *gorm.DB) error
	Count(ctx context.Context, db *gorm.DB) (int64, error)
}
