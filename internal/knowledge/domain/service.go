package domain

import (
	"context"
)

type SearchRequest struct {
	Embedding []float32 `json:"embedding"`
	// Threshold defaults to DefaultMatchThreshold when zero.
	Threshold float64 `json:"threshold"`
	// Limit defaults to DefaultMatchCount when zero.
	Limit int `json:"limit"`
}

type InsertChunkRequest struct {
	Content   string         `json:"content"`
	Embedding []float32      `json:"embedding"`
	Metadata  map[string]any `json:"metadata"`
}

type Service interface {
	// Insert stores one chunk. Used by offline ingestion only.
	Insert(ctx context.Context, req InsertChunkRequest) (int64, error)
	// Search runs the similarity lookup. Callers must treat an empty
	// result as "no relevant context", not a failure.
	Search(ctx context.Context, req SearchRequest) ([]SearchResult, error)
	// DeleteAll empties the store ahead of a re-ingestion run.
	DeleteAll(ctx context.Context) error
	Count(ctx context.Context) (int64, error)
}
