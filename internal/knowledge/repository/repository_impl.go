package repository

import (
	"context"
	"math"
	"sort"

	"github.com/amir-akbari361/khuchi/internal/knowledge/domain"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, chunk *domain.KnowledgeChunk) error {
	return db.WithContext(ctx).Create(chunk).Error
}

func (r *repo) Search(ctx context.Context, db *gorm.DB, query []float32, threshold float64, count int) ([]domain.SearchResult, error) {
	if db.Dialector.Name() == "postgres" {
		return r.searchPgvector(ctx, db, query, threshold, count)
	}
	return r.searchScan(ctx, db, query, threshold, count)
}

// searchPgvector delegates to the match_knowledge stored function so the
// ivfflat index is used and results match what the deployed bot sees.
func (r *repo) searchPgvector(ctx context.Context, db *gorm.DB, query []float32, threshold float64, count int) ([]domain.SearchResult, error) {
	var results []domain.SearchResult
	err := db.WithContext(ctx).Raw(
		`SELECT id, content, metadata, similarity
		 FROM match_knowledge(?, ?, ?)`,
		pgvector.NewVector(query),
		threshold,
		count,
	).Scan(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

// searchScan is the exact brute-force fallback for dialects without
// pgvector. Same contract, no approximate index.
func (r *repo) searchScan(ctx context.Context, db *gorm.DB, query []float32, threshold float64, count int) ([]domain.SearchResult, error) {
	var chunks []*domain.KnowledgeChunk
	if err := db.WithContext(ctx).Find(&chunks).Error; err != nil {
		return nil, err
	}

	results := make([]domain.SearchResult, 0, len(chunks))
	for _, chunk := range chunks {
		sim := cosineSimilarity(query, chunk.Embedding.Slice())
		if sim <= threshold {
			continue
		}
		results = append(results, domain.SearchResult{
			ID:         chunk.ID,
			Content:    chunk.Content,
			Metadata:   chunk.Metadata,
			Similarity: sim,
		})
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].Similarity > results[j].Similarity
	})
	if count > 0 && len(results) > count {
		results = results[:count]
	}
	return results, nil
}

func (r *repo) DeleteAll(ctx context.Context, db *gorm.DB) error {
	return db.WithContext(ctx).Exec(`DELETE FROM knowledge_embeddings`).Error
}

func (r *repo) Count(ctx context.Context, db *gorm.DB) (int64, error) {
	var count int64
	err := db.WithContext(ctx).Model(&domain.KnowledgeChunk{}).Count(&count).Error
	return count, err
}

func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
