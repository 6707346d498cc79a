// Package domain contains persistence models for the knowledge base
// vector store.
package domain

import (
	"time"

	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"
)

// EmbeddingDim is the fixed dimensionality of stored vectors
// (text-embedding-3-small). Vectors of any other length are rejected.
const EmbeddingDim = 1536

const (
	DefaultMatchThreshold = 0.5
	DefaultMatchCount     = 5
)

// KnowledgeChunk is one unit of ingested knowledge-base text with its
// embedding. Rows are written by offline ingestion and read-only for the
// retrieval path.
type KnowledgeChunk struct {
	ID        int64             `gorm:"primaryKey" json:"id"`
	Content   string            `gorm:"type:text;not null" json:"content"`
	Embedding pgvector.Vector   `gorm:"type:vector(1536)" json:"-"`
	Metadata  datatypes.JSONMap `gorm:"type:jsonb;default:'{}'" json:"metadata,omitempty"`
	CreatedAt time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName sets the database table name.
func (KnowledgeChunk) TableName() string { return "knowledge_embeddings" }

// SearchResult is one retrieval hit. Similarity is 1 - cosine distance,
// so identical vectors score 1.0.
type SearchResult struct {
	ID         int64             `json:"id"`
	Content    string            `json:"content"`
	Metadata   datatypes.JSONMap `json:"metadata"`
	Similarity float64           `json:"similarity"`
}
