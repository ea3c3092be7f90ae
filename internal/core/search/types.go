package search

import (
	"context"

	"recipe-search/internal/pkg/common"
)

// ScoredPoint is one nearest-neighbor hit from the vector store with
// its payload decoded.
type ScoredPoint struct {
	ID      string
	Score   float64
	Payload common.RawRecord
}

// Embedder turns a query string into a vector.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// VectorSearcher returns the nearest stored points for a vector, best
// score first.
type VectorSearcher interface {
	Search(ctx context.Context, vector []float32, limit int) ([]ScoredPoint, error)
}

// Response is the outcome of one search request.
type Response struct {
	Answer  string             `json:"answer"`
	Results []common.RecipeHit `json:"results"`
}
