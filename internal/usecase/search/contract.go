package search

import (
	"context"

	"github.com/forkful-labs/recipedex/internal/domain"
	"github.com/forkful-labs/recipedex/internal/domain/search/result"
)

// Retriever returns candidate recipes by vector similarity.
type Retriever interface {
	Retrieve(
		ctx context.Context, queryVector []float32, topK int, threshold float64,
	) ([]result.ScoredRecipe, error)
}

// RecipeReader reads recipes for vector retrieval (used by Similar).
type RecipeReader interface {
	Get(ctx context.Context, id string) (domain.Recipe, error)
}

// Embedder vectorizes text into embeddings.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}
