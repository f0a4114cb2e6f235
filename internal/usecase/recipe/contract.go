package recipe

import (
	"context"

	"github.com/forkful-labs/recipedex/internal/domain"
)

// Repository defines the storage contract for recipes.
type Repository interface {
	Upsert(ctx context.Context, rec domain.Recipe) (bool, error)
	Get(ctx context.Context, id string) (domain.Recipe, error)
	Delete(ctx context.Context, id string) error
}

// Embedder vectorizes recipe content at ingestion time.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}
