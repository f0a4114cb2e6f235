// Package retriever implements the candidate retrieval stage: brute-force
// cosine similarity between a query vector and every stored recipe vector.
// The store is small enough that a linear pass beats maintaining a
// server-side index, and it keeps the pipeline agnostic to the backend.
package retriever

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/forkful-labs/recipedex/internal/domain"
	"github.com/forkful-labs/recipedex/internal/domain/search/result"
)

// RecipeSource lists stored recipes with their vectors (ISP).
type RecipeSource interface {
	All(ctx context.Context) ([]domain.Recipe, error)
}

// Retriever ranks stored recipes by vector similarity.
type Retriever struct {
	source RecipeSource
	logger *zap.Logger
}

// New creates a retriever over a recipe source.
func New(source RecipeSource, logger *zap.Logger) *Retriever {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Retriever{source: source, logger: logger}
}

// Retrieve returns at most topK recipes whose similarity to the query
// vector is >= threshold, sorted descending by similarity. If fewer than
// topK clear the threshold only those are returned, never padded.
//
// topK <= 0 is rejected before the store is touched. Store failures map
// to the retryable retrieval error kinds: a deadline hit becomes
// ErrRetrievalTimeout, anything else ErrRetrievalUnavailable.
func (r *Retriever) Retrieve(
	ctx context.Context, queryVector []float32, topK int, threshold float64,
) ([]result.ScoredRecipe, error) {
	if topK <= 0 {
		return nil, fmt.Errorf("%w: top_k must be positive, got %d",
			domain.ErrInvalidArgument, topK)
	}
	if len(queryVector) == 0 {
		return nil, fmt.Errorf("%w: query vector is empty", domain.ErrInvalidArgument)
	}

	recipes, err := r.source.All(ctx)
	if err != nil {
		return nil, classify(err)
	}

	hits := make([]result.ScoredRecipe, 0, len(recipes))
	for _, rec := range recipes {
		sim, err := domain.CosineSimilarity(queryVector, rec.Vector())
		if err != nil {
			// A stored vector of the wrong dimension is a stale ingestion
			// artifact, not a query failure: skip it.
			r.logger.Warn("skipping recipe with mismatched vector",
				zap.String("id", rec.ID()), zap.Error(err))
			continue
		}
		if sim < threshold {
			continue
		}
		hits = append(hits, result.New(rec.ID(), sim, sim, rec.Content(), rec.Attributes()))
	}

	// Stable keeps ingestion order for equal similarities, which makes
	// retrieval output deterministic for identical inputs.
	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Similarity() > hits[j].Similarity()
	})

	if len(hits) > topK {
		hits = hits[:topK]
	}
	return hits, nil
}

func classify(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", domain.ErrRetrievalTimeout, err)
	}
	return fmt.Errorf("%w: %v", domain.ErrRetrievalUnavailable, err)
}
