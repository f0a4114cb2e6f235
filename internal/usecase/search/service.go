// Package search runs the retrieval and ranking pipeline:
// encode -> retrieve -> filter -> score -> select. The stages are linear
// with no retries; any collaborator failure aborts the call and surfaces
// its error kind to the caller without partial results.
package search

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/forkful-labs/recipedex/internal/domain"
	"github.com/forkful-labs/recipedex/internal/domain/search/filter"
	"github.com/forkful-labs/recipedex/internal/domain/search/preference"
	"github.com/forkful-labs/recipedex/internal/domain/search/request"
	"github.com/forkful-labs/recipedex/internal/domain/search/result"
	"github.com/forkful-labs/recipedex/internal/metrics"
)

// parallelThreshold is the candidate count below which ranking stays on
// the calling goroutine; pool dispatch overhead dominates under it.
const parallelThreshold = 32

// Service coordinates the search pipeline.
type Service struct {
	retriever Retriever
	recipes   RecipeReader
	embed     Embedder
	pool      *ants.Pool
}

// New creates a search service.
func New(retriever Retriever, recipes RecipeReader, embed Embedder) *Service {
	return &Service{retriever: retriever, recipes: recipes, embed: embed}
}

// WithPool attaches a worker pool for parallel candidate ranking.
// Filter evaluation and preference scoring are pure per-candidate
// functions, so they fan out with no shared mutable state and merge at
// the selection barrier.
func (s *Service) WithPool(size int) (*Service, error) {
	pool, err := ants.NewPool(size)
	if err != nil {
		return nil, fmt.Errorf("create ranking pool: %w", err)
	}
	s.pool = pool
	return s, nil
}

// Close releases the ranking pool.
func (s *Service) Close() {
	if s.pool != nil {
		s.pool.Release()
	}
}

// Search runs the full pipeline for a validated request.
func (s *Service) Search(ctx context.Context, req *request.Request) ([]result.ScoredRecipe, error) {
	start := time.Now()
	embResult, err := s.embed.Embed(ctx, req.Query())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrEncodingFailure, err)
	}
	metrics.SearchStageDuration.WithLabelValues("encode").Observe(time.Since(start).Seconds())

	return s.run(ctx, embResult.Embedding, req.Filters(), req.Preferences(),
		req.TopK(), req.Limit(), req.Threshold(), "")
}

// Similar finds recipes close to a stored one, using its stored vector as
// the query vector. The anchor recipe is excluded from the results.
func (s *Service) Similar(ctx context.Context, id string, limit int) ([]result.ScoredRecipe, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("%w: limit must be positive, got %d",
			domain.ErrInvalidArgument, limit)
	}
	if limit > request.MaxLimit {
		limit = request.MaxLimit
	}

	rec, err := s.recipes.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get recipe %s: %w", id, err)
	}

	// One extra candidate covers the anchor itself ranking first.
	return s.run(ctx, rec.Vector(), filter.Expression{}, nil,
		limit+1, limit, request.DefaultThreshold, id)
}

// run executes retrieve -> filter -> score -> select.
func (s *Service) run(
	ctx context.Context,
	queryVector []float32,
	filters filter.Expression,
	prefs []preference.Preference,
	topK, limit int,
	threshold float64,
	excludeID string,
) ([]result.ScoredRecipe, error) {
	start := time.Now()
	candidates, err := s.retriever.Retrieve(ctx, queryVector, topK, threshold)
	if err != nil {
		return nil, fmt.Errorf("retrieve candidates: %w", err)
	}
	metrics.SearchStageDuration.WithLabelValues("retrieve").Observe(time.Since(start).Seconds())
	metrics.SearchCandidatesTotal.WithLabelValues("retrieved").Add(float64(len(candidates)))

	start = time.Now()
	ranked := s.rank(candidates, filters, prefs, excludeID)
	metrics.SearchStageDuration.WithLabelValues("rank").Observe(time.Since(start).Seconds())
	metrics.SearchCandidatesTotal.WithLabelValues("filtered_out").
		Add(float64(len(candidates) - len(ranked)))

	selected := Select(ranked, limit)
	metrics.SearchCandidatesTotal.WithLabelValues("returned").Add(float64(len(selected)))
	return selected, nil
}

// rank applies hard filters and preference scoring per candidate,
// preserving candidate order. Each slot is written by exactly one
// goroutine; the wait is the synchronization barrier before selection.
func (s *Service) rank(
	candidates []result.ScoredRecipe,
	filters filter.Expression,
	prefs []preference.Preference,
	excludeID string,
) []result.ScoredRecipe {
	type slot struct {
		res  result.ScoredRecipe
		keep bool
	}
	slots := make([]slot, len(candidates))

	eval := func(i int) {
		c := candidates[i]
		if c.ID() == excludeID {
			return
		}
		if !filters.Matches(c.Attributes()) {
			return
		}
		score := preference.Adjust(c.Attributes(), c.Similarity(), prefs)
		slots[i] = slot{res: c.WithScore(score), keep: true}
	}

	if s.pool == nil || len(candidates) < parallelThreshold {
		for i := range candidates {
			eval(i)
		}
	} else {
		var wg sync.WaitGroup
		for i := range candidates {
			wg.Add(1)
			idx := i
			if err := s.pool.Submit(func() {
				defer wg.Done()
				eval(idx)
			}); err != nil {
				// Pool saturated or released: fall back inline.
				eval(idx)
				wg.Done()
			}
		}
		wg.Wait()
	}

	kept := make([]result.ScoredRecipe, 0, len(candidates))
	for _, sl := range slots {
		if sl.keep {
			kept = append(kept, sl.res)
		}
	}
	return kept
}
