package recipe

import (
	"context"
	"fmt"

	"github.com/forkful-labs/recipedex/internal/domain"
)

// Service handles recipe ingestion and lookup.
type Service struct {
	repo  Repository
	embed Embedder
}

// New creates a recipe service.
func New(repo Repository, embed Embedder) *Service {
	return &Service{repo: repo, embed: embed}
}

// Ingest embeds the recipe content and stores the recipe. Re-ingesting an
// existing id replaces it. Returns true if the recipe was created.
func (s *Service) Ingest(ctx context.Context, rec domain.Recipe) (bool, error) {
	embResult, err := s.embed.Embed(ctx, rec.Content())
	if err != nil {
		return false, fmt.Errorf("%w: %v", domain.ErrEncodingFailure, err)
	}

	created, err := s.repo.Upsert(ctx, rec.WithVector(embResult.Embedding))
	if err != nil {
		return false, fmt.Errorf("store recipe %s: %w", rec.ID(), err)
	}
	return created, nil
}

// Get returns a recipe by id.
func (s *Service) Get(ctx context.Context, id string) (domain.Recipe, error) {
	if id == "" {
		return domain.Recipe{}, fmt.Errorf("%w: recipe id is required", domain.ErrInvalidArgument)
	}
	rec, err := s.repo.Get(ctx, id)
	if err != nil {
		return domain.Recipe{}, fmt.Errorf("get recipe %s: %w", id, err)
	}
	return rec, nil
}

// Delete removes a recipe by id.
func (s *Service) Delete(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("%w: recipe id is required", domain.ErrInvalidArgument)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete recipe %s: %w", id, err)
	}
	return nil
}
