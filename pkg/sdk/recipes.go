package recipedex

import (
	"context"
	"fmt"
	"time"

	"github.com/forkful-labs/recipedex/internal/domain"
)

// RecipeService manages stored recipes.
type RecipeService struct {
	svc recipeUseCase
	obs *observer
}

// Ingest embeds the recipe content and stores it. Re-ingesting an
// existing id replaces it. Returns true if the recipe was created.
func (s *RecipeService) Ingest(ctx context.Context, rec Recipe) (created bool, err error) {
	start := time.Now()
	defer func() { s.obs.observe("ingest", start, err) }()

	attrs, err := attrsToDomain(rec.Attributes)
	if err != nil {
		return false, err
	}

	domRec, err := domain.NewRecipe(rec.ID, rec.Content, nil, attrs)
	if err != nil {
		return false, fmt.Errorf("build recipe: %w", err)
	}

	created, err = s.svc.Ingest(ctx, domRec)
	if err != nil {
		return false, fmt.Errorf("ingest recipe: %w", err)
	}
	return created, nil
}

// Get returns a recipe by id.
func (s *RecipeService) Get(ctx context.Context, id string) (rec Recipe, err error) {
	start := time.Now()
	defer func() { s.obs.observe("get", start, err) }()

	domRec, err := s.svc.Get(ctx, id)
	if err != nil {
		return Recipe{}, fmt.Errorf("get recipe: %w", err)
	}
	return recipeFromDomain(domRec), nil
}

// Delete removes a recipe by id.
func (s *RecipeService) Delete(ctx context.Context, id string) (err error) {
	start := time.Now()
	defer func() { s.obs.observe("delete", start, err) }()

	if err = s.svc.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete recipe: %w", err)
	}
	return nil
}
