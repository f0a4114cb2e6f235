package recipe

import (
	"context"
	"fmt"
	"strings"

	"github.com/forkful-labs/recipedex/internal/db"
	"github.com/forkful-labs/recipedex/internal/domain"
)

const keyPrefix = domain.KeyPrefix + "recipe:"

// store is the consumer interface for recipes (ISP).
type store interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	HGetAllMulti(ctx context.Context, keys []string) ([]map[string]string, error)
	Del(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	Scan(ctx context.Context, pattern string) ([]string, error)
}

var _ store = (db.Store)(nil)

// Repo stores recipes as Redis hashes.
type Repo struct {
	store store
}

// New creates a recipe repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// Upsert creates or replaces a recipe by id. Returns true if created.
func (r *Repo) Upsert(ctx context.Context, rec domain.Recipe) (bool, error) {
	key := recipeKey(rec.ID())

	exists, err := r.store.Exists(ctx, key)
	if err != nil {
		return false, fmt.Errorf("check exists %s: %w", key, err)
	}

	fields, err := buildFields(rec)
	if err != nil {
		return false, fmt.Errorf("encode recipe %s: %w", rec.ID(), err)
	}
	if err := r.store.HSet(ctx, key, fields); err != nil {
		return false, fmt.Errorf("hset %s: %w", key, err)
	}

	return !exists, nil
}

// Get returns a recipe by id.
func (r *Repo) Get(ctx context.Context, id string) (domain.Recipe, error) {
	key := recipeKey(id)
	fields, err := r.store.HGetAll(ctx, key)
	if err != nil {
		return domain.Recipe{}, fmt.Errorf("hgetall %s: %w", key, err)
	}
	// HGETALL on a missing key returns an empty map, not an error
	if len(fields) == 0 {
		return domain.Recipe{}, domain.ErrRecipeNotFound
	}
	return parseFields(id, fields)
}

// Delete removes a recipe by id.
func (r *Repo) Delete(ctx context.Context, id string) error {
	key := recipeKey(id)
	exists, err := r.store.Exists(ctx, key)
	if err != nil {
		return fmt.Errorf("check exists %s: %w", key, err)
	}
	if !exists {
		return domain.ErrRecipeNotFound
	}
	if err := r.store.Del(ctx, key); err != nil {
		return fmt.Errorf("del %s: %w", key, err)
	}
	return nil
}

// All returns every stored recipe. Entries that vanish between SCAN and
// HGETALL are skipped; corrupt entries fail the read.
func (r *Repo) All(ctx context.Context) ([]domain.Recipe, error) {
	keys, err := r.store.Scan(ctx, keyPrefix+"*")
	if err != nil {
		return nil, fmt.Errorf("scan recipes: %w", err)
	}
	if len(keys) == 0 {
		return nil, nil
	}

	maps, err := r.store.HGetAllMulti(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("load recipes: %w", err)
	}

	recipes := make([]domain.Recipe, 0, len(maps))
	for i, fields := range maps {
		if len(fields) == 0 {
			continue
		}
		rec, err := parseFields(extractID(keys[i]), fields)
		if err != nil {
			return nil, err
		}
		recipes = append(recipes, rec)
	}
	return recipes, nil
}

func recipeKey(id string) string {
	return keyPrefix + id
}

func extractID(key string) string {
	return strings.TrimPrefix(key, keyPrefix)
}
