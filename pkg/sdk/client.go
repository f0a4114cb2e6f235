package recipedex

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/forkful-labs/recipedex/internal/db"
	dbRedis "github.com/forkful-labs/recipedex/internal/db/redis"
	"github.com/forkful-labs/recipedex/internal/domain"
	"github.com/forkful-labs/recipedex/internal/domain/search/request"
	"github.com/forkful-labs/recipedex/internal/domain/search/result"
	reciperepo "github.com/forkful-labs/recipedex/internal/repository/recipe"
	"github.com/forkful-labs/recipedex/internal/repository/retriever"
	healthuc "github.com/forkful-labs/recipedex/internal/usecase/health"
	recipeuc "github.com/forkful-labs/recipedex/internal/usecase/recipe"
	searchuc "github.com/forkful-labs/recipedex/internal/usecase/search"
	"go.uber.org/zap"
)

const defaultReadinessTimeout = 10 * time.Second

// Internal interfaces so tests can substitute the services.
type recipeUseCase interface {
	Ingest(ctx context.Context, rec domain.Recipe) (bool, error)
	Get(ctx context.Context, id string) (domain.Recipe, error)
	Delete(ctx context.Context, id string) error
}

type searchUseCase interface {
	Search(ctx context.Context, req *request.Request) ([]result.ScoredRecipe, error)
	Similar(ctx context.Context, id string, limit int) ([]result.ScoredRecipe, error)
}

type healthUseCase interface {
	Check(ctx context.Context) healthuc.Report
}

// Client is the recipedex SDK entry point.
type Client struct {
	store     db.Store
	recipeSvc recipeUseCase
	searchSvc searchUseCase
	healthSvc healthUseCase
	closer    func()
	obs       *observer
}

// New creates a recipedex Client and connects to the database.
// The provided context is used for the initial readiness check.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{}
	for _, o := range opts {
		o.apply(cfg)
	}

	if len(cfg.addrs) == 0 {
		return nil, errors.New("recipedex: database address required (use WithRedis)")
	}
	if cfg.embedder == nil {
		return nil, errors.New("recipedex: embedder required (use WithEmbedder)")
	}

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.addrs,
		Password: cfg.password,
	})
	if err != nil {
		return nil, fmt.Errorf("recipedex: create redis store: %w", err)
	}

	if err := store.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("recipedex: database not ready: %w", err)
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		store.Close()
		return nil, err
	}
	return wireClient(store, cfg, obs)
}

func wireClient(store db.Store, cfg *clientConfig, obs *observer) (*Client, error) {
	domEmb := &embedderAdapter{inner: cfg.embedder}

	var ingestEmb domain.Embedder = domEmb
	var queryEmb domain.Embedder = domEmb
	if cfg.queryInstruction != "" {
		queryEmb = domain.NewInstructionEmbedder(domEmb, cfg.queryInstruction)
	}

	recipeRepo := reciperepo.New(store)
	retr := retriever.New(recipeRepo, zap.NewNop())

	recipeSvc := recipeuc.New(recipeRepo, ingestEmb)
	searchSvc := searchuc.New(retr, recipeRepo, queryEmb)
	if cfg.rankPoolSize > 0 {
		var err error
		if searchSvc, err = searchSvc.WithPool(cfg.rankPoolSize); err != nil {
			store.Close()
			return nil, fmt.Errorf("recipedex: create ranking pool: %w", err)
		}
	}
	healthSvc := healthuc.New(store, nil)

	return &Client{
		store:     store,
		recipeSvc: recipeSvc,
		searchSvc: searchSvc,
		healthSvc: healthSvc,
		closer:    searchSvc.Close,
		obs:       obs,
	}, nil
}

// Close releases all resources.
func (c *Client) Close() {
	if c.closer != nil {
		c.closer()
	}
	if c.store != nil {
		c.store.Close()
	}
}

// Ping checks database connectivity.
func (c *Client) Ping(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { c.obs.observe("ping", start, err) }()

	if err = c.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Recipes returns the recipe management service.
func (c *Client) Recipes() *RecipeService {
	return &RecipeService{svc: c.recipeSvc, obs: c.obs}
}

// Search returns the search service.
func (c *Client) Search() *SearchService {
	return &SearchService{svc: c.searchSvc, obs: c.obs}
}

// embedderAdapter wraps the public Embedder to satisfy internal domain.Embedder.
type embedderAdapter struct {
	inner Embedder
}

func (a *embedderAdapter) Embed(ctx context.Context, text string) (domain.EmbeddingResult, error) {
	r, err := a.inner.Embed(ctx, text)
	if err != nil {
		return domain.EmbeddingResult{}, fmt.Errorf("embed: %w", err)
	}
	return domain.EmbeddingResult{
		Embedding:    r.Embedding,
		PromptTokens: r.PromptTokens,
		TotalTokens:  r.TotalTokens,
	}, nil
}
