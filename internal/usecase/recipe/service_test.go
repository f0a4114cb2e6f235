package recipe

import (
	"context"
	"errors"
	"testing"

	"github.com/forkful-labs/recipedex/internal/domain"
)

type mockRepo struct {
	upserted  *domain.Recipe
	created   bool
	upsertErr error
	rec       domain.Recipe
	getErr    error
	deleteErr error
}

func (m *mockRepo) Upsert(_ context.Context, rec domain.Recipe) (bool, error) {
	m.upserted = &rec
	return m.created, m.upsertErr
}

func (m *mockRepo) Get(_ context.Context, _ string) (domain.Recipe, error) {
	return m.rec, m.getErr
}

func (m *mockRepo) Delete(_ context.Context, _ string) error {
	return m.deleteErr
}

type mockEmbedder struct {
	vec []float32
	err error
}

func (m *mockEmbedder) Embed(_ context.Context, _ string) (domain.EmbeddingResult, error) {
	if m.err != nil {
		return domain.EmbeddingResult{}, m.err
	}
	return domain.EmbeddingResult{Embedding: m.vec}, nil
}

func mustRecipe(t *testing.T) domain.Recipe {
	t.Helper()
	rec, err := domain.NewRecipe("r1", "Tomato basil pasta", nil,
		domain.Attributes{"cuisine": domain.StringValue("Italian")})
	if err != nil {
		t.Fatalf("NewRecipe: %v", err)
	}
	return rec
}

func TestIngest(t *testing.T) {
	repo := &mockRepo{created: true}
	svc := New(repo, &mockEmbedder{vec: []float32{0.1, 0.2}})

	created, err := svc.Ingest(context.Background(), mustRecipe(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !created {
		t.Error("expected created=true")
	}
	if repo.upserted == nil {
		t.Fatal("expected Upsert to be called")
	}
	if len(repo.upserted.Vector()) != 2 {
		t.Errorf("expected embedded vector to be stored, got %v", repo.upserted.Vector())
	}
}

func TestIngest_EncodingFailure(t *testing.T) {
	repo := &mockRepo{}
	svc := New(repo, &mockEmbedder{err: errors.New("provider down")})

	_, err := svc.Ingest(context.Background(), mustRecipe(t))
	if !errors.Is(err, domain.ErrEncodingFailure) {
		t.Fatalf("expected ErrEncodingFailure, got %v", err)
	}
	if repo.upserted != nil {
		t.Error("nothing must be stored when embedding fails")
	}
}

func TestGet(t *testing.T) {
	svc := New(&mockRepo{rec: mustRecipe(t)}, &mockEmbedder{})
	rec, err := svc.Get(context.Background(), "r1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.ID() != "r1" {
		t.Errorf("unexpected recipe %q", rec.ID())
	}

	if _, err := svc.Get(context.Background(), ""); !errors.Is(err, domain.ErrInvalidArgument) {
		t.Error("empty id must be rejected")
	}

	svc = New(&mockRepo{getErr: domain.ErrRecipeNotFound}, &mockEmbedder{})
	if _, err := svc.Get(context.Background(), "missing"); !errors.Is(err, domain.ErrRecipeNotFound) {
		t.Error("missing recipe must surface ErrRecipeNotFound")
	}
}

func TestDelete(t *testing.T) {
	svc := New(&mockRepo{}, &mockEmbedder{})
	if err := svc.Delete(context.Background(), "r1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := svc.Delete(context.Background(), ""); !errors.Is(err, domain.ErrInvalidArgument) {
		t.Error("empty id must be rejected")
	}
}
