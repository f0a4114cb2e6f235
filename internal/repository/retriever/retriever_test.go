package retriever

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/forkful-labs/recipedex/internal/domain"
)

type mockSource struct {
	recipes []domain.Recipe
	err     error
}

func (m *mockSource) All(_ context.Context) ([]domain.Recipe, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.recipes, nil
}

func rec(t *testing.T, id string, vec []float32) domain.Recipe {
	t.Helper()
	r, err := domain.NewRecipe(id, "content "+id, vec, nil)
	if err != nil {
		t.Fatalf("build recipe: %v", err)
	}
	return r
}

func TestRetrieve_RanksBySimilarity(t *testing.T) {
	source := &mockSource{recipes: []domain.Recipe{
		rec(t, "orthogonal", []float32{0, 1, 0}),
		rec(t, "identical", []float32{1, 0, 0}),
		rec(t, "opposite", []float32{-1, 0, 0}),
	}}
	r := New(source, zap.NewNop())

	hits, err := r.Retrieve(context.Background(), []float32{1, 0, 0}, 10, 0)
	if err != nil {
		t.Fatalf("retrieve: %v", err)
	}
	if len(hits) != 3 {
		t.Fatalf("expected 3 hits, got %d", len(hits))
	}
	// Normalized similarity: identical = 1, orthogonal = 0.5, opposite = 0.
	if hits[0].ID() != "identical" || hits[1].ID() != "orthogonal" || hits[2].ID() != "opposite" {
		t.Errorf("unexpected order: %s %s %s", hits[0].ID(), hits[1].ID(), hits[2].ID())
	}
	if hits[0].Similarity() != 1 {
		t.Errorf("identical similarity: got %g, want 1", hits[0].Similarity())
	}
	if hits[1].Similarity() != 0.5 {
		t.Errorf("orthogonal similarity: got %g, want 0.5", hits[1].Similarity())
	}
}

func TestRetrieve_ThresholdCuts(t *testing.T) {
	source := &mockSource{recipes: []domain.Recipe{
		rec(t, "close", []float32{1, 0, 0}),
		rec(t, "far", []float32{0, 1, 0}),
	}}
	r := New(source, zap.NewNop())

	hits, err := r.Retrieve(context.Background(), []float32{1, 0, 0}, 10, 0.6)
	if err != nil {
		t.Fatalf("retrieve: %v", err)
	}
	if len(hits) != 1 || hits[0].ID() != "close" {
		t.Errorf("expected only close hit, got %d", len(hits))
	}
}

func TestRetrieve_TopKTruncates_NeverPads(t *testing.T) {
	source := &mockSource{recipes: []domain.Recipe{
		rec(t, "a", []float32{1, 0, 0}),
		rec(t, "b", []float32{0.9, 0.1, 0}),
		rec(t, "c", []float32{0.8, 0.2, 0}),
	}}
	r := New(source, zap.NewNop())

	hits, err := r.Retrieve(context.Background(), []float32{1, 0, 0}, 2, 0)
	if err != nil {
		t.Fatalf("retrieve: %v", err)
	}
	if len(hits) != 2 {
		t.Errorf("topK=2: got %d hits", len(hits))
	}

	// Fewer survivors than topK: return what cleared, never pad.
	hits, err = r.Retrieve(context.Background(), []float32{1, 0, 0}, 10, 0.99)
	if err != nil {
		t.Fatalf("retrieve: %v", err)
	}
	if len(hits) != 1 {
		t.Errorf("high threshold: got %d hits, want 1", len(hits))
	}
}

func TestRetrieve_InvalidTopK(t *testing.T) {
	source := &mockSource{err: errors.New("must not be called")}
	r := New(source, zap.NewNop())

	_, err := r.Retrieve(context.Background(), []float32{1, 0, 0}, 0, 0)
	if !errors.Is(err, domain.ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestRetrieve_EmptyQueryVector(t *testing.T) {
	r := New(&mockSource{}, zap.NewNop())

	_, err := r.Retrieve(context.Background(), nil, 10, 0)
	if !errors.Is(err, domain.ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestRetrieve_StoreFailure_Unavailable(t *testing.T) {
	source := &mockSource{err: errors.New("connection refused")}
	r := New(source, zap.NewNop())

	_, err := r.Retrieve(context.Background(), []float32{1, 0, 0}, 10, 0)
	if !errors.Is(err, domain.ErrRetrievalUnavailable) {
		t.Errorf("expected ErrRetrievalUnavailable, got %v", err)
	}
	if !domain.Retryable(err) {
		t.Error("unavailable must be retryable")
	}
}

func TestRetrieve_DeadlineExceeded_Timeout(t *testing.T) {
	source := &mockSource{err: context.DeadlineExceeded}
	r := New(source, zap.NewNop())

	_, err := r.Retrieve(context.Background(), []float32{1, 0, 0}, 10, 0)
	if !errors.Is(err, domain.ErrRetrievalTimeout) {
		t.Errorf("expected ErrRetrievalTimeout, got %v", err)
	}
	if !domain.Retryable(err) {
		t.Error("timeout must be retryable")
	}
}

func TestRetrieve_SkipsMismatchedVectors(t *testing.T) {
	source := &mockSource{recipes: []domain.Recipe{
		rec(t, "good", []float32{1, 0, 0}),
		rec(t, "stale", []float32{1, 0}),
	}}
	r := New(source, zap.NewNop())

	hits, err := r.Retrieve(context.Background(), []float32{1, 0, 0}, 10, 0)
	if err != nil {
		t.Fatalf("retrieve: %v", err)
	}
	if len(hits) != 1 || hits[0].ID() != "good" {
		t.Errorf("expected only the well-formed recipe, got %d hits", len(hits))
	}
}

func TestRetrieve_Deterministic(t *testing.T) {
	source := &mockSource{recipes: []domain.Recipe{
		rec(t, "a", []float32{1, 0, 0}),
		rec(t, "b", []float32{1, 0, 0}),
	}}
	r := New(source, zap.NewNop())

	first, err := r.Retrieve(context.Background(), []float32{1, 0, 0}, 10, 0)
	if err != nil {
		t.Fatalf("retrieve: %v", err)
	}
	second, err := r.Retrieve(context.Background(), []float32{1, 0, 0}, 10, 0)
	if err != nil {
		t.Fatalf("retrieve: %v", err)
	}
	// Equal similarities keep source order on every call.
	for i := range first {
		if first[i].ID() != second[i].ID() {
			t.Errorf("order differs at %d: %s vs %s", i, first[i].ID(), second[i].ID())
		}
	}
	if first[0].ID() != "a" {
		t.Errorf("expected source order for ties, got %s first", first[0].ID())
	}
}
