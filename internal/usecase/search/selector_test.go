package search

import (
	"testing"

	"github.com/forkful-labs/recipedex/internal/domain/search/result"
)

func scored(id string, score float64) result.ScoredRecipe {
	return result.New(id, score, score, "", nil)
}

func TestSelect_SortsDescending(t *testing.T) {
	in := []result.ScoredRecipe{
		scored("a", 0.3), scored("b", 0.9), scored("c", 0.6),
	}
	got := Select(in, 10)
	wantOrder := []string{"b", "c", "a"}
	for i, id := range wantOrder {
		if got[i].ID() != id {
			t.Errorf("position %d: expected %s, got %s", i, id, got[i].ID())
		}
	}
}

func TestSelect_Truncates(t *testing.T) {
	in := []result.ScoredRecipe{
		scored("a", 0.3), scored("b", 0.9), scored("c", 0.6),
	}
	got := Select(in, 2)
	if len(got) != 2 {
		t.Fatalf("expected 2 results, got %d", len(got))
	}
	if got[0].ID() != "b" || got[1].ID() != "c" {
		t.Errorf("unexpected top-2: %s, %s", got[0].ID(), got[1].ID())
	}
}

func TestSelect_LengthIsMinOfLimitAndInput(t *testing.T) {
	in := []result.ScoredRecipe{scored("a", 0.5)}
	if got := Select(in, 5); len(got) != 1 {
		t.Errorf("fewer items than limit: expected all of them, got %d", len(got))
	}
	if got := Select(nil, 5); len(got) != 0 {
		t.Errorf("empty input: expected empty output, got %d", len(got))
	}
}

// Ties keep candidate order so output is deterministic.
func TestSelect_StableTies(t *testing.T) {
	in := []result.ScoredRecipe{
		scored("first", 0.5), scored("second", 0.5), scored("third", 0.5),
	}
	got := Select(in, 10)
	for i, id := range []string{"first", "second", "third"} {
		if got[i].ID() != id {
			t.Errorf("tie order not stable at %d: got %s", i, got[i].ID())
		}
	}
}

func TestSelect_DoesNotMutateInput(t *testing.T) {
	in := []result.ScoredRecipe{
		scored("a", 0.1), scored("b", 0.9),
	}
	_ = Select(in, 10)
	if in[0].ID() != "a" || in[1].ID() != "b" {
		t.Error("Select must not reorder its input")
	}
}
