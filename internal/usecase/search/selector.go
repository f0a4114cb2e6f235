package search

import (
	"sort"

	"github.com/forkful-labs/recipedex/internal/domain/search/result"
)

// Select orders scored recipes by adjusted score descending and truncates
// to limit. Ties keep their candidate order (stable), so identical inputs
// always produce identical output. The input slice is never mutated; the
// returned slice is a new ordered list of length min(limit, len(scored)).
func Select(scored []result.ScoredRecipe, limit int) []result.ScoredRecipe {
	out := make([]result.ScoredRecipe, len(scored))
	copy(out, scored)

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score() > out[j].Score()
	})

	if limit >= 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
