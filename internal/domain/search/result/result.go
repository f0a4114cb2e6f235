package result

import "github.com/forkful-labs/recipedex/internal/domain"

// ScoredRecipe is a single search hit: the retrieval similarity in [0,1]
// plus the preference-adjusted final score (unbounded, typically near
// [0,1]). Carries the recipe's attributes so filter evaluation and
// preference scoring need no further store reads. Transient, produced
// per query.
type ScoredRecipe struct {
	id         string
	similarity float64
	score      float64
	content    string
	attrs      domain.Attributes
}

// New creates a scored recipe.
func New(id string, similarity, score float64, content string, attrs domain.Attributes) ScoredRecipe {
	return ScoredRecipe{id: id, similarity: similarity, score: score, content: content, attrs: attrs}
}

// ID returns the recipe identifier.
func (r ScoredRecipe) ID() string { return r.id }

// Similarity returns the raw retrieval similarity.
func (r ScoredRecipe) Similarity() float64 { return r.similarity }

// Score returns the preference-adjusted final score.
func (r ScoredRecipe) Score() float64 { return r.score }

// Content returns the recipe content.
func (r ScoredRecipe) Content() string { return r.content }

// Attributes returns the recipe's structured attributes.
func (r ScoredRecipe) Attributes() domain.Attributes { return r.attrs }

// WithScore returns a copy carrying the adjusted score.
func (r ScoredRecipe) WithScore(score float64) ScoredRecipe {
	r.score = score
	return r
}
