package domain

import "fmt"

// MaxContentLength is the maximum recipe content length in bytes.
const MaxContentLength = 65536

// Recipe is a stored item: identifier, free-text content, embedding vector,
// and structured attributes. Immutable once stored; re-ingestion replaces
// by id.
type Recipe struct {
	id      string
	content string
	vector  []float32
	attrs   Attributes
}

// NewRecipe validates and creates a recipe. The vector may be empty at
// construction time (it is assigned during ingestion, after embedding).
func NewRecipe(id, content string, vector []float32, attrs Attributes) (Recipe, error) {
	if id == "" {
		return Recipe{}, fmt.Errorf("%w: recipe id is required", ErrInvalidArgument)
	}
	if content == "" {
		return Recipe{}, fmt.Errorf("%w: recipe content is required", ErrInvalidArgument)
	}
	if len(content) > MaxContentLength {
		return Recipe{}, fmt.Errorf("%w: recipe content too long (max %d bytes)",
			ErrInvalidArgument, MaxContentLength)
	}
	return Recipe{id: id, content: content, vector: vector, attrs: attrs.Clone()}, nil
}

// ReconstructRecipe rebuilds a recipe from storage without validation.
func ReconstructRecipe(id, content string, vector []float32, attrs Attributes) Recipe {
	return Recipe{id: id, content: content, vector: vector, attrs: attrs}
}

// ID returns the recipe identifier.
func (r Recipe) ID() string { return r.id }

// Content returns the free-text content.
func (r Recipe) Content() string { return r.content }

// Vector returns the embedding vector.
func (r Recipe) Vector() []float32 { return r.vector }

// Attributes returns the structured attributes.
func (r Recipe) Attributes() Attributes { return r.attrs }

// WithVector returns a copy of the recipe carrying the given vector.
func (r Recipe) WithVector(vec []float32) Recipe {
	r.vector = vec
	return r
}
