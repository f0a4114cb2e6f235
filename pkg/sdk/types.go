package recipedex

import (
	"fmt"

	"github.com/forkful-labs/recipedex/internal/domain"
	"github.com/forkful-labs/recipedex/internal/domain/search/filter"
	"github.com/forkful-labs/recipedex/internal/domain/search/preference"
	"github.com/forkful-labs/recipedex/internal/domain/search/result"
)

// Recipe is the public recipe representation. Attribute values may be
// strings, numbers (int or float64), or []string.
type Recipe struct {
	ID         string
	Content    string
	Attributes map[string]any
}

// SearchQuery describes one search call. Zero TopK and Limit fall back
// to server defaults; MinSimilarity nil falls back to the default
// threshold.
type SearchQuery struct {
	Query         string
	TopK          int
	Limit         int
	MinSimilarity *float64
	Filter        *Filter
	Preferences   []Preference
}

// Preference is a soft scoring adjustment: candidates whose attribute
// matches Value gain Weight (negative weights penalize).
type Preference struct {
	Attribute string
	Value     any
	Weight    float64
}

// SearchResult is one search hit.
type SearchResult struct {
	ID         string
	Similarity float64
	Score      float64
	Content    string
	Attributes map[string]any
}

// Filter is a hard-filter tree node built with Eq, Lte, Gte, Contains
// and combined with All, Any, Not. Construction errors surface when the
// filter is used in a query.
type Filter struct {
	node filter.Node
	err  error
}

// Eq matches attribute equality. Value must be a string or a number.
func Eq(attr string, value any) *Filter {
	switch v := value.(type) {
	case string:
		n, err := filter.NewEquals(attr, v)
		return &Filter{node: n, err: err}
	case int:
		n, err := filter.NewEqualsNumber(attr, float64(v))
		return &Filter{node: n, err: err}
	case float64:
		n, err := filter.NewEqualsNumber(attr, v)
		return &Filter{node: n, err: err}
	default:
		return &Filter{err: fmt.Errorf("eq filter on %q: value must be a string or number", attr)}
	}
}

// Lte matches numeric attribute <= value.
func Lte(attr string, value float64) *Filter {
	n, err := filter.NewLte(attr, value)
	return &Filter{node: n, err: err}
}

// Gte matches numeric attribute >= value.
func Gte(attr string, value float64) *Filter {
	n, err := filter.NewGte(attr, value)
	return &Filter{node: n, err: err}
}

// Contains matches list attributes containing item.
func Contains(attr, item string) *Filter {
	n, err := filter.NewContains(attr, item)
	return &Filter{node: n, err: err}
}

// All matches when every child matches. Empty All matches everything.
func All(filters ...*Filter) *Filter {
	children, err := filterChildren(filters)
	if err != nil {
		return &Filter{err: err}
	}
	return &Filter{node: filter.NewAnd(children...)}
}

// Any matches when at least one child matches. Empty Any matches nothing.
func Any(filters ...*Filter) *Filter {
	children, err := filterChildren(filters)
	if err != nil {
		return &Filter{err: err}
	}
	return &Filter{node: filter.NewOr(children...)}
}

// Not inverts a filter.
func Not(f *Filter) *Filter {
	if f.err != nil {
		return &Filter{err: f.err}
	}
	return &Filter{node: filter.NewNot(f.node)}
}

func filterChildren(filters []*Filter) ([]filter.Node, error) {
	children := make([]filter.Node, len(filters))
	for i, f := range filters {
		if f.err != nil {
			return nil, f.err
		}
		children[i] = f.node
	}
	return children, nil
}

func (f *Filter) toExpression() (filter.Expression, error) {
	if f == nil {
		return filter.Expression{}, nil
	}
	if f.err != nil {
		return filter.Expression{}, fmt.Errorf("%w: %v", domain.ErrInvalidArgument, f.err)
	}
	expr, err := filter.NewExpression(f.node)
	if err != nil {
		return filter.Expression{}, fmt.Errorf("%w: %v", domain.ErrInvalidArgument, err)
	}
	return expr, nil
}

func attrsToDomain(raw map[string]any) (domain.Attributes, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	attrs := make(domain.Attributes, len(raw))
	for name, v := range raw {
		switch val := v.(type) {
		case string:
			attrs[name] = domain.StringValue(val)
		case int:
			attrs[name] = domain.NumberValue(float64(val))
		case float64:
			attrs[name] = domain.NumberValue(val)
		case []string:
			attrs[name] = domain.ListValue(val...)
		default:
			return nil, fmt.Errorf("%w: attribute %q must be a string, number, or []string",
				domain.ErrInvalidArgument, name)
		}
	}
	return attrs, nil
}

func attrsFromDomain(attrs domain.Attributes) map[string]any {
	if len(attrs) == 0 {
		return nil
	}
	out := make(map[string]any, len(attrs))
	for name, v := range attrs {
		switch v.Kind() {
		case domain.AttrNumber:
			num, _ := v.Number()
			out[name] = num
		case domain.AttrList:
			out[name] = v.List()
		default:
			out[name] = v.String()
		}
	}
	return out
}

func preferencesToDomain(items []Preference) ([]preference.Preference, error) {
	if len(items) == 0 {
		return nil, nil
	}
	prefs := make([]preference.Preference, len(items))
	for i, it := range items {
		var (
			p   preference.Preference
			err error
		)
		switch v := it.Value.(type) {
		case string:
			p, err = preference.New(it.Attribute, v, it.Weight)
		case int:
			p, err = preference.NewNumber(it.Attribute, float64(v), it.Weight)
		case float64:
			p, err = preference.NewNumber(it.Attribute, v, it.Weight)
		default:
			err = fmt.Errorf("preference on %q: value must be a string or number", it.Attribute)
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidArgument, err)
		}
		prefs[i] = p
	}
	return prefs, nil
}

func recipeFromDomain(rec domain.Recipe) Recipe {
	return Recipe{
		ID:         rec.ID(),
		Content:    rec.Content(),
		Attributes: attrsFromDomain(rec.Attributes()),
	}
}

func resultsFromDomain(results []result.ScoredRecipe) []SearchResult {
	out := make([]SearchResult, len(results))
	for i, r := range results {
		out[i] = SearchResult{
			ID:         r.ID(),
			Similarity: r.Similarity(),
			Score:      r.Score(),
			Content:    r.Content(),
			Attributes: attrsFromDomain(r.Attributes()),
		}
	}
	return out
}
