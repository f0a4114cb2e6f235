package chi

import (
	"fmt"

	"github.com/forkful-labs/recipedex/internal/domain"
	"github.com/forkful-labs/recipedex/internal/domain/search/filter"
	"github.com/forkful-labs/recipedex/internal/domain/search/preference"
	"github.com/forkful-labs/recipedex/internal/domain/search/request"
	"github.com/forkful-labs/recipedex/internal/domain/search/result"
)

// API error codes returned in the error response body.
const (
	codeBadRequest           = "bad_request"
	codeValidationFailed     = "validation_failed"
	codeRecipeNotFound       = "recipe_not_found"
	codeEncodingFailure      = "encoding_failure"
	codeRetrievalUnavailable = "retrieval_unavailable"
	codeRetrievalTimeout     = "retrieval_timeout"
	codeInternalError        = "internal_error"
)

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ingestRequest struct {
	ID         string         `json:"id"`
	Content    string         `json:"content"`
	Attributes map[string]any `json:"attributes,omitempty"`
}

type recipeResponse struct {
	ID         string         `json:"id"`
	Content    string         `json:"content"`
	Attributes map[string]any `json:"attributes,omitempty"`
}

type searchRequest struct {
	Query         string           `json:"query"`
	TopK          *int             `json:"top_k,omitempty"`
	Limit         *int             `json:"limit,omitempty"`
	MinSimilarity *float64         `json:"min_similarity,omitempty"`
	Filter        *filterNode      `json:"filter,omitempty"`
	Preferences   []preferenceItem `json:"preferences,omitempty"`
}

// filterNode is the wire form of a filter tree node. Exactly one of the
// combinator fields (and, or, not) or the leaf fields (attribute, op,
// value) must be set.
type filterNode struct {
	And []filterNode `json:"and,omitempty"`
	Or  []filterNode `json:"or,omitempty"`
	Not *filterNode  `json:"not,omitempty"`

	Attribute string `json:"attribute,omitempty"`
	Op        string `json:"op,omitempty"`
	Value     any    `json:"value,omitempty"`
}

type preferenceItem struct {
	Attribute string  `json:"attribute"`
	Value     any     `json:"value"`
	Weight    float64 `json:"weight"`
}

type searchResultItem struct {
	ID         string         `json:"id"`
	Similarity float64        `json:"similarity"`
	Score      float64        `json:"score"`
	Content    string         `json:"content"`
	Attributes map[string]any `json:"attributes,omitempty"`
}

type searchResponse struct {
	Items []searchResultItem `json:"items"`
	Total int                `json:"total"`
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// attrsFromJSON converts a decoded JSON object into domain attributes.
// Strings, numbers, and arrays of strings are accepted; anything else
// is rejected.
func attrsFromJSON(raw map[string]any) (domain.Attributes, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	attrs := make(domain.Attributes, len(raw))
	for name, v := range raw {
		switch val := v.(type) {
		case string:
			attrs[name] = domain.StringValue(val)
		case float64:
			attrs[name] = domain.NumberValue(val)
		case []any:
			items := make([]string, len(val))
			for i, it := range val {
				s, ok := it.(string)
				if !ok {
					return nil, fmt.Errorf("attribute %q: list items must be strings", name)
				}
				items[i] = s
			}
			attrs[name] = domain.ListValue(items...)
		default:
			return nil, fmt.Errorf("attribute %q: must be a string, number, or list of strings", name)
		}
	}
	return attrs, nil
}

func attrsToJSON(attrs domain.Attributes) map[string]any {
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

func recipeToResponse(rec domain.Recipe) recipeResponse {
	return recipeResponse{
		ID:         rec.ID(),
		Content:    rec.Content(),
		Attributes: attrsToJSON(rec.Attributes()),
	}
}

func searchResultsToResponse(results []result.ScoredRecipe) searchResponse {
	items := make([]searchResultItem, len(results))
	for i, r := range results {
		items[i] = searchResultItem{
			ID:         r.ID(),
			Similarity: r.Similarity(),
			Score:      r.Score(),
			Content:    r.Content(),
			Attributes: attrsToJSON(r.Attributes()),
		}
	}
	return searchResponse{Items: items, Total: len(items)}
}

// searchRequestFromDTO applies wire defaults and builds a validated
// domain request. Omitted top_k, limit, and min_similarity fall back to
// the documented defaults; explicitly provided values pass through so
// out-of-range ones surface as invalid-argument errors.
func searchRequestFromDTO(req searchRequest) (request.Request, error) {
	filters, err := filterFromDTO(req.Filter)
	if err != nil {
		return request.Request{}, fmt.Errorf("parse filter: %w", err)
	}

	prefs, err := preferencesFromDTO(req.Preferences)
	if err != nil {
		return request.Request{}, fmt.Errorf("parse preferences: %w", err)
	}

	topK := request.DefaultTopK
	if req.TopK != nil {
		topK = *req.TopK
	}
	limit := request.DefaultLimit
	if req.Limit != nil {
		limit = *req.Limit
	}
	threshold := request.DefaultThreshold
	if req.MinSimilarity != nil {
		threshold = *req.MinSimilarity
	}

	r, err := request.New(req.Query, filters, prefs, topK, limit, threshold)
	if err != nil {
		return request.Request{}, fmt.Errorf("build search request: %w", err)
	}
	return r, nil
}

func filterFromDTO(f *filterNode) (filter.Expression, error) {
	if f == nil {
		return filter.Expression{}, nil
	}
	root, err := filterNodeFromDTO(*f)
	if err != nil {
		return filter.Expression{}, err
	}
	return filter.NewExpression(root)
}

func filterNodeFromDTO(f filterNode) (filter.Node, error) {
	combSet := 0
	if f.And != nil {
		combSet++
	}
	if f.Or != nil {
		combSet++
	}
	if f.Not != nil {
		combSet++
	}
	if combSet > 1 {
		return filter.Node{}, fmt.Errorf("filter node must have at most one of and, or, not")
	}

	switch {
	case f.And != nil:
		children, err := filterChildrenFromDTO(f.And)
		if err != nil {
			return filter.Node{}, err
		}
		return filter.NewAnd(children...), nil
	case f.Or != nil:
		children, err := filterChildrenFromDTO(f.Or)
		if err != nil {
			return filter.Node{}, err
		}
		return filter.NewOr(children...), nil
	case f.Not != nil:
		child, err := filterNodeFromDTO(*f.Not)
		if err != nil {
			return filter.Node{}, err
		}
		return filter.NewNot(child), nil
	}

	return filterLeafFromDTO(f)
}

func filterChildrenFromDTO(nodes []filterNode) ([]filter.Node, error) {
	children := make([]filter.Node, len(nodes))
	for i, n := range nodes {
		child, err := filterNodeFromDTO(n)
		if err != nil {
			return nil, err
		}
		children[i] = child
	}
	return children, nil
}

func filterLeafFromDTO(f filterNode) (filter.Node, error) {
	if f.Attribute == "" {
		return filter.Node{}, fmt.Errorf("filter leaf requires an attribute")
	}

	switch filter.Op(f.Op) {
	case filter.OpEquals:
		switch v := f.Value.(type) {
		case string:
			return filter.NewEquals(f.Attribute, v)
		case float64:
			return filter.NewEqualsNumber(f.Attribute, v)
		default:
			return filter.Node{}, fmt.Errorf("eq filter on %q: value must be a string or number", f.Attribute)
		}
	case filter.OpLte:
		v, ok := f.Value.(float64)
		if !ok {
			return filter.Node{}, fmt.Errorf("lte filter on %q: value must be a number", f.Attribute)
		}
		return filter.NewLte(f.Attribute, v)
	case filter.OpGte:
		v, ok := f.Value.(float64)
		if !ok {
			return filter.Node{}, fmt.Errorf("gte filter on %q: value must be a number", f.Attribute)
		}
		return filter.NewGte(f.Attribute, v)
	case filter.OpContains:
		v, ok := f.Value.(string)
		if !ok {
			return filter.Node{}, fmt.Errorf("contains filter on %q: value must be a string", f.Attribute)
		}
		return filter.NewContains(f.Attribute, v)
	default:
		return filter.Node{}, fmt.Errorf("unsupported filter operator %q", f.Op)
	}
}

func preferencesFromDTO(items []preferenceItem) ([]preference.Preference, error) {
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
		case float64:
			p, err = preference.NewNumber(it.Attribute, v, it.Weight)
		default:
			return nil, fmt.Errorf("preference on %q: value must be a string or number", it.Attribute)
		}
		if err != nil {
			return nil, err
		}
		prefs[i] = p
	}
	return prefs, nil
}
