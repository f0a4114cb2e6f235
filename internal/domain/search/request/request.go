package request

import (
	"fmt"

	"github.com/forkful-labs/recipedex/internal/domain"
	"github.com/forkful-labs/recipedex/internal/domain/search/filter"
	"github.com/forkful-labs/recipedex/internal/domain/search/preference"
)

// Search parameter limits.
const (
	// MaxQueryLength is the maximum allowed search query length.
	MaxQueryLength = 4096
	DefaultTopK    = 50
	MaxTopK        = 500
	DefaultLimit   = 10
	MaxLimit       = 100
	// DefaultThreshold is the default minimum similarity for a candidate.
	DefaultThreshold = 0.6
)

// Request is a validated search query: text, optional hard filters,
// optional soft preferences, and result bounds. Constructed per call,
// never persisted.
type Request struct {
	query       string
	filters     filter.Expression
	preferences []preference.Preference
	topK        int
	limit       int
	threshold   float64
}

// New validates search parameters.
//
// topK and limit must be positive: a caller passing topK <= 0 gets
// ErrInvalidArgument before the store is ever touched. Defaults for
// omitted fields are a transport concern (see DefaultTopK, DefaultLimit).
func New(
	query string,
	filters filter.Expression,
	prefs []preference.Preference,
	topK, limit int,
	threshold float64,
) (Request, error) {
	if query == "" {
		return Request{}, fmt.Errorf("%w: query is required", domain.ErrInvalidArgument)
	}
	if len(query) > MaxQueryLength {
		return Request{}, fmt.Errorf("%w: query too long (max %d chars)",
			domain.ErrInvalidArgument, MaxQueryLength)
	}
	if topK <= 0 {
		return Request{}, fmt.Errorf("%w: top_k must be positive, got %d",
			domain.ErrInvalidArgument, topK)
	}
	if topK > MaxTopK {
		topK = MaxTopK
	}
	if limit <= 0 {
		return Request{}, fmt.Errorf("%w: limit must be positive, got %d",
			domain.ErrInvalidArgument, limit)
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	if limit > topK {
		limit = topK
	}
	if threshold < 0 || threshold > 1 {
		return Request{}, fmt.Errorf("%w: threshold must be between 0 and 1, got %g",
			domain.ErrInvalidArgument, threshold)
	}
	if len(prefs) > preference.MaxPerQuery {
		return Request{}, fmt.Errorf("%w: too many preferences (max %d)",
			domain.ErrInvalidArgument, preference.MaxPerQuery)
	}
	if !filters.IsEmpty() {
		if err := filters.Root().Validate(); err != nil {
			return Request{}, fmt.Errorf("%w: %v", domain.ErrInvalidArgument, err)
		}
	}

	return Request{
		query:       query,
		filters:     filters,
		preferences: prefs,
		topK:        topK,
		limit:       limit,
		threshold:   threshold,
	}, nil
}

// Query returns the search query text.
func (r *Request) Query() string { return r.query }

// Filters returns the hard-filter expression.
func (r *Request) Filters() filter.Expression { return r.filters }

// Preferences returns the soft preferences.
func (r *Request) Preferences() []preference.Preference { return r.preferences }

// TopK returns the number of candidates to retrieve before filtering.
func (r *Request) TopK() int { return r.topK }

// Limit returns the maximum results to return.
func (r *Request) Limit() int { return r.limit }

// Threshold returns the minimum similarity for a candidate.
func (r *Request) Threshold() float64 { return r.threshold }
