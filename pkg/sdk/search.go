package recipedex

import (
	"context"
	"fmt"
	"time"

	"github.com/forkful-labs/recipedex/internal/domain/search/request"
)

// SearchService runs the retrieval pipeline.
type SearchService struct {
	svc searchUseCase
	obs *observer
}

// Query runs a full search: encode, retrieve, filter, score, select.
func (s *SearchService) Query(ctx context.Context, q SearchQuery) (results []SearchResult, err error) {
	start := time.Now()
	defer func() { s.obs.observe("search", start, err) }()

	filters, err := q.Filter.toExpression()
	if err != nil {
		return nil, err
	}
	prefs, err := preferencesToDomain(q.Preferences)
	if err != nil {
		return nil, err
	}

	topK := q.TopK
	if topK == 0 {
		topK = request.DefaultTopK
	}
	limit := q.Limit
	if limit == 0 {
		limit = request.DefaultLimit
	}
	threshold := request.DefaultThreshold
	if q.MinSimilarity != nil {
		threshold = *q.MinSimilarity
	}

	req, err := request.New(q.Query, filters, prefs, topK, limit, threshold)
	if err != nil {
		return nil, fmt.Errorf("build search request: %w", err)
	}

	domResults, err := s.svc.Search(ctx, &req)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	return resultsFromDomain(domResults), nil
}

// Similar finds recipes close to a stored one. The anchor recipe is
// excluded from the results.
func (s *SearchService) Similar(ctx context.Context, id string, limit int) (results []SearchResult, err error) {
	start := time.Now()
	defer func() { s.obs.observe("similar", start, err) }()

	domResults, err := s.svc.Similar(ctx, id, limit)
	if err != nil {
		return nil, fmt.Errorf("similar: %w", err)
	}
	return resultsFromDomain(domResults), nil
}
