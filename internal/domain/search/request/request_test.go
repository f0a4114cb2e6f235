package request

import (
	"errors"
	"strings"
	"testing"

	"github.com/forkful-labs/recipedex/internal/domain"
	"github.com/forkful-labs/recipedex/internal/domain/search/filter"
	"github.com/forkful-labs/recipedex/internal/domain/search/preference"
)

func TestNew_Valid(t *testing.T) {
	r, err := New("pasta with basil", filter.Expression{}, nil, 50, 10, 0.6)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.TopK() != 50 || r.Limit() != 10 || r.Threshold() != 0.6 {
		t.Errorf("unexpected request: topK=%d limit=%d threshold=%g",
			r.TopK(), r.Limit(), r.Threshold())
	}
}

func TestNew_TopKRejected(t *testing.T) {
	for _, topK := range []int{0, -1} {
		_, err := New("q", filter.Expression{}, nil, topK, 10, 0.5)
		if !errors.Is(err, domain.ErrInvalidArgument) {
			t.Errorf("topK=%d: expected ErrInvalidArgument, got %v", topK, err)
		}
	}
}

func TestNew_LimitRejected(t *testing.T) {
	_, err := New("q", filter.Expression{}, nil, 10, 0, 0.5)
	if !errors.Is(err, domain.ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestNew_Clamping(t *testing.T) {
	r, err := New("q", filter.Expression{}, nil, MaxTopK+100, MaxLimit+100, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.TopK() != MaxTopK {
		t.Errorf("topK should clamp to %d, got %d", MaxTopK, r.TopK())
	}
	if r.Limit() != MaxLimit {
		t.Errorf("limit should clamp to %d, got %d", MaxLimit, r.Limit())
	}
}

func TestNew_LimitClampedToTopK(t *testing.T) {
	r, err := New("q", filter.Expression{}, nil, 5, 50, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Limit() != 5 {
		t.Errorf("limit should clamp to topK, got %d", r.Limit())
	}
}

func TestNew_QueryValidation(t *testing.T) {
	if _, err := New("", filter.Expression{}, nil, 10, 10, 0); !errors.Is(err, domain.ErrInvalidArgument) {
		t.Error("empty query must be rejected")
	}
	long := strings.Repeat("x", MaxQueryLength+1)
	if _, err := New(long, filter.Expression{}, nil, 10, 10, 0); !errors.Is(err, domain.ErrInvalidArgument) {
		t.Error("over-long query must be rejected")
	}
}

func TestNew_ThresholdValidation(t *testing.T) {
	for _, th := range []float64{-0.1, 1.1} {
		if _, err := New("q", filter.Expression{}, nil, 10, 10, th); !errors.Is(err, domain.ErrInvalidArgument) {
			t.Errorf("threshold=%g must be rejected", th)
		}
	}
}

func TestNew_TooManyPreferences(t *testing.T) {
	prefs := make([]preference.Preference, preference.MaxPerQuery+1)
	for i := range prefs {
		p, err := preference.New("a", "b", 0.1)
		if err != nil {
			t.Fatalf("preference.New: %v", err)
		}
		prefs[i] = p
	}
	if _, err := New("q", filter.Expression{}, prefs, 10, 10, 0); !errors.Is(err, domain.ErrInvalidArgument) {
		t.Error("over-long preference list must be rejected")
	}
}
