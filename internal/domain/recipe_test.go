package domain

import (
	"errors"
	"strings"
	"testing"
)

func TestNewRecipe(t *testing.T) {
	attrs := Attributes{"cuisine": StringValue("Italian")}
	r, err := NewRecipe("r1", "Tomato basil pasta", nil, attrs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.ID() != "r1" || r.Content() != "Tomato basil pasta" {
		t.Errorf("unexpected recipe: %q %q", r.ID(), r.Content())
	}

	// Attributes are copied at construction
	attrs["cuisine"] = StringValue("Thai")
	if v, _ := r.Attributes().Get("cuisine"); !v.EqualsString("Italian") {
		t.Error("recipe attributes must be immutable under the caller")
	}
}

func TestNewRecipe_Validation(t *testing.T) {
	if _, err := NewRecipe("", "content", nil, nil); !errors.Is(err, ErrInvalidArgument) {
		t.Error("empty id must be rejected")
	}
	if _, err := NewRecipe("r1", "", nil, nil); !errors.Is(err, ErrInvalidArgument) {
		t.Error("empty content must be rejected")
	}
	long := strings.Repeat("x", MaxContentLength+1)
	if _, err := NewRecipe("r1", long, nil, nil); !errors.Is(err, ErrInvalidArgument) {
		t.Error("over-long content must be rejected")
	}
}

func TestAttrValue(t *testing.T) {
	s := StringValue("Italian")
	if !s.EqualsString("Italian") || s.EqualsString("italian") {
		t.Error("string equality must be exact and case-sensitive")
	}
	if _, ok := s.Number(); ok {
		t.Error("string value must not report numeric")
	}

	n := NumberValue(25)
	if num, ok := n.Number(); !ok || num != 25 {
		t.Error("number value accessor broken")
	}
	if n.EqualsString("25") {
		t.Error("number must not equal a string")
	}

	l := ListValue("a", "b")
	if !l.Contains("a") || l.Contains("c") {
		t.Error("list containment broken")
	}
	if s.Contains("Italian") {
		t.Error("contains over a non-list must be false")
	}
}

func TestRetryable(t *testing.T) {
	if !Retryable(ErrRetrievalUnavailable) || !Retryable(ErrRetrievalTimeout) {
		t.Error("retrieval failures must be retryable")
	}
	if Retryable(ErrEncodingFailure) || Retryable(ErrInvalidArgument) {
		t.Error("encoding and argument errors must not be retryable")
	}
}
