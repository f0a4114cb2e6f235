// Package preference models soft, non-binding scoring adjustments.
// A preference boosts or penalizes a candidate's score when its predicate
// matches; it never excludes a candidate (that is what hard filters do).
package preference

import (
	"fmt"

	"github.com/forkful-labs/recipedex/internal/domain"
)

// MaxPerQuery bounds the preference list length per query.
const MaxPerQuery = 32

// Preference is one (attribute, target, weight) triple. Weight may be
// negative for penalties.
type Preference struct {
	attr     string
	strVal   string
	numVal   float64
	isNumber bool
	weight   float64
}

// New creates a preference targeting a string or list attribute.
// For list attributes the predicate is membership; for strings, equality.
func New(attr, value string, weight float64) (Preference, error) {
	if attr == "" {
		return Preference{}, fmt.Errorf("preference attribute is required")
	}
	return Preference{attr: attr, strVal: value, weight: weight}, nil
}

// NewNumber creates a preference matching numeric equality.
func NewNumber(attr string, value, weight float64) (Preference, error) {
	if attr == "" {
		return Preference{}, fmt.Errorf("preference attribute is required")
	}
	return Preference{attr: attr, numVal: value, isNumber: true, weight: weight}, nil
}

// Attr returns the attribute name.
func (p Preference) Attr() string { return p.attr }

// Weight returns the signed weight.
func (p Preference) Weight() float64 { return p.weight }

// MatchesAttrs reports whether the preference predicate matches the
// attribute map. Missing attributes never match.
func (p Preference) MatchesAttrs(attrs domain.Attributes) bool {
	v, ok := attrs.Get(p.attr)
	if !ok {
		return false
	}
	if p.isNumber {
		num, isNum := v.Number()
		return isNum && num == p.numVal
	}
	if v.Kind() == domain.AttrList {
		return v.Contains(p.strVal)
	}
	return v.EqualsString(p.strVal)
}

// Adjust returns similarity plus the weights of every matching preference.
// All matches apply additively; given the same item and list the result is
// always the same.
func Adjust(attrs domain.Attributes, similarity float64, prefs []Preference) float64 {
	score := similarity
	for _, p := range prefs {
		if p.MatchesAttrs(attrs) {
			score += p.weight
		}
	}
	return score
}
