package domain

// AttrKind discriminates attribute value variants.
type AttrKind int

// Attribute value kinds.
const (
	AttrString AttrKind = iota
	AttrNumber
	AttrList
)

// AttrValue is a recipe attribute value: a string, a number, or a list of
// strings. The zero value is the empty string.
type AttrValue struct {
	kind AttrKind
	str  string
	num  float64
	list []string
}

// StringValue creates a string attribute value.
func StringValue(s string) AttrValue { return AttrValue{kind: AttrString, str: s} }

// NumberValue creates a numeric attribute value.
func NumberValue(n float64) AttrValue { return AttrValue{kind: AttrNumber, num: n} }

// ListValue creates a list-of-strings attribute value.
func ListValue(items ...string) AttrValue {
	l := make([]string, len(items))
	copy(l, items)
	return AttrValue{kind: AttrList, list: l}
}

// Kind returns the value variant.
func (v AttrValue) Kind() AttrKind { return v.kind }

// String returns the string value ("" for other kinds).
func (v AttrValue) String() string { return v.str }

// Number returns the numeric value and whether the value is numeric.
func (v AttrValue) Number() (float64, bool) { return v.num, v.kind == AttrNumber }

// List returns the list items (nil for other kinds).
func (v AttrValue) List() []string { return v.list }

// Contains reports whether a list value contains item. False for non-lists.
func (v AttrValue) Contains(item string) bool {
	if v.kind != AttrList {
		return false
	}
	for _, s := range v.list {
		if s == item {
			return true
		}
	}
	return false
}

// EqualsString reports case-sensitive string equality. False for non-strings.
func (v AttrValue) EqualsString(s string) bool {
	return v.kind == AttrString && v.str == s
}

// Attributes maps attribute names to values. Lookups on missing names
// return the zero value with ok=false; callers treat that as "no match",
// never as an error.
type Attributes map[string]AttrValue

// Get returns the named attribute value.
func (a Attributes) Get(name string) (AttrValue, bool) {
	v, ok := a[name]
	return v, ok
}

// Clone returns a copy so stored recipes stay immutable under the caller.
func (a Attributes) Clone() Attributes {
	if a == nil {
		return nil
	}
	out := make(Attributes, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}
