package filter

import "strconv"

// Text matches strings exactly equal to a fixed search value.
// It is a leaf: constancy is always unknown and Optimize is a no-op.
type Text struct {
	Leaf
	search string
}

// NewText returns a filter accepting exactly s.
func NewText(s string) Text {
	return Text{search: s}
}

// Matches reports whether candidate equals the search value.
func (t Text) Matches(candidate string) bool {
	return t.search == candidate
}

// Exact returns the only string the filter accepts. Callers may use it to
// replace a scan with a direct lookup.
func (t Text) Exact() (string, bool) {
	return t.search, true
}

func (t Text) String() string {
	return strconv.Quote(t.search)
}
