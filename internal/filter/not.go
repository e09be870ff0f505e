package filter

// Not inverts a single child. Optimization never collapses Not itself; it
// reports the inverted constancy of its child so the parent can fold it.
type Not[T any, F Child[T, F]] struct {
	inner F
}

// NewNot returns the negation of f.
func NewNot[T any, F Child[T, F]](f F) *Not[T, F] {
	return &Not[T, F]{inner: f}
}

// Inner returns the negated child.
func (n *Not[T, F]) Inner() F {
	return n.inner
}

// Matches reports whether the child does not match subject.
func (n *Not[T, F]) Matches(subject T) bool {
	return !n.inner.Matches(subject)
}

// AsBool inverts the child's constancy, if known.
func (n *Not[T, F]) AsBool() (bool, bool) {
	v, ok := n.inner.AsBool()
	if !ok {
		return false, false
	}
	return !v, true
}

// Optimize optimizes the child in place.
func (n *Not[T, F]) Optimize() {
	n.inner.Optimize()
}

// TruthyDefault returns the negation of F's falsy value.
func (*Not[T, F]) TruthyDefault() *Not[T, F] {
	var zero F
	return &Not[T, F]{inner: zero.FalsyDefault()}
}

// FalsyDefault returns the negation of F's truthy value.
func (*Not[T, F]) FalsyDefault() *Not[T, F] {
	var zero F
	return &Not[T, F]{inner: zero.TruthyDefault()}
}

func (n *Not[T, F]) String() string {
	return "(not " + describe(n.inner) + ")"
}
