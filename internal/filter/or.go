package filter

import "slices"

/*
 * Disjunction combinator.
 *
 * Mirror image of And with true and false swapped. Or matches when any child
 * matches. The empty sequence is the falsy identity (vacuous "none"); the
 * truthy identity is a one-element sequence holding the child type's own
 * truthy value.
 *
 * Optimization drops constantly false children, keeps unknown children, and
 * short-circuits on the first constantly true child: that child and every
 * later child are dropped without being optimized and the node collapses to
 * the truthy identity.
 */

// Or is the disjunction of its children.
type Or[T any, F Child[T, F]] struct {
	items []F
}

// NewOr returns a disjunction over a copy of items, in order.
func NewOr[T any, F Child[T, F]](items ...F) *Or[T, F] {
	return &Or[T, F]{items: slices.Clone(items)}
}

// Items returns the children in evaluation order. The slice is shared with o.
func (o *Or[T, F]) Items() []F {
	return o.items
}

// Len returns the number of children.
func (o *Or[T, F]) Len() int {
	return len(o.items)
}

// Push appends a child.
func (o *Or[T, F]) Push(f F) {
	o.items = append(o.items, f)
}

// Matches reports whether any child matches subject. Stops at the first
// child that does.
func (o *Or[T, F]) Matches(subject T) bool {
	for _, f := range o.items {
		if f.Matches(subject) {
			return true
		}
	}
	return false
}

// AsBool returns (true, true) if a constantly true child is found before any
// unknown child, (false, false) on the first unknown child, and (false, true)
// when every child is constantly false.
func (o *Or[T, F]) AsBool() (bool, bool) {
	for _, f := range o.items {
		v, ok := f.AsBool()
		if !ok {
			return false, false
		}
		if v {
			return true, true
		}
	}
	return false, true
}

// Optimize folds constant children.
func (o *Or[T, F]) Optimize() {
	kept := o.items[:0]
	shortCircuit := false
	for i := range o.items {
		f := o.items[i]
		f.Optimize()
		v, ok := f.AsBool()
		if !ok {
			kept = append(kept, f)
			continue
		}
		if v {
			shortCircuit = true
			break
		}
	}
	clear(o.items[len(kept):])
	o.items = kept

	if shortCircuit {
		*o = *o.TruthyDefault()
	}
}

// TruthyDefault returns a disjunction holding only F's truthy value.
func (*Or[T, F]) TruthyDefault() *Or[T, F] {
	var zero F
	return &Or[T, F]{items: []F{zero.TruthyDefault()}}
}

// FalsyDefault returns the empty disjunction.
func (*Or[T, F]) FalsyDefault() *Or[T, F] {
	return &Or[T, F]{}
}

func (o *Or[T, F]) String() string {
	return joinItems("or", o.items)
}
