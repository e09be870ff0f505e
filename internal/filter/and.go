package filter

import (
	"slices"
	"strings"
)

/*
 * Conjunction combinator.
 *
 * And holds an ordered sequence of children and matches when every child
 * matches. The empty sequence is the truthy identity (vacuous "all"); the
 * falsy identity is a one-element sequence holding the child type's own falsy
 * value, since an empty conjunction already means true.
 *
 * Optimization workflow:
 *   1. Scan children left to right, optimizing each before asking AsBool
 *   2. Constantly true children are removed, unknown children are kept
 *   3. The first constantly false child short-circuits: it and every later
 *      child are dropped without being optimized
 *   4. A short-circuited node collapses to the falsy identity
 *
 * Constancy is evaluated in the same left-to-right order: the first unknown
 * or first false child, whichever comes first, decides the early return.
 */

// And is the conjunction of its children.
type And[T any, F Child[T, F]] struct {
	items []F
}

// NewAnd returns a conjunction over a copy of items, in order.
func NewAnd[T any, F Child[T, F]](items ...F) *And[T, F] {
	return &And[T, F]{items: slices.Clone(items)}
}

// Items returns the children in evaluation order. The slice is shared with a.
func (a *And[T, F]) Items() []F {
	return a.items
}

// Len returns the number of children.
func (a *And[T, F]) Len() int {
	return len(a.items)
}

// Push appends a child.
func (a *And[T, F]) Push(f F) {
	a.items = append(a.items, f)
}

// Matches reports whether every child matches subject. Stops at the first
// child that does not.
func (a *And[T, F]) Matches(subject T) bool {
	for _, f := range a.items {
		if !f.Matches(subject) {
			return false
		}
	}
	return true
}

// AsBool returns (false, true) if a constantly false child is found before
// any unknown child, (false, false) on the first unknown child, and
// (true, true) when every child is constantly true.
func (a *And[T, F]) AsBool() (bool, bool) {
	for _, f := range a.items {
		v, ok := f.AsBool()
		if !ok {
			return false, false
		}
		if !v {
			return false, true
		}
	}
	return true, true
}

// Optimize folds constant children. See the file comment for the algorithm.
func (a *And[T, F]) Optimize() {
	kept := a.items[:0]
	shortCircuit := false
	for i := range a.items {
		f := a.items[i]
		f.Optimize()
		v, ok := f.AsBool()
		if !ok {
			kept = append(kept, f)
			continue
		}
		if !v {
			// children after a constant false are never optimized
			shortCircuit = true
			break
		}
	}
	clear(a.items[len(kept):])
	a.items = kept

	if shortCircuit {
		*a = *a.FalsyDefault()
	}
}

// TruthyDefault returns the empty conjunction.
func (*And[T, F]) TruthyDefault() *And[T, F] {
	return &And[T, F]{}
}

// FalsyDefault returns a conjunction holding only F's falsy value.
func (*And[T, F]) FalsyDefault() *And[T, F] {
	var zero F
	return &And[T, F]{items: []F{zero.FalsyDefault()}}
}

func (a *And[T, F]) String() string {
	return joinItems("and", a.items)
}

func joinItems[F any](op string, items []F) string {
	var b strings.Builder
	b.WriteString("(")
	b.WriteString(op)
	for _, f := range items {
		b.WriteString(" ")
		b.WriteString(describe(f))
	}
	b.WriteString(")")
	return b.String()
}
