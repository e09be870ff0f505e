// Package filter implements a composable predicate algebra with a
// constant-folding optimizer.
//
// A filter tree is built from leaves (Bool, Text and the domain leaves of
// DataFilter and LinkFilter) and the structural combinators And, Or and Not.
// Callers build a tree, optionally call Optimize once, then call Matches
// repeatedly. Optimize folds every sub-tree whose result does not depend on
// the subject into the canonical truthy or falsy value of its type, so dead
// branches are never visited during matching.
//
// Matching never mutates a tree. Concurrent Matches calls on the same tree are
// safe; Optimize requires exclusive access.
package filter

// Filter decides true or false for a subject of type T.
type Filter[T any] interface {
	Matches(subject T) bool
}

// Optimizable is implemented by filters that can report and fold constancy.
//
// AsBool returns (value, true) when the filter gives value for every subject
// and (false, false) when the result depends on the subject. Optimize rewrites
// the filter in place, bottom-up; afterwards AsBool is stable and a second
// Optimize changes nothing observable.
type Optimizable interface {
	Optimize()
	AsBool() (value bool, known bool)
}

// Child is the contract a child type F must meet to be held by the structural
// combinators. TruthyDefault and FalsyDefault return the canonical "always
// true" and "always false" instances of F. They must not read their receiver:
// the combinators call them on the zero value of F.
type Child[T, F any] interface {
	Filter[T]
	Optimizable
	TruthyDefault() F
	FalsyDefault() F
}

// Leaf supplies the default Optimizable behaviour for filters without
// internal structure: Optimize does nothing and constancy is unknown.
type Leaf struct{}

// Optimize is a no-op.
func (Leaf) Optimize() {}

// AsBool reports unknown constancy.
func (Leaf) AsBool() (bool, bool) {
	return false, false
}

// Bool is the boolean literal filter. It matches every subject of type T
// with its own value.
type Bool[T any] bool

// True returns the literal true filter for subjects of type T.
func True[T any]() Bool[T] {
	return Bool[T](true)
}

// False returns the literal false filter for subjects of type T.
func False[T any]() Bool[T] {
	return Bool[T](false)
}

// Matches returns b regardless of subject.
func (b Bool[T]) Matches(T) bool {
	return bool(b)
}

// Optimize is a no-op; literals are already canonical.
func (b Bool[T]) Optimize() {}

// AsBool always reports b.
func (b Bool[T]) AsBool() (bool, bool) {
	return bool(b), true
}

// TruthyDefault returns true.
func (Bool[T]) TruthyDefault() Bool[T] {
	return true
}

// FalsyDefault returns false.
func (Bool[T]) FalsyDefault() Bool[T] {
	return false
}

func (b Bool[T]) String() string {
	if b {
		return "true"
	}
	return "false"
}
