package filter

import "github.com/solatis/graphfilter/internal/types"

// LinkKind tags the active variant of a LinkFilter.
type LinkKind int

const (
	// LinkAny matches every link. It is the zero value.
	LinkAny LinkKind = iota
	// LinkKey matches keyed links whose key satisfies a DataFilter.
	LinkKey
	// LinkTarget matches links whose target satisfies a DataFilter.
	LinkTarget
	// LinkOr matches when any child matches.
	LinkOr
	// LinkAnd matches when every child matches.
	LinkAnd
	// LinkNot inverts its child.
	LinkNot
	// LinkNone matches nothing.
	LinkNone
)

// String returns the string representation of the LinkKind.
func (k LinkKind) String() string {
	switch k {
	case LinkAny:
		return "ANY"
	case LinkKey:
		return "KEY"
	case LinkTarget:
		return "TARGET"
	case LinkOr:
		return "OR"
	case LinkAnd:
		return "AND"
	case LinkNot:
		return "NOT"
	case LinkNone:
		return "NONE"
	default:
		return "UNKNOWN"
	}
}

// Combinators instantiated over link filters.
type (
	LinkAndFilter = And[types.Link, *LinkFilter]
	LinkOrFilter  = Or[types.Link, *LinkFilter]
	LinkNotFilter = Not[types.Link, *LinkFilter]
)

// LinkFilter matches directed links between nodes. The zero value matches
// every link. It follows the same two-level collapse as DataFilter.
type LinkFilter struct {
	kind LinkKind
	node *DataFilter
	and  *LinkAndFilter
	or   *LinkOrFilter
	not  *LinkNotFilter
}

// AnyLink returns a filter matching every link.
func AnyLink() *LinkFilter {
	return &LinkFilter{kind: LinkAny}
}

// NoLink returns a filter matching no link.
func NoLink() *LinkFilter {
	return &LinkFilter{kind: LinkNone}
}

// KeyMatches matches keyed links whose key satisfies f. A nil f accepts any
// key, so the filter then only requires the link to be keyed.
func KeyMatches(f *DataFilter) *LinkFilter {
	if f == nil {
		f = AnyData()
	}
	return &LinkFilter{kind: LinkKey, node: f}
}

// TargetMatches matches links whose target satisfies f. A nil f accepts any
// target.
func TargetMatches(f *DataFilter) *LinkFilter {
	if f == nil {
		f = AnyData()
	}
	return &LinkFilter{kind: LinkTarget, node: f}
}

// LinkAll returns the conjunction of fs.
func LinkAll(fs ...*LinkFilter) *LinkFilter {
	return &LinkFilter{kind: LinkAnd, and: NewAnd[types.Link](fs...)}
}

// LinkAnyOf returns the disjunction of fs.
func LinkAnyOf(fs ...*LinkFilter) *LinkFilter {
	return &LinkFilter{kind: LinkOr, or: NewOr[types.Link](fs...)}
}

// And combines f and g by conjunction, appending to f when it already is one.
// f must not be used afterwards except through the result.
func (f *LinkFilter) And(g *LinkFilter) *LinkFilter {
	if f.kind == LinkAnd {
		f.and.Push(g)
		return f
	}
	return LinkAll(f, g)
}

// Or combines f and g by disjunction, flattening like And.
func (f *LinkFilter) Or(g *LinkFilter) *LinkFilter {
	if f.kind == LinkOr {
		f.or.Push(g)
		return f
	}
	return LinkAnyOf(f, g)
}

// Not returns the negation of f.
func (f *LinkFilter) Not() *LinkFilter {
	return &LinkFilter{kind: LinkNot, not: NewNot[types.Link](f)}
}

// Kind returns the active variant.
func (f *LinkFilter) Kind() LinkKind {
	return f.kind
}

// Node returns the node filter of a LinkKey or LinkTarget filter, nil otherwise.
func (f *LinkFilter) Node() *DataFilter {
	return f.node
}

// Conjunction returns the children of a LinkAnd filter, nil otherwise.
func (f *LinkFilter) Conjunction() *LinkAndFilter {
	return f.and
}

// Disjunction returns the children of a LinkOr filter, nil otherwise.
func (f *LinkFilter) Disjunction() *LinkOrFilter {
	return f.or
}

// Negation returns the wrapped filter of a LinkNot filter, nil otherwise.
func (f *LinkFilter) Negation() *LinkNotFilter {
	return f.not
}

// Matches reports whether link l satisfies f.
func (f *LinkFilter) Matches(l types.Link) bool {
	switch f.kind {
	case LinkAny:
		return true
	case LinkNone:
		return false
	case LinkKey:
		key, ok := l.Key()
		return ok && f.node.Matches(key)
	case LinkTarget:
		return f.node.Matches(l.Target())
	case LinkAnd:
		return f.and.Matches(l)
	case LinkOr:
		return f.or.Matches(l)
	case LinkNot:
		return f.not.Matches(l)
	default:
		return false
	}
}

// AsBool reports constancy of the active variant. The target of a link is
// mandatory, so LinkTarget inherits its node filter's constancy. The key is
// optional: LinkKey is only constant when its node filter is constantly false.
func (f *LinkFilter) AsBool() (bool, bool) {
	switch f.kind {
	case LinkAny:
		return true, true
	case LinkNone:
		return false, true
	case LinkKey:
		if v, ok := f.node.AsBool(); ok && !v {
			return false, true
		}
		return false, false
	case LinkTarget:
		return f.node.AsBool()
	case LinkAnd:
		return f.and.AsBool()
	case LinkOr:
		return f.or.AsBool()
	case LinkNot:
		return f.not.AsBool()
	default:
		return false, false
	}
}

// Optimize folds the nested filter, then collapses f to LinkAny or LinkNone
// when its constancy is known.
func (f *LinkFilter) Optimize() {
	switch f.kind {
	case LinkKey, LinkTarget:
		f.node.Optimize()
	case LinkAnd:
		f.and.Optimize()
	case LinkOr:
		f.or.Optimize()
	case LinkNot:
		f.not.Optimize()
	}

	if v, ok := f.AsBool(); ok {
		if v {
			*f = *f.TruthyDefault()
		} else {
			*f = *f.FalsyDefault()
		}
	}
}

// TruthyDefault returns a LinkAny filter.
func (*LinkFilter) TruthyDefault() *LinkFilter {
	return AnyLink()
}

// FalsyDefault returns a LinkNone filter.
func (*LinkFilter) FalsyDefault() *LinkFilter {
	return NoLink()
}

func (f *LinkFilter) String() string {
	switch f.kind {
	case LinkAny:
		return "any"
	case LinkNone:
		return "none"
	case LinkKey:
		return "(key " + f.node.String() + ")"
	case LinkTarget:
		return "(target " + f.node.String() + ")"
	case LinkAnd:
		return f.and.String()
	case LinkOr:
		return f.or.String()
	case LinkNot:
		return f.not.String()
	default:
		return f.kind.String()
	}
}
