package filter

import (
	"github.com/solatis/graphfilter/internal/types"
)

/*
 * Node (data) filter.
 *
 * DataFilter is a closed tagged union over the DataKind variants. The
 * structural variants reuse the generic And/Or/Not combinators with
 * *DataFilter as the child type, so the pruning algorithm is shared.
 *
 * Two-level collapse: Optimize first optimizes the active variant's nested
 * filter, then re-derives constancy of the whole value and, if it is known,
 * overwrites the value with DataAny or DataNone. This is what lets a data
 * filter nested in a Not or in a combinator's child slot fold like any other
 * child.
 *
 * Link search: DataLinked enumerates the subject's links through the
 * types.Links protocol and returns types.Stop on the first matching link, so
 * the producer stops enumerating.
 */

// DataKind tags the active variant of a DataFilter.
type DataKind int

const (
	// DataAny matches every node. It is the zero value.
	DataAny DataKind = iota
	// DataOr matches when any child matches.
	DataOr
	// DataAnd matches when every child matches.
	DataAnd
	// DataNot inverts its child.
	DataNot
	// DataText matches nodes whose scalar value equals a string.
	DataText
	// DataUnique matches nodes that carry an identifier.
	DataUnique
	// DataID matches nodes whose identifier equals a value.
	DataID
	// DataNotID matches nodes whose identifier is absent or differs from a value.
	DataNotID
	// DataLinked matches nodes with at least one outgoing link accepted by a LinkFilter.
	DataLinked
	// DataNone matches nothing.
	DataNone
)

// String returns the string representation of the DataKind.
func (k DataKind) String() string {
	switch k {
	case DataAny:
		return "ANY"
	case DataOr:
		return "OR"
	case DataAnd:
		return "AND"
	case DataNot:
		return "NOT"
	case DataText:
		return "TEXT"
	case DataUnique:
		return "UNIQUE"
	case DataID:
		return "ID"
	case DataNotID:
		return "NOT_ID"
	case DataLinked:
		return "LINKED"
	case DataNone:
		return "NONE"
	default:
		return "UNKNOWN"
	}
}

// Combinators instantiated over data filters.
type (
	DataAndFilter = And[types.Data, *DataFilter]
	DataOrFilter  = Or[types.Data, *DataFilter]
	DataNotFilter = Not[types.Data, *DataFilter]
)

// DataFilter matches graph nodes. The zero value matches every node.
type DataFilter struct {
	kind   DataKind
	and    *DataAndFilter
	or     *DataOrFilter
	not    *DataNotFilter
	text   Text
	id     types.NodeID
	linked *LinkFilter
}

// AnyData returns a filter matching every node.
func AnyData() *DataFilter {
	return &DataFilter{kind: DataAny}
}

// NoData returns a filter matching no node.
func NoData() *DataFilter {
	return &DataFilter{kind: DataNone}
}

// TextEquals matches nodes whose scalar value is exactly s.
func TextEquals(s string) *DataFilter {
	return &DataFilter{kind: DataText, text: NewText(s)}
}

// Unique matches nodes that carry an identifier.
func Unique() *DataFilter {
	return &DataFilter{kind: DataUnique}
}

// IDEquals matches the node identified by id.
func IDEquals(id types.NodeID) *DataFilter {
	return &DataFilter{kind: DataID, id: id}
}

// IDNotEquals matches every node except the one identified by id, including
// nodes without an identifier.
func IDNotEquals(id types.NodeID) *DataFilter {
	return &DataFilter{kind: DataNotID, id: id}
}

// Eq matches the same node as u.
func Eq(u types.Unique) *DataFilter {
	return IDEquals(u.UniqueID())
}

// Ne matches every node except u.
func Ne(u types.Unique) *DataFilter {
	return IDNotEquals(u.UniqueID())
}

// Linked matches nodes with an outgoing link accepted by l. A nil l accepts
// any link.
func Linked(l *LinkFilter) *DataFilter {
	if l == nil {
		l = AnyLink()
	}
	return &DataFilter{kind: DataLinked, linked: l}
}

// MatchAll returns the conjunction of fs.
func MatchAll(fs ...*DataFilter) *DataFilter {
	return &DataFilter{kind: DataAnd, and: NewAnd[types.Data](fs...)}
}

// MatchAny returns the disjunction of fs.
func MatchAny(fs ...*DataFilter) *DataFilter {
	return &DataFilter{kind: DataOr, or: NewOr[types.Data](fs...)}
}

// And combines f and g by conjunction. When f already is a conjunction, g is
// appended to it instead of nesting a new one. f must not be used afterwards
// except through the result.
func (f *DataFilter) And(g *DataFilter) *DataFilter {
	if f.kind == DataAnd {
		f.and.Push(g)
		return f
	}
	return MatchAll(f, g)
}

// Or combines f and g by disjunction, flattening like And.
func (f *DataFilter) Or(g *DataFilter) *DataFilter {
	if f.kind == DataOr {
		f.or.Push(g)
		return f
	}
	return MatchAny(f, g)
}

// Not returns the negation of f.
func (f *DataFilter) Not() *DataFilter {
	return &DataFilter{kind: DataNot, not: NewNot[types.Data](f)}
}

// Kind returns the active variant.
func (f *DataFilter) Kind() DataKind {
	return f.kind
}

// Conjunction returns the children of a DataAnd filter, nil otherwise.
func (f *DataFilter) Conjunction() *DataAndFilter {
	return f.and
}

// Disjunction returns the children of a DataOr filter, nil otherwise.
func (f *DataFilter) Disjunction() *DataOrFilter {
	return f.or
}

// Negation returns the wrapped filter of a DataNot filter, nil otherwise.
func (f *DataFilter) Negation() *DataNotFilter {
	return f.not
}

// TextFilter returns the text leaf of a DataText filter.
func (f *DataFilter) TextFilter() Text {
	return f.text
}

// Identifier returns the identifier compared by DataID and DataNotID filters.
func (f *DataFilter) Identifier() types.NodeID {
	return f.id
}

// Links returns the link filter of a DataLinked filter, nil otherwise.
func (f *DataFilter) Links() *LinkFilter {
	return f.linked
}

// Exact returns the single scalar value a DataText filter accepts.
func (f *DataFilter) Exact() (string, bool) {
	if f.kind != DataText {
		return "", false
	}
	return f.text.Exact()
}

// Matches reports whether node d satisfies f.
func (f *DataFilter) Matches(d types.Data) bool {
	switch f.kind {
	case DataAny:
		return true
	case DataNone:
		return false
	case DataAnd:
		return f.and.Matches(d)
	case DataOr:
		return f.or.Matches(d)
	case DataNot:
		return f.not.Matches(d)
	case DataUnique:
		_, ok := d.ID()
		return ok
	case DataID:
		id, ok := d.ID()
		return ok && id == f.id
	case DataNotID:
		id, ok := d.ID()
		return !ok || id != f.id
	case DataText:
		m := valueMatcher{text: f.text}
		d.ProvideValue(&m)
		return m.found
	case DataLinked:
		s := linkSearcher{filter: f.linked}
		d.ProvideLinks(&s)
		return s.found
	default:
		return false
	}
}

// AsBool reports constancy of the active variant. A DataLinked filter is
// constantly false when its link filter is; otherwise it depends on whether
// the node has links at all.
func (f *DataFilter) AsBool() (bool, bool) {
	switch f.kind {
	case DataAny:
		return true, true
	case DataNone:
		return false, true
	case DataAnd:
		return f.and.AsBool()
	case DataOr:
		return f.or.AsBool()
	case DataNot:
		return f.not.AsBool()
	case DataText:
		return f.text.AsBool()
	case DataLinked:
		if v, ok := f.linked.AsBool(); ok && !v {
			return false, true
		}
		return false, false
	default:
		return false, false
	}
}

// Optimize folds the nested filter, then collapses f to DataAny or DataNone
// when its constancy is known.
func (f *DataFilter) Optimize() {
	switch f.kind {
	case DataAnd:
		f.and.Optimize()
	case DataOr:
		f.or.Optimize()
	case DataNot:
		f.not.Optimize()
	case DataText:
		f.text.Optimize()
	case DataLinked:
		f.linked.Optimize()
	}

	if v, ok := f.AsBool(); ok {
		if v {
			*f = *f.TruthyDefault()
		} else {
			*f = *f.FalsyDefault()
		}
	}
}

// TruthyDefault returns a DataAny filter.
func (*DataFilter) TruthyDefault() *DataFilter {
	return AnyData()
}

// FalsyDefault returns a DataNone filter.
func (*DataFilter) FalsyDefault() *DataFilter {
	return NoData()
}

func (f *DataFilter) String() string {
	switch f.kind {
	case DataAny:
		return "any"
	case DataNone:
		return "none"
	case DataAnd:
		return f.and.String()
	case DataOr:
		return f.or.String()
	case DataNot:
		return f.not.String()
	case DataUnique:
		return "unique"
	case DataID:
		return "id=" + f.id.String()
	case DataNotID:
		return "id!=" + f.id.String()
	case DataText:
		return "text=" + f.text.String()
	case DataLinked:
		return "(linked " + f.linked.String() + ")"
	default:
		return f.kind.String()
	}
}

// valueMatcher records whether the scalar value pushed by a node satisfies text.
type valueMatcher struct {
	text  Text
	found bool
}

func (m *valueMatcher) Text(value string) {
	if !m.found && m.text.Matches(value) {
		m.found = true
	}
}

// linkSearcher stops enumeration at the first link accepted by filter.
// Unkeyed links are matched target-only; keyed links as a (key, target) pair.
type linkSearcher struct {
	filter *LinkFilter
	found  bool
}

func (s *linkSearcher) Push(target types.Data, key types.Data) types.Signal {
	if s.filter.Matches(types.LinkOf(target, key)) {
		s.found = true
		return types.Stop
	}
	return types.Continue
}
