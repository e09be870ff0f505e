// Package types provides the subject model shared across graphfilter components.
//
// The filter algebra consumes graph data only through the interfaces declared
// here: an optional identifier, a link enumeration callback protocol and a
// scalar value callback protocol. Concrete graphs live in internal/graph.
package types

// NodeID is an opaque node identifier.
// String-backed so identifiers compare with == and serialize as plain strings.
type NodeID string

// String implements fmt.Stringer.
func (id NodeID) String() string {
	return string(id)
}

// Signal is returned by a Links callback to steer enumeration.
type Signal int

const (
	// Continue asks the producer to push the next link.
	Continue Signal = iota
	// Stop asks the producer to end enumeration immediately.
	Stop
)

// String implements fmt.Stringer.
func (s Signal) String() string {
	switch s {
	case Continue:
		return "continue"
	case Stop:
		return "stop"
	default:
		return "unknown"
	}
}

// Links receives the outgoing links of a Data subject, one Push per link.
// A nil key means the link is unkeyed. Producers must stop pushing as soon as
// Push returns Stop.
type Links interface {
	Push(target Data, key Data) Signal
}

// Values receives the scalar value a Data subject exposes, if any.
// Only string scalars are reported.
type Values interface {
	Text(value string)
}

// Data is a graph entity that filters can be matched against.
type Data interface {
	// ID returns the node identifier and whether the node has one.
	ID() (NodeID, bool)

	// ProvideLinks pushes every outgoing link into links until it returns Stop.
	ProvideLinks(links Links)

	// ProvideValue reports the node's scalar value to values, if it has one.
	ProvideValue(values Values)
}

// Unique is a Data subject that always carries an identifier.
type Unique interface {
	Data
	UniqueID() NodeID
}

// Link is a directed edge with a mandatory target and an optional key.
type Link interface {
	Key() (Data, bool)
	Target() Data
}

// LinkOf builds a Link value from a target and an optional key (nil for unkeyed).
func LinkOf(target, key Data) Link {
	return link{target: target, key: key}
}

type link struct {
	target Data
	key    Data
}

func (l link) Key() (Data, bool) {
	return l.key, l.key != nil
}

func (l link) Target() Data {
	return l.target
}
