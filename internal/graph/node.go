// Package graph provides an in-memory directed graph whose nodes can be
// matched by filter trees.
//
// A Graph is built once (from code, a Document or the database) and treated
// as immutable afterwards, so a built Graph may be read by any number of
// goroutines.
package graph

import (
	"github.com/solatis/graphfilter/internal/types"
)

// Node is a graph vertex. It carries an optional identifier, an optional
// scalar string value and an ordered list of outgoing edges.
type Node struct {
	ref      string
	id       types.NodeID
	value    string
	hasValue bool
	edges    []Edge
}

// Edge is an outgoing link. Key is nil for unkeyed links.
type Edge struct {
	Target *Node
	Key    *Node
}

// Ref returns the document reference the node was created under.
func (n *Node) Ref() string {
	return n.ref
}

// ID implements types.Data. Anonymous nodes report false.
func (n *Node) ID() (types.NodeID, bool) {
	return n.id, n.id != ""
}

// UniqueID returns the identifier, or "" for an anonymous node.
// Only identified nodes should be used where a types.Unique is expected.
func (n *Node) UniqueID() types.NodeID {
	return n.id
}

// Value returns the scalar value and whether the node has one.
func (n *Node) Value() (string, bool) {
	return n.value, n.hasValue
}

// Edges returns the outgoing edges in insertion order. The slice is shared.
func (n *Node) Edges() []Edge {
	return n.edges
}

// ProvideLinks implements types.Data.
func (n *Node) ProvideLinks(links types.Links) {
	for _, e := range n.edges {
		var sig types.Signal
		if e.Key == nil {
			// untyped nil keeps the interface nil for unkeyed links
			sig = links.Push(e.Target, nil)
		} else {
			sig = links.Push(e.Target, e.Key)
		}
		if sig == types.Stop {
			return
		}
	}
}

// ProvideValue implements types.Data.
func (n *Node) ProvideValue(values types.Values) {
	if n.hasValue {
		values.Text(n.value)
	}
}

var (
	_ types.Data   = (*Node)(nil)
	_ types.Unique = (*Node)(nil)
)
