package graph

import (
	"context"
	"fmt"

	"github.com/solatis/graphfilter/internal/filter"
	"github.com/solatis/graphfilter/internal/types"
)

// NodeAttrs describes a node to add. An empty ID makes the node anonymous and
// a nil Value leaves it without a scalar value. An empty Ref defaults to the
// ID, or to "#<position>" for anonymous nodes.
type NodeAttrs struct {
	Ref   string
	ID    types.NodeID
	Value *string
}

// Graph is an ordered set of nodes with an identifier index and a value index.
type Graph struct {
	nodes   []*Node
	members map[*Node]struct{}
	byID    map[types.NodeID]*Node
	byValue map[string][]*Node
	links   int
}

// New returns an empty graph.
func New() *Graph {
	return &Graph{
		members: make(map[*Node]struct{}),
		byID:    make(map[types.NodeID]*Node),
		byValue: make(map[string][]*Node),
	}
}

// Add creates a node. Identifiers must be unique within the graph.
func (g *Graph) Add(attrs NodeAttrs) (*Node, error) {
	if attrs.ID != "" {
		if _, exists := g.byID[attrs.ID]; exists {
			return nil, fmt.Errorf("%w: %s", types.ErrDuplicateNodeID, attrs.ID)
		}
	}

	ref := attrs.Ref
	if ref == "" {
		ref = NodeDoc{ID: string(attrs.ID)}.refOf(len(g.nodes))
	}

	n := &Node{ref: ref, id: attrs.ID}
	if attrs.Value != nil {
		n.value = *attrs.Value
		n.hasValue = true
		g.byValue[n.value] = append(g.byValue[n.value], n)
	}
	if n.id != "" {
		g.byID[n.id] = n
	}

	g.nodes = append(g.nodes, n)
	g.members[n] = struct{}{}
	return n, nil
}

// Link adds an edge from source to target. key may be nil for an unkeyed
// link. All nodes must belong to g.
func (g *Graph) Link(source, target, key *Node) error {
	for _, n := range []*Node{source, target} {
		if !g.contains(n) {
			return fmt.Errorf("failed to link: %w", types.ErrNodeNotFound)
		}
	}
	if key != nil && !g.contains(key) {
		return fmt.Errorf("failed to link key: %w", types.ErrNodeNotFound)
	}

	source.edges = append(source.edges, Edge{Target: target, Key: key})
	g.links++
	return nil
}

func (g *Graph) contains(n *Node) bool {
	if n == nil {
		return false
	}
	_, ok := g.members[n]
	return ok
}

// Get returns the node with the given identifier.
func (g *Graph) Get(id types.NodeID) (*Node, bool) {
	n, ok := g.byID[id]
	return n, ok
}

// Len returns the number of nodes.
func (g *Graph) Len() int {
	return len(g.nodes)
}

// LinkCount returns the number of edges.
func (g *Graph) LinkCount() int {
	return g.links
}

// Nodes returns every node in insertion order. The slice is shared.
func (g *Graph) Nodes() []*Node {
	return g.nodes
}

// Select returns the nodes matching f in insertion order, at most limit of
// them when limit > 0.
//
// f is not modified; callers that match the same filter repeatedly should
// Optimize it first. A constantly false filter returns nil without scanning
// and a text filter is answered from the value index.
func (g *Graph) Select(f *filter.DataFilter, limit int) []*Node {
	out, _ := g.SelectContext(context.Background(), f, limit)
	return out
}

// cancelCheckInterval is how many candidates SelectContext matches between
// context checks.
const cancelCheckInterval = 1024

// SelectContext is Select with cancellation. It returns ctx.Err() if ctx is
// done before the scan completes.
func (g *Graph) SelectContext(ctx context.Context, f *filter.DataFilter, limit int) ([]*Node, error) {
	if v, ok := f.AsBool(); ok && !v {
		return nil, nil
	}

	candidates := g.nodes
	if value, ok := f.Exact(); ok {
		candidates = g.byValue[value]
	}

	var out []*Node
	for i, n := range candidates {
		if i%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		if !f.Matches(n) {
			continue
		}
		out = append(out, n)
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}

// Count returns how many nodes match f.
func (g *Graph) Count(f *filter.DataFilter) int {
	return len(g.Select(f, 0))
}
