package graph

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/solatis/graphfilter/internal/types"
)

// Document is the serialized form of a Graph. Links refer to nodes by ref;
// a node without a ref is referenced by its id.
type Document struct {
	Nodes []NodeDoc `yaml:"nodes" json:"nodes"`
	Links []LinkDoc `yaml:"links,omitempty" json:"links,omitempty"`
}

// NodeDoc declares one node.
type NodeDoc struct {
	Ref   string  `yaml:"ref,omitempty" json:"ref,omitempty"`
	ID    string  `yaml:"id,omitempty" json:"id,omitempty"`
	Value *string `yaml:"value,omitempty" json:"value,omitempty"`
}

// LinkDoc declares one edge. Key is empty for unkeyed links.
type LinkDoc struct {
	From string `yaml:"from" json:"from"`
	To   string `yaml:"to" json:"to"`
	Key  string `yaml:"key,omitempty" json:"key,omitempty"`
}

// ParseDocument decodes a YAML (or JSON) graph document.
func ParseDocument(data []byte) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse graph document: %w", err)
	}
	return &doc, nil
}

// ReadDocument decodes a graph document from r.
func ReadDocument(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read graph document: %w", err)
	}
	return ParseDocument(data)
}

// LoadFile reads and builds the graph document at path.
func LoadFile(path string) (*Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open graph document: %w", err)
	}
	defer f.Close()

	doc, err := ReadDocument(f)
	if err != nil {
		return nil, err
	}
	return doc.Build()
}

// Marshal encodes d as YAML.
func (d *Document) Marshal() ([]byte, error) {
	return yaml.Marshal(d)
}

// refOf returns the reference a node is addressed by in links.
func (nd NodeDoc) refOf(index int) string {
	switch {
	case nd.Ref != "":
		return nd.Ref
	case nd.ID != "":
		return nd.ID
	default:
		return fmt.Sprintf("#%d", index)
	}
}

// Build resolves refs and returns the graph the document describes.
func (d *Document) Build() (*Graph, error) {
	g := New()
	byRef := make(map[string]*Node, len(d.Nodes))

	for i, nd := range d.Nodes {
		ref := nd.refOf(i)
		if _, exists := byRef[ref]; exists {
			return nil, fmt.Errorf("%w: %s", types.ErrDuplicateNodeRef, ref)
		}

		var id types.NodeID
		if nd.ID != "" {
			parsed, err := types.ParseNodeID(nd.ID)
			if err != nil {
				return nil, fmt.Errorf("node %s: invalid id %q: %w", ref, nd.ID, err)
			}
			id = parsed
		}

		n, err := g.Add(NodeAttrs{Ref: ref, ID: id, Value: nd.Value})
		if err != nil {
			return nil, fmt.Errorf("node %s: %w", ref, err)
		}
		byRef[ref] = n
	}

	resolve := func(ref string) (*Node, error) {
		n, ok := byRef[ref]
		if !ok {
			return nil, fmt.Errorf("%w: %s", types.ErrUnknownNodeRef, ref)
		}
		return n, nil
	}

	for i, ld := range d.Links {
		source, err := resolve(ld.From)
		if err != nil {
			return nil, fmt.Errorf("link %d: %w", i, err)
		}
		target, err := resolve(ld.To)
		if err != nil {
			return nil, fmt.Errorf("link %d: %w", i, err)
		}
		var key *Node
		if ld.Key != "" {
			if key, err = resolve(ld.Key); err != nil {
				return nil, fmt.Errorf("link %d: %w", i, err)
			}
		}
		if err := g.Link(source, target, key); err != nil {
			return nil, fmt.Errorf("link %d: %w", i, err)
		}
	}

	return g, nil
}

// Document returns the serialized form of g. Nodes keep their refs.
func (g *Graph) Document() *Document {
	doc := &Document{Nodes: make([]NodeDoc, 0, len(g.nodes))}
	for _, n := range g.nodes {
		nd := NodeDoc{Ref: n.Ref()}
		if id, ok := n.ID(); ok {
			nd.ID = id.String()
		}
		if v, ok := n.Value(); ok {
			nd.Value = &v
		}
		doc.Nodes = append(doc.Nodes, nd)
	}
	for _, n := range g.nodes {
		for _, e := range n.Edges() {
			ld := LinkDoc{From: n.Ref(), To: e.Target.Ref()}
			if e.Key != nil {
				ld.Key = e.Key.Ref()
			}
			doc.Links = append(doc.Links, ld)
		}
	}
	return doc
}
