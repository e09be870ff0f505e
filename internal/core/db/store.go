package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/solatis/graphfilter/internal/graph"
)

// nodeRow maps a row of the nodes table.
type nodeRow struct {
	NodeKey  string         `db:"node_key"`
	Position int            `db:"position"`
	NodeID   sql.NullString `db:"node_id"`
	Value    sql.NullString `db:"value"`
}

// linkRow maps a row of the links table. KeyKey is NULL for unkeyed links.
type linkRow struct {
	LinkKey   int64          `db:"link_key"`
	SourceKey string         `db:"source_key"`
	TargetKey string         `db:"target_key"`
	KeyKey    sql.NullString `db:"key_key"`
}

// GraphStore persists a single graph. Save replaces the stored graph
// atomically; Load rebuilds it in document order.
type GraphStore struct {
	db      *sqlx.DB
	queries *Queries
}

// NewGraphStore creates a store over db using the named queries.
func NewGraphStore(db *sqlx.DB, queries *Queries) (*GraphStore, error) {
	if db == nil {
		return nil, fmt.Errorf("db cannot be nil")
	}
	if queries == nil {
		return nil, fmt.Errorf("queries cannot be nil")
	}
	return &GraphStore{db: db, queries: queries}, nil
}

// Save validates doc and replaces the stored graph with it in one transaction.
// Returns the number of nodes and links written.
func (s *GraphStore) Save(ctx context.Context, doc *graph.Document) (int, int, error) {
	// Building resolves refs and normalizes ids before anything is written
	g, err := doc.Build()
	if err != nil {
		return 0, 0, fmt.Errorf("invalid graph document: %w", err)
	}
	normalized := g.Document()

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	q := s.queries.WithTx(tx)

	if err := s.replace(ctx, q, normalized); err != nil {
		tx.Rollback()
		return 0, 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, 0, fmt.Errorf("failed to commit graph: %w", err)
	}
	return len(normalized.Nodes), len(normalized.Links), nil
}

func (s *GraphStore) replace(ctx context.Context, q *Queries, doc *graph.Document) error {
	if _, err := q.Exec(ctx, "delete-links"); err != nil {
		return fmt.Errorf("failed to clear links: %w", err)
	}
	if _, err := q.Exec(ctx, "delete-nodes"); err != nil {
		return fmt.Errorf("failed to clear nodes: %w", err)
	}

	for i, n := range doc.Nodes {
		if _, err := q.Exec(ctx, "insert-node", n.Ref, i, nullString(n.ID), nullStringPtr(n.Value)); err != nil {
			return fmt.Errorf("failed to insert node %s: %w", n.Ref, err)
		}
	}

	for i, l := range doc.Links {
		if _, err := q.Exec(ctx, "insert-link", i, l.From, l.To, nullString(l.Key)); err != nil {
			return fmt.Errorf("failed to insert link %d: %w", i, err)
		}
	}
	return nil
}

// LoadDocument reads the stored graph in its serialized form.
func (s *GraphStore) LoadDocument(ctx context.Context) (*graph.Document, error) {
	var nodes []nodeRow
	if err := s.queries.Select(ctx, "list-nodes", &nodes); err != nil {
		return nil, fmt.Errorf("failed to list nodes: %w", err)
	}

	var links []linkRow
	if err := s.queries.Select(ctx, "list-links", &links); err != nil {
		return nil, fmt.Errorf("failed to list links: %w", err)
	}

	doc := &graph.Document{Nodes: make([]graph.NodeDoc, 0, len(nodes))}
	for _, r := range nodes {
		nd := graph.NodeDoc{Ref: r.NodeKey, ID: r.NodeID.String}
		if r.Value.Valid {
			v := r.Value.String
			nd.Value = &v
		}
		doc.Nodes = append(doc.Nodes, nd)
	}
	for _, r := range links {
		doc.Links = append(doc.Links, graph.LinkDoc{
			From: r.SourceKey,
			To:   r.TargetKey,
			Key:  r.KeyKey.String,
		})
	}
	return doc, nil
}

// Load reads and builds the stored graph.
func (s *GraphStore) Load(ctx context.Context) (*graph.Graph, error) {
	doc, err := s.LoadDocument(ctx)
	if err != nil {
		return nil, err
	}
	g, err := doc.Build()
	if err != nil {
		return nil, fmt.Errorf("stored graph is inconsistent: %w", err)
	}
	return g, nil
}

// Stats returns the number of stored nodes and links.
func (s *GraphStore) Stats(ctx context.Context) (int, int, error) {
	var nodes, links int
	if err := s.queries.Get(ctx, "count-nodes", &nodes); err != nil {
		return 0, 0, fmt.Errorf("failed to count nodes: %w", err)
	}
	if err := s.queries.Get(ctx, "count-links", &links); err != nil {
		return 0, 0, fmt.Errorf("failed to count links: %w", err)
	}
	return nodes, links, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullStringPtr(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
