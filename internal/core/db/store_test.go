package db

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solatis/graphfilter/internal/filter"
	"github.com/solatis/graphfilter/internal/graph"
	"github.com/solatis/graphfilter/internal/types"
)

const storeYAML = `
nodes:
  - ref: alice
    id: 018f4c3e-7a10-7cc0-9a4e-000000000001
    value: Alice
  - ref: bob
    id: 018f4c3e-7a10-7cc0-9a4e-000000000002
  - ref: knows
    value: knows
  - ref: blank
    value: ""
links:
  - from: alice
    to: bob
    key: knows
  - from: bob
    to: alice
`

func newTestStore(t *testing.T) *GraphStore {
	t.Helper()
	database := openTestDB(t)
	queries, err := LoadQueries(database)
	require.NoError(t, err)
	store, err := NewGraphStore(database, queries)
	require.NoError(t, err)
	return store
}

func parseDoc(t *testing.T, s string) *graph.Document {
	t.Helper()
	doc, err := graph.ParseDocument([]byte(s))
	require.NoError(t, err)
	return doc
}

func TestNewGraphStore_NilArgs(t *testing.T) {
	_, err := NewGraphStore(nil, &Queries{})
	assert.EqualError(t, err, "db cannot be nil")

	_, err = NewGraphStore(&sqlx.DB{}, nil)
	assert.EqualError(t, err, "queries cannot be nil")
}

func TestGraphStore_SaveLoad(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	nodes, links, err := store.Save(ctx, parseDoc(t, storeYAML))
	require.NoError(t, err)
	assert.Equal(t, 4, nodes)
	assert.Equal(t, 2, links)

	g, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, g.Len())
	assert.Equal(t, 2, g.LinkCount())

	alice, ok := g.Get(types.MustParseNodeID("018f4c3e-7a10-7cc0-9a4e-000000000001"))
	require.True(t, ok)
	assert.Equal(t, "alice", alice.Ref())

	// empty string values survive as values, absent values stay absent
	blank := g.Nodes()[3]
	v, hasValue := blank.Value()
	assert.True(t, hasValue)
	assert.Equal(t, "", v)
	_, hasValue = g.Nodes()[1].Value()
	assert.False(t, hasValue)

	f := filter.Linked(filter.KeyMatches(filter.TextEquals("knows")))
	matched := g.Select(f, 0)
	require.Len(t, matched, 1)
	assert.Same(t, alice, matched[0])

	n, l, err := store.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, n)
	assert.Equal(t, 2, l)
}

func TestGraphStore_SaveReplaces(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	_, _, err := store.Save(ctx, parseDoc(t, storeYAML))
	require.NoError(t, err)

	_, _, err = store.Save(ctx, parseDoc(t, "nodes: [{ref: only}]"))
	require.NoError(t, err)

	doc, err := store.LoadDocument(ctx)
	require.NoError(t, err)
	require.Len(t, doc.Nodes, 1)
	assert.Equal(t, "only", doc.Nodes[0].Ref)
	assert.Empty(t, doc.Links)
}

func TestGraphStore_SaveRejectsInvalidDocument(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	_, _, err := store.Save(ctx, parseDoc(t, storeYAML))
	require.NoError(t, err)

	bad := &graph.Document{
		Nodes: []graph.NodeDoc{{Ref: "a"}},
		Links: []graph.LinkDoc{{From: "a", To: "ghost"}},
	}
	_, _, err = store.Save(ctx, bad)
	assert.ErrorIs(t, err, types.ErrUnknownNodeRef)

	// previous content untouched
	n, _, err := store.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, n)
}

func TestGraphStore_SaveRollsBackOnError(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()

	database := sqlx.NewDb(mockDB, "sqlmock")
	queries, err := LoadQueries(database)
	require.NoError(t, err)
	store, err := NewGraphStore(database, queries)
	require.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM links")).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM nodes")).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO nodes")).
		WithArgs("a", 0, nil, "x").
		WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	_, _, err = store.Save(context.Background(), parseDoc(t, "nodes: [{ref: a, value: x}]"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to insert node a")
	assert.Contains(t, err.Error(), "disk full")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGraphStore_LoadQueryError(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()

	database := sqlx.NewDb(mockDB, "sqlmock")
	queries, err := LoadQueries(database)
	require.NoError(t, err)
	store, err := NewGraphStore(database, queries)
	require.NoError(t, err)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT node_key, position, node_id, value")).
		WillReturnRows(sqlmock.NewRows([]string{"node_key", "position", "node_id", "value"}).
			AddRow("a", 0, nil, "x"))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT link_key, source_key, target_key, key_key")).
		WillReturnError(errors.New("connection reset"))

	_, err = store.Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to list links")

	assert.NoError(t, mock.ExpectationsWereMet())
}
