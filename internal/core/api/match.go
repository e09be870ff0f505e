package api

import (
	"context"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/solatis/graphfilter/internal/expr"
	"github.com/solatis/graphfilter/internal/filter"
	"github.com/solatis/graphfilter/internal/graph"
	"github.com/solatis/graphfilter/internal/types"
)

// Match decodes and optimizes the request filter, then returns the matching
// nodes of the current snapshot.
//
// Request fields:
//
//	filter  expression tree (required)
//	limit   maximum number of results; 0 or absent means the configured maximum
//	node    optional node id; when set only that node is tested
//
// Results are capped at cfg.MaxResults; truncated reports whether more nodes
// matched than were returned.
func (s *FilterService) Match(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.RequestTimeout)
	defer cancel()

	f, err := decodeFilter(req)
	if err != nil {
		return nil, toStatus(err)
	}

	limit, err := s.requestLimit(req)
	if err != nil {
		return nil, toStatus(err)
	}

	g := s.Snapshot()
	if g == nil {
		return nil, toStatus(errNoGraph)
	}

	start := time.Now()
	f.Optimize()

	var matched []*graph.Node
	if v, ok := req.GetFields()["node"]; ok {
		matched, err = matchOne(g, f, v.GetStringValue())
	} else {
		// one extra result detects truncation
		matched, err = g.SelectContext(ctx, f, limit+1)
	}
	if err != nil {
		return nil, toStatus(err)
	}

	truncated := len(matched) > limit
	if truncated {
		matched = matched[:limit]
	}

	ids := make([]any, 0, len(matched))
	refs := make([]any, 0, len(matched))
	for _, n := range matched {
		if id, ok := n.ID(); ok {
			ids = append(ids, id.String())
		}
		refs = append(refs, n.Ref())
	}

	s.logger.Debug("match",
		zap.String("plan", f.String()),
		zap.Int("count", len(matched)),
		zap.Bool("truncated", truncated),
		zap.Duration("duration", time.Since(start)),
	)

	resp, err := structpb.NewStruct(map[string]any{
		"ids":       ids,
		"refs":      refs,
		"count":     len(matched),
		"truncated": truncated,
		"constant":  constancy(f),
		"plan":      f.String(),
		"tree":      expr.Encode(f),
	})
	if err != nil {
		return nil, toStatus(fmt.Errorf("failed to encode response: %w", err))
	}
	return resp, nil
}

// Explain decodes and optimizes the request filter without touching the graph.
// indexed reports whether Match would answer it from the value index; cost is
// the estimated per-node evaluation cost of the plan.
func (s *FilterService) Explain(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	f, err := decodeFilter(req)
	if err != nil {
		return nil, toStatus(err)
	}

	original := f.String()
	f.Optimize()
	_, indexed := f.Exact()

	resp, err := structpb.NewStruct(map[string]any{
		"input":    original,
		"plan":     f.String(),
		"tree":     expr.Encode(f),
		"constant": constancy(f),
		"indexed":  indexed,
		"cost":     expr.Cost(f),
	})
	if err != nil {
		return nil, toStatus(fmt.Errorf("failed to encode response: %w", err))
	}
	return resp, nil
}

func decodeFilter(req *structpb.Struct) (*filter.DataFilter, error) {
	v, ok := req.GetFields()["filter"]
	if !ok {
		return nil, fmt.Errorf("%w: filter is required", types.ErrInvalidExpression)
	}
	return expr.Decode(v.AsInterface())
}

// requestLimit reads the optional limit, clamped to cfg.MaxResults.
func (s *FilterService) requestLimit(req *structpb.Struct) (int, error) {
	v, ok := req.GetFields()["limit"]
	if !ok {
		return s.cfg.MaxResults, nil
	}
	n, isNumber := v.GetKind().(*structpb.Value_NumberValue)
	if !isNumber || n.NumberValue < 0 || n.NumberValue != math.Trunc(n.NumberValue) {
		return 0, fmt.Errorf("%w: limit must be a non-negative integer", types.ErrInvalidExpression)
	}
	limit := int(math.Min(n.NumberValue, float64(s.cfg.MaxResults)))
	if limit == 0 {
		limit = s.cfg.MaxResults
	}
	return limit, nil
}

func matchOne(g *graph.Graph, f *filter.DataFilter, raw string) ([]*graph.Node, error) {
	id, err := types.ParseNodeID(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid node id %q", types.ErrInvalidExpression, raw)
	}
	n, ok := g.Get(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", types.ErrNodeNotFound, id)
	}
	if !f.Matches(n) {
		return nil, nil
	}
	return []*graph.Node{n}, nil
}

// constancy renders AsBool as true, false or null.
func constancy(f *filter.DataFilter) any {
	if v, ok := f.AsBool(); ok {
		return v
	}
	return nil
}
