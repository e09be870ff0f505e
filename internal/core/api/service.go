// Package api provides the gRPC FilterService implementation.
package api

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/solatis/graphfilter/internal/core/config"
	"github.com/solatis/graphfilter/internal/graph"
)

// GraphLoader produces a fresh graph snapshot. *db.GraphStore implements it.
type GraphLoader interface {
	Load(ctx context.Context) (*graph.Graph, error)
}

// LoaderFunc adapts a function to GraphLoader.
type LoaderFunc func(ctx context.Context) (*graph.Graph, error)

// Load calls f(ctx).
func (f LoaderFunc) Load(ctx context.Context) (*graph.Graph, error) {
	return f(ctx)
}

// FilterService implements FilterServiceServer.
// Thin orchestration layer over the expression codec, the filter optimizer
// and an immutable graph snapshot swapped in by Reload.
type FilterService struct {
	loader GraphLoader
	cfg    *config.FilterAPIConfig
	logger *zap.Logger

	mu       sync.RWMutex
	snapshot *graph.Graph
	loadedAt time.Time
}

// NewFilterService creates service instance with dependencies. The graph is
// not loaded until Reload is called.
func NewFilterService(loader GraphLoader, cfg *config.FilterAPIConfig, logger *zap.Logger) (*FilterService, error) {
	if loader == nil {
		return nil, fmt.Errorf("loader cannot be nil")
	}
	if cfg == nil {
		return nil, fmt.Errorf("cfg cannot be nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &FilterService{
		loader: loader,
		cfg:    cfg,
		logger: logger.Named("filter_service"),
	}, nil
}

// Reload replaces the served graph with a fresh one from the loader. On
// failure the previous snapshot keeps being served.
func (s *FilterService) Reload(ctx context.Context) error {
	start := time.Now()
	g, err := s.loader.Load(ctx)
	if err != nil {
		s.logger.Error("graph reload failed", zap.Error(err))
		return fmt.Errorf("failed to load graph: %w", err)
	}

	s.mu.Lock()
	s.snapshot = g
	s.loadedAt = time.Now()
	s.mu.Unlock()

	s.logger.Info("graph loaded",
		zap.Int("nodes", g.Len()),
		zap.Int("links", g.LinkCount()),
		zap.Duration("duration", time.Since(start)),
	)
	return nil
}

// Snapshot returns the currently served graph, or nil before the first
// successful Reload.
func (s *FilterService) Snapshot() *graph.Graph {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot
}

// LoadedAt returns when the current snapshot was loaded.
func (s *FilterService) LoadedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadedAt
}

var _ FilterServiceServer = (*FilterService)(nil)
