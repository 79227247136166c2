package builder

import (
	"context"
	"crypto/rand"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/specialistvlad/mbtgo/internal/ctxlog"
	"github.com/specialistvlad/mbtgo/internal/model"
)

// Session is one merge run. Loaders that feed it must allocate indices from
// Allocator so indices stay unique across files.
type Session struct {
	ID    string
	alloc *model.IndexAllocator
}

// NewSession creates a session with a fresh id and allocator.
func NewSession() (*Session, error) {
	id, err := NewSessionID()
	if err != nil {
		return nil, fmt.Errorf("failed to create session id: %w", err)
	}
	return &Session{ID: id, alloc: model.NewIndexAllocator()}, nil
}

// NewSessionID returns a lexically sortable, time-ordered id.
func NewSessionID() (string, error) {
	t := time.Now().UTC()
	entropy := ulid.Monotonic(rand.Reader, 0)
	id, err := ulid.New(ulid.Timestamp(t), entropy)
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// Allocator returns the session's index allocator.
func (s *Session) Allocator() *model.IndexAllocator {
	return s.alloc
}

// Merge classifies graphs, expands every subgraph reference, resolves MERGE
// duplicates and validates the result. graphs must be in load order.
func (s *Session) Merge(ctx context.Context, graphs []*model.Graph) (*model.Graph, error) {
	ctx = ctxlog.With(ctx, "session_id", s.ID)
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Merge: Starting.", "graphs", len(graphs))

	work := make([]*model.Graph, len(graphs))
	for i, g := range graphs {
		work[i] = g.Clone()
	}

	root, subgraphs, err := classify(ctx, work)
	if err != nil {
		return nil, err
	}
	logger.Debug("Merge: Classification complete.", "root", root.File, "subgraphs", len(subgraphs))

	if err := checkSelfReferences(ctx, subgraphs); err != nil {
		return nil, err
	}

	merged := root.Clone()
	if err := s.spliceSubgraphs(ctx, merged, subgraphs); err != nil {
		return nil, err
	}
	logger.Debug("Merge: Splicing complete.", "vertices", merged.VertexCount(), "edges", merged.EdgeCount())

	if err := s.mergeMarkedDuplicates(ctx, merged); err != nil {
		return nil, err
	}
	logger.Debug("Merge: Duplicate resolution complete.", "vertices", merged.VertexCount(), "edges", merged.EdgeCount())

	if err := validate(ctx, merged); err != nil {
		logger.Error("Merge: Validation failed.", "error", err)
		return nil, err
	}

	merged.Freeze()
	logger.Info("Merge: Model ready.", "vertices", merged.VertexCount(), "edges", merged.EdgeCount())
	return merged, nil
}

// copyEdge adds a copy of e between src and dst with a fresh index.
func (s *Session) copyEdge(g *model.Graph, e *model.Edge, src, dst model.VertexID) error {
	c := e.Clone()
	c.Source = src
	c.Target = dst
	c.Index = s.alloc.Next()
	c.IndexOverride = model.None[int]()
	if _, err := g.AddEdge(c); err != nil {
		return &model.StructuralError{Kind: model.KindInternal, File: e.File, Index: e.Index, Err: err}
	}
	return nil
}

// redirect moves every edge of from onto to. Self loops on from become self
// loops on to.
func (s *Session) redirect(g *model.Graph, from, to model.VertexID) error {
	for _, e := range g.InEdges(from) {
		src := e.Source
		if src == from {
			src = to
		}
		if err := s.copyEdge(g, e, src, to); err != nil {
			return err
		}
	}
	for _, e := range g.OutEdges(from) {
		if e.Target == from {
			continue
		}
		if err := s.copyEdge(g, e, to, e.Target); err != nil {
			return err
		}
	}
	return nil
}
