package builder

import (
	"context"

	"github.com/specialistvlad/mbtgo/internal/ctxlog"
	"github.com/specialistvlad/mbtgo/internal/model"
)

// checkSelfReferences rejects a subgraph holding a placeholder for itself.
// Its own start vertex and NO_MERGE vertices are exempt.
func checkSelfReferences(ctx context.Context, subgraphs []*model.Graph) error {
	for _, g := range subgraphs {
		for _, v := range g.FindByLabel(g.Name) {
			if v.SubgraphStart || v.NoMerge {
				continue
			}
			ctxlog.FromContext(ctx).Error("Subgraph references itself.", "file", g.File, "name", g.Name, "index", v.Index)
			return &model.StructuralError{
				Kind:   model.KindSelfReference,
				File:   g.File,
				Entity: v.Label,
				Index:  v.Index,
				Msg:    "a vertex carries the name of its own subgraph; mark it NO_MERGE or rename it",
			}
		}
	}
	return nil
}

// mergeMarkedDuplicates folds every MERGE vertex into the first other vertex
// with the same label that is not NO_MERGE. A MERGE vertex without such a
// partner is kept.
func (s *Session) mergeMarkedDuplicates(ctx context.Context, g *model.Graph) error {
	logger := ctxlog.FromContext(ctx)
	for _, v1 := range g.Vertices() {
		if !v1.Merge || g.Vertex(v1.ID) == nil {
			continue
		}
		var v2 *model.Vertex
		for _, c := range g.Vertices() {
			if c.ID != v1.ID && c.Label == v1.Label && !c.NoMerge {
				v2 = c
				break
			}
		}
		if v2 == nil {
			logger.Debug("MERGE vertex has no partner.", "label", v1.Label, "index", v1.Index)
			continue
		}

		logger.Debug("Merging vertex.", "label", v1.Label, "from_index", v1.Index, "into_index", v2.Index)
		if err := s.redirect(g, v1.ID, v2.ID); err != nil {
			return err
		}
		g.RemoveVertex(v1.ID)
	}
	return nil
}
