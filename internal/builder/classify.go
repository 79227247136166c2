package builder

import (
	"context"
	"fmt"

	"github.com/specialistvlad/mbtgo/internal/ctxlog"
	"github.com/specialistvlad/mbtgo/internal/model"
)

// classify finds the root graph and names every subgraph. It marks the
// destination of each Start edge as mother start or subgraph start.
func classify(ctx context.Context, graphs []*model.Graph) (*model.Graph, []*model.Graph, error) {
	logger := ctxlog.FromContext(ctx)

	var root *model.Graph
	var subgraphs []*model.Graph
	named := make(map[string]*model.Graph)

	for _, g := range graphs {
		var starts []*model.Vertex
		for _, v := range g.Vertices() {
			if v.IsStart() {
				starts = append(starts, v)
			}
		}
		if len(starts) == 0 {
			return nil, nil, &model.StructuralError{Kind: model.KindNoStart, File: g.File, Msg: "the graph has no Start vertex"}
		}

		foundSubgraph := false
		for _, start := range starts {
			out := g.OutEdges(start.ID)
			if len(out) != 1 {
				return nil, nil, &model.StructuralError{
					Kind:  model.KindStartOutDegree,
					File:  g.File,
					Index: start.Index,
					Msg:   fmt.Sprintf("a Start vertex must have exactly one out edge, found %d", len(out)),
				}
			}
			edge := out[0]
			dest := g.Vertex(edge.Target)

			if edge.HasLabel() {
				if root != nil {
					msg := "only one Start vertex can have a labeled out edge"
					if root == g {
						msg = "only one Start vertex can exist in one file"
					}
					return nil, nil, &model.StructuralError{Kind: model.KindDuplicateRoot, File: root.File, OtherFile: g.File, Msg: msg}
				}
				if foundSubgraph {
					return nil, nil, &model.StructuralError{Kind: model.KindDuplicateStart, File: g.File, Msg: "only one Start vertex can exist in one file"}
				}
				root = g
				dest.MotherStart = true
				logger.Debug("Found root graph.", "file", g.File, "first_vertex", dest.Label)
				continue
			}

			if foundSubgraph || root == g {
				return nil, nil, &model.StructuralError{Kind: model.KindDuplicateStart, File: g.File, Msg: "only one Start vertex can exist in one file"}
			}
			if prev, ok := named[dest.Label]; ok {
				return nil, nil, &model.StructuralError{
					Kind:      model.KindDuplicateSubgraph,
					File:      prev.File,
					OtherFile: g.File,
					Entity:    dest.Label,
					Msg:       "two subgraphs resolve to the same name",
				}
			}
			foundSubgraph = true
			dest.SubgraphStart = true
			g.Name = dest.Label
			named[g.Name] = g
			subgraphs = append(subgraphs, g)
			logger.Debug("Found subgraph.", "file", g.File, "name", g.Name)
		}
	}

	if root == nil {
		return nil, nil, &model.StructuralError{Kind: model.KindMissingRoot, Msg: "did not find a Start vertex with a labeled out edge"}
	}
	return root, subgraphs, nil
}
