package builder

import (
	"context"
	"slices"
	"strings"

	"github.com/specialistvlad/mbtgo/internal/ctxlog"
	"github.com/specialistvlad/mbtgo/internal/model"
)

// spliceSubgraphs expands placeholders until none is left. Subgraphs are
// scanned in load order and vertices in arena order; the scan starts over
// after every splice because a splice can introduce new placeholders.
func (s *Session) spliceSubgraphs(ctx context.Context, merged *model.Graph, subgraphs []*model.Graph) error {
	logger := ctxlog.FromContext(ctx)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		sg, target := findPlaceholder(merged, subgraphs)
		if target == nil {
			return nil
		}
		if slices.Contains(target.Lineage, sg.Name) {
			logger.Error("Recursive subgraph reference.", "name", sg.Name, "lineage", target.Lineage)
			return &model.StructuralError{
				Kind:   model.KindRecursiveSubgraph,
				File:   sg.File,
				Entity: sg.Name,
				Index:  target.Index,
				Msg:    "the subgraph is reachable from itself through " + strings.Join(target.Lineage, " -> "),
			}
		}
		if err := s.spliceAt(ctx, merged, sg, target); err != nil {
			return err
		}
	}
}

func findPlaceholder(merged *model.Graph, subgraphs []*model.Graph) (*model.Graph, *model.Vertex) {
	for _, sg := range subgraphs {
		for _, v := range merged.Vertices() {
			if v.Label == sg.Name && v.Mergeable() {
				return sg, v
			}
		}
	}
	return nil, nil
}

// spliceAt expands sg in place of target.
func (s *Session) spliceAt(ctx context.Context, merged, sg *model.Graph, target *model.Vertex) error {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Splice: Expanding subgraph.", "name", sg.Name, "file", sg.File, "target_index", target.Index)

	savedOut := merged.OutEdges(target.ID)
	copies, err := s.appendGraph(merged, sg, target)
	if err != nil {
		return err
	}

	var source *model.Vertex
	for _, c := range copies {
		if c.SubgraphStart && c.Label == target.Label && c.Mergeable() {
			source = c
			break
		}
	}
	if source == nil {
		return &model.StructuralError{
			Kind:   model.KindMissingSubgraphStart,
			File:   sg.File,
			Entity: sg.Name,
			Msg:    "the subgraph start vertex cannot take part in a splice",
		}
	}

	if err := s.redirect(merged, source.ID, target.ID); err != nil {
		return err
	}
	merged.RemoveVertex(source.ID)
	target.Spliced = true

	var stops []*model.Vertex
	for _, v := range merged.Vertices() {
		if v.IsStop() {
			stops = append(stops, v)
		}
	}
	if len(stops) > 1 {
		return &model.StructuralError{
			Kind:      model.KindMultipleStop,
			File:      stops[0].File,
			OtherFile: stops[1].File,
			Msg:       "only one Stop vertex may exist while a subgraph is spliced",
		}
	}

	var stop *model.Vertex
	for _, c := range copies {
		if c.IsStop() && merged.Vertex(c.ID) != nil {
			stop = c
			break
		}
	}
	if stop == nil {
		logger.Debug("Splice: Subgraph has no Stop vertex.", "name", sg.Name)
		return nil
	}

	pairs := PairEdges(savedOut, merged.InEdges(stop.ID))
	for _, p := range pairs {
		e, err := MergeEdges(p.Out, p.In)
		if err != nil {
			return &model.StructuralError{Kind: model.KindInternal, File: sg.File, Err: err}
		}
		e.Source = p.In.Source
		e.Target = p.Out.Target
		e.Index = s.alloc.Next()
		if _, err := merged.AddEdge(e); err != nil {
			return &model.StructuralError{Kind: model.KindInternal, File: sg.File, Err: err}
		}
		logger.Debug("Splice: Joined edges.", "out_index", p.Out.Index, "in_index", p.In.Index, "new_index", e.Index, "label", e.Label.OrElse(""))
	}
	for _, p := range pairs {
		merged.RemoveEdge(p.Out.ID)
		merged.RemoveEdge(p.In.ID)
	}
	merged.RemoveVertex(stop.ID)
	return nil
}

// appendGraph copies every vertex of sg except Start, and every edge between
// copied vertices, into merged with fresh indices. It returns the copies in
// sg's vertex order.
func (s *Session) appendGraph(merged, sg *model.Graph, target *model.Vertex) ([]*model.Vertex, error) {
	lineage := append(slices.Clone(target.Lineage), sg.Name)
	byOrigin := make(map[model.VertexID]*model.Vertex)
	var copies []*model.Vertex

	for _, v := range sg.Vertices() {
		if v.IsStart() {
			continue
		}
		c := v.Clone()
		c.Index = s.alloc.Next()
		c.IndexOverride = model.None[int]()
		c.Lineage = lineage
		merged.AddVertex(c)
		byOrigin[v.ID] = c
		copies = append(copies, c)
	}
	for _, e := range sg.Edges() {
		src, okSrc := byOrigin[e.Source]
		dst, okDst := byOrigin[e.Target]
		if !okSrc || !okDst {
			continue
		}
		if err := s.copyEdge(merged, e, src.ID, dst.ID); err != nil {
			return nil, err
		}
	}
	return copies, nil
}
