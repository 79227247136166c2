package builder

import (
	"context"
	"fmt"

	"github.com/specialistvlad/mbtgo/internal/ctxlog"
	"github.com/specialistvlad/mbtgo/internal/model"
)

// validate checks the merged graph before it is frozen.
func validate(ctx context.Context, g *model.Graph) error {
	logger := ctxlog.FromContext(ctx)

	starts := 0
	for _, v := range g.Vertices() {
		if v.IsStart() {
			starts++
			continue
		}
		if len(g.InEdges(v.ID)) == 0 {
			return &model.StructuralError{
				Kind:   model.KindUnreachable,
				File:   v.File,
				Entity: v.Label,
				Index:  v.Index,
				Msg:    "no in-edges, the vertex is not reachable",
			}
		}
	}
	if starts != 1 {
		return &model.StructuralError{Kind: model.KindDuplicateStart, File: g.File, Msg: fmt.Sprintf("the model must have one Start vertex, found %d", starts)}
	}

	owners := make(map[int]string)
	claim := func(index int, owner, file string) error {
		if prev, ok := owners[index]; ok {
			return &model.StructuralError{
				Kind:   model.KindDuplicateIndex,
				File:   file,
				Entity: owner,
				Index:  index,
				Msg:    fmt.Sprintf("the index is already used by %s", prev),
			}
		}
		owners[index] = owner
		return nil
	}
	for _, v := range g.Vertices() {
		if err := claim(v.Index, "vertex "+v.Label, v.File); err != nil {
			return err
		}
	}
	for _, e := range g.Edges() {
		if err := claim(e.Index, "edge "+e.Label.OrElse("(unlabeled)"), e.File); err != nil {
			return err
		}
	}

	logger.Debug("Merge: Validation passed.", "vertices", g.VertexCount(), "edges", g.EdgeCount())
	return nil
}
