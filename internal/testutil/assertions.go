package testutil

import (
	"sort"
	"testing"

	"github.com/specialistvlad/mbtgo/internal/model"
	"github.com/stretchr/testify/require"
)

// VertexLabels returns the sorted labels of the live vertices of g.
func VertexLabels(g *model.Graph) []string {
	out := make([]string, 0, g.VertexCount())
	for _, v := range g.Vertices() {
		out = append(out, v.Label)
	}
	sort.Strings(out)
	return out
}

// RequireVertex returns the only vertex labeled label.
func RequireVertex(t *testing.T, g *model.Graph, label string) *model.Vertex {
	t.Helper()
	found := g.FindByLabel(label)
	require.Len(t, found, 1, "expected exactly one vertex labeled %q", label)
	return found[0]
}

// EdgesBetween returns the edges from the vertex labeled src to the vertex
// labeled dst.
func EdgesBetween(t *testing.T, g *model.Graph, src, dst string) []*model.Edge {
	t.Helper()
	from := RequireVertex(t, g, src)
	to := RequireVertex(t, g, dst)
	var out []*model.Edge
	for _, e := range g.OutEdges(from.ID) {
		if e.Target == to.ID {
			out = append(out, e)
		}
	}
	return out
}
