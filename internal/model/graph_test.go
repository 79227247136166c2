// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildTriangle(t *testing.T) (*Graph, []*Vertex) {
	t.Helper()
	g := NewGraph("triangle.graphml")
	a := g.AddVertex(&Vertex{Index: 1, Label: "A"})
	b := g.AddVertex(&Vertex{Index: 2, Label: "B"})
	c := g.AddVertex(&Vertex{Index: 3, Label: "C"})
	for i, pair := range [][2]*Vertex{{a, b}, {b, c}, {c, a}} {
		_, err := g.AddEdge(&Edge{Index: 4 + i, Source: pair[0].ID, Target: pair[1].ID})
		require.NoError(t, err)
	}
	return g, []*Vertex{a, b, c}
}

func TestGraph_RemoveVertexDropsIncidentEdges(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	g, vs := buildTriangle(t)

	// --- Act ---
	g.RemoveVertex(vs[1].ID)

	// --- Assert ---
	assert.Nil(t, g.Vertex(vs[1].ID))
	assert.Equal(t, 2, g.VertexCount())
	require.Equal(t, 1, g.EdgeCount(), "only C -> A must survive")
	assert.Equal(t, 6, g.Edges()[0].Index)
	assert.Empty(t, g.OutEdges(vs[0].ID))
	assert.Len(t, g.InEdges(vs[0].ID), 1)
}

func TestGraph_IDsAreNotReused(t *testing.T) {
	t.Parallel()

	g, vs := buildTriangle(t)
	g.RemoveVertex(vs[2].ID)

	d := g.AddVertex(&Vertex{Index: 7, Label: "D"})

	assert.Equal(t, VertexID(3), d.ID)
	assert.Nil(t, g.Vertex(vs[2].ID))
	assert.Equal(t, []string{"A", "B", "D"}, labels(g.Vertices()))
}

func TestGraph_AddEdgeRejectsMissingEndpoint(t *testing.T) {
	t.Parallel()

	g, vs := buildTriangle(t)
	g.RemoveVertex(vs[0].ID)

	_, err := g.AddEdge(&Edge{Index: 9, Source: vs[0].ID, Target: vs[1].ID})

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInternal))
}

func TestGraph_FreezePanicsOnMutation(t *testing.T) {
	t.Parallel()

	g, vs := buildTriangle(t)
	g.Freeze()

	assert.True(t, g.Frozen())
	assert.PanicsWithValue(t, ErrGraphFrozen, func() { g.RemoveVertex(vs[0].ID) })
	assert.PanicsWithValue(t, ErrGraphFrozen, func() { g.AddVertex(&Vertex{Label: "X"}) })
}

func TestGraph_CloneIsIndependent(t *testing.T) {
	t.Parallel()

	g, vs := buildTriangle(t)
	vs[0].ReqTags = []string{"R1"}
	g.Freeze()

	c := g.Clone()
	c.RemoveVertex(vs[0].ID)
	c.Vertex(vs[1].ID).Label = "changed"

	assert.False(t, c.Frozen())
	assert.Equal(t, 3, g.VertexCount())
	assert.Equal(t, "B", g.Vertex(vs[1].ID).Label)
	assert.Equal(t, 1, c.EdgeCount())
}

func TestGraph_FindByLabel(t *testing.T) {
	t.Parallel()

	g, _ := buildTriangle(t)
	g.AddVertex(&Vertex{Index: 8, Label: "A"})

	found := g.FindByLabel("A")

	require.Len(t, found, 2)
	assert.Equal(t, 1, found[0].Index)
	assert.Equal(t, 8, found[1].Index)
}

func labels(vs []*Vertex) []string {
	out := make([]string, 0, len(vs))
	for _, v := range vs {
		out = append(out, v.Label)
	}
	return out
}

func TestGraph_FrozenAccessorsReturnCopies(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	g, vs := buildTriangle(t)
	g.Freeze()

	// --- Act ---
	g.Vertex(vs[0].ID).Label = "changed"
	g.Vertices()[1].Index = 99
	g.FindByLabel("C")[0].ReqTags = []string{"R9"}
	for _, e := range g.Edges() {
		e.Label = Some("changed")
	}
	g.OutEdges(vs[0].ID)[0].Target = vs[0].ID

	// --- Assert ---
	assert.Equal(t, "A", g.Vertex(vs[0].ID).Label)
	assert.Equal(t, vs[1].Index, g.Vertex(vs[1].ID).Index)
	assert.Empty(t, g.Vertex(vs[2].ID).ReqTags)
	for _, e := range g.Edges() {
		assert.NotEqual(t, Some("changed"), e.Label)
	}
	assert.Equal(t, vs[1].ID, g.OutEdges(vs[0].ID)[0].Target)
}

func TestGraph_MutableAccessorsShareElements(t *testing.T) {
	t.Parallel()

	g, vs := buildTriangle(t)

	g.Vertex(vs[0].ID).Label = "changed"

	assert.Equal(t, "changed", g.Vertex(vs[0].ID).Label)
}
