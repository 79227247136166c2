// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package model

import "fmt"

// Graph is an arena-backed directed multigraph. Deleted slots stay nil so
// identifiers are never reused.
type Graph struct {
	// Name is the resolved subgraph name. It is empty for the root graph and
	// for graphs that were not classified yet.
	Name string
	// File is the source file the graph was loaded from.
	File string

	vertices []*Vertex
	edges    []*Edge
	frozen   bool
}

// NewGraph returns an empty graph loaded from file.
func NewGraph(file string) *Graph {
	return &Graph{File: file}
}

func (g *Graph) mustBeMutable() {
	if g.frozen {
		panic(ErrGraphFrozen)
	}
}

// AddVertex stores v and assigns its ID.
func (g *Graph) AddVertex(v *Vertex) *Vertex {
	g.mustBeMutable()
	v.ID = VertexID(len(g.vertices))
	g.vertices = append(g.vertices, v)
	return v
}

// AddEdge stores e and assigns its ID. Both endpoints must be live vertices.
func (g *Graph) AddEdge(e *Edge) (*Edge, error) {
	g.mustBeMutable()
	if g.Vertex(e.Source) == nil || g.Vertex(e.Target) == nil {
		return nil, fmt.Errorf("%w: edge %d references a missing vertex (%d -> %d)", ErrInternal, e.Index, e.Source, e.Target)
	}
	e.ID = EdgeID(len(g.edges))
	g.edges = append(g.edges, e)
	return e, nil
}

// RemoveVertex deletes the vertex and every edge incident to it.
func (g *Graph) RemoveVertex(id VertexID) {
	g.mustBeMutable()
	if g.Vertex(id) == nil {
		return
	}
	for i, e := range g.edges {
		if e != nil && (e.Source == id || e.Target == id) {
			g.edges[i] = nil
		}
	}
	g.vertices[id] = nil
}

// RemoveEdge deletes the edge.
func (g *Graph) RemoveEdge(id EdgeID) {
	g.mustBeMutable()
	if g.Edge(id) == nil {
		return
	}
	g.edges[id] = nil
}

// Vertex returns the live vertex with the given ID, or nil.
func (g *Graph) Vertex(id VertexID) *Vertex {
	if id < 0 || int(id) >= len(g.vertices) {
		return nil
	}
	return g.vertexView(g.vertices[id])
}

// Edge returns the live edge with the given ID, or nil.
func (g *Graph) Edge(id EdgeID) *Edge {
	if id < 0 || int(id) >= len(g.edges) {
		return nil
	}
	return g.edgeView(g.edges[id])
}

// Vertices returns the live vertices in insertion order.
func (g *Graph) Vertices() []*Vertex {
	out := make([]*Vertex, 0, len(g.vertices))
	for _, v := range g.vertices {
		if v != nil {
			out = append(out, g.vertexView(v))
		}
	}
	return out
}

// Edges returns the live edges in insertion order.
func (g *Graph) Edges() []*Edge {
	out := make([]*Edge, 0, len(g.edges))
	for _, e := range g.edges {
		if e != nil {
			out = append(out, g.edgeView(e))
		}
	}
	return out
}

// InEdges returns the live edges ending at id.
func (g *Graph) InEdges(id VertexID) []*Edge {
	var out []*Edge
	for _, e := range g.edges {
		if e != nil && e.Target == id {
			out = append(out, g.edgeView(e))
		}
	}
	return out
}

// OutEdges returns the live edges starting at id.
func (g *Graph) OutEdges(id VertexID) []*Edge {
	var out []*Edge
	for _, e := range g.edges {
		if e != nil && e.Source == id {
			out = append(out, g.edgeView(e))
		}
	}
	return out
}

// FindByLabel returns the live vertices carrying label.
func (g *Graph) FindByLabel(label string) []*Vertex {
	var out []*Vertex
	for _, v := range g.vertices {
		if v != nil && v.Label == label {
			out = append(out, g.vertexView(v))
		}
	}
	return out
}

// VertexCount returns the number of live vertices.
func (g *Graph) VertexCount() int {
	n := 0
	for _, v := range g.vertices {
		if v != nil {
			n++
		}
	}
	return n
}

// EdgeCount returns the number of live edges.
func (g *Graph) EdgeCount() int {
	n := 0
	for _, e := range g.edges {
		if e != nil {
			n++
		}
	}
	return n
}

// Freeze makes the graph read-only. Structural changes panic with
// ErrGraphFrozen, and every accessor hands out copies, so edits to a returned
// Vertex or Edge never reach the graph.
func (g *Graph) Freeze() {
	g.frozen = true
}

// Frozen reports whether the graph is read-only.
func (g *Graph) Frozen() bool {
	return g.frozen
}

func (g *Graph) vertexView(v *Vertex) *Vertex {
	if v == nil || !g.frozen {
		return v
	}
	return v.Clone()
}

func (g *Graph) edgeView(e *Edge) *Edge {
	if e == nil || !g.frozen {
		return e
	}
	return e.Clone()
}

// Clone returns a mutable deep copy that keeps every ID and index.
func (g *Graph) Clone() *Graph {
	c := &Graph{
		Name:     g.Name,
		File:     g.File,
		vertices: make([]*Vertex, len(g.vertices)),
		edges:    make([]*Edge, len(g.edges)),
	}
	for i, v := range g.vertices {
		if v != nil {
			c.vertices[i] = v.Clone()
		}
	}
	for i, e := range g.edges {
		if e != nil {
			c.edges[i] = e.Clone()
		}
	}
	return c
}
