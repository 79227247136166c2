// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package model

import "slices"

// VertexID is the arena slot of a vertex inside its Graph.
type VertexID int

// Vertex is a state of the model.
type Vertex struct {
	ID VertexID

	// Index is unique across every vertex and edge of a merge session.
	Index int
	// SourceID is the GraphML node id, only meaningful inside File.
	SourceID string
	File     string

	Label     string
	FullLabel string

	Image  Optional[string]
	Width  Optional[float64]
	Height Optional[float64]

	Merge   bool
	NoMerge bool
	Blocked bool

	// SubgraphStart marks the destination of an unlabeled Start edge.
	SubgraphStart bool
	// MotherStart marks the destination of the labeled Start edge of the root graph.
	MotherStart bool
	// Spliced marks a placeholder that already had its subgraph expanded in place.
	Spliced bool

	IndexOverride Optional[int]
	ReqTags       []string

	// Lineage lists the subgraph names this vertex was copied out of, outermost first.
	Lineage []string
}

// IsStart reports whether v is a Start marker.
func (v *Vertex) IsStart() bool {
	return v.Label == StartLabel
}

// IsStop reports whether v is a Stop marker.
func (v *Vertex) IsStop() bool {
	return v.Label == StopLabel
}

// Mergeable reports whether v can still take part in a splice or a merge.
func (v *Vertex) Mergeable() bool {
	return !v.Merge && !v.NoMerge && !v.Spliced
}

// Clone returns a deep copy of v.
func (v *Vertex) Clone() *Vertex {
	c := *v
	c.ReqTags = slices.Clone(v.ReqTags)
	c.Lineage = slices.Clone(v.Lineage)
	return &c
}
