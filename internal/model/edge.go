// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package model

import (
	"slices"
	"strings"
)

// EdgeID is the arena slot of an edge inside its Graph.
type EdgeID int

// Edge is a transition of the model.
type Edge struct {
	ID     EdgeID
	Source VertexID
	Target VertexID

	Index    int
	SourceID string
	File     string

	// FullLabel is the raw label text. It is absent when the edge carries no label at all.
	FullLabel Optional[string]
	Label     Optional[string]
	Parameter Optional[string]
	Guard     Optional[string]
	Actions   Optional[string]
	Weight    Optional[float64]

	Blocked   bool
	Backtrack bool

	IndexOverride Optional[int]
	ReqTags       []string
}

// HasLabel reports whether the edge carries a non-empty label.
func (e *Edge) HasLabel() bool {
	l, ok := e.Label.Get()
	return ok && l != ""
}

// ActionList splits the action text on ';'. Empty statements are dropped.
func (e *Edge) ActionList() []string {
	raw, ok := e.Actions.Get()
	if !ok {
		return nil
	}
	var out []string
	for _, a := range strings.Split(raw, ";") {
		if a = strings.TrimSpace(a); a != "" {
			out = append(out, a)
		}
	}
	return out
}

// Clone returns a deep copy of e.
func (e *Edge) Clone() *Edge {
	c := *e
	c.ReqTags = slices.Clone(e.ReqTags)
	return &c
}
