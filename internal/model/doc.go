// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package model holds the in-memory representation of a model-based test
// model: the directed multigraph of states (vertices) and transitions (edges)
// that is read from one or more GraphML files, spliced into a single graph and
// handed to a traversal engine.
//
// # Core Concepts
//
//   - Graph: an arena of vertices and edges. Elements are addressed by stable
//     slot identifiers (VertexID, EdgeID), never by pointers held elsewhere, so
//     deleting an element cannot leave a dangling reference behind. Iteration
//     order is insertion order, which keeps every later pass deterministic.
//
//   - Vertex and Edge: typed attribute records. Values an author may or may not
//     write (guard, weight, INDEX override, ...) are Optional so that "not
//     annotated" never collapses into "annotated with an empty value".
//
//   - IndexAllocator: the single counter that hands out unique element indices
//     for one merge session. It is passed explicitly to everything that creates
//     elements.
//
//   - ParseError and StructuralError: the error taxonomy. Every fatal problem
//     carries the offending file and, where known, the label and index.
//
// A Graph is mutable while a merge session works on it and is frozen once the
// validator accepts it. Mutating a frozen graph is a programming error and
// panics with ErrGraphFrozen.
package model
