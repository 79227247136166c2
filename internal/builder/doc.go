/*
Package builder merges the raw graphs loaded from a set of GraphML files into
the single model handed to a traversal engine.

One merge runs inside a Session, which owns the index allocator every created
element draws from. The merge is a fixed sequence of passes over the graphs:

 1. Classification: every graph must have a Start vertex with exactly one out
    edge. The graph whose Start edge is labeled is the root; every other graph
    is a subgraph named after the destination of its unlabeled Start edge.

 2. Self-reference check: a subgraph may not contain a mergeable vertex that
    carries its own name, since expanding it would never end.

 3. Splicing: a vertex whose label equals a subgraph name is a placeholder.
    The subgraph is copied next to it, the copy's start vertex is folded into
    the placeholder and the copy's Stop vertex is dissolved by joining the
    placeholder's original out edges with the edges that led to Stop. Joining
    uses a three-phase pairing on edge labels (see PairEdges). Scanning starts
    over after every splice until no placeholder is left.

 4. Duplicate resolution: a vertex marked MERGE is folded into another vertex
    with the same label.

 5. Validation: every vertex but Start must be reachable through at least one
    in edge, and no two elements may share an index.

A merge either returns a frozen graph that passed validation or an error; the
input graphs are never modified.
*/
package builder
