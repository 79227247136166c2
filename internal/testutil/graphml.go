package testutil

import (
	"bytes"
	"encoding/xml"
	"fmt"
)

// Node describes a GraphML node for a test fixture.
type Node struct {
	ID    string
	Label string
	// Folder renders the node as a yEd group node.
	Folder bool
	// Note renders the node as a UML note.
	Note  bool
	Image string
}

// Edge describes a GraphML edge for a test fixture. An empty Label renders
// an edge without an EdgeLabel element.
type Edge struct {
	ID     string
	Source string
	Target string
	Label  string
}

// ModelBuilder assembles a yEd style GraphML document.
type ModelBuilder struct {
	nodes []Node
	edges []Edge
}

// NewModel starts an empty document.
func NewModel() *ModelBuilder {
	return &ModelBuilder{}
}

// Node adds a plain labeled node.
func (m *ModelBuilder) Node(id, label string) *ModelBuilder {
	return m.Add(Node{ID: id, Label: label})
}

// Add adds a node with full control over its rendering.
func (m *ModelBuilder) Add(n Node) *ModelBuilder {
	m.nodes = append(m.nodes, n)
	return m
}

// Edge adds an edge with a generated id.
func (m *ModelBuilder) Edge(source, target, label string) *ModelBuilder {
	m.edges = append(m.edges, Edge{
		ID:     fmt.Sprintf("e%d", len(m.edges)),
		Source: source,
		Target: target,
		Label:  label,
	})
	return m
}

// String renders the document.
func (m *ModelBuilder) String() string {
	var b bytes.Buffer
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>
<graphml xmlns="http://graphml.graphdrawing.org/xmlns/graphml" xmlns:y="http://www.yworks.com/xml/graphml">
  <key id="d0" for="node" yfiles.type="nodegraphics"/>
  <key id="d1" for="edge" yfiles.type="edgegraphics"/>
  <graph id="G" edgedefault="directed">
`)
	for _, n := range m.nodes {
		switch {
		case n.Folder:
			fmt.Fprintf(&b, "    <node id=%q yfiles.foldertype=\"group\">\n", n.ID)
			b.WriteString("      <data key=\"d0\"><y:ProxyAutoBoundsNode><y:Realizers active=\"0\"><y:GroupNode><y:NodeLabel>")
			xml.EscapeText(&b, []byte(n.Label))
			b.WriteString("</y:NodeLabel></y:GroupNode></y:Realizers></y:ProxyAutoBoundsNode></data>\n")
			fmt.Fprintf(&b, "      <graph id=%q edgedefault=\"directed\"/>\n", n.ID+":")
		case n.Note:
			fmt.Fprintf(&b, "    <node id=%q>\n", n.ID)
			b.WriteString("      <data key=\"d0\"><y:UMLNoteNode><y:NodeLabel>")
			xml.EscapeText(&b, []byte(n.Label))
			b.WriteString("</y:NodeLabel></y:UMLNoteNode></data>\n")
		case n.Image != "":
			fmt.Fprintf(&b, "    <node id=%q>\n", n.ID)
			b.WriteString("      <data key=\"d0\"><y:ImageNode><y:Geometry x=\"0.0\" y=\"0.0\" width=\"64.0\" height=\"48.0\"/><y:NodeLabel>")
			xml.EscapeText(&b, []byte(n.Label))
			fmt.Fprintf(&b, "</y:NodeLabel><y:Image href=%q/></y:ImageNode></data>\n", n.Image)
		default:
			fmt.Fprintf(&b, "    <node id=%q>\n", n.ID)
			b.WriteString("      <data key=\"d0\"><y:ShapeNode><y:Geometry x=\"0.0\" y=\"0.0\" width=\"95.0\" height=\"30.0\"/><y:NodeLabel>")
			xml.EscapeText(&b, []byte(n.Label))
			b.WriteString("</y:NodeLabel><y:Shape type=\"rectangle\"/></y:ShapeNode></data>\n")
		}
		b.WriteString("    </node>\n")
	}
	for _, e := range m.edges {
		fmt.Fprintf(&b, "    <edge id=%q source=%q target=%q>\n", e.ID, e.Source, e.Target)
		b.WriteString("      <data key=\"d1\"><y:PolyLineEdge>")
		if e.Label != "" {
			b.WriteString("<y:EdgeLabel>")
			xml.EscapeText(&b, []byte(e.Label))
			b.WriteString("</y:EdgeLabel>")
		}
		b.WriteString("</y:PolyLineEdge></data>\n")
		b.WriteString("    </edge>\n")
	}
	b.WriteString("  </graph>\n</graphml>\n")
	return b.String()
}
