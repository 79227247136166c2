package graphml

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/specialistvlad/mbtgo/internal/model"
)

const header = `<?xml version="1.0" encoding="UTF-8"?>
<graphml xmlns="http://graphml.graphdrawing.org/xmlns/graphml" xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance" xsi:schemaLocation="http://graphml.graphdrawing.org/xmlns/graphml http://www.yworks.com/xml/schema/graphml/1.0/ygraphml.xsd" xmlns:y="http://www.yworks.com/xml/graphml">
  <key id="d0" for="node" yfiles.type="nodegraphics"/>
  <key id="d1" for="edge" yfiles.type="edgegraphics"/>
  <graph id="G" edgedefault="directed">
`

const footer = `  </graph>
</graphml>
`

// Write serializes g as yEd GraphML.
func Write(w io.Writer, g *model.Graph) error {
	var b bytes.Buffer
	b.WriteString(header)

	nodeIDs := make(map[model.VertexID]string)
	for i, v := range g.Vertices() {
		id := "n" + strconv.Itoa(i+1)
		nodeIDs[v.ID] = id
		writeNode(&b, id, v)
	}
	for i, e := range g.Edges() {
		src, okSrc := nodeIDs[e.Source]
		dst, okDst := nodeIDs[e.Target]
		if !okSrc || !okDst {
			return fmt.Errorf("%w: edge %d has no live endpoint", model.ErrInternal, e.Index)
		}
		writeEdge(&b, "e"+strconv.Itoa(i+1), src, dst, e)
	}

	b.WriteString(footer)
	_, err := w.Write(b.Bytes())
	return err
}

func writeNode(b *bytes.Buffer, id string, v *model.Vertex) {
	image, hasImage := v.Image.Get()
	kind := "ShapeNode"
	if hasImage {
		kind = "ImageNode"
	}
	fmt.Fprintf(b, "    <node id=%q>\n", id)
	b.WriteString("      <data key=\"d0\">\n")
	fmt.Fprintf(b, "        <y:%s>\n", kind)
	fmt.Fprintf(b, "          <y:Geometry x=\"0.0\" y=\"0.0\" width=\"%s\" height=\"%s\"/>\n",
		formatFloat(v.Width.OrElse(95)), formatFloat(v.Height.OrElse(30)))
	b.WriteString("          <y:Fill color=\"#CCCCFF\" transparent=\"false\"/>\n")
	b.WriteString("          <y:BorderStyle type=\"line\" width=\"1.0\" color=\"#000000\"/>\n")
	b.WriteString("          <y:NodeLabel visible=\"true\" alignment=\"center\" fontFamily=\"Dialog\" fontSize=\"12\" fontStyle=\"plain\" textColor=\"#000000\" modelName=\"internal\" modelPosition=\"c\" autoSizePolicy=\"content\">")
	writeLabel(b, v.FullLabel, v.Index)
	b.WriteString("</y:NodeLabel>\n")
	if hasImage {
		b.WriteString("          <y:Image href=\"")
		xml.EscapeText(b, []byte(image))
		b.WriteString("\"/>\n")
	} else {
		b.WriteString("          <y:Shape type=\"rectangle\"/>\n")
	}
	fmt.Fprintf(b, "        </y:%s>\n", kind)
	b.WriteString("      </data>\n")
	b.WriteString("    </node>\n")
}

func writeEdge(b *bytes.Buffer, id, src, dst string, e *model.Edge) {
	fmt.Fprintf(b, "    <edge id=%q source=%q target=%q>\n", id, src, dst)
	b.WriteString("      <data key=\"d1\">\n")
	b.WriteString("        <y:PolyLineEdge>\n")
	b.WriteString("          <y:LineStyle type=\"line\" width=\"1.0\" color=\"#000000\"/>\n")
	b.WriteString("          <y:Arrows source=\"none\" target=\"standard\"/>\n")
	b.WriteString("          <y:EdgeLabel visible=\"true\" alignment=\"center\" fontFamily=\"Dialog\" fontSize=\"12\" fontStyle=\"plain\" textColor=\"#000000\" modelName=\"free\" modelPosition=\"anywhere\" preferredPlacement=\"on_edge\" distance=\"2.0\" ratio=\"0.5\">")
	writeLabel(b, e.FullLabel.OrElse(""), e.Index)
	b.WriteString("</y:EdgeLabel>\n")
	b.WriteString("          <y:BendStyle smoothed=\"false\"/>\n")
	b.WriteString("        </y:PolyLineEdge>\n")
	b.WriteString("      </data>\n")
	b.WriteString("    </edge>\n")
}

// writeLabel writes the full label followed by the element's current INDEX
// line. INDEX lines already present in the text are stale after a merge and
// are dropped.
func writeLabel(b *bytes.Buffer, full string, index int) {
	var kept []string
	for _, line := range strings.Split(full, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), model.KeywordIndex+"=") {
			continue
		}
		kept = append(kept, line)
	}
	text := strings.Join(kept, "\n") + "\n" + model.KeywordIndex + "=" + strconv.Itoa(index)
	xml.EscapeText(b, []byte(text))
}

func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
