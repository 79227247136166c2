package graphml

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"

	"github.com/specialistvlad/mbtgo/internal/annotation"
	"github.com/specialistvlad/mbtgo/internal/ctxlog"
	"github.com/specialistvlad/mbtgo/internal/model"
)

// FileReader returns the raw bytes of a model file.
type FileReader interface {
	Read(ctx context.Context, path string) ([]byte, error)
}

// Loader reads GraphML files into raw graphs. All graphs loaded through one
// Loader draw their indices from the same allocator.
type Loader struct {
	alloc *model.IndexAllocator
	files FileReader
}

// NewLoader returns a Loader that allocates indices from alloc and reads
// files through files.
func NewLoader(alloc *model.IndexAllocator, files FileReader) *Loader {
	return &Loader{alloc: alloc, files: files}
}

// LoadFile reads and parses the file at path.
func (l *Loader) LoadFile(ctx context.Context, path string) (*model.Graph, error) {
	data, err := l.files.Read(ctx, path)
	if err != nil {
		return nil, err
	}
	return l.Parse(ctx, path, bytes.NewReader(data))
}

// Parse builds a raw graph from r. file names the source in errors and on
// every element.
func (l *Loader) Parse(ctx context.Context, file string, r io.Reader) (*model.Graph, error) {
	logger := ctxlog.FromContext(ctx).With("file", file)
	logger.Debug("Parsing GraphML file.")

	root, err := parseTree(r)
	if err != nil {
		return nil, &model.ParseError{File: file, Msg: "malformed GraphML document", Err: err}
	}

	g := model.NewGraph(file)
	byID := make(map[string]model.VertexID)

	for _, node := range root.descendants("node") {
		id, _ := node.attr("id")
		if _, isFolder := node.attr("yfiles.foldertype"); isFolder {
			logger.Debug("Excluded group node.", "id", id)
			continue
		}
		if node.find("UMLNoteNode") != nil {
			logger.Debug("Excluded note node.", "id", id)
			continue
		}
		if _, dup := byID[id]; dup {
			return nil, &model.StructuralError{Kind: model.KindDuplicateID, File: file, Msg: fmt.Sprintf("node id '%s' is used twice", id)}
		}

		v, err := l.vertex(node, id, file)
		if err != nil {
			return nil, err
		}
		byID[id] = g.AddVertex(v).ID
		logger.Debug("Added vertex.", "label", v.Label, "index", v.Index)
	}

	for _, el := range root.descendants("edge") {
		e, err := l.edge(el, byID, file)
		if err != nil {
			return nil, err
		}
		if _, err := g.AddEdge(e); err != nil {
			return nil, err
		}
		logger.Debug("Added edge.", "label", e.Label.OrElse(""), "index", e.Index)
	}

	removeBlocked(ctx, g)
	logger.Debug("GraphML file parsed.", "vertices", g.VertexCount(), "edges", g.EdgeCount())
	return g, nil
}

func (l *Loader) vertex(node *element, id, file string) (*model.Vertex, error) {
	labelEl := node.find("NodeLabel")
	if labelEl == nil {
		return nil, &model.ParseError{File: file, Value: id, Msg: "node has no label"}
	}
	ann, err := annotation.ParseVertex(string(labelEl.text), file)
	if err != nil {
		return nil, err
	}

	v := &model.Vertex{
		SourceID:      id,
		File:          file,
		Label:         ann.Label,
		FullLabel:     ann.FullLabel,
		Merge:         ann.Merge,
		NoMerge:       ann.NoMerge,
		Blocked:       ann.Blocked,
		IndexOverride: ann.Index,
		ReqTags:       ann.ReqTags,
		Index:         l.index(ann.Index),
	}

	if img := node.find("Image"); img != nil {
		if href, ok := img.attr("href"); ok {
			v.Image = model.Some(href)
		}
	}
	if geo := node.find("Geometry"); geo != nil {
		if v.Width, err = floatAttr(geo, "width", ann.Label, file); err != nil {
			return nil, err
		}
		if v.Height, err = floatAttr(geo, "height", ann.Label, file); err != nil {
			return nil, err
		}
	}
	return v, nil
}

func (l *Loader) edge(el *element, byID map[string]model.VertexID, file string) (*model.Edge, error) {
	id, _ := el.attr("id")
	e := &model.Edge{SourceID: id, File: file}

	for _, end := range []struct {
		attr string
		dst  *model.VertexID
	}{{"source", &e.Source}, {"target", &e.Target}} {
		ref, _ := el.attr(end.attr)
		vid, ok := byID[ref]
		if !ok {
			return nil, &model.StructuralError{
				Kind: model.KindDanglingEdge,
				File: file,
				Msg:  fmt.Sprintf("could not find %s vertex with id '%s' for edge '%s'", end.attr, ref, id),
			}
		}
		*end.dst = vid
	}

	if labelEl := el.find("EdgeLabel"); labelEl != nil {
		text := strings.TrimRightFunc(string(labelEl.text), unicode.IsSpace)
		ann, err := annotation.ParseEdge(text, file)
		if err != nil {
			return nil, err
		}
		e.FullLabel = model.Some(ann.FullLabel)
		e.Label = ann.Label
		e.Parameter = ann.Parameter
		e.Guard = ann.Guard
		e.Actions = ann.Actions
		e.Weight = ann.Weight
		e.Blocked = ann.Blocked
		e.Backtrack = ann.Backtrack
		e.IndexOverride = ann.Index
		e.ReqTags = ann.ReqTags
	}
	e.Index = l.index(e.IndexOverride)
	return e, nil
}

func (l *Loader) index(override model.Optional[int]) int {
	if n, ok := override.Get(); ok {
		l.alloc.Observe(n)
		return n
	}
	return l.alloc.Next()
}

func floatAttr(el *element, name, label, file string) (model.Optional[float64], error) {
	raw, ok := el.attr(name)
	if !ok {
		return model.None[float64](), nil
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return model.None[float64](), &model.ParseError{File: file, Entity: label, Value: raw, Msg: name + " is not a correct float value"}
	}
	return model.Some(f), nil
}

// removeBlocked drops BLOCKED vertices together with their edges, then any
// BLOCKED edge that is left.
func removeBlocked(ctx context.Context, g *model.Graph) {
	logger := ctxlog.FromContext(ctx)
	for _, v := range g.Vertices() {
		if v.Blocked {
			logger.Debug("Removing blocked vertex.", "label", v.Label, "index", v.Index)
			g.RemoveVertex(v.ID)
		}
	}
	for _, e := range g.Edges() {
		if e.Blocked {
			logger.Debug("Removing blocked edge.", "label", e.Label.OrElse(""), "index", e.Index)
			g.RemoveEdge(e.ID)
		}
	}
}
