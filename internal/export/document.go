package export

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/specialistvlad/mbtgo/internal/model"
)

//go:embed schema.json
var schemaJSON []byte

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

// Document is the JSON form of a merged model. Elements are listed in
// index order and reference each other by index.
type Document struct {
	Name     string           `json:"name"`
	Vertices []VertexDocument `json:"vertices"`
	Edges    []EdgeDocument   `json:"edges"`
}

// VertexDocument is one vertex of a Document.
type VertexDocument struct {
	Index        int      `json:"index"`
	Label        string   `json:"label"`
	FullLabel    string   `json:"full_label"`
	File         string   `json:"file,omitempty"`
	Image        *string  `json:"image,omitempty"`
	Merge        bool     `json:"merge,omitempty"`
	NoMerge      bool     `json:"no_merge,omitempty"`
	Blocked      bool     `json:"blocked,omitempty"`
	Requirements []string `json:"requirements,omitempty"`
}

// EdgeDocument is one edge of a Document.
type EdgeDocument struct {
	Index        int      `json:"index"`
	Source       int      `json:"source"`
	Target       int      `json:"target"`
	File         string   `json:"file,omitempty"`
	Label        *string  `json:"label,omitempty"`
	FullLabel    *string  `json:"full_label,omitempty"`
	Parameter    *string  `json:"parameter,omitempty"`
	Guard        *string  `json:"guard,omitempty"`
	Actions      []string `json:"actions,omitempty"`
	Weight       *float64 `json:"weight,omitempty"`
	Blocked      bool     `json:"blocked,omitempty"`
	Backtrack    bool     `json:"backtrack,omitempty"`
	Requirements []string `json:"requirements,omitempty"`
}

// NewDocument builds the document of g.
func NewDocument(g *model.Graph) *Document {
	doc := &Document{
		Name:     g.Name,
		Vertices: []VertexDocument{},
		Edges:    []EdgeDocument{},
	}
	for _, v := range g.Vertices() {
		doc.Vertices = append(doc.Vertices, VertexDocument{
			Index:        v.Index,
			Label:        v.Label,
			FullLabel:    v.FullLabel,
			File:         v.File,
			Image:        ptr(v.Image),
			Merge:        v.Merge,
			NoMerge:      v.NoMerge,
			Blocked:      v.Blocked,
			Requirements: v.ReqTags,
		})
	}
	for _, e := range g.Edges() {
		doc.Edges = append(doc.Edges, EdgeDocument{
			Index:        e.Index,
			Source:       g.Vertex(e.Source).Index,
			Target:       g.Vertex(e.Target).Index,
			File:         e.File,
			Label:        ptr(e.Label),
			FullLabel:    ptr(e.FullLabel),
			Parameter:    ptr(e.Parameter),
			Guard:        ptr(e.Guard),
			Actions:      e.ActionList(),
			Weight:       ptr(e.Weight),
			Blocked:      e.Blocked,
			Backtrack:    e.Backtrack,
			Requirements: e.ReqTags,
		})
	}
	sort.Slice(doc.Vertices, func(i, j int) bool { return doc.Vertices[i].Index < doc.Vertices[j].Index })
	sort.Slice(doc.Edges, func(i, j int) bool { return doc.Edges[i].Index < doc.Edges[j].Index })
	return doc
}

// EncodeDocument renders g as indented JSON and validates the result
// against the embedded schema.
func EncodeDocument(g *model.Graph) ([]byte, error) {
	data, err := json.MarshalIndent(NewDocument(g), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode model document: %w", err)
	}
	if err := ValidateDocument(data); err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// ValidateDocument checks raw JSON against the model document schema.
func ValidateDocument(data []byte) error {
	schema, err := documentSchema()
	if err != nil {
		return err
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("model document is not valid JSON: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("model document does not match schema: %w", err)
	}
	return nil
}

func documentSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		c := jsonschema.NewCompiler()
		c.Draft = jsonschema.Draft2020
		if err := c.AddResource("schema.json", bytes.NewReader(schemaJSON)); err != nil {
			schemaErr = fmt.Errorf("failed to load model document schema: %w", err)
			return
		}
		compiledSchema, schemaErr = c.Compile("schema.json")
	})
	return compiledSchema, schemaErr
}

func ptr[T any](o model.Optional[T]) *T {
	if v, ok := o.Get(); ok {
		return &v
	}
	return nil
}
