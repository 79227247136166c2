package export

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/specialistvlad/mbtgo/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func sampleGraph(t *testing.T) *model.Graph {
	t.Helper()
	g := model.NewGraph("root.graphml")
	start := g.AddVertex(&model.Vertex{Index: 1, Label: "Start", FullLabel: "Start", File: "root.graphml"})
	login := g.AddVertex(&model.Vertex{
		Index:     2,
		Label:     "v_Login",
		FullLabel: "v_Login\nREQTAG=R1",
		File:      "root.graphml",
		Image:     model.Some("login.png"),
		ReqTags:   []string{"R1"},
	})
	_, err := g.AddEdge(&model.Edge{Index: 3, Source: start.ID, Target: login.ID, File: "root.graphml"})
	require.NoError(t, err)
	_, err = g.AddEdge(&model.Edge{
		Index:     4,
		Source:    login.ID,
		Target:    login.ID,
		File:      "root.graphml",
		FullLabel: model.Some("e_Retry user [n<3] / n++;log\nweight=0.25"),
		Label:     model.Some("e_Retry"),
		Parameter: model.Some("user"),
		Guard:     model.Some("n<3"),
		Actions:   model.Some("n++;log"),
		Weight:    model.Some(0.25),
		ReqTags:   []string{"R2"},
	})
	require.NoError(t, err)
	return g
}

func TestNewSummary(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	g := sampleGraph(t)

	// --- Act ---
	s, err := NewSummary("01J0000000000000000000000", []string{"b.graphml", "a.graphml"}, g)

	// --- Assert ---
	require.NoError(t, err)
	assert.Equal(t, []string{"a.graphml", "b.graphml"}, s.Files)
	assert.Equal(t, 2, s.Vertices)
	assert.Equal(t, 2, s.Edges)
	assert.Equal(t, []string{"Start", "v_Login"}, s.Labels)
	assert.Equal(t, []string{"R1", "R2"}, s.Requirements)
	assert.Len(t, s.Fingerprint, 16)
}

func TestWriteSummary(t *testing.T) {
	t.Parallel()

	s, err := NewSummary("sid", []string{"root.graphml"}, sampleGraph(t))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteSummary(&buf, s))

	var decoded Summary
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, *s, decoded)
	assert.Contains(t, buf.String(), "session_id: sid")
}

func TestEncodeDocument(t *testing.T) {
	t.Parallel()

	// --- Act ---
	data, err := EncodeDocument(sampleGraph(t))

	// --- Assert ---
	require.NoError(t, err)

	var doc Document
	require.NoError(t, json.Unmarshal(data, &doc))
	require.Len(t, doc.Vertices, 2)
	require.Len(t, doc.Edges, 2)

	assert.Equal(t, "v_Login", doc.Vertices[1].Label)
	require.NotNil(t, doc.Vertices[1].Image)
	assert.Equal(t, "login.png", *doc.Vertices[1].Image)

	plain := doc.Edges[0]
	assert.Equal(t, 1, plain.Source)
	assert.Equal(t, 2, plain.Target)
	assert.Nil(t, plain.Label)
	assert.Nil(t, plain.Weight)

	retry := doc.Edges[1]
	assert.Equal(t, 2, retry.Source)
	assert.Equal(t, 2, retry.Target)
	require.NotNil(t, retry.Guard)
	assert.Equal(t, "n<3", *retry.Guard)
	assert.Equal(t, []string{"n++", "log"}, retry.Actions)
	require.NotNil(t, retry.Weight)
	assert.Equal(t, 0.25, *retry.Weight)
	assert.Equal(t, []string{"R2"}, retry.Requirements)
}

func TestEncodeDocument_EmptyGraph(t *testing.T) {
	t.Parallel()

	data, err := EncodeDocument(model.NewGraph("empty.graphml"))

	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"","vertices":[],"edges":[]}`, string(data))
}

func TestValidateDocument(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		doc     string
		wantErr string
	}{
		{
			name: "valid",
			doc:  `{"name":"","vertices":[{"index":1,"label":"Start","full_label":"Start"}],"edges":[]}`,
		},
		{
			name:    "not json",
			doc:     `{`,
			wantErr: "not valid JSON",
		},
		{
			name:    "missing edges",
			doc:     `{"name":"","vertices":[]}`,
			wantErr: "does not match schema",
		},
		{
			name:    "label with whitespace",
			doc:     `{"name":"","vertices":[{"index":1,"label":"a b","full_label":"a b"}],"edges":[]}`,
			wantErr: "does not match schema",
		},
		{
			name:    "zero index",
			doc:     `{"name":"","vertices":[],"edges":[{"index":0,"source":1,"target":1}]}`,
			wantErr: "does not match schema",
		},
		{
			name:    "unknown field",
			doc:     `{"name":"","vertices":[],"edges":[],"extra":true}`,
			wantErr: "does not match schema",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			err := ValidateDocument([]byte(tc.doc))

			if tc.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tc.wantErr)
		})
	}
}
