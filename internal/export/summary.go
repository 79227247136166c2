package export

import (
	"fmt"
	"io"
	"sort"

	"github.com/specialistvlad/mbtgo/internal/model"
	"gopkg.in/yaml.v3"
)

// Summary describes one merged model.
type Summary struct {
	SessionID    string   `yaml:"session_id"`
	Fingerprint  string   `yaml:"fingerprint"`
	Files        []string `yaml:"files"`
	Vertices     int      `yaml:"vertices"`
	Edges        int      `yaml:"edges"`
	Labels       []string `yaml:"labels"`
	Requirements []string `yaml:"requirements,omitempty"`
}

// NewSummary collects the summary of g. Labels and requirement tags are
// deduplicated and sorted.
func NewSummary(sessionID string, files []string, g *model.Graph) (*Summary, error) {
	fp, err := model.FingerprintHex(g)
	if err != nil {
		return nil, fmt.Errorf("failed to fingerprint model: %w", err)
	}

	labels := make(map[string]struct{})
	reqs := make(map[string]struct{})
	for _, v := range g.Vertices() {
		labels[v.Label] = struct{}{}
		for _, tag := range v.ReqTags {
			reqs[tag] = struct{}{}
		}
	}
	for _, e := range g.Edges() {
		for _, tag := range e.ReqTags {
			reqs[tag] = struct{}{}
		}
	}

	sortedFiles := append([]string(nil), files...)
	sort.Strings(sortedFiles)

	return &Summary{
		SessionID:    sessionID,
		Fingerprint:  fp,
		Files:        sortedFiles,
		Vertices:     g.VertexCount(),
		Edges:        g.EdgeCount(),
		Labels:       sortedKeys(labels),
		Requirements: sortedKeys(reqs),
	}, nil
}

// WriteSummary encodes s as YAML.
func WriteSummary(w io.Writer, s *Summary) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("failed to encode summary: %w", err)
	}
	return enc.Close()
}

func sortedKeys(m map[string]struct{}) []string {
	if len(m) == 0 {
		return nil
	}
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
