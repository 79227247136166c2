package coverage

import (
	"sort"
	"strings"
	"sync"

	"github.com/specialistvlad/mbtgo/internal/model"
)

// Tracker is a concurrency-safe set of covered requirement tags.
type Tracker struct {
	mu      sync.RWMutex
	covered map[string]struct{}
}

// NewTracker returns an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{covered: make(map[string]struct{})}
}

// Cover records tags as covered. Blank tags are ignored. It returns the
// number of tags that were not covered before.
func (t *Tracker) Cover(tags ...string) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	added := 0
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if _, ok := t.covered[tag]; !ok {
			t.covered[tag] = struct{}{}
			added++
		}
	}
	return added
}

// VisitVertex covers the requirement tags attached to v.
func (t *Tracker) VisitVertex(v *model.Vertex) int {
	if v == nil {
		return 0
	}
	return t.Cover(v.ReqTags...)
}

// VisitEdge covers the requirement tags attached to e.
func (t *Tracker) VisitEdge(e *model.Edge) int {
	if e == nil {
		return 0
	}
	return t.Cover(e.ReqTags...)
}

// CoveredRequirements returns the covered tags, sorted.
func (t *Tracker) CoveredRequirements() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]string, 0, len(t.covered))
	for tag := range t.covered {
		out = append(out, tag)
	}
	sort.Strings(out)
	return out
}

// Len returns the number of covered tags.
func (t *Tracker) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.covered)
}

// Reset forgets all covered tags.
func (t *Tracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.covered = make(map[string]struct{})
}
