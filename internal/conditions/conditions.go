package conditions

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrNoRequirements is returned when a requirement list holds no tag.
var ErrNoRequirements = errors.New("no requirement tags given")

// StopCondition decides whether a traversal may stop.
type StopCondition interface {
	// IsFulfilled reports whether the traversal may stop.
	IsFulfilled() bool
	// Fulfillment returns progress towards IsFulfilled in [0, 1].
	Fulfillment() float64
}

// RequirementSource reports the requirement tags covered so far.
type RequirementSource interface {
	CoveredRequirements() []string
}

// ReachedRequirement is fulfilled once every listed requirement tag has
// been covered.
type ReachedRequirement struct {
	source       RequirementSource
	requirements []string
}

// NewReachedRequirement parses a comma-separated tag list. Tags are trimmed
// and empty entries dropped; a list without any tag is rejected.
func NewReachedRequirement(source RequirementSource, list string) (*ReachedRequirement, error) {
	return NewReachedRequirements(source, strings.Split(list, ",")...)
}

// NewReachedRequirements builds the condition from individual tags.
func NewReachedRequirements(source RequirementSource, tags ...string) (*ReachedRequirement, error) {
	if source == nil {
		return nil, fmt.Errorf("requirement source must not be nil")
	}
	seen := make(map[string]struct{})
	var reqs []string
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		reqs = append(reqs, tag)
	}
	if len(reqs) == 0 {
		return nil, ErrNoRequirements
	}
	sort.Strings(reqs)
	return &ReachedRequirement{source: source, requirements: reqs}, nil
}

// Requirements returns the required tags, sorted.
func (r *ReachedRequirement) Requirements() []string {
	return append([]string(nil), r.requirements...)
}

// IsFulfilled reports whether the covered set contains every required tag.
func (r *ReachedRequirement) IsFulfilled() bool {
	return r.covered() == len(r.requirements)
}

// Fulfillment is the share of required tags already covered.
func (r *ReachedRequirement) Fulfillment() float64 {
	return float64(r.covered()) / float64(len(r.requirements))
}

func (r *ReachedRequirement) covered() int {
	have := make(map[string]struct{})
	for _, tag := range r.source.CoveredRequirements() {
		have[tag] = struct{}{}
	}
	n := 0
	for _, tag := range r.requirements {
		if _, ok := have[tag]; ok {
			n++
		}
	}
	return n
}

func (r *ReachedRequirement) String() string {
	return "ReachedRequirement(" + strings.Join(r.requirements, ",") + ")"
}

// Combinational is the logical AND of its children. An empty combination is
// trivially fulfilled.
type Combinational struct {
	children []StopCondition
}

// NewCombinational returns an AND over children.
func NewCombinational(children ...StopCondition) *Combinational {
	c := &Combinational{}
	for _, child := range children {
		c.Add(child)
	}
	return c
}

// Add appends a child condition. A nil child is ignored.
func (c *Combinational) Add(child StopCondition) {
	if child != nil {
		c.children = append(c.children, child)
	}
}

// Len returns the number of children.
func (c *Combinational) Len() int {
	return len(c.children)
}

// IsFulfilled reports whether every child is fulfilled.
func (c *Combinational) IsFulfilled() bool {
	for _, child := range c.children {
		if !child.IsFulfilled() {
			return false
		}
	}
	return true
}

// Fulfillment is the arithmetic mean of the children's fulfillment.
func (c *Combinational) Fulfillment() float64 {
	if len(c.children) == 0 {
		return 1
	}
	var sum float64
	for _, child := range c.children {
		sum += child.Fulfillment()
	}
	return sum / float64(len(c.children))
}

func (c *Combinational) String() string {
	parts := make([]string, 0, len(c.children))
	for _, child := range c.children {
		parts = append(parts, fmt.Sprint(child))
	}
	return "AND(" + strings.Join(parts, ", ") + ")"
}
