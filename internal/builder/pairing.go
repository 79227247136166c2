package builder

import (
	"fmt"
	"slices"
	"unicode/utf8"

	"github.com/specialistvlad/mbtgo/internal/model"
)

// Pair joins an out edge of a placeholder with an in edge of a Stop vertex.
type Pair struct {
	Out *model.Edge
	In  *model.Edge
}

// PairEdges matches the placeholder's out edges against the edges into Stop.
//
//  1. Equal labels pair up, and so do two unlabeled edges. This phase pairs
//     every match, so one edge may end up in several pairs.
//  2. An unlabeled out edge pairs with every labeled in edge not paired yet.
//  3. An unlabeled in edge pairs with every labeled out edge not paired yet.
//
// Edges left over are not paired.
func PairEdges(outs, ins []*model.Edge) []Pair {
	var pairs []Pair

	for _, a := range outs {
		for _, b := range ins {
			la, lb := labelOf(a), labelOf(b)
			if la == lb {
				pairs = append(pairs, Pair{Out: a, In: b})
			}
		}
	}

	for _, a := range outs {
		if a.HasLabel() {
			continue
		}
		for _, b := range ins {
			if b.HasLabel() && !slices.ContainsFunc(pairs, func(p Pair) bool { return p.In == b }) {
				pairs = append(pairs, Pair{Out: a, In: b})
			}
		}
	}

	for _, b := range ins {
		if b.HasLabel() {
			continue
		}
		for _, a := range outs {
			if a.HasLabel() && !slices.ContainsFunc(pairs, func(p Pair) bool { return p.Out == a }) {
				pairs = append(pairs, Pair{Out: a, In: b})
			}
		}
	}
	return pairs
}

// labelOf folds an absent label and an empty one together.
func labelOf(e *model.Edge) string {
	return e.Label.OrElse("")
}

// MergeEdges builds the edge replacing a pair. Attributes come from the edge
// with the longer full label, the in edge on a tie, and fall back to the
// other edge where the preferred one has none. Endpoints and index are left
// to the caller.
func MergeEdges(out, in *model.Edge) (*model.Edge, error) {
	if out == nil || in == nil {
		return nil, fmt.Errorf("%w: cannot merge a nil edge", model.ErrInternal)
	}
	primary, secondary := in, out
	if utf8.RuneCountInString(out.FullLabel.OrElse("")) > utf8.RuneCountInString(in.FullLabel.OrElse("")) {
		primary, secondary = out, in
	}

	e := &model.Edge{
		SourceID:  primary.SourceID,
		File:      primary.File,
		FullLabel: primary.FullLabel.Or(secondary.FullLabel),
		Label:     primary.Label.Or(secondary.Label),
		Parameter: primary.Parameter.Or(secondary.Parameter),
		Guard:     primary.Guard.Or(secondary.Guard),
		Actions:   primary.Actions.Or(secondary.Actions),
		Weight:    primary.Weight.Or(secondary.Weight),
		Backtrack: primary.Backtrack || secondary.Backtrack,
		ReqTags:   slices.Clone(primary.ReqTags),
	}
	for _, tag := range secondary.ReqTags {
		if !slices.Contains(e.ReqTags, tag) {
			e.ReqTags = append(e.ReqTags, tag)
		}
	}
	return e, nil
}
