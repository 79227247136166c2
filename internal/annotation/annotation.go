package annotation

import (
	"math"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"unicode"

	"github.com/specialistvlad/mbtgo/internal/model"
)

var (
	guardPattern = regexp.MustCompile(`\[(.*)\]`)
	labelPattern = regexp.MustCompile(`^(\w+)\s?([^\s^/\[]+)?`)
)

// Vertex is the parsed form of a node label.
type Vertex struct {
	Label     string
	FullLabel string

	Merge   bool
	NoMerge bool
	Blocked bool

	Index   model.Optional[int]
	ReqTags []string
}

// Edge is the parsed form of an edge label.
type Edge struct {
	FullLabel string

	Label     model.Optional[string]
	Parameter model.Optional[string]
	Guard     model.Optional[string]
	Actions   model.Optional[string]
	Weight    model.Optional[float64]

	Blocked   bool
	Backtrack bool

	Index   model.Optional[int]
	ReqTags []string
}

// ParseVertex parses the text of a node label. Surrounding whitespace is
// trimmed before parsing.
func ParseVertex(text, file string) (Vertex, error) {
	full := strings.TrimSpace(text)
	first, rest := splitLines(full)

	if first == "" {
		return Vertex{}, &model.ParseError{File: file, Msg: "vertex is missing its label"}
	}
	if strings.ContainsFunc(first, unicode.IsSpace) {
		return Vertex{}, &model.ParseError{File: file, Entity: first, Msg: "vertex label contains whitespace"}
	}
	if model.IsFlagKeyword(first) {
		return Vertex{}, &model.ParseError{File: file, Entity: first, Msg: "vertex label is a reserved keyword"}
	}

	f, err := parseFlags(rest, first, file)
	if err != nil {
		return Vertex{}, err
	}
	return Vertex{
		Label:     first,
		FullLabel: full,
		Merge:     f.merge,
		NoMerge:   f.noMerge,
		Blocked:   f.blocked,
		Index:     f.index,
		ReqTags:   f.reqTags,
	}, nil
}

// ParseEdge parses the text of an edge label. The text is used as is; an
// edge label may legitimately start with an empty line.
func ParseEdge(text, file string) (Edge, error) {
	first, rest := splitLines(text)
	e := Edge{FullLabel: text}

	guardStart, guardEnd := -1, -1
	if loc := guardPattern.FindStringSubmatchIndex(first); loc != nil {
		e.Guard = model.Some(first[loc[2]:loc[3]])
		guardStart, guardEnd = loc[0], loc[1]
	}

	if slash := actionSlash(first, guardStart, guardEnd); slash >= 0 {
		e.Actions = model.Some(strings.TrimSpace(first[slash+1:]))
	}

	if m := labelPattern.FindStringSubmatch(first); m != nil {
		if model.IsFlagKeyword(m[1]) || model.IsMarker(m[1]) {
			return Edge{}, &model.ParseError{File: file, Entity: m[1], Msg: "edge label is a reserved keyword"}
		}
		e.Label = model.Some(m[1])
		if m[2] != "" {
			e.Parameter = model.Some(m[2])
		}
	}

	f, err := parseFlags(rest, e.Label.OrElse(""), file)
	if err != nil {
		return Edge{}, err
	}
	e.Weight = f.weight
	e.Blocked = f.blocked
	e.Backtrack = f.backtrack
	e.Index = f.index
	e.ReqTags = f.reqTags
	return e, nil
}

// actionSlash finds the '/' that opens the action list. A slash inside the
// guard brackets does not count.
func actionSlash(line string, guardStart, guardEnd int) int {
	for i := 0; i < len(line); i++ {
		if line[i] == '/' && (i < guardStart || i >= guardEnd) {
			return i
		}
	}
	return -1
}

func splitLines(text string) (string, []string) {
	lines := strings.Split(text, "\n")
	for i := range lines {
		lines[i] = strings.TrimSuffix(lines[i], "\r")
	}
	return lines[0], lines[1:]
}

type flags struct {
	merge     bool
	noMerge   bool
	blocked   bool
	backtrack bool
	index     model.Optional[int]
	weight    model.Optional[float64]
	reqTags   []string
}

func parseFlags(lines []string, entity, file string) (flags, error) {
	var f flags
	for _, raw := range lines {
		line := strings.TrimSpace(raw)
		switch {
		case line == model.KeywordMerge:
			f.merge = true
		case line == model.KeywordNoMerge:
			f.noMerge = true
		case line == model.KeywordBlocked:
			f.blocked = true
		case line == model.KeywordBacktrack:
			f.backtrack = true
		case strings.HasPrefix(line, model.KeywordIndex+"="):
			value := strings.TrimSpace(strings.TrimPrefix(line, model.KeywordIndex+"="))
			n, err := strconv.Atoi(value)
			if err != nil || n <= 0 {
				return flags{}, &model.ParseError{File: file, Entity: entity, Value: value, Msg: "INDEX is not a correct positive integer value"}
			}
			if prev, ok := f.index.Get(); ok && prev != n {
				return flags{}, &model.ParseError{File: file, Entity: entity, Value: value, Msg: "conflicting INDEX values"}
			}
			f.index = model.Some(n)
		case strings.HasPrefix(line, model.KeywordWeight+"="):
			value := strings.TrimSpace(strings.TrimPrefix(line, model.KeywordWeight+"="))
			w, err := strconv.ParseFloat(value, 64)
			if err != nil || math.IsNaN(w) || math.IsInf(w, 0) || w < 0 {
				return flags{}, &model.ParseError{File: file, Entity: entity, Value: value, Msg: "weight is not a correct float value"}
			}
			if prev, ok := f.weight.Get(); ok && prev != w {
				return flags{}, &model.ParseError{File: file, Entity: entity, Value: value, Msg: "conflicting weight values"}
			}
			f.weight = model.Some(w)
		case strings.HasPrefix(line, model.KeywordReqTag+"="):
			for _, tag := range strings.Split(strings.TrimPrefix(line, model.KeywordReqTag+"="), ",") {
				if tag = strings.TrimSpace(tag); tag != "" && !slices.Contains(f.reqTags, tag) {
					f.reqTags = append(f.reqTags, tag)
				}
			}
		}
	}
	return f, nil
}
