// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package model

// Reserved vertex labels marking the entry and exit of a graph.
const (
	StartLabel = "Start"
	StopLabel  = "Stop"
)

// Flag tokens recognised on the second and later lines of a label.
const (
	KeywordMerge     = "MERGE"
	KeywordNoMerge   = "NO_MERGE"
	KeywordBlocked   = "BLOCKED"
	KeywordBacktrack = "BACKTRACK"
	KeywordIndex     = "INDEX"
	KeywordWeight    = "weight"
	KeywordReqTag    = "REQTAG"
)

var flagKeywords = map[string]struct{}{
	KeywordMerge:     {},
	KeywordNoMerge:   {},
	KeywordBlocked:   {},
	KeywordBacktrack: {},
	KeywordIndex:     {},
	KeywordWeight:    {},
	KeywordReqTag:    {},
}

// IsFlagKeyword reports whether s is one of the flag tokens.
func IsFlagKeyword(s string) bool {
	_, ok := flagKeywords[s]
	return ok
}

// IsMarker reports whether s is the Start or Stop marker.
func IsMarker(s string) bool {
	return s == StartLabel || s == StopLabel
}
