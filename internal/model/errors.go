// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package model

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInternal marks a broken invariant inside the merge pipeline.
	ErrInternal = errors.New("internal programming error")
	// ErrGraphFrozen is the panic value for mutating a validated graph.
	ErrGraphFrozen = errors.New("graph is frozen")
)

// ParseError reports a label or file that cannot be read.
type ParseError struct {
	File   string
	Entity string
	Value  string
	Msg    string
	Err    error
}

func (e *ParseError) Error() string {
	var b strings.Builder
	if e.Entity != "" {
		fmt.Fprintf(&b, "for label: %s, ", e.Entity)
	}
	b.WriteString(e.Msg)
	if e.Value != "" {
		fmt.Fprintf(&b, ": %q", e.Value)
	}
	if e.File != "" {
		fmt.Fprintf(&b, ", in file '%s'", e.File)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ErrorKind classifies a StructuralError.
type ErrorKind int

const (
	KindInternal ErrorKind = iota
	KindDuplicateID
	KindDanglingEdge
	KindNoStart
	KindStartOutDegree
	KindDuplicateStart
	KindDuplicateRoot
	KindMissingRoot
	KindDuplicateSubgraph
	KindSelfReference
	KindRecursiveSubgraph
	KindMissingSubgraphStart
	KindMultipleStop
	KindUnreachable
	KindDuplicateIndex
)

var kindNames = map[ErrorKind]string{
	KindInternal:             "internal error",
	KindDuplicateID:          "duplicate element id",
	KindDanglingEdge:         "dangling edge",
	KindNoStart:              "missing start vertex",
	KindStartOutDegree:       "invalid start vertex",
	KindDuplicateStart:       "duplicate start vertex",
	KindDuplicateRoot:        "duplicate root graph",
	KindMissingRoot:          "missing root graph",
	KindDuplicateSubgraph:    "duplicate subgraph name",
	KindSelfReference:        "subgraph references itself",
	KindRecursiveSubgraph:    "recursive subgraph",
	KindMissingSubgraphStart: "missing subgraph start",
	KindMultipleStop:         "multiple stop vertices",
	KindUnreachable:          "unreachable vertex",
	KindDuplicateIndex:       "duplicate index",
}

func (k ErrorKind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// StructuralError reports a model whose shape cannot be merged.
type StructuralError struct {
	Kind      ErrorKind
	File      string
	OtherFile string
	Entity    string
	Index     int
	Msg       string
	Err       error
}

func (e *StructuralError) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.String())
	if e.Msg != "" {
		fmt.Fprintf(&b, ": %s", e.Msg)
	}
	if e.Entity != "" {
		fmt.Fprintf(&b, ", label '%s'", e.Entity)
	}
	if e.Index > 0 {
		fmt.Fprintf(&b, ", index %d", e.Index)
	}
	switch {
	case e.File != "" && e.OtherFile != "" && e.File != e.OtherFile:
		fmt.Fprintf(&b, ", see files '%s' and '%s'", e.File, e.OtherFile)
	case e.File != "":
		fmt.Fprintf(&b, ", in file '%s'", e.File)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

func (e *StructuralError) Unwrap() error {
	return e.Err
}

// Is matches another *StructuralError of the same Kind, so callers can write
// errors.Is(err, &StructuralError{Kind: KindUnreachable}).
func (e *StructuralError) Is(target error) bool {
	t, ok := target.(*StructuralError)
	return ok && t.Kind == e.Kind
}
