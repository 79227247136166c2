// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package model

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/minio/highwayhash"
)

var fingerprintKey = []byte("mbtgo-model-fingerprint-key-0001")

// Fingerprint hashes the observable content of g: indices, labels, flags and
// the edge structure expressed through endpoint indices. Arena slots do not
// contribute, so two graphs built along different paths hash equal when they
// describe the same model.
func Fingerprint(g *Graph) (uint64, error) {
	hash, err := highwayhash.New64(fingerprintKey)
	if err != nil {
		return 0, err
	}
	_, err = hash.Write([]byte(canonical(g)))
	return hash.Sum64(), err
}

// FingerprintHex is Fingerprint rendered as 16 hex digits.
func FingerprintHex(g *Graph) (string, error) {
	sum, err := Fingerprint(g)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%016x", sum), nil
}

func canonical(g *Graph) string {
	vertices := g.Vertices()
	slices.SortFunc(vertices, func(a, b *Vertex) int { return a.Index - b.Index })
	edges := g.Edges()
	slices.SortFunc(edges, func(a, b *Edge) int { return a.Index - b.Index })

	var b strings.Builder
	for _, v := range vertices {
		b.WriteString("v|")
		b.WriteString(strconv.Itoa(v.Index))
		b.WriteByte('|')
		b.WriteString(strconv.Quote(v.FullLabel))
		fmt.Fprintf(&b, "|%t|%t|%t|%s\n", v.Merge, v.NoMerge, v.Blocked, strings.Join(v.ReqTags, ","))
	}
	for _, e := range edges {
		b.WriteString("e|")
		b.WriteString(strconv.Itoa(e.Index))
		fmt.Fprintf(&b, "|%d|%d|", g.Vertex(e.Source).Index, g.Vertex(e.Target).Index)
		b.WriteString(strconv.Quote(e.FullLabel.OrElse("")))
		fmt.Fprintf(&b, "|%t|%s\n", e.FullLabel.IsSet(), strings.Join(e.ReqTags, ","))
	}
	return b.String()
}
