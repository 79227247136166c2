// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package model

// IndexAllocator hands out element indices for one merge session. It is not
// safe for concurrent use; a session runs on a single goroutine.
type IndexAllocator struct {
	last int
}

// NewIndexAllocator returns an allocator whose first index is 1.
func NewIndexAllocator() *IndexAllocator {
	return &IndexAllocator{}
}

// Next returns a fresh index.
func (a *IndexAllocator) Next() int {
	a.last++
	return a.last
}

// Observe records an index taken from an explicit INDEX annotation so that
// Next never hands it out again.
func (a *IndexAllocator) Observe(n int) {
	if n > a.last {
		a.last = n
	}
}

// Last returns the highest index handed out or observed.
func (a *IndexAllocator) Last() int {
	return a.last
}
