package ui

import "sync"

// Element slice pooling for traversal scratch space. Flattening the tree
// for navigation and snapshotting child lists for update dispatch happen
// every frame; pooling the slices keeps those passes allocation-free for
// typical tree sizes.

var elementSlicePool = sync.Pool{
	New: func() any {
		return make([]*Element, 0, 32)
	},
}

// acquireElementSlice gets a slice with len == n from the pool. Callers
// must release it when done and not use it afterwards.
func acquireElementSlice(n int) []*Element {
	s := elementSlicePool.Get().([]*Element)
	if cap(s) < n {
		elementSlicePool.Put(s[:0])
		return make([]*Element, n, n*2)
	}
	return s[:n]
}

// releaseElementSlice clears and returns a slice to the pool. Oversized
// slices are dropped to keep pooled memory bounded.
func releaseElementSlice(s []*Element) {
	if s == nil {
		return
	}
	for i := range s {
		s[i] = nil
	}
	if cap(s) <= 256 {
		elementSlicePool.Put(s[:0])
	}
}
