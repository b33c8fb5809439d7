// Copyright ©2024 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package treap

// staticDepth is the number of ancestors held without allocation. Treap
// heights are logarithmic with high probability, so the overflow slice is
// rarely touched.
const staticDepth = 128

// parentStack is a stack of nodes used for descent and iteration. It holds
// the first staticDepth items in a fixed array and the rest in an overflow
// slice.
type parentStack[K any] struct {
	index    int
	items    [staticDepth]*node[K]
	overflow []*node[K]
}

// Len returns the number of items on the stack.
func (s *parentStack[K]) Len() int {
	return s.index
}

// At returns the item n places below the top of the stack without removing
// it. It returns nil if n exceeds the depth of the stack.
func (s *parentStack[K]) At(n int) *node[K] {
	index := s.index - n - 1
	if index < 0 {
		return nil
	}
	if index < staticDepth {
		return s.items[index]
	}
	return s.overflow[index-staticDepth]
}

// Pop removes and returns the top item of the stack, or nil if the stack is
// empty.
func (s *parentStack[K]) Pop() *node[K] {
	if s.index == 0 {
		return nil
	}
	s.index--
	if s.index < staticDepth {
		n := s.items[s.index]
		s.items[s.index] = nil
		return n
	}
	n := s.overflow[s.index-staticDepth]
	s.overflow[s.index-staticDepth] = nil
	return n
}

// Push places n on top of the stack.
func (s *parentStack[K]) Push(n *node[K]) {
	if s.index < staticDepth {
		s.items[s.index] = n
		s.index++
		return
	}
	if index := s.index - staticDepth; index < len(s.overflow) {
		s.overflow[index] = n
	} else {
		s.overflow = append(s.overflow, n)
	}
	s.index++
}
