// Copyright ©2024 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package treap implements a randomized binary search tree as described in
//
//	R. Seidel and C. R. Aragon, "Randomized search trees",
//	Algorithmica 16:464–497 (1996).
//	https://en.wikipedia.org/wiki/Treap
//
// Keys are held in search tree order and node priorities in max-heap order.
// Priorities are drawn from a random source supplied when the tree is
// created, so a seeded source gives reproducible tree shapes.
package treap

import (
	"cmp"
	"iter"
	"math/rand/v2"
)

// A node is a single key in the treap.
type node[K any] struct {
	key         K
	priority    uint64
	left, right *node[K]
}

// A Tree is a treap holding a set of keys.
type Tree[K any] struct {
	root  *node[K]
	count int
	cmp   func(a, b K) int
	src   rand.Source
}

// New returns an empty tree ordered by the natural order of K, drawing node
// priorities from src. If src is nil a randomly seeded PCG source is used.
func New[K cmp.Ordered](src rand.Source) *Tree[K] {
	return NewFunc(cmp.Compare[K], src)
}

// NewFunc returns an empty tree ordered by cmp, drawing node priorities from
// src. The cmp function must return a negative value when a < b, zero when
// a == b and a positive value when a > b. If src is nil a randomly seeded PCG
// source is used.
func NewFunc[K any](cmp func(a, b K) int, src rand.Source) *Tree[K] {
	if cmp == nil {
		panic("treap: nil comparison function")
	}
	if src == nil {
		src = rand.NewPCG(rand.Uint64(), rand.Uint64())
	}
	return &Tree[K]{cmp: cmp, src: src}
}

// Len returns the number of keys stored in the Tree.
func (t *Tree[K]) Len() int {
	return t.count
}

// IsEmpty returns whether the Tree holds no keys.
func (t *Tree[K]) IsEmpty() bool {
	return t.count == 0
}

// Height returns the number of nodes on the longest path from the root to a
// leaf. The height of an empty tree is zero.
func (t *Tree[K]) Height() int {
	var height func(*node[K]) int
	height = func(n *node[K]) int {
		if n == nil {
			return 0
		}
		return 1 + max(height(n.left), height(n.right))
	}
	return height(t.root)
}

// get returns the node holding k and its parent. The parent is nil when the
// node is the root. Both are nil when k is not present.
func (t *Tree[K]) get(k K) (n, parent *node[K]) {
	for n = t.root; n != nil; {
		c := t.cmp(k, n.key)
		if c == 0 {
			return n, parent
		}
		parent = n
		if c < 0 {
			n = n.left
		} else {
			n = n.right
		}
	}
	return nil, nil
}

// Search returns whether k is held in the Tree.
func (t *Tree[K]) Search(k K) bool {
	n, _ := t.get(k)
	return n != nil
}

// relink points the grandparent's link that held parent at n after a
// rotation. A nil grandparent means n is now the root.
func (t *Tree[K]) relink(n, parent, grandparent *node[K]) {
	switch {
	case grandparent == nil:
		t.root = n
	case grandparent.left == parent:
		grandparent.left = n
	default:
		grandparent.right = n
	}
}

// Insert inserts k into the Tree, returning whether a new node was created.
// Inserting a key already present leaves the Tree unchanged.
func (t *Tree[K]) Insert(k K) bool {
	if t.root == nil {
		t.root = &node[K]{key: k, priority: t.src.Uint64()}
		t.count = 1
		return true
	}

	var parents parentStack[K]
	var c int
	for n := t.root; n != nil; {
		parents.Push(n)
		c = t.cmp(k, n.key)
		switch {
		case c == 0:
			return false
		case c < 0:
			n = n.left
		default:
			n = n.right
		}
	}

	n := &node[K]{key: k, priority: t.src.Uint64()}
	t.count++
	if parent := parents.At(0); c < 0 {
		parent.left = n
	} else {
		parent.right = n
	}

	// Rotate n up while it outranks its parent. Equal priorities stay put.
	for parents.Len() > 0 {
		parent := parents.Pop()
		if n.priority <= parent.priority {
			break
		}
		if parent.left == n {
			n.right, parent.left = parent, n.right
		} else {
			n.left, parent.right = parent, n.left
		}
		t.relink(n, parent, parents.At(0))
	}

	return true
}

// Delete removes k from the Tree, returning whether a node was removed.
func (t *Tree[K]) Delete(k K) bool {
	n, parent := t.get(k)
	if n == nil {
		return false
	}

	// Rotate n down towards its higher priority child until it is a leaf.
	for n.left != nil || n.right != nil {
		var child *node[K]
		switch {
		case n.left == nil:
			child = n.right
		case n.right == nil:
			child = n.left
		case n.left.priority >= n.right.priority:
			child = n.left
		default:
			child = n.right
		}
		if child == n.left {
			child.right, n.left = n, child.right
		} else {
			child.left, n.right = n, child.left
		}
		t.relink(child, n, parent)
		parent = child
	}

	switch {
	case parent == nil:
		t.root = nil
	case parent.left == n:
		parent.left = nil
	default:
		parent.right = nil
	}
	t.count--

	return true
}

// Min returns the minimum key stored in the Tree and whether the Tree was
// non-empty.
func (t *Tree[K]) Min() (k K, ok bool) {
	n := t.root
	if n == nil {
		return k, false
	}
	for n.left != nil {
		n = n.left
	}
	return n.key, true
}

// Max returns the maximum key stored in the Tree and whether the Tree was
// non-empty.
func (t *Tree[K]) Max() (k K, ok bool) {
	n := t.root
	if n == nil {
		return k, false
	}
	for n.right != nil {
		n = n.right
	}
	return n.key, true
}

// An Operation is a function that operates on a key. If done is returned true, the
// Operation is indicating that no further work needs to be done and so the Do function should
// traverse no further.
type Operation[K any] func(K) (done bool)

// Do performs fn on all keys stored in the tree in ascending order. A boolean is
// returned indicating whether the traversal was interrupted by an Operation returning true.
func (t *Tree[K]) Do(fn Operation[K]) bool {
	var parents parentStack[K]
	for n := t.root; n != nil; n = n.left {
		parents.Push(n)
	}
	for parents.Len() > 0 {
		n := parents.Pop()
		if fn(n.key) {
			return true
		}
		for n := n.right; n != nil; n = n.left {
			parents.Push(n)
		}
	}
	return false
}

// InOrder returns an iterator over the keys of the Tree in ascending order.
// Each use of the iterator starts from the minimum key. The Tree must not be
// modified during iteration.
func (t *Tree[K]) InOrder() iter.Seq[K] {
	return func(yield func(K) bool) {
		t.Do(func(k K) bool { return !yield(k) })
	}
}
