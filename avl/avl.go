// Copyright ©2024 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package avl implements a height balanced binary search tree as described in
//
//	G. M. Adelson-Velsky and E. M. Landis, "An algorithm for the organization
//	of information", Proceedings of the USSR Academy of Sciences 146:263–266 (1962).
//	https://en.wikipedia.org/wiki/AVL_tree
//
// Insertion and deletion are iterative, keeping the ancestor links of the
// search path on an explicit stack for the rebalancing walk.
package avl

import (
	"cmp"
	"iter"
)

// A node is a single key in the AVL tree.
type node[K any] struct {
	key         K
	left, right *node[K]
	height      int
}

// A Tree is an AVL tree holding a set of keys.
type Tree[K any] struct {
	root  *node[K]
	count int
	cmp   func(a, b K) int
}

// New returns an empty tree ordered by the natural order of K.
func New[K cmp.Ordered]() *Tree[K] {
	return NewFunc(cmp.Compare[K])
}

// NewFunc returns an empty tree ordered by cmp, which must return a negative
// value when a < b, zero when a == b and a positive value when a > b.
func NewFunc[K any](cmp func(a, b K) int) *Tree[K] {
	if cmp == nil {
		panic("avl: nil comparison function")
	}
	return &Tree[K]{cmp: cmp}
}

// Helper methods

// h returns the height of the subtree rooted at n. A nil node has height zero.
func (n *node[K]) h() int {
	if n == nil {
		return 0
	}
	return n.height
}

func (n *node[K]) fixHeight() {
	n.height = 1 + max(n.left.h(), n.right.h())
}

// balance returns the balance factor of n, h(left) - h(right).
func (n *node[K]) balance() int {
	return n.left.h() - n.right.h()
}

// (a,(b,c)y)x -rotL-> ((a,b)x,c)y
func (n *node[K]) rotateLeft() (root *node[K]) {
	root = n.right
	n.right = root.left
	root.left = n
	n.fixHeight()
	root.fixHeight()
	return root
}

// ((a,b)x,c)y -rotR-> (a,(b,c)y)x
func (n *node[K]) rotateRight() (root *node[K]) {
	root = n.left
	n.left = root.right
	root.right = n
	n.fixHeight()
	root.fixHeight()
	return root
}

// rebalance recomputes the height of n and, if n is out of balance, applies
// the single or double rotation that restores it, returning the new root of
// the subtree.
func (n *node[K]) rebalance() *node[K] {
	n.fixHeight()
	switch b := n.balance(); {
	case b > 1:
		if n.left.balance() < 0 {
			n.left = n.left.rotateLeft() // Left-right case.
		}
		return n.rotateRight()
	case b < -1:
		if n.right.balance() > 0 {
			n.right = n.right.rotateRight() // Right-left case.
		}
		return n.rotateLeft()
	}
	return n
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
	return t.root.h()
}

// Search returns whether k is held in the Tree.
func (t *Tree[K]) Search(k K) bool {
	n := t.root
	for n != nil {
		switch c := t.cmp(k, n.key); {
		case c == 0:
			return true
		case c < 0:
			n = n.left
		default:
			n = n.right
		}
	}
	return false
}

// Insert inserts k into the Tree, returning whether a new node was created.
// Inserting a key already present leaves the Tree unchanged.
func (t *Tree[K]) Insert(k K) bool {
	var path []**node[K]
	link := &t.root
	for *link != nil {
		c := t.cmp(k, (*link).key)
		if c == 0 {
			return false
		}
		path = append(path, link)
		if c < 0 {
			link = &(*link).left
		} else {
			link = &(*link).right
		}
	}
	*link = &node[K]{key: k, height: 1}
	t.count++

	// Walk back up. A single rotation restores the height the subtree had
	// before the insertion, so nothing above the first fix can change.
	for i := len(path) - 1; i >= 0; i-- {
		n := *path[i]
		h := n.height
		n.fixHeight()
		if b := n.balance(); b > 1 || b < -1 {
			*path[i] = n.rebalance()
			break
		}
		if n.height == h {
			break
		}
	}

	return true
}

// Delete removes k from the Tree, returning whether a node was removed.
func (t *Tree[K]) Delete(k K) bool {
	var path []**node[K]
	link := &t.root
	for {
		n := *link
		if n == nil {
			return false
		}
		c := t.cmp(k, n.key)
		if c == 0 {
			break
		}
		path = append(path, link)
		if c < 0 {
			link = &n.left
		} else {
			link = &n.right
		}
	}

	n := *link
	switch {
	case n.left == nil:
		*link = n.right
	case n.right == nil:
		*link = n.left
	default:
		// Move the in-order successor node into the position held by n.
		at := len(path)
		path = append(path, link)
		sl := &n.right
		for (*sl).left != nil {
			path = append(path, sl)
			sl = &(*sl).left
		}
		s := *sl
		*sl = s.right
		s.left, s.right = n.left, n.right
		*link = s
		if at+1 < len(path) {
			// The first link below n belonged to n and now belongs to s.
			path[at+1] = &s.right
		}
	}
	n.left, n.right = nil, nil
	t.count--

	// Deletion may unbalance every ancestor on the path.
	for i := len(path) - 1; i >= 0; i-- {
		*path[i] = (*path[i]).rebalance()
	}

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
	if t.root == nil {
		return false
	}
	return t.root.do(fn)
}

func (n *node[K]) do(fn Operation[K]) (done bool) {
	if n.left != nil {
		done = n.left.do(fn)
		if done {
			return
		}
	}
	done = fn(n.key)
	if done {
		return
	}
	if n.right != nil {
		done = n.right.do(fn)
	}
	return
}

// InOrder returns an iterator over the keys of the Tree in ascending order.
// Each use of the iterator starts from the minimum key. The Tree must not be
// modified during iteration.
func (t *Tree[K]) InOrder() iter.Seq[K] {
	return func(yield func(K) bool) {
		t.Do(func(k K) bool { return !yield(k) })
	}
}
