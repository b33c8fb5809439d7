// Copyright ©2024 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package llrb implements a Left-Leaning Red Black tree as described in
//
//	http://www.cs.princeton.edu/~rs/talks/LLRB/LLRB.pdf
//	http://www.cs.princeton.edu/~rs/talks/LLRB/Java/RedBlackBST.java
//	http://www.teachsolaisgames.com/articles/balanced_left_leaning.html
//
// The tree is maintained in bottom-up 2-3 mode.
package llrb

import (
	"cmp"
	"iter"
)

// A Color represents the color of a tree node.
type Color bool

// String returns a string representation of a Color.
func (c Color) String() string {
	if c {
		return "Black"
	}
	return "Red"
}

const (
	// Red as false give us the defined behaviour that new nodes are red. Although this
	// is incorrect for the root node, that is resolved on the first insertion.
	Red   Color = false
	Black Color = true
)

// A node is a single key in the LLRB tree.
type node[K any] struct {
	key         K
	left, right *node[K]
	color       Color
}

// A Tree manages the root node of an LLRB tree holding a set of keys.
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
		panic("llrb: nil comparison function")
	}
	return &Tree[K]{cmp: cmp}
}

// Helper methods

// getColor returns the effective color of a tree node. A nil node returns black.
func (n *node[K]) getColor() Color {
	if n == nil {
		return Black
	}
	return n.color
}

// (a,c)b -rotL-> ((a,)b,)c
func (n *node[K]) rotateLeft() (root *node[K]) {
	root = n.right
	n.right = root.left
	root.left = n
	root.color = n.color
	n.color = Red
	return
}

// (a,c)b -rotR-> (,(,c)b)a
func (n *node[K]) rotateRight() (root *node[K]) {
	root = n.left
	n.left = root.right
	root.right = n
	root.color = n.color
	n.color = Red
	return
}

// (aR,cR)bB -flipC-> (aB,cB)bR | (aB,cB)bR -flipC-> (aR,cR)bB
func (n *node[K]) flipColors() {
	n.color = !n.color
	n.left.color = !n.left.color
	n.right.color = !n.right.color
}

// fixUp ensures that black link balance is correct, that red nodes lean left,
// and that 4 nodes are split.
func (n *node[K]) fixUp() *node[K] {
	if n.right.getColor() == Red {
		n = n.rotateLeft()
	}
	if n.left.getColor() == Red && n.left.left.getColor() == Red {
		n = n.rotateRight()
	}
	if n.left.getColor() == Red && n.right.getColor() == Red {
		n.flipColors()
	}
	return n
}

func (n *node[K]) moveRedLeft() *node[K] {
	n.flipColors()
	if n.right.left.getColor() == Red {
		n.right = n.right.rotateRight()
		n = n.rotateLeft()
		n.flipColors()
	}
	return n
}

func (n *node[K]) moveRedRight() *node[K] {
	n.flipColors()
	if n.left.left.getColor() == Red {
		n = n.rotateRight()
		n.flipColors()
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
	return t.root.height()
}

func (n *node[K]) height() int {
	if n == nil {
		return 0
	}
	return 1 + max(n.left.height(), n.right.height())
}

// Search returns whether k is held in the Tree.
func (t *Tree[K]) Search(k K) bool {
	return t.root.search(k, t.cmp) != nil
}

func (n *node[K]) search(k K, cmp func(a, b K) int) *node[K] {
	for n != nil {
		switch c := cmp(k, n.key); {
		case c == 0:
			return n
		case c < 0:
			n = n.left
		default:
			n = n.right
		}
	}
	return nil
}

// Insert inserts k into the Tree, returning whether a new node was created.
// Inserting a key already present leaves the Tree unchanged.
func (t *Tree[K]) Insert(k K) bool {
	var d int
	t.root, d = t.root.insert(k, t.cmp)
	t.count += d
	t.root.color = Black
	return d == 1
}

func (n *node[K]) insert(k K, cmp func(a, b K) int) (root *node[K], d int) {
	if n == nil {
		return &node[K]{key: k}, 1
	}

	switch c := cmp(k, n.key); {
	case c == 0:
		return n, 0
	case c < 0:
		n.left, d = n.left.insert(k, cmp)
	default:
		n.right, d = n.right.insert(k, cmp)
	}

	if n.right.getColor() == Red && n.left.getColor() == Black {
		n = n.rotateLeft()
	}
	if n.left.getColor() == Red && n.left.left.getColor() == Red {
		n = n.rotateRight()
	}
	if n.left.getColor() == Red && n.right.getColor() == Red {
		n.flipColors()
	}

	return n, d
}

// DeleteMin deletes the minimum key in the Tree, returning whether a key was
// removed.
func (t *Tree[K]) DeleteMin() bool {
	if t.root == nil {
		return false
	}
	var d int
	t.root, d = t.root.deleteMin()
	t.count += d
	if t.root != nil {
		t.root.color = Black
	}
	return d == -1
}

func (n *node[K]) deleteMin() (root *node[K], d int) {
	if n.left == nil {
		return nil, -1
	}
	if n.left.getColor() == Black && n.left.left.getColor() == Black {
		n = n.moveRedLeft()
	}
	n.left, d = n.left.deleteMin()

	return n.fixUp(), d
}

// DeleteMax deletes the maximum key in the Tree, returning whether a key was
// removed.
func (t *Tree[K]) DeleteMax() bool {
	if t.root == nil {
		return false
	}
	var d int
	t.root, d = t.root.deleteMax()
	t.count += d
	if t.root != nil {
		t.root.color = Black
	}
	return d == -1
}

func (n *node[K]) deleteMax() (root *node[K], d int) {
	if n.left != nil && n.left.getColor() == Red {
		n = n.rotateRight()
	}
	if n.right == nil {
		return nil, -1
	}
	if n.right.getColor() == Black && n.right.left.getColor() == Black {
		n = n.moveRedRight()
	}
	n.right, d = n.right.deleteMax()

	return n.fixUp(), d
}

// Delete removes k from the Tree, returning whether a node was removed. The
// tree is not restructured when k is absent.
func (t *Tree[K]) Delete(k K) bool {
	if t.root.search(k, t.cmp) == nil {
		return false
	}
	var d int
	t.root, d = t.root.delete(k, t.cmp)
	t.count += d
	if t.root != nil {
		t.root.color = Black
	}
	return d == -1
}

func (n *node[K]) delete(k K, cmp func(a, b K) int) (root *node[K], d int) {
	if cmp(k, n.key) < 0 {
		if n.left != nil {
			if n.left.getColor() == Black && n.left.left.getColor() == Black {
				n = n.moveRedLeft()
			}
			n.left, d = n.left.delete(k, cmp)
		}
	} else {
		if n.left.getColor() == Red {
			n = n.rotateRight()
		}
		if cmp(k, n.key) == 0 && n.right == nil {
			return nil, -1
		}
		if n.right != nil {
			if n.right.getColor() == Black && n.right.left.getColor() == Black {
				n = n.moveRedRight()
			}
			if cmp(k, n.key) == 0 {
				n.key = n.right.min().key
				n.right, d = n.right.deleteMin()
			} else {
				n.right, d = n.right.delete(k, cmp)
			}
		}
	}

	return n.fixUp(), d
}

// Min returns the minimum key stored in the Tree and whether the Tree was
// non-empty.
func (t *Tree[K]) Min() (k K, ok bool) {
	if t.root == nil {
		return k, false
	}
	return t.root.min().key, true
}

func (n *node[K]) min() *node[K] {
	for ; n.left != nil; n = n.left {
	}
	return n
}

// Max returns the maximum key stored in the Tree and whether the Tree was
// non-empty.
func (t *Tree[K]) Max() (k K, ok bool) {
	if t.root == nil {
		return k, false
	}
	return t.root.max().key, true
}

func (n *node[K]) max() *node[K] {
	for ; n.right != nil; n = n.right {
	}
	return n
}

// Floor returns the greatest key equal to or less than the query q and whether
// such a key exists.
func (t *Tree[K]) Floor(q K) (k K, ok bool) {
	n := t.root.floor(q, t.cmp)
	if n == nil {
		return k, false
	}
	return n.key, true
}

func (n *node[K]) floor(q K, cmp func(a, b K) int) *node[K] {
	if n == nil {
		return nil
	}
	switch c := cmp(q, n.key); {
	case c == 0:
		return n
	case c < 0:
		return n.left.floor(q, cmp)
	default:
		if r := n.right.floor(q, cmp); r != nil {
			return r
		}
	}
	return n
}

// Ceil returns the smallest key equal to or greater than the query q and
// whether such a key exists.
func (t *Tree[K]) Ceil(q K) (k K, ok bool) {
	n := t.root.ceil(q, t.cmp)
	if n == nil {
		return k, false
	}
	return n.key, true
}

func (n *node[K]) ceil(q K, cmp func(a, b K) int) *node[K] {
	if n == nil {
		return nil
	}
	switch c := cmp(q, n.key); {
	case c == 0:
		return n
	case c > 0:
		return n.right.ceil(q, cmp)
	default:
		if l := n.left.ceil(q, cmp); l != nil {
			return l
		}
	}
	return n
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

// DoReverse performs fn on all keys stored in the tree in descending order. A boolean
// is returned indicating whether the traversal was interrupted by an Operation returning true.
func (t *Tree[K]) DoReverse(fn Operation[K]) bool {
	if t.root == nil {
		return false
	}
	return t.root.doReverse(fn)
}

func (n *node[K]) doReverse(fn Operation[K]) (done bool) {
	if n.right != nil {
		done = n.right.doReverse(fn)
		if done {
			return
		}
	}
	done = fn(n.key)
	if done {
		return
	}
	if n.left != nil {
		done = n.left.doReverse(fn)
	}
	return
}

// DoRange performs fn on all keys stored in the tree over the interval [from, to) in
// ascending order. If to equals from the call is a no-op, and if to is less than from
// DoRange will panic. A boolean is returned indicating whether the traversal was
// interrupted by an Operation returning true.
func (t *Tree[K]) DoRange(fn Operation[K], from, to K) bool {
	if t.root == nil {
		return false
	}
	switch order := t.cmp(from, to); {
	case order < 0:
		return t.root.doRange(fn, from, to, t.cmp)
	case order > 0:
		panic("llrb: inverted range")
	}
	return false
}

func (n *node[K]) doRange(fn Operation[K], lo, hi K, cmp func(a, b K) int) (done bool) {
	lc, hc := cmp(lo, n.key), cmp(hi, n.key)
	if lc <= 0 && n.left != nil {
		done = n.left.doRange(fn, lo, hi, cmp)
		if done {
			return
		}
	}
	if lc <= 0 && hc > 0 {
		done = fn(n.key)
		if done {
			return
		}
	}
	if hc > 0 && n.right != nil {
		done = n.right.doRange(fn, lo, hi, cmp)
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

// Backward returns an iterator over the keys of the Tree in descending order.
func (t *Tree[K]) Backward() iter.Seq[K] {
	return func(yield func(K) bool) {
		t.DoReverse(func(k K) bool { return !yield(k) })
	}
}
