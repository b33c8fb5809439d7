// Copyright ©2024 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package rb implements a Red-Black tree as described in
//
//	T. H. Cormen, C. E. Leiserson, R. L. Rivest and C. Stein,
//	Introduction to Algorithms, chapter 13.
//	https://en.wikipedia.org/wiki/Red–black_tree
//
// Every absent child and the parent of the root are represented by a single
// black sentinel node owned by the tree.
package rb

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
	// Red as false gives new nodes the red color they require on insertion.
	Red   Color = false
	Black Color = true
)

// A node is a single key in the Red-Black tree. The parent field is a back
// reference used during rebalancing.
type node[K any] struct {
	key                 K
	left, right, parent *node[K]
	color               Color
}

// A Tree is a Red-Black tree holding a set of keys.
type Tree[K any] struct {
	root  *node[K]
	leaf  *node[K] // Black sentinel.
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
		panic("rb: nil comparison function")
	}
	leaf := &node[K]{color: Black}
	return &Tree[K]{root: leaf, leaf: leaf, cmp: cmp}
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
		if n == t.leaf {
			return 0
		}
		return 1 + max(height(n.left), height(n.right))
	}
	return height(t.root)
}

// Search returns whether k is held in the Tree.
func (t *Tree[K]) Search(k K) bool {
	return t.search(k) != t.leaf
}

func (t *Tree[K]) search(k K) *node[K] {
	n := t.root
	for n != t.leaf {
		switch c := t.cmp(k, n.key); {
		case c == 0:
			return n
		case c < 0:
			n = n.left
		default:
			n = n.right
		}
	}
	return t.leaf
}

// Insert inserts k into the Tree, returning whether a new node was created.
// Inserting a key already present leaves the Tree unchanged.
func (t *Tree[K]) Insert(k K) bool {
	p := t.leaf
	var c int
	for n := t.root; n != t.leaf; {
		p = n
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

	z := &node[K]{key: k, left: t.leaf, right: t.leaf, parent: p, color: Red}
	switch {
	case p == t.leaf:
		t.root = z
	case c < 0:
		p.left = z
	default:
		p.right = z
	}
	t.count++
	t.insertFixup(z)

	return true
}

// insertFixup restores the red-black properties after z has been linked in
// as a red leaf.
func (t *Tree[K]) insertFixup(z *node[K]) {
	for z.parent.color == Red {
		g := z.parent.parent
		if z.parent == g.left {
			u := g.right
			if u.color == Red {
				z.parent.color = Black
				u.color = Black
				g.color = Red
				z = g
				continue
			}
			if z == z.parent.right {
				z = z.parent
				t.rotateLeft(z)
			}
			z.parent.color = Black
			g.color = Red
			t.rotateRight(g)
		} else {
			u := g.left
			if u.color == Red {
				z.parent.color = Black
				u.color = Black
				g.color = Red
				z = g
				continue
			}
			if z == z.parent.left {
				z = z.parent
				t.rotateRight(z)
			}
			z.parent.color = Black
			g.color = Red
			t.rotateLeft(g)
		}
	}
	t.root.color = Black
}

// Delete removes k from the Tree, returning whether a node was removed.
func (t *Tree[K]) Delete(k K) bool {
	z := t.search(k)
	if z == t.leaf {
		return false
	}

	var x *node[K]
	y := z
	removed := y.color
	switch {
	case z.left == t.leaf:
		x = z.right
		t.transplant(z, z.right)
	case z.right == t.leaf:
		x = z.left
		t.transplant(z, z.left)
	default:
		y = z.right.min(t.leaf)
		removed = y.color
		x = y.right
		if y.parent == z {
			x.parent = y // x may be the sentinel.
		} else {
			t.transplant(y, y.right)
			y.right = z.right
			y.right.parent = y
		}
		t.transplant(z, y)
		y.left = z.left
		y.left.parent = y
		y.color = z.color
	}
	z.left, z.right, z.parent = nil, nil, nil
	t.count--

	if removed == Black {
		t.deleteFixup(x)
	}
	t.leaf.parent = nil

	return true
}

// transplant replaces the subtree rooted at u with the subtree rooted at v.
func (t *Tree[K]) transplant(u, v *node[K]) {
	switch {
	case u.parent == t.leaf:
		t.root = v
	case u == u.parent.left:
		u.parent.left = v
	default:
		u.parent.right = v
	}
	v.parent = u.parent
}

// deleteFixup resolves the black deficiency carried by x after a black node
// has been removed from the path through x.
func (t *Tree[K]) deleteFixup(x *node[K]) {
	for x != t.root && x.color == Black {
		if x == x.parent.left {
			w := x.parent.right
			if w.color == Red {
				w.color = Black
				x.parent.color = Red
				t.rotateLeft(x.parent)
				w = x.parent.right
			}
			if w.left.color == Black && w.right.color == Black {
				w.color = Red
				x = x.parent
				continue
			}
			if w.right.color == Black {
				w.left.color = Black
				w.color = Red
				t.rotateRight(w)
				w = x.parent.right
			}
			w.color = x.parent.color
			x.parent.color = Black
			w.right.color = Black
			t.rotateLeft(x.parent)
			x = t.root
		} else {
			w := x.parent.left
			if w.color == Red {
				w.color = Black
				x.parent.color = Red
				t.rotateRight(x.parent)
				w = x.parent.left
			}
			if w.right.color == Black && w.left.color == Black {
				w.color = Red
				x = x.parent
				continue
			}
			if w.left.color == Black {
				w.right.color = Black
				w.color = Red
				t.rotateLeft(w)
				w = x.parent.left
			}
			w.color = x.parent.color
			x.parent.color = Black
			w.left.color = Black
			t.rotateRight(x.parent)
			x = t.root
		}
	}
	x.color = Black
}

// (a,(b,c)y)x -rotL-> ((a,b)x,c)y
func (t *Tree[K]) rotateLeft(x *node[K]) {
	y := x.right
	x.right = y.left
	if y.left != t.leaf {
		y.left.parent = x
	}
	y.parent = x.parent
	switch {
	case x.parent == t.leaf:
		t.root = y
	case x == x.parent.left:
		x.parent.left = y
	default:
		x.parent.right = y
	}
	y.left = x
	x.parent = y
}

// ((a,b)x,c)y -rotR-> (a,(b,c)y)x
func (t *Tree[K]) rotateRight(y *node[K]) {
	x := y.left
	y.left = x.right
	if x.right != t.leaf {
		x.right.parent = y
	}
	x.parent = y.parent
	switch {
	case y.parent == t.leaf:
		t.root = x
	case y == y.parent.right:
		y.parent.right = x
	default:
		y.parent.left = x
	}
	x.right = y
	y.parent = x
}

func (n *node[K]) min(leaf *node[K]) *node[K] {
	for n.left != leaf {
		n = n.left
	}
	return n
}

func (n *node[K]) max(leaf *node[K]) *node[K] {
	for n.right != leaf {
		n = n.right
	}
	return n
}

// Min returns the minimum key stored in the Tree and whether the Tree was
// non-empty.
func (t *Tree[K]) Min() (k K, ok bool) {
	if t.root == t.leaf {
		return k, false
	}
	return t.root.min(t.leaf).key, true
}

// Max returns the maximum key stored in the Tree and whether the Tree was
// non-empty.
func (t *Tree[K]) Max() (k K, ok bool) {
	if t.root == t.leaf {
		return k, false
	}
	return t.root.max(t.leaf).key, true
}

// next returns the in-order successor of n, or the sentinel.
func (t *Tree[K]) next(n *node[K]) *node[K] {
	if n.right != t.leaf {
		return n.right.min(t.leaf)
	}
	p := n.parent
	for p != t.leaf && n == p.right {
		n = p
		p = p.parent
	}
	return p
}

// An Operation is a function that operates on a key. If done is returned true, the
// Operation is indicating that no further work needs to be done and so the Do function should
// traverse no further.
type Operation[K any] func(K) (done bool)

// Do performs fn on all keys stored in the tree in ascending order. A boolean is
// returned indicating whether the traversal was interrupted by an Operation returning true.
func (t *Tree[K]) Do(fn Operation[K]) bool {
	if t.root == t.leaf {
		return false
	}
	for n := t.root.min(t.leaf); n != t.leaf; n = t.next(n) {
		if fn(n.key) {
			return true
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
