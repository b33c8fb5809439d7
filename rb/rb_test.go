// Copyright ©2024 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rb

import (
	"flag"
	"fmt"
	"math"
	"math/rand/v2"
	"slices"
	"strings"
	"testing"

	check "gopkg.in/check.v1"
)

var printTree = flag.Bool("trees", false, "Print failing tree in Newick format.")

// Integrity checks

// Is this tree a BST?
func (t *Tree[K]) isBST() bool {
	var isBST func(n *node[K], min, max *K) bool
	isBST = func(n *node[K], min, max *K) bool {
		if n == t.leaf {
			return true
		}
		if min != nil && t.cmp(n.key, *min) <= 0 {
			return false
		}
		if max != nil && t.cmp(n.key, *max) >= 0 {
			return false
		}
		return isBST(n.left, min, &n.key) && isBST(n.right, &n.key, max)
	}
	return isBST(t.root, nil, nil)
}

// Is the root black and does no red node have a red child?
func (t *Tree[K]) isRedSeparated() bool {
	if t.root.color != Black || t.leaf.color != Black {
		return false
	}
	var follow func(*node[K]) bool
	follow = func(n *node[K]) bool {
		if n == t.leaf {
			return true
		}
		if n.color == Red && (n.left.color == Red || n.right.color == Red) {
			return false
		}
		return follow(n.left) && follow(n.right)
	}
	return follow(t.root)
}

// Do all paths from root to the sentinel pass the same number of black nodes?
func (t *Tree[K]) isBalanced() bool {
	var black int // number of black nodes on path from root to min
	for n := t.root; n != t.leaf; n = n.left {
		if n.color == Black {
			black++
		}
	}
	var follow func(*node[K], int) bool
	follow = func(n *node[K], black int) bool {
		if n == t.leaf {
			return black == 0
		}
		if n.color == Black {
			black--
		}
		return follow(n.left, black) && follow(n.right, black)
	}
	return follow(t.root, black)
}

// Are parent back references consistent with child links and does the node
// count agree with Len?
func (t *Tree[K]) isLinked() bool {
	if t.root != t.leaf && t.root.parent != t.leaf {
		return false
	}
	count := 0
	var follow func(*node[K]) bool
	follow = func(n *node[K]) bool {
		if n == t.leaf {
			return true
		}
		count++
		if n.left != t.leaf && n.left.parent != n {
			return false
		}
		if n.right != t.leaf && n.right.parent != n {
			return false
		}
		return follow(n.left) && follow(n.right)
	}
	return follow(t.root) && count == t.count
}

// Return a Newick format description of a tree.
func describeTree[K any](t *Tree[K], color bool) string {
	var s strings.Builder
	var follow func(*node[K])
	follow = func(n *node[K]) {
		children := n.left != t.leaf || n.right != t.leaf
		if children {
			s.WriteByte('(')
		}
		if n.left != t.leaf {
			follow(n.left)
		}
		if children {
			s.WriteByte(',')
		}
		if n.right != t.leaf {
			follow(n.right)
		}
		if children {
			s.WriteByte(')')
		}
		fmt.Fprintf(&s, "%v", n.key)
		if color {
			fmt.Fprintf(&s, " %v", n.color)
		}
	}
	if t.root == t.leaf {
		s.WriteString("()")
	} else {
		follow(t.root)
	}
	s.WriteByte(';')
	return s.String()
}

// Tests
func Test(t *testing.T) { check.TestingT(t) }

type S struct{}

var _ = check.Suite(&S{})

func checkTree[K any](c *check.C, t *Tree[K], f string, args ...interface{}) (ok bool) {
	comm := check.Commentf(f, args...)
	ok = true
	ok = ok && c.Check(t.isBST(), check.Equals, true, comm)
	ok = ok && c.Check(t.isRedSeparated(), check.Equals, true, comm)
	ok = ok && c.Check(t.isBalanced(), check.Equals, true, comm)
	ok = ok && c.Check(t.isLinked(), check.Equals, true, comm)
	if !ok && *printTree {
		c.Logf("Failing tree: %s\n\n", describeTree(t, true))
	}
	return ok
}

func (s *S) TestColorString(c *check.C) {
	c.Check(Red.String(), check.Equals, "Red")
	c.Check(Black.String(), check.Equals, "Black")
}

func (s *S) TestNilOperations(c *check.C) {
	t := New[int]()
	c.Check(t.Len(), check.Equals, 0)
	c.Check(t.IsEmpty(), check.Equals, true)
	c.Check(t.Height(), check.Equals, 0)
	c.Check(t.Search(1), check.Equals, false)
	c.Check(t.Delete(1), check.Equals, false)
	_, ok := t.Min()
	c.Check(ok, check.Equals, false)
	_, ok = t.Max()
	c.Check(ok, check.Equals, false)
	c.Check(t.Do(func(int) bool { return true }), check.Equals, false)
	c.Check(slices.Collect(t.InOrder()), check.HasLen, 0)
	c.Check(describeTree(t, false), check.Equals, "();")
}

func (s *S) TestNilComparison(c *check.C) {
	c.Check(func() { NewFunc[int](nil) }, check.PanicMatches, "rb: nil comparison function")
}

func (s *S) TestInsertionCases(c *check.C) {
	for _, test := range []struct {
		insert []int
		want   string
	}{
		// Uncle black, outer child: single rotation.
		{insert: []int{3, 2, 1}, want: "(1 Red,3 Red)2 Black;"},
		{insert: []int{1, 2, 3}, want: "(1 Red,3 Red)2 Black;"},
		// Uncle black, inner child: double rotation.
		{insert: []int{3, 1, 2}, want: "(1 Red,3 Red)2 Black;"},
		{insert: []int{1, 3, 2}, want: "(1 Red,3 Red)2 Black;"},
		// Uncle red: recolor only.
		{insert: []int{2, 1, 3, 4}, want: "(1 Black,(,4 Red)3 Black)2 Black;"},
	} {
		t := New[int]()
		for _, k := range test.insert {
			t.Insert(k)
		}
		c.Check(describeTree(t, true), check.Equals, test.want, check.Commentf("%v", test.insert))
		checkTree(c, t, "%v", test.insert)
	}
}

func (s *S) TestScenario(c *check.C) {
	t := New[int]()
	for _, k := range []int{50, 30, 70, 20, 40, 60, 80} {
		c.Check(t.Insert(k), check.Equals, true)
	}
	c.Check(slices.Collect(t.InOrder()), check.DeepEquals, []int{20, 30, 40, 50, 60, 70, 80})
	c.Check(t.Search(40), check.Equals, true)
	c.Check(t.Search(99), check.Equals, false)
	c.Check(t.Delete(30), check.Equals, true)
	c.Check(t.Search(30), check.Equals, false)
	c.Check(t.Len(), check.Equals, 6)
	c.Check(t.Delete(30), check.Equals, false)
	c.Check(t.Len(), check.Equals, 6)
	checkTree(c, t, "after scenario")
}

func (s *S) TestDuplicateInsertion(c *check.C) {
	t := New[int]()
	for _, k := range []int{5, 3, 8, 1, 4} {
		t.Insert(k)
	}
	before := describeTree(t, true)
	c.Check(t.Insert(4), check.Equals, false)
	c.Check(t.Len(), check.Equals, 5)
	c.Check(describeTree(t, true), check.Equals, before)
	c.Check(t.Delete(7), check.Equals, false)
	c.Check(describeTree(t, true), check.Equals, before)
}

func (s *S) TestInsertion(c *check.C) {
	min, max := 0, 10000
	t := New[int]()
	for i := min; i <= max; i++ {
		c.Check(t.Insert(i), check.Equals, true)
		c.Check(t.Len(), check.Equals, i+1)
		if !checkTree(c, t, "after insertion of %d", i) {
			c.Fatal("Cannot continue test: invariant contradiction")
		}
	}
	n := float64(t.Len())
	c.Check(float64(t.Height()) <= 2*math.Log2(n+1), check.Equals, true,
		check.Commentf("height %d for %d ascending keys", t.Height(), t.Len()))
	k, _ := t.Min()
	c.Check(k, check.Equals, min)
	k, _ = t.Max()
	c.Check(k, check.Equals, max)
}

func (s *S) TestDeletion(c *check.C) {
	min, max := 0, 10000
	e := max - min + 1
	t := New[int]()
	for i := min; i <= max; i++ {
		t.Insert(i)
	}
	for i := min; i <= max; i++ {
		c.Check(t.Delete(i), check.Equals, true)
		e--
		c.Check(t.Len(), check.Equals, e)
		if !checkTree(c, t, "after deletion of %d", i) {
			c.Fatal("Cannot continue test: invariant contradiction")
		}
	}
	c.Check(t.IsEmpty(), check.Equals, true)
	c.Check(t.root == t.leaf, check.Equals, true)
}

func (s *S) TestDeleteReverse(c *check.C) {
	// Removing from the right exercises the mirrored fixup cases.
	t := New[int]()
	for i := 0; i < 2000; i++ {
		t.Insert(i)
	}
	for i := 1999; i >= 0; i-- {
		c.Check(t.Delete(i), check.Equals, true)
		if !checkTree(c, t, "after deletion of %d", i) {
			c.Fatal("Cannot continue test: invariant contradiction")
		}
	}
}

func (s *S) TestDeleteInterior(c *check.C) {
	t := New[int]()
	for i := 1; i < 1<<7; i++ {
		t.Insert(i)
	}
	for !t.IsEmpty() {
		r := t.root.key
		c.Check(t.Delete(r), check.Equals, true)
		c.Check(t.Search(r), check.Equals, false)
		if !checkTree(c, t, "after deletion of root %d", r) {
			c.Fatal("Cannot continue test: invariant contradiction")
		}
	}
}

func (s *S) TestRandomInsertionDeletion(c *check.C) {
	var (
		count, max = 100000, 1000
		rnd        = rand.New(rand.NewPCG(5, 6))
		t          = New[int]()
		verify     = map[int]struct{}{}
	)
	for i := 0; i < count; i++ {
		k := rnd.IntN(max)
		_, present := verify[k]
		if rnd.Float64() < 0.5 {
			c.Check(t.Insert(k), check.Equals, !present)
			verify[k] = struct{}{}
		} else {
			c.Check(t.Delete(k), check.Equals, present)
			delete(verify, k)
		}
		c.Check(t.Len(), check.Equals, len(verify))
		if i%97 == 0 && !checkTree(c, t, "after operation %d", i) {
			c.Fatal("Cannot continue test: invariant contradiction")
		}
	}
	checkTree(c, t, "after random operations")
	for k := 0; k < max; k++ {
		_, present := verify[k]
		c.Check(t.Search(k), check.Equals, present)
	}
	keys := slices.Collect(t.InOrder())
	c.Check(keys, check.HasLen, len(verify))
	c.Check(slices.IsSorted(keys), check.Equals, true)
}

func (s *S) TestRoundTrip(c *check.C) {
	rnd := rand.New(rand.NewPCG(7, 8))
	keys := rnd.Perm(5000)
	t := New[int]()
	for _, k := range keys {
		t.Insert(k)
	}
	got := slices.Collect(t.InOrder())
	c.Check(got, check.HasLen, len(keys))
	for i, k := range got {
		if k != i {
			c.Fatalf("unexpected key at %d: got:%d", i, k)
		}
	}
	c.Check(slices.Collect(t.InOrder()), check.DeepEquals, got)
	rnd.Shuffle(len(keys), func(i, j int) { keys[i], keys[j] = keys[j], keys[i] })
	for _, k := range keys {
		c.Check(t.Delete(k), check.Equals, true)
	}
	c.Check(t.Len(), check.Equals, 0)
	checkTree(c, t, "after deleting all keys")
}

func (s *S) TestSearchIdempotent(c *check.C) {
	t := New[int]()
	for i := 0; i < 100; i += 2 {
		t.Insert(i)
	}
	for i := 0; i < 100; i++ {
		first := t.Search(i)
		for j := 0; j < 3; j++ {
			c.Check(t.Search(i), check.Equals, first)
		}
		c.Check(first, check.Equals, i&1 == 0)
	}
}

func (s *S) TestDoInterrupted(c *check.C) {
	t := New[int]()
	for i := 0; i < 100; i++ {
		t.Insert(i)
	}
	var got []int
	c.Check(t.Do(func(k int) bool {
		got = append(got, k)
		return k == 9
	}), check.Equals, true)
	c.Check(got, check.DeepEquals, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9})
}

func (s *S) TestComparatorInjection(c *check.C) {
	type point struct{ x, y int }
	t := NewFunc(func(a, b point) int {
		if a.x != b.x {
			return a.x - b.x
		}
		return a.y - b.y
	})
	for _, p := range []point{{2, 1}, {1, 2}, {1, 1}, {2, 0}} {
		t.Insert(p)
	}
	c.Check(slices.Collect(t.InOrder()), check.DeepEquals, []point{{1, 1}, {1, 2}, {2, 0}, {2, 1}})
	c.Check(t.Search(point{1, 2}), check.Equals, true)
	c.Check(t.Search(point{2, 2}), check.Equals, false)
}

// Benchmarks

func BenchmarkInsert(b *testing.B) {
	t := New[int]()
	for i := 0; i < b.N; i++ {
		t.Insert(b.N - i)
	}
}

func BenchmarkSearch(b *testing.B) {
	b.StopTimer()
	t := New[int]()
	for i := 0; i < b.N; i++ {
		t.Insert(b.N - i)
	}
	b.StartTimer()
	for i := 0; i < b.N; i++ {
		t.Search(i)
	}
}

func BenchmarkDelete(b *testing.B) {
	b.StopTimer()
	t := New[int]()
	for i := 0; i < b.N; i++ {
		t.Insert(b.N - i)
	}
	b.StartTimer()
	for i := 0; i < b.N; i++ {
		t.Delete(i)
	}
}
