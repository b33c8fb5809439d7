// Copyright ©2024 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bench

import (
	"errors"
	"fmt"
	"iter"
	"math/rand/v2"
	"strings"

	"github.com/biogo/bst/avl"
	"github.com/biogo/bst/llrb"
	"github.com/biogo/bst/rb"
	"github.com/biogo/bst/treap"
)

// ErrUnknownEngine is returned by Select when a requested engine does not
// exist.
var ErrUnknownEngine = errors.New("bench: unknown engine")

// A Set is an ordered set of int64 keys held in a balanced search tree.
type Set interface {
	Insert(int64) bool
	Search(int64) bool
	Delete(int64) bool
	InOrder() iter.Seq[int64]
	Len() int
	IsEmpty() bool
	Height() int
}

var (
	_ Set = (*avl.Tree[int64])(nil)
	_ Set = (*rb.Tree[int64])(nil)
	_ Set = (*treap.Tree[int64])(nil)
	_ Set = (*llrb.Tree[int64])(nil)
)

// An Engine names a Set implementation and constructs empty instances of it.
// The seed is used by randomized engines and ignored by the others.
type Engine struct {
	Name string
	New  func(seed uint64) Set
}

// Engines returns all available engines in reporting order.
func Engines() []Engine {
	return []Engine{
		{Name: "AVL", New: func(uint64) Set { return avl.New[int64]() }},
		{Name: "RB", New: func(uint64) Set { return rb.New[int64]() }},
		{Name: "Treap", New: func(seed uint64) Set { return treap.New[int64](rand.NewPCG(seed, seed^treapSeed)) }},
		{Name: "LLRB", New: func(uint64) Set { return llrb.New[int64]() }},
	}
}

// Select returns the engines named in names, in the order given. Names are
// matched case-insensitively. An empty names returns all engines.
func Select(names []string) ([]Engine, error) {
	all := Engines()
	if len(names) == 0 {
		return all, nil
	}
	sel := make([]Engine, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		var found bool
		for _, e := range all {
			if strings.EqualFold(e.Name, name) {
				sel = append(sel, e)
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("%w: %q", ErrUnknownEngine, name)
		}
	}
	return sel, nil
}
