// Copyright ©2024 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package bench measures insertion, search and deletion times of the balanced
// search tree engines over seeded random datasets.
//
// For each dataset size every engine builds a fresh tree for each operation
// class: insertion is timed over the whole dataset, while searches and
// deletions are timed against a fully populated tree. Search and deletion key
// sets hold equal numbers of present and absent keys.
package bench

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrVerify is returned when a tree fails a post-phase check.
	ErrVerify = errors.New("bench: verification failed")

	// ErrShortDataset is returned when a supplied dataset is smaller than a
	// requested size.
	ErrShortDataset = errors.New("bench: dataset shorter than requested size")
)

// Seed offsets separating the query and deletion samples and the treap
// priorities from the dataset stream.
const (
	querySeed  = 999
	deleteSeed = 1234
	treapSeed  = 0x9e3779b97f4a7c15
)

// An Op is a timed operation class.
type Op int

const (
	Insert Op = iota
	Search
	Delete
)

// Ops lists the operation classes in reporting order.
var Ops = []Op{Insert, Search, Delete}

func (o Op) String() string {
	switch o {
	case Insert:
		return "insert"
	case Search:
		return "search"
	case Delete:
		return "delete"
	}
	return fmt.Sprintf("Op(%d)", int(o))
}

// A Step describes one completed timing.
type Step struct {
	Size    int
	Engine  string
	Op      Op
	Elapsed time.Duration
}

// A Result holds the timings for one engine at one dataset size.
type Result struct {
	Engine string
	Size   int

	Insert, Search, Delete time.Duration

	// Len and Height describe the tree after insertion of the dataset.
	Len, Height int

	Queries, Found     int
	Deletions, Removed int
}

// Time returns the duration recorded for op.
func (r Result) Time(op Op) time.Duration {
	switch op {
	case Insert:
		return r.Insert
	case Search:
		return r.Search
	case Delete:
		return r.Delete
	}
	return 0
}

// Run benchmarks the configured engines for each configured size. If data is
// non-nil, the dataset for a size is its prefix of that length, otherwise
// it is generated from the configured seed. The progress function, if not
// nil, is called after each timing.
func Run(cfg Config, data []int64, progress func(Step)) ([]Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	engines, err := Select(cfg.Engines)
	if err != nil {
		return nil, err
	}
	report := func(s Step) {
		log.Debugf("%s %s n=%d: %v", s.Engine, s.Op, s.Size, s.Elapsed)
		if progress != nil {
			progress(s)
		}
	}

	var results []Result
	for _, n := range cfg.Sizes {
		var keys []int64
		if data != nil {
			if n > len(data) {
				return results, fmt.Errorf("%w: %d < %d", ErrShortDataset, len(data), n)
			}
			keys = data[:n]
		} else {
			keys = Generate(n, cfg.Seed, cfg.MaxKey)
		}
		queries := Sample(keys, min(cfg.Queries, n), cfg.Seed+querySeed)
		deletions := Sample(keys, min(cfg.Deletions, n), cfg.Seed+deleteSeed)
		log.Infof("Data size %d: %d queries, %d deletions", n, len(queries), len(deletions))

		for _, e := range engines {
			r, err := measure(e, cfg, keys, queries, deletions, report)
			if err != nil {
				return results, err
			}
			results = append(results, r)
		}
	}
	return results, nil
}

// measure times the three operation classes for a single engine.
func measure(e Engine, cfg Config, keys, queries, deletions []int64, report func(Step)) (Result, error) {
	r := Result{Engine: e.Name, Size: len(keys), Queries: len(queries), Deletions: len(deletions)}

	t := e.New(cfg.Seed)
	start := time.Now()
	for _, k := range keys {
		t.Insert(k)
	}
	r.Insert = time.Since(start)
	r.Len, r.Height = t.Len(), t.Height()
	if cfg.Verify {
		if err := verifyOrder(t); err != nil {
			return r, fmt.Errorf("%w: %s after insertion: %v", ErrVerify, e.Name, err)
		}
	}
	report(Step{Size: r.Size, Engine: e.Name, Op: Insert, Elapsed: r.Insert})

	t = populate(e, cfg.Seed, keys)
	start = time.Now()
	for _, q := range queries {
		if t.Search(q) {
			r.Found++
		}
	}
	r.Search = time.Since(start)
	report(Step{Size: r.Size, Engine: e.Name, Op: Search, Elapsed: r.Search})

	t = populate(e, cfg.Seed, keys)
	start = time.Now()
	for _, d := range deletions {
		if t.Delete(d) {
			r.Removed++
		}
	}
	r.Delete = time.Since(start)
	if cfg.Verify {
		if got, want := t.Len(), r.Len-r.Removed; got != want {
			return r, fmt.Errorf("%w: %s after deletion: size %d, want %d", ErrVerify, e.Name, got, want)
		}
		if err := verifyOrder(t); err != nil {
			return r, fmt.Errorf("%w: %s after deletion: %v", ErrVerify, e.Name, err)
		}
	}
	report(Step{Size: r.Size, Engine: e.Name, Op: Delete, Elapsed: r.Delete})

	return r, nil
}

func populate(e Engine, seed uint64, keys []int64) Set {
	t := e.New(seed)
	for _, k := range keys {
		t.Insert(k)
	}
	return t
}

// verifyOrder checks that t yields strictly ascending keys and as many of
// them as it reports holding.
func verifyOrder(t Set) error {
	var (
		n    int
		prev int64
	)
	for k := range t.InOrder() {
		if n > 0 && k <= prev {
			return fmt.Errorf("key %d follows %d", k, prev)
		}
		prev = k
		n++
	}
	if n != t.Len() {
		return fmt.Errorf("iterated %d keys, size is %d", n, t.Len())
	}
	if t.IsEmpty() != (n == 0) {
		return fmt.Errorf("emptiness disagrees with %d keys", n)
	}
	return nil
}
