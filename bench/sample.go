// Copyright ©2024 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bench

import (
	"encoding/binary"
	"math/rand/v2"
	"slices"

	"github.com/willf/bloom"
)

// falsePositiveRate is the target false positive rate of the membership
// filter used by Sample. A false positive only costs a rejected candidate.
const falsePositiveRate = 0.01

// Sample returns count keys, half drawn from data and the remainder chosen to
// be absent from data, in shuffled order. Present keys are drawn with
// replacement. Absent keys are drawn uniformly from [0, max(data, DefaultMaxKey)]
// and kept only when a bloom filter over data reports them as not present,
// so they are certain to be absent. An empty data set gives only absent keys.
func Sample(data []int64, count int, seed uint64) []int64 {
	if count <= 0 {
		return nil
	}
	rnd := rand.New(rand.NewPCG(seed, ^seed))

	keys := make([]int64, 0, count)
	if len(data) != 0 {
		for range count / 2 {
			keys = append(keys, data[rnd.IntN(len(data))])
		}
	}

	hi := DefaultMaxKey
	if len(data) != 0 {
		hi = max(hi, slices.Max(data))
	}
	filter := bloom.NewWithEstimates(uint(max(len(data), 1)), falsePositiveRate)
	var buf [8]byte
	for _, k := range data {
		binary.BigEndian.PutUint64(buf[:], uint64(k))
		filter.Add(buf[:])
	}
	var rejected int
	for len(keys) < count {
		k := upTo(rnd, hi)
		binary.BigEndian.PutUint64(buf[:], uint64(k))
		if filter.Test(buf[:]) {
			rejected++
			continue
		}
		keys = append(keys, k)
	}
	log.Debugf("Sampled %d keys from %d, rejected %d absent candidates", count, len(data), rejected)

	rnd.Shuffle(len(keys), func(i, j int) { keys[i], keys[j] = keys[j], keys[i] })
	return keys
}
