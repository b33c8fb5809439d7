// Copyright ©2024 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bench

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"math/rand/v2"
	"os"
	"strconv"
	"strings"
)

// DefaultMaxKey is the largest key drawn by Generate when no bound is given.
const DefaultMaxKey int64 = 1e9

// ErrBadRecord is returned when a dataset line is not a base-10 integer.
var ErrBadRecord = errors.New("bench: bad dataset record")

// Generate returns n keys drawn uniformly from [0, max] using a PCG source
// seeded with seed. A max less than one is replaced by DefaultMaxKey. Equal
// arguments give equal datasets.
func Generate(n int, seed uint64, max int64) []int64 {
	if max < 1 {
		max = DefaultMaxKey
	}
	rnd := rand.New(rand.NewPCG(seed, seed))
	keys := make([]int64, n)
	for i := range keys {
		keys[i] = upTo(rnd, max)
	}
	return keys
}

// upTo returns a uniform value in [0, max]. max must not be negative.
func upTo(rnd *rand.Rand, max int64) int64 {
	if max == math.MaxInt64 {
		return int64(rnd.Uint64() >> 1)
	}
	return rnd.Int64N(max + 1)
}

// Export writes keys to w, one base-10 integer per line.
func Export(w io.Writer, keys []int64) error {
	bw := bufio.NewWriter(w)
	var buf []byte
	for _, k := range keys {
		buf = strconv.AppendInt(buf[:0], k, 10)
		buf = append(buf, '\n')
		if _, err := bw.Write(buf); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Import reads keys written by Export. Blank lines are skipped. A line that
// does not hold a single integer results in an error wrapping ErrBadRecord.
func Import(r io.Reader) ([]int64, error) {
	var keys []int64
	sc := bufio.NewScanner(r)
	for line := 1; sc.Scan(); line++ {
		f := strings.TrimSpace(sc.Text())
		if f == "" {
			continue
		}
		k, err := strconv.ParseInt(f, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %q", ErrBadRecord, line, f)
		}
		keys = append(keys, k)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return keys, nil
}

// WriteFile exports keys to the named file, creating or truncating it.
func WriteFile(path string, keys []int64) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	err = Export(f, keys)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("bench: writing %s: %w", path, err)
	}
	log.Infof("Wrote %d keys to %s", len(keys), path)
	return nil
}

// ReadFile imports keys from the named file.
func ReadFile(path string) ([]int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	keys, err := Import(f)
	if err != nil {
		return nil, fmt.Errorf("bench: reading %s: %w", path, err)
	}
	log.Infof("Read %d keys from %s", len(keys), path)
	return keys, nil
}
