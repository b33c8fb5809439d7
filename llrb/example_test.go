// Copyright ©2024 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package llrb_test

import (
	"fmt"

	"github.com/biogo/bst/llrb"
)

func Example() {
	values := []int{0, 1, 2, 3, 4, 2, 3, 5, 5, 65, 32, 3, 23}

	t := llrb.New[int]()
	var dups int
	for _, v := range values {
		if !t.Insert(v) {
			dups++
		}
	}
	fmt.Println("keys:", t.Len(), "duplicates:", dups)

	var results []int
	t.DoRange(func(k int) (done bool) {
		results = append(results, k)
		return
	}, 3, 30)
	fmt.Println("in [3, 30):", results)

	f, _ := t.Floor(31)
	c, _ := t.Ceil(31)
	fmt.Println("floor:", f, "ceil:", c)

	// Output:
	// keys: 9 duplicates: 4
	// in [3, 30): [3 4 5 23]
	// floor: 23 ceil: 32
}
