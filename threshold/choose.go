/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package threshold

// chooseKoutOfN invokes f with every k-sized subset of the indices {0, ..., n-1},
// in lexicographic order. Each invocation gets its own slice.
func chooseKoutOfN(n, k int, f func([]int)) {
	choose(n, k, 0, nil, f)
}

func choose(n int, targetAmount int, i int, currentSubGroup []int, f func([]int)) {
	// Check if we have enough elements in our current subgroup
	if len(currentSubGroup) == targetAmount {
		f(currentSubGroup)
		return
	}
	// Return early if not enough remaining candidates to pick from
	itemsLeftToPick := n - i
	if targetAmount-len(currentSubGroup) > itemsLeftToPick {
		return
	}
	// We either pick the current element
	choose(n, targetAmount, i+1, concatInts(currentSubGroup, i), f)
	// Or don't pick it
	choose(n, targetAmount, i+1, currentSubGroup, f)
}

func concatInts(a []int, elements ...int) []int {
	res := make([]int, 0, len(a)+len(elements))
	res = append(res, a...)
	return append(res, elements...)
}
