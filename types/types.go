/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package types

import (
	"fmt"
	"math/big"
	"sort"
)

// Logger logs messages in a synchronized fashion to the same destination (usually to a file)
type Logger interface {
	DebugEnabled() bool
	Debugf(format string, a ...interface{})
	Infof(format string, a ...interface{})
	Warnf(format string, a ...interface{})
	Errorf(format string, a ...interface{})
}

// Share is a single encoded share as it was handed to us.
// The ID is the x-coordinate of the share on the polynomial.
type Share struct {
	ID    *big.Int
	Base  int
	Value string
}

func (s Share) String() string {
	return fmt.Sprintf("share %s (base %d)", s.ID, s.Base)
}

// Point is a decoded share.
type Point struct {
	X *big.Int
	Y *big.Int
}

func (p Point) String() string {
	return fmt.Sprintf("(%s, %s)", p.X, p.Y)
}

type Points []Point

// Sorted returns a copy of the points ordered by ascending x-coordinate.
func (ps Points) Sorted() Points {
	res := make(Points, len(ps))
	copy(res, ps)
	sort.SliceStable(res, func(i, j int) bool {
		return res[i].X.Cmp(res[j].X) < 0
	})
	return res
}

// Without returns a copy of the points with the i-th point removed.
func (ps Points) Without(i int) Points {
	res := make(Points, 0, len(ps)-1)
	res = append(res, ps[:i]...)
	return append(res, ps[i+1:]...)
}

// First returns the first k points, or all of them if there are fewer than k.
func (ps Points) First(k int) Points {
	if k > len(ps) {
		k = len(ps)
	}
	return ps[:k:k]
}

func (ps Points) IDs() []*big.Int {
	res := make([]*big.Int, 0, len(ps))
	for _, p := range ps {
		res = append(res, p.X)
	}
	return res
}

// Params are the threshold parameters of a sharing: K out of N shares reconstruct the secret.
// An N of zero means the total was not declared.
type Params struct {
	N int
	K int
}

func (p Params) Validate() error {
	if p.K < 1 {
		return fmt.Errorf("threshold must be at least 1, got %d", p.K)
	}
	if p.N != 0 && p.K > p.N {
		return fmt.Errorf("threshold %d exceeds total share count %d", p.K, p.N)
	}
	return nil
}
