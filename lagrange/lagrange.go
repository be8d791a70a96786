/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package lagrange

import (
	"fmt"
	"math/big"

	. "github.com/IBM/sharerecon/types"
)

type SSS struct {
	Threshold int
}

// Reconstruct recovers the secret from the Threshold points with the smallest x-coordinates.
// It fails if fewer than Threshold points are given.
func (sss *SSS) Reconstruct(points Points) (*big.Int, error) {
	if sss.Threshold < 1 {
		return nil, fmt.Errorf("threshold must be at least 1, got %d", sss.Threshold)
	}

	if len(points) < sss.Threshold {
		return nil, &InsufficientSharesError{Need: sss.Threshold, Have: len(points)}
	}

	return AtZero(points.Sorted().First(sss.Threshold)...)
}

// AtZero evaluates at x=0 the unique polynomial of degree len(points)-1
// passing through the given points:
//
//	f(0) = Σ_i y_i · Π_{j≠i} (−x_j) / (x_i − x_j)
//
// The sum is computed over the rationals and must reduce to an integer.
func AtZero(points ...Point) (*big.Int, error) {
	if len(points) == 0 {
		return nil, &InsufficientSharesError{Need: 1, Have: 0}
	}

	if err := ensureDistinct(points); err != nil {
		return nil, err
	}

	sum := new(big.Rat)

	for i := range points {
		term := lagrangeCoefficient(i, points)
		term.Mul(term, new(big.Rat).SetInt(points[i].Y))
		sum.Add(sum, term)
	}

	if !sum.IsInt() {
		return nil, &NonIntegerResultError{Value: sum, Subset: Points(points).IDs()}
	}

	return new(big.Int).Set(sum.Num()), nil
}

// lagrangeCoefficient returns ℓ_i(0) for the given points, in lowest terms.
// The x-coordinates must be pairwise distinct.
func lagrangeCoefficient(evaluatedAt int, points []Point) *big.Rat {
	xi := points[evaluatedAt].X

	nominator := big.NewInt(1)
	denominator := big.NewInt(1)

	for j, p := range points {
		if j == evaluatedAt {
			continue
		}

		nominator.Mul(nominator, new(big.Int).Neg(p.X))         // -x_j
		denominator.Mul(denominator, new(big.Int).Sub(xi, p.X)) // x_i - x_j
	}

	return new(big.Rat).SetFrac(nominator, denominator)
}

func ensureDistinct(points []Point) error {
	seen := make(map[string]struct{}, len(points))
	for _, p := range points {
		key := p.X.String()
		if _, exists := seen[key]; exists {
			return &DuplicateShareError{ID: new(big.Int).Set(p.X)}
		}
		seen[key] = struct{}{}
	}
	return nil
}
