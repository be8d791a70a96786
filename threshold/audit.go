/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package threshold

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/IBM/sharerecon/lagrange"
	. "github.com/IBM/sharerecon/types"
)

const DefaultMaxAuditSubsets = 1 << 16

var (
	ErrTooManySubsets = errors.New("too many subsets to audit")
	ErrNoMajority     = errors.New("no secret is agreed upon by more subsets than any other")
)

// AuditResult is the outcome of an exhaustive audit over all Threshold-sized subsets.
type AuditResult struct {
	// Secret is the secret recovered by the largest number of subsets.
	Secret *big.Int
	// Votes is the number of subsets that recovered Secret.
	Votes int
	// Subsets is the number of subsets examined.
	Subsets int
	// NonInteger is the number of subsets that did not interpolate to an integer.
	NonInteger int
	// Inconsistent holds the identifiers of the shares that are not part of
	// any subset recovering Secret, in ascending order.
	Inconsistent []*big.Int
}

type tally struct {
	secret  *big.Int
	votes   int
	members map[int]struct{}
}

// Audit recovers the secret from every Threshold-sized subset of the shares and
// returns the secret most subsets agree on, along with the shares that never take
// part in recovering it.
// Unlike the sweep of Reconstruct, the outcome does not depend on which shares
// have the smallest identifiers, at the cost of examining n choose k subsets.
func (s *Scheme) Audit(shares []Share) (*AuditResult, error) {
	s.setupOnce.Do(s.setup)

	points, err := s.decode(shares)
	if err != nil {
		return nil, err
	}

	n, k := len(points), s.Threshold

	subsetCount := new(big.Int).Binomial(int64(n), int64(k))
	if !subsetCount.IsInt64() || subsetCount.Int64() > int64(s.MaxAuditSubsets) {
		return nil, fmt.Errorf("%w: %d choose %d is %s, limit is %d", ErrTooManySubsets, n, k, subsetCount, s.MaxAuditSubsets)
	}

	s.Logger.Infof("Auditing %s subsets of %d out of %d shares", subsetCount, k, n)

	tallies := make(map[string]*tally)
	var order []string
	var subsets, nonInteger int
	var auditErr error

	chooseKoutOfN(n, k, func(indices []int) {
		if auditErr != nil {
			return
		}

		subsets++

		subset := make(Points, len(indices))
		for i, index := range indices {
			subset[i] = points[index]
		}

		secret, err := lagrange.AtZero(subset...)

		var nonIntegerErr *lagrange.NonIntegerResultError
		if errors.As(err, &nonIntegerErr) {
			s.Logger.Debugf("Shares %v do not interpolate to an integer", subset.IDs())
			nonInteger++
			return
		}

		if err != nil {
			auditErr = err
			return
		}

		key := secret.String()
		t, exists := tallies[key]
		if !exists {
			t = &tally{secret: secret, members: make(map[int]struct{})}
			tallies[key] = t
			order = append(order, key)
		}

		t.votes++
		for _, index := range indices {
			t.members[index] = struct{}{}
		}
	})

	if auditErr != nil {
		return nil, auditErr
	}

	winner, err := plurality(tallies, order)
	if err != nil {
		return nil, err
	}

	inconsistent := make([]*big.Int, 0)
	for i, p := range points {
		if _, exists := winner.members[i]; !exists {
			inconsistent = append(inconsistent, p.X)
		}
	}

	s.Logger.Infof("%d out of %d subsets agree on the secret, %d subsets are not integral, suspected shares: %v",
		winner.votes, subsets, nonInteger, inconsistent)

	return &AuditResult{
		Secret:       winner.secret,
		Votes:        winner.votes,
		Subsets:      subsets,
		NonInteger:   nonInteger,
		Inconsistent: inconsistent,
	}, nil
}

func plurality(tallies map[string]*tally, order []string) (*tally, error) {
	var winner *tally
	tie := false

	for _, key := range order {
		t := tallies[key]
		switch {
		case winner == nil || t.votes > winner.votes:
			winner = t
			tie = false
		case t.votes == winner.votes:
			tie = true
		}
	}

	if winner == nil {
		return nil, fmt.Errorf("%w: no subset interpolates to an integer", ErrNoMajority)
	}

	if tie {
		return nil, fmt.Errorf("%w: several secrets are recovered by %d subsets each", ErrNoMajority, winner.votes)
	}

	return winner, nil
}
