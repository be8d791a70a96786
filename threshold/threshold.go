/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package threshold

import (
	"errors"
	"fmt"
	"math/big"
	"sync"

	"github.com/IBM/sharerecon/base"
	"github.com/IBM/sharerecon/lagrange"
	"github.com/IBM/sharerecon/logging"
	. "github.com/IBM/sharerecon/types"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"
)

var (
	ErrInvalidThreshold = errors.New("invalid threshold parameters")
)

// Result is the outcome of a reconstruction.
type Result struct {
	Secret *big.Int
	// Inconsistent holds the identifiers of the shares flagged by the
	// leave-one-out sweep, in ascending order.
	Inconsistent []*big.Int
}

type Scheme struct {
	// State
	setupOnce sync.Once
	// Config
	Threshold       int
	Total           int
	Parallelism     int
	MaxAuditSubsets int
	Logger          Logger
}

func (s *Scheme) setup() {
	if s.Logger == nil {
		s.Logger = logging.Nop()
	}
	if s.MaxAuditSubsets <= 0 {
		s.MaxAuditSubsets = DefaultMaxAuditSubsets
	}
}

// Reconstruct decodes the shares, recovers the secret from the Threshold shares
// with the smallest identifiers, and then checks every share with a leave-one-out sweep:
// a share is flagged when the secret recovered from the first Threshold of the remaining
// shares differs from the reference secret.
// Shares whose removal leaves fewer than Threshold shares are not checked.
//
// The sweep only detects disagreement with the reference subset. If the reference
// subset itself contains a corrupted share, the honest shares of the reference subset
// are flagged too, and corrupted shares outside of it may go unnoticed. Use Audit
// to find the secret most subsets agree on.
func (s *Scheme) Reconstruct(shares []Share) (*Result, error) {
	s.setupOnce.Do(s.setup)

	points, err := s.decode(shares)
	if err != nil {
		return nil, err
	}

	sss := &lagrange.SSS{Threshold: s.Threshold}
	secret, err := sss.Reconstruct(points)
	if err != nil {
		return nil, err
	}

	s.Logger.Infof("Reconstructed secret from shares %v", points.First(s.Threshold).IDs())

	inconsistent, err := s.sweep(points, secret)
	if err != nil {
		return nil, err
	}

	if len(inconsistent) == 0 {
		s.Logger.Infof("All %d shares are consistent", len(points))
	} else {
		s.Logger.Warnf("Shares %v are inconsistent with the reconstructed secret", inconsistent)
	}

	return &Result{
		Secret:       secret,
		Inconsistent: inconsistent,
	}, nil
}

// decode validates the parameters and turns the shares into points sorted by identifier.
func (s *Scheme) decode(shares []Share) (Points, error) {
	params := Params{N: s.Total, K: s.Threshold}
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidThreshold, err)
	}

	if s.Total != 0 && len(shares) != s.Total {
		s.Logger.Warnf("Expected %d shares but got %d", s.Total, len(shares))
	}

	var errs error
	points := make(Points, 0, len(shares))
	for _, share := range shares {
		p, err := base.DecodeShare(share)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		points = append(points, p)
	}

	if errs != nil {
		return nil, errs
	}

	points = points.Sorted()

	for i := 1; i < len(points); i++ {
		if points[i-1].X.Cmp(points[i].X) == 0 {
			return nil, &lagrange.DuplicateShareError{ID: points[i].X}
		}
	}

	if len(points) < s.Threshold {
		return nil, &lagrange.InsufficientSharesError{Need: s.Threshold, Have: len(points)}
	}

	return points, nil
}

// sweep runs the leave-one-out trials. Trials only read the points,
// so they run concurrently and each one reports its own outcome.
func (s *Scheme) sweep(points Points, secret *big.Int) ([]*big.Int, error) {
	mismatch := make([]bool, len(points))

	var g errgroup.Group
	g.SetLimit(s.parallelism())

	for i := range points {
		i := i
		g.Go(func() error {
			differs, err := s.trial(points, i, secret)
			mismatch[i] = differs
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	inconsistent := make([]*big.Int, 0)
	for i, differs := range mismatch {
		if differs {
			inconsistent = append(inconsistent, points[i].X)
		}
	}

	return inconsistent, nil
}

func (s *Scheme) trial(points Points, i int, secret *big.Int) (bool, error) {
	id := points[i].X
	candidates := points.Without(i)

	if len(candidates) < s.Threshold {
		s.Logger.Debugf("Not checking share %s, only %d shares remain without it", id, len(candidates))
		return false, nil
	}

	subset := candidates.First(s.Threshold)
	trialSecret, err := lagrange.AtZero(subset...)

	var nonIntegerErr *lagrange.NonIntegerResultError
	if errors.As(err, &nonIntegerErr) {
		s.Logger.Warnf("Share %s is inconsistent: %v", id, err)
		return true, nil
	}

	if err != nil {
		return false, err
	}

	differs := trialSecret.Cmp(secret) != 0

	if s.Logger.DebugEnabled() {
		s.Logger.Debugf("Without share %s, shares %v agree with the reference: %t", id, subset.IDs(), !differs)
	}

	return differs, nil
}

func (s *Scheme) parallelism() int {
	if s.Parallelism < 1 {
		return 1
	}
	return s.Parallelism
}
