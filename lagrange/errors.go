/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package lagrange

import (
	"fmt"
	"math/big"
	"strings"
)

// InsufficientSharesError is returned when fewer points than required are available.
type InsufficientSharesError struct {
	Need int
	Have int
}

func (e *InsufficientSharesError) Error() string {
	return fmt.Sprintf("not enough shares: need %d, got %d", e.Need, e.Have)
}

// NonIntegerResultError is returned when the interpolated value at zero is not an integer.
// Well formed shares always interpolate to an integer, so this means corrupted shares
// or an arithmetic bug, not a malformed encoding.
type NonIntegerResultError struct {
	Value  *big.Rat
	Subset []*big.Int
}

func (e *NonIntegerResultError) Error() string {
	return fmt.Sprintf("interpolation over shares %s yields %s which is not an integer", idList(e.Subset), e.Value.RatString())
}

// DuplicateShareError is returned when two points share the same x-coordinate.
type DuplicateShareError struct {
	ID *big.Int
}

func (e *DuplicateShareError) Error() string {
	return fmt.Sprintf("share %s appears more than once", e.ID)
}

func idList(ids []*big.Int) string {
	sb := strings.Builder{}
	sb.WriteString("[")
	for i, id := range ids {
		if i > 0 {
			sb.WriteString(" ")
		}
		sb.WriteString(id.String())
	}
	sb.WriteString("]")
	return sb.String()
}
