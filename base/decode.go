/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package base

import (
	"fmt"
	"math/big"

	. "github.com/IBM/sharerecon/types"
)

const (
	MinBase = 2
	MaxBase = 36
)

// DecodeError is returned when a value cannot be decoded in its declared base.
type DecodeError struct {
	Value  string
	Base   int
	Pos    int // index of the offending character, -1 if not about a single character
	Reason string
}

func (e *DecodeError) Error() string {
	if e.Pos >= 0 {
		return fmt.Sprintf("cannot decode %q in base %d: %s at position %d", e.Value, e.Base, e.Reason, e.Pos)
	}
	return fmt.Sprintf("cannot decode %q in base %d: %s", e.Value, e.Base, e.Reason)
}

// Decode converts value, written in the given positional base, into an integer.
// Digits are 0-9 followed by a-z (case-insensitive), optionally preceded by a sign.
func Decode(value string, base int) (*big.Int, error) {
	if base < MinBase || base > MaxBase {
		return nil, &DecodeError{Value: value, Base: base, Pos: -1, Reason: fmt.Sprintf("base must be in [%d, %d]", MinBase, MaxBase)}
	}

	digits := value
	start := 0
	if len(digits) > 0 && (digits[0] == '+' || digits[0] == '-') {
		digits = digits[1:]
		start = 1
	}

	if len(digits) == 0 {
		return nil, &DecodeError{Value: value, Base: base, Pos: -1, Reason: "no digits"}
	}

	for i := 0; i < len(digits); i++ {
		d, ok := digitValue(digits[i])
		if !ok || d >= base {
			return nil, &DecodeError{Value: value, Base: base, Pos: start + i, Reason: fmt.Sprintf("invalid digit %q", digits[i])}
		}
	}

	n, ok := new(big.Int).SetString(value, base)
	if !ok {
		// Unreachable after the digit scan above.
		return nil, &DecodeError{Value: value, Base: base, Pos: -1, Reason: "malformed number"}
	}

	return n, nil
}

// DecodeShare decodes the value of a share into the point it encodes.
func DecodeShare(s Share) (Point, error) {
	if s.ID == nil {
		return Point{}, fmt.Errorf("share has no identifier")
	}

	y, err := Decode(s.Value, s.Base)
	if err != nil {
		return Point{}, fmt.Errorf("share %s: %w", s.ID, err)
	}

	return Point{X: new(big.Int).Set(s.ID), Y: y}, nil
}

func digitValue(c byte) (int, bool) {
	switch {
	case '0' <= c && c <= '9':
		return int(c - '0'), true
	case 'a' <= c && c <= 'z':
		return int(c-'a') + 10, true
	case 'A' <= c && c <= 'Z':
		return int(c-'A') + 10, true
	default:
		return 0, false
	}
}
