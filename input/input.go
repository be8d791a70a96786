/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package input

import (
	"math/big"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	. "github.com/IBM/sharerecon/types"
	"github.com/pkg/errors"
	"github.com/ugorji/go/codec"
	"gopkg.in/yaml.v3"
)

const keysField = "keys"

// reused safely between decoders.
var jsonHandle codec.JsonHandle

// ShareEnv is a share as it appears in an input document.
type ShareEnv struct {
	Base  string `codec:"base" yaml:"base"`
	Value string `codec:"value" yaml:"value"`
}

type keysEnv struct {
	N int `codec:"n" yaml:"n"`
	K int `codec:"k" yaml:"k"`
}

type header struct {
	Keys *keysEnv `codec:"keys" yaml:"keys"`
}

// Record is an input document: the threshold parameters and the shares keyed by their identifier.
//
//	{
//	  "keys": {"n": 4, "k": 3},
//	  "1": {"base": "10", "value": "4"},
//	  "2": {"base": "2", "value": "111"}
//	}
type Record struct {
	N      int
	K      int
	Shares map[string]ShareEnv
}

// Load reads a record from a file. Files ending with .yaml or .yml are decoded
// as YAML, anything else as JSON.
func Load(path string) (*Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed reading %s", path)
	}

	var r *Record
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		r, err = ParseYAML(data)
	default:
		r, err = ParseJSON(data)
	}

	if err != nil {
		return nil, errors.WithMessagef(err, "failed parsing %s", path)
	}

	return r, nil
}

func ParseJSON(data []byte) (*Record, error) {
	var h header
	if err := codec.NewDecoderBytes(data, &jsonHandle).Decode(&h); err != nil {
		return nil, errors.Wrap(err, "invalid JSON document")
	}

	var shares map[string]ShareEnv
	if err := codec.NewDecoderBytes(data, &jsonHandle).Decode(&shares); err != nil {
		return nil, errors.Wrap(err, "invalid JSON shares")
	}

	return newRecord(h, shares)
}

func ParseYAML(data []byte) (*Record, error) {
	var h header
	if err := yaml.Unmarshal(data, &h); err != nil {
		return nil, errors.Wrap(err, "invalid YAML document")
	}

	var shares map[string]ShareEnv
	if err := yaml.Unmarshal(data, &shares); err != nil {
		return nil, errors.Wrap(err, "invalid YAML shares")
	}

	return newRecord(h, shares)
}

func newRecord(h header, shares map[string]ShareEnv) (*Record, error) {
	if h.Keys == nil {
		return nil, errors.Errorf("missing %q object", keysField)
	}

	delete(shares, keysField)
	if shares == nil {
		shares = make(map[string]ShareEnv)
	}

	return &Record{
		N:      h.Keys.N,
		K:      h.Keys.K,
		Shares: shares,
	}, nil
}

func (r *Record) Params() Params {
	return Params{N: r.N, K: r.K}
}

// ToShares converts the record into shares, ordered by ascending identifier.
// Identifiers must be positive decimal integers and bases decimal integers.
// Whether a value is valid in its base is left to the decoder.
func (r *Record) ToShares() ([]Share, error) {
	shares := make([]Share, 0, len(r.Shares))

	for id, env := range r.Shares {
		x, ok := new(big.Int).SetString(id, 10)
		if !ok || x.Sign() <= 0 {
			return nil, errors.Errorf("share identifier %q is not a positive integer", id)
		}

		b, err := strconv.Atoi(env.Base)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid base %q for share %s", env.Base, id)
		}

		shares = append(shares, Share{ID: x, Base: b, Value: env.Value})
	}

	sort.Slice(shares, func(i, j int) bool {
		return shares[i].ID.Cmp(shares[j].ID) < 0
	})

	return shares, nil
}
