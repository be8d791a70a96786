/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package input

import (
	"math/big"
	"os"
	"path/filepath"
	"testing"

	. "github.com/IBM/sharerecon/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleJSON = `
{
  "keys": { "n": 10, "k": 7 },
  "1": { "base": "6", "value": "13444211440455345511" },
  "2": { "base": "15", "value": "aed7015a346d635" },
  "3": { "base": "15", "value": "6aeeb69631c227c" },
  "4": { "base": "16", "value": "e1b5e05623d881f" },
  "5": { "base": "8", "value": "316034514573652620673" },
  "6": { "base": "3", "value": "2122212201122002221120200210011020220200" },
  "7": { "base": "3", "value": "20120221122211000100210021102001201112121" },
  "8": { "base": "6", "value": "20220554335330240002224253" },
  "9": { "base": "12", "value": "45153788322a1255483" },
  "10": { "base": "7", "value": "1101613130313526312514143" }
}
`

const sampleYAML = `
keys:
  n: 4
  k: 3
"1":
  base: "10"
  value: "4"
"2":
  base: "2"
  value: "111"
"3":
  base: "10"
  value: "12"
"6":
  base: "4"
  value: "213"
`

func TestParseJSON(t *testing.T) {
	r, err := ParseJSON([]byte(sampleJSON))
	require.NoError(t, err)

	assert.Equal(t, Params{N: 10, K: 7}, r.Params())
	assert.Len(t, r.Shares, 10)
	assert.Equal(t, ShareEnv{Base: "16", Value: "e1b5e05623d881f"}, r.Shares["4"])
	assert.NotContains(t, r.Shares, "keys")

	shares, err := r.ToShares()
	require.NoError(t, err)
	require.Len(t, shares, 10)

	// Identifiers are ordered numerically, not lexicographically
	for i, s := range shares {
		assert.Equal(t, big.NewInt(int64(i+1)), s.ID)
	}
	assert.Equal(t, Share{ID: big.NewInt(10), Base: 7, Value: "1101613130313526312514143"}, shares[9])
}

func TestParseYAML(t *testing.T) {
	r, err := ParseYAML([]byte(sampleYAML))
	require.NoError(t, err)

	assert.Equal(t, Params{N: 4, K: 3}, r.Params())

	shares, err := r.ToShares()
	require.NoError(t, err)
	assert.Equal(t, []Share{
		{ID: big.NewInt(1), Base: 10, Value: "4"},
		{ID: big.NewInt(2), Base: 2, Value: "111"},
		{ID: big.NewInt(3), Base: 10, Value: "12"},
		{ID: big.NewInt(6), Base: 4, Value: "213"},
	}, shares)
}

func TestParseMissingKeys(t *testing.T) {
	_, err := ParseJSON([]byte(`{"1": {"base": "10", "value": "4"}}`))
	assert.EqualError(t, err, `missing "keys" object`)

	_, err = ParseYAML([]byte("\"1\":\n  base: \"10\"\n  value: \"4\"\n"))
	assert.EqualError(t, err, `missing "keys" object`)
}

func TestParseNoShares(t *testing.T) {
	r, err := ParseJSON([]byte(`{"keys": {"n": 0, "k": 1}}`))
	require.NoError(t, err)

	shares, err := r.ToShares()
	assert.NoError(t, err)
	assert.Empty(t, shares)
}

func TestParseMalformed(t *testing.T) {
	_, err := ParseJSON([]byte(`{"keys": `))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid JSON document")

	_, err = ParseYAML([]byte("keys: [1, 2"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid YAML document")
}

func TestToSharesInvalid(t *testing.T) {
	for _, tst := range []struct {
		name     string
		record   Record
		expected string
	}{
		{
			name:     "non numeric identifier",
			record:   Record{Shares: map[string]ShareEnv{"abc": {Base: "10", Value: "1"}}},
			expected: `share identifier "abc" is not a positive integer`,
		},
		{
			name:     "zero identifier",
			record:   Record{Shares: map[string]ShareEnv{"0": {Base: "10", Value: "1"}}},
			expected: `share identifier "0" is not a positive integer`,
		},
		{
			name:     "negative identifier",
			record:   Record{Shares: map[string]ShareEnv{"-3": {Base: "10", Value: "1"}}},
			expected: `share identifier "-3" is not a positive integer`,
		},
		{
			name:     "non numeric base",
			record:   Record{Shares: map[string]ShareEnv{"2": {Base: "hex", Value: "ff"}}},
			expected: `invalid base "hex" for share 2: strconv.Atoi: parsing "hex": invalid syntax`,
		},
	} {
		t.Run(tst.name, func(t *testing.T) {
			shares, err := tst.record.ToShares()
			assert.Nil(t, shares)
			assert.EqualError(t, err, tst.expected)
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	jsonPath := filepath.Join(dir, "testcase.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(sampleJSON), 0o600))

	yamlPath := filepath.Join(dir, "testcase.YML")
	require.NoError(t, os.WriteFile(yamlPath, []byte(sampleYAML), 0o600))

	r, err := Load(jsonPath)
	require.NoError(t, err)
	assert.Equal(t, 7, r.K)
	assert.Len(t, r.Shares, 10)

	r, err = Load(yamlPath)
	require.NoError(t, err)
	assert.Equal(t, 3, r.K)
	assert.Len(t, r.Shares, 4)

	_, err = Load(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed reading")

	brokenPath := filepath.Join(dir, "broken.json")
	require.NoError(t, os.WriteFile(brokenPath, []byte(`{"1": {"base": "10", "value": "4"}}`), 0o600))
	_, err = Load(brokenPath)
	assert.EqualError(t, err, `failed parsing `+brokenPath+`: missing "keys" object`)
}
