/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package main

import (
	"fmt"
	"io"
	"math/big"
	"os"
	"runtime"
	"strings"

	"github.com/IBM/sharerecon/input"
	"github.com/IBM/sharerecon/logging"
	"github.com/IBM/sharerecon/threshold"
	"github.com/urfave/cli/v2"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "sharerecon",
		Usage: "reconstruct a secret from threshold shares and report inconsistent shares",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "input",
				Aliases:  []string{"i"},
				Usage:    "JSON or YAML `FILE` holding the threshold parameters and the shares",
				EnvVars:  []string{"SHARERECON_INPUT"},
				Required: true,
			},
			&cli.BoolFlag{
				Name:  "audit",
				Usage: "interpolate every k-sized subset and report the secret most subsets agree on",
			},
			&cli.IntFlag{
				Name:  "parallelism",
				Usage: "number of consistency checks to run concurrently",
				Value: runtime.NumCPU(),
			},
			&cli.IntFlag{
				Name:  "max-subsets",
				Usage: "refuse to audit more than this many subsets",
				Value: threshold.DefaultMaxAuditSubsets,
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "debug, info, warn or error",
				EnvVars: []string{"SHARERECON_LOG_LEVEL"},
				Value:   "warn",
			},
		},
		Action: run,
	}
}

func run(c *cli.Context) error {
	logger, err := logging.NewDevelopment(c.String("log-level"))
	if err != nil {
		return err
	}

	record, err := input.Load(c.String("input"))
	if err != nil {
		return err
	}

	shares, err := record.ToShares()
	if err != nil {
		return err
	}

	s := &threshold.Scheme{
		Threshold:       record.K,
		Total:           record.N,
		Parallelism:     c.Int("parallelism"),
		MaxAuditSubsets: c.Int("max-subsets"),
		Logger:          logger,
	}

	if c.Bool("audit") {
		res, err := s.Audit(shares)
		if err != nil {
			return err
		}
		printAudit(c.App.Writer, res)
		return nil
	}

	res, err := s.Reconstruct(shares)
	if err != nil {
		return err
	}
	printResult(c.App.Writer, res)
	return nil
}

func printResult(w io.Writer, res *threshold.Result) {
	fmt.Fprintf(w, "Secret: %s\n", res.Secret)
	if len(res.Inconsistent) == 0 {
		fmt.Fprintln(w, "All shares are consistent")
		return
	}
	fmt.Fprintf(w, "Inconsistent shares: %s\n", joinIDs(res.Inconsistent))
}

func printAudit(w io.Writer, res *threshold.AuditResult) {
	fmt.Fprintf(w, "Secret: %s\n", res.Secret)
	fmt.Fprintf(w, "Agreed upon by %d of %d subsets (%d not integral)\n", res.Votes, res.Subsets, res.NonInteger)
	if len(res.Inconsistent) == 0 {
		fmt.Fprintln(w, "All shares are consistent")
		return
	}
	fmt.Fprintf(w, "Inconsistent shares: %s\n", joinIDs(res.Inconsistent))
}

func joinIDs(ids []*big.Int) string {
	s := make([]string, 0, len(ids))
	for _, id := range ids {
		s = append(s, id.String())
	}
	return strings.Join(s, ", ")
}
