// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"

	"github.com/urfave/cli"
	"golang.org/x/sync/errgroup"

	"github.com/gogpu/raytrace"
	"github.com/gogpu/raytrace/backend"
)

// defaultTolerance is the largest per-channel difference accepted between
// the float64 host evaluator and the float32 kernel.
const defaultTolerance = 1e-3

func compareCommand() cli.Command {
	return cli.Command{
		Name:      "compare",
		Usage:     "render with the CPU and GPU backends and compare the results",
		ArgsUsage: "[scene.json]",
		Flags: append([]cli.Flag{
			cli.Float64Flag{Name: "tolerance", Value: defaultTolerance, Usage: "maximum accepted channel difference"},
			cli.Float64Flag{Name: "max-outliers", Value: 0.01, Usage: "fraction of rays allowed above tolerance"},
		}, sceneFlags...),
		Action: compare,
	}
}

// diffStats summarizes how two renders differ.
type diffStats struct {
	maxDiff  float64
	outliers int
}

func diffColors(a, b []raytrace.Color, tolerance float64) diffStats {
	var s diffStats
	for i := range a {
		d := a[i].MaxDiff(b[i])
		s.maxDiff = max(s.maxDiff, d)
		if d > tolerance {
			s.outliers++
		}
	}
	return s
}

func compare(ctx *cli.Context) error {
	j, err := newJob(ctx)
	if err != nil {
		return err
	}

	names := []string{backend.NameCPU, backend.NameWGPU}
	results := make([]*result, len(names))
	var g errgroup.Group
	for i, name := range names {
		g.Go(func() error {
			res, err := j.run(name)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	tolerance := ctx.Float64("tolerance")
	s := diffColors(results[0].colors, results[1].colors, tolerance)
	for _, r := range results {
		fmt.Printf("%-5s %v\n", r.backend, r.elapsed)
	}
	fmt.Printf("max difference %.6f, %d of %d rays above %g\n", s.maxDiff, s.outliers, len(j.rays), tolerance)

	if limit := int(ctx.Float64("max-outliers") * float64(len(j.rays))); s.outliers > limit {
		return cli.NewExitError(fmt.Sprintf("backends disagree on %d rays (limit %d)", s.outliers, limit), 2)
	}
	return nil
}
