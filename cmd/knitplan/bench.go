package main

import (
	"flag"
	"fmt"
	"math/rand"

	"github.com/knitplan/knitplan/config"
	"github.com/knitplan/knitplan/planner"
	"github.com/knitplan/knitplan/prebuilt"
	"github.com/knitplan/knitplan/testgen"
)

func runBench(args []string) error {
	fs := flag.NewFlagSet("bench", flag.ExitOnError)
	configPath := fs.String("config", "planner.yaml", "path to planner config yaml")
	tablePath := fs.String("table", "", "path to a prebuilt table (required when the configured heuristic needs one)")
	kind := fs.String("kind", "flatlace", "test case generator: flatlace or simpletube")
	trials := fs.Int("trials", 20, "number of generated test cases to run")
	loopCount := fs.Int("loop-count", 4, "flatlace: number of loops cast on")
	maxStack := fs.Int("max-stack", 2, "flatlace: maximum loops per target needle")
	backLoopCount := fs.Int("back-loop-count", 3, "simpletube: loops cast on the back bed")
	frontLoopCount := fs.Int("front-loop-count", 3, "simpletube: loops cast on the front bed")
	seed := fs.Int64("seed", 1, "random seed driving the generator")
	canonicalize := fs.Bool("canonicalize", true, "search over canonical rackings only")
	ida := fs.Bool("ida", false, "use IDA* instead of A*")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}

	m, err := cfg.BuildMachine()
	if err != nil {
		return err
	}

	var tbl *prebuilt.Table
	if *tablePath != "" {
		tbl, err = prebuilt.Load(*tablePath)
		if err != nil {
			return err
		}
	}

	h, err := config.ResolveHeuristic(cfg.Heuristic, tbl)
	if err != nil {
		return err
	}

	rng := rand.New(rand.NewSource(*seed))
	results := make([]planner.SearchResult, 0, *trials)
	for i := 0; i < *trials; i++ {
		var tc testgen.TestCase
		switch *kind {
		case "flatlace":
			tc = testgen.FlatLace(m, *loopCount, *maxStack, rng)
		case "simpletube":
			tc = testgen.SimpleTube(m, *backLoopCount, *frontLoopCount, rng)
		default:
			return fmt.Errorf("knitplan: unknown bench kind %q", *kind)
		}

		var result planner.SearchResult
		if *ida {
			result, err = tc.TestID(*canonicalize, h, cfg.SearchLimit)
		} else {
			result, err = tc.Test(*canonicalize, h, cfg.SearchLimit)
		}
		if err != nil {
			return fmt.Errorf("knitplan: bench trial %d: %w", i, err)
		}
		results = append(results, result)
	}

	stats := testgen.Aggregate(results)
	fmt.Printf("count=%d infeasible=%d mean_path_length=%.2f median_path_length=%.2f mean_nodes=%.1f mean_seconds=%.4f\n",
		stats.Count, stats.Infeasible, stats.MeanPathLength, stats.MedianPathLength, stats.MeanNodeCount, stats.MeanSeconds)
	return nil
}
