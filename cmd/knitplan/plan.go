package main

import (
	"flag"
	"fmt"

	"github.com/knitplan/knitplan/braid"
	"github.com/knitplan/knitplan/config"
	"github.com/knitplan/knitplan/enumerate"
	"github.com/knitplan/knitplan/planner"
	"github.com/knitplan/knitplan/prebuilt"
	"github.com/knitplan/knitplan/state"
)

func runPlan(args []string) error {
	fs := flag.NewFlagSet("plan", flag.ExitOnError)
	configPath := fs.String("config", "planner.yaml", "path to planner config yaml")
	tablePath := fs.String("table", "", "path to a prebuilt table (required when the configured heuristic needs one)")
	sourceBack := fs.String("source-back", "", "comma-separated loop counts per back needle")
	sourceFront := fs.String("source-front", "", "comma-separated loop counts per front needle")
	targetBack := fs.String("target-back", "", "comma-separated loop counts per back needle")
	targetFront := fs.String("target-front", "", "comma-separated loop counts per front needle")
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

	sb, err := parseInts(*sourceBack)
	if err != nil {
		return err
	}
	sf, err := parseInts(*sourceFront)
	if err != nil {
		return err
	}
	tb, err := parseInts(*targetBack)
	if err != nil {
		return err
	}
	tf, err := parseInts(*targetFront)
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

	sourceStrands := countOccupied(sb, sf)
	targetStrands := countOccupied(tb, tf)
	if sourceStrands != targetStrands {
		return fmt.Errorf("knitplan: source and target occupy a different number of needles (%d vs %d)", sourceStrands, targetStrands)
	}

	tgt := state.New(m, tb, tf, braid.Identity(targetStrands), nil)
	src := state.New(m, sb, sf, braid.Identity(sourceStrands), nil)
	if err := src.SetTarget(&tgt); err != nil {
		return err
	}

	adjacent := enumerate.Simple
	sources := src.AllRackings()
	if *canonicalize {
		adjacent = enumerate.Canonical
		sources = src.AllCanonicalRackings()
	}

	search := planner.Astar
	if *ida {
		search = planner.IDAstar
	}
	result := search(sources, h, adjacent, cfg.SearchLimit)

	fmt.Printf("path_length=%d search_tree_size=%d seconds_taken=%.4f\n", result.PathLength, result.SearchTreeSize, result.SecondsTaken)
	for _, step := range result.Path {
		fmt.Println(step)
	}
	return nil
}

func countOccupied(beds ...[]int) int {
	n := 0
	for _, bed := range beds {
		for _, c := range bed {
			if c > 0 {
				n++
			}
		}
	}
	return n
}
