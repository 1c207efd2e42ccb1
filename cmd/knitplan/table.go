package main

import (
	"flag"
	"fmt"

	"github.com/knitplan/knitplan/braid"
	"github.com/knitplan/knitplan/config"
	"github.com/knitplan/knitplan/enumerate"
	"github.com/knitplan/knitplan/prebuilt"
	"github.com/knitplan/knitplan/state"
)

// runTable implements "knitplan table build": constructs a prebuilt.Table
// by BFS-walking enumerate.Canonical from a seed state that packs every
// needle on the back bed with a loop destined for the matching needle on
// the front bed — a dense worst-case starting point, so Construct's walk
// sees the widest variety of signatures this machine can produce.
func runTable(args []string) error {
	if len(args) == 0 || args[0] != "build" {
		return fmt.Errorf("knitplan: table requires a \"build\" subcommand")
	}

	fs := flag.NewFlagSet("table build", flag.ExitOnError)
	configPath := fs.String("config", "planner.yaml", "path to planner config yaml")
	out := fs.String("out", "prebuilt.gob", "output path for the serialized table")
	if err := fs.Parse(args[1:]); err != nil {
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

	loaded := make([]int, m.Width)
	empty := make([]int, m.Width)
	for i := range loaded {
		loaded[i] = 1
	}

	src := state.New(m, loaded, empty, braid.Identity(m.Width), nil)
	tgt := state.New(m, empty, loaded, braid.Identity(m.Width), nil)
	if err := src.SetTarget(&tgt); err != nil {
		return err
	}

	tbl := prebuilt.New()
	tbl.Construct(src, cfg.Prebuilt.K, func(s state.State) []state.State {
		var next []state.State
		for _, tr := range enumerate.Canonical(s) {
			next = append(next, tr.Next)
		}
		return next
	})

	if err := tbl.Save(*out); err != nil {
		return err
	}
	fmt.Printf("wrote %d entries to %s\n", tbl.Len(), *out)
	return nil
}
