package main

import (
	"flag"
	"log"

	"github.com/knitplan/knitplan/config"
	"github.com/knitplan/knitplan/httpdriver"
	"github.com/knitplan/knitplan/prebuilt"
)

var (
	addr       = flag.String("addr", ":8080", "address to listen on")
	configPath = flag.String("config", "planner.yaml", "path to planner config yaml")
	tablePath  = flag.String("table", "", "path to a prebuilt table (required when the configured heuristic needs one)")
)

func runApp() error {
	flag.Parse()

	cfg, err := config.Load(*configPath)
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

	srv := httpdriver.NewServer(*addr, *cfg, tbl)
	log.Printf("knitplan-serve: listening on %s", *addr)
	return srv.Serve()
}

func main() {
	if err := runApp(); err != nil {
		log.Fatal(err)
	}
}
