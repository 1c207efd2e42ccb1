// Command knitplan is a thin CLI over package config and the testgen
// generators: knitplan plan runs one A*/IDA* search between an explicit
// source and target layout, knitplan bench generates a batch of test
// cases from one of testgen's generators and reports aggregate
// statistics, and knitplan table build constructs and serializes a
// prebuilt.Table for later use as the "prebuilt" heuristic.
//
// Grounded on niceyeti-tabular's own main.go: flag-based configuration
// (no subcommand framework anywhere in the pack, so flag.NewFlagSet per
// subcommand is this command's own convention) plus a runApp() (err
// error) entry point that main only checks once.
package main
