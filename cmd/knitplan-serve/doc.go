// Command knitplan-serve wires config.Load into httpdriver.NewServer and
// blocks in Serve, mirroring niceyeti-tabular's own main.go: a flag for
// the listen address, a runApp() (err error) entry point, and log.Fatal
// on startup failure rather than an error-returning main.
package main
