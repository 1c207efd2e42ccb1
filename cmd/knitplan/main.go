package main

import (
	"fmt"
	"os"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: knitplan <plan|bench|table> [flags]")
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "plan":
		err = runPlan(os.Args[2:])
	case "bench":
		err = runBench(os.Args[2:])
	case "table":
		err = runTable(os.Args[2:])
	case "-h", "--help", "help":
		fmt.Fprintln(os.Stderr, "usage: knitplan <plan|bench|table> [flags]")
		return
	default:
		fmt.Fprintf(os.Stderr, "knitplan: unknown subcommand %q\n", os.Args[1])
		os.Exit(2)
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, "knitplan:", err)
		os.Exit(1)
	}
}

// parseInts splits a comma-separated list of non-negative loop counts,
// the wire format every subcommand's bed flags share (e.g. "0,0,1,0").
func parseInts(s string) ([]int, error) {
	if s == "" {
		return nil, nil
	}
	var out []int
	start := 0
	for i := 0; i <= len(s); i++ {
		if i == len(s) || s[i] == ',' {
			var v int
			if _, err := fmt.Sscanf(s[start:i], "%d", &v); err != nil {
				return nil, fmt.Errorf("knitplan: invalid integer in %q: %w", s, err)
			}
			out = append(out, v)
			start = i + 1
		}
	}
	return out, nil
}
