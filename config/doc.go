// Package config loads a planner configuration from YAML: the machine
// geometry, the prebuilt-table build depth, which heuristic to drive the
// search with, the search limit, and the output format cmd/knitplan
// should render results in.
//
// Grounded on niceyeti-tabular/tabular/reinforcement/learning.go's
// FromYaml: viper.New, SetConfigType("yaml"), Unmarshal into a typed
// struct. Two differences from that function: Load passes the full path
// straight to SetConfigFile rather than splitting it into a bare
// filename plus AddConfigPath — there is only ever one path argument
// here, not a multi-directory search — and it does not round-trip
// through an outer/inner yaml.v3 re-marshal step, since FromYaml only
// needs that to pull a nested "def" block out of a wrapper document, a
// shape this package's flat config has no need for.
package config
