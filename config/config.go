package config

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/knitplan/knitplan/heuristic"
	"github.com/knitplan/knitplan/machine"
	"github.com/knitplan/knitplan/prebuilt"
)

// ErrUnknownHeuristic is returned by ResolveHeuristic for a name not in
// the fixed set spec.md §4.6 names.
var ErrUnknownHeuristic = errors.New("config: unknown heuristic name")

// ErrMissingPrebuiltTable is returned by ResolveHeuristic when the
// configured heuristic needs a constructed prebuilt.Table but none was
// given.
var ErrMissingPrebuiltTable = errors.New("config: heuristic requires a constructed prebuilt table")

// MachineConfig describes the machine geometry a planning run operates
// on, matching machine.New's constructor arguments one for one.
type MachineConfig struct {
	Width      int `mapstructure:"width" yaml:"width"`
	MinRacking int `mapstructure:"min_racking" yaml:"min_racking"`
	MaxRacking int `mapstructure:"max_racking" yaml:"max_racking"`
	Racking    int `mapstructure:"racking" yaml:"racking"`
}

// PrebuiltConfig sizes the process-wide prebuilt reachability table
// (spec.md §4.8): K is the BFS depth prebuilt.Table.Construct walks to.
type PrebuiltConfig struct {
	K int `mapstructure:"k" yaml:"k"`
}

// PlannerConfig is the top-level shape cmd/knitplan and httpdriver both
// load at startup.
type PlannerConfig struct {
	Machine      MachineConfig  `mapstructure:"machine" yaml:"machine"`
	Prebuilt     PrebuiltConfig `mapstructure:"prebuilt" yaml:"prebuilt"`
	Heuristic    string         `mapstructure:"heuristic" yaml:"heuristic"`
	SearchLimit  int            `mapstructure:"search_limit" yaml:"search_limit"`
	OutputFormat string         `mapstructure:"output_format" yaml:"output_format"`
}

// Load reads a PlannerConfig from the YAML file at path.
func Load(path string) (*PlannerConfig, error) {
	vp := viper.New()
	vp.SetConfigFile(path)
	vp.SetConfigType("yaml")

	if err := vp.ReadInConfig(); err != nil {
		return nil, errors.Wrapf(err, "config: reading %s", path)
	}

	cfg := &PlannerConfig{}
	if err := vp.Unmarshal(cfg); err != nil {
		return nil, errors.Wrapf(err, "config: unmarshaling %s", path)
	}
	return cfg, nil
}

// BuildMachine constructs the machine.Machine this config describes.
func (c PlannerConfig) BuildMachine() (machine.Machine, error) {
	m, err := machine.New(c.Machine.Width, c.Machine.MinRacking, c.Machine.MaxRacking, c.Machine.Racking)
	if err != nil {
		return machine.Machine{}, errors.Wrap(err, "config: building machine")
	}
	return m, nil
}

// ResolveHeuristic maps a configured heuristic name to its heuristic.Func,
// the fixed set spec.md §4.6 names: none, target, offsets, log, braid,
// prebuilt, braid-log (braid⊕log), braid-prebuilt (braid⊕prebuilt). tbl
// may be nil unless name references prebuilt.
func ResolveHeuristic(name string, tbl *prebuilt.Table) (heuristic.Func, error) {
	switch name {
	case "none":
		return heuristic.No, nil
	case "target":
		return heuristic.Target, nil
	case "offsets":
		return heuristic.Offsets, nil
	case "log":
		return heuristic.Log, nil
	case "braid":
		return heuristic.Braid, nil
	case "prebuilt":
		if tbl == nil {
			return nil, ErrMissingPrebuiltTable
		}
		return heuristic.Prebuilt(tbl), nil
	case "braid-log":
		return heuristic.Combine(heuristic.Braid, heuristic.Log), nil
	case "braid-prebuilt":
		if tbl == nil {
			return nil, ErrMissingPrebuiltTable
		}
		return heuristic.Combine(heuristic.Braid, heuristic.Prebuilt(tbl)), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownHeuristic, name)
	}
}

func (c PlannerConfig) String() string {
	return fmt.Sprintf("machine=%+v prebuilt.k=%d heuristic=%s search_limit=%d output=%s",
		c.Machine, c.Prebuilt.K, c.Heuristic, c.SearchLimit, c.OutputFormat)
}
