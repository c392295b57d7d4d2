// Package config layers CLI configuration for both binaries the way
// pkg/scar/config.go does: a viper instance seeded with defaults, an
// optional config file merged on top, and finally the flags actually
// passed on the command line, which always win. Unlike pkg/scar's single
// long-lived process config, each binary here parses its arguments once at
// startup and never touches the Config again.
package config

import (
	"flag"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// UsageError is returned by Parse when the command line asks for help, is
// missing a mandatory flag, or names an unrecognized flag value. spec.md
// §7 treats all of these as "print usage, exit 0" rather than a fatal
// error, so main() type-switches on this to choose its exit path.
type UsageError struct {
	Usage string
}

func (e *UsageError) Error() string { return "usage error: see -h" }

// Base holds the flags spec.md §6.1 lists as shared between both binaries.
type Base struct {
	InputPath         string
	InputType         string // metis | dimacs | bin
	Undirected        bool
	NoParallel        bool
	Reverse           bool // -trans: swap arc endpoints
	Model             string // weighted | binary | trivalency
	BinaryProb        float64
	K                 int
	L                 int
	LEval             int
	Seed              int64
	SuppressProgress  bool // -v
	StatsPath         string
}

func setBaseDefaults(v *viper.Viper) {
	v.SetDefault("input.type", "metis")
	v.SetDefault("input.undirected", false)
	v.SetDefault("input.no_parallel", false)
	v.SetDefault("input.reverse", false)
	v.SetDefault("model.type", "weighted")
	v.SetDefault("model.binary_prob", 0.1)
	v.SetDefault("sketch.k", 64)
	v.SetDefault("sketch.l", 64)
	v.SetDefault("eval.leval", 0)
	v.SetDefault("random.seed", int64(31101982))
	v.SetDefault("logging.suppress_progress", false)
	v.SetDefault("output.stats_path", "")
}

// scanConfigFlag pre-scans args for -config/--config so its file can be
// merged into viper before flag defaults are computed from it — flags
// parsed afterward still take precedence, since flag.Parse assigns
// directly into the bound variables regardless of their default.
func scanConfigFlag(args []string) string {
	for i, a := range args {
		name := strings.TrimLeft(a, "-")
		if name == "config" {
			if eq := strings.Index(a, "="); eq >= 0 {
				return a[eq+1:]
			}
			if i+1 < len(args) {
				return args[i+1]
			}
		}
		if strings.HasPrefix(a, "-config=") || strings.HasPrefix(a, "--config=") {
			return a[strings.Index(a, "=")+1:]
		}
	}
	return ""
}

func mergeConfigFile(v *viper.Viper, path string) error {
	if path == "" {
		return nil
	}
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("reading config file %q: %w", path, err)
	}
	return nil
}

// bindBaseFlags registers the shared flags on fs, using v's current values
// (defaults merged with any config file) as the flag defaults, and returns
// pointers flag.Parse will fill in.
func bindBaseFlags(fs *flag.FlagSet, v *viper.Viper) *Base {
	b := &Base{}
	fs.StringVar(&b.InputPath, "i", "", "input graph path (mandatory)")
	fs.StringVar(&b.InputType, "type", v.GetString("input.type"), "input format: metis, dimacs, or bin")
	fs.BoolVar(&b.Undirected, "undir", v.GetBool("input.undirected"), "treat input as undirected")
	fs.BoolVar(&b.NoParallel, "nopar", v.GetBool("input.no_parallel"), "deduplicate parallel arcs after load")
	fs.BoolVar(&b.Reverse, "trans", v.GetBool("input.reverse"), "swap arc endpoints (reverse graph)")
	fs.StringVar(&b.Model, "m", v.GetString("model.type"), "diffusion model: weighted, binary, or trivalency")
	fs.Float64Var(&b.BinaryProb, "p", v.GetFloat64("model.binary_prob"), "binary model edge probability")
	fs.IntVar(&b.K, "k", v.GetInt("sketch.k"), "sketch size")
	fs.IntVar(&b.L, "l", v.GetInt("sketch.l"), "number of diffusion instances")
	fs.IntVar(&b.LEval, "leval", v.GetInt("eval.leval"), "number of exact-simulation instances (0 = skip)")
	fs.Int64Var(&b.Seed, "seed", v.GetInt64("random.seed"), "random seed")
	fs.BoolVar(&b.SuppressProgress, "v", v.GetBool("logging.suppress_progress"), "suppress progress output")
	fs.StringVar(&b.StatsPath, "os", v.GetString("output.stats_path"), "stats output path")
	fs.String("config", "", "optional config file (yaml/json/toml) merged before flags")
	return b
}

func validateBase(b *Base) error {
	if b.InputPath == "" {
		return fmt.Errorf("missing mandatory -i flag")
	}
	switch b.InputType {
	case "metis", "dimacs", "bin":
	default:
		return fmt.Errorf("unrecognized -type %q", b.InputType)
	}
	switch b.Model {
	case "weighted", "binary", "trivalency":
	default:
		return fmt.Errorf("unrecognized -m %q", b.Model)
	}
	return nil
}
