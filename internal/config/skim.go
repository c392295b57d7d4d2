package config

import (
	"bytes"
	"flag"

	"github.com/spf13/viper"
)

// SkimConfig is the full flag set spec.md §6.1 gives the SKIM binary: the
// shared Base flags plus target seed-set size, thread count, NUMA node
// (parsed but not used for pinning), and the optional coverage-trace
// output path.
type SkimConfig struct {
	Base
	N             uint32 // target seed-set size; 0 means "target n"
	Threads       int
	NUMA          int
	CoveragePath  string
}

// ParseSkim parses args (typically os.Args[1:]) into a SkimConfig. Any
// problem spec.md §7 calls a usage error — a missing -i, an unrecognized
// -type/-m value, -h, or a flag parse failure — comes back as *UsageError
// with the flag set's usage text attached; main() prints it and exits 0.
func ParseSkim(args []string) (*SkimConfig, error) {
	v := viper.New()
	setBaseDefaults(v)
	v.SetDefault("skim.target_n", 0)
	v.SetDefault("skim.threads", 1)
	v.SetDefault("skim.numa", 0)
	v.SetDefault("output.coverage_path", "")

	if err := mergeConfigFile(v, scanConfigFlag(args)); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	fs := flag.NewFlagSet("skim", flag.ContinueOnError)
	fs.SetOutput(&buf)
	base := bindBaseFlags(fs, v)

	var n uint
	fs.UintVar(&n, "N", uint(v.GetInt("skim.target_n")), "target seed-set size (0 = n)")
	cfg := &SkimConfig{}
	fs.IntVar(&cfg.Threads, "t", v.GetInt("skim.threads"), "worker thread count")
	fs.IntVar(&cfg.NUMA, "numa", v.GetInt("skim.numa"), "NUMA node (accepted, not used for pinning)")
	fs.StringVar(&cfg.CoveragePath, "oc", v.GetString("output.coverage_path"), "coverage-trace output path")

	if err := fs.Parse(args); err != nil {
		return nil, &UsageError{Usage: buf.String()}
	}
	cfg.Base = *base
	cfg.N = uint32(n)

	if err := validateBase(&cfg.Base); err != nil {
		fs.Usage()
		return nil, &UsageError{Usage: buf.String() + err.Error() + "\n"}
	}
	return cfg, nil
}
