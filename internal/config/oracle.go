package config

import (
	"bytes"
	"flag"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// SizeRange is one inclusive lo-hi span of query seed-set sizes.
type SizeRange struct {
	Lo, Hi int
}

// ParseSizeRanges parses the oracle's -N syntax: one or more comma-
// separated "lo-hi" spans (or a bare "n" span, meaning lo == hi == n),
// e.g. "5-10,20-30" or the default "1-50".
func ParseSizeRanges(s string) ([]SizeRange, error) {
	parts := strings.Split(s, ",")
	ranges := make([]SizeRange, 0, len(parts))
	for _, p := range parts {
		r, err := parseOneRange(p)
		if err != nil {
			return nil, err
		}
		ranges = append(ranges, r)
	}
	return ranges, nil
}

func parseOneRange(s string) (SizeRange, error) {
	if !strings.Contains(s, "-") {
		n, err := strconv.Atoi(s)
		if err != nil {
			return SizeRange{}, fmt.Errorf("invalid -N %q: %w", s, err)
		}
		return SizeRange{Lo: n, Hi: n}, nil
	}
	parts := strings.SplitN(s, "-", 2)
	lo, err := strconv.Atoi(parts[0])
	if err != nil {
		return SizeRange{}, fmt.Errorf("invalid -N range %q: %w", s, err)
	}
	hi, err := strconv.Atoi(parts[1])
	if err != nil {
		return SizeRange{}, fmt.Errorf("invalid -N range %q: %w", s, err)
	}
	if hi < lo {
		return SizeRange{}, fmt.Errorf("invalid -N range %q: hi < lo", s)
	}
	return SizeRange{Lo: lo, Hi: hi}, nil
}

// OracleConfig is the full flag set spec.md §6.1 gives the influence
// oracle binary: the shared Base flags plus query-size ranges, query
// count per size, and the seed-generation method.
type OracleConfig struct {
	Base
	Sizes      []SizeRange
	NumQueries int
	SeedMethod string // uni | neigh
}

// ParseOracle parses args into an OracleConfig, following the same
// usage-error convention as ParseSkim.
func ParseOracle(args []string) (*OracleConfig, error) {
	v := viper.New()
	setBaseDefaults(v)
	v.SetDefault("oracle.n_range", "1-50")
	v.SetDefault("oracle.num_queries", 100)
	v.SetDefault("oracle.seed_method", "uni")

	if err := mergeConfigFile(v, scanConfigFlag(args)); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	fs := flag.NewFlagSet("ioracle", flag.ContinueOnError)
	fs.SetOutput(&buf)
	base := bindBaseFlags(fs, v)

	nRange := fs.String("N", v.GetString("oracle.n_range"), "seed-set size range, e.g. 1-50")
	cfg := &OracleConfig{}
	fs.IntVar(&cfg.NumQueries, "n", v.GetInt("oracle.num_queries"), "number of queries per size")
	fs.StringVar(&cfg.SeedMethod, "g", v.GetString("oracle.seed_method"), "seed-set generator: uni or neigh")

	if err := fs.Parse(args); err != nil {
		return nil, &UsageError{Usage: buf.String()}
	}
	cfg.Base = *base

	if err := validateBase(&cfg.Base); err != nil {
		fs.Usage()
		return nil, &UsageError{Usage: buf.String() + err.Error() + "\n"}
	}
	switch cfg.SeedMethod {
	case "uni", "neigh":
	default:
		fs.Usage()
		return nil, &UsageError{Usage: fmt.Sprintf("%sunrecognized -g %q\n", buf.String(), cfg.SeedMethod)}
	}
	sizes, err := ParseSizeRanges(*nRange)
	if err != nil {
		fs.Usage()
		return nil, &UsageError{Usage: buf.String() + err.Error() + "\n"}
	}
	cfg.Sizes = sizes
	return cfg, nil
}
