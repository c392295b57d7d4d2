// Command ioracle preprocesses a graph into combined bottom-k
// reachability sketches once, then benchmarks the resulting influence
// estimator against exact Monte-Carlo simulation over randomly generated
// seed sets. Mirrors original_source/src/RunInfluenceOracle.cpp's main().
package main

import (
	"fmt"
	"os"

	"github.com/gilchrisn/skim/internal/config"
	"github.com/gilchrisn/skim/internal/diffusion"
	"github.com/gilchrisn/skim/internal/eval"
	"github.com/gilchrisn/skim/internal/graphio"
	"github.com/gilchrisn/skim/internal/obs"
	"github.com/gilchrisn/skim/internal/oracle"
)

func main() {
	cfg, err := config.ParseOracle(os.Args[1:])
	if err != nil {
		if ue, ok := err.(*config.UsageError); ok {
			fmt.Fprint(os.Stderr, ue.Usage)
			os.Exit(0)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log := obs.NewLogger("ioracle", cfg.SuppressProgress)

	g, err := loadGraph(cfg.InputPath, cfg.InputType, cfg.Undirected, cfg.NoParallel, cfg.Reverse)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load graph")
	}
	log.Info().Uint32("vertices", g.NumVertices()).Int("arcs", g.NumArcs()).Msg("graph loaded")

	model, err := diffusion.ParseModel(cfg.Model)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(0)
	}
	diff := diffusion.NewOracle(g, uint32(cfg.Seed), uint16(cfg.L), model, cfg.BinaryProb)

	o := oracle.New(g, diff, cfg.K, uint16(cfg.L), uint64(cfg.Seed))
	log.Info().Msg("preprocessing")
	o.Preprocess()
	log.Info().Msg("preprocessing complete")

	lEval := uint16(cfg.LEval)
	if lEval == 0 {
		lEval = uint16(cfg.L)
	}

	method := oracle.Uniform
	if cfg.SeedMethod == "neigh" {
		method = oracle.Neighborhood
	}

	stats := obs.NewStatsWriter()
	stats.Set("n", g.NumVertices())
	stats.Set("m", g.NumArcs())
	stats.Set("k", cfg.K)
	stats.Set("l", cfg.L)
	stats.Set("leval", lEval)
	stats.Set("model", cfg.Model)
	stats.Set("seed_method", cfg.SeedMethod)

	queryIndex := 0
	for _, r := range cfg.Sizes {
		for size := r.Lo; size <= r.Hi; size++ {
			for q := 0; q < cfg.NumQueries; q++ {
				S := o.GenerateSeedSet(uint64(size), method)
				estimated := o.Estimator(S)
				exact := o.ComputeInfluence(S, lEval)
				relErr := eval.RelativeError(estimated, exact)

				prefix := fmt.Sprintf("q%d", queryIndex)
				stats.SetPrefixed(prefix, "size", size)
				stats.SetPrefixed(prefix, "estimated", estimated)
				stats.SetPrefixed(prefix, "exact", exact)
				stats.SetPrefixed(prefix, "relative_error", relErr)

				fmt.Printf("%d\t%f\t%f\t%f\n", size, estimated, exact, relErr)
				queryIndex++
			}
		}
	}
	stats.Flush(cfg.StatsPath, log)
}

func loadGraph(path, format string, undirected, noParallel, reverse bool) (*graphio.Graph, error) {
	opts := graphio.BuildOptions{Undirected: undirected, DedupeParallel: noParallel, Transpose: reverse}

	var el *graphio.EdgeList
	var err error
	switch format {
	case "metis":
		f, ferr := os.Open(path)
		if ferr != nil {
			return nil, ferr
		}
		defer f.Close()
		el, err = graphio.ParseMETIS(f)
	case "dimacs":
		f, ferr := os.Open(path)
		if ferr != nil {
			return nil, ferr
		}
		defer f.Close()
		el, err = graphio.ParseDIMACS(f)
	case "bin":
		f, ferr := os.Open(path + ".gr")
		if ferr != nil {
			return nil, ferr
		}
		defer f.Close()
		el, err = graphio.ReadBinary(f)
	default:
		return nil, fmt.Errorf("unrecognized input type %q", format)
	}
	if err != nil {
		return nil, err
	}
	return graphio.Build(el, opts)
}
