package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lintang-b-s/Voronoix/pkg"
	"github.com/lintang-b-s/Voronoix/pkg/engine"
	"github.com/lintang-b-s/Voronoix/pkg/seeding"
	"github.com/lintang-b-s/Voronoix/pkg/util"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newRootCmd() *cobra.Command {
	var configFile string

	root := &cobra.Command{
		Use:          "voronoix",
		Short:        "Voronoix grows weighted regions on a square grid and relaxes them towards their centroids",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return util.ReadConfig(configFile)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&configFile, "config", "", "config file (default ./data/config.yaml)")
	flags.Int("n", pkg.DEFAULT_GRID_SIZE, "grid side length")
	flags.Int("k", pkg.DEFAULT_NUM_SOURCES, "number of sources")
	flags.Int64("seed", 1, "random seed for the random layout")
	flags.String("layout", pkg.RANDOM_LAYOUT.String(), "seed layout: random or lattice")
	flags.StringSlice("weights", nil, "source weights in id order, missing ones default to 1")
	flags.Int("workers", 4, "workers summing centroid row bands")
	flags.Bool("verbose", false, "debug logging")

	bindFlag(root, "GRID_SIZE", "n")
	bindFlag(root, "NUM_SOURCES", "k")
	bindFlag(root, "RANDOM_SEED", "seed")
	bindFlag(root, "SEED_LAYOUT", "layout")
	bindFlag(root, "WEIGHTS", "weights")
	bindFlag(root, "CENTROID_WORKERS", "workers")
	bindFlag(root, "VERBOSE", "verbose")

	root.AddCommand(newRunCmd())
	root.AddCommand(newBatchCmd())
	root.AddCommand(newServeCmd())
	return root
}

func bindFlag(cmd *cobra.Command, key, name string) {
	flag := cmd.PersistentFlags().Lookup(name)
	if flag == nil {
		flag = cmd.Flags().Lookup(name)
	}
	if err := viper.BindPFlag(key, flag); err != nil {
		panic(err)
	}
}

func logLevel(fallback string) string {
	if viper.GetBool("VERBOSE") {
		return "debug"
	}
	return fallback
}

// newEngineConfig engine config from flags, env and the config file.
func newEngineConfig() (engine.Config, error) {
	n := viper.GetInt("GRID_SIZE")
	k := viper.GetInt("NUM_SOURCES")

	layout := pkg.GetSeedLayout(strings.ToLower(viper.GetString("SEED_LAYOUT")))
	weights, err := parseWeights(viper.GetStringSlice("WEIGHTS"))
	if err != nil {
		return engine.Config{}, err
	}

	specs, err := seeding.Generate(layout, n, k, uint64(viper.GetInt64("RANDOM_SEED")), weights)
	if err != nil {
		return engine.Config{}, err
	}

	return engine.Config{
		GridSize:        n,
		Sources:         specs,
		CentroidWorkers: viper.GetInt("CENTROID_WORKERS"),
	}, nil
}

func parseWeights(raw []string) ([]float64, error) {
	weights := make([]float64, 0, len(raw))
	for _, r := range raw {
		r = strings.TrimSpace(r)
		if r == "" {
			continue
		}
		w, err := strconv.ParseFloat(r, 64)
		if err != nil {
			return nil, util.WrapErrorf(err, util.ErrBadParamInput, "invalid weight %q", r)
		}
		weights = append(weights, w)
	}
	return weights, nil
}

func summary(res engine.PassResult) string {
	return fmt.Sprintf("pass %d: labeled %d, discarded %d, steps %d, unassigned %d, max shift %d",
		res.Pass, res.Stats.Labeled, res.Stats.Discarded, res.Stats.Steps, res.Unassigned, res.MaxDisplacement)
}
