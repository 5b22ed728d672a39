package main

import (
	"os"

	"github.com/joshuapare/tlsfkit/tlsf"
	"github.com/joshuapare/tlsfkit/tlsf/chunk"
	"github.com/spf13/cobra"
)

var (
	statsOps     int
	statsSeed    int64
	statsMaxSize uint32
	statsSystem  bool
)

func init() {
	cmd := newStatsCmd()
	cmd.Flags().IntVar(&statsOps, "ops", 10000, "Number of random operations")
	cmd.Flags().Int64Var(&statsSeed, "seed", 1, "Workload random seed")
	cmd.Flags().Uint32Var(&statsMaxSize, "max-size", 16384, "Largest allocation size")
	cmd.Flags().BoolVar(&statsSystem, "system", false, "Use real memory (mmap) instead of fake addresses")
	rootCmd.AddCommand(cmd)
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Run a randomized workload and show allocator statistics",
		Long: `The stats command runs a reproducible randomized allocate/free workload
and prints the allocator's operation counters afterwards.

Example:
  tlsfctl stats
  tlsfctl stats --ops 100000 --seed 7 --max-size 65536
  tlsfctl stats --system --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStats()
		},
	}
	return cmd
}

func runStats() error {
	var prov chunk.Provider
	if statsSystem {
		sys := chunk.NewSystem()
		defer sys.Close()
		prov = sys
	} else {
		prov = chunk.NewStatic(65536)
	}

	a, err := tlsf.New(prov, nil)
	if err != nil {
		return err
	}

	live, err := runRandom(a, statsOps, statsSeed, statsMaxSize)
	if err != nil {
		return err
	}
	printVerbose("workload done, %d allocations still live\n", live)

	if jsonOut {
		return printJSON(a.Snapshot())
	}

	printInfo("chunks: %d  blocks: %d  live allocations: %d\n\n",
		len(a.Chunks()), len(a.Blocks()), live)
	return tlsf.FormatStats(os.Stdout, a.Stats())
}
