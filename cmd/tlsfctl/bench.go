package main

import (
	"time"

	"github.com/joshuapare/tlsfkit/tlsf"
	"github.com/joshuapare/tlsfkit/tlsf/chunk"
	"github.com/spf13/cobra"
)

var (
	benchOps  int
	benchSize uint32
)

func init() {
	cmd := newBenchCmd()
	cmd.Flags().IntVar(&benchOps, "ops", 1000000, "Number of alloc/free pairs")
	cmd.Flags().Uint32Var(&benchSize, "size", 256, "Allocation size")
	rootCmd.AddCommand(cmd)
}

func newBenchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Time a tight alloc/free loop",
		Long: `The bench command times alloc/free pairs of a fixed size against the
deterministic provider and reports the achieved rate.

Example:
  tlsfctl bench
  tlsfctl bench --ops 5000000 --size 4096`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBench()
		},
	}
	return cmd
}

func runBench() error {
	prov := chunk.NewStatic(1 << 20)
	a, err := tlsf.New(prov, nil)
	if err != nil {
		return err
	}

	// Warm up so chunk acquisition stays off the timed path.
	warm, err := a.Alloc(benchSize)
	if err != nil {
		return err
	}
	if err := a.Free(warm.Token); err != nil {
		return err
	}

	start := time.Now()
	for i := 0; i < benchOps; i++ {
		alloc, err := a.Alloc(benchSize)
		if err != nil {
			return err
		}
		if err := a.Free(alloc.Token); err != nil {
			return err
		}
	}
	elapsed := time.Since(start)

	pairs := float64(benchOps)
	printInfo("%d alloc/free pairs of %d bytes in %s\n", benchOps, benchSize, elapsed)
	printInfo("%.0f pairs/sec (%.1f ns/pair)\n",
		pairs/elapsed.Seconds(), float64(elapsed.Nanoseconds())/pairs)
	return nil
}
