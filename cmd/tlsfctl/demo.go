package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/joshuapare/tlsfkit/tlsf"
	"github.com/joshuapare/tlsfkit/tlsf/chunk"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newDemoCmd())
}

func newDemoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "demo <script>",
		Short: "Run a scripted workload and dump the allocator state",
		Long: `The demo command runs one of the built-in scripted workloads against a
deterministic chunk provider and prints the resulting allocator state.

Run without arguments to list the available scripts.

Example:
  tlsfctl demo coalesce
  tlsfctl demo spill --json
  tlsfctl demo single -v`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return listDemos()
			}
			return runDemo(args[0])
		},
	}
	return cmd
}

func listDemos() error {
	names := make([]string, 0, len(demoScripts))
	for name := range demoScripts {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		printInfo("%-10s %s\n", name, demoScripts[name].Description)
	}
	return nil
}

func runDemo(name string) error {
	script, ok := demoScripts[name]
	if !ok {
		return fmt.Errorf("unknown demo %q (run \"tlsfctl demo\" for the list)", name)
	}

	prov := chunk.NewStatic(65536)
	a, err := tlsf.New(prov, &tlsf.Options{Alignment: script.Alignment})
	if err != nil {
		return err
	}

	printVerbose("running %q: %s\n", name, script.Description)
	if err := runScript(a, script); err != nil {
		return err
	}

	if jsonOut {
		return printJSON(a.Snapshot())
	}
	return a.Dump(os.Stdout)
}
