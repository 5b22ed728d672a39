package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	args := os.Args[1:]

	workload := "mixed"
	seed := int64(1)
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--help", "-h":
			printHelp()
			os.Exit(0)
		case "--version", "-v":
			fmt.Printf("tlsfexplorer %s\n", version)
			fmt.Printf("  commit: %s\n", commit)
			fmt.Printf("  built: %s\n", date)
			os.Exit(0)
		case "--workload", "-w":
			if i+1 >= len(args) {
				fmt.Fprintln(os.Stderr, "Error: --workload needs an argument")
				os.Exit(1)
			}
			i++
			workload = args[i]
		default:
			fmt.Fprintf(os.Stderr, "Error: unknown argument %q\n\n", args[i])
			printUsage()
			os.Exit(1)
		}
	}

	m, err := newModel(workload, seed)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Usage: tlsfexplorer [--workload <name>]")
	fmt.Println("Run 'tlsfexplorer --help' for more information.")
}

func printHelp() {
	fmt.Println(`tlsfexplorer - interactive TLSF allocator state browser

Runs a scripted workload against a deterministic allocator and lets you
walk the resulting chunks and blocks.

Usage:
  tlsfexplorer [--workload <name>]

Workloads:
  mixed        allocations of varied sizes with some frees (default)
  churn        heavy allocate/free cycling, fragmented state
  pristine     allocations only, no frees

Options:
  -w, --workload <name>   Workload to run before opening the browser
  -h, --help              Show this help
  -v, --version           Show version information

Keys:
  up/k, down/j    move selection
  tab             switch between chunk and block panes
  r               re-run the workload
  q               quit`)
}
