package main

import (
	"fmt"
	"math/rand"

	"github.com/joshuapare/tlsfkit/tlsf"
)

// demoStep is one scripted operation: an allocation when Size > 0,
// otherwise a free of the Free-th allocation made so far.
type demoStep struct {
	Size uint32
	Free int
}

// demoScript is a named scripted workload.
type demoScript struct {
	Alignment   uint32 // 0 = allocator default
	Description string
	Steps       []demoStep
}

var demoScripts = map[string]demoScript{
	"single": {
		Description: "one allocation, then free it",
		Steps:       []demoStep{{Size: 512}, {Free: 0}},
	},
	"coarse": {
		Description: "three allocations at 1024-byte alignment",
		Alignment:   1024,
		Steps:       []demoStep{{Size: 512}, {Size: 1024}, {Size: 1025}},
	},
	"overflow": {
		Description: "a request larger than the provider's default chunk",
		Steps:       []demoStep{{Size: 65541}},
	},
	"spill": {
		Description: "a fragmented bin forces a second chunk",
		Steps:       []demoStep{{Size: 960}, {Size: 65471}},
	},
	"coalesce": {
		Description: "four neighbours freed out of order merge back together",
		Steps: []demoStep{
			{Size: 64}, {Size: 64}, {Size: 64}, {Size: 64},
			{Free: 1}, {Free: 3}, {Free: 0}, {Free: 2},
		},
	},
}

// runScript executes a scripted workload against a fresh allocator.
func runScript(a *tlsf.Allocator, script demoScript) error {
	var tokens []tlsf.Token
	for i, step := range script.Steps {
		if step.Size > 0 {
			alloc, err := a.Alloc(step.Size)
			if err != nil {
				return fmt.Errorf("step %d: alloc %d: %w", i, step.Size, err)
			}
			printVerbose("alloc %d -> token=%d address=0x%x size=%d\n",
				step.Size, alloc.Token, alloc.Address, alloc.Size)
			tokens = append(tokens, alloc.Token)
			continue
		}
		if step.Free < 0 || step.Free >= len(tokens) {
			return fmt.Errorf("step %d: free references allocation %d of %d", i, step.Free, len(tokens))
		}
		if err := a.Free(tokens[step.Free]); err != nil {
			return fmt.Errorf("step %d: free: %w", i, err)
		}
		printVerbose("free allocation %d\n", step.Free)
	}
	return nil
}

// runRandom executes ops random operations, biased towards allocation, and
// returns the number of allocations still live.
func runRandom(a *tlsf.Allocator, ops int, seed int64, maxSize uint32) (int, error) {
	rng := rand.New(rand.NewSource(seed))
	var live []tlsf.Token
	for i := 0; i < ops; i++ {
		if len(live) == 0 || rng.Intn(100) < 60 {
			size := uint32(rng.Intn(int(maxSize))) + 1
			alloc, err := a.Alloc(size)
			if err != nil {
				return len(live), fmt.Errorf("op %d: alloc %d: %w", i, size, err)
			}
			live = append(live, alloc.Token)
		} else {
			j := rng.Intn(len(live))
			if err := a.Free(live[j]); err != nil {
				return len(live), fmt.Errorf("op %d: free: %w", i, err)
			}
			live[j] = live[len(live)-1]
			live = live[:len(live)-1]
		}
	}
	return len(live), nil
}
