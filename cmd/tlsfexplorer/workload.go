package main

import (
	"fmt"
	"math/rand"

	"github.com/joshuapare/tlsfkit/tlsf"
	"github.com/joshuapare/tlsfkit/tlsf/chunk"
)

// buildAllocator runs the named workload against a fresh allocator over a
// deterministic provider and returns it for browsing.
func buildAllocator(workload string, seed int64) (*tlsf.Allocator, error) {
	a, err := tlsf.New(chunk.NewStatic(65536), nil)
	if err != nil {
		return nil, err
	}
	rng := rand.New(rand.NewSource(seed))

	switch workload {
	case "mixed":
		var live []tlsf.Token
		for i := 0; i < 400; i++ {
			if len(live) == 0 || rng.Intn(100) < 65 {
				alloc, err := a.Alloc(uint32(rng.Intn(8000) + 1))
				if err != nil {
					return nil, err
				}
				live = append(live, alloc.Token)
			} else {
				j := rng.Intn(len(live))
				if err := a.Free(live[j]); err != nil {
					return nil, err
				}
				live[j] = live[len(live)-1]
				live = live[:len(live)-1]
			}
		}
	case "churn":
		var live []tlsf.Token
		for round := 0; round < 30; round++ {
			for i := 0; i < 50; i++ {
				alloc, err := a.Alloc(uint32(rng.Intn(2000) + 1))
				if err != nil {
					return nil, err
				}
				live = append(live, alloc.Token)
			}
			// Free every other allocation to leave holes.
			kept := live[:0]
			for i, tok := range live {
				if i%2 == 0 {
					if err := a.Free(tok); err != nil {
						return nil, err
					}
				} else {
					kept = append(kept, tok)
				}
			}
			live = kept
		}
	case "pristine":
		for i := 0; i < 200; i++ {
			if _, err := a.Alloc(uint32(rng.Intn(4000) + 1)); err != nil {
				return nil, err
			}
		}
	default:
		return nil, fmt.Errorf("unknown workload %q", workload)
	}
	return a, nil
}
