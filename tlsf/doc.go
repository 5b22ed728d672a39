// Package tlsf implements a Two-Level Segregated Fit dynamic memory
// allocator for real-time and embedded workloads.
//
// # Overview
//
// The allocator partitions large, provider-supplied memory chunks into
// variable-sized blocks and services allocate/free requests in bounded
// time: the segregation search is O(1) worst case, with at most one chunk
// acquisition amortised on top. Block metadata lives out-of-band in a
// descriptor pool owned by the allocator, so backing memory never has to be
// CPU-readable — chunks may come from device or GPU heaps.
//
// # Usage Example
//
//	prov := chunk.NewSystem()
//	defer prov.Close()
//
//	a, err := tlsf.New(prov, nil)
//	if err != nil {
//	    return err
//	}
//
//	alloc, err := a.Alloc(512)
//	if err != nil {
//	    return err
//	}
//
//	// alloc.Address is 64-byte aligned, alloc.Size >= 512.
//
//	if err := a.Free(alloc.Token); err != nil {
//	    return err
//	}
//
//	a.Reset() // hands every chunk back to the provider
//
// # Allocation behaviour
//
// Alloc rounds the request up to the configured alignment, maps it to a
// two-level size class, and takes the head of the first populated bin at or
// above that class. A block larger than the request is split: the low end
// becomes the allocation, the high end stays free under the original
// descriptor. When no bin can serve the request a new chunk is acquired
// from the provider and carved on the spot.
//
// Free eagerly coalesces with both physical neighbours; two adjacent free
// blocks never coexist. Descriptors retired by coalescing are recycled
// through an internal Available list, which keeps every outstanding Token
// stable.
//
// # Tokens
//
// A Token is the index of the allocation's block descriptor. Passing a
// token that is out of range or no longer in use to Free returns
// ErrBadToken, but the check is advisory: a stale token whose descriptor
// has since been handed to a new allocation cannot be told apart from a
// valid one.
//
// # Thread Safety
//
// Allocator instances are not thread-safe. Callers must synchronise access
// externally; per-goroutine instances are the intended concurrency story.
//
// # Related Packages
//
//   - github.com/joshuapare/tlsfkit/tlsf/chunk: backing-memory providers
//   - github.com/joshuapare/tlsfkit/tlsf/binmap: the two-level size index
//   - github.com/joshuapare/tlsfkit/tlsf/verify: invariant validation
package tlsf
