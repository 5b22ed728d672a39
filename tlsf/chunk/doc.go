// Package chunk defines the backing-memory contract for the allocator.
//
// # Overview
//
// The allocator core never owns backing memory. Chunks of raw address space
// are obtained from a Provider, carved into blocks, and handed back only on
// reset. The core stores chunk ids and base addresses but never reads or
// writes the bytes behind them, so a Provider may hand out addresses the CPU
// cannot touch at all (device memory, GPU heaps).
//
// # Contract
//
// TryAllocate(minSize) must either fail or return a chunk whose size is a
// power of two, >= minSize, and >= the allocator's alignment. The id must be
// unique for the Provider's lifetime. Free releases one chunk and is called
// at most once per id.
//
// # Implementations
//
// SystemProvider: real memory from the operating system
//
//   - anonymous mmap on unix-like systems, VirtualAlloc on Windows
//   - sizes rounded up to the next power of two
//   - Close releases every mapping still outstanding
//
// StaticProvider: deterministic address arithmetic, no real memory
//
//   - fixed first base address, bases advance by chunk size
//   - records Free calls for inspection
//   - optional failure injection
//
// StaticProvider backs the test suite and the demo workloads of tlsfctl and
// tlsfexplorer, where reproducible addresses matter more than usable memory.
package chunk
