package tlsf

import "errors"

var (
	// ErrInvalidAlignment indicates a configured alignment that is not a
	// power of two.
	ErrInvalidAlignment = errors.New("tlsf: alignment must be a power of two")

	// ErrChunkAllocFailed indicates the chunk provider refused to supply a
	// chunk large enough for the request.
	ErrChunkAllocFailed = errors.New("tlsf: chunk allocation failed")

	// ErrSizeOverflow indicates a request that exceeds the 32-bit size range
	// once rounded up to the alignment.
	ErrSizeOverflow = errors.New("tlsf: allocation size overflows 32 bits")

	// ErrZeroSize indicates an allocation request of zero bytes.
	ErrZeroSize = errors.New("tlsf: allocation size must be positive")

	// ErrBadToken indicates a free of a token that is out of range or whose
	// block is not currently in use. Detection is advisory: a stale token
	// whose descriptor has been reused for a new allocation is
	// indistinguishable from a valid one.
	ErrBadToken = errors.New("tlsf: token does not name a live allocation")
)
