package tlsf

import (
	"io"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Stats holds cumulative operation counters for instrumentation and tests.
type Stats struct {
	AllocCalls         int   `json:"alloc_calls"`
	FreeCalls          int   `json:"free_calls"`
	Splits             int   `json:"splits"`
	CoalesceForward    int   `json:"coalesce_forward"`
	CoalesceBackward   int   `json:"coalesce_backward"`
	ChunkAcquisitions  int   `json:"chunk_acquisitions"`
	DescriptorRecycles int   `json:"descriptor_recycles"`
	Resets             int   `json:"resets"`
	BytesAllocated     int64 `json:"bytes_allocated"`
	BytesFreed         int64 `json:"bytes_freed"`
}

// Stats returns a copy of the allocator's counters.
func (a *Allocator) Stats() Stats { return a.stats }

// FormatStats writes the counters with grouped digits, one per line.
func FormatStats(w io.Writer, s Stats) error {
	p := message.NewPrinter(language.English)
	rows := []struct {
		label string
		value int64
	}{
		{"alloc calls", int64(s.AllocCalls)},
		{"free calls", int64(s.FreeCalls)},
		{"splits", int64(s.Splits)},
		{"coalesce forward", int64(s.CoalesceForward)},
		{"coalesce backward", int64(s.CoalesceBackward)},
		{"chunk acquisitions", int64(s.ChunkAcquisitions)},
		{"descriptor recycles", int64(s.DescriptorRecycles)},
		{"resets", int64(s.Resets)},
		{"bytes allocated", s.BytesAllocated},
		{"bytes freed", s.BytesFreed},
	}
	for _, r := range rows {
		if _, err := p.Fprintf(w, "%-20s %d\n", r.label+":", r.value); err != nil {
			return err
		}
	}
	return nil
}
