//go:build windows

package chunk

import "golang.org/x/sys/windows"

// mapping wraps one VirtualAlloc region.
type mapping struct {
	addr uintptr
}

// mapRegion reserves and commits size bytes of page-aligned memory.
func mapRegion(size uint32) (mapping, error) {
	addr, err := windows.VirtualAlloc(0, uintptr(size),
		windows.MEM_COMMIT|windows.MEM_RESERVE,
		windows.PAGE_READWRITE)
	if err != nil {
		return mapping{}, err
	}
	return mapping{addr: addr}, nil
}

func (m mapping) base() uint64 {
	return uint64(m.addr)
}

func (m mapping) release() {
	// MEM_RELEASE frees the entire original reservation; size must be 0.
	_ = windows.VirtualFree(m.addr, 0, windows.MEM_RELEASE)
}
