//go:build linux || freebsd || darwin

package chunk

import (
	"unsafe"

	"golang.org/x/sys/unix"
)

// mapping wraps one anonymous mmap region.
type mapping struct {
	buf []byte
}

// mapRegion maps size bytes of anonymous, page-aligned memory.
func mapRegion(size uint32) (mapping, error) {
	buf, err := unix.Mmap(-1, 0, int(size),
		unix.PROT_READ|unix.PROT_WRITE,
		unix.MAP_PRIVATE|unix.MAP_ANON)
	if err != nil {
		return mapping{}, err
	}
	return mapping{buf: buf}, nil
}

func (m mapping) base() uint64 {
	return uint64(uintptr(unsafe.Pointer(&m.buf[0])))
}

func (m mapping) release() {
	// Munmap only fails for addresses we did not map.
	_ = unix.Munmap(m.buf)
}
