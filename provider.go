// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package rseqpool

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// MemoryProvider reserves and releases the contiguous virtual range backing
// one pool. Map must return len bytes of readable/writable,
// zero-on-first-access memory, page-aligned; custom providers (file-backed,
// huge-page-backed) must preserve that zero-on-first-touch contract since
// an unused slot's first read is expected to observe zero.
//
// Unmap must release exactly the slice Map returned. Implementations must
// not call back into this package: Pool.Destroy holds the registry lock
// across the Unmap call. CreatePool calls Map without holding it.
type MemoryProvider interface {
	Map(length int) ([]byte, error)
	Unmap(b []byte) error
}

// MemoryProviderAttr bundles a MemoryProvider with the small amount of
// bookkeeping Attr needs to hand it to a pool at creation time. It is kept
// distinct from Attr (see SPEC_FULL.md §12) so a caller who only wants to
// swap the backing store can build one without touching stride, max CPUs,
// robust mode, or the init callback.
type MemoryProviderAttr struct {
	provider MemoryProvider
}

// NewMemoryProviderAttr wraps provider for use with Attr.WithProvider.
func NewMemoryProviderAttr(provider MemoryProvider) *MemoryProviderAttr {
	return &MemoryProviderAttr{provider: provider}
}

// defaultProvider backs pools with anonymous private virtual memory via
// mmap(2)/munmap(2), matching the original allocator's default_mmap_func
// and default_munmap_func.
type defaultProvider struct{}

func (defaultProvider) Map(length int) ([]byte, error) {
	b, err := unix.Mmap(-1, 0, length, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANONYMOUS)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNoMemory, err)
	}
	return b, nil
}

func (defaultProvider) Unmap(b []byte) error {
	return unix.Munmap(b)
}
