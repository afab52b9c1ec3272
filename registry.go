// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package rseqpool

import (
	"sync"
	"sync/atomic"

	"code.hybscloud.com/rseqpool/internal/abi"
)

// registry is the process-wide table of live pools, indexed by the same
// small integer packed into the high bits of every Handle. It is
// intentionally a fixed array rather than a map: the index is also the
// handle's top bits, so a lookup on the fast path must be a single indexed
// load, never a hash computation.
//
// Entry 0 is permanently reserved so a zero Handle never resolves to a
// live pool. lookup is lock-free; only acquire/release (pool create/destroy)
// take the lock.
type registry struct {
	mu      sync.Mutex
	entries [1 << abi.IndexBits]atomic.Pointer[Pool]
}

var globalRegistry registry

// acquire finds a free registry slot, installs p there, and returns the
// slot's index. It returns ErrNoMemory if every slot is occupied.
//
// TODO: the registry never grows past 1<<abi.IndexBits entries; a caller
// that exhausts it today gets ErrNoMemory rather than a dynamically grown
// table. See the Open Question recorded in DESIGN.md before changing this.
func (r *registry) acquire(p *Pool) (poolIndex, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := 1; i < len(r.entries); i++ {
		if r.entries[i].Load() == nil {
			r.entries[i].Store(p)
			return poolIndex(i), nil
		}
	}
	return 0, ErrNoMemory
}

// release clears the slot at idx, making it available for reuse by a
// future acquire. It takes the registry lock itself, so the caller must not
// hold it. CreatePool calls it to give the index back when the provider's
// Map fails; Pool.Destroy clears its slot through destroy instead.
func (r *registry) release(idx poolIndex) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[idx].Store(nil)
}

// destroy runs fn (the provider Unmap plus the robust-mode leak assertion)
// while holding the registry lock, then clears the slot — matching
// the pool-destroy sequence "under the registry lock: verify live, unmap,
// release". Returns ErrNotFound if idx is already empty.
func (r *registry) destroy(idx poolIndex, fn func() error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.entries[idx].Load() == nil {
		return ErrNotFound
	}
	if err := fn(); err != nil {
		return err
	}
	r.entries[idx].Store(nil)
	return nil
}

// lookup resolves idx to its live pool, or nil if idx names an empty slot.
// Lock-free: a caller presenting a Handle is assumed to be racing only
// against pool_destroy of pools it does not itself hold, which is outside
// this library's concurrency contract (see SPEC_FULL.md §5).
func (r *registry) lookup(idx poolIndex) *Pool {
	if int(idx) <= 0 || int(idx) >= len(r.entries) {
		return nil
	}
	return r.entries[idx].Load()
}
