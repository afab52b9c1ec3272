// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package rseqpool

import (
	"sync"

	"code.hybscloud.com/rseqpool/internal/abi"
)

// PoolSet is a sparse collection of pools covering a range of power-of-two
// size classes, used as a variable-length front end over fixed-size Pools.
// At most one pool may occupy a given item_order. Ownership of every pool
// added to a PoolSet transfers to the set: PoolSet.Destroy destroys every
// pool it contains.
type PoolSet struct {
	_ noCopy

	mu      sync.Mutex
	entries [abi.WordBits]*Pool
}

// NewPoolSet returns an empty PoolSet.
func NewPoolSet() *PoolSet {
	return &PoolSet{}
}

// Add inserts pool at the size class matching pool.ItemSize, taking
// ownership of it. Returns ErrBusy if that size class is already
// occupied — the caller keeps ownership of pool in that case and must
// Destroy it itself.
func (s *PoolSet) Add(pool *Pool) error {
	order := pool.itemOrder
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.entries[order] != nil {
		return ErrBusy
	}
	s.entries[order] = pool
	return nil
}

// Malloc dispatches to the smallest present pool whose item size is at
// least len, retrying at the next larger size class if that pool is
// exhausted. Returns ErrNoMemory if no size class from ceil_log2(len)
// upward has a pool with room.
func (s *PoolSet) Malloc(length int) (Handle, error) {
	return s.alloc(length, false)
}

// Zmalloc is Malloc, but the returned handle's slot is zeroed on every
// CPU replica before return — see Pool.Zmalloc.
func (s *PoolSet) Zmalloc(length int) (Handle, error) {
	return s.alloc(length, true)
}

func (s *PoolSet) alloc(length int, zeroed bool) (Handle, error) {
	if length <= 0 {
		return 0, ErrInvalid
	}
	minOrder := countOrder(length)
	if minOrder < abi.MinOrder {
		minOrder = abi.MinOrder
	}

	for {
		pool, foundOrder := s.findFrom(minOrder)
		if pool == nil {
			return 0, ErrNoMemory
		}
		var h Handle
		var err error
		if zeroed {
			h, err = pool.Zmalloc()
		} else {
			h, err = pool.Malloc()
		}
		if err == nil {
			return h, nil
		}
		if err != ErrNoMemory {
			return 0, err
		}
		// This size class is full: widen the search starting from the
		// order just past the one that just failed, matching the
		// original allocator's retry loop (see SPEC_FULL.md §12).
		minOrder = foundOrder + 1
	}
}

// findFrom scans entries[start:] under the set mutex only long enough to
// pick a candidate pool; the caller performs the actual Malloc/Zmalloc
// after releasing this lock, so set-level contention never serializes
// per-pool allocation activity.
func (s *PoolSet) findFrom(start uint) (pool *Pool, order uint) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for o := start; o < uint(len(s.entries)); o++ {
		if s.entries[o] != nil {
			return s.entries[o], o
		}
	}
	return nil, 0
}

// countOrder returns the smallest order such that 1<<order >= n.
func countOrder(n int) uint {
	order := uint(0)
	v := uintptr(1)
	for v < uintptr(n) {
		v <<= 1
		order++
	}
	return order
}

// Destroy destroys every pool in the set, in ascending size-class order,
// stopping at the first failure and reporting it.
func (s *PoolSet) Destroy() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for o := range s.entries {
		pool := s.entries[o]
		if pool == nil {
			continue
		}
		if err := pool.Destroy(); err != nil {
			return err
		}
		s.entries[o] = nil
	}
	return nil
}
