// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package rseqpool

import "code.hybscloud.com/rseqpool/internal/abi"

// Handle is an opaque, process-local reference to a slot allocated from a
// Pool or PoolSet. It packs a pool registry index into the high
// abi.IndexBits bits and an intra-pool byte offset into the low bits.
//
// A Handle is a distinct value type, not a pointer: the Go runtime and
// garbage collector never interpret it as a reference, and nothing but
// Pool.Replica (and the package-level Replica) may turn it into an
// address. Do not store a Handle in a field of pointer type, and do not
// compare it across processes — see the ABI note in SPEC_FULL.md §6.
//
// The zero Handle is never returned by Malloc/Zmalloc: registry index 0 is
// permanently reserved so a zeroed Handle reliably means "no handle".
type Handle uintptr

// poolIndex is the registry index packed into a Handle.
type poolIndex uint32

func encodeHandle(idx poolIndex, offset uintptr) Handle {
	return Handle(uintptr(idx)<<abi.Shift | (offset & abi.OffsetMask))
}

func (h Handle) decode() (poolIndex, uintptr) {
	return poolIndex(uintptr(h) >> abi.Shift), uintptr(h) & abi.OffsetMask
}

// Valid reports whether h could have been returned by a live pool: its
// index must be nonzero. It does not verify that the pool is still alive.
func (h Handle) Valid() bool {
	idx, _ := h.decode()
	return idx != 0
}
