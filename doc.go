// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package rseqpool implements a CPU-Local Storage (CLS) memory-pool
// allocator: fixed-size slots replicated per CPU, addressed through a
// single opaque Handle rather than a per-CPU set of pointers.
//
// # CPU-Local Storage
//
// A Pool reserves one contiguous virtual range of stride×maxCPUs bytes,
// divided into maxCPUs equal strips. Malloc/Zmalloc return a Handle; given
// any CPU index, Pool.Replica derives that CPU's copy of the slot by pure
// arithmetic — no indirection, no lock. This is the primitive beneath
// restartable-sequence (rseq) fast paths that need lock-free per-CPU state:
// counters, free-lists, and queues that upper layers build on top of a
// Handle without paying for per-access synchronization.
//
// # Handles
//
// A Handle packs a pool registry index into its high bits and an
// intra-pool byte offset into its low bits:
//
//	pool, err := rseqpool.CreatePool(16, rseqpool.NewAttr().WithPerCPU(65536, 4))
//	h, err := pool.Malloc()
//	replica2 := pool.Replica(h, 2)   // CPU 2's copy of the slot
//	rseqpool.Free(h)
//
// Index 0 is reserved, so the zero Handle is never returned by Malloc and
// never resolves to a live pool — it reliably means "no handle". A Handle
// is a distinct value type, not a pointer: nothing but Replica converts it
// to an address, and it is not portable across processes (see the ABI note
// in SPEC_FULL.md §6).
//
// # Pool sets
//
// PoolSet routes variable-length allocations to the smallest pool whose
// item size fits, widening to the next size class on exhaustion:
//
//	set := rseqpool.NewPoolSet()
//	small, _ := rseqpool.CreatePool(64, rseqpool.NewAttr())
//	_ = set.Add(small)
//	h, err := set.Malloc(40) // lands in the 64-byte size class
//
// # Robust mode
//
// Attr.WithRobust enables a per-slot occupancy bitmap that asserts against
// double-free (panics on a second Free of the same slot) and leaks
// (Pool.Destroy panics if any slot is still allocated). These are
// programmer-error detectors, not recoverable conditions — robust-mode
// violations indicate the allocator's own bookkeeping, and therefore any
// recovered error path, would already be meaningless.
//
// # NUMA placement
//
// Pool.InitNUMA migrates every CPU's strip to the NUMA node local to that
// CPU via numa.Place. A WithInit callback that wants to place just its own
// strip, rather than waiting for InitNUMA to walk the whole pool, can call
// numa.PlaceStrip directly with the (addr, cpu) pair it's handed. On
// platforms or kernel builds without NUMA support both return
// numa.ErrNotSupported rather than silently doing nothing.
//
// # Non-goals
//
// This is not a general-purpose heap: no coalescing, no size-class
// autobalancing, no objects larger than a pool's stride, no cross-pool
// slot migration, no thread-ownership tracking, no use-after-free
// detection outside robust-mode destroy, and no latency guarantee on the
// create/destroy slow path.
//
// # Dependencies
//
// rseqpool depends on:
//   - golang.org/x/sys/unix: anonymous-mmap memory provider, move_pages(2)
//     NUMA placement
//   - code.hybscloud.com/iox: semantic non-blocking error values, joined
//     into ErrNoMemory alongside the matching unix errno
//   - code.hybscloud.com/spin: spin-wait backoff between failed
//     compare-and-swap attempts on the occupancy bitmap
package rseqpool
