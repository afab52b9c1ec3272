// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package numa implements the optional post-allocation step that migrates
// each per-CPU page strip of a pool to the NUMA node local to its CPU. It
// is deliberately independent of the pool package so that non-NUMA,
// non-Linux builds can compile a no-op stub via build tags rather than
// carrying cgo or libnuma bindings into every build.
package numa

import "errors"

// Flags selects which kinds of pages move_pages(2) is allowed to migrate.
// These mirror the flag word accepted by the Linux syscall.
type Flags uint32

const (
	// MovePrivatePages allows migrating pages that are not shared with
	// another process.
	MovePrivatePages Flags = 1 << (iota + 1)
	// MoveSharedPages allows migrating pages that are shared with
	// another process; requires CAP_SYS_NICE for pages not owned by
	// the caller.
	MoveSharedPages
)

// ErrNotSupported is returned by Place on a platform or kernel build
// without NUMA facilities, matching the original allocator's
// rseq_percpu_pool_init_numa non-NUMA stub, which is a no-op returning 0.
// Place instead returns this error so callers can distinguish "nothing to
// do" from "something went wrong" — see the Open Question resolution in
// DESIGN.md (init_numa's return type).
var ErrNotSupported = errors.New("numa: not supported on this platform")

// Place migrates every page of each CPU's strip — base[cpu*stride :
// (cpu+1)*stride], for cpu in [0, maxCPUs) — to the NUMA node local to
// that CPU, using pageSize-sized batches. flags is passed through to the
// underlying migration primitive unchanged.
//
// If flags is zero, Place is a no-op returning nil, matching the
// original's "if (!numa_flags) return 0" short-circuit.
func Place(base []byte, stride uintptr, maxCPUs int, pageSize uintptr, flags Flags) error {
	if flags == 0 {
		return nil
	}
	return place(base, stride, maxCPUs, pageSize, flags)
}

// PlaceStrip migrates every page of addr, a single CPU's strip, to cpu's
// local NUMA node. It is the per-strip counterpart to Place, matching the
// original allocator's rseq_mempool_range_init_numa: "a helper which can be
// used from mempool_attr's init_func to move a CPU memory range to the
// NUMA node associated to its topology." Use this from an Attr.WithInit
// callback, which is handed exactly one (addr, cpu) pair per call and has
// no view of the pool's other strips — Place requires the whole base
// range and cannot be driven from inside that callback.
//
// If flags is zero, PlaceStrip is a no-op returning nil, matching Place.
func PlaceStrip(addr []byte, cpu int, pageSize uintptr, flags Flags) error {
	if flags == 0 {
		return nil
	}
	return placeStrip(addr, cpu, pageSize, flags)
}
