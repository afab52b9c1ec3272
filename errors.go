// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package rseqpool

import (
	"fmt"

	"code.hybscloud.com/iox"
	"golang.org/x/sys/unix"
)

// Error kinds, one per row of SPEC_FULL.md §7. Each wraps the matching
// errno so callers can match with errors.Is against either the sentinel
// or the underlying unix errno, whichever they already know about.
var (
	// ErrInvalid reports malformed Attr fields: stride too large,
	// item size greater than stride, or an unrecognized flag.
	ErrInvalid = fmt.Errorf("rseqpool: invalid argument: %w", unix.EINVAL)

	// ErrNoMemory reports registry exhaustion, a failed mapping, or a
	// pool with no remaining slots. It also wraps iox.ErrWouldBlock:
	// pool exhaustion is, structurally, the same "resource unavailable
	// right now" condition iox's sentinel models for the teacher
	// package's bounded pools, so callers already matching on
	// iox.ErrWouldBlock compose with this package for free.
	ErrNoMemory = fmt.Errorf("rseqpool: out of resources: %w, %w", unix.ENOMEM, iox.ErrWouldBlock)

	// ErrNotFound reports Destroy called on a pool that is not live.
	ErrNotFound = fmt.Errorf("rseqpool: pool not found: %w", unix.ENOENT)

	// ErrBusy reports PoolSet.Add called for a size class that already
	// has a pool.
	ErrBusy = fmt.Errorf("rseqpool: size class occupied: %w", unix.EBUSY)

	// ErrNoNUMA is the sentinel for the "NUMA placement not supported"
	// error kind. The NUMA placer does not return it: Pool.InitNUMA and the
	// numa package report numa.ErrNotSupported, a distinct value.
	ErrNoNUMA = fmt.Errorf("rseqpool: NUMA placement not supported: %w", unix.ENOSYS)
)
