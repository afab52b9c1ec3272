// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package rseqpool

// InitFunc is called once per CPU strip during pool creation, after the
// strip's memory is mapped but before CreatePool returns. It must not call back
// into this package. addr/length describe the strip's byte range; cpu is
// the strip's CPU index.
type InitFunc func(addr []byte, cpu int)

// Attr is a builder for pool-creation parameters. It is transient: its
// fields are copied into the Pool at CreatePool time, and the caller keeps
// ownership of the Attr value afterward — mutating or discarding it has no
// effect on any pool already created from it.
//
// An Attr as returned by NewAttr describes a global pool (one replica,
// max_cpus=1) of the default stride, the default memory provider, no init
// callback, and robust mode off. A zero Attr has max_cpus=0, which
// CreatePool rejects with ErrInvalid.
type Attr struct {
	_ noCopy

	stride   uintptr
	maxCPUs  int
	provider MemoryProvider
	init     InitFunc
	robust   bool
}

// NewAttr returns an empty Attr with the defaults documented on Attr.
func NewAttr() *Attr {
	return &Attr{
		stride:   0,
		maxCPUs:  1,
		provider: nil,
		init:     nil,
		robust:   false,
	}
}

// WithGlobal sets the pool type to global (max_cpus=1, conventional
// non-replicated allocation semantics) with the given stride. A stride of
// 0 uses the package default page size.
func (a *Attr) WithGlobal(stride uintptr) *Attr {
	a.stride = stride
	a.maxCPUs = 1
	return a
}

// WithPerCPU sets the pool type to per-CPU, replicating each slot across
// maxCPUs strips of the given stride.
func (a *Attr) WithPerCPU(stride uintptr, maxCPUs int) *Attr {
	a.stride = stride
	a.maxCPUs = maxCPUs
	return a
}

// WithProvider sets the memory provider used to reserve and release the
// pool's virtual range. If unset, CreatePool uses the default anonymous-mmap
// provider.
func (a *Attr) WithProvider(p *MemoryProviderAttr) *Attr {
	a.provider = p.provider
	return a
}

// WithInit sets the callback invoked once per CPU strip at creation time.
func (a *Attr) WithInit(f InitFunc) *Attr {
	a.init = f
	return a
}

// WithRobust enables the occupancy bitmap and its double-free/leak
// assertions.
func (a *Attr) WithRobust() *Attr {
	a.robust = true
	return a
}
