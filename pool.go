// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package rseqpool

import (
	"sync"
	"unsafe"

	"code.hybscloud.com/rseqpool/internal"
	"code.hybscloud.com/rseqpool/internal/abi"
	"code.hybscloud.com/rseqpool/internal/bitmap"
	"code.hybscloud.com/rseqpool/numa"
)

// pointerSize is the smallest item size this allocator accepts: a freed
// slot stores a free-list link at its replica-0 address, so it must hold
// at least one machine word.
const pointerSize = unsafe.Sizeof(uintptr(0))

// noFreeHead marks an empty free list. Strides are page-aligned and far
// smaller than the maximum uintptr, so this offset can never be live.
const noFreeHead = ^uintptr(0)

// Pool owns one virtual range of stride×maxCPUs bytes, divided into
// maxCPUs equal CPU strips, each further divided into fixed-size slots.
// A Pool with maxCPUs==1 is a global pool: conventional, non-replicated
// allocation semantics.
//
// All exported methods are safe for concurrent use. Malloc, Zmalloc, and
// Free serialize on the pool's own mutex; Replica is pure arithmetic and
// never blocks.
type Pool struct {
	_ noCopy

	base      []byte
	provider  MemoryProvider
	index     poolIndex
	itemSize  uintptr
	itemOrder uint
	stride    uintptr
	maxCPUs   int
	robust    bool

	// pad separates the cold identity fields above (set once at creation,
	// read-only afterwards) from the fields below that Malloc, Zmalloc, and
	// Free contend on, so the two groups do not share a cache line. See the
	// C5 entry in DESIGN.md.
	_ [internal.CacheLineSize]byte

	mu       sync.Mutex
	bump     uintptr
	freeHead uintptr
	bitmap   *bitmap.Bitmap
}

// CreatePool validates attr, reserves attr's memory provider's backing
// range, and returns a live pool of the given item size. item size is
// rounded up to a power of two no smaller than a machine word.
//
// Errors: ErrInvalid for malformed attr (stride too large, item size
// larger than stride); ErrNoMemory if the registry has no free index or
// the provider's Map fails (provider errors beyond ErrNoMemory propagate
// verbatim, unwrapped).
func CreatePool(itemSize int, attr *Attr) (pool *Pool, err error) {
	if attr == nil {
		attr = NewAttr()
	}
	if itemSize <= 0 {
		return nil, ErrInvalid
	}
	size := pointerSize
	order := uint(abi.MinOrder)
	for size < uintptr(itemSize) {
		size <<= 1
		order++
	}

	stride := attr.stride
	if stride == 0 {
		stride = defaultStride()
	}
	stride = alignUp(stride, PageSize)

	maxCPUs := attr.maxCPUs
	if maxCPUs < 1 {
		return nil, ErrInvalid
	}
	if size > stride || stride > abi.MaxStride {
		return nil, ErrInvalid
	}

	provider := attr.provider
	if provider == nil {
		provider = defaultProvider{}
	}

	p := &Pool{
		provider:  provider,
		itemSize:  size,
		itemOrder: order,
		stride:    stride,
		maxCPUs:   maxCPUs,
		robust:    attr.robust,
		freeHead:  noFreeHead,
	}

	idx, err := globalRegistry.acquire(p)
	if err != nil {
		return nil, err
	}
	p.index = idx

	total := stride * uintptr(maxCPUs)
	base, err := provider.Map(int(total))
	if err != nil {
		globalRegistry.release(idx)
		return nil, err
	}
	p.base = base

	if attr.robust {
		p.bitmap = bitmap.New(int(stride / size))
	}

	if attr.init != nil {
		for cpu := 0; cpu < maxCPUs; cpu++ {
			off := stride * uintptr(cpu)
			attr.init(base[off:off+stride], cpu)
		}
	}

	return p, nil
}

// alignUp rounds v up to the next multiple of align, which must be a
// power of two.
func alignUp(v, align uintptr) uintptr {
	return (v + align - 1) &^ (align - 1)
}

// Index returns the pool's registry index, the value packed into the high
// bits of every Handle this pool hands out.
func (p *Pool) Index() int { return int(p.index) }

// ItemSize returns the pool's slot size in bytes, after power-of-two
// rounding.
func (p *Pool) ItemSize() int { return int(p.itemSize) }

// Stride returns the byte distance between one CPU's replicas and the
// next.
func (p *Pool) Stride() uintptr { return p.stride }

// MaxCPUs returns the number of replicas each slot has.
func (p *Pool) MaxCPUs() int { return p.maxCPUs }

// Malloc reserves one slot and returns a Handle to it. Memory is not
// zeroed: replicas may still hold a previous occupant's data. Returns
// ErrNoMemory if the pool is exhausted.
func (p *Pool) Malloc() (Handle, error) {
	offset, err := p.malloc()
	if err != nil {
		return 0, err
	}
	return encodeHandle(p.index, offset), nil
}

// Zmalloc is Malloc, but before returning it zeroes item_size bytes at
// every CPU's replica of the slot. The zeroing pass runs outside the
// pool's mutex — the slot is already reserved — so it is linear in
// MaxCPUs but never a point of contention with other Malloc/Free calls.
func (p *Pool) Zmalloc() (Handle, error) {
	offset, err := p.malloc()
	if err != nil {
		return 0, err
	}
	for cpu := 0; cpu < p.maxCPUs; cpu++ {
		dst := p.base[p.stride*uintptr(cpu)+offset : p.stride*uintptr(cpu)+offset+p.itemSize]
		clear(dst)
	}
	return encodeHandle(p.index, offset), nil
}

func (p *Pool) malloc() (uintptr, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.freeHead != noFreeHead {
		offset := p.freeHead
		p.freeHead = *(*uintptr)(p.replica0(offset))
		if p.robust {
			p.bitmap.MarkLive(int(offset >> p.itemOrder))
		}
		return offset, nil
	}

	if p.bump+p.itemSize > p.stride {
		return 0, ErrNoMemory
	}
	offset := p.bump
	p.bump += p.itemSize
	if p.robust {
		p.bitmap.MarkLive(int(offset >> p.itemOrder))
	}
	return offset, nil
}

// Free returns h's slot to its pool, resolving the owning pool from h's
// encoded registry index — matching the original allocator's free(handle),
// which never takes a pool argument at all. h must have been returned by a
// Malloc/Zmalloc call on a pool that is still live; freeing a handle twice
// in robust mode panics (see internal/bitmap).
func Free(h Handle) {
	idx, offset := h.decode()
	pool := globalRegistry.lookup(idx)
	if pool == nil {
		panic("rseqpool: free of handle from a destroyed or unknown pool")
	}
	pool.free(offset)
}

func (p *Pool) free(offset uintptr) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.robust {
		p.bitmap.MarkFree(int(offset >> p.itemOrder))
	}
	node := p.replica0(offset)
	*(*uintptr)(node) = p.freeHead
	p.freeHead = offset
}

// Replica returns the address of cpu's copy of h's slot, as a byte slice
// of length ItemSize. It is pure arithmetic: no lock is taken, and it is
// safe to call from any thread at any time as long as the owning pool has
// not been destroyed. Racing Replica against Destroy is undefined, as is
// true of every other operation in this package.
func (p *Pool) Replica(h Handle, cpu int) []byte {
	_, offset := h.decode()
	start := p.stride*uintptr(cpu) + offset
	return p.base[start : start+p.itemSize]
}

// Replica resolves h's owning pool from its encoded registry index and
// returns cpu's copy of its slot. Prefer this over Pool.Replica when the
// caller only has a Handle, not a *Pool — e.g. an upper layer that
// persists handles without keeping every pool pointer around.
func Replica(h Handle, cpu int) []byte {
	idx, _ := h.decode()
	pool := globalRegistry.lookup(idx)
	if pool == nil {
		panic("rseqpool: replica of handle from a destroyed or unknown pool")
	}
	return pool.Replica(h, cpu)
}

func (p *Pool) replica0(offset uintptr) unsafe.Pointer {
	return unsafe.Pointer(&p.base[offset])
}

// InitNUMA migrates each CPU strip to the NUMA node local to that CPU.
// On a platform or kernel build without NUMA support this returns
// numa.ErrNotSupported rather than acting as a silent no-op, per the
// Open Question resolution recorded in DESIGN.md. A zero flags value is a
// no-op returning nil, matching the original allocator's behavior when
// called with no NUMA flags set. Flags other than numa.MovePrivatePages and
// numa.MoveSharedPages are rejected with ErrInvalid.
func (p *Pool) InitNUMA(flags numa.Flags) error {
	if flags&^(numa.MovePrivatePages|numa.MoveSharedPages) != 0 {
		return ErrInvalid
	}
	return numa.Place(p.base, p.stride, p.maxCPUs, PageSize, flags)
}

// Destroy releases the pool's backing memory and its registry slot.
// Returns ErrNotFound if the pool is not live (already destroyed). In
// robust mode, Destroy panics if any allocation is still outstanding —
// per SPEC_FULL.md §7, a live bit at destroy means leaked allocator state,
// which is a programmer bug rather than a recoverable error.
//
// Any access to a Handle drawn from a destroyed pool is undefined.
func (p *Pool) Destroy() error {
	return globalRegistry.destroy(p.index, func() error {
		if err := p.provider.Unmap(p.base); err != nil {
			return err
		}
		if p.robust {
			p.bitmap.AssertClear()
		}
		return nil
	})
}
