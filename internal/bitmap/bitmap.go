// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package bitmap implements the per-slot occupancy bitmap used by a pool's
// robust mode: one bit per slot, set while the slot is live. It exists only
// to support double-free and leak detection; it is never consulted on the
// Replica fast path.
package bitmap

import (
	"sync/atomic"

	"code.hybscloud.com/spin"
)

const wordBits = 64

// Bitmap is a fixed-size, word-packed, LSB-first occupancy bitmap.
// The zero value is not usable; construct with New.
type Bitmap struct {
	words []atomic.Uint64
	bits  int
}

// New allocates a Bitmap tracking n bits, all initially clear.
func New(n int) *Bitmap {
	if n <= 0 {
		return &Bitmap{}
	}
	count := (n + wordBits - 1) / wordBits
	return &Bitmap{words: make([]atomic.Uint64, count), bits: n}
}

// Len reports the number of bits tracked.
func (b *Bitmap) Len() int {
	return b.bits
}

// MarkLive sets bit i, which must currently be clear. It panics otherwise —
// a set bit at mark time means the offset was handed out twice, a corrupted
// free-list, or a caller bug; any of these make the pool's bookkeeping
// unreliable from this point on.
func (b *Bitmap) MarkLive(i int) {
	if b == nil {
		return
	}
	word, mask := i/wordBits, uint64(1)<<(uint(i)%wordBits)
	w := &b.words[word]
	sw := spin.Wait{}
	for {
		old := w.Load()
		if old&mask != 0 {
			panic("rseqpool: bitmap: double allocation of slot")
		}
		if w.CompareAndSwap(old, old|mask) {
			return
		}
		sw.Once()
	}
}

// MarkFree clears bit i, which must currently be set. It panics otherwise —
// this is the double-free detector.
func (b *Bitmap) MarkFree(i int) {
	if b == nil {
		return
	}
	word, mask := i/wordBits, uint64(1)<<(uint(i)%wordBits)
	w := &b.words[word]
	sw := spin.Wait{}
	for {
		old := w.Load()
		if old&mask == 0 {
			panic("rseqpool: bitmap: double free of slot")
		}
		if w.CompareAndSwap(old, old&^mask) {
			return
		}
		sw.Once()
	}
}

// AssertClear panics if any bit is still set. Called at pool destroy time
// in robust mode: a set bit there means a live allocation outlived its pool.
func (b *Bitmap) AssertClear() {
	if b == nil {
		return
	}
	for i := range b.words {
		if b.words[i].Load() != 0 {
			panic("rseqpool: bitmap: pool destroyed with live allocations")
		}
	}
}
