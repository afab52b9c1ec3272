// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package rseqpool_test

import (
	"testing"

	"code.hybscloud.com/rseqpool"
)

func TestPoolSet_MallocDispatchesToSmallestFittingClass(t *testing.T) {
	set := rseqpool.NewPoolSet()
	defer set.Destroy()

	small, err := rseqpool.CreatePool(64, rseqpool.NewAttr())
	if err != nil {
		t.Fatalf("CreatePool(64): %v", err)
	}
	if err := set.Add(small); err != nil {
		t.Fatalf("Add(64): %v", err)
	}
	large, err := rseqpool.CreatePool(256, rseqpool.NewAttr())
	if err != nil {
		t.Fatalf("CreatePool(256): %v", err)
	}
	if err := set.Add(large); err != nil {
		t.Fatalf("Add(256): %v", err)
	}

	h, err := set.Malloc(40)
	if err != nil {
		t.Fatalf("Malloc(40): %v", err)
	}
	if got := len(rseqpool.Replica(h, 0)); got != 64 {
		t.Fatalf("expected the 64-byte class to serve a 40-byte request, got slot size %d", got)
	}
}

// TestPoolSet_WidensOnExhaustion covers S4: once the smallest fitting class
// is exhausted, Malloc retries against the next larger class instead of
// failing outright.
func TestPoolSet_WidensOnExhaustion(t *testing.T) {
	set := rseqpool.NewPoolSet()
	defer set.Destroy()

	small, err := rseqpool.CreatePool(64, rseqpool.NewAttr())
	if err != nil {
		t.Fatalf("CreatePool(64): %v", err)
	}
	if err := set.Add(small); err != nil {
		t.Fatalf("Add(64): %v", err)
	}
	large, err := rseqpool.CreatePool(256, rseqpool.NewAttr())
	if err != nil {
		t.Fatalf("CreatePool(256): %v", err)
	}
	if err := set.Add(large); err != nil {
		t.Fatalf("Add(256): %v", err)
	}

	slots := small.Stride() / uintptr(small.ItemSize())
	for i := uintptr(0); i < slots; i++ {
		if _, err := small.Malloc(); err != nil {
			t.Fatalf("priming small pool, alloc %d/%d: %v", i, slots, err)
		}
	}

	h, err := set.Malloc(40)
	if err != nil {
		t.Fatalf("Malloc(40) after small pool exhausted: %v", err)
	}
	if got := len(rseqpool.Replica(h, 0)); got != 256 {
		t.Fatalf("expected widening to the 256-byte class, got slot size %d", got)
	}
}

func TestPoolSet_MallocFailsWhenNoClassFits(t *testing.T) {
	set := rseqpool.NewPoolSet()
	defer set.Destroy()

	small, err := rseqpool.CreatePool(64, rseqpool.NewAttr())
	if err != nil {
		t.Fatalf("CreatePool(64): %v", err)
	}
	if err := set.Add(small); err != nil {
		t.Fatalf("Add(64): %v", err)
	}

	if _, err := set.Malloc(4096); err == nil {
		t.Fatal("expected ErrNoMemory when no size class fits the request")
	}
}

func TestPoolSet_AddSameClassTwiceFails(t *testing.T) {
	set := rseqpool.NewPoolSet()
	defer set.Destroy()

	p1, err := rseqpool.CreatePool(64, rseqpool.NewAttr())
	if err != nil {
		t.Fatalf("CreatePool: %v", err)
	}
	if err := set.Add(p1); err != nil {
		t.Fatalf("first Add: %v", err)
	}

	p2, err := rseqpool.CreatePool(64, rseqpool.NewAttr())
	if err != nil {
		t.Fatalf("CreatePool: %v", err)
	}
	defer p2.Destroy()
	if err := set.Add(p2); err == nil {
		t.Fatal("expected ErrBusy adding a second pool to an occupied size class")
	}
}
