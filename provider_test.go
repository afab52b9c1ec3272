// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package rseqpool_test

import (
	"testing"

	"code.hybscloud.com/rseqpool"
)

// heapProvider backs pools with plain Go heap memory instead of an mmap
// mapping, exercising MemoryProvider as an extension point independent of
// the default provider.
type heapProvider struct {
	unmapped int
}

func (p *heapProvider) Map(length int) ([]byte, error) {
	return make([]byte, length), nil
}

func (p *heapProvider) Unmap(b []byte) error {
	p.unmapped++
	return nil
}

func TestMemoryProvider_CustomProviderIsUsed(t *testing.T) {
	provider := &heapProvider{}
	attr := rseqpool.NewAttr().WithProvider(rseqpool.NewMemoryProviderAttr(provider))

	pool, err := rseqpool.CreatePool(8, attr)
	if err != nil {
		t.Fatalf("CreatePool: %v", err)
	}

	h, err := pool.Malloc()
	if err != nil {
		t.Fatalf("Malloc: %v", err)
	}
	rseqpool.Free(h)

	if err := pool.Destroy(); err != nil {
		t.Fatalf("Destroy: %v", err)
	}
	if provider.unmapped != 1 {
		t.Fatalf("expected Unmap called once, got %d", provider.unmapped)
	}
}
