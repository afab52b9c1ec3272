// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package rseqpool_test

import (
	"testing"

	"code.hybscloud.com/rseqpool"
)

func TestHandle_ZeroIsInvalid(t *testing.T) {
	var h rseqpool.Handle
	if h.Valid() {
		t.Fatal("zero Handle reported Valid()")
	}
}

func TestHandle_MallocReturnsValid(t *testing.T) {
	pool, err := rseqpool.CreatePool(16, rseqpool.NewAttr())
	if err != nil {
		t.Fatalf("CreatePool: %v", err)
	}
	defer pool.Destroy()

	h, err := pool.Malloc()
	if err != nil {
		t.Fatalf("Malloc: %v", err)
	}
	if !h.Valid() {
		t.Fatal("handle from Malloc reported !Valid()")
	}
}
