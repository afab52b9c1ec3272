// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build 386 || arm || mips || mipsle || armbe || mipsbe

package abi

// WordBits is the width in bits of a machine word (uintptr) on this target.
const WordBits = 32

// IndexBits is the number of high bits of a Handle reserved for the pool
// registry index. 8 bits allows up to 255 live pools (index 0 reserved) —
// see the registry exhaustion Open Question recorded in DESIGN.md.
const IndexBits = 8

// Shift is the bit position at which the pool index begins.
const Shift = WordBits - IndexBits

// OffsetMask isolates the intra-pool offset bits of a Handle.
const OffsetMask = (uintptr(1) << Shift) - 1

// MaxStride is the largest stride representable by the offset bits.
const MaxStride = uintptr(1) << Shift

// MinOrder is the smallest item_order admitted into a PoolSet: the order
// that first fits a machine pointer, since the free-list node written into
// a freed slot is one word wide.
const MinOrder = 2
