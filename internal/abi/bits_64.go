// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build amd64 || arm64 || loong64 || mips64 || mips64le || ppc64 || ppc64le || riscv64 || s390x || sparc64 || wasm

// Package abi defines the handle bit layout (pool-index bits vs. intra-pool
// offset bits) for the target architecture's word size. The split is a
// per-arch constant rather than a runtime value because it is baked into
// every handle a caller may have persisted for the life of the process.
package abi

// WordBits is the width in bits of a machine word (uintptr) on this target.
const WordBits = 64

// IndexBits is the number of high bits of a Handle reserved for the pool
// registry index. 16 bits allows up to 65535 live pools (index 0 reserved).
const IndexBits = 16

// Shift is the bit position at which the pool index begins.
const Shift = WordBits - IndexBits

// OffsetMask isolates the intra-pool offset bits of a Handle.
const OffsetMask = (uintptr(1) << Shift) - 1

// MaxStride is the largest stride representable by the offset bits.
const MaxStride = uintptr(1) << Shift

// MinOrder is the smallest item_order admitted into a PoolSet: the order
// that first fits a machine pointer, since the free-list node written into
// a freed slot is one word wide.
const MinOrder = 3
