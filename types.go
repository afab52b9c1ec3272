// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package rseqpool

// PageSize is the memory page size. Every pool's stride, explicit or
// default, is rounded up to a multiple of it, and it is the default stride
// when Attr does not specify one.
var PageSize uintptr = 4096

// SetPageSize updates the package-level page size. It affects pools created
// afterwards, with or without an explicit stride; existing pools keep the
// stride they were created with.
func SetPageSize(size int) {
	PageSize = uintptr(size)
}

// defaultStride is the stride used when Attr's stride is 0: one page,
// enough for small fixed-size objects.
func defaultStride() uintptr {
	return PageSize
}

// noCopy is a sentinel used to prevent copying of types that embed a mutex
// or other synchronization state. go vet's copylocks check flags any value
// holding a noCopy as soon as it is passed by value.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}
