// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build !linux

package numa

// place is the non-Linux stub: no page-migration syscall exists, so this
// always reports ErrNotSupported.
func place(base []byte, stride uintptr, maxCPUs int, pageSize uintptr, flags Flags) error {
	return ErrNotSupported
}

// placeStrip is the non-Linux stub for a single CPU strip. Always
// ErrNotSupported.
func placeStrip(addr []byte, cpu int, pageSize uintptr, flags Flags) error {
	return ErrNotSupported
}

// NodeOfCPU reports the NUMA node a CPU belongs to. Always ErrNotSupported
// outside Linux.
func NodeOfCPU(cpu int) (int, error) {
	return 0, ErrNotSupported
}
