// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build linux

package numa

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unsafe"

	"golang.org/x/sys/unix"
)

// place migrates each page of every CPU strip to that CPU's NUMA node,
// calling placeStrip once per strip — matching the original allocator's
// per-page loop: pages are moved one move_pages(2) call at a time, not
// batched into one call per strip.
func place(base []byte, stride uintptr, maxCPUs int, pageSize uintptr, flags Flags) error {
	for cpu := 0; cpu < maxCPUs; cpu++ {
		off := stride * uintptr(cpu)
		if err := placeStrip(base[off:off+stride], cpu, pageSize, flags); err != nil {
			return err
		}
	}
	return nil
}

// placeStrip migrates every page of addr, a single CPU's strip, to cpu's
// local NUMA node via move_pages(2), one page per syscall. It is the
// primitive place's whole-pool loop calls, and is exported as
// numa.PlaceStrip for a caller that only has one strip at a time — an
// Attr.WithInit callback, which receives exactly one (addr, cpu) pair per
// invocation and no view of the other strips.
func placeStrip(addr []byte, cpu int, pageSize uintptr, flags Flags) error {
	if !movePagesSupported {
		return ErrNotSupported
	}
	if pageSize == 0 {
		return fmt.Errorf("numa: invalid page size")
	}
	node, err := NodeOfCPU(cpu)
	if err != nil {
		return err
	}
	nrPages := len(addr) / int(pageSize)
	for page := 0; page < nrPages; page++ {
		pagePtr := unsafe.Pointer(&addr[uintptr(page)*pageSize])
		if err := movePage(pagePtr, node, uint(flags)); err != nil {
			return err
		}
	}
	return nil
}

// movePage migrates the single page at addr to node using move_pages(2)
// against the calling process (pid 0).
func movePage(addr unsafe.Pointer, node int, flags uint) error {
	var (
		pages  = [1]unsafe.Pointer{addr}
		nodes  = [1]int32{int32(node)}
		status = [1]int32{0}
	)
	_, _, errno := unix.Syscall6(sysMovePages,
		0, // pid: calling process
		1, // count
		uintptr(unsafe.Pointer(&pages[0])),
		uintptr(unsafe.Pointer(&nodes[0])),
		uintptr(unsafe.Pointer(&status[0])),
		uintptr(flags),
	)
	if errno != 0 {
		return errno
	}
	return nil
}

// NodeOfCPU reports the NUMA node cpu belongs to by scanning
// /sys/devices/system/node/node*/cpulist. Returns ErrNotSupported if the
// system exposes no NUMA topology (single-node or non-NUMA kernel).
func NodeOfCPU(cpu int) (int, error) {
	matches, err := filepath.Glob("/sys/devices/system/node/node[0-9]*")
	if err != nil || len(matches) == 0 {
		return 0, ErrNotSupported
	}
	for _, dir := range matches {
		node, err := strconv.Atoi(strings.TrimPrefix(filepath.Base(dir), "node"))
		if err != nil {
			continue
		}
		list, err := readCPUList(filepath.Join(dir, "cpulist"))
		if err != nil {
			continue
		}
		if cpuInList(cpu, list) {
			return node, nil
		}
	}
	return 0, ErrNotSupported
}

// readCPUList parses a Linux cpulist file ("0-3,8,10-11\n") into ranges.
func readCPUList(path string) ([][2]int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var ranges [][2]int
	sc := bufio.NewScanner(f)
	if !sc.Scan() {
		return ranges, nil
	}
	for _, part := range strings.Split(strings.TrimSpace(sc.Text()), ",") {
		if part == "" {
			continue
		}
		lo, hi, ok := strings.Cut(part, "-")
		loN, err := strconv.Atoi(lo)
		if err != nil {
			continue
		}
		if !ok {
			ranges = append(ranges, [2]int{loN, loN})
			continue
		}
		hiN, err := strconv.Atoi(hi)
		if err != nil {
			continue
		}
		ranges = append(ranges, [2]int{loN, hiN})
	}
	return ranges, nil
}

func cpuInList(cpu int, ranges [][2]int) bool {
	for _, r := range ranges {
		if cpu >= r[0] && cpu <= r[1] {
			return true
		}
	}
	return false
}
