// Package physmem models the byte-addressable physical RAM that backs the
// frames kernel/pmm hands out. On real hardware a frame's contents are
// reached by dereferencing its address directly, which the kernel directory
// can always do because it identity-maps all 4 GiB (spec.md §3(b)); a host
// test has no such memory to dereference, so this package stands in for it
// with a plain byte slice indexed by physical address, letting
// kernel/usercopy's page-by-page copy loop run unmodified on both hardware
// and in the test harness.
package physmem

import "coreos/kernel/errors"

var ram []byte

// Init (re)allocates the simulated RAM. Production boot code calls this once
// with the detected memory size; tests call it per-test to get isolated
// memory.
func Init(size int) {
	ram = make([]byte, size)
}

// ReadAt copies len(buf) bytes starting at physical address paddr into buf.
func ReadAt(paddr uintptr, buf []byte) *errors.KernelError {
	if paddr+uintptr(len(buf)) > uintptr(len(ram)) {
		return errors.New(errors.Io, "physmem", "read out of range")
	}
	copy(buf, ram[paddr:])
	return nil
}

// WriteAt copies buf into simulated RAM starting at physical address paddr.
func WriteAt(paddr uintptr, buf []byte) *errors.KernelError {
	if paddr+uintptr(len(buf)) > uintptr(len(ram)) {
		return errors.New(errors.Io, "physmem", "write out of range")
	}
	copy(ram[paddr:], buf)
	return nil
}

// ZeroAt clears n bytes of simulated RAM starting at physical address paddr,
// used to zero freshly allocated frames (spec.md S5: pages are
// zero-allocated on acquisition).
func ZeroAt(paddr uintptr, n int) *errors.KernelError {
	if paddr+uintptr(n) > uintptr(len(ram)) {
		return errors.New(errors.Io, "physmem", "zero out of range")
	}
	clear(ram[paddr : paddr+uintptr(n)])
	return nil
}

// Size reports the current simulated RAM size in bytes.
func Size() int {
	return len(ram)
}
