// Package usercopy implements the only legal way kernel code reads or writes
// a user process's memory (spec.md §4.7, C9): a page-by-page temporary
// mapping dance that never assumes the kernel's own address space already
// contains the user's pages.
package usercopy

import (
	"coreos/kernel/config"
	"coreos/kernel/errors"
	"coreos/kernel/paging"
	"coreos/kernel/physmem"
)

// kernelDirectory is the directory every copy switches back to once it is
// done borrowing a page from a target process's address space. It must be
// installed once at boot.
var kernelDirectory *paging.Directory

// switchFn loads a directory into CR3; host tests substitute it.
var switchFn = (*paging.Directory).Switch

// SetKernelDirectory installs the directory usercopy switches back to after
// operating on a page borrowed from a target process's address space.
func SetKernelDirectory(d *paging.Directory) {
	kernelDirectory = d
}

// copyChunk moves one page-sized (or shorter, for the first/last chunk)
// slice between kernelBuf and the page of dir containing userVaddr,
// following the protocol in spec.md §4.7: resolve the frame already backing
// userVaddr, temporarily alias it at a fixed scratch slot (T) — recording
// and later restoring whatever config.TempMappingSlot held before (the Open
// Question §9 resolves this as "preserve old, never discard it") — switch
// into dir, move the bytes, then switch back. Both switches are skipped
// while no kernel directory is installed, since there would be nothing to
// switch back to.
//
// Because the kernel directory identity-maps all 4 GiB (spec.md §3(b)), the
// actual byte motion addresses the resolved physical frame directly through
// physmem; the temp-slot aliasing and directory switches reproduce the
// hardware-facing protocol exactly without requiring a host test to run
// real CPU paging.
func copyChunk(dir *paging.Directory, userVaddr uintptr, kernelBuf []byte, toUser bool) *errors.KernelError {
	pageAddr := paging.AlignAddressDown(userVaddr)
	pageOffset := userVaddr - pageAddr

	paddr, err := dir.GetPhysicalAddress(pageAddr)
	if err != nil {
		return err
	}

	old, oldErr := dir.Get(config.TempMappingSlot)
	hadOld := oldErr == nil

	if err := dir.Map(config.TempMappingSlot, paddr, paging.FlagPresent|paging.FlagUserAccess|paging.FlagWritable); err != nil {
		return err
	}
	restore := func() {
		if hadOld {
			dir.Map(config.TempMappingSlot, uintptr(old)&^0xFFF, paging.Flag(old)&0xFFF)
		} else {
			dir.Unmap(config.TempMappingSlot)
		}
	}

	if kernelDirectory != nil {
		switchFn(dir)
	}

	var copyErr *errors.KernelError
	if toUser {
		copyErr = physmem.WriteAt(paddr+pageOffset, kernelBuf)
	} else {
		copyErr = physmem.ReadAt(paddr+pageOffset, kernelBuf)
	}

	if kernelDirectory != nil {
		switchFn(kernelDirectory)
	}
	restore()

	return copyErr
}

// split breaks a (userVaddr, length) range into per-page chunks, each no
// larger than the distance to the next page boundary.
func split(userVaddr uintptr, length int) [][2]int {
	var chunks [][2]int
	offset := 0
	for offset < length {
		pageOffset := int((userVaddr + uintptr(offset)) & (config.PageSize - 1))
		n := config.PageSize - pageOffset
		if n > length-offset {
			n = length - offset
		}
		chunks = append(chunks, [2]int{offset, n})
		offset += n
	}
	return chunks
}

// CopyToTask writes src into the target process's address space at
// userVaddr, page by page. Every page touched must already be mapped in dir
// (true of every stack, heap, and image page the loader/process/syscall
// layers hand out before a copy is attempted).
func CopyToTask(dir *paging.Directory, userVaddr uintptr, src []byte) *errors.KernelError {
	for _, c := range split(userVaddr, len(src)) {
		off, n := c[0], c[1]
		if err := copyChunk(dir, userVaddr+uintptr(off), src[off:off+n], true); err != nil {
			return err
		}
	}
	return nil
}

// CopyFromTask reads len(dst) bytes out of the target process's address
// space starting at userVaddr into dst, page by page.
func CopyFromTask(dir *paging.Directory, userVaddr uintptr, dst []byte) *errors.KernelError {
	for _, c := range split(userVaddr, len(dst)) {
		off, n := c[0], c[1]
		if err := copyChunk(dir, userVaddr+uintptr(off), dst[off:off+n], false); err != nil {
			return err
		}
	}
	return nil
}

// ReadCString reads a NUL-terminated string out of the target process's
// address space, one byte at a time via CopyFromTask, stopping at the first
// NUL or at config.MaxSyscallStringLen bytes (spec.md §4.4's Serial/Print
// cap and §9's note that cross-page reads must go through the safe-copy
// primitive rather than a raw esp-relative dereference).
func ReadCString(dir *paging.Directory, userVaddr uintptr) (string, *errors.KernelError) {
	buf := make([]byte, 0, 64)
	var b [1]byte
	for i := 0; i < config.MaxSyscallStringLen; i++ {
		if err := CopyFromTask(dir, userVaddr+uintptr(i), b[:]); err != nil {
			return "", err
		}
		if b[0] == 0 {
			return string(buf), nil
		}
		buf = append(buf, b[0])
	}
	return "", errors.New(errors.InvalidArg, "usercopy", "string exceeds max syscall string length")
}
