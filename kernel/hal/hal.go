// Package hal defines the small capability interfaces the core depends on
// but does not implement: block I/O, a filesystem, a console byte-sink and
// a heap allocator (spec.md §1/§6). Each is modeled as a narrow interface
// rather than a base class, matching the capability-interface design note
// in spec.md §9 and the shape of gopher-os's own driver interfaces (e.g.
// kernel/driver/video/console.Console).
package hal

import "coreos/kernel/errors"

// BlockDevice is the collaborator interface for raw sector I/O.
type BlockDevice interface {
	ReadSectors(lba uint64, n int, buf []byte) (int, *errors.KernelError)
	WriteSectors(lba uint64, n int, buf []byte) (int, *errors.KernelError)
	SectorSize() int
	Sync()
}

// FileHandle is returned by FileSystem.Open.
type FileHandle interface {
	Read(buf []byte) (int, *errors.KernelError)
	Write(buf []byte) (int, *errors.KernelError)
	Seek(offset int64, whence int) (int64, *errors.KernelError)
	Stat() (FileInfo, *errors.KernelError)
	Close() *errors.KernelError
}

// FileInfo is the subset of file metadata the syscall layer surfaces via
// Fstat.
type FileInfo struct {
	Size  int64
	Mode  uint32
	IsDir bool
}

// FileSystem is the collaborator interface the VFS/FAT16 driver implements.
type FileSystem interface {
	Open(path string) (FileHandle, *errors.KernelError)
	ReadDir(path string) ([]string, *errors.KernelError)
	Create(path string) (FileHandle, *errors.KernelError)
	Remove(path string) *errors.KernelError
	Metadata(path string) (FileInfo, *errors.KernelError)
	Chmod(path string, mode uint32) *errors.KernelError
	Chown(path string, uid, gid uint32) *errors.KernelError
}

// Console is the byte-sink the terminal driver exposes to the kernel.
type Console interface {
	WriteString(s string)
	WriteCharColor(ch byte, color uint8)
	Backspace()
	Clear()
	SetCursor(x, y uint16)
}

// HeapAllocator is the page-granular allocator the kernel heap exposes to
// Malloc/Free and to the process/loader layers that need owned pages.
type HeapAllocator interface {
	AllocZeroed(size uintptr) (uintptr, *errors.KernelError)
	Free(ptr uintptr, size uintptr)
	Stats() (total, used, free uintptr)
}

// ReadWholeFile opens path on fs and reads its entire contents, the one
// pattern every caller that loads a program image off the root filesystem
// needs (the kernel facade's boot spawn and the ProcessLoadStart/Exec
// syscall handlers).
func ReadWholeFile(fs FileSystem, path string) ([]byte, *errors.KernelError) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	buf := make([]byte, info.Size)
	if _, err := f.Read(buf); err != nil {
		return nil, err
	}
	return buf, nil
}
