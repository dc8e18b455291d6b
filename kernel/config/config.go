// Package config collects the fixed, wire-level constants that the rest of
// the kernel and the user runtime both depend on. Keeping them in one place
// mirrors gopher-os's per-concern constants files (e.g.
// kernel/mem/constants_amd64.go) and avoids re-declaring magic numbers at
// every call site.
package config

// Segment selectors installed into the GDT (C2). Values are fixed by the
// wire contract in spec.md §6 and must never change once the kernel ships.
const (
	KernelCodeSelector = 0x08
	KernelDataSelector = 0x10
	UserCodeSegment    = 0x1B
	UserDataSegment    = 0x23
)

// GDT entry indices.
const (
	GDTNull = iota
	GDTKernelCode
	GDTKernelData
	GDTUserCode
	GDTUserData
	GDTTaskState
	GDTEntryCount
)

// Paging constants (C3).
const (
	PageSize      = 4096
	PageTableSize = 1024 // entries per table and per directory
)

// Process address-space layout (C6, C7).
const (
	ProgramVirtualAddress = 0x0040_0000
	UserStackSize         = 16 * 1024
	UserStackStart        = 0x003F_F000
	UserStackEnd          = UserStackStart - UserStackSize
)

// Kernel heap layout, consumed by the external heap allocator collaborator.
const (
	HeapAddress = 0x0100_0000
	HeapSize    = 100 * 1024 * 1024
)

// UserHeapBase is the first virtual address a process's per-process Malloc
// syscall hands out; it sits well above the largest program image this
// kernel expects to load and grows upward, one allocation's worth of pages
// at a time.
const UserHeapBase = 0x0080_0000

// Interrupt vectors.
const (
	VectorTimer    = 0x20
	VectorKeyboard = 0x21
	VectorSyscall  = 0x80

	IRQBase = 0x20
	IRQLast = 0x2F
)

// PIC remap targets and command/data ports.
const (
	PICMasterCommandPort = 0x20
	PICMasterDataPort    = 0x21
	PICSlaveCommandPort  = 0xA0
	PICSlaveDataPort     = 0xA1

	PICMasterOffset = 0x20
	PICSlaveOffset  = 0x28
)

// PS/2 keyboard controller ports.
const (
	KeyboardDataPort   = 0x60
	KeyboardStatusPort = 0x64
)

// Maximum number of bytes copied for a single Serial/Print syscall, matching
// the cap the original userspace runtime relies on.
const MaxSyscallStringLen = 1024

// TempMappingSlot is the fixed scratch virtual address usercopy borrows in a
// target process directory while shuttling one page between user and kernel
// memory (spec.md §4.7). It sits just above the kernel image's program
// address and is never part of any process's loaded image or heap range.
const TempMappingSlot = 0x00BF_F000
