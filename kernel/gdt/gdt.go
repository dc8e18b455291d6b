// Package gdt installs the flat segmentation model the kernel runs under:
// a null descriptor, ring-0 code/data, ring-3 code/data, and a TSS whose
// esp0/ss0 point at the kernel's ring-0 stack. Once installed, any trap
// taken from ring 3 switches the CPU to that stack before kernel code runs
// (spec.md §4.1).
package gdt

import (
	"coreos/kernel/config"
	"unsafe"
)

// accessed, writable/readable, executable, direction/conforming, present,
// DPL and descriptor-type bits for a 32-bit flat segment descriptor.
const (
	accessPresent    = 1 << 7
	accessRing3      = 3 << 5
	accessDescriptor = 1 << 4 // 1 = code/data, 0 = system
	accessExecutable = 1 << 3
	accessReadWrite  = 1 << 1
	accessAccessed   = 1 << 0
	accessTSSAvail32 = 0x9 // 32-bit TSS (available), descriptor type bit clear

	granularity4K    = 1 << 3
	granularity32Bit = 1 << 2
)

// entry is the on-the-wire 8-byte descriptor format.
type entry struct {
	limitLow   uint16
	baseLow    uint16
	baseMiddle uint8
	access     uint8
	granularity uint8
	baseHigh   uint8
}

func flatEntry(access, gran uint8) entry {
	return entry{
		limitLow:    0xFFFF,
		baseLow:     0,
		baseMiddle:  0,
		access:      access,
		granularity: gran | 0x0F, // limit bits 16-19 all set -> 4GiB w/ 4K granularity
		baseHigh:    0,
	}
}

// tss is the 32-bit Task State Segment. Only esp0/ss0 are meaningful to
// this kernel: there is no hardware task switching, the TSS exists purely
// to give the CPU a ring-0 stack on privilege-level change.
type tss struct {
	prevTask uint32
	esp0     uint32
	ss0      uint32
	_        [22]uint32 // unused fields (esp1/ss1, esp2/ss2, cr3, eip, eflags, general/segment regs, ldt, iomap base)
}

// Table is the installed GDT plus its TSS. There is exactly one per
// kernel; it is constructed once at boot and its entries (other than
// esp0/ss0) are never rewritten afterwards (spec.md §3 invariant).
type Table struct {
	entries [config.GDTEntryCount]entry
	task    tss
}

// New builds a Table with the kernel/user code & data descriptors filled
// in and the TSS pointed at the given ring-0 stack. It does not install
// anything into the CPU; call Init for that.
func New(ring0StackTop uintptr) *Table {
	t := &Table{}
	t.entries[config.GDTNull] = entry{}
	t.entries[config.GDTKernelCode] = flatEntry(accessPresent|accessDescriptor|accessExecutable|accessReadWrite, granularity4K|granularity32Bit)
	t.entries[config.GDTKernelData] = flatEntry(accessPresent|accessDescriptor|accessReadWrite, granularity4K|granularity32Bit)
	t.entries[config.GDTUserCode] = flatEntry(accessPresent|accessRing3|accessDescriptor|accessExecutable|accessReadWrite, granularity4K|granularity32Bit)
	t.entries[config.GDTUserData] = flatEntry(accessPresent|accessRing3|accessDescriptor|accessReadWrite, granularity4K|granularity32Bit)

	t.task.esp0 = uint32(ring0StackTop)
	t.task.ss0 = config.KernelDataSelector
	t.entries[config.GDTTaskState] = tssEntry(&t.task)

	return t
}

func tssEntry(task *tss) entry {
	base := uintptr(unsafe.Pointer(task))
	limit := uint32(unsafeSizeofTSS - 1)
	return entry{
		limitLow:    uint16(limit),
		baseLow:     uint16(base),
		baseMiddle:  uint8(base >> 16),
		access:      accessPresent | accessTSSAvail32,
		granularity: uint8((limit>>16)&0x0F) | granularity32Bit,
		baseHigh:    uint8(base >> 24),
	}
}

const unsafeSizeofTSS = 4 + 4 + 4 + 22*4

// Esp0 returns the ring-0 stack pointer currently recorded in the TSS.
func (t *Table) Esp0() uintptr { return uintptr(t.task.esp0) }

// SetEsp0 updates the ring-0 stack pointer recorded in the TSS. This is the
// only field of an installed GDT this kernel ever rewrites.
func (t *Table) SetEsp0(esp0 uintptr) { t.task.esp0 = uint32(esp0) }
