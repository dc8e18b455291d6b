package gdt

import (
	"coreos/kernel/config"
	"coreos/kernel/cpu"
	"unsafe"
)

// pseudoDescriptor is the operand LGDT/LIDT expect: a 16-bit limit followed
// by a 32-bit base address.
type pseudoDescriptor struct {
	limit uint16
	base  uint32
}

var (
	loadGDTFn          = cpu.LoadGDT
	loadTRFn           = cpu.LoadTaskRegister
	loadDataSegmentsFn = cpu.LoadDataSegments
)

// Init installs the table into the CPU: LGDT, a far return to reload CS (done
// inside LoadGDT's assembly shim), data segment reloads, and LTR for the
// task register. After Init returns, any trap taken from ring 3 switches to
// the stack recorded in the TSS (spec.md §4.1 contract).
func (t *Table) Init() {
	desc := pseudoDescriptor{
		limit: uint16(len(t.entries)*8 - 1),
		base:  uint32(uintptr(unsafe.Pointer(&t.entries[0]))),
	}

	loadGDTFn(uintptr(unsafe.Pointer(&desc)), config.KernelCodeSelector)
	loadDataSegmentsFn(config.KernelDataSelector)
	loadTRFn(selectorFor(config.GDTTaskState))
}

// selectorFor returns the segment selector for a GDT entry index, RPL 0.
func selectorFor(index int) uint16 {
	return uint16(index * 8)
}
