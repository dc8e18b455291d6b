package interrupt

import (
	"coreos/kernel/config"
	"coreos/kernel/cpu"
	"unsafe"
)

// IDTEntryCount is the real hardware vector count (0-255); Registry's
// VectorCount is larger only to give the handler tables headroom beyond
// what an IDT can ever actually dispatch (see registry.go).
const IDTEntryCount = 256

// gateFlags for a 32-bit interrupt gate, ring 0 only: present, type=1110b.
const gateFlags = 0x8E

// syscallGateFlags is gateFlags with DPL 3, so ring-3 code may raise the
// system-call vector with int 0x80.
const syscallGateFlags = gateFlags | 3<<5

// gate is the on-the-wire IDT descriptor format: a 32-bit offset split
// across two halves, a segment selector, and a flags byte.
type gate struct {
	offsetLow  uint16
	selector   uint16
	zero       uint8
	flags      uint8
	offsetHigh uint16
}

var idt [IDTEntryCount]gate

// stubAddr is filled in by the init function in stub_table_386.go (generated
// by tools/gentraps) with the entry address of each vector's trap stub.
var stubAddr [IDTEntryCount]uintptr

// BuildIDT fills every IDT entry with a gate pointing at that vector's
// generated stub (spec.md §4.3: "a single source-generated family of 512
// naked stubs"; this kernel's hardware table covers the real 0-255 range,
// see IDTEntryCount). Call Install after this to load it into the CPU.
func BuildIDT() {
	for v := 0; v < IDTEntryCount; v++ {
		addr := stubAddr[v]
		flags := uint8(gateFlags)
		if v == config.VectorSyscall {
			flags = syscallGateFlags
		}
		idt[v] = gate{
			offsetLow:  uint16(addr),
			selector:   config.KernelCodeSelector,
			zero:       0,
			flags:      flags,
			offsetHigh: uint16(addr >> 16),
		}
	}
}

// pseudoDescriptor is the operand LIDT expects: a 16-bit limit followed by
// a 32-bit base address, matching gdt.pseudoDescriptor's shape.
type pseudoDescriptor struct {
	limit uint16
	base  uint32
}

var loadIDTFn = cpu.LoadIDT

// Install loads the IDT built by BuildIDT into the CPU via LIDT. After this
// returns, every vector 0-255 traps into this package's generated stub
// table, which in turn calls HandleTrap.
func Install() {
	desc := pseudoDescriptor{
		limit: uint16(len(idt)*8 - 1),
		base:  uint32(uintptr(unsafe.Pointer(&idt[0]))),
	}
	loadIDTFn(uintptr(unsafe.Pointer(&desc)))
}
