// Package cpu exposes the small set of ring-0 x86 primitives the rest of
// the kernel needs: port I/O, interrupt masking, descriptor table loads and
// control register access. Each function here is a thin assembly shim
// (kernel/cpu/*_386.s). Callers (kernel/gdt, kernel/paging,
// kernel/interrupt, kernel/syscall and the kernel facade) reach them through
// package-level function variables so host tests can substitute a software
// model; the one direct call is the halt loop in kernel/kmain.go (ground:
// gopher-os kernel/mem/vmm's activePDTFn/switchPDTFn indirection pattern).
package cpu

// Inb reads a byte from the given I/O port.
func Inb(port uint16) uint8

// Outb writes a byte to the given I/O port.
func Outb(port uint16, val uint8)

// Inw reads a word from the given I/O port.
func Inw(port uint16) uint16

// Outw writes a word to the given I/O port.
func Outw(port uint16, val uint16)

// Inl reads a double word from the given I/O port.
func Inl(port uint16) uint32

// Outl writes a double word to the given I/O port.
func Outl(port uint16, val uint32)

// EnableInterrupts executes STI, allowing maskable interrupts through.
func EnableInterrupts()

// DisableInterrupts executes CLI, masking all maskable interrupts.
func DisableInterrupts()

// InterruptsEnabled reports whether EFLAGS.IF is currently set.
func InterruptsEnabled() bool

// Halt executes HLT, stopping instruction execution until the next
// interrupt.
func Halt()

// LoadGDT loads the given GDT descriptor (limit:base pair) into the CPU via
// LGDT, then reloads CS with codeSelector through a far return.
func LoadGDT(gdtDescriptor uintptr, codeSelector uint16)

// LoadIDT loads the given IDT descriptor into the CPU via LIDT.
func LoadIDT(idtDescriptor uintptr)

// LoadTaskRegister loads the given TSS selector into the task register via
// LTR.
func LoadTaskRegister(tssSelector uint16)

// ReadCR0 returns the current value of CR0.
func ReadCR0() uint32

// WriteCR0 writes val to CR0.
func WriteCR0(val uint32)

// ReadCR2 returns the current value of CR2 (the faulting address recorded
// by the last page fault).
func ReadCR2() uint32

// ReadCR3 returns the current value of CR3 (the physical address of the
// active page directory).
func ReadCR3() uint32

// WriteCR3 writes val (a page-aligned physical address) to CR3, switching
// the active page directory and flushing the TLB.
func WriteCR3(val uint32)

// LoadDataSegments reloads DS, ES, FS and GS with selector. Used on every
// trap entry to restore the kernel's data segments, since a ring-crossing
// trap leaves whatever data selectors the interrupted ring-3 task had
// loaded (spec.md §4.8's kernel_page contract).
func LoadDataSegments(selector uint16)
