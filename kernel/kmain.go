package kernel

import (
	"unsafe"

	"coreos/kernel/cpu"
)

// ring0StackSize is the dedicated stack the TSS's esp0 points traps at
// (spec.md §4.1). It is carved out of the image's BSS by the linker script;
// ring0StackTop is its address plus this size.
const ring0StackSize = 16 * 1024

// ring0Stack is the kernel's dedicated ring-0 stack: the CPU switches to it
// on any trap taken from ring 3, via the TSS the GDT installs.
var ring0Stack [ring0StackSize]byte

// frameCount sizes the physical frame pool kernel/pmm hands frames out of.
// A production boot would derive this from the multiboot/e820 memory map;
// this core takes a fixed, generously-sized pool instead, since memory
// discovery is a collaborator concern outside spec.md §1's scope.
const frameCount = 32 * 1024 // 128 MiB at 4 KiB frames

// Kmain is the kernel's Go entry point, called by the rt0 trampoline (see
// boot.go) once a minimal stack is available. It performs the boot-time
// half of spec.md §2's data flow: install the GDT/TSS, build the kernel
// directory and enable paging, remap the PIC and install the interrupt
// table. It does not execute STI itself. It never returns.
//
// Mounting the root filesystem and calling Boot with the init program's
// path is left to the platform-specific wiring that links real block
// device, filesystem and console drivers into this kernel (all declared
// as external collaborators in spec.md §1/§6, out of this core's scope):
// that code calls k.MountBlockDevice/MountFileSystem/SetConsole, then
// k.Boot("/bin/shell.elf") before falling into the halt loop below.
func Kmain() {
	stackTop := uintptr(unsafe.Pointer(&ring0Stack[0])) + uintptr(len(ring0Stack))

	k := Init(stackTop, frameCount)
	_ = k

	for {
		cpu.Halt()
	}
}
