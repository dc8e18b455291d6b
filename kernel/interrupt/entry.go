package interrupt

import (
	"unsafe"

	"coreos/kernel/config"
)

// funcPC returns the entry address of a niladic, non-closure top-level
// function. Go gives no portable way to do this; the **uintptr indirection
// through a func value's first word is the same trick freestanding Go
// kernels reach for instead of round-tripping through a linker-generated
// symbol table (ground: justanotherdot/biscuit's kernel/main.go, which
// takes the address of a trampoline func the exact same way to hand it to
// the CPU's local APIC). It only works for funcs like stub000..stub255:
// declared at package scope, implemented in assembly, never called as Go
// values anywhere else in this tree.
func funcPC(f func()) uintptr {
	return **(**uintptr)(unsafe.Pointer(&f))
}

// installedRegistry and installedHooks are set once by
// InstallDefaultHandlers and read by every trap. They're package vars
// rather than arguments because HandleTrap's caller is hand-written
// assembly (stubs_386.s), which can only pass the frame pointer it just
// built, not a receiver.
var (
	installedRegistry *Registry
	installedHooks    Hooks
)

// HandleTrap is the Go side of spec.md §4.3's common trap-entry policy. It
// is called by every generated stub in stubs_386.s with the frame that
// stub just built on the kernel stack:
//
//  1. switch to the kernel directory,
//  2. snapshot the current task's frame,
//  3. dispatch to whatever handler InstallDefaultHandlers or a caller of
//     Registry.Register/RegisterErr registered for this vector,
//  4. restore whichever directory is now current (unchanged, unless the
//     handler rescheduled),
//  5. acknowledge the PIC for IRQ vectors (0x20-0x2F),
//  6. return into whichever task is current now, per spec.md §2/§5 ("on
//     return, either the same or a freshly scheduled task's frame is
//     restored") and §4.3's timer handler ("call scheduler, return into
//     next task"). A handler that rescheduled (the timer tick) or
//     terminated the entering task (Exit, an exception) leaves a
//     *different* task current than the one HandleTrap snapshotted in
//     step 2; ReturnToUser resumes that one, never the stub's stale
//     on-stack copy of the task that was running on entry.
//
// Before InstallDefaultHandlers runs (e.g. a host test calling stub code
// directly, which it never does) this is a no-op.
func HandleTrap(frame *Frame) {
	if installedRegistry == nil {
		return
	}

	installedHooks.SwitchToKernelDirectory()
	installedHooks.SaveCurrentFrame(frame)

	installedRegistry.Dispatch(frame)

	installedHooks.SwitchToCurrentDirectory()

	if frame.Vector >= config.IRQBase && frame.Vector <= config.IRQLast {
		SendEOI(frame.Vector)
	}

	if installedHooks.CurrentFrame != nil {
		if next := installedHooks.CurrentFrame(); next != nil {
			ReturnToUser(next)
		}
	}
}
