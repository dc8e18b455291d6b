package kernel

import (
	"coreos/kernel/cpu"
	"coreos/kernel/errors"
	"coreos/kernel/kfmt"
)

// haltFn is called by Panic after dumping diagnostics. Tests substitute it
// to avoid actually halting the host process.
var haltFn = cpu.Halt

// Panic outputs the supplied error (if any) to the console/serial and halts
// the CPU. Calls to Panic never return; it is the sole halt path for any
// unrecoverable condition spec.md §7 names (a kernel-mode exception, or the
// scheduler's NoTasks when every ready queue is empty).
func Panic(e interface{}) {
	kfmt.Printf("\n-----------------------------------\n")
	switch t := e.(type) {
	case nil:
	case *errors.KernelError:
		kfmt.Printf("[%s] unrecoverable error: %s\n", t.Module, t.Message)
	case error:
		kfmt.Printf("unrecoverable error: %s\n", t.Error())
	case string:
		kfmt.Printf("unrecoverable error: %s\n", t)
	default:
		kfmt.Printf("unrecoverable error (unknown cause)\n")
	}
	kfmt.Printf("*** kernel panic: system halted ***\n")
	kfmt.Printf("-----------------------------------\n")

	haltFn()
}
