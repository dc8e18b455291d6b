// Package kernel implements the kernel facade (C11, spec.md §4.8): the
// single process-wide object that owns every other core subsystem
// (GDT/TSS, the kernel page directory, the interrupt registry, the
// scheduler, the process table, the keyboard queue) plus the collaborator
// interfaces spec.md §6 describes (block devices, a filesystem, a console).
// It is also where kernel/interrupt's Hooks are wired to kernel/task and
// kernel/process, since those two packages must not import each other or
// kernel/interrupt directly (see interrupt.Hooks's doc comment).
package kernel

import (
	"coreos/kernel/config"
	"coreos/kernel/cpu"
	"coreos/kernel/errors"
	"coreos/kernel/gdt"
	"coreos/kernel/hal"
	"coreos/kernel/interrupt"
	"coreos/kernel/paging"
	"coreos/kernel/physmem"
	"coreos/kernel/pmm"
	"coreos/kernel/process"
	"coreos/kernel/syscall"
	"coreos/kernel/task"
	"coreos/kernel/usercopy"
)

// These wrap the handful of privileged cpu primitives the facade itself
// calls (as opposed to the ones already wrapped inside kernel/paging and
// kernel/gdt). Host tests substitute them so exercising WithoutInterrupts,
// KernelPage and the trap-entry helpers never issues a real CLI/STI or
// segment reload.
var (
	interruptsEnabledFn = cpu.InterruptsEnabled
	disableInterruptsFn = cpu.DisableInterrupts
	enableInterruptsFn  = cpu.EnableInterrupts
	loadDataSegmentsFn  = cpu.LoadDataSegments
	directorySwitchFn   = func(d *paging.Directory) { d.Switch() }
	readCR0Fn           = cpu.ReadCR0
	writeCR0Fn          = cpu.WriteCR0
	readCR2Fn           = cpu.ReadCR2
)

// pagingEnableBit is bit 31 of cr0 (PG), set exactly once at boot after the
// kernel directory is installed (spec.md §4.2).
const pagingEnableBit = 1 << 31

// Kernel is the C11 facade. There is exactly one per running kernel,
// constructed once by Init and thereafter reachable through Instance.
type Kernel struct {
	GDT        *gdt.Table
	KernelDir  *paging.Directory
	Interrupts *interrupt.Registry
	Scheduler  *task.Scheduler
	Processes  *process.Table
	Frames     *pmm.BitmapAllocator
	Keyboard   *hal.KeyboardQueue

	blockDevices map[string]hal.BlockDevice
	fs           hal.FileSystem
	console      hal.Console
	syscallDeps  *syscall.Deps
}

var instance *Kernel

// Instance returns the kernel facade built by Init, or nil before boot.
func Instance() *Kernel { return instance }

// Init builds every core subsystem spec.md §2's data flow requires before
// the first process can be loaded: GDT/TSS, the kernel's identity-mapped
// directory, the physical frame pool, the interrupt registry with its
// default handlers, and the process/task tables. ring0StackTop is the top
// of the dedicated stack the TSS points traps at; frameCount sizes the
// physical frame pool pmm and the process/loader layers draw from.
func Init(ring0StackTop uintptr, frameCount uint32) *Kernel {
	k := &Kernel{
		blockDevices: make(map[string]hal.BlockDevice),
	}

	k.GDT = gdt.New(ring0StackTop)
	k.GDT.Init()

	kernelDir, err := paging.New4GB(paging.FlagPresent | paging.FlagWritable | paging.FlagUserAccess)
	if err != nil {
		Panic(err)
	}
	k.KernelDir = kernelDir

	physmem.Init(int(frameCount) * config.PageSize)

	k.Frames = pmm.NewBitmapAllocator(0, frameCount)
	paging.SetFrameAllocator(func() (uint32, *errors.KernelError) {
		f, err := k.Frames.AllocFrame()
		if err != nil {
			return 0, err
		}
		return uint32(f) * config.PageSize, nil
	})

	k.Scheduler = task.NewScheduler()
	k.Processes = process.NewTable(k.Frames, k.Scheduler)
	k.Keyboard = hal.NewKeyboardQueue()
	k.syscallDeps = &syscall.Deps{
		Processes: k.Processes,
		Scheduler: k.Scheduler,
		Keyboard:  k.Keyboard,
		Frames:    k.Frames,
	}

	usercopy.SetKernelDirectory(kernelDir)

	interrupt.RemapPIC()

	k.Interrupts = interrupt.NewRegistry()
	interrupt.InstallDefaultHandlers(k.Interrupts, interrupt.Hooks{
		SwitchToKernelDirectory:  k.KernelPage,
		SaveCurrentFrame:         k.Scheduler.SaveCurrentFrame,
		SwitchToCurrentDirectory: k.switchToCurrentDirectory,
		Schedule:                 k.schedule,
		TerminateCurrent:         k.terminateCurrent,
		PushKey:                  k.Keyboard.Push,
		ReadCR2:                  readCR2Fn,
		CurrentFrame:             k.currentFrame,
	})
	if err := k.Interrupts.Register(config.VectorSyscall, k.dispatchSyscall); err != nil {
		panic(err)
	}

	interrupt.BuildIDT()
	interrupt.Install()
	interrupt.UnmaskKeyboard()

	directorySwitchFn(kernelDir)
	writeCR0Fn(readCR0Fn() | pagingEnableBit)
	instance = k
	return k
}

// KernelPage switches to the kernel directory and reloads the ring-0 data
// segments, the operation spec.md §4.8 requires on every trap entry before
// any handler runs.
func (k *Kernel) KernelPage() {
	directorySwitchFn(k.KernelDir)
	loadDataSegmentsFn(config.KernelDataSelector)
}

// currentFrame returns the saved frame of whichever task HandleTrap should
// resume into, once dispatch has run: the task Step just picked if the
// handler rescheduled, or the one that was already current otherwise.
// Terminate-and-schedule handlers always call Schedule before this is
// read, so a terminated task is never the one returned to.
func (k *Kernel) currentFrame() *interrupt.Frame {
	if cur := k.Scheduler.Current(); cur != nil {
		return &cur.Frame
	}
	return nil
}

func (k *Kernel) switchToCurrentDirectory() {
	if cur := k.Scheduler.Current(); cur != nil {
		if p := k.Processes.Get(process.ID(cur.Process)); p != nil {
			directorySwitchFn(p.Directory)
		}
	}
}

func (k *Kernel) schedule() {
	var stepErr *errors.KernelError
	WithoutInterrupts(func() {
		stepErr = k.Scheduler.Step()
		k.switchToCurrentDirectory()
	})
	if stepErr != nil {
		Panic(stepErr)
	}
}

func (k *Kernel) terminateCurrent(reason string) {
	WithoutInterrupts(func() {
		if cur := k.Scheduler.Current(); cur != nil {
			k.Processes.Remove(process.ID(cur.Process))
		}
	})
}

// dispatchSyscall is the int 0x80 entry point (spec.md §4.4). HandleTrap
// already switched to the kernel directory and snapshotted the current
// task's frame as part of the common trap-entry policy before Registry
// reached this handler; this just resolves the current task's owning
// process, runs syscall.Dispatch, and writes its result back into
// frame.EAX so the user program observes it in eax after iretd.
func (k *Kernel) dispatchSyscall(f *interrupt.Frame) {
	WithoutInterrupts(func() {
		cur := k.Scheduler.Current()
		if cur == nil {
			return
		}
		p := k.Processes.Get(process.ID(cur.Process))
		if p == nil {
			return
		}

		f.EAX = syscall.Dispatch(k.syscallDeps, p, f)
	})
}

// WithoutInterrupts runs fn with maskable interrupts disabled, restoring
// the prior IF state afterward, matching spec.md §5's single-threading
// discipline for mutations to kernel-global state (the process table, the
// ready queues, the keyboard queue, the kernel directory).
func WithoutInterrupts(fn func()) {
	enabled := interruptsEnabledFn()
	disableInterruptsFn()
	fn()
	if enabled {
		enableInterruptsFn()
	}
}

// MountBlockDevice registers a named block device collaborator (spec.md
// §6). The core never reads or writes through it directly; it exists so a
// mounted filesystem driver can be handed a name it was configured with.
func (k *Kernel) MountBlockDevice(name string, dev hal.BlockDevice) {
	k.blockDevices[name] = dev
}

// BlockDevice returns a previously mounted block device, or nil.
func (k *Kernel) BlockDevice(name string) hal.BlockDevice {
	return k.blockDevices[name]
}

// MountFileSystem installs the root filesystem collaborator Fopen/Exec/
// ProcessLoadStart load program images and user files through.
func (k *Kernel) MountFileSystem(fs hal.FileSystem) {
	k.fs = fs
	k.syscallDeps.FS = fs
}

// SetConsole installs the byte-sink collaborator Print/PutChar/ClearScreen/
// RemoveLastChar write to.
func (k *Kernel) SetConsole(c hal.Console) {
	k.console = c
	k.syscallDeps.Console = c
}

// SetSerial installs the function syscall 0x00 (Serial) writes a
// NUL-terminated user string through.
func (k *Kernel) SetSerial(write func(string)) {
	k.syscallDeps.Serial = write
}

// Boot loads path as the kernel's first process (spec.md §2: "first
// process loaded via C6/C7, first task created via C8"). The filesystem
// collaborator must already be mounted.
func (k *Kernel) Boot(path string) *errors.KernelError {
	if k.fs == nil {
		return errors.New(errors.NotFound, "kernel", "no filesystem mounted")
	}
	data, err := hal.ReadWholeFile(k.fs, path)
	if err != nil {
		return err
	}
	_, err = k.Processes.Spawn(data, nil, []string{path})
	return err
}
