package interrupt

import "coreos/kernel/kfmt"

// Hooks are the scheduler/directory operations the default handlers need but
// do not own themselves (spec.md §4.3's "common trap-entry policy"). They are
// injected as plain function values, the same dependency-injection-by-var
// idiom used throughout this tree (see paging.SetFrameAllocator,
// interrupt.outbFn/inbFn), so that kernel/interrupt never imports
// kernel/task or kernel/process and the two can be tested independently.
type Hooks struct {
	// SwitchToKernelDirectory loads the kernel's page directory into cr3.
	SwitchToKernelDirectory func()
	// SaveCurrentFrame snapshots frame into the current task before any
	// handler runs, per the common trap-entry policy.
	SaveCurrentFrame func(frame *Frame)
	// SwitchToCurrentDirectory restores the (possibly just-rescheduled)
	// current task's page directory.
	SwitchToCurrentDirectory func()
	// Schedule runs one round-robin scheduling step, called from the
	// timer tick and from any syscall that voluntarily yields.
	Schedule func()
	// TerminateCurrent tears down the current process/task after an
	// unrecoverable fault or exception, logging reason first.
	TerminateCurrent func(reason string)
	// PushKey enqueues one translated keyboard byte.
	PushKey func(b uint8)
	// ReadCR2 returns the faulting address recorded by the last page
	// fault, read fresh at decode time since no trap stub pushes cr2
	// onto the frame itself.
	ReadCR2 func() uint32
	// CurrentFrame returns the saved frame of whichever task is current
	// once Schedule (if any) has run — the same task HandleTrap entered
	// with, unless the handler just rescheduled or terminated it.
	CurrentFrame func() *Frame
}

var keyboard keyboardTranslator

// InstallDefaultHandlers registers every handler spec.md §4.3 requires at
// boot: generic terminate-and-schedule for vectors 0-31 (split between the
// plain and error-code tables), the GPF/PF decoders, the timer tick, and the
// keyboard scancode translator. It panics (a programming error, not a
// runtime fault) if any registration is rejected, since every vector here is
// fixed and known-good at compile time.
func InstallDefaultHandlers(reg *Registry, h Hooks) {
	installedRegistry = reg
	installedHooks = h

	terminate := func(vector uint32) Handler {
		return func(f *Frame) {
			kfmt.Printf("exception %d at eip=%x: terminating process\n", vector, f.EIP)
			h.TerminateCurrent("exception")
			h.Schedule()
		}
	}
	terminateErr := func(vector uint32) HandlerErr {
		return func(errorCode uint32, f *Frame) {
			kfmt.Printf("exception %d (err=%x) at eip=%x: terminating process\n", vector, errorCode, f.EIP)
			h.TerminateCurrent("exception")
			h.Schedule()
		}
	}

	for v := uint32(0); v < 32; v++ {
		if IsErrorCodeVector(v) {
			continue
		}
		if v == 13 || v == 14 {
			continue
		}
		mustRegister(reg, v, terminate(v))
	}
	for _, v := range []uint32{8, 10, 11, 12} {
		mustRegisterErr(reg, v, terminateErr(v))
	}

	mustRegisterErr(reg, 13, generalProtectionFault(&h))
	mustRegisterErr(reg, 14, pageFault(&h))

	mustRegister(reg, 0x20, timerTick(&h))
	mustRegister(reg, 0x21, keyboardIRQ(&h))
}

func mustRegister(reg *Registry, vector uint32, handler Handler) {
	if err := reg.Register(vector, handler); err != nil {
		panic(err)
	}
}

func mustRegisterErr(reg *Registry, vector uint32, handler HandlerErr) {
	if err := reg.RegisterErr(vector, handler); err != nil {
		panic(err)
	}
}

// generalProtectionFault decodes the GPF error code's (ext, tbl, index)
// fields, logs, then terminates the offending process and reschedules.
func generalProtectionFault(h *Hooks) HandlerErr {
	return func(errorCode uint32, f *Frame) {
		ext := errorCode&0x1 != 0
		tbl := (errorCode >> 1) & 0x3
		index := errorCode >> 3
		kfmt.Printf("General protection fault( ext=%t tbl=%d index=%d ) at eip=%x\n", ext, tbl, index, f.EIP)

		h.TerminateCurrent("general protection fault")
		h.Schedule()
	}
}

// pageFault decodes the error code's P/W/U/R/I bits and reads cr2 (the
// faulting address the CPU records on every #PF, per spec.md §4.3) before
// logging a diagnostic and terminating the offending process.
func pageFault(h *Hooks) HandlerErr {
	return func(errorCode uint32, f *Frame) {
		present := errorCode&0x1 != 0
		write := errorCode&0x2 != 0
		user := errorCode&0x4 != 0
		reserved := errorCode&0x8 != 0
		fetch := errorCode&0x10 != 0

		var faultAddr uint32
		if h.ReadCR2 != nil {
			faultAddr = h.ReadCR2()
		}

		mode := "read"
		if write {
			mode = "write"
		}
		scope := "kernel"
		if user {
			scope = "user"
		}
		kfmt.Printf("Page fault( %s %s ) at eip=%x addr=%x present=%t reserved=%t fetch=%t\n",
			mode, scope, f.EIP, faultAddr, present, reserved, fetch)

		h.TerminateCurrent("page fault")
		h.Schedule()
	}
}

// timerTick runs one round-robin scheduling step. HandleTrap already
// performed the directory switch and frame snapshot the common trap-entry
// policy requires before any handler runs, and restores whichever
// directory is current (possibly a freshly scheduled one) after this
// returns.
func timerTick(h *Hooks) Handler {
	return func(f *Frame) {
		h.Schedule()
	}
}

// keyboardIRQ reads one scancode, translates it, and pushes the resulting
// byte into the keyboard queue. HandleTrap sends the EOI afterward as part
// of the common trap-entry policy (spec.md §4.3, step 5).
func keyboardIRQ(h *Hooks) Handler {
	return func(f *Frame) {
		sc := ReadScancode()
		if b, ok := keyboard.translate(sc); ok {
			h.PushKey(b)
		}
	}
}
