// Package syscall implements the int 0x80 syscall boundary (C5, C10): the
// fixed numeric syscall table from spec.md §4.4, argument fetch from the
// user stack through the safe-copy primitives, and the handler adapters
// over the loader/process/task/usercopy layers.
package syscall

import (
	"encoding/binary"
	"math"

	"coreos/kernel/config"
	"coreos/kernel/cpu"
	"coreos/kernel/errors"
	"coreos/kernel/hal"
	"coreos/kernel/interrupt"
	"coreos/kernel/kfmt"
	"coreos/kernel/paging"
	"coreos/kernel/pmm"
	"coreos/kernel/process"
	"coreos/kernel/task"
	"coreos/kernel/usercopy"
)

// Syscall ids, fixed by the wire contract in spec.md §4.4.
const (
	Serial              = 0x00
	Print               = 0x01
	GetKey              = 0x02
	PutChar             = 0x03
	Malloc              = 0x04
	Free                = 0x05
	ProcessLoadStart    = 0x06
	Exec                = 0x07
	GetProcessArguments = 0x08
	Exit                = 0x09
	PrintMemory         = 0x0A
	RemoveLastChar      = 0x0B
	ClearScreen         = 0x0C
	Fopen               = 0x0D
	Fread               = 0x0E
	Fwrite              = 0x0F
	Fseek               = 0x10
	Fstat               = 0x11
	Fclose              = 0x12
	Reboot              = 0x13
	Shutdown            = 0x14
)

// unknownResult is returned for any id with no registered handler, and by
// any handler whose preconditions fail without a side effect.
const unknownResult = uint32(math.MaxUint32)

// maxFileHandles bounds the per-kernel open file table the Fopen family
// hands out integer ids into.
const maxFileHandles = 64

// Deps bundles every collaborator a syscall handler may need. Processes and
// Scheduler must be set; the rest may be nil without panicking — spec.md §6
// describes these as external collaborators the core may or may not have
// mounted yet. With a nil Console, Serial, Keyboard or Frames the syscalls
// that use them do nothing and return 0; with a nil FS, Fopen and the
// program-loading syscalls return unknownResult.
type Deps struct {
	Processes *process.Table
	Scheduler *task.Scheduler
	Keyboard  *hal.KeyboardQueue
	Console   hal.Console
	FS        hal.FileSystem
	Frames    *pmm.BitmapAllocator
	Serial    func(s string)

	files [maxFileHandles]hal.FileHandle
}

// argAt reads the i'th 4-byte argument word a user program pushed at the
// top of its stack before executing int 0x80 (frame.ESP + i*4), going
// through usercopy per spec.md §9's resolution of the arg-fetch Open
// Question: never a raw esp-relative dereference.
func argAt(dir *paging.Directory, frame *interrupt.Frame, i int) (uint32, *errors.KernelError) {
	var buf [4]byte
	if err := usercopy.CopyFromTask(dir, uintptr(frame.ESP)+uintptr(i)*4, buf[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(buf[:]), nil
}

// Dispatch runs the syscall frame.Vector == config.VectorSyscall names
// (frame.EAX holds the syscall id), for the process p is the current
// task's owner. It returns the value to load back into EAX.
func Dispatch(d *Deps, p *process.Process, frame *interrupt.Frame) uint32 {
	switch frame.EAX {
	case Serial:
		return d.doSerial(p, frame)
	case Print:
		return d.doPrint(p, frame)
	case GetKey:
		return d.doGetKey()
	case PutChar:
		return d.doPutChar(p, frame)
	case Malloc:
		return d.doMalloc(p, frame)
	case Free:
		return d.doFree(p, frame)
	case ProcessLoadStart:
		return d.doProcessLoadStart(p, frame)
	case Exec:
		return d.doExec(p, frame)
	case GetProcessArguments:
		return d.doGetProcessArguments(p, frame)
	case Exit:
		return d.doExit(p)
	case PrintMemory:
		return d.doPrintMemory()
	case RemoveLastChar:
		return d.doRemoveLastChar()
	case ClearScreen:
		return d.doClearScreen()
	case Fopen:
		return d.doFopen(p, frame)
	case Fread:
		return d.doFread(p, frame)
	case Fwrite:
		return d.doFwrite(p, frame)
	case Fseek:
		return d.doFseek(p, frame)
	case Fstat:
		return d.doFstat(p, frame)
	case Fclose:
		return d.doFclose(p, frame)
	case Reboot:
		return d.doReboot()
	case Shutdown:
		return d.doShutdown()
	default:
		return unknownResult
	}
}

func (d *Deps) doSerial(p *process.Process, frame *interrupt.Frame) uint32 {
	arg0, err := argAt(p.Directory, frame, 0)
	if err != nil {
		return unknownResult
	}
	s, err := usercopy.ReadCString(p.Directory, uintptr(arg0))
	if err != nil {
		return unknownResult
	}
	if d.Serial != nil {
		d.Serial(s)
	}
	return 0
}

func (d *Deps) doPrint(p *process.Process, frame *interrupt.Frame) uint32 {
	arg0, err := argAt(p.Directory, frame, 0)
	if err != nil {
		return unknownResult
	}
	s, err := usercopy.ReadCString(p.Directory, uintptr(arg0))
	if err != nil {
		return unknownResult
	}
	if d.Console != nil {
		d.Console.WriteString(s)
	}
	return 0
}

func (d *Deps) doGetKey() uint32 {
	if d.Keyboard == nil {
		return 0
	}
	b, ok := d.Keyboard.Pop()
	if !ok {
		return 0
	}
	return uint32(b)
}

func (d *Deps) doPutChar(p *process.Process, frame *interrupt.Frame) uint32 {
	arg0, err := argAt(p.Directory, frame, 0)
	if err != nil {
		return unknownResult
	}
	if d.Console != nil {
		d.Console.WriteCharColor(byte(arg0), 0x07)
	}
	return 0
}

func (d *Deps) doMalloc(p *process.Process, frame *interrupt.Frame) uint32 {
	size, err := argAt(p.Directory, frame, 0)
	if err != nil {
		return 0
	}
	vaddr, merr := d.Processes.Malloc(p.ID, int(size))
	if merr != nil {
		return 0
	}
	return vaddr
}

func (d *Deps) doFree(p *process.Process, frame *interrupt.Frame) uint32 {
	ptr, err := argAt(p.Directory, frame, 0)
	if err != nil {
		return unknownResult
	}
	d.Processes.Free(p.ID, ptr)
	return 0
}

func (d *Deps) doProcessLoadStart(p *process.Process, frame *interrupt.Frame) uint32 {
	arg0, err := argAt(p.Directory, frame, 0)
	if err != nil || d.FS == nil {
		return unknownResult
	}
	path, err := usercopy.ReadCString(p.Directory, uintptr(arg0))
	if err != nil {
		return unknownResult
	}

	data, ok := d.readWholeFile(path)
	if !ok {
		return unknownResult
	}

	pid := p.ID
	if _, serr := d.Processes.Spawn(data, &pid, nil); serr != nil {
		return unknownResult
	}
	d.Scheduler.Step()
	return 0
}

func (d *Deps) doExec(p *process.Process, frame *interrupt.Frame) uint32 {
	arg0, err := argAt(p.Directory, frame, 0)
	if err != nil || d.FS == nil {
		return unknownResult
	}

	args, err := readArgList(p.Directory, uintptr(arg0))
	if err != nil || len(args) == 0 {
		return unknownResult
	}

	data, ok := d.readWholeFile(args[0])
	if !ok {
		return unknownResult
	}

	pid := p.ID
	if _, serr := d.Processes.Spawn(data, &pid, args); serr != nil {
		return unknownResult
	}
	d.Scheduler.Step()
	return 0
}

// commandArgument mirrors the user-space linked-list node Exec's argv is
// built from: a fixed 512-byte argument string followed by a next pointer.
const commandArgumentSize = 516 // 512-byte string + 4-byte next pointer

func readArgList(dir *paging.Directory, nodeAddr uintptr) ([]string, *errors.KernelError) {
	var args []string
	for nodeAddr != 0 {
		s, err := usercopy.ReadCString(dir, nodeAddr)
		if err != nil {
			return nil, err
		}
		args = append(args, s)

		var nextBuf [4]byte
		if err := usercopy.CopyFromTask(dir, nodeAddr+512, nextBuf[:]); err != nil {
			return nil, err
		}
		nodeAddr = uintptr(binary.LittleEndian.Uint32(nextBuf[:]))
	}
	return args, nil
}

func (d *Deps) doGetProcessArguments(p *process.Process, frame *interrupt.Frame) uint32 {
	arg0, err := argAt(p.Directory, frame, 0)
	if err != nil {
		return unknownResult
	}
	var buf [8]byte
	binary.LittleEndian.PutUint32(buf[0:4], p.Argc)
	binary.LittleEndian.PutUint32(buf[4:8], p.ArgvPtr)
	if err := usercopy.CopyToTask(p.Directory, uintptr(arg0), buf[:]); err != nil {
		return unknownResult
	}
	return 0
}

func (d *Deps) doExit(p *process.Process) uint32 {
	d.Processes.Remove(p.ID)
	d.Scheduler.Step()
	return 0
}

func (d *Deps) doPrintMemory() uint32 {
	if d.Frames != nil {
		total, used, free := d.Frames.Stats()
		kfmt.Printf("frames: total=%d used=%d free=%d\n", total, used, free)
	}
	return 0
}

func (d *Deps) doRemoveLastChar() uint32 {
	if d.Console != nil {
		d.Console.Backspace()
	}
	return 0
}

func (d *Deps) doClearScreen() uint32 {
	if d.Console != nil {
		d.Console.Clear()
	}
	return 0
}

func (d *Deps) allocHandle(h hal.FileHandle) uint32 {
	for i, slot := range d.files {
		if slot == nil {
			d.files[i] = h
			return uint32(i + 1) // 0 is reserved for "invalid handle"
		}
	}
	return 0
}

func (d *Deps) handle(id uint32) hal.FileHandle {
	if id == 0 || int(id) > len(d.files) {
		return nil
	}
	return d.files[id-1]
}

func (d *Deps) readWholeFile(path string) ([]byte, bool) {
	buf, err := hal.ReadWholeFile(d.FS, path)
	return buf, err == nil
}

func (d *Deps) doFopen(p *process.Process, frame *interrupt.Frame) uint32 {
	arg0, err := argAt(p.Directory, frame, 0)
	if err != nil || d.FS == nil {
		return unknownResult
	}
	path, err := usercopy.ReadCString(p.Directory, uintptr(arg0))
	if err != nil {
		return unknownResult
	}
	f, ferr := d.FS.Open(path)
	if ferr != nil {
		return unknownResult
	}
	id := d.allocHandle(f)
	if id == 0 {
		f.Close()
		return unknownResult
	}
	return id
}

func (d *Deps) doFread(p *process.Process, frame *interrupt.Frame) uint32 {
	handleID, err := argAt(p.Directory, frame, 0)
	if err != nil {
		return unknownResult
	}
	userBuf, err := argAt(p.Directory, frame, 1)
	if err != nil {
		return unknownResult
	}
	n, err := argAt(p.Directory, frame, 2)
	if err != nil {
		return unknownResult
	}

	f := d.handle(handleID)
	if f == nil {
		return unknownResult
	}

	buf := make([]byte, n)
	read, rerr := f.Read(buf)
	if rerr != nil {
		return unknownResult
	}
	if cerr := usercopy.CopyToTask(p.Directory, uintptr(userBuf), buf[:read]); cerr != nil {
		return unknownResult
	}
	return uint32(read)
}

func (d *Deps) doFwrite(p *process.Process, frame *interrupt.Frame) uint32 {
	handleID, err := argAt(p.Directory, frame, 0)
	if err != nil {
		return unknownResult
	}
	userBuf, err := argAt(p.Directory, frame, 1)
	if err != nil {
		return unknownResult
	}
	n, err := argAt(p.Directory, frame, 2)
	if err != nil {
		return unknownResult
	}

	f := d.handle(handleID)
	if f == nil {
		return unknownResult
	}

	buf := make([]byte, n)
	if cerr := usercopy.CopyFromTask(p.Directory, uintptr(userBuf), buf); cerr != nil {
		return unknownResult
	}
	written, werr := f.Write(buf)
	if werr != nil {
		return unknownResult
	}
	return uint32(written)
}

func (d *Deps) doFseek(p *process.Process, frame *interrupt.Frame) uint32 {
	handleID, err := argAt(p.Directory, frame, 0)
	if err != nil {
		return unknownResult
	}
	offset, err := argAt(p.Directory, frame, 1)
	if err != nil {
		return unknownResult
	}
	whence, err := argAt(p.Directory, frame, 2)
	if err != nil {
		return unknownResult
	}

	f := d.handle(handleID)
	if f == nil {
		return unknownResult
	}
	pos, serr := f.Seek(int64(int32(offset)), int(whence))
	if serr != nil {
		return unknownResult
	}
	return uint32(pos)
}

func (d *Deps) doFstat(p *process.Process, frame *interrupt.Frame) uint32 {
	handleID, err := argAt(p.Directory, frame, 0)
	if err != nil {
		return unknownResult
	}
	userBuf, err := argAt(p.Directory, frame, 1)
	if err != nil {
		return unknownResult
	}

	f := d.handle(handleID)
	if f == nil {
		return unknownResult
	}
	info, serr := f.Stat()
	if serr != nil {
		return unknownResult
	}

	var buf [13]byte
	binary.LittleEndian.PutUint64(buf[0:8], uint64(info.Size))
	binary.LittleEndian.PutUint32(buf[8:12], info.Mode)
	if info.IsDir {
		buf[12] = 1
	}
	if cerr := usercopy.CopyToTask(p.Directory, uintptr(userBuf), buf[:]); cerr != nil {
		return unknownResult
	}
	return 0
}

func (d *Deps) doFclose(p *process.Process, frame *interrupt.Frame) uint32 {
	handleID, err := argAt(p.Directory, frame, 0)
	if err != nil {
		return unknownResult
	}
	f := d.handle(handleID)
	if f == nil {
		return unknownResult
	}
	d.files[handleID-1] = nil
	if cerr := f.Close(); cerr != nil {
		return unknownResult
	}
	return 0
}

// outbFn and outwFn are the port writes doReboot and doShutdown go through;
// host tests substitute them.
var (
	outbFn = cpu.Outb
	outwFn = cpu.Outw
)

// doReboot pulses bit 0 of the 8042 controller's command port, per
// spec.md §4.4 id 0x13.
func (d *Deps) doReboot() uint32 {
	outbFn(config.KeyboardStatusPort, 0x01)
	return 0
}

// doShutdown writes the QEMU/Bochs ACPI shutdown magic value to port
// 0x604, per spec.md §4.4 id 0x14.
func (d *Deps) doShutdown() uint32 {
	outwFn(0x604, 0x2000)
	return 0
}
