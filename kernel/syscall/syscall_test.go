package syscall

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"

	"coreos/kernel/config"
	"coreos/kernel/hal"
	"coreos/kernel/interrupt"
	"coreos/kernel/physmem"
	"coreos/kernel/pmm"
	"coreos/kernel/process"
	"coreos/kernel/task"
	"coreos/kernel/usercopy"
)

func setup(t *testing.T) (*Deps, *process.Process, *interrupt.Frame) {
	t.Helper()
	physmem.Init(16 * 1024 * 1024)

	frames := pmm.NewBitmapAllocator(0, (16*1024*1024)/config.PageSize)
	sched := task.NewScheduler()
	table := process.NewTable(frames, sched)

	data := make([]byte, config.PageSize)
	pid, err := table.Spawn(data, nil, []string{"init"})
	require.Nil(t, err)
	p := table.Get(pid)

	frame := &interrupt.Frame{}
	frame.ESP = uint32(sched.Current().Frame.ESP)

	return &Deps{
		Processes: table,
		Scheduler: sched,
		Keyboard:  hal.NewKeyboardQueue(),
		Frames:    frames,
	}, p, frame
}

// pushArg writes a 4-byte argument word at the slot argAt reads from,
// mirroring what a user-space syscall stub would have pushed onto its own
// stack before executing int 0x80.
func pushArg(t *testing.T, p *process.Process, frame *interrupt.Frame, i int, v uint32) {
	t.Helper()
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], v)
	vaddr := uintptr(frame.ESP) + uintptr(i)*4
	require.Nil(t, usercopy.CopyToTask(p.Directory, vaddr, buf[:]))
}

func TestEveryTableIDHasARegisteredHandler(t *testing.T) {
	d, p, frame := setup(t)

	origOutb, origOutw := outbFn, outwFn
	t.Cleanup(func() { outbFn, outwFn = origOutb, origOutw })
	outbFn = func(uint16, uint8) {}
	outwFn = func(uint16, uint16) {}

	ids := []uint32{
		Serial, Print, GetKey, PutChar, Malloc, Free, ProcessLoadStart, Exec,
		GetProcessArguments, Exit, PrintMemory, RemoveLastChar, ClearScreen,
		Fopen, Fread, Fwrite, Fseek, Fstat, Fclose, Reboot, Shutdown,
	}
	require.Len(t, ids, 21, "spec.md §4.4 lists ids 0x00-0x14")

	for _, id := range ids {
		if id == Exit {
			continue // terminates the process; exercised in its own test
		}
		frame.EAX = id
		require.NotPanics(t, func() { Dispatch(d, p, frame) }, "id %#x must not panic", id)
	}
}

func TestUnknownIDReturnsMaxUint32(t *testing.T) {
	d, p, frame := setup(t)
	frame.EAX = 0xFF
	require.Equal(t, unknownResult, Dispatch(d, p, frame))
}

func TestGetKeyPopsFromQueue(t *testing.T) {
	d, p, frame := setup(t)
	frame.EAX = GetKey
	require.EqualValues(t, 0, Dispatch(d, p, frame), "empty queue returns 0")

	d.Keyboard.Push('a')
	require.EqualValues(t, 'a', Dispatch(d, p, frame))
}

func TestMallocThenFreeRoundTrips(t *testing.T) {
	d, p, frame := setup(t)
	frame.EAX = Malloc
	pushArg(t, p, frame, 0, 64)
	vaddr := Dispatch(d, p, frame)
	require.NotZero(t, vaddr)

	_, perr := p.Directory.GetPhysicalAddress(uintptr(vaddr))
	require.Nil(t, perr)

	frame.EAX = Free
	pushArg(t, p, frame, 0, vaddr)
	Dispatch(d, p, frame)

	_, perr = p.Directory.GetPhysicalAddress(uintptr(vaddr))
	require.NotNil(t, perr)
}

func TestExitRemovesProcessAndReschedules(t *testing.T) {
	d, p, frame := setup(t)
	pid := p.ID
	frame.EAX = Exit
	Dispatch(d, p, frame)

	require.Nil(t, d.Processes.Get(pid))
	require.Nil(t, d.Scheduler.Current())
}

func TestGetProcessArgumentsWritesArgcAndArgv(t *testing.T) {
	d, p, frame := setup(t)
	frame.EAX = GetProcessArguments

	out := uint32(config.UserHeapBase)
	_, merr := d.Processes.Malloc(p.ID, 16)
	require.Nil(t, merr)
	pushArg(t, p, frame, 0, out)

	res := Dispatch(d, p, frame)
	require.Zero(t, res)

	var buf [8]byte
	require.Nil(t, usercopy.CopyFromTask(p.Directory, uintptr(out), buf[:]))
	require.Equal(t, p.Argc, binary.LittleEndian.Uint32(buf[0:4]))
	require.Equal(t, p.ArgvPtr, binary.LittleEndian.Uint32(buf[4:8]))
}
