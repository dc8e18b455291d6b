package kernel

import (
	"testing"

	"github.com/stretchr/testify/require"

	"coreos/kernel/config"
	"coreos/kernel/errors"
	"coreos/kernel/hal"
	"coreos/kernel/interrupt"
	"coreos/kernel/paging"
	"coreos/kernel/physmem"
	"coreos/kernel/pmm"
	"coreos/kernel/process"
	"coreos/kernel/syscall"
	"coreos/kernel/task"
)

func flatBinary(n int) []byte {
	data := make([]byte, n)
	for i := range data {
		data[i] = 0xAA
	}
	return data
}

// newTestKernel builds a facade whose subsystems are real. It substitutes no
// cpu hook itself: tests whose path reaches directorySwitchFn,
// loadDataSegmentsFn or the interrupt-mask hooks call withFakeCPU first.
func newTestKernel(t *testing.T) *Kernel {
	t.Helper()
	physmem.Init(64 * 1024 * 1024)
	frames := pmm.NewBitmapAllocator(0, (64*1024*1024)/config.PageSize)
	paging.SetFrameAllocator(func() (uint32, *errors.KernelError) {
		f, err := frames.AllocFrame()
		if err != nil {
			return 0, err
		}
		return uint32(f) * config.PageSize, nil
	})

	kernelDir, err := paging.New4GB(paging.FlagPresent | paging.FlagWritable | paging.FlagUserAccess)
	require.Nil(t, err)

	sched := task.NewScheduler()
	procs := process.NewTable(frames, sched)
	kb := hal.NewKeyboardQueue()

	k := &Kernel{
		KernelDir:  kernelDir,
		Scheduler:  sched,
		Processes:  procs,
		Frames:     frames,
		Keyboard:   kb,
		blockDevices: make(map[string]hal.BlockDevice),
		syscallDeps: &syscall.Deps{
			Processes: procs,
			Scheduler: sched,
			Keyboard:  kb,
			Frames:    frames,
		},
	}
	return k
}

func withFakeCPU(t *testing.T) {
	t.Helper()
	origSwitch := directorySwitchFn
	origLoadSeg := loadDataSegmentsFn
	origEnabled := interruptsEnabledFn
	origDisable := disableInterruptsFn
	origEnable := enableInterruptsFn
	t.Cleanup(func() {
		directorySwitchFn = origSwitch
		loadDataSegmentsFn = origLoadSeg
		interruptsEnabledFn = origEnabled
		disableInterruptsFn = origDisable
		enableInterruptsFn = origEnable
	})

	directorySwitchFn = func(*paging.Directory) {}
	loadDataSegmentsFn = func(uint16) {}
	enabled := true
	interruptsEnabledFn = func() bool { return enabled }
	disableInterruptsFn = func() { enabled = false }
	enableInterruptsFn = func() { enabled = true }
}

func TestWithoutInterruptsRestoresEnabledState(t *testing.T) {
	withFakeCPU(t)
	require.True(t, interruptsEnabledFn())

	ran := false
	WithoutInterrupts(func() {
		ran = true
		require.False(t, interruptsEnabledFn(), "interrupts must be masked inside fn")
	})

	require.True(t, ran)
	require.True(t, interruptsEnabledFn(), "prior enabled state must be restored")
}

func TestWithoutInterruptsLeavesDisabledStateDisabled(t *testing.T) {
	withFakeCPU(t)
	disableInterruptsFn()

	WithoutInterrupts(func() {})

	require.False(t, interruptsEnabledFn(), "must not enable interrupts that were off on entry")
}

func TestKernelPageSwitchesDirectoryAndReloadsSegments(t *testing.T) {
	withFakeCPU(t)
	k := newTestKernel(t)

	var gotDir *paging.Directory
	directorySwitchFn = func(d *paging.Directory) { gotDir = d }
	var gotSelector uint16
	loadDataSegmentsFn = func(sel uint16) { gotSelector = sel }

	k.KernelPage()

	require.Same(t, k.KernelDir, gotDir)
	require.EqualValues(t, config.KernelDataSelector, gotSelector)
}

func TestMountAndRetrieveBlockDevice(t *testing.T) {
	k := newTestKernel(t)
	dev := fakeBlockDevice{}

	k.MountBlockDevice("disk0", dev)

	require.Equal(t, dev, k.BlockDevice("disk0"))
	require.Nil(t, k.BlockDevice("nonexistent"))
}

func TestMountFileSystemWiresSyscallDeps(t *testing.T) {
	k := newTestKernel(t)
	fs := fakeFS{files: map[string][]byte{}}

	k.MountFileSystem(fs)

	require.Equal(t, fs, k.syscallDeps.FS)
}

func TestSetSerialWiresSyscallDeps(t *testing.T) {
	k := newTestKernel(t)

	var wrote string
	k.SetSerial(func(s string) { wrote = s })
	k.syscallDeps.Serial("hello")
	require.Equal(t, "hello", wrote)
}

func TestBootFailsWithoutFileSystem(t *testing.T) {
	k := newTestKernel(t)
	err := k.Boot("/bin/init")
	require.NotNil(t, err)
	require.Equal(t, errors.NotFound, err.Kind)
}

func TestBootSpawnsProcessFromFileSystem(t *testing.T) {
	withFakeCPU(t)
	k := newTestKernel(t)
	data := flatBinary(config.PageSize)
	k.MountFileSystem(fakeFS{files: map[string][]byte{"/bin/init": data}})

	err := k.Boot("/bin/init")

	require.Nil(t, err)
	require.NotNil(t, k.Scheduler.Current())
}

func TestDispatchSyscallWritesResultIntoEAX(t *testing.T) {
	withFakeCPU(t)
	k := newTestKernel(t)
	pid, err := k.Processes.Spawn(flatBinary(config.PageSize), nil, []string{"init"})
	require.Nil(t, err)

	f := &interrupt.Frame{Vector: config.VectorSyscall}
	f.EAX = syscall.Exit

	k.dispatchSyscall(f)

	require.Zero(t, f.EAX, "Exit's result (0) must be written into EAX")
	require.Nil(t, k.Processes.Get(pid), "Exit must remove the process")
}

func TestTerminateCurrentRemovesProcess(t *testing.T) {
	withFakeCPU(t)
	k := newTestKernel(t)
	pid, err := k.Processes.Spawn(flatBinary(config.PageSize), nil, []string{"init"})
	require.Nil(t, err)

	k.terminateCurrent("test")

	require.Nil(t, k.Processes.Get(pid))
}

func TestCurrentFrameReturnsCurrentTasksSavedFrame(t *testing.T) {
	withFakeCPU(t)
	k := newTestKernel(t)
	_, err := k.Processes.Spawn(flatBinary(config.PageSize), nil, []string{"init"})
	require.Nil(t, err)

	cur := k.Scheduler.Current()
	require.NotNil(t, cur)

	got := k.currentFrame()

	require.Same(t, &cur.Frame, got)
}

func TestCurrentFrameNilWithNoCurrentTask(t *testing.T) {
	k := newTestKernel(t)

	require.Nil(t, k.currentFrame())
}

type fakeBlockDevice struct{}

func (fakeBlockDevice) ReadSectors(lba uint64, n int, buf []byte) (int, *errors.KernelError) {
	return 0, nil
}
func (fakeBlockDevice) WriteSectors(lba uint64, n int, buf []byte) (int, *errors.KernelError) {
	return 0, nil
}
func (fakeBlockDevice) SectorSize() int { return 512 }
func (fakeBlockDevice) Sync()           {}

type fakeFS struct {
	files map[string][]byte
}

func (f fakeFS) Open(path string) (hal.FileHandle, *errors.KernelError) {
	data, ok := f.files[path]
	if !ok {
		return nil, errors.New(errors.NotFound, "fakefs", "no such file")
	}
	return &fakeFileHandle{data: data}, nil
}
func (f fakeFS) ReadDir(path string) ([]string, *errors.KernelError) { return nil, nil }
func (f fakeFS) Create(path string) (hal.FileHandle, *errors.KernelError) {
	return nil, errors.New(errors.InvalidArg, "fakefs", "read-only")
}
func (f fakeFS) Remove(path string) *errors.KernelError { return nil }
func (f fakeFS) Metadata(path string) (hal.FileInfo, *errors.KernelError) {
	data, ok := f.files[path]
	if !ok {
		return hal.FileInfo{}, errors.New(errors.NotFound, "fakefs", "no such file")
	}
	return hal.FileInfo{Size: int64(len(data))}, nil
}
func (f fakeFS) Chmod(path string, mode uint32) *errors.KernelError      { return nil }
func (f fakeFS) Chown(path string, uid, gid uint32) *errors.KernelError { return nil }

type fakeFileHandle struct {
	data []byte
	pos  int
}

func (h *fakeFileHandle) Read(buf []byte) (int, *errors.KernelError) {
	n := copy(buf, h.data[h.pos:])
	h.pos += n
	return n, nil
}
func (h *fakeFileHandle) Write(buf []byte) (int, *errors.KernelError) {
	return 0, errors.New(errors.InvalidArg, "fakefs", "read-only")
}
func (h *fakeFileHandle) Seek(offset int64, whence int) (int64, *errors.KernelError) {
	return 0, nil
}
func (h *fakeFileHandle) Stat() (hal.FileInfo, *errors.KernelError) {
	return hal.FileInfo{Size: int64(len(h.data))}, nil
}
func (h *fakeFileHandle) Close() *errors.KernelError { return nil }
