package usercopy

import (
	"testing"

	"github.com/stretchr/testify/require"

	"coreos/kernel/config"
	"coreos/kernel/errors"
	"coreos/kernel/paging"
	"coreos/kernel/physmem"
)

// setupHarness installs an isolated simulated RAM and a directory whose
// first ramSize bytes of virtual address space are already backed by
// distinct physical frames, standing in for the stack/heap/image pages the
// loader and process layers map before any copy is ever attempted.
func setupHarness(t *testing.T, ramSize int) *paging.Directory {
	t.Helper()
	physmem.Init(ramSize)

	next := uint32(config.PageSize)
	paging.SetFrameAllocator(func() (uint32, *errors.KernelError) {
		f := next
		next += config.PageSize
		return f, nil
	})
	t.Cleanup(func() {
		paging.SetFrameAllocator(func() (uint32, *errors.KernelError) {
			return 0, errors.New(errors.Allocation, "paging", "no frame allocator installed")
		})
	})

	origSwitch := switchFn
	switchFn = func(*paging.Directory) {}
	t.Cleanup(func() { switchFn = origSwitch })

	kernelDir := paging.NewEmpty()
	SetKernelDirectory(kernelDir)
	t.Cleanup(func() { SetKernelDirectory(nil) })

	dir := paging.NewEmpty()
	frame := uintptr(0)
	for vaddr := uintptr(0); vaddr < uintptr(ramSize); vaddr += config.PageSize {
		require.Nil(t, dir.Map(vaddr, frame, paging.FlagPresent|paging.FlagUserAccess|paging.FlagWritable))
		frame += config.PageSize
	}
	return dir
}

func TestCopyRoundTripPreservesBytes(t *testing.T) {
	dir := setupHarness(t, 64*1024)

	src := []byte("hello, user space!")
	require.Nil(t, CopyToTask(dir, 0x2000, src))

	dst := make([]byte, len(src))
	require.Nil(t, CopyFromTask(dir, 0x2000, dst))

	require.Equal(t, src, dst)
}

func TestCopySpanningTwoPagesRoundTrips(t *testing.T) {
	dir := setupHarness(t, 64*1024)

	src := make([]byte, config.PageSize+32)
	for i := range src {
		src[i] = byte(i)
	}

	userVaddr := uintptr(config.PageSize - 16)
	require.Nil(t, CopyToTask(dir, userVaddr, src))

	dst := make([]byte, len(src))
	require.Nil(t, CopyFromTask(dir, userVaddr, dst))

	require.Equal(t, src, dst)
}

func TestCopyRestoresPreviousTempSlotMapping(t *testing.T) {
	dir := setupHarness(t, 64*1024)

	require.Nil(t, dir.Map(config.TempMappingSlot, 0x9000, paging.FlagPresent|paging.FlagWritable))

	require.Nil(t, CopyToTask(dir, 0x4000, []byte("x")))

	entry, err := dir.Get(config.TempMappingSlot)
	require.Nil(t, err)
	require.EqualValues(t, 0x9000, uintptr(entry)&^0xFFF, "usercopy must restore the slot's original mapping rather than leaking the temp alias")
}

func TestCopyUnmapsTempSlotWhenPreviouslyUnmapped(t *testing.T) {
	dir := setupHarness(t, 64*1024)

	require.Nil(t, CopyToTask(dir, 0x4000, []byte("x")))

	_, err := dir.Get(config.TempMappingSlot)
	require.NotNil(t, err, "temp slot must be unmapped again when it started unmapped")
}

func TestReadCStringStopsAtNUL(t *testing.T) {
	dir := setupHarness(t, 64*1024)

	require.Nil(t, CopyToTask(dir, 0x3000, []byte("hi\x00garbage")))

	s, err := ReadCString(dir, 0x3000)
	require.Nil(t, err)
	require.Equal(t, "hi", s)
}

func TestCopyFromTaskFailsOnUnmappedRange(t *testing.T) {
	dir := setupHarness(t, 64*1024)

	dst := make([]byte, 4)
	err := CopyFromTask(dir, 0x10_0000, dst)
	require.NotNil(t, err, "reading unmapped user memory must fail rather than panic")
}
