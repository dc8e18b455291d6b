package paging

import (
	"testing"

	"coreos/kernel/errors"

	"github.com/stretchr/testify/require"
)

func withFakeFrameAllocator(t *testing.T) {
	t.Helper()
	next := uint32(0x10000)
	orig := frameAllocFn
	frameAllocFn = func() (uint32, *errors.KernelError) {
		f := next
		next += 0x1000
		return f, nil
	}
	t.Cleanup(func() { frameAllocFn = orig })
}

func TestMapThenGetRoundTrips(t *testing.T) {
	withFakeFrameAllocator(t)
	d := NewEmpty()

	vaddr := uintptr(0x0040_1000)
	paddr := uintptr(0x0020_0000)

	require.Nil(t, d.Map(vaddr, paddr, FlagPresent|FlagWritable|FlagUserAccess))

	entry, err := d.Get(vaddr)
	require.Nil(t, err)
	require.EqualValues(t, paddr, uintptr(entry)&^0xFFF, "frame bits must match the mapped physical address")
	require.True(t, Flag(entry)&(FlagPresent|FlagWritable|FlagUserAccess) == FlagPresent|FlagWritable|FlagUserAccess,
		"returned flags must be a superset of those requested")
}

func TestMapRejectsUnalignedAddresses(t *testing.T) {
	withFakeFrameAllocator(t)
	d := NewEmpty()

	require.NotNil(t, d.Map(0x1001, 0x2000, FlagPresent))
	require.NotNil(t, d.Map(0x1000, 0x2001, FlagPresent))
}

func TestMapOverwritesPreviousMapping(t *testing.T) {
	withFakeFrameAllocator(t)
	d := NewEmpty()

	require.Nil(t, d.Map(0x1000, 0x2000, FlagPresent))
	require.Nil(t, d.Map(0x1000, 0x3000, FlagPresent|FlagWritable))

	entry, err := d.Get(0x1000)
	require.Nil(t, err)
	require.EqualValues(t, 0x3000, uintptr(entry)&^0xFFF)
}

func TestDirectoryEntryFlagsAreORofTableEntries(t *testing.T) {
	withFakeFrameAllocator(t)
	d := NewEmpty()

	require.Nil(t, d.Map(0x0000_0000, 0x1000, FlagPresent))
	require.Nil(t, d.Map(0x0000_1000, 0x2000, FlagPresent|FlagWritable))
	require.Nil(t, d.Map(0x0000_2000, 0x3000, FlagPresent|FlagUserAccess))

	dirIndex, _ := split(0)
	var wantFlags uint32
	for _, e := range d.tables[dirIndex] {
		wantFlags |= e & flagMask
	}

	require.EqualValues(t, wantFlags, d.entries[dirIndex]&flagMask)
}

func TestGetPhysicalAddressPreservesOffset(t *testing.T) {
	withFakeFrameAllocator(t)
	d := NewEmpty()
	require.Nil(t, d.Map(0x2000, 0x5000, FlagPresent))

	paddr, err := d.GetPhysicalAddress(0x2123)
	require.Nil(t, err)
	require.EqualValues(t, 0x5123, paddr)
}

func TestGetUnmappedReturnsErrUnmapped(t *testing.T) {
	d := NewEmpty()
	_, err := d.Get(0x9999_0000)
	require.Same(t, ErrUnmapped, err)
}

func TestMapRangeAndMapTo(t *testing.T) {
	withFakeFrameAllocator(t)
	d := NewEmpty()

	require.Nil(t, d.MapRange(0x100000, 0x200000, 4, FlagPresent|FlagWritable))
	for i := 0; i < 4; i++ {
		off := uintptr(i) * 0x1000
		entry, err := d.Get(0x100000 + off)
		require.Nil(t, err)
		require.EqualValues(t, 0x200000+off, uintptr(entry)&^0xFFF)
	}

	require.Nil(t, d.MapTo(0x300000, 0x400000, 0x402000, FlagPresent))
	_, err := d.Get(0x301000)
	require.Nil(t, err)
}

func TestAlignAddress(t *testing.T) {
	require.EqualValues(t, 0x1000, AlignAddress(0x1))
	require.EqualValues(t, 0x0, AlignAddressDown(0xFFF))
	require.EqualValues(t, 0x1000, AlignAddress(0x1000))
}
