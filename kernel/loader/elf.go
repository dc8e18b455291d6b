// Package loader implements the ELF32/flat-binary loader (C6, spec.md
// §4.5): it validates an ELF header, maps each PT_LOAD segment into a
// target process's address space, and falls back to mapping the whole
// buffer as a flat binary when validation fails.
package loader

import (
	"encoding/binary"

	"coreos/kernel/config"
	"coreos/kernel/errors"
	"coreos/kernel/paging"
)

const (
	elfHeaderSize = 52
	phdrSize      = 32

	etExec = 2

	ptLoad = 1
	pfX    = 0x1
	pfW    = 0x2
)

var elfMagic = [4]byte{0x7F, 'E', 'L', 'F'}

type elfHeader struct {
	entry uint32
	phoff uint32
	phnum uint16
}

// validateELF reports whether data begins with a valid 32-bit LSB EXEC ELF
// header, per spec.md §4.5: magic, class, type, entry point, and a non-zero
// program header offset.
func validateELF(data []byte) (elfHeader, bool) {
	if len(data) < elfHeaderSize {
		return elfHeader{}, false
	}
	if [4]byte{data[0], data[1], data[2], data[3]} != elfMagic {
		return elfHeader{}, false
	}
	class := data[4]
	dataEncoding := data[5]
	if class != 1 || dataEncoding != 1 { // ELFCLASS32, ELFDATA2LSB
		return elfHeader{}, false
	}

	eType := binary.LittleEndian.Uint16(data[16:18])
	entry := binary.LittleEndian.Uint32(data[24:28])
	phoff := binary.LittleEndian.Uint32(data[28:32])
	phnum := binary.LittleEndian.Uint16(data[44:46])

	if eType != etExec {
		return elfHeader{}, false
	}
	if entry < config.ProgramVirtualAddress {
		return elfHeader{}, false
	}
	if phoff == 0 {
		return elfHeader{}, false
	}

	return elfHeader{entry: entry, phoff: phoff, phnum: phnum}, true
}

type programHeader struct {
	pType  uint32
	offset uint32
	vaddr  uint32
	filesz uint32
	memsz  uint32
	flags  uint32
}

func readProgramHeader(data []byte, off uint32) (programHeader, *errors.KernelError) {
	if int(off)+phdrSize > len(data) {
		return programHeader{}, errors.New(errors.InvalidArg, "loader", "program header out of bounds")
	}
	b := data[off:]
	return programHeader{
		pType:  binary.LittleEndian.Uint32(b[0:4]),
		offset: binary.LittleEndian.Uint32(b[4:8]),
		vaddr:  binary.LittleEndian.Uint32(b[8:12]),
		filesz: binary.LittleEndian.Uint32(b[16:20]),
		memsz:  binary.LittleEndian.Uint32(b[20:24]),
		flags:  binary.LittleEndian.Uint32(b[24:28]),
	}, nil
}

// Image describes a process's loaded program image: the physical buffer
// backing it (which must stay alive for the process's lifetime since mapped
// pages point directly into it) and the resolved entry point.
type Image struct {
	BufferPhysAddr uintptr
	BufferSize     int
	EntryPoint     uint32
	Mapped         []uintptr // page-aligned vaddrs mapped, for failure cleanup
}

// Load validates data as an ELF32 executable and maps its PT_LOAD segments
// into dir; if validation fails, it falls back to mapping the whole buffer
// as a flat binary at config.ProgramVirtualAddress (spec.md §4.5). bufAddr
// is the physical address of a buffer already sized len(data) and filled
// with data's bytes (the caller owns allocating and populating it, since
// that draws on the process's page-frame allocator, not this package's
// concern). On any failure every page this call mapped is unmapped again
// before returning.
func Load(dir *paging.Directory, data []byte, bufAddr uintptr) (*Image, *errors.KernelError) {
	img := &Image{BufferPhysAddr: bufAddr, BufferSize: len(data)}

	hdr, ok := validateELF(data)
	if !ok {
		return loadFlat(dir, img, data)
	}
	return loadELF(dir, img, data, hdr)
}

func loadELF(dir *paging.Directory, img *Image, data []byte, hdr elfHeader) (*Image, *errors.KernelError) {
	img.EntryPoint = hdr.entry

	for i := uint16(0); i < hdr.phnum; i++ {
		ph, err := readProgramHeader(data, hdr.phoff+uint32(i)*phdrSize)
		if err != nil {
			unmapAll(dir, img)
			return nil, err
		}
		if ph.pType != ptLoad {
			continue
		}

		start := paging.AlignAddressDown(uintptr(ph.vaddr))
		end := paging.AlignAddress(uintptr(ph.vaddr) + uintptr(ph.memsz))
		segOffset := paging.AlignAddressDown(uintptr(ph.offset))

		flags := paging.FlagPresent | paging.FlagUserAccess
		if ph.flags&pfW != 0 {
			flags |= paging.FlagWritable
		}

		pages := int((end - start) / config.PageSize)
		for p := 0; p < pages; p++ {
			vaddr := start + uintptr(p)*config.PageSize
			paddr := img.BufferPhysAddr + segOffset + uintptr(p)*config.PageSize
			if err := dir.Map(vaddr, paddr, flags); err != nil {
				unmapAll(dir, img)
				return nil, err
			}
			img.Mapped = append(img.Mapped, vaddr)
		}
	}

	return img, nil
}

func loadFlat(dir *paging.Directory, img *Image, data []byte) (*Image, *errors.KernelError) {
	img.EntryPoint = config.ProgramVirtualAddress

	size := paging.AlignAddress(uintptr(len(data)))
	flags := paging.FlagPresent | paging.FlagWritable | paging.FlagUserAccess
	for off := uintptr(0); off < size; off += config.PageSize {
		if err := dir.Map(config.ProgramVirtualAddress+off, img.BufferPhysAddr+off, flags); err != nil {
			unmapAll(dir, img)
			return nil, err
		}
		img.Mapped = append(img.Mapped, config.ProgramVirtualAddress+off)
	}

	return img, nil
}

func unmapAll(dir *paging.Directory, img *Image) {
	for _, vaddr := range img.Mapped {
		dir.Unmap(vaddr)
	}
	img.Mapped = nil
}
