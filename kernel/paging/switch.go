package paging

import (
	"coreos/kernel/cpu"
	"unsafe"
)

// switchFn loads a directory's physical address into CR3. Tests substitute
// it so Directory.Switch never has to touch a real CR3.
var switchFn = cpu.WriteCR3

// activeFn returns the physical address currently loaded in CR3. Tests
// substitute it the same way.
var activeFn = cpu.ReadCR3

// Switch loads this directory into CR3, making it the active address space.
func (d *Directory) Switch() {
	switchFn(uint32(d.PhysAddr()))
}

func ptrToUint(d *Directory) uintptr {
	return uintptr(unsafe.Pointer(d))
}
