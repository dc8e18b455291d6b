package interrupt

import (
	"coreos/kernel/config"
	"coreos/kernel/cpu"
)

const (
	icw1Init     = 0x11
	icw4_8086    = 0x01
	picEOI       = 0x20
	kbcEnableAux = 0xAE
)

var (
	outbFn = cpu.Outb
	inbFn  = cpu.Inb
)

// RemapPIC reprograms the master/slave 8259 PICs so that IRQ0-7 land on
// vectors 0x20-0x27 and IRQ8-15 land on 0x28-0x2F, via the standard 4-ICW
// sequence (spec.md §4.3/§6).
func RemapPIC() {
	// ICW1: start initialization, expect ICW4.
	outbFn(config.PICMasterCommandPort, icw1Init)
	outbFn(config.PICSlaveCommandPort, icw1Init)

	// ICW2: vector offsets.
	outbFn(config.PICMasterDataPort, config.PICMasterOffset)
	outbFn(config.PICSlaveDataPort, config.PICSlaveOffset)

	// ICW3: master/slave wiring (slave lives on master's IRQ2).
	outbFn(config.PICMasterDataPort, 1<<2)
	outbFn(config.PICSlaveDataPort, 2)

	// ICW4: 8086 mode.
	outbFn(config.PICMasterDataPort, icw4_8086)
	outbFn(config.PICSlaveDataPort, icw4_8086)

	// Unmask everything; individual drivers mask what they don't use.
	outbFn(config.PICMasterDataPort, 0)
	outbFn(config.PICSlaveDataPort, 0)
}

// SendEOI acknowledges an IRQ so the PIC will deliver further interrupts.
// The slave PIC must also be acknowledged for IRQ8-15.
func SendEOI(vector uint32) {
	if vector < config.IRQBase || vector > config.IRQLast {
		return
	}
	if vector >= config.PICSlaveOffset {
		outbFn(config.PICSlaveCommandPort, picEOI)
	}
	outbFn(config.PICMasterCommandPort, picEOI)
}

// UnmaskKeyboard enables the PS/2 keyboard port by writing the controller
// command that re-enables the auxiliary/keyboard interface.
func UnmaskKeyboard() {
	outbFn(config.KeyboardStatusPort, kbcEnableAux)
}

// ReadScancode reads one raw scancode byte from the keyboard data port.
func ReadScancode() uint8 {
	return inbFn(config.KeyboardDataPort)
}
