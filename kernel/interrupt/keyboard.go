package interrupt

const (
	scancodeShiftLeft  = 0x2A
	scancodeShiftRight = 0x36
	scancodeCapsLock   = 0x3A
	scancodeCtrl       = 0x1D
	scancodeReleased   = 0x80

	keyESC   = 0x1B
	keyBS    = 0x08
	keyEnter = 0x0D
)

// keyboardTranslator holds the shift/ctrl/caps modifier state used to turn
// raw PS/2 scancodes into ASCII bytes (spec.md §4.3: "translate via a
// scancode table honoring shift/ctrl/caps state").
type keyboardTranslator struct {
	shiftLeft, shiftRight bool
	capsLock              bool
	ctrl                  bool
}

// translate consumes one scancode and returns the ASCII byte it produces, or
// ok=false if the scancode was a modifier key-up/key-down event or has no
// printable mapping.
func (k *keyboardTranslator) translate(scancode uint8) (b uint8, ok bool) {
	released := scancode&scancodeReleased != 0
	code := scancode &^ scancodeReleased

	switch code {
	case scancodeShiftLeft:
		k.shiftLeft = !released
		return 0, false
	case scancodeShiftRight:
		k.shiftRight = !released
		return 0, false
	case scancodeCtrl:
		k.ctrl = !released
		return 0, false
	case scancodeCapsLock:
		if !released {
			k.capsLock = !k.capsLock
		}
		return 0, false
	}

	if released {
		return 0, false
	}

	shifted := k.shiftLeft || k.shiftRight
	if k.capsLock {
		shifted = !shifted
	}

	table := &scancodeSetOne
	if shifted {
		table = &scancodeSetTwo
	}
	if int(code) >= len(table) {
		return 0, false
	}
	ch := table[code]
	if ch == 0 {
		return 0, false
	}
	return ch, true
}

// scancodeSetOne/scancodeSetTwo are the unshifted/shifted US QWERTY
// translation tables for PS/2 scancode set 1.
var scancodeSetOne = [92]uint8{
	0x00, keyESC, '1', '2',
	'3', '4', '5', '6',
	'7', '8', '9', '0',
	'-', '=', keyBS, '\t',
	'q', 'w', 'e', 'r',
	't', 'y', 'u', 'i',
	'o', 'p', '[', ']',
	keyEnter, 0x00, 'a', 's',
	'd', 'f', 'g', 'h',
	'j', 'k', 'l', ';',
	'\'', '`', 0x00, '\\',
	'z', 'x', 'c', 'v',
	'b', 'n', 'm', ',',
	'.', '/', 0x00, '*',
	0x00, ' ', 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, '7',
	'8', '9', '-', '4',
	'5', '6', '+', '1',
	'2', '3', '0', '.',
	0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00,
}

var scancodeSetTwo = [92]uint8{
	0x00, keyESC, '!', '@',
	'#', '$', '%', '^',
	'&', '*', '(', ')',
	'_', '+', keyBS, '\t',
	'Q', 'W', 'E', 'R',
	'T', 'Y', 'U', 'I',
	'O', 'P', '{', '}',
	keyEnter, 0x00, 'A', 'S',
	'D', 'F', 'G', 'H',
	'J', 'K', 'L', ':',
	'"', '~', 0x00, '|',
	'Z', 'X', 'C', 'V',
	'B', 'N', 'M', '<',
	'>', '?', 0x00, '*',
	0x00, ' ', 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, '7',
	'8', '9', '-', '4',
	'5', '6', '+', '1',
	'2', '3', '0', '.',
	0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00,
}
