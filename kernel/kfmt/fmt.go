// Package kfmt provides a minimal, allocation-free Printf implementation
// for use before the kernel heap is available. fmt.Printf cannot be used
// in that window because it pulls in the reflect package, which triggers
// calls into the (not yet initialized) Go allocator.
package kfmt

import "io"

// maxNumberWidth bounds both the rendered digit count for writeInt and the
// largest width any verb will honor.
const maxNumberWidth = 32

var (
	errMissingArg   = []byte("(MISSING)")
	errWrongArgType = []byte("%!(WRONGTYPE)")
	errNoVerb       = []byte("%!(NOVERB)")
	errExtraArg     = []byte("%!(EXTRA)")
	trueValue       = []byte("true")
	falseValue      = []byte("false")

	// earlyBuf captures output produced before SetOutputSink is called.
	earlyBuf ringBuffer

	// outputSink is where Printf sends its output. Nil means "buffer into
	// earlyBuf".
	outputSink io.Writer
)

// SetOutputSink sets the target for Printf output and flushes anything
// accumulated in the early ring buffer into it.
func SetOutputSink(w io.Writer) {
	outputSink = w
	if w != nil {
		io.Copy(w, &earlyBuf)
	}
}

// Printf implements a subset of fmt.Printf: %s, %d, %o, %x, %t, plus %%.
// Width is an optional leading decimal before the verb; strings and base-10
// integers are space-padded, base-8/16 integers are zero-padded. Pointers
// (%p) are intentionally unsupported, for the same reflect-avoidance reason
// documented on the package.
func Printf(format string, args ...interface{}) {
	Fprintf(outputSink, format, args...)
}

// Fprintf behaves like Printf but writes to w (or the early ring buffer
// when w is nil). It scans format exactly once, left to right: a run of
// plain bytes is flushed verbatim as soon as a '%' (or the end of format)
// is reached, and everything between a '%' and its verb letter is consumed
// by a single width-digit scan, so there is no backtracking and no nested
// loop over a verb's body.
func Fprintf(w io.Writer, format string, args ...interface{}) {
	argIndex := 0
	litStart := 0
	i := 0

	for i < len(format) {
		if format[i] != '%' {
			i++
			continue
		}
		writeRun(w, format[litStart:i])
		i++

		width := 0
		for i < len(format) && format[i] >= '0' && format[i] <= '9' {
			width = width*10 + int(format[i]-'0')
			i++
		}

		if i >= len(format) {
			litStart = i
			break
		}
		verb := format[i]
		i++
		litStart = i

		switch {
		case verb == '%':
			writeRun(w, "%")
		case !isValueVerb(verb):
			doWrite(w, errNoVerb)
		case argIndex >= len(args):
			doWrite(w, errMissingArg)
		default:
			writeVerb(w, verb, args[argIndex], width)
			argIndex++
		}
	}
	writeRun(w, format[litStart:])

	for ; argIndex < len(args); argIndex++ {
		doWrite(w, errExtraArg)
	}
}

// isValueVerb reports whether verb is one of the recognized argument verbs
// (as opposed to '%' or anything unsupported), independent of whether an
// argument is actually available for it.
func isValueVerb(verb byte) bool {
	switch verb {
	case 'd', 'o', 'x', 's', 't':
		return true
	default:
		return false
	}
}

// writeVerb renders one already-consumed, already-validated verb letter
// against its argument.
func writeVerb(w io.Writer, verb byte, arg interface{}, width int) {
	switch verb {
	case 'd':
		writeInt(w, arg, 10, width)
	case 'o':
		writeInt(w, arg, 8, width)
	case 'x':
		writeInt(w, arg, 16, width)
	case 's':
		writeString(w, arg, width)
	case 't':
		writeBool(w, arg)
	}
}

func writeRun(w io.Writer, s string) {
	var b [1]byte
	for i := 0; i < len(s); i++ {
		b[0] = s[i]
		doWrite(w, b[:])
	}
}

func writeBool(w io.Writer, v interface{}) {
	b, ok := v.(bool)
	if !ok {
		doWrite(w, errWrongArgType)
		return
	}
	if b {
		doWrite(w, trueValue)
	} else {
		doWrite(w, falseValue)
	}
}

func writeString(w io.Writer, v interface{}, width int) {
	var s []byte
	switch t := v.(type) {
	case string:
		s = []byte(t)
	case []byte:
		s = t
	default:
		doWrite(w, errWrongArgType)
		return
	}
	padWith(w, ' ', width-len(s))
	doWrite(w, s)
}

func padWith(w io.Writer, ch byte, count int) {
	var b [1]byte
	b[0] = ch
	for i := 0; i < count; i++ {
		doWrite(w, b[:])
	}
}

// magnitudeOf widens any built-in signed/unsigned integer kind to an
// (unsigned magnitude, is-negative) pair; ok is false for anything else.
func magnitudeOf(v interface{}) (mag uint64, neg bool, ok bool) {
	switch t := v.(type) {
	case uint8:
		return uint64(t), false, true
	case uint16:
		return uint64(t), false, true
	case uint32:
		return uint64(t), false, true
	case uint64:
		return t, false, true
	case uintptr:
		return uint64(t), false, true
	case int8:
		return signedMagnitude(int64(t))
	case int16:
		return signedMagnitude(int64(t))
	case int32:
		return signedMagnitude(int64(t))
	case int64:
		return signedMagnitude(t)
	case int:
		return signedMagnitude(int64(t))
	default:
		return 0, false, false
	}
}

func signedMagnitude(v int64) (uint64, bool, bool) {
	if v < 0 {
		return uint64(-v), true, true
	}
	return uint64(v), false, true
}

// writeInt prints v (any built-in signed/unsigned integer type) in the
// given base, applying width of padding: base 10 space-pads, base 8/16
// zero-pads. A negative value's sign is always rendered first; zero-padding
// then fills between the sign and the digits (matching the conventional
// printf "-0005" shape), while space-padding surrounds the whole signed
// number instead.
func writeInt(w io.Writer, v interface{}, base uint64, width int) {
	mag, neg, ok := magnitudeOf(v)
	if !ok {
		doWrite(w, errWrongArgType)
		return
	}

	var digits [maxNumberWidth]byte
	n := 0
	for {
		d := byte(mag % base)
		if d < 10 {
			digits[n] = '0' + d
		} else {
			digits[n] = 'a' + (d - 10)
		}
		n++
		mag /= base
		if mag == 0 || n == len(digits) {
			break
		}
	}
	if neg && n < len(digits) {
		digits[n] = '-'
		n++
	}
	for l, r := 0, n-1; l < r; l, r = l+1, r-1 {
		digits[l], digits[r] = digits[r], digits[l]
	}

	padCh := byte(' ')
	if base != 10 {
		padCh = '0'
	}
	pad := width - n
	if pad < 0 {
		pad = 0
	}

	if neg && padCh == '0' {
		doWrite(w, digits[0:1])
		padWith(w, padCh, pad)
		doWrite(w, digits[1:n])
		return
	}
	padWith(w, padCh, pad)
	doWrite(w, digits[0:n])
}

func doWrite(w io.Writer, p []byte) {
	if w != nil {
		w.Write(p)
	} else {
		earlyBuf.Write(p)
	}
}
