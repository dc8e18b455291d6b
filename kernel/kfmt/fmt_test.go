package kfmt

import (
	"bytes"
	"testing"
)

func TestPrintf(t *testing.T) {
	defer func() { outputSink = nil }()

	// mute vet warnings about malformed printf formatting strings
	printfn := Printf

	specs := []struct {
		fn        func()
		expOutput string
	}{
		{
			func() { printfn("no args") },
			"no args",
		},
		{
			func() { printfn("%t", true) },
			"true",
		},
		{
			func() { printfn("%41t", false) },
			"false",
		},
		{
			func() { printfn("%s arg", "STRING") },
			"STRING arg",
		},
		{
			func() { printfn("%s arg", []byte("BYTE SLICE")) },
			"BYTE SLICE arg",
		},
		{
			func() { printfn("'%4s' padded", "AB") },
			"'  AB' padded",
		},
		{
			func() { printfn("'%2s' longer than padding", "ABCDE") },
			"'ABCDE' longer than padding",
		},
		{
			func() { printfn("uint arg: %d", uint8(10)) },
			"uint arg: 10",
		},
		{
			func() { printfn("uint arg: %o", uint16(0777)) },
			"uint arg: 777",
		},
		{
			func() { printfn("uint arg: 0x%x", uint32(0xbadf00d)) },
			"uint arg: 0xbadf00d",
		},
		{
			func() { printfn("uint arg with padding: '%10d'", uint64(123)) },
			"uint arg with padding: '       123'",
		},
		{
			func() { printfn("uint arg with padding: '%8x'", uint32(0xbeef)) },
			"uint arg with padding: '0000beef'",
		},
		{
			func() { printfn("uintptr 0x%x", uintptr(0xb8000)) },
			"uintptr 0xb8000",
		},
		{
			func() { printfn("int arg: %d", int8(-10)) },
			"int arg: -10",
		},
		{
			func() { printfn("int arg: %x", int32(-0xbadf00d)) },
			"int arg: -badf00d",
		},
		{
			func() { printfn("int arg with padding: '%10d'", int64(-12345678)) },
			"int arg with padding: ' -12345678'",
		},
		{
			func() { printfn("int arg with padding: '%10d'", int64(-123456789)) },
			"int arg with padding: '-123456789'",
		},
		{
			func() { printfn("zero-padded negative: '%6x'", int32(-0xff)) },
			"zero-padded negative: '-000ff'",
		},
		{
			func() { printfn("%%%s%d%t", "foo", 123, true) },
			`%foo123true`,
		},
		{
			func() { printfn("more args", "foo", "bar", "baz") },
			`more args%!(EXTRA)%!(EXTRA)%!(EXTRA)`,
		},
		{
			func() { printfn("missing args %s") },
			`missing args (MISSING)`,
		},
		{
			func() { printfn("bad verb %Q") },
			`bad verb %!(NOVERB)`,
		},
		{
			func() { printfn("not bool %t", "foo") },
			`not bool %!(WRONGTYPE)`,
		},
		{
			func() { printfn("not int %d", "foo") },
			`not int %!(WRONGTYPE)`,
		},
		{
			func() { printfn("not string %s", 123) },
			`not string %!(WRONGTYPE)`,
		},
	}

	var buf bytes.Buffer
	SetOutputSink(&buf)

	for specIndex, spec := range specs {
		buf.Reset()
		spec.fn()

		if got := buf.String(); got != spec.expOutput {
			t.Errorf("[spec %d] expected to get\n%q\ngot:\n%q", specIndex, spec.expOutput, got)
		}
	}
}

func TestFprintf(t *testing.T) {
	var buf bytes.Buffer

	exp := "hello world"
	Fprintf(&buf, exp)

	if got := buf.String(); got != exp {
		t.Fatalf("expected to get:\n%q\ngot:\n%q", exp, got)
	}
}

func TestPrintfBuffersUntilSinkAttached(t *testing.T) {
	defer func() { outputSink = nil; earlyBuf = ringBuffer{} }()
	outputSink = nil
	earlyBuf = ringBuffer{}

	Printf("buffered: %d", 42)

	var buf bytes.Buffer
	SetOutputSink(&buf)

	if got, exp := buf.String(), "buffered: 42"; got != exp {
		t.Fatalf("expected flushed early output %q; got %q", exp, got)
	}
}
