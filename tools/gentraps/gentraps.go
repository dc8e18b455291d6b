// Command gentraps emits the generated trap-stub family kernel/interrupt
// needs for spec.md §4.3: one naked assembly entry point per IDT vector,
// plus the matching Go declarations and the table that records each stub's
// address for BuildIDT. It is the coreos analogue of gopher-os's
// tools/redirects:
// both are small build-time generators that live outside the kernel image
// and produce artifacts the kernel links in, rather than doing anything at
// boot time themselves.
//
// Run from the repository root:
//
//	go run ./tools/gentraps > kernel/interrupt/stubs_386.s
//
// The three emitted files (stubs_386.s, stub_decls_386.go,
// stub_table_386.go) are checked into the tree already; re-run this only
// after changing errorCodeVectors below.
package main

import (
	"flag"
	"fmt"
	"os"
)

// errorCodeVectors mirrors interrupt.errorCodeVectors: the CPU already
// pushes an error code for these vectors, so their stub must not push a
// dummy one (spec.md §4.3's error-code normalization).
var errorCodeVectors = map[int]bool{8: true, 10: true, 11: true, 12: true, 13: true, 14: true}

const vectorCount = 256

func main() {
	target := flag.String("out", "asm", "output to generate: asm, decls, or table")
	flag.Parse()

	switch *target {
	case "asm":
		emitAsm(os.Stdout)
	case "decls":
		emitDecls(os.Stdout)
	case "table":
		emitTable(os.Stdout)
	default:
		fmt.Fprintf(os.Stderr, "gentraps: unknown -out %q\n", *target)
		os.Exit(1)
	}
}

func emitAsm(w *os.File) {
	fmt.Fprint(w, asmHeader)
	for v := 0; v < vectorCount; v++ {
		if errorCodeVectors[v] {
			fmt.Fprintf(w, asmErrStub, v, v)
		} else {
			fmt.Fprintf(w, asmPlainStub, v, v)
		}
	}
}

func emitDecls(w *os.File) {
	fmt.Fprint(w, declsHeader)
	for v := 0; v < vectorCount; v++ {
		fmt.Fprintf(w, "func stub%03d()\n", v)
	}
}

func emitTable(w *os.File) {
	fmt.Fprint(w, tableHeader)
	for v := 0; v < vectorCount; v++ {
		fmt.Fprintf(w, "\tstubAddr[%d] = funcPC(stub%03d)\n", v, v)
	}
	fmt.Fprint(w, tableFooter)
}

const asmHeader = `// Code generated by tools/gentraps. DO NOT EDIT.

// Each stub pushes a dummy error code if the CPU doesn't supply one,
// pushes its own vector number, saves the general registers with PUSHAL,
// calls HandleTrap with the resulting frame pointer, restores registers,
// discards the vector/error-code words, and returns via IRETL
// (spec.md §4.3).

#include "textflag.h"

`

const asmPlainStub = `TEXT ·stub%03d(SB), NOSPLIT, $0-0
	PUSHL	$0
	PUSHL	$%d
	PUSHAL
	PUSHL	SP
	CALL	·HandleTrap(SB)
	ADDL	$4, SP
	POPAL
	ADDL	$8, SP
	IRETL

`

const asmErrStub = `TEXT ·stub%03d(SB), NOSPLIT, $0-0
	PUSHL	$%d
	PUSHAL
	PUSHL	SP
	CALL	·HandleTrap(SB)
	ADDL	$4, SP
	POPAL
	ADDL	$8, SP
	IRETL

`

const declsHeader = `// Code generated by tools/gentraps. DO NOT EDIT.

package interrupt

// Each stubNNN is implemented in stubs_386.s; its body is just an entry
// address as far as Go is concerned (see stub_table_386.go).

`

const tableHeader = `// Code generated by tools/gentraps. DO NOT EDIT.

package interrupt

func init() {
`

const tableFooter = `}
`
