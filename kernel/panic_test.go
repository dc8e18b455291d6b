package kernel

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"coreos/kernel/errors"
	"coreos/kernel/kfmt"
)

func TestPanic(t *testing.T) {
	defer func(orig func()) { haltFn = orig }(haltFn)

	var haltCalled bool
	haltFn = func() { haltCalled = true }

	t.Run("with error", func(t *testing.T) {
		haltCalled = false
		var buf bytes.Buffer
		kfmt.SetOutputSink(&buf)

		Panic(errors.New(errors.Io, "test", "panic test"))

		exp := "\n-----------------------------------\n[test] unrecoverable error: panic test\n*** kernel panic: system halted ***\n-----------------------------------\n"
		require.Equal(t, exp, buf.String())
		require.True(t, haltCalled, "Panic must always call haltFn")
	})

	t.Run("without error", func(t *testing.T) {
		haltCalled = false
		var buf bytes.Buffer
		kfmt.SetOutputSink(&buf)

		Panic(nil)

		exp := "\n-----------------------------------\n*** kernel panic: system halted ***\n-----------------------------------\n"
		require.Equal(t, exp, buf.String())
		require.True(t, haltCalled)
	})
}
