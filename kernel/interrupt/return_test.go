package interrupt

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReturnToUserSetsInterruptFlag(t *testing.T) {
	defer func(orig func(*Frame)) { returnToUserFn = orig }(returnToUserFn)

	var got *Frame
	returnToUserFn = func(f *Frame) { got = f }

	f := &Frame{EFlags: 0x202 &^ (1 << 9)}
	ReturnToUser(f)

	require.Same(t, f, got)
	require.NotZero(t, got.EFlags&(1<<9), "IF must be set before returning to user")
}

func TestReturnToUserPreservesOtherFlagBits(t *testing.T) {
	defer func(orig func(*Frame)) { returnToUserFn = orig }(returnToUserFn)
	returnToUserFn = func(*Frame) {}

	f := &Frame{EFlags: 1 << 1} // reserved bit 1, always set on real hardware
	ReturnToUser(f)

	require.EqualValues(t, (1<<1)|(1<<9), f.EFlags)
}
