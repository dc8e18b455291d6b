package interrupt

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsErrorCodeVector(t *testing.T) {
	for _, v := range []uint32{8, 10, 11, 12, 13, 14} {
		require.True(t, IsErrorCodeVector(v), "vector %d", v)
	}
	for _, v := range []uint32{0, 1, 9, 15, 0x20, 0x21} {
		require.False(t, IsErrorCodeVector(v), "vector %d", v)
	}
}

func TestRegisterRejectsErrorCodeVector(t *testing.T) {
	reg := NewRegistry()
	err := reg.Register(13, func(*Frame) {})
	require.Error(t, err)
}

func TestRegisterErrRejectsPlainVector(t *testing.T) {
	reg := NewRegistry()
	err := reg.RegisterErr(0, func(uint32, *Frame) {})
	require.Error(t, err)
}

func TestRegisterOutOfRange(t *testing.T) {
	reg := NewRegistry()
	require.Error(t, reg.Register(VectorCount, func(*Frame) {}))
	require.Error(t, reg.RegisterErr(VectorCount, func(uint32, *Frame) {}))
}

func TestDispatchPlain(t *testing.T) {
	reg := NewRegistry()
	var got uint32
	require.NoError(t, reg.Register(0x20, func(f *Frame) { got = f.Vector }))

	reg.Dispatch(&Frame{Vector: 0x20})
	require.EqualValues(t, 0x20, got)
}

func TestDispatchErrorCode(t *testing.T) {
	reg := NewRegistry()
	var gotCode uint32
	require.NoError(t, reg.RegisterErr(14, func(code uint32, f *Frame) { gotCode = code }))

	reg.Dispatch(&Frame{Vector: 14, ErrorCode: 0x7})
	require.EqualValues(t, 0x7, gotCode)
}

func TestDispatchMissingHandlerIsNoop(t *testing.T) {
	reg := NewRegistry()
	require.NotPanics(t, func() { reg.Dispatch(&Frame{Vector: 3}) })
}
