package hal

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKeyboardQueueIsFIFO(t *testing.T) {
	q := NewKeyboardQueue()
	q.Push('a')
	q.Push('b')
	q.Push('c')

	for _, want := range []uint8{'a', 'b', 'c'} {
		got, ok := q.Pop()
		require.True(t, ok)
		require.Equal(t, want, got)
	}

	_, ok := q.Pop()
	require.False(t, ok, "spec.md S4: a fourth GetKey on an empty queue must report empty")
}

func TestKeyboardQueueDropsOldestOnOverflow(t *testing.T) {
	q := NewKeyboardQueue()
	for i := 0; i < KeyboardQueueSize+1; i++ {
		q.Push(uint8(i))
	}
	require.Equal(t, KeyboardQueueSize, q.Len())

	first, ok := q.Pop()
	require.True(t, ok)
	require.EqualValues(t, 1, first, "oldest byte (0) must have been dropped")
}
