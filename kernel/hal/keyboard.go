package hal

// KeyboardQueueSize bounds the FIFO the IRQ1 handler pushes into and the
// GetKey syscall pops from (spec.md §4.3/§6). A ring buffer sized well past
// normal typeahead is enough; overflow drops the oldest byte rather than the
// newest so the most recent keystrokes survive a stuck consumer.
const KeyboardQueueSize = 256

// KeyboardQueue is the FIFO between the keyboard interrupt handler (producer)
// and syscall 0x02 GetKey (consumer), matching the Keyboard collaborator in
// spec.md §6: Push(u8) from the IRQ handler, Pop() (byte, ok) from the
// syscall path.
type KeyboardQueue struct {
	buf        [KeyboardQueueSize]uint8
	read, size int
}

// NewKeyboardQueue returns an empty keyboard queue.
func NewKeyboardQueue() *KeyboardQueue {
	return &KeyboardQueue{}
}

// Push enqueues one scancode-translated byte, dropping the oldest entry if
// the queue is full.
func (q *KeyboardQueue) Push(b uint8) {
	if q.size == KeyboardQueueSize {
		q.read = (q.read + 1) % KeyboardQueueSize
		q.size--
	}
	writeAt := (q.read + q.size) % KeyboardQueueSize
	q.buf[writeAt] = b
	q.size++
}

// Pop removes and returns the oldest queued byte. ok is false on an empty
// queue, in which case GetKey must return 0 (spec.md §4.4).
func (q *KeyboardQueue) Pop() (b uint8, ok bool) {
	if q.size == 0 {
		return 0, false
	}
	b = q.buf[q.read]
	q.read = (q.read + 1) % KeyboardQueueSize
	q.size--
	return b, true
}

// Len reports the number of queued, unread bytes.
func (q *KeyboardQueue) Len() int {
	return q.size
}
