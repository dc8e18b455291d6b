package interrupt

import "coreos/kernel/errors"

// VectorCount matches spec.md §3's "256..512" registry size: large enough
// to index every real CPU vector (0-255) plus headroom; the generated stub
// table and the IDT cover only the 256 real vectors (see idt.go).
const VectorCount = 512

// Handler receives the frame for a plain (no error code) vector.
type Handler func(*Frame)

// HandlerErr receives the frame plus the CPU-pushed error code for vectors
// 8, 10, 11, 12, 13 and 14.
type HandlerErr func(errorCode uint32, frame *Frame)

// errorCodeVectors is the fixed set of vectors whose trap stub reads a CPU
// error code off the stack before dispatching (spec.md §4.3).
var errorCodeVectors = map[uint32]bool{
	8:  true,
	10: true,
	11: true,
	12: true,
	13: true,
	14: true,
}

// IsErrorCodeVector reports whether vector is one of the six vectors that
// carry a CPU-pushed error code.
func IsErrorCodeVector(vector uint32) bool {
	return errorCodeVectors[vector]
}

// Registry holds the two vector-indexed handler tables described in
// spec.md §3: one for plain handlers, one for handlers that also receive an
// error code. Registering a handler for the wrong table is a programming
// error and is rejected rather than silently miscategorized.
type Registry struct {
	plain [VectorCount]Handler
	err   [VectorCount]HandlerErr
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register records a plain handler for vector. It rejects vectors that
// must carry an error code.
func (r *Registry) Register(vector uint32, handler Handler) *errors.KernelError {
	if vector >= VectorCount {
		return errors.New(errors.InvalidArg, "interrupt", "vector out of range")
	}
	if IsErrorCodeVector(vector) {
		return errors.New(errors.InvalidArg, "interrupt", "vector requires an error-code handler")
	}
	r.plain[vector] = handler
	return nil
}

// RegisterErr records an error-code handler for vector. It rejects vectors
// that must not carry an error code.
func (r *Registry) RegisterErr(vector uint32, handler HandlerErr) *errors.KernelError {
	if vector >= VectorCount {
		return errors.New(errors.InvalidArg, "interrupt", "vector out of range")
	}
	if !IsErrorCodeVector(vector) {
		return errors.New(errors.InvalidArg, "interrupt", "vector does not carry an error code")
	}
	r.err[vector] = handler
	return nil
}

// Dispatch looks up and invokes the handler registered for frame.Vector. A
// missing handler is a silent no-op, matching spec.md §4.3 ("missing
// entries are ignored"); in practice every exception vector is populated at
// boot and is never subsequently unregistered.
func (r *Registry) Dispatch(frame *Frame) {
	if IsErrorCodeVector(frame.Vector) {
		if h := r.err[frame.Vector]; h != nil {
			h(frame.ErrorCode, frame)
		}
		return
	}
	if h := r.plain[frame.Vector]; h != nil {
		h(frame)
	}
}
