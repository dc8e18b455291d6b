package interrupt

// returnToUserAsm loads frame's general registers and builds an iretd frame
// on the kernel stack from its eip/cs/eflags/esp/ss fields (return_386.s),
// implementing spec.md §4.6's "task return to user" operation. It never
// returns to its caller: control resumes at frame.EIP in ring 3.
func returnToUserAsm(frame *Frame)

// returnToUserFn is substituted by tests so ReturnToUser never issues a
// real iretd on the host.
var returnToUserFn = returnToUserAsm

// ReturnToUser transfers control to frame, the saved state of whichever
// task the scheduler just selected. eflags always has IF set on the way in
// (spec.md §4.6: "saved eflags must always have IF set so user code runs
// with interrupts enabled").
func ReturnToUser(frame *Frame) {
	frame.EFlags |= 1 << 9
	returnToUserFn(frame)
}
