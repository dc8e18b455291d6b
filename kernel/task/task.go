// Package task implements the task object and round-robin scheduler (C8):
// a saved register frame per task, priority-indexed FIFO ready queues, and
// the single "current task" pointer the trap-entry and trap-return paths
// read and write.
package task

import (
	"coreos/kernel/config"
	"coreos/kernel/errors"
	"coreos/kernel/interrupt"
)

// ID uniquely identifies a task for the lifetime of the kernel.
type ID uint32

// State is one of the three task lifecycle states spec.md §3 names.
type State uint8

const (
	Runnable State = iota
	Waiting
	Terminated
)

// PriorityLevels bounds the priority-indexed ready-queue array; priority 0
// is highest and is the only level anything in this kernel currently uses,
// but the array is sized for headroom the way spec.md §3's "priority
// (0 = highest)" attribute implies future levels may exist.
const PriorityLevels = 4

// Task is one schedulable unit of execution: exactly one per process in
// this kernel (spec.md never describes multiple tasks per process).
type Task struct {
	ID       ID
	Process  ID // owning process id; looked up through the process table
	Frame    interrupt.Frame
	State    State
	Priority int
}

// NewInitial builds a task's starting register frame: entry point in eip,
// user code/data selectors in cs/ss, user stack top in esp, and every
// general-purpose register zeroed (spec.md §4.6 step 4).
func NewInitial(id ID, process ID, entryPoint, stackTop uint32, priority int) *Task {
	return &Task{
		ID:      id,
		Process: process,
		State:   Runnable,
		Priority: priority,
		Frame: interrupt.Frame{
			EIP:    entryPoint,
			CS:     config.UserCodeSegment,
			SS:     config.UserDataSegment,
			EFlags: 1 << 9, // IF set: user code always runs with interrupts enabled
			ESP:    stackTop,
		},
	}
}

// readyQueue is a plain FIFO of task ids; append at the tail, pop from the
// head, matching the "oldest waiter first" tie-break spec.md §4.6 mandates.
type readyQueue struct {
	ids []ID
}

func (q *readyQueue) push(id ID)   { q.ids = append(q.ids, id) }
func (q *readyQueue) empty() bool  { return len(q.ids) == 0 }
func (q *readyQueue) pop() ID {
	id := q.ids[0]
	q.ids = q.ids[1:]
	return id
}

// Scheduler owns every task, the priority ready queues, and the current
// task pointer (spec.md §3's Task/Ready-queue data model).
type Scheduler struct {
	tasks   map[ID]*Task
	ready   [PriorityLevels]readyQueue
	current ID
	hasCurrent bool
	nextID  ID
}

// NewScheduler returns an empty scheduler with no current task.
func NewScheduler() *Scheduler {
	return &Scheduler{tasks: make(map[ID]*Task)}
}

// Add installs t into the scheduler, placing it on its priority's ready
// queue unless there is no current task yet, in which case t becomes
// current immediately (spec.md §4.6 step 4).
func (s *Scheduler) Add(t *Task) {
	s.tasks[t.ID] = t
	if !s.hasCurrent {
		s.current = t.ID
		s.hasCurrent = true
		return
	}
	s.ready[t.Priority].push(t.ID)
}

// Current returns the current task, or nil if none exists.
func (s *Scheduler) Current() *Task {
	if !s.hasCurrent {
		return nil
	}
	return s.tasks[s.current]
}

// SaveCurrentFrame snapshots frame into the current task, matching
// interrupt.Hooks.SaveCurrentFrame's contract used by the trap-entry path.
func (s *Scheduler) SaveCurrentFrame(frame *interrupt.Frame) {
	if t := s.Current(); t != nil {
		t.Frame = *frame
	}
}

// Remove drops a task from the scheduler entirely: if it is current, the
// caller must invoke Step immediately afterward to pick a replacement.
func (s *Scheduler) Remove(id ID) {
	delete(s.tasks, id)
	if s.hasCurrent && s.current == id {
		s.hasCurrent = false
	}
	for p := range s.ready {
		q := &s.ready[p]
		for i, qid := range q.ids {
			if qid == id {
				q.ids = append(q.ids[:i], q.ids[i+1:]...)
				break
			}
		}
	}
}

// Step performs one round-robin scheduling decision (spec.md §4.6
// "Scheduler step"): the current Runnable task, if any, is requeued at the
// tail of its priority; the head of the highest non-empty priority queue
// becomes current. NoTasks is returned, and must panic the kernel per
// spec.md §7, when every queue (and the current slot) is empty.
func (s *Scheduler) Step() *errors.KernelError {
	if cur := s.Current(); cur != nil && cur.State == Runnable {
		s.ready[cur.Priority].push(cur.ID)
		s.hasCurrent = false
	}

	for p := 0; p < PriorityLevels; p++ {
		if !s.ready[p].empty() {
			s.current = s.ready[p].pop()
			s.hasCurrent = true
			return nil
		}
	}

	return errors.New(errors.NoTasks, "task", "no runnable tasks")
}
