// Package process implements the process object and process table (C7,
// spec.md §4.6): loading a program image into a fresh address space,
// building its initial user stack and argv, tracking its heap-page
// registry, and tearing all of it down again on exit.
package process

import (
	"encoding/binary"

	"coreos/kernel/config"
	"coreos/kernel/errors"
	"coreos/kernel/loader"
	"coreos/kernel/paging"
	"coreos/kernel/physmem"
	"coreos/kernel/pmm"
	"coreos/kernel/task"
	"coreos/kernel/usercopy"
)

// ID uniquely identifies a process for its lifetime.
type ID uint32

// heapPage is one Malloc-issued allocation: the frames backing it and the
// user virtual address they were mapped at, so Free can reverse it exactly.
type heapPage struct {
	frame pmm.Frame
	pages uint32
}

// Process is one loaded program: its address space, the frames backing its
// image and stack, its heap registry, and the bookkeeping GetProcessArguments
// needs (spec.md §4.4 id 0x08).
type Process struct {
	ID        ID
	Parent    ID
	HasParent bool
	Children  map[ID]struct{}

	Directory *paging.Directory

	imageFrame pmm.Frame
	imagePages uint32

	stackFrame pmm.Frame
	stackPages uint32

	heap        map[uint32]heapPage
	nextHeapVA  uint32

	Task       task.ID
	EntryPoint uint32

	Argc    uint32
	ArgvPtr uint32
}

// Table owns every live process, the frame pool Spawn/Malloc draw from, and
// the scheduler new tasks are inserted into.
type Table struct {
	processes map[ID]*Process
	nextID    ID
	frames    *pmm.BitmapAllocator
	scheduler *task.Scheduler
}

// NewTable builds an empty process table backed by frames and wired to
// scheduler for task insertion/removal.
func NewTable(frames *pmm.BitmapAllocator, scheduler *task.Scheduler) *Table {
	return &Table{
		processes: make(map[ID]*Process),
		frames:    frames,
		scheduler: scheduler,
	}
}

// Get returns the process for pid, or nil if it doesn't exist.
func (t *Table) Get(pid ID) *Process {
	return t.processes[pid]
}

func pagesFor(size int) uint32 {
	return uint32((uintptr(size) + config.PageSize - 1) / config.PageSize)
}

// Spawn loads data as a program image (§4.5), allocates and maps its stack,
// writes args onto that stack as argv, and creates its initial runnable
// task (§4.6 steps 1-4). If parent is non-nil, pid is added to the parent's
// children set (step 5).
func (t *Table) Spawn(data []byte, parent *ID, args []string) (ID, *errors.KernelError) {
	dir, err := paging.New4GB(paging.FlagPresent)
	if err != nil {
		return 0, err
	}

	imgPages := pagesFor(len(data))
	imgFrame, err := t.frames.AllocContiguous(imgPages)
	if err != nil {
		return 0, err
	}
	imgPaddr := uintptr(imgFrame) * config.PageSize
	if err := physmem.WriteAt(imgPaddr, data); err != nil {
		t.frames.FreeContiguous(imgFrame, imgPages)
		return 0, err
	}

	img, err := loader.Load(dir, data, imgPaddr)
	if err != nil {
		t.frames.FreeContiguous(imgFrame, imgPages)
		return 0, err
	}

	stackPages := pagesFor(config.UserStackSize)
	stackFrame, err := t.frames.AllocContiguous(stackPages)
	if err != nil {
		t.frames.FreeContiguous(imgFrame, imgPages)
		return 0, err
	}
	stackPaddr := uintptr(stackFrame) * config.PageSize
	if err := physmem.ZeroAt(stackPaddr, config.UserStackSize); err != nil {
		t.frames.FreeContiguous(imgFrame, imgPages)
		t.frames.FreeContiguous(stackFrame, stackPages)
		return 0, err
	}
	if err := dir.MapTo(config.UserStackEnd, stackPaddr, stackPaddr+config.UserStackSize,
		paging.FlagPresent|paging.FlagWritable|paging.FlagUserAccess); err != nil {
		t.frames.FreeContiguous(imgFrame, imgPages)
		t.frames.FreeContiguous(stackFrame, stackPages)
		return 0, err
	}

	if len(args) == 0 {
		args = []string{"?"}
	}
	esp, argc, argvPtr, err := buildArgv(dir, args)
	if err != nil {
		t.frames.FreeContiguous(imgFrame, imgPages)
		t.frames.FreeContiguous(stackFrame, stackPages)
		return 0, err
	}

	pid := t.nextID
	t.nextID++

	p := &Process{
		ID:         pid,
		Children:   make(map[ID]struct{}),
		Directory:  dir,
		imageFrame: imgFrame,
		imagePages: imgPages,
		stackFrame: stackFrame,
		stackPages: stackPages,
		heap:       make(map[uint32]heapPage),
		nextHeapVA: config.UserHeapBase,
		Task:       task.ID(pid),
		EntryPoint: img.EntryPoint,
		Argc:       argc,
		ArgvPtr:    argvPtr,
	}
	if parent != nil {
		p.Parent = *parent
		p.HasParent = true
		if pp := t.processes[*parent]; pp != nil {
			pp.Children[pid] = struct{}{}
		}
	}
	t.processes[pid] = p

	t.scheduler.Add(task.NewInitial(task.ID(pid), task.ID(pid), img.EntryPoint, esp, 0))

	return pid, nil
}

// buildArgv writes args onto the top of the user stack top-down: each
// string with its NUL terminator, then the NUL-terminated pointer array,
// then returns the resulting esp along with argc and the array's own user
// address (spec.md §4.6 step 3).
func buildArgv(dir *paging.Directory, args []string) (esp uint32, argc uint32, argvPtr uint32, kerr *errors.KernelError) {
	top := uint32(config.UserStackStart)
	addrs := make([]uint32, len(args))

	for i, s := range args {
		buf := append([]byte(s), 0)
		top -= uint32(len(buf))
		if err := usercopy.CopyToTask(dir, uintptr(top), buf); err != nil {
			return 0, 0, 0, err
		}
		addrs[i] = top
	}

	top &^= 3 // align the pointer array

	arr := make([]byte, (len(addrs)+1)*4)
	for i, a := range addrs {
		binary.LittleEndian.PutUint32(arr[i*4:], a)
	}
	binary.LittleEndian.PutUint32(arr[len(addrs)*4:], 0)
	top -= uint32(len(arr))
	if err := usercopy.CopyToTask(dir, uintptr(top), arr); err != nil {
		return 0, 0, 0, err
	}
	argv := top

	top -= 4
	var argvBuf [4]byte
	binary.LittleEndian.PutUint32(argvBuf[:], argv)
	if err := usercopy.CopyToTask(dir, uintptr(top), argvBuf[:]); err != nil {
		return 0, 0, 0, err
	}

	top -= 4
	var argcBuf [4]byte
	binary.LittleEndian.PutUint32(argcBuf[:], uint32(len(args)))
	if err := usercopy.CopyToTask(dir, uintptr(top), argcBuf[:]); err != nil {
		return 0, 0, 0, err
	}

	return top, uint32(len(args)), argv, nil
}

// Malloc allocates size bytes of zeroed, page-granular memory mapped
// USER+WRITABLE into pid's address space, returning the user virtual
// address (spec.md §4.4 id 0x04).
func (t *Table) Malloc(pid ID, size int) (uint32, *errors.KernelError) {
	p := t.processes[pid]
	if p == nil {
		return 0, errors.New(errors.NotFound, "process", "unknown process id")
	}
	if size <= 0 {
		return 0, nil
	}

	pages := pagesFor(size)
	frame, err := t.frames.AllocContiguous(pages)
	if err != nil {
		return 0, err
	}
	paddr := uintptr(frame) * config.PageSize
	if err := physmem.ZeroAt(paddr, int(pages)*config.PageSize); err != nil {
		t.frames.FreeContiguous(frame, pages)
		return 0, err
	}

	vaddr := p.nextHeapVA
	if err := p.Directory.MapTo(uintptr(vaddr), paddr, paddr+uintptr(pages)*config.PageSize,
		paging.FlagPresent|paging.FlagWritable|paging.FlagUserAccess); err != nil {
		t.frames.FreeContiguous(frame, pages)
		return 0, err
	}
	p.nextHeapVA += pages * config.PageSize
	p.heap[vaddr] = heapPage{frame: frame, pages: pages}

	return vaddr, nil
}

// Free reverses the Malloc that returned vaddr (spec.md §4.4 id 0x05).
// Freeing an address Malloc never returned is a no-op, matching the
// original runtime's tolerance of a stray Free after a double-free bug in
// user code.
func (t *Table) Free(pid ID, vaddr uint32) {
	p := t.processes[pid]
	if p == nil {
		return
	}
	hp, ok := p.heap[vaddr]
	if !ok {
		return
	}
	for i := uint32(0); i < hp.pages; i++ {
		p.Directory.Unmap(uintptr(vaddr) + uintptr(i)*config.PageSize)
	}
	t.frames.FreeContiguous(hp.frame, hp.pages)
	delete(p.heap, vaddr)
}

// Remove tears down pid entirely (spec.md §4.6 "Terminate current
// process"): every heap page, the stack page, and the image buffer are
// released, the task is dropped from the scheduler, and pid is eagerly
// pruned from its parent's children set.
func (t *Table) Remove(pid ID) {
	p := t.processes[pid]
	if p == nil {
		return
	}

	for vaddr := range p.heap {
		t.Free(pid, vaddr)
	}
	t.frames.FreeContiguous(p.stackFrame, p.stackPages)
	t.frames.FreeContiguous(p.imageFrame, p.imagePages)

	t.scheduler.Remove(p.Task)
	delete(t.processes, pid)

	if p.HasParent {
		if parent := t.processes[p.Parent]; parent != nil {
			delete(parent.Children, pid)
		}
	}
}
