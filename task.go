// Copyright 2025 Joseph Cumines
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

package coco

// Task is one slot in the fixed-size task table (spec.md §3). Where the
// original C struct saves/restores a raw stack buffer around a setjmp-based
// resume point, a Task here is backed by a real goroutine, parked at a
// receive on resumeCh whenever it is not the one task currently running;
// see the package comment in scheduler.go for the full rationale.
type Task struct {
	// id is this task's index into Runtime.tasks; 0 is never used (it means
	// "no task", matching the 1..MAX_TASKS indexing convention).
	id int

	status Status

	// resumeCh carries the scheduler's "run now" signal into the task's
	// goroutine; yieldCh carries the resulting status back out. Exactly one
	// of the pair ever has a pending send at a time, by construction: the
	// scheduler never sends on resumeCh until it has received on yieldCh
	// for the previous dispatch, and the task never sends on yieldCh until
	// it has received on resumeCh. This pair of unbuffered channels is the
	// "baton": whoever holds it is the one goroutine allowed to run user
	// code.
	resumeCh chan int
	yieldCh  chan int

	// sigPending is the bitset of signals awaiting delivery, one bit per
	// Signal value.
	sigPending uint32
	handlers   [NumSignals]SignalHandler

	// waitStart is the monotonic timestamp (milliseconds) a timed yield
	// started counting from.
	waitStart int64

	exitStatus int
	args       any

	// frameSize mirrors the original's frame_size field but is inert: unlike
	// the original's USR_CTX_SIZE-bounded savedFrame, a goroutine's stack
	// grows and shrinks on its own and is never copied, so there is no
	// ceiling to enforce here. It is reset to 0 and never otherwise written
	// or read.
	frameSize int

	detached bool
	entryFn  func(any)
}

// reset clears a task for reuse from the free list, installing default
// signal handlers (init_task in the original).
func (t *Task) reset(fn func(any), args any, detached bool, startMs int64) {
	t.status = StatusNew
	t.entryFn = fn
	t.args = args
	t.sigPending = 0
	t.handlers = defaultHandlers()
	t.waitStart = startMs
	t.exitStatus = 0
	t.frameSize = 0
	t.detached = detached
	t.resumeCh = make(chan int)
	t.yieldCh = make(chan int)
}
