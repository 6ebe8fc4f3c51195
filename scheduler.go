// Copyright 2025 Joseph Cumines
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

// Package coco's scheduler replaces the original implementation's single
// physical stack, shared by every task via setjmp/longjmp plus a raw
// memcpy of the live stack region, with one real goroutine per task and a
// "baton" handoff over a pair of unbuffered channels.
//
// Go cannot swap a goroutine's stack out from under it the way the source
// swaps a CPU's SP, and user code cannot safely memcpy a live Go stack (the
// runtime relocates and resizes stacks on its own schedule). Rather than
// fight the runtime, each task gets a dedicated goroutine that blocks on
// resumeCh until the scheduler chooses to run it, and sends on yieldCh the
// moment it next reaches a suspension point. Because the scheduler never
// sends on a second task's resumeCh until it has received the first task's
// yieldCh value, at most one goroutine is ever unblocked at a time — the
// same "exactly one task executes user code at any instant" invariant
// spec.md §5 requires, obtained without the UB risk of rewriting another
// goroutine's stack by hand. This is option (a) from spec.md §9's design
// notes ("true stackful coroutines... prefer (a) for a faithful rewrite"),
// realized with goroutines standing in for the OS- or ISA-level stack swap.
package coco

import (
	"fmt"
	"runtime"
)

// Runtime owns the task table and drives the scheduler loop. There is at
// most one active Runtime per process, reached through the package-level
// functions (AddTask, Yield, Fork, ...) via currentRuntime — the "global
// current-context pointer" from spec.md's design notes, exposed only
// through accessor functions rather than as a public mutable global.
type Runtime struct {
	tasks []*Task // index 0 unused; 1..maxTasks

	free    []*Task
	running []*Task
	dpcs    []*Task

	current  *Task
	canYield bool

	logger Logger
	clock  Clock

	kernelTid int
}

// activeRuntime is nil except during a call to Start; Start clears it again
// before returning, so ErrReentrantStart and ErrNotRunning can tell a
// concurrent/nested Start from no Start at all.
var activeRuntime *Runtime

// currentRuntime fetches the active Runtime, panicking with a FatalError if
// none is running — every package-level task operation except Start and
// Kill requires an active Runtime by contract (they are only ever
// meant to be called from within a running task).
func currentRuntime() *Runtime {
	rt := activeRuntime
	if rt == nil {
		fatalf(0, FatalStackDiscipline, "%s", ErrNotRunning)
	}
	return rt
}

// Start initializes the task table, adds kernel as the first ("kernel")
// task, and drives the scheduler until it exits. The kernel task's exit
// status is returned, mirroring coco_start's process-exit propagation
// without actually calling os.Exit — callers that want process-exit
// semantics do that themselves.
func Start(kernel func(args any), args any, opts ...Option) (int, error) {
	if activeRuntime != nil {
		return 0, ErrReentrantStart
	}

	cfg, err := resolveOptions(opts)
	if err != nil {
		return 0, err
	}

	maxTasks := cfg.maxTasks
	if maxTasks <= 0 {
		maxTasks = defaultMaxTasks
	}

	rt := &Runtime{
		tasks:  make([]*Task, maxTasks+1),
		logger: cfg.logger,
		clock:  cfg.clock,
	}
	for i := 1; i <= maxTasks; i++ {
		t := &Task{id: i, status: StatusFree}
		rt.tasks[i] = t
		rt.free = append(rt.free, t)
	}

	activeRuntime = rt
	defer func() { activeRuntime = nil }()

	rt.logger.Log(LogLevelInfo, "starting runtime", "max_tasks", maxTasks)

	kernelTid := rt.addTask(kernel, args, false)
	if kernelTid == 0 {
		return 0, fmt.Errorf("coco: failed to add kernel task (max_tasks=%d)", maxTasks)
	}
	rt.kernelTid = kernelTid

	for {
		if t := rt.tasks[kernelTid]; t.status == StatusDone || t.status == StatusFree {
			exitStatus := t.exitStatus
			rt.logger.Log(LogLevelInfo, "kernel task exited", "exit_status", exitStatus)
			return exitStatus, nil
		}
		rt.runTasks()
	}
}

// popFree pops a slot off the free list, or returns nil if the table is
// exhausted (next_free_task / add_task_to_queue returning 0).
func (rt *Runtime) popFree() *Task {
	n := len(rt.free)
	if n == 0 {
		return nil
	}
	t := rt.free[n-1]
	rt.free = rt.free[:n-1]
	return t
}

func (rt *Runtime) pushFree(t *Task) {
	t.status = StatusFree
	rt.free = append(rt.free, t)
}

func (rt *Runtime) taskByID(tid int) *Task {
	if tid < 1 || tid >= len(rt.tasks) {
		return nil
	}
	return rt.tasks[tid]
}

// addTask implements both AddTask and AddDPC, the two differing only in
// which queue the new task joins and whether it starts detached, matching
// add_task_to_queue in the original.
func (rt *Runtime) addTask(fn func(any), args any, dpc bool) int {
	t := rt.popFree()
	if t == nil {
		rt.logger.Log(LogLevelWarn, "task table exhausted")
		return 0
	}
	t.reset(fn, args, dpc, rt.clock.NowMs())
	if dpc {
		rt.dpcs = append(rt.dpcs, t)
	} else {
		rt.running = append(rt.running, t)
	}
	rt.spawn(t)
	return t.id
}

// spawn starts t's goroutine. It blocks on resumeCh until the scheduler's
// first dispatch, runs the entry function, and — if the entry function
// ever returns normally instead of calling Exit — performs the implicit
// exit(0) spec.md §4.2 requires ("if it does, the runtime invokes
// coco_exit(0) for it").
func (rt *Runtime) spawn(t *Task) {
	go func() {
		<-t.resumeCh
		t.entryFn(t.args)
		rt.logger.Log(LogLevelWarn, "task entry returned without Exit", "tid", t.id)
		rt.Exit(0)
	}()
}

// AddTask adds a task to the scheduler's running list. It returns the new
// task's tid, or 0 if the task table is full.
func AddTask(fn func(args any), args any) int {
	return currentRuntime().addTask(fn, args, false)
}

// AddDPC adds a deferred procedure call: a task drained with priority over
// the running list, typically queued from a signal handler to move work off
// of signal-delivery context (handlers cannot yield) back onto the normal
// scheduler. DPCs are implicitly detached.
func AddDPC(fn func(args any), args any) int {
	return currentRuntime().addTask(fn, args, true)
}

// Fork starts child as a new task sharing the calling task's signal
// handlers and detached flag, and returns its tid (0 if the table is full).
// This is the one externally-visible signature change from the original's
// zero-argument fork: a Go goroutine's stack cannot be duplicated by user
// code the way coco_fork duplicates the shared physical stack, so the
// "child continuation" is expressed as an explicit closure instead of a
// second return from the same call frame (spec.md §9 has the full
// rationale). The observable contract survives: child runs with the same
// captured locals the parent had at the Fork call (Go closures share their
// environment by reference already), and the parent receives a tid > 0
// distinct from its own while the child never observes a resumed Fork call
// at all — it simply starts running child() as its entry point.
func Fork(child func()) int {
	rt := currentRuntime()
	parent := rt.current
	t := rt.popFree()
	if t == nil {
		rt.logger.Log(LogLevelWarn, "task table exhausted", "op", "fork", "parent", parent.id)
		return 0
	}
	t.reset(func(any) { child() }, nil, parent.detached, rt.clock.NowMs())
	t.handlers = parent.handlers
	rt.running = append(rt.running, t)
	rt.spawn(t)
	return t.id
}

// Exit terminates the current task with the given status. A non-detached
// task becomes Done and awaits a WaitPid reap; a detached task collapses
// straight to Free. Exit is permitted from within a signal handler (the
// default SIGINT handler relies on this); unlike Yield it does not check
// canYield, matching coco_exit, which has no such guard in the original.
//
// Exit never returns: after handing the result to the scheduler it calls
// runtime.Goexit so the task's goroutine unwinds immediately instead of
// falling back into whatever called Exit, which stands in for the
// longjmp-away-from-here the original performs.
func Exit(status int) {
	currentRuntime().Exit(status)
}

func (rt *Runtime) Exit(status int) {
	t := rt.current
	t.exitStatus = status
	result := StatusDone
	if t.detached {
		result = StatusFree
	}
	rt.logger.Log(LogLevelDebug, "task exiting", "tid", t.id, "status", status, "detached", t.detached)
	t.yieldCh <- int(result)
	runtime.Goexit()
}

// Detach marks the current task to be auto-reaped on exit, so no WaitPid
// call is needed for it.
func Detach() {
	currentRuntime().current.detached = true
}

// WaitPid reaps tid if it has reached Done: it frees the slot, reports its
// exit status, and returns tid. If opts includes WNoHang and tid has not
// reached Done, it returns (0, 0) immediately instead of blocking. With
// WNoOpt it yields repeatedly until tid is Done.
func WaitPid(tid int, opts int) (reapedTid int, exitStatus int) {
	return currentRuntime().waitPid(tid, opts)
}

func (rt *Runtime) waitPid(tid int, opts int) (int, int) {
	for {
		t := rt.taskByID(tid)
		if t == nil {
			return 0, 0
		}
		if t.status == StatusDone {
			status := t.exitStatus
			rt.pushFree(t)
			return tid, status
		}
		if opts&WNoHang != 0 {
			return 0, 0
		}
		rt.Yield()
	}
}

// Yield suspends the current task until its next scheduler dispatch. It
// panics with a FatalError if called where yielding is forbidden (from
// within a signal handler — spec.md §4.3's can_yield guard).
func Yield() {
	currentRuntime().Yield()
}

func (rt *Runtime) Yield() {
	t := rt.current
	if !rt.canYield {
		fatalf(t.id, FatalStackDiscipline, "cannot yield from a signal handler")
	}
	rt.suspend(t, StatusYielding)
}

// YieldForMs spin-yields until at least ms milliseconds have elapsed since
// the call started, per the clock supplied to Start (or the platform
// monotonic clock by default). It never blocks a thread — every iteration is an ordinary
// Yield.
func YieldForMs(ms uint) {
	currentRuntime().YieldForMs(ms)
}

func (rt *Runtime) YieldForMs(ms uint) {
	t := rt.current
	if !rt.canYield {
		fatalf(t.id, FatalStackDiscipline, "cannot yield from a signal handler")
	}
	t.waitStart = rt.clock.NowMs()
	for {
		rt.suspend(t, StatusYielding)
		if rt.clock.NowMs()-t.waitStart >= int64(ms) {
			return
		}
	}
}

// YieldForS is YieldForMs(s*1000).
func YieldForS(s uint) {
	YieldForMs(s * 1000)
}

// suspend hands the baton back to the scheduler reporting status, blocks
// until resumed, then delivers any pending signals before returning control
// to the caller (spec.md §4.3: "delivered at the point a task resumes after
// yielding"). If SigStp was among the delivered signals, the task
// immediately re-suspends as Stopped instead of returning, even though it
// already ran this round's handlers — the scheduler will not dispatch it
// again until SigCont is observed pending.
func (rt *Runtime) suspend(t *Task, status Status) {
	t.yieldCh <- int(status)
	<-t.resumeCh
	if stopped := rt.deliverSignals(t); stopped {
		rt.suspend(t, StatusStopped)
	}
}

// dispatch hands the baton to t and blocks until it yields or exits,
// returning the resulting Status. This is runTask/startTask collapsed into
// one operation: for a New task the goroutine is already parked at its
// first resumeCh receive (spawned in addTask/Fork), so dispatch looks
// identical whether t is starting for the first time or resuming.
func (rt *Runtime) dispatch(t *Task) Status {
	prev := rt.current
	rt.current = t
	rt.canYield = true
	t.resumeCh <- 1
	result := Status(<-t.yieldCh)
	rt.current = prev
	return result
}

// runTasks performs one pass over the running list, per spec.md §4.2: DPCs
// are drained to exhaustion before each normal task's step, and a Stopped
// task is reconsidered only when SigCont is pending for it.
func (rt *Runtime) runTasks() {
	i := 0
	for i < len(rt.running) {
		rt.drainDPCs()

		t := rt.running[i]
		switch t.status {
		case StatusNew, StatusYielding:
			rt.stepTask(t)
		case StatusStopped:
			if t.sigPending&sigBit(SigCont) != 0 {
				rt.stepTask(t)
			}
		}

		if i < len(rt.running) && rt.running[i].status == StatusDone {
			rt.running = removeAt(rt.running, i)
			continue
		}
		if i < len(rt.running) && rt.running[i].status == StatusFree {
			// A detached task's Exit reports StatusFree directly; unlike a
			// Done task (awaiting a WaitPid reap), it is recycled onto the
			// free list immediately (spec.md §3: "Running -> Free directly").
			t := rt.running[i]
			rt.running = removeAt(rt.running, i)
			rt.free = append(rt.free, t)
			continue
		}
		i++
	}
}

// stepTask dispatches t once and records the resulting status.
func (rt *Runtime) stepTask(t *Task) {
	t.status = rt.dispatch(t)
}

// drainDPCs runs every queued DPC to completion before returning: a DPC
// that yields is simply revisited on the next sweep, and the scheduler does
// not return to normal tasks until the DPC queue is empty (spec.md §4.7).
func (rt *Runtime) drainDPCs() {
	for len(rt.dpcs) > 0 {
		i := 0
		for i < len(rt.dpcs) {
			t := rt.dpcs[i]
			switch t.status {
			case StatusNew, StatusYielding:
				rt.stepTask(t)
			}
			if t.status == StatusFree {
				rt.dpcs = removeAt(rt.dpcs, i)
				rt.free = append(rt.free, t)
				continue
			}
			if t.status == StatusDone {
				rt.dpcs = removeAt(rt.dpcs, i)
				continue
			}
			i++
		}
	}
}

func removeAt(list []*Task, i int) []*Task {
	return append(list[:i], list[i+1:]...)
}
