// Package coco is a tiny cooperative multitasking runtime built around a
// fixed pool of tasks, in the spirit of a small-kernel process table:
// fork, waitpid, kill, signal, plus Go-style channels, wait groups and
// semaphores for inter-task coordination.
//
// # Execution model
//
// Exactly one task's user code runs at a time. There is no preemption and
// no parallelism: a task only ever suspends at an explicit yield point
// ([Yield], [YieldForMs], [YieldForS], a blocking [Channel] operation,
// [WaitPid] without WNOHANG, [WaitGroup.Wait], or [Semaphore.Wait]). Every
// other region of code runs atomically with respect to the rest of the
// task table — no locks are required anywhere in this package.
//
// Internally each task is backed by a real goroutine, handed control by
// the scheduler through a pair of unbuffered channels (the "baton"); see
// the package-level comment in scheduler.go for why this replaces the
// original C implementation's setjmp/longjmp plus raw stack memcpy.
//
// # Task lifecycle
//
// Free -> (AddTask) -> New -> (first dispatch) -> Running -> (Yield) ->
// Yielding -> Running -> ... -> (Exit) -> Done -> (WaitPid) -> Free. A
// detached task collapses the Done step: Running -> Free directly.
//
// # Usage
//
//	func kernel(args any) {
//	    tid := coco.AddTask(worker, nil)
//	    coco.WaitPid(tid, coco.WNoOpt)
//	    coco.Exit(0)
//	}
//
//	func main() {
//	    status, err := coco.Start(kernel, nil)
//	    if err != nil {
//	        panic(err)
//	    }
//	    os.Exit(status)
//	}
//
// # Logging
//
// COCO emits structured log records for runtime start, task exit, kernel
// exit, task-table exhaustion and an entry function returning without
// [Exit] through a package-level [Logger]; task dispatch, signal delivery
// and DPC draining are not logged. This follows the
// same "swappable global logger, low-overhead no-op default" design used
// throughout this corpus: call [SetStructuredLogger] to attach a
// github.com/joeycumines/logiface + github.com/joeycumines/stumpy backed
// logger, or leave it unset to pay zero cost.
//
// # Error types
//
// Channel operations return a [ChannelStatus] value rather than an error —
// Closed/Full/Empty/ReadOnly are expected, recoverable outcomes, not
// failures. Allocation ([AddTask], [AddDPC], [Fork]) signal exhaustion by
// returning tid 0, mirroring the original's POSIX-flavored convention.
// [SigAction] returns an ordinary Go [error] ([ErrUnknownSignal]). Bugs —
// stack-discipline violations, yielding where it is forbidden — surface as
// a panic carrying a [FatalError]. An entry function that returns without
// calling [Exit] is not treated as a bug: the task exits with status 0.
package coco
