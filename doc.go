// Package hardrt implements the core of a small preemptive real-time
// kernel: fixed-priority scheduling with optional round-robin within a
// class, a monotonic tick, binary semaphores with FIFO waiters, and
// fixed-capacity message queues with bidirectional blocking.
//
// # Architecture
//
// A [Kernel] owns a fixed-size task table, one ready queue per priority
// class, and the monotonic tick counter. Application code calls
// [Kernel.CreateTask] to register task bodies, then [Kernel.Start] to hand
// control to the scheduler. Tasks cooperate with the scheduler via
// [Kernel.Sleep], [Kernel.Yield], and the blocking operations on [Sem] and
// [Queue]; a [port.Port] supplies the tick source and the mechanism by
// which control actually passes between tasks.
//
// # Execution model
//
// Each task runs on its own goroutine. The architecture-specific "context
// switch" of the original design — saving and restoring a raw machine
// stack pointer — has no portable Go equivalent, so the port package
// models it as a channel handoff: at any instant exactly one task
// goroutine is unblocked (the Current task), and every other task
// goroutine is parked on a private channel receive, which costs no CPU.
// This differs observably from a real preemptive kernel in one place: a
// running task is never forcibly interrupted mid-execution. A pended
// switch takes effect only when the running task calls [Kernel.Yield] or
// [Kernel.Sleep], blocks in a [Sem] or [Queue] operation, or wakes a
// waiter through an operation that then yields.
//
// # Thread safety
//
// All kernel-state mutation — ready queues, task states, semaphore and
// queue internals, the tick counter — happens under a single nestable
// critical section ([Kernel] embeds one). Tick delivery (whether from an
// Internal [port.Port] timer or an External caller of [Kernel.TickFromISR])
// and task-context API calls are safe to interleave arbitrarily.
//
// # Error handling
//
// Construction-time failures are returned as ordinary errors wrapping
// [Error] ([Kind] enumerates every code). Non-blocking operations that
// cannot complete ([Sem.TryTake], [Queue.TrySend], [Queue.TryRecv] and
// their ISR variants) report it as a false result instead of an error.
// Invariant violations — implementation or port bugs — are routed through
// the error hook set by [Kernel.SetErrorHook]; see [Kind.Fatal]. [New] and
// [Kernel.CreateTask] also return the fatal kinds they detect to their
// caller; other operations do not.
package hardrt
