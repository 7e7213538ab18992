// Package port provides the architecture adaptation layer: task
// goroutine lifecycle, the context-switch mechanism, the tick source, and
// idle waiting. The core (package hardrt) never touches goroutines,
// channels, or timers directly; it only calls through this interface.
//
// Go offers no portable way to save/restore a raw machine stack pointer or
// to force control back into a library at an arbitrary instruction in
// another goroutine, so the mechanism here is a channel handoff between
// per-task goroutines rather than a machine context switch: see the
// package doc of hardrt for the full rationale.
package port

// Trampoline is the function a task's dedicated goroutine runs. It must
// call Park(id) internally whenever the task yields, blocks, or otherwise
// gives up the CPU, and must return only if the kernel is shutting down.
type Trampoline func()

// Port is the contract the core drives every context switch through.
type Port interface {
	// Spawn launches the goroutine that will run fn for task id. The
	// goroutine must not execute fn's body until first Resumed.
	Spawn(id int, fn Trampoline) error

	// Resume hands control to task id without blocking: it deposits a wake
	// token on id's private channel and returns immediately. This is the
	// port's analogue of "restore new_sp and return", minus the stack
	// pointer switch itself, which the Go scheduler already performs by
	// virtue of id running on its own goroutine.
	Resume(id int)

	// Park blocks the calling goroutine, which must be running as task id,
	// until a subsequent Resume(id) call. This is the analogue of "save
	// old_sp"; everything on the Go call stack at the point of Park is
	// preserved for free by the runtime.
	Park(id int)

	// IdleWait blocks the calling goroutine (the idle task) until pending
	// reports true, polling only as needed to remain responsive to a
	// pended switch raised from tick or ISR-equivalent context.
	IdleWait(pending func() bool)

	// StartTick arms the port's periodic tick source, invoking onTick once
	// per period. It is a no-op for ports configured as an external tick
	// source.
	StartTick(tickHz uint32, onTick func())

	// StopTick disarms a previously started periodic tick source.
	StopTick()

	// EnterScheduler performs the boot-time handoff into task `first` and
	// blocks the calling (boot) goroutine until Shutdown. It is called
	// exactly once, from Kernel.Start.
	EnterScheduler(first int)

	// Shutdown releases any port-owned goroutines (ticker, boot park) so a
	// Kernel can be torn down in tests. Safe to call more than once.
	Shutdown()
}
