package hardrt

import (
	"sync/atomic"

	"github.com/ExoSpaceLabs/hardrt/port"
)

// Kernel is the core's single stateful object: the task table, ready
// queues, tick counter, and the port that carries out every context
// switch. A Kernel must be constructed with New and then Start exactly
// once, per the usual "init(config) then start()" lifecycle.
type Kernel struct {
	cfg    Config
	port   port.Port
	logger Logger
	hook   func(*Error)
	metrics *Metrics

	crit critSection

	tasks   [MaxTasks]*tcb
	ready   [MaxPrio]idFIFO
	sched   scheduler
	current TaskID
	numUsed int

	tickCount atomic.Uint32
	pending   atomic.Bool
	state     *fastState
}

// PortInfo is a read-only diagnostic snapshot, the Go counterpart of the
// original's hardrt_portinfo.c / heartos_portinfo.c blob.
type PortInfo struct {
	TickHz   uint32
	Policy   Policy
	MaxTasks int
	MaxPrio  int
	TickSrc  TickSource
}

// New constructs a Kernel and its built-in idle task. It is the Go
// counterpart of the original's init(config); a Kernel must not be used
// before this returns successfully, and New must be called exactly once
// per Port.
func New(cfg Config, p port.Port) (*Kernel, error) {
	cfg = cfg.resolve()
	if p == nil {
		return nil, wrapErr(KindInvalidRamRange, nil)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = defaultLogger()
	}

	k := &Kernel{
		cfg:     cfg,
		port:    p,
		logger:  logger,
		metrics: &Metrics{},
		state:   newFastState(kernelUnstarted),
		current: idleTaskID,
	}
	k.sched.policy = cfg.Policy
	k.hook = k.defaultErrorHook

	for i := range k.tasks {
		k.tasks[i] = newTCB(TaskID(i))
	}

	idle := k.tasks[idleTaskID]
	idle.state = stateReady
	idle.priority = MaxPrio // sentinel: never matches a real ready-queue class
	idle.stackWords = IdleStackWords
	idle.name = "idle"
	if err := k.port.Spawn(int(idleTaskID), k.idleTrampoline); err != nil {
		return nil, wrapErr(KindStackUnderflowInit, err)
	}

	return k, nil
}

// SetErrorHook overrides the default fatal-error hook. The hook is called
// for fatal Kinds only (see Kind.Fatal); it must not panic.
func (k *Kernel) SetErrorHook(hook func(*Error)) {
	if hook != nil {
		k.hook = hook
	}
}

func (k *Kernel) defaultErrorHook(err *Error) {
	k.logger.Error().Err(err).Log("fatal kernel error")
	if k.cfg.HaltOnFatal {
		select {}
	}
}

func (k *Kernel) fatal(kind Kind) {
	k.hook(newErr(kind))
}

// CreateTask allocates a task slot, validates the stack, and enqueues the
// task Ready at the tail of its priority class. It fails non-fatally with
// ErrInvalidTask or ErrNoSlot, rather than being routed through the fatal
// error hook, since a failed CreateTask is an ordinary caller-input error.
// It also returns an error wrapping KindInvalidPrio for a priority outside
// [0, MaxPrio) (without calling the hook), KindReadyOverflow (after calling
// the hook), or KindStackUnderflowInit when the port fails to spawn the
// task's goroutine.
func (k *Kernel) CreateTask(entry EntryFunc, arg any, stack []byte, opts ...TaskOption) (TaskID, error) {
	if entry == nil || stack == nil || len(stack)/wordSize() < MinStackWords {
		k.metrics.taskCreateFail.Add(1)
		return 0, wrapErr(KindInvalidTask, nil)
	}

	attrs := resolveTaskOptions(k.cfg.DefaultSlice, opts)
	if int(attrs.priority) >= MaxPrio {
		k.metrics.taskCreateFail.Add(1)
		return 0, wrapErr(KindInvalidPrio, nil)
	}

	k.crit.enter()
	id := TaskID(-1)
	for i := 0; i < MaxTasks; i++ {
		if TaskID(i) == idleTaskID {
			continue
		}
		if k.tasks[i].state == stateUnused {
			id = TaskID(i)
			break
		}
	}
	if id < 0 {
		k.crit.exit()
		k.metrics.taskCreateFail.Add(1)
		return 0, wrapErr(KindNoSlot, nil)
	}

	t := k.tasks[id]
	t.entry = entry
	t.arg = arg
	t.stackBase = stack
	t.stackWords = len(stack) / wordSize()
	t.priority = attrs.priority
	t.sliceCfg = attrs.slice
	t.sliceLeft = attrs.slice
	t.name = attrs.name
	t.state = stateReady

	if err := k.ready[t.priority].push(id); err != nil {
		k.crit.exit()
		k.fatal(KindReadyOverflow)
		return 0, wrapErr(KindReadyOverflow, nil)
	}
	k.numUsed++
	k.crit.exit()

	if err := k.port.Spawn(int(id), func() { k.taskTrampoline(id) }); err != nil {
		return 0, wrapErr(KindStackUnderflowInit, err)
	}

	// A task created while the kernel is already running (e.g. from
	// another task) needs the idle task to notice it the same way a tick
	// wakeup does; if the kernel hasn't started yet this is a harmless
	// no-op flag that Start's first selection ignores.
	k.pendSwitch()

	k.logger.Debug().Int64("task_id", int64(id)).Str("name", t.name).Log("task created")
	return id, nil
}

func wordSize() int { return 8 }

// taskTrampoline is the Go analogue of a port-built initial stack frame:
// it runs entry(arg), and if entry ever returns, loops forever calling
// Yield. The slot stays Ready and is requeued at the tail of its priority
// class on every iteration, so it keeps taking turns with equal-priority
// tasks and is still selected ahead of lower-priority tasks and the idle
// task.
func (k *Kernel) taskTrampoline(id TaskID) {
	t := k.tasks[id]
	t.entry(t.arg)
	for {
		k.Yield()
	}
}

func (k *Kernel) idleTrampoline() {
	for {
		k.port.IdleWait(func() bool { return k.pending.Load() })
		k.pending.Store(false)
		k.crit.enter()
		next, ok := k.sched.next(&k.ready)
		if !ok {
			next = idleTaskID
		}
		k.crit.exit()
		if next != idleTaskID {
			k.switchTo(next)
		}
	}
}

// switchTo performs the channel-handoff baton pass (see the port package
// doc): it must be called by the goroutine currently running as Current.
func (k *Kernel) switchTo(next TaskID) {
	prev := k.current
	k.current = next
	k.metrics.contextSwitch.Add(1)
	if prev == next {
		return
	}
	k.port.Resume(int(next))
	k.port.Park(int(prev))
}

func (k *Kernel) pendSwitch() { k.pending.Store(true) }

// Start hands control to the first Ready task (Idle if none was created)
// and never returns until Shutdown releases the boot park.
func (k *Kernel) Start() error {
	if !k.state.TryTransition(kernelUnstarted, kernelRunning) {
		return wrapErr(KindInvalidTask, nil)
	}

	k.crit.enter()
	first, ok := k.sched.next(&k.ready)
	if !ok {
		first = idleTaskID
	}
	k.current = first
	k.crit.exit()

	if k.cfg.TickSrc == Internal {
		k.port.StartTick(k.cfg.TickHz, k.onTick)
	}

	k.port.EnterScheduler(int(first))
	return nil
}

// Shutdown stops the tick source and releases the port's boot park, for
// use by tests that construct a Kernel without calling Start forever.
func (k *Kernel) Shutdown() {
	k.state.Store(kernelStopped)
	k.port.Shutdown()
}

// Yield requeues the calling task (if still Ready) at the tail of its
// priority class, refreshing its slice, then hops to the highest-priority
// Ready task.
func (k *Kernel) Yield() {
	k.crit.enter()
	cur := k.tasks[k.current]
	if cur.id != idleTaskID && cur.state == stateReady {
		cur.sliceLeft = cur.sliceCfg
		if err := k.ready[cur.priority].push(cur.id); err != nil {
			k.crit.exit()
			k.fatal(KindReadyOverflow)
			return
		}
	}
	next, ok := k.sched.next(&k.ready)
	if !ok {
		next = idleTaskID
	}
	k.crit.exit()
	k.switchTo(next)
}

// Sleep delays the calling task by at least ceil(ms*tick_hz/1000) ticks,
// with sleep(0) equivalent to sleeping one tick.
func (k *Kernel) Sleep(ms uint32) {
	ticks := msToTicks(ms, k.cfg.TickHz)

	k.crit.enter()
	cur := k.tasks[k.current]
	cur.wakeTick = k.tickCount.Load() + ticks
	cur.state = stateSleep
	next, ok := k.sched.next(&k.ready)
	if !ok {
		next = idleTaskID
	}
	k.crit.exit()

	k.switchTo(next)
}

func msToTicks(ms, tickHz uint32) uint32 {
	if tickHz == 0 {
		tickHz = 1000
	}
	if ms == 0 {
		return 1
	}
	t := (uint64(ms)*uint64(tickHz) + 999) / 1000
	if t == 0 {
		t = 1
	}
	return uint32(t)
}

// TickNow returns the monotonic tick counter, which wraps at 2^32.
func (k *Kernel) TickNow() uint32 { return k.tickCount.Load() }

// SetPolicy takes effect on the next scheduling point.
func (k *Kernel) SetPolicy(p Policy) {
	k.crit.enter()
	k.cfg.Policy = p
	k.sched.policy = p
	k.crit.exit()
}

// SetDefaultTimeslice affects only subsequently created tasks.
func (k *Kernel) SetDefaultTimeslice(ticks uint32) {
	k.crit.enter()
	k.cfg.DefaultSlice = ticks
	k.crit.exit()
}

// PortInfo returns a read-only diagnostic snapshot of the kernel's
// configuration.
func (k *Kernel) PortInfo() PortInfo {
	return PortInfo{
		TickHz:   k.cfg.TickHz,
		Policy:   k.cfg.Policy,
		MaxTasks: MaxTasks,
		MaxPrio:  MaxPrio,
		TickSrc:  k.cfg.TickSrc,
	}
}

// Metrics returns a snapshot of the kernel's diagnostic counters.
func (k *Kernel) Metrics() Snapshot { return k.metrics.Snapshot() }

// blockCurrent moves the calling task onto waiter, under the critical
// section, then switches away. mutate must perform exactly the waiter-list
// push and state transition; it runs with the critical section held.
func (k *Kernel) blockCurrent(mutate func(cur *tcb)) {
	k.crit.enter()
	cur := k.tasks[k.current]
	mutate(cur)
	next, ok := k.sched.next(&k.ready)
	if !ok {
		next = idleTaskID
	}
	k.crit.exit()
	k.switchTo(next)
}
