package hardrt

// Policy selects the scheduling discipline applied across and within
// priority classes.
type Policy uint8

const (
	// Priority is strict fixed priority; no slice accounting; cooperative
	// within a class.
	Priority Policy = iota
	// RR is single-class round robin; slice accounting is mandatory.
	RR
	// PriorityRR is fixed priority across classes, round robin within each
	// class using the task's configured slice (0 disables RR for that task).
	PriorityRR
)

func (p Policy) String() string {
	switch p {
	case Priority:
		return "Priority"
	case RR:
		return "RR"
	case PriorityRR:
		return "PriorityRR"
	default:
		return "Policy(?)"
	}
}

// TickSource selects who advances the monotonic tick counter.
type TickSource uint8

const (
	// Internal means the kernel owns a periodic timer (port.StartTick).
	Internal TickSource = iota
	// External means the embedding application calls TickFromISR itself.
	External
)

func (t TickSource) String() string {
	if t == External {
		return "External"
	}
	return "Internal"
}

// Compile-time constants, overridable only by building a fork with
// different values (spec's "may be overridden at build time").
const (
	// MaxTasks bounds the task table.
	MaxTasks = 8
	// MaxPrio bounds the number of priority classes; 0 is highest.
	MaxPrio = 4
	// IdleStackWords is the stack word count reserved for the built-in idle task.
	IdleStackWords = 64
	// MinStackWords is the minimum stack, in machine words, CreateTask accepts.
	MinStackWords = 64
)

// idleTaskID is the reserved slot for the built-in idle task. The original
// implementation places idle at the last slot, not the first.
const idleTaskID = MaxTasks - 1

// Config configures a Kernel at Init time. The zero value is valid and
// resolves to the documented defaults.
type Config struct {
	// TickHz is the monotonic clock's frequency; 0 resolves to 1000.
	TickHz uint32
	// Policy selects the scheduling discipline; zero value is Priority.
	Policy Policy
	// DefaultSlice is the timeslice, in ticks, given to tasks created
	// without an explicit WithTimeslice option; 0 resolves to 5.
	DefaultSlice uint32
	// CoreHz is the CPU frequency a hardware port would use to program its
	// timer prescaler for Internal tick generation; 0 is permitted when
	// TickSrc is External. Neither bundled port consumes it: HostPort
	// derives its ticker period directly from TickHz in wall-clock time,
	// and NullPort has no timer at all. It is carried on Config for parity
	// with ports that do need it.
	CoreHz uint32
	// TickSrc selects Internal or External tick delivery; zero value is Internal.
	TickSrc TickSource
	// Logger overrides the default stderr JSON logger. Nil keeps the default.
	Logger Logger
	// HaltOnFatal, if set, makes the default error hook block forever after
	// logging a fatal error, rather than merely recording it.
	HaltOnFatal bool
}

func (c Config) resolve() Config {
	if c.TickHz == 0 {
		c.TickHz = 1000
	}
	if c.DefaultSlice == 0 {
		c.DefaultSlice = 5
	}
	return c
}
