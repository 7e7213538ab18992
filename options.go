package hardrt

// taskAttrs holds the optional per-task attributes CreateTask accepts.
type taskAttrs struct {
	priority  uint8
	slice     uint32
	sliceSet  bool
	name      string
}

// TaskOption configures a task at CreateTask time.
type TaskOption interface {
	applyTask(*taskAttrs)
}

type taskOptionFunc func(*taskAttrs)

func (f taskOptionFunc) applyTask(a *taskAttrs) { f(a) }

// WithPriority sets the task's priority class (0 = highest, < MaxPrio).
// Default is 1.
func WithPriority(p uint8) TaskOption {
	return taskOptionFunc(func(a *taskAttrs) { a.priority = p })
}

// WithTimeslice overrides the kernel's configured default slice for this
// task alone. A slice of 0 makes the task cooperative within its class
// regardless of policy.
func WithTimeslice(ticks uint32) TaskOption {
	return taskOptionFunc(func(a *taskAttrs) { a.slice = ticks; a.sliceSet = true })
}

// WithName attaches a diagnostic name, surfaced only in logging.
func WithName(name string) TaskOption {
	return taskOptionFunc(func(a *taskAttrs) { a.name = name })
}

func resolveTaskOptions(defaultSlice uint32, opts []TaskOption) taskAttrs {
	a := taskAttrs{priority: 1, slice: defaultSlice}
	for _, o := range opts {
		if o == nil {
			continue
		}
		o.applyTask(&a)
	}
	return a
}
