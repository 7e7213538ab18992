package hardrt

// scheduler implements the pure task-selection policy. It holds no task
// state of its own; it only pops from the ready queues it is given
// (requeueing is done by its callers), so it can be driven directly from
// tests without a running Kernel.
type scheduler struct {
	policy Policy
}

// next scans priority classes from 0 upward and pops the head of the first
// non-empty queue. It reports false if every class is empty, in which case
// the caller falls back to the reserved idle task.
func (s *scheduler) next(ready *[MaxPrio]idFIFO) (TaskID, bool) {
	for p := 0; p < MaxPrio; p++ {
		if id, ok := ready[p].peek(); ok {
			id, _ = ready[p].pop()
			return id, true
		}
	}
	return 0, false
}

// sliceEnabled reports whether time-slice accounting applies to t under the
// scheduler's current policy: RR always accounts (policy is single-class by
// construction), PriorityRR accounts per task unless its configured slice
// is 0, Priority never accounts.
func (s *scheduler) sliceEnabled(t *tcb) bool {
	switch s.policy {
	case RR:
		return true
	case PriorityRR:
		return t.sliceCfg > 0
	default:
		return false
	}
}
