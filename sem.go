package hardrt

// Sem is a binary semaphore: one availability bit plus a FIFO waiter list.
// All operations run under the kernel's critical section.
type Sem struct {
	k         *Kernel
	available bool
	waiters   idFIFO
}

// NewSem constructs a binary semaphore bound to k, initially available or
// taken as requested.
func NewSem(k *Kernel, available bool) *Sem {
	return &Sem{k: k, available: available}
}

// TryTake clears the bit and returns true if it was set, else returns
// false without blocking.
func (s *Sem) TryTake() bool {
	s.k.crit.enter()
	ok := s.available
	if ok {
		s.available = false
	}
	s.k.crit.exit()
	if !ok {
		s.k.metrics.semOverflow.Add(1)
	}
	return ok
}

// Take is the blocking acquire: fast-path TryTake, then block on the
// waiter FIFO if still unavailable. On resume the caller has been handed
// the semaphore directly by the giver; no bit is ever set on that path.
func (s *Sem) Take() {
	s.k.crit.enter()
	if s.available {
		s.available = false
		s.k.crit.exit()
		return
	}

	cur := s.k.tasks[s.k.current]
	cur.state = stateBlocked
	if err := s.waiters.push(cur.id); err != nil {
		s.k.crit.exit()
		s.k.fatal(KindReadyOverflow)
		return
	}
	next, ok := s.k.sched.next(&s.k.ready)
	if !ok {
		next = idleTaskID
	}
	s.k.crit.exit()
	s.k.switchTo(next)
}

// Give wakes the oldest waiter (transferring ownership directly, without
// ever setting the bit) or, if none is waiting, sets the bit. Waking a
// waiter yields so a higher-priority task can preempt immediately.
func (s *Sem) Give() {
	s.k.crit.enter()
	woken := s.wakeOneLocked()
	s.k.crit.exit()
	if woken {
		s.k.Yield()
	}
}

// GiveFromISR is Give's ISR-safe counterpart: it never yields, only pends
// a switch, and reports whether a switch became necessary.
func (s *Sem) GiveFromISR() (needSwitch bool) {
	s.k.crit.enter()
	woken := s.wakeOneLocked()
	s.k.crit.exit()
	if woken {
		s.k.pendSwitch()
	}
	return woken
}

// wakeOneLocked must be called with the critical section held.
func (s *Sem) wakeOneLocked() bool {
	id, err := s.waiters.pop()
	if err != nil {
		s.available = true
		return false
	}
	t := s.k.tasks[id]
	t.state = stateReady
	t.sliceLeft = t.sliceCfg
	if e := s.k.ready[t.priority].push(id); e != nil {
		s.k.fatal(KindReadyOverflow)
		return false
	}
	return true
}
