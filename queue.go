package hardrt

// Queue is a fixed-capacity FIFO of T with separate waiter FIFOs for
// receivers (rx) and senders (tx). The generic item type replaces a
// caller-owned byte buffer plus item-size pair: Go's own type parameters
// suffice here.
type Queue[T any] struct {
	k    *Kernel
	buf  []T
	head int
	tail int
	cnt  int
	rx   idFIFO
	tx   idFIFO
}

// NewQueue constructs a Queue bound to k with the given fixed capacity.
func NewQueue[T any](k *Kernel, capacity int) *Queue[T] {
	return &Queue[T]{k: k, buf: make([]T, capacity)}
}

func (q *Queue[T]) full() bool { return q.cnt >= len(q.buf) }

func (q *Queue[T]) empty() bool { return q.cnt == 0 }

func (q *Queue[T]) pushLocked(item T) {
	q.buf[q.tail] = item
	q.tail = (q.tail + 1) % len(q.buf)
	q.cnt++
}

func (q *Queue[T]) popLocked() T {
	item := q.buf[q.head]
	q.head = (q.head + 1) % len(q.buf)
	q.cnt--
	return item
}

// wakeLocked wakes the oldest waiter on the given FIFO, if any, moving it
// to Ready at the tail of its priority class. Must run under the critical
// section.
func (q *Queue[T]) wakeLocked(waiters *idFIFO) bool {
	id, err := waiters.pop()
	if err != nil {
		return false
	}
	t := q.k.tasks[id]
	t.state = stateReady
	t.sliceLeft = t.sliceCfg
	if e := q.k.ready[t.priority].push(id); e != nil {
		q.k.fatal(KindReadyOverflow)
		return false
	}
	return true
}

// TrySend enqueues item without blocking, returning false if the queue is
// full.
func (q *Queue[T]) TrySend(item T) bool {
	q.k.crit.enter()
	if q.full() {
		q.k.crit.exit()
		q.k.metrics.queueOverflow.Add(1)
		return false
	}
	q.pushLocked(item)
	woken := q.wakeLocked(&q.rx)
	q.k.crit.exit()
	if woken {
		q.k.Yield()
	}
	return true
}

// TryRecv dequeues without blocking, returning false if the queue is
// empty.
func (q *Queue[T]) TryRecv() (T, bool) {
	var zero T
	q.k.crit.enter()
	if q.empty() {
		q.k.crit.exit()
		return zero, false
	}
	item := q.popLocked()
	woken := q.wakeLocked(&q.tx)
	q.k.crit.exit()
	if woken {
		q.k.Yield()
	}
	return item, true
}

// Send blocks the calling task until item can be enqueued.
func (q *Queue[T]) Send(item T) {
	for {
		q.k.crit.enter()
		if !q.full() {
			q.pushLocked(item)
			woken := q.wakeLocked(&q.rx)
			q.k.crit.exit()
			if woken {
				q.k.Yield()
			}
			return
		}

		cur := q.k.tasks[q.k.current]
		cur.state = stateBlocked
		if err := q.tx.push(cur.id); err != nil {
			q.k.crit.exit()
			q.k.fatal(KindReadyOverflow)
			return
		}
		next, ok := q.k.sched.next(&q.k.ready)
		if !ok {
			next = idleTaskID
		}
		q.k.crit.exit()
		q.k.switchTo(next)
	}
}

// Recv blocks the calling task until an item can be dequeued.
func (q *Queue[T]) Recv() T {
	for {
		q.k.crit.enter()
		if !q.empty() {
			item := q.popLocked()
			woken := q.wakeLocked(&q.tx)
			q.k.crit.exit()
			if woken {
				q.k.Yield()
			}
			return item
		}

		cur := q.k.tasks[q.k.current]
		cur.state = stateBlocked
		if err := q.rx.push(cur.id); err != nil {
			q.k.crit.exit()
			q.k.fatal(KindReadyOverflow)
			var zero T
			return zero
		}
		next, ok := q.k.sched.next(&q.k.ready)
		if !ok {
			next = idleTaskID
		}
		q.k.crit.exit()
		q.k.switchTo(next)
	}
}

// TrySendFromISR is TrySend's ISR-safe counterpart: it never yields, only
// pends a switch, and reports whether one became necessary.
func (q *Queue[T]) TrySendFromISR(item T) (ok, needSwitch bool) {
	q.k.crit.enter()
	if q.full() {
		q.k.crit.exit()
		return false, false
	}
	q.pushLocked(item)
	woken := q.wakeLocked(&q.rx)
	q.k.crit.exit()
	if woken {
		q.k.pendSwitch()
	}
	return true, woken
}

// TryRecvFromISR is TryRecv's ISR-safe counterpart.
func (q *Queue[T]) TryRecvFromISR() (item T, ok, needSwitch bool) {
	q.k.crit.enter()
	if q.empty() {
		q.k.crit.exit()
		return item, false, false
	}
	item = q.popLocked()
	woken := q.wakeLocked(&q.tx)
	q.k.crit.exit()
	if woken {
		q.k.pendSwitch()
	}
	return item, true, woken
}
