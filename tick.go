package hardrt

// onTick is the core's tick entry: advance the counter, wake due sleepers,
// account the running task's slice, and pend a switch if anything changed.
// It never performs the actual switch itself.
func (k *Kernel) onTick() {
	k.crit.enter()

	now := k.tickCount.Add(1)
	changed := false

	for i := range k.tasks {
		t := k.tasks[i]
		if t.id == idleTaskID || t.state != stateSleep {
			continue
		}
		if int32(t.wakeTick-now) <= 0 {
			t.state = stateReady
			t.sliceLeft = t.sliceCfg
			if err := k.ready[t.priority].push(t.id); err != nil {
				k.crit.exit()
				k.fatal(KindReadyOverflow)
				return
			}
			changed = true
		}
	}

	if cur := k.tasks[k.current]; cur.id != idleTaskID && cur.state == stateReady && k.sched.sliceEnabled(cur) {
		if cur.sliceLeft > 0 {
			cur.sliceLeft--
		}
		if cur.sliceLeft == 0 {
			changed = true
		}
	}

	k.metrics.ticks.Add(1)
	k.crit.exit()

	if changed {
		k.pendSwitch()
	}
}

// TickFromISR is the public entry for an External tick source. It is a
// no-op when the kernel is configured Internal, so an errant external tick
// cannot double-advance time.
func (k *Kernel) TickFromISR() {
	if k.cfg.TickSrc != External {
		return
	}
	k.onTick()
}
