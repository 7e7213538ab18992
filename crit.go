package hardrt

import "sync"

// critSection is the Go stand-in for the port's crit_enter/crit_exit:
// masking preemption on a single-core microcontroller and taking a mutex
// on a host achieve the same thing for this design's purposes — mutual
// exclusion between task-context kernel calls and tick/ISR-context kernel
// calls. It is nestable: the goroutine that currently holds it may enter
// again without deadlocking itself, and only the outermost exit releases
// it.
type critSection struct {
	mu      sync.Mutex
	stateMu sync.Mutex
	owner   int64
	nest    int
}

// enter acquires the section, or increments the nest count if the calling
// goroutine already holds it.
func (c *critSection) enter() {
	gid := goroutineID()

	c.stateMu.Lock()
	if c.nest > 0 && c.owner == gid {
		c.nest++
		c.stateMu.Unlock()
		return
	}
	c.stateMu.Unlock()

	c.mu.Lock()

	c.stateMu.Lock()
	c.owner = gid
	c.nest = 1
	c.stateMu.Unlock()
}

// exit releases one level of nesting, unlocking the section only when the
// outermost enter is matched.
func (c *critSection) exit() {
	gid := goroutineID()

	c.stateMu.Lock()
	if c.nest == 0 || c.owner != gid {
		c.stateMu.Unlock()
		panic("hardrt: crit_exit without matching crit_enter")
	}
	c.nest--
	done := c.nest == 0
	if done {
		c.owner = 0
	}
	c.stateMu.Unlock()

	if done {
		c.mu.Unlock()
	}
}
