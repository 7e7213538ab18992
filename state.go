package hardrt

import "sync/atomic"

// taskState is a TCB's lifecycle state.
type taskState uint32

const (
	stateUnused taskState = iota
	stateReady
	stateSleep
	stateBlocked
)

func (s taskState) String() string {
	switch s {
	case stateUnused:
		return "Unused"
	case stateReady:
		return "Ready"
	case stateSleep:
		return "Sleep"
	case stateBlocked:
		return "Blocked"
	default:
		return "State(?)"
	}
}

// kernelState is the run state of the Kernel itself, CAS-driven so it can
// be read from tick context without taking the critical section.
type kernelState uint32

const (
	kernelUnstarted kernelState = iota
	kernelRunning
	kernelStopped
)

// fastState is a lock-free state cell built on a single atomic word,
// FastState: pure CAS transitions, no mutex, safe to poll from a tick or
// ISR-equivalent goroutine.
type fastState struct {
	v atomic.Uint32
}

func newFastState(initial kernelState) *fastState {
	s := &fastState{}
	s.v.Store(uint32(initial))
	return s
}

func (s *fastState) Load() kernelState { return kernelState(s.v.Load()) }

func (s *fastState) Store(v kernelState) { s.v.Store(uint32(v)) }

func (s *fastState) TryTransition(from, to kernelState) bool {
	return s.v.CompareAndSwap(uint32(from), uint32(to))
}
