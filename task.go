package hardrt

// TaskID identifies a task table slot; the slot index doubles as the id.
type TaskID int

// EntryFunc is a task's entry point, called with the opaque argument
// supplied at CreateTask time.
type EntryFunc func(arg any)

// tcb is one task control block. stackBase/stackWords are retained for API
// fidelity (CreateTask validates against MinStackWords, and callers may
// introspect the buffer they supplied) but are not used as the goroutine's
// execution stack — see the port package doc for why.
type tcb struct {
	id         TaskID
	state      taskState
	entry      EntryFunc
	arg        any
	stackBase  []byte
	stackWords int
	priority   uint8
	sliceCfg   uint32
	sliceLeft  uint32
	wakeTick   uint32
	name       string
}

func newTCB(id TaskID) *tcb {
	return &tcb{id: id, state: stateUnused}
}
