package port

// NullPort is a deterministic, test-only port: it never arms a periodic
// tick source, matching an External-tick-source kernel configuration. The
// embedder (a test, in practice) advances time explicitly by calling the
// kernel's TickFromISR, so scheduling decisions are fully reproducible,
// independent of any real clock.
type NullPort struct {
	*base
}

var _ Port = (*NullPort)(nil)

// NewNullPort constructs a Port with no tick source of its own.
func NewNullPort() *NullPort {
	return &NullPort{base: newBase()}
}

// StartTick is a no-op: NullPort never owns the clock.
func (p *NullPort) StartTick(tickHz uint32, onTick func()) {}

// StopTick is a no-op.
func (p *NullPort) StopTick() {}
