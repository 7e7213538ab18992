package port

import (
	"sync"
	"time"
)

// HostPort is the representative port for a POSIX host: its Internal tick
// source is a time.Ticker-driven goroutine, the Go analogue of the
// original port's SIGALRM-driven periodic interrupt.
type HostPort struct {
	*base

	mu     sync.Mutex
	ticker *time.Ticker
	stopCh chan struct{}
}

var _ Port = (*HostPort)(nil)

// NewHostPort constructs a Port suitable for running on a POSIX host, with
// an Internal tick source armed by StartTick.
func NewHostPort() *HostPort {
	return &HostPort{base: newBase()}
}

// StartTick arms a time.Ticker at the requested frequency, invoking onTick
// once per period on a dedicated goroutine until StopTick or Shutdown.
func (p *HostPort) StartTick(tickHz uint32, onTick func()) {
	if tickHz == 0 {
		tickHz = 1000
	}
	period := time.Second / time.Duration(tickHz)
	if period <= 0 {
		period = time.Microsecond
	}

	p.mu.Lock()
	if p.ticker != nil {
		p.mu.Unlock()
		return
	}
	p.ticker = time.NewTicker(period)
	p.stopCh = make(chan struct{})
	ticker, stop := p.ticker, p.stopCh
	p.mu.Unlock()

	go func() {
		for {
			select {
			case <-ticker.C:
				onTick()
			case <-stop:
				return
			}
		}
	}()
}

// StopTick disarms the periodic tick source started by StartTick.
func (p *HostPort) StopTick() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ticker == nil {
		return
	}
	p.ticker.Stop()
	close(p.stopCh)
	p.ticker = nil
	p.stopCh = nil
}

// Shutdown stops the tick source (if any) and releases the boot park.
func (p *HostPort) Shutdown() {
	p.StopTick()
	p.base.Shutdown()
}
