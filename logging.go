package hardrt

import (
	"github.com/joeycumines/logiface"
	"github.com/joeycumines/stumpy"
)

// Logger is the structured-logging seam the kernel writes diagnostics
// through: a debug line per created task, and any fatal error routed
// through the default error hook. Task-creation failures and failed
// semaphore/queue try operations are counted in Metrics, not logged. It is
// satisfied by stumpyLogger, an adapter over *logiface.Logger[*stumpy.Event].
type Logger interface {
	Warn() *logiface.Builder[*stumpy.Event]
	Error() *logiface.Builder[*stumpy.Event]
	Debug() *logiface.Builder[*stumpy.Event]
}

// stumpyLogger adapts *logiface.Logger[*stumpy.Event] to Logger, renaming
// logiface's syslog-style level methods (Warning/Err) to the names this
// package's call sites use.
type stumpyLogger struct {
	l *logiface.Logger[*stumpy.Event]
}

func (s stumpyLogger) Warn() *logiface.Builder[*stumpy.Event]  { return s.l.Warning() }
func (s stumpyLogger) Error() *logiface.Builder[*stumpy.Event] { return s.l.Err() }
func (s stumpyLogger) Debug() *logiface.Builder[*stumpy.Event] { return s.l.Debug() }

// defaultLogger builds the stderr JSON logger used when Config.Logger is nil.
func defaultLogger() Logger {
	return stumpyLogger{l: stumpy.L.New(stumpy.L.WithStumpy())}
}

// noopLogger discards everything; used by tests that want silence without
// a nil check at every call site.
type noopLogger struct{}

func (noopLogger) Warn() *logiface.Builder[*stumpy.Event]  { return nil }
func (noopLogger) Error() *logiface.Builder[*stumpy.Event] { return nil }
func (noopLogger) Debug() *logiface.Builder[*stumpy.Event] { return nil }
