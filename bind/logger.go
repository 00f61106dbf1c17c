package bind

import (
	"runtime"
	"sync"

	"go.uber.org/zap"
)

var (
	logger     *zap.Logger
	loggerOnce sync.Once
)

// Logger returns the package's default logger.
// It uses a no-op logger by default.
func Logger() *zap.Logger {
	loggerOnce.Do(func() {
		if logger == nil {
			logger = zap.NewNop()
		}
	})
	return logger
}

// SetLogger configures the default logger picked up by components created
// afterwards. Components created earlier keep the logger they started with.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	loggerOnce.Do(func() {})
	logger = l
}

// Option configures a Root or a Child at construction.
type Option func(*options)

type options struct {
	log     *zap.Logger
	reclaim func()
}

// WithLogger sets the component's logger.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.log = l
		}
	}
}

// WithReclaimHint toggles the post-injection memory reclamation hint issued by
// a root. Enabled by default; ignored on children.
func WithReclaimHint(enabled bool) Option {
	return func(o *options) {
		if enabled {
			o.reclaim = reclaimHint
		} else {
			o.reclaim = nil
		}
	}
}

// WithReclaimer replaces the reclamation hint. fn runs synchronously at the
// end of the root's pass and should return immediately.
func WithReclaimer(fn func()) Option {
	return func(o *options) { o.reclaim = fn }
}

// reclaimHint asks the runtime to collect the dropped binding tables.
// Fire and forget; nothing waits on it.
func reclaimHint() {
	go runtime.GC()
}

func newOptions(log *zap.Logger, opts []Option) options {
	o := options{log: log, reclaim: reclaimHint}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}
