package store

import (
	"os"

	"github.com/go-kit/log"
)

type options struct {
	logger     log.Logger
	metrics    *Metrics
	syncWrites bool
	fileMode   os.FileMode
}

func defaultOptions() options {
	return options{
		logger:     log.NewNopLogger(),
		syncWrites: true,
		fileMode:   0600,
	}
}

// Option configures a File
type Option func(*options)

// WithLogger sets the logger used for relocation, truncation and corruption
// messages
func WithLogger(logger log.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithMetrics records operation counters on m
func WithMetrics(m *Metrics) Option {
	return func(o *options) {
		o.metrics = m
	}
}

// WithSyncWrites controls whether every mutation is followed by fsync.
// Enabled by default.
func WithSyncWrites(sync bool) Option {
	return func(o *options) {
		o.syncWrites = sync
	}
}

// WithFileMode sets the permission bits used when the file is created
func WithFileMode(mode os.FileMode) Option {
	return func(o *options) {
		o.fileMode = mode
	}
}
