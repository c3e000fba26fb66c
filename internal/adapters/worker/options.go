package worker

import (
	"github.com/okian/rollcall/pkg/logger"
)

type settings struct {
	name      string
	queueSize int
	logger    logger.Logger
}

// Option applies a configuration option to the Pool.
type Option func(*settings)

// WithName sets the pool name used in logs.
func WithName(name string) Option {
	return func(s *settings) {
		if name != "" {
			s.name = name
		}
	}
}

// WithLogger sets a custom logger for the pool. The default discards.
func WithLogger(l logger.Logger) Option {
	return func(s *settings) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithQueueSize bounds the number of jobs waiting for a worker.
func WithQueueSize(size int) Option {
	return func(s *settings) {
		if size > 0 {
			s.queueSize = size
		}
	}
}
