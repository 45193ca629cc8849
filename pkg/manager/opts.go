package manager

import (
	server "github.com/mutablelogic/go-server"
	trace "go.opentelemetry.io/otel/trace"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

// Opt is a functional option for manager configuration.
type Opt func(*opts) error

type opts struct {
	tracer     trace.Tracer
	logger     server.Logger
	queueDepth int
}

////////////////////////////////////////////////////////////////////////////////
// OPTIONS

// WithTracer sets the tracer used to wrap every manager-level operation.
func WithTracer(tracer trace.Tracer) Opt {
	return func(o *opts) error {
		o.tracer = tracer
		return nil
	}
}

// WithLogger sets the logger used to report non-fatal conditions, such as
// a malformed journal line encountered during a scan.
func WithLogger(logger server.Logger) Opt {
	return func(o *opts) error {
		o.logger = logger
		return nil
	}
}

// WithQueueDepth sets the writer pool's queue depth.
func WithQueueDepth(depth int) Opt {
	return func(o *opts) error {
		o.queueDepth = depth
		return nil
	}
}

////////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func applyOpts(opt []Opt) (opts, error) {
	o := opts{queueDepth: 64}
	for _, fn := range opt {
		if err := fn(&o); err != nil {
			return opts{}, err
		}
	}
	return o, nil
}
