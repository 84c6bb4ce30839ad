package spectral

import "log/slog"

type options struct {
	logger   *slog.Logger
	workers  int
	observer Observer
}

// Option configures an engine call.
type Option func(*options)

// WithLogger routes engine logs to l instead of slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithWorkers solves up to n direct samples concurrently. Output order is
// unaffected.
func WithWorkers(n int) Option {
	return func(o *options) { o.workers = n }
}

func WithObserver(obs Observer) Option {
	return func(o *options) { o.observer = obs }
}

func buildOptions(opts []Option) options {
	o := options{workers: 1}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	if o.workers < 1 {
		o.workers = 1
	}
	return o
}
