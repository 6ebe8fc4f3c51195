// Copyright 2025 Joseph Cumines
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

package coco

// startOptions holds the construction-time configuration for Start,
// replacing the original C implementation's compile-time MAX_TASKS define
// (coco_config.h) with an ordinary Go value. USR_CTX_SIZE has no
// counterpart here.
type startOptions struct {
	maxTasks int
	logger   Logger
	clock    Clock
}

// --- Start Options ---

// Option configures a Start call.
type Option interface {
	applyStart(*startOptions) error
}

// optionImpl implements Option.
type optionImpl struct {
	applyFunc func(*startOptions) error
}

func (o *optionImpl) applyStart(opts *startOptions) error {
	return o.applyFunc(opts)
}

// WithMaxTasks sets the size of the task table. Defaults to 256, the same
// default as the original implementation's MAX_TASKS.
func WithMaxTasks(n int) Option {
	return &optionImpl{func(opts *startOptions) error {
		opts.maxTasks = n
		return nil
	}}
}

// WithLogger attaches a structured [Logger] to this runtime only, rather
// than mutating the package-level default installed by
// [SetStructuredLogger].
func WithLogger(logger Logger) Option {
	return &optionImpl{func(opts *startOptions) error {
		opts.logger = logger
		return nil
	}}
}

// WithClock overrides the monotonic clock used for YieldForMs/YieldForS
// wait_start deltas. Tests use this to inject a fake clock instead of
// waiting on wall time.
func WithClock(clock Clock) Option {
	return &optionImpl{func(opts *startOptions) error {
		opts.clock = clock
		return nil
	}}
}

// resolveOptions applies Option instances to startOptions.
func resolveOptions(opts []Option) (*startOptions, error) {
	cfg := &startOptions{
		maxTasks: defaultMaxTasks,
	}
	for _, opt := range opts {
		if opt == nil {
			continue // Skip nil options gracefully
		}
		if err := opt.applyStart(cfg); err != nil {
			return nil, err
		}
	}
	if cfg.logger == nil {
		cfg.logger = getGlobalLogger()
	}
	if cfg.clock == nil {
		cfg.clock = defaultClock
	}
	return cfg, nil
}
