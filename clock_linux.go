//go:build linux

// Copyright 2025 Joseph Cumines
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

package coco

import "golang.org/x/sys/unix"

// monotonicMs reads CLOCK_MONOTONIC directly, in the same style the teacher
// eventloop package's poller_linux.go uses golang.org/x/sys/unix for
// platform syscalls rather than going through a higher-level wrapper.
func monotonicMs() int64 {
	var ts unix.Timespec
	if err := unix.ClockGettime(unix.CLOCK_MONOTONIC, &ts); err != nil {
		// Should not happen for CLOCK_MONOTONIC on any real Linux kernel;
		// fall back rather than propagate, since callers only use this for
		// spin-yield deltas, never as an error path.
		return 0
	}
	return ts.Sec*1000 + ts.Nsec/1_000_000
}
