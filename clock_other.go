//go:build !linux

// Copyright 2025 Joseph Cumines
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

package coco

import "time"

// monotonicMs uses the Go runtime's monotonic clock reading (time.Now always
// carries one on supported platforms) rather than a raw syscall, mirroring
// the teacher eventloop package's poller_darwin.go/poller_windows.go pattern
// of a platform-appropriate fallback next to the Linux-specific syscall path.
// Readings are milliseconds since monotonicBase, measured with time.Since so
// that the monotonic reading, not the wall clock, is used.
var monotonicBase = time.Now()

func monotonicMs() int64 {
	return time.Since(monotonicBase).Milliseconds()
}
