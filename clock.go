// Copyright 2025 Joseph Cumines
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

package coco

import "time"

// Clock abstracts the monotonic time source [YieldForMs] and [YieldForS] use
// to measure elapsed wait time, in the manner of poller.go's platform split
// in the teacher eventloop package (see clock_linux.go / clock_other.go).
// Tests inject a fake Clock via [WithClock] instead of sleeping on wall time.
type Clock interface {
	// NowMs returns a monotonic timestamp in milliseconds. Only differences
	// between two NowMs calls are meaningful.
	NowMs() int64
}

// defaultClock is the Clock used when [WithClock] is not supplied.
var defaultClock Clock = systemClock{}

// systemClock reads the platform monotonic clock; see clock_linux.go and
// clock_other.go for the two implementations of monotonicMs.
type systemClock struct{}

func (systemClock) NowMs() int64 {
	return monotonicMs()
}

// fakeClock is a manually-advanced [Clock], for tests that need to exercise
// YieldForMs/YieldForS without a real time dependency.
type fakeClock struct {
	ms int64
}

// newFakeClock returns a fakeClock starting at t0.
func newFakeClock(t0 int64) *fakeClock {
	return &fakeClock{ms: t0}
}

func (c *fakeClock) NowMs() int64 {
	return c.ms
}

// Advance moves the clock forward by d.
func (c *fakeClock) Advance(d time.Duration) {
	c.ms += d.Milliseconds()
}
