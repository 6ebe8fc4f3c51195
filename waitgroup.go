// Copyright 2025 Joseph Cumines
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

package coco

// WaitGroup is an unsigned counter built directly atop Yield, following
// waitgroup.h's own note that under cooperative scheduling the increment,
// check and decrement operations need no locking at all: nothing can
// preempt the code between a counter read and its update, since nothing
// runs concurrently with it.
type WaitGroup struct {
	count uint
}

// NewWaitGroup returns a WaitGroup with a zero counter.
func NewWaitGroup() *WaitGroup {
	return &WaitGroup{}
}

// Add increments the counter by n.
func (wg *WaitGroup) Add(n uint) {
	wg.count += n
}

// Done decrements the counter by one. Calling Done with a zero counter is a
// caller bug (spec.md §4.5: "undefined behavior if done called without a
// prior add") and panics with a FatalError rather than wrapping to a huge
// unsigned value.
func (wg *WaitGroup) Done() {
	if wg.count == 0 {
		fatalf(0, FatalStackDiscipline, "WaitGroup.Done called with a zero counter")
	}
	wg.count--
}

// Check reports whether the counter is currently zero.
func (wg *WaitGroup) Check() bool {
	return wg.count == 0
}

// Wait yields until the counter reaches zero.
func (wg *WaitGroup) Wait() {
	for !wg.Check() {
		Yield()
	}
}
