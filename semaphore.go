// Copyright 2025 Joseph Cumines
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

package coco

// Semaphore is a non-negative permit counter built atop Yield. As with
// WaitGroup, semaphore.c's own comment applies unchanged here: because no
// preemption occurs between the test and the decrement in Wait, the usual
// TOCTOU race that a semaphore guards against under real parallelism simply
// cannot happen under COCO's cooperative model.
type Semaphore struct {
	permits int
}

// NewSemaphore returns a Semaphore initialized with n permits. n=1 yields a
// mutual-exclusion lock; n>1 bounds concurrency at n.
func NewSemaphore(n int) *Semaphore {
	return &Semaphore{permits: n}
}

// Wait yields while no permit is available, then takes one.
func (s *Semaphore) Wait() {
	for s.permits <= 0 {
		Yield()
	}
	s.permits--
}

// Post returns a permit.
func (s *Semaphore) Post() {
	s.permits++
}
