// Copyright 2025 Joseph Cumines
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

package coco

// Selectable is implemented by *Channel[T] for any T: its methods mention
// no type parameter, so a slice of differently-typed channels can be
// selected over together, matching spec.md §6's chan_select(cs[], n), which
// operates on an array of channel handles regardless of element type.
type Selectable interface {
	refreshReady()
	ReadReady() bool
	WriteReady() bool
}

// Select recomputes ReadReady/WriteReady on every channel in channels, per
// spec.md §4.4. It never yields: it is purely a polling primitive, and
// callers interleave it with their own Yield calls. Calling Select twice in
// a row with no intervening Send/Extract produces identical readiness
// flags (spec.md §8's select-idempotence property).
func Select(channels ...Selectable) {
	for _, c := range channels {
		c.refreshReady()
	}
}
