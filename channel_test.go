// Copyright 2025 Joseph Cumines
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

package coco

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBufferedChannelFIFO(t *testing.T) {
	var got []int
	_, err := Start(func(any) {
		ch := NewChannel[int](10)
		for i := 0; i < 10; i++ {
			require.Equal(t, Okay, ch.Send(i))
		}
		for i := 0; i < 10; i++ {
			v, status := ch.Extract()
			require.Equal(t, Okay, status)
			got = append(got, v)
		}
		Exit(0)
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, got)
}

func TestBufferedChannelSendBlocksUntilRoom(t *testing.T) {
	yieldCount := 0
	_, err := Start(func(any) {
		ch := NewChannel[int](1)
		require.Equal(t, Okay, ch.Send(1))
		sent := false

		AddTask(func(any) {
			// count the dispatches that happen while the producer is still
			// blocked in Send on the full channel, then drain to make room
			for i := 0; i < 2; i++ {
				if !sent {
					yieldCount++
				}
				Yield()
			}
			_, _ = ch.Extract()
			Exit(0)
		}, nil)

		require.Equal(t, Okay, ch.Send(2))
		sent = true
		Exit(0)
	}, nil)
	require.NoError(t, err)
	assert.Greater(t, yieldCount, 0)
}

func TestClosedBufferedChannelDrainsThenClosedForever(t *testing.T) {
	_, err := Start(func(any) {
		ch := NewChannel[int](3)
		ch.Send(1)
		ch.Send(2)
		ch.Close()

		v, status := ch.Extract()
		assert.Equal(t, Okay, status)
		assert.Equal(t, 1, v)

		v, status = ch.Extract()
		assert.Equal(t, Okay, status)
		assert.Equal(t, 2, v)

		_, status = ch.Extract()
		assert.Equal(t, Closed, status)
		_, status = ch.Extract()
		assert.Equal(t, Closed, status)

		assert.Equal(t, Closed, ch.Send(3))
		Exit(0)
	}, nil)
	require.NoError(t, err)
}

func TestClosedUnbufferedChannelNoDeadlock(t *testing.T) {
	_, err := Start(func(any) {
		ch := NewChannel[int](0)

		sendDone := make(chan struct{}, 1)
		AddTask(func(any) {
			status := ch.Send(7)
			assert.Equal(t, Closed, status)
			sendDone <- struct{}{}
			Exit(0)
		}, nil)

		Yield() // let the sender start waiting
		ch.Close()

		_, status := ch.Extract()
		assert.Equal(t, Closed, status)

		for len(sendDone) == 0 {
			Yield()
		}
		Exit(0)
	}, nil)
	require.NoError(t, err)
}

func TestSelectIdempotence(t *testing.T) {
	_, err := Start(func(any) {
		a := NewChannel[int](2)
		b := NewChannel[int](0)
		a.Send(1)

		Select(a, b)
		readyA1, writeA1 := a.ReadReady(), a.WriteReady()
		readyB1, writeB1 := b.ReadReady(), b.WriteReady()

		Select(a, b)
		readyA2, writeA2 := a.ReadReady(), a.WriteReady()
		readyB2, writeB2 := b.ReadReady(), b.WriteReady()

		assert.Equal(t, readyA1, readyA2)
		assert.Equal(t, writeA1, writeA2)
		assert.Equal(t, readyB1, readyB2)
		assert.Equal(t, writeB1, writeB2)
		Exit(0)
	}, nil)
	require.NoError(t, err)
}

func TestUnbufferedChannelRendezvous(t *testing.T) {
	var received int
	_, err := Start(func(any) {
		ch := NewChannel[int](0)
		AddTask(func(any) {
			ch.Send(5)
			Exit(0)
		}, nil)
		v, status := ch.Extract()
		require.Equal(t, Okay, status)
		received = v
		Exit(0)
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, 5, received)
}
