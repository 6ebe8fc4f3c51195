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

func TestDefaultSigIntExitsTask(t *testing.T) {
	var reapedStatus int
	_, err := Start(func(any) {
		tid := AddTask(func(any) {
			for {
				Yield()
			}
		}, nil)
		Yield() // let the task start and reach its own yield point
		require.NoError(t, Kill(tid, SigInt))
		Yield() // deliver the signal on the task's next resume
		_, reapedStatus = WaitPid(tid, WNoOpt)
		Exit(0)
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, reapedStatus)
}

func TestSigStpStopsAndSigContResumes(t *testing.T) {
	var stopped, continued bool
	var sendsAfterResume int
	_, err := Start(func(any) {
		tid := AddTask(func(any) {
			SigAction(SigStp, func() { stopped = true })
			SigAction(SigCont, func() { continued = true })
			for i := 0; i < 3; i++ {
				sendsAfterResume++
				Yield()
			}
			Exit(0)
		}, nil)

		Yield() // let it run once
		require.NoError(t, Kill(tid, SigStp))
		Yield() // delivered on next resume; task goes Stopped

		assert.Equal(t, StatusStopped, currentRuntime().taskByID(tid).status)

		before := sendsAfterResume
		for i := 0; i < 3; i++ {
			Yield()
		}
		assert.Equal(t, before, sendsAfterResume, "stopped task must not progress")

		require.NoError(t, Kill(tid, SigCont))
		WaitPid(tid, WNoOpt)

		Exit(0)
	}, nil)
	require.NoError(t, err)
	assert.True(t, stopped)
	assert.True(t, continued)
}

func TestSigActionRejectsUnknownSignal(t *testing.T) {
	_, err := Start(func(any) {
		err := SigAction(Signal(99), func() {})
		assert.ErrorIs(t, err, ErrUnknownSignal)
		Exit(0)
	}, nil)
	require.NoError(t, err)
}

func TestKillWithoutRunningRuntime(t *testing.T) {
	err := Kill(1, SigInt)
	assert.ErrorIs(t, err, ErrNotRunning)
}
