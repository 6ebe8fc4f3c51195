// Copyright 2025 Joseph Cumines
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

package coco

// defaultMaxTasks is the task table size used when [WithMaxTasks] is not
// supplied to [Start], matching the original implementation's MAX_TASKS
// default of (1 << 8) (coco_config.h).
const defaultMaxTasks = 256

// WaitPid option bits, renamed from the C COCO_WNOOPT/COCO_WNOHANG defines.
const (
	// WNoOpt requests the default blocking behavior: WaitPid yields
	// repeatedly until the target task reaches Done.
	WNoOpt = 0
	// WNoHang requests a non-blocking check: WaitPid returns (0, 0)
	// immediately if the target task has not yet reached Done.
	WNoHang = 1 << 0
)
