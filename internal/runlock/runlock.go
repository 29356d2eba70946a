// Copyright 2024 the Fabprov contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package runlock keeps two provisioning runs from working on the same directory at once.
package runlock

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"

	"go.fabprov.dev/internal/constable"
)

const (
	FileName = ".fabprov.lock"

	ErrLocked = constable.Error("another fabprov run holds the lock")

	retryDelay = 100 * time.Millisecond
)

// Acquire takes an exclusive lock on FileName inside dir, waiting until timeout for another
// holder to release it. The returned function releases the lock.
func Acquire(ctx context.Context, dir string, timeout time.Duration) (func() error, error) {
	path := filepath.Join(dir, FileName)
	lock := flock.New(path)

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	locked, err := lock.TryLockContext(ctx, retryDelay)
	if err != nil && ctx.Err() == nil {
		return nil, fmt.Errorf("lock %s: %w", path, err)
	}
	if !locked {
		return nil, fmt.Errorf("%w: %s", ErrLocked, path)
	}

	return lock.Unlock, nil
}
