// Copyright 2024 the Fabprov contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package backoff drives retry loops for calls to remote agents that may be
// temporarily unreachable, such as a certificate authority behind an ingress.
package backoff

import (
	"context"
	"math"
	"time"

	"k8s.io/apimachinery/pkg/util/wait"
)

type Stepper interface {
	Step() time.Duration
}

// InfiniteBackoff never runs out of steps. Callers bound the retry loop with a context deadline.
type InfiniteBackoff struct {
	// The initial duration.
	Duration time.Duration

	// Factor is used to scale up the Duration until it reaches MaxDuration.
	// Should be at least 1.0.
	Factor float64

	// A limit on step size. Once reached, this value will be used as the interval.
	MaxDuration time.Duration

	// Jitter adds up to Jitter*step of random delay to each step. Zero disables it.
	Jitter float64

	hasStepped bool
}

var _ Stepper = (*InfiniteBackoff)(nil)

// Step returns the next duration in the backoff sequence.
// It modifies the receiver and is not thread-safe.
func (b *InfiniteBackoff) Step() time.Duration {
	if !b.hasStepped {
		b.hasStepped = true
		return b.jittered(b.Duration)
	}

	b.Factor = math.Max(1, b.Factor)
	next := time.Duration(float64(b.Duration) * b.Factor)
	if b.MaxDuration > 0 && next > b.MaxDuration {
		next = b.MaxDuration
	}
	b.Duration = next
	return b.jittered(next)
}

func (b *InfiniteBackoff) jittered(d time.Duration) time.Duration {
	if b.Jitter <= 0 {
		return d
	}
	return wait.Jitter(d, b.Jitter)
}

func wrapConditionWithNoPanics(ctx context.Context, condition wait.ConditionWithContextFunc) (done bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			if err2, ok := r.(error); ok {
				err = err2
				return
			}
		}
	}()

	return condition(ctx)
}

// WithContext runs condition until it reports done, returns an error, or ctx ends.
// The wait between attempts comes from backoff. When ctx ends the context error is returned.
func WithContext(ctx context.Context, backoff Stepper, condition wait.ConditionWithContextFunc) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if ok, err := wrapConditionWithNoPanics(ctx, condition); err != nil || ok {
			return err
		}

		waitBeforeRetry := backoff.Step()

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(waitBeforeRetry):
		}
	}
}
