// Copyright 2024 the Fabprov contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package backoff

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"k8s.io/apimachinery/pkg/util/wait"
)

func TestInfiniteBackoff(t *testing.T) {
	tests := []struct {
		name    string
		backoff *InfiniteBackoff
		want    []time.Duration
	}{
		{
			name:    "zero value never waits",
			backoff: &InfiniteBackoff{},
			want:    []time.Duration{0, 0, 0, 0},
		},
		{
			name:    "doubles from one second",
			backoff: &InfiniteBackoff{Duration: time.Second, Factor: 2},
			want:    []time.Duration{time.Second, 2 * time.Second, 4 * time.Second, 8 * time.Second},
		},
		{
			name:    "stops growing at the max duration",
			backoff: &InfiniteBackoff{Duration: time.Second, Factor: 3, MaxDuration: 5 * time.Second},
			want:    []time.Duration{time.Second, 3 * time.Second, 5 * time.Second, 5 * time.Second, 5 * time.Second},
		},
		{
			name:    "factor below one is treated as one",
			backoff: &InfiniteBackoff{Duration: 20 * time.Millisecond, Factor: 0.5},
			want:    []time.Duration{20 * time.Millisecond, 20 * time.Millisecond, 20 * time.Millisecond},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for i, want := range tt.want {
				require.Equalf(t, want, tt.backoff.Step(), "step #%d", i)
			}
			require.GreaterOrEqual(t, tt.backoff.Factor, 1.0)
		})
	}
}

func TestInfiniteBackoffJitter(t *testing.T) {
	b := &InfiniteBackoff{Duration: time.Second, Factor: 2, MaxDuration: 4 * time.Second, Jitter: 0.5}
	for _, base := range []time.Duration{time.Second, 2 * time.Second, 4 * time.Second, 4 * time.Second} {
		got := b.Step()
		require.GreaterOrEqual(t, got, base)
		require.LessOrEqual(t, got, base+base/2)
	}
}

type fakeStepper struct {
	steps int
}

func (f *fakeStepper) Step() time.Duration {
	f.steps++
	return 0
}

func TestWithContext(t *testing.T) {
	tests := []struct {
		name      string
		condition func(attempt int, cancel context.CancelFunc) (bool, error)
		wantErr   error
		wantCalls int
		wantSteps int
	}{
		{
			name: "succeeds on the third attempt",
			condition: func(attempt int, _ context.CancelFunc) (bool, error) {
				return attempt == 3, nil
			},
			wantCalls: 3,
			wantSteps: 2,
		},
		{
			name: "condition error stops the loop",
			condition: func(attempt int, _ context.CancelFunc) (bool, error) {
				if attempt == 2 {
					return false, errors.New("ca refused the request")
				}
				return false, nil
			},
			wantErr:   errors.New("ca refused the request"),
			wantCalls: 2,
			wantSteps: 1,
		},
		{
			name: "cancellation between attempts is reported",
			condition: func(attempt int, cancel context.CancelFunc) (bool, error) {
				if attempt == 4 {
					cancel()
				}
				return false, nil
			},
			wantErr:   context.Canceled,
			wantCalls: 4,
			wantSteps: 4,
		},
		{
			name: "a panicking condition is turned into its error",
			condition: func(int, context.CancelFunc) (bool, error) {
				panic(errors.New("boom"))
			},
			wantErr:   errors.New("boom"),
			wantCalls: 1,
			wantSteps: 0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, cancel := context.WithCancel(context.Background())
			t.Cleanup(cancel)

			stepper := &fakeStepper{}
			calls := 0
			err := WithContext(ctx, stepper, func(context.Context) (bool, error) {
				calls++
				return tt.condition(calls, cancel)
			})
			require.Equal(t, tt.wantErr, err)
			require.Equal(t, tt.wantCalls, calls)
			require.Equal(t, tt.wantSteps, stepper.steps)
		})
	}

	t.Run("an expired context never calls the condition", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(context.Background(), time.Nanosecond)
		t.Cleanup(cancel)
		<-ctx.Done()

		var condition wait.ConditionWithContextFunc = func(context.Context) (bool, error) {
			t.Fatal("condition should not be called")
			return false, nil
		}
		err := WithContext(ctx, &fakeStepper{}, condition)
		require.ErrorIs(t, err, context.DeadlineExceeded)
	})
}
