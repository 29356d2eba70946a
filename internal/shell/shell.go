// Copyright 2024 the Fabprov contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package shell runs local command line tools such as fabric-ca-client and configtxgen.
package shell

import (
	"context"
	"fmt"
	"os"
	"strings"

	utilexec "k8s.io/utils/exec"

	"go.fabprov.dev/internal/backoff"
	"go.fabprov.dev/internal/plog"
)

// Command is one invocation of a local tool. Dir is the working directory of the child process
// and Env is appended to the environment of the current process.
type Command struct {
	Name string
	Args []string
	Dir  string
	Env  []string
}

func (c Command) String() string {
	return c.Name
}

type Runner interface {
	Run(ctx context.Context, cmd Command) (output string, err error)
	RunUntilSuccess(ctx context.Context, cmd Command, backoff backoff.Stepper) error
}

type runner struct {
	exec utilexec.Interface
	log  plog.Logger
}

var _ Runner = (*runner)(nil)

func New(exec utilexec.Interface, log plog.Logger) Runner {
	return &runner{exec: exec, log: log}
}

// Run executes cmd and returns its combined output. Arguments are never logged since they
// may carry credentials.
func (r *runner) Run(ctx context.Context, cmd Command) (string, error) {
	c := r.exec.CommandContext(ctx, cmd.Name, cmd.Args...)
	if cmd.Dir != "" {
		c.SetDir(cmd.Dir)
	}
	if len(cmd.Env) > 0 {
		c.SetEnv(append(os.Environ(), cmd.Env...))
	}

	r.log.Trace("running command", "command", cmd.Name, "dir", cmd.Dir)

	out, err := c.CombinedOutput()
	if err != nil {
		if output := strings.TrimSpace(string(out)); output != "" {
			return string(out), fmt.Errorf("run %s: %w: %s", cmd.Name, err, output)
		}
		return string(out), fmt.Errorf("run %s: %w", cmd.Name, err)
	}
	return string(out), nil
}

// RunUntilSuccess retries cmd until it exits successfully. It gives up when ctx ends and then
// returns the context error together with the last failure.
func (r *runner) RunUntilSuccess(ctx context.Context, cmd Command, stepper backoff.Stepper) error {
	var (
		attempts int
		lastErr  error
	)

	err := backoff.WithContext(ctx, stepper, func(ctx context.Context) (bool, error) {
		attempts++
		if _, err := r.Run(ctx, cmd); err != nil {
			lastErr = err
			r.log.DebugErr("command failed, will retry", err, "command", cmd.Name, "attempt", attempts)
			return false, nil
		}
		return true, nil
	})
	if err != nil {
		if lastErr != nil {
			return fmt.Errorf("%w after %d attempts: %w", err, attempts, lastErr)
		}
		return err
	}

	r.log.Debug("command succeeded", "command", cmd.Name, "attempts", attempts)
	return nil
}
