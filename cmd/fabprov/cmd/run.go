// Copyright 2024 the Fabprov contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"go.fabprov.dev/internal/config/provisioner"
	"go.fabprov.dev/internal/plog"
	"go.fabprov.dev/internal/runlock"
)

type runDeps struct {
	getenv      func(key string) string
	loadConfig  func(path string) (*provisioner.Config, error)
	setLogging  func(ctx context.Context, spec plog.LogSpec) error
	isTerminal  func() bool
	lock        func(ctx context.Context, dir string, timeout time.Duration) (func() error, error)
	newPipeline newPipelineFunc
}

func runRealDeps() runDeps {
	return runDeps{
		getenv:      os.Getenv,
		loadConfig:  provisioner.FromPath,
		setLogging:  plog.ValidateAndSetLogLevelAndFormatGlobally,
		isTerminal:  func() bool { return term.IsTerminal(int(os.Stderr.Fd())) },
		lock:        runlock.Acquire,
		newPipeline: newRealPipeline,
	}
}

type runFlags struct {
	configPath string
	logLevel   string
	timeout    time.Duration

	lockTimeout time.Duration

	kubeconfigPath            string
	kubeconfigContextOverride string
}

func addRunFlags(cmd *cobra.Command, deps runDeps) *runFlags {
	flags := &runFlags{}

	f := cmd.Flags()
	f.StringVarP(&flags.configPath, "config", "c", "fabprov.yaml", "Path to the network configuration file")
	f.StringVar(&flags.logLevel, "log-level", "", "Log level override (e.g., 'info', 'debug', 'trace', 'all')")
	f.DurationVar(&flags.timeout, "timeout", 0, "Timeout for the whole run (default: 0, meaning no timeout)")
	f.DurationVar(&flags.lockTimeout, "lock-timeout", 10*time.Second, "How long to wait for another run on the same working directory to finish")
	f.StringVar(&flags.kubeconfigPath, "kubeconfig", deps.getenv("KUBECONFIG"), "Path to kubeconfig file")
	f.StringVar(&flags.kubeconfigContextOverride, "kubeconfig-context", "", "Kubeconfig context name (default: current active context)")

	return flags
}

type stepFunc func(ctx context.Context, config *provisioner.Config, p pipeline) error

// runSteps loads the config, takes the run lock on the working directory and runs step.
func runSteps(cmd *cobra.Command, deps runDeps, flags *runFlags, step stepFunc) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if flags.timeout > 0 {
		var cancelFunc context.CancelFunc
		ctx, cancelFunc = context.WithTimeout(ctx, flags.timeout)
		defer cancelFunc()
	}

	config, err := deps.loadConfig(flags.configPath)
	if err != nil {
		return fmt.Errorf("could not load config: %w", err)
	}

	logSpec := config.Log
	if flags.logLevel != "" {
		logSpec.Level = plog.LogLevel(flags.logLevel)
	}
	if logSpec.Format == "" && deps.isTerminal() {
		logSpec.Format = plog.FormatCLI
	}
	if err := deps.setLogging(ctx, logSpec); err != nil {
		return fmt.Errorf("could not configure logging: %w", err)
	}

	if err := os.MkdirAll(config.Core.DirConfig, 0o755); err != nil {
		return fmt.Errorf("could not create working directory: %w", err)
	}

	release, err := deps.lock(ctx, config.Core.DirConfig, flags.lockTimeout)
	if err != nil {
		return fmt.Errorf("could not lock working directory: %w", err)
	}
	defer func() {
		if err := release(); err != nil {
			plog.WarningErr("could not release run lock", err, "dir", config.Core.DirConfig)
		}
	}()

	p, err := deps.newPipeline(config, newClientConfig(flags.kubeconfigPath, flags.kubeconfigContextOverride))
	if err != nil {
		return fmt.Errorf("could not configure Kubernetes client: %w", err)
	}

	return step(ctx, config, p)
}
