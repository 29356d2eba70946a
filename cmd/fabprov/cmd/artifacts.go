// Copyright 2024 the Fabprov contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"go.fabprov.dev/internal/config/provisioner"
)

//nolint:gochecknoinits
func init() {
	rootCmd.AddCommand(newGenesisCommand(runRealDeps()))
	rootCmd.AddCommand(newChannelTxCommand(runRealDeps()))
}

func newGenesisCommand(deps runDeps) *cobra.Command {
	cmd := &cobra.Command{
		Args:         cobra.NoArgs,
		Use:          "genesis",
		Short:        "Generate the orderer genesis block and store it as a secret",
		SilenceUsage: true,
	}
	flags := addRunFlags(cmd, deps)

	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		return runSteps(cmd, deps, flags, func(ctx context.Context, _ *provisioner.Config, p pipeline) error {
			return p.GenesisBlock(ctx)
		})
	}

	return cmd
}

func newChannelTxCommand(deps runDeps) *cobra.Command {
	cmd := &cobra.Command{
		Args:         cobra.NoArgs,
		Use:          "channel-tx",
		Short:        "Generate the channel creation transaction and store it as a secret",
		SilenceUsage: true,
	}
	flags := addRunFlags(cmd, deps)

	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		return runSteps(cmd, deps, flags, func(ctx context.Context, _ *provisioner.Config, p pipeline) error {
			return p.ChannelTx(ctx)
		})
	}

	return cmd
}
