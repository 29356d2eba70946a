// Copyright 2024 the Fabprov contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"go.fabprov.dev/internal/config/provisioner"
	"go.fabprov.dev/internal/here"
	"go.fabprov.dev/internal/plog"
)

//nolint:gochecknoinits
func init() {
	rootCmd.AddCommand(newAllCommand(runRealDeps()))
}

func newAllCommand(deps runDeps) *cobra.Command {
	cmd := &cobra.Command{
		Args:  cobra.NoArgs,
		Use:   "all",
		Short: "Provision the whole network",
		Long: here.Doc(`
			Provision every organization admin, generate the genesis block and the
			channel creation transaction, then provision all orderers and all peers.
		`),
		SilenceUsage: true,
	}
	flags := addRunFlags(cmd, deps)

	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		return runSteps(cmd, deps, flags, provisionAll)
	}

	return cmd
}

func provisionAll(ctx context.Context, config *provisioner.Config, p pipeline) error {
	if err := provisionAdmins(ctx, p, config.MSPNames()); err != nil {
		return err
	}

	if len(config.Orderers.Names) > 0 {
		if err := p.GenesisBlock(ctx); err != nil {
			return err
		}
	} else {
		plog.Info("no orderers configured, skipping genesis block")
	}

	if config.Peers.ChannelName != "" {
		if err := p.ChannelTx(ctx); err != nil {
			return err
		}
	} else {
		plog.Info("no channel configured, skipping channel transaction")
	}

	if err := p.ProvisionNodes(ctx, provisioner.NodeTypeOrderer); err != nil {
		return err
	}
	return p.ProvisionNodes(ctx, provisioner.NodeTypePeer)
}
