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
	rootCmd.AddCommand(newNodesCommand(runRealDeps()))
}

func newNodesCommand(deps runDeps) *cobra.Command {
	cmd := &cobra.Command{
		Args:         cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs:    []string{provisioner.NodeTypePeer, provisioner.NodeTypeOrderer},
		Use:          "nodes (peer|orderer)",
		Short:        "Provision the identities of all peers or all orderers",
		SilenceUsage: true,
	}
	flags := addRunFlags(cmd, deps)

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		nodeType := args[0]
		return runSteps(cmd, deps, flags, func(ctx context.Context, _ *provisioner.Config, p pipeline) error {
			return p.ProvisionNodes(ctx, nodeType)
		})
	}

	return cmd
}
