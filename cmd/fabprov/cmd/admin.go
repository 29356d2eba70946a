// Copyright 2024 the Fabprov contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"go.fabprov.dev/internal/config/provisioner"
	"go.fabprov.dev/internal/here"
)

//nolint:gochecknoinits
func init() {
	rootCmd.AddCommand(newAdminCommand(runRealDeps()))
}

func newAdminCommand(deps runDeps) *cobra.Command {
	cmd := &cobra.Command{
		Args:  cobra.NoArgs,
		Use:   "admin",
		Short: "Provision organization admin identities",
		Long: here.Doc(`
			Register and enroll the admin identity of each organization, assemble its
			local MSP directory and store its credentials as secrets in the
			organization's namespace, which is created when missing.
		`),
		SilenceUsage: true,
	}
	flags := addRunFlags(cmd, deps)

	var msps []string
	cmd.Flags().StringSliceVar(&msps, "msp", nil, "Organizations to provision (default: all configured organizations)")

	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		return runSteps(cmd, deps, flags, func(ctx context.Context, config *provisioner.Config, p pipeline) error {
			targets := msps
			if len(targets) == 0 {
				targets = config.MSPNames()
			}
			return provisionAdmins(ctx, p, targets)
		})
	}

	return cmd
}

func provisionAdmins(ctx context.Context, p pipeline, msps []string) error {
	for _, msp := range msps {
		if err := p.ProvisionAdmin(ctx, msp); err != nil {
			return err
		}
	}
	return nil
}
