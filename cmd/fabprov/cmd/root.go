// Copyright 2024 the Fabprov contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"github.com/spf13/cobra"

	"go.fabprov.dev/internal/here"
	"go.fabprov.dev/internal/plog"
)

//nolint:gochecknoglobals
var rootCmd = &cobra.Command{
	Use:   "fabprov",
	Short: "Provision Hyperledger Fabric identities on Kubernetes",
	Long: here.Doc(`
		fabprov registers and enrolls the identities of Fabric peers, orderers and
		organization admins with their Fabric CA, and stores the resulting crypto
		material as Kubernetes secrets. Every step is skipped when its result already
		exists, so an interrupted run can simply be started again.
	`),
	SilenceUsage: true, // do not print usage message when commands fail
}

//nolint:gochecknoinits
func init() {
	// We don't want klog flags showing up in our CLI.
	plog.RemoveKlogGlobalFlags()
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}
