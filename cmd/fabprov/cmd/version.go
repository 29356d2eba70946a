// Copyright 2024 the Fabprov contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	apimachineryversion "k8s.io/apimachinery/pkg/version"
	"sigs.k8s.io/yaml"

	"go.fabprov.dev/internal/pversion"
)

//nolint:gochecknoinits
func init() {
	rootCmd.AddCommand(newVersionCommand(pversion.Get))
}

func newVersionCommand(getVersion func() apimachineryversion.Info) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Args:  cobra.NoArgs, // do not accept positional arguments for this command
		Use:   "version",
		Short: "Print the version of this fabprov binary",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return writeVersion(cmd.OutOrStdout(), output, getVersion())
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "text", "Output format (e.g., 'yaml', 'json', 'text')")

	return cmd
}

func writeVersion(out io.Writer, format string, info apimachineryversion.Info) error {
	switch format {
	case "text":
		_, err := fmt.Fprintf(out, "fabprov %s (commit %s, %s, %s)\n", info.GitVersion, info.GitCommit, info.GoVersion, info.Platform)
		return err
	case "json":
		data, err := json.MarshalIndent(info, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(out, "%s\n", data)
		return err
	case "yaml":
		data, err := yaml.Marshal(info)
		if err != nil {
			return err
		}
		_, err = out.Write(data)
		return err
	default:
		return fmt.Errorf("invalid output format %q", format)
	}
}
