// Copyright 2024 the Fabprov contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"os"

	"go.fabprov.dev/cmd/fabprov/cmd"
	"go.fabprov.dev/internal/plog"
)

func main() {
	flush := plog.Setup()
	err := cmd.Execute()
	flush()
	if err != nil {
		os.Exit(1)
	}
}
