// Copyright 2024 the Fabprov contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// WriteMSP creates an enrolled MSP directory the way fabric-ca-client lays it out.
// The intermediatecerts folder is only written when withIntermediate is set.
func WriteMSP(t *testing.T, mspPath string, withIntermediate bool) {
	t.Helper()

	files := map[string]string{
		"signcerts/cert.pem":   "identity cert",
		"keystore/9f2c1a_sk":   "identity key",
		"cacerts/ca1-7054.pem": "root cert",
	}
	if withIntermediate {
		files["intermediatecerts/ca1-7054.pem"] = "intermediate cert"
	}
	for name, content := range files {
		WriteFile(t, filepath.Join(mspPath, name), content)
	}
}

// WriteFile writes content to path, creating parent directories as needed.
func WriteFile(t *testing.T, path, content string) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}
