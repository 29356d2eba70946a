// Copyright 2024 the Fabprov contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package provision

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"go.fabprov.dev/internal/config/provisioner"
	"go.fabprov.dev/internal/credstore"
	"go.fabprov.dev/internal/shell"
	"go.fabprov.dev/internal/testutil"
)

func expectAdminSecrets(ctx context.Context, deps *testDeps, mspPath string) []any {
	return []any{
		deps.store.EXPECT().CryptoSecret(ctx, "hlf--org1-admin-cacert", "org1", filepath.Join(mspPath, "cacerts"), "cacert.pem").Return(nil),
		deps.store.EXPECT().CryptoSecret(ctx, "hlf--org1-admin-caintcert", "org1", filepath.Join(mspPath, "intermediatecerts"), "intermediatecacert.pem").Return(nil),
		deps.store.EXPECT().CryptoSecret(ctx, "hlf--org1-admin-idcert", "org1", filepath.Join(mspPath, "signcerts"), "cert.pem").Return(nil),
		deps.store.EXPECT().CryptoSecret(ctx, "hlf--org1-admin-idkey", "org1", filepath.Join(mspPath, "keystore"), "key.pem").Return(nil),
	}
}

func TestProvisionAdmin(t *testing.T) {
	t.Run("registers enrolls and assembles", func(t *testing.T) {
		p, deps := newTestProvisioner(t)
		ctx := context.Background()
		mspPath := filepath.Join(deps.workDir, "Org1MSP")

		calls := []any{
			deps.store.EXPECT().EnsureNamespace(ctx, "org1").Return(nil),
			deps.store.EXPECT().CredentialSecret(ctx, "hlf--org1-admin-admincred", "org1", "org1-admin", "").
				Return(credstore.Credentials{Username: "org1-admin", Password: "adminpw"}, nil),
			deps.pods.EXPECT().ExecIn(ctx, "ca-ns", "ca1", "hlf-ca").Return(deps.handle, nil),
			deps.handle.EXPECT().Run(ctx, "fabric-ca-client", "identity", "list", "--id", "org1-admin").Return("", nil),
			deps.handle.EXPECT().Run(ctx, "fabric-ca-client", "register", "--id.name", "org1-admin", "--id.secret", "adminpw", "--id.attrs", "admin=true:ecert").Return("", nil),
			deps.ingresses.EXPECT().Resolve(ctx, "ca1-hlf-ca", "ca-ns").Return([]string{caURL}, nil),
			deps.shell.EXPECT().Run(ctx, enrollCommand(deps.workDir, "org1-admin", "adminpw", "Org1MSP")).
				DoAndReturn(func(context.Context, shell.Command) (string, error) {
					testutil.WriteMSP(t, mspPath, true)
					return "", nil
				}),
		}
		gomock.InOrder(append(calls, expectAdminSecrets(ctx, deps, mspPath)...)...)

		require.NoError(t, p.ProvisionAdmin(ctx, "Org1MSP"))

		adminCert, err := os.ReadFile(filepath.Join(mspPath, "admincerts", "cert.pem"))
		require.NoError(t, err)
		require.Equal(t, "identity cert", string(adminCert))
		testutil.RequireLogLines(t, []string{
			`{"level":"debug","timestamp":"2099-08-08T13:57:36.123456Z","message":"registering identity","ca":"ca1","identity":"org1-admin","state":"Unregistered"}`,
			`{"level":"info","timestamp":"2099-08-08T13:57:36.123456Z","message":"registered identity","ca":"ca1","identity":"org1-admin"}`,
			`{"level":"debug","timestamp":"2099-08-08T13:57:36.123456Z","message":"identity state changed","msp":"Org1MSP","identity":"org1-admin","state":"Registered"}`,
			`{"level":"info","timestamp":"2099-08-08T13:57:36.123456Z","message":"enrolled admin","ca":"ca1","identity":"org1-admin","msp":"` + mspPath + `"}`,
			`{"level":"debug","timestamp":"2099-08-08T13:57:36.123456Z","message":"identity state changed","msp":"Org1MSP","identity":"org1-admin","state":"Enrolled"}`,
			`{"level":"debug","timestamp":"2099-08-08T13:57:36.123456Z","message":"copied admin certificate","msp":"` + mspPath + `"}`,
			`{"level":"info","timestamp":"2099-08-08T13:57:36.123456Z","message":"admin provisioned","msp":"Org1MSP","identity":"org1-admin","state":"Materialized"}`,
		}, deps.log)
	})

	t.Run("a configured admin password is passed to the store", func(t *testing.T) {
		p, deps := newTestProvisioner(t)
		ctx := context.Background()
		msp := p.config.MSPs["Org1MSP"]
		msp.OrgAdminPassword = "configured"
		p.config.MSPs["Org1MSP"] = msp

		deps.store.EXPECT().EnsureNamespace(ctx, "org1").Return(nil)
		deps.store.EXPECT().CredentialSecret(ctx, "hlf--org1-admin-admincred", "org1", "org1-admin", "configured").
			Return(credstore.Credentials{}, errors.New("secrets is forbidden"))

		require.EqualError(t, p.ProvisionAdmin(ctx, "Org1MSP"), "secrets is forbidden")
	})

	t.Run("namespace creation failure stops provisioning", func(t *testing.T) {
		p, deps := newTestProvisioner(t)
		ctx := context.Background()

		deps.store.EXPECT().EnsureNamespace(ctx, "org1").Return(errors.New("namespaces is forbidden"))

		require.EqualError(t, p.ProvisionAdmin(ctx, "Org1MSP"), "namespaces is forbidden")
	})

	t.Run("unknown msp", func(t *testing.T) {
		p, _ := newTestProvisioner(t)

		require.ErrorIs(t, p.ProvisionAdmin(context.Background(), "Org9MSP"), provisioner.ErrUnknownMSP)
	})
}

func TestAssembleMSP(t *testing.T) {
	t.Run("keeps an existing admin certificate", func(t *testing.T) {
		p, deps := newTestProvisioner(t)
		ctx := context.Background()
		mspPath := filepath.Join(deps.workDir, "Org1MSP")
		testutil.WriteMSP(t, mspPath, true)
		testutil.WriteFile(t, filepath.Join(mspPath, "admincerts", "cert.pem"), "promoted earlier")

		gomock.InOrder(expectAdminSecrets(ctx, deps, mspPath)...)

		require.NoError(t, p.AssembleMSP(ctx, "Org1MSP"))

		adminCert, err := os.ReadFile(filepath.Join(mspPath, "admincerts", "cert.pem"))
		require.NoError(t, err)
		require.Equal(t, "promoted earlier", string(adminCert))
		require.NotContains(t, deps.log.String(), "copied admin certificate")
	})

	t.Run("missing signing certificate", func(t *testing.T) {
		p, deps := newTestProvisioner(t)

		err := p.AssembleMSP(context.Background(), "Org1MSP")
		require.ErrorIs(t, err, os.ErrNotExist)
		require.DirExists(t, filepath.Join(deps.workDir, "Org1MSP", "admincerts"))
	})
}
