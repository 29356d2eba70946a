// Copyright 2024 the Fabprov contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package artifacts

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"go.fabprov.dev/internal/config/provisioner"
	"go.fabprov.dev/internal/mocks/mockcredstore"
	"go.fabprov.dev/internal/mocks/mockshell"
	"go.fabprov.dev/internal/plog"
	"go.fabprov.dev/internal/shell"
)

func testConfig() *provisioner.Config {
	return &provisioner.Config{
		CAs: map[string]provisioner.CASpec{
			"ca-ord":  {Namespace: "cas"},
			"ca-peer": {Namespace: "cas"},
		},
		MSPs: map[string]provisioner.MSPSpec{
			"OrdererMSP": {CA: "ca-ord", Namespace: "orderers"},
			"PeerMSP":    {CA: "ca-peer", Namespace: "peers"},
		},
		Orderers: provisioner.OrdererSpec{
			NodeSpec:      provisioner.NodeSpec{Names: []string{"ord0"}, MSP: "OrdererMSP"},
			SecretGenesis: "hlf--genesis",
		},
		Peers: provisioner.PeerSpec{
			NodeSpec:       provisioner.NodeSpec{Names: []string{"peer0"}, MSP: "PeerMSP"},
			ChannelName:    "mychannel",
			ChannelProfile: "MyChannel",
			SecretChannel:  "hlf--channel",
		},
	}
}

func newTestGenerator(t *testing.T, config *provisioner.Config) (*Generator, string, *mockcredstore.MockStore, *mockshell.MockRunner) {
	t.Helper()

	ctrl := gomock.NewController(t)
	store := mockcredstore.NewMockStore(ctrl)
	runner := mockshell.NewMockRunner(ctrl)
	logger, _ := plog.TestLogger(t)
	workDir := t.TempDir()

	return New(config, workDir, store, runner, logger), workDir, store, runner
}

func TestGenesisBlock(t *testing.T) {
	t.Run("generates and stores the block", func(t *testing.T) {
		g, workDir, store, runner := newTestGenerator(t, testConfig())
		ctx := context.Background()
		path := filepath.Join(workDir, "genesis.block")

		gomock.InOrder(
			runner.EXPECT().Run(ctx, shell.Command{
				Name: "configtxgen",
				Args: []string{"-profile", "OrdererGenesis", "-outputBlock", "genesis.block"},
				Dir:  workDir,
				Env:  []string{"FABRIC_CFG_PATH=" + workDir},
			}).DoAndReturn(func(context.Context, shell.Command) (string, error) {
				return "", os.WriteFile(path, []byte("block"), 0o600)
			}),
			store.EXPECT().SecretFromFile(ctx, "hlf--genesis", "orderers", "genesis.block", path).Return(nil),
		)

		require.NoError(t, g.GenesisBlock(ctx))
	})

	t.Run("an existing block is only stored", func(t *testing.T) {
		g, workDir, store, _ := newTestGenerator(t, testConfig())
		ctx := context.Background()
		path := filepath.Join(workDir, "genesis.block")
		require.NoError(t, os.WriteFile(path, []byte("block"), 0o600))

		store.EXPECT().SecretFromFile(ctx, "hlf--genesis", "orderers", "genesis.block", path).Return(nil)

		require.NoError(t, g.GenesisBlock(ctx))
	})

	t.Run("configtxgen fails", func(t *testing.T) {
		g, _, _, runner := newTestGenerator(t, testConfig())
		ctx := context.Background()

		runner.EXPECT().Run(ctx, gomock.Any()).Return("", errors.New("run configtxgen: exit 1: configtx.yaml not found"))

		require.EqualError(t, g.GenesisBlock(ctx), "could not generate genesis.block: run configtxgen: exit 1: configtx.yaml not found")
	})

	t.Run("no orderer msp", func(t *testing.T) {
		config := testConfig()
		config.Orderers.MSP = ""
		g, _, _, _ := newTestGenerator(t, config)

		require.ErrorIs(t, g.GenesisBlock(context.Background()), ErrNoOrdererMSP)
	})
}

func TestChannelTx(t *testing.T) {
	t.Run("generates and stores the transaction", func(t *testing.T) {
		g, workDir, store, runner := newTestGenerator(t, testConfig())
		ctx := context.Background()
		path := filepath.Join(workDir, "mychannel.tx")

		gomock.InOrder(
			runner.EXPECT().Run(ctx, shell.Command{
				Name: "configtxgen",
				Args: []string{"-profile", "MyChannel", "-channelID", "mychannel", "-outputCreateChannelTx", "mychannel.tx"},
				Dir:  workDir,
				Env:  []string{"FABRIC_CFG_PATH=" + workDir},
			}).Return("", nil),
			store.EXPECT().SecretFromFile(ctx, "hlf--channel", "peers", "mychannel.tx", path).Return(nil),
		)

		require.NoError(t, g.ChannelTx(ctx))
	})

	t.Run("an existing transaction is only stored", func(t *testing.T) {
		g, workDir, store, _ := newTestGenerator(t, testConfig())
		ctx := context.Background()
		path := filepath.Join(workDir, "mychannel.tx")
		require.NoError(t, os.WriteFile(path, []byte("tx"), 0o600))

		store.EXPECT().SecretFromFile(ctx, "hlf--channel", "peers", "mychannel.tx", path).Return(errors.New("secrets is forbidden"))

		require.EqualError(t, g.ChannelTx(ctx), "secrets is forbidden")
	})

	t.Run("no channel", func(t *testing.T) {
		config := testConfig()
		config.Peers.ChannelName = ""
		g, _, _, _ := newTestGenerator(t, config)

		require.ErrorIs(t, g.ChannelTx(context.Background()), ErrNoChannel)
	})
}
