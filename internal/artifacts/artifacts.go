// Copyright 2024 the Fabprov contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package artifacts generates the channel artifacts of a network with configtxgen and stores
// them as secrets.
package artifacts

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.fabprov.dev/internal/config/provisioner"
	"go.fabprov.dev/internal/constable"
	"go.fabprov.dev/internal/credstore"
	"go.fabprov.dev/internal/plog"
	"go.fabprov.dev/internal/shell"
)

const (
	configtxgen = "configtxgen"

	GenesisBlockFile = "genesis.block"
	genesisProfile   = "OrdererGenesis"

	ErrNoChannel    = constable.Error("peers.channelName is not configured")
	ErrNoOrdererMSP = constable.Error("orderers.msp is not configured")
	ErrNoPeerMSP    = constable.Error("peers.msp is not configured")
)

type Generator struct {
	config  *provisioner.Config
	workDir string
	store   credstore.Store
	shell   shell.Runner
	log     plog.Logger
}

// New returns a Generator writing into workDir, which also holds configtx.yaml.
func New(config *provisioner.Config, workDir string, store credstore.Store, runner shell.Runner, log plog.Logger) *Generator {
	return &Generator{config: config, workDir: workDir, store: store, shell: runner, log: log}
}

// GenesisBlock creates the orderer genesis block unless it already exists and stores it in
// the orderers' genesis secret.
func (g *Generator) GenesisBlock(ctx context.Context) error {
	namespace, err := g.namespace(g.config.Orderers.MSP, ErrNoOrdererMSP)
	if err != nil {
		return err
	}

	path, err := g.ensure(ctx, GenesisBlockFile, "-profile", genesisProfile, "-outputBlock", GenesisBlockFile)
	if err != nil {
		return err
	}

	return g.store.SecretFromFile(ctx, g.config.Orderers.SecretGenesis, namespace, GenesisBlockFile, path)
}

// ChannelTx creates the channel creation transaction <channel>.tx unless it already exists and
// stores it in the peers' channel secret.
func (g *Generator) ChannelTx(ctx context.Context) error {
	channel := g.config.Peers.ChannelName
	if channel == "" {
		return ErrNoChannel
	}
	namespace, err := g.namespace(g.config.Peers.MSP, ErrNoPeerMSP)
	if err != nil {
		return err
	}

	file := channel + ".tx"
	path, err := g.ensure(ctx, file,
		"-profile", g.config.Peers.ChannelProfile,
		"-channelID", channel,
		"-outputCreateChannelTx", file,
	)
	if err != nil {
		return err
	}

	return g.store.SecretFromFile(ctx, g.config.Peers.SecretChannel, namespace, file, path)
}

func (g *Generator) namespace(mspName string, errUnset error) (string, error) {
	if mspName == "" {
		return "", errUnset
	}
	mspSpec, _, err := g.config.MSP(mspName)
	if err != nil {
		return "", err
	}
	return mspSpec.Namespace, nil
}

// ensure runs configtxgen with args unless file already exists in the working directory.
func (g *Generator) ensure(ctx context.Context, file string, args ...string) (string, error) {
	path := filepath.Join(g.workDir, file)

	if _, err := os.Stat(path); err == nil {
		g.log.Info("artifact already exists", "file", path)
		return path, nil
	}

	if _, err := g.shell.Run(ctx, shell.Command{
		Name: configtxgen,
		Args: args,
		Dir:  g.workDir,
		Env:  []string{"FABRIC_CFG_PATH=" + g.workDir},
	}); err != nil {
		return "", fmt.Errorf("could not generate %s: %w", file, err)
	}

	g.log.Info("generated artifact", "file", path)
	return path, nil
}
