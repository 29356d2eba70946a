// Copyright 2024 the Fabprov contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package provision

import (
	"context"
	"fmt"

	"go.fabprov.dev/internal/msp"
	"go.fabprov.dev/internal/plog"
)

// ProvisionNodes provisions every configured node of nodeType ("peer" or "orderer") in order.
// The first failure stops the loop.
func (p *Provisioner) ProvisionNodes(ctx context.Context, nodeType string) error {
	nodes, err := p.config.Nodes(nodeType)
	if err != nil {
		return err
	}
	if len(nodes.Names) == 0 {
		p.log.Info("no nodes configured", "nodeType", nodeType)
		return nil
	}

	mspSpec, caSpec, err := p.config.MSP(nodes.MSP)
	if err != nil {
		return err
	}
	ca := NewCARef(mspSpec.CA, caSpec)

	for _, name := range nodes.Names {
		if err := p.provisionNode(ctx, ca, mspSpec.Namespace, nodeType, name); err != nil {
			return fmt.Errorf("could not provision %s %s: %w", nodeType, name, err)
		}
	}
	return nil
}

func (p *Provisioner) provisionNode(ctx context.Context, ca CARef, namespace, nodeType, name string) error {
	log := p.log.WithValues("nodeType", nodeType, "node", name)

	creds, err := p.store.CredentialSecret(ctx, msp.NodeCredSecretName(nodeType, name), namespace, name, "")
	if err != nil {
		return err
	}

	id := msp.Identity{Username: creds.Username, Password: creds.Password, NodeType: nodeType}

	if err := p.RegisterIdentity(ctx, ca, id.NodeType, id.Username, id.Password); err != nil {
		return err
	}
	logState(log, msp.Registered)

	mspPath, err := p.EnrollIdentity(ctx, ca, id.Username, id.Password)
	if err != nil {
		return err
	}
	logState(log, msp.Enrolled)

	if err := p.MaterializeIdentity(ctx, namespace, mspPath, name); err != nil {
		return err
	}
	if err := p.MaterializeTrustChain(ctx, namespace, mspPath, name); err != nil {
		return err
	}

	log.Info("node provisioned", "state", msp.Materialized.String())
	return nil
}

func logState(log plog.Logger, state msp.State) {
	log.Debug("identity state changed", "state", state.String())
}
