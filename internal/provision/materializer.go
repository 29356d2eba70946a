// Copyright 2024 the Fabprov contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package provision

import (
	"context"

	"go.fabprov.dev/internal/msp"
)

// MaterializeOne stores the credential described by info from mspPath in secret
// hlf--<user>-<kind>. A missing optional credential is logged and skipped.
func (p *Provisioner) MaterializeOne(ctx context.Context, namespace, mspPath, user string, info msp.CredentialInfo) error {
	secretName := info.SecretName(user)
	sourceDir := info.SourceDir(mspPath)

	if err := p.store.CryptoSecret(ctx, secretName, namespace, sourceDir, info.SourceFilename); err != nil {
		if info.Required {
			return err
		}
		p.log.WarningErr("optional credential not found, secret not created", err,
			"path", sourceDir,
			"secret", secretName,
			"namespace", namespace,
		)
	}
	return nil
}

// MaterializeIdentity stores the signing certificate and private key of user.
func (p *Provisioner) MaterializeIdentity(ctx context.Context, namespace, mspPath, user string) error {
	return p.materialize(ctx, namespace, mspPath, user, msp.IdentityCredentials())
}

// MaterializeTrustChain stores the CA and intermediate CA certificates of user.
func (p *Provisioner) MaterializeTrustChain(ctx context.Context, namespace, mspPath, user string) error {
	return p.materialize(ctx, namespace, mspPath, user, msp.TrustChainCredentials())
}

func (p *Provisioner) materialize(ctx context.Context, namespace, mspPath, user string, catalog []msp.CredentialInfo) error {
	for _, info := range catalog {
		if err := p.MaterializeOne(ctx, namespace, mspPath, user, info); err != nil {
			return err
		}
	}
	return nil
}
