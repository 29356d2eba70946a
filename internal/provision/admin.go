// Copyright 2024 the Fabprov contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package provision

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.fabprov.dev/internal/msp"
)

// ProvisionAdmin provisions the admin identity of organization mspName and assembles its
// local MSP bundle.
func (p *Provisioner) ProvisionAdmin(ctx context.Context, mspName string) error {
	mspSpec, caSpec, err := p.config.MSP(mspName)
	if err != nil {
		return err
	}
	ca := NewCARef(mspSpec.CA, caSpec)

	if err := p.store.EnsureNamespace(ctx, mspSpec.Namespace); err != nil {
		return err
	}

	creds, err := p.store.CredentialSecret(ctx, mspSpec.OrgAdminCredSecret, mspSpec.Namespace, mspSpec.OrgAdmin, mspSpec.OrgAdminPassword)
	if err != nil {
		return err
	}

	id := msp.Identity{Username: creds.Username, Password: creds.Password}
	log := p.log.WithValues("msp", mspName, "identity", id.Username)

	if err := p.RegisterAdmin(ctx, ca, id.Username, id.Password); err != nil {
		return err
	}
	logState(log, msp.Registered)

	if err := p.EnrollAdmin(ctx, ca, mspName, id.Username, id.Password); err != nil {
		return err
	}
	logState(log, msp.Enrolled)

	if err := p.AssembleMSP(ctx, mspName); err != nil {
		return fmt.Errorf("could not assemble msp %s: %w", mspName, err)
	}

	log.Info("admin provisioned", "state", msp.Materialized.String())
	return nil
}

// AssembleMSP promotes the admin's own signing certificate to admin certificate of the
// <workDir>/<mspName> bundle and stores the admin's trust chain and identity as secrets.
func (p *Provisioner) AssembleMSP(ctx context.Context, mspName string) error {
	mspSpec, _, err := p.config.MSP(mspName)
	if err != nil {
		return err
	}
	mspPath := filepath.Join(p.workDir, mspName)

	if err := os.MkdirAll(filepath.Join(mspPath, msp.AdminCerts), 0o755); err != nil {
		return fmt.Errorf("could not create %s: %w", msp.AdminCerts, err)
	}

	if !hasAdminCert(mspPath) {
		if err := copyFile(adminCertSource(mspPath), adminCertPath(mspPath)); err != nil {
			return err
		}
		p.log.Debug("copied admin certificate", "msp", mspPath)
	}

	if err := p.MaterializeTrustChain(ctx, mspSpec.Namespace, mspPath, mspSpec.OrgAdmin); err != nil {
		return err
	}
	return p.MaterializeIdentity(ctx, mspSpec.Namespace, mspPath, mspSpec.OrgAdmin)
}

func adminCertSource(mspPath string) string {
	return filepath.Join(mspPath, msp.SignCerts, msp.IDCert.SourceFilename)
}

func adminCertPath(mspPath string) string {
	return filepath.Join(mspPath, msp.AdminCerts, msp.IDCert.SourceFilename)
}

func hasAdminCert(mspPath string) bool {
	info, err := os.Stat(adminCertPath(mspPath))
	return err == nil && info.Mode().IsRegular()
}

func copyFile(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return fmt.Errorf("could not read admin certificate: %w", err)
	}
	if err := os.WriteFile(dst, data, 0o644); err != nil { //nolint:gosec // certificates are public
		return fmt.Errorf("could not write admin certificate: %w", err)
	}
	return nil
}
