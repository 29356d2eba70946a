// Copyright 2024 the Fabprov contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package provision

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"go.fabprov.dev/internal/msp"
	"go.fabprov.dev/internal/podexec"
	"go.fabprov.dev/internal/shell"
)

const fabricCAClient = "fabric-ca-client"

// RegisterIdentity registers username with the CA unless the CA already knows it.
func (p *Provisioner) RegisterIdentity(ctx context.Context, ca CARef, nodeType, username, password string) error {
	return p.register(ctx, ca, username, "--id.name", username, "--id.secret", password, "--id.type", nodeType)
}

// RegisterAdmin registers username as an organization admin unless the CA already knows it.
func (p *Provisioner) RegisterAdmin(ctx context.Context, ca CARef, username, password string) error {
	return p.register(ctx, ca, username, "--id.name", username, "--id.secret", password, "--id.attrs", "admin=true:ecert")
}

func (p *Provisioner) register(ctx context.Context, ca CARef, username string, registerArgs ...string) error {
	handle, err := p.pods.ExecIn(ctx, ca.Namespace, ca.Name, ca.App)
	if err != nil {
		return fmt.Errorf("could not find pod of ca %s: %w", ca.Name, err)
	}

	if p.isRegistered(ctx, handle, username) {
		p.log.Debug("identity already registered", "ca", ca.Name, "identity", username)
		return nil
	}

	p.log.Debug("registering identity", "ca", ca.Name, "identity", username, "state", msp.Unregistered.String())
	if _, err := handle.Run(ctx, append([]string{fabricCAClient, "register"}, registerArgs...)...); err != nil {
		return fmt.Errorf("could not register %s with ca %s: %w", username, ca.Name, err)
	}

	p.log.Info("registered identity", "ca", ca.Name, "identity", username)
	return nil
}

// isRegistered reports whether the CA lists username. A failing listing counts as not registered.
func (p *Provisioner) isRegistered(ctx context.Context, handle podexec.Handle, username string) bool {
	out, err := handle.Run(ctx, fabricCAClient, "identity", "list", "--id", username)
	if err != nil {
		p.log.DebugErr("identity list failed, assuming unregistered", err, "identity", username, "pod", handle.PodName())
		return false
	}
	return strings.TrimSpace(out) != ""
}

// EnrollIdentity enrolls username into <workDir>/<username>_MSP and returns that path. An
// existing directory means the identity was enrolled by an earlier run. Enrollment is retried
// until it succeeds or the enrollment timeout passes. A failed enrollment removes whatever it
// wrote, so the directory only ever marks a completed enrollment.
func (p *Provisioner) EnrollIdentity(ctx context.Context, ca CARef, username, password string) (mspPath string, err error) {
	mspDir := msp.DirName(username)
	mspPath = filepath.Join(p.workDir, mspDir)

	if isEnrolled(mspPath) {
		p.log.Debug("identity already enrolled", "identity", username, "msp", mspPath)
		return mspPath, nil
	}

	cmd, err := p.enrollCommand(ctx, ca, username, password, mspDir)
	if err != nil {
		return "", err
	}

	if _, statErr := os.Lstat(mspPath); errors.Is(statErr, os.ErrNotExist) {
		defer func() {
			if err != nil {
				p.removePartialMSP(mspPath)
			}
		}()
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, p.enrollTimeout)
	defer cancel()

	if err := p.shell.RunUntilSuccess(timeoutCtx, cmd, p.newBackoff()); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", fmt.Errorf("%w: %s after %s: %w", ErrEnrollmentTimedOut, username, p.enrollTimeout, err)
		}
		return "", fmt.Errorf("could not enroll %s: %w", username, err)
	}

	if !isEnrolled(mspPath) {
		return "", fmt.Errorf("enrollment of %s did not create %s", username, mspPath)
	}

	p.log.Info("enrolled identity", "ca", ca.Name, "identity", username, "msp", mspPath)
	return mspPath, nil
}

// EnrollAdmin enrolls username into <workDir>/<mspName> with a single attempt. A non-empty
// keystore means the admin was enrolled by an earlier run.
func (p *Provisioner) EnrollAdmin(ctx context.Context, ca CARef, mspName, username, password string) error {
	mspPath := filepath.Join(p.workDir, mspName)

	if hasKeystore(mspPath) {
		p.log.Debug("admin already enrolled", "identity", username, "msp", mspPath)
		return nil
	}

	cmd, err := p.enrollCommand(ctx, ca, username, password, mspName)
	if err != nil {
		return err
	}

	if _, err := p.shell.Run(ctx, cmd); err != nil {
		return fmt.Errorf("could not enroll admin %s: %w", username, err)
	}

	p.log.Info("enrolled admin", "ca", ca.Name, "identity", username, "msp", mspPath)
	return nil
}

func (p *Provisioner) enrollCommand(ctx context.Context, ca CARef, username, password, mspDir string) (shell.Command, error) {
	caURL, err := p.caURL(ctx, ca)
	if err != nil {
		return shell.Command{}, err
	}
	caURL.User = url.UserPassword(username, password)

	tlsCert, err := filepath.Abs(ca.TLSCert)
	if err != nil {
		return shell.Command{}, fmt.Errorf("could not resolve tls certificate of ca %s: %w", ca.Name, err)
	}

	return shell.Command{
		Name: fabricCAClient,
		Args: []string{"enroll", "-u", caURL.String(), "-M", mspDir, "--tls.certfiles", tlsCert},
		Dir:  p.workDir,
		Env:  []string{"FABRIC_CA_CLIENT_HOME=" + p.workDir},
	}, nil
}

// caURL returns the first externally reachable URL of the CA.
func (p *Provisioner) caURL(ctx context.Context, ca CARef) (*url.URL, error) {
	urls, err := p.ingresses.Resolve(ctx, ca.Ingress, ca.Namespace)
	if err != nil {
		return nil, fmt.Errorf("could not resolve ingress of ca %s: %w", ca.Name, err)
	}
	u, err := url.Parse(urls[0])
	if err != nil {
		return nil, fmt.Errorf("could not parse ingress url of ca %s: %w", ca.Name, err)
	}
	return u, nil
}

func (p *Provisioner) removePartialMSP(mspPath string) {
	if err := os.RemoveAll(mspPath); err != nil {
		p.log.WarningErr("could not remove partial msp directory", err, "msp", mspPath)
		return
	}
	p.log.Debug("removed partial msp directory", "msp", mspPath)
}

func isEnrolled(mspPath string) bool {
	info, err := os.Stat(mspPath)
	return err == nil && info.IsDir()
}

func hasKeystore(mspPath string) bool {
	entries, err := os.ReadDir(filepath.Join(mspPath, msp.KeyStore))
	return err == nil && len(entries) > 0
}
