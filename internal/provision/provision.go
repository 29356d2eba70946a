// Copyright 2024 the Fabprov contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package provision registers, enrolls and stores the identities of the nodes and
// organization admins of a Fabric network.
//
// Every step checks whether its artifact already exists before acting, so a run that was
// interrupted can simply be started again from the top.
package provision

import (
	"fmt"
	"path/filepath"
	"time"

	"go.fabprov.dev/internal/backoff"
	"go.fabprov.dev/internal/config/provisioner"
	"go.fabprov.dev/internal/constable"
	"go.fabprov.dev/internal/credstore"
	"go.fabprov.dev/internal/ingress"
	"go.fabprov.dev/internal/plog"
	"go.fabprov.dev/internal/podexec"
	"go.fabprov.dev/internal/shell"
)

const ErrEnrollmentTimedOut = constable.Error("enrollment timed out")

// CARef identifies the Fabric CA an identity is registered with and enrolled against.
type CARef struct {
	Name      string
	Namespace string
	// TLSCert verifies the CA's TLS endpoint. Relative paths are resolved against the
	// current directory.
	TLSCert string
	Ingress string
	App     string
}

func NewCARef(name string, spec provisioner.CASpec) CARef {
	return CARef{
		Name:      name,
		Namespace: spec.Namespace,
		TLSCert:   spec.TLSCert,
		Ingress:   spec.Ingress,
		App:       spec.App,
	}
}

type Provisioner struct {
	config    *provisioner.Config
	workDir   string
	store     credstore.Store
	pods      podexec.Executor
	ingresses ingress.Resolver
	shell     shell.Runner
	log       plog.Logger

	enrollTimeout time.Duration
	newBackoff    func() backoff.Stepper
}

func New(
	config *provisioner.Config,
	store credstore.Store,
	pods podexec.Executor,
	ingresses ingress.Resolver,
	runner shell.Runner,
	log plog.Logger,
) (*Provisioner, error) {
	workDir, err := filepath.Abs(config.Core.DirConfig)
	if err != nil {
		return nil, fmt.Errorf("could not resolve working directory %q: %w", config.Core.DirConfig, err)
	}

	enrollment := config.Enrollment
	return &Provisioner{
		config:        config,
		workDir:       workDir,
		store:         store,
		pods:          pods,
		ingresses:     ingresses,
		shell:         runner,
		log:           log,
		enrollTimeout: enrollment.Timeout.Duration,
		newBackoff: func() backoff.Stepper {
			return &backoff.InfiniteBackoff{
				Duration:    enrollment.InitialBackoff.Duration,
				Factor:      *enrollment.Factor,
				MaxDuration: enrollment.MaxBackoff.Duration,
				Jitter:      0.1,
			}
		},
	}, nil
}

// WorkDir is the absolute directory holding enrolled MSP directories.
func (p *Provisioner) WorkDir() string {
	return p.workDir
}
