// Copyright 2024 the Fabprov contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package provisioner loads the description of a Fabric deployment whose identities fabprov
// provisions.
package provisioner

import (
	"fmt"
	"os"
	"sort"
	"time"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"sigs.k8s.io/yaml"

	"go.fabprov.dev/internal/constable"
	fabricmsp "go.fabprov.dev/internal/msp"
	"go.fabprov.dev/internal/multierror"
)

const (
	defaultCAApp            = "hlf-ca"
	defaultSecretGenesis    = "hlf--genesis"
	defaultSecretChannel    = "hlf--channel"
	defaultEnrollBackoff    = time.Second
	defaultEnrollMaxBackoff = 30 * time.Second
	defaultEnrollFactor     = 2.0
	defaultEnrollTimeout    = 10 * time.Minute

	ErrUnknownMSP      = constable.Error("unknown msp")
	ErrUnknownNodeType = constable.Error("unknown node type")
)

// FromPath loads a Config from a provided local file path, inserts any defaults, and verifies
// that the config is valid.
func FromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	var config Config
	if err := yaml.UnmarshalStrict(data, &config); err != nil {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}

	maybeSetCoreDefaults(&config.Core)
	maybeSetCADefaults(config.CAs)
	maybeSetMSPDefaults(config.MSPs, config.CAs)
	maybeSetArtifactDefaults(&config)
	maybeSetEnrollmentDefaults(&config.Enrollment)

	if err := validateReferences(&config); err != nil {
		return nil, fmt.Errorf("validate references: %w", err)
	}

	if err := validateEnrollment(&config.Enrollment); err != nil {
		return nil, fmt.Errorf("validate enrollment: %w", err)
	}

	if err := config.Log.Validate(); err != nil {
		return nil, fmt.Errorf("validate log: %w", err)
	}

	return &config, nil
}

// Nodes returns the node group for nodeType ("peer" or "orderer").
func (c *Config) Nodes(nodeType string) (*NodeSpec, error) {
	switch nodeType {
	case NodeTypePeer:
		return &c.Peers.NodeSpec, nil
	case NodeTypeOrderer:
		return &c.Orderers.NodeSpec, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownNodeType, nodeType)
	}
}

// MSP returns the organization named name together with the CA it enrolls against.
func (c *Config) MSP(name string) (MSPSpec, CASpec, error) {
	msp, ok := c.MSPs[name]
	if !ok {
		return MSPSpec{}, CASpec{}, fmt.Errorf("%w: %q", ErrUnknownMSP, name)
	}
	return msp, c.CAs[msp.CA], nil
}

// MSPNames returns the configured organizations in a stable order.
func (c *Config) MSPNames() []string {
	return sortedKeys(c.MSPs)
}

func maybeSetCoreDefaults(core *CoreSpec) {
	if core.DirConfig == "" {
		core.DirConfig = "."
	}
}

func maybeSetCADefaults(cas map[string]CASpec) {
	for name, ca := range cas {
		if ca.Ingress == "" {
			ca.Ingress = name + "-hlf-ca"
		}
		if ca.App == "" {
			ca.App = defaultCAApp
		}
		cas[name] = ca
	}
}

func maybeSetMSPDefaults(msps map[string]MSPSpec, cas map[string]CASpec) {
	for name, msp := range msps {
		if msp.Namespace == "" {
			msp.Namespace = cas[msp.CA].Namespace
		}
		if msp.OrgAdminCredSecret == "" && msp.OrgAdmin != "" {
			msp.OrgAdminCredSecret = fabricmsp.AdminCredSecretName(msp.OrgAdmin)
		}
		msps[name] = msp
	}
}

func maybeSetArtifactDefaults(config *Config) {
	if config.Orderers.SecretGenesis == "" {
		config.Orderers.SecretGenesis = defaultSecretGenesis
	}
	if config.Peers.SecretChannel == "" {
		config.Peers.SecretChannel = defaultSecretChannel
	}
}

func maybeSetEnrollmentDefaults(e *EnrollmentSpec) {
	if e.InitialBackoff == nil {
		e.InitialBackoff = &metav1.Duration{Duration: defaultEnrollBackoff}
	}
	if e.MaxBackoff == nil {
		e.MaxBackoff = &metav1.Duration{Duration: defaultEnrollMaxBackoff}
	}
	if e.Factor == nil {
		f := defaultEnrollFactor
		e.Factor = &f
	}
	if e.Timeout == nil {
		e.Timeout = &metav1.Duration{Duration: defaultEnrollTimeout}
	}
}

func validateReferences(config *Config) error {
	problems := multierror.New()

	for _, name := range sortedKeys(config.CAs) {
		ca := config.CAs[name]
		if ca.Namespace == "" {
			problems.Addf("cas.%s.namespace is required", name)
		}
		if ca.TLSCert == "" {
			problems.Addf("cas.%s.tlsCert is required", name)
		}
	}

	for _, name := range sortedKeys(config.MSPs) {
		msp := config.MSPs[name]
		if _, ok := config.CAs[msp.CA]; !ok {
			problems.Addf("msps.%s.ca refers to unknown ca %q", name, msp.CA)
		}
		if msp.OrgAdmin == "" {
			problems.Addf("msps.%s.orgAdmin is required", name)
		}
	}

	for _, group := range []struct {
		field string
		nodes NodeSpec
	}{
		{field: "orderers", nodes: config.Orderers.NodeSpec},
		{field: "peers", nodes: config.Peers.NodeSpec},
	} {
		if len(group.nodes.Names) == 0 {
			continue
		}
		if _, ok := config.MSPs[group.nodes.MSP]; !ok {
			problems.Addf("%s.msp refers to unknown msp %q", group.field, group.nodes.MSP)
		}
		seen := map[string]bool{}
		for _, name := range group.nodes.Names {
			if seen[name] {
				problems.Addf("%s.names contains %q more than once", group.field, name)
			}
			seen[name] = true
		}
	}

	if config.Peers.ChannelName != "" && config.Peers.ChannelProfile == "" {
		problems.Addf("peers.channelProfile is required when peers.channelName is set")
	}

	return problems.ErrOrNil()
}

func validateEnrollment(e *EnrollmentSpec) error {
	if e.InitialBackoff.Duration < 0 || e.MaxBackoff.Duration < 0 {
		return constable.Error("backoff durations cannot be negative")
	}
	if *e.Factor < 1 {
		return constable.Error("factor must be at least 1")
	}
	if e.Timeout.Duration <= 0 {
		return constable.Error("timeout must be positive")
	}
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
