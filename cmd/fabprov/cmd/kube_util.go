// Copyright 2024 the Fabprov contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/sethvargo/go-password/password"
	"k8s.io/client-go/tools/clientcmd"
	utilexec "k8s.io/utils/exec"

	"go.fabprov.dev/internal/artifacts"
	"go.fabprov.dev/internal/config/provisioner"
	"go.fabprov.dev/internal/credstore"
	"go.fabprov.dev/internal/ingress"
	"go.fabprov.dev/internal/kubeclient"
	"go.fabprov.dev/internal/plog"
	"go.fabprov.dev/internal/podexec"
	"go.fabprov.dev/internal/provision"
	"go.fabprov.dev/internal/shell"
)

const userAgent = "fabprov"

// pipeline is everything a subcommand may ask for.
type pipeline interface {
	ProvisionAdmin(ctx context.Context, mspName string) error
	ProvisionNodes(ctx context.Context, nodeType string) error
	GenesisBlock(ctx context.Context) error
	ChannelTx(ctx context.Context) error
}

type realPipeline struct {
	*provision.Provisioner
	*artifacts.Generator
}

// newPipelineFunc builds a pipeline for config that talks to the cluster of clientConfig.
type newPipelineFunc func(config *provisioner.Config, clientConfig clientcmd.ClientConfig) (pipeline, error)

func newRealPipeline(config *provisioner.Config, clientConfig clientcmd.ClientConfig) (pipeline, error) {
	restConfig, err := clientConfig.ClientConfig()
	if err != nil {
		return nil, err
	}
	client, err := kubeclient.New(
		kubeclient.WithConfig(restConfig),
		kubeclient.WithUserAgent(userAgent),
	)
	if err != nil {
		return nil, err
	}

	generator, err := password.NewGenerator(nil)
	if err != nil {
		return nil, fmt.Errorf("could not create password generator: %w", err)
	}

	// every line logged by this run carries the same id
	log := plog.New().WithValues("runID", uuid.NewString())
	store := credstore.New(client.Kubernetes, generator, log.WithName("credstore"))
	runner := shell.New(utilexec.New(), log.WithName("shell"))

	prov, err := provision.New(
		config,
		store,
		podexec.New(client.JSONConfig, client.Kubernetes, log.WithName("podexec")),
		ingress.NewResolver(client.Kubernetes),
		runner,
		log.WithName("provision"),
	)
	if err != nil {
		return nil, err
	}

	return &realPipeline{
		Provisioner: prov,
		Generator:   artifacts.New(config, prov.WorkDir(), store, runner, log.WithName("artifacts")),
	}, nil
}

// newClientConfig returns a clientcmd.ClientConfig given an optional kubeconfig path override and
// an optional context override.
func newClientConfig(kubeconfigPathOverride string, currentContextName string) clientcmd.ClientConfig {
	loadingRules := clientcmd.NewDefaultClientConfigLoadingRules()
	loadingRules.ExplicitPath = kubeconfigPathOverride
	clientConfig := clientcmd.NewNonInteractiveDeferredLoadingClientConfig(loadingRules, &clientcmd.ConfigOverrides{
		CurrentContext: currentContextName,
	})
	return clientConfig
}
