// Copyright 2024 the Fabprov contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package ingress turns an Ingress resource into the base URLs a client outside the cluster
// can use to reach the service behind it.
package ingress

import (
	"context"
	"fmt"

	networkingv1 "k8s.io/api/networking/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/util/sets"
	"k8s.io/client-go/kubernetes"

	"go.fabprov.dev/internal/constable"
)

const ErrNoIngressURL = constable.Error("ingress has no hosts")

type Resolver interface {
	Resolve(ctx context.Context, name, namespace string) ([]string, error)
}

type resolver struct {
	client kubernetes.Interface
}

func NewResolver(client kubernetes.Interface) Resolver {
	return &resolver{client: client}
}

// Resolve returns "https://<host>" for each rule host, then each TLS host, then each load
// balancer address of the ingress. Duplicates are dropped and the order is kept.
func (r *resolver) Resolve(ctx context.Context, name, namespace string) ([]string, error) {
	ing, err := r.client.NetworkingV1().Ingresses(namespace).Get(ctx, name, metav1.GetOptions{})
	if err != nil {
		return nil, fmt.Errorf("get ingress %s/%s: %w", namespace, name, err)
	}

	urls := URLs(ing)
	if len(urls) == 0 {
		return nil, fmt.Errorf("%w: %s/%s", ErrNoIngressURL, namespace, name)
	}
	return urls, nil
}

func URLs(ing *networkingv1.Ingress) []string {
	seen := sets.New[string]()
	var urls []string
	add := func(host string) {
		if host == "" || seen.Has(host) {
			return
		}
		seen.Insert(host)
		urls = append(urls, "https://"+host)
	}

	for _, rule := range ing.Spec.Rules {
		add(rule.Host)
	}
	for _, tls := range ing.Spec.TLS {
		for _, host := range tls.Hosts {
			add(host)
		}
	}
	for _, lb := range ing.Status.LoadBalancer.Ingress {
		add(lb.Hostname)
		add(lb.IP)
	}
	return urls
}
