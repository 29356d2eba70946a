// Copyright 2024 the Fabprov contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package kubeclient

import restclient "k8s.io/client-go/rest"

type Option func(*clientConfig)

type clientConfig struct {
	config    *restclient.Config
	userAgent string
	qps       float32
}

func WithConfig(config *restclient.Config) Option {
	return func(c *clientConfig) {
		c.config = config
	}
}

func WithUserAgent(userAgent string) Option {
	return func(c *clientConfig) {
		c.userAgent = userAgent
	}
}

// WithQPS raises the client side rate limit. Burst is set to twice the QPS.
func WithQPS(qps float32) Option {
	return func(c *clientConfig) {
		c.qps = qps
	}
}
