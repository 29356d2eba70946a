// Copyright 2024 the Fabprov contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package mockingress

//go:generate go run -v go.uber.org/mock/mockgen -destination=mockingress.go -package=mockingress -copyright_file=../../../hack/header.txt go.fabprov.dev/internal/ingress Resolver
