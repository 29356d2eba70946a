// Copyright 2024 the Fabprov contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package mockshell

//go:generate go run -v go.uber.org/mock/mockgen -destination=mockshell.go -package=mockshell -copyright_file=../../../hack/header.txt go.fabprov.dev/internal/shell Runner
