// Copyright 2024 the Fabprov contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package mockpodexec

//go:generate go run -v go.uber.org/mock/mockgen -destination=mockpodexec.go -package=mockpodexec -copyright_file=../../../hack/header.txt go.fabprov.dev/internal/podexec Executor,Handle
