// Copyright 2024 the Fabprov contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package mockcredstore

//go:generate go run -v go.uber.org/mock/mockgen -destination=mockcredstore.go -package=mockcredstore -copyright_file=../../../hack/header.txt go.fabprov.dev/internal/credstore Store
