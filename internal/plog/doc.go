// Copyright 2024 the Fabprov contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package plog implements a thin layer over logr (backed by zap) to help enforce fabprov's
// logging convention. Logs are always structured as a constant message with key and value
// pairs of related metadata.
//
// The logging levels in order of increasing verbosity are:
// error, warning, info, debug, trace and all.
//
// error and warning logs are always emitted and should be actionable: a required credential
// that could not be stored, an optional one that was skipped.
//
// info reports progress of a provisioning run (node registered, identity enrolled).
// debug is for support cases. It must never include passwords or key material, which rules
// out logging full command lines that embed enrollment secrets.
//
// trace covers retry timing. all is reserved for output of remote commands and is unfit for
// anything but local debugging.
package plog
