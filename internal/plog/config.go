// Copyright 2024 the Fabprov contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package plog

import (
	"context"
	"strconv"

	"go.uber.org/zap/zapcore"
	"k8s.io/component-base/logs"

	"go.fabprov.dev/internal/constable"
)

type LogFormat string

const (
	FormatJSON LogFormat = "json"
	FormatCLI  LogFormat = "cli"

	errInvalidLogLevel  = constable.Error("invalid log level, valid choices are the empty string, info, debug, trace and all")
	errInvalidLogFormat = constable.Error("invalid log format, valid choices are the empty string, 'json' and 'cli'")
)

type LogSpec struct {
	Level  LogLevel  `json:"level,omitempty"`
	Format LogFormat `json:"format,omitempty"`
}

// Validate checks the spec without changing any global state.
func (s LogSpec) Validate() error {
	if klogLevelForPlogLevel(s.Level) < 0 {
		return errInvalidLogLevel
	}
	switch s.Format {
	case "", FormatJSON, FormatCLI:
		return nil
	default:
		return errInvalidLogFormat
	}
}

// ValidateAndSetLogLevelAndFormatGlobally applies spec to the loggers used by fabprov and by
// client-go underneath it. It may be called more than once, e.g. once with defaults and again
// after the config file has been read.
func ValidateAndSetLogLevelAndFormatGlobally(ctx context.Context, spec LogSpec) error {
	if err := spec.Validate(); err != nil {
		return err
	}
	klogLevel := klogLevelForPlogLevel(spec.Level)

	if _, err := logs.GlogSetter(strconv.Itoa(int(klogLevel))); err != nil {
		panic(err) // programmer error
	}
	//nolint:gosec // the range for klogLevel is [0,108]
	globalLevel.SetLevel(zapcore.Level(-klogLevel)) // klog levels are inverted when zap handles them

	encoding := "json"
	if spec.Format == FormatCLI {
		encoding = "console"
	}

	log, flush, err := newLogr(ctx, encoding)
	if err != nil {
		return err
	}

	setGlobalLoggers(log, flush)
	return nil
}
