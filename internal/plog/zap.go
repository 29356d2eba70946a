// Copyright 2024 the Fabprov contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package plog

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/util/duration"
)

func newLogr(ctx context.Context, encoding string) (logr.Logger, func(), error) {
	var w io.Writer // nil means stderr
	f := func(config *zap.Config) {
		if encoding == "console" {
			config.EncoderConfig.LevelKey = zapcore.OmitKey
			config.EncoderConfig.EncodeCaller = zapcore.ShortCallerEncoder
			config.EncoderConfig.EncodeTime = humanTimeEncoder
			config.EncoderConfig.EncodeDuration = humanDurationEncoder
		}
	}
	var opts []zap.Option

	// allow tests to override zap config
	if overrides, ok := ctx.Value(testOverridesContextKey).(*testOverrides); ok {
		w = overrides.w
		if overrides.f != nil {
			f = overrides.f
		}
		if overrides.opts != nil {
			opts = overrides.opts
		}
	}

	// when using the trace or all log levels, an error log will contain the full stack.
	// this is too noisy for regular use because a retried enrollment would log a stack per attempt.
	// this check is performed dynamically on the global log level.
	return newZapr(globalLevel, stackEnabler{}, encoding, w, f, opts...)
}

var _ zapcore.LevelEnabler = stackEnabler{}

type stackEnabler struct{}

func (stackEnabler) Enabled(l zapcore.Level) bool {
	return l >= zapcore.ErrorLevel && globalLevel.Enabled(zapcore.Level(-KlogLevelTrace))
}

func newZapr(level zap.AtomicLevel, addStack zapcore.LevelEnabler, encoding string, w io.Writer, f func(config *zap.Config), opts ...zap.Option) (logr.Logger, func(), error) {
	opts = append([]zap.Option{zap.AddStacktrace(addStack)}, opts...)

	config := zap.Config{
		Level:             level,
		Development:       false,
		DisableCaller:     false,
		DisableStacktrace: true, // handled via the AddStacktrace call above
		Sampling:          nil,  // keep all logs
		Encoding:          encoding,
		EncoderConfig: zapcore.EncoderConfig{
			MessageKey:     "message",
			LevelKey:       "level",
			TimeKey:        "timestamp",
			NameKey:        "logger",
			CallerKey:      "caller",
			FunctionKey:    zapcore.OmitKey, // included in caller
			StacktraceKey:  "stacktrace",
			SkipLineEnding: false,
			LineEnding:     zapcore.DefaultLineEnding,
			EncodeLevel:    levelEncoder,
			// human-readable and machine parsable with microsecond precision (same as klog, kube audit event, etc)
			EncodeTime:       zapcore.TimeEncoderOfLayout(metav1.RFC3339Micro),
			EncodeDuration:   zapcore.StringDurationEncoder,
			EncodeCaller:     callerEncoder,
			ConsoleSeparator: "  ",
		},
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
	}

	f(&config)

	if w == nil {
		log, err := config.Build(opts...)
		if err != nil {
			return logr.Logger{}, nil, fmt.Errorf("failed to build zap logger: %w", err)
		}
		return zapr.NewLogger(log), func() { _ = log.Sync() }, nil
	}

	var encoder zapcore.Encoder
	switch config.Encoding {
	case "console":
		encoder = zapcore.NewConsoleEncoder(config.EncoderConfig)
	case "json":
		encoder = zapcore.NewJSONEncoder(config.EncoderConfig)
	default:
		return logr.Logger{}, nil, fmt.Errorf("failed to build zap logger: unknown encoding %q", config.Encoding)
	}
	if !config.DisableCaller {
		opts = append(opts, zap.AddCaller())
	}
	core := zapcore.NewCore(encoder, zapcore.Lock(zapcore.AddSync(w)), config.Level)
	log := zap.New(core, opts...)
	return zapr.NewLogger(log), func() {}, nil
}

func levelEncoder(l zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	plogLevel := zapLevelToPlogLevel(l)

	if len(plogLevel) == 0 {
		return // this tells zap that it should handle encoding the level itself because we do not know the mapping
	}

	enc.AppendString(string(plogLevel))
}

func zapLevelToPlogLevel(l zapcore.Level) LogLevel {
	if l > 0 {
		// best effort mapping, the zap levels do not really translate to klog
		// but this is correct for "error" level which is all we need for logr
		return LogLevel(l.String())
	}

	// klog levels are inverted when zap handles them
	switch {
	case -l >= klogLevelAll:
		return LevelAll
	case -l >= KlogLevelTrace:
		return LevelTrace
	case -l >= KlogLevelDebug:
		return LevelDebug
	case -l >= KlogLevelInfo:
		return LevelInfo
	default:
		return "" // warning is handled via a custom key since klog level 0 is ambiguous
	}
}

func callerEncoder(caller zapcore.EntryCaller, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString(caller.String() + funcEncoder(caller))
}

func funcEncoder(caller zapcore.EntryCaller) string {
	funcName := caller.Function
	if idx := strings.LastIndexByte(funcName, '/'); idx != -1 {
		funcName = funcName[idx+1:] // keep everything after the last /
	}
	return "$" + funcName
}

func humanDurationEncoder(d time.Duration, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString(duration.HumanDuration(d))
}

func humanTimeEncoder(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString(t.Local().Format(time.RFC1123))
}
