// Copyright 2024 the Fabprov contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package pversion reports which code a fabprov binary was built from.
package pversion

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strconv"
	"strings"

	"github.com/coreos/go-semver/semver"
	apimachineryversion "k8s.io/apimachinery/pkg/version"
	k8sstrings "k8s.io/utils/strings"
)

const develVersion = "v0.0.0"

//nolint:gochecknoglobals // swapped during unit tests
var readBuildInfo = debug.ReadBuildInfo

// gitVersion is set with -ldflags "-X 'go.fabprov.dev/internal/pversion.gitVersion=v1.2.3'".
//
//nolint:gochecknoglobals // set by the linker
var gitVersion string

// Get combines the release version from the linker with the VCS settings the go toolchain
// stamps into the binary.
func Get() apimachineryversion.Info {
	info := apimachineryversion.Info{
		Major:        "0",
		Minor:        "0",
		GitVersion:   develVersion,
		GitTreeState: "dirty",
		GoVersion:    runtime.Version(),
		Compiler:     runtime.Compiler,
		Platform:     fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
	}

	if v := releaseVersion(gitVersion); v != nil {
		info.GitVersion = gitVersion
		info.Major = strconv.FormatInt(v.Major, 10)
		info.Minor = strconv.FormatInt(v.Minor, 10)
	}

	if buildInfo, ok := readBuildInfo(); ok {
		for _, setting := range buildInfo.Settings {
			switch setting.Key {
			case "vcs.revision":
				info.GitCommit = setting.Value
			case "vcs.time":
				info.BuildDate = setting.Value
			case "vcs.modified":
				if setting.Value == "false" {
					info.GitTreeState = "clean"
				}
			}
		}
	}

	if info.GitVersion == develVersion && info.GitCommit != "" {
		info.GitVersion = fmt.Sprintf("%s-%s-%s", develVersion, k8sstrings.ShortenString(info.GitCommit, 8), info.GitTreeState)
	}

	return info
}

// releaseVersion parses v with or without its leading "v". It returns nil for development builds.
func releaseVersion(v string) *semver.Version {
	if v == "" {
		return nil
	}
	parsed, err := semver.NewVersion(strings.TrimPrefix(v, "v"))
	if err != nil {
		return nil
	}
	return parsed
}
