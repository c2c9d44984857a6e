// Copyright 2021 FerretDB Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package version provides information about bookstore version and build configuration.
//
// # Go build tags
//
// The following Go build tags (also known as build constraints) affect builds:
//
//	bookstore_debug - enables debug build (implied by builds with race detector)
//
// Debug builds log at debug level by default and dump metrics to stderr on exit.
package version

import (
	"runtime"
	"runtime/debug"
	"strconv"

	"github.com/FerretDB/bookstore/internal/util/debugbuild"
)

// Info provides details about the current build.
type Info struct {
	Version          string
	Commit           string
	Dirty            bool
	DebugBuild       bool
	BuildEnvironment map[string]string
}

// unknown is a placeholder for unknown version and commit values.
const unknown = "unknown"

// info singleton instance set by init().
var info *Info

// Get returns current build's info.
//
// It returns a shared instance without any synchronization.
func Get() *Info {
	return info
}

func init() {
	info = &Info{
		Version:    unknown,
		Commit:     unknown,
		DebugBuild: debugbuild.Enabled,
		BuildEnvironment: map[string]string{
			"go.runtime": runtime.Version(),
		},
	}

	buildInfo, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}

	info.BuildEnvironment["go.version"] = buildInfo.GoVersion

	if v := buildInfo.Main.Version; v != "" && v != "(devel)" {
		info.Version = v
	}

	for _, s := range buildInfo.Settings {
		switch s.Key {
		case "vcs.revision":
			info.Commit = s.Value
		case "vcs.modified":
			info.Dirty, _ = strconv.ParseBool(s.Value)
		case "-race", "-tags":
			info.BuildEnvironment[s.Key] = s.Value
		}
	}
}
