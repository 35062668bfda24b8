// Copyright 2021 JD Fergason
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

package common

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"sort"
	"strings"
)

// set with -ldflags by mage
var (
	commitHash string
	buildDate  string
)

// Version is a SemVer 2.0.0 build version. Suffix marks a pre-release and is blank
// for releases.
type Version struct {
	Major  int
	Minor  int
	Patch  int
	Suffix string
}

func (v Version) String() string {
	if v.Suffix == "" {
		return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
	}

	s := fmt.Sprintf("%d.%d.%d-%s", v.Major, v.Minor, v.Patch, v.Suffix)
	if commitHash != "" {
		s += "+" + strings.ToLower(commitHash)
	}
	return s
}

// BuildInfo describes the running pvvector binary
type BuildInfo struct {
	Program   string   `json:"program"`
	Version   string   `json:"version"`
	Platform  string   `json:"platform"`
	GoVersion string   `json:"goVersion"`
	BuildDate string   `json:"buildDate"`
	Commit    string   `json:"commit,omitempty"`
	Modules   []string `json:"modules,omitempty"`
}

// CurrentBuild returns the build info of the running binary. Modules (path@version,
// sorted) are only filled in when withModules is set.
func CurrentBuild(withModules bool) BuildInfo {
	info := BuildInfo{
		Program:   "pvvector",
		Version:   "v" + CurrentVersion.String(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
		GoVersion: runtime.Version(),
		BuildDate: buildDate,
		Commit:    commitHash,
	}

	if info.BuildDate == "" {
		info.BuildDate = "unknown"
	}

	if withModules {
		info.Modules = []string{}
		if bi, ok := debug.ReadBuildInfo(); ok {
			for _, dep := range bi.Deps {
				info.Modules = append(info.Modules, dep.Path+"@"+dep.Version)
			}
			sort.Strings(info.Modules)
		}
	}

	return info
}

// String renders the build info the way `pvvector version` prints it
func (b BuildInfo) String() string {
	s := &strings.Builder{}
	fmt.Fprintf(s, "%s %s %s\n\nBuild Date: %s\nCommit: %s\nBuilt with: %s",
		b.Program, b.Version, b.Platform, b.BuildDate, b.Commit, b.GoVersion)

	if b.Modules != nil {
		s.WriteString("\n\nModules:\n\n")
		s.WriteString(strings.Join(b.Modules, "\n"))
	}

	return s.String()
}
