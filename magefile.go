//go:build mage

// Copyright 2021-2023
// SPDX-License-Identifier: Apache-2.0
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

package main

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binaryName   = "pvvector"
	modulePath   = "github.com/penny-vault/pv-vector"
	coverProfile = "coverage.out"
)

var ldflags = "-X " + modulePath + "/common.commitHash=$COMMIT_HASH -X " + modulePath + "/common.buildDate=$BUILD_DATE"

// override the go executable with GOEXE=xxx
var goexe = "go"

func init() {
	if exe := os.Getenv("GOEXE"); exe != "" {
		goexe = exe
	}
}

// Build the pvvector binary with version information
func Build() error {
	fmt.Println("Building...")
	return sh.RunWith(flagEnv(), goexe, withBuildFlags("build", "-o", binaryName, "-ldflags", ldflags, "-v", ".")...)
}

// Install pvvector into GOBIN
func Install() error {
	return sh.RunWith(flagEnv(), goexe, withBuildFlags("install", "-ldflags", ldflags, ".")...)
}

// Clean up build and coverage output
func Clean() {
	fmt.Println("Cleaning...")
	os.RemoveAll(binaryName)
	os.RemoveAll(coverProfile)
}

// Run formatting, vet and the race enabled test suite
func Check() {
	mg.Deps(Fmt, Vet)
	mg.Deps(TestRace)
}

// Run tests
func Test() error {
	fmt.Println("Go Test")
	return runQuiet(goexe, "test", "./...")
}

// Run tests with race detector
func TestRace() error {
	fmt.Println("Go Test Race")
	return runQuiet(goexe, "test", "-race", "./...")
}

// Fail when a file is not gofmt'ed
func Fmt() error {
	fmt.Println("Go Format")

	// gofmt exits 0 even when files need formatting, so look at its output
	out, err := sh.Output("gofmt", "-l", "cmd", "common", "data", "expression", "handler", "middleware", "observability", "router", "vector", "main.go")
	if err != nil {
		return err
	}
	if out != "" {
		fmt.Println("The following files are not gofmt'ed:")
		fmt.Println(out)
		return errors.New("improperly formatted go files")
	}
	return nil
}

// Run go vet
func Vet() error {
	fmt.Println("Go Vet")
	if err := sh.Run(goexe, "vet", "./..."); err != nil {
		return fmt.Errorf("error running go vet: %w", err)
	}
	return nil
}

// Write a test coverage profile and open it as HTML
func Cover() error {
	fmt.Println("Go Test Coverage")
	if err := sh.Run(goexe, "test", "-coverprofile="+coverProfile, "-covermode=count", "./..."); err != nil {
		return err
	}
	return sh.Run(goexe, "tool", "cover", "-html="+coverProfile)
}

// Helpers

func withBuildFlags(args ...string) []string {
	if runtime.GOOS == "windows" {
		args = append(args[:1], append([]string{"-buildmode", "exe"}, args[1:]...)...)
	}
	return args
}

func flagEnv() map[string]string {
	hash, _ := sh.Output("git", "rev-parse", "--short", "HEAD")
	return map[string]string{
		"COMMIT_HASH": strings.TrimSpace(hash),
		"BUILD_DATE":  time.Now().Format("2006-01-02T15:04:05Z0700"),
	}
}

// runQuiet only prints the command output when it fails, unless mage runs verbose
func runQuiet(cmd string, args ...string) error {
	if mg.Verbose() {
		return sh.RunV(cmd, args...)
	}
	out, err := sh.Output(cmd, args...)
	if err != nil {
		fmt.Fprintln(os.Stderr, out)
	}
	return err
}
