//go:build mage

// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"strings"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// coverProfile is where Test.Cover writes its profile.
const coverProfile = "coverage.out"

// e2ePattern selects the tests that drive a sandbox server end to end.
const e2ePattern = "^(TestClient_|TestServer_|TestCommentCommands|TestTemplateCommands|TestServeSandbox)"

// Test groups test targets.
type Test mg.Namespace

// All runs every test.
func (Test) All() error {
	return sh.RunV(binGo, "test", "-v", "./...")
}

// Unit runs tests, skipping the end-to-end sandbox suites.
func (Test) Unit() error {
	pkgs, err := sh.Output(binGo, "list", "./...")
	if err != nil {
		return err
	}
	var unitPkgs []string
	for pkg := range strings.SplitSeq(pkgs, "\n") {
		if pkg != "" && !strings.HasSuffix(pkg, "/cmd/boxctl") {
			unitPkgs = append(unitPkgs, pkg)
		}
	}
	if len(unitPkgs) == 0 {
		fmt.Println("No unit test packages found.")
		return nil
	}
	args := append([]string{"test", "-v", "-skip", e2ePattern}, unitPkgs...)
	return sh.RunV(binGo, args...)
}

// Cover runs every test with the race detector and prints per-function
// coverage.
func (Test) Cover() error {
	if err := sh.RunV(binGo, "test", "-race", "-coverprofile="+coverProfile, "./..."); err != nil {
		return err
	}
	return sh.RunV(binGo, "tool", "cover", "-func="+coverProfile)
}
