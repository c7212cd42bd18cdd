//go:build mage

// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package main provides build targets for boxsdk using Mage.
//
// Usage:
//
//	mage build          Compile boxctl to bin/
//	mage test:all       Run all tests
//	mage test:unit      Run tests without the end-to-end sandbox suites
//	mage test:cover     Run all tests with a coverage profile
//	mage lint           Run golangci-lint
//	mage sandbox        Build and serve the local sandbox
//	mage stats          Print Go LOC per package
package main

import (
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binGo      = "go"
	binaryName = "boxctl"
	binaryDir  = "bin"
	cmdDir     = "./cmd/boxctl"
)

// Build compiles the boxctl binary to bin/.
func Build() error {
	if err := os.MkdirAll(binaryDir, 0o755); err != nil {
		return err
	}
	return sh.RunV(binGo, "build", "-v", "-o", filepath.Join(binaryDir, binaryName), cmdDir)
}

// Clean removes build artifacts.
func Clean() error {
	if err := os.RemoveAll(binaryDir); err != nil {
		return err
	}
	return sh.RunV(binGo, "clean")
}

// Install builds and copies the binary to GOPATH/bin.
func Install() error {
	mg.Deps(Build)
	gopath, err := sh.Output(binGo, "env", "GOPATH")
	if err != nil {
		return err
	}
	src := filepath.Join(binaryDir, binaryName)
	dst := filepath.Join(gopath, "bin", binaryName)
	return sh.Copy(dst, src)
}

// Sandbox builds boxctl and serves the sandbox with the default config.
func Sandbox() error {
	mg.Deps(Build)
	return sh.RunV(filepath.Join(binaryDir, binaryName), "sandbox", "serve")
}
