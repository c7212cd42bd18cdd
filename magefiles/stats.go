//go:build mage

// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// pkgStats counts Go lines for one package directory.
type pkgStats struct {
	Prod int `json:"prod"`
	Test int `json:"test"`
}

// Stats prints Go lines of code per package as JSON lines, then a total.
func Stats() error {
	byPkg := map[string]*pkgStats{}

	err := filepath.Walk(".", func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if info.IsDir() {
			if path == "vendor" || path == ".git" || path == binaryDir || strings.HasPrefix(path, "_") {
				return filepath.SkipDir
			}
			return nil
		}
		// magefiles are build tooling, not project code.
		if !strings.HasSuffix(path, ".go") || strings.HasPrefix(path, "magefiles") {
			return nil
		}
		count, countErr := countLines(path)
		if countErr != nil {
			return nil
		}
		dir := filepath.ToSlash(filepath.Dir(path))
		s, ok := byPkg[dir]
		if !ok {
			s = &pkgStats{}
			byPkg[dir] = s
		}
		if strings.HasSuffix(path, "_test.go") {
			s.Test += count
		} else {
			s.Prod += count
		}
		return nil
	})
	if err != nil {
		return err
	}

	dirs := make([]string, 0, len(byPkg))
	for dir := range byPkg {
		dirs = append(dirs, dir)
	}
	sort.Strings(dirs)

	var total pkgStats
	for _, dir := range dirs {
		s := byPkg[dir]
		total.Prod += s.Prod
		total.Test += s.Test
		if err := printRecord(map[string]any{"pkg": dir, "go_loc_prod": s.Prod, "go_loc_test": s.Test}); err != nil {
			return err
		}
	}
	return printRecord(map[string]any{"pkg": "total", "go_loc_prod": total.Prod, "go_loc_test": total.Test, "go_loc": total.Prod + total.Test})
}

func printRecord(record map[string]any) error {
	line, err := json.Marshal(record)
	if err != nil {
		return err
	}
	fmt.Println(string(line))
	return nil
}

func countLines(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	count := 0
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		count++
	}
	return count, scanner.Err()
}
