// Package testutil provides test utilities for CLI testing.
package testutil

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
)

// SeedYAML is a small seed document shared by CLI tests.
const SeedYAML = `contacts:
  - first: Ada
    last: Lovelace
    twitter: "@ada"
    favorite: true
  - first: Alan
    last: Turing
  - first: Grace
    last: Hopper
    notes: Wrote the first compiler.
`

// SetupTestProject creates a temporary project with a seed file and a
// config pointing at a SQLite database inside it. The working directory
// is switched into the project for the duration of the test.
func SetupTestProject(t *testing.T) string {
	t.Helper()

	tmpDir := t.TempDir()

	if err := os.MkdirAll(filepath.Join(tmpDir, "seeds"), 0755); err != nil {
		t.Fatalf("failed to create seeds directory: %v", err)
	}
	if err := os.WriteFile(filepath.Join(tmpDir, "seeds", "contacts.yaml"), []byte(SeedYAML), 0644); err != nil {
		t.Fatalf("failed to create seed file: %v", err)
	}

	cfg := "backend: sqlite\ndatabase: " + filepath.Join(tmpDir, "data", "contacts.db") + "\n"
	if err := os.WriteFile(filepath.Join(tmpDir, "contacts.yaml"), []byte(cfg), 0644); err != nil {
		t.Fatalf("failed to create contacts.yaml: %v", err)
	}

	Chdir(t, tmpDir)
	return tmpDir
}

// Chdir switches into dir and restores the previous directory on cleanup.
func Chdir(t *testing.T, dir string) {
	t.Helper()

	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to get working directory: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("failed to chdir to %s: %v", dir, err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

// ansiPattern matches ANSI escape codes.
var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// AssertNoANSI checks that a string contains no ANSI escape codes.
func AssertNoANSI(t *testing.T, s string) {
	t.Helper()
	if ansiPattern.MatchString(s) {
		t.Errorf("string contains ANSI escape codes: %q", s)
	}
}

// AssertContains checks that the string contains the expected substring.
func AssertContains(t *testing.T, s, expected string) {
	t.Helper()
	if !strings.Contains(s, expected) {
		t.Errorf("string %q does not contain expected %q", s, expected)
	}
}

// AssertNotContains checks that the string does not contain the substring.
func AssertNotContains(t *testing.T, s, unexpected string) {
	t.Helper()
	if strings.Contains(s, unexpected) {
		t.Errorf("string %q unexpectedly contains %q", s, unexpected)
	}
}
