package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// testEnv returns an Environment with captured output and a fixed set of
// environment variables, so tests never read the process environment.
func testEnv(vars map[string]string) (*Environment, *bytes.Buffer, *bytes.Buffer) {
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	environ := make([]string, 0, len(vars))
	for k, v := range vars {
		environ = append(environ, k+"="+v)
	}
	env := &Environment{
		Now:     func() time.Time { return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC) },
		Stdout:  stdout,
		Stderr:  stderr,
		Getenv:  func(k string) string { return vars[k] },
		Environ: func() []string { return environ },
	}
	return env, stdout, stderr
}

// writeFile creates dir/name with content, creating parent directories.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}
