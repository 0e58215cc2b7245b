package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// testWorkspace is an isolated data directory and configuration file.
type testWorkspace struct {
	dir        string
	configPath string
}

// newWorkspace writes config to a temporary .scamguard file.
func newWorkspace(t *testing.T, config string) *testWorkspace {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, ".scamguard")
	if err := os.WriteFile(path, []byte(config), 0600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return &testWorkspace{dir: dir, configPath: path}
}

// run executes the root command with args inside the workspace and
// returns what it wrote to stdout.
func (w *testWorkspace) run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	var out, errOut bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--config", w.configPath, "--data-dir", filepath.Join(w.dir, "data")}, args...))

	err := cmd.Execute()
	return out.String(), err
}

// mustRun is run that fails the test on error.
func (w *testWorkspace) mustRun(t *testing.T, args ...string) string {
	t.Helper()

	out, err := w.run(t, "", args...)
	if err != nil {
		t.Fatalf("scamguard %s: %v", strings.Join(args, " "), err)
	}
	return out
}
