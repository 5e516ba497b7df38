package cli

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC)

// testEnv is an isolated config and data directory for CLI runs.
type testEnv struct {
	t         *testing.T
	ConfigDir string
	DataDir   string
}

// cmdResult captures one CLI invocation.
type cmdResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

func newTestEnv(t *testing.T, format string) *testEnv {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("REGISTERS_FORMAT", format)
	t.Setenv("REGISTERS_VERBOSE", "false")
	return &testEnv{
		t:         t,
		ConfigDir: filepath.Join(dir, "config"),
		DataDir:   filepath.Join(dir, "data"),
	}
}

// run executes the CLI in-process with the env's directories.
func (e *testEnv) run(args ...string) cmdResult {
	e.t.Helper()
	var stdout, stderr bytes.Buffer
	root := newRootCmd(&app{now: func() time.Time { return fixedNow }})
	root.SetArgs(append([]string{"--config-dir", e.ConfigDir, "--data-dir", e.DataDir}, args...))
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	err := root.Execute()
	if err != nil {
		stderr.WriteString(err.Error())
	}
	return cmdResult{Stdout: stdout.String(), Stderr: stderr.String(), ExitCode: exitCode(err)}
}

// mustRun executes the CLI and fails the test on a non-zero exit code.
func (e *testEnv) mustRun(args ...string) cmdResult {
	e.t.Helper()
	res := e.run(args...)
	require.Equal(e.t, exitSuccess, res.ExitCode, "registers %v failed: %s", args, res.Stderr)
	return res
}

func parseJSON[T any](t *testing.T, s string) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal([]byte(s), &v), "output: %s", s)
	return v
}
