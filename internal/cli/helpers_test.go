package cli

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/boxsdk/internal/sandbox"
	"github.com/mesh-intelligence/boxsdk/internal/sqlite"
)

const testToken = "cli-token"

// testEnv is an isolated boxctl environment: its own config and data
// directories and a sandbox server the config points at.
type testEnv struct {
	t         *testing.T
	ConfigDir string
	DataDir   string
	APIURL    string
}

// runResult captures one command execution.
type runResult struct {
	Stdout   string
	Stderr   string
	Err      error
	ExitCode int
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	store := sqlite.NewStore()
	require.NoError(t, store.Open(t.TempDir()))
	srv := httptest.NewServer(sandbox.New(store, sandbox.Options{Token: testToken}))
	t.Cleanup(func() {
		srv.Close()
		store.Close()
	})

	env := &testEnv{
		t:         t,
		ConfigDir: filepath.Join(t.TempDir(), "config"),
		DataDir:   filepath.Join(t.TempDir(), "data"),
		APIURL:    srv.URL + sandbox.APIPrefix,
	}
	t.Setenv("BOXCTL_API_URL", "")
	t.Setenv("BOXCTL_TOKEN", "")
	env.writeConfig("api_url: " + env.APIURL + "\ntoken: " + testToken + "\nlog_level: error\n")
	return env
}

func (e *testEnv) writeConfig(content string) {
	e.t.Helper()
	require.NoError(e.t, os.MkdirAll(e.ConfigDir, 0o755))
	require.NoError(e.t, os.WriteFile(filepath.Join(e.ConfigDir, "config.yaml"), []byte(content), 0o600))
}

// run executes boxctl with the environment's directories and JSON output.
func (e *testEnv) run(stdin string, args ...string) runResult {
	e.t.Helper()
	var stdout, stderr bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(append([]string{"--config-dir", e.ConfigDir, "--data-dir", e.DataDir, "--json"}, args...))
	err := root.Execute()
	return runResult{Stdout: stdout.String(), Stderr: stderr.String(), Err: err, ExitCode: exitCode(err)}
}

func (e *testEnv) mustRun(args ...string) runResult {
	e.t.Helper()
	res := e.run("", args...)
	require.NoError(e.t, res.Err, "boxctl %v\nstderr: %s", args, res.Stderr)
	return res
}

func parseJSON[T any](t *testing.T, s string) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal([]byte(s), &v), "output: %s", s)
	return v
}
