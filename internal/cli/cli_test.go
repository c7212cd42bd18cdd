package cli

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/boxsdk/internal/logging"
	"github.com/mesh-intelligence/boxsdk/internal/sqlite"
	"github.com/mesh-intelligence/boxsdk/pkg/box"
	"github.com/mesh-intelligence/boxsdk/pkg/types"
)

func TestVersion(t *testing.T) {
	env := newTestEnv(t)
	res := env.mustRun("version")
	assert.Contains(t, res.Stdout, "boxctl v"+box.Version)
	assert.Contains(t, res.Stdout, modulePath)
}

func TestInit(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, os.Remove(filepath.Join(env.ConfigDir, "config.yaml")))

	res := env.mustRun("init")
	assert.Contains(t, res.Stdout, "config.yaml")
	assert.FileExists(t, filepath.Join(env.DataDir, sqlite.DBFileName))

	data, err := os.ReadFile(filepath.Join(env.ConfigDir, "config.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), types.DefaultAPIURL)
	assert.Contains(t, string(data), defaultSandboxAddr)

	res = env.mustRun("init")
	assert.NotContains(t, res.Stdout, "Wrote", "existing config must be kept")
}

func TestCommentCommands(t *testing.T) {
	env := newTestEnv(t)

	root := parseJSON[types.Comment](t, env.mustRun("comment", "add", "42", "first").Stdout)
	assert.NotEmpty(t, root.ID)
	assert.False(t, root.IsReplyComment)

	reply := parseJSON[types.Comment](t, env.mustRun("comment", "reply", root.ID, "@[1:Al] see this").Stdout)
	assert.True(t, reply.IsReplyComment)
	assert.Equal(t, "@[1:Al] see this", reply.TaggedMessage)

	edited := parseJSON[types.Comment](t, env.mustRun("comment", "edit", reply.ID, "plain now").Stdout)
	assert.Equal(t, reply.ID, edited.ID)
	assert.Equal(t, "plain now", edited.Message)

	got := parseJSON[types.Comment](t, env.mustRun("comment", "get", reply.ID, "--fields", "message").Stdout)
	assert.Equal(t, "plain now", got.Message)
	assert.Nil(t, got.CreatedAt)

	env.mustRun("comment", "delete", reply.ID)
	res := env.run("", "comment", "get", reply.ID)
	assert.Equal(t, exitUserError, res.ExitCode)
	assert.True(t, types.IsStatus(res.Err, http.StatusNotFound))
}

func TestTemplateCommands(t *testing.T) {
	env := newTestEnv(t)

	schema := `{"scope":"enterprise","displayName":"Project Info","fields":[{"type":"string","key":"owner","displayName":"Owner"}]}`
	created := parseJSON[types.MetadataTemplate](t, env.run(schema, "template", "create", "-f", "-").Stdout)
	assert.Equal(t, "projectInfo", created.TemplateKey)

	opsPath := filepath.Join(t.TempDir(), "ops.json")
	require.NoError(t, os.WriteFile(opsPath, []byte(`[
		{"op":"addField","data":{"displayName":"Phase","key":"phase","hidden":false,"type":"enum"}},
		{"op":"addEnumOption","fieldKey":"phase","data":{"key":"alpha"}},
		{"op":"reorderFields","fieldKey":["phase","owner"]}
	]`), 0o600))
	updated := parseJSON[types.MetadataTemplate](t, env.mustRun("template", "update", "enterprise", "projectInfo", "-f", opsPath).Stdout)
	require.Len(t, updated.Fields, 2)
	assert.Equal(t, "phase", updated.Fields[0].Key)
	assert.Equal(t, "alpha", updated.Fields[0].Options[0].Key)

	got := parseJSON[types.MetadataTemplate](t, env.mustRun("template", "get", "enterprise", "projectInfo").Stdout)
	assert.Equal(t, updated.Fields, got.Fields)

	env.mustRun("template", "delete", "enterprise", "projectInfo")
	res := env.run("", "template", "get", "enterprise", "projectInfo")
	assert.Equal(t, exitUserError, res.ExitCode)
}

func TestTemplateUpdate_BadInput(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name  string
		stdin string
		args  []string
	}{
		{"unknown op", `[{"op":"explode"}]`, []string{"template", "update", "enterprise", "k", "-f", "-"}},
		{"not an array", `{"op":"removeField"}`, []string{"template", "update", "enterprise", "k", "-f", "-"}},
		{"missing file flag", "", []string{"template", "update", "enterprise", "k"}},
		{"missing file", "", []string{"template", "update", "enterprise", "k", "-f", filepath.Join(t.TempDir(), "nope.json")}},
		{"wrong arg count", "", []string{"comment", "reply", "1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := env.run(tt.stdin, tt.args...)
			require.Error(t, res.Err)
			assert.Equal(t, exitUserError, res.ExitCode)
		})
	}
}

func TestConfig_EnvOverride(t *testing.T) {
	env := newTestEnv(t)
	env.writeConfig("api_url: http://127.0.0.1:1/2.0\ntoken: wrong\n")
	t.Setenv("BOXCTL_API_URL", env.APIURL)
	t.Setenv("BOXCTL_TOKEN", testToken)

	res := env.mustRun("comment", "add", "7", "via env")
	assert.Equal(t, "via env", parseJSON[types.Comment](t, res.Stdout).Message)
}

func TestConfig_Invalid(t *testing.T) {
	env := newTestEnv(t)

	env.writeConfig("api_url: ftp://example.com\n")
	res := env.run("", "comment", "get", "1")
	assert.Equal(t, exitUserError, res.ExitCode)
	assert.ErrorIs(t, res.Err, types.ErrAPIURLInvalid)

	env.writeConfig("log_level: loud\n")
	res = env.run("", "version")
	assert.Equal(t, exitUserError, res.ExitCode)

	env.writeConfig("api_url: [unterminated\n")
	res = env.run("", "version")
	assert.Equal(t, exitUserError, res.ExitCode)
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, exitSuccess},
		{"unclassified", errors.New("bad args"), exitUserError},
		{"api 4xx", apiError(&types.APIError{StatusCode: http.StatusConflict}), exitUserError},
		{"api 5xx", apiError(&types.APIError{StatusCode: http.StatusBadGateway}), exitSysError},
		{"transport", apiError(errors.New("dial tcp: refused")), exitSysError},
		{"system", sysError(errors.New("disk full")), exitSysError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, exitCode(tt.err))
		})
	}
}

func TestPrinter_Human(t *testing.T) {
	var buf bytes.Buffer
	p := &printer{w: &buf}
	created := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	require.NoError(t, p.comment(types.Comment{ID: "9", Message: "hello", IsReplyComment: true, CreatedAt: &created}))
	assert.Equal(t, "reply 9\n  created:  2026-01-02 03:04:05\n  message:  hello\n", buf.String())

	buf.Reset()
	require.NoError(t, p.template(types.MetadataTemplate{
		Scope: "enterprise", TemplateKey: "k", DisplayName: "K", Hidden: true,
		Fields: []types.TemplateField{{Key: "s", Type: "enum", DisplayName: "S", Options: []types.EnumOption{{Key: "a"}, {Key: "b"}}}},
	}))
	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "enterprise/k  K (hidden)\n"))
	assert.Contains(t, out, "[a, b]")

	assert.True(t, newPrinter(&buf, false).json, "non-terminal writers get JSON")
}

func TestServeSandbox(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	ready := make(chan string, 1)
	done := make(chan error, 1)

	go func() {
		done <- serveSandbox(ctx, sandboxOptions{
			Addr:    "127.0.0.1:0",
			DataDir: t.TempDir(),
			Token:   testToken,
			Logger:  logging.Discard(),
			Ready:   func(addr string) { ready <- addr },
		})
	}()

	var addr string
	select {
	case addr = <-ready:
	case err := <-done:
		t.Fatalf("sandbox exited early: %v", err)
	case <-time.After(10 * time.Second):
		t.Fatal("sandbox did not start")
	}

	client, err := box.NewClient(types.Config{APIURL: "http://" + addr + "/2.0", Token: testToken})
	require.NoError(t, err)
	c, err := client.AddComment(context.Background(), types.Item{Type: types.ItemTypeFile, ID: "1"}, "served")
	require.NoError(t, err)
	assert.Equal(t, "served", c.Info.Message)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("sandbox did not stop")
	}
}
