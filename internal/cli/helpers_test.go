package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/iudanet/blackbook/internal/iocli"
	"github.com/iudanet/blackbook/internal/records"
)

// testIO читает ввод из строки и позволяет задать интерактивность
type testIO struct {
	*iocli.Stdio
	interactive bool
}

func (t *testIO) IsInteractive() bool {
	return t.interactive
}

type cliTestEnv struct {
	root         string
	settingsPath string
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	root := filepath.Join(base, "social")
	require.NoError(t, os.MkdirAll(root, 0o755))

	env := &cliTestEnv{
		root:         root,
		settingsPath: filepath.Join(base, "config", "settings.json"),
	}
	writeSettings(t, env.settingsPath, map[string]any{
		"social_folder": root,
		"user_name":     "tester",
	})
	return env
}

func writeSettings(t *testing.T, path string, values map[string]any) {
	t.Helper()
	data, err := json.Marshal(values)
	require.NoError(t, err)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, data, 0o644))
}

func readSettings(t *testing.T, path string) map[string]any {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	values := map[string]any{}
	require.NoError(t, json.Unmarshal(data, &values))
	return values
}

type runOptions struct {
	input       string
	interactive bool
}

func runCLI(t *testing.T, env *cliTestEnv, opts runOptions, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	tio := &testIO{
		Stdio:       iocli.NewStdioWith(strings.NewReader(opts.input), &out),
		interactive: opts.interactive,
	}

	cmd := New(tio, io.Discard).RootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--settings", env.settingsPath}, args...))

	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func mustRun(t *testing.T, env *cliTestEnv, args ...string) string {
	t.Helper()
	out, err := runCLI(t, env, runOptions{}, args...)
	require.NoError(t, err, "blackbook %s\n%s", strings.Join(args, " "), out)
	return out
}

// openStore открывает корень напрямую, чтобы проверить то, что записано на диск
func openStore(t *testing.T, root string) *records.Store {
	t.Helper()
	s, err := records.Open(context.Background(), records.Config{
		Root:   root,
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	require.NoError(t, err)
	return s
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}
