package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/blackbook/internal/storage"
	"github.com/iudanet/blackbook/internal/storage/boltdb"
)

func TestRootCommand_Help(t *testing.T) {
	env := setupCLITestEnv(t)

	out := mustRun(t, env)
	assert.Contains(t, out, "blackbook")
	assert.Contains(t, out, "media")
}

func TestInit_WritesSocialFolderAndKeepsOtherKeys(t *testing.T) {
	env := setupCLITestEnv(t)
	target := filepath.Join(t.TempDir(), "new", "root")

	out := mustRun(t, env, "init", target)
	assert.Contains(t, out, "Social folder set to "+target)

	info, err := os.Stat(target)
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	values := readSettings(t, env.settingsPath)
	assert.Equal(t, target, values["social_folder"])
	assert.Equal(t, "tester", values["user_name"])
}

func TestInit_Prompt(t *testing.T) {
	env := setupCLITestEnv(t)
	target := t.TempDir()

	_, err := runCLI(t, env, runOptions{input: target + "\n"}, "init")
	require.NoError(t, err)
	assert.Equal(t, target, readSettings(t, env.settingsPath)["social_folder"])
}

func TestStore_NotConfigured(t *testing.T) {
	env := setupCLITestEnv(t)
	writeSettings(t, env.settingsPath, map[string]any{"social_folder": ""})

	_, err := runCLI(t, env, runOptions{}, "list")
	assert.ErrorIs(t, err, storage.ErrConfiguration)
}

func TestStore_MissingRoot(t *testing.T) {
	env := setupCLITestEnv(t)
	require.NoError(t, os.RemoveAll(env.root))

	_, err := runCLI(t, env, runOptions{}, "list")
	assert.ErrorIs(t, err, storage.ErrConfiguration)
}

func TestStore_InteractiveFirstRunPersistsFolder(t *testing.T) {
	env := setupCLITestEnv(t)
	writeSettings(t, env.settingsPath, map[string]any{"volume": 0.5})

	out, err := runCLI(t, env, runOptions{input: env.root + "\n", interactive: true}, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Select the social folder")
	assert.Contains(t, out, "No records found.")

	values := readSettings(t, env.settingsPath)
	assert.Equal(t, env.root, values["social_folder"])
	assert.Equal(t, 0.5, values["volume"])
}

func TestStore_InteractiveBadAnswer(t *testing.T) {
	env := setupCLITestEnv(t)
	writeSettings(t, env.settingsPath, map[string]any{})

	_, err := runCLI(t, env, runOptions{input: "\n", interactive: true}, "list")
	assert.ErrorIs(t, err, storage.ErrConfiguration)
}

func TestStore_RootFlagOverridesSettings(t *testing.T) {
	env := setupCLITestEnv(t)
	other := t.TempDir()

	mustRun(t, env, "--root", other, "add", "Grace Hopper")

	_, err := os.Stat(filepath.Join(other, "grace_hopper"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(env.root, "grace_hopper"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestStore_CatalogCreatedInRoot(t *testing.T) {
	env := setupCLITestEnv(t)
	mustRun(t, env, "add", "Ada Lovelace")

	_, err := os.Stat(filepath.Join(env.root, boltdb.FileName))
	assert.NoError(t, err)

	// Каталог хранит точное имя, поэтому show выводит ID
	out := mustRun(t, env, "show", "ada_lovelace")
	assert.Contains(t, out, "=== Ada Lovelace ===")
	assert.Contains(t, out, "ID:")
}

func TestProfileField(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "Full Name", want: "Full Name"},
		{in: "full-name", want: "Full Name"},
		{in: "FULL_NAME", want: "Full Name"},
		{in: "date_of_birth", want: "Date of Birth"},
		{in: "phone number", want: "Phone Number"},
		{in: "nickname", want: "nickname"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, profileField(tt.in))
		})
	}
}

func TestRenderTable(t *testing.T) {
	out := renderTable([]string{"Name", "Size"}, [][]string{{"a.jpg", "3 kB"}, {"b.jpg"}}, []columnAlignment{alignLeft, alignRight})
	// Регистр заголовков сохраняется
	assert.Contains(t, out, "Name")
	assert.NotContains(t, out, "NAME")
	assert.Contains(t, out, "a.jpg")
	assert.Contains(t, out, "b.jpg")

	assert.Empty(t, renderTable(nil, nil, nil))
}
