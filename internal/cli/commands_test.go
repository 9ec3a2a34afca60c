package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/blackbook/internal/models"
	"github.com/iudanet/blackbook/internal/storage"
)

func TestAddAndList(t *testing.T) {
	env := setupCLITestEnv(t)

	out := mustRun(t, env, "add", "Ada Lovelace")
	assert.Contains(t, out, "Created Ada Lovelace")
	mustRun(t, env, "add", "Charles Babbage")
	mustRun(t, env, "tag", "add", "Ada Lovelace", "Mentor")

	out = mustRun(t, env, "list")
	assert.Contains(t, out, "Ada Lovelace")
	assert.Contains(t, out, "Charles Babbage")
	assert.Contains(t, out, "2 of 2 record(s)")

	out = mustRun(t, env, "list", "MENTOR")
	assert.Contains(t, out, "Ada Lovelace")
	assert.NotContains(t, out, "Charles Babbage")

	out = mustRun(t, env, "list", "nobody")
	assert.Contains(t, out, "No records found.")
}

func TestAdd_Duplicate(t *testing.T) {
	env := setupCLITestEnv(t)
	mustRun(t, env, "add", "Jane Doe")

	_, err := runCLI(t, env, runOptions{}, "add", "jane   doe")
	assert.ErrorIs(t, err, storage.ErrDuplicateRecord)
}

func TestRecordNotFound(t *testing.T) {
	env := setupCLITestEnv(t)

	_, err := runCLI(t, env, runOptions{}, "note", "add", "Nobody", "text")
	assert.ErrorIs(t, err, storage.ErrRecordNotFound)
}

func TestProfileSet(t *testing.T) {
	env := setupCLITestEnv(t)
	mustRun(t, env, "add", "Ada Lovelace")

	out := mustRun(t, env, "profile", "set", "ada_lovelace", "hometown", "London")
	assert.Contains(t, out, `Hometown = "London"`)

	rec, err := openStore(t, env.root).Find("Ada Lovelace")
	require.NoError(t, err)
	assert.Equal(t, "London", rec.Profile[models.FieldHometown])

	_, err = runCLI(t, env, runOptions{}, "profile", "set", "ada_lovelace", "nickname", "Ada")
	assert.ErrorIs(t, err, storage.ErrUnknownField)
}

func TestEditCommands_Persist(t *testing.T) {
	env := setupCLITestEnv(t)
	mustRun(t, env, "add", "Ada Lovelace")

	mustRun(t, env, "note", "add", "Ada Lovelace", "Met Babbage in 1833")
	mustRun(t, env, "like", "add", "Ada Lovelace", "poetry")
	mustRun(t, env, "dislike", "add", "Ada Lovelace", "gambling debts")
	mustRun(t, env, "link", "set", "Ada Lovelace", "Twitter", "https://example.com/ada")
	mustRun(t, env, "link", "set", "Ada Lovelace", "Mastodon", "https://example.social/@ada")
	mustRun(t, env, "link", "rm", "Ada Lovelace", "Twitter")
	mustRun(t, env, "event", "add", "Ada Lovelace", "--date", "1815-12-10", "Birthday")
	mustRun(t, env, "tag", "add", "Ada Lovelace", "friend")
	mustRun(t, env, "tag", "add", "Ada Lovelace", "gym")
	mustRun(t, env, "tag", "rm", "Ada Lovelace", "GYM")

	rec, err := openStore(t, env.root).Find("ada_lovelace")
	require.NoError(t, err)

	assert.Equal(t, []string{"Met Babbage in 1833"}, rec.Notes)
	assert.Equal(t, []string{"poetry"}, rec.Preferences.Likes)
	assert.Equal(t, []string{"gambling debts"}, rec.Preferences.Dislikes)
	assert.Equal(t, models.Links{"Mastodon": "https://example.social/@ada"}, rec.Links)
	assert.Equal(t, []models.Event{{Date: models.NewDate(1815, 12, 10), Description: "Birthday"}}, rec.Events)
	assert.Equal(t, []string{"friend"}, rec.Tags)
}

func TestEditCommands_Errors(t *testing.T) {
	env := setupCLITestEnv(t)
	mustRun(t, env, "add", "Ada Lovelace")
	mustRun(t, env, "tag", "add", "Ada Lovelace", "friend")

	_, err := runCLI(t, env, runOptions{}, "tag", "add", "Ada Lovelace", "Friend")
	assert.ErrorIs(t, err, storage.ErrDuplicateTag)

	_, err = runCLI(t, env, runOptions{}, "tag", "rm", "Ada Lovelace", "enemy")
	assert.Error(t, err)

	_, err = runCLI(t, env, runOptions{}, "link", "rm", "Ada Lovelace", "Facebook")
	assert.Error(t, err)

	_, err = runCLI(t, env, runOptions{}, "note", "add", "Ada Lovelace", "   ")
	assert.Error(t, err)

	_, err = runCLI(t, env, runOptions{}, "event", "add", "Ada Lovelace", "--date", "10/12/1815")
	assert.Error(t, err)
}

func TestEventAdd_Defaults(t *testing.T) {
	env := setupCLITestEnv(t)
	mustRun(t, env, "add", "Ada Lovelace")

	out := mustRun(t, env, "event", "add", "Ada Lovelace")
	assert.Contains(t, out, models.DefaultEventDescription)

	rec, err := openStore(t, env.root).Find("Ada Lovelace")
	require.NoError(t, err)
	require.Len(t, rec.Events, 1)
	assert.False(t, rec.Events[0].Date.IsZero())
	assert.Equal(t, models.DefaultEventDescription, rec.Events[0].Description)
}

func TestShow(t *testing.T) {
	env := setupCLITestEnv(t)
	mustRun(t, env, "add", "Ada Lovelace")
	mustRun(t, env, "profile", "set", "Ada Lovelace", "Email Address", "ada@example.com")
	mustRun(t, env, "note", "add", "Ada Lovelace", "Wrote the first algorithm")
	mustRun(t, env, "link", "set", "Ada Lovelace", "Blog", "https://example.com")

	out := mustRun(t, env, "show", "ADA LOVELACE")
	assert.Contains(t, out, "=== Ada Lovelace ===")
	assert.Contains(t, out, "ada@example.com")
	assert.Contains(t, out, "Wrote the first algorithm")
	assert.Contains(t, out, "https://example.com")
	assert.Contains(t, out, "Likes: none")
	assert.Contains(t, out, "Important dates: none")
	assert.Contains(t, out, "Lewd/")
	assert.Contains(t, out, "Portrait: no")
}

func TestPortrait(t *testing.T) {
	env := setupCLITestEnv(t)
	mustRun(t, env, "add", "Ada Lovelace")

	src := filepath.Join(t.TempDir(), "ada.jpg")
	writeFile(t, src, "jpeg bytes")

	mustRun(t, env, "portrait", "Ada Lovelace", src)

	data, err := os.ReadFile(filepath.Join(env.root, "ada_lovelace", "photo.jpg"))
	require.NoError(t, err)
	assert.Equal(t, "jpeg bytes", string(data))

	out := mustRun(t, env, "show", "Ada Lovelace")
	assert.Contains(t, out, "Portrait: yes")

	// Путь к файлу можно ввести в ответ на запрос
	writeFile(t, src, "new jpeg")
	_, err = runCLI(t, env, runOptions{input: src + "\n"}, "portrait", "Ada Lovelace")
	require.NoError(t, err)
	data, err = os.ReadFile(filepath.Join(env.root, "ada_lovelace", "photo.jpg"))
	require.NoError(t, err)
	assert.Equal(t, "new jpeg", string(data))
}

func TestMediaAddAndList(t *testing.T) {
	env := setupCLITestEnv(t)
	mustRun(t, env, "add", "Ada Lovelace")

	srcDir := t.TempDir()
	a := filepath.Join(srcDir, "a.jpg")
	b := filepath.Join(srcDir, "b.jpg")
	writeFile(t, a, "aaa")
	writeFile(t, b, "bbbb")

	out := mustRun(t, env, "media", "add", "Ada Lovelace", "photos", a, b)
	assert.Equal(t, 2, strings.Count(out, "Added "))

	_, err := os.Stat(filepath.Join(env.root, "ada_lovelace", "Photos", "a.jpg"))
	require.NoError(t, err)

	out = mustRun(t, env, "media", "ls", "Ada Lovelace", "Photos")
	assert.Contains(t, out, "a.jpg")
	assert.Contains(t, out, "b.jpg")

	out = mustRun(t, env, "media", "ls", "Ada Lovelace", "videos")
	assert.Contains(t, out, "no files in videos")

	// Повторное добавление отклоняется политикой по умолчанию
	_, err = runCLI(t, env, runOptions{}, "media", "add", "Ada Lovelace", "photos", a)
	assert.ErrorIs(t, err, storage.ErrDuplicateFile)

	_, err = runCLI(t, env, runOptions{}, "media", "add", "Ada Lovelace", "music", a)
	assert.ErrorIs(t, err, storage.ErrUnknownBucket)
}

func TestMediaAdd_OverwritePolicy(t *testing.T) {
	env := setupCLITestEnv(t)
	writeSettings(t, env.settingsPath, map[string]any{
		"social_folder":          env.root,
		"media_duplicate_policy": "overwrite",
	})
	mustRun(t, env, "add", "Ada Lovelace")

	src := filepath.Join(t.TempDir(), "clip.mp4")
	writeFile(t, src, "v1")
	mustRun(t, env, "media", "add", "Ada Lovelace", "videos", src)

	writeFile(t, src, "v2")
	mustRun(t, env, "media", "add", "Ada Lovelace", "videos", src)

	data, err := os.ReadFile(filepath.Join(env.root, "ada_lovelace", "Videos", "clip.mp4"))
	require.NoError(t, err)
	assert.Equal(t, "v2", string(data))
}

func TestMediaAdd_PartialFailureKeepsCopiedFiles(t *testing.T) {
	env := setupCLITestEnv(t)
	mustRun(t, env, "add", "Ada Lovelace")

	good := filepath.Join(t.TempDir(), "good.jpg")
	writeFile(t, good, "ok")
	missing := filepath.Join(t.TempDir(), "missing.jpg")

	out, err := runCLI(t, env, runOptions{}, "media", "add", "Ada Lovelace", "private", good, missing)
	require.Error(t, err)
	assert.Contains(t, out, "Added ")

	_, statErr := os.Stat(filepath.Join(env.root, "ada_lovelace", "Lewd", "good.jpg"))
	assert.NoError(t, statErr)
}

func TestWarnings(t *testing.T) {
	env := setupCLITestEnv(t)

	out := mustRun(t, env, "warnings")
	assert.Contains(t, out, "No warnings.")

	writeFile(t, filepath.Join(env.root, "john_smith", "memories.json"), "{not json")
	writeFile(t, filepath.Join(env.root, "john_smith", "tags.json"), `["friend","gym"]`)

	out = mustRun(t, env, "warnings")
	assert.Contains(t, out, "john_smith")
	assert.Contains(t, out, string(models.DocumentNotes))

	// Остальные документы загружаются несмотря на ошибку
	out = mustRun(t, env, "list", "gym")
	assert.Contains(t, out, "John Smith")
}

func TestEditCommands_KeepBrokenDocuments(t *testing.T) {
	env := setupCLITestEnv(t)
	mustRun(t, env, "add", "Ada Lovelace")

	broken := `["first", "second",]`
	memories := filepath.Join(env.root, "ada_lovelace", "memories.json")
	writeFile(t, memories, broken)

	// Правка другого документа не трогает испорченный файл
	mustRun(t, env, "tag", "add", "Ada Lovelace", "x")
	data, err := os.ReadFile(memories)
	require.NoError(t, err)
	assert.Equal(t, broken, string(data))

	// Правка самого испорченного документа отклоняется
	_, err = runCLI(t, env, runOptions{}, "note", "add", "Ada Lovelace", "third")
	assert.ErrorIs(t, err, storage.ErrDocumentParse)
	data, err = os.ReadFile(memories)
	require.NoError(t, err)
	assert.Equal(t, broken, string(data))

	rec, err := openStore(t, env.root).Find("ada_lovelace")
	require.NoError(t, err)
	assert.Equal(t, []string{"x"}, rec.Tags)
}

func TestListDocumentCommands_SetAndRemove(t *testing.T) {
	env := setupCLITestEnv(t)
	mustRun(t, env, "add", "Ada Lovelace")
	mustRun(t, env, "note", "add", "Ada Lovelace", "one")
	mustRun(t, env, "note", "add", "Ada Lovelace", "two")
	mustRun(t, env, "like", "add", "Ada Lovelace", "tea")
	mustRun(t, env, "dislike", "add", "Ada Lovelace", "coffee")
	mustRun(t, env, "dislike", "add", "Ada Lovelace", "rain")

	// Номера в show совпадают с INDEX
	out := mustRun(t, env, "show", "Ada Lovelace")
	assert.Contains(t, out, "1. one")
	assert.Contains(t, out, "2. two")

	mustRun(t, env, "note", "set", "Ada Lovelace", "2", "second")
	mustRun(t, env, "note", "rm", "Ada Lovelace", "1")
	mustRun(t, env, "like", "set", "Ada Lovelace", "1", "green tea")
	mustRun(t, env, "dislike", "rm", "Ada Lovelace", "1")

	rec, err := openStore(t, env.root).Find("ada_lovelace")
	require.NoError(t, err)
	assert.Equal(t, []string{"second"}, rec.Notes)
	assert.Equal(t, []string{"green tea"}, rec.Preferences.Likes)
	assert.Equal(t, []string{"rain"}, rec.Preferences.Dislikes)
}

func TestListDocumentCommands_BadIndex(t *testing.T) {
	env := setupCLITestEnv(t)
	mustRun(t, env, "add", "Ada Lovelace")
	mustRun(t, env, "note", "add", "Ada Lovelace", "only")

	_, err := runCLI(t, env, runOptions{}, "note", "set", "Ada Lovelace", "2", "x")
	assert.ErrorIs(t, err, storage.ErrEntryNotFound)

	_, err = runCLI(t, env, runOptions{}, "like", "rm", "Ada Lovelace", "1")
	assert.ErrorIs(t, err, storage.ErrEntryNotFound)

	for _, index := range []string{"0", "-1", "first"} {
		_, err = runCLI(t, env, runOptions{}, "note", "rm", "Ada Lovelace", "--", index)
		assert.Error(t, err, index)
	}

	_, err = runCLI(t, env, runOptions{}, "note", "set", "Ada Lovelace", "1", "  ")
	assert.Error(t, err)

	rec, err := openStore(t, env.root).Find("ada_lovelace")
	require.NoError(t, err)
	assert.Equal(t, []string{"only"}, rec.Notes)
}

func TestEventCommands_SetAndRemove(t *testing.T) {
	env := setupCLITestEnv(t)
	mustRun(t, env, "add", "Ada Lovelace")
	mustRun(t, env, "event", "add", "Ada Lovelace", "--date", "1815-12-10", "Birthday")
	mustRun(t, env, "event", "add", "Ada Lovelace", "--date", "1835-07-08", "Wedding")

	mustRun(t, env, "event", "set", "Ada Lovelace", "1", "--date", "1815-12-11")
	mustRun(t, env, "event", "set", "Ada Lovelace", "2", "Married William King")

	rec, err := openStore(t, env.root).Find("ada_lovelace")
	require.NoError(t, err)
	assert.Equal(t, []models.Event{
		{Date: models.NewDate(1815, 12, 11), Description: "Birthday"},
		{Date: models.NewDate(1835, 7, 8), Description: "Married William King"},
	}, rec.Events)

	mustRun(t, env, "event", "rm", "Ada Lovelace", "1")
	rec, err = openStore(t, env.root).Find("ada_lovelace")
	require.NoError(t, err)
	assert.Equal(t, []models.Event{{Date: models.NewDate(1835, 7, 8), Description: "Married William King"}}, rec.Events)

	_, err = runCLI(t, env, runOptions{}, "event", "rm", "Ada Lovelace", "5")
	assert.ErrorIs(t, err, storage.ErrEntryNotFound)

	// Без даты и описания менять нечего
	_, err = runCLI(t, env, runOptions{}, "event", "set", "Ada Lovelace", "1")
	assert.Error(t, err)

	_, err = runCLI(t, env, runOptions{}, "event", "set", "Ada Lovelace", "1", "--date", "1835-02-30")
	assert.Error(t, err)
}
