package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mithrel/hanashi/pkg/api"
)

const addTemplate = `### 1. Title: The Lost Key
### 2. English Short Story
She found a **rusty** key.

It opened *nothing*.
### 3. 重要単語ピックアップ
* **rusty**: covered with rust
### 4. 日本語訳
彼女は錆びた鍵を見つけた。
`

// writeTestConfig points the CLI at an isolated data dir and returns the
// config path. Every invocation reopens the same sqlite file, so state
// persists across commands like it does for a real user.
func writeTestConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	cfg := filepath.Join(dir, "config.toml")
	content := `data_dir = "` + strings.ReplaceAll(dir, "\\", "\\\\") + `"
`
	require.NoError(t, os.WriteFile(cfg, []byte(content), 0o600))
	return cfg
}

func runCLI(t *testing.T, cfgPath, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--config", cfgPath}, args...))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func addStory(t *testing.T, cfg string) string {
	t.Helper()
	out, err := runCLI(t, cfg, addTemplate, "story", "add")
	require.NoError(t, err)
	fields := strings.SplitN(strings.TrimSpace(out), "\t", 2)
	require.Len(t, fields, 2)
	require.Equal(t, "The Lost Key", fields[1])
	return fields[0]
}

func TestStoryAddAndShow(t *testing.T) {
	cfg := writeTestConfig(t)
	id := addStory(t, cfg)

	out, err := runCLI(t, cfg, "", "story", "show", id, "--output", "plain")
	require.NoError(t, err)
	assert.Contains(t, out, "The Lost Key")
	assert.Contains(t, out, "She found a **rusty** key.")
	assert.Contains(t, out, "covered with rust")

	t.Run("json output", func(t *testing.T) {
		out, err := runCLI(t, cfg, "", "story", "show", id, "--output", "json")
		require.NoError(t, err)
		var st api.Story
		require.NoError(t, json.Unmarshal([]byte(out), &st))
		assert.Equal(t, id, st.ID)
		require.Len(t, st.Chapters, 1)
		assert.Equal(t, "彼女は錆びた鍵を見つけた。", st.Chapters[0].Translation)
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := runCLI(t, cfg, "", "story", "show", "missing", "--output", "plain")
		assert.Error(t, err)
	})
}

func TestStoryAddRejectsMalformed(t *testing.T) {
	cfg := writeTestConfig(t)
	_, err := runCLI(t, cfg, "no sections here", "story", "add")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "numbered sections")

	_, err = runCLI(t, cfg, "", "story", "add")
	assert.Error(t, err, "empty stdin is refused before parsing")
}

func TestStoryAddAppendsChapter(t *testing.T) {
	cfg := writeTestConfig(t)
	id := addStory(t, cfg)

	next := "### 1. Title: ignored\n### 2. Story\nA second chapter.\n### 4. 日本語訳\n二章。\n"
	out, err := runCLI(t, cfg, next, "story", "add", "--story", id)
	require.NoError(t, err)
	assert.Contains(t, out, "chapter 2")

	out, err = runCLI(t, cfg, "", "story", "show", id, "--chapter", "2", "--output", "plain")
	require.NoError(t, err)
	assert.Contains(t, out, "A second chapter.")
}

func TestStoryList(t *testing.T) {
	cfg := writeTestConfig(t)
	id := addStory(t, cfg)

	out, err := runCLI(t, cfg, "", "story", "list", "--output", "plain")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "id"), "header row first")
	assert.Contains(t, out, "updated_unix_ms")
	assert.Contains(t, out, id)

	t.Run("noheaders", func(t *testing.T) {
		out, err := runCLI(t, cfg, "", "story", "list", "--output", "plain", "--noheaders")
		require.NoError(t, err)
		assert.NotContains(t, out, "updated_unix_ms")
	})

	t.Run("json", func(t *testing.T) {
		out, err := runCLI(t, cfg, "", "story", "list", "--output", "json")
		require.NoError(t, err)
		var sums []api.StorySummary
		require.NoError(t, json.Unmarshal([]byte(out), &sums))
		require.Len(t, sums, 1)
		assert.Equal(t, 1, sums[0].Chapters)
	})

	t.Run("invalid output mode", func(t *testing.T) {
		_, err := runCLI(t, cfg, "", "story", "list", "--output", "bogus")
		assert.Error(t, err)
	})
}

func TestStorySearch(t *testing.T) {
	cfg := writeTestConfig(t)
	id := addStory(t, cfg)

	out, err := runCLI(t, cfg, "", "story", "search", "rusty")
	require.NoError(t, err)
	assert.Contains(t, out, id)
	assert.Contains(t, out, "ch.1")

	t.Run("fuzzy title fallback", func(t *testing.T) {
		out, err := runCLI(t, cfg, "", "story", "search", "lostkey")
		require.NoError(t, err)
		assert.Contains(t, out, id)
	})
}

func TestStoryDelete(t *testing.T) {
	cfg := writeTestConfig(t)
	id := addStory(t, cfg)

	out, err := runCLI(t, cfg, "", "story", "delete", id)
	require.NoError(t, err)
	assert.Contains(t, out, "deleted")

	out, err = runCLI(t, cfg, "", "story", "list", "--output", "plain", "--noheaders")
	require.NoError(t, err)
	assert.Empty(t, strings.TrimSpace(out))

	t.Run("bulk delete needs --yes off a tty", func(t *testing.T) {
		a := addStory(t, cfg)
		b := addStory(t, cfg)

		_, err := runCLI(t, cfg, "", "story", "delete", a, b)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "--yes")

		out, err := runCLI(t, cfg, "", "story", "delete", a, b, "--yes")
		require.NoError(t, err)
		assert.Contains(t, out, "Deleted 2 stories")
	})
}

func TestExportImportRoundTrip(t *testing.T) {
	cfgA := writeTestConfig(t)
	id := addStory(t, cfgA)

	dump := filepath.Join(t.TempDir(), "dump.json")
	_, err := runCLI(t, cfgA, "", "export", "-o", dump)
	require.NoError(t, err)

	cfgB := writeTestConfig(t)
	out, err := runCLI(t, cfgB, "", "import", "-f", dump)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported: 1")

	out, err = runCLI(t, cfgB, "", "story", "show", id, "--output", "json")
	require.NoError(t, err)
	var st api.Story
	require.NoError(t, json.Unmarshal([]byte(out), &st))
	assert.Equal(t, "The Lost Key", st.Title)

	t.Run("reimport skips conflicts", func(t *testing.T) {
		out, err := runCLI(t, cfgB, "", "import", "-f", dump)
		require.NoError(t, err)
		assert.Contains(t, out, "Imported: 0")
		assert.Contains(t, out, "Skipped (conflict): 1")
	})

	t.Run("replace restores wholesale", func(t *testing.T) {
		out, err := runCLI(t, cfgB, "", "import", "-f", dump, "--replace")
		require.NoError(t, err)
		assert.Contains(t, out, "Restored 1 stories")
	})
}

func TestConfigCommands(t *testing.T) {
	cfg := writeTestConfig(t)

	out, err := runCLI(t, cfg, "", "config", "path")
	require.NoError(t, err)
	assert.Contains(t, out, "config.toml")

	dest := filepath.Join(t.TempDir(), "generated.toml")
	out, err = runCLI(t, cfg, "", "config", "generate", "-o", dest)
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote "+dest)
	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Contains(t, string(data), "data_dir")

	t.Run("refuses overwrite without flag", func(t *testing.T) {
		_, err := runCLI(t, cfg, "", "config", "generate", "-o", dest)
		assert.Error(t, err)
	})

	t.Run("overwrite keeps a backup", func(t *testing.T) {
		_, err := runCLI(t, cfg, "", "config", "generate", "-o", dest, "--overwrite")
		require.NoError(t, err)
		_, err = os.Stat(dest + ".bak")
		assert.NoError(t, err)
	})
}
