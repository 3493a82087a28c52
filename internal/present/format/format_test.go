package format

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mithrel/hanashi/pkg/api"
)

func sampleStory() api.Story {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return api.Story{
		ID:    "st1",
		Title: "The Lost Key",
		Chapters: []api.Chapter{{
			ID:   "ch1",
			Body: "She found a **rusty** key.",
			Vocabulary: []api.VocabEntry{
				{Word: "rusty", Meaning: "covered | with rust"},
			},
			Translation: "彼女は鍵を見つけた。",
			CreatedAt:   now,
		}},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestWritePlainSummaries(t *testing.T) {
	s := sampleStory()
	var buf bytes.Buffer
	require.NoError(t, WritePlainSummaries(&buf, []api.StorySummary{s.Summary()}, true))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "id"))
	assert.Contains(t, out, "st1")
	assert.Contains(t, out, "The Lost Key")

	t.Run("escapes embedded tabs and newlines", func(t *testing.T) {
		sum := s.Summary()
		sum.Title = "two\nlines\there"
		var buf bytes.Buffer
		require.NoError(t, WritePlainSummaries(&buf, []api.StorySummary{sum}, false))
		assert.Contains(t, buf.String(), `two\nlines\there`)
	})
}

func TestWritePlainChapter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WritePlainChapter(&buf, sampleStory(), 0))
	out := buf.String()
	assert.Contains(t, out, "The Lost Key (chapter 1/1)")
	assert.Contains(t, out, "She found a **rusty** key.")
	assert.Contains(t, out, "彼女は鍵を見つけた。")
}

func TestChapterMarkdown(t *testing.T) {
	md := ChapterMarkdown(sampleStory(), 0)
	assert.True(t, strings.HasPrefix(md, "# The Lost Key\n"))
	assert.Contains(t, md, "## 重要単語")
	assert.Contains(t, md, "## 日本語訳")
	assert.Contains(t, md, `covered \| with rust`, "pipes must not break the table")
}

func TestWriteJSONStoriesEmptyIsArray(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSONStories(&buf, nil, false))
	assert.Equal(t, "[]\n", buf.String())
}

func TestNDJSONOneObjectPerLine(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteNDJSONStories(&buf, []api.Story{sampleStory(), sampleStory()}))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 2)
	for _, l := range lines {
		assert.True(t, strings.HasPrefix(l, "{"))
	}
}
