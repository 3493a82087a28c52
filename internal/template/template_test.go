package template

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mithrel/hanashi/pkg/api"
)

const fullTemplate = `### 1. Title: The Lost Key
### 2. English Short Story
She found a **rusty** key.
### 3. 重要単語ピックアップ
* **rusty**: covered with rust
### 4. 日本語訳
彼女は錆びた鍵を見つけた。
`

func TestParse_FullTemplate(t *testing.T) {
	ch, err := Parse(fullTemplate)
	require.NoError(t, err)

	assert.Equal(t, "The Lost Key", ch.Title)
	assert.Equal(t, "She found a **rusty** key.", ch.Body)
	assert.Equal(t, []api.VocabEntry{{Word: "rusty", Meaning: "covered with rust"}}, ch.Vocabulary)
	assert.Equal(t, "彼女は錆びた鍵を見つけた。", ch.Translation)
}

func TestParse_TitleVariants(t *testing.T) {
	t.Run("inline without label", func(t *testing.T) {
		ch, err := Parse("### 1. The Lost Key\n### 2. Story\nBody.\n")
		require.NoError(t, err)
		assert.Equal(t, "The Lost Key", ch.Title)
	})

	t.Run("full-width colon label", func(t *testing.T) {
		ch, err := Parse("### 1. Title：The Lost Key\n### 2. Story\nBody.\n")
		require.NoError(t, err)
		assert.Equal(t, "The Lost Key", ch.Title)
	})

	t.Run("title on following line", func(t *testing.T) {
		ch, err := Parse("### 1.\n\nThe Lost Key\nIgnored second line\n### 2. Story\nBody.\n")
		require.NoError(t, err)
		assert.Equal(t, "The Lost Key", ch.Title, "only the first non-blank line counts")
	})

	t.Run("two-hash headings", func(t *testing.T) {
		ch, err := Parse("## 1. Title: Short\n## 2. Story\nBody.\n")
		require.NoError(t, err)
		assert.Equal(t, "Short", ch.Title)
	})
}

func TestParse_BodyPreservesStructure(t *testing.T) {
	in := "### 1. T\n### 2. Story\nFirst line.\n\nSecond paragraph.\n### 4. 日本語訳\n訳\n"
	ch, err := Parse(in)
	require.NoError(t, err)
	assert.Equal(t, "First line.\n\nSecond paragraph.", ch.Body, "internal blank lines survive; edges are trimmed")
}

func TestParse_Vocabulary(t *testing.T) {
	t.Run("bullet styles and separators", func(t *testing.T) {
		in := strings.Join([]string{
			"### 1. T",
			"### 2. S",
			"Body.",
			"### 3. 重要単語ピックアップ",
			"* **one**: first",
			"- **two** ： second",
			"**three**:third",
		}, "\n")
		ch, err := Parse(in)
		require.NoError(t, err)
		assert.Equal(t, []api.VocabEntry{
			{Word: "one", Meaning: "first"},
			{Word: "two", Meaning: "second"},
			{Word: "three", Meaning: "third"},
		}, ch.Vocabulary)
	})

	t.Run("non-conforming lines are skipped silently", func(t *testing.T) {
		in := "### 1. T\n### 2. S\nBody.\n### 3. 重要単語\nnot a bullet\n* plain bullet without bold\n"
		ch, err := Parse(in)
		require.NoError(t, err)
		assert.Empty(t, ch.Vocabulary)
	})

	t.Run("duplicates are preserved", func(t *testing.T) {
		in := "### 1. T\n### 2. S\nBody.\n### 3. 重要単語\n* **x**: a\n* **x**: a\n"
		ch, err := Parse(in)
		require.NoError(t, err)
		assert.Len(t, ch.Vocabulary, 2)
	})

	t.Run("keyword heading without number forces vocabulary", func(t *testing.T) {
		in := "### 1. T\n### 2. S\nBody.\n## 重要単語ピックアップ\n* **w**: m\n"
		ch, err := Parse(in)
		require.NoError(t, err)
		assert.Equal(t, []api.VocabEntry{{Word: "w", Meaning: "m"}}, ch.Vocabulary)
	})
}

func TestParse_Translation(t *testing.T) {
	t.Run("keyword heading without number forces translation", func(t *testing.T) {
		in := "### 1. T\n### 2. S\nBody.\n## 日本語訳はこちら\n訳文です。\n"
		ch, err := Parse(in)
		require.NoError(t, err)
		assert.Equal(t, "訳文です。", ch.Translation)
	})

	t.Run("embedded heading becomes bold sub-title", func(t *testing.T) {
		in := "### 1. T\n### 2. S\nBody.\n### 4. 日本語訳\n### Title: 失われた鍵\n彼女は鍵を見つけた。\n"
		ch, err := Parse(in)
		require.NoError(t, err)
		assert.Equal(t, "**失われた鍵**\n\n彼女は鍵を見つけた。", ch.Translation)
	})
}

func TestParse_Rejections(t *testing.T) {
	cases := []struct {
		name string
		in   string
	}{
		{"empty input", ""},
		{"missing body section", "### 1. Title: X\n### 3. 重要単語\n* **a**: b\n"},
		{"missing title", "### 2. Story\nBody text.\n"},
		{"body section present but blank", "### 1. T\n### 2. Story\n\n\n### 4. 日本語訳\n訳\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ch, err := Parse(tc.in)
			assert.ErrorIs(t, err, ErrMalformedTemplate)
			assert.Zero(t, ch, "rejection never carries a partial chapter")
		})
	}
}

func TestParse_UnknownSectionNumberIgnored(t *testing.T) {
	in := "### 1. T\n### 2. S\nfirst\n### 5. Bonus\nstill body\n"
	ch, err := Parse(in)
	require.NoError(t, err)
	assert.Equal(t, "first\nstill body", ch.Body, "unknown numbers keep the current section and drop the heading line")
}

func TestParse_MinimalTemplate(t *testing.T) {
	ch, err := Parse("### 1. Title: Only\n### 2. Story\nJust a body.\n")
	require.NoError(t, err)
	assert.Empty(t, ch.Vocabulary)
	assert.Empty(t, ch.Translation)
}

func TestParse_CRLFInput(t *testing.T) {
	ch, err := Parse("### 1. T\r\n### 2. S\r\nline one\r\nline two\r\n")
	require.NoError(t, err)
	assert.Equal(t, "line one\nline two", ch.Body)
}
