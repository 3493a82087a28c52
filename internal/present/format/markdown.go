package format

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"

	"github.com/mithrel/hanashi/pkg/api"
)

// ChapterMarkdown builds the markdown document for one chapter: header,
// body, glossary table, translation. The body and translation keep their
// inline emphasis markers; glamour interprets them for the terminal.
func ChapterMarkdown(s api.Story, idx int) string {
	ch := s.Chapters[idx]
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", s.Title)
	fmt.Fprintf(&b, "> **Chapter:** %d/%d | **Added:** %s\n\n---\n\n",
		idx+1, len(s.Chapters), ch.CreatedAt.Local().Format(time.RFC3339))
	b.WriteString(strings.TrimSpace(ch.Body))
	b.WriteString("\n")

	if len(ch.Vocabulary) > 0 {
		b.WriteString("\n## 重要単語\n\n| Word | Meaning |\n| --- | --- |\n")
		for _, v := range ch.Vocabulary {
			fmt.Fprintf(&b, "| %s | %s |\n", tableEsc(v.Word), tableEsc(v.Meaning))
		}
	}
	if strings.TrimSpace(ch.Translation) != "" {
		b.WriteString("\n## 日本語訳\n\n")
		b.WriteString(strings.TrimSpace(ch.Translation))
		b.WriteString("\n")
	}
	return b.String()
}

func tableEsc(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}

// WritePrettyChapter renders a chapter with markdown formatting using glamour.
func WritePrettyChapter(w io.Writer, s api.Story, idx int, style string, width int) error {
	if style == "" {
		style = "dracula"
	}
	if width <= 0 {
		width = 80
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return fmt.Errorf("failed to create renderer: %w", err)
	}
	out, err := r.Render(ChapterMarkdown(s, idx))
	if err != nil {
		return fmt.Errorf("failed to render markdown: %w", err)
	}
	_, err = io.WriteString(w, out)
	return err
}
