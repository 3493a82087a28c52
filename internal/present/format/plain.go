package format

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/mithrel/hanashi/pkg/api"
)

// TSV columns: id, title, chapters, updated_unix_ms
var headerLine = "id\ttitle\tchapters\tupdated_unix_ms\n"

func esc(field string) string {
	field = strings.ReplaceAll(field, "\t", "\\t")
	field = strings.ReplaceAll(field, "\n", "\\n")
	return field
}

func WritePlainSummaries(w io.Writer, sums []api.StorySummary, headers bool) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if headers {
		_, _ = io.WriteString(tw, headerLine)
	}
	for _, s := range sums {
		ms := s.UpdatedAt.UnixNano() / int64(time.Millisecond)
		line := fmt.Sprintf("%s\t%s\t%d\t%d\n", esc(s.ID), esc(s.Title), s.Chapters, ms)
		_, _ = io.WriteString(tw, line)
	}
	return tw.Flush()
}

// WritePlainChapter emits one chapter as raw text: body, then glossary
// lines, then translation, separated by blank lines.
func WritePlainChapter(w io.Writer, s api.Story, idx int) error {
	ch := s.Chapters[idx]
	var b strings.Builder
	fmt.Fprintf(&b, "%s (chapter %d/%d)\n\n", s.Title, idx+1, len(s.Chapters))
	b.WriteString(strings.TrimSpace(ch.Body))
	b.WriteString("\n")
	if len(ch.Vocabulary) > 0 {
		b.WriteString("\n")
		for _, v := range ch.Vocabulary {
			fmt.Fprintf(&b, "%s\t%s\n", esc(v.Word), esc(v.Meaning))
		}
	}
	if strings.TrimSpace(ch.Translation) != "" {
		b.WriteString("\n")
		b.WriteString(strings.TrimSpace(ch.Translation))
		b.WriteString("\n")
	}
	_, err := io.WriteString(w, b.String())
	return err
}
