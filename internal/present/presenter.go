package present

import (
	"context"
	"fmt"
	"io"

	"github.com/mithrel/hanashi/internal/present/format"
	"github.com/mithrel/hanashi/internal/ui"
	"github.com/mithrel/hanashi/pkg/api"
)

type Mode int

const (
	ModePlain Mode = iota
	ModePretty
	ModeJSON
	ModeNDJSON
	ModeTUI
)

type Options struct {
	Mode       Mode
	JSONIndent bool
	Headers    bool
	Style      string // glamour style for pretty output
	Width      int    // word-wrap width for pretty output
}

// ParseMode parses a string like "plain", "pretty", "json", "ndjson", "tui".
func ParseMode(s string) (Mode, bool) {
	switch s {
	case "plain":
		return ModePlain, true
	case "pretty":
		return ModePretty, true
	case "json":
		return ModeJSON, true
	case "ndjson":
		return ModeNDJSON, true
	case "tui":
		return ModeTUI, true
	default:
		return ModePlain, false
	}
}

// RenderSummaries renders the story list according to options.
func RenderSummaries(ctx context.Context, w io.Writer, sums []api.StorySummary, opts Options) error {
	switch opts.Mode {
	case ModeJSON:
		return format.WriteJSONSummaries(w, sums, opts.JSONIndent)
	case ModeNDJSON:
		return format.WriteNDJSONSummaries(w, sums)
	case ModeTUI:
		return ui.RenderStoriesTable(ctx, sums)
	default:
		return format.WritePlainSummaries(w, sums, opts.Headers)
	}
}

// RenderChapter renders one chapter of a story according to options.
func RenderChapter(ctx context.Context, w io.Writer, s api.Story, idx int, opts Options) error {
	if idx < 0 || idx >= len(s.Chapters) {
		return fmt.Errorf("chapter %d out of range (story has %d)", idx+1, len(s.Chapters))
	}
	switch opts.Mode {
	case ModeJSON:
		return format.WriteJSONStory(w, s, opts.JSONIndent)
	case ModePretty:
		return format.WritePrettyChapter(w, s, idx, opts.Style, opts.Width)
	default:
		return format.WritePlainChapter(w, s, idx)
	}
}
