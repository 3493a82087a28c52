package format

import (
	"encoding/json"
	"io"

	"github.com/mithrel/hanashi/pkg/api"
)

func WriteJSONSummaries(w io.Writer, sums []api.StorySummary, indent bool) error {
	enc := json.NewEncoder(w)
	if indent {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(sums)
}

func WriteJSONStory(w io.Writer, s api.Story, indent bool) error {
	enc := json.NewEncoder(w)
	if indent {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(s)
}

// WriteJSONStories writes the full collection as one JSON array; this is
// the export/import interchange format.
func WriteJSONStories(w io.Writer, stories []api.Story, indent bool) error {
	enc := json.NewEncoder(w)
	if indent {
		enc.SetIndent("", "  ")
	}
	if stories == nil {
		stories = []api.Story{}
	}
	return enc.Encode(stories)
}
