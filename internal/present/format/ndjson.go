package format

import (
	"encoding/json"
	"io"

	"github.com/mithrel/hanashi/pkg/api"
)

// WriteNDJSONStories writes stories as newline-delimited JSON objects.
func WriteNDJSONStories(w io.Writer, stories []api.Story) error {
	enc := json.NewEncoder(w)
	for _, s := range stories {
		if err := enc.Encode(s); err != nil {
			return err
		}
	}
	return nil
}

// WriteNDJSONSummaries writes one summary per JSON line.
func WriteNDJSONSummaries(w io.Writer, sums []api.StorySummary) error {
	enc := json.NewEncoder(w)
	for _, s := range sums {
		if err := enc.Encode(s); err != nil {
			return err
		}
	}
	return nil
}
