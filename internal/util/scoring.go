package util

import (
	"github.com/sahilm/fuzzy"

	"github.com/mithrel/hanashi/pkg/api"
)

// ScoreCompletions returns the top N matches for the input string from the
// candidates list. Used for shell completion of story IDs and titles.
func ScoreCompletions(input string, candidates []string, n int) []string {
	if input == "" {
		return candidates
	}
	matches := fuzzy.Find(input, candidates)
	if len(matches) == 0 {
		return nil
	}

	limit := n
	if n <= 0 || len(matches) < limit {
		limit = len(matches)
	}

	out := make([]string, limit)
	for i := 0; i < limit; i++ {
		out[i] = matches[i].Str
	}
	return out
}

// ScoreStories ranks story summaries by fuzzy title match. Fallback for
// searches that miss the full-text index.
func ScoreStories(input string, sums []api.StorySummary) []api.StorySummary {
	if input == "" {
		return sums
	}
	titles := make([]string, len(sums))
	for i, s := range sums {
		titles[i] = s.Title
	}
	matches := fuzzy.Find(input, titles)
	out := make([]api.StorySummary, 0, len(matches))
	for _, m := range matches {
		out = append(out, sums[m.Index])
	}
	return out
}
