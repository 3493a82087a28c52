package util

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mithrel/hanashi/pkg/api"
)

func TestScoreCompletions(t *testing.T) {
	candidates := []string{"The Lost Key", "A Quiet Morning", "Lost in Kyoto"}

	assert.Equal(t, candidates, ScoreCompletions("", candidates, 10))
	assert.Nil(t, ScoreCompletions("zzz", candidates, 10))

	got := ScoreCompletions("lost", candidates, 1)
	assert.Len(t, got, 1)
	assert.Contains(t, []string{"The Lost Key", "Lost in Kyoto"}, got[0])
}

func TestScoreStories(t *testing.T) {
	sums := []api.StorySummary{
		{ID: "1", Title: "The Lost Key"},
		{ID: "2", Title: "A Quiet Morning"},
	}
	got := ScoreStories("key", sums)
	assert.Len(t, got, 1)
	assert.Equal(t, "1", got[0].ID)

	assert.Equal(t, sums, ScoreStories("", sums))
}
