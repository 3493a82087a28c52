package main

import (
	"encoding/json"
	"fmt"
	mrand "math/rand"
	"os"
	"time"
)

// Emits a sample story collection on stdout in the interchange schema,
// suitable for `hanashi-cli import -f`.

type VocabEntry struct {
	Word    string `json:"word"`
	Meaning string `json:"meaning"`
}

type Chapter struct {
	ID          string       `json:"id"`
	Body        string       `json:"body"`
	Vocabulary  []VocabEntry `json:"vocabulary"`
	Translation string       `json:"translation"`
	CreatedAt   time.Time    `json:"created_at"`
}

type Story struct {
	ID        string    `json:"id,omitempty"`
	Title     string    `json:"title"`
	Chapters  []Chapter `json:"chapters"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

var words = []VocabEntry{
	{"rusty", "錆びた"},
	{"lantern", "ランタン"},
	{"harbor", "港"},
	{"whisper", "ささやき"},
	{"threshold", "敷居"},
	{"ember", "残り火"},
}

func main() {
	// Deterministic seed for reproducible output
	mr := mrand.New(mrand.NewSource(42))

	const total = 25
	out := make([]Story, 0, total)
	base := time.Now().UTC()

	for i := 0; i < total; i++ {
		// Stagger timestamps backwards to look natural
		created := base.Add(-time.Duration(90*i+mr.Intn(60)) * time.Minute)

		nch := 1 + mr.Intn(3)
		chapters := make([]Chapter, 0, nch)
		for c := 0; c < nch; c++ {
			vocab := sampleVocab(mr, 1+mr.Intn(3))
			chapters = append(chapters, Chapter{
				Body: fmt.Sprintf("Chapter %d of sample story %03d.\n\nShe carried a **%s** through the *quiet* streets.\n",
					c+1, i+1, vocab[0].Word),
				Vocabulary:  vocab,
				Translation: fmt.Sprintf("サンプル物語%03dの第%d章。\n", i+1, c+1),
				CreatedAt:   created.Add(time.Duration(c) * time.Hour),
			})
		}

		out = append(out, Story{
			Title:     fmt.Sprintf("Sample Story %03d", i+1),
			Chapters:  chapters,
			CreatedAt: created,
			UpdatedAt: created.Add(time.Duration(nch-1) * time.Hour),
		})
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		panic(err)
	}
}

func sampleVocab(r *mrand.Rand, k int) []VocabEntry {
	if k >= len(words) {
		k = len(words)
	}
	idx := r.Perm(len(words))[:k]
	out := make([]VocabEntry, k)
	for i, j := range idx {
		out[i] = words[j]
	}
	return out
}
