package api

import "time"

// VocabEntry is a single glossary item: a source-language word and its meaning.
type VocabEntry struct {
	Word    string `json:"word"`
	Meaning string `json:"meaning"`
}

// Chapter is one persisted unit of story content. Chapters are immutable
// once created; they only go away when their owning story is deleted.
type Chapter struct {
	ID          string       `json:"id"`
	Body        string       `json:"body"`
	Vocabulary  []VocabEntry `json:"vocabulary"`
	Translation string       `json:"translation,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
}

// Story is a titled, ordered sequence of chapters. Chapter order is reading
// order; a story always has at least one chapter once created.
//
// These JSON tags are the export/import interchange schema and must stay
// stable across versions for backup/restore compatibility.
type Story struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Chapters  []Chapter `json:"chapters"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// StorySummary is the listing projection: everything but chapter contents.
type StorySummary struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Chapters  int       `json:"chapters"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Summary projects a story onto its listing form.
func (s Story) Summary() StorySummary {
	return StorySummary{
		ID:        s.ID,
		Title:     s.Title,
		Chapters:  len(s.Chapters),
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}
