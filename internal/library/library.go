// Package library composes the template parser with the store: it is the
// import path from raw pasted text to a persisted story.
package library

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mithrel/hanashi/internal/db"
	"github.com/mithrel/hanashi/internal/template"
	"github.com/mithrel/hanashi/pkg/api"
)

// Library is a higher-level façade over the store.
type Library struct {
	store db.Store
	now   func() time.Time
}

func New(store db.Store) *Library {
	return &Library{store: store, now: time.Now}
}

// chapterFrom materializes a parsed chapter with identity and timestamp.
func chapterFrom(p template.Chapter, now time.Time) api.Chapter {
	return api.Chapter{
		ID:          api.NewID(),
		Body:        p.Body,
		Vocabulary:  p.Vocabulary,
		Translation: p.Translation,
		CreatedAt:   now.UTC(),
	}
}

// ImportStory parses raw template text and creates a new story with its
// first chapter in one transaction. The parser's rejection passes through
// unchanged so callers can show the format hint.
func (l *Library) ImportStory(ctx context.Context, raw string) (api.Story, error) {
	parsed, err := template.Parse(raw)
	if err != nil {
		return api.Story{}, err
	}
	now := l.now().UTC()
	st := api.Story{
		ID:        api.NewID(),
		Title:     parsed.Title,
		Chapters:  []api.Chapter{chapterFrom(parsed, now)},
		CreatedAt: now,
		UpdatedAt: now,
	}
	return l.store.CreateStory(ctx, st)
}

// AppendChapter parses raw template text and appends the chapter to an
// existing story. The parsed title is ignored; the story keeps its own.
func (l *Library) AppendChapter(ctx context.Context, storyID, raw string) (api.Story, error) {
	parsed, err := template.Parse(raw)
	if err != nil {
		return api.Story{}, err
	}
	return l.store.AppendChapter(ctx, storyID, chapterFrom(parsed, l.now()))
}

func (l *Library) Get(ctx context.Context, id string) (api.Story, error) {
	return l.store.GetStory(ctx, id)
}

func (l *Library) List(ctx context.Context, limit int) ([]api.StorySummary, error) {
	return l.store.ListStories(ctx, limit)
}

func (l *Library) Delete(ctx context.Context, id string) error {
	return l.store.DeleteStory(ctx, id)
}

func (l *Library) Search(ctx context.Context, query string, limit int) ([]db.SearchHit, error) {
	return l.store.Search(ctx, query, limit)
}

// Export returns the full collection in interchange order.
func (l *Library) Export(ctx context.Context) ([]api.Story, error) {
	return l.store.ExportAll(ctx)
}

// Restore replaces the whole collection with the given stories after
// normalizing them: missing IDs and timestamps are filled in, and stories
// without a title or without chapters are refused.
func (l *Library) Restore(ctx context.Context, stories []api.Story) error {
	now := l.now().UTC()
	for i := range stories {
		if strings.TrimSpace(stories[i].Title) == "" {
			return fmt.Errorf("story %d: missing title", i)
		}
		if len(stories[i].Chapters) == 0 {
			return fmt.Errorf("story %q: no chapters", stories[i].Title)
		}
		if stories[i].ID == "" {
			stories[i].ID = api.NewID()
		}
		if stories[i].CreatedAt.IsZero() {
			stories[i].CreatedAt = now
		}
		if stories[i].UpdatedAt.IsZero() {
			stories[i].UpdatedAt = stories[i].CreatedAt
		}
		for j := range stories[i].Chapters {
			ch := &stories[i].Chapters[j]
			if strings.TrimSpace(ch.Body) == "" {
				return fmt.Errorf("story %q: chapter %d has an empty body", stories[i].Title, j+1)
			}
			if ch.ID == "" {
				ch.ID = api.NewID()
			}
			if ch.CreatedAt.IsZero() {
				ch.CreatedAt = stories[i].CreatedAt
			}
		}
	}
	return l.store.ReplaceAll(ctx, stories)
}

// Add creates stories additively (used by non-replacing import). Stories
// whose ID already exists are skipped; other failures abort with the story
// title for context.
func (l *Library) Add(ctx context.Context, stories []api.Story) (int, error) {
	added := 0
	for i := range stories {
		st := stories[i]
		if strings.TrimSpace(st.Title) == "" || len(st.Chapters) == 0 {
			return added, fmt.Errorf("story %d: missing title or chapters", i)
		}
		if st.ID == "" {
			st.ID = api.NewID()
		}
		now := l.now().UTC()
		if st.CreatedAt.IsZero() {
			st.CreatedAt = now
		}
		if st.UpdatedAt.IsZero() {
			st.UpdatedAt = st.CreatedAt
		}
		for j := range st.Chapters {
			if st.Chapters[j].ID == "" {
				st.Chapters[j].ID = api.NewID()
			}
			if st.Chapters[j].CreatedAt.IsZero() {
				st.Chapters[j].CreatedAt = st.CreatedAt
			}
		}
		if _, err := l.store.CreateStory(ctx, st); err != nil {
			if errors.Is(err, db.ErrConflict) {
				continue
			}
			return added, fmt.Errorf("story %q: %w", st.Title, err)
		}
		added++
	}
	return added, nil
}
