package db

import (
	"context"
	"sort"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/mithrel/hanashi/pkg/api"
)

// memStore keeps the whole collection in memory. Used by tests and for
// ephemeral runs; mirrors the sqlite store's semantics.
type memStore struct {
	mu      sync.RWMutex
	stories map[string]api.Story
}

func newMemStore() *memStore {
	return &memStore{stories: make(map[string]api.Story)}
}

func cloneStory(s api.Story) api.Story {
	out := s
	out.Chapters = append([]api.Chapter(nil), s.Chapters...)
	for i := range out.Chapters {
		out.Chapters[i].Vocabulary = append([]api.VocabEntry(nil), out.Chapters[i].Vocabulary...)
	}
	return out
}

func (m *memStore) CreateStory(ctx context.Context, s api.Story) (api.Story, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s.ID == "" || len(s.Chapters) == 0 {
		return api.Story{}, ErrConflict
	}
	if _, ok := m.stories[s.ID]; ok {
		return api.Story{}, ErrConflict
	}
	m.stories[s.ID] = cloneStory(s)
	return s, nil
}

func (m *memStore) GetStory(ctx context.Context, id string) (api.Story, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.stories[id]
	if !ok {
		return api.Story{}, ErrNotFound
	}
	return cloneStory(s), nil
}

func (m *memStore) ListStories(ctx context.Context, limit int) ([]api.StorySummary, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]api.StorySummary, 0, len(m.stories))
	for _, s := range m.stories {
		out = append(out, s.Summary())
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].UpdatedAt.Equal(out[j].UpdatedAt) {
			return out[i].UpdatedAt.After(out[j].UpdatedAt)
		}
		return out[i].ID < out[j].ID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *memStore) AppendChapter(ctx context.Context, storyID string, ch api.Chapter) (api.Story, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.stories[storyID]
	if !ok {
		return api.Story{}, ErrNotFound
	}
	s = cloneStory(s)
	s.Chapters = append(s.Chapters, ch)
	s.UpdatedAt = ch.CreatedAt
	m.stories[storyID] = s
	return cloneStory(s), nil
}

func (m *memStore) DeleteStory(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.stories[id]; !ok {
		return ErrNotFound
	}
	delete(m.stories, id)
	return nil
}

func (m *memStore) Search(ctx context.Context, query string, limit int) ([]SearchHit, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil, nil
	}
	if limit <= 0 {
		limit = 50
	}
	var out []SearchHit
	for _, s := range m.stories {
		for i, ch := range s.Chapters {
			if strings.Contains(strings.ToLower(ch.Body), q) ||
				strings.Contains(strings.ToLower(ch.Translation), q) ||
				strings.Contains(strings.ToLower(s.Title), q) {
				out = append(out, SearchHit{
					StoryID:    s.ID,
					StoryTitle: s.Title,
					ChapterID:  ch.ID,
					Seq:        i,
					Snippet:    snippetAround(ch.Body, q),
				})
			}
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].StoryID != out[j].StoryID {
			return out[i].StoryID < out[j].StoryID
		}
		return out[i].Seq < out[j].Seq
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func snippetAround(body, q string) string {
	// Rune-safe prefix; the sqlite store returns real FTS snippets, the mem
	// store only needs something recognizable. Lowercasing can change byte
	// lengths but not rune counts, so the match offset carries over to the
	// original as a rune index.
	r := []rune(body)
	lower := strings.ToLower(body)
	if idx := strings.Index(lower, q); idx > 0 {
		r = r[utf8.RuneCountInString(lower[:idx]):]
	}
	if len(r) > 60 {
		r = r[:60]
	}
	return strings.TrimSpace(string(r))
}

func (m *memStore) ReplaceAll(ctx context.Context, stories []api.Story) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	next := make(map[string]api.Story, len(stories))
	for _, s := range stories {
		if s.ID == "" || len(s.Chapters) == 0 {
			return ErrConflict
		}
		if _, ok := next[s.ID]; ok {
			return ErrConflict
		}
		next[s.ID] = cloneStory(s)
	}
	m.stories = next
	return nil
}

func (m *memStore) ExportAll(ctx context.Context) ([]api.Story, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]api.Story, 0, len(m.stories))
	for _, s := range m.stories {
		out = append(out, cloneStory(s))
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}
