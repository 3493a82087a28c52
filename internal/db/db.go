package db

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/mithrel/hanashi/pkg/api"
)

// Store is the persistence interface for stories and their chapters.
//
// Chapters are immutable once created; the only mutations are appending a
// chapter to a story, deleting a whole story, and ReplaceAll, which swaps
// the entire collection in one transaction (the backup/restore contract).
type Store interface {
	// CreateStory persists a story together with its chapters in one
	// transaction. A story is never visible without its first chapter.
	CreateStory(ctx context.Context, s api.Story) (api.Story, error)
	GetStory(ctx context.Context, id string) (api.Story, error)
	// ListStories returns summaries, most recently updated first.
	// limit <= 0 means no limit.
	ListStories(ctx context.Context, limit int) ([]api.StorySummary, error)
	// AppendChapter adds a chapter at the end of a story's reading order
	// and bumps the story's updated_at.
	AppendChapter(ctx context.Context, storyID string, ch api.Chapter) (api.Story, error)
	// DeleteStory removes a story and all its chapters.
	DeleteStory(ctx context.Context, id string) error
	// Search matches the full-text index over chapter body, translation,
	// and story title.
	Search(ctx context.Context, query string, limit int) ([]SearchHit, error)
	// ReplaceAll atomically replaces the whole collection.
	ReplaceAll(ctx context.Context, stories []api.Story) error
	// ExportAll returns every story with all chapters, oldest first.
	ExportAll(ctx context.Context) ([]api.Story, error)
}

// SearchHit locates a matching chapter within its story.
type SearchHit struct {
	StoryID    string `json:"story_id"`
	StoryTitle string `json:"story_title"`
	ChapterID  string `json:"chapter_id"`
	Seq        int    `json:"seq"`
	Snippet    string `json:"snippet"`
}

var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("conflict")
)

// Open returns a Store based on a URL. Supported schemes: sqlite://<path>
// and mem:// for an ephemeral in-memory store.
func Open(ctx context.Context, url string) (Store, io.Closer, error) {
	switch {
	case strings.HasPrefix(url, "sqlite://"):
		return openSQLite(ctx, url)
	case url == "mem://" || url == "mem":
		return newMemStore(), nopCloser{}, nil
	default:
		return nil, nil, fmt.Errorf("unsupported store url: %s", url)
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
