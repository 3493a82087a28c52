package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/mithrel/hanashi/pkg/api"
)

type sqliteStore struct{ db *sql.DB }

func openSQLite(ctx context.Context, dsn string) (Store, io.Closer, error) {
	path := strings.TrimPrefix(dsn, "sqlite://")
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, path[2:])
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, nil, err
	}
	// Pragmas go in the DSN so every pooled connection gets them; SQLite
	// defaults foreign_keys to OFF per connection, and the chapter cascade
	// depends on it.
	dbh, err := sql.Open("sqlite", "file:"+path+"?_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)")
	if err != nil {
		return nil, nil, err
	}
	if err := migrate(ctx, dbh); err != nil {
		_ = dbh.Close()
		return nil, nil, err
	}
	return &sqliteStore{db: dbh}, dbh, nil
}

func migrate(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS stories (
  id TEXT PRIMARY KEY,
  title TEXT NOT NULL,
  created_at TIMESTAMP NOT NULL,
  updated_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_stories_updated_id ON stories(updated_at DESC, id);
CREATE TABLE IF NOT EXISTS chapters (
  id TEXT PRIMARY KEY,
  story_id TEXT NOT NULL,
  seq INTEGER NOT NULL,
  body TEXT NOT NULL,
  vocabulary TEXT NOT NULL,
  translation TEXT NOT NULL DEFAULT '',
  created_at TIMESTAMP NOT NULL,
  UNIQUE(story_id, seq),
  FOREIGN KEY(story_id) REFERENCES stories(id) ON DELETE CASCADE
);
CREATE VIRTUAL TABLE IF NOT EXISTS chapters_fts USING fts5(
  body, translation, title,
  story_id UNINDEXED, chapter_id UNINDEXED,
  tokenize='unicode61'
);
`)
	return err
}

func (s *sqliteStore) CreateStory(ctx context.Context, st api.Story) (api.Story, error) {
	if st.ID == "" || len(st.Chapters) == 0 {
		return api.Story{}, ErrConflict
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return api.Story{}, err
	}
	defer tx.Rollback()

	if err := insertStoryTx(ctx, tx, st); err != nil {
		return api.Story{}, err
	}
	if err := tx.Commit(); err != nil {
		return api.Story{}, err
	}
	return st, nil
}

// insertStoryTx writes a story and all its chapters within the transaction.
func insertStoryTx(ctx context.Context, tx *sql.Tx, st api.Story) error {
	if _, err := tx.ExecContext(ctx, `INSERT INTO stories(id, title, created_at, updated_at) VALUES(?,?,?,?)`,
		st.ID, st.Title, st.CreatedAt.UTC(), st.UpdatedAt.UTC()); err != nil {
		if strings.Contains(err.Error(), "UNIQUE") {
			err = ErrConflict
		}
		return err
	}
	for i, ch := range st.Chapters {
		if err := insertChapterTx(ctx, tx, st.ID, st.Title, i, ch); err != nil {
			return err
		}
	}
	return nil
}

func insertChapterTx(ctx context.Context, tx *sql.Tx, storyID, storyTitle string, seq int, ch api.Chapter) error {
	vocabJSON, _ := json.Marshal(ch.Vocabulary)
	if _, err := tx.ExecContext(ctx, `INSERT INTO chapters(id, story_id, seq, body, vocabulary, translation, created_at) VALUES(?,?,?,?,?,?,?)`,
		ch.ID, storyID, seq, ch.Body, string(vocabJSON), ch.Translation, ch.CreatedAt.UTC()); err != nil {
		if strings.Contains(err.Error(), "UNIQUE") {
			err = ErrConflict
		}
		return err
	}
	_, err := tx.ExecContext(ctx, `INSERT INTO chapters_fts(body, translation, title, story_id, chapter_id) VALUES(?,?,?,?,?)`,
		ch.Body, ch.Translation, storyTitle, storyID, ch.ID)
	return err
}

func (s *sqliteStore) GetStory(ctx context.Context, id string) (api.Story, error) {
	var st api.Story
	row := s.db.QueryRowContext(ctx, `SELECT id, title, created_at, updated_at FROM stories WHERE id=?`, id)
	if err := row.Scan(&st.ID, &st.Title, &st.CreatedAt, &st.UpdatedAt); err != nil {
		if err == sql.ErrNoRows {
			return api.Story{}, ErrNotFound
		}
		return api.Story{}, err
	}
	chs, err := s.chaptersFor(ctx, id)
	if err != nil {
		return api.Story{}, err
	}
	st.Chapters = chs
	return st, nil
}

func (s *sqliteStore) chaptersFor(ctx context.Context, storyID string) ([]api.Chapter, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, body, vocabulary, translation, created_at FROM chapters WHERE story_id=? ORDER BY seq ASC`, storyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []api.Chapter
	for rows.Next() {
		var ch api.Chapter
		var vocabJSON string
		if err := rows.Scan(&ch.ID, &ch.Body, &vocabJSON, &ch.Translation, &ch.CreatedAt); err != nil {
			return nil, err
		}
		_ = json.Unmarshal([]byte(vocabJSON), &ch.Vocabulary)
		out = append(out, ch)
	}
	return out, rows.Err()
}

func (s *sqliteStore) ListStories(ctx context.Context, limit int) ([]api.StorySummary, error) {
	q := `SELECT s.id, s.title, s.created_at, s.updated_at, COUNT(c.id)
FROM stories s LEFT JOIN chapters c ON c.story_id = s.id
GROUP BY s.id
ORDER BY s.updated_at DESC, s.id`
	args := []any{}
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []api.StorySummary
	for rows.Next() {
		var sum api.StorySummary
		if err := rows.Scan(&sum.ID, &sum.Title, &sum.CreatedAt, &sum.UpdatedAt, &sum.Chapters); err != nil {
			return nil, err
		}
		out = append(out, sum)
	}
	return out, rows.Err()
}

func (s *sqliteStore) AppendChapter(ctx context.Context, storyID string, ch api.Chapter) (api.Story, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return api.Story{}, err
	}
	defer tx.Rollback()

	var title string
	if err := tx.QueryRowContext(ctx, `SELECT title FROM stories WHERE id=?`, storyID).Scan(&title); err != nil {
		if err == sql.ErrNoRows {
			return api.Story{}, ErrNotFound
		}
		return api.Story{}, err
	}
	var next int
	if err := tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(seq)+1, 0) FROM chapters WHERE story_id=?`, storyID).Scan(&next); err != nil {
		return api.Story{}, err
	}
	if err := insertChapterTx(ctx, tx, storyID, title, next, ch); err != nil {
		return api.Story{}, err
	}
	if _, err := tx.ExecContext(ctx, `UPDATE stories SET updated_at=? WHERE id=?`, ch.CreatedAt.UTC(), storyID); err != nil {
		return api.Story{}, err
	}
	if err := tx.Commit(); err != nil {
		return api.Story{}, err
	}
	return s.GetStory(ctx, storyID)
}

func (s *sqliteStore) DeleteStory(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()
	res, err := tx.ExecContext(ctx, `DELETE FROM stories WHERE id=?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	// chapters go via FK cascade; the FTS table has no FK
	if _, err := tx.ExecContext(ctx, `DELETE FROM chapters_fts WHERE story_id=?`, id); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *sqliteStore) Search(ctx context.Context, query string, limit int) ([]SearchHit, error) {
	if strings.TrimSpace(query) == "" {
		return nil, nil
	}
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx, `
SELECT f.story_id, f.title, f.chapter_id, c.seq,
       snippet(chapters_fts, 0, '', '', '…', 12)
FROM chapters_fts f
JOIN chapters c ON c.id = f.chapter_id
WHERE chapters_fts MATCH ?
ORDER BY rank
LIMIT ?`, ftsQuery(query), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []SearchHit
	for rows.Next() {
		var h SearchHit
		if err := rows.Scan(&h.StoryID, &h.StoryTitle, &h.ChapterID, &h.Seq, &h.Snippet); err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

// ftsQuery quotes each term so user input cannot use FTS operator syntax.
func ftsQuery(q string) string {
	terms := strings.Fields(q)
	for i, t := range terms {
		terms[i] = `"` + strings.ReplaceAll(t, `"`, `""`) + `"`
	}
	return strings.Join(terms, " ")
}

func (s *sqliteStore) ReplaceAll(ctx context.Context, stories []api.Story) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()
	for _, q := range []string{`DELETE FROM chapters_fts`, `DELETE FROM chapters`, `DELETE FROM stories`} {
		if _, err := tx.ExecContext(ctx, q); err != nil {
			return err
		}
	}
	for _, st := range stories {
		if err := insertStoryTx(ctx, tx, st); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (s *sqliteStore) ExportAll(ctx context.Context) ([]api.Story, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, title, created_at, updated_at FROM stories ORDER BY created_at ASC, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []api.Story
	for rows.Next() {
		var st api.Story
		if err := rows.Scan(&st.ID, &st.Title, &st.CreatedAt, &st.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, st)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range out {
		chs, err := s.chaptersFor(ctx, out[i].ID)
		if err != nil {
			return nil, err
		}
		out[i].Chapters = chs
	}
	return out, nil
}
