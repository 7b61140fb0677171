package content

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// Store keeps a copy of the post collection in SQLite. Source order is kept
// in the position column.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the SQLite database at path, ensures the data
// directory exists, and creates the schema.
func NewStore(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("content: create data dir: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("content: open store: %w", err)
	}
	// WAL lets the server read while an import is writing; the busy timeout
	// makes the importer wait instead of failing with SQLITE_BUSY.
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
	`); err != nil {
		db.Close()
		return nil, fmt.Errorf("content: configure store: %w", err)
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("content: ensure schema: %w", err)
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS posts (
    slug TEXT PRIMARY KEY,
    position INTEGER NOT NULL,
    title TEXT NOT NULL,
    published_at TEXT NOT NULL,
    summary TEXT NOT NULL DEFAULT '',
    image TEXT NOT NULL DEFAULT '',
    author TEXT NOT NULL DEFAULT '',
    content TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_posts_position ON posts(position);
`)
	return err
}

// ListPosts returns every stored post in source order.
func (s *Store) ListPosts(ctx context.Context) ([]Post, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT slug, title, published_at, summary, image, author, content FROM posts ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("content: list posts: %w", err)
	}
	defer rows.Close()

	var posts []Post
	for rows.Next() {
		var p Post
		if err := rows.Scan(&p.Slug, &p.Metadata.Title, &p.Metadata.PublishedAt, &p.Metadata.Summary,
			&p.Metadata.Image, &p.Metadata.Author, &p.Content); err != nil {
			return nil, fmt.Errorf("content: scan post: %w", err)
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("content: list posts: %w", err)
	}
	return posts, nil
}

// ReplaceAll swaps the stored collection for posts in one transaction. When
// posts repeats a slug, the first occurrence is kept. It returns the number
// of posts written.
func (s *Store) ReplaceAll(ctx context.Context, posts []Post) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("content: begin import: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM posts`); err != nil {
		return 0, fmt.Errorf("content: clear posts: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx, `INSERT OR IGNORE INTO posts (slug, position, title, published_at, summary, image, author, content) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("content: prepare insert: %w", err)
	}
	defer stmt.Close()

	written := 0
	for i, p := range posts {
		res, err := stmt.ExecContext(ctx, p.Slug, i, p.Metadata.Title, p.Metadata.PublishedAt,
			p.Metadata.Summary, p.Metadata.Image, p.Metadata.Author, p.Content)
		if err != nil {
			return 0, fmt.Errorf("content: insert %s: %w", p.Slug, err)
		}
		if n, _ := res.RowsAffected(); n > 0 {
			written++
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("content: commit import: %w", err)
	}
	return written, nil
}

// Count returns the number of stored posts.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM posts`).Scan(&n); err != nil {
		return 0, fmt.Errorf("content: count posts: %w", err)
	}
	return n, nil
}

// Import loads every post from src and stores it, replacing what was there.
func Import(ctx context.Context, src Provider, dst *Store) (int, error) {
	posts, err := src.ListPosts(ctx)
	if err != nil {
		return 0, err
	}
	return dst.ReplaceAll(ctx, posts)
}
