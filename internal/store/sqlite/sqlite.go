// Package sqlite implements store.Store on modernc.org/sqlite (CGO-free).
// The DSN is a filesystem path; use ":memory:" for an in-memory database.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/iakhil/phronesis/internal/store"
)

type DB struct {
	db *sql.DB
}

func New(path string) (*DB, error) {
	p := strings.TrimSpace(path)
	if p == "" {
		return nil, errors.New("empty sqlite path")
	}
	d, err := sql.Open("sqlite", p)
	if err != nil {
		return nil, err
	}
	// Single connection: sqlite serializes writers anyway, and a pooled
	// ":memory:" DSN would otherwise give every connection its own database.
	d.SetMaxOpenConns(1)
	// busy timeout helps with short concurrent locks
	_, _ = d.Exec("PRAGMA busy_timeout=3000;")
	return &DB{db: d}, nil
}

func (s *DB) EnsureSchema(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS curriculums(
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			subtopic TEXT NOT NULL UNIQUE,
			curriculum_data TEXT NOT NULL,
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_curriculums_subtopic ON curriculums(subtopic);`,
		`CREATE TABLE IF NOT EXISTS scroll_contents(
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			topic TEXT NOT NULL,
			content_type TEXT NOT NULL,
			content TEXT NOT NULL,
			created_at TIMESTAMP NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_scroll_contents_topic ON scroll_contents(topic, content_type);`,
	}
	for _, q := range stmts {
		if _, err := s.db.ExecContext(ctx, q); err != nil {
			return err
		}
	}
	return nil
}

func (s *DB) Close() error { return s.db.Close() }

func (s *DB) GetCurriculum(ctx context.Context, subtopic string) (store.Curriculum, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT subtopic, curriculum_data, created_at, updated_at
		FROM curriculums WHERE subtopic = ?;`, subtopic)
	var c store.Curriculum
	var data string
	err := row.Scan(&c.Subtopic, &data, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return store.Curriculum{}, store.ErrNotFound
	}
	if err != nil {
		return store.Curriculum{}, err
	}
	c.Data = json.RawMessage(data)
	return c, nil
}

func (s *DB) UpsertCurriculum(ctx context.Context, subtopic string, data json.RawMessage) error {
	now := time.Now().UTC()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO curriculums(subtopic, curriculum_data, created_at, updated_at)
		VALUES(?, ?, ?, ?)
		ON CONFLICT(subtopic) DO UPDATE SET
			curriculum_data=excluded.curriculum_data,
			updated_at=excluded.updated_at;`,
		subtopic, string(data), now, now)
	return err
}

func (s *DB) DeleteCurriculum(ctx context.Context, subtopic string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM curriculums WHERE subtopic = ?;`, subtopic)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *DB) ListCurriculums(ctx context.Context) ([]store.Curriculum, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT subtopic, curriculum_data, created_at, updated_at
		FROM curriculums ORDER BY subtopic;`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var out []store.Curriculum
	for rows.Next() {
		var c store.Curriculum
		var data string
		if err := rows.Scan(&c.Subtopic, &data, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		c.Data = json.RawMessage(data)
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *DB) SaveScrollContent(ctx context.Context, sc store.ScrollContent) error {
	created := sc.CreatedAt
	if created.IsZero() {
		created = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO scroll_contents(topic, content_type, content, created_at)
		VALUES(?, ?, ?, ?);`,
		sc.Topic, sc.Type, sc.Content, created)
	return err
}

func (s *DB) LatestScrollContent(ctx context.Context, topic, contentType string) (store.ScrollContent, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT topic, content_type, content, created_at
		FROM scroll_contents
		WHERE topic = ? AND content_type = ?
		ORDER BY id DESC LIMIT 1;`, topic, contentType)
	var sc store.ScrollContent
	err := row.Scan(&sc.Topic, &sc.Type, &sc.Content, &sc.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return store.ScrollContent{}, store.ErrNotFound
	}
	if err != nil {
		return store.ScrollContent{}, err
	}
	return sc, nil
}
