// Package postgres implements store.Store on PostgreSQL via the pgx stdlib
// driver.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/iakhil/phronesis/internal/store"
)

type DB struct {
	db *sql.DB
}

func New(dsn string) (*DB, error) {
	d, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	return &DB{db: d}, nil
}

func (p *DB) EnsureSchema(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS curriculums(
			id BIGSERIAL PRIMARY KEY,
			subtopic TEXT NOT NULL UNIQUE,
			curriculum_data JSONB NOT NULL,
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_curriculums_subtopic ON curriculums(subtopic);`,
		`CREATE TABLE IF NOT EXISTS scroll_contents(
			id BIGSERIAL PRIMARY KEY,
			topic TEXT NOT NULL,
			content_type TEXT NOT NULL,
			content TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_scroll_contents_topic ON scroll_contents(topic, content_type);`,
	}
	for _, q := range stmts {
		if _, err := p.db.ExecContext(ctx, q); err != nil {
			return err
		}
	}
	return nil
}

func (p *DB) Close() error { return p.db.Close() }

func (p *DB) GetCurriculum(ctx context.Context, subtopic string) (store.Curriculum, error) {
	row := p.db.QueryRowContext(ctx, `
		SELECT subtopic, curriculum_data, created_at, updated_at
		FROM curriculums WHERE subtopic = $1;`, subtopic)
	var c store.Curriculum
	var data []byte
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

func (p *DB) UpsertCurriculum(ctx context.Context, subtopic string, data json.RawMessage) error {
	now := time.Now().UTC()
	_, err := p.db.ExecContext(ctx, `
		INSERT INTO curriculums(subtopic, curriculum_data, created_at, updated_at)
		VALUES($1, $2, $3, $3)
		ON CONFLICT(subtopic) DO UPDATE SET
			curriculum_data=EXCLUDED.curriculum_data,
			updated_at=EXCLUDED.updated_at;`,
		subtopic, []byte(data), now)
	return err
}

func (p *DB) DeleteCurriculum(ctx context.Context, subtopic string) (bool, error) {
	res, err := p.db.ExecContext(ctx, `DELETE FROM curriculums WHERE subtopic = $1;`, subtopic)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (p *DB) ListCurriculums(ctx context.Context) ([]store.Curriculum, error) {
	rows, err := p.db.QueryContext(ctx, `
		SELECT subtopic, curriculum_data, created_at, updated_at
		FROM curriculums ORDER BY subtopic;`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var out []store.Curriculum
	for rows.Next() {
		var c store.Curriculum
		var data []byte
		if err := rows.Scan(&c.Subtopic, &data, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		c.Data = json.RawMessage(data)
		out = append(out, c)
	}
	return out, rows.Err()
}

func (p *DB) SaveScrollContent(ctx context.Context, sc store.ScrollContent) error {
	created := sc.CreatedAt
	if created.IsZero() {
		created = time.Now().UTC()
	}
	_, err := p.db.ExecContext(ctx, `
		INSERT INTO scroll_contents(topic, content_type, content, created_at)
		VALUES($1, $2, $3, $4);`,
		sc.Topic, sc.Type, sc.Content, created)
	return err
}

func (p *DB) LatestScrollContent(ctx context.Context, topic, contentType string) (store.ScrollContent, error) {
	row := p.db.QueryRowContext(ctx, `
		SELECT topic, content_type, content, created_at
		FROM scroll_contents
		WHERE topic = $1 AND content_type = $2
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
