// Package store persists generated learning content so it is not
// regenerated on every request. It never holds orchestration state; bot
// process bookkeeping lives in memory only.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"
)

// ErrNotFound is returned by lookups that match nothing.
var ErrNotFound = errors.New("store: not found")

// Curriculum is a cached curriculum for one CS subtopic. Data holds the
// JSON array of concept objects as produced by the generator.
type Curriculum struct {
	Subtopic  string          `json:"subtopic"`
	Data      json.RawMessage `json:"curriculum"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// ScrollContent is one generated feed item for a topic and content type.
type ScrollContent struct {
	Topic     string    `json:"topic"`
	Type      string    `json:"type"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// Store is the content cache interface. Implementations: sqlite (default)
// and postgres, selected by DSN via the factory package.
type Store interface {
	EnsureSchema(ctx context.Context) error

	GetCurriculum(ctx context.Context, subtopic string) (Curriculum, error)
	UpsertCurriculum(ctx context.Context, subtopic string, data json.RawMessage) error
	DeleteCurriculum(ctx context.Context, subtopic string) (bool, error)
	ListCurriculums(ctx context.Context) ([]Curriculum, error)

	SaveScrollContent(ctx context.Context, sc ScrollContent) error
	LatestScrollContent(ctx context.Context, topic, contentType string) (ScrollContent, error)

	Close() error
}
