// Package content glues the generative client to the content cache. All
// endpoints here are stateless prompt-templating calls plus best-effort
// caching; nothing touches the bot orchestration core.
package content

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/iakhil/phronesis/internal/gemini"
	"github.com/iakhil/phronesis/internal/metrics"
	"github.com/iakhil/phronesis/internal/store"
)

// Generator is the slice of the gemini client this service needs.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
	Configured() bool
}

// Concept is one entry of a generated curriculum.
type Concept struct {
	Title       string `json:"title"`
	Level       string `json:"level"`
	Description string `json:"description"`
}

// Item is one generated feed entry.
type Item struct {
	Content   string `json:"content"`
	Type      string `json:"type"`
	Topic     string `json:"topic"`
	Timestamp int64  `json:"timestamp"`
}

// Service generates content and caches it. The store may be nil, in which
// case every call goes to the generator.
type Service struct {
	gen Generator
	st  store.Store
}

func NewService(gen Generator, st store.Store) *Service {
	return &Service{gen: gen, st: st}
}

// Generate produces a feed item for topic/contentType. Fresh generations
// are saved best-effort; when generation fails, the most recent cached item
// for the pair is served instead if one exists.
func (s *Service) Generate(ctx context.Context, topic, contentType string) (Item, error) {
	if contentType == "" {
		contentType = "fact"
	}
	start := time.Now()
	text, err := s.gen.Generate(ctx, gemini.ContentPrompt(contentType, topic))
	metrics.ObserveGeneration("content", time.Since(start))
	if err != nil {
		if s.st != nil {
			if sc, cacheErr := s.st.LatestScrollContent(ctx, topic, contentType); cacheErr == nil {
				return Item{Content: sc.Content, Type: sc.Type, Topic: sc.Topic, Timestamp: sc.CreatedAt.Unix()}, nil
			}
		}
		return Item{}, err
	}
	if s.st != nil {
		saveErr := s.st.SaveScrollContent(ctx, store.ScrollContent{Topic: topic, Type: contentType, Content: text})
		if saveErr != nil {
			slog.Warn("failed to cache scroll content", "topic", topic, "err", saveErr)
		}
	}
	return Item{Content: text, Type: contentType, Topic: topic, Timestamp: time.Now().Unix()}, nil
}

// Curriculum returns the concept list for a subtopic, cache first. On
// generation or parse failure a static fallback curriculum is returned so
// the frontend always has something to render.
func (s *Service) Curriculum(ctx context.Context, subtopic string) ([]Concept, error) {
	if s.st != nil {
		if c, err := s.st.GetCurriculum(ctx, subtopic); err == nil {
			var concepts []Concept
			if err := json.Unmarshal(c.Data, &concepts); err == nil {
				return concepts, nil
			}
		} else if !errors.Is(err, store.ErrNotFound) {
			slog.Warn("curriculum cache read failed", "subtopic", subtopic, "err", err)
		}
	}

	start := time.Now()
	text, err := s.gen.Generate(ctx, gemini.CurriculumPrompt(subtopic))
	metrics.ObserveGeneration("curriculum", time.Since(start))
	if err != nil {
		slog.Warn("curriculum generation failed", "subtopic", subtopic, "err", err)
		return FallbackCurriculum(subtopic), nil
	}

	var concepts []Concept
	if err := json.Unmarshal([]byte(stripCodeFences(text)), &concepts); err != nil {
		slog.Warn("curriculum reply was not valid JSON", "subtopic", subtopic, "err", err)
		return FallbackCurriculum(subtopic), nil
	}

	if s.st != nil {
		data, _ := json.Marshal(concepts)
		if err := s.st.UpsertCurriculum(ctx, subtopic, data); err != nil {
			slog.Warn("failed to cache curriculum", "subtopic", subtopic, "err", err)
		}
	}
	return concepts, nil
}

// Summary produces a short topic summary. Summaries are never cached.
func (s *Service) Summary(ctx context.Context, topic string) (string, error) {
	start := time.Now()
	text, err := s.gen.Generate(ctx, gemini.SummaryPrompt(topic))
	metrics.ObserveGeneration("summary", time.Since(start))
	return text, err
}

// Configured reports whether the underlying generator has credentials.
func (s *Service) Configured() bool { return s.gen.Configured() }

// FallbackCurriculum is served when generation fails.
func FallbackCurriculum(subtopic string) []Concept {
	return []Concept{
		{Title: "Introduction", Level: "beginner", Description: fmt.Sprintf("Overview of %s", subtopic)},
		{Title: "Fundamentals", Level: "beginner", Description: fmt.Sprintf("Core concepts in %s", subtopic)},
		{Title: "Intermediate Topics", Level: "intermediate", Description: "Building on the basics"},
		{Title: "Advanced Concepts", Level: "advanced", Description: fmt.Sprintf("Deep dive into %s", subtopic)},
	}
}

// stripCodeFences extracts the body of a ```json fenced block if the model
// wrapped its reply in one.
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.Index(s, "```json"); i >= 0 {
		s = s[i+len("```json"):]
		if j := strings.Index(s, "```"); j >= 0 {
			s = s[:j]
		}
		return strings.TrimSpace(s)
	}
	if i := strings.Index(s, "```"); i >= 0 {
		s = s[i+3:]
		if j := strings.Index(s, "```"); j >= 0 {
			s = s[:j]
		}
		return strings.TrimSpace(s)
	}
	return s
}
